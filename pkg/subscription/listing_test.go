package subscription

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/internal/testutil/solanafake"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) putSubscription(t *testing.T, subscriber, provider solana.PublicKey, endTime int64) {
	t.Helper()
	addr, err := e.client.Addresses().Subscription(subscriber, provider)
	require.NoError(t, err)
	e.put(t, addr, &program.Subscription{EndTime: endTime, Recipient: "r-" + subscriber.String()[:4]}, 0)
}

func TestGetSubscriptionsForProvider(t *testing.T) {
	env := newTestEnv(t)
	provider := newKey(t)
	now := testNow.Unix()

	soon, later, expired, missing, broken := newKey(t), newKey(t), newKey(t), newKey(t), newKey(t)
	env.putSubscription(t, soon, provider, now+3*86400)
	env.putSubscription(t, later, provider, now+30*86400)
	env.putSubscription(t, expired, provider, now)
	env.putSubscription(t, broken, provider, now+86400)

	brokenAddr, err := env.client.Addresses().Subscription(broken, provider)
	require.NoError(t, err)
	env.fake.FailAccount(brokenAddr, errors.New("rpc timeout"))

	listAddr, err := env.client.Addresses().SubscribersList(provider)
	require.NoError(t, err)
	env.put(t, listAddr, &program.SubscribersList{
		Subscribers: []solana.PublicKey{soon, expired, missing, later, broken},
	}, 0)

	subs, err := env.client.GetSubscriptionsForProvider(context.Background(), provider)
	require.NoError(t, err)
	require.Len(t, subs, 2)

	assert.True(t, subs[0].Subscriber.Equals(later))
	assert.Equal(t, model.StatusActive, subs[0].Status)
	assert.True(t, subs[1].Subscriber.Equals(soon))
	assert.Equal(t, model.StatusExpiringSoon, subs[1].Status)
	for _, s := range subs {
		assert.True(t, s.DataProvider.Equals(provider))
		assert.Greater(t, s.EndTime, now)
	}

	count, err := env.client.GetActiveSubscriptionsForAgent(context.Background(), provider)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

// TestGetSubscriptionsForProvider_DropsFailedReads checks that one failing
// read among many only removes that entry.
func TestGetSubscriptionsForProvider_DropsFailedReads(t *testing.T) {
	env := newTestEnv(t)
	env.client.fanOutLimit = 3
	provider := newKey(t)

	const n = 20
	subscribers := make([]solana.PublicKey, n)
	for i := range subscribers {
		subscribers[i] = newKey(t)
		env.putSubscription(t, subscribers[i], provider, testNow.Unix()+int64(i+1)*3600)
	}
	bad, err := env.client.Addresses().Subscription(subscribers[7], provider)
	require.NoError(t, err)
	env.fake.FailAccount(bad, errors.New("boom"))

	listAddr, err := env.client.Addresses().SubscribersList(provider)
	require.NoError(t, err)
	env.put(t, listAddr, &program.SubscribersList{Subscribers: subscribers}, 0)

	subs, err := env.client.GetSubscriptionsForProvider(context.Background(), provider)
	require.NoError(t, err)
	require.Len(t, subs, n-1)
	for i := 1; i < len(subs); i++ {
		assert.GreaterOrEqual(t, subs[i-1].EndTime, subs[i].EndTime)
	}
	for _, s := range subs {
		assert.False(t, s.Subscriber.Equals(subscribers[7]))
	}
}

func TestGetAgentSubscribers_MissingList(t *testing.T) {
	env := newTestEnv(t)
	subs, err := env.client.GetAgentSubscribers(context.Background(), newKey(t))
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)

	details, err := env.client.GetSubscriptionsForProvider(context.Background(), newKey(t))
	require.NoError(t, err)
	assert.Empty(t, details)
}

func TestGetAllSubscriptionsForUser(t *testing.T) {
	env := newTestEnv(t)
	user := newKey(t)
	p1, p2, p3 := newKey(t), newKey(t), newKey(t)
	env.putSubscription(t, user, p1, testNow.Unix()+86400)
	env.putSubscription(t, user, p2, testNow.Unix()+10*86400)
	env.putSubscription(t, user, p3, testNow.Unix()-1)

	indexAddr, err := env.client.Addresses().MySubscriptions(user)
	require.NoError(t, err)
	env.put(t, indexAddr, &program.MySubscriptions{Providers: []solana.PublicKey{p1, p2, p3}}, 64)

	subs, err := env.client.GetAllSubscriptionsForUser(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.True(t, subs[0].DataProvider.Equals(p2))
	assert.True(t, subs[1].DataProvider.Equals(p1))
	assert.True(t, subs[0].Subscriber.Equals(user))

	wantAddr, err := env.client.Addresses().Subscription(user, p2)
	require.NoError(t, err)
	assert.True(t, subs[0].Address.Equals(wantAddr))
}

func TestGetAllSubscriptionsForUser_MissingIndex(t *testing.T) {
	env := newTestEnv(t)
	subs, err := env.client.GetAllSubscriptionsForUser(context.Background(), newKey(t))
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Empty(t, subs)
}

func TestCollectSubscriptions_Canceled(t *testing.T) {
	env := newTestEnv(t)
	provider := newKey(t)
	subscriber := newKey(t)
	env.putSubscription(t, subscriber, provider, testNow.Unix()+86400)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := env.client.collectSubscriptions(ctx, [][2]solana.PublicKey{{subscriber, provider}})
	require.ErrorIs(t, err, context.Canceled)
}

// cancelOnRead cancels the caller's context when target is read.
type cancelOnRead struct {
	*solanafake.RPC
	target solana.PublicKey
	cancel context.CancelFunc
}

func (r *cancelOnRead) GetAccountInfoWithOpts(ctx context.Context, pk solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	if pk.Equals(r.target) {
		r.cancel()
	}
	return r.RPC.GetAccountInfoWithOpts(ctx, pk, opts)
}

func TestCollectSubscriptions_CanceledMidway(t *testing.T) {
	env := newTestEnv(t)
	provider := newKey(t)

	pairs := make([][2]solana.PublicKey, 8)
	for i := range pairs {
		subscriber := newKey(t)
		env.putSubscription(t, subscriber, provider, testNow.Unix()+int64(i+1)*3600)
		pairs[i] = [2]solana.PublicKey{subscriber, provider}
	}
	target, err := env.client.Addresses().Subscription(pairs[3][0], provider)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Config{Network: config.Devnet}
	require.NoError(t, cfg.Validate())
	c, err := NewClient(cfg, &cancelOnRead{RPC: env.fake, target: target, cancel: cancel},
		WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)
	c.fanOutLimit = 1

	subs, err := c.collectSubscriptions(ctx, pairs)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, subs)
}
