package program

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// subscriptionBytes lays out a Subscription account by hand:
// discriminator, i64 end time, u32 string length, string bytes.
func subscriptionBytes(endTime int64, recipient string) []byte {
	out := append([]byte{}, AcctSubscription[:]...)
	out = binary.LittleEndian.AppendUint64(out, uint64(endTime))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(recipient)))
	return append(out, recipient...)
}

func TestDecodeSubscription_Layout(t *testing.T) {
	data := subscriptionBytes(1_700_000_000, "https://feed.example/hook")

	sub, err := DecodeSubscription(data)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_000), sub.EndTime)
	assert.Equal(t, "https://feed.example/hook", sub.Recipient)
}

// TestDecodeAccount_TrailingCapacityIgnored verifies that reallocated
// accounts with zeroed spare capacity still decode.
func TestDecodeAccount_TrailingCapacityIgnored(t *testing.T) {
	data, err := EncodeAccount(&SubscribersList{Subscribers: []solana.PublicKey{testSubscriber}})
	require.NoError(t, err)
	require.Len(t, data, 8+4+32)

	padded := append(data, make([]byte, ListCapacityThreshold)...)
	list, err := DecodeSubscribersList(padded)
	require.NoError(t, err)
	require.Len(t, list.Subscribers, 1)
	assert.True(t, list.Subscribers[0].Equals(testSubscriber))
}

func TestDecodeAccount_Errors(t *testing.T) {
	_, err := DecodeSubscription([]byte{1, 2, 3})
	require.Error(t, err)

	stateData, err := EncodeAccount(&State{Owner: testProvider, FeePerDay: 10})
	require.NoError(t, err)
	_, err = DecodeSubscription(stateData)
	require.True(t, errors.Is(err, ErrDiscriminatorMismatch), "got %v", err)

	truncated := subscriptionBytes(1, "recipient")[:14]
	_, err = DecodeSubscription(truncated)
	require.Error(t, err)
}

func TestDecodeState(t *testing.T) {
	in := &State{
		Owner:           testProvider,
		NftProgramID:    testSubscriber,
		PaymentSplToken: testProgramID,
		FeePerDay:       1_000,
		CollectorFee:    25,
	}
	data, err := EncodeAccount(in)
	require.NoError(t, err)
	require.Len(t, data, 8+32*3+8+8)

	out, err := DecodeState(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeQualityInfo(t *testing.T) {
	in := &QualityInfo{
		Subscriber:   testSubscriber,
		Quality:      80,
		CurrentIndex: 1,
		Qualities: []QualityRecord{
			{Provider: testProvider, Quality: 70},
			{Provider: testProvider, Quality: 90},
		},
	}
	data, err := EncodeAccount(in)
	require.NoError(t, err)
	require.Len(t, data, 8+32+1+1+4+2*33)

	out, err := DecodeQualityInfo(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeAgentRegistration(t *testing.T) {
	in := &AgentRegistration{
		Address:               testProvider,
		Name:                  "weather",
		Description:           "hourly forecasts",
		RestrictSubscriptions: true,
		Capabilities:          []string{"forecast", "alerts"},
	}
	data, err := EncodeAccount(in)
	require.NoError(t, err)

	out, err := DecodeAgentRegistration(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSubscriptionRequests_IndexOf(t *testing.T) {
	reqs := &SubscriptionRequests{Requests: []Request{
		{SubscriberPubkey: testProvider},
		{SubscriberPubkey: testSubscriber, Approved: true},
	}}
	assert.Equal(t, 1, reqs.IndexOf(testSubscriber))
	assert.Equal(t, -1, reqs.IndexOf(testProgramID))

	data, err := EncodeAccount(reqs)
	require.NoError(t, err)
	out, err := DecodeSubscriptionRequests(data)
	require.NoError(t, err)
	assert.Equal(t, reqs, out)
}

func TestDecodeDataProviderFee(t *testing.T) {
	data, err := EncodeAccount(&DataProviderFee{Owner: testProvider, Fee: 1_500_000_000})
	require.NoError(t, err)
	out, err := DecodeDataProviderFee(data)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500_000_000), out.Fee)
	assert.True(t, out.Owner.Equals(testProvider))
}

func TestDecodeMySubscriptions(t *testing.T) {
	data, err := EncodeAccount(&MySubscriptions{Providers: []solana.PublicKey{testProvider, testProgramID}})
	require.NoError(t, err)
	out, err := DecodeMySubscriptions(data)
	require.NoError(t, err)
	require.Len(t, out.Providers, 2)
	assert.True(t, out.Providers[1].Equals(testProgramID))
}
