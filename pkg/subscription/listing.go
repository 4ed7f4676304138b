package subscription

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetAgentSubscribers returns the raw subscribers list of provider. A
// provider without a list has no subscribers.
func (c *Client) GetAgentSubscribers(ctx context.Context, provider solana.PublicKey) ([]solana.PublicKey, error) {
	addr, err := c.addrs.SubscribersList(provider)
	if err != nil {
		return nil, err
	}
	list, err := fetch(ctx, c, addr, program.DecodeSubscribersList)
	if errors.Is(err, ErrAccountNotFound) {
		return []solana.PublicKey{}, nil
	}
	if err != nil {
		return nil, err
	}
	return list.Subscribers, nil
}

// GetSubscriptionsForProvider returns the live subscriptions to provider,
// most distant expiry first. Subscribers whose subscription cannot be read
// are left out.
func (c *Client) GetSubscriptionsForProvider(ctx context.Context, provider solana.PublicKey) ([]model.SubscriptionDetails, error) {
	subscribers, err := c.GetAgentSubscribers(ctx, provider)
	if err != nil {
		zap.L().Error("Failed to get subscribers list", zap.Stringer("provider", provider), zap.Error(err))
		return nil, err
	}

	pairs := make([][2]solana.PublicKey, len(subscribers))
	for i, s := range subscribers {
		pairs[i] = [2]solana.PublicKey{s, provider}
	}
	return c.collectSubscriptions(ctx, pairs)
}

// GetActiveSubscriptionsForAgent returns the number of live subscriptions
// to provider.
func (c *Client) GetActiveSubscriptionsForAgent(ctx context.Context, provider solana.PublicKey) (int, error) {
	subs, err := c.GetSubscriptionsForProvider(ctx, provider)
	if err != nil {
		return 0, err
	}
	return len(subs), nil
}

// GetAllSubscriptionsForUser returns the live subscriptions held by user,
// most distant expiry first, using the user's MySubscriptions index.
func (c *Client) GetAllSubscriptionsForUser(ctx context.Context, user solana.PublicKey) ([]model.SubscriptionDetails, error) {
	addr, err := c.addrs.MySubscriptions(user)
	if err != nil {
		return nil, err
	}
	index, err := fetch(ctx, c, addr, program.DecodeMySubscriptions)
	if errors.Is(err, ErrAccountNotFound) {
		return []model.SubscriptionDetails{}, nil
	}
	if err != nil {
		zap.L().Error("Failed to get subscriptions index", zap.Stringer("user", user), zap.Error(err))
		return nil, err
	}

	pairs := make([][2]solana.PublicKey, len(index.Providers))
	for i, p := range index.Providers {
		pairs[i] = [2]solana.PublicKey{user, p}
	}
	return c.collectSubscriptions(ctx, pairs)
}

// collectSubscriptions reads the subscription of every (subscriber,
// provider) pair concurrently, at most fanOutLimit at a time. Failed reads
// are dropped, as are expired entries; the rest is sorted by descending
// expiry. Cancellation of ctx aborts the whole listing.
func (c *Client) collectSubscriptions(ctx context.Context, pairs [][2]solana.PublicKey) ([]model.SubscriptionDetails, error) {
	now := c.now()
	results := make([]*model.SubscriptionDetails, len(pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fanOutLimit)
	for i, pair := range pairs {
		g.Go(func() error {
			subscriber, provider := pair[0], pair[1]
			addr, err := c.addrs.Subscription(subscriber, provider)
			if err != nil {
				return nil
			}
			sub, err := c.GetSubscriptionAt(gctx, addr)
			if err != nil {
				if cerr := gctx.Err(); cerr != nil {
					return cerr
				}
				zap.L().Warn("no subscription found",
					zap.Stringer("subscriber", subscriber),
					zap.Stringer("provider", provider),
					zap.Error(err))
				return nil
			}
			results[i] = &model.SubscriptionDetails{
				Subscriber:   subscriber,
				DataProvider: provider,
				Address:      addr,
				Recipient:    sub.Recipient,
				EndTime:      sub.EndTime,
				Status:       model.ClassifyStatus(sub.EndTime, now),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]model.SubscriptionDetails, 0, len(results))
	for _, r := range results {
		if r == nil || r.EndTime <= now.Unix() {
			continue
		}
		out = append(out, *r)
	}
	slices.SortStableFunc(out, func(a, b model.SubscriptionDetails) int {
		return cmp.Compare(b.EndTime, a.EndTime)
	})
	return out, nil
}
