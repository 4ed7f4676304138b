package subscription

import (
	"context"
	"fmt"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// EnsureSubscriptionLists links the signer and provider in their
// MySubscriptions and SubscribersList accounts, initializing and growing
// them as needed. Each planned step is submitted and confirmed on its own;
// the first failure aborts the sequence without rollback. It returns the
// executed steps.
func (c *Client) EnsureSubscriptionLists(ctx context.Context, provider solana.PublicKey) ([]program.ListStep, error) {
	subscriber, err := c.requireSigner()
	if err != nil {
		return nil, err
	}

	accounts, err := c.listsAccounts(subscriber, provider)
	if err != nil {
		return nil, err
	}

	steps, err := c.planListSteps(ctx, accounts)
	if err != nil {
		return nil, err
	}

	for i, step := range steps {
		ix, err := program.BuildListStep(c.addrs.ProgramID, step, accounts)
		if err != nil {
			return steps[:i], err
		}
		sig, err := c.send(ctx, []solana.Instruction{ix})
		if err != nil {
			zap.L().Error("Subscription list step failed",
				zap.Stringer("step", step),
				zap.Stringer("provider", provider),
				zap.Error(err))
			return steps[:i], fmt.Errorf("failed to %s: %w", step, err)
		}
		zap.L().Debug("subscription list step done", zap.Stringer("step", step), zap.Stringer("signature", sig))
	}
	return steps, nil
}

func (c *Client) listsAccounts(subscriber, provider solana.PublicKey) (program.ListsAccounts, error) {
	my, err := c.addrs.MySubscriptions(subscriber)
	if err != nil {
		return program.ListsAccounts{}, err
	}
	subs, err := c.addrs.SubscribersList(provider)
	if err != nil {
		return program.ListsAccounts{}, err
	}
	return program.ListsAccounts{
		Subscriber:      subscriber,
		DataProvider:    provider,
		MySubscriptions: my,
		SubscribersList: subs,
	}, nil
}

// planListSteps reads both lists in one request and plans the sequence.
func (c *Client) planListSteps(ctx context.Context, a program.ListsAccounts) ([]program.ListStep, error) {
	accts, err := c.getAccounts(ctx, a.MySubscriptions, a.SubscribersList)
	if err != nil {
		return nil, fmt.Errorf("failed to read subscription lists: %w", err)
	}
	my := program.ListState{Exists: accts[0] != nil, Size: accountSize(accts[0])}
	subs := program.ListState{Exists: accts[1] != nil, Size: accountSize(accts[1])}
	return program.PlanListSteps(my, subs), nil
}
