package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// ErrProviderRequired is returned when an operation is called with a zero
// data provider key.
var ErrProviderRequired = errors.New("data provider is required")

// paymentAccounts are the FXN token accounts touched by paid instructions.
type paymentAccounts struct {
	owner      solana.PublicKey
	provider   solana.PublicKey
	subscriber solana.PublicKey
	ownerATA   solana.PublicKey
}

// payment reads the program owner from State and derives the FXN token
// accounts of the owner, provider and subscriber.
func (c *Client) payment(ctx context.Context, subscriber, provider solana.PublicKey) (paymentAccounts, error) {
	state, err := c.GetState(ctx)
	if err != nil {
		return paymentAccounts{}, err
	}
	var p paymentAccounts
	p.owner = state.Owner
	if p.ownerATA, err = program.TokenAccount(state.Owner, c.fxnMint); err != nil {
		return p, err
	}
	if p.provider, err = program.TokenAccount(provider, c.fxnMint); err != nil {
		return p, err
	}
	if p.subscriber, err = program.TokenAccount(subscriber, c.fxnMint); err != nil {
		return p, err
	}
	return p, nil
}

// CreateSubscription subscribes the signer to p.DataProvider for
// p.DurationInDays days, preparing the subscription lists first.
func (c *Client) CreateSubscription(ctx context.Context, p model.SubscribeParams) (solana.Signature, error) {
	subscriber, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	if p.DataProvider.IsZero() {
		return solana.Signature{}, ErrProviderRequired
	}

	pair, err := c.addrs.Pair(subscriber, p.DataProvider)
	if err != nil {
		return solana.Signature{}, err
	}
	pay, err := c.payment(ctx, subscriber, p.DataProvider)
	if err != nil {
		return solana.Signature{}, err
	}

	if _, err := c.EnsureSubscriptionLists(ctx, p.DataProvider); err != nil {
		return solana.Signature{}, err
	}

	ix, err := program.NewSubscribe(c.addrs.ProgramID, program.SubscribeArgs{
		Recipient: p.Recipient,
		EndTime:   model.ExpiryFromDays(c.now(), p.DurationInDays),
	}, program.SubscribeAccounts{
		State:                  pair.State,
		Subscriber:             subscriber,
		DataProvider:           p.DataProvider,
		Subscription:           pair.Subscription,
		Owner:                  pay.owner,
		DataProviderPaymentATA: pay.provider,
		SubscriberPaymentATA:   pay.subscriber,
		OwnerPaymentATA:        pay.ownerATA,
		AgentRegistration:      pair.AgentRegistration,
		SubscriptionRequests:   pair.SubscriptionRequests,
		DataProviderFee:        pair.DataProviderFee,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to create subscription", zap.Stringer("provider", p.DataProvider), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// RenewSubscription extends the signer's subscription to p.DataProvider
// until p.NewEndTime and records p.QualityScore.
func (c *Client) RenewSubscription(ctx context.Context, p model.RenewParams) (solana.Signature, error) {
	subscriber, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	if p.DataProvider.IsZero() {
		return solana.Signature{}, ErrProviderRequired
	}

	pair, err := c.addrs.Pair(subscriber, p.DataProvider)
	if err != nil {
		return solana.Signature{}, err
	}
	pay, err := c.payment(ctx, subscriber, p.DataProvider)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := c.ensureQualityInfo(ctx, subscriber, p.DataProvider, pair.QualityInfo); err != nil {
		return solana.Signature{}, err
	}

	ix, err := program.NewRenewSubscription(c.addrs.ProgramID, program.RenewSubscriptionArgs{
		NewRecipient: p.NewRecipient,
		NewEndTime:   p.NewEndTime,
		Quality:      p.QualityScore,
	}, program.RenewSubscriptionAccounts{
		State:                  pair.State,
		Subscriber:             subscriber,
		DataProvider:           p.DataProvider,
		Subscription:           pair.Subscription,
		QualityInfo:            pair.QualityInfo,
		Owner:                  pay.owner,
		DataProviderPaymentATA: pay.provider,
		SubscriberPaymentATA:   pay.subscriber,
		OwnerPaymentATA:        pay.ownerATA,
		DataProviderFee:        pair.DataProviderFee,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to renew subscription", zap.Stringer("provider", p.DataProvider), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// CancelSubscription cancels the signer's subscription to p.DataProvider,
// recording p.QualityScore.
func (c *Client) CancelSubscription(ctx context.Context, p model.CancelParams) (solana.Signature, error) {
	return c.finishSubscription(ctx, p, program.NewCancelSubscription, "cancel")
}

// EndSubscription ends the signer's subscription to p.DataProvider,
// recording p.QualityScore.
func (c *Client) EndSubscription(ctx context.Context, p model.CancelParams) (solana.Signature, error) {
	return c.finishSubscription(ctx, p, program.NewEndSubscription, "end")
}

type qualityInstruction func(solana.PublicKey, uint8, program.SubscriptionQualityAccounts) (*program.Instruction, error)

func (c *Client) finishSubscription(ctx context.Context, p model.CancelParams, build qualityInstruction, verb string) (solana.Signature, error) {
	subscriber, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	if p.DataProvider.IsZero() {
		return solana.Signature{}, ErrProviderRequired
	}

	pair, err := c.addrs.Pair(subscriber, p.DataProvider)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := c.ensureQualityInfo(ctx, subscriber, p.DataProvider, pair.QualityInfo); err != nil {
		return solana.Signature{}, err
	}

	ix, err := build(c.addrs.ProgramID, p.QualityScore, program.SubscriptionQualityAccounts{
		Subscriber:   subscriber,
		DataProvider: p.DataProvider,
		Subscription: pair.Subscription,
		QualityInfo:  pair.QualityInfo,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to "+verb+" subscription", zap.Stringer("provider", p.DataProvider), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// CloseSubscriptionAccount closes the signer's subscription account with
// provider and reclaims its rent.
func (c *Client) CloseSubscriptionAccount(ctx context.Context, provider solana.PublicKey) (solana.Signature, error) {
	subscriber, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	if provider.IsZero() {
		return solana.Signature{}, ErrProviderRequired
	}

	subscription, err := c.addrs.Subscription(subscriber, provider)
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := program.NewCloseSubscriptionAccount(c.addrs.ProgramID, program.CloseSubscriptionAccountAccounts{
		Subscriber:   subscriber,
		DataProvider: provider,
		Subscription: subscription,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to close subscription account", zap.Stringer("provider", provider), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// StoreDataQuality records the signer's quality rating of provider.
func (c *Client) StoreDataQuality(ctx context.Context, provider solana.PublicKey, quality uint8) (solana.Signature, error) {
	subscriber, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	if provider.IsZero() {
		return solana.Signature{}, ErrProviderRequired
	}

	qualityInfo, err := c.addrs.QualityInfo(provider)
	if err != nil {
		return solana.Signature{}, err
	}
	if err := c.ensureQualityInfo(ctx, subscriber, provider, qualityInfo); err != nil {
		return solana.Signature{}, err
	}

	ix, err := program.NewStoreDataQuality(c.addrs.ProgramID, quality, program.StoreDataQualityAccounts{
		Subscriber:   subscriber,
		DataProvider: provider,
		QualityInfo:  qualityInfo,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to store data quality", zap.Stringer("provider", provider), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// RequestSubscription asks a restricted provider for permission to
// subscribe.
func (c *Client) RequestSubscription(ctx context.Context, provider solana.PublicKey) (solana.Signature, error) {
	subscriber, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	if provider.IsZero() {
		return solana.Signature{}, ErrProviderRequired
	}

	requests, err := c.addrs.SubscriptionRequests(provider)
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := program.NewRequestSubscription(c.addrs.ProgramID, program.RequestSubscriptionAccounts{
		Subscriber:           subscriber,
		DataProvider:         provider,
		SubscriptionRequests: requests,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to request subscription", zap.Stringer("provider", provider), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// ensureQualityInfo creates the provider's QualityInfo account, paid by
// payer, when it does not exist yet.
func (c *Client) ensureQualityInfo(ctx context.Context, payer, provider, qualityInfo solana.PublicKey) error {
	exists, err := c.accountExists(ctx, qualityInfo)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	ix, err := program.NewInitializeQualityInfo(c.addrs.ProgramID, program.InitializeQualityInfoAccounts{
		QualityInfo:  qualityInfo,
		DataProvider: provider,
		Payer:        payer,
	})
	if err != nil {
		return err
	}
	if _, err := c.send(ctx, []solana.Instruction{ix}); err != nil {
		zap.L().Error("Failed to initialize quality info", zap.Stringer("provider", provider), zap.Error(err))
		return fmt.Errorf("failed to initialize quality info: %w", err)
	}
	return nil
}
