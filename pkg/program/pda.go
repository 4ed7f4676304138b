package program

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed is a constant UTF-8 prefix of a program-derived address.
type Seed string

// Seed table of the pinned program release.
const (
	SeedState                Seed = "state storage"
	SeedQuality              Seed = "quality"
	SeedSubscription         Seed = "subscription"
	SeedSubscribers          Seed = "subscribers"
	SeedMySubscriptions      Seed = "my_subscriptions"
	SeedSubscriptionRequests Seed = "subscription_requests"
	SeedDataProviderFee      Seed = "data_provider_fee"
	SeedAgentRegistration    Seed = "agent_profile_registration"
)

// Derive computes the program-derived address for seed followed by the
// given public keys, in order.
func Derive(programID solana.PublicKey, seed Seed, keys ...solana.PublicKey) (solana.PublicKey, uint8, error) {
	seeds := make([][]byte, 0, len(keys)+1)
	seeds = append(seeds, []byte(seed))
	for _, k := range keys {
		seeds = append(seeds, k.Bytes())
	}
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("failed to derive %q address: %w", string(seed), err)
	}
	return addr, bump, nil
}

// Addresses derives every account address of one program deployment.
type Addresses struct {
	ProgramID solana.PublicKey
}

// NewAddresses returns a deriver bound to programID.
func NewAddresses(programID solana.PublicKey) Addresses {
	return Addresses{ProgramID: programID}
}

func (a Addresses) derive(seed Seed, keys ...solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := Derive(a.ProgramID, seed, keys...)
	return addr, err
}

// State returns the global program state address.
func (a Addresses) State() (solana.PublicKey, error) {
	return a.derive(SeedState)
}

// Subscription returns the subscription record of subscriber with provider.
func (a Addresses) Subscription(subscriber, provider solana.PublicKey) (solana.PublicKey, error) {
	return a.derive(SeedSubscription, subscriber, provider)
}

// SubscribersList returns the provider's subscribers index.
func (a Addresses) SubscribersList(provider solana.PublicKey) (solana.PublicKey, error) {
	return a.derive(SeedSubscribers, provider)
}

// MySubscriptions returns the subscriber's providers index.
func (a Addresses) MySubscriptions(subscriber solana.PublicKey) (solana.PublicKey, error) {
	return a.derive(SeedMySubscriptions, subscriber)
}

// QualityInfo returns the provider's quality history.
func (a Addresses) QualityInfo(provider solana.PublicKey) (solana.PublicKey, error) {
	return a.derive(SeedQuality, provider)
}

// SubscriptionRequests returns the provider's pending request list.
func (a Addresses) SubscriptionRequests(provider solana.PublicKey) (solana.PublicKey, error) {
	return a.derive(SeedSubscriptionRequests, provider)
}

// DataProviderFee returns the provider's fee record.
func (a Addresses) DataProviderFee(provider solana.PublicKey) (solana.PublicKey, error) {
	return a.derive(SeedDataProviderFee, provider)
}

// AgentRegistration returns the provider's agent profile.
func (a Addresses) AgentRegistration(provider solana.PublicKey) (solana.PublicKey, error) {
	return a.derive(SeedAgentRegistration, provider)
}

// ProviderAddresses groups the addresses keyed by a data provider alone.
type ProviderAddresses struct {
	Provider             solana.PublicKey
	State                solana.PublicKey
	QualityInfo          solana.PublicKey
	SubscribersList      solana.PublicKey
	SubscriptionRequests solana.PublicKey
	DataProviderFee      solana.PublicKey
	AgentRegistration    solana.PublicKey
}

// PairAddresses adds the addresses keyed by a (subscriber, provider) pair.
type PairAddresses struct {
	ProviderAddresses
	Subscriber      solana.PublicKey
	Subscription    solana.PublicKey
	MySubscriptions solana.PublicKey
}

// Provider derives all provider-keyed addresses at once.
func (a Addresses) Provider(provider solana.PublicKey) (ProviderAddresses, error) {
	out := ProviderAddresses{Provider: provider}
	targets := []struct {
		dst  *solana.PublicKey
		seed Seed
		keys []solana.PublicKey
	}{
		{&out.State, SeedState, nil},
		{&out.QualityInfo, SeedQuality, []solana.PublicKey{provider}},
		{&out.SubscribersList, SeedSubscribers, []solana.PublicKey{provider}},
		{&out.SubscriptionRequests, SeedSubscriptionRequests, []solana.PublicKey{provider}},
		{&out.DataProviderFee, SeedDataProviderFee, []solana.PublicKey{provider}},
		{&out.AgentRegistration, SeedAgentRegistration, []solana.PublicKey{provider}},
	}
	for _, t := range targets {
		addr, err := a.derive(t.seed, t.keys...)
		if err != nil {
			return ProviderAddresses{}, err
		}
		*t.dst = addr
	}
	return out, nil
}

// Pair derives every address used by subscription instructions between
// subscriber and provider.
func (a Addresses) Pair(subscriber, provider solana.PublicKey) (PairAddresses, error) {
	p, err := a.Provider(provider)
	if err != nil {
		return PairAddresses{}, err
	}
	sub, err := a.Subscription(subscriber, provider)
	if err != nil {
		return PairAddresses{}, err
	}
	my, err := a.MySubscriptions(subscriber)
	if err != nil {
		return PairAddresses{}, err
	}
	return PairAddresses{
		ProviderAddresses: p,
		Subscriber:        subscriber,
		Subscription:      sub,
		MySubscriptions:   my,
	}, nil
}

// TokenAccount returns the associated token account of wallet for mint.
func TokenAccount(wallet, mint solana.PublicKey) (solana.PublicKey, error) {
	addr, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive token account: %w", err)
	}
	return addr, nil
}
