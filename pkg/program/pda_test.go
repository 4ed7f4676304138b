package program

import (
	"testing"

	"github.com/gagliardetto/solana-go"
)

var (
	testProgramID  = solana.MustPublicKeyFromBase58("AnPhQYFcJEPBG2JTrvaNne85rXufC1Q97bu29YaWvKDs")
	testSubscriber = solana.MustPublicKeyFromBase58("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")
	testProvider   = solana.MustPublicKeyFromBase58("3sH789kj7yAtmuJKJQqKnxdWd9Q28qfN1DzkeFZd7ty7")
)

// TestDerive_Deterministic verifies that repeated derivations yield the same address.
func TestDerive_Deterministic(t *testing.T) {
	first, bump1, err := Derive(testProgramID, SeedSubscription, testSubscriber, testProvider)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, bump2, err := Derive(testProgramID, SeedSubscription, testSubscriber, testProvider)
		if err != nil {
			t.Fatalf("Derive: %v", err)
		}
		if !again.Equals(first) || bump1 != bump2 {
			t.Fatalf("derivation not deterministic: %s/%d vs %s/%d", first, bump1, again, bump2)
		}
	}
}

// TestDerive_MatchesFindProgramAddress verifies the seed layout: the seed
// string followed by the raw key bytes, in order.
func TestDerive_MatchesFindProgramAddress(t *testing.T) {
	want, _, err := solana.FindProgramAddress([][]byte{
		[]byte("subscription"),
		testSubscriber.Bytes(),
		testProvider.Bytes(),
	}, testProgramID)
	if err != nil {
		t.Fatalf("FindProgramAddress: %v", err)
	}
	got, err := NewAddresses(testProgramID).Subscription(testSubscriber, testProvider)
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if !got.Equals(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}

// TestDerive_KeyOrderMatters verifies that swapping participants targets a
// different account.
func TestDerive_KeyOrderMatters(t *testing.T) {
	a := NewAddresses(testProgramID)
	ab, err := a.Subscription(testSubscriber, testProvider)
	if err != nil {
		t.Fatal(err)
	}
	ba, err := a.Subscription(testProvider, testSubscriber)
	if err != nil {
		t.Fatal(err)
	}
	if ab.Equals(ba) {
		t.Fatal("expected different addresses for swapped keys")
	}
}

func TestAddresses_DistinctPerSeed(t *testing.T) {
	p, err := NewAddresses(testProgramID).Provider(testProvider)
	if err != nil {
		t.Fatalf("Provider: %v", err)
	}
	seen := map[solana.PublicKey]string{}
	for name, k := range map[string]solana.PublicKey{
		"state":    p.State,
		"quality":  p.QualityInfo,
		"subs":     p.SubscribersList,
		"requests": p.SubscriptionRequests,
		"fee":      p.DataProviderFee,
		"agent":    p.AgentRegistration,
	} {
		if other, dup := seen[k]; dup {
			t.Fatalf("%s and %s derive the same address", name, other)
		}
		seen[k] = name
	}
}

// TestAddresses_PairMatchesHelpers verifies that the grouped derivation and
// the per-account helpers agree.
func TestAddresses_PairMatchesHelpers(t *testing.T) {
	a := NewAddresses(testProgramID)
	pair, err := a.Pair(testSubscriber, testProvider)
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}

	checks := []struct {
		name string
		got  solana.PublicKey
		fn   func() (solana.PublicKey, error)
	}{
		{"state", pair.State, a.State},
		{"subscription", pair.Subscription, func() (solana.PublicKey, error) { return a.Subscription(testSubscriber, testProvider) }},
		{"my_subscriptions", pair.MySubscriptions, func() (solana.PublicKey, error) { return a.MySubscriptions(testSubscriber) }},
		{"subscribers", pair.SubscribersList, func() (solana.PublicKey, error) { return a.SubscribersList(testProvider) }},
		{"quality", pair.QualityInfo, func() (solana.PublicKey, error) { return a.QualityInfo(testProvider) }},
		{"requests", pair.SubscriptionRequests, func() (solana.PublicKey, error) { return a.SubscriptionRequests(testProvider) }},
		{"fee", pair.DataProviderFee, func() (solana.PublicKey, error) { return a.DataProviderFee(testProvider) }},
		{"agent", pair.AgentRegistration, func() (solana.PublicKey, error) { return a.AgentRegistration(testProvider) }},
	}
	for _, c := range checks {
		want, err := c.fn()
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !c.got.Equals(want) {
			t.Errorf("%s: got %s want %s", c.name, c.got, want)
		}
	}
	if !pair.Subscriber.Equals(testSubscriber) || !pair.Provider.Equals(testProvider) {
		t.Fatal("participants not recorded")
	}
}

func TestAddresses_DependOnProgram(t *testing.T) {
	other := solana.MustPublicKeyFromBase58("7grtCnm6TmUiB4a6b4roSiVzZCQ5agSz9aj8aYJiWpKE")
	s1, err := NewAddresses(testProgramID).State()
	if err != nil {
		t.Fatal(err)
	}
	s2, err := NewAddresses(other).State()
	if err != nil {
		t.Fatal(err)
	}
	if s1.Equals(s2) {
		t.Fatal("state address must depend on the program id")
	}
}

func TestTokenAccount(t *testing.T) {
	mint := solana.MustPublicKeyFromBase58("34dcPojKodMA2GkH2E9jjNi3gheweipGDaUAgoX73dK8")
	got, err := TokenAccount(testProvider, mint)
	if err != nil {
		t.Fatalf("TokenAccount: %v", err)
	}
	want, _, err := solana.FindAssociatedTokenAddress(testProvider, mint)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equals(want) {
		t.Fatalf("got %s want %s", got, want)
	}
}
