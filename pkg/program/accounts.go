package program

import (
	"bytes"
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ErrDiscriminatorMismatch is returned when account data does not start
// with the discriminator of the requested account type.
var ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")

// State is the global program configuration.
type State struct {
	Owner           solana.PublicKey
	NftProgramID    solana.PublicKey
	PaymentSplToken solana.PublicKey
	FeePerDay       uint64
	CollectorFee    uint64
}

// Subscription is the record of one subscriber/provider pair.
type Subscription struct {
	EndTime   int64
	Recipient string
}

// SubscribersList indexes the subscribers of one provider.
type SubscribersList struct {
	Subscribers []solana.PublicKey
}

// MySubscriptions indexes the providers one subscriber is subscribed to.
type MySubscriptions struct {
	Providers []solana.PublicKey
}

// QualityRecord is one rating in a provider's quality history.
type QualityRecord struct {
	Provider solana.PublicKey
	Quality  uint8
}

// QualityInfo is the circular quality history of a provider.
type QualityInfo struct {
	Subscriber   solana.PublicKey
	Quality      uint8
	CurrentIndex uint8
	Qualities    []QualityRecord
}

// AgentRegistration is a provider's public profile.
type AgentRegistration struct {
	Address               solana.PublicKey
	Name                  string
	Description           string
	RestrictSubscriptions bool
	Capabilities          []string
}

// Request is one entry of SubscriptionRequests.
type Request struct {
	SubscriberPubkey solana.PublicKey
	Approved         bool
}

// SubscriptionRequests holds pending and approved requests of a
// restricted provider.
type SubscriptionRequests struct {
	Requests []Request
}

// IndexOf returns the position of subscriber's request, or -1.
func (r *SubscriptionRequests) IndexOf(subscriber solana.PublicKey) int {
	for i, req := range r.Requests {
		if req.SubscriberPubkey.Equals(subscriber) {
			return i
		}
	}
	return -1
}

// DataProviderFee is a provider's per-subscription fee in base units.
type DataProviderFee struct {
	Owner solana.PublicKey
	Fee   uint64
}

// Account is implemented by every decodable account type.
type Account interface {
	Discriminator() Discriminator
}

func (*State) Discriminator() Discriminator                { return AcctState }
func (*Subscription) Discriminator() Discriminator         { return AcctSubscription }
func (*SubscribersList) Discriminator() Discriminator      { return AcctSubscribersList }
func (*MySubscriptions) Discriminator() Discriminator      { return AcctMySubscriptions }
func (*QualityInfo) Discriminator() Discriminator          { return AcctQualityInfo }
func (*AgentRegistration) Discriminator() Discriminator    { return AcctAgentRegistration }
func (*SubscriptionRequests) Discriminator() Discriminator { return AcctSubscriptionRequests }
func (*DataProviderFee) Discriminator() Discriminator      { return AcctDataProviderFee }

// DecodeAccount checks the discriminator of data against dst and borsh
// decodes the remainder into dst. Trailing bytes (reallocated capacity)
// are ignored.
func DecodeAccount(data []byte, dst Account) error {
	disc := dst.Discriminator()
	if len(data) < len(disc) {
		return fmt.Errorf("account data too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:len(disc)], disc[:]) {
		return fmt.Errorf("%w: want %s, got %v", ErrDiscriminatorMismatch, disc, data[:len(disc)])
	}
	if err := bin.NewBorshDecoder(data[len(disc):]).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode %T: %w", dst, err)
	}
	return nil
}

// EncodeAccount serializes an account the way the program stores it.
func EncodeAccount(src Account) ([]byte, error) {
	buf := new(bytes.Buffer)
	disc := src.Discriminator()
	buf.Write(disc[:])
	if err := bin.NewBorshEncoder(buf).Encode(src); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", src, err)
	}
	return buf.Bytes(), nil
}

func decode[T any, P interface {
	*T
	Account
}](data []byte) (*T, error) {
	out := P(new(T))
	if err := DecodeAccount(data, out); err != nil {
		return nil, err
	}
	return (*T)(out), nil
}

// DecodeState decodes a State account.
func DecodeState(data []byte) (*State, error) {
	return decode[State](data)
}

// DecodeSubscription decodes a Subscription account.
func DecodeSubscription(data []byte) (*Subscription, error) {
	return decode[Subscription](data)
}

// DecodeSubscribersList decodes a SubscribersList account.
func DecodeSubscribersList(data []byte) (*SubscribersList, error) {
	return decode[SubscribersList](data)
}

// DecodeMySubscriptions decodes a MySubscriptions account.
func DecodeMySubscriptions(data []byte) (*MySubscriptions, error) {
	return decode[MySubscriptions](data)
}

// DecodeQualityInfo decodes a QualityInfo account.
func DecodeQualityInfo(data []byte) (*QualityInfo, error) {
	return decode[QualityInfo](data)
}

// DecodeAgentRegistration decodes an AgentRegistration account.
func DecodeAgentRegistration(data []byte) (*AgentRegistration, error) {
	return decode[AgentRegistration](data)
}

// DecodeSubscriptionRequests decodes a SubscriptionRequests account.
func DecodeSubscriptionRequests(data []byte) (*SubscriptionRequests, error) {
	return decode[SubscriptionRequests](data)
}

// DecodeDataProviderFee decodes a DataProviderFee account.
func DecodeDataProviderFee(data []byte) (*DataProviderFee, error) {
	return decode[DataProviderFee](data)
}
