package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
)

// SubscriptionManager is the EVM subscription manager contract.
type SubscriptionManager struct {
	*contract
}

// SubscribeParams describes an EVM subscription. EndTime is a unix
// timestamp in seconds and Value the fee sent along, in wei.
type SubscribeParams struct {
	DataProvider common.Address
	Recipient    string
	EndTime      int64
	Value        *big.Int
}

// SubscriptionInfo is the stored subscription of a subscriber.
type SubscriptionInfo struct {
	Recipient string
	EndTime   *big.Int
}

// NewSubscriptionManager binds the subscription manager at address. opts
// may be nil for a read-only client.
func NewSubscriptionManager(address common.Address, backend Backend, opts *bind.TransactOpts, timeouts config.Timeouts) *SubscriptionManager {
	return &SubscriptionManager{newContract("SubscriptionManager", address, subscriptionManagerABI, backend, opts, timeouts)}
}

// Subscribe subscribes the key's address to p.DataProvider, paying p.Value.
// Reverts with a known custom error surface as *ContractError.
func (s *SubscriptionManager) Subscribe(ctx context.Context, p SubscribeParams) (*types.Receipt, error) {
	return s.transact(ctx, p.Value, "subscribe", p.DataProvider, p.Recipient, big.NewInt(p.EndTime))
}

// CalculateFees returns feePerDay * days + collectorFee.
func (s *SubscriptionManager) CalculateFees(ctx context.Context, days int64) (*big.Int, error) {
	if days < 1 {
		return nil, ErrInvalidDuration
	}
	perDay, err := s.FeePerDay(ctx)
	if err != nil {
		return nil, err
	}
	collector, err := s.CollectorFee(ctx)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Mul(perDay, big.NewInt(days))
	return total.Add(total, collector), nil
}

// GetSubscribers returns the subscribers of provider.
func (s *SubscriptionManager) GetSubscribers(ctx context.Context, provider common.Address) ([]common.Address, error) {
	out, err := s.call(ctx, "getSubscribers", provider)
	if err != nil {
		return nil, err
	}
	subscribers, ok := out[0].([]common.Address)
	if !ok {
		return nil, fmt.Errorf("unexpected getSubscribers result %T", out[0])
	}
	return subscribers, nil
}

// FeePerDay returns the daily fee in wei.
func (s *SubscriptionManager) FeePerDay(ctx context.Context) (*big.Int, error) {
	return s.bigInt(ctx, "feePerDay")
}

// CollectorFee returns the flat collector fee in wei.
func (s *SubscriptionManager) CollectorFee(ctx context.Context) (*big.Int, error) {
	return s.bigInt(ctx, "collectorFee")
}

// Subscription returns the subscription of subscriber to provider.
func (s *SubscriptionManager) Subscription(ctx context.Context, provider, subscriber common.Address) (*SubscriptionInfo, error) {
	out, err := s.call(ctx, "subscriptions", provider, subscriber)
	if err != nil {
		return nil, err
	}
	if len(out) != 2 {
		return nil, fmt.Errorf("unexpected subscriptions result length %d", len(out))
	}
	endTime, ok1 := out[0].(*big.Int)
	recipient, ok2 := out[1].(string)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("unexpected subscriptions result %T, %T", out[0], out[1])
	}
	return &SubscriptionInfo{Recipient: recipient, EndTime: endTime}, nil
}

func (c *contract) bigInt(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	out, err := c.call(ctx, method, args...)
	if err != nil {
		return nil, err
	}
	v, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s result %T", method, out[0])
	}
	return v, nil
}
