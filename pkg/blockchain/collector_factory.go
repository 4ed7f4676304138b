package blockchain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
)

// ErrCollectorEventMissing is returned by CreateCollector when the receipt
// carries no CollectorCreated event.
var ErrCollectorEventMissing = errors.New("CollectorCreated event not found in receipt")

// CollectorFactory deploys collectors and tracks their reputation.
type CollectorFactory struct {
	*contract
}

// CollectorInfo is one entry of ListCollectorsByValidation.
type CollectorInfo struct {
	CollectorAddress common.Address
	CollectorOwner   common.Address
	Timestamp        *big.Int
	Validity         bool
}

// CollectorCreated is the event emitted by createCollector.
type CollectorCreated struct {
	Collector common.Address
	Owner     common.Address
}

// NewCollectorFactory binds the collector factory at address.
func NewCollectorFactory(address common.Address, backend Backend, opts *bind.TransactOpts, timeouts config.Timeouts) *CollectorFactory {
	return &CollectorFactory{newContract("CollectorFactory", address, collectorFactoryABI, backend, opts, timeouts)}
}

// CreateCollector deploys a collector for the NFT at nft with the given
// fees, in wei, and returns its address.
func (f *CollectorFactory) CreateCollector(ctx context.Context, nft common.Address, feePerDay, collectorFee *big.Int) (common.Address, error) {
	receipt, err := f.transact(ctx, nil, "createCollector", nft, feePerDay, collectorFee)
	if err != nil {
		return common.Address{}, err
	}
	id := f.abi.Events["CollectorCreated"].ID
	for _, l := range receipt.Logs {
		if l == nil || len(l.Topics) == 0 || l.Topics[0] != id || l.Address != f.address {
			continue
		}
		var ev CollectorCreated
		if err := f.bound.UnpackLog(&ev, "CollectorCreated", *l); err != nil {
			return common.Address{}, fmt.Errorf("failed to decode CollectorCreated: %w", err)
		}
		return ev.Collector, nil
	}
	return common.Address{}, fmt.Errorf("%s: %w", receipt.TxHash, ErrCollectorEventMissing)
}

// ListCollectorsByValidation returns the collectors whose validity equals
// valid.
func (f *CollectorFactory) ListCollectorsByValidation(ctx context.Context, valid bool) ([]CollectorInfo, error) {
	out, err := f.call(ctx, "listCollectorsByValidation", valid)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new([]CollectorInfo)).(*[]CollectorInfo), nil
}

// HandleCollectorCreator grants or revokes the collector creator role.
func (f *CollectorFactory) HandleCollectorCreator(ctx context.Context, creator common.Address, active bool) (*types.Receipt, error) {
	return f.transact(ctx, nil, "handleCollectorCreator", creator, active)
}

// HandleReputationProvider grants or revokes the reputation provider role.
func (f *CollectorFactory) HandleReputationProvider(ctx context.Context, provider common.Address, active bool) (*types.Receipt, error) {
	return f.transact(ctx, nil, "handleReputationProvider", provider, active)
}

// HandleCollectorValidity marks collector valid or invalid.
func (f *CollectorFactory) HandleCollectorValidity(ctx context.Context, collector common.Address, valid bool) (*types.Receipt, error) {
	return f.transact(ctx, nil, "handleCollectorValidity", collector, valid)
}

// GetReputationScore returns the score of provider at collector.
func (f *CollectorFactory) GetReputationScore(ctx context.Context, collector, provider common.Address) (uint8, error) {
	out, err := f.call(ctx, "getReputationScore", collector, provider)
	if err != nil {
		return 0, err
	}
	score, ok := out[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("unexpected getReputationScore result %T", out[0])
	}
	return score, nil
}

// RequestReputation asks collector to rate provider.
func (f *CollectorFactory) RequestReputation(ctx context.Context, collector, provider common.Address) (*types.Receipt, error) {
	return f.transact(ctx, nil, "requestReputation", collector, provider)
}

// StoreReputationScore records score (0..100) for provider at collector.
func (f *CollectorFactory) StoreReputationScore(ctx context.Context, collector, provider common.Address, score uint8) (*types.Receipt, error) {
	if score > 100 {
		return nil, ErrScoreOutOfRange
	}
	return f.transact(ctx, nil, "storeReputationScore", collector, provider, score)
}
