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

// Collector is the collector NFT contract.
type Collector struct {
	*contract
}

// NewCollector binds the collector NFT at address.
func NewCollector(address common.Address, backend Backend, opts *bind.TransactOpts, timeouts config.Timeouts) *Collector {
	return &Collector{newContract("Collector", address, collectorABI, backend, opts, timeouts)}
}

// SafeMint mints a collector token to to.
func (c *Collector) SafeMint(ctx context.Context, to common.Address) (*types.Receipt, error) {
	return c.transact(ctx, nil, "safeMint", to)
}

// BalanceOf returns the number of tokens held by owner.
func (c *Collector) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return c.bigInt(ctx, "balanceOf", owner)
}

// OwnerOf returns the owner of tokenID.
func (c *Collector) OwnerOf(ctx context.Context, tokenID *big.Int) (common.Address, error) {
	out, err := c.call(ctx, "ownerOf", tokenID)
	if err != nil {
		return common.Address{}, err
	}
	owner, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("unexpected ownerOf result %T", out[0])
	}
	return owner, nil
}
