package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"go.uber.org/zap"
)

// GasBufferPercent is added on top of every gas estimate.
const GasBufferPercent = 20

// WithGasBuffer returns gas increased by GasBufferPercent.
func WithGasBuffer(gas uint64) uint64 {
	return gas * (100 + GasBufferPercent) / 100
}

// Backend is the chain access used by the contract clients.
// *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
	ChainID(ctx context.Context) (*big.Int, error)
}

// contract is a bound contract with the transactor of the configured key.
type contract struct {
	name     string
	address  common.Address
	abi      abi.ABI
	bound    *bind.BoundContract
	backend  Backend
	opts     *bind.TransactOpts
	timeouts config.Timeouts
}

func newContract(name string, address common.Address, parsed abi.ABI, backend Backend, opts *bind.TransactOpts, timeouts config.Timeouts) *contract {
	return &contract{
		name:     name,
		address:  address,
		abi:      parsed,
		bound:    bind.NewBoundContract(address, parsed, backend, backend, backend),
		backend:  backend,
		opts:     opts,
		timeouts: timeouts.WithDefaults(),
	}
}

// Address returns the contract address.
func (c *contract) Address() common.Address {
	return c.address
}

func (c *contract) call(ctx context.Context, method string, args ...interface{}) ([]interface{}, error) {
	ctx, cancel := withTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	var out []interface{}
	if err := c.bound.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, fmt.Errorf("failed to call %s.%s: %w", c.name, method, DecodeContractError(err))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("failed to call %s.%s: empty result", c.name, method)
	}
	return out, nil
}

// transact estimates gas, applies the buffer, submits method and waits for
// the receipt. value may be nil.
func (c *contract) transact(ctx context.Context, value *big.Int, method string, args ...interface{}) (*types.Receipt, error) {
	if c.opts == nil {
		return nil, ErrPrivateKeyRequired
	}

	tx, err := c.submit(ctx, value, method, args...)
	if err != nil {
		zap.L().Error("Failed to send transaction",
			zap.String("contract", c.name),
			zap.String("method", method),
			zap.Error(err))
		return nil, err
	}

	wctx, cancel := withTimeout(ctx, c.timeouts.ReceiptWait)
	defer cancel()
	receipt, err := bind.WaitMined(wctx, c.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for %s: %w", tx.Hash(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, txFailed(tx.Hash())
	}
	zap.L().Debug("transaction mined",
		zap.String("contract", c.name),
		zap.String("method", method),
		zap.Stringer("tx", tx.Hash()),
		zap.Uint64("gas_used", receipt.GasUsed))
	return receipt, nil
}

func (c *contract) submit(ctx context.Context, value *big.Int, method string, args ...interface{}) (*types.Transaction, error) {
	ctx, cancel := withTimeout(ctx, c.timeouts.ChainSubmit)
	defer cancel()

	input, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s.%s: %w", c.name, method, err)
	}
	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{
		From:  c.opts.From,
		To:    &c.address,
		Value: value,
		Data:  input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas for %s.%s: %w", c.name, method, DecodeContractError(err))
	}

	opts := *c.opts
	opts.Context = ctx
	opts.Value = value
	opts.GasLimit = WithGasBuffer(gas)

	tx, err := c.bound.Transact(&opts, method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s.%s: %w", c.name, method, DecodeContractError(err))
	}
	return tx, nil
}

// withTimeout bounds ctx by d unless the caller already set a deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
