package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"go.uber.org/zap"
)

// EVMClient holds a chain connection and the contract clients of the
// configured addresses. Contracts without a configured address are nil.
type EVMClient struct {
	Client              *ethclient.Client
	Backend             Backend
	ChainID             *big.Int
	SubscriptionManager *SubscriptionManager
	Collector           *Collector
	CollectorFactory    *CollectorFactory

	key  *ecdsa.PrivateKey
	opts *bind.TransactOpts
}

// InitEvm dials cfg.RPCAddr and binds the configured contracts.
func InitEvm(ctx context.Context, cfg config.EVM, timeouts config.Timeouts) (*EVMClient, error) {
	timeouts = timeouts.WithDefaults()
	dialCtx, cancel := withTimeout(ctx, timeouts.Dial)
	defer cancel()

	client, err := ethclient.DialContext(dialCtx, cfg.RPCAddr)
	if err != nil {
		zap.L().Error("Failed to ethdial", zap.String("addr", cfg.RPCAddr), zap.Error(err))
		return nil, fmt.Errorf("failed to dial EVM endpoint: %w", err)
	}

	eth, err := NewEVMClient(dialCtx, client, cfg, timeouts)
	if err != nil {
		client.Close()
		return nil, err
	}
	eth.Client = client
	return eth, nil
}

// NewEVMClient binds the configured contracts on backend. The chain ID is
// taken from cfg.ChainID, or queried when it is zero.
func NewEVMClient(ctx context.Context, backend Backend, cfg config.EVM, timeouts config.Timeouts) (*EVMClient, error) {
	eth := &EVMClient{Backend: backend}

	if cfg.ChainID != 0 {
		eth.ChainID = big.NewInt(cfg.ChainID)
	} else {
		chainID, err := backend.ChainID(ctx)
		if err != nil {
			zap.L().Error("Failed to get chain ID", zap.Error(err))
			return nil, fmt.Errorf("failed to get chain ID: %w", err)
		}
		eth.ChainID = chainID
	}

	if cfg.PrivateKey != "" {
		_, key, err := ParsePrivateKeyECDSA(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("invalid EVM private key: %w", err)
		}
		opts, err := GetTransactOpts(eth.ChainID, key)
		if err != nil {
			return nil, err
		}
		eth.key = key
		eth.opts = opts
	}

	if cfg.SubscriptionManagerAddr != "" {
		eth.SubscriptionManager = NewSubscriptionManager(common.HexToAddress(cfg.SubscriptionManagerAddr), backend, eth.opts, timeouts)
	}
	if cfg.CollectorAddr != "" {
		eth.Collector = NewCollector(common.HexToAddress(cfg.CollectorAddr), backend, eth.opts, timeouts)
	}
	if cfg.CollectorFactoryAddr != "" {
		eth.CollectorFactory = NewCollectorFactory(common.HexToAddress(cfg.CollectorFactoryAddr), backend, eth.opts, timeouts)
	}
	return eth, nil
}

// Address returns the address of the configured key, or the zero address.
func (eth *EVMClient) Address() common.Address {
	if addr := GetAddressFromPrivateKeyECDSA(eth.key); addr != nil {
		return *addr
	}
	return common.Address{}
}

// GetCurrentBlockNumber returns the latest block number.
func (eth *EVMClient) GetCurrentBlockNumber(ctx context.Context) (*big.Int, error) {
	header, err := eth.Backend.HeaderByNumber(ctx, nil)
	if err != nil {
		zap.L().Error("failed to get last block number", zap.Error(err))
		return nil, err
	}
	return header.Number, nil
}

// RequireSubscriptionManager returns the subscription manager client or
// ErrContractNotConfigured.
func (eth *EVMClient) RequireSubscriptionManager() (*SubscriptionManager, error) {
	if eth.SubscriptionManager == nil {
		return nil, fmt.Errorf("subscription manager: %w", ErrContractNotConfigured)
	}
	return eth.SubscriptionManager, nil
}

// RequireCollector returns the collector client or ErrContractNotConfigured.
func (eth *EVMClient) RequireCollector() (*Collector, error) {
	if eth.Collector == nil {
		return nil, fmt.Errorf("collector: %w", ErrContractNotConfigured)
	}
	return eth.Collector, nil
}

// RequireCollectorFactory returns the collector factory client or
// ErrContractNotConfigured.
func (eth *EVMClient) RequireCollectorFactory() (*CollectorFactory, error) {
	if eth.CollectorFactory == nil {
		return nil, fmt.Errorf("collector factory: %w", ErrContractNotConfigured)
	}
	return eth.CollectorFactory, nil
}

// Close closes the dialed connection, if any.
func (eth *EVMClient) Close() {
	if eth.Client != nil {
		eth.Client.Close()
	}
}
