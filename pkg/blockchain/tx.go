package blockchain

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"go.uber.org/zap"
)

// GetTransactOpts creates a transactor bound to the given chainID and ECDSA key.
func GetTransactOpts(chainID *big.Int, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	if pk == nil {
		return nil, ErrPrivateKeyRequired
	}
	opts, err := bind.NewKeyedTransactorWithChainID(pk, chainID)
	if err != nil {
		zap.L().Error("failed to create transactor", zap.Error(err))
		return nil, err
	}
	return opts, nil
}

// GetTransactOpts creates a transactor for pk on the client's chain.
func (eth *EVMClient) GetTransactOpts(ctx context.Context, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	if pk == nil {
		return nil, ErrPrivateKeyRequired
	}
	chainID := eth.ChainID
	if chainID == nil {
		var err error
		chainID, err = eth.Backend.ChainID(ctx)
		if err != nil {
			zap.L().Error("failed to get chain ID", zap.Error(err))
			return nil, err
		}
	}
	return GetTransactOpts(chainID, pk)
}
