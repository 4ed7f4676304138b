package blockchain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EtherDecimals is the number of decimals between ether and wei.
const EtherDecimals = 18

// GetAddressFromPrivateKeyECDSA derives the Ethereum address from the given
// ECDSA private key. It returns nil if the key is nil.
func GetAddressFromPrivateKeyECDSA(privateKeyECDSA *ecdsa.PrivateKey) *common.Address {
	if privateKeyECDSA == nil {
		return nil
	}
	publicKey, ok := privateKeyECDSA.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil
	}
	addr := crypto.PubkeyToAddress(*publicKey)
	return &addr
}

// ParsePrivateKeyECDSA parses a hex-encoded ECDSA private key, with or
// without a 0x prefix, and returns its address together with the key.
func ParsePrivateKeyECDSA(privateKey string) (common.Address, *ecdsa.PrivateKey, error) {
	privateKey = strings.TrimPrefix(strings.TrimSpace(privateKey), "0x")
	if privateKey == "" {
		return common.Address{}, nil, ErrPrivateKeyRequired
	}
	privateKeyECDSA, err := crypto.HexToECDSA(privateKey)
	if err != nil {
		return common.Address{}, nil, err
	}

	addr := GetAddressFromPrivateKeyECDSA(privateKeyECDSA)
	if addr == nil {
		return common.Address{}, nil, errors.New("failed to get public key")
	}
	return *addr, privateKeyECDSA, nil
}

var weiPerEther = decimal.New(1, EtherDecimals)

// EthToWei converts an ether amount to wei. Supported input types are
// string, float64, int64, decimal.Decimal and *decimal.Decimal. Fractions
// of a wei are truncated.
func EthToWei(amount any) (*big.Int, error) {
	var d decimal.Decimal
	switch v := amount.(type) {
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			zap.L().Error("Failed to convert string to decimal", zap.Error(err))
			return nil, err
		}
		d = parsed
	case float64:
		d = decimal.NewFromFloat(v)
	case int64:
		d = decimal.NewFromInt(v)
	case decimal.Decimal:
		d = v
	case *decimal.Decimal:
		if v == nil {
			return nil, errors.New("nil amount")
		}
		d = *v
	default:
		return nil, fmt.Errorf("unsupported amount type %T", amount)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative: %s", d)
	}
	return d.Mul(weiPerEther).BigInt(), nil
}

// WeiToEth converts a wei amount to ether. Supported input types are
// string, *big.Int and int; anything else yields decimal.Zero.
func WeiToEth(amount any) decimal.Decimal {
	var wei *big.Int
	switch v := amount.(type) {
	case string:
		parsed, ok := new(big.Int).SetString(v, 10)
		if !ok {
			zap.L().Error("Failed to parse wei amount", zap.String("amount", v))
			return decimal.Zero
		}
		wei = parsed
	case *big.Int:
		if v == nil {
			return decimal.Zero
		}
		wei = v
	case int:
		wei = big.NewInt(int64(v))
	default:
		zap.L().Error("Unsupported type", zap.String("type", fmt.Sprintf("%T", amount)))
		return decimal.Zero
	}
	return decimal.NewFromBigInt(wei, -EtherDecimals)
}
