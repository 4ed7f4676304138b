package cli

import (
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

func parsePublicKey(what, s string) (solana.PublicKey, error) {
	pk, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s %q: %w", what, s, err)
	}
	return pk, nil
}

func parseSignature(s string) (solana.Signature, error) {
	sig, err := solana.SignatureFromBase58(s)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("invalid signature %q: %w", s, err)
	}
	return sig, nil
}

func parseAddress(what, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid %s address %q", what, s)
	}
	return common.HexToAddress(s), nil
}

func parseScore(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil || v > 100 {
		return 0, fmt.Errorf("quality score must be between 0 and 100, got %q", s)
	}
	return uint8(v), nil
}
