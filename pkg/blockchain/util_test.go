package blockchain

import (
	"encoding/hex"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

func TestGetAddressFromPrivateKeyECDSA(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	addr := GetAddressFromPrivateKeyECDSA(priv)
	if addr == nil {
		t.Fatal("expected non-nil address")
	}
	want := crypto.PubkeyToAddress(priv.PublicKey)
	if *addr != want {
		t.Fatalf("unexpected address: got %s want %s", addr.Hex(), want.Hex())
	}

	if GetAddressFromPrivateKeyECDSA(nil) != nil {
		t.Fatal("expected nil for nil key")
	}
}

func TestParsePrivateKeyECDSA(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	hexKey := hex.EncodeToString(crypto.FromECDSA(priv))

	for _, input := range []string{hexKey, "0x" + hexKey, " " + hexKey + "\n"} {
		addr, parsedKey, err := ParsePrivateKeyECDSA(input)
		if err != nil {
			t.Fatalf("ParsePrivateKeyECDSA(%q): %v", input, err)
		}
		if addr != crypto.PubkeyToAddress(priv.PublicKey) {
			t.Fatalf("unexpected address: %s", addr.Hex())
		}
		if parsedKey.D.Cmp(priv.D) != 0 {
			t.Fatal("parsed key mismatch")
		}
	}

	if _, _, err := ParsePrivateKeyECDSA("zz"); err == nil {
		t.Fatal("expected error for invalid key")
	}
	if _, _, err := ParsePrivateKeyECDSA("0x"); !errors.Is(err, ErrPrivateKeyRequired) {
		t.Fatalf("expected ErrPrivateKeyRequired, got %v", err)
	}
}

func TestEthToWei(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{"1", "1000000000000000000"},
		{1.5, "1500000000000000000"},
		{int64(2), "2000000000000000000"},
		{decimal.NewFromFloat(0.25), "250000000000000000"},
		{"0.000000000000000001", "1"},
		{"0.0000000000000000019", "1"},
	}

	for _, tc := range tests {
		got, err := EthToWei(tc.input)
		if err != nil {
			t.Fatalf("EthToWei(%v) error: %v", tc.input, err)
		}
		if got.String() != tc.expected {
			t.Fatalf("EthToWei(%v) = %s, want %s", tc.input, got.String(), tc.expected)
		}
	}

	for _, bad := range []any{"not-a-number", "-1", 3, nil} {
		if _, err := EthToWei(bad); err == nil {
			t.Fatalf("expected error for %v", bad)
		}
	}
}

func TestWeiToEth(t *testing.T) {
	val := WeiToEth("1500000000000000000")
	if !val.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("WeiToEth mismatch: got %s, want 1.5", val)
	}

	bigVal := big.NewInt(2000000000000000000)
	if got := WeiToEth(bigVal); !got.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("WeiToEth(*big.Int) = %s, want 2", got)
	}
	if got := WeiToEth(1); got.String() != "0.000000000000000001" {
		t.Fatalf("WeiToEth(1) = %s", got)
	}
	if got := WeiToEth(1.0); !got.IsZero() {
		t.Fatalf("expected zero for unsupported type, got %s", got)
	}
}

func TestWithGasBuffer(t *testing.T) {
	if got := WithGasBuffer(100_000); got != 120_000 {
		t.Fatalf("WithGasBuffer(100000) = %d, want 120000", got)
	}
	if got := WithGasBuffer(0); got != 0 {
		t.Fatalf("WithGasBuffer(0) = %d", got)
	}
}
