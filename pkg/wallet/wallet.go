// Package wallet provides the Solana signing capability used by the SDK's
// write operations: loading a keypair from a base58 secret or from a
// solana-keygen JSON file, and generating new keypairs.
package wallet

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// ErrNoKey is returned by FromConfig when no key source is configured.
var ErrNoKey = errors.New("no signing key configured")

// Signer holds one Solana keypair.
type Signer struct {
	key solana.PrivateKey
}

// New wraps an existing private key. It fails when key is not a 64-byte
// ed25519 secret whose public half matches.
func New(key solana.PrivateKey) (*Signer, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("invalid private key length: expected %d, got %d", ed25519.PrivateKeySize, len(key))
	}
	derived := ed25519.NewKeyFromSeed(key[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], key[ed25519.SeedSize:]) {
		return nil, errors.New("invalid private key: public half does not match seed")
	}
	return &Signer{key: key}, nil
}

// FromBase58 parses a base58-encoded 64-byte secret key, the format printed
// by most Solana wallets.
func FromBase58(secret string) (*Signer, error) {
	raw, err := base58.Decode(strings.TrimSpace(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %w", err)
	}
	return New(solana.PrivateKey(raw))
}

// FromKeygenFile loads a keypair written by solana-keygen: a JSON array of
// the 64 secret key bytes.
func FromKeygenFile(path string) (*Signer, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair file: %w", err)
	}

	var raw []byte
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keypair file: %w", err)
	}
	return New(solana.PrivateKey(raw))
}

// Generate creates a fresh random keypair.
func Generate() (*Signer, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}
	return &Signer{key: key}, nil
}

// FromConfig resolves the signer from a base58 secret, falling back to a
// keypair file. It returns ErrNoKey when neither is set.
func FromConfig(privateKey, keypairPath string) (*Signer, error) {
	switch {
	case strings.TrimSpace(privateKey) != "":
		return FromBase58(privateKey)
	case strings.TrimSpace(keypairPath) != "":
		return FromKeygenFile(expandHome(keypairPath))
	default:
		return nil, ErrNoKey
	}
}

// PublicKey returns the public key of the signer.
func (s *Signer) PublicKey() solana.PublicKey {
	return s.key.PublicKey()
}

// PrivateKey returns the secret key.
func (s *Signer) PrivateKey() solana.PrivateKey {
	return s.key
}

// Base58 returns the secret key in base58.
func (s *Signer) Base58() string {
	return base58.Encode(s.key)
}

// SaveKeygenFile writes the keypair in solana-keygen format with owner-only
// permissions, creating parent directories as needed.
func (s *Signer) SaveKeygenFile(path string) error {
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create wallet directory: %w", err)
	}

	// encoding/json writes []byte as base64; keygen files are number arrays.
	ints := make([]int, len(s.key))
	for i, b := range s.key {
		ints[i] = int(b)
	}
	content, err := json.Marshal(ints)
	if err != nil {
		return fmt.Errorf("failed to marshal private key: %w", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write wallet file: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
