package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBase58_RoundTrip(t *testing.T) {
	gen, err := Generate()
	require.NoError(t, err)

	s, err := FromBase58(gen.Base58())
	require.NoError(t, err)
	assert.True(t, s.PublicKey().Equals(gen.PublicKey()))
	assert.Equal(t, gen.PrivateKey(), s.PrivateKey())
}

func TestFromBase58_Invalid(t *testing.T) {
	_, err := FromBase58("0OIl")
	require.Error(t, err)

	// a valid base58 public key is only 32 bytes
	_, err = FromBase58(solana.SystemProgramID.String())
	require.Error(t, err)
}

// TestNew_MismatchedHalves verifies that a secret whose public half was
// tampered with is rejected.
func TestNew_MismatchedHalves(t *testing.T) {
	gen, err := Generate()
	require.NoError(t, err)

	bad := append(solana.PrivateKey{}, gen.PrivateKey()...)
	bad[63] ^= 0xff
	_, err = New(bad)
	require.Error(t, err)
}

func TestKeygenFile_RoundTrip(t *testing.T) {
	gen, err := Generate()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "id.json")
	require.NoError(t, gen.SaveKeygenFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte('['), content[0])

	loaded, err := FromKeygenFile(path)
	require.NoError(t, err)
	assert.True(t, loaded.PublicKey().Equals(gen.PublicKey()))
}

func TestFromKeygenFile_Errors(t *testing.T) {
	_, err := FromKeygenFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "short.json")
	require.NoError(t, os.WriteFile(path, []byte("[1,2,3]"), 0o600))
	_, err = FromKeygenFile(path)
	require.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	_, err := FromConfig("", "")
	require.ErrorIs(t, err, ErrNoKey)

	gen, err := Generate()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, gen.SaveKeygenFile(path))

	fromFile, err := FromConfig("", path)
	require.NoError(t, err)
	assert.True(t, fromFile.PublicKey().Equals(gen.PublicKey()))

	other, err := Generate()
	require.NoError(t, err)
	fromSecret, err := FromConfig(other.Base58(), path)
	require.NoError(t, err)
	assert.True(t, fromSecret.PublicKey().Equals(other.PublicKey()), "base58 secret wins over file")
}
