package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fxn.yaml")
	doc := `network: mainnet
commitment: finalized
fan_out_limit: 4
debug: true
timeouts:
  chain_read: 3s
evm:
  rpc_addr: http://127.0.0.1:8545
  subscription_manager_addr: "0x00000000000000000000000000000000000000aa"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, Mainnet, cfg.Network)
	assert.Equal(t, Mainnet.RPCEndpoint, cfg.RPCAddr)
	assert.Equal(t, CommitmentFinalized, cfg.Commitment)
	assert.Equal(t, 4, cfg.FanOutLimit)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 3*time.Second, cfg.Timeouts.ChainRead)
	assert.True(t, cfg.EVM.Enabled())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FXN_COMMITMENT=processed\n"), 0o600))

	t.Setenv(EnvNetwork, "testnet")
	t.Setenv(EnvRPCAddr, "https://rpc.example")
	t.Setenv(EnvTimeout, "45s")
	t.Setenv(EnvDebug, "true")

	cfg, err := FromEnv(envFile)
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv(EnvCommitment) })

	assert.Equal(t, Testnet, cfg.Network)
	assert.Equal(t, "https://rpc.example", cfg.RPCAddr)
	assert.Equal(t, CommitmentProcessed, cfg.Commitment)
	assert.Equal(t, 45*time.Second, cfg.Timeouts.ChainSubmit)
	assert.True(t, cfg.Debug)
}

func TestFromEnv_MissingDotenvIgnored(t *testing.T) {
	t.Setenv(EnvNetwork, "")
	_, err := FromEnv(filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
}

func TestApplyEnv_Invalid(t *testing.T) {
	t.Setenv(EnvNetwork, "moonnet")
	require.Error(t, (&Config{}).ApplyEnv())

	t.Setenv(EnvNetwork, "")
	t.Setenv(EnvTimeout, "soon")
	require.Error(t, (&Config{}).ApplyEnv())
}
