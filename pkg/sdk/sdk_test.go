package sdk

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/internal/testutil/solanafake"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/subscription"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/wallet"
	"github.com/gagliardetto/solana-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ReadOnly(t *testing.T) {
	fake := solanafake.New()
	core, err := New(context.Background(), config.Config{}, WithRPCClient(fake))
	require.NoError(t, err)
	defer core.Close()

	assert.Nil(t, core.Signer())
	assert.Equal(t, config.Devnet.Name, core.Config().Network.Name)
	assert.Equal(t, config.Devnet.ProgramID, core.ProgramID().String())
	assert.Same(t, core.Client, core.Subscriptions())

	_, err = core.EVM()
	assert.ErrorIs(t, err, ErrEVMDisabled)

	_, err = core.CreateSubscription(context.Background(), model.SubscribeParams{DataProvider: solana.NewWallet().PublicKey(), DurationInDays: 1})
	assert.ErrorIs(t, err, subscription.ErrWalletNotConnected)
	assert.Zero(t, fake.Calls("sendTransaction"))
}

func TestNew_KeypairFile(t *testing.T) {
	signer, err := wallet.Generate()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "id.json")
	require.NoError(t, signer.SaveKeygenFile(path))

	core, err := New(context.Background(), config.Config{KeypairPath: path}, WithRPCClient(solanafake.New()))
	require.NoError(t, err)
	require.NotNil(t, core.Signer())
	assert.True(t, core.PublicKey().Equals(signer.PublicKey()))
}

func TestNew_Base58KeyWins(t *testing.T) {
	fromKey, err := wallet.Generate()
	require.NoError(t, err)

	core, err := New(context.Background(), config.Config{
		PrivateKey:  fromKey.Base58(),
		KeypairPath: filepath.Join(t.TempDir(), "missing.json"),
	}, WithRPCClient(solanafake.New()))
	require.NoError(t, err)
	assert.True(t, core.PublicKey().Equals(fromKey.PublicKey()))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"bad commitment", config.Config{Commitment: "recent"}},
		{"bad program", config.Config{ProgramID: "not-base58-0OIl"}},
		{"bad key", config.Config{PrivateKey: "abc"}},
		{"missing keypair", config.Config{KeypairPath: "/nonexistent/id.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), tt.cfg, WithRPCClient(solanafake.New()))
			require.Error(t, err)
		})
	}
}

func TestNew_SignerOverrideAndMetrics(t *testing.T) {
	signer, err := wallet.Generate()
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	fake := solanafake.New()

	cfg := config.Config{Timeouts: config.Timeouts{ConfirmPoll: time.Millisecond}}
	core, err := New(context.Background(), cfg, WithRPCClient(fake), WithSigner(signer), WithRegisterer(reg))
	require.NoError(t, err)
	assert.Same(t, signer, core.Signer())

	_, err = core.SetFeePerDay(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"set_fee_per_day"}, fake.InstructionNames())

	_, err = core.GetState(context.Background())
	assert.ErrorIs(t, err, subscription.ErrAccountNotFound)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["fxn_instructions_total"])
	assert.True(t, names["fxn_rpc_duration_seconds"])
}

func TestNew_EVMInitFailure(t *testing.T) {
	_, err := New(context.Background(), config.Config{
		EVM: config.EVM{RPCAddr: "http://127.0.0.1:1", PrivateKey: "0xzz", ChainID: 1},
	}, WithRPCClient(solanafake.New()))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrEVMDisabled))
}
