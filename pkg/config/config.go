// Package config defines the runtime configuration for the SDK, including
// the Solana network profile, RPC endpoints, program and mint addresses,
// signing keys, EVM contract settings, debug mode and operation timeouts.
// It also provides validation and defaulting helpers.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
)

// Commitment levels accepted by Config.Commitment.
const (
	CommitmentProcessed = "processed"
	CommitmentConfirmed = "confirmed"
	CommitmentFinalized = "finalized"
)

const (
	// DefaultFeeDecimals is the number of base-unit decimals used to scale
	// floating-point fees before they are sent on chain.
	DefaultFeeDecimals int32 = 9
	// DefaultFanOutLimit bounds the number of concurrent account reads
	// issued by listing operations.
	DefaultFanOutLimit = 16
)

// Config holds all SDK settings required to initialize the Solana and EVM
// clients. Use Validate to fill implicit defaults and to check addresses.
//
// A Config is built once at process start and handed to sdk.New; the SDK
// keeps its own validated copy, so later changes by the caller have no effect.
type Config struct {
	// Network selects the deployment profile (program, mints, endpoints).
	Network Network `json:"network" yaml:"network"`
	// RPCAddr overrides the profile's Solana JSON-RPC endpoint.
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr"`
	// WSAddr overrides the profile's Solana websocket endpoint. When set and
	// UseWebsocket is true, confirmations are awaited over a subscription.
	WSAddr string `json:"ws_addr" yaml:"ws_addr"`
	// UseWebsocket switches transaction confirmation from polling to
	// signatureSubscribe.
	UseWebsocket bool `json:"use_websocket" yaml:"use_websocket"`
	// ProgramID overrides the profile's subscription manager program address.
	ProgramID string `json:"program_id" yaml:"program_id"`
	// NFTTokenAddress overrides the profile's provider NFT mint.
	NFTTokenAddress string `json:"nft_token_address" yaml:"nft_token_address"`
	// FXNMint overrides the profile's payment token mint.
	FXNMint string `json:"fxn_mint" yaml:"fxn_mint"`
	// PrivateKey is the base58-encoded 64-byte Solana secret key used for
	// signed operations (optional for read-only usage).
	PrivateKey string `json:"private_key" yaml:"private_key"`
	// KeypairPath points to a solana-keygen JSON keypair file. PrivateKey
	// wins when both are set.
	KeypairPath string `json:"keypair_path" yaml:"keypair_path"`
	// Commitment is the confirmation depth used for reads and for waiting on
	// submitted transactions. Default: confirmed.
	Commitment string `json:"commitment" yaml:"commitment"`
	// SkipPreflight disables transaction simulation before submission.
	SkipPreflight bool `json:"skip_preflight" yaml:"skip_preflight"`
	// FeeDecimals is the scale applied to floating-point fees. Nil means 9;
	// an explicit 0 suits zero-decimal mints.
	FeeDecimals *int32 `json:"fee_decimals,omitempty" yaml:"fee_decimals,omitempty"`
	// FanOutLimit bounds concurrent reads in listing operations. Default: 16.
	FanOutLimit int `json:"fan_out_limit" yaml:"fan_out_limit"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts"`
	// EVM configures the secondary EVM contract client. Leave RPCAddr empty
	// to disable it.
	EVM EVM `json:"evm" yaml:"evm"`
}

// EVM holds the settings of the EVM subscription manager deployment.
type EVM struct {
	RPCAddr                 string `json:"rpc_addr" yaml:"rpc_addr"`
	ChainID                 int64  `json:"chain_id" yaml:"chain_id"`
	PrivateKey              string `json:"private_key" yaml:"private_key"`
	SubscriptionManagerAddr string `json:"subscription_manager_addr" yaml:"subscription_manager_addr"`
	CollectorAddr           string `json:"collector_addr" yaml:"collector_addr"`
	CollectorFactoryAddr    string `json:"collector_factory_addr" yaml:"collector_factory_addr"`
}

// Enabled reports whether an EVM endpoint is configured.
func (e EVM) Enabled() bool {
	return e.RPCAddr != ""
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial        time.Duration `json:"dial" yaml:"dial"`                 // websocket/EVM dial
	ChainRead   time.Duration `json:"chain_read" yaml:"chain_read"`     // account reads
	ChainSubmit time.Duration `json:"chain_submit" yaml:"chain_submit"` // blockhash + send
	ConfirmWait time.Duration `json:"confirm_wait" yaml:"confirm_wait"` // wait for commitment
	ConfirmPoll time.Duration `json:"confirm_poll" yaml:"confirm_poll"` // status poll interval
	ReceiptWait time.Duration `json:"receipt_wait" yaml:"receipt_wait"` // EVM receipt
}

// Validate normalizes the configuration by applying implicit defaults
// (network Devnet, endpoints and addresses from the profile, commitment
// "confirmed", fee decimals, fan-out limit) and verifies every address.
// It is idempotent.
func (c *Config) Validate() error {
	if c.Network.Name == "" {
		c.Network = Devnet
	} else if err := c.Network.fillFromProfile(); err != nil {
		return err
	}

	if c.RPCAddr == "" {
		c.RPCAddr = c.Network.RPCEndpoint
	}
	if c.WSAddr == "" {
		c.WSAddr = c.Network.WSEndpoint
	}
	if c.ProgramID == "" {
		c.ProgramID = c.Network.ProgramID
	}
	if c.NFTTokenAddress == "" {
		c.NFTTokenAddress = c.Network.NFTTokenAddress
	}
	if c.FXNMint == "" {
		c.FXNMint = c.Network.FXNMint
	}
	if c.Commitment == "" {
		c.Commitment = CommitmentConfirmed
	}
	if c.FeeDecimals == nil {
		d := DefaultFeeDecimals
		c.FeeDecimals = &d
	}
	if c.FanOutLimit <= 0 {
		c.FanOutLimit = DefaultFanOutLimit
	}

	if c.RPCAddr == "" {
		return errors.New("RPC address is required")
	}

	switch c.Commitment {
	case CommitmentProcessed, CommitmentConfirmed, CommitmentFinalized:
	default:
		return fmt.Errorf("unsupported commitment %q", c.Commitment)
	}

	if d := *c.FeeDecimals; d < 0 || d > 18 {
		return fmt.Errorf("fee decimals out of range: %d", d)
	}

	for _, a := range []struct{ name, value string }{
		{"program", c.ProgramID},
		{"NFT token", c.NFTTokenAddress},
		{"FXN mint", c.FXNMint},
	} {
		if err := ValidateAddress(a.value); err != nil {
			return fmt.Errorf("invalid %s address: %w", a.name, err)
		}
	}

	if c.EVM.Enabled() {
		if err := c.EVM.validate(); err != nil {
			return err
		}
	}

	return nil
}

// Decimals returns the fee scale, or DefaultFeeDecimals when unset.
func (c *Config) Decimals() int32 {
	if c.FeeDecimals == nil {
		return DefaultFeeDecimals
	}
	return *c.FeeDecimals
}

// FeeDecimalsOf returns a pointer to d for Config.FeeDecimals.
func FeeDecimalsOf(d int32) *int32 {
	return &d
}

func (e EVM) validate() error {
	for _, a := range []struct{ name, value string }{
		{"subscription manager", e.SubscriptionManagerAddr},
		{"collector", e.CollectorAddr},
		{"collector factory", e.CollectorFactoryAddr},
	} {
		if a.value == "" {
			continue
		}
		if !common.IsHexAddress(a.value) {
			return fmt.Errorf("invalid %s contract address %q", a.name, a.value)
		}
	}
	return nil
}

// ValidateAddress checks that s is a base58-encoded 32-byte public key.
func ValidateAddress(s string) error {
	if s == "" {
		return errors.New("address is empty")
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return fmt.Errorf("address %q is not base58: %w", s, err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("address %q decodes to %d bytes, want 32", s, len(raw))
	}
	return nil
}

// HasSigner reports whether a Solana signing key is configured.
func (c *Config) HasSigner() bool {
	return strings.TrimSpace(c.PrivateKey) != "" || strings.TrimSpace(c.KeypairPath) != ""
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:        5s
//	ChainRead:   12s
//	ChainSubmit: 30s
//	ConfirmWait: 90s
//	ConfirmPoll: 500ms
//	ReceiptWait: 90s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 30 * time.Second
	}
	if tt.ConfirmWait == 0 {
		tt.ConfirmWait = 90 * time.Second
	}
	if tt.ConfirmPoll == 0 {
		tt.ConfirmPoll = 500 * time.Millisecond
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	return tt
}
