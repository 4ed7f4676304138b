package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/internal/metrics"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/wallet"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"
)

// Client wraps the subscription manager program. It is safe for concurrent
// use; all state is read-only after construction.
type Client struct {
	rpc       RPCClient
	ws        *ws.Client
	confirmer confirmer
	signer    *wallet.Signer
	metrics   *metrics.Metrics
	now       func() time.Time

	addrs         program.Addresses
	nftMint       solana.PublicKey
	fxnMint       solana.PublicKey
	commitment    rpc.CommitmentType
	skipPreflight bool
	feeDecimals   int32
	fanOutLimit   int
	timeouts      config.Timeouts
}

// Option customizes a Client.
type Option func(*Client)

// WithSigner sets the keypair used for write operations. Without it every
// write fails with ErrWalletNotConnected.
func WithSigner(s *wallet.Signer) Option {
	return func(c *Client) { c.signer = s }
}

// WithMetrics reports instruction outcomes and RPC latency to m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithClock replaces time.Now for expiry and status computations.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithWebsocket confirms transactions with signatureSubscribe on wsClient
// instead of polling signature statuses. The Client takes ownership and
// closes it in Close.
func WithWebsocket(wsClient *ws.Client) Option {
	return func(c *Client) { c.ws = wsClient }
}

// NewClient builds a Client over an existing RPC connection. cfg must have
// been validated.
func NewClient(cfg config.Config, rpcClient RPCClient, opts ...Option) (*Client, error) {
	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program address: %w", err)
	}
	nftMint, err := solana.PublicKeyFromBase58(cfg.NFTTokenAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid NFT token address: %w", err)
	}
	fxnMint, err := solana.PublicKeyFromBase58(cfg.FXNMint)
	if err != nil {
		return nil, fmt.Errorf("invalid FXN mint address: %w", err)
	}

	c := &Client{
		rpc:           rpcClient,
		now:           time.Now,
		addrs:         program.NewAddresses(programID),
		nftMint:       nftMint,
		fxnMint:       fxnMint,
		commitment:    rpc.CommitmentType(cfg.Commitment),
		skipPreflight: cfg.SkipPreflight,
		feeDecimals:   cfg.Decimals(),
		fanOutLimit:   cfg.FanOutLimit,
		timeouts:      cfg.Timeouts.WithDefaults(),
	}
	if c.commitment == "" {
		c.commitment = rpc.CommitmentConfirmed
	}
	if c.fanOutLimit <= 0 {
		c.fanOutLimit = config.DefaultFanOutLimit
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.ws != nil {
		c.confirmer = &wsConfirmer{client: c.ws, commitment: c.commitment}
	} else {
		c.confirmer = &pollConfirmer{rpc: c.rpc, commitment: c.commitment, interval: c.timeouts.ConfirmPoll}
	}
	return c, nil
}

// Dial connects to cfg.RPCAddr, and to cfg.WSAddr when cfg.UseWebsocket is
// set, and builds a Client.
func Dial(ctx context.Context, cfg config.Config, opts ...Option) (*Client, error) {
	rpcClient := rpc.New(cfg.RPCAddr)

	if cfg.UseWebsocket && cfg.WSAddr != "" {
		dialCtx, cancel := withTimeout(ctx, cfg.Timeouts.WithDefaults().Dial)
		defer cancel()

		wsClient, err := ws.Connect(dialCtx, cfg.WSAddr)
		if err != nil {
			zap.L().Error("Failed to connect websocket", zap.String("addr", cfg.WSAddr), zap.Error(err))
			return nil, fmt.Errorf("failed to connect websocket: %w", err)
		}
		opts = append(opts, WithWebsocket(wsClient))
	}

	c, err := NewClient(cfg, rpcClient, opts...)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		zap.L().Debug("subscription client ready",
			zap.String("rpc", cfg.RPCAddr),
			zap.Stringer("program", c.addrs.ProgramID),
			zap.Bool("websocket", c.ws != nil))
	}
	return c, nil
}

// ProgramID returns the subscription manager program address.
func (c *Client) ProgramID() solana.PublicKey {
	return c.addrs.ProgramID
}

// Addresses returns the address deriver bound to the program.
func (c *Client) Addresses() program.Addresses {
	return c.addrs
}

// PublicKey returns the signer's public key, or the zero key when no signer
// is configured.
func (c *Client) PublicKey() solana.PublicKey {
	if c.signer == nil {
		return solana.PublicKey{}
	}
	return c.signer.PublicKey()
}

// Close releases the websocket connection, if any.
func (c *Client) Close() {
	if c.ws != nil {
		c.ws.Close()
	}
}

func (c *Client) requireSigner() (solana.PublicKey, error) {
	if c.signer == nil {
		return solana.PublicKey{}, ErrWalletNotConnected
	}
	return c.signer.PublicKey(), nil
}
