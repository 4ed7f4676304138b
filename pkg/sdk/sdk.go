package sdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxn-protocol/fxn-sdk-go/internal/metrics"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/blockchain"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/subscription"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/wallet"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// FxnSDK is the public interface of an initialized SDK.
type FxnSDK interface {
	// Subscriptions returns the Solana subscription manager client.
	Subscriptions() *subscription.Client

	// EVM returns the EVM contract client, or an error when no EVM endpoint
	// is configured.
	EVM() (*blockchain.EVMClient, error)

	// Signer returns the Solana signer, or nil in read-only mode.
	Signer() *wallet.Signer

	// Close releases network connections.
	Close()
}

// ErrEVMDisabled is returned by EVM when Config.EVM has no endpoint.
var ErrEVMDisabled = errors.New("EVM client is not configured")

// logLevel backs the global logger so Config.Debug can raise verbosity.
var logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            logLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Core is the concrete SDK implementation. It embeds the subscription
// client, so its operations are available directly on Core.
type Core struct {
	*subscription.Client

	cfg     config.Config
	signer  *wallet.Signer
	evm     *blockchain.EVMClient
	metrics *metrics.Metrics
}

type options struct {
	rpc        subscription.RPCClient
	evmBackend blockchain.Backend
	registerer prometheus.Registerer
	signer     *wallet.Signer
}

// Option customizes New.
type Option func(*options)

// WithRPCClient uses rpcClient instead of dialing Config.RPCAddr.
func WithRPCClient(rpcClient subscription.RPCClient) Option {
	return func(o *options) { o.rpc = rpcClient }
}

// WithEVMBackend uses backend instead of dialing Config.EVM.RPCAddr.
func WithEVMBackend(backend blockchain.Backend) Option {
	return func(o *options) { o.evmBackend = backend }
}

// WithRegisterer registers the SDK metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithSigner overrides the key configured in Config.
func WithSigner(s *wallet.Signer) Option {
	return func(o *options) { o.signer = s }
}

// New validates cfg, loads the signer and builds the Solana client and,
// when configured, the EVM client. The SDK keeps its own copy of cfg.
// Without a configured key the SDK is read-only.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*Core, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()
	if cfg.Debug {
		logLevel.SetLevel(zap.DebugLevel)
	}

	c := &Core{cfg: cfg, signer: o.signer}
	if c.signer == nil {
		signer, err := wallet.FromConfig(cfg.PrivateKey, cfg.KeypairPath)
		switch {
		case errors.Is(err, wallet.ErrNoKey):
			zap.L().Warn("no signing key configured: write operations disabled")
		case err != nil:
			return nil, err
		default:
			c.signer = signer
		}
	}
	if o.registerer != nil {
		c.metrics = metrics.New(o.registerer)
	}

	clientOpts := []subscription.Option{subscription.WithMetrics(c.metrics)}
	if c.signer != nil {
		clientOpts = append(clientOpts, subscription.WithSigner(c.signer))
	}

	var err error
	if o.rpc != nil {
		c.Client, err = subscription.NewClient(cfg, o.rpc, clientOpts...)
	} else {
		c.Client, err = subscription.Dial(ctx, cfg, clientOpts...)
	}
	if err != nil {
		zap.L().Error("Init solana client failed", zap.Error(err))
		return nil, err
	}

	if cfg.EVM.Enabled() {
		if o.evmBackend != nil {
			c.evm, err = blockchain.NewEVMClient(ctx, o.evmBackend, cfg.EVM, cfg.Timeouts)
		} else {
			c.evm, err = blockchain.InitEvm(ctx, cfg.EVM, cfg.Timeouts)
		}
		if err != nil {
			zap.L().Error("Init ethereum client failed", zap.Error(err))
			c.Client.Close()
			return nil, err
		}
	}

	if cfg.Debug {
		zap.L().Debug("sdk ready",
			zap.String("network", cfg.Network.Name),
			zap.Stringer("program", c.ProgramID()),
			zap.Stringer("signer", c.PublicKey()),
			zap.Bool("evm", c.evm != nil))
	}
	return c, nil
}

// NewSDK initializes the SDK like New and aborts the process if the
// configuration is invalid or a client cannot be initialized.
func NewSDK(cfg *config.Config) FxnSDK {
	c, err := New(context.Background(), *cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize SDK", zap.Error(err))
	}
	return c
}

// Config returns the validated configuration.
func (c *Core) Config() config.Config {
	return c.cfg
}

// Subscriptions returns the Solana subscription manager client.
func (c *Core) Subscriptions() *subscription.Client {
	return c.Client
}

// Signer returns the Solana signer, or nil in read-only mode.
func (c *Core) Signer() *wallet.Signer {
	return c.signer
}

// EVM returns the EVM contract client.
func (c *Core) EVM() (*blockchain.EVMClient, error) {
	if c.evm == nil {
		return nil, ErrEVMDisabled
	}
	return c.evm, nil
}

// Close shuts down underlying network clients.
func (c *Core) Close() {
	c.Client.Close()
	if c.evm != nil {
		c.evm.Close()
	}
}
