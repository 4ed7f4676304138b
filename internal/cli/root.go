// Package cli implements the fxn command-line tool on top of the SDK.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/sdk"
	"github.com/spf13/cobra"
)

// app holds the global flags and the lazily initialized SDK.
type app struct {
	configPath string
	envFiles   []string
	network    string
	rpcAddr    string
	keypair    string
	commitment string
	debug      bool
	jsonOut    bool

	sdkOpts []sdk.Option
	core    *sdk.Core
}

// NewRootCommand builds the fxn command tree. opts are passed to sdk.New
// when a command first needs the SDK.
func NewRootCommand(opts ...sdk.Option) *cobra.Command {
	a := &app{sdkOpts: opts}

	root := &cobra.Command{
		Use:           "fxn",
		Short:         "fxn manages subscriptions on the FXN data provider network.",
		Long:          `A command-line interface to subscribe to data providers, register agents and inspect the FXN subscription manager on Solana and EVM chains.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.core != nil {
				a.core.Close()
				a.core = nil
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "YAML config file (FXN_* environment variables override it)")
	flags.StringSliceVar(&a.envFiles, "env-file", nil, "dotenv files to load (default .env)")
	flags.StringVarP(&a.network, "network", "n", "", "network profile: mainnet, testnet or devnet")
	flags.StringVar(&a.rpcAddr, "rpc", "", "Solana RPC endpoint")
	flags.StringVarP(&a.keypair, "keypair", "k", "", "solana-keygen keypair file")
	flags.StringVar(&a.commitment, "commitment", "", "processed, confirmed or finalized")
	flags.BoolVar(&a.debug, "debug", false, "verbose logging")
	flags.BoolVar(&a.jsonOut, "json", false, "print results as JSON")

	root.AddCommand(
		a.subscribeCommand(),
		a.renewCommand(),
		a.cancelCommand(),
		a.endCommand(),
		a.closeAccountCommand(),
		a.requestCommand(),
		a.qualityCommand(),
		a.subscriptionsCommand(),
		a.subscribersCommand(),
		a.agentCommand(),
		a.stateCommand(),
		a.eventsCommand(),
		a.adminCommand(),
		a.walletCommand(),
		a.evmCommand(),
	)
	return root
}

// Execute runs the fxn command and exits non-zero on failure.
func Execute() {
	root := NewRootCommand()
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, warningStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

// loadConfig reads the config file or the environment and applies flag
// overrides.
func (a *app) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.Load(a.configPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.FromEnv(a.envFiles...)
		if err != nil {
			return nil, err
		}
	}

	if a.network != "" {
		n, err := config.NetworkByName(a.network)
		if err != nil {
			return nil, err
		}
		cfg.Network = n
	}
	if a.rpcAddr != "" {
		cfg.RPCAddr = a.rpcAddr
	}
	if a.keypair != "" {
		cfg.KeypairPath = a.keypair
		cfg.PrivateKey = ""
	}
	if a.commitment != "" {
		cfg.Commitment = a.commitment
	}
	if a.debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// sdk returns the SDK, initializing it on first use.
func (a *app) sdk(cmd *cobra.Command) (*sdk.Core, error) {
	if a.core != nil {
		return a.core, nil
	}
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	core, err := sdk.New(cmd.Context(), *cfg, a.sdkOpts...)
	if err != nil {
		return nil, err
	}
	a.core = core
	return core, nil
}

func (a *app) printer(cmd *cobra.Command) printer {
	return printer{w: cmd.OutOrStdout(), json: a.jsonOut}
}
