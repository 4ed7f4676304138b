// Package sdk is the entry point of the FXN SDK. It validates the
// configuration, loads the signing key, and wires the Solana subscription
// manager client together with the optional EVM contract client.
//
// # Quick Start
//
//	cfg := config.Config{
//		Network:     config.Devnet,
//		KeypairPath: "~/.config/solana/id.json",
//	}
//
//	fxn, err := sdk.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer fxn.Close()
//
//	sig, err := fxn.CreateSubscription(ctx, model.SubscribeParams{
//		DataProvider:   provider,
//		Recipient:      "https://my-agent.example/webhook",
//		DurationInDays: 30,
//	})
//
// Core embeds *subscription.Client, so every subscription, provider and
// listing operation is available on it directly.
//
// # Read-only Mode
//
// Without PrivateKey or KeypairPath the SDK still serves every read. Writes
// fail with subscription.ErrWalletNotConnected before any network call.
//
// # EVM
//
// Setting Config.EVM.RPCAddr enables the EVM client:
//
//	evm, err := fxn.EVM()
//	if err != nil {
//		return err // sdk.ErrEVMDisabled
//	}
//	fee, err := evm.SubscriptionManager.CalculateFees(ctx, 30)
//
// # Logging
//
// The package installs a console zap logger as the global logger at init.
// Config.Debug lowers its level to debug. Applications may replace it with
// zap.ReplaceGlobals.
//
// # Metrics
//
// WithRegisterer registers instruction, program error and RPC latency
// collectors on a prometheus registry.
package sdk
