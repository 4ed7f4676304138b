// Package blockchain provides the EVM side of the SDK: a dialed client with
// typed wrappers for the SubscriptionManager, Collector and CollectorFactory
// contracts, custom-error decoding and wei helpers.
//
// # Clients
//
// InitEvm dials the configured endpoint and binds one client per configured
// contract address. NewEVMClient does the same over any Backend, which is
// how tests drive the wrappers without a node:
//
//	eth, err := blockchain.InitEvm(ctx, cfg.EVM, cfg.Timeouts)
//	if err != nil {
//		return err
//	}
//	defer eth.Close()
//
//	fee, err := eth.SubscriptionManager.CalculateFees(ctx, 30)
//
// Reads are eth_call round-trips bounded by Timeouts.ChainRead. Writes need
// the EVM private key; without it they fail with ErrPrivateKeyRequired
// before touching the network.
//
// # Transactions
//
// Every write estimates gas, adds GasBufferPercent on top, submits the
// transaction and waits for the receipt with bind.WaitMined under
// Timeouts.ReceiptWait. A receipt with a failed status is reported as
// ErrTransactionFailed.
//
// # Errors
//
// Reverts carrying one of the subscription manager's custom errors are
// decoded from their 4-byte selector into *ContractError:
//
//	_, err := sm.Subscribe(ctx, params)
//	if errors.Is(err, &blockchain.ContractError{Name: blockchain.RevertAlreadySubscribed}) {
//		// already subscribed
//	}
//
// Other failures are returned wrapped but otherwise unchanged.
//
// # Units
//
// EthToWei and WeiToEth convert between ether and wei with
// shopspring/decimal, so no precision is lost to float arithmetic.
package blockchain

//go:generate go run ../../cmd/generate-smart-binds
