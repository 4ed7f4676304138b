// Package subscription is the Solana client of the FXN subscription manager
// program. It turns typed calls into derived addresses, account sets and
// signed transactions, and decodes account state for queries.
//
// # Construction
//
// A Client is built from a validated config.Config and any RPCClient
// (normally *rpc.Client from solana-go):
//
//	cfg := config.Config{Network: config.Devnet}
//	if err := cfg.Validate(); err != nil { ... }
//	signer, _ := wallet.FromConfig(cfg.PrivateKey, cfg.KeypairPath)
//	c, err := subscription.Dial(ctx, cfg, subscription.WithSigner(signer))
//
// Read operations work without a signer. Every write operation fails fast
// with ErrWalletNotConnected before touching the network when no signer is
// configured.
//
// # Writes
//
// Each write wrapper derives the addresses it needs, performs prerequisite
// reads (the program owner for payment accounts, the request index for
// approvals), submits zero or more preparatory transactions and finally the
// primary instruction:
//
//   - CreateSubscription runs EnsureSubscriptionLists first, which
//     initializes and grows the MySubscriptions and SubscribersList
//     accounts as planned by program.PlanListSteps.
//   - RenewSubscription, CancelSubscription, EndSubscription and
//     StoreDataQuality create the provider's QualityInfo account when it is
//     missing.
//
// Transactions are confirmed at the configured commitment, by polling
// getSignatureStatuses or, with WithWebsocket, by signatureSubscribe.
// Nothing is retried.
//
// # Errors
//
// Coded program failures come back as *program.ProgramError:
//
//	var pe *program.ProgramError
//	if errors.As(err, &pe) && pe.Code == program.ErrAlreadySubscribed { ... }
//
// Missing accounts wrap ErrAccountNotFound (and rpc.ErrNotFound). Other
// transport errors are wrapped unchanged.
//
// # Listings
//
// GetSubscriptionsForProvider and GetAllSubscriptionsForUser read an index
// account and then every referenced subscription concurrently, bounded by
// Config.FanOutLimit. Unreadable entries are dropped rather than failing the
// whole listing; expired entries are filtered out and the result is sorted
// by descending expiry.
package subscription
