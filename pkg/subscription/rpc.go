package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCClient is the subset of the Solana JSON-RPC API used by the client.
// *rpc.Client satisfies it.
type RPCClient interface {
	GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, opts *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error)
	GetMultipleAccountsWithOpts(ctx context.Context, accounts []solana.PublicKey, opts *rpc.GetMultipleAccountsOpts) (*rpc.GetMultipleAccountsResult, error)
	GetProgramAccountsWithOpts(ctx context.Context, programID solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, transactionSignatures ...solana.Signature) (*rpc.GetSignatureStatusesResult, error)
	GetTransaction(ctx context.Context, txSig solana.Signature, opts *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error)
	GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error)
}

var _ RPCClient = (*rpc.Client)(nil)

// ErrAccountNotFound is returned by reads of accounts that do not exist.
// It wraps rpc.ErrNotFound.
var ErrAccountNotFound = fmt.Errorf("account %w", rpc.ErrNotFound)

// withTimeout bounds ctx by d unless the caller already set a deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// getAccountData fetches the raw data of addr.
func (c *Client) getAccountData(ctx context.Context, addr solana.PublicKey) ([]byte, error) {
	ctx, cancel := withTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	start := time.Now()
	res, err := c.rpc.GetAccountInfoWithOpts(ctx, addr, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	c.metrics.ObserveRPC("getAccountInfo", start)
	if errors.Is(err, rpc.ErrNotFound) || (err == nil && (res == nil || res.Value == nil)) {
		return nil, fmt.Errorf("%s: %w", addr, ErrAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", addr, err)
	}
	return res.Value.Data.GetBinary(), nil
}

// maxAccountsPerRequest is the getMultipleAccounts key limit of Solana RPC nodes.
const maxAccountsPerRequest = 100

// getAccounts fetches several accounts, in batches of at most
// maxAccountsPerRequest keys. Missing accounts are nil in the result, which
// keeps the order of addrs.
func (c *Client) getAccounts(ctx context.Context, addrs ...solana.PublicKey) ([]*rpc.Account, error) {
	ctx, cancel := withTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	out := make([]*rpc.Account, 0, len(addrs))
	for len(addrs) > 0 {
		batch := addrs[:min(len(addrs), maxAccountsPerRequest)]
		addrs = addrs[len(batch):]

		start := time.Now()
		res, err := c.rpc.GetMultipleAccountsWithOpts(ctx, batch, &rpc.GetMultipleAccountsOpts{
			Commitment: c.commitment,
			Encoding:   solana.EncodingBase64,
		})
		c.metrics.ObserveRPC("getMultipleAccounts", start)
		if err != nil {
			return nil, fmt.Errorf("failed to get accounts: %w", err)
		}
		if len(res.Value) != len(batch) {
			return nil, fmt.Errorf("failed to get accounts: asked for %d, got %d", len(batch), len(res.Value))
		}
		out = append(out, res.Value...)
	}
	return out, nil
}

// accountExists reports whether addr holds an account.
func (c *Client) accountExists(ctx context.Context, addr solana.PublicKey) (bool, error) {
	accts, err := c.getAccounts(ctx, addr)
	if err != nil {
		return false, err
	}
	return accts[0] != nil, nil
}

func accountSize(a *rpc.Account) int {
	if a == nil || a.Data == nil {
		return 0
	}
	return len(a.Data.GetBinary())
}
