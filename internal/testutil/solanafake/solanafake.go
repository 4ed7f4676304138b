// Package solanafake is an in-memory stand-in for the Solana JSON-RPC
// methods used by the SDK. It stores accounts, records submitted
// transactions and reports them as confirmed.
package solanafake

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// MaxMultipleAccounts is the key limit of getMultipleAccounts enforced by
// Solana RPC nodes.
const MaxMultipleAccounts = 100

// SentInstruction is one instruction of a recorded transaction with its
// account indexes resolved.
type SentInstruction struct {
	ProgramID solana.PublicKey
	Accounts  []solana.PublicKey
	Data      []byte
}

// Name returns the subscription manager instruction name, or "" when the
// data does not start with a known discriminator.
func (i SentInstruction) Name() string {
	if len(i.Data) < 8 {
		return ""
	}
	var d program.Discriminator
	copy(d[:], i.Data[:8])
	return program.InstructionName(d)
}

// RPC implements the subscription.RPCClient interface.
type RPC struct {
	mu sync.Mutex

	accounts map[solana.PublicKey]*rpc.Account
	failures map[solana.PublicKey]error
	statuses map[solana.Signature]*rpc.SignatureStatusesResult
	logs     map[solana.Signature][]string
	sent     []*solana.Transaction

	// Blockhash is returned by GetLatestBlockhash.
	Blockhash solana.Hash
	// RentLamports is returned by GetMinimumBalanceForRentExemption.
	RentLamports uint64
	// ConfirmAs is the confirmation status reported for sent transactions.
	ConfirmAs rpc.ConfirmationStatusType
	// OnSend runs for every submitted transaction before it is recorded.
	// A non-nil error is returned from SendTransactionWithOpts.
	OnSend func(tx *solana.Transaction, ixs []SentInstruction) error
	// StatusErr, when set, is reported as the execution error of the next
	// sent transaction and then cleared.
	StatusErr interface{}

	calls map[string]int
}

// New returns an empty fake.
func New() *RPC {
	return &RPC{
		accounts:     make(map[solana.PublicKey]*rpc.Account),
		failures:     make(map[solana.PublicKey]error),
		statuses:     make(map[solana.Signature]*rpc.SignatureStatusesResult),
		logs:         make(map[solana.Signature][]string),
		calls:        make(map[string]int),
		Blockhash:    solana.HashFromBytes(bytes.Repeat([]byte{7}, 32)),
		RentLamports: 1_461_600,
		ConfirmAs:    rpc.ConfirmationStatusFinalized,
	}
}

// SetAccount stores raw account data owned by owner.
func (f *RPC) SetAccount(pk, owner solana.PublicKey, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[pk] = &rpc.Account{
		Lamports: f.RentLamports,
		Owner:    owner,
		Data:     rpc.DataBytesOrJSONFromBytes(append([]byte(nil), data...)),
		Space:    uint64(len(data)),
	}
}

// SetProgramAccount encodes acct and stores it under pk, owned by programID.
// Extra bytes of zero padding can be appended to emulate reallocated space.
func (f *RPC) SetProgramAccount(programID, pk solana.PublicKey, acct program.Account, padding int) error {
	data, err := program.EncodeAccount(acct)
	if err != nil {
		return err
	}
	f.SetAccount(pk, programID, append(data, make([]byte, padding)...))
	return nil
}

// DeleteAccount removes pk.
func (f *RPC) DeleteAccount(pk solana.PublicKey) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, pk)
}

// FailAccount makes every read of pk return err.
func (f *RPC) FailAccount(pk solana.PublicKey, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[pk] = err
}

// SetLogs stores the log messages returned by GetTransaction for sig.
func (f *RPC) SetLogs(sig solana.Signature, logs []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logs[sig] = logs
}

// Sent returns the recorded transactions in submission order.
func (f *RPC) Sent() []*solana.Transaction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*solana.Transaction(nil), f.sent...)
}

// Instructions returns every recorded instruction in submission order.
func (f *RPC) Instructions() []SentInstruction {
	var out []SentInstruction
	for _, tx := range f.Sent() {
		out = append(out, Decode(tx)...)
	}
	return out
}

// InstructionNames returns the names of Instructions, skipping foreign ones.
func (f *RPC) InstructionNames() []string {
	var out []string
	for _, ix := range f.Instructions() {
		if name := ix.Name(); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// Calls returns how often method was invoked.
func (f *RPC) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// Decode resolves the compiled instructions of tx.
func Decode(tx *solana.Transaction) []SentInstruction {
	keys := tx.Message.AccountKeys
	out := make([]SentInstruction, 0, len(tx.Message.Instructions))
	for _, ci := range tx.Message.Instructions {
		ix := SentInstruction{
			ProgramID: keys[ci.ProgramIDIndex],
			Data:      []byte(ci.Data),
		}
		for _, idx := range ci.Accounts {
			ix.Accounts = append(ix.Accounts, keys[idx])
		}
		out = append(out, ix)
	}
	return out
}

func (f *RPC) lookup(pk solana.PublicKey) (*rpc.Account, error) {
	if err, ok := f.failures[pk]; ok {
		return nil, err
	}
	return f.accounts[pk], nil
}

func (f *RPC) GetAccountInfoWithOpts(ctx context.Context, account solana.PublicKey, _ *rpc.GetAccountInfoOpts) (*rpc.GetAccountInfoResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["getAccountInfo"]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	acct, err := f.lookup(account)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetAccountInfoResult{Value: acct}, nil
}

func (f *RPC) GetMultipleAccountsWithOpts(_ context.Context, accounts []solana.PublicKey, _ *rpc.GetMultipleAccountsOpts) (*rpc.GetMultipleAccountsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["getMultipleAccounts"]++
	if len(accounts) > MaxMultipleAccounts {
		return nil, fmt.Errorf("too many inputs provided; max %d", MaxMultipleAccounts)
	}

	out := &rpc.GetMultipleAccountsResult{Value: make([]*rpc.Account, len(accounts))}
	for i, pk := range accounts {
		acct, err := f.lookup(pk)
		if err != nil {
			return nil, err
		}
		out.Value[i] = acct
	}
	return out, nil
}

func (f *RPC) GetProgramAccountsWithOpts(_ context.Context, programID solana.PublicKey, opts *rpc.GetProgramAccountsOpts) (rpc.GetProgramAccountsResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["getProgramAccounts"]++

	var out rpc.GetProgramAccountsResult
	for pk, acct := range f.accounts {
		if !acct.Owner.Equals(programID) || !matches(acct.Data.GetBinary(), opts) {
			continue
		}
		out = append(out, &rpc.KeyedAccount{Pubkey: pk, Account: acct})
	}
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i].Pubkey[:], out[j].Pubkey[:]) < 0
	})
	return out, nil
}

func matches(data []byte, opts *rpc.GetProgramAccountsOpts) bool {
	if opts == nil {
		return true
	}
	for _, flt := range opts.Filters {
		if flt.DataSize != 0 && uint64(len(data)) != flt.DataSize {
			return false
		}
		if m := flt.Memcmp; m != nil {
			end := int(m.Offset) + len(m.Bytes)
			if end > len(data) || !bytes.Equal(data[m.Offset:end], m.Bytes) {
				return false
			}
		}
	}
	return true
}

func (f *RPC) GetLatestBlockhash(_ context.Context, _ rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["getLatestBlockhash"]++
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{Blockhash: f.Blockhash, LastValidBlockHeight: 1_000},
	}, nil
}

func (f *RPC) SendTransactionWithOpts(_ context.Context, tx *solana.Transaction, _ rpc.TransactionOpts) (solana.Signature, error) {
	f.mu.Lock()
	f.calls["sendTransaction"]++
	onSend := f.OnSend
	f.mu.Unlock()

	if onSend != nil {
		if err := onSend(tx, Decode(tx)); err != nil {
			return solana.Signature{}, err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	sig := tx.Signatures[0]
	f.sent = append(f.sent, tx)
	f.statuses[sig] = &rpc.SignatureStatusesResult{
		Slot:               uint64(len(f.sent)),
		ConfirmationStatus: f.ConfirmAs,
		Err:                f.StatusErr,
	}
	f.StatusErr = nil
	return sig, nil
}

func (f *RPC) GetSignatureStatuses(_ context.Context, _ bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["getSignatureStatuses"]++

	out := &rpc.GetSignatureStatusesResult{Value: make([]*rpc.SignatureStatusesResult, len(sigs))}
	for i, sig := range sigs {
		out.Value[i] = f.statuses[sig]
	}
	return out, nil
}

func (f *RPC) GetTransaction(_ context.Context, sig solana.Signature, _ *rpc.GetTransactionOpts) (*rpc.GetTransactionResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["getTransaction"]++

	logs, ok := f.logs[sig]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return &rpc.GetTransactionResult{Meta: &rpc.TransactionMeta{LogMessages: logs}}, nil
}

func (f *RPC) GetMinimumBalanceForRentExemption(_ context.Context, _ uint64, _ rpc.CommitmentType) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["getMinimumBalanceForRentExemption"]++
	return f.RentLamports, nil
}
