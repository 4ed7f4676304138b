package blockchain

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeBackend answers eth_call from canned results and mines every sent
// transaction immediately. Methods it does not override panic through the
// nil embedded Backend.
type fakeBackend struct {
	Backend

	mu          sync.Mutex
	abi         abi.ABI
	results     map[string][]interface{}
	calls       []string
	estimateErr error
	gas         uint64
	estimated   []ethereum.CallMsg
	sent        []*types.Transaction
	logs        []*types.Log
	status      uint64
	chainID     *big.Int
}

func newFakeBackend(t *testing.T, parsed abi.ABI) *fakeBackend {
	t.Helper()
	return &fakeBackend{
		abi:     parsed,
		results: make(map[string][]interface{}),
		gas:     50_000,
		status:  types.ReceiptStatusSuccessful,
		chainID: big.NewInt(84532),
	}
}

func (f *fakeBackend) set(method string, outputs ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[method] = outputs
}

func (f *fakeBackend) CallContract(_ context.Context, call ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	method, err := f.abi.MethodById(call.Data[:4])
	if err != nil {
		return nil, err
	}
	f.calls = append(f.calls, method.Name)
	return method.Outputs.Pack(f.results[method.Name]...)
}

func (f *fakeBackend) CodeAt(context.Context, common.Address, *big.Int) ([]byte, error) {
	return []byte{0x60}, nil
}

func (f *fakeBackend) EstimateGas(_ context.Context, msg ethereum.CallMsg) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.estimated = append(f.estimated, msg)
	return f.gas, f.estimateErr
}

func (f *fakeBackend) HeaderByNumber(context.Context, *big.Int) (*types.Header, error) {
	return &types.Header{Number: big.NewInt(1_000), BaseFee: big.NewInt(1_000_000_000)}, nil
}

func (f *fakeBackend) SuggestGasTipCap(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000), nil
}

func (f *fakeBackend) SuggestGasPrice(context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (f *fakeBackend) PendingNonceAt(context.Context, common.Address) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint64(len(f.sent)), nil
}

func (f *fakeBackend) SendTransaction(_ context.Context, tx *types.Transaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, tx)
	return nil
}

func (f *fakeBackend) TransactionReceipt(_ context.Context, hash common.Hash) (*types.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &types.Receipt{
		Status:      f.status,
		TxHash:      hash,
		GasUsed:     f.gas,
		Logs:        f.logs,
		BlockNumber: big.NewInt(1_001),
	}, nil
}

func (f *fakeBackend) ChainID(context.Context) (*big.Int, error) {
	return f.chainID, nil
}

func (f *fakeBackend) sentInput(t *testing.T, i int) (string, []interface{}) {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if i >= len(f.sent) {
		t.Fatalf("transaction %d not sent (have %d)", i, len(f.sent))
	}
	data := f.sent[i].Data()
	method, err := f.abi.MethodById(data[:4])
	if err != nil {
		t.Fatalf("unknown method: %v", err)
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		t.Fatalf("unpack %s: %v", method.Name, err)
	}
	return method.Name, args
}

// revertError is a node error carrying revert data.
type revertError struct {
	data interface{}
}

func (e *revertError) Error() string          { return "execution reverted" }
func (e *revertError) ErrorCode() int         { return 3 }
func (e *revertError) ErrorData() interface{} { return e.data }
