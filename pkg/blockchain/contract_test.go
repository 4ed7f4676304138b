package blockchain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/config"
)

var (
	managerAddr   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	collectorAddr = common.HexToAddress("0x00000000000000000000000000000000000000a2")
	factoryAddr   = common.HexToAddress("0x00000000000000000000000000000000000000a3")
	providerAddr  = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	otherAddr     = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

var testTimeouts = config.Timeouts{ReceiptWait: 5 * time.Second}

func testTransactor(t *testing.T) *bind.TransactOpts {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	opts, err := GetTransactOpts(big.NewInt(84532), key)
	if err != nil {
		t.Fatalf("GetTransactOpts: %v", err)
	}
	return opts
}

func TestSubscriptionManager_Subscribe(t *testing.T) {
	backend := newFakeBackend(t, subscriptionManagerABI)
	sm := NewSubscriptionManager(managerAddr, backend, testTransactor(t), testTimeouts)

	receipt, err := sm.Subscribe(context.Background(), SubscribeParams{
		DataProvider: providerAddr,
		Recipient:    "https://hook.example",
		EndTime:      1_700_086_400,
		Value:        big.NewInt(31_000),
	})
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		t.Fatalf("unexpected receipt status %d", receipt.Status)
	}

	tx := backend.sent[0]
	if tx.Gas() != 60_000 {
		t.Fatalf("gas limit %d, want estimate plus 20%%", tx.Gas())
	}
	if tx.Value().Cmp(big.NewInt(31_000)) != 0 {
		t.Fatalf("unexpected value %s", tx.Value())
	}
	if *tx.To() != managerAddr {
		t.Fatalf("unexpected recipient %s", tx.To().Hex())
	}
	if backend.estimated[0].Value.Cmp(big.NewInt(31_000)) != 0 {
		t.Fatal("estimate did not carry the value")
	}

	name, args := backend.sentInput(t, 0)
	if name != "subscribe" {
		t.Fatalf("unexpected method %s", name)
	}
	if args[0].(common.Address) != providerAddr || args[1].(string) != "https://hook.example" {
		t.Fatalf("unexpected args %v", args)
	}
	if args[2].(*big.Int).Int64() != 1_700_086_400 {
		t.Fatalf("unexpected end time %v", args[2])
	}
}

func TestSubscriptionManager_SubscribeRevert(t *testing.T) {
	backend := newFakeBackend(t, subscriptionManagerABI)
	sel := ErrorSelector(RevertAlreadySubscribed)
	backend.estimateErr = &revertError{data: hexutil.Encode(sel[:])}
	sm := NewSubscriptionManager(managerAddr, backend, testTransactor(t), testTimeouts)

	_, err := sm.Subscribe(context.Background(), SubscribeParams{DataProvider: providerAddr, EndTime: 1, Value: big.NewInt(1)})
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ContractError, got %v", err)
	}
	if ce.Name != RevertAlreadySubscribed {
		t.Fatalf("unexpected name %s", ce.Name)
	}
	if len(backend.sent) != 0 {
		t.Fatal("transaction sent after failed estimate")
	}
}

func TestSubscriptionManager_ReadOnly(t *testing.T) {
	backend := newFakeBackend(t, subscriptionManagerABI)
	sm := NewSubscriptionManager(managerAddr, backend, nil, testTimeouts)

	_, err := sm.Subscribe(context.Background(), SubscribeParams{DataProvider: providerAddr})
	if !errors.Is(err, ErrPrivateKeyRequired) {
		t.Fatalf("expected ErrPrivateKeyRequired, got %v", err)
	}
	if len(backend.estimated) != 0 {
		t.Fatal("network touched without a key")
	}
}

func TestSubscriptionManager_FailedReceipt(t *testing.T) {
	backend := newFakeBackend(t, subscriptionManagerABI)
	backend.status = types.ReceiptStatusFailed
	sm := NewSubscriptionManager(managerAddr, backend, testTransactor(t), testTimeouts)

	_, err := sm.Subscribe(context.Background(), SubscribeParams{DataProvider: providerAddr, Value: big.NewInt(0)})
	if !errors.Is(err, ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
}

func TestSubscriptionManager_Reads(t *testing.T) {
	backend := newFakeBackend(t, subscriptionManagerABI)
	backend.set("feePerDay", big.NewInt(1_000))
	backend.set("collectorFee", big.NewInt(250))
	backend.set("getSubscribers", []common.Address{providerAddr, otherAddr})
	backend.set("subscriptions", big.NewInt(42), "hook")
	sm := NewSubscriptionManager(managerAddr, backend, nil, testTimeouts)
	ctx := context.Background()

	fee, err := sm.CalculateFees(ctx, 30)
	if err != nil {
		t.Fatalf("CalculateFees: %v", err)
	}
	if fee.Int64() != 30_250 {
		t.Fatalf("CalculateFees = %s, want 30250", fee)
	}
	if _, err := sm.CalculateFees(ctx, 0); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}

	subs, err := sm.GetSubscribers(ctx, providerAddr)
	if err != nil {
		t.Fatalf("GetSubscribers: %v", err)
	}
	if len(subs) != 2 || subs[1] != otherAddr {
		t.Fatalf("unexpected subscribers %v", subs)
	}

	info, err := sm.Subscription(ctx, providerAddr, otherAddr)
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if info.Recipient != "hook" || info.EndTime.Int64() != 42 {
		t.Fatalf("unexpected subscription %+v", info)
	}
}

// deployedSubscriptionsABI is the getter as the deployed contract declares it.
const deployedSubscriptionsABI = `[{"type":"function","name":"subscriptions","stateMutability":"view",
	"inputs":[{"name":"","type":"address"},{"name":"","type":"address"}],
	"outputs":[{"name":"endTime","type":"uint256"},{"name":"recipient","type":"string"}]}]`

func TestSubscriptionManager_SubscriptionDeployedLayout(t *testing.T) {
	backend := newFakeBackend(t, mustParseABI(deployedSubscriptionsABI))
	backend.set("subscriptions", big.NewInt(1_900_000_000), "https://hook.example")
	sm := NewSubscriptionManager(managerAddr, backend, nil, testTimeouts)

	info, err := sm.Subscription(context.Background(), providerAddr, otherAddr)
	if err != nil {
		t.Fatalf("Subscription: %v", err)
	}
	if info.Recipient != "https://hook.example" || info.EndTime.Int64() != 1_900_000_000 {
		t.Fatalf("unexpected subscription %+v", info)
	}
}

func TestCollector(t *testing.T) {
	backend := newFakeBackend(t, collectorABI)
	backend.set("balanceOf", big.NewInt(3))
	backend.set("ownerOf", otherAddr)
	c := NewCollector(collectorAddr, backend, testTransactor(t), testTimeouts)
	ctx := context.Background()

	if _, err := c.SafeMint(ctx, otherAddr); err != nil {
		t.Fatalf("SafeMint: %v", err)
	}
	name, args := backend.sentInput(t, 0)
	if name != "safeMint" || args[0].(common.Address) != otherAddr {
		t.Fatalf("unexpected call %s %v", name, args)
	}

	bal, err := c.BalanceOf(ctx, otherAddr)
	if err != nil || bal.Int64() != 3 {
		t.Fatalf("BalanceOf = %v, %v", bal, err)
	}
	owner, err := c.OwnerOf(ctx, big.NewInt(7))
	if err != nil || owner != otherAddr {
		t.Fatalf("OwnerOf = %s, %v", owner.Hex(), err)
	}
}

func TestCollectorFactory_CreateCollector(t *testing.T) {
	backend := newFakeBackend(t, collectorFactoryABI)
	created := common.HexToAddress("0x00000000000000000000000000000000000000c1")
	backend.logs = []*types.Log{
		{Address: otherAddr, Topics: []common.Hash{collectorFactoryABI.Events["CollectorCreated"].ID}},
		{
			Address: factoryAddr,
			Topics: []common.Hash{
				collectorFactoryABI.Events["CollectorCreated"].ID,
				common.BytesToHash(created.Bytes()),
				common.BytesToHash(providerAddr.Bytes()),
			},
		},
	}
	f := NewCollectorFactory(factoryAddr, backend, testTransactor(t), testTimeouts)

	addr, err := f.CreateCollector(context.Background(), collectorAddr, big.NewInt(10), big.NewInt(1))
	if err != nil {
		t.Fatalf("CreateCollector: %v", err)
	}
	if addr != created {
		t.Fatalf("unexpected collector %s", addr.Hex())
	}

	backend.logs = nil
	if _, err := f.CreateCollector(context.Background(), collectorAddr, big.NewInt(10), big.NewInt(1)); !errors.Is(err, ErrCollectorEventMissing) {
		t.Fatalf("expected ErrCollectorEventMissing, got %v", err)
	}
}

func TestCollectorFactory_Reads(t *testing.T) {
	backend := newFakeBackend(t, collectorFactoryABI)
	backend.set("getReputationScore", uint8(87))
	backend.set("listCollectorsByValidation", []struct {
		CollectorAddress common.Address
		CollectorOwner   common.Address
		Timestamp        *big.Int
		Validity         bool
	}{
		{CollectorAddress: collectorAddr, CollectorOwner: otherAddr, Timestamp: big.NewInt(99), Validity: true},
	})
	f := NewCollectorFactory(factoryAddr, backend, nil, testTimeouts)
	ctx := context.Background()

	score, err := f.GetReputationScore(ctx, collectorAddr, providerAddr)
	if err != nil || score != 87 {
		t.Fatalf("GetReputationScore = %d, %v", score, err)
	}

	list, err := f.ListCollectorsByValidation(ctx, true)
	if err != nil {
		t.Fatalf("ListCollectorsByValidation: %v", err)
	}
	if len(list) != 1 || list[0].CollectorAddress != collectorAddr || !list[0].Validity || list[0].Timestamp.Int64() != 99 {
		t.Fatalf("unexpected collectors %+v", list)
	}
}

func TestCollectorFactory_Writes(t *testing.T) {
	backend := newFakeBackend(t, collectorFactoryABI)
	f := NewCollectorFactory(factoryAddr, backend, testTransactor(t), testTimeouts)
	ctx := context.Background()

	steps := []func() (*types.Receipt, error){
		func() (*types.Receipt, error) { return f.HandleCollectorCreator(ctx, otherAddr, true) },
		func() (*types.Receipt, error) { return f.HandleReputationProvider(ctx, otherAddr, false) },
		func() (*types.Receipt, error) { return f.HandleCollectorValidity(ctx, collectorAddr, true) },
		func() (*types.Receipt, error) { return f.RequestReputation(ctx, collectorAddr, providerAddr) },
		func() (*types.Receipt, error) { return f.StoreReputationScore(ctx, collectorAddr, providerAddr, 100) },
	}
	for i, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	want := []string{"handleCollectorCreator", "handleReputationProvider", "handleCollectorValidity", "requestReputation", "storeReputationScore"}
	for i, w := range want {
		if name, _ := backend.sentInput(t, i); name != w {
			t.Fatalf("tx %d: got %s, want %s", i, name, w)
		}
	}
	_, args := backend.sentInput(t, 4)
	if args[2].(uint8) != 100 {
		t.Fatalf("unexpected score %v", args[2])
	}

	if _, err := f.StoreReputationScore(ctx, collectorAddr, providerAddr, 101); !errors.Is(err, ErrScoreOutOfRange) {
		t.Fatalf("expected ErrScoreOutOfRange, got %v", err)
	}
	if len(backend.sent) != len(want) {
		t.Fatal("out of range score was sent")
	}
}

func TestNewEVMClient(t *testing.T) {
	backend := newFakeBackend(t, subscriptionManagerABI)
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	keyHex := hexutil.Encode(crypto.FromECDSA(key))

	eth, err := NewEVMClient(context.Background(), backend, config.EVM{
		PrivateKey:              keyHex,
		SubscriptionManagerAddr: managerAddr.Hex(),
	}, testTimeouts)
	if err != nil {
		t.Fatalf("NewEVMClient: %v", err)
	}
	if eth.ChainID.Int64() != 84532 {
		t.Fatalf("chain id %s not queried from backend", eth.ChainID)
	}
	if eth.Address() != crypto.PubkeyToAddress(key.PublicKey) {
		t.Fatalf("unexpected address %s", eth.Address().Hex())
	}
	if eth.SubscriptionManager == nil || eth.SubscriptionManager.Address() != managerAddr {
		t.Fatal("subscription manager not bound")
	}
	if _, err := eth.RequireCollector(); !errors.Is(err, ErrContractNotConfigured) {
		t.Fatalf("expected ErrContractNotConfigured, got %v", err)
	}

	n, err := eth.GetCurrentBlockNumber(context.Background())
	if err != nil || n.Int64() != 1_000 {
		t.Fatalf("GetCurrentBlockNumber = %v, %v", n, err)
	}

	readOnly, err := NewEVMClient(context.Background(), backend, config.EVM{ChainID: 8453}, testTimeouts)
	if err != nil {
		t.Fatalf("NewEVMClient: %v", err)
	}
	if readOnly.ChainID.Int64() != 8453 || readOnly.Address() != (common.Address{}) {
		t.Fatal("unexpected read-only client")
	}

	if _, err := NewEVMClient(context.Background(), backend, config.EVM{PrivateKey: "0xzz"}, testTimeouts); err == nil {
		t.Fatal("expected error for invalid key")
	}
}
