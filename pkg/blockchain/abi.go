package blockchain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Contract interfaces of the EVM deployment, reduced to the members the SDK
// calls.
const (
	SubscriptionManagerABI = `[
	{"type":"function","name":"subscribe","stateMutability":"payable","inputs":[
		{"name":"dataProvider","type":"address"},
		{"name":"recipient","type":"string"},
		{"name":"endTime","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"feePerDay","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"collectorFee","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getSubscribers","stateMutability":"view","inputs":[
		{"name":"dataProvider","type":"address"}],"outputs":[{"name":"","type":"address[]"}]},
	{"type":"function","name":"subscriptions","stateMutability":"view","inputs":[
		{"name":"dataProvider","type":"address"},
		{"name":"subscriber","type":"address"}],"outputs":[
		{"name":"endTime","type":"uint256"},
		{"name":"recipient","type":"string"}]},
	{"type":"error","name":"AlreadySubscribed","inputs":[]},
	{"type":"error","name":"SubscriptionPeriodTooShort","inputs":[]},
	{"type":"error","name":"LessSubscriptionFeeSent","inputs":[]},
	{"type":"error","name":"SubscriptionNotFound","inputs":[]}
]`

	CollectorABI = `[
	{"type":"function","name":"safeMint","stateMutability":"nonpayable","inputs":[
		{"name":"to","type":"address"}],"outputs":[]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[
		{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"ownerOf","stateMutability":"view","inputs":[
		{"name":"tokenId","type":"uint256"}],"outputs":[{"name":"","type":"address"}]}
]`

	CollectorFactoryABI = `[
	{"type":"function","name":"createCollector","stateMutability":"nonpayable","inputs":[
		{"name":"nftAddress","type":"address"},
		{"name":"feePerDay","type":"uint256"},
		{"name":"collectorFee","type":"uint256"}],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"listCollectorsByValidation","stateMutability":"view","inputs":[
		{"name":"validation","type":"bool"}],"outputs":[{"name":"","type":"tuple[]","components":[
			{"name":"collectorAddress","type":"address"},
			{"name":"collectorOwner","type":"address"},
			{"name":"timestamp","type":"uint256"},
			{"name":"validity","type":"bool"}]}]},
	{"type":"function","name":"handleCollectorCreator","stateMutability":"nonpayable","inputs":[
		{"name":"creator","type":"address"},
		{"name":"active","type":"bool"}],"outputs":[]},
	{"type":"function","name":"handleReputationProvider","stateMutability":"nonpayable","inputs":[
		{"name":"provider","type":"address"},
		{"name":"active","type":"bool"}],"outputs":[]},
	{"type":"function","name":"handleCollectorValidity","stateMutability":"nonpayable","inputs":[
		{"name":"collector","type":"address"},
		{"name":"validity","type":"bool"}],"outputs":[]},
	{"type":"function","name":"getReputationScore","stateMutability":"view","inputs":[
		{"name":"collector","type":"address"},
		{"name":"dataProvider","type":"address"}],"outputs":[{"name":"","type":"uint8"}]},
	{"type":"function","name":"requestReputation","stateMutability":"nonpayable","inputs":[
		{"name":"collector","type":"address"},
		{"name":"dataProvider","type":"address"}],"outputs":[]},
	{"type":"function","name":"storeReputationScore","stateMutability":"nonpayable","inputs":[
		{"name":"collector","type":"address"},
		{"name":"dataProvider","type":"address"},
		{"name":"score","type":"uint8"}],"outputs":[]},
	{"type":"event","name":"CollectorCreated","anonymous":false,"inputs":[
		{"name":"collector","type":"address","indexed":true},
		{"name":"owner","type":"address","indexed":true}]}
]`
)

var (
	subscriptionManagerABI = mustParseABI(SubscriptionManagerABI)
	collectorABI           = mustParseABI(CollectorABI)
	collectorFactoryABI    = mustParseABI(CollectorFactoryABI)
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("blockchain: invalid contract ABI: " + err.Error())
	}
	return parsed
}
