// Package program describes the wire contract of the FXN subscription
// manager Solana program: the seed table used for program-derived
// addresses, instruction and account discriminators, borsh layouts of
// instruction arguments, accounts and events, the program error table and
// the subscription-list sequencing rules.
//
// Everything here is pure: no RPC, no signing. The subscription package
// drives the network side.
//
// The layouts are pinned to a single program release (interface version
// 0.1.0 with the "data_provider_fee" and "agent_profile_registration"
// seeds). Changing any constant here without a matching program deployment
// breaks every derived address or instruction.
package program

import "fmt"

// Discriminator is the 8-byte Anchor prefix identifying an instruction,
// account or event: sha256("<namespace>:<name>")[:8].
type Discriminator [8]byte

// String returns the discriminator as a byte list.
func (d Discriminator) String() string {
	return fmt.Sprint([8]byte(d))
}

// Instruction discriminators.
var (
	IxAddSubscriptionsLists        = Discriminator{75, 92, 81, 46, 141, 174, 174, 37}
	IxApproveRequest               = Discriminator{89, 68, 167, 104, 93, 25, 178, 205}
	IxCancelSubscription           = Discriminator{60, 139, 189, 242, 191, 208, 143, 18}
	IxCloseSubscriptionAccount     = Discriminator{39, 224, 172, 178, 37, 9, 186, 82}
	IxEditAgentData                = Discriminator{108, 105, 209, 37, 34, 29, 170, 139}
	IxEndSubscription              = Discriminator{115, 160, 25, 55, 34, 94, 144, 150}
	IxGetSubscribers               = Discriminator{232, 209, 197, 223, 218, 152, 141, 210}
	IxInitMySubscriptionsList      = Discriminator{16, 123, 17, 204, 44, 17, 112, 202}
	IxInitSubscribersList          = Discriminator{125, 114, 126, 189, 97, 188, 11, 29}
	IxInitialize                   = Discriminator{175, 175, 109, 31, 13, 152, 155, 237}
	IxInitializeQualityInfo        = Discriminator{154, 244, 109, 54, 154, 111, 42, 23}
	IxReallocAddSubscriptionsLists = Discriminator{99, 160, 45, 253, 23, 118, 22, 205}
	IxRegisterAgent                = Discriminator{135, 157, 66, 195, 2, 113, 175, 30}
	IxRenewSubscription            = Discriminator{45, 75, 154, 194, 160, 10, 111, 183}
	IxRequestSubscription          = Discriminator{137, 154, 227, 71, 69, 159, 134, 178}
	IxSetCollectorFee              = Discriminator{62, 129, 230, 50, 150, 38, 238, 92}
	IxSetDataProviderFee           = Discriminator{211, 248, 5, 80, 147, 98, 135, 148}
	IxSetFeePerDay                 = Discriminator{141, 138, 186, 148, 166, 202, 210, 116}
	IxStoreDataQuality             = Discriminator{109, 123, 36, 195, 189, 91, 208, 129}
	IxSubscribe                    = Discriminator{254, 28, 191, 138, 156, 179, 183, 53}
)

// Account discriminators.
var (
	AcctAgentRegistration    = Discriminator{130, 53, 100, 103, 121, 77, 148, 19}
	AcctDataProviderFee      = Discriminator{150, 246, 242, 181, 157, 243, 172, 176}
	AcctMySubscriptions      = Discriminator{180, 231, 40, 166, 107, 41, 82, 49}
	AcctQualityInfo          = Discriminator{59, 207, 119, 53, 151, 101, 159, 114}
	AcctState                = Discriminator{216, 146, 107, 94, 104, 75, 182, 177}
	AcctSubscribersList      = Discriminator{85, 14, 165, 202, 229, 174, 22, 69}
	AcctSubscription         = Discriminator{64, 7, 26, 135, 102, 132, 98, 33}
	AcctSubscriptionRequests = Discriminator{233, 49, 14, 197, 190, 232, 137, 135}
)

// Event discriminators.
var (
	EvCollectorFeeUpdated   = Discriminator{111, 103, 158, 122, 19, 32, 13, 99}
	EvFeePerDayUpdated      = Discriminator{219, 16, 119, 65, 189, 118, 175, 120}
	EvQualityProvided       = Discriminator{65, 215, 185, 198, 187, 33, 124, 150}
	EvSubscriptionCancelled = Discriminator{10, 87, 228, 73, 76, 115, 135, 170}
	EvSubscriptionCreated   = Discriminator{247, 246, 115, 176, 253, 84, 244, 155}
	EvSubscriptionEnded     = Discriminator{65, 132, 208, 62, 46, 117, 222, 111}
	EvSubscriptionRenewed   = Discriminator{77, 2, 48, 127, 173, 252, 49, 6}
)

var instructionNames = map[Discriminator]string{
	IxAddSubscriptionsLists:        "add_subscriptions_lists",
	IxApproveRequest:               "approve_request",
	IxCancelSubscription:           "cancel_subscription",
	IxCloseSubscriptionAccount:     "close_subscription_account",
	IxEditAgentData:                "edit_agent_data",
	IxEndSubscription:              "end_subscription",
	IxGetSubscribers:               "get_subscribers",
	IxInitMySubscriptionsList:      "init_my_subscriptions_list",
	IxInitSubscribersList:          "init_subscribers_list",
	IxInitialize:                   "initialize",
	IxInitializeQualityInfo:        "initialize_quality_info",
	IxReallocAddSubscriptionsLists: "realloc_add_subscriptions_lists",
	IxRegisterAgent:                "register_agent",
	IxRenewSubscription:            "renew_subscription",
	IxRequestSubscription:          "request_subscription",
	IxSetCollectorFee:              "set_collector_fee",
	IxSetDataProviderFee:           "set_data_provider_fee",
	IxSetFeePerDay:                 "set_fee_per_day",
	IxStoreDataQuality:             "store_data_quality",
	IxSubscribe:                    "subscribe",
}

// InstructionName returns the snake_case program name of an instruction
// discriminator, or "" when it is not part of the program.
func InstructionName(d Discriminator) string {
	return instructionNames[d]
}
