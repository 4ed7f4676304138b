package program

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// Instruction is a fully assembled program instruction. It implements
// solana.Instruction.
type Instruction struct {
	programID     solana.PublicKey
	discriminator Discriminator
	accounts      solana.AccountMetaSlice
	data          []byte
}

var _ solana.Instruction = (*Instruction)(nil)

// ProgramID implements solana.Instruction.
func (i *Instruction) ProgramID() solana.PublicKey { return i.programID }

// Accounts implements solana.Instruction.
func (i *Instruction) Accounts() []*solana.AccountMeta { return i.accounts }

// Data implements solana.Instruction.
func (i *Instruction) Data() ([]byte, error) { return i.data, nil }

// Name returns the program name of the instruction.
func (i *Instruction) Name() string { return InstructionName(i.discriminator) }

// Discriminator returns the instruction discriminator.
func (i *Instruction) Discriminator() Discriminator { return i.discriminator }

func readonly(pk solana.PublicKey) *solana.AccountMeta { return solana.NewAccountMeta(pk, false, false) }
func writable(pk solana.PublicKey) *solana.AccountMeta { return solana.NewAccountMeta(pk, true, false) }
func signer(pk solana.PublicKey) *solana.AccountMeta   { return solana.NewAccountMeta(pk, false, true) }
func payer(pk solana.PublicKey) *solana.AccountMeta    { return solana.NewAccountMeta(pk, true, true) }

type namedKey struct {
	name string
	key  solana.PublicKey
}

func requireKeys(ix string, keys ...namedKey) error {
	for _, k := range keys {
		if k.key.IsZero() {
			return fmt.Errorf("%s: account %s is not set", ix, k.name)
		}
	}
	return nil
}

func build(programID solana.PublicKey, disc Discriminator, args interface{}, metas ...*solana.AccountMeta) (*Instruction, error) {
	buf := new(bytes.Buffer)
	buf.Write(disc[:])
	if args != nil {
		if err := bin.NewBorshEncoder(buf).Encode(args); err != nil {
			return nil, fmt.Errorf("failed to encode %s args: %w", InstructionName(disc), err)
		}
	}
	return &Instruction{
		programID:     programID,
		discriminator: disc,
		accounts:      metas,
		data:          buf.Bytes(),
	}, nil
}

// Instruction arguments, in program field order.
type (
	SubscribeArgs struct {
		Recipient string
		EndTime   int64
	}

	RenewSubscriptionArgs struct {
		NewRecipient string
		NewEndTime   int64
		Quality      uint8
	}

	QualityArgs struct {
		Quality uint8
	}

	AgentDataArgs struct {
		Name                  string
		Description           string
		RestrictSubscriptions bool
		Capabilities          []string
		Fee                   uint64
	}

	ApproveRequestArgs struct {
		Index uint64
	}

	FeeArgs struct {
		Fee uint64
	}
)

// ListsAccounts is shared by the init/add/realloc subscription list
// instructions; each instruction uses the subset it needs.
type ListsAccounts struct {
	Subscriber      solana.PublicKey
	DataProvider    solana.PublicKey
	MySubscriptions solana.PublicKey
	SubscribersList solana.PublicKey
}

// NewInitMySubscriptionsList builds init_my_subscriptions_list.
func NewInitMySubscriptionsList(programID solana.PublicKey, a ListsAccounts) (*Instruction, error) {
	if err := requireKeys("init_my_subscriptions_list",
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"my_subscriptions", a.MySubscriptions},
	); err != nil {
		return nil, err
	}
	return build(programID, IxInitMySubscriptionsList, nil,
		payer(a.Subscriber),
		writable(a.DataProvider),
		writable(a.MySubscriptions),
		readonly(solana.SystemProgramID),
	)
}

// NewInitSubscribersList builds init_subscribers_list.
func NewInitSubscribersList(programID solana.PublicKey, a ListsAccounts) (*Instruction, error) {
	if err := requireKeys("init_subscribers_list",
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"subscribers_list", a.SubscribersList},
	); err != nil {
		return nil, err
	}
	return build(programID, IxInitSubscribersList, nil,
		payer(a.Subscriber),
		writable(a.DataProvider),
		writable(a.SubscribersList),
		readonly(solana.SystemProgramID),
	)
}

func newListsInstruction(programID solana.PublicKey, disc Discriminator, a ListsAccounts) (*Instruction, error) {
	if err := requireKeys(InstructionName(disc),
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"my_subscriptions", a.MySubscriptions},
		namedKey{"subscribers_list", a.SubscribersList},
	); err != nil {
		return nil, err
	}
	return build(programID, disc, nil,
		payer(a.Subscriber),
		writable(a.DataProvider),
		writable(a.MySubscriptions),
		writable(a.SubscribersList),
		readonly(solana.SystemProgramID),
	)
}

// NewAddSubscriptionsLists builds add_subscriptions_lists.
func NewAddSubscriptionsLists(programID solana.PublicKey, a ListsAccounts) (*Instruction, error) {
	return newListsInstruction(programID, IxAddSubscriptionsLists, a)
}

// NewReallocAddSubscriptionsLists builds realloc_add_subscriptions_lists.
func NewReallocAddSubscriptionsLists(programID solana.PublicKey, a ListsAccounts) (*Instruction, error) {
	return newListsInstruction(programID, IxReallocAddSubscriptionsLists, a)
}

// SubscribeAccounts lists every account of subscribe.
type SubscribeAccounts struct {
	State                  solana.PublicKey
	Subscriber             solana.PublicKey
	DataProvider           solana.PublicKey
	Subscription           solana.PublicKey
	Owner                  solana.PublicKey
	DataProviderPaymentATA solana.PublicKey
	SubscriberPaymentATA   solana.PublicKey
	OwnerPaymentATA        solana.PublicKey
	AgentRegistration      solana.PublicKey
	SubscriptionRequests   solana.PublicKey
	DataProviderFee        solana.PublicKey
}

// NewSubscribe builds subscribe.
func NewSubscribe(programID solana.PublicKey, args SubscribeArgs, a SubscribeAccounts) (*Instruction, error) {
	if err := requireKeys("subscribe",
		namedKey{"state", a.State},
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"subscription", a.Subscription},
		namedKey{"owner", a.Owner},
		namedKey{"data_provider_payment_ata", a.DataProviderPaymentATA},
		namedKey{"subscriber_payment_ata", a.SubscriberPaymentATA},
		namedKey{"owner_payment_ata", a.OwnerPaymentATA},
		namedKey{"agent_registration", a.AgentRegistration},
		namedKey{"subscription_requests", a.SubscriptionRequests},
		namedKey{"dp_fee_account", a.DataProviderFee},
	); err != nil {
		return nil, err
	}
	return build(programID, IxSubscribe, &args,
		writable(a.State),
		payer(a.Subscriber),
		writable(a.DataProvider),
		writable(a.Subscription),
		writable(a.Owner),
		writable(a.DataProviderPaymentATA),
		writable(a.SubscriberPaymentATA),
		writable(a.OwnerPaymentATA),
		writable(a.AgentRegistration),
		writable(a.SubscriptionRequests),
		readonly(solana.SystemProgramID),
		readonly(solana.TokenProgramID),
		readonly(a.DataProviderFee),
	)
}

// RenewSubscriptionAccounts lists every account of renew_subscription.
type RenewSubscriptionAccounts struct {
	State                  solana.PublicKey
	Subscriber             solana.PublicKey
	DataProvider           solana.PublicKey
	Subscription           solana.PublicKey
	QualityInfo            solana.PublicKey
	Owner                  solana.PublicKey
	DataProviderPaymentATA solana.PublicKey
	SubscriberPaymentATA   solana.PublicKey
	OwnerPaymentATA        solana.PublicKey
	DataProviderFee        solana.PublicKey
}

// NewRenewSubscription builds renew_subscription.
func NewRenewSubscription(programID solana.PublicKey, args RenewSubscriptionArgs, a RenewSubscriptionAccounts) (*Instruction, error) {
	if err := requireKeys("renew_subscription",
		namedKey{"state", a.State},
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"subscription", a.Subscription},
		namedKey{"quality_info", a.QualityInfo},
		namedKey{"owner", a.Owner},
		namedKey{"data_provider_payment_ata", a.DataProviderPaymentATA},
		namedKey{"subscriber_payment_ata", a.SubscriberPaymentATA},
		namedKey{"owner_payment_ata", a.OwnerPaymentATA},
		namedKey{"dp_fee_account", a.DataProviderFee},
	); err != nil {
		return nil, err
	}
	return build(programID, IxRenewSubscription, &args,
		writable(a.State),
		payer(a.Subscriber),
		writable(a.DataProvider),
		writable(a.Subscription),
		writable(a.QualityInfo),
		writable(a.Owner),
		readonly(a.DataProviderPaymentATA),
		writable(a.SubscriberPaymentATA),
		writable(a.OwnerPaymentATA),
		readonly(solana.SystemProgramID),
		readonly(solana.TokenProgramID),
		readonly(a.DataProviderFee),
	)
}

// SubscriptionQualityAccounts lists the accounts of cancel_subscription
// and end_subscription.
type SubscriptionQualityAccounts struct {
	Subscriber   solana.PublicKey
	DataProvider solana.PublicKey
	Subscription solana.PublicKey
	QualityInfo  solana.PublicKey
}

func newSubscriptionQuality(programID solana.PublicKey, disc Discriminator, quality uint8, a SubscriptionQualityAccounts) (*Instruction, error) {
	if err := requireKeys(InstructionName(disc),
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"subscription", a.Subscription},
		namedKey{"quality_info", a.QualityInfo},
	); err != nil {
		return nil, err
	}
	return build(programID, disc, &QualityArgs{Quality: quality},
		payer(a.Subscriber),
		readonly(a.DataProvider),
		writable(a.Subscription),
		writable(a.QualityInfo),
	)
}

// NewCancelSubscription builds cancel_subscription.
func NewCancelSubscription(programID solana.PublicKey, quality uint8, a SubscriptionQualityAccounts) (*Instruction, error) {
	return newSubscriptionQuality(programID, IxCancelSubscription, quality, a)
}

// NewEndSubscription builds end_subscription.
func NewEndSubscription(programID solana.PublicKey, quality uint8, a SubscriptionQualityAccounts) (*Instruction, error) {
	return newSubscriptionQuality(programID, IxEndSubscription, quality, a)
}

// CloseSubscriptionAccountAccounts lists the accounts of close_subscription_account.
type CloseSubscriptionAccountAccounts struct {
	Subscriber   solana.PublicKey
	DataProvider solana.PublicKey
	Subscription solana.PublicKey
}

// NewCloseSubscriptionAccount builds close_subscription_account.
func NewCloseSubscriptionAccount(programID solana.PublicKey, a CloseSubscriptionAccountAccounts) (*Instruction, error) {
	if err := requireKeys("close_subscription_account",
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"subscription", a.Subscription},
	); err != nil {
		return nil, err
	}
	return build(programID, IxCloseSubscriptionAccount, nil,
		payer(a.Subscriber),
		readonly(a.DataProvider),
		writable(a.Subscription),
	)
}

// InitializeQualityInfoAccounts lists the accounts of initialize_quality_info.
type InitializeQualityInfoAccounts struct {
	QualityInfo  solana.PublicKey
	DataProvider solana.PublicKey
	Payer        solana.PublicKey
}

// NewInitializeQualityInfo builds initialize_quality_info.
func NewInitializeQualityInfo(programID solana.PublicKey, a InitializeQualityInfoAccounts) (*Instruction, error) {
	if err := requireKeys("initialize_quality_info",
		namedKey{"quality_info", a.QualityInfo},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"payer", a.Payer},
	); err != nil {
		return nil, err
	}
	return build(programID, IxInitializeQualityInfo, nil,
		writable(a.QualityInfo),
		readonly(a.DataProvider),
		payer(a.Payer),
		readonly(solana.SystemProgramID),
	)
}

// StoreDataQualityAccounts lists the accounts of store_data_quality.
type StoreDataQualityAccounts struct {
	Subscriber   solana.PublicKey
	DataProvider solana.PublicKey
	QualityInfo  solana.PublicKey
}

// NewStoreDataQuality builds store_data_quality.
func NewStoreDataQuality(programID solana.PublicKey, quality uint8, a StoreDataQualityAccounts) (*Instruction, error) {
	if err := requireKeys("store_data_quality",
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"quality_info", a.QualityInfo},
	); err != nil {
		return nil, err
	}
	return build(programID, IxStoreDataQuality, &QualityArgs{Quality: quality},
		payer(a.Subscriber),
		readonly(a.DataProvider),
		writable(a.QualityInfo),
	)
}

// RegisterAgentAccounts lists every account of register_agent.
type RegisterAgentAccounts struct {
	AgentRegistration      solana.PublicKey
	SubscriptionRequests   solana.PublicKey
	DataProviderFee        solana.PublicKey
	DataProviderPaymentATA solana.PublicKey
	DataProvider           solana.PublicKey
	TokenMint              solana.PublicKey
	State                  solana.PublicKey
}

// NewRegisterAgent builds register_agent.
func NewRegisterAgent(programID solana.PublicKey, args AgentDataArgs, a RegisterAgentAccounts) (*Instruction, error) {
	if err := requireKeys("register_agent",
		namedKey{"agent_registration", a.AgentRegistration},
		namedKey{"subscription_requests", a.SubscriptionRequests},
		namedKey{"data_provider_fee", a.DataProviderFee},
		namedKey{"data_provider_payment_ata", a.DataProviderPaymentATA},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"token_mint_account", a.TokenMint},
		namedKey{"state", a.State},
	); err != nil {
		return nil, err
	}
	return build(programID, IxRegisterAgent, &args,
		writable(a.AgentRegistration),
		writable(a.SubscriptionRequests),
		writable(a.DataProviderFee),
		writable(a.DataProviderPaymentATA),
		payer(a.DataProvider),
		readonly(solana.TokenProgramID),
		writable(a.TokenMint),
		readonly(a.State),
		readonly(solana.SystemProgramID),
	)
}

// EditAgentDataAccounts lists the accounts of edit_agent_data.
type EditAgentDataAccounts struct {
	AgentRegistration solana.PublicKey
	DataProviderFee   solana.PublicKey
	DataProvider      solana.PublicKey
}

// NewEditAgentData builds edit_agent_data.
func NewEditAgentData(programID solana.PublicKey, args AgentDataArgs, a EditAgentDataAccounts) (*Instruction, error) {
	if err := requireKeys("edit_agent_data",
		namedKey{"agent_registration", a.AgentRegistration},
		namedKey{"data_provider_fee", a.DataProviderFee},
		namedKey{"data_provider", a.DataProvider},
	); err != nil {
		return nil, err
	}
	return build(programID, IxEditAgentData, &args,
		writable(a.AgentRegistration),
		writable(a.DataProviderFee),
		payer(a.DataProvider),
		readonly(solana.SystemProgramID),
	)
}

// RequestSubscriptionAccounts lists the accounts of request_subscription.
type RequestSubscriptionAccounts struct {
	Subscriber           solana.PublicKey
	DataProvider         solana.PublicKey
	SubscriptionRequests solana.PublicKey
}

// NewRequestSubscription builds request_subscription.
func NewRequestSubscription(programID solana.PublicKey, a RequestSubscriptionAccounts) (*Instruction, error) {
	if err := requireKeys("request_subscription",
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"subscription_requests", a.SubscriptionRequests},
	); err != nil {
		return nil, err
	}
	return build(programID, IxRequestSubscription, nil,
		payer(a.Subscriber),
		writable(a.DataProvider),
		writable(a.SubscriptionRequests),
		readonly(solana.SystemProgramID),
	)
}

// ApproveRequestAccounts lists the accounts of approve_request.
type ApproveRequestAccounts struct {
	Subscriber           solana.PublicKey
	DataProvider         solana.PublicKey
	SubscriptionRequests solana.PublicKey
}

// NewApproveRequest builds approve_request for the request at index.
func NewApproveRequest(programID solana.PublicKey, index uint64, a ApproveRequestAccounts) (*Instruction, error) {
	if err := requireKeys("approve_request",
		namedKey{"subscriber", a.Subscriber},
		namedKey{"data_provider", a.DataProvider},
		namedKey{"subscription_requests", a.SubscriptionRequests},
	); err != nil {
		return nil, err
	}
	return build(programID, IxApproveRequest, &ApproveRequestArgs{Index: index},
		writable(a.Subscriber),
		payer(a.DataProvider),
		writable(a.SubscriptionRequests),
		readonly(solana.SystemProgramID),
	)
}

// SetDataProviderFeeAccounts lists the accounts of set_data_provider_fee.
type SetDataProviderFeeAccounts struct {
	DataProviderFee solana.PublicKey
	DataProvider    solana.PublicKey
}

// NewSetDataProviderFee builds set_data_provider_fee with fee in base units.
func NewSetDataProviderFee(programID solana.PublicKey, fee uint64, a SetDataProviderFeeAccounts) (*Instruction, error) {
	if err := requireKeys("set_data_provider_fee",
		namedKey{"data_provider_fee", a.DataProviderFee},
		namedKey{"data_provider", a.DataProvider},
	); err != nil {
		return nil, err
	}
	return build(programID, IxSetDataProviderFee, &FeeArgs{Fee: fee},
		writable(a.DataProviderFee),
		payer(a.DataProvider),
		readonly(solana.SystemProgramID),
	)
}

// InitializeAccounts lists the accounts of initialize.
type InitializeAccounts struct {
	State           solana.PublicKey
	Owner           solana.PublicKey
	NftProgram      solana.PublicKey
	PaymentSplToken solana.PublicKey
}

// NewInitialize builds initialize.
func NewInitialize(programID solana.PublicKey, a InitializeAccounts) (*Instruction, error) {
	if err := requireKeys("initialize",
		namedKey{"state", a.State},
		namedKey{"owner", a.Owner},
		namedKey{"nft_program", a.NftProgram},
		namedKey{"payment_spl_token", a.PaymentSplToken},
	); err != nil {
		return nil, err
	}
	return build(programID, IxInitialize, nil,
		writable(a.State),
		payer(a.Owner),
		readonly(a.NftProgram),
		readonly(a.PaymentSplToken),
		readonly(solana.SystemProgramID),
	)
}

// OwnerAccounts lists the accounts of the owner-only fee setters.
type OwnerAccounts struct {
	State solana.PublicKey
	Owner solana.PublicKey
}

func newOwnerFee(programID solana.PublicKey, disc Discriminator, fee uint64, a OwnerAccounts) (*Instruction, error) {
	if err := requireKeys(InstructionName(disc),
		namedKey{"state", a.State},
		namedKey{"owner", a.Owner},
	); err != nil {
		return nil, err
	}
	return build(programID, disc, &FeeArgs{Fee: fee},
		writable(a.State),
		signer(a.Owner),
	)
}

// NewSetFeePerDay builds set_fee_per_day.
func NewSetFeePerDay(programID solana.PublicKey, fee uint64, a OwnerAccounts) (*Instruction, error) {
	return newOwnerFee(programID, IxSetFeePerDay, fee, a)
}

// NewSetCollectorFee builds set_collector_fee.
func NewSetCollectorFee(programID solana.PublicKey, fee uint64, a OwnerAccounts) (*Instruction, error) {
	return newOwnerFee(programID, IxSetCollectorFee, fee, a)
}
