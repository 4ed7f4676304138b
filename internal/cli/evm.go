package cli

import (
	"math/big"
	"strconv"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/blockchain"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/spf13/cobra"
)

func (a *app) evmCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evm",
		Short: "Interact with the EVM subscription manager and collectors",
	}
	cmd.AddCommand(
		a.evmFeesCommand(),
		a.evmSubscribeCommand(),
		a.evmSubscribersCommand(),
		a.evmSubscriptionCommand(),
		a.evmCollectorsCommand(),
		a.evmCreateCollectorCommand(),
		a.evmReputationCommand(),
		a.evmBlockCommand(),
	)
	return cmd
}

// evm returns the EVM client of the SDK.
func (a *app) evm(cmd *cobra.Command) (*blockchain.EVMClient, error) {
	core, err := a.sdk(cmd)
	if err != nil {
		return nil, err
	}
	return core.EVM()
}

func (a *app) subscriptionManager(cmd *cobra.Command) (*blockchain.SubscriptionManager, error) {
	evm, err := a.evm(cmd)
	if err != nil {
		return nil, err
	}
	return evm.RequireSubscriptionManager()
}

func (a *app) collectorFactory(cmd *cobra.Command) (*blockchain.CollectorFactory, error) {
	evm, err := a.evm(cmd)
	if err != nil {
		return nil, err
	}
	return evm.RequireCollectorFactory()
}

func weiRows(label string, wei *big.Int) []row {
	return []row{
		{label, blockchain.WeiToEth(wei).String() + " ETH"},
		{label + " (wei)", wei.String()},
	}
}

func (a *app) evmFeesCommand() *cobra.Command {
	var days int64
	cmd := &cobra.Command{
		Use:   "fees",
		Short: "Compute the price of a subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sm, err := a.subscriptionManager(cmd)
			if err != nil {
				return err
			}
			total, err := sm.CalculateFees(cmd.Context(), days)
			if err != nil {
				return err
			}
			rows := append([]row{{"Days", strconv.FormatInt(days, 10)}}, weiRows("Total", total)...)
			return a.printer(cmd).result("Subscription price", map[string]string{"wei": total.String()}, rows...)
		},
	}
	cmd.Flags().Int64VarP(&days, "days", "d", 30, "subscription length in days")
	return cmd
}

func (a *app) evmSubscribeCommand() *cobra.Command {
	var (
		recipient string
		days      int64
	)
	cmd := &cobra.Command{
		Use:   "subscribe <provider>",
		Short: "Subscribe to a provider, paying the computed fee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parseAddress("provider", args[0])
			if err != nil {
				return err
			}
			sm, err := a.subscriptionManager(cmd)
			if err != nil {
				return err
			}
			value, err := sm.CalculateFees(cmd.Context(), days)
			if err != nil {
				return err
			}
			receipt, err := sm.Subscribe(cmd.Context(), blockchain.SubscribeParams{
				DataProvider: provider,
				Recipient:    recipient,
				EndTime:      model.ExpiryFromDays(time.Now(), days),
				Value:        value,
			})
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Subscribed to "+provider.Hex(), receipt.TxHash.Hex())
		},
	}
	cmd.Flags().StringVarP(&recipient, "recipient", "r", "", "address or URL that receives the data")
	cmd.Flags().Int64VarP(&days, "days", "d", 30, "subscription length in days")
	return cmd
}

func (a *app) evmSubscribersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subscribers <provider>",
		Short: "List the subscribers of a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parseAddress("provider", args[0])
			if err != nil {
				return err
			}
			sm, err := a.subscriptionManager(cmd)
			if err != nil {
				return err
			}
			subs, err := sm.GetSubscribers(cmd.Context(), provider)
			if err != nil {
				return err
			}
			blocks := make([][]row, 0, len(subs))
			for _, s := range subs {
				blocks = append(blocks, []row{{"Subscriber", s.Hex()}})
			}
			return a.printer(cmd).list("Subscribers", subs, blocks)
		},
	}
}

func (a *app) evmSubscriptionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "subscription <provider> <subscriber>",
		Short: "Show a stored subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parseAddress("provider", args[0])
			if err != nil {
				return err
			}
			subscriber, err := parseAddress("subscriber", args[1])
			if err != nil {
				return err
			}
			sm, err := a.subscriptionManager(cmd)
			if err != nil {
				return err
			}
			info, err := sm.Subscription(cmd.Context(), provider, subscriber)
			if err != nil {
				return err
			}
			end := info.EndTime.Int64()
			status := string(model.ClassifyStatus(end, time.Now()))
			return a.printer(cmd).result("Subscription", map[string]interface{}{
				"recipient": info.Recipient,
				"end_time":  end,
				"status":    status,
			},
				row{"Recipient", info.Recipient},
				row{"Ends", time.Unix(end, 0).UTC().Format(time.RFC3339)},
				row{"Status", statusStyle(status).Render(status)})
		},
	}
}

func (a *app) evmCollectorsCommand() *cobra.Command {
	var invalid bool
	cmd := &cobra.Command{
		Use:   "collectors",
		Short: "List collectors by validation state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.collectorFactory(cmd)
			if err != nil {
				return err
			}
			infos, err := f.ListCollectorsByValidation(cmd.Context(), !invalid)
			if err != nil {
				return err
			}
			blocks := make([][]row, 0, len(infos))
			for _, c := range infos {
				blocks = append(blocks, []row{
					{"Collector", c.CollectorAddress.Hex()},
					{"Owner", c.CollectorOwner.Hex()},
					{"Created", time.Unix(c.Timestamp.Int64(), 0).UTC().Format(time.RFC3339)},
					{"Valid", strconv.FormatBool(c.Validity)},
				})
			}
			return a.printer(cmd).list("Collectors", infos, blocks)
		},
	}
	cmd.Flags().BoolVar(&invalid, "invalid", false, "list collectors not yet validated")
	return cmd
}

func (a *app) evmCreateCollectorCommand() *cobra.Command {
	var feePerDay, collectorFee string
	cmd := &cobra.Command{
		Use:   "create-collector <nft>",
		Short: "Deploy a collector for an NFT contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nft, err := parseAddress("NFT", args[0])
			if err != nil {
				return err
			}
			perDay, err := blockchain.EthToWei(feePerDay)
			if err != nil {
				return err
			}
			collector, err := blockchain.EthToWei(collectorFee)
			if err != nil {
				return err
			}
			f, err := a.collectorFactory(cmd)
			if err != nil {
				return err
			}
			addr, err := f.CreateCollector(cmd.Context(), nft, perDay, collector)
			if err != nil {
				return err
			}
			return a.printer(cmd).result("Collector created", map[string]string{"collector": addr.Hex()},
				row{"Collector", addr.Hex()})
		},
	}
	cmd.Flags().StringVar(&feePerDay, "fee-per-day", "0", "daily fee in ETH")
	cmd.Flags().StringVar(&collectorFee, "collector-fee", "0", "collector fee in ETH")
	return cmd
}

func (a *app) evmReputationCommand() *cobra.Command {
	var (
		request bool
		store   string
	)
	cmd := &cobra.Command{
		Use:   "reputation <collector> <provider>",
		Short: "Read, request or store a provider's reputation score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			collector, err := parseAddress("collector", args[0])
			if err != nil {
				return err
			}
			provider, err := parseAddress("provider", args[1])
			if err != nil {
				return err
			}
			f, err := a.collectorFactory(cmd)
			if err != nil {
				return err
			}
			p := a.printer(cmd)

			switch {
			case request:
				receipt, err := f.RequestReputation(cmd.Context(), collector, provider)
				if err != nil {
					return err
				}
				return p.signature("Reputation requested", receipt.TxHash.Hex())
			case store != "":
				score, err := parseScore(store)
				if err != nil {
					return err
				}
				receipt, err := f.StoreReputationScore(cmd.Context(), collector, provider, score)
				if err != nil {
					return err
				}
				return p.signature("Reputation stored", receipt.TxHash.Hex())
			}

			score, err := f.GetReputationScore(cmd.Context(), collector, provider)
			if err != nil {
				return err
			}
			return p.result("Reputation", map[string]uint8{"score": score},
				row{"Score", strconv.Itoa(int(score))})
		},
	}
	cmd.Flags().BoolVar(&request, "request", false, "request a new score")
	cmd.Flags().StringVar(&store, "store", "", "store this score (0-100)")
	return cmd
}

func (a *app) evmBlockCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "block",
		Short: "Print the current block number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			evm, err := a.evm(cmd)
			if err != nil {
				return err
			}
			n, err := evm.GetCurrentBlockNumber(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer(cmd).result("Block", map[string]string{"number": n.String()}, row{"Number", n.String()})
		},
	}
}
