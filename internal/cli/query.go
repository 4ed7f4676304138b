package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func (a *app) subscriptionsCommand() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "subscriptions",
		Short: "List the live subscriptions of a user (default: the configured wallet)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			owner := core.PublicKey()
			if user != "" {
				if owner, err = parsePublicKey("user", user); err != nil {
					return err
				}
			}
			if owner.IsZero() {
				return fmt.Errorf("no wallet configured: pass --user")
			}

			subs, err := core.GetAllSubscriptionsForUser(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return a.printer(cmd).list("Subscriptions of "+owner.String(), subs, subscriptionRows(subs))
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "subscriber public key")
	return cmd
}

func (a *app) subscribersCommand() *cobra.Command {
	var (
		count bool
		raw   bool
	)
	cmd := &cobra.Command{
		Use:   "subscribers <provider>",
		Short: "List the live subscriptions of a data provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parsePublicKey("provider", args[0])
			if err != nil {
				return err
			}
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			p := a.printer(cmd)

			switch {
			case count:
				n, err := core.GetActiveSubscriptionsForAgent(cmd.Context(), provider)
				if err != nil {
					return err
				}
				return p.result("Active subscriptions", map[string]int{"active": n},
					row{"Provider", provider.String()},
					row{"Active", strconv.Itoa(n)})
			case raw:
				keys, err := core.GetAgentSubscribers(cmd.Context(), provider)
				if err != nil {
					return err
				}
				blocks := make([][]row, 0, len(keys))
				for _, k := range keys {
					blocks = append(blocks, []row{{"Subscriber", k.String()}})
				}
				return p.list("Subscribers", keys, blocks)
			}

			subs, err := core.GetSubscriptionsForProvider(cmd.Context(), provider)
			if err != nil {
				return err
			}
			return p.list("Subscriptions to "+provider.String(), subs, subscriptionRows(subs))
		},
	}
	cmd.Flags().BoolVar(&count, "count", false, "only print the number of live subscriptions")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the stored subscriber list without reading subscriptions")
	return cmd
}

func subscriptionRows(subs []model.SubscriptionDetails) [][]row {
	blocks := make([][]row, 0, len(subs))
	for _, s := range subs {
		blocks = append(blocks, []row{
			{"Subscriber", s.Subscriber.String()},
			{"Provider", s.DataProvider.String()},
			{"Recipient", s.Recipient},
			{"Ends", time.Unix(s.EndTime, 0).UTC().Format(time.RFC3339)},
			{"Status", statusStyle(string(s.Status)).Render(string(s.Status))},
		})
	}
	return blocks
}

func (a *app) stateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the program's global state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			st, err := core.GetState(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer(cmd).result("Subscription manager "+core.ProgramID().String(), stateView(st),
				row{"Owner", st.Owner.String()},
				row{"NFT program", st.NftProgramID.String()},
				row{"Payment token", st.PaymentSplToken.String()},
				row{"Fee per day", strconv.FormatUint(st.FeePerDay, 10)},
				row{"Collector fee", strconv.FormatUint(st.CollectorFee, 10)})
		},
	}
}

type stateJSON struct {
	Owner           solana.PublicKey `json:"owner"`
	NftProgramID    solana.PublicKey `json:"nft_program_id"`
	PaymentSplToken solana.PublicKey `json:"payment_spl_token"`
	FeePerDay       uint64           `json:"fee_per_day"`
	CollectorFee    uint64           `json:"collector_fee"`
}

func stateView(st *program.State) stateJSON {
	return stateJSON{
		Owner:           st.Owner,
		NftProgramID:    st.NftProgramID,
		PaymentSplToken: st.PaymentSplToken,
		FeePerDay:       st.FeePerDay,
		CollectorFee:    st.CollectorFee,
	}
}

func (a *app) eventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events <signature>",
		Short: "Decode the program events emitted by a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := parseSignature(args[0])
			if err != nil {
				return err
			}
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			events, err := core.GetTransactionEvents(cmd.Context(), sig)
			if err != nil {
				return err
			}

			type eventJSON struct {
				Name string        `json:"name"`
				Data program.Event `json:"data"`
			}
			out := make([]eventJSON, 0, len(events))
			blocks := make([][]row, 0, len(events))
			for _, ev := range events {
				out = append(out, eventJSON{Name: ev.EventName(), Data: ev})
				blocks = append(blocks, []row{{ev.EventName(), fmt.Sprintf("%+v", ev)}})
			}
			return a.printer(cmd).list("Events", out, blocks)
		},
	}
}
