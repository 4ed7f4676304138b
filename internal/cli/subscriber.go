package cli

import (
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/spf13/cobra"
)

func (a *app) subscribeCommand() *cobra.Command {
	var p model.SubscribeParams
	cmd := &cobra.Command{
		Use:   "subscribe <provider>",
		Short: "Subscribe to a data provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parsePublicKey("provider", args[0])
			if err != nil {
				return err
			}
			p.DataProvider = provider

			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.CreateSubscription(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Subscribed to "+provider.String(), sig.String())
		},
	}
	cmd.Flags().StringVarP(&p.Recipient, "recipient", "r", "", "address or URL that receives the data")
	cmd.Flags().Int64VarP(&p.DurationInDays, "days", "d", 30, "subscription length in days")
	return cmd
}

func (a *app) renewCommand() *cobra.Command {
	var (
		p     model.RenewParams
		days  int64
		score string
	)
	cmd := &cobra.Command{
		Use:   "renew <provider>",
		Short: "Renew a subscription and rate the provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parsePublicKey("provider", args[0])
			if err != nil {
				return err
			}
			if p.QualityScore, err = parseScore(score); err != nil {
				return err
			}
			p.DataProvider = provider
			if p.NewEndTime == 0 {
				p.NewEndTime = model.ExpiryFromDays(time.Now(), days)
			}

			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.RenewSubscription(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Renewed subscription to "+provider.String(), sig.String())
		},
	}
	cmd.Flags().StringVarP(&p.NewRecipient, "recipient", "r", "", "new recipient")
	cmd.Flags().Int64VarP(&days, "days", "d", 30, "new length in days from now")
	cmd.Flags().Int64Var(&p.NewEndTime, "end-time", 0, "absolute unix expiry; overrides --days")
	cmd.Flags().StringVarP(&score, "quality", "q", "100", "provider quality score (0-100)")
	return cmd
}

func (a *app) cancelCommand() *cobra.Command {
	return a.cancelLike("cancel", "Cancel a subscription and rate the provider", "Cancelled", func(cmd *cobra.Command, p model.CancelParams) (string, error) {
		core, err := a.sdk(cmd)
		if err != nil {
			return "", err
		}
		sig, err := core.CancelSubscription(cmd.Context(), p)
		return sig.String(), err
	})
}

func (a *app) endCommand() *cobra.Command {
	return a.cancelLike("end", "End a subscription and rate the provider", "Ended", func(cmd *cobra.Command, p model.CancelParams) (string, error) {
		core, err := a.sdk(cmd)
		if err != nil {
			return "", err
		}
		sig, err := core.EndSubscription(cmd.Context(), p)
		return sig.String(), err
	})
}

func (a *app) cancelLike(use, short, verb string, run func(*cobra.Command, model.CancelParams) (string, error)) *cobra.Command {
	var score string
	cmd := &cobra.Command{
		Use:   use + " <provider>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parsePublicKey("provider", args[0])
			if err != nil {
				return err
			}
			quality, err := parseScore(score)
			if err != nil {
				return err
			}
			sig, err := run(cmd, model.CancelParams{DataProvider: provider, QualityScore: quality})
			if err != nil {
				return err
			}
			return a.printer(cmd).signature(verb+" subscription to "+provider.String(), sig)
		},
	}
	cmd.Flags().StringVarP(&score, "quality", "q", "100", "provider quality score (0-100)")
	return cmd
}

func (a *app) closeAccountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close-account <provider>",
		Short: "Close an ended subscription account and reclaim its rent",
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
			sig, err := core.CloseSubscriptionAccount(cmd.Context(), provider)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Closed subscription account", sig.String())
		},
	}
}

func (a *app) requestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "request <provider>",
		Short: "Ask a restricted provider for approval to subscribe",
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
			sig, err := core.RequestSubscription(cmd.Context(), provider)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Requested subscription to "+provider.String(), sig.String())
		},
	}
}

func (a *app) qualityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quality <provider> <score>",
		Short: "Record a quality score for a provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := parsePublicKey("provider", args[0])
			if err != nil {
				return err
			}
			score, err := parseScore(args[1])
			if err != nil {
				return err
			}
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.StoreDataQuality(cmd.Context(), provider, score)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Stored quality score", sig.String())
		},
	}
}
