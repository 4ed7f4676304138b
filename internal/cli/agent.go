package cli

import (
	"strconv"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func (a *app) agentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Register and manage data provider agents",
	}
	cmd.AddCommand(
		a.agentRegisterCommand(),
		a.agentEditCommand(),
		a.agentShowCommand(),
		a.agentListCommand(),
		a.agentFeeCommand(),
		a.agentRequestsCommand(),
		a.agentApproveCommand(),
		a.agentMintTokenCommand(),
		a.agentListsCommand(),
	)
	return cmd
}

func agentFlags(cmd *cobra.Command, p *model.AgentParams) {
	cmd.Flags().StringVar(&p.Name, "name", "", "agent name")
	cmd.Flags().StringVar(&p.Description, "description", "", "agent description")
	cmd.Flags().StringSliceVar(&p.Capabilities, "capability", nil, "agent capability (repeatable)")
	cmd.Flags().Float64Var(&p.Fee, "fee", 0, "subscription fee in whole tokens")
	cmd.Flags().BoolVar(&p.RestrictSubscriptions, "restrict", false, "require approval of subscription requests")
}

func (a *app) agentRegisterCommand() *cobra.Command {
	var p model.AgentParams
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register the configured wallet as a data provider agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.RegisterAgent(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Registered agent "+p.Name, sig.String())
		},
	}
	agentFlags(cmd, &p)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) agentEditCommand() *cobra.Command {
	var p model.AgentParams
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace the profile of the configured agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.EditAgentData(cmd.Context(), p)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Updated agent "+p.Name, sig.String())
		},
	}
	agentFlags(cmd, &p)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func agentRows(p model.AgentProfile) []row {
	return []row{
		{"Agent", p.Address.String()},
		{"Name", p.Name},
		{"Description", p.Description},
		{"Capabilities", joinOrDash(p.Capabilities)},
		{"Restricted", strconv.FormatBool(p.RestrictSubscriptions)},
		{"Fee", p.FeeTokens},
	}
}

func (a *app) agentShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <provider>",
		Short: "Show an agent profile",
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
			profile, err := core.GetAgentProfile(cmd.Context(), provider)
			if err != nil {
				return err
			}
			return a.printer(cmd).result("Agent profile", profile, agentRows(*profile)...)
		},
	}
}

func (a *app) agentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered agent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			agents, err := core.ListAgents(cmd.Context())
			if err != nil {
				return err
			}
			blocks := make([][]row, 0, len(agents))
			for _, ag := range agents {
				blocks = append(blocks, agentRows(ag))
			}
			return a.printer(cmd).list("Agents", agents, blocks)
		},
	}
}

func (a *app) agentFeeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-fee <fee>",
		Short: "Set the subscription fee of the configured agent, in whole tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fee, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.SetDataProviderFee(cmd.Context(), model.SetDataProviderFeeParams{Fee: fee})
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Updated provider fee", sig.String())
		},
	}
}

func (a *app) agentRequestsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "requests [provider]",
		Short: "List subscription requests (default: the configured agent)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			provider := core.PublicKey()
			if len(args) == 1 {
				if provider, err = parsePublicKey("provider", args[0]); err != nil {
					return err
				}
			}
			reqs, err := core.GetSubscriptionRequests(cmd.Context(), provider)
			if err != nil {
				return err
			}

			type requestJSON struct {
				Subscriber solana.PublicKey `json:"subscriber"`
				Approved   bool             `json:"approved"`
			}
			out := make([]requestJSON, 0, len(reqs.Requests))
			blocks := make([][]row, 0, len(reqs.Requests))
			for _, r := range reqs.Requests {
				out = append(out, requestJSON{Subscriber: r.SubscriberPubkey, Approved: r.Approved})
				blocks = append(blocks, []row{
					{"Subscriber", r.SubscriberPubkey.String()},
					{"Approved", strconv.FormatBool(r.Approved)},
				})
			}
			return a.printer(cmd).list("Subscription requests", out, blocks)
		},
	}
}

func (a *app) agentApproveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <subscriber>",
		Short: "Approve a pending subscription request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subscriber, err := parsePublicKey("subscriber", args[0])
			if err != nil {
				return err
			}
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.ApproveSubscriptionRequest(cmd.Context(), subscriber)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Approved "+subscriber.String(), sig.String())
		},
	}
}

func (a *app) agentMintTokenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mint-token",
		Short: "Mint a registration token to the configured wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			tok, err := core.MintRegistrationToken(cmd.Context())
			if err != nil {
				return err
			}
			return a.printer(cmd).result("Registration token minted", map[string]string{
				"mint":          tok.Mint.String(),
				"token_account": tok.TokenAccount.String(),
				"signature":     tok.Signature.String(),
			},
				row{"Mint", tok.Mint.String()},
				row{"Token account", tok.TokenAccount.String()},
				row{"Signature", tok.Signature.String()})
		},
	}
}

func (a *app) agentListsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare-lists <provider>",
		Short: "Create or grow the subscription lists linking the wallet and a provider",
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
			steps, err := core.EnsureSubscriptionLists(cmd.Context(), provider)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(steps))
			for _, s := range steps {
				names = append(names, s.String())
			}
			return a.printer(cmd).result("Subscription lists ready", names, row{"Steps", joinOrDash(names)})
		},
	}
}
