package cli

import (
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

func (a *app) adminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Owner-only program administration",
	}

	var nftProgram, paymentMint string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the program state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nft, err := parsePublicKey("NFT program", nftProgram)
			if err != nil {
				return err
			}
			mint, err := parsePublicKey("payment mint", paymentMint)
			if err != nil {
				return err
			}
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			sig, err := core.InitializeProgram(cmd.Context(), nft, mint)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Initialized program "+core.ProgramID().String(), sig.String())
		},
	}
	initCmd.Flags().StringVar(&nftProgram, "nft-program", "", "provider NFT program")
	initCmd.Flags().StringVar(&paymentMint, "payment-mint", "", "payment token mint")
	_ = initCmd.MarkFlagRequired("nft-program")
	_ = initCmd.MarkFlagRequired("payment-mint")

	cmd.AddCommand(
		initCmd,
		a.ownerFeeCommand("set-fee-per-day", "Set the daily subscription fee, in base units", func(cmd *cobra.Command, fee uint64) (solana.Signature, error) {
			core, err := a.sdk(cmd)
			if err != nil {
				return solana.Signature{}, err
			}
			return core.SetFeePerDay(cmd.Context(), fee)
		}),
		a.ownerFeeCommand("set-collector-fee", "Set the collector fee, in base units", func(cmd *cobra.Command, fee uint64) (solana.Signature, error) {
			core, err := a.sdk(cmd)
			if err != nil {
				return solana.Signature{}, err
			}
			return core.SetCollectorFee(cmd.Context(), fee)
		}),
	)
	return cmd
}

func (a *app) ownerFeeCommand(use, short string, set func(*cobra.Command, uint64) (solana.Signature, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <amount>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fee, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}
			sig, err := set(cmd, fee)
			if err != nil {
				return err
			}
			return a.printer(cmd).signature("Fee updated", sig.String())
		},
	}
}
