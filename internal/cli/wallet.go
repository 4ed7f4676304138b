package cli

import (
	"errors"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/wallet"
	"github.com/spf13/cobra"
)

func (a *app) walletCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Create and inspect Solana keypairs",
	}

	var out string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a keypair in solana-keygen format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			signer, err := wallet.Generate()
			if err != nil {
				return err
			}
			if err := signer.SaveKeygenFile(out); err != nil {
				return err
			}
			return a.printer(cmd).result("Keypair created", map[string]string{
				"public_key": signer.PublicKey().String(),
				"path":       out,
			},
				row{"Public key", signer.PublicKey().String()},
				row{"Path", out})
		},
	}
	newCmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	_ = newCmd.MarkFlagRequired("out")

	addressCmd := &cobra.Command{
		Use:   "address",
		Short: "Print the public key of the configured wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			core, err := a.sdk(cmd)
			if err != nil {
				return err
			}
			if core.Signer() == nil {
				return errors.New("no wallet configured: set FXN_PRIVATE_KEY, FXN_KEYPAIR or --keypair")
			}
			pk := core.PublicKey().String()
			return a.printer(cmd).result("Wallet", map[string]string{"public_key": pk}, row{"Public key", pk})
		},
	}

	cmd.AddCommand(newCmd, addressCmd)
	return cmd
}
