package subscription

import (
	"context"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// InitializeProgram creates the program State with the signer as owner.
// nftProgram is the registration NFT mint and paymentMint the SPL token
// used for fees; zero keys fall back to the configured mints.
func (c *Client) InitializeProgram(ctx context.Context, nftProgram, paymentMint solana.PublicKey) (solana.Signature, error) {
	owner, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	if nftProgram.IsZero() {
		nftProgram = c.nftMint
	}
	if paymentMint.IsZero() {
		paymentMint = c.fxnMint
	}

	state, err := c.addrs.State()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := program.NewInitialize(c.addrs.ProgramID, program.InitializeAccounts{
		State:           state,
		Owner:           owner,
		NftProgram:      nftProgram,
		PaymentSplToken: paymentMint,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to initialize program", zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// SetFeePerDay updates the daily subscription fee, in base units. Only the
// program owner may call it.
func (c *Client) SetFeePerDay(ctx context.Context, fee uint64) (solana.Signature, error) {
	return c.setOwnerFee(ctx, program.NewSetFeePerDay, fee, "fee per day")
}

// SetCollectorFee updates the collector fee, in base units. Only the
// program owner may call it.
func (c *Client) SetCollectorFee(ctx context.Context, fee uint64) (solana.Signature, error) {
	return c.setOwnerFee(ctx, program.NewSetCollectorFee, fee, "collector fee")
}

func (c *Client) setOwnerFee(ctx context.Context, build func(solana.PublicKey, uint64, program.OwnerAccounts) (*program.Instruction, error), fee uint64, what string) (solana.Signature, error) {
	owner, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	state, err := c.addrs.State()
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := build(c.addrs.ProgramID, fee, program.OwnerAccounts{State: state, Owner: owner})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to set "+what, zap.Uint64("fee", fee), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}
