package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/wallet"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"go.uber.org/zap"
)

// ErrRequestNotFound is returned by ApproveSubscriptionRequest when the
// subscriber has no pending request with the signer.
var ErrRequestNotFound = errors.New("subscription request not found")

// mintAccountSize is the size of an SPL token mint account.
const mintAccountSize = 82

// RegisterAgent publishes the signer's agent profile and fee.
func (c *Client) RegisterAgent(ctx context.Context, p model.AgentParams) (solana.Signature, error) {
	provider, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	args, err := c.agentArgs(p)
	if err != nil {
		return solana.Signature{}, err
	}

	addrs, err := c.addrs.Provider(provider)
	if err != nil {
		return solana.Signature{}, err
	}
	paymentATA, err := program.TokenAccount(provider, c.fxnMint)
	if err != nil {
		return solana.Signature{}, err
	}

	ix, err := program.NewRegisterAgent(c.addrs.ProgramID, args, program.RegisterAgentAccounts{
		AgentRegistration:      addrs.AgentRegistration,
		SubscriptionRequests:   addrs.SubscriptionRequests,
		DataProviderFee:        addrs.DataProviderFee,
		DataProviderPaymentATA: paymentATA,
		DataProvider:           provider,
		TokenMint:              c.fxnMint,
		State:                  addrs.State,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to register agent", zap.String("name", p.Name), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// EditAgentData replaces the signer's agent profile and fee.
func (c *Client) EditAgentData(ctx context.Context, p model.AgentParams) (solana.Signature, error) {
	provider, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	args, err := c.agentArgs(p)
	if err != nil {
		return solana.Signature{}, err
	}

	addrs, err := c.addrs.Provider(provider)
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := program.NewEditAgentData(c.addrs.ProgramID, args, program.EditAgentDataAccounts{
		AgentRegistration: addrs.AgentRegistration,
		DataProviderFee:   addrs.DataProviderFee,
		DataProvider:      provider,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to edit agent data", zap.String("name", p.Name), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

func (c *Client) agentArgs(p model.AgentParams) (program.AgentDataArgs, error) {
	fee, err := model.FeeToBaseUnits(p.Fee, c.feeDecimals)
	if err != nil {
		return program.AgentDataArgs{}, err
	}
	capabilities := p.Capabilities
	if capabilities == nil {
		capabilities = []string{}
	}
	return program.AgentDataArgs{
		Name:                  p.Name,
		Description:           p.Description,
		RestrictSubscriptions: p.RestrictSubscriptions,
		Capabilities:          capabilities,
		Fee:                   fee,
	}, nil
}

// ApproveSubscriptionRequest approves subscriber's pending request with the
// signer. The request index is looked up from the provider's
// SubscriptionRequests account.
func (c *Client) ApproveSubscriptionRequest(ctx context.Context, subscriber solana.PublicKey) (solana.Signature, error) {
	provider, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}

	requestsAddr, err := c.addrs.SubscriptionRequests(provider)
	if err != nil {
		return solana.Signature{}, err
	}
	requests, err := c.GetSubscriptionRequests(ctx, provider)
	if err != nil {
		return solana.Signature{}, err
	}
	idx := requests.IndexOf(subscriber)
	if idx < 0 {
		return solana.Signature{}, fmt.Errorf("%s: %w", subscriber, ErrRequestNotFound)
	}

	ix, err := program.NewApproveRequest(c.addrs.ProgramID, uint64(idx), program.ApproveRequestAccounts{
		Subscriber:           subscriber,
		DataProvider:         provider,
		SubscriptionRequests: requestsAddr,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to approve subscription request", zap.Stringer("subscriber", subscriber), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// SetDataProviderFee sets the signer's per-subscription fee. p.Fee is in
// whole token units.
func (c *Client) SetDataProviderFee(ctx context.Context, p model.SetDataProviderFeeParams) (solana.Signature, error) {
	provider, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}
	fee, err := model.FeeToBaseUnits(p.Fee, c.feeDecimals)
	if err != nil {
		return solana.Signature{}, err
	}

	feeAddr, err := c.addrs.DataProviderFee(provider)
	if err != nil {
		return solana.Signature{}, err
	}
	ix, err := program.NewSetDataProviderFee(c.addrs.ProgramID, fee, program.SetDataProviderFeeAccounts{
		DataProviderFee: feeAddr,
		DataProvider:    provider,
	})
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.send(ctx, []solana.Instruction{ix})
	if err != nil {
		zap.L().Error("Failed to set data provider fee", zap.Uint64("fee", fee), zap.Error(err))
		return solana.Signature{}, err
	}
	return sig, nil
}

// RegistrationToken is a freshly minted provider registration token.
type RegistrationToken struct {
	Mint         solana.PublicKey
	TokenAccount solana.PublicKey
	Signature    solana.Signature
}

// MintRegistrationToken creates a new zero-decimal mint owned by the
// signer, creates the signer's associated token account for it and mints
// one token into it, all in one transaction.
func (c *Client) MintRegistrationToken(ctx context.Context) (*RegistrationToken, error) {
	owner, err := c.requireSigner()
	if err != nil {
		return nil, err
	}

	mint, err := wallet.Generate()
	if err != nil {
		return nil, err
	}
	mintKey := mint.PublicKey()

	tokenAccount, err := program.TokenAccount(owner, mintKey)
	if err != nil {
		return nil, err
	}

	rctx, cancel := withTimeout(ctx, c.timeouts.ChainRead)
	rent, err := c.rpc.GetMinimumBalanceForRentExemption(rctx, mintAccountSize, c.commitment)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to get rent exemption: %w", err)
	}

	createIx, err := system.NewCreateAccountInstruction(rent, mintAccountSize, solana.TokenProgramID, owner, mintKey).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	initIx, err := token.NewInitializeMintInstruction(0, owner, owner, mintKey, solana.SysVarRentPubkey).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	ataIx, err := associatedtokenaccount.NewCreateInstruction(owner, owner, mintKey).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	mintIx, err := token.NewMintToInstruction(1, mintKey, tokenAccount, owner, nil).ValidateAndBuild()
	if err != nil {
		return nil, err
	}

	sig, err := c.send(ctx, []solana.Instruction{createIx, initIx, ataIx, mintIx}, mint.PrivateKey())
	if err != nil {
		zap.L().Error("Failed to mint registration token", zap.Error(err))
		return nil, err
	}
	return &RegistrationToken{Mint: mintKey, TokenAccount: tokenAccount, Signature: sig}, nil
}
