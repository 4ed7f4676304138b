package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/model"
	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// ErrProviderNFTMissing is returned by GetProviderTokenAccount when the
// provider holds no registration NFT account.
var ErrProviderNFTMissing = errors.New("provider does not have the required NFT")

func fetch[T any](ctx context.Context, c *Client, addr solana.PublicKey, decode func([]byte) (*T, error)) (*T, error) {
	data, err := c.getAccountData(ctx, addr)
	if err != nil {
		return nil, err
	}
	out, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", addr, err)
	}
	return out, nil
}

// GetState returns the global program state.
func (c *Client) GetState(ctx context.Context) (*program.State, error) {
	addr, err := c.addrs.State()
	if err != nil {
		return nil, err
	}
	return fetch(ctx, c, addr, program.DecodeState)
}

// GetSubscriptionState returns the subscription of subscriber to provider.
func (c *Client) GetSubscriptionState(ctx context.Context, subscriber, provider solana.PublicKey) (*program.Subscription, error) {
	addr, err := c.addrs.Subscription(subscriber, provider)
	if err != nil {
		return nil, err
	}
	return c.GetSubscriptionAt(ctx, addr)
}

// GetSubscriptionAt returns the subscription stored at addr.
func (c *Client) GetSubscriptionAt(ctx context.Context, addr solana.PublicKey) (*program.Subscription, error) {
	return fetch(ctx, c, addr, program.DecodeSubscription)
}

// GetQualityInfo returns the quality history of provider.
func (c *Client) GetQualityInfo(ctx context.Context, provider solana.PublicKey) (*program.QualityInfo, error) {
	addr, err := c.addrs.QualityInfo(provider)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, c, addr, program.DecodeQualityInfo)
}

// GetSubscriptionRequests returns the subscription requests of provider.
func (c *Client) GetSubscriptionRequests(ctx context.Context, provider solana.PublicKey) (*program.SubscriptionRequests, error) {
	addr, err := c.addrs.SubscriptionRequests(provider)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, c, addr, program.DecodeSubscriptionRequests)
}

// GetDataProviderFee returns the fee account of provider.
func (c *Client) GetDataProviderFee(ctx context.Context, provider solana.PublicKey) (*program.DataProviderFee, error) {
	addr, err := c.addrs.DataProviderFee(provider)
	if err != nil {
		return nil, err
	}
	return fetch(ctx, c, addr, program.DecodeDataProviderFee)
}

// GetAgentProfile returns the registration of provider joined with its fee.
// A missing fee account yields a zero fee.
func (c *Client) GetAgentProfile(ctx context.Context, provider solana.PublicKey) (*model.AgentProfile, error) {
	regAddr, err := c.addrs.AgentRegistration(provider)
	if err != nil {
		return nil, err
	}
	feeAddr, err := c.addrs.DataProviderFee(provider)
	if err != nil {
		return nil, err
	}

	accts, err := c.getAccounts(ctx, regAddr, feeAddr)
	if err != nil {
		return nil, err
	}
	if accts[0] == nil {
		return nil, fmt.Errorf("%s: %w", regAddr, ErrAccountNotFound)
	}
	reg, err := program.DecodeAgentRegistration(accts[0].Data.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", regAddr, err)
	}

	var fee uint64
	if accts[1] != nil {
		f, err := program.DecodeDataProviderFee(accts[1].Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", feeAddr, err)
		}
		fee = f.Fee
	}
	return c.agentProfile(regAddr, reg, fee), nil
}

func (c *Client) agentProfile(regAddr solana.PublicKey, reg *program.AgentRegistration, fee uint64) *model.AgentProfile {
	return &model.AgentProfile{
		Address:               reg.Address,
		Registration:          regAddr,
		Name:                  reg.Name,
		Description:           reg.Description,
		RestrictSubscriptions: reg.RestrictSubscriptions,
		Capabilities:          reg.Capabilities,
		Fee:                   fee,
		FeeTokens:             model.BaseUnitsToFee(fee, c.feeDecimals).String(),
	}
}

// ListAgents scans the program for agent registrations and joins each with
// its fee. Registrations that fail to decode are skipped.
func (c *Client) ListAgents(ctx context.Context) ([]model.AgentProfile, error) {
	rctx, cancel := withTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	start := time.Now()
	res, err := c.rpc.GetProgramAccountsWithOpts(rctx, c.addrs.ProgramID, &rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
		Filters: []rpc.RPCFilter{
			{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: 0,
					Bytes:  program.AcctAgentRegistration[:],
				},
			},
		},
	})
	c.metrics.ObserveRPC("getProgramAccounts", start)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent registrations: %w", err)
	}

	type entry struct {
		addr solana.PublicKey
		reg  *program.AgentRegistration
	}
	entries := make([]entry, 0, len(res))
	feeAddrs := make([]solana.PublicKey, 0, len(res))
	for _, item := range res {
		reg, err := program.DecodeAgentRegistration(item.Account.Data.GetBinary())
		if err != nil {
			zap.L().Warn("skipping undecodable agent registration", zap.Stringer("account", item.Pubkey), zap.Error(err))
			continue
		}
		feeAddr, err := c.addrs.DataProviderFee(reg.Address)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry{addr: item.Pubkey, reg: reg})
		feeAddrs = append(feeAddrs, feeAddr)
	}
	if len(entries) == 0 {
		return []model.AgentProfile{}, nil
	}

	fees, err := c.getAccounts(ctx, feeAddrs...)
	if err != nil {
		return nil, err
	}

	out := make([]model.AgentProfile, 0, len(entries))
	for i, e := range entries {
		var fee uint64
		if fees[i] != nil {
			if f, err := program.DecodeDataProviderFee(fees[i].Data.GetBinary()); err == nil {
				fee = f.Fee
			}
		}
		out = append(out, *c.agentProfile(e.addr, e.reg, fee))
	}
	return out, nil
}

// GetProviderTokenAccount returns the provider's associated token account
// of the registration NFT, failing with ErrProviderNFTMissing when it does
// not exist.
func (c *Client) GetProviderTokenAccount(ctx context.Context, provider solana.PublicKey) (solana.PublicKey, error) {
	ata, err := program.TokenAccount(provider, c.nftMint)
	if err != nil {
		return solana.PublicKey{}, err
	}
	exists, err := c.accountExists(ctx, ata)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !exists {
		return solana.PublicKey{}, fmt.Errorf("%s: %w", provider, ErrProviderNFTMissing)
	}
	return ata, nil
}

// GetTransactionEvents fetches a landed transaction and decodes the
// program events in its logs.
func (c *Client) GetTransactionEvents(ctx context.Context, sig solana.Signature) ([]program.Event, error) {
	ctx, cancel := withTimeout(ctx, c.timeouts.ChainRead)
	defer cancel()

	// getTransaction rejects the processed commitment.
	commitment := c.commitment
	if commitment == rpc.CommitmentProcessed {
		commitment = rpc.CommitmentConfirmed
	}
	maxVersion := uint64(0)

	start := time.Now()
	res, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     commitment,
		MaxSupportedTransactionVersion: &maxVersion,
	})
	c.metrics.ObserveRPC("getTransaction", start)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", sig, err)
	}
	if res == nil || res.Meta == nil {
		return nil, fmt.Errorf("transaction %s has no metadata", sig)
	}
	return program.ParseEventLogs(res.Meta.LogMessages)
}
