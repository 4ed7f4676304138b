package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"go.uber.org/zap"
)

// ErrConfirmTimeout is returned when a submitted transaction does not reach
// the configured commitment within Timeouts.ConfirmWait. The transaction may
// still land.
var ErrConfirmTimeout = errors.New("transaction confirmation timed out")

// TransactionError is a transaction that landed but failed on chain with a
// non-custom error.
type TransactionError struct {
	Signature solana.Signature
	Err       interface{}
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

// send builds, signs, submits and confirms a transaction carrying ixs, paid
// by the configured signer. extraSigners sign alongside it (for example a
// freshly generated mint account).
func (c *Client) send(ctx context.Context, ixs []solana.Instruction, extraSigners ...solana.PrivateKey) (solana.Signature, error) {
	payer, err := c.requireSigner()
	if err != nil {
		return solana.Signature{}, err
	}

	sig, err := c.submit(ctx, payer, ixs, extraSigners)
	if err == nil {
		err = c.confirm(ctx, sig)
	}
	err = c.normalize(err)

	for _, ix := range ixs {
		if pix, ok := ix.(*program.Instruction); ok {
			c.metrics.RecordInstruction(pix.Name(), err)
		}
	}
	return sig, err
}

func (c *Client) submit(ctx context.Context, payer solana.PublicKey, ixs []solana.Instruction, extraSigners []solana.PrivateKey) (solana.Signature, error) {
	ctx, cancel := withTimeout(ctx, c.timeouts.ChainSubmit)
	defer cancel()

	start := time.Now()
	latest, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	c.metrics.ObserveRPC("getLatestBlockhash", start)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(ixs, latest.Value.Blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	signerKey := c.signer.PrivateKey()
	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(payer) {
			return &signerKey
		}
		for i := range extraSigners {
			if extraSigners[i].PublicKey().Equals(key) {
				return &extraSigners[i]
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	start = time.Now()
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       c.skipPreflight,
		PreflightCommitment: c.commitment,
	})
	c.metrics.ObserveRPC("sendTransaction", start)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

func (c *Client) confirm(ctx context.Context, sig solana.Signature) error {
	ctx, cancel := withTimeout(ctx, c.timeouts.ConfirmWait)
	defer cancel()

	start := time.Now()
	err := c.confirmer.confirm(ctx, sig)
	c.metrics.ObserveRPC("confirmTransaction", start)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", sig, ErrConfirmTimeout)
	}
	return err
}

// normalize maps coded program failures to *program.ProgramError and counts
// them.
func (c *Client) normalize(err error) error {
	if err == nil {
		return nil
	}
	err = NormalizeError(err)
	var pe *program.ProgramError
	if errors.As(err, &pe) {
		c.metrics.RecordProgramError(fmt.Sprint(uint32(pe.Code)))
	}
	return err
}

type confirmer interface {
	confirm(ctx context.Context, sig solana.Signature) error
}

// commitmentRank orders confirmation levels so a status can be compared
// against the requested commitment.
func commitmentRank(s string) int {
	switch s {
	case string(rpc.CommitmentProcessed):
		return 1
	case string(rpc.CommitmentConfirmed):
		return 2
	case string(rpc.CommitmentFinalized):
		return 3
	default:
		return 0
	}
}

type pollConfirmer struct {
	rpc        RPCClient
	commitment rpc.CommitmentType
	interval   time.Duration
}

func (p *pollConfirmer) confirm(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		res, err := p.rpc.GetSignatureStatuses(ctx, false, sig)
		if err != nil && ctx.Err() == nil {
			zap.L().Debug("signature status poll failed", zap.Stringer("signature", sig), zap.Error(err))
		}
		if err == nil && len(res.Value) == 1 && res.Value[0] != nil {
			st := res.Value[0]
			if st.Err != nil {
				return &TransactionError{Signature: sig, Err: st.Err}
			}
			if commitmentRank(string(st.ConfirmationStatus)) >= commitmentRank(string(p.commitment)) {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

type wsConfirmer struct {
	client     *ws.Client
	commitment rpc.CommitmentType
}

func (w *wsConfirmer) confirm(ctx context.Context, sig solana.Signature) error {
	sub, err := w.client.SignatureSubscribe(sig, w.commitment)
	if err != nil {
		return fmt.Errorf("failed to subscribe to signature: %w", err)
	}
	defer sub.Unsubscribe()

	res, err := sub.Recv(ctx)
	if err != nil {
		return err
	}
	if res.Value.Err != nil {
		return &TransactionError{Signature: sig, Err: res.Value.Err}
	}
	return nil
}
