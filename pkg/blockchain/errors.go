package blockchain

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	// ErrPrivateKeyRequired is returned by transacting methods of a client
	// built without an EVM private key.
	ErrPrivateKeyRequired = errors.New("private key is required for transactions")
	// ErrContractNotConfigured is returned when a contract address was not
	// configured.
	ErrContractNotConfigured = errors.New("contract address not configured")
	// ErrTransactionFailed is returned when a mined transaction has a failed
	// receipt status.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrInvalidDuration is returned by CalculateFees for durations under a day.
	ErrInvalidDuration = errors.New("duration must be at least 1 day")
	// ErrScoreOutOfRange is returned by StoreReputationScore for scores above 100.
	ErrScoreOutOfRange = errors.New("score must be between 0 and 100")
)

// Custom errors reverted by the subscription manager contract.
const (
	RevertAlreadySubscribed          = "AlreadySubscribed"
	RevertSubscriptionPeriodTooShort = "SubscriptionPeriodTooShort"
	RevertLessSubscriptionFeeSent    = "LessSubscriptionFeeSent"
	RevertSubscriptionNotFound       = "SubscriptionNotFound"
)

// errorSelectors maps the 4-byte selector of each custom error to its name.
var errorSelectors = func() map[[4]byte]string {
	out := make(map[[4]byte]string)
	for _, name := range []string{
		RevertAlreadySubscribed,
		RevertSubscriptionPeriodTooShort,
		RevertLessSubscriptionFeeSent,
		RevertSubscriptionNotFound,
	} {
		out[ErrorSelector(name)] = name
	}
	return out
}()

// ErrorSelector returns the selector of the parameterless custom error name.
func ErrorSelector(name string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(name+"()"))[:4])
	return sel
}

// ContractError is a revert with a known custom error selector.
type ContractError struct {
	Name     string
	Selector [4]byte
	Err      error
}

func (e *ContractError) Error() string {
	return e.Name
}

func (e *ContractError) Unwrap() error { return e.Err }

// Is matches another *ContractError with the same name.
func (e *ContractError) Is(target error) bool {
	t, ok := target.(*ContractError)
	return ok && t.Name == e.Name
}

// DecodeContractError maps a revert carrying a known custom error selector
// to *ContractError. Any other error is returned unchanged.
func DecodeContractError(err error) error {
	if err == nil {
		return nil
	}
	var ce *ContractError
	if errors.As(err, &ce) {
		return err
	}
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return err
	}
	data := revertData(dataErr.ErrorData())
	if len(data) < 4 {
		return err
	}
	var sel [4]byte
	copy(sel[:], data[:4])
	name, ok := errorSelectors[sel]
	if !ok {
		return err
	}
	return &ContractError{Name: name, Selector: sel, Err: err}
}

func revertData(v interface{}) []byte {
	switch d := v.(type) {
	case string:
		b, err := hexutil.Decode(d)
		if err != nil {
			return nil
		}
		return b
	case []byte:
		return d
	case hexutil.Bytes:
		return d
	default:
		return nil
	}
}

func txFailed(hash fmt.Stringer) error {
	return fmt.Errorf("%s: %w", hash, ErrTransactionFailed)
}
