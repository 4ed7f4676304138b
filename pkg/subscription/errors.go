package subscription

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"

	"github.com/fxn-protocol/fxn-sdk-go/pkg/program"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// ErrWalletNotConnected is returned by write operations when the client has
// no signer.
var ErrWalletNotConnected = errors.New("wallet not connected")

var (
	customHexRe   = regexp.MustCompile(`custom program error: 0x([0-9a-fA-F]+)`)
	errorNumberRe = regexp.MustCompile(`Error Number: (\d+)`)
)

// NormalizeError maps a failure carrying a custom program error code to a
// *program.ProgramError. The code is taken, in order, from the structured
// error data of an RPC error or landed transaction, from "Error Number: N"
// in simulation logs, or from a "custom program error: 0x.." message.
// Any other error is returned unchanged.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}
	var pe *program.ProgramError
	if errors.As(err, &pe) {
		return err
	}

	detail := err.Error()

	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		detail = rpcErr.Message
		if data, ok := rpcErr.Data.(map[string]interface{}); ok {
			if code, ok := customCode(data["err"]); ok {
				return program.NewProgramError(code, detail)
			}
			if code, ok := codeFromLogs(data["logs"]); ok {
				return program.NewProgramError(code, detail)
			}
		}
	}

	var txErr *TransactionError
	if errors.As(err, &txErr) {
		if code, ok := customCode(txErr.Err); ok {
			return program.NewProgramError(code, detail)
		}
	}

	if m := errorNumberRe.FindStringSubmatch(detail); m != nil {
		if code, err := strconv.ParseUint(m[1], 10, 32); err == nil {
			return program.NewProgramError(uint32(code), detail)
		}
	}
	if m := customHexRe.FindStringSubmatch(detail); m != nil {
		if code, err := strconv.ParseUint(m[1], 16, 32); err == nil {
			return program.NewProgramError(uint32(code), detail)
		}
	}
	return err
}

// customCode extracts N from {"InstructionError": [idx, {"Custom": N}]}.
func customCode(v interface{}) (uint32, bool) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return 0, false
	}
	ie, ok := m["InstructionError"].([]interface{})
	if !ok || len(ie) != 2 {
		return 0, false
	}
	inner, ok := ie[1].(map[string]interface{})
	if !ok {
		return 0, false
	}
	return toUint32(inner["Custom"])
}

func codeFromLogs(v interface{}) (uint32, bool) {
	lines, ok := v.([]interface{})
	if !ok {
		return 0, false
	}
	for _, l := range lines {
		s, ok := l.(string)
		if !ok {
			continue
		}
		if m := errorNumberRe.FindStringSubmatch(s); m != nil {
			if code, err := strconv.ParseUint(m[1], 10, 32); err == nil {
				return uint32(code), true
			}
		}
		if m := customHexRe.FindStringSubmatch(s); m != nil {
			if code, err := strconv.ParseUint(m[1], 16, 32); err == nil {
				return uint32(code), true
			}
		}
	}
	return 0, false
}

func toUint32(v interface{}) (uint32, bool) {
	switch n := v.(type) {
	case json.Number:
		code, err := strconv.ParseUint(n.String(), 10, 32)
		return uint32(code), err == nil
	case float64:
		if n < 0 || n > math.MaxUint32 || n != float64(uint32(n)) {
			return 0, false
		}
		return uint32(n), true
	case int:
		if n < 0 || uint64(n) > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case int64:
		if n < 0 || n > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case uint32:
		return n, true
	case uint64:
		return uint32(n), n <= math.MaxUint32
	default:
		return 0, false
	}
}
