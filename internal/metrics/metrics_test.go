package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordInstruction(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordInstruction("subscribe", nil)
	m.RecordInstruction("subscribe", nil)
	m.RecordInstruction("subscribe", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Instructions.WithLabelValues("subscribe", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Instructions.WithLabelValues("subscribe", StatusError)))
}

func TestRecordProgramError(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.RecordProgramError("6005")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProgramErrors.WithLabelValues("6005")))
}

func TestObserveRPC(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.ObserveRPC("getAccountInfo", time.Now())

	count, err := testutil.GatherAndCount(reg, "fxn_rpc_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestObserveRPC_Help(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg).ObserveRPC("getMultipleAccounts", time.Now())

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "fxn_rpc_duration_seconds" {
			assert.Equal(t, "Duration of Solana JSON-RPC calls", mf.GetHelp())
			return
		}
	}
	t.Fatal("fxn_rpc_duration_seconds not gathered")
}

// TestNilMetrics verifies that a nil receiver is a no-op.
func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.RecordInstruction("subscribe", nil)
	m.RecordProgramError("6000")
	m.ObserveRPC("getAccountInfo", time.Now())
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
