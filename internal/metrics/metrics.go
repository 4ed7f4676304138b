// Package metrics holds the Prometheus collectors reported by the SDK's
// clients. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Instruction outcomes used as the status label.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics holds all collectors of one SDK instance.
type Metrics struct {
	// Submitted instructions by program instruction name and outcome
	Instructions *prometheus.CounterVec

	// Program errors by custom error code
	ProgramErrors *prometheus.CounterVec

	// Solana RPC round-trip latency by JSON-RPC method
	RPCDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default /metrics
// handler, or a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Instructions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxn_instructions_total",
				Help: "Total number of program instructions submitted",
			},
			[]string{"instruction", "status"}, // status: ok, error
		),

		ProgramErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxn_program_errors_total",
				Help: "Total number of coded program errors returned by the chain",
			},
			[]string{"code"},
		),

		RPCDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxn_rpc_duration_seconds",
				Help:    "Duration of Solana JSON-RPC calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
}

// RecordInstruction records the outcome of a submitted instruction.
func (m *Metrics) RecordInstruction(name string, err error) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.Instructions.WithLabelValues(name, status).Inc()
}

// RecordProgramError counts a coded program failure.
func (m *Metrics) RecordProgramError(code string) {
	if m == nil {
		return
	}
	m.ProgramErrors.WithLabelValues(code).Inc()
}

// ObserveRPC records the latency of an RPC call started at start.
func (m *Metrics) ObserveRPC(method string, start time.Time) {
	if m == nil {
		return
	}
	m.RPCDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
