// SPDX-License-Identifier: MIT

package session

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/blochlab/model"
)

// Operation labels.
const (
	opApplyGate      = "apply_gate"
	opApplyOperation = "apply_operation"
	opSetState       = "set_state"
	opEditState      = "edit_state"
	opUndo           = "undo"
	opRedo           = "redo"
)

// Result labels.
const (
	resultOK       = "ok"
	resultRejected = "rejected"
)

// Metrics holds the session collectors. A nil *Metrics records nothing.
type Metrics struct {
	Mutations     *prometheus.CounterVec   // op, result
	Rejections    *prometheus.CounterVec   // op, reason
	Duration      *prometheus.HistogramVec // op
	HistoryLength prometheus.Gauge
	Purity        prometheus.Gauge
}

// NewMetrics registers the collectors on reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Mutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_mutations_total",
			Help:      "Session mutations by operation and result",
		}, []string{"op", "result"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_rejections_total",
			Help:      "Rejected mutations by operation and failure class",
		}, []string{"op", "reason"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_mutation_duration_seconds",
			Help:      "Time to validate and record a mutation",
			Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		}, []string{"op"}),
		HistoryLength: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_history_length",
			Help:      "Number of history elements, undone ones included",
		}),
		Purity: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_state_purity",
			Help:      "tr(rho^2) of the live state",
		}),
	}
}

func (m *Metrics) observe(op string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.Duration.WithLabelValues(op).Observe(seconds)
	if err == nil {
		m.Mutations.WithLabelValues(op, resultOK).Inc()
		return
	}
	m.Mutations.WithLabelValues(op, resultRejected).Inc()
	m.Rejections.WithLabelValues(op, reason(err)).Inc()
}

func (m *Metrics) state(historyLen int, purity float64) {
	if m == nil {
		return
	}
	m.HistoryLength.Set(float64(historyLen))
	m.Purity.Set(purity)
}

// reason maps an error onto a bounded label set.
func reason(err error) string {
	switch {
	case errors.Is(err, model.ErrConstraint):
		return "constraint"
	case errors.Is(err, model.ErrEvaluation), errors.Is(err, model.ErrNotFinite), errors.Is(err, model.ErrShape):
		return "invalid_input"
	case errors.Is(err, model.ErrNotUnitary):
		return "not_unitary"
	case errors.Is(err, model.ErrNotHermitian):
		return "not_hermitian"
	case errors.Is(err, model.ErrNotPositive):
		return "not_positive"
	case errors.Is(err, model.ErrTraceNotOne), errors.Is(err, model.ErrImaginaryTrace):
		return "trace"
	case errors.Is(err, model.ErrIncomplete):
		return "incomplete"
	case errors.Is(err, model.ErrNilMatrix), errors.Is(err, ErrNilInput):
		return "nil_input"
	default:
		return "other"
	}
}
