// SPDX-License-Identifier: MIT

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/blochlab/history"
	"github.com/katalvlaran/blochlab/model"
)

// ErrNilInput indicates a nil state, gate or operation argument.
var ErrNilInput = errors.New("session: nil input")

// Session is one live state and its history. All methods are safe for
// concurrent use.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	live    *model.DensityMatrix
	hist    *history.History
	log     *slog.Logger
	tracer  trace.Tracer
	metrics *Metrics
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. Nil selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l == nil {
			l = slog.Default()
		}
		s.log = l
	}
}

// WithTracer replaces the global "blochlab.session" tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithMetrics records mutations on m.
func WithMetrics(m *Metrics) Option {
	return func(s *Session) { s.metrics = m }
}

// New starts a session on a private clone of initial.
// Errors: ErrNilInput.
func New(initial *model.DensityMatrix, opts ...Option) (*Session, error) {
	if initial == nil {
		return nil, fmt.Errorf("session.New: %w", ErrNilInput)
	}
	s := &Session{
		id:     uuid.New(),
		live:   initial.Clone(),
		log:    slog.Default(),
		tracer: otel.Tracer("blochlab.session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("session", s.id.String())

	h, err := history.New(s.live, history.WithLogger(s.log))
	if err != nil {
		return nil, fmt.Errorf("session.New: %w", err)
	}
	s.hist = h
	s.metrics.state(h.Len(), s.live.Purity())
	s.log.Info("session started", "state", initial.Label())

	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// ApplyGate evolves the live state by g and records the step.
// Errors: ErrNilInput, or the model sentinel that rejected the result.
func (s *Session) ApplyGate(ctx context.Context, g *model.GateMatrix) error {
	if g == nil {
		return s.reject(ctx, opApplyGate, fmt.Errorf("Session.ApplyGate: %w", ErrNilInput))
	}

	return s.mutate(ctx, opApplyGate, []attribute.KeyValue{attribute.String("gate", g.LabelWithParams())},
		func() (*model.GateMatrix, error) { return g, s.live.ApplyGate(g) })
}

// ApplyOperation evolves the live state through a noise channel. The step
// is recorded as a checkpoint: a channel draws no rotation arc.
// Errors: ErrNilInput, model.ErrIncomplete, or the model sentinel that
// rejected the result.
func (s *Session) ApplyOperation(ctx context.Context, op *model.QuantumOperation) error {
	if op == nil {
		return s.reject(ctx, opApplyOperation, fmt.Errorf("Session.ApplyOperation: %w", ErrNilInput))
	}

	return s.mutate(ctx, opApplyOperation, []attribute.KeyValue{attribute.String("operation", op.Name())},
		func() (*model.GateMatrix, error) { return nil, s.live.ApplyOperation(op) })
}

// SetState overwrites the live state with next and records a checkpoint.
// Errors: ErrNilInput.
func (s *Session) SetState(ctx context.Context, next *model.DensityMatrix) error {
	if next == nil {
		return s.reject(ctx, opSetState, fmt.Errorf("Session.SetState: %w", ErrNilInput))
	}

	return s.mutate(ctx, opSetState, []attribute.KeyValue{attribute.String("state", next.Label())},
		func() (*model.GateMatrix, error) { return nil, s.live.CopyFrom(next) })
}

// EditState sets the live state from expressions and records a checkpoint.
// Errors: the model sentinel that rejected the grid.
func (s *Session) EditState(ctx context.Context, exprs [][]string, mult string) error {
	return s.mutate(ctx, opEditState, []attribute.KeyValue{attribute.String("mult", mult)},
		func() (*model.GateMatrix, error) { return nil, s.live.SetFromExpressions(exprs, mult) })
}

// mutate runs edit on the live state under the lock and records the step
// on success. edit returns the gate to record, nil for a checkpoint.
func (s *Session) mutate(ctx context.Context, op string, attrs []attribute.KeyValue,
	edit func() (*model.GateMatrix, error)) error {
	ctx, span := s.tracer.Start(ctx, "session."+op, trace.WithAttributes(attrs...))
	defer span.End()
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return s.fail(span, op, start, err)
	}

	// Stage 1: edit the live state; a rejected edit leaves it untouched.
	before := s.live.Clone()
	gate, err := edit()
	if err != nil {
		s.live.SetConsistent(false)
		s.live.SetMessage(model.ValidityOf(err).Message)
		return s.fail(span, op, start, err)
	}
	s.live.SetConsistent(true)
	s.live.SetMessage("")

	// Stage 2: record.
	if err := s.hist.AddElement(before, s.live, gate); err != nil {
		return s.fail(span, op, start, err)
	}

	s.done(span, op, start)

	return nil
}

// Undo restores the state before the latest step. At the first step it
// does nothing.
func (s *Session) Undo(ctx context.Context) error {
	return s.navigate(ctx, opUndo, s.hist.Undo)
}

// Redo re-applies the next undone step. At the last step it does nothing.
func (s *Session) Redo(ctx context.Context) error {
	return s.navigate(ctx, opRedo, s.hist.Redo)
}

func (s *Session) navigate(ctx context.Context, op string, step func(*model.DensityMatrix) error) error {
	ctx, span := s.tracer.Start(ctx, "session."+op)
	defer span.End()
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return s.fail(span, op, start, err)
	}
	if err := step(s.live); err != nil {
		return s.fail(span, op, start, err)
	}
	s.done(span, op, start)

	return nil
}

// reject records a failure that never reached the lock.
func (s *Session) reject(ctx context.Context, op string, err error) error {
	_, span := s.tracer.Start(ctx, "session."+op)
	defer span.End()

	return s.fail(span, op, time.Now(), err)
}

func (s *Session) fail(span trace.Span, op string, start time.Time, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, model.ValidityOf(err).Message)
	s.metrics.observe(op, time.Since(start).Seconds(), err)
	s.log.Debug("session mutation rejected", "op", op, "error", err)

	return err
}

// done must be called with the lock held.
func (s *Session) done(span trace.Span, op string, start time.Time) {
	bloch := s.live.BlochVector()
	span.SetAttributes(
		attribute.Float64Slice("bloch", bloch[:]),
		attribute.Int("history.current", s.hist.Current()),
		attribute.Int("history.len", s.hist.Len()),
	)
	s.metrics.observe(op, time.Since(start).Seconds(), nil)
	s.metrics.state(s.hist.Len(), s.live.Purity())
	s.log.Debug("session mutation applied", "op", op, "current", s.hist.Current(), "label", s.live.Label())
}

// Snapshot is a read-only view of the session.
type Snapshot struct {
	ID          uuid.UUID
	Label       string
	Values      [][]complex128
	Bloch       [3]float64
	Purity      float64
	Pure        bool
	StateVector []complex128 // nil when the state is mixed
	Consistent  bool
	Message     string
	Current     int
	Len         int
	Earliest    bool
	Latest      bool
	Names       []string
	Paths       []model.GatePath
}

// Snapshot captures the live state and history.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		Label:      s.live.Label(),
		Values:     s.live.Values().Rows2D(),
		Bloch:      s.live.BlochVector(),
		Purity:     s.live.Purity(),
		Pure:       s.live.IsPure(),
		Consistent: s.live.Consistent(),
		Message:    s.live.Message(),
		Current:    s.hist.Current(),
		Len:        s.hist.Len(),
		Earliest:   s.hist.EarliestChange(),
		Latest:     s.hist.LatestChange(),
		Names:      s.hist.NameList(),
		Paths:      s.hist.Paths(),
	}
	if v, ok := s.live.StateVector(); ok {
		snap.StateVector = v.Raw()
	}

	return snap
}

// State returns a clone of the live state.
func (s *Session) State() *model.DensityMatrix {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.live.Clone()
}
