// SPDX-License-Identifier: MIT

// Package model: functional options and numeric policy.
//
// Every constructor accepts ...Option. Options resolve into a settings value
// that the matrix keeps for its lifetime and hands on to clones, so a clone
// evaluates and validates exactly like its source.
//
// Constructors panic only on nonsensical values (programmer error):
// a negative tolerance, a decimals count outside [0, MaxDecimals], a nil
// evaluator.

package model

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/katalvlaran/blochlab/cmatrix"
	"github.com/katalvlaran/blochlab/latex"
)

// Defaults (single source of truth).
const (
	// DefaultDecimals is the rounding applied when SetFromValues regenerates
	// display expressions.
	DefaultDecimals = 2

	// MaxDecimals bounds WithDecimals.
	MaxDecimals = 15
)

const (
	panicToleranceInvalid = "model: WithTolerance: tolerance must be finite, non-negative"
	panicDecimalsInvalid  = "model: WithDecimals: decimals out of range"
	panicEvaluatorNil     = "model: WithEvaluator: evaluator is nil"
)

// Evaluator turns an expression into a complex number under named bindings.
// latex.Evaluator is the default implementation.
type Evaluator interface {
	Evaluate(expr string, vars map[string]complex128) (complex128, error)
}

// Option configures a matrix, gate, state or operation.
type Option func(*options)

type options struct {
	settings
	values *cmatrix.Dense // trusted initial grid, never inherited by clones
}

// settings is the part of the configuration that clones inherit.
type settings struct {
	tol        cmatrix.Tolerance
	decimals   int
	convention cmatrix.Convention
	eval       Evaluator
	log        *slog.Logger
}

func defaultSettings() settings {
	return settings{
		tol:        cmatrix.DefaultTolerance(),
		decimals:   DefaultDecimals,
		convention: cmatrix.ConventionPhysics,
		eval:       latex.New(),
		log:        slog.Default(),
	}
}

// WithTolerance sets the absolute tolerance of every comparison.
func WithTolerance(abs float64) Option {
	if abs < 0 || math.IsNaN(abs) || math.IsInf(abs, 0) {
		panic(panicToleranceInvalid)
	}

	return func(o *options) {
		o.tol = cmatrix.NewTolerance(abs, o.tol.Rel)
	}
}

// WithDecimals sets the rounding used for display expressions.
func WithDecimals(decimals int) Option {
	if decimals < 0 || decimals > MaxDecimals {
		panic(fmt.Sprintf("%s: %d", panicDecimalsInvalid, decimals))
	}

	return func(o *options) { o.decimals = decimals }
}

// WithConvention selects the Pauli ordering of Bloch vectors and rotation axes.
func WithConvention(c cmatrix.Convention) Option {
	return func(o *options) { o.convention = c }
}

// WithEvaluator replaces the expression evaluator.
func WithEvaluator(e Evaluator) Option {
	if e == nil {
		panic(panicEvaluatorNil)
	}

	return func(o *options) { o.eval = e }
}

// WithLogger sets the logger. A nil logger selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.Default()
		}
		o.log = l
	}
}

// WithValues supplies a trusted value grid. The grid is used as-is instead
// of evaluating the expressions, and it suppresses the construction
// fallback. Clones use it to avoid re-evaluation drift.
func WithValues(v *cmatrix.Dense) Option {
	return func(o *options) { o.values = v.Clone() }
}

func gatherOptions(opts []Option) options {
	o := options{settings: defaultSettings()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
