// SPDX-License-Identifier: MIT

// Package cmatrix: numeric policy.
//
// Every equality or ordering test in the module goes through a Tolerance.
// Two floats a, b are equal when |a-b| <= Abs or |a-b| <= Rel·max(|a|,|b|),
// which is the rule the reference numeric stack (absolute 1e-10) applies.
// Complex values are equal when both real and imaginary parts are equal.

package cmatrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

// Defaults (single source of truth).
const (
	// DefaultAbsTol is the absolute tolerance shared by every validator.
	DefaultAbsTol = 1e-10

	// DefaultRelTol is the relative tolerance used for large magnitudes.
	DefaultRelTol = 1e-12
)

// Tolerance is the fuzzy-equality policy.
type Tolerance struct {
	Abs float64 // absolute tolerance, >= 0
	Rel float64 // relative tolerance, >= 0
}

// DefaultTolerance returns the package defaults.
func DefaultTolerance() Tolerance {
	return Tolerance{Abs: DefaultAbsTol, Rel: DefaultRelTol}
}

// NewTolerance builds a policy, panicking on negative or NaN inputs since
// those are programmer errors rather than user data.
func NewTolerance(abs, rel float64) Tolerance {
	if abs < 0 || rel < 0 || math.IsNaN(abs) || math.IsNaN(rel) {
		panic(fmt.Sprintf("cmatrix: invalid tolerance abs=%g rel=%g", abs, rel))
	}

	return Tolerance{Abs: abs, Rel: rel}
}

// Equal reports a ≈ b.
func (t Tolerance) Equal(a, b float64) bool {
	return scalar.EqualWithinAbsOrRel(a, b, t.Abs, t.Rel)
}

// IsZero reports x ≈ 0.
func (t Tolerance) IsZero(x float64) bool {
	return math.Abs(x) <= t.Abs
}

// Less reports a < b strictly beyond tolerance.
func (t Tolerance) Less(a, b float64) bool {
	return a < b && !t.Equal(a, b)
}

// LessEqual reports a <= b within tolerance.
func (t Tolerance) LessEqual(a, b float64) bool {
	return a < b || t.Equal(a, b)
}

// EqualC reports a ≈ b component-wise.
func (t Tolerance) EqualC(a, b complex128) bool {
	return t.Equal(real(a), real(b)) && t.Equal(imag(a), imag(b))
}

// IsZeroC reports z ≈ 0 component-wise.
func (t Tolerance) IsZeroC(z complex128) bool {
	return t.IsZero(real(z)) && t.IsZero(imag(z))
}
