// SPDX-License-Identifier: MIT
// Package: cmatrix
//
// Purpose:
//   - Single source of truth for the structural checks the model layers on top
//     of (finiteness, Hermiticity, identity, element-wise ordering).
//   - All checks are pure and tolerance-aware; none allocate except
//     IsHermitian/IsIdentity which compare against a derived matrix.

package cmatrix

import (
	"math"
	"math/cmplx"
)

// IsFinite reports whether every entry has finite real and imaginary parts.
func IsFinite(m *Dense) bool {
	if m == nil {
		return false
	}
	for _, v := range m.data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return false
		}
		// cmplx.IsInf misses (NaN, Inf) mixes on some inputs; check parts explicitly.
		if math.IsInf(real(v), 0) || math.IsInf(imag(v), 0) {
			return false
		}
	}

	return true
}

// IsZero reports whether every entry is ≈ 0.
func IsZero(m *Dense, tol Tolerance) bool {
	for _, v := range m.data {
		if !tol.IsZeroC(v) {
			return false
		}
	}

	return true
}

// EqualApprox reports element-wise a ≈ b. Shapes must match.
func EqualApprox(a, b *Dense, tol Tolerance) bool {
	if !SameShape(a, b) {
		return false
	}
	for k := range a.data {
		if !tol.EqualC(a.data[k], b.data[k]) {
			return false
		}
	}

	return true
}

// IsHermitian reports m ≈ m†.
func IsHermitian(m *Dense, tol Tolerance) bool {
	if m == nil || m.r != m.c {
		return false
	}

	return EqualApprox(m, Dagger(m), tol)
}

// IsIdentity reports m ≈ I.
func IsIdentity(m *Dense, tol Tolerance) bool {
	if m == nil || m.r != m.c {
		return false
	}

	return EqualApprox(m, Identity(m.r), tol)
}

// LessEqualReal reports Re(a[i][j]) <= Re(b[i][j]) within tolerance for every
// cell; imaginary parts are ignored.
func LessEqualReal(a, b *Dense, tol Tolerance) bool {
	if !SameShape(a, b) {
		return false
	}
	for k := range a.data {
		if !tol.LessEqual(real(a.data[k]), real(b.data[k])) {
			return false
		}
	}

	return true
}
