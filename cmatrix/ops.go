// SPDX-License-Identifier: MIT

// Package cmatrix: linear-algebra kernels.
// All kernels validate shapes first and return wrapped sentinels; results are
// always freshly allocated.

package cmatrix

import (
	"math"
	"math/cmplx"
)

// Add returns a + b.
func Add(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, cmatrixErrorf(opAdd, ErrNilMatrix)
	}
	if !SameShape(a, b) {
		return nil, cmatrixErrorf(opAdd, ErrDimensionMismatch)
	}
	out := newUnchecked(a.r, a.c)
	for k := range a.data {
		out.data[k] = a.data[k] + b.data[k]
	}

	return out, nil
}

// Sub returns a - b.
func Sub(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, cmatrixErrorf(opSub, ErrNilMatrix)
	}
	if !SameShape(a, b) {
		return nil, cmatrixErrorf(opSub, ErrDimensionMismatch)
	}
	out := newUnchecked(a.r, a.c)
	for k := range a.data {
		out.data[k] = a.data[k] - b.data[k]
	}

	return out, nil
}

// Mul returns the matrix product a·b.
// Errors: ErrDimensionMismatch when a.Cols() != b.Rows().
// Complexity: O(r·k·c).
func Mul(a, b *Dense) (*Dense, error) {
	if a == nil || b == nil {
		return nil, cmatrixErrorf(opMul, ErrNilMatrix)
	}
	if a.c != b.r {
		return nil, cmatrixErrorf(opMul, ErrDimensionMismatch)
	}
	var (
		out     = newUnchecked(a.r, b.c)
		i, j, k int
		sum     complex128
	)
	for i = 0; i < a.r; i++ {
		for j = 0; j < b.c; j++ {
			sum = 0
			for k = 0; k < a.c; k++ {
				sum += a.at(i, k) * b.at(k, j)
			}
			out.data[i*out.c+j] = sum
		}
	}

	return out, nil
}

// Scale returns s·m.
func Scale(s complex128, m *Dense) *Dense {
	out := newUnchecked(m.r, m.c)
	for k, v := range m.data {
		out.data[k] = s * v
	}

	return out
}

// Transpose returns mᵀ.
func Transpose(m *Dense) *Dense {
	out := newUnchecked(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*out.c+i] = m.at(i, j)
		}
	}

	return out
}

// Dagger returns the Hermitian conjugate m† (conjugate transpose).
func Dagger(m *Dense) *Dense {
	out := newUnchecked(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*out.c+i] = cmplx.Conj(m.at(i, j))
		}
	}

	return out
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(m *Dense) (complex128, error) {
	if m == nil {
		return 0, cmatrixErrorf(opTrace, ErrNilMatrix)
	}
	if m.r != m.c {
		return 0, cmatrixErrorf(opTrace, ErrNonSquare)
	}
	var sum complex128
	for i := 0; i < m.r; i++ {
		sum += m.at(i, i)
	}

	return sum, nil
}

// Det returns the determinant of a 1×1 or 2×2 matrix.
func Det(m *Dense) (complex128, error) {
	if m == nil {
		return 0, cmatrixErrorf(opDet, ErrNilMatrix)
	}
	if m.r != m.c {
		return 0, cmatrixErrorf(opDet, ErrNonSquare)
	}
	switch m.r {
	case 1:
		return m.data[0], nil
	case 2:
		return m.data[0]*m.data[3] - m.data[1]*m.data[2], nil
	default:
		return 0, cmatrixErrorf(opDet, ErrDimensionMismatch)
	}
}

// TraceProduct returns tr(a·b) without materialising the product.
func TraceProduct(a, b *Dense) (complex128, error) {
	if a == nil || b == nil {
		return 0, cmatrixErrorf(opTrace, ErrNilMatrix)
	}
	if a.c != b.r || a.r != b.c {
		return 0, cmatrixErrorf(opTrace, ErrDimensionMismatch)
	}
	var sum complex128
	for i := 0; i < a.r; i++ {
		for k := 0; k < a.c; k++ {
			sum += a.at(i, k) * b.at(k, i)
		}
	}

	return sum, nil
}

// Sandwich returns g·m·g†, the unitary evolution of m under g.
func Sandwich(g, m *Dense) (*Dense, error) {
	left, err := Mul(g, m)
	if err != nil {
		return nil, err
	}

	return Mul(left, Dagger(g))
}

// Outer returns u·v† for column vectors u and v.
func Outer(u, v *Dense) (*Dense, error) {
	if u == nil || v == nil {
		return nil, cmatrixErrorf(opOuter, ErrNilMatrix)
	}
	if u.c != 1 || v.c != 1 {
		return nil, cmatrixErrorf(opOuter, ErrNotColumn)
	}

	return Mul(u, Dagger(v))
}

// Norm returns the Frobenius norm (the 2-norm for column vectors).
func Norm(m *Dense) float64 {
	var sum float64
	for _, v := range m.data {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}

	return math.Sqrt(sum)
}
