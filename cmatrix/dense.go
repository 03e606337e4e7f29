// SPDX-License-Identifier: MIT

// Package cmatrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a flat complex128 buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep constructors for the fixed shapes the model uses (2×2, 2×1) error-free.

package cmatrix

import (
	"strings"
)

// Dense is a row-major complex matrix.
//   - r,c hold dimensions (rows, cols), both > 0.
//   - data is a flat buffer of length r*c.
type Dense struct {
	r, c int          // row and column counts
	data []complex128 // contiguous row-major storage (len == r*c)
}

// New creates an r×c zero matrix.
// Errors: ErrInvalidDimensions when rows<=0 or cols<=0.
// Complexity: O(r*c).
func New(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, cmatrixErrorf(opNew, ErrInvalidDimensions)
	}

	return &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// newUnchecked allocates without validation; callers guarantee rows,cols > 0.
func newUnchecked(rows, cols int) *Dense {
	return &Dense{r: rows, c: cols, data: make([]complex128, rows*cols)}
}

// FromRows copies a rectangular [][]complex128 into a new Dense.
// Errors: ErrInvalidDimensions on empty input or ragged rows.
func FromRows(rows [][]complex128) (*Dense, error) {
	// Stage 1: validate shape.
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, cmatrixErrorf(opFromRows, ErrInvalidDimensions)
	}
	var (
		r = len(rows)
		c = len(rows[0])
		i int
	)
	for i = 1; i < r; i++ {
		if len(rows[i]) != c {
			return nil, cmatrixErrorf(opFromRows, ErrInvalidDimensions)
		}
	}

	// Stage 2: copy row by row.
	m := newUnchecked(r, c)
	for i = 0; i < r; i++ {
		copy(m.data[i*c:(i+1)*c], rows[i])
	}

	return m, nil
}

// Mat2 builds the 2×2 matrix [[a, b], [c, d]].
func Mat2(a, b, c, d complex128) *Dense {
	return &Dense{r: 2, c: 2, data: []complex128{a, b, c, d}}
}

// Col2 builds the 2×1 column vector [a, b]ᵀ.
func Col2(a, b complex128) *Dense {
	return &Dense{r: 2, c: 1, data: []complex128{a, b}}
}

// Identity returns the n×n identity, or nil when n <= 0.
func Identity(n int) *Dense {
	if n <= 0 {
		return nil
	}
	m := newUnchecked(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m
}

// Zeros returns an r×c zero matrix, or nil on invalid dimensions.
func Zeros(rows, cols int) *Dense {
	m, err := New(rows, cols)
	if err != nil {
		return nil
	}

	return m
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Dims returns (rows, cols).
func (m *Dense) Dims() (int, int) { return m.r, m.c }

// At returns the element at (i, j).
func (m *Dense) At(i, j int) (complex128, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, cmatrixErrorf(opAt, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set assigns v at (i, j).
func (m *Dense) Set(i, j int, v complex128) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return cmatrixErrorf(opSet, ErrOutOfRange)
	}
	m.data[i*m.c+j] = v

	return nil
}

// at is the unchecked accessor used by kernels that already validated shape.
func (m *Dense) at(i, j int) complex128 { return m.data[i*m.c+j] }

// Rows2D returns a deep [][]complex128 copy of the matrix.
func (m *Dense) Rows2D() [][]complex128 {
	out := make([][]complex128, m.r)
	for i := 0; i < m.r; i++ {
		row := make([]complex128, m.c)
		copy(row, m.data[i*m.c:(i+1)*m.c])
		out[i] = row
	}

	return out
}

// Raw returns a copy of the row-major buffer.
func (m *Dense) Raw() []complex128 {
	out := make([]complex128, len(m.data))
	copy(out, m.data)

	return out
}

// Clone returns a deep copy.
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	if m == nil {
		return nil
	}
	out := newUnchecked(m.r, m.c)
	copy(out.data, m.data)

	return out
}

// SameShape reports whether a and b have identical dimensions.
func SameShape(a, b *Dense) bool {
	return a != nil && b != nil && a.r == b.r && a.c == b.c
}

// String renders the matrix with full precision, one row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			sb.WriteString(Format(m.at(i, j), -1))
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
