// SPDX-License-Identifier: MIT

package model

import (
	"math/cmplx"

	"github.com/katalvlaran/blochlab/cmatrix"
)

// stateKind enforces Σ|vᵢ|² ≈ 1 on 2×1 grids.
type stateKind struct{}

func (stateKind) Shape() (int, int) { return 2, 1 }

func (stateKind) Fallback() ([][]string, string) { return defaultKet(), "1" }

func (stateKind) Validate(c *cmatrix.Dense, tol cmatrix.Tolerance) error {
	var total float64
	for _, z := range c.Raw() {
		a := cmplx.Abs(z)
		total += a * a
	}
	if !tol.Equal(total, 1) {
		return modelErrorf(opValidate, ErrNotNormalized)
	}

	return nil
}

// StateVector is a unit-norm 2×1 ket.
type StateVector struct {
	*Matrix
}

// NewStateVector builds a ket from a 2×1 expression grid. Invalid input
// falls back to [1, 0]ᵀ.
func NewStateVector(exprs [][]string, mult, label string, params []*Param, opts ...Option) *StateVector {
	return newStateVector(exprs, mult, label, params, gatherOptions(opts))
}

// NewStateVectorFromValues builds a ket from a 2×1 value grid.
// Errors: the validation sentinels of the grid.
func NewStateVectorFromValues(values *cmatrix.Dense, label string, opts ...Option) (*StateVector, error) {
	o := gatherOptions(opts)
	probe := &Matrix{kind: stateKind{}, rows: 2, cols: 1, set: o.settings}
	if err := probe.Validate(values); err != nil {
		return nil, modelErrorf(opFromValues, err)
	}
	o.values = values.Clone()

	return newStateVector(formatGrid(values, o.decimals), "1", label, nil, o), nil
}

func newStateVector(exprs [][]string, mult, label string, params []*Param, o options) *StateVector {
	return &StateVector{Matrix: newMatrix(stateKind{}, exprs, mult, label, params, o)}
}

// Clone returns an independent ket.
func (s *StateVector) Clone() *StateVector {
	return &StateVector{Matrix: s.Matrix.Clone()}
}

// CopyFrom overwrites s in place with other's state.
func (s *StateVector) CopyFrom(other *StateVector) error {
	if other == nil {
		return modelErrorf(opCopyFrom, ErrNilMatrix)
	}

	return s.Matrix.CopyFrom(other.Matrix)
}

// Outer returns the projector v·v†.
func (s *StateVector) Outer() *cmatrix.Dense {
	p, _ := cmatrix.Outer(s.values, s.values)
	return p
}

// ToDensityMatrix returns the pure state v·v† with the ket's settings and
// label. The values are carried over exactly; the display expressions are
// rounded.
func (s *StateVector) ToDensityMatrix() *DensityMatrix {
	p := s.Outer()
	o := options{settings: s.set, values: p}
	m := newMatrix(densityKind{log: s.set.log}, formatGrid(p, s.set.decimals), "1", s.label, nil, o)

	return wrapDensity(m)
}
