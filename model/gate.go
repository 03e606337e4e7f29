// SPDX-License-Identifier: MIT

package model

import (
	"math"
	"math/cmplx"

	"github.com/katalvlaran/blochlab/cmatrix"
)

// gateKind enforces M·M† ≈ I on 2×2 grids.
type gateKind struct{}

func (gateKind) Shape() (int, int) { return 2, 2 }

func (gateKind) Fallback() ([][]string, string) {
	return [][]string{{"1", "0"}, {"0", "1"}}, "1"
}

func (gateKind) Validate(c *cmatrix.Dense, tol cmatrix.Tolerance) error {
	mmd, err := cmatrix.Mul(c, cmatrix.Dagger(c))
	if err != nil {
		return modelErrorf(opValidate, err)
	}
	if !cmatrix.IsIdentity(mmd, tol) {
		return modelErrorf(opValidate, ErrNotUnitary)
	}

	return nil
}

// GateMatrix is a unitary 2×2 Matrix.
type GateMatrix struct {
	*Matrix
}

// NewGateMatrix builds a gate. Invalid input falls back to the identity.
func NewGateMatrix(exprs [][]string, mult, label string, params []*Param, opts ...Option) *GateMatrix {
	return &GateMatrix{Matrix: newMatrix(gateKind{}, exprs, mult, label, params, gatherOptions(opts))}
}

// Clone returns an independent gate.
func (g *GateMatrix) Clone() *GateMatrix {
	return &GateMatrix{Matrix: g.Matrix.Clone()}
}

// CopyFrom overwrites g in place with other's state.
func (g *GateMatrix) CopyFrom(other *GateMatrix) error {
	if other == nil {
		return modelErrorf(opCopyFrom, ErrNilMatrix)
	}

	return g.Matrix.CopyFrom(other.Matrix)
}

// phaseFree returns e^{-iα} where e^{iα} = √det M, the factor that strips
// the global phase from a unitary.
func (g *GateMatrix) phaseFree() complex128 {
	det, _ := cmatrix.Det(g.values)
	return cmplx.Conj(cmplx.Sqrt(det))
}

// RotationAngle returns θ = 2·arccos(Re[e^{-iα}·tr(M)/2]) in [0, 2π].
// The value is meaningful only for a unitary grid, which every committed
// gate is.
func (g *GateMatrix) RotationAngle() float64 {
	tr, _ := cmatrix.Trace(g.values)
	c := real(g.phaseFree() * tr / 2)

	return 2 * math.Acos(clamp(c, -1, 1))
}

// RotationAxis returns e^{-iα}·tr(M·P)/(2i·sin(θ/2)) for the three Pauli
// operators in the matrix's convention. It reports false for the identity
// (θ ≈ 0), for sin(θ/2) ≈ 0, and when every component is ≈ 0.
//
// In the physics convention the vector returned points opposite to the
// Bloch-sphere rotation axis; GatePath accounts for that.
func (g *GateMatrix) RotationAxis() ([3]float64, bool) {
	var axis [3]float64
	theta := g.RotationAngle()
	s := math.Sin(theta / 2)
	if g.set.tol.IsZero(theta) || g.set.tol.IsZero(s) {
		return axis, false
	}

	var (
		phase = g.phaseFree()
		den   = complex(0, 2*s)
	)
	for k, p := range g.set.convention.Paulis() {
		tp, _ := cmatrix.TraceProduct(g.values, p)
		axis[k] = real(phase * tp / den)
	}
	if g.set.tol.IsZero(axis[0]) && g.set.tol.IsZero(axis[1]) && g.set.tol.IsZero(axis[2]) {
		return [3]float64{}, false
	}

	return axis, true
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
