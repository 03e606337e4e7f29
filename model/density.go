// SPDX-License-Identifier: MIT

package model

import (
	"log/slog"
	"math"
	"math/cmplx"
	"strconv"

	"github.com/katalvlaran/blochlab/cmatrix"
)

// densityKind enforces the density-operator axioms. The order of the checks
// decides which message a user sees and is fixed:
// Hermitian → eigenvalues real in [0,1] → trace real → trace 1.
type densityKind struct {
	log *slog.Logger
}

func (densityKind) Shape() (int, int) { return 2, 2 }

func (densityKind) Fallback() ([][]string, string) {
	return [][]string{{"1", "0"}, {"0", "0"}}, "1"
}

func (k densityKind) Validate(c *cmatrix.Dense, tol cmatrix.Tolerance) error {
	// Stage 1: Hermitian.
	if !cmatrix.IsHermitian(c, tol) {
		return modelErrorf(opValidate, ErrNotHermitian)
	}

	// Stage 2: eigenvalues real and within [0, 1].
	eig, err := cmatrix.Eigenvalues(c)
	if err != nil {
		return modelErrorf(opValidate, err)
	}
	for _, v := range eig {
		if !tol.IsZero(imag(v)) || !tol.LessEqual(0, real(v)) || !tol.LessEqual(real(v), 1) {
			return modelErrorf(opValidate, ErrNotPositive)
		}
	}

	// Stage 3: trace. An imaginary trace cannot survive stage 1.
	tr, _ := cmatrix.Trace(c)
	if !tol.IsZero(imag(tr)) {
		k.log.Error("density matrix has imaginary trace after passing eigenvalue checks",
			"trace", cmatrix.Format(tr, -1), "defect", true)
		return modelErrorf(opValidate, ErrImaginaryTrace)
	}
	if !tol.Equal(real(tr), 1) {
		return modelErrorf(opValidate, ErrTraceNotOne)
	}

	return nil
}

// DensityMatrix is a 2×2 Matrix constrained to a valid qubit state. It owns
// a StateVector kept in sync after every commit: the pure-state ket, or
// [1, 0]ᵀ when the state is mixed.
type DensityMatrix struct {
	*Matrix
	sv *StateVector
}

// NewDensityMatrix builds a state. Invalid input falls back to |0⟩⟨0|.
func NewDensityMatrix(exprs [][]string, mult, label string, params []*Param, opts ...Option) *DensityMatrix {
	o := gatherOptions(opts)
	m := newMatrix(densityKind{log: o.log}, exprs, mult, label, params, o)

	return wrapDensity(m)
}

// NewDensityMatrixFromValues builds a state from a value grid, deriving
// display expressions by rounding.
// Errors: the validation sentinels of the grid.
func NewDensityMatrixFromValues(values *cmatrix.Dense, label string, opts ...Option) (*DensityMatrix, error) {
	o := gatherOptions(opts)
	probe := &Matrix{kind: densityKind{log: o.log}, rows: 2, cols: 2, set: o.settings}
	if err := probe.Validate(values); err != nil {
		return nil, modelErrorf(opFromValues, err)
	}
	o.values = values.Clone()
	m := newMatrix(probe.kind, formatGrid(values, o.decimals), "1", label, nil, o)

	return wrapDensity(m), nil
}

// NewDensityMatrixFromBloch builds ρ = ½(I + r·n⃗·σ⃗) from spherical
// coordinates: polar angle theta, azimuth phi (both taken mod 2π) and
// length r (clamped to [0, 1]). The entries stay symbolic in the
// parameters theta, phi and r.
func NewDensityMatrixFromBloch(theta, phi, r float64, opts ...Option) *DensityMatrix {
	theta, phi, r = wrapAngle(theta), wrapAngle(phi), clamp(r, 0, 1)
	num := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	params := []*Param{
		NewParam("theta", num(theta), `\theta`, false),
		NewParam("phi", num(phi), `\phi`, false),
		NewParam("r", num(r), "r", false).Constrain(RealRange(0, 1, cmatrix.DefaultAbsTol)),
	}
	exprs := [][]string{
		{`1 + r\cos(\theta)`, `r\sin(\theta) e^{-i \phi}`},
		{`r\sin(\theta) e^{i \phi}`, `1 - r\cos(\theta)`},
	}

	return NewDensityMatrix(exprs, `\frac{1}{2}`, `\rho`, params, opts...)
}

func wrapDensity(m *Matrix) *DensityMatrix {
	d := &DensityMatrix{Matrix: m}
	m.extend = func(label string) string { return `\rho^{` + label + `}` }
	m.refreshLabels()
	d.sv = newStateVector(defaultKet(), "1", m.label, nil, options{settings: m.set})
	d.syncStateVector()
	m.afterCommit = d.syncStateVector

	return d
}

func defaultKet() [][]string { return [][]string{{"1"}, {"0"}} }

// syncStateVector mirrors the current state into the owned StateVector.
func (d *DensityMatrix) syncStateVector() {
	var err error
	if v, ok := d.StateVector(); ok {
		err = d.sv.SetFromValues(v)
	} else {
		err = d.sv.SetFromExpressions(defaultKet(), "1")
	}
	if err != nil {
		d.set.log.Error("state vector out of sync with density matrix",
			"label", d.label, "error", err, "defect", true)
	}
	d.sv.SetLabel(d.label)
}

// Clone returns an independent state with its own StateVector.
func (d *DensityMatrix) Clone() *DensityMatrix {
	return wrapDensity(d.Matrix.Clone())
}

// CopyFrom overwrites d in place with other's state and resyncs the
// StateVector.
func (d *DensityMatrix) CopyFrom(other *DensityMatrix) error {
	if other == nil {
		return modelErrorf(opCopyFrom, ErrNilMatrix)
	}

	return d.Matrix.CopyFrom(other.Matrix)
}

// SV returns the owned StateVector. When the state is mixed it holds
// [1, 0]ᵀ and should not be displayed.
func (d *DensityMatrix) SV() *StateVector { return d.sv }

// BlochVector returns [tr(ρP₀), tr(ρP₁), tr(ρP₂)] with the Pauli operators
// ordered by the matrix's convention.
func (d *DensityMatrix) BlochVector() [3]float64 {
	var out [3]float64
	for k, p := range d.set.convention.Paulis() {
		tp, _ := cmatrix.TraceProduct(d.values, p)
		out[k] = real(tp)
	}

	return out
}

// BlochLength returns the Euclidean length of the Bloch vector.
func (d *DensityMatrix) BlochLength() float64 {
	v := d.BlochVector()
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// Purity returns tr(ρ²), in [½, 1] for a valid state.
func (d *DensityMatrix) Purity() float64 {
	tp, _ := cmatrix.TraceProduct(d.values, d.values)
	return real(tp)
}

// IsPure reports tr(ρ²) ≥ 1 within tolerance.
func (d *DensityMatrix) IsPure() bool {
	return !d.set.tol.Less(d.Purity(), 1)
}

// Phi returns the azimuth arg(ρ₁₀) in [0, 2π).
func (d *DensityMatrix) Phi() float64 {
	b := d.At(1, 0)
	return wrapAngle(math.Atan2(imag(b), real(b)))
}

// wrapAngle maps x into [0, 2π).
func wrapAngle(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x
}

// StateVector extracts the ket of a pure state from the eigenvector whose
// eigenvalue is ≈ 1. The global phase is fixed so that the first non-zero
// component is real and positive. It reports false for mixed states and
// when the spectrum does not single out one eigenvector.
func (d *DensityMatrix) StateVector() (*cmatrix.Dense, bool) {
	if !d.IsPure() {
		return nil, false
	}
	vals, vecs, err := cmatrix.EigenHermitian(d.values, d.set.tol)
	if err != nil {
		return nil, false
	}
	var match *cmatrix.Dense
	for k, v := range vals {
		if d.set.tol.Equal(v, 1) {
			if match != nil {
				return nil, false
			}
			match = vecs[k]
		}
	}
	if match == nil {
		return nil, false
	}

	return fixPhase(match, d.set.tol), true
}

// StateVectorByAngles rebuilds the ket of a pure state as
// [cos(θ/2), e^{iφ}·sin(θ/2)]ᵀ with θ = arccos(⟨Z⟩) and φ = Phi().
func (d *DensityMatrix) StateVectorByAngles() (*cmatrix.Dense, bool) {
	if !d.IsPure() {
		return nil, false
	}
	z, _ := cmatrix.TraceProduct(d.values, cmatrix.PauliZ())
	theta := math.Acos(clamp(real(z), -1, 1))
	phase := cmplx.Exp(complex(0, d.Phi()))

	return cmatrix.Col2(
		complex(math.Cos(theta/2), 0),
		phase*complex(math.Sin(theta/2), 0),
	), true
}

// ApplyGate evolves ρ ↦ G·ρ·G† through SetFromValues, so the result is
// validated again before it is committed.
func (d *DensityMatrix) ApplyGate(g *GateMatrix) error {
	if g == nil {
		return modelErrorf(opApplyGate, ErrNilMatrix)
	}
	next, err := cmatrix.Sandwich(g.values, d.values)
	if err != nil {
		return modelErrorf(opApplyGate, err)
	}
	if err = d.SetFromValues(next); err != nil {
		return modelErrorf(opApplyGate, err)
	}

	return nil
}

// ApplyOperation evolves ρ ↦ Σₖ Eₖ·ρ·Eₖ† through SetFromValues.
// Errors: ErrNilMatrix, ErrIncomplete, ErrShape, validation sentinels.
func (d *DensityMatrix) ApplyOperation(op *QuantumOperation) error {
	if op == nil {
		return modelErrorf(opApplyOp, ErrNilMatrix)
	}
	next, err := op.Apply(d.values)
	if err != nil {
		return modelErrorf(opApplyOp, err)
	}
	if err = d.SetFromValues(next); err != nil {
		return modelErrorf(opApplyOp, err)
	}

	return nil
}

// fixPhase scales v so its first component above tolerance is real and
// positive.
func fixPhase(v *cmatrix.Dense, tol cmatrix.Tolerance) *cmatrix.Dense {
	for _, z := range v.Raw() {
		if a := cmplx.Abs(z); a > tol.Abs {
			return cmatrix.Scale(cmplx.Conj(z)/complex(a, 0), v)
		}
	}

	return v
}
