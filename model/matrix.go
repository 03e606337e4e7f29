// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/blochlab/cmatrix"
)

// Kind supplies the shape, default grid and physics checks of a matrix
// family. The engine runs the base checks (shape, finiteness) before Validate.
type Kind interface {
	// Shape returns the fixed grid dimensions.
	Shape() (rows, cols int)
	// Fallback returns the expressions used when construction input is invalid.
	Fallback() (exprs [][]string, mult string)
	// Validate applies the family's invariants to a finite candidate.
	Validate(candidate *cmatrix.Dense, tol cmatrix.Tolerance) error
}

// plainKind only carries a shape; its fallback is the zero grid.
type plainKind struct{ rows, cols int }

func (k plainKind) Shape() (int, int) { return k.rows, k.cols }

func (k plainKind) Fallback() ([][]string, string) {
	return constGrid(k.rows, k.cols, "0"), "1"
}

func (plainKind) Validate(*cmatrix.Dense, cmatrix.Tolerance) error { return nil }

// Matrix is the parametrized matrix engine.
//   - exprs/mult are the symbolic views; values is their validated evaluation.
//   - params may be shared with sibling matrices inside a QuantumOperation.
type Matrix struct {
	kind       Kind
	rows, cols int

	mult   string
	exprs  [][]string
	values *cmatrix.Dense
	params []*Param

	label      string
	labelWP    string
	extLabel   string
	extend     func(label string) string // derives the extended label, nil = identity
	consistent bool
	message    string

	set         settings
	afterCommit func() // runs after every successful commit
}

// NewMatrix builds an unconstrained matrix whose shape is that of exprs.
// Construction never fails: a grid that does not evaluate falls back to
// zeros unless WithValues supplied a trusted grid.
func NewMatrix(exprs [][]string, mult, label string, params []*Param, opts ...Option) *Matrix {
	rows, cols := gridShape(exprs)
	if rows == 0 || cols == 0 {
		rows, cols = 2, 2
	}

	return newMatrix(plainKind{rows: rows, cols: cols}, exprs, mult, label, params, gatherOptions(opts))
}

// newMatrix runs the construction protocol shared by every kind:
// evaluate → validate → fall back to the kind default on failure, unless a
// trusted grid was given.
func newMatrix(kind Kind, exprs [][]string, mult, label string, params []*Param, o options) *Matrix {
	rows, cols := kind.Shape()
	m := &Matrix{
		kind:       kind,
		rows:       rows,
		cols:       cols,
		params:     params,
		label:      label,
		consistent: true,
		set:        o.settings,
	}

	// Stage 1: evaluate and validate the requested grid.
	values, err := m.Regenerate(exprs, mult)
	if err == nil {
		err = m.Validate(values)
	}

	// Stage 2: trusted grid or fallback.
	switch {
	case o.values != nil && o.values.Rows() == rows && o.values.Cols() == cols:
		values = o.values
		if !shapeOK(exprs, rows, cols) {
			exprs = formatGrid(values, m.set.decimals)
		}
	case err != nil:
		m.set.log.Warn("invalid initial matrix, using defaults", "label", label, "error", err)
		exprs, mult = kind.Fallback()
		if values, err = m.Regenerate(exprs, mult); err != nil {
			values = cmatrix.Zeros(rows, cols)
		}
	}

	m.exprs = copyGrid(exprs)
	m.mult = mult
	m.values = values
	m.refreshLabels()

	return m
}

// Regenerate evaluates exprs × mult under the current parameter values.
// It does not mutate the matrix.
// Errors: ErrShape, ErrEvaluation.
func (m *Matrix) Regenerate(exprs [][]string, mult string) (*cmatrix.Dense, error) {
	if !shapeOK(exprs, m.rows, m.cols) {
		return nil, modelErrorf(opRegenerate, ErrShape)
	}
	vars, err := bindParams(m.set.eval, m.params)
	if err != nil {
		return nil, modelErrorf(opRegenerate, err)
	}
	k, err := m.set.eval.Evaluate(mult, vars)
	if err != nil {
		return nil, fmt.Errorf("%s: multiplier %q: %w: %w", opRegenerate, mult, ErrEvaluation, err)
	}

	out := cmatrix.Zeros(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			v, err := m.set.eval.Evaluate(exprs[i][j], vars)
			if err != nil {
				return nil, fmt.Errorf("%s: m%d%d %q: %w: %w", opRegenerate, i, j, exprs[i][j], ErrEvaluation, err)
			}
			_ = out.Set(i, j, v*k)
		}
	}

	return out, nil
}

// Validate runs the base checks and then the kind's invariants.
// Errors: ErrNilMatrix, ErrShape, ErrNotFinite, then kind-specific sentinels.
func (m *Matrix) Validate(candidate *cmatrix.Dense) error {
	if candidate == nil {
		return modelErrorf(opValidate, ErrNilMatrix)
	}
	if candidate.Rows() != m.rows || candidate.Cols() != m.cols {
		return modelErrorf(opValidate, ErrShape)
	}
	if !cmatrix.IsFinite(candidate) {
		return modelErrorf(opValidate, ErrNotFinite)
	}

	return m.kind.Validate(candidate, m.set.tol)
}

// SetFromExpressions replaces the expressions and multiplier if their
// evaluation validates. On error nothing changes.
func (m *Matrix) SetFromExpressions(exprs [][]string, mult string) error {
	values, err := m.Regenerate(exprs, mult)
	if err != nil {
		return modelErrorf(opSetExprs, err)
	}
	if err = m.Validate(values); err != nil {
		return modelErrorf(opSetExprs, err)
	}

	m.values = values
	m.exprs = copyGrid(exprs)
	m.mult = mult
	m.consistent = true
	m.commit()

	return nil
}

// SetFromValues replaces the value grid if it validates, resetting the
// multiplier to "1". Display expressions of cells whose value did not change
// are kept; every cell is rewritten when the old multiplier was not "1".
// On error nothing changes.
func (m *Matrix) SetFromValues(values *cmatrix.Dense) error {
	if err := m.Validate(values); err != nil {
		return modelErrorf(opSetValues, err)
	}

	rewriteAll := m.mult != "1"
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			nv, _ := values.At(i, j)
			ov, _ := m.values.At(i, j)
			if !rewriteAll && m.set.tol.EqualC(nv, ov) {
				continue
			}
			m.exprs[i][j] = cmatrix.Format(nv, m.set.decimals)
		}
	}
	m.mult = "1"
	m.values = values.Clone()
	m.commit()

	return nil
}

// SetValue writes one cell through SetFromValues.
func (m *Matrix) SetValue(v complex128, i, j int) error {
	next := m.values.Clone()
	if err := next.Set(i, j, v); err != nil {
		return modelErrorf(opSetValue, err)
	}

	return m.SetFromValues(next)
}

// SetParameter assigns expr to the named parameter and re-evaluates the
// current expressions. The constraint runs first; if it or the regenerated
// grid is rejected, the parameter keeps its previous expression.
// Errors: ErrUnknownParam, ErrEvaluation, ErrConstraint, validation sentinels.
func (m *Matrix) SetParameter(name, expr string) error {
	p := findParam(m.params, name)
	if p == nil {
		return fmt.Errorf("%s %q: %w", opSetParam, name, ErrUnknownParam)
	}
	if err := checkConstraint(m.set.eval, m.params, p, expr); err != nil {
		return modelErrorf(opSetParam, err)
	}

	prev := p.Expr
	p.Expr = expr
	if err := m.SetFromExpressions(m.exprs, m.mult); err != nil {
		p.Expr = prev
		return modelErrorf(opSetParam, err)
	}

	return nil
}

// Clone returns an independent matrix with copied parameters. The value
// grid is copied, not re-evaluated.
func (m *Matrix) Clone() *Matrix {
	return m.cloneWithParams(cloneParams(m.params))
}

func (m *Matrix) cloneWithParams(params []*Param) *Matrix {
	cp := *m
	cp.exprs = copyGrid(m.exprs)
	cp.values = m.values.Clone()
	cp.params = params
	cp.afterCommit = nil

	return &cp
}

// CopyFrom overwrites m in place with other's state, keeping m's identity.
// Errors: ErrNilMatrix, ErrShape.
func (m *Matrix) CopyFrom(other *Matrix) error {
	if other == nil {
		return modelErrorf(opCopyFrom, ErrNilMatrix)
	}
	if other.rows != m.rows || other.cols != m.cols {
		return modelErrorf(opCopyFrom, ErrShape)
	}
	m.label = other.label
	m.labelWP = other.labelWP
	m.extLabel = other.extLabel
	m.exprs = copyGrid(other.exprs)
	m.mult = other.mult
	m.values = other.values.Clone()
	m.params = cloneParams(other.params)
	m.consistent = other.consistent
	m.message = other.message
	m.commit()

	return nil
}

// refresh re-evaluates the stored expressions, used after a shared
// parameter changed.
func (m *Matrix) refresh() error { return m.SetFromExpressions(m.exprs, m.mult) }

func (m *Matrix) commit() {
	if m.afterCommit != nil {
		m.afterCommit()
	}
}

// snapshot captures the views a rollback restores.
type snapshot struct {
	exprs  [][]string
	mult   string
	values *cmatrix.Dense
}

func (m *Matrix) snapshot() snapshot {
	return snapshot{exprs: copyGrid(m.exprs), mult: m.mult, values: m.values.Clone()}
}

func (m *Matrix) restore(s snapshot) {
	m.exprs, m.mult, m.values = s.exprs, s.mult, s.values
}

// ---------- accessors ----------

// Values returns a copy of the resolved grid.
func (m *Matrix) Values() *cmatrix.Dense { return m.values.Clone() }

// At returns the resolved value at (i, j), or 0 outside the grid.
func (m *Matrix) At(i, j int) complex128 {
	v, _ := m.values.At(i, j)
	return v
}

// Exprs returns a copy of the element expressions.
func (m *Matrix) Exprs() [][]string { return copyGrid(m.exprs) }

// Multiplier returns the multiplier expression.
func (m *Matrix) Multiplier() string { return m.mult }

// Params returns copies of the parameters.
func (m *Matrix) Params() []*Param { return cloneParams(m.params) }

// Param returns a copy of the named parameter.
func (m *Matrix) Param(name string) (Param, bool) {
	if p := findParam(m.params, name); p != nil {
		return *p, true
	}

	return Param{}, false
}

// Label returns the bare label.
func (m *Matrix) Label() string { return m.label }

// SetLabel replaces the label and recomputes the derived labels.
func (m *Matrix) SetLabel(label string) {
	m.label = label
	m.refreshLabels()
}

// LabelWithParams returns label(p₁, …) over the editable parameters.
func (m *Matrix) LabelWithParams() string { return m.labelWP }

// ExtendedLabel returns the display label (e.g. \rho^{…} for states).
func (m *Matrix) ExtendedLabel() string { return m.extLabel }

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// Consistent reports whether the editor shows what the matrix holds.
func (m *Matrix) Consistent() bool { return m.consistent }

// SetConsistent is set by editors holding uncommitted input.
func (m *Matrix) SetConsistent(ok bool) { m.consistent = ok }

// Message returns the user-facing message, if any.
func (m *Matrix) Message() string { return m.message }

// SetMessage stores a user-facing message.
func (m *Matrix) SetMessage(msg string) { m.message = msg }

// Tolerance returns the comparison policy.
func (m *Matrix) Tolerance() cmatrix.Tolerance { return m.set.tol }

// Convention returns the Pauli ordering used for derived vectors.
func (m *Matrix) Convention() cmatrix.Convention { return m.set.convention }

// LaTeX renders "<extended label> = <mult> \begin{bmatrix}…\end{bmatrix}".
// The editable form wraps every value in \placeholder[name]{…}; the
// read-only form drops a multiplier of "1".
func (m *Matrix) LaTeX(readOnly bool) string {
	field := func(v, name string) string {
		if readOnly {
			return v
		}
		return `\placeholder[` + name + `]{` + v + `}`
	}

	var sb strings.Builder
	sb.WriteString(m.extLabel)
	sb.WriteString(" = ")
	if !(readOnly && m.mult == "1") {
		sb.WriteString(field(m.mult, "mult"))
	}
	sb.WriteString(` \begin{bmatrix}`)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			sb.WriteString(field(m.exprs[i][j], fmt.Sprintf("m%d%d", i, j)))
			if j < m.cols-1 {
				sb.WriteString(" & ")
			}
		}
		if i < m.rows-1 {
			sb.WriteString(` \\ `)
		}
	}
	sb.WriteString(`\end{bmatrix}`)

	return sb.String()
}

func (m *Matrix) refreshLabels() {
	m.labelWP = labelWithParams(m.label, m.params)
	m.extLabel = m.labelWP
	if m.extend != nil {
		m.extLabel = m.extend(m.label)
	}
}

// ---------- helpers ----------

// bindParams evaluates the parameters in order; each may refer to the ones
// before it.
func bindParams(eval Evaluator, ps []*Param) (map[string]complex128, error) {
	vars := make(map[string]complex128, len(ps))
	for _, p := range ps {
		v, err := eval.Evaluate(p.Expr, vars)
		if err != nil {
			return nil, fmt.Errorf("%s: %s = %q: %w: %w", opBindParams, p.Name, p.Expr, ErrEvaluation, err)
		}
		vars[p.Name] = v
	}

	return vars, nil
}

// checkConstraint evaluates expr as the new value of p within the full
// ordered parameter list, so parameters on either side of p still bind, and
// runs p's constraint.
func checkConstraint(eval Evaluator, ps []*Param, p *Param, expr string) error {
	if p.Constraint == nil {
		return nil
	}
	trial := make([]*Param, len(ps))
	for i, q := range ps {
		trial[i] = q
		if q == p {
			swapped := *q
			swapped.Expr = expr
			trial[i] = &swapped
		}
	}
	vars, err := bindParams(eval, trial)
	if err != nil {
		return fmt.Errorf("%s: %s = %q: %w", opConstrained, p.Name, expr, err)
	}
	if cerr := p.Constraint(expr, vars[p.Name]); cerr != nil {
		return &ConstraintError{Param: p.Name, Expr: expr, Msg: cerr.Error()}
	}

	return nil
}

func gridShape(g [][]string) (int, int) {
	if len(g) == 0 {
		return 0, 0
	}

	return len(g), len(g[0])
}

func shapeOK(g [][]string, rows, cols int) bool {
	if len(g) != rows {
		return false
	}
	for _, row := range g {
		if len(row) != cols {
			return false
		}
	}

	return true
}

func copyGrid(g [][]string) [][]string {
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}

	return out
}

func constGrid(rows, cols int, v string) [][]string {
	out := make([][]string, rows)
	for i := range out {
		out[i] = make([]string, cols)
		for j := range out[i] {
			out[i][j] = v
		}
	}

	return out
}

// formatGrid renders a value grid as display expressions.
func formatGrid(v *cmatrix.Dense, decimals int) [][]string {
	out := make([][]string, v.Rows())
	for i := range out {
		out[i] = make([]string, v.Cols())
		for j := range out[i] {
			z, _ := v.At(i, j)
			out[i][j] = cmatrix.Format(z, decimals)
		}
	}

	return out
}
