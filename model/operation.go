// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/katalvlaran/blochlab/cmatrix"
)

// ElementSpec describes one Kraus operator of a QuantumOperation.
type ElementSpec struct {
	Exprs  [][]string     // element expressions; the shape comes from here
	Mult   string         // multiplier expression, "1" when empty
	Label  string         // e.g. "E_0"
	Values *cmatrix.Dense // optional trusted grid
}

// QuantumOperation is an ordered set of Kraus operators sharing one set of
// parameters. Changing a shared parameter is transactional: either every
// element accepts the new value, or every element and the parameter are
// restored to their previous state.
type QuantumOperation struct {
	name       string
	label      string
	elements   []*Matrix
	params     []*Param // shared by pointer with every element
	consistent bool
	message    string
	set        settings
}

// NewQuantumOperation builds the elements over the shared params. An
// incomplete set of operators is logged, not rejected, so that editors can
// show and repair it.
func NewQuantumOperation(name, label string, elements []ElementSpec, params []*Param, opts ...Option) *QuantumOperation {
	o := gatherOptions(opts)
	op := &QuantumOperation{
		name:       name,
		label:      label,
		params:     params,
		consistent: true,
		set:        o.settings,
	}
	for _, spec := range elements {
		mult := spec.Mult
		if mult == "" {
			mult = "1"
		}
		eo := options{settings: o.settings, values: spec.Values}
		rows, cols := gridShape(spec.Exprs)
		if rows == 0 || cols == 0 {
			rows, cols = 2, 2
		}
		op.elements = append(op.elements,
			newMatrix(plainKind{rows: rows, cols: cols}, spec.Exprs, mult, spec.Label, params, eo))
	}
	if !op.IsComplete() {
		op.set.log.Error("operation elements are not complete", "operation", name)
	}

	return op
}

// IsComplete reports Re(Σₖ Eₖ†Eₖ) ≤ I element-wise, which accepts
// trace-non-increasing channels.
func (q *QuantumOperation) IsComplete() bool {
	if len(q.elements) == 0 {
		return false
	}
	n := q.elements[0].rows
	sum := cmatrix.Zeros(n, n)
	for _, e := range q.elements {
		if e.rows != n || e.cols != n {
			return false
		}
		ede, err := cmatrix.Mul(cmatrix.Dagger(e.values), e.values)
		if err != nil {
			return false
		}
		if sum, err = cmatrix.Add(sum, ede); err != nil {
			return false
		}
	}

	return cmatrix.LessEqualReal(sum, cmatrix.Identity(n), q.set.tol)
}

// Apply returns Σₖ Eₖ·ρ·Eₖ†.
// Errors: ErrIncomplete, ErrShape.
func (q *QuantumOperation) Apply(rho *cmatrix.Dense) (*cmatrix.Dense, error) {
	if !q.IsComplete() {
		return nil, fmt.Errorf("%s: %w", q.name, ErrIncomplete)
	}
	if rho == nil || rho.Rows() != q.elements[0].rows || rho.Cols() != q.elements[0].rows {
		return nil, fmt.Errorf("%s: %w", q.name, ErrShape)
	}
	out := cmatrix.Zeros(rho.Rows(), rho.Cols())
	for _, e := range q.elements {
		term, err := cmatrix.Sandwich(e.values, rho)
		if err != nil {
			return nil, err
		}
		if out, err = cmatrix.Add(out, term); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// SetParameter assigns expr to the shared parameter and re-evaluates every
// element in order. If the constraint rejects expr, an element rejects its
// new grid, or the updated elements are no longer complete, every element
// already updated is restored (in reverse order) to its exact prior grid,
// the parameter keeps its previous expression, and the operation is marked
// inconsistent with a user message.
func (q *QuantumOperation) SetParameter(name, expr string) error {
	// Stage 1: lookup and constraint.
	p := findParam(q.params, name)
	if p == nil {
		return fmt.Errorf("%s %q in %s: %w", opOpSetParam, name, q.name, ErrUnknownParam)
	}
	if err := checkConstraint(q.set.eval, q.params, p, expr); err != nil {
		return q.fail(modelErrorf(opOpSetParam, err))
	}

	// Stage 2: propagate, snapshotting before each element.
	var (
		prev  = p.Expr
		snaps = make([]snapshot, 0, len(q.elements))
	)
	p.Expr = expr
	for i, e := range q.elements {
		snaps = append(snaps, e.snapshot())
		if err := e.refresh(); err != nil {
			q.rollback(snaps, p, prev)
			return q.fail(fmt.Errorf("%s: element %d (%s): %w", opOpSetParam, i, e.label, err))
		}
	}

	// Stage 3: the channel as a whole.
	if !q.IsComplete() {
		q.rollback(snaps, p, prev)
		return q.fail(modelErrorf(opOpSetParam, ErrIncomplete))
	}

	q.consistent, q.message = true, ""

	return nil
}

func (q *QuantumOperation) rollback(snaps []snapshot, p *Param, prev string) {
	for j := len(snaps) - 1; j >= 0; j-- {
		q.elements[j].restore(snaps[j])
	}
	p.Expr = prev
}

func (q *QuantumOperation) fail(err error) error {
	q.consistent = false
	q.message = ValidityOf(err).Message

	return err
}

// Clone returns an independent operation with its own shared parameter set.
func (q *QuantumOperation) Clone() *QuantumOperation {
	params := cloneParams(q.params)
	cp := &QuantumOperation{
		name:       q.name,
		label:      q.label,
		params:     params,
		consistent: q.consistent,
		message:    q.message,
		set:        q.set,
		elements:   make([]*Matrix, len(q.elements)),
	}
	for i, e := range q.elements {
		cp.elements[i] = e.cloneWithParams(params)
	}

	return cp
}

// Elements returns copies of the Kraus operators over one copy of the
// shared parameters. Writes to the copies do not reach q; shared parameters
// change only through SetParameter.
func (q *QuantumOperation) Elements() []*Matrix {
	params := cloneParams(q.params)
	out := make([]*Matrix, len(q.elements))
	for i, e := range q.elements {
		out[i] = e.cloneWithParams(params)
	}

	return out
}

// Params returns copies of the shared parameters.
func (q *QuantumOperation) Params() []*Param { return cloneParams(q.params) }

// Param returns a copy of the named shared parameter.
func (q *QuantumOperation) Param(name string) (Param, bool) {
	if p := findParam(q.params, name); p != nil {
		return *p, true
	}

	return Param{}, false
}

// Name returns the operation name.
func (q *QuantumOperation) Name() string { return q.name }

// Label returns the display label.
func (q *QuantumOperation) Label() string { return q.label }

// Consistent reports whether the last SetParameter succeeded.
func (q *QuantumOperation) Consistent() bool { return q.consistent }

// Message returns the message of the last failed SetParameter.
func (q *QuantumOperation) Message() string { return q.message }
