// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"
)

// Constraint gates every write to a Param. It receives the new expression
// and its evaluated value; a non-nil error rejects the write and its text is
// shown to the user.
type Constraint func(expr string, value complex128) error

// Param is a named value bound into matrix expressions.
type Param struct {
	Name       string     // binding name, unique within its owner ("theta")
	Expr       string     // current expression ("\pi/2")
	Label      string     // display label ("\theta")
	Editable   bool       // shown in the owner's label and editable by users
	Constraint Constraint // optional
}

// NewParam returns an unconstrained parameter.
func NewParam(name, expr, label string, editable bool) *Param {
	return &Param{Name: name, Expr: expr, Label: label, Editable: editable}
}

// Constrain attaches c and returns p for chaining.
func (p *Param) Constrain(c Constraint) *Param {
	p.Constraint = c
	return p
}

// Clone returns an independent copy. Constraints are functions and are shared.
func (p *Param) Clone() *Param {
	if p == nil {
		return nil
	}
	cp := *p

	return &cp
}

func cloneParams(ps []*Param) []*Param {
	out := make([]*Param, len(ps))
	for i, p := range ps {
		out[i] = p.Clone()
	}

	return out
}

func findParam(ps []*Param, name string) *Param {
	for _, p := range ps {
		if p.Name == name {
			return p
		}
	}

	return nil
}

// RealRange accepts values whose imaginary part is zero within tol and whose
// real part lies in [lo, hi] within tol.
func RealRange(lo, hi, tol float64) Constraint {
	return func(expr string, v complex128) error {
		re, im := real(v), imag(v)
		if im > tol || im < -tol || re < lo-tol || re > hi+tol {
			return fmt.Errorf("must be a real number in [%g, %g]", lo, hi)
		}

		return nil
	}
}

// labelWithParams renders label(p₁, p₂, …) over the editable parameters.
func labelWithParams(label string, ps []*Param) string {
	var names []string
	for _, p := range ps {
		if p.Editable {
			names = append(names, p.Label)
		}
	}
	if len(names) == 0 {
		return label
	}

	return label + "(" + strings.Join(names, ", ") + ")"
}
