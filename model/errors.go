// SPDX-License-Identifier: MIT
// Package model: sentinel error set and the user-facing validity pair.
// Every mutation returns one of these sentinels, wrapped with an operation
// tag via fmt.Errorf("Op: %w", ErrX). Callers match them with errors.Is.

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEvaluation indicates that an element, multiplier or parameter
	// expression could not be evaluated.
	ErrEvaluation = errors.New("model: expression could not be evaluated")

	// ErrShape indicates that a grid does not have the matrix's shape.
	ErrShape = errors.New("model: grid shape mismatch")

	// ErrNotFinite indicates a NaN or infinite entry.
	ErrNotFinite = errors.New("model: entry is not a finite complex number")

	// ErrNotUnitary indicates that M·M† differs from the identity.
	ErrNotUnitary = errors.New("model: matrix is not unitary")

	// ErrNotHermitian indicates that M differs from M†.
	ErrNotHermitian = errors.New("model: matrix is not Hermitian")

	// ErrNotPositive indicates an eigenvalue that is complex or outside [0,1].
	ErrNotPositive = errors.New("model: matrix is not a positive operator")

	// ErrImaginaryTrace indicates a trace with an imaginary part after the
	// eigenvalue checks passed. It marks an internal defect, not bad input.
	ErrImaginaryTrace = errors.New("model: trace has an imaginary part")

	// ErrTraceNotOne indicates a real trace different from 1.
	ErrTraceNotOne = errors.New("model: trace is not 1")

	// ErrNotNormalized indicates a state vector whose squared norm is not 1.
	ErrNotNormalized = errors.New("model: state vector is not normalized")

	// ErrIncomplete indicates Kraus operators with Σ Eₖ†Eₖ > I.
	ErrIncomplete = errors.New("model: operation elements are not complete")

	// ErrUnknownParam indicates a parameter name the matrix does not own.
	ErrUnknownParam = errors.New("model: unknown parameter")

	// ErrConstraint indicates a parameter value rejected by its constraint.
	ErrConstraint = errors.New("model: parameter constraint violated")

	// ErrNilMatrix indicates that a nil matrix, gate or operation was passed.
	ErrNilMatrix = errors.New("model: nil matrix")
)

// Operation tags used when wrapping sentinels.
const (
	opRegenerate  = "Regenerate"
	opValidate    = "Validate"
	opSetExprs    = "SetFromExpressions"
	opSetValues   = "SetFromValues"
	opSetValue    = "SetValue"
	opSetParam    = "SetParameter"
	opCopyFrom    = "CopyFrom"
	opApplyGate   = "ApplyGate"
	opApplyOp     = "ApplyOperation"
	opFromValues  = "FromValues"
	opOpSetParam  = "QuantumOperation.SetParameter"
	opBindParams  = "bindParams"
	opConstrained = "constraint"
)

// modelErrorf wraps err with an operation tag, preserving the sentinel via %w.
func modelErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// ConstraintError carries the message a parameter constraint produced.
// It matches ErrConstraint under errors.Is.
type ConstraintError struct {
	Param string // parameter name
	Expr  string // rejected expression
	Msg   string // constraint message, shown to the user
}

// Error implements error.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("model: parameter %s = %q rejected: %s", e.Param, e.Expr, e.Msg)
}

// Unwrap lets errors.Is match ErrConstraint.
func (e *ConstraintError) Unwrap() error { return ErrConstraint }

// Validity is the {IsValid, Message} pair returned to editors.
type Validity struct {
	IsValid bool
	Message string
}

// User-facing messages, one per failure class.
const (
	MsgInvalidInput  = "Invalid input"
	MsgNotUnitary    = "Not unitary"
	MsgNotHermitian  = "Not Hermitian"
	MsgNotPositive   = "Not a positive operator"
	MsgDefect        = "Negative eigenvalues, please report this to the developer"
	MsgTraceNotOne   = `$\operatorname{tr}[\rho] \neq 1$`
	MsgNotNormalized = "State vector must be normalized"
	MsgIncomplete    = "The operation elements are not complete"
	MsgUnknownParam  = "Unknown parameter"
)

// ValidityOf maps a mutation result to its Validity. A nil error is valid.
func ValidityOf(err error) Validity {
	if err == nil {
		return Validity{IsValid: true}
	}
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return Validity{Message: ce.Msg}
	}

	switch {
	case errors.Is(err, ErrEvaluation), errors.Is(err, ErrNotFinite), errors.Is(err, ErrShape):
		return Validity{Message: MsgInvalidInput}
	case errors.Is(err, ErrNotUnitary):
		return Validity{Message: MsgNotUnitary}
	case errors.Is(err, ErrNotHermitian):
		return Validity{Message: MsgNotHermitian}
	case errors.Is(err, ErrNotPositive):
		return Validity{Message: MsgNotPositive}
	case errors.Is(err, ErrImaginaryTrace):
		return Validity{Message: MsgDefect}
	case errors.Is(err, ErrTraceNotOne):
		return Validity{Message: MsgTraceNotOne}
	case errors.Is(err, ErrNotNormalized):
		return Validity{Message: MsgNotNormalized}
	case errors.Is(err, ErrIncomplete):
		return Validity{Message: MsgIncomplete}
	case errors.Is(err, ErrUnknownParam):
		return Validity{Message: MsgUnknownParam}
	default:
		return Validity{Message: err.Error()}
	}
}
