// SPDX-License-Identifier: MIT
// Package cmatrix: sentinel error set.
// All functions return these sentinels, wrapped with an operation tag via
// fmt.Errorf("Op: %w", ErrX); callers match them with errors.Is.

package cmatrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested dimensions are non-positive
	// or that a row slice is ragged.
	ErrInvalidDimensions = errors.New("cmatrix: invalid dimensions")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("cmatrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand shapes.
	ErrDimensionMismatch = errors.New("cmatrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("cmatrix: matrix is not square")

	// ErrNotColumn signals that a column vector (n×1) was required.
	ErrNotColumn = errors.New("cmatrix: matrix is not a column vector")

	// ErrNotHermitian signals that a Hermitian input was required.
	ErrNotHermitian = errors.New("cmatrix: matrix is not Hermitian within tolerance")

	// ErrEigenFailed indicates that the eigen solver did not converge.
	ErrEigenFailed = errors.New("cmatrix: eigen decomposition failed")

	// ErrNilMatrix indicates that a nil *Dense was passed.
	ErrNilMatrix = errors.New("cmatrix: nil matrix")
)

// Operation tags used when wrapping sentinels.
const (
	opNew       = "New"
	opFromRows  = "FromRows"
	opAt        = "At"
	opSet       = "Set"
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTrace     = "Trace"
	opDet       = "Det"
	opOuter     = "Outer"
	opEigen     = "Eigenvalues"
	opEigenHerm = "EigenHermitian"
	opNorm      = "Norm"
)

// cmatrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
func cmatrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
