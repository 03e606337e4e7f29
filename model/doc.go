// SPDX-License-Identifier: MIT

// Package model implements the constrained single-qubit matrices: a
// parametrized matrix engine (Matrix) and its specialisations GateMatrix,
// DensityMatrix and StateVector, plus QuantumOperation for Kraus channels and
// GatePath for the rotation arcs drawn between Bloch vectors.
//
// Every Matrix keeps three views of itself in lockstep:
//
//	exprs   R×C LaTeX element expressions plus a scalar multiplier expression
//	params  named parameters bound into the expressions ([]*Param)
//	values  the resolved complex grid (exprs × multiplier under params)
//
// The only mutation paths are SetFromExpressions, SetFromValues (and its
// single-cell form SetValue) and SetParameter. Each one builds a candidate
// grid, validates it through the matrix Kind, and commits only on success;
// a rejected call returns an error and leaves every view untouched.
//
// Validation layers:
//
//	Matrix         every entry finite, grid shape matches
//	GateMatrix     M·M† ≈ I
//	DensityMatrix  Hermitian, eigenvalues real in [0,1], tr ≈ 1
//	StateVector    Σ|vᵢ|² ≈ 1
//
// Errors are sentinels (see errors.go); ValidityOf turns any of them into the
// {IsValid, Message} pair shown next to a matrix editor.
//
// Types in this package are not safe for concurrent use. Hosts that share a
// live state across goroutines guard it with one lock (see package session).
package model
