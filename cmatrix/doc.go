// SPDX-License-Identifier: MIT

// Package cmatrix provides the small fixed-shape complex matrices used by the
// single-qubit model: constructors, conjugate transpose, products, traces,
// determinants, Pauli operators and tolerance-aware predicates.
//
// Purpose:
//   - Give the model layer one value vocabulary (*Dense of complex128).
//   - Keep every comparison behind a single Tolerance policy (absolute 1e-10,
//     relative 1e-12 by default) so no caller uses exact float equality.
//   - Provide the two spectral routines the model needs: closed-form 2×2
//     eigenvalues and a Hermitian eigendecomposition backed by gonum.
//
// Conventions:
//   - Storage is row-major, offset = i*cols + j.
//   - Every operation returns a freshly allocated result; inputs are never
//     mutated except through Set.
//   - Shape violations return sentinel errors (see errors.go), never panics.
//
// Complexity quicksheet (n ≤ 2 in practice):
//   - Mul: O(r·k·c); Dagger/Transpose/Scale/Add: O(r·c); Trace: O(n);
//     Det: O(1) for 2×2; EigenHermitian: O(n³) on the 2n×2n real embedding.
package cmatrix
