// SPDX-License-Identifier: MIT

// Package cmatrix: spectral routines.
//
// Eigenvalues solves the characteristic polynomial of a 2×2 matrix in closed
// form and returns complex roots, so callers can test them for being real.
//
// EigenHermitian diagonalises a Hermitian H = A + iB through its real
// symmetric embedding
//
//	M = [ A  -B ]
//	    [ B   A ]
//
// which gonum's EigenSym handles. Every eigenvalue of H appears twice in M,
// and each eigenvector [u; v] of M maps to the eigenvector u + iv of H. A
// complex Gram-Schmidt pass keeps n linearly independent vectors.

package cmatrix

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// independenceFloor is the residual norm below which a candidate eigenvector
// is considered dependent on those already kept. Candidates come from an
// orthonormal real basis, so accepted residuals are ≥ 1/√2.
const independenceFloor = 0.5

// Eigenvalues returns the eigenvalues of a 1×1 or 2×2 matrix, sorted by real
// part ascending.
// Errors: ErrNonSquare, ErrDimensionMismatch (n > 2).
func Eigenvalues(m *Dense) ([]complex128, error) {
	if m == nil {
		return nil, cmatrixErrorf(opEigen, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, cmatrixErrorf(opEigen, ErrNonSquare)
	}
	switch m.r {
	case 1:
		return []complex128{m.data[0]}, nil
	case 2:
		// λ = (a+d)/2 ± sqrt(((a-d)/2)² + b·c)
		var (
			a, b, c, d = m.data[0], m.data[1], m.data[2], m.data[3]
			half       = (a + d) / 2
			diff       = (a - d) / 2
			s          = cmplx.Sqrt(diff*diff + b*c)
			vals       = []complex128{half - s, half + s}
		)
		sort.Slice(vals, func(i, j int) bool { return real(vals[i]) < real(vals[j]) })

		return vals, nil
	default:
		return nil, cmatrixErrorf(opEigen, ErrDimensionMismatch)
	}
}

// EigenHermitian returns the real eigenvalues (ascending) and the matching
// unit-norm eigenvectors (as n×1 columns) of a Hermitian matrix.
// Errors: ErrNonSquare, ErrNotHermitian, ErrEigenFailed.
// Complexity: O((2n)³).
func EigenHermitian(m *Dense, tol Tolerance) ([]float64, []*Dense, error) {
	// Stage 1: validate.
	if m == nil {
		return nil, nil, cmatrixErrorf(opEigenHerm, ErrNilMatrix)
	}
	if m.r != m.c {
		return nil, nil, cmatrixErrorf(opEigenHerm, ErrNonSquare)
	}
	if !IsHermitian(m, tol) {
		return nil, nil, cmatrixErrorf(opEigenHerm, ErrNotHermitian)
	}

	// Stage 2: build the 2n×2n real symmetric embedding.
	var (
		n    = m.r
		dim  = 2 * n
		data = make([]float64, dim*dim)
		i, j int
		z    complex128
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			z = m.at(i, j)
			data[i*dim+j] = real(z)         // A
			data[(n+i)*dim+(n+j)] = real(z) // A
			data[i*dim+(n+j)] = -imag(z)    // -B
			data[(n+i)*dim+j] = imag(z)     // B
		}
	}
	sym := mat.NewSymDense(dim, data)

	// Stage 3: factorize.
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, cmatrixErrorf(opEigenHerm, ErrEigenFailed)
	}
	realVals := es.Values(nil)
	var realVecs mat.Dense
	es.VectorsTo(&realVecs)

	// Stage 4: fold back to complex eigenvectors, keeping n independent ones.
	var (
		values  = make([]float64, 0, n)
		vectors = make([]*Dense, 0, n)
		k       int
	)
	for k = 0; k < dim && len(vectors) < n; k++ {
		cand := newUnchecked(n, 1)
		for i = 0; i < n; i++ {
			cand.data[i] = complex(realVecs.At(i, k), realVecs.At(n+i, k))
		}
		// project out the vectors already kept
		for _, kept := range vectors {
			var dot complex128
			for i = 0; i < n; i++ {
				dot += cmplx.Conj(kept.data[i]) * cand.data[i]
			}
			for i = 0; i < n; i++ {
				cand.data[i] -= dot * kept.data[i]
			}
		}
		norm := Norm(cand)
		if norm < independenceFloor {
			continue
		}
		vectors = append(vectors, Scale(complex(1/norm, 0), cand))
		values = append(values, realVals[k])
	}
	if len(vectors) != n {
		return nil, nil, cmatrixErrorf(opEigenHerm, ErrEigenFailed)
	}

	return values, vectors, nil
}
