// SPDX-License-Identifier: MIT

package cmatrix

import (
	"fmt"
	"strings"
)

// PauliX returns σx = [[0, 1], [1, 0]].
func PauliX() *Dense { return Mat2(0, 1, 1, 0) }

// PauliY returns σy = [[0, -i], [i, 0]].
func PauliY() *Dense { return Mat2(0, -1i, 1i, 0) }

// PauliZ returns σz = [[1, 0], [0, -1]].
func PauliZ() *Dense { return Mat2(1, 0, 0, -1) }

// Convention maps the three Pauli operators onto output vector indices.
//
// ConventionPhysics yields [⟨X⟩, ⟨Y⟩, ⟨Z⟩]. ConventionRenderer swaps the last
// two, [⟨X⟩, ⟨Z⟩, ⟨Y⟩], for scene graphs whose native up-axis is y.
// Bloch vectors and rotation axes must always be computed with the same
// convention.
type Convention int

const (
	// ConventionPhysics is the textbook ordering X, Y, Z.
	ConventionPhysics Convention = iota
	// ConventionRenderer is the y-up ordering X, Z, Y.
	ConventionRenderer
)

// String implements fmt.Stringer.
func (c Convention) String() string {
	switch c {
	case ConventionPhysics:
		return "physics"
	case ConventionRenderer:
		return "renderer"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention accepts "physics" or "renderer" (case-insensitive).
func ParseConvention(s string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physics", "":
		return ConventionPhysics, nil
	case "renderer":
		return ConventionRenderer, nil
	default:
		return ConventionPhysics, fmt.Errorf("cmatrix: unknown axis convention %q", s)
	}
}

// Paulis returns fresh Pauli operators in the convention's output order.
func (c Convention) Paulis() [3]*Dense {
	if c == ConventionRenderer {
		return [3]*Dense{PauliX(), PauliZ(), PauliY()}
	}

	return [3]*Dense{PauliX(), PauliY(), PauliZ()}
}

// FromPhysics reorders a physics-ordered [x, y, z] triple into this convention.
func (c Convention) FromPhysics(v [3]float64) [3]float64 {
	if c == ConventionRenderer {
		return [3]float64{v[0], v[2], v[1]}
	}

	return v
}

// ToPhysics is the inverse of FromPhysics.
func (c Convention) ToPhysics(v [3]float64) [3]float64 {
	// the swap is an involution
	return c.FromPhysics(v)
}
