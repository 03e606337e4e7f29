// SPDX-License-Identifier: MIT

package model

import (
	"math"

	"gonum.org/v1/gonum/num/quat"

	"github.com/katalvlaran/blochlab/cmatrix"
)

// GatePath is the arc a Bloch vector travels when a gate is applied: Start
// rotated about Axis by Angle. Axis and Angle are exactly what
// GateMatrix.RotationAxis and RotationAngle return; Convention tells which
// way that axis points relative to the rotation.
type GatePath struct {
	Start      [3]float64
	Axis       [3]float64
	Angle      float64
	Convention cmatrix.Convention
}

// PathOf returns the arc of gate g applied to state before. It reports
// false when g has no rotation axis (the identity up to a phase).
func PathOf(before *DensityMatrix, g *GateMatrix) (GatePath, bool) {
	if before == nil || g == nil {
		return GatePath{}, false
	}
	angle := g.RotationAngle()
	if g.set.tol.IsZero(angle) {
		return GatePath{}, false
	}
	axis, ok := g.RotationAxis()
	if !ok {
		return GatePath{}, false
	}

	return GatePath{
		Start:      before.BlochVector(),
		Axis:       axis,
		Angle:      angle,
		Convention: g.set.convention,
	}, true
}

// PointAt returns the point reached after the fraction t of the arc
// (t = 0 is Start, t = 1 the end point).
//
// The gate formula yields -n for a rotation about n in the physics
// ordering. The renderer ordering is a reflection, which flips handedness
// and makes the same formula rotate the right way, so only the physics
// ordering negates the angle.
func (p GatePath) PointAt(t float64) [3]float64 {
	n := math.Sqrt(p.Axis[0]*p.Axis[0] + p.Axis[1]*p.Axis[1] + p.Axis[2]*p.Axis[2])
	if n == 0 {
		return p.Start
	}
	angle := t * p.Angle
	if p.Convention == cmatrix.ConventionPhysics {
		angle = -angle
	}

	// v' = q·v·q̄ with q = cos(a/2) + sin(a/2)·û
	s := math.Sin(angle/2) / n
	q := quat.Number{
		Real: math.Cos(angle / 2),
		Imag: s * p.Axis[0],
		Jmag: s * p.Axis[1],
		Kmag: s * p.Axis[2],
	}
	v := quat.Number{Imag: p.Start[0], Jmag: p.Start[1], Kmag: p.Start[2]}
	r := quat.Mul(quat.Mul(q, v), quat.Conj(q))

	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}

// End returns PointAt(1).
func (p GatePath) End() [3]float64 { return p.PointAt(1) }

// Sample returns n+1 evenly spaced points from Start to End inclusive.
// n < 1 is treated as 1.
func (p GatePath) Sample(n int) [][3]float64 {
	if n < 1 {
		n = 1
	}
	out := make([][3]float64, n+1)
	for k := 0; k <= n; k++ {
		out[k] = p.PointAt(float64(k) / float64(n))
	}

	return out
}
