// SPDX-License-Identifier: MIT
package model_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/blochlab/cmatrix"
	"github.com/katalvlaran/blochlab/model"
	"github.com/stretchr/testify/require"
)

// TestGateUnitarity checks the unitarity invariant and its message.
func TestGateUnitarity(t *testing.T) {
	t.Parallel()

	g := gateH()
	err := g.SetFromExpressions(grid([]string{"1", "1"}, []string{"1", "1"}), "1")
	require.ErrorIs(t, err, model.ErrNotUnitary)
	require.Equal(t, model.Validity{Message: model.MsgNotUnitary}, model.ValidityOf(err))

	// a global phase keeps a gate unitary
	require.NoError(t, g.SetFromExpressions(grid([]string{"i", "0"}, []string{"0", "i"}), "1"))
}

// TestRotationAngleAndAxis pins the known values of the standard gates.
func TestRotationAngleAndAxis(t *testing.T) {
	t.Parallel()

	s := 1 / math.Sqrt2
	tests := []struct {
		name  string
		gate  *model.GateMatrix
		angle float64
		axis  [3]float64 // physics ordering, as the formula yields it
	}{
		{"X", gateX(), math.Pi, [3]float64{-1, 0, 0}},
		{"Y", gateY(), math.Pi, [3]float64{0, -1, 0}},
		{"Z", gateZ(), math.Pi, [3]float64{0, 0, -1}},
		{"H", gateH(), math.Pi, [3]float64{-s, 0, -s}},
		{"RX(pi/2)", gateRX(`\pi/2`), math.Pi / 2, [3]float64{-1, 0, 0}},
		{"RY(1)", gateRY("1"), 1, [3]float64{0, -1, 0}},
		{"RZ(2)", gateRZ("2"), 2, [3]float64{0, 0, -1}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.InDelta(t, tc.angle, tc.gate.RotationAngle(), testTol)
			axis, ok := tc.gate.RotationAxis()
			require.True(t, ok)
			requireVecNear(t, tc.axis, axis)
			require.InDelta(t, 1, math.Sqrt(axis[0]*axis[0]+axis[1]*axis[1]+axis[2]*axis[2]), testTol)
		})
	}
}

// TestRotationAxisConvention checks the renderer ordering swaps the last two
// components.
func TestRotationAxisConvention(t *testing.T) {
	t.Parallel()

	physics, ok := gateRZ(`\pi/2`).RotationAxis()
	require.True(t, ok)
	renderer, ok := gateRZ(`\pi/2`, model.WithConvention(cmatrix.ConventionRenderer)).RotationAxis()
	require.True(t, ok)
	requireVecNear(t, cmatrix.ConventionRenderer.FromPhysics(physics), renderer)
	requireVecNear(t, [3]float64{0, -1, 0}, renderer)
}

// TestRotationAxisNone checks that identity-like gates report no axis.
func TestRotationAxisNone(t *testing.T) {
	t.Parallel()

	id := model.NewGateMatrix(grid([]string{"1", "0"}, []string{"0", "1"}), "1", "I", nil, quiet())
	require.InDelta(t, 0, id.RotationAngle(), testTol)
	_, ok := id.RotationAxis()
	require.False(t, ok)

	zero := gateRX("0")
	_, ok = zero.RotationAxis()
	require.False(t, ok)

	minus := model.NewGateMatrix(grid([]string{"-1", "0"}, []string{"0", "-1"}), "1", "-I", nil, quiet())
	_, ok = minus.RotationAxis()
	require.False(t, ok)
}

// TestGateClone checks that the clone is a gate with the same grid.
func TestGateClone(t *testing.T) {
	t.Parallel()

	g := gateU3("1", "2", "3")
	cl := g.Clone()
	require.Equal(t, g.Values().Raw(), cl.Values().Raw())
	require.InDelta(t, g.RotationAngle(), cl.RotationAngle(), testTol)
	require.ErrorIs(t, cl.SetFromExpressions(grid([]string{"2", "0"}, []string{"0", "1"}), "1"), model.ErrNotUnitary)
	require.ErrorIs(t, cl.CopyFrom(nil), model.ErrNilMatrix)
	require.NoError(t, cl.CopyFrom(gateX()))
	require.Equal(t, "X", cl.Label())
}
