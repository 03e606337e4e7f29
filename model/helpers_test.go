// SPDX-License-Identifier: MIT
package model_test

import (
	"io"
	"log/slog"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/blochlab/cmatrix"
	"github.com/katalvlaran/blochlab/model"
	"github.com/stretchr/testify/require"
)

const testTol = 1e-9

// quiet discards fallback warnings and defect reports.
func quiet() model.Option {
	return model.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func grid(rows ...[]string) [][]string { return rows }

func gateX() *model.GateMatrix {
	return model.NewGateMatrix(grid([]string{"0", "1"}, []string{"1", "0"}), "1", "X", nil, quiet())
}

func gateY() *model.GateMatrix {
	return model.NewGateMatrix(grid([]string{"0", "-i"}, []string{"i", "0"}), "1", "Y", nil, quiet())
}

func gateZ() *model.GateMatrix {
	return model.NewGateMatrix(grid([]string{"1", "0"}, []string{"0", "-1"}), "1", "Z", nil, quiet())
}

func gateH(opts ...model.Option) *model.GateMatrix {
	return model.NewGateMatrix(grid([]string{"1", "1"}, []string{"1", "-1"}), `\frac{1}{\sqrt{2}}`, "H",
		nil, append([]model.Option{quiet()}, opts...)...)
}

func gateRX(theta string, opts ...model.Option) *model.GateMatrix {
	return model.NewGateMatrix(
		grid([]string{`\cos(\theta/2)`, `-i \sin(\theta/2)`}, []string{`-i \sin(\theta/2)`, `\cos(\theta/2)`}),
		"1", `R_x`, []*model.Param{model.NewParam("theta", theta, `\theta`, true)},
		append([]model.Option{quiet()}, opts...)...)
}

func gateRY(theta string, opts ...model.Option) *model.GateMatrix {
	return model.NewGateMatrix(
		grid([]string{`\cos(\theta/2)`, `-\sin(\theta/2)`}, []string{`\sin(\theta/2)`, `\cos(\theta/2)`}),
		"1", `R_y`, []*model.Param{model.NewParam("theta", theta, `\theta`, true)},
		append([]model.Option{quiet()}, opts...)...)
}

func gateRZ(theta string, opts ...model.Option) *model.GateMatrix {
	return model.NewGateMatrix(
		grid([]string{`e^{-i \theta/2}`, "0"}, []string{"0", `e^{i \theta/2}`}),
		"1", `R_z`, []*model.Param{model.NewParam("theta", theta, `\theta`, true)},
		append([]model.Option{quiet()}, opts...)...)
}

func gateU3(theta, phi, lambda string, opts ...model.Option) *model.GateMatrix {
	return model.NewGateMatrix(
		grid(
			[]string{`\cos(\theta/2)`, `-e^{i \lambda} \sin(\theta/2)`},
			[]string{`e^{i \phi} \sin(\theta/2)`, `e^{i (\phi + \lambda)}\cos(\theta/2)`},
		),
		"1", `U_3`, []*model.Param{
			model.NewParam("theta", theta, `\theta`, true),
			model.NewParam("phi", phi, `\phi`, true),
			model.NewParam("lambda", lambda, `\lambda`, true),
		},
		append([]model.Option{quiet()}, opts...)...)
}

func ket0(opts ...model.Option) *model.DensityMatrix {
	return model.NewDensityMatrix(grid([]string{"1", "0"}, []string{"0", "0"}), "1", `|0\rangle`,
		nil, append([]model.Option{quiet()}, opts...)...)
}

func ket1() *model.DensityMatrix {
	return model.NewDensityMatrix(grid([]string{"0", "0"}, []string{"0", "1"}), "1", `|1\rangle`, nil, quiet())
}

func ketPlus() *model.DensityMatrix {
	return model.NewDensityMatrix(grid([]string{"1", "1"}, []string{"1", "1"}), `\frac{1}{2}`, `|+\rangle`, nil, quiet())
}

func ketI(opts ...model.Option) *model.DensityMatrix {
	return model.NewDensityMatrix(grid([]string{"1", "-i"}, []string{"i", "1"}), `\frac{1}{2}`, `|i\rangle`,
		nil, append([]model.Option{quiet()}, opts...)...)
}

func mixed() *model.DensityMatrix {
	return model.NewDensityMatrix(grid([]string{"1", "0"}, []string{"0", "1"}), `\frac{1}{2}`, `I/2`, nil, quiet())
}

// sampleStates covers the poles, the equator and generic interior points.
func sampleStates() map[string]*model.DensityMatrix {
	return map[string]*model.DensityMatrix{
		"ket0":    ket0(),
		"ket1":    ket1(),
		"ket+":    ketPlus(),
		"ket i":   ketI(),
		"generic": model.NewDensityMatrixFromBloch(1.1, 2.3, 1, quiet()),
		"mixed":   model.NewDensityMatrixFromBloch(0.4, 4.0, 0.6, quiet()),
		"centre":  mixed(),
	}
}

func sampleGates() map[string]*model.GateMatrix {
	return map[string]*model.GateMatrix{
		"X":  gateX(),
		"Y":  gateY(),
		"Z":  gateZ(),
		"H":  gateH(),
		"RX": gateRX(`\pi/3`),
		"RY": gateRY("1"),
		"RZ": gateRZ("2"),
		"U3": gateU3("0.7", "1.9", "-0.4"),
	}
}

func requireVecNear(t *testing.T, want, got [3]float64) {
	t.Helper()
	for k := range want {
		require.InDeltaf(t, want[k], got[k], testTol, "component %d: want %v got %v", k, want, got)
	}
}

func mustRows(t *testing.T, rows [][]complex128) *cmatrix.Dense {
	t.Helper()
	d, err := cmatrix.FromRows(rows)
	require.NoError(t, err)

	return d
}

func requireDenseNear(t *testing.T, want, got *cmatrix.Dense) {
	t.Helper()
	require.Truef(t, cmatrix.EqualApprox(want, got, cmatrix.NewTolerance(testTol, 0)),
		"want\n%sgot\n%s", want, got)
}

// requireSameRay asserts |⟨u|v⟩| ≈ 1 for unit kets u and v.
func requireSameRay(t *testing.T, u, v *cmatrix.Dense) {
	t.Helper()
	a, b := u.Raw(), v.Raw()
	require.Len(t, b, len(a))
	var dot complex128
	for k := range a {
		dot += cmplx.Conj(a[k]) * b[k]
	}
	require.InDelta(t, 1, cmplx.Abs(dot), testTol)
}
