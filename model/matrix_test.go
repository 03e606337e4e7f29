// SPDX-License-Identifier: MIT
package model_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/blochlab/cmatrix"
	"github.com/katalvlaran/blochlab/model"
	"github.com/stretchr/testify/require"
)

// TestNewMatrixEvaluates checks element × multiplier evaluation under params.
func TestNewMatrixEvaluates(t *testing.T) {
	t.Parallel()

	m := model.NewMatrix(
		grid([]string{"a", "2a"}, []string{"i", "0"}),
		"b", "M",
		[]*model.Param{model.NewParam("a", "3", "a", true), model.NewParam("b", "a/3 + 1", "b", false)},
		quiet(),
	)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())
	requireDenseNear(t, cmatrix.Mat2(6, 12, 2i, 0), m.Values())
	require.Equal(t, "M(a)", m.LabelWithParams())
	require.Equal(t, "M(a)", m.ExtendedLabel())
	require.True(t, m.Consistent())
}

// TestConstructionFallback checks that each kind falls back to its default
// grid when the initial expressions are rejected.
func TestConstructionFallback(t *testing.T) {
	t.Parallel()

	bad := grid([]string{`\foo`, "0"}, []string{"0", "1"})

	m := model.NewMatrix(bad, "1", "M", nil, quiet())
	require.Equal(t, grid([]string{"0", "0"}, []string{"0", "0"}), m.Exprs())
	require.True(t, cmatrix.IsZero(m.Values(), cmatrix.DefaultTolerance()))

	g := model.NewGateMatrix(grid([]string{"1", "1"}, []string{"0", "1"}), "1", "G", nil, quiet())
	require.True(t, cmatrix.IsIdentity(g.Values(), cmatrix.DefaultTolerance()))
	require.Equal(t, "1", g.Multiplier())

	d := model.NewDensityMatrix(bad, "1", "D", nil, quiet())
	requireDenseNear(t, cmatrix.Mat2(1, 0, 0, 0), d.Values())

	s := model.NewStateVector(grid([]string{"1"}, []string{"1"}), "1", "s", nil, quiet())
	requireDenseNear(t, cmatrix.Col2(1, 0), s.Values())
}

// TestWithValuesIsTrusted checks that a supplied grid bypasses evaluation
// and suppresses the fallback.
func TestWithValuesIsTrusted(t *testing.T) {
	t.Parallel()

	s := 1 / math.Sqrt2
	exact := cmatrix.Mat2(complex(s, 0), complex(s, 0), complex(s, 0), complex(-s, 0))
	g := model.NewGateMatrix(
		grid([]string{"0.71", "0.71"}, []string{"0.71", "-0.71"}), "1", "H", nil,
		quiet(), model.WithValues(exact),
	)
	require.Equal(t, "0.71", g.Exprs()[0][0])
	require.Equal(t, exact.Raw(), g.Values().Raw())
}

// TestRejectionIsAtomic checks that a rejected mutation leaves values,
// expressions and multiplier exactly as they were.
func TestRejectionIsAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		exprs [][]string
		mult  string
		want  error
	}{
		{"infinite entry", grid([]string{`\infty`, "0"}, []string{"0", "0"}), "1", model.ErrNotFinite},
		{"nan entry", grid([]string{`\frac{0}{0}`, "0"}, []string{"0", "1"}), "1", model.ErrNotFinite},
		{"parse error", grid([]string{"1 +", "0"}, []string{"0", "0"}), "1", model.ErrEvaluation},
		{"bad multiplier", grid([]string{"1", "0"}, []string{"0", "0"}), `\sqrt{`, model.ErrEvaluation},
		{"unbound name", grid([]string{"q", "0"}, []string{"0", "0"}), "1", model.ErrEvaluation},
		{"wrong shape", grid([]string{"1", "0"}), "1", model.ErrShape},
		{"not hermitian", grid([]string{"1", "0"}, []string{"1", "0"}), "1", model.ErrNotHermitian},
		{"not positive", grid([]string{"1.5", "0"}, []string{"0", "-0.5"}), "1", model.ErrNotPositive},
		{"trace not one", grid([]string{"0.5", "0"}, []string{"0", "0.25"}), "1", model.ErrTraceNotOne},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := ketPlus()
			exprs, mult, values := d.Exprs(), d.Multiplier(), d.Values().Raw()

			err := d.SetFromExpressions(tc.exprs, tc.mult)
			require.ErrorIs(t, err, tc.want)
			require.Equal(t, exprs, d.Exprs())
			require.Equal(t, mult, d.Multiplier())
			require.Equal(t, values, d.Values().Raw())

			if tc.exprs != nil && len(tc.exprs) == 2 {
				candidate, rerr := d.Regenerate(tc.exprs, tc.mult)
				if rerr == nil {
					err = d.SetFromValues(candidate)
					require.ErrorIs(t, err, tc.want)
					require.Equal(t, exprs, d.Exprs())
					require.Equal(t, mult, d.Multiplier())
					require.Equal(t, values, d.Values().Raw())
				}
			}
		})
	}
}

// TestSetFromExpressions checks a successful commit.
func TestSetFromExpressions(t *testing.T) {
	t.Parallel()

	d := ket0()
	d.SetConsistent(false)
	require.NoError(t, d.SetFromExpressions(grid([]string{"1", "-1"}, []string{"-1", "1"}), `\frac{1}{2}`))
	requireDenseNear(t, cmatrix.Mat2(0.5, -0.5, -0.5, 0.5), d.Values())
	require.Equal(t, `\frac{1}{2}`, d.Multiplier())
	require.Equal(t, "-1", d.Exprs()[0][1])
	require.True(t, d.Consistent())
}

// TestSetFromValuesDisplay checks display regeneration: changed cells only,
// every cell when the old multiplier was not "1".
func TestSetFromValuesDisplay(t *testing.T) {
	t.Parallel()

	t.Run("unchanged cells keep their expression", func(t *testing.T) {
		t.Parallel()
		m := model.NewMatrix(grid([]string{`\frac{1}{3}`, "0"}, []string{"0", "1"}), "1", "M", nil, quiet())
		next := m.Values()
		require.NoError(t, next.Set(1, 1, 0.25+0.5i))
		require.NoError(t, m.SetFromValues(next))
		require.Equal(t, grid([]string{`\frac{1}{3}`, "0"}, []string{"0", "0.25 + 0.5i"}), m.Exprs())
		require.Equal(t, "1", m.Multiplier())
	})

	t.Run("non-unit multiplier rewrites every cell", func(t *testing.T) {
		t.Parallel()
		d := ketPlus()
		require.NoError(t, d.SetFromValues(d.Values()))
		require.Equal(t, "1", d.Multiplier())
		require.Equal(t, grid([]string{"0.5", "0.5"}, []string{"0.5", "0.5"}), d.Exprs())
		requireDenseNear(t, cmatrix.Mat2(0.5, 0.5, 0.5, 0.5), d.Values())
	})

	t.Run("decimals option", func(t *testing.T) {
		t.Parallel()
		m := model.NewMatrix(grid([]string{"0", "0"}), "1", "row", nil, quiet(), model.WithDecimals(4))
		require.NoError(t, m.SetValue(complex(1/math.Sqrt2, 0), 0, 1))
		require.Equal(t, "0.7071", m.Exprs()[0][1])
	})
}

// TestSetValue checks the single-cell path and its bounds.
func TestSetValue(t *testing.T) {
	t.Parallel()

	m := model.NewMatrix(grid([]string{"1", "0"}, []string{"0", "1"}), "1", "M", nil, quiet())
	require.NoError(t, m.SetValue(2i, 0, 1))
	require.Equal(t, complex(0, 2), m.At(0, 1))
	require.Equal(t, "2i", m.Exprs()[0][1])

	require.ErrorIs(t, m.SetValue(1, 2, 0), cmatrix.ErrOutOfRange)

	g := gateX()
	require.ErrorIs(t, g.SetValue(2, 0, 1), model.ErrNotUnitary)
	require.Equal(t, complex(1, 0), g.At(0, 1))
}

// TestSetParameter checks propagation, rollback and constraint handling.
func TestSetParameter(t *testing.T) {
	t.Parallel()

	t.Run("propagates", func(t *testing.T) {
		t.Parallel()
		g := gateRX(`\pi/2`)
		require.NoError(t, g.SetParameter("theta", `\pi`))
		requireDenseNear(t, cmatrix.Mat2(0, -1i, -1i, 0), g.Values())
		p, ok := g.Param("theta")
		require.True(t, ok)
		require.Equal(t, `\pi`, p.Expr)
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		g := gateRX(`\pi/2`)
		require.ErrorIs(t, g.SetParameter("phi", "1"), model.ErrUnknownParam)
	})

	t.Run("rejected grid rolls the parameter back", func(t *testing.T) {
		t.Parallel()
		// theta scales the diagonal, so any theta ≠ 1 breaks unitarity
		g := model.NewGateMatrix(grid([]string{"theta", "0"}, []string{"0", "1"}), "1", "G",
			[]*model.Param{model.NewParam("theta", "1", `\theta`, true)}, quiet())
		before := g.Values().Raw()
		require.ErrorIs(t, g.SetParameter("theta", "2"), model.ErrNotUnitary)
		p, _ := g.Param("theta")
		require.Equal(t, "1", p.Expr)
		require.Equal(t, before, g.Values().Raw())

		require.ErrorIs(t, g.SetParameter("theta", `\oops`), model.ErrEvaluation)
		p, _ = g.Param("theta")
		require.Equal(t, "1", p.Expr)
	})

	t.Run("constraint", func(t *testing.T) {
		t.Parallel()
		p := model.NewParam("p", "0.5", "p", true).Constrain(model.RealRange(0, 1, 1e-10))
		m := model.NewMatrix(grid([]string{`\sqrt{p}`}), "1", "M", []*model.Param{p}, quiet())

		err := m.SetParameter("p", "1.5")
		require.ErrorIs(t, err, model.ErrConstraint)
		require.Equal(t, "must be a real number in [0, 1]", model.ValidityOf(err).Message)
		got, _ := m.Param("p")
		require.Equal(t, "0.5", got.Expr)

		require.ErrorIs(t, m.SetParameter("p", "i"), model.ErrConstraint)
		require.NoError(t, m.SetParameter("p", "0.25"))
		require.InDelta(t, 0.5, real(m.At(0, 0)), testTol)
	})

	t.Run("constraint with dependent parameters", func(t *testing.T) {
		t.Parallel()
		scale := model.NewParam("a", "0.5", "a", true)
		p := model.NewParam("p", "a", "p", true).Constrain(model.RealRange(0, 1, 1e-10))
		q := model.NewParam("q", "1-p", "q", false)
		m := model.NewMatrix(grid([]string{"p", "q"}), "1", "M", []*model.Param{scale, p, q}, quiet())
		requireDenseNear(t, mustRows(t, [][]complex128{{0.5, 0.5}}), m.Values())

		// q refers to p, a is referenced by p
		require.NoError(t, m.SetParameter("p", "0.25"))
		requireDenseNear(t, mustRows(t, [][]complex128{{0.25, 0.75}}), m.Values())
		require.NoError(t, m.SetParameter("p", "2a"))
		requireDenseNear(t, mustRows(t, [][]complex128{{1, 0}}), m.Values())

		// the constraint sees the value of the new expression, not the old one
		require.ErrorIs(t, m.SetParameter("p", "3a"), model.ErrConstraint)
		got, _ := m.Param("p")
		require.Equal(t, "2a", got.Expr)
		requireDenseNear(t, mustRows(t, [][]complex128{{1, 0}}), m.Values())
	})
}

// TestCloneIsIndependent checks that clones share nothing mutable.
func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	g := gateRX(`\pi/2`)
	g.SetMessage("note")
	cl := g.Clone()
	require.Equal(t, g.Exprs(), cl.Exprs())
	require.Equal(t, g.Values().Raw(), cl.Values().Raw())
	require.Equal(t, "note", cl.Message())

	require.NoError(t, cl.SetParameter("theta", `\pi`))
	p, _ := g.Param("theta")
	require.Equal(t, `\pi/2`, p.Expr)
	require.NotEqual(t, g.Values().Raw(), cl.Values().Raw())

	// accessors hand out copies
	g.Params()[0].Expr = "0"
	p, _ = g.Param("theta")
	require.Equal(t, `\pi/2`, p.Expr)
	g.Exprs()[0][0] = "9"
	require.Equal(t, `\cos(\theta/2)`, g.Exprs()[0][0])
}

// TestCopyFrom checks the in-place overwrite used by history restores.
func TestCopyFrom(t *testing.T) {
	t.Parallel()

	dst := gateX()
	src := gateRZ("1")
	src.SetConsistent(false)
	src.SetMessage("m")
	require.NoError(t, dst.CopyFrom(src))
	require.Equal(t, src.Exprs(), dst.Exprs())
	require.Equal(t, src.Values().Raw(), dst.Values().Raw())
	require.Equal(t, `R_z(\theta)`, dst.LabelWithParams())
	require.False(t, dst.Consistent())
	require.Equal(t, "m", dst.Message())

	// parameters are copied, not shared
	require.NoError(t, dst.SetParameter("theta", "2"))
	p, _ := src.Param("theta")
	require.Equal(t, "1", p.Expr)

	require.ErrorIs(t, dst.CopyFrom(nil), model.ErrNilMatrix)
	row := model.NewMatrix(grid([]string{"1", "0"}), "1", "r", nil, quiet())
	require.ErrorIs(t, row.CopyFrom(dst.Matrix), model.ErrShape)
}

// TestLaTeX pins both display forms.
func TestLaTeX(t *testing.T) {
	t.Parallel()

	x := gateX()
	require.Equal(t,
		`X =  \begin{bmatrix}0 & 1 \\ 1 & 0\end{bmatrix}`,
		x.LaTeX(true))
	require.Equal(t,
		`X = \placeholder[mult]{1} \begin{bmatrix}\placeholder[m00]{0} & \placeholder[m01]{1} \\ `+
			`\placeholder[m10]{1} & \placeholder[m11]{0}\end{bmatrix}`,
		x.LaTeX(false))

	h := gateH()
	require.Equal(t,
		`H = \frac{1}{\sqrt{2}} \begin{bmatrix}1 & 1 \\ 1 & -1\end{bmatrix}`,
		h.LaTeX(true))

	d := ket0()
	require.Equal(t, `\rho^{|0\rangle} =  \begin{bmatrix}1 & 0 \\ 0 & 0\end{bmatrix}`, d.LaTeX(true))
}

// TestLabels checks the derived labels.
func TestLabels(t *testing.T) {
	t.Parallel()

	u := gateU3("1", "2", "3")
	require.Equal(t, `U_3`, u.Label())
	require.Equal(t, `U_3(\theta, \phi, \lambda)`, u.LabelWithParams())

	d := ket0()
	require.Equal(t, `\rho^{|0\rangle}`, d.ExtendedLabel())
	d.SetLabel("psi")
	require.Equal(t, `\rho^{psi}`, d.ExtendedLabel())
}

// TestOptionPanics checks that programmer errors panic.
func TestOptionPanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { model.WithTolerance(-1) })
	require.Panics(t, func() { model.WithTolerance(math.NaN()) })
	require.Panics(t, func() { model.WithDecimals(-1) })
	require.Panics(t, func() { model.WithDecimals(model.MaxDecimals + 1) })
	require.Panics(t, func() { model.WithEvaluator(nil) })
	require.NotPanics(t, func() { model.WithLogger(nil) })
}
