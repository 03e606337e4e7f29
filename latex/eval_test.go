// SPDX-License-Identifier: MIT
package latex_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/blochlab/latex"
	"github.com/stretchr/testify/require"
)

const evalTol = 1e-12

func requireClose(t *testing.T, want, got complex128) {
	t.Helper()
	require.InDeltaf(t, real(want), real(got), evalTol, "real part: want %v got %v", want, got)
	require.InDeltaf(t, imag(want), imag(got), evalTol, "imag part: want %v got %v", want, got)
}

// TestEvalLiterals covers numbers, constants and the imaginary unit.
func TestEvalLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want complex128
	}{
		{"integer", "1", 1},
		{"decimal", "0.71", 0.71},
		{"leading dot", ".5", 0.5},
		{"scientific", "2e-3", 0.002},
		{"negative", "-1", -1},
		{"imaginary unit", "i", 1i},
		{"negative imaginary", "-i", -1i},
		{"scaled imaginary", "0.5i", 0.5i},
		{"formatted complex", "0.5 - 0.25i", 0.5 - 0.25i},
		{"pi", `\pi`, complex(math.Pi, 0)},
		{"euler", "e", complex(math.E, 0)},
		{"mathrm i", `\mathrm{i}`, 1i},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := latex.Eval(tc.expr, nil)
			require.NoError(t, err)
			requireClose(t, tc.want, got)
		})
	}
}

// TestEvalOperators covers precedence, juxtaposition and powers.
func TestEvalOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want complex128
	}{
		{"precedence", "1 + 2 * 3", 7},
		{"left assoc division", "8 / 2 / 2", 2},
		{"cdot", `2 \cdot 3`, 6},
		{"times", `2 \times 3`, 6},
		{"juxtaposition", "2i", 2i},
		{"power", "2^3", 8},
		{"right assoc power", "2^3^2", 512},
		{"braced exponent", "2^{1+1}", 4},
		{"negative exponent", "2^-1", 0.5},
		{"unary minus binds looser than power", "-2^2", -4},
		{"parentheses", "(1+i)(1-i)", 2},
		{"left right", `\left(1+1\right)^2`, 4},
		{"braces as group", "{1+1}*3", 6},
		{"i squared", "i^2", -1},
		{"euler identity", `e^{i \pi}`, -1},
		{"spacing ignored", `1\,+\;1`, 2},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := latex.Eval(tc.expr, nil)
			require.NoError(t, err)
			requireClose(t, tc.want, got)
		})
	}
}

// TestEvalCommands covers \frac, \sqrt and the function table.
func TestEvalCommands(t *testing.T) {
	t.Parallel()

	s := 1 / math.Sqrt2
	tests := []struct {
		name string
		expr string
		want complex128
	}{
		{"frac", `\frac{1}{2}`, 0.5},
		{"frac sqrt", `\frac{1}{\sqrt{2}}`, complex(s, 0)},
		{"sqrt negative", `\sqrt{-1}`, 1i},
		{"nth root", `\sqrt[3]{8}`, 2},
		{"sin", `\sin(\pi/2)`, 1},
		{"cos bare argument", `\cos \pi`, -1},
		{"squared function", `\sin^2(\pi/4)`, 0.5},
		{"exp", `\exp(0)`, 1},
		{"ln", `\ln(e)`, 1},
		{"log10", `\log(100)`, 2},
		{"log base", `\log_{2}(8)`, 3},
		{"arccos", `\arccos(0)`, complex(math.Pi/2, 0)},
		{"placeholder", `\placeholder[m01]{\frac{1}{4}}`, 0.25},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := latex.Eval(tc.expr, nil)
			require.NoError(t, err)
			requireClose(t, tc.want, got)
		})
	}
}

// TestEvalBindings covers Greek and Latin variables and name normalisation.
func TestEvalBindings(t *testing.T) {
	t.Parallel()

	theta := complex(math.Pi/3, 0)
	vars := map[string]complex128{
		"theta":  theta,
		`\phi`:   complex(math.Pi/2, 0),
		"lambda": 0,
		"p":      0.36,
		"gamma":  0.19,
		"x":      2,
		"y":      3,
	}
	tests := []struct {
		name string
		expr string
		want complex128
	}{
		{"greek", `\cos(\theta/2)`, cmplx.Cos(theta / 2)},
		{"backslash key", `e^{i \phi}`, 1i},
		{"rz entry", `e^{-i \theta/2}`, cmplx.Exp(-1i * theta / 2)},
		{"sqrt of param", `\sqrt{1-p}`, 0.8},
		{"frac of param", `\sqrt{\frac{p}{3}}`, complex(math.Sqrt(0.12), 0)},
		{"greek as letters", `\sqrt{gamma}`, complex(math.Sqrt(0.19), 0)},
		{"juxtaposed latin", "xy", 6},
		{"power binds to last letter", "xy^2", 18},
		{"u3 entry", `e^{i (\phi + \lambda)}\cos(\theta/2)`, 1i * cmplx.Cos(theta/2)},
		{"squared trig", `\cos^2(\frac{\theta}{2})`, cmplx.Cos(theta/2) * cmplx.Cos(theta/2)},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := latex.New().Evaluate(tc.expr, vars)
			require.NoError(t, err)
			requireClose(t, tc.want, got)
		})
	}
}

// TestEvalShadowing lets a binding named i override the imaginary unit.
func TestEvalShadowing(t *testing.T) {
	t.Parallel()

	got, err := latex.Eval("2i", map[string]complex128{"i": 5})
	require.NoError(t, err)
	requireClose(t, 10, got)
}

// TestEvalErrors pins the sentinel returned for each failure class.
func TestEvalErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want error
	}{
		{"empty", "   ", latex.ErrEmpty},
		{"dangling operator", "1 +", latex.ErrSyntax},
		{"unbalanced paren", "(1+2", latex.ErrSyntax},
		{"unbalanced brace", `\frac{1}{2`, latex.ErrSyntax},
		{"stray closer", "1)", latex.ErrSyntax},
		{"unknown latin", "q", latex.ErrUnknownSymbol},
		{"unbound greek", `\theta`, latex.ErrUnknownSymbol},
		{"unknown command", `\foo{1}`, latex.ErrUnknownCommand},
		{"bad rune", "1 # 2", latex.ErrSyntax},
		{"leading bad rune", "# 2", latex.ErrSyntax},
		{"double dot", "..", latex.ErrSyntax},
		{"invalid utf8", "\xff", latex.ErrSyntax},
		{"unterminated placeholder", `\placeholder[m{1}`, latex.ErrSyntax},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := latex.Eval(tc.expr, nil)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestEvalBadCharacterMessage checks a stray character is named in the
// error instead of being reported as a command.
func TestEvalBadCharacterMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want string
	}{
		{"hash", "1 # 2", `latex: syntax error at offset 2: unexpected "#"`},
		{"double dot", "..", `latex: syntax error at offset 0: unexpected "."`},
		{"invalid utf8", "\xff", `latex: syntax error at offset 0: unexpected "\xff"`},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := latex.Eval(tc.expr, nil)
			require.EqualError(t, err, tc.want)
			require.NotErrorIs(t, err, latex.ErrUnknownCommand)
		})
	}
}

// TestEvalNonFinite documents that overflow is a value, not an error.
func TestEvalNonFinite(t *testing.T) {
	t.Parallel()

	v, err := latex.Eval(`\infty`, nil)
	require.NoError(t, err)
	require.True(t, cmplx.IsInf(v))

	v, err = latex.Eval(`\frac{1}{0}`, nil)
	require.NoError(t, err)
	require.True(t, cmplx.IsInf(v) || cmplx.IsNaN(v))
}
