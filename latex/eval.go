// SPDX-License-Identifier: MIT

package latex

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"
)

// Evaluator evaluates LaTeX fragments. The zero value is ready to use and
// holds no state, so one instance may be shared freely.
type Evaluator struct{}

// New returns an Evaluator.
func New() *Evaluator { return &Evaluator{} }

// Evaluate parses expr and evaluates it with vars bound by name. Names may be
// given with or without a leading backslash.
func (e *Evaluator) Evaluate(expr string, vars map[string]complex128) (complex128, error) {
	return Eval(expr, vars)
}

// Eval is the package-level form of Evaluator.Evaluate.
func Eval(expr string, vars map[string]complex128) (complex128, error) {
	if strings.TrimSpace(expr) == "" {
		return 0, ErrEmpty
	}
	bound := make(map[string]complex128, len(vars))
	for k, v := range vars {
		bound[normalizeName(k)] = v
	}
	p := &parser{toks: lex(expr), vars: bound}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return 0, posErrorf(ErrSyntax, t.pos, "unexpected %q", t.text)
	}

	return v, nil
}

type parser struct {
	toks []token
	pos  int
	vars map[string]complex128
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}

	return t
}

func (p *parser) expect(kind tokenKind, what string) error {
	t := p.next()
	if t.kind != kind {
		return posErrorf(ErrSyntax, t.pos, "expected %s", what)
	}

	return nil
}

// expr := term { (+|-) term }
func (p *parser) parseExpr() (complex128, error) {
	acc, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			acc += rhs
		case tokMinus:
			p.next()
			rhs, err := p.parseTerm()
			if err != nil {
				return 0, err
			}
			acc -= rhs
		default:
			return acc, nil
		}
	}
}

// term := unary { (*|/) unary | unary }
func (p *parser) parseTerm() (complex128, error) {
	acc, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		switch {
		case t.kind == tokStar:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			acc *= rhs
		case t.kind == tokSlash:
			p.next()
			rhs, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			acc /= rhs
		case startsFactor(t):
			rhs, err := p.parsePower()
			if err != nil {
				return 0, err
			}
			acc *= rhs
		default:
			return acc, nil
		}
	}
}

func startsFactor(t token) bool {
	switch t.kind {
	case tokNumber, tokLetters, tokCommand, tokLParen, tokLBrace:
		return true
	default:
		return false
	}
}

// unary := (+|-) unary | power
func (p *parser) parseUnary() (complex128, error) {
	switch p.peek().kind {
	case tokPlus:
		p.next()
		return p.parseUnary()
	case tokMinus:
		p.next()
		v, err := p.parseUnary()
		return -v, err
	default:
		return p.parsePower()
	}
}

// power := primary [ ^ exponent ]   (right associative)
func (p *parser) parsePower() (complex128, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseExponent()
	if err != nil {
		return 0, err
	}

	return pow(base, exp), nil
}

// exponent := group | [-] primary-with-power
func (p *parser) parseExponent() (complex128, error) {
	switch p.peek().kind {
	case tokLBrace:
		return p.parseGroup()
	case tokMinus:
		p.next()
		v, err := p.parsePower()
		return -v, err
	default:
		return p.parsePower()
	}
}

// parseGroup parses { expr }.
func (p *parser) parseGroup() (complex128, error) {
	if err := p.expect(tokLBrace, "'{'"); err != nil {
		return 0, err
	}
	v, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	if err := p.expect(tokRBrace, "'}'"); err != nil {
		return 0, err
	}

	return v, nil
}

// parseArg parses a command argument: a braced group or a single primary.
func (p *parser) parseArg() (complex128, error) {
	if p.peek().kind == tokLBrace {
		return p.parseGroup()
	}

	return p.parsePrimary()
}

func (p *parser) parsePrimary() (complex128, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		f, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return 0, posErrorf(ErrSyntax, t.pos, "bad number %q", t.text)
		}
		return complex(f, 0), nil
	case tokLetters:
		return p.parseLetters()
	case tokLParen:
		p.next()
		v, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(tokRParen, "')'"); err != nil {
			return 0, err
		}
		return v, nil
	case tokLBrace:
		return p.parseGroup()
	case tokCommand:
		p.next()
		return p.parseCommand(t)
	case tokEOF:
		return 0, posErrorf(ErrSyntax, t.pos, "unexpected end of input")
	default:
		return 0, posErrorf(ErrSyntax, t.pos, "unexpected %q", t.text)
	}
}

// parseLetters resolves the longest bound name at the start of the run and
// leaves the remainder of the run as the current token.
func (p *parser) parseLetters() (complex128, error) {
	t := p.peek()
	run := t.text
	for k := len(run); k >= 1; k-- {
		if v, ok := p.vars[run[:k]]; ok {
			p.consumeLetters(k)
			return v, nil
		}
	}
	// no bound prefix: resolve the first letter alone
	switch run[0] {
	case 'i':
		p.consumeLetters(1)
		return 1i, nil
	case 'e':
		p.consumeLetters(1)
		return complex(math.E, 0), nil
	default:
		return 0, posErrorf(ErrUnknownSymbol, t.pos, "%q", run[:1])
	}
}

func (p *parser) consumeLetters(k int) {
	t := &p.toks[p.pos]
	if k >= len(t.text) {
		p.pos++
		return
	}
	t.text = t.text[k:]
	t.pos += k
}

func (p *parser) parseCommand(t token) (complex128, error) {
	name := t.text
	if v, ok := p.vars[name]; ok {
		return v, nil
	}
	if v, ok := constants[name]; ok {
		return v, nil
	}
	if fn, ok := functions[name]; ok {
		return p.parseFunction(fn)
	}
	switch name {
	case "frac", "dfrac", "tfrac":
		num, err := p.parseArg()
		if err != nil {
			return 0, err
		}
		den, err := p.parseArg()
		if err != nil {
			return 0, err
		}
		return num / den, nil
	case "sqrt":
		root := complex(2, 0)
		if p.peek().kind == tokLBrack {
			p.next()
			r, err := p.parseExpr()
			if err != nil {
				return 0, err
			}
			if err := p.expect(tokRBrack, "']'"); err != nil {
				return 0, err
			}
			root = r
		}
		x, err := p.parseArg()
		if err != nil {
			return 0, err
		}
		if root == 2 {
			return cmplx.Sqrt(x), nil
		}
		return pow(x, 1/root), nil
	case "log":
		return p.parseLog()
	case "placeholder":
		if p.peek().kind == tokLBrack {
			if err := p.skipBracket(); err != nil {
				return 0, err
			}
		}
		return p.parseGroup()
	case "mathrm", "text", "operatorname", "mathit":
		return p.parseGroup()
	default:
		if greek[name] {
			return 0, posErrorf(ErrUnknownSymbol, t.pos, `\%s`, name)
		}
		return 0, posErrorf(ErrUnknownCommand, t.pos, `\%s`, name)
	}
}

// parseFunction handles \fn, \fn^k and \fn_{…} forms. The argument is a
// parenthesised expression, a braced group, or a single factor.
func (p *parser) parseFunction(fn func(complex128) complex128) (complex128, error) {
	var (
		power    complex128 = 1
		hasPower bool
	)
	if p.peek().kind == tokCaret {
		p.next()
		k, err := p.parseExponent()
		if err != nil {
			return 0, err
		}
		power, hasPower = k, true
	}
	x, err := p.parsePower()
	if err != nil {
		return 0, err
	}
	y := fn(x)
	if hasPower {
		y = pow(y, power)
	}

	return y, nil
}

// parseLog handles \log x (base 10) and \log_{b} x.
func (p *parser) parseLog() (complex128, error) {
	if p.peek().kind != tokUnderscore {
		return p.parseFunction(cmplx.Log10)
	}
	p.next()
	base, err := p.parseArg()
	if err != nil {
		return 0, err
	}
	lb := cmplx.Log(base)

	return p.parseFunction(func(x complex128) complex128 { return cmplx.Log(x) / lb })
}

// skipBracket drops an optional [ … ] argument without evaluating it.
func (p *parser) skipBracket() error {
	open := p.next()
	for depth := 1; depth > 0; {
		t := p.next()
		switch t.kind {
		case tokLBrack:
			depth++
		case tokRBrack:
			depth--
		case tokEOF:
			return posErrorf(ErrSyntax, open.pos, "unterminated '['")
		}
	}

	return nil
}

var constants = map[string]complex128{
	"pi":           complex(math.Pi, 0),
	"infty":        cmplx.Inf(),
	"imaginaryI":   1i,
	"exponentialE": complex(math.E, 0),
}

// greek names are variables, never commands; an unbound one is an unknown symbol.
var greek = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true, "epsilon": true,
	"varepsilon": true, "zeta": true, "eta": true, "theta": true, "vartheta": true,
	"iota": true, "kappa": true, "lambda": true, "mu": true, "nu": true, "xi": true,
	"rho": true, "sigma": true, "tau": true, "upsilon": true, "phi": true,
	"varphi": true, "chi": true, "psi": true, "omega": true,
	"Gamma": true, "Delta": true, "Theta": true, "Lambda": true, "Phi": true,
	"Psi": true, "Omega": true,
}

var functions = map[string]func(complex128) complex128{
	"sin":    cmplx.Sin,
	"cos":    cmplx.Cos,
	"tan":    cmplx.Tan,
	"arcsin": cmplx.Asin,
	"arccos": cmplx.Acos,
	"arctan": cmplx.Atan,
	"sinh":   cmplx.Sinh,
	"cosh":   cmplx.Cosh,
	"tanh":   cmplx.Tanh,
	"exp":    cmplx.Exp,
	"ln":     cmplx.Log,
}

// pow returns base^exp, using repeated multiplication for small integer
// exponents so that real inputs stay exactly real.
func pow(base, exp complex128) complex128 {
	if imag(exp) == 0 {
		r := real(exp)
		if r == math.Trunc(r) && math.Abs(r) <= 64 {
			n := int(math.Abs(r))
			acc := complex(1, 0)
			for k := 0; k < n; k++ {
				acc *= base
			}
			if r < 0 {
				return 1 / acc
			}
			return acc
		}
		// real base, real exponent, non-negative base: stay on the real line
		if imag(base) == 0 && real(base) >= 0 {
			return complex(math.Pow(real(base), r), 0)
		}
	}

	return cmplx.Pow(base, exp)
}
