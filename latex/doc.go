// SPDX-License-Identifier: MIT

// Package latex evaluates the LaTeX math fragments typed into matrix cells
// (entries, multipliers, parameter values) to complex128.
//
// The accepted language is the subset a matrix editor produces:
//
//	numbers        1  0.5  .5  2e-3
//	constants      i  e  \pi  \infty
//	variables      x  p  \theta  \phi  \lambda  \gamma  (bound by name)
//	operators      +  -  *  /  ^  \cdot  \times  and juxtaposition
//	groups         ( )  { }  \left( \right)
//	commands       \frac{a}{b}  \sqrt{x}  \sqrt[n]{x}
//	functions      \sin \cos \tan \arcsin \arccos \arctan \sinh \cosh
//	               \exp \ln \log \log_{b}, with optional power: \sin^2(x)
//	wrappers       \placeholder[name]{value}  \mathrm{..}  \text{..}
//
// Letters that are not bound names are read one at a time, so "ab" is a·b;
// a run of letters that spells a bound name ("theta", "gamma") is read as
// that name first. The letters i and e are the imaginary unit and Euler's
// number unless a binding shadows them.
//
// Evaluation never panics; malformed input yields an error wrapping
// ErrSyntax, ErrUnknownSymbol or ErrUnknownCommand. Arithmetic that
// overflows or divides by zero yields Inf/NaN values, which callers are
// expected to reject.
package latex
