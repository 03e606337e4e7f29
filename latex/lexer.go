// SPDX-License-Identifier: MIT

package latex

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokLetters // a run of ASCII letters, split by the parser
	tokCommand // \name, text holds name without the backslash
	tokLParen
	tokRParen
	tokLBrace
	tokRBrace
	tokLBrack
	tokRBrack
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokUnderscore
	tokInvalid // a character outside the grammar, text holds it
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// spacing commands carry no value.
var ignoredCommands = map[string]bool{
	"left":         true,
	"right":        true,
	"quad":         true,
	"qquad":        true,
	",":            true,
	";":            true,
	":":            true,
	"!":            true,
	" ":            true,
	"big":          true,
	"Big":          true,
	"bigl":         true,
	"bigr":         true,
	"displaystyle": true,
}

// lex splits src into tokens. It never fails; a character outside the
// grammar becomes a tokInvalid, which the parser reports as a syntax error.
func lex(src string) []token {
	var (
		toks []token
		i    int
		n    = len(src)
	)
	for i < n {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '~':
			i++
		case isDigit(c) || (c == '.' && i+1 < n && isDigit(src[i+1])):
			start := i
			i = scanNumber(src, i)
			toks = append(toks, token{kind: tokNumber, text: src[start:i], pos: start})
		case isLetter(c):
			start := i
			for i < n && isLetter(src[i]) {
				i++
			}
			toks = append(toks, token{kind: tokLetters, text: src[start:i], pos: start})
		case c == '\\':
			start := i
			i++
			if i < n && isLetter(src[i]) {
				for i < n && isLetter(src[i]) {
					i++
				}
			} else if i < n {
				i++ // single-symbol command such as \, or \{
			}
			name := src[start+1 : i]
			if ignoredCommands[name] {
				continue
			}
			switch name {
			case "{":
				toks = append(toks, token{kind: tokLParen, text: "(", pos: start})
			case "}":
				toks = append(toks, token{kind: tokRParen, text: ")", pos: start})
			case "cdot", "times", "ast":
				toks = append(toks, token{kind: tokStar, text: "*", pos: start})
			case "div":
				toks = append(toks, token{kind: tokSlash, text: "/", pos: start})
			default:
				toks = append(toks, token{kind: tokCommand, text: name, pos: start})
			}
		default:
			kind, ok := punctuation[c]
			if !ok {
				_, size := utf8.DecodeRuneInString(src[i:])
				toks = append(toks, token{kind: tokInvalid, text: src[i : i+size], pos: i})
				i += size
				continue
			}
			toks = append(toks, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}

	return append(toks, token{kind: tokEOF, pos: n})
}

var punctuation = map[byte]tokenKind{
	'(': tokLParen,
	')': tokRParen,
	'{': tokLBrace,
	'}': tokRBrace,
	'[': tokLBrack,
	']': tokRBrack,
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'^': tokCaret,
	'_': tokUnderscore,
}

// scanNumber consumes digits, an optional fraction and an optional
// exponent written as e±d. The exponent is only taken when a digit follows,
// so "2e^{x}" stays 2·e^x.
func scanNumber(src string, i int) int {
	n := len(src)
	for i < n && isDigit(src[i]) {
		i++
	}
	if i < n && src[i] == '.' {
		i++
		for i < n && isDigit(src[i]) {
			i++
		}
	}
	if i < n && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < n && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j < n && isDigit(src[j]) {
			for j < n && isDigit(src[j]) {
				j++
			}
			i = j
		}
	}

	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return c < unicode.MaxASCII && unicode.IsLetter(rune(c)) }

// normalizeName strips a leading backslash so "\theta" and "theta" bind the same variable.
func normalizeName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), `\`)
}
