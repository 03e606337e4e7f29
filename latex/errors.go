// SPDX-License-Identifier: MIT

package latex

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("latex: empty expression")

	// ErrSyntax is returned for malformed input (unbalanced groups, dangling operators).
	ErrSyntax = errors.New("latex: syntax error")

	// ErrUnknownSymbol is returned for an unbound variable.
	ErrUnknownSymbol = errors.New("latex: unknown symbol")

	// ErrUnknownCommand is returned for an unsupported \command.
	ErrUnknownCommand = errors.New("latex: unknown command")
)

// posErrorf wraps a sentinel with the byte offset and a detail string.
func posErrorf(err error, pos int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", err, pos, fmt.Sprintf(format, args...))
}
