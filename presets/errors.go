// SPDX-License-Identifier: MIT

package presets

import "errors"

var (
	// ErrUnknownPreset indicates that no gate, state or channel has the
	// requested name.
	ErrUnknownPreset = errors.New("presets: unknown preset")

	// ErrInvalidCatalog indicates that a catalog could not be decoded or
	// failed structural validation.
	ErrInvalidCatalog = errors.New("presets: invalid catalog")

	// ErrInvalidPreset indicates that a catalog entry does not evaluate to a
	// valid gate, state or complete channel.
	ErrInvalidPreset = errors.New("presets: invalid preset")
)
