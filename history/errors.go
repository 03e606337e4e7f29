// SPDX-License-Identifier: MIT

package history

import "errors"

// ErrNilState indicates that a nil DensityMatrix was passed where a state is
// required.
var ErrNilState = errors.New("history: nil density matrix")
