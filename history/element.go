// SPDX-License-Identifier: MIT

package history

import (
	"github.com/google/uuid"

	"github.com/katalvlaran/blochlab/model"
)

// Element is one recorded edit. Before, After and Gate are private clones
// taken when the element was added; callers must treat them as read-only.
type Element struct {
	ID          uuid.UUID
	Before      *model.DensityMatrix
	After       *model.DensityMatrix
	Gate        *model.GateMatrix // nil for a direct overwrite
	PathVisible bool
}

func newElement(before, after *model.DensityMatrix, gate *model.GateMatrix) *Element {
	e := &Element{
		ID:          uuid.New(),
		Before:      before.Clone(),
		After:       after.Clone(),
		PathVisible: true,
	}
	// a recorded state is no longer being edited
	e.Before.SetConsistent(true)
	if gate != nil {
		e.Gate = gate.Clone()
	}

	return e
}

// IsCheckpoint reports whether the element is a direct overwrite.
func (e *Element) IsCheckpoint() bool { return e.Gate == nil }

// Path returns the arc drawn for the element's gate. It reports false for
// checkpoints and for gates that do not rotate the sphere.
func (e *Element) Path() (model.GatePath, bool) {
	if e.Gate == nil {
		return model.GatePath{}, false
	}

	return model.PathOf(e.Before, e.Gate)
}

// Name renders the element as "[before, gate, after]" or "[before, after]".
func (e *Element) Name() string {
	if e.Gate != nil {
		return "[" + e.Before.Label() + ", " + e.Gate.Label() + ", " + e.After.Label() + "]"
	}

	return "[" + e.Before.Label() + ", " + e.After.Label() + "]"
}
