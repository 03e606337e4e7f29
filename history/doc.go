// SPDX-License-Identifier: MIT

// Package history records the evolution of one live DensityMatrix as a
// linear undo/redo list.
//
// Each Element holds deep clones of the state before and after an edit and,
// when the edit was a gate application, a clone of the gate. Edits without a
// gate (the state was overwritten directly) are checkpoints: adding or
// redoing one hides every earlier gate path, undoing it shows the paths of
// the previous segment again.
//
// The list never branches. Adding an element while the cursor is not at the
// tail discards everything after the cursor. Undo at the first element and
// Redo at the last are no-ops.
//
//	index:    0        1        2        3
//	element:  [ρ0,ρ0]  [ρ0,H,ρ1] [ρ1,ρ2] [ρ2,X,ρ3]
//	                    ^ gate   ^ checkpoint
//
// A History is not safe for concurrent use; see package session.
package history
