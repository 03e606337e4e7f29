// SPDX-License-Identifier: MIT

package history

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/blochlab/model"
)

// FutureMarker prefixes the names of undone elements in NameList.
const FutureMarker = "#"

// History is the undo/redo list of one live state.
//
// Invariant: 0 ≤ current < len(list) once constructed; checkpoints is
// ascending and its first entry is 0.
type History struct {
	list        []*Element
	current     int
	checkpoints []int
	log         *slog.Logger
}

// Option configures a History.
type Option func(*History)

// WithLogger sets the logger used for checkpoint traces and consistency
// warnings. Nil selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(h *History) {
		if l == nil {
			l = slog.Default()
		}
		h.log = l
	}
}

// New starts a history whose first element is the checkpoint
// [initial, initial].
// Errors: ErrNilState.
func New(initial *model.DensityMatrix, opts ...Option) (*History, error) {
	if initial == nil {
		return nil, fmt.Errorf("history.New: %w", ErrNilState)
	}
	h := &History{current: -1, log: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.AddElement(initial, initial, nil); err != nil {
		return nil, err
	}

	return h, nil
}

// AddElement records an edit from before to after, applied through gate
// (nil for a direct overwrite). Elements after the cursor are discarded.
// A checkpoint hides the paths of every earlier element.
// Errors: ErrNilState.
func (h *History) AddElement(before, after *model.DensityMatrix, gate *model.GateMatrix) error {
	if before == nil || after == nil {
		return fmt.Errorf("History.AddElement: %w", ErrNilState)
	}
	if !after.Consistent() {
		h.log.Error("recording a state that is not consistent",
			"label", after.Label(), "message", after.Message(), "defect", true)
	}
	el := newElement(before, after, gate)

	// Stage 1: drop the redo branch.
	h.current++
	for k := h.current; k < len(h.list); k++ {
		h.list[k] = nil
	}
	h.list = h.list[:h.current]

	// Stage 2: a direct overwrite starts a new path segment.
	if gate == nil {
		h.hidePaths(h.current)
		h.checkpoints = append(h.checkpoints, h.current)
		h.log.Debug("history checkpoint added", "index", h.current)
	}

	h.list = append(h.list, el)

	return nil
}

// Undo steps the cursor back and restores into target the state before the
// undone edit. At the first element it does nothing.
// Errors: ErrNilState.
func (h *History) Undo(target *model.DensityMatrix) error {
	if target == nil {
		return fmt.Errorf("History.Undo: %w", ErrNilState)
	}
	if h.current <= 0 {
		return nil
	}
	undone := h.current
	if err := target.CopyFrom(h.list[undone].Before); err != nil {
		return fmt.Errorf("History.Undo: %w", err)
	}
	h.current--

	// Undoing a checkpoint shows the previous segment's paths again.
	n := len(h.checkpoints)
	if n > 1 && h.checkpoints[n-1] == undone {
		for _, el := range h.list[h.checkpoints[n-2]:undone] {
			el.PathVisible = true
		}
		h.checkpoints = h.checkpoints[:n-1]
		h.log.Debug("history checkpoint removed", "index", undone)
	}

	return nil
}

// Redo advances the cursor and restores into target the state after the
// redone edit. At the last element it does nothing.
// Errors: ErrNilState.
func (h *History) Redo(target *model.DensityMatrix) error {
	if target == nil {
		return fmt.Errorf("History.Redo: %w", ErrNilState)
	}
	if h.current >= len(h.list)-1 {
		return nil
	}
	next := h.list[h.current+1]
	if err := target.CopyFrom(next.After); err != nil {
		return fmt.Errorf("History.Redo: %w", err)
	}
	h.current++

	if next.IsCheckpoint() {
		h.hidePaths(h.current)
		h.checkpoints = append(h.checkpoints, h.current)
		h.log.Debug("history checkpoint added", "index", h.current)
	}

	return nil
}

// hidePaths clears PathVisible on list[:end].
func (h *History) hidePaths(end int) {
	for _, el := range h.list[:end] {
		el.PathVisible = false
	}
}

// List returns the elements up to and including the cursor.
func (h *History) List() []*Element {
	out := make([]*Element, h.current+1)
	copy(out, h.list[:h.current+1])

	return out
}

// NameList returns the names of every element, undone ones prefixed with
// FutureMarker.
func (h *History) NameList() []string {
	out := make([]string, len(h.list))
	for i, el := range h.list {
		prefix := ""
		if i > h.current {
			prefix = FutureMarker
		}
		out[i] = prefix + " " + el.Name()
	}

	return out
}

// Paths returns the visible gate arcs up to the cursor, oldest first.
func (h *History) Paths() []model.GatePath {
	var out []model.GatePath
	for _, el := range h.list[:h.current+1] {
		if !el.PathVisible {
			continue
		}
		if p, ok := el.Path(); ok {
			out = append(out, p)
		}
	}

	return out
}

// Checkpoints returns a copy of the active checkpoint indices.
func (h *History) Checkpoints() []int {
	return append([]int(nil), h.checkpoints...)
}

// EarliestChange reports whether the cursor is at the first element.
func (h *History) EarliestChange() bool { return h.current == 0 }

// LatestChange reports whether the cursor is at the last element.
func (h *History) LatestChange() bool { return h.current == len(h.list)-1 }

// Current returns the cursor index.
func (h *History) Current() int { return h.current }

// Len returns the number of elements, undone ones included.
func (h *History) Len() int { return len(h.list) }
