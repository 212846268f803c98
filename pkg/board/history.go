package board

import (
	"slices"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// DefaultHistoryDepth is the number of undo steps kept when Options leaves it unset.
const DefaultHistoryDepth = 50

// History is a bounded undo/redo stack of committed layouts.
// It is not safe for concurrent use; Board serializes access.
type History struct {
	max  int
	undo []grid.Layout
	redo []grid.Layout
}

// NewHistory creates a history keeping at most max undo steps (0 means
// [DefaultHistoryDepth], negative disables undo).
func NewHistory(max int) *History {
	if max == 0 {
		max = DefaultHistoryDepth
	}
	return &History{max: max}
}

// Push records prev, the layout before a commit. Any new commit invalidates redo.
func (h *History) Push(prev grid.Layout) {
	h.redo = nil
	if h.max < 0 {
		return
	}
	h.undo = append(h.undo, prev.Clone())
	if len(h.undo) > h.max {
		// drop the oldest extras
		h.undo = append([]grid.Layout{}, h.undo[len(h.undo)-h.max:]...)
	}
}

// historyMark is a copy of both stacks, taken before a change that may
// still have to be rolled back.
type historyMark struct {
	undo, redo []grid.Layout
}

func (h *History) mark() historyMark {
	return historyMark{undo: slices.Clone(h.undo), redo: slices.Clone(h.redo)}
}

// reset puts both stacks back to m.
func (h *History) reset(m historyMark) {
	h.undo, h.redo = m.undo, m.redo
}

// Undo pops the last committed-from layout and pushes current onto redo.
func (h *History) Undo(current grid.Layout) (grid.Layout, bool) {
	n := len(h.undo)
	if n == 0 {
		return nil, false
	}
	prev := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, current.Clone())
	return prev, true
}

// Redo pops the last undone layout and pushes current back onto undo.
func (h *History) Redo(current grid.Layout) (grid.Layout, bool) {
	n := len(h.redo)
	if n == 0 {
		return nil, false
	}
	next := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, current.Clone())
	return next, true
}

// Len returns the number of available undo and redo steps.
func (h *History) Len() (undo, redo int) {
	return len(h.undo), len(h.redo)
}
