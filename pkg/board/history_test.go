package board

import (
	"testing"

	"github.com/matzehuels/gridboard/pkg/grid"
)

func layoutAt(x int) grid.Layout {
	return grid.Layout{wd("a", x, 0, 1, 1)}
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory(10)
	h.Push(layoutAt(0))
	h.Push(layoutAt(1))

	prev, ok := h.Undo(layoutAt(2))
	if !ok || !prev.Equal(layoutAt(1)) {
		t.Fatalf("Undo = %+v, %v; want x=1", prev, ok)
	}
	next, ok := h.Redo(prev)
	if !ok || !next.Equal(layoutAt(2)) {
		t.Fatalf("Redo = %+v, %v; want x=2", next, ok)
	}
	if undo, redo := h.Len(); undo != 2 || redo != 0 {
		t.Errorf("Len = %d, %d; want 2, 0", undo, redo)
	}
}

func TestHistoryPushClearsRedo(t *testing.T) {
	h := NewHistory(10)
	h.Push(layoutAt(0))
	h.Undo(layoutAt(1))
	h.Push(layoutAt(0))

	if _, ok := h.Redo(layoutAt(3)); ok {
		t.Error("Push should clear redo")
	}
}

func TestHistoryDepth(t *testing.T) {
	tests := []struct {
		name     string
		max      int
		pushes   int
		wantUndo int
	}{
		{"capped", 2, 5, 2},
		{"default", 0, 3, 3},
		{"disabled", -1, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.max)
			for i := 0; i < tt.pushes; i++ {
				h.Push(layoutAt(i))
			}
			if undo, _ := h.Len(); undo != tt.wantUndo {
				t.Errorf("undo steps = %d, want %d", undo, tt.wantUndo)
			}
		})
	}

	// The oldest steps are dropped first.
	h := NewHistory(2)
	for i := 0; i < 5; i++ {
		h.Push(layoutAt(i))
	}
	prev, _ := h.Undo(layoutAt(5))
	if !prev.Equal(layoutAt(4)) {
		t.Errorf("newest step = %+v, want x=4", prev)
	}
	prev, _ = h.Undo(prev)
	if !prev.Equal(layoutAt(3)) {
		t.Errorf("oldest kept step = %+v, want x=3", prev)
	}
}

func TestHistoryPushCopies(t *testing.T) {
	h := NewHistory(10)
	l := layoutAt(0)
	h.Push(l)
	l[0].Position.X = 9

	prev, _ := h.Undo(nil)
	if prev[0].Position.X != 0 {
		t.Error("Push should store a copy")
	}
}

func TestHistoryMarkReset(t *testing.T) {
	h := NewHistory(10)
	h.Push(layoutAt(0))
	h.Push(layoutAt(1))
	h.Undo(layoutAt(2))

	m := h.mark()
	h.Undo(layoutAt(1))
	h.Push(layoutAt(3))
	h.reset(m)

	if undo, redo := h.Len(); undo != 1 || redo != 1 {
		t.Fatalf("Len after reset = %d, %d; want 1, 1", undo, redo)
	}
	next, ok := h.Redo(layoutAt(1))
	if !ok || !next.Equal(layoutAt(2)) {
		t.Errorf("Redo after reset = %+v, %v; want x=2", next, ok)
	}
}
