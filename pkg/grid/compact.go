package grid

import (
	"cmp"
	"slices"
)

// Compact repacks the layout to remove dead space.
//
// One pass visits widgets in reading order (by Y, then X; ties keep layout
// order) and gives each the first free position among the widgets already
// repacked. A widget that finds no room keeps its original position, unless
// a widget repacked before it now covers that spot: then the pass is void
// and the layout is returned unchanged.
//
// Passes repeat while they still pull the layout toward the top-left, so
// compacting a compacted layout changes nothing. Sizes and IDs are
// preserved; the result is in the order the last pass visited the widgets.
func (g Grid) Compact(layout Layout) Layout {
	cur := layout.Clone()
	for {
		next, ok := g.compactPass(cur)
		if !ok {
			return cur
		}
		if samePositions(cur, next) {
			return next
		}
		if slices.Compare(g.scanKey(next), g.scanKey(cur)) >= 0 {
			return cur
		}
		cur = next
	}
}

// compactPass is a single first-fit repacking in reading order. ok is false
// when a widget without room would overlap one already repacked.
func (g Grid) compactPass(layout Layout) (Layout, bool) {
	order := layout.Clone()
	slices.SortStableFunc(order, readingOrder)

	placed := make(Layout, 0, len(order))
	for _, w := range order {
		if pos, ok := g.FindFreePosition(placed, w.Size, w.ID); ok {
			w.Position = pos
		} else if len(FindOverlapping(placed, w.Rect(), w.ID)) > 0 {
			return nil, false
		}
		placed = append(placed, w)
	}
	return placed, true
}

// scanKey lists the row-major cell index of every widget origin, ascending.
// Each accepted pass makes it lexicographically smaller, which bounds the
// number of passes.
func (g Grid) scanKey(layout Layout) []int {
	key := make([]int, len(layout))
	for i, w := range layout {
		key[i] = w.Position.Y*g.Columns + w.Position.X
	}
	slices.Sort(key)
	return key
}

func samePositions(a, b Layout) bool {
	if len(a) != len(b) {
		return false
	}
	for _, w := range a {
		o, ok := b.Find(w.ID)
		if !ok || o.Position != w.Position {
			return false
		}
	}
	return true
}

func readingOrder(a, b Widget) int {
	if c := cmp.Compare(a.Position.Y, b.Position.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.Position.X, b.Position.X)
}
