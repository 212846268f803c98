package grid

import "slices"

// IsValidPosition reports whether a width × height rectangle anchored at (x, y)
// lies inside the grid and overlaps no widget of layout other than the
// excluded IDs. Excluding the moving widget lets it be checked against a
// layout that still holds its pre-move entry.
func (g Grid) IsValidPosition(layout Layout, x, y, width, height int, exclude ...string) bool {
	r := Rect{X: x, Y: y, Width: width, Height: height}
	if width < 1 || height < 1 || !g.InBounds(r) {
		return false
	}
	for _, w := range layout {
		if slices.Contains(exclude, w.ID) {
			continue
		}
		if w.Rect().Overlaps(r) {
			return false
		}
	}
	return true
}

// FindOverlapping returns the widgets of layout, other than excludeID, whose
// rectangles overlap r. The result follows layout order, not spatial order.
func FindOverlapping(layout Layout, r Rect, excludeID string) []Widget {
	var out []Widget
	for _, w := range layout {
		if w.ID == excludeID {
			continue
		}
		if w.Rect().Overlaps(r) {
			out = append(out, w)
		}
	}
	return out
}

// FindFreePosition returns the first origin, in row-major order, where a
// widget of the given size fits without overlapping any widget of layout
// other than the excluded IDs. ok is false when no origin fits.
func (g Grid) FindFreePosition(layout Layout, size Size, exclude ...string) (pos Position, ok bool) {
	return g.firstFit(layout, size, nil, exclude)
}

// firstFit is FindFreePosition with additional reserved rectangles that no
// candidate may overlap.
func (g Grid) firstFit(layout Layout, size Size, reserved []Rect, exclude []string) (Position, bool) {
	for y := 0; y <= g.Rows-size.Height; y++ {
		for x := 0; x <= g.Columns-size.Width; x++ {
			if overlapsAny(reserved, Rect{X: x, Y: y, Width: size.Width, Height: size.Height}) {
				continue
			}
			if g.IsValidPosition(layout, x, y, size.Width, size.Height, exclude...) {
				return Position{X: x, Y: y}, true
			}
		}
	}
	return Position{}, false
}

func overlapsAny(rects []Rect, r Rect) bool {
	for _, o := range rects {
		if o.Overlaps(r) {
			return true
		}
	}
	return false
}
