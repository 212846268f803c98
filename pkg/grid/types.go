package grid

// =============================================================================
// Cells and Rectangles
// =============================================================================

// Position is an integer cell coordinate. X grows to the right, Y grows down.
type Position struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Size is an integer cell extent. Both dimensions are at least 1 for a placed widget.
type Size struct {
	Width  int `json:"width" bson:"width"`
	Height int `json:"height" bson:"height"`
}

// Rect is an axis-aligned rectangle of cells covering [X, X+Width) × [Y, Y+Height).
type Rect struct {
	X, Y          int
	Width, Height int
}

// RectAt returns the rectangle of the given size anchored at pos.
func RectAt(pos Position, size Size) Rect {
	return Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
}

// Origin returns the top-left cell of the rectangle.
func (r Rect) Origin() Position { return Position{X: r.X, Y: r.Y} }

// Overlaps reports whether r and o share at least one cell.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Contains reports whether o lies entirely within r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

// Area returns the number of cells covered by r.
func (r Rect) Area() int { return r.Width * r.Height }

// =============================================================================
// Widget
// =============================================================================

// Widget is a placed rectangular occupant of the grid.
// The ID is opaque and stable; the size never changes once placed.
type Widget struct {
	ID       string   `json:"id" bson:"id"`
	Position Position `json:"position" bson:"position"`
	Size     Size     `json:"size" bson:"size"`
}

// Rect returns the cells occupied by the widget.
func (w Widget) Rect() Rect { return RectAt(w.Position, w.Size) }

// =============================================================================
// Layout
// =============================================================================

// Layout is an ordered collection of widgets. Order is insertion order and
// decides the displacement order in [Grid.Relocate].
type Layout []Widget

// Clone returns a copy of the layout that can be modified independently.
// A nil layout clones to nil.
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the widget with the given ID, or -1.
func (l Layout) Index(id string) int {
	for i, w := range l {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the widget with the given ID.
func (l Layout) Find(id string) (Widget, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Widget{}, false
}

// IDs returns the widget IDs in layout order.
func (l Layout) IDs() []string {
	ids := make([]string, len(l))
	for i, w := range l {
		ids[i] = w.ID
	}
	return ids
}

// Without returns a copy of the layout with the given widget removed.
func (l Layout) Without(id string) Layout {
	out := make(Layout, 0, len(l))
	for _, w := range l {
		if w.ID != id {
			out = append(out, w)
		}
	}
	return out
}

// Equal reports whether both layouts hold the same widgets in the same order.
func (l Layout) Equal(o Layout) bool {
	if len(l) != len(o) {
		return false
	}
	for i := range l {
		if l[i] != o[i] {
			return false
		}
	}
	return true
}

// =============================================================================
// Grid
// =============================================================================

// Grid is the fixed logical extent of a board plus its pixel metrics.
// CellSize and Gap only matter for pointer conversion; the placement
// functions look at Columns and Rows alone.
type Grid struct {
	Columns  int     `json:"columns" bson:"columns" toml:"columns"`
	Rows     int     `json:"rows" bson:"rows" toml:"rows"`
	CellSize float64 `json:"cell_size,omitempty" bson:"cell_size,omitempty" toml:"cell_size"`
	Gap      float64 `json:"gap,omitempty" bson:"gap,omitempty" toml:"gap"`
}

// Default pixel metrics used by [New].
const (
	DefaultCellSize = 80
	DefaultGap      = 8
)

// New returns a grid of the given dimensions with default pixel metrics.
func New(columns, rows int) Grid {
	return Grid{Columns: columns, Rows: rows, CellSize: DefaultCellSize, Gap: DefaultGap}
}

// Bounds returns the rectangle covering the whole grid.
func (g Grid) Bounds() Rect { return Rect{Width: g.Columns, Height: g.Rows} }

// InBounds reports whether r lies entirely inside the grid.
func (g Grid) InBounds(r Rect) bool { return g.Bounds().Contains(r) }

// Cells returns the total number of cells in the grid.
func (g Grid) Cells() int { return g.Columns * g.Rows }

// FreeCells returns the number of cells not covered by any widget of a valid layout.
func (g Grid) FreeCells(layout Layout) int {
	used := 0
	for _, w := range layout {
		used += w.Rect().Area()
	}
	return g.Cells() - used
}
