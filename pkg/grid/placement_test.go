package grid

import (
	"slices"
	"testing"
)

// wd builds a widget for table tests.
func wd(id string, x, y, width, height int) Widget {
	return Widget{ID: id, Position: Position{X: x, Y: y}, Size: Size{Width: width, Height: height}}
}

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 1, Y: 1, Width: 2, Height: 2}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"identical", base, true},
		{"inside", Rect{X: 2, Y: 2, Width: 1, Height: 1}, true},
		{"partial", Rect{X: 0, Y: 0, Width: 2, Height: 2}, true},
		{"touching right edge", Rect{X: 3, Y: 1, Width: 1, Height: 2}, false},
		{"touching bottom edge", Rect{X: 1, Y: 3, Width: 2, Height: 1}, false},
		{"touching corner", Rect{X: 3, Y: 3, Width: 1, Height: 1}, false},
		{"overlap on x only", Rect{X: 1, Y: 5, Width: 2, Height: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %+v", tt.other)
			}
		})
	}
}

func TestIsValidPosition(t *testing.T) {
	g := New(4, 4)
	layout := Layout{wd("a", 0, 0, 2, 2), wd("b", 3, 3, 1, 1)}

	tests := []struct {
		name          string
		x, y          int
		width, height int
		exclude       []string
		want          bool
	}{
		{"free corner touching a", 2, 0, 2, 2, nil, true},
		{"overlaps a", 1, 1, 1, 1, nil, false},
		{"overlaps a but excluded", 1, 1, 1, 1, []string{"a"}, true},
		{"excluding other id does not help", 1, 1, 1, 1, []string{"b"}, false},
		{"past right edge", 3, 0, 2, 1, nil, false},
		{"past bottom edge", 0, 3, 1, 2, nil, false},
		{"negative x", -1, 0, 1, 1, nil, false},
		{"touching b", 2, 3, 1, 1, nil, true},
		{"whole grid", 0, 0, 4, 4, nil, false},
		{"whole grid excluding all", 0, 0, 4, 4, []string{"a", "b"}, true},
		{"zero size", 2, 2, 0, 1, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.IsValidPosition(layout, tt.x, tt.y, tt.width, tt.height, tt.exclude...)
			if got != tt.want {
				t.Errorf("IsValidPosition(%d,%d,%dx%d, %v) = %v, want %v",
					tt.x, tt.y, tt.width, tt.height, tt.exclude, got, tt.want)
			}
		})
	}
}

func TestFindOverlapping(t *testing.T) {
	layout := Layout{wd("c", 2, 0, 1, 1), wd("a", 0, 0, 1, 1), wd("b", 1, 0, 1, 1)}

	tests := []struct {
		name    string
		rect    Rect
		exclude string
		want    []string
	}{
		{"layout order not spatial", Rect{Width: 3, Height: 1}, "", []string{"c", "a", "b"}},
		{"excluded id skipped", Rect{Width: 3, Height: 1}, "a", []string{"c", "b"}},
		{"edge contact only", Rect{Y: 1, Width: 3, Height: 1}, "", nil},
		{"single hit", Rect{X: 1, Width: 1, Height: 1}, "", []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindOverlapping(layout, tt.rect, tt.exclude)
			ids := Layout(got).IDs()
			if len(ids) == 0 {
				ids = nil
			}
			if !slices.Equal(ids, tt.want) {
				t.Errorf("FindOverlapping() = %v, want %v", ids, tt.want)
			}
		})
	}
}

func TestFindFreePosition(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		layout  Layout
		size    Size
		exclude []string
		want    Position
		wantOK  bool
	}{
		{
			name:   "empty grid",
			grid:   New(4, 4),
			size:   Size{Width: 2, Height: 3},
			want:   Position{},
			wantOK: true,
		},
		{
			name:   "next cell in row",
			grid:   New(2, 2),
			layout: Layout{wd("a", 0, 0, 1, 1)},
			size:   Size{Width: 1, Height: 1},
			want:   Position{X: 1},
			wantOK: true,
		},
		{
			name:   "wraps to next row",
			grid:   New(2, 2),
			layout: Layout{wd("a", 0, 0, 2, 1)},
			size:   Size{Width: 1, Height: 1},
			want:   Position{Y: 1},
			wantOK: true,
		},
		{
			name:   "skips gap too small",
			grid:   New(3, 3),
			layout: Layout{wd("a", 1, 0, 1, 1)},
			size:   Size{Width: 2, Height: 1},
			want:   Position{X: 0, Y: 1},
			wantOK: true,
		},
		{
			name:   "full grid",
			grid:   New(2, 1),
			layout: Layout{wd("a", 0, 0, 1, 1), wd("b", 1, 0, 1, 1)},
			size:   Size{Width: 1, Height: 1},
			wantOK: false,
		},
		{
			name:   "larger than grid",
			grid:   New(2, 2),
			size:   Size{Width: 3, Height: 1},
			wantOK: false,
		},
		{
			name:    "excluded widget frees its cells",
			grid:    New(2, 2),
			layout:  Layout{wd("a", 0, 0, 2, 2)},
			size:    Size{Width: 1, Height: 1},
			exclude: []string{"a"},
			want:    Position{},
			wantOK:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.grid.FindFreePosition(tt.layout, tt.size, tt.exclude...)
			if ok != tt.wantOK {
				t.Fatalf("FindFreePosition() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("FindFreePosition() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFindFreePositionDeterministic(t *testing.T) {
	g := New(6, 5)
	layout := Layout{wd("a", 0, 0, 2, 1), wd("b", 3, 0, 3, 2), wd("c", 0, 2, 1, 3)}
	size := Size{Width: 2, Height: 2}

	first, ok1 := g.FindFreePosition(layout, size)
	second, ok2 := g.FindFreePosition(layout, size)
	if ok1 != ok2 || first != second {
		t.Errorf("FindFreePosition not deterministic: %+v/%v vs %+v/%v", first, ok1, second, ok2)
	}
	if want := (Position{X: 1, Y: 1}); first != want {
		t.Errorf("FindFreePosition() = %+v, want %+v", first, want)
	}
}

func TestLayoutHelpers(t *testing.T) {
	layout := Layout{wd("a", 0, 0, 1, 1), wd("b", 1, 0, 1, 1)}

	if got := layout.Index("b"); got != 1 {
		t.Errorf("Index(b) = %d, want 1", got)
	}
	if got := layout.Index("zzz"); got != -1 {
		t.Errorf("Index(zzz) = %d, want -1", got)
	}
	if _, ok := layout.Find("a"); !ok {
		t.Error("Find(a) should succeed")
	}

	clone := layout.Clone()
	clone[0].Position.X = 3
	if layout[0].Position.X != 0 {
		t.Error("Clone should not share backing storage")
	}
	if layout.Equal(clone) {
		t.Error("Equal should detect the moved widget")
	}

	without := layout.Without("a")
	if !slices.Equal(without.IDs(), []string{"b"}) {
		t.Errorf("Without(a) = %v, want [b]", without.IDs())
	}
	if len(layout) != 2 {
		t.Error("Without should not modify the receiver")
	}

	if got := New(4, 4).FreeCells(layout); got != 14 {
		t.Errorf("FreeCells() = %d, want 14", got)
	}
}
