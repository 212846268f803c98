// Package grid implements placement and displacement of rectangular widgets on
// a fixed-size discrete grid.
//
// Everything in this package is a pure function over an input [Layout]: no
// I/O, no locking, and no mutation of arguments. Operations that can fail to
// find room report it with a boolean "ok" result rather than an error, because
// an infeasible placement is an expected outcome of interactive editing.
//
// # Core Types
//
//   - [Grid]: logical extent (Columns × Rows) plus the pixel metrics
//     (CellSize, Gap) used to map pointer coordinates onto cells
//   - [Widget]: a placed rectangle with a stable ID, a [Position] and a [Size]
//   - [Layout]: an ordered list of widgets; order is significant for
//     [Grid.Relocate], which displaces overlapped widgets in layout order
//   - [Rect]: an axis-aligned cell rectangle with exclusive upper bounds
//
// # Invariant
//
// A valid layout has no two overlapping widget rectangles and every rectangle
// lies within [0, Columns) × [0, Rows). Rectangles that only share an edge do
// not overlap. [Grid.Validate] checks the invariant; the search and move
// operations assume it already holds for their input and preserve it on
// success.
//
// # Operations
//
//	g := grid.New(4, 4)
//	layout := grid.Layout{
//	    {ID: "a", Position: grid.Position{X: 0, Y: 0}, Size: grid.Size{Width: 2, Height: 2}},
//	    {ID: "b", Position: grid.Position{X: 2, Y: 0}, Size: grid.Size{Width: 1, Height: 1}},
//	}
//
//	g.IsValidPosition(layout, 2, 2, 2, 2)                       // fits?
//	pos, ok := g.FindFreePosition(layout, grid.Size{Width: 1, Height: 1}) // first fit
//	moved, ok := g.Relocate(layout, "a", grid.Position{X: 1, Y: 0})       // cascading move
//	packed := g.Compact(layout)                                  // remove gaps
//
// # Search Order
//
// First-fit scans origins row by row, top to bottom, and left to right within a
// row. The first origin that passes [Grid.IsValidPosition] wins, so results are
// deterministic for a given layout and size.
//
// # Pixel Mapping
//
// The pitch of one cell is CellSize + Gap. [Grid.PixelToCell] rounds a pixel
// offset to the nearest cell and [Grid.Clamp] keeps a widget's full extent
// inside the grid. [FitCellSize] derives a cell size from a container width.
package grid
