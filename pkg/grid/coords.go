package grid

import "math"

// Pitch returns the pixel distance between the origins of two adjacent cells.
func (g Grid) Pitch() float64 { return g.CellSize + g.Gap }

// PixelToCell converts a pixel offset from the grid origin to the nearest cell index.
// A grid without pixel metrics maps every offset to cell 0.
func (g Grid) PixelToCell(px float64) int {
	p := g.Pitch()
	if p <= 0 {
		return 0
	}
	return int(math.Round(px / p))
}

// CellToPixel returns the pixel offset of a cell's origin.
func (g Grid) CellToPixel(c int) float64 {
	return float64(c) * g.Pitch()
}

// PixelOrigin returns the pixel coordinates of a cell position.
func (g Grid) PixelOrigin(pos Position) (x, y float64) {
	return g.CellToPixel(pos.X), g.CellToPixel(pos.Y)
}

// Clamp adjusts pos so that a widget of the given size stays fully inside the grid.
func (g Grid) Clamp(pos Position, size Size) Position {
	return Position{
		X: max(0, min(pos.X, g.Columns-size.Width)),
		Y: max(0, min(pos.Y, g.Rows-size.Height)),
	}
}

// PixelSize returns the pixel extent of the whole grid. Gaps only appear
// between cells, not around the border.
func (g Grid) PixelSize() (width, height float64) {
	return span(g.Columns, g.CellSize, g.Gap), span(g.Rows, g.CellSize, g.Gap)
}

func span(n int, cell, gap float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n)*cell + float64(n-1)*gap
}

// FitCellSize returns the largest whole-pixel cell size for which columns
// cells and the gaps between them fit in container pixels. The result is
// clamped to [minSize, maxSize]; a maxSize of 0 disables the upper bound.
func FitCellSize(container float64, columns int, gap, minSize, maxSize float64) float64 {
	if columns <= 0 {
		return minSize
	}
	size := math.Floor((container - float64(columns-1)*gap) / float64(columns))
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	if size < minSize {
		size = minSize
	}
	return size
}
