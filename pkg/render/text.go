package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/gridboard/pkg/drag"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// TextOptions configures [Text].
type TextOptions struct {
	// Session overlays the preview of an active drag session.
	Session drag.Session
	// Cursor highlights one cell (keyboard editing). Nil for none.
	Cursor *grid.Position
	// Plain disables colors.
	Plain bool
	// NoLegend omits the glyph legend below the grid.
	NoLegend bool
}

const (
	glyphEmpty   = '.'
	glyphValid   = '+'
	glyphInvalid = 'x'
	glyphCursor  = '@'
)

var glyphs = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789")

var palette = []lipgloss.Color{"36", "75", "220", "35", "170", "208", "141", "44"}

var (
	styleEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleValid   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	styleInvalid = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("167"))
	styleCursor  = lipgloss.NewStyle().Reverse(true)
	styleActive  = lipgloss.NewStyle().Faint(true)
	styleLegend  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Glyph returns the character used for the i-th widget of a layout.
func Glyph(i int) rune {
	if i < len(glyphs) {
		return glyphs[i]
	}
	return '#'
}

type cell struct {
	r     rune
	style lipgloss.Style
}

// Text renders layout on g as a character grid, one glyph per cell
// separated by spaces, followed by a legend.
func Text(g grid.Grid, layout grid.Layout, opts TextOptions) string {
	cells := make([][]cell, g.Rows)
	for y := range cells {
		cells[y] = make([]cell, g.Columns)
		for x := range cells[y] {
			cells[y][x] = cell{r: glyphEmpty, style: styleEmpty}
		}
	}

	for i, w := range layout {
		st := lipgloss.NewStyle().Foreground(palette[i%len(palette)])
		if w.ID == opts.Session.ActiveWidgetID {
			st = styleActive
		}
		fill(cells, w.Rect(), cell{r: Glyph(i), style: st})
	}

	if s := opts.Session; s.Phase() == drag.Active && s.PreviewPosition != nil {
		c := cell{r: glyphInvalid, style: styleInvalid}
		if s.IsValidDrop {
			c = cell{r: glyphValid, style: styleValid}
		}
		fill(cells, grid.RectAt(*s.PreviewPosition, s.Size), c)
	}

	if p := opts.Cursor; p != nil && p.Y >= 0 && p.Y < g.Rows && p.X >= 0 && p.X < g.Columns {
		c := cells[p.Y][p.X]
		if c.r == glyphEmpty {
			c.r = glyphCursor
		}
		c.style = c.style.Inherit(styleCursor)
		cells[p.Y][p.X] = c
	}

	var b strings.Builder
	for _, row := range cells {
		for x, c := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			if opts.Plain {
				b.WriteRune(c.r)
			} else {
				b.WriteString(c.style.Render(string(c.r)))
			}
		}
		b.WriteByte('\n')
	}

	if !opts.NoLegend && len(layout) > 0 {
		b.WriteByte('\n')
		for i, w := range layout {
			line := fmt.Sprintf("%c  %s  (%d,%d) %dx%d", Glyph(i), w.ID, w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height)
			if opts.Plain {
				b.WriteString(line)
			} else {
				b.WriteString(styleLegend.Render(line))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// fill paints r into cells, ignoring any part outside the grid.
func fill(cells [][]cell, r grid.Rect, c cell) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		if y < 0 || y >= len(cells) {
			continue
		}
		for x := r.X; x < r.X+r.Width; x++ {
			if x < 0 || x >= len(cells[y]) {
				continue
			}
			cells[y][x] = c
		}
	}
}
