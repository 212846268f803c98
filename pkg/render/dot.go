package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Title is drawn above the board. Empty for none.
	Title string
	// ShowEmpty draws the free cells as dashed boxes.
	ShowEmpty bool
}

const pointsPerInch = 72.0

// ToDOT converts a layout to Graphviz DOT for the neato engine.
//
// One pixel of the grid's metrics maps to one point. Every widget becomes a
// fixed-size box pinned at its center (pos="x,y!"); Graphviz's y axis grows
// upward, so rows are flipped.
func ToDOT(g grid.Grid, layout grid.Layout, opts DOTOptions) string {
	_, height := g.PixelSize()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fixedsize=true, fontsize=14];\n")
	buf.WriteString("\n")

	if opts.ShowEmpty {
		occupied := make(map[grid.Position]bool)
		for _, w := range layout {
			r := w.Rect()
			for y := r.Y; y < r.Y+r.Height; y++ {
				for x := r.X; x < r.X+r.Width; x++ {
					occupied[grid.Position{X: x, Y: y}] = true
				}
			}
		}
		for y := 0; y < g.Rows; y++ {
			for x := 0; x < g.Columns; x++ {
				p := grid.Position{X: x, Y: y}
				if occupied[p] {
					continue
				}
				attrs := boxAttrs(g, grid.RectAt(p, grid.Size{Width: 1, Height: 1}), height)
				fmt.Fprintf(&buf, "  \"cell_%d_%d\" [%s, label=\"\", style=\"rounded,dashed\", color=lightgrey];\n", x, y, attrs)
			}
		}
		buf.WriteString("\n")
	}

	for _, w := range layout {
		fmt.Fprintf(&buf, "  %q [%s, label=%q];\n", "w_"+w.ID, boxAttrs(g, w.Rect(), height), w.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// boxAttrs returns the pos/width/height attributes pinning r.
func boxAttrs(g grid.Grid, r grid.Rect, totalHeight float64) string {
	x0, y0 := g.PixelOrigin(r.Origin())
	pitch := g.Pitch()
	w := float64(r.Width)*pitch - g.Gap
	h := float64(r.Height)*pitch - g.Gap
	cx := x0 + w/2
	cy := totalHeight - (y0 + h/2)
	return fmt.Sprintf("pos=\"%.1f,%.1f!\", width=%.3f, height=%.3f", cx, cy, w/pointsPerInch, h/pointsPerInch)
}

// RenderSVG renders DOT source to SVG with the neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT source to PNG with the neato engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderDOT(ctx, dot, graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
