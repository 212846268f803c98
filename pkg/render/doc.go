// Package render draws grid layouts for humans.
//
// # Text
//
// [Text] draws a layout as a character grid, one glyph per cell, with a
// legend mapping glyphs to widget IDs. An optional drag preview is overlaid
// on top: the previewed footprint is drawn with '+' for a valid drop and
// 'x' for an invalid one. Colors come from lipgloss and are dropped
// automatically when the output is not a terminal; set [TextOptions.Plain]
// to force plain output.
//
//	fmt.Print(render.Text(g, layout, render.TextOptions{}))
//
// # Graphviz
//
// [ToDOT] converts a layout to Graphviz DOT with every widget pinned to its
// pixel position, so the neato engine reproduces the board geometry exactly.
// [RenderSVG] and [RenderPNG] run it in-process:
//
//	dot := render.ToDOT(g, layout, render.DOTOptions{Title: "home"})
//	svg, err := render.RenderSVG(ctx, dot)
//
// This package uses [github.com/goccy/go-graphviz], which embeds Graphviz
// as WebAssembly; no system Graphviz install is needed.
package render
