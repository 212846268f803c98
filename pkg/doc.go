// Package pkg provides the core libraries for Gridboard.
//
// # Overview
//
// Gridboard arranges rectangular widgets on a fixed grid of equal cells.
// Moving a widget onto occupied cells pushes the occupants to the nearest
// free space; compaction packs everything toward the top-left. The pkg
// directory is organized into three areas:
//
//  1. [grid] and [drag] - the placement engine (pure functions over values)
//  2. [board] - a named, persisted layout with gestures and undo
//  3. [store], [config], [render] - persistence, settings, and output
//
// # Architecture
//
// The typical data flow through Gridboard:
//
//	pointer / keyboard / HTTP request
//	         ↓
//	    [board] package (gesture lifecycle, edits, undo history)
//	         ↓
//	    [drag] package (preview cell, drop validity)
//	         ↓
//	    [grid] package (placement, relocation, compaction)
//	         ↓
//	    [store] package (memory, file, Redis, MongoDB)
//
// # Quick Start
//
// Move a widget and let the engine push its neighbours aside:
//
//	import (
//	    "github.com/matzehuels/gridboard/pkg/grid"
//	)
//
//	g := grid.New(12, 8)
//	layout := grid.Layout{
//	    {ID: "clock", Position: grid.Position{X: 0, Y: 0}, Size: grid.Size{Width: 2, Height: 2}},
//	    {ID: "notes", Position: grid.Position{X: 2, Y: 0}, Size: grid.Size{Width: 1, Height: 1}},
//	}
//
//	next, ok := g.Relocate(layout, "clock", grid.Position{X: 1, Y: 0})
//	// ok: notes moved to the first free cell outside clock's new rect
//
// Drive the same move as a gesture on a persisted board:
//
//	b, _ := board.Open(ctx, s, "home", grid.Grid{}, board.Options{})
//	_ = b.StartGesture("clock")
//	fb, _ := b.UpdateGesture(88, 0)        // pixels since the gesture began
//	committed, _ := b.EndGesture(ctx)      // fb.IsValidDrop decides
//
// # Main Packages
//
// [grid] - Geometry and the placement algorithms: validity checks, first-fit
// search, relocation with displacement, compaction, and pixel conversion.
//
// [drag] - The move gesture as a value: start, update from pointer deltas,
// end or cancel. Previews never touch the authoritative layout.
//
// [board] - A named layout bound to a store. Serializes gestures and edits,
// keeps a bounded undo history, and emits observability events.
//
// [store] - Layout persistence with memory, file, Redis, and MongoDB backends
// behind one interface.
//
// [config] - TOML configuration for the CLI and the API server.
//
// [render] - Text rendering for terminals and Graphviz export (DOT, SVG, PNG).
//
// [errors] - Error codes shared by every package and the HTTP API.
//
// [observability] - Hooks for commits, rejections, compactions, and store
// operations.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/grid/...               # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis and MongoDB tests
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/grid
// [drag]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/drag
// [board]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/board
// [store]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/store
// [config]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/config
// [render]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/render
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridboard/pkg/observability
package pkg
