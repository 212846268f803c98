// Package drag models one interactive move gesture over a grid layout.
//
// A [Session] is a plain value owned by the caller. The functions in this
// package take a session and return a new one; none of them keep state of
// their own or touch the authoritative layout until [End] commits.
//
//	s, ok := drag.Start(layout, "clock")        // Idle -> Active
//	s = drag.Update(g, layout, s, dx, dy)       // Active -> Active, per pointer move
//	fb := s.Feedback()                          // preview cell, validity, displacement
//	next, committed := drag.End(g, layout, s)   // Active -> Idle
//
// Pointer deltas are cumulative pixel offsets from where the gesture began.
// Every update recomputes the preview from scratch.
package drag

import (
	"github.com/matzehuels/gridboard/pkg/grid"
)

// Phase is the lifecycle state of a session.
type Phase int

const (
	// Idle means no gesture is in progress.
	Idle Phase = iota
	// Active means a widget is being moved and previews are being computed.
	Active
)

// String returns the phase name.
func (p Phase) String() string {
	if p == Active {
		return "active"
	}
	return "idle"
}

// Session is the transient state of one move gesture. The zero value is Idle.
type Session struct {
	// ActiveWidgetID is the widget being moved; empty when idle.
	ActiveWidgetID string `json:"active_widget_id,omitempty"`
	// Origin is the active widget's cell when the gesture started.
	Origin grid.Position `json:"origin"`
	// Size is the active widget's extent.
	Size grid.Size `json:"size"`
	// PreviewPosition is the clamped candidate cell of the last update, nil
	// before the first update.
	PreviewPosition *grid.Position `json:"preview_position,omitempty"`
	// IsValidDrop is true when ending the gesture now would commit a move.
	IsValidDrop bool `json:"is_valid_drop"`
	// WillDisplace is true when the move would push other widgets aside.
	WillDisplace bool `json:"will_displace"`
}

// Feedback is the advisory per-update result for the hosting surface to render.
type Feedback struct {
	PreviewPosition *grid.Position `json:"preview_position,omitempty"`
	IsValidDrop     bool           `json:"is_valid_drop"`
	WillDisplace    bool           `json:"will_displace"`
}

// Phase reports whether a gesture is in progress.
func (s Session) Phase() Phase {
	if s.ActiveWidgetID != "" {
		return Active
	}
	return Idle
}

// Feedback returns the live feedback of the last update.
func (s Session) Feedback() Feedback {
	return Feedback{
		PreviewPosition: s.PreviewPosition,
		IsValidDrop:     s.IsValidDrop,
		WillDisplace:    s.WillDisplace,
	}
}

// Start begins a gesture on widget id. It records the widget's current cell
// and size and clears every preview field. ok is false, and the returned
// session Idle, when id is not in layout.
func Start(layout grid.Layout, id string) (Session, bool) {
	w, found := layout.Find(id)
	if !found || id == "" {
		return Session{}, false
	}
	return Session{
		ActiveWidgetID: id,
		Origin:         w.Position,
		Size:           w.Size,
	}, true
}

// Update converts the cumulative pointer delta (dx, dy) into a candidate
// cell and evaluates it against layout.
//
// The candidate is the widget's pixel origin plus the delta, divided by the
// grid pitch and rounded, then clamped so the whole widget stays on the grid.
// A candidate that is free as-is is a valid drop without displacement. A
// candidate that overlaps other widgets is tried with a speculative
// [grid.Grid.Relocate]; if that would succeed the drop is valid and will
// displace, otherwise it is invalid. Updating an Idle session returns it
// unchanged.
func Update(g grid.Grid, layout grid.Layout, s Session, dx, dy float64) Session {
	if s.Phase() != Active {
		return s
	}

	ox, oy := g.PixelOrigin(s.Origin)
	candidate := grid.Position{
		X: g.PixelToCell(ox + dx),
		Y: g.PixelToCell(oy + dy),
	}
	target := g.Clamp(candidate, s.Size)

	s.PreviewPosition = &target
	s.IsValidDrop, s.WillDisplace = Evaluate(g, layout, s.ActiveWidgetID, target)
	return s
}

// Evaluate classifies a move of widget id to target: valid is true when the
// move can be committed, displace is true when it needs to move other widgets.
func Evaluate(g grid.Grid, layout grid.Layout, id string, target grid.Position) (valid, displace bool) {
	w, ok := layout.Find(id)
	if !ok {
		return false, false
	}
	if g.IsValidPosition(layout, target.X, target.Y, w.Size.Width, w.Size.Height, id) {
		return true, false
	}
	if _, ok := g.Relocate(layout, id, target); ok {
		return true, true
	}
	return false, false
}

// End finishes the gesture. When the last update marked a valid drop, the
// move is relocated for real and the new layout is returned with
// committed=true. Otherwise, or if the relocation unexpectedly fails, the
// original layout is returned unchanged with committed=false. Either way the
// caller should drop s; the session is back to Idle.
func End(g grid.Grid, layout grid.Layout, s Session) (next grid.Layout, committed bool) {
	if s.Phase() != Active || !s.IsValidDrop || s.PreviewPosition == nil {
		return layout, false
	}
	moved, ok := g.Relocate(layout, s.ActiveWidgetID, *s.PreviewPosition)
	if !ok {
		return layout, false
	}
	return moved, true
}

// Cancel abandons the gesture. The layout is never touched, so there is
// nothing to roll back.
func Cancel(Session) Session {
	return Session{}
}
