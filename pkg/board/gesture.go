package board

import (
	"context"
	"time"

	"github.com/matzehuels/gridboard/pkg/drag"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/observability"
)

// StartGesture begins moving widget id.
func (b *Board) StartGesture(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireIdleLocked(); err != nil {
		return err
	}
	s, ok := drag.Start(b.layout, id)
	if !ok {
		return errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", id)
	}
	b.session = s
	return nil
}

// UpdateGesture applies the cumulative pointer delta in pixels and returns
// the live feedback.
func (b *Board) UpdateGesture(dx, dy float64) (drag.Feedback, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session.Phase() != drag.Active {
		return drag.Feedback{}, errors.New(errors.ErrCodeNoSession, "no gesture in progress")
	}
	b.session = drag.Update(b.grid, b.layout, b.session, dx, dy)
	return b.session.Feedback(), nil
}

// UpdateGestureCell sets the preview to an explicit cell, for surfaces that
// think in cells rather than pixels (keyboard editing). The cell is clamped
// like a pointer-derived candidate.
func (b *Board) UpdateGestureCell(target grid.Position) (drag.Feedback, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session.Phase() != drag.Active {
		return drag.Feedback{}, errors.New(errors.ErrCodeNoSession, "no gesture in progress")
	}
	ox, oy := b.grid.PixelOrigin(b.session.Origin)
	tx, ty := b.grid.PixelOrigin(target)
	b.session = drag.Update(b.grid, b.layout, b.session, tx-ox, ty-oy)
	return b.session.Feedback(), nil
}

// EndGesture finishes the gesture. It commits and persists the previewed
// move when the last update marked a valid drop and reports whether it did.
// The session is Idle afterwards in every case.
func (b *Board) EndGesture(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := b.session
	if s.Phase() != drag.Active {
		return false, errors.New(errors.ErrCodeNoSession, "no gesture in progress")
	}
	b.session = drag.Session{}

	start := time.Now()
	next, committed := drag.End(b.grid, b.layout, s)
	if !committed {
		reason := "invalid drop"
		if s.PreviewPosition == nil {
			reason = "no movement"
		}
		observability.Board().OnReject(ctx, b.name, s.ActiveWidgetID, reason)
		b.logger.Debug("gesture discarded", "widget", s.ActiveWidgetID, "reason", reason)
		return false, nil
	}

	displaced := movedCount(b.layout, next, s.ActiveWidgetID)
	if err := b.commitLocked(ctx, next); err != nil {
		return false, err
	}
	observability.Board().OnCommit(ctx, b.name, s.ActiveWidgetID, displaced, time.Since(start))
	b.logger.Info("moved widget",
		"widget", s.ActiveWidgetID,
		"to", *s.PreviewPosition,
		"displaced", displaced)
	return true, nil
}

// CancelGesture abandons the gesture in progress, if any.
func (b *Board) CancelGesture() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.session.Phase() == drag.Active {
		observability.Board().OnReject(context.Background(), b.name, b.session.ActiveWidgetID, "cancelled")
	}
	b.session = drag.Cancel(b.session)
}

// movedCount returns how many widgets of before, other than skip, changed
// position in after.
func movedCount(before, after grid.Layout, skip string) int {
	n := 0
	for _, w := range before {
		if w.ID == skip {
			continue
		}
		if a, ok := after.Find(w.ID); ok && a.Position != w.Position {
			n++
		}
	}
	return n
}
