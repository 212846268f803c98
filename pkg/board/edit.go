package board

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/observability"
)

// Move relocates widget id to target in one step, displacing widgets in the
// way, and returns the IDs of the displaced widgets. It fails with
// WIDGET_NOT_FOUND for an unknown id and INFEASIBLE when the move cannot be
// resolved; the layout is unchanged on failure.
func (b *Board) Move(ctx context.Context, id string, target grid.Position) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireIdleLocked(); err != nil {
		return nil, err
	}
	w, ok := b.layout.Find(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", id)
	}
	if w.Position == target {
		return nil, nil
	}

	start := time.Now()
	r, ok := b.grid.RelocateDetailed(b.layout, id, target)
	if !ok {
		observability.Board().OnReject(ctx, b.name, id, "infeasible")
		return nil, errors.New(errors.ErrCodeInfeasible, "cannot move %q to (%d,%d)", id, target.X, target.Y)
	}
	if err := b.commitLocked(ctx, r.Layout); err != nil {
		return nil, err
	}
	observability.Board().OnCommit(ctx, b.name, id, len(r.Displaced), time.Since(start))
	b.logger.Info("moved widget", "widget", id, "to", target, "displaced", len(r.Displaced))
	return r.Displaced, nil
}

// Compact repacks the layout toward the top-left and returns the number of
// widgets that moved. A layout that is already compact is not rewritten.
func (b *Board) Compact(ctx context.Context) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireIdleLocked(); err != nil {
		return 0, err
	}

	start := time.Now()
	next := b.grid.Compact(b.layout)
	moved := movedCount(b.layout, next, "")
	if moved == 0 {
		return 0, nil
	}
	if err := b.commitLocked(ctx, next); err != nil {
		return 0, err
	}
	observability.Board().OnCompact(ctx, b.name, moved, time.Since(start))
	b.logger.Info("compacted layout", "moved", moved)
	return moved, nil
}

// AddWidget places a new widget of the given size at the first free
// position. An empty id is replaced by a random UUID. It fails with
// INVALID_INPUT for a duplicate id or bad size and INFEASIBLE when the grid
// has no room.
func (b *Board) AddWidget(ctx context.Context, id string, size grid.Size) (grid.Widget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireIdleLocked(); err != nil {
		return grid.Widget{}, err
	}
	if id == "" {
		id = uuid.NewString()
	}
	if err := errors.ValidateWidgetID(id); err != nil {
		return grid.Widget{}, err
	}
	if err := errors.ValidateDimensions("widget", size.Width, size.Height); err != nil {
		return grid.Widget{}, err
	}
	if b.layout.Index(id) >= 0 {
		return grid.Widget{}, errors.New(errors.ErrCodeInvalidInput, "widget %q already exists", id)
	}

	pos, ok := b.grid.FindFreePosition(b.layout, size)
	if !ok {
		return grid.Widget{}, errors.New(errors.ErrCodeInfeasible, "no room for a %dx%d widget", size.Width, size.Height)
	}
	w := grid.Widget{ID: id, Position: pos, Size: size}

	next := append(b.layout.Clone(), w)
	if err := b.commitLocked(ctx, next); err != nil {
		return grid.Widget{}, err
	}
	b.logger.Info("added widget", "widget", id, "at", pos, "size", size)
	return w, nil
}

// RemoveWidget deletes widget id. Remaining widgets keep their positions.
func (b *Board) RemoveWidget(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireIdleLocked(); err != nil {
		return err
	}
	if b.layout.Index(id) < 0 {
		return errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", id)
	}
	if err := b.commitLocked(ctx, b.layout.Without(id)); err != nil {
		return err
	}
	b.logger.Info("removed widget", "widget", id)
	return nil
}

// Replace swaps in a complete layout after validating it against the grid.
func (b *Board) Replace(ctx context.Context, layout grid.Layout) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireIdleLocked(); err != nil {
		return err
	}
	if err := b.grid.Validate(layout); err != nil {
		return err
	}
	if err := b.commitLocked(ctx, layout.Clone()); err != nil {
		return err
	}
	b.logger.Info("replaced layout", "widgets", len(layout))
	return nil
}

// Undo restores the layout before the last change. It reports false when
// there is nothing to undo or the restored layout could not be saved; in the
// latter case the board is left as it was.
func (b *Board) Undo(ctx context.Context) (bool, error) {
	return b.stepHistory(ctx, "undo", (*History).Undo)
}

// Redo re-applies the last undone change, with the same reporting as Undo.
func (b *Board) Redo(ctx context.Context) (bool, error) {
	return b.stepHistory(ctx, "redo", (*History).Redo)
}

func (b *Board) stepHistory(ctx context.Context, op string, step func(*History, grid.Layout) (grid.Layout, bool)) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.requireIdleLocked(); err != nil {
		return false, err
	}
	mark := b.history.mark()
	layout, ok := step(b.history, b.layout)
	if !ok {
		return false, nil
	}
	if err := b.persistLocked(ctx, layout, mark); err != nil {
		return false, err
	}
	b.logger.Info(op, "widgets", len(layout))
	return true, nil
}
