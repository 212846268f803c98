package grid

import (
	"github.com/matzehuels/gridboard/pkg/errors"
)

// ValidateGrid checks that the grid has at least one cell and non-negative pixel metrics.
func (g Grid) ValidateGrid() error {
	if err := errors.ValidateDimensions("grid", g.Columns, g.Rows); err != nil {
		return err
	}
	if g.CellSize < 0 || g.Gap < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cell size and gap must not be negative")
	}
	return nil
}

// Validate checks that layout satisfies the placement invariant on g:
// unique non-empty IDs, sizes of at least 1x1, every widget inside the grid,
// and no two widgets overlapping. It returns the first violation found as an
// INVALID_LAYOUT error.
//
// The placement functions do not call Validate themselves; it is meant for
// layouts arriving from a store, a file or an API request.
func (g Grid) Validate(layout Layout) error {
	if err := g.ValidateGrid(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(layout))
	for i, w := range layout {
		if w.ID == "" {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %d has an empty id", i)
		}
		if seen[w.ID] {
			return errors.New(errors.ErrCodeInvalidLayout, "duplicate widget id %q", w.ID)
		}
		seen[w.ID] = true

		if w.Size.Width < 1 || w.Size.Height < 1 {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q has invalid size %dx%d", w.ID, w.Size.Width, w.Size.Height)
		}
		if !g.InBounds(w.Rect()) {
			return errors.New(errors.ErrCodeInvalidLayout, "widget %q at (%d,%d) size %dx%d is outside the %dx%d grid",
				w.ID, w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height, g.Columns, g.Rows)
		}
		for _, prev := range layout[:i] {
			if prev.Rect().Overlaps(w.Rect()) {
				return errors.New(errors.ErrCodeInvalidLayout, "widgets %q and %q overlap", prev.ID, w.ID)
			}
		}
	}
	return nil
}
