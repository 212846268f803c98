// Package board is the stateful editor around one persisted grid layout.
//
// A [Board] owns the authoritative layout of one named board, the drag
// session of the gesture in progress (if any), and an undo history. It
// delegates all placement logic to pkg/grid and pkg/drag and writes the
// layout back to its [store.Store] after every successful change.
//
// # Gesture Contract
//
// A hosting surface (terminal UI, HTTP client) drives a gesture with:
//
//	b.StartGesture("clock")             // begin; SESSION_ACTIVE if one is running
//	fb, _ := b.UpdateGesture(dx, dy)    // per pointer move; render fb
//	committed, err := b.EndGesture(ctx) // commit if the last update was valid
//
// or abandon it with CancelGesture. Between Start and End the layout is
// never modified; only the session changes.
//
// All methods are safe for concurrent use.
package board

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/drag"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/store"
)

// Options configures a Board.
type Options struct {
	// Logger receives one line per committed change. Nil discards.
	Logger *log.Logger
	// HistoryDepth caps undo steps. 0 means DefaultHistoryDepth, negative disables undo.
	HistoryDepth int
	// Now returns the time stamped on saved records. Nil means time.Now.
	Now func() time.Time
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Board is an open, editable board.
type Board struct {
	mu      sync.Mutex
	name    string
	grid    grid.Grid
	layout  grid.Layout
	session drag.Session
	closed  bool
	history *History
	store   store.Store
	logger  *log.Logger
	now     func() time.Time
}

// Open loads board name from s.
//
// When the board exists its stored grid and layout are used and g is
// ignored. When it does not exist, an empty board on g is returned; it is
// not persisted until the first change or [Board.Save]. A missing board
// with a zero g is BOARD_NOT_FOUND. Stored layouts that break the placement
// invariant are rejected with INVALID_LAYOUT.
func Open(ctx context.Context, s store.Store, name string, g grid.Grid, opts Options) (*Board, error) {
	if err := errors.ValidateBoardName(name); err != nil {
		return nil, err
	}
	opts.setDefaults()

	rec, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	var layout grid.Layout
	if rec != nil {
		g = rec.Grid
		layout = rec.Widgets
	} else if g.Columns == 0 && g.Rows == 0 {
		return nil, errors.New(errors.ErrCodeBoardNotFound, "board %q does not exist", name)
	}
	if g.CellSize <= 0 {
		g.CellSize = grid.DefaultCellSize
	}
	if err := g.Validate(layout); err != nil {
		return nil, errors.Annotate(err, errors.ErrCodeInvalidLayout, "board %q", name)
	}

	return &Board{
		name:    name,
		grid:    g,
		layout:  layout.Clone(),
		history: NewHistory(opts.HistoryDepth),
		store:   s,
		logger:  opts.Logger.With("board", name),
		now:     opts.Now,
	}, nil
}

// Name returns the board name.
func (b *Board) Name() string { return b.name }

// Grid returns the board's grid.
func (b *Board) Grid() grid.Grid { return b.grid }

// Layout returns a copy of the current layout.
func (b *Board) Layout() grid.Layout {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.layout.Clone()
}

// Session returns the drag session. It is Idle when no gesture is running.
func (b *Board) Session() drag.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

// CanUndo reports the number of available undo and redo steps.
func (b *Board) CanUndo() (undo, redo int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Len()
}

// Save writes the current layout to the store.
func (b *Board) Save(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saveLocked(ctx)
}

// Close detaches the board from its store. A gesture in progress is
// dropped and every later change fails with BOARD_NOT_FOUND, so a board
// that was deleted or replaced underneath cannot write itself back.
// Calls that already hold the board finish first.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.session = drag.Session{}
}

func (b *Board) saveLocked(ctx context.Context) error {
	if b.closed {
		return b.closedError()
	}
	return b.store.Set(ctx, &store.Record{
		Name:      b.name,
		Grid:      b.grid,
		Widgets:   b.layout.Clone(),
		UpdatedAt: b.now().UTC(),
	})
}

// commitLocked makes next the current layout, records history and persists.
func (b *Board) commitLocked(ctx context.Context, next grid.Layout) error {
	mark := b.history.mark()
	b.history.Push(b.layout)
	return b.persistLocked(ctx, next, mark)
}

// persistLocked installs next and saves it. On a store failure the previous
// layout and the history as of mark are put back and the error is returned.
func (b *Board) persistLocked(ctx context.Context, next grid.Layout, mark historyMark) error {
	prev := b.layout
	b.layout = next
	if err := b.saveLocked(ctx); err != nil {
		b.layout = prev
		b.history.reset(mark)
		return err
	}
	return nil
}

func (b *Board) closedError() error {
	return errors.New(errors.ErrCodeBoardNotFound, "board %q is closed", b.name)
}

func (b *Board) requireIdleLocked() error {
	if b.closed {
		return b.closedError()
	}
	if b.session.Phase() == drag.Active {
		return errors.New(errors.ErrCodeSessionActive, "widget %q is being moved", b.session.ActiveWidgetID)
	}
	return nil
}
