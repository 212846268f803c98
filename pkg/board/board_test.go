package board

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridboard/pkg/drag"
	gberrors "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/observability"
	"github.com/matzehuels/gridboard/pkg/store"
)

func wd(id string, x, y, width, height int) grid.Widget {
	return grid.Widget{ID: id, Position: grid.Position{X: x, Y: y}, Size: grid.Size{Width: width, Height: height}}
}

// testGrid has a pitch of 100 pixels.
func testGrid(columns, rows int) grid.Grid {
	return grid.Grid{Columns: columns, Rows: rows, CellSize: 90, Gap: 10}
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// openWith seeds a memory store with layout and opens the board.
func openWith(t *testing.T, g grid.Grid, layout grid.Layout) (*Board, *store.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemoryStore()
	if layout != nil {
		if err := s.Set(ctx, &store.Record{Name: "home", Grid: g, Widgets: layout}); err != nil {
			t.Fatal(err)
		}
	}
	b, err := Open(ctx, s, "home", g, Options{Now: func() time.Time { return fixedNow }})
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	return b, s
}

func stored(t *testing.T, s store.Store) grid.Layout {
	t.Helper()
	rec, err := s.Get(context.Background(), "home")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec == nil {
		return nil
	}
	return rec.Widgets
}

func position(t *testing.T, l grid.Layout, id string) grid.Position {
	t.Helper()
	w, ok := l.Find(id)
	if !ok {
		t.Fatalf("widget %q missing from %+v", id, l)
	}
	return w.Position
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	t.Run("missing board without grid", func(t *testing.T) {
		_, err := Open(ctx, store.NewMemoryStore(), "home", grid.Grid{}, Options{})
		if !gberrors.Is(err, gberrors.ErrCodeBoardNotFound) {
			t.Errorf("error = %v, want BOARD_NOT_FOUND", err)
		}
	})

	t.Run("missing board with grid", func(t *testing.T) {
		s := store.NewMemoryStore()
		b, err := Open(ctx, s, "home", grid.New(4, 4), Options{})
		if err != nil {
			t.Fatalf("Open error: %v", err)
		}
		if len(b.Layout()) != 0 {
			t.Errorf("new board has %d widgets", len(b.Layout()))
		}
		if rec, _ := s.Get(ctx, "home"); rec != nil {
			t.Error("Open should not persist an empty board")
		}
	})

	t.Run("stored grid wins", func(t *testing.T) {
		b, _ := openWith(t, testGrid(6, 3), grid.Layout{wd("a", 0, 0, 1, 1)})
		reopened, err := Open(ctx, b.store, "home", grid.New(2, 2), Options{})
		if err != nil {
			t.Fatal(err)
		}
		if reopened.Grid().Columns != 6 || reopened.Grid().Rows != 3 {
			t.Errorf("Grid() = %+v, want the stored 6x3 grid", reopened.Grid())
		}
	})

	t.Run("invalid stored layout", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Set(ctx, &store.Record{
			Name:    "home",
			Grid:    grid.New(2, 2),
			Widgets: grid.Layout{wd("a", 0, 0, 2, 2), wd("b", 1, 1, 1, 1)},
		})
		_, err := Open(ctx, s, "home", grid.Grid{}, Options{})
		if !gberrors.Is(err, gberrors.ErrCodeInvalidLayout) {
			t.Errorf("error = %v, want INVALID_LAYOUT", err)
		}
		if err != nil && strings.Count(err.Error(), "INVALID_LAYOUT") != 1 {
			t.Errorf("error %q repeats its code", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := Open(ctx, store.NewMemoryStore(), "../x", grid.New(2, 2), Options{})
		if !gberrors.Is(err, gberrors.ErrCodeInvalidBoardName) {
			t.Errorf("error = %v, want INVALID_BOARD_NAME", err)
		}
	})
}

func TestGestureCommit(t *testing.T) {
	ctx := context.Background()
	b, s := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 0, 0, 2, 2), wd("b", 2, 0, 1, 1)})

	if err := b.StartGesture("a"); err != nil {
		t.Fatalf("StartGesture error: %v", err)
	}
	fb, err := b.UpdateGesture(100, 0)
	if err != nil {
		t.Fatalf("UpdateGesture error: %v", err)
	}
	if !fb.IsValidDrop || !fb.WillDisplace {
		t.Errorf("feedback = %+v, want valid displacing drop", fb)
	}
	// Layout is untouched while the gesture runs.
	if got := position(t, b.Layout(), "a"); got != (grid.Position{}) {
		t.Errorf("a moved to %+v before End", got)
	}

	committed, err := b.EndGesture(ctx)
	if err != nil || !committed {
		t.Fatalf("EndGesture = %v, %v; want true, nil", committed, err)
	}
	if b.Session().Phase() != drag.Idle {
		t.Error("session should be idle after End")
	}

	l := stored(t, s)
	if got := position(t, l, "a"); got != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("stored a = %+v, want {1 0}", got)
	}
	if got := position(t, l, "b"); got != (grid.Position{X: 3, Y: 0}) {
		t.Errorf("stored b = %+v, want {3 0}", got)
	}
}

func TestGestureRejected(t *testing.T) {
	ctx := context.Background()
	initial := grid.Layout{wd("a", 0, 0, 1, 2), wd("b", 1, 0, 1, 2)}
	b, s := openWith(t, testGrid(2, 2), initial)

	_ = b.StartGesture("a")
	fb, _ := b.UpdateGesture(100, 0)
	if fb.IsValidDrop {
		t.Fatal("drop onto b should be invalid")
	}
	committed, err := b.EndGesture(ctx)
	if err != nil || committed {
		t.Errorf("EndGesture = %v, %v; want false, nil", committed, err)
	}
	if !b.Layout().Equal(initial) || !stored(t, s).Equal(initial) {
		t.Error("rejected gesture changed the layout")
	}
}

func TestGestureErrors(t *testing.T) {
	ctx := context.Background()
	b, _ := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 0, 0, 1, 1), wd("b", 1, 0, 1, 1)})

	if _, err := b.UpdateGesture(10, 10); !gberrors.Is(err, gberrors.ErrCodeNoSession) {
		t.Errorf("UpdateGesture while idle = %v, want NO_SESSION", err)
	}
	if _, err := b.EndGesture(ctx); !gberrors.Is(err, gberrors.ErrCodeNoSession) {
		t.Errorf("EndGesture while idle = %v, want NO_SESSION", err)
	}
	if err := b.StartGesture("zzz"); !gberrors.Is(err, gberrors.ErrCodeWidgetNotFound) {
		t.Errorf("StartGesture(zzz) = %v, want WIDGET_NOT_FOUND", err)
	}

	_ = b.StartGesture("a")
	if err := b.StartGesture("b"); !gberrors.Is(err, gberrors.ErrCodeSessionActive) {
		t.Errorf("nested StartGesture = %v, want SESSION_ACTIVE", err)
	}
	if _, err := b.Move(ctx, "b", grid.Position{X: 3, Y: 3}); !gberrors.Is(err, gberrors.ErrCodeSessionActive) {
		t.Errorf("Move during gesture = %v, want SESSION_ACTIVE", err)
	}
	if b.Session().ActiveWidgetID != "a" {
		t.Error("rejected start replaced the running session")
	}

	b.CancelGesture()
	if err := b.StartGesture("b"); err != nil {
		t.Errorf("StartGesture after cancel = %v", err)
	}
}

func TestUpdateGestureCell(t *testing.T) {
	b, _ := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 1, 1, 1, 1)})
	_ = b.StartGesture("a")

	fb, err := b.UpdateGestureCell(grid.Position{X: 3, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	if *fb.PreviewPosition != (grid.Position{X: 3, Y: 0}) || !fb.IsValidDrop {
		t.Errorf("feedback = %+v", fb)
	}

	fb, _ = b.UpdateGestureCell(grid.Position{X: 9, Y: -2})
	if *fb.PreviewPosition != (grid.Position{X: 3, Y: 0}) {
		t.Errorf("out of range cell not clamped: %+v", *fb.PreviewPosition)
	}
}

func TestMove(t *testing.T) {
	ctx := context.Background()

	t.Run("displacing", func(t *testing.T) {
		b, s := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 0, 0, 2, 2), wd("b", 2, 0, 1, 1)})
		displaced, err := b.Move(ctx, "a", grid.Position{X: 1, Y: 0})
		if err != nil {
			t.Fatalf("Move error: %v", err)
		}
		if len(displaced) != 1 || displaced[0] != "b" {
			t.Errorf("displaced = %v, want [b]", displaced)
		}
		if got := position(t, stored(t, s), "b"); got != (grid.Position{X: 3, Y: 0}) {
			t.Errorf("stored b = %+v", got)
		}
	})

	t.Run("infeasible", func(t *testing.T) {
		initial := grid.Layout{wd("a", 0, 0, 1, 2), wd("b", 1, 0, 1, 2)}
		b, _ := openWith(t, testGrid(2, 2), initial)
		_, err := b.Move(ctx, "a", grid.Position{X: 1, Y: 0})
		if !gberrors.Is(err, gberrors.ErrCodeInfeasible) {
			t.Errorf("Move error = %v, want INFEASIBLE", err)
		}
		if !b.Layout().Equal(initial) {
			t.Error("failed move changed the layout")
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		b, _ := openWith(t, testGrid(2, 2), grid.Layout{wd("a", 0, 0, 1, 1)})
		if _, err := b.Move(ctx, "a", grid.Position{X: 2, Y: 0}); !gberrors.Is(err, gberrors.ErrCodeInfeasible) {
			t.Errorf("Move error = %v, want INFEASIBLE", err)
		}
	})

	t.Run("unknown widget", func(t *testing.T) {
		b, _ := openWith(t, testGrid(2, 2), grid.Layout{wd("a", 0, 0, 1, 1)})
		if _, err := b.Move(ctx, "zzz", grid.Position{}); !gberrors.Is(err, gberrors.ErrCodeWidgetNotFound) {
			t.Errorf("Move error = %v, want WIDGET_NOT_FOUND", err)
		}
	})
}

func TestCompact(t *testing.T) {
	ctx := context.Background()
	b, s := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 2, 2, 1, 1), wd("b", 3, 0, 1, 1)})

	moved, err := b.Compact(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}
	l := stored(t, s)
	if position(t, l, "b") != (grid.Position{X: 0, Y: 0}) || position(t, l, "a") != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("stored layout = %+v", l)
	}

	moved, _ = b.Compact(ctx)
	if moved != 0 {
		t.Errorf("second Compact moved %d widgets, want 0", moved)
	}
	if undo, _ := b.CanUndo(); undo != 1 {
		t.Errorf("no-op compaction recorded history: %d undo steps", undo)
	}
}

func TestAddAndRemoveWidget(t *testing.T) {
	ctx := context.Background()
	b, s := openWith(t, testGrid(3, 2), grid.Layout{wd("a", 0, 0, 1, 1)})

	w, err := b.AddWidget(ctx, "", grid.Size{Width: 2, Height: 1})
	if err != nil {
		t.Fatalf("AddWidget error: %v", err)
	}
	if _, err := uuid.Parse(w.ID); err != nil {
		t.Errorf("generated id %q is not a UUID", w.ID)
	}
	if w.Position != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("placed at %+v, want {1 0}", w.Position)
	}
	if len(stored(t, s)) != 2 {
		t.Error("AddWidget did not persist")
	}

	if _, err := b.AddWidget(ctx, "a", grid.Size{Width: 1, Height: 1}); !gberrors.Is(err, gberrors.ErrCodeInvalidInput) {
		t.Errorf("duplicate id error = %v, want INVALID_INPUT", err)
	}
	if _, err := b.AddWidget(ctx, "big", grid.Size{Width: 3, Height: 2}); !gberrors.Is(err, gberrors.ErrCodeInfeasible) {
		t.Errorf("no room error = %v, want INFEASIBLE", err)
	}
	if _, err := b.AddWidget(ctx, "flat", grid.Size{Width: 0, Height: 1}); !gberrors.Is(err, gberrors.ErrCodeInvalidInput) {
		t.Errorf("zero width error = %v, want INVALID_INPUT", err)
	}

	if err := b.RemoveWidget(ctx, "a"); err != nil {
		t.Fatalf("RemoveWidget error: %v", err)
	}
	if _, ok := stored(t, s).Find("a"); ok {
		t.Error("RemoveWidget did not persist")
	}
	if err := b.RemoveWidget(ctx, "a"); !gberrors.Is(err, gberrors.ErrCodeWidgetNotFound) {
		t.Errorf("second RemoveWidget = %v, want WIDGET_NOT_FOUND", err)
	}
}

func TestReplace(t *testing.T) {
	ctx := context.Background()
	b, _ := openWith(t, testGrid(2, 2), grid.Layout{wd("a", 0, 0, 1, 1)})

	bad := grid.Layout{wd("a", 0, 0, 2, 2), wd("b", 1, 1, 1, 1)}
	if err := b.Replace(ctx, bad); !gberrors.Is(err, gberrors.ErrCodeInvalidLayout) {
		t.Errorf("Replace(overlapping) = %v, want INVALID_LAYOUT", err)
	}
	good := grid.Layout{wd("x", 1, 1, 1, 1)}
	if err := b.Replace(ctx, good); err != nil {
		t.Fatal(err)
	}
	if !b.Layout().Equal(good) {
		t.Errorf("Layout() = %+v", b.Layout())
	}
}

func TestUndoRedo(t *testing.T) {
	ctx := context.Background()
	b, s := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 0, 0, 1, 1)})

	if ok, _ := b.Undo(ctx); ok {
		t.Error("Undo on fresh board should report false")
	}

	_, _ = b.Move(ctx, "a", grid.Position{X: 3, Y: 3})
	_, _ = b.AddWidget(ctx, "b", grid.Size{Width: 1, Height: 1})

	if ok, err := b.Undo(ctx); !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}
	if _, ok := stored(t, s).Find("b"); ok {
		t.Error("undo of AddWidget was not persisted")
	}
	_, _ = b.Undo(ctx)
	if got := position(t, b.Layout(), "a"); got != (grid.Position{}) {
		t.Errorf("after two undos a = %+v, want {0 0}", got)
	}

	_, _ = b.Redo(ctx)
	if got := position(t, b.Layout(), "a"); got != (grid.Position{X: 3, Y: 3}) {
		t.Errorf("after redo a = %+v, want {3 3}", got)
	}

	// A new change clears redo.
	_, _ = b.Compact(ctx)
	if ok, _ := b.Redo(ctx); ok {
		t.Error("Redo after a new change should report false")
	}
}

type failingStore struct{ *store.MemoryStore }

func (failingStore) Set(context.Context, *store.Record) error { return errors.New("disk full") }

func TestCommitRollsBackOnStoreError(t *testing.T) {
	ctx := context.Background()
	s := failingStore{store.NewMemoryStore()}
	b, err := Open(ctx, s, "home", testGrid(4, 4), Options{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := b.AddWidget(ctx, "a", grid.Size{Width: 1, Height: 1}); err == nil {
		t.Fatal("AddWidget should surface the store error")
	}
	if len(b.Layout()) != 0 {
		t.Error("layout kept a change that was not persisted")
	}
	if undo, _ := b.CanUndo(); undo != 0 {
		t.Errorf("history kept %d steps after rollback", undo)
	}
}

// flakyStore fails every Set while broken is true.
type flakyStore struct {
	*store.MemoryStore
	broken bool
}

func (s *flakyStore) Set(ctx context.Context, rec *store.Record) error {
	if s.broken {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, rec)
}

func TestUndoRedoRollBackOnStoreError(t *testing.T) {
	ctx := context.Background()
	s := &flakyStore{MemoryStore: store.NewMemoryStore()}
	b, err := Open(ctx, s, "home", testGrid(4, 4), Options{})
	if err != nil {
		t.Fatal(err)
	}
	unit := grid.Size{Width: 1, Height: 1}
	if _, err := b.AddWidget(ctx, "a", unit); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddWidget(ctx, "b", unit); err != nil {
		t.Fatal(err)
	}
	if ok, err := b.Undo(ctx); !ok || err != nil {
		t.Fatalf("Undo = %v, %v", ok, err)
	}

	s.broken = true
	check := func(op string) {
		t.Helper()
		if ids := b.Layout().IDs(); len(ids) != 1 || ids[0] != "a" {
			t.Errorf("after failed %s layout = %v, want [a]", op, ids)
		}
		if ids := stored(t, s).IDs(); len(ids) != 1 || ids[0] != "a" {
			t.Errorf("after failed %s stored = %v, want [a]", op, ids)
		}
		if undo, redo := b.CanUndo(); undo != 1 || redo != 1 {
			t.Errorf("after failed %s history = %d, %d; want 1, 1", op, undo, redo)
		}
	}

	if ok, err := b.Undo(ctx); ok || err == nil {
		t.Errorf("Undo with a failing store = %v, %v; want false and an error", ok, err)
	}
	check("undo")

	if ok, err := b.Redo(ctx); ok || err == nil {
		t.Errorf("Redo with a failing store = %v, %v; want false and an error", ok, err)
	}
	check("redo")

	if _, err := b.Move(ctx, "a", grid.Position{X: 3, Y: 3}); err == nil {
		t.Error("Move should surface the store error")
	}
	check("move")

	s.broken = false
	if ok, err := b.Redo(ctx); !ok || err != nil {
		t.Fatalf("Redo after recovery = %v, %v", ok, err)
	}
	if ids := stored(t, s).IDs(); len(ids) != 2 {
		t.Errorf("stored after redo = %v, want [a b]", ids)
	}
}

func TestCompactNeverPersistsOverlap(t *testing.T) {
	ctx := context.Background()
	layout := grid.Layout{wd("a", 3, 0, 1, 2), wd("f", 0, 1, 3, 1), wd("g", 1, 0, 2, 1)}
	b, s := openWith(t, testGrid(4, 2), layout)

	if _, err := b.Compact(ctx); err != nil {
		t.Fatalf("Compact error: %v", err)
	}
	if err := b.Grid().Validate(b.Layout()); err != nil {
		t.Errorf("compacted layout invalid: %v", err)
	}
	if _, err := Open(ctx, s, "home", grid.Grid{}, Options{}); err != nil {
		t.Errorf("reopening after Compact: %v", err)
	}
}

func TestClose(t *testing.T) {
	ctx := context.Background()
	b, s := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 0, 0, 1, 1)})

	if err := b.StartGesture("a"); err != nil {
		t.Fatal(err)
	}
	_, _ = b.UpdateGesture(100, 0)
	b.Close()

	if b.Session().Phase() != drag.Idle {
		t.Error("Close should drop the gesture in progress")
	}
	if _, err := b.EndGesture(ctx); !gberrors.Is(err, gberrors.ErrCodeNoSession) {
		t.Errorf("EndGesture after Close = %v, want NO_SESSION", err)
	}
	if _, err := b.AddWidget(ctx, "b", grid.Size{Width: 1, Height: 1}); !gberrors.Is(err, gberrors.ErrCodeBoardNotFound) {
		t.Errorf("AddWidget after Close = %v, want BOARD_NOT_FOUND", err)
	}
	if err := b.Save(ctx); !gberrors.Is(err, gberrors.ErrCodeBoardNotFound) {
		t.Errorf("Save after Close = %v, want BOARD_NOT_FOUND", err)
	}
	if got := stored(t, s); len(got) != 1 || got[0].Position != (grid.Position{}) {
		t.Errorf("stored = %v, want the layout from before Close", got)
	}
}

type recordingBoardHooks struct {
	observability.NoopBoardHooks
	mu        sync.Mutex
	commits   []int
	rejects   []string
	compacted int
}

func (h *recordingBoardHooks) OnCommit(_ context.Context, _, _ string, displaced int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.commits = append(h.commits, displaced)
}

func (h *recordingBoardHooks) OnReject(_ context.Context, _, _, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejects = append(h.rejects, reason)
}

func (h *recordingBoardHooks) OnCompact(context.Context, string, int, time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.compacted++
}

func TestHooks(t *testing.T) {
	ctx := context.Background()
	hooks := &recordingBoardHooks{}
	observability.SetBoardHooks(hooks)
	defer observability.Reset()

	b, _ := openWith(t, testGrid(4, 4), grid.Layout{wd("a", 0, 0, 2, 2), wd("b", 2, 0, 1, 1)})

	_ = b.StartGesture("a")
	_, _ = b.UpdateGesture(100, 0)
	_, _ = b.EndGesture(ctx)

	_ = b.StartGesture("b")
	_, _ = b.EndGesture(ctx)

	_ = b.StartGesture("b")
	b.CancelGesture()

	_, _ = b.Compact(ctx)

	if len(hooks.commits) != 1 || hooks.commits[0] != 1 {
		t.Errorf("commits = %v, want [1]", hooks.commits)
	}
	if len(hooks.rejects) != 2 || hooks.rejects[0] != "no movement" || hooks.rejects[1] != "cancelled" {
		t.Errorf("rejects = %v, want [no movement cancelled]", hooks.rejects)
	}
	if hooks.compacted != 1 {
		t.Errorf("compacted = %d, want 1", hooks.compacted)
	}
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	b, _ := openWith(t, testGrid(8, 8), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = b.AddWidget(ctx, "", grid.Size{Width: 1, Height: 1})
			_ = b.Layout()
		}()
	}
	wg.Wait()

	l := b.Layout()
	if len(l) != 8 {
		t.Errorf("len(Layout()) = %d, want 8", len(l))
	}
	if err := b.Grid().Validate(l); err != nil {
		t.Errorf("concurrent adds broke the layout: %v", err)
	}
}
