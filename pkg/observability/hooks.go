// Package observability lets callers observe board edits and store traffic
// without the board and store packages depending on any logging or metrics
// backend.
//
// Both hook sets default to no-ops. A binary installs its own once at
// startup, before opening boards:
//
//	observability.SetBoardHooks(boardLogger)
//	observability.SetStoreHooks(storeMetrics)
//
// and the libraries report through the registry:
//
//	observability.Board().OnCommit(ctx, "home", "clock", 2, elapsed)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Board Hooks
// =============================================================================

// BoardHooks receives events from board editing.
type BoardHooks interface {
	// OnCommit records a committed move. displaced is the number of widgets pushed aside.
	OnCommit(ctx context.Context, board, widgetID string, displaced int, duration time.Duration)

	// OnReject records a gesture that ended without a commit (invalid drop or cancel).
	OnReject(ctx context.Context, board, widgetID, reason string)

	// OnCompact records a compaction. moved is the number of widgets whose position changed.
	OnCompact(ctx context.Context, board string, moved int, duration time.Duration)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from layout store operations.
type StoreHooks interface {
	// OnLoad records a layout read. found is false when the board does not exist.
	OnLoad(ctx context.Context, backend, board string, found bool, duration time.Duration, err error)

	// OnSave records a layout write.
	OnSave(ctx context.Context, backend, board string, widgets int, duration time.Duration, err error)

	// OnDelete records a layout removal.
	OnDelete(ctx context.Context, backend, board string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBoardHooks is a no-op implementation of BoardHooks.
type NoopBoardHooks struct{}

func (NoopBoardHooks) OnCommit(context.Context, string, string, int, time.Duration) {}
func (NoopBoardHooks) OnReject(context.Context, string, string, string)           {}
func (NoopBoardHooks) OnCompact(context.Context, string, int, time.Duration)      {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnLoad(context.Context, string, string, bool, time.Duration, error) {}
func (NoopStoreHooks) OnSave(context.Context, string, string, int, time.Duration, error)  {}
func (NoopStoreHooks) OnDelete(context.Context, string, string, error)                   {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	boardHooks BoardHooks = NoopBoardHooks{}
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetBoardHooks installs h. A nil h is ignored.
func SetBoardHooks(h BoardHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		boardHooks = h
	}
}

// SetStoreHooks installs h. A nil h is ignored.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Board returns the registered board hooks.
func Board() BoardHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return boardHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset reinstalls the no-op hooks.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	boardHooks = NoopBoardHooks{}
	storeHooks = NoopStoreHooks{}
}
