// Package store persists board layouts in a key-value store keyed by board name.
//
// The engine in pkg/grid never touches a store; pkg/board loads one [Record]
// when a board is opened and writes it back after every successful commit.
// Records are written verbatim: the layout that comes out of a store has the
// same shape it went in with.
//
// # Backends
//
//   - memory: in-process map, for tests and the development API server
//   - file:   one JSON file per board, for CLI use
//   - redis:  JSON values under prefixed keys, for shared deployments
//   - mongo:  one document per board in a "boards" collection
//
// Use [Open] to pick a backend from [Options]:
//
//	s, err := store.Open(ctx, store.Options{Backend: store.BackendRedis, RedisAddr: "localhost:6379"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	rec, err := s.Get(ctx, "home")   // nil, nil when the board does not exist
package store

import (
	"context"
	"time"

	"github.com/matzehuels/gridboard/pkg/grid"
)

// Record is the persisted form of one board.
type Record struct {
	Name      string      `json:"name" bson:"name"`
	Grid      grid.Grid   `json:"grid" bson:"grid"`
	Widgets   grid.Layout `json:"widgets" bson:"widgets"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	out.Widgets = r.Widgets.Clone()
	return &out
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves a board by name.
	// Returns nil, nil if the board doesn't exist.
	Get(ctx context.Context, name string) (*Record, error)

	// Set stores a board, replacing any previous record with the same name.
	Set(ctx context.Context, rec *Record) error

	// Delete removes a board. Deleting a missing board is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all stored boards in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases backend resources.
	Close() error
}
