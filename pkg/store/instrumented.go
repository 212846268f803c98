package store

import (
	"context"
	"time"

	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/observability"
)

// Instrumented decorates a Store with name validation, STORE error codes and
// observability hooks.
type Instrumented struct {
	inner   Store
	backend string
}

// NewInstrumented wraps s. backend is the name reported to the hooks.
func NewInstrumented(s Store, backend string) *Instrumented {
	return &Instrumented{inner: s, backend: backend}
}

// Unwrap returns the decorated store.
func (s *Instrumented) Unwrap() Store { return s.inner }

// Backend returns the backend name.
func (s *Instrumented) Backend() string { return s.backend }

func (s *Instrumented) Get(ctx context.Context, name string) (*Record, error) {
	if err := errors.ValidateBoardName(name); err != nil {
		return nil, err
	}
	start := time.Now()
	rec, err := s.inner.Get(ctx, name)
	observability.Store().OnLoad(ctx, s.backend, name, rec != nil, time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load board %s", name)
	}
	return rec, nil
}

func (s *Instrumented) Set(ctx context.Context, rec *Record) error {
	if err := errors.ValidateBoardName(rec.Name); err != nil {
		return err
	}
	start := time.Now()
	err := s.inner.Set(ctx, rec)
	observability.Store().OnSave(ctx, s.backend, rec.Name, len(rec.Widgets), time.Since(start), err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save board %s", rec.Name)
	}
	return nil
}

func (s *Instrumented) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateBoardName(name); err != nil {
		return err
	}
	err := s.inner.Delete(ctx, name)
	observability.Store().OnDelete(ctx, s.backend, name, err)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "delete board %s", name)
	}
	return nil
}

func (s *Instrumented) List(ctx context.Context) ([]string, error) {
	names, err := s.inner.List(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "list boards")
	}
	return names, nil
}

func (s *Instrumented) Close() error {
	return s.inner.Close()
}

var _ Store = (*Instrumented)(nil)
