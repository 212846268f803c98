package store

import (
	"context"
	"time"
)

// Backoff retries backend calls that fail for transient reasons, doubling
// the wait after every failed attempt.
type Backoff struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Initial is the wait before the second try.
	Initial time.Duration
	// Max caps the wait between tries. Zero means no cap.
	Max time.Duration
	// Transient reports whether err is worth another try. Nil retries nothing.
	Transient func(err error) bool
}

// defaultInitialDelay is the first wait of the backends' default policy.
const defaultInitialDelay = 200 * time.Millisecond

// newBackoff returns the policy used by the network backends: three attempts
// starting at defaultInitialDelay, capped at two seconds.
func newBackoff(transient func(error) bool) Backoff {
	return Backoff{Attempts: 3, Initial: defaultInitialDelay, Max: 2 * time.Second, Transient: transient}
}

// Do calls fn until it succeeds, returns a non-transient error, runs out of
// attempts, or ctx ends. It returns fn's last error, or ctx's error when the
// wait was interrupted.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Initial

	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		if b.Transient == nil || !b.Transient(err) || i == attempts-1 {
			return err
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return err
}
