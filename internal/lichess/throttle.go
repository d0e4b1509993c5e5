package lichess

import (
	"context"
	"sync"
	"time"
)

// Throttle spaces calls to Wait at least delay apart. Callers queue in
// order; a zero delay never blocks.
type Throttle struct {
	mu    sync.Mutex
	delay time.Duration
	last  time.Time
}

// NewThrottle creates a throttle with the given minimum spacing.
func NewThrottle(delay time.Duration) *Throttle {
	return &Throttle{delay: delay}
}

// Wait blocks until delay has passed since the previous Wait returned, or
// ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.last.IsZero() {
		if wait := t.delay - time.Since(t.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	t.last = time.Now()
	return nil
}
