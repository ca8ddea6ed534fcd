// Package clocktest provides a manually driven Clock for tests.
package clocktest

import (
	"context"
	"sync"
	"time"
)

// Fake is a Clock whose Sleep advances time instantly.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
}

// New returns a fake clock starting at a fixed instant.
func New() *Fake {
	return &Fake{now: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Sleep advances the clock by d without blocking.
func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.Advance(d)
	return nil
}

// Advance moves the clock forward.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d > 0 {
		f.now = f.now.Add(d)
		f.slept += d
	}
}

// Slept returns the total duration passed to Sleep and Advance.
func (f *Fake) Slept() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slept
}
