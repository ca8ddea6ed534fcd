// Package brake - brake.go
//
// This file implements the friction brake shared by the session and the
// regulator goroutine.
//
// The brake is a bounded integer in [0, max] mirrored on the reel through the
// mouse wheel: one notch up raises it by one. The tracked value and the wheel
// are only ever touched while holding mu, so the session's resets and the
// regulator's adjustments never interleave. Critical sections issue a handful
// of scroll events and never wait on the game.
package brake

import (
	"log/slog"
	"sync"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
)

// FrictionBrake is the mutex-guarded brake value.
type FrictionBrake struct {
	mu    sync.Mutex
	value int
	max   int
	wheel input.Scroller
	log   *slog.Logger
}

// New creates a brake tracking initial, clamped to [0, max].
func New(initial, max int, wheel input.Scroller, log *slog.Logger) *FrictionBrake {
	return &FrictionBrake{
		value: clamp(initial, 0, max),
		max:   max,
		wheel: wheel,
		log:   log,
	}
}

// Value returns the tracked brake value.
func (b *FrictionBrake) Value() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Max returns the upper bound.
func (b *FrictionBrake) Max() int {
	return b.max
}

// Change moves the brake by delta, clamped to [0, max], and returns the new value.
func (b *FrictionBrake) Change(delta int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	next := clamp(b.value+delta, 0, b.max)
	b.scroll(next - b.value)
	b.value = next
	return next
}

// Reset scrolls the wheel to the maximum and back down to target, so the reel
// ends at target whatever the tracked value drifted to.
func (b *FrictionBrake) Reset(target int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	target = clamp(target, 0, b.max)
	b.scroll(b.max)
	b.scroll(target - b.max)
	b.value = target
	b.log.Debug("friction brake reset", "value", target)
}

func (b *FrictionBrake) scroll(notches int) {
	if notches == 0 {
		return
	}
	if err := b.wheel.Scroll(notches); err != nil {
		b.log.Warn("friction brake scroll failed", "notches", notches, "error", err)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
