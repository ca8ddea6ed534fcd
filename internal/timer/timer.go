// Package timer - timer.go
//
// This file implements the session cooldown and stage-timeout ledger.
//
// The Timer performs no I/O and never blocks. It answers two kinds of question:
//
//  1. Cooldowns ("may I drink tea now?"): check-and-stamp predicates. A predicate
//     returns true at most once per elapsed interval and records the time when it
//     does, so the caller acts on a true result immediately. A cooldown that was
//     never used fires on its first call.
//
//  2. Stage timeouts ("has this pirk stage run too long?"): elapsed time since the
//     stage anchor, which ArmStageTimeout sets. Arming also re-arms every
//     stage-relative cooldown (coffee, rare-event check) so they share one clock
//     origin per stage.
//
// Thread Safety:
// The Timer is owned by the foreground session goroutine. The mutex only guards
// reads from the status reporters.
package timer

import (
	"sync"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
)

// Kind names a stage-relative timeout.
type Kind int

const (
	Pirk Kind = iota
	Elevate
	Lift
	Drift
	Sink
	GearRatio
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case Pirk:
		return "pirk"
	case Elevate:
		return "elevate"
	case Lift:
		return "lift"
	case Drift:
		return "drift"
	case Sink:
		return "sink"
	case GearRatio:
		return "gear ratio"
	default:
		return "unknown"
	}
}

// cooldown is a single check-and-stamp slot.
type cooldown struct {
	last     time.Time
	interval time.Duration
}

func (c *cooldown) ready(now time.Time) bool {
	if !c.last.IsZero() && now.Sub(c.last) < c.interval {
		return false
	}
	c.last = now
	return true
}

// Timer is the per-session cooldown ledger.
type Timer struct {
	clock clock.Clock
	start time.Time

	tea        cooldown
	alcohol    cooldown
	lureChange cooldown
	spodRod    cooldown
	pause      cooldown
	coffee     cooldown
	rareEvent  cooldown

	anchor   time.Time
	timeouts map[Kind]time.Duration

	mu sync.Mutex
}

// New creates a timer from the configured intervals.
func New(clk clock.Clock, cfg config.TimerConfig) *Timer {
	now := clk.Now()
	return &Timer{
		clock:      clk,
		start:      now,
		anchor:     now,
		tea:        cooldown{interval: cfg.TeaInterval},
		alcohol:    cooldown{interval: cfg.AlcoholInterval},
		lureChange: cooldown{interval: cfg.LureChangeInterval},
		spodRod:    cooldown{interval: cfg.SpodRodInterval},
		pause:      cooldown{interval: cfg.PauseInterval},
		coffee:     cooldown{interval: cfg.CoffeeInterval},
		rareEvent:  cooldown{interval: cfg.RareEventInterval},
		timeouts: map[Kind]time.Duration{
			Pirk:      cfg.PirkTimeout,
			Elevate:   cfg.ElevateTimeout,
			Lift:      cfg.LiftTimeout,
			Drift:     cfg.DriftTimeout,
			Sink:      cfg.SinkTimeout,
			GearRatio: cfg.GearRatioTimeout,
		},
	}
}

func (t *Timer) check(c *cooldown) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return c.ready(t.clock.Now())
}

// IsTeaDrinkable reports whether the tea cooldown elapsed, stamping it if so.
func (t *Timer) IsTeaDrinkable() bool { return t.check(&t.tea) }

// IsAlcoholDrinkable reports whether the alcohol cooldown elapsed, stamping it if so.
func (t *Timer) IsAlcoholDrinkable() bool { return t.check(&t.alcohol) }

// IsLureChangeable reports whether the lure change cooldown elapsed, stamping it if so.
func (t *Timer) IsLureChangeable() bool { return t.check(&t.lureChange) }

// IsSpodRodCastable reports whether the spod rod cooldown elapsed, stamping it if so.
func (t *Timer) IsSpodRodCastable() bool { return t.check(&t.spodRod) }

// IsPausable reports whether the pause cooldown elapsed, stamping it if so.
func (t *Timer) IsPausable() bool { return t.check(&t.pause) }

// IsCoffeeDrinkable reports whether a coffee interval passed since the stage was
// armed or the last coffee, stamping it if so.
func (t *Timer) IsCoffeeDrinkable() bool { return t.check(&t.coffee) }

// IsRareEventCheckable throttles the expensive rare fault probes.
func (t *Timer) IsRareEventCheckable() bool { return t.check(&t.rareEvent) }

// ArmStageTimeout moves the stage anchor to now. Callers invoke it once per
// stage change; stage-relative cooldowns restart from the same instant.
func (t *Timer) ArmStageTimeout() {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.clock.Now()
	t.anchor = now
	t.coffee.last = now
	t.rareEvent.last = now
}

// IsStageTimeout reports whether the stage has run longer than the timeout of kind.
func (t *Timer) IsStageTimeout(kind Kind) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clock.Now().Sub(t.anchor) > t.timeouts[kind]
}

// Anchor returns the instant the current stage was armed.
func (t *Timer) Anchor() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.anchor
}

// StageElapsed returns the time spent in the current stage.
func (t *Timer) StageElapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.clock.Now().Sub(t.anchor)
}

// SessionElapsed returns the time since the timer was created.
func (t *Timer) SessionElapsed() time.Duration {
	return t.clock.Now().Sub(t.start)
}

// Start returns the session start instant.
func (t *Timer) Start() time.Time {
	return t.start
}
