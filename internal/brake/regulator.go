// Package brake - regulator.go
//
// This file implements the friction brake regulator, run in its own goroutine
// for the whole session.
//
// State Machine States:
//   - Idle: no fish on, poll the hook sensor
//   - Armed: fish on, wait out the start delay
//   - Adjusting: lower the brake on high tension or a burning reel, otherwise
//     raise it once per increase interval
//
// State Transitions:
//
//	Idle -> Armed (hooked)
//	Armed -> Adjusting (start delay elapsed)
//	Armed, Adjusting -> Idle (not hooked)
//
// The regulator shares nothing with the session but the FrictionBrake and the
// read-only sensor. It runs until its context is cancelled.
package brake

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
)

// State is the regulator state.
type State int

const (
	Idle State = iota
	Armed
	Adjusting
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Armed:
		return "Armed"
	case Adjusting:
		return "Adjusting"
	default:
		return "Unknown"
	}
}

// Regulator adjusts the friction brake during a fight.
type Regulator struct {
	brake  *FrictionBrake
	sensor detect.HookSensor
	clock  clock.Clock
	cfg    config.BrakeConfig
	log    *slog.Logger

	state        State
	armedAt      time.Time
	lastIncrease time.Time
}

// NewRegulator creates an idle regulator.
func NewRegulator(b *FrictionBrake, sensor detect.HookSensor, clk clock.Clock, cfg config.BrakeConfig, log *slog.Logger) *Regulator {
	return &Regulator{
		brake:  b,
		sensor: sensor,
		clock:  clk,
		cfg:    cfg,
		log:    log,
	}
}

// Run regulates until ctx is cancelled and returns ctx.Err().
func (r *Regulator) Run(ctx context.Context) error {
	r.log.Debug("friction brake regulator started")
	for {
		if err := r.step(ctx); err != nil {
			r.log.Debug("friction brake regulator stopped")
			return err
		}
	}
}

// Start runs the regulator in a new goroutine. stop cancels it and waits for
// it to return; it is safe to call more than once. A panic inside a step is
// logged and the regulator resumes from Idle after one poll delay.
func (r *Regulator) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for r.runRecovered(ctx) {
			if err := r.clock.Sleep(ctx, r.cfg.PollDelay); err != nil {
				return
			}
		}
	}()
	return func() {
		cancel()
		wg.Wait()
	}
}

// runRecovered runs the regulator and reports whether it stopped on a
// recovered panic while ctx is still live.
func (r *Regulator) runRecovered(ctx context.Context) (restart bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("friction brake regulator panicked, restarting", "panic", fmt.Sprint(rec))
			r.state = Idle
			restart = ctx.Err() == nil
		}
	}()
	_ = r.Run(ctx)
	return false
}

// step runs one transition and sleeps the poll delay.
func (r *Regulator) step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := r.clock.Now()
	hooked := r.sensor.IsFishHooked()

	switch r.state {
	case Idle:
		if hooked {
			r.transition(Armed)
			r.armedAt = now
		}
	case Armed:
		switch {
		case !hooked:
			r.transition(Idle)
		case now.Sub(r.armedAt) >= r.cfg.StartDelay:
			r.transition(Adjusting)
			r.lastIncrease = now
		}
	case Adjusting:
		switch {
		case !hooked:
			r.transition(Idle)
		case r.sensor.IsTensionHigh() || r.sensor.IsReelBurning():
			r.brake.Change(-1)
		case now.Sub(r.lastIncrease) >= r.cfg.IncreaseInterval:
			r.brake.Change(1)
			r.lastIncrease = now
		}
	}
	return r.clock.Sleep(ctx, r.cfg.PollDelay)
}

func (r *Regulator) transition(s State) {
	r.log.Debug("friction brake regulator", "from", r.state, "to", s, "brake", r.brake.Value())
	r.state = s
}

// State returns the current regulator state. Only meaningful while the
// regulator is not running.
func (r *Regulator) State() State {
	return r.state
}
