// Package tackle - tackle.go
//
// This file implements the per-rod staged state machine.
//
// Each operation drives one blocking stage of a cast: it holds the inputs the
// stage needs, polls the detector once per loop delay and returns the first
// condition that ends the stage as an Outcome. Tackle never advances itself;
// the player decides what runs next.
//
// Stages:
//   - Reset: reel in until the tackle is ready to cast
//   - Sink: wait for the lure to reach the bottom layer
//   - Retrieve: reel the lure back
//   - Pull: fight a hooked fish until the retrieval finishes
//   - Pirk / Elevate: jig the lure against a stage timeout
//   - Drift: watch the float
//   - Lift: lift the rod until the fish is captured
//
// Entering a different stage re-arms the shared stage timeout; re-entering the
// same stage keeps the running anchor.
//
// Cancellation:
// Every operation returns a non-nil error only when ctx is cancelled. Held
// inputs are released on every return path.
package tackle

import (
	"context"
	"log/slog"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/timer"
)

// fullCastDuration is the hold time of a power 5 cast.
const fullCastDuration = 2 * time.Second

// Env bundles the collaborators shared by every rod of a session.
type Env struct {
	Clock    clock.Clock
	Timer    *timer.Timer
	Detector detect.Detector
	Input    *input.Coordinator
	Log      *slog.Logger
}

// Tackle is one rod slot.
type Tackle struct {
	slot    string
	cfg     config.TackleConfig
	profile config.Profile
	keys    config.KeyConfig

	clock clock.Clock
	timer *timer.Timer
	det   detect.Detector
	in    *input.Coordinator
	log   *slog.Logger

	stage     Stage
	available bool

	// gearRatioSignalled is reset on every stage change.
	gearRatioSignalled bool
}

// New creates the tackle for a rod slot. slot is the key that selects the rod,
// empty for single-rod profiles.
func New(slot string, cfg *config.Config, profile config.Profile, env Env) *Tackle {
	return &Tackle{
		slot:      slot,
		cfg:       cfg.Tackle,
		profile:   profile,
		keys:      cfg.Keys,
		clock:     env.Clock,
		timer:     env.Timer,
		det:       env.Detector,
		in:        env.Input,
		log:       env.Log,
		stage:     StageReset,
		available: true,
	}
}

// Slot returns the rod key.
func (t *Tackle) Slot() string { return t.slot }

// Stage returns the current stage.
func (t *Tackle) Stage() Stage { return t.stage }

// Available reports whether the rod can still be scheduled.
func (t *Tackle) Available() bool { return t.available }

// SetAvailable marks the rod (un)available.
func (t *Tackle) SetAvailable(v bool) {
	if t.available != v {
		t.log.Info("rod availability changed", "rod", t.slot, "available", v)
	}
	t.available = v
}

// enter moves the rod to stage, re-arming the stage timeout on a change.
func (t *Tackle) enter(stage Stage) {
	if stage == t.stage {
		return
	}
	t.log.Debug("stage change", "rod", t.slot, "from", t.stage, "to", stage)
	t.stage = stage
	t.gearRatioSignalled = false
	t.timer.ArmStageTimeout()
}

func (t *Tackle) wait(ctx context.Context, d time.Duration) error {
	return t.clock.Sleep(ctx, d)
}

// Select picks the rod up by pressing its slot key.
func (t *Tackle) Select(ctx context.Context) error {
	if t.slot == "" {
		return nil
	}
	t.in.Press(t.slot)
	return t.wait(ctx, t.cfg.SettleDelay)
}

// checkFaults returns the first tackle fault shown on screen, in priority order.
func (t *Tackle) checkFaults() (Outcome, bool) {
	switch {
	case t.cfg.CheckLineAtEnd && t.det.IsLineAtEnd():
		return LineAtEnd, true
	case t.cfg.CheckSnag && t.det.IsLineSnagged():
		return LineSnagged, true
	case t.det.IsLureBroken():
		return LureBroken, true
	case t.det.IsTackleBroken():
		return TackleBroken, true
	}
	return Done, false
}

// checkRare probes the expensive, unlikely faults once per rare-event interval.
func (t *Tackle) checkRare() (Outcome, bool) {
	if !t.timer.IsRareEventCheckable() {
		return Done, false
	}
	switch {
	case t.det.IsDisconnected():
		return Disconnected, true
	case t.det.IsTicketExpired():
		return TicketExpired, true
	case t.det.IsStuckAtCasting():
		return StuckAtCasting, true
	}
	return Done, false
}

// Reset reels in until the tackle is ready to cast.
func (t *Tackle) Reset(ctx context.Context) (Outcome, error) {
	t.enter(StageReset)
	if t.det.IsTackleReady() {
		return Done, nil
	}

	release := t.in.HoldMouse(input.Left)
	defer release()

	for {
		if t.det.IsTackleReady() {
			return Done, nil
		}
		if o, ok := t.resetCondition(); ok {
			return o, nil
		}
		if err := t.wait(ctx, t.cfg.LoopDelay); err != nil {
			return Done, err
		}
	}
}

func (t *Tackle) resetCondition() (Outcome, bool) {
	switch {
	case t.det.IsFishHooked():
		return FishHooked, true
	case t.det.IsFishCaptured():
		return FishCaptured, true
	}
	if o, ok := t.checkFaults(); ok {
		return o, true
	}
	switch {
	case !t.det.IsBaitChosen():
		return BaitNotChosen, true
	case t.cfg.CheckDryMix && !t.det.IsDryMixChosen():
		return DryMixNotChosen, true
	}
	return t.checkRare()
}

// CastDuration maps a cast power level to the hold time of the cast button.
// Level 1 is a tap and reports zero.
func CastDuration(level int) time.Duration {
	switch {
	case level <= 1:
		return 0
	case level >= 5:
		return fullCastDuration
	default:
		return time.Duration(level-1) * 400 * time.Millisecond
	}
}

// Cast casts the lure at the profile's power and waits for it to land. With
// lock set the reel is re-locked by a click once the lure lands.
func (t *Tackle) Cast(ctx context.Context, lock bool) (Outcome, error) {
	t.enter(StageReset)
	t.log.Debug("cast", "rod", t.slot, "power", t.profile.CastPower, "lock", lock)

	if t.cfg.RandomCastAim {
		t.in.Jitter(t.cfg.AimJitter)
	}

	switch level := t.profile.CastPower; {
	case level <= 1:
		t.in.Click(input.Left)
	case level >= 5:
		release := t.in.HoldKey("shift")
		err := t.in.HoldMouseFor(ctx, input.Left, CastDuration(level))
		release()
		if err != nil {
			return Done, err
		}
	default:
		if err := t.in.HoldMouseFor(ctx, input.Left, CastDuration(level)); err != nil {
			return Done, err
		}
	}

	if err := t.wait(ctx, t.cfg.CastDelay); err != nil {
		return Done, err
	}
	if lock {
		t.in.Click(input.Left)
	}
	return Done, nil
}

// Sink waits until the lure reaches the bottom layer, then tightens the line.
// A bite is only trusted after two consecutive hooked readings.
func (t *Tackle) Sink(ctx context.Context) (Outcome, error) {
	t.enter(StageSink)

	hooked := 0
	for {
		if t.det.IsBottomReached() {
			if err := t.wait(ctx, t.cfg.SettleDelay); err != nil {
				return Done, err
			}
			t.in.Click(input.Left)
			return Done, nil
		}
		if t.det.IsFishHooked() {
			hooked++
			if hooked >= 2 {
				return FishHooked, nil
			}
		} else {
			hooked = 0
		}
		if t.timer.IsStageTimeout(timer.Sink) {
			return SinkTimeout, nil
		}
		if err := t.wait(ctx, t.cfg.LoopDelay); err != nil {
			return Done, err
		}
	}
}

// Retrieve reels the lure in until the retrieval finishes or a fish bites.
func (t *Tackle) Retrieve(ctx context.Context, accelerated bool) (Outcome, error) {
	t.enter(StageRetrieve)

	release := t.in.HoldMouse(input.Left)
	defer release()
	if accelerated {
		releaseShift := t.in.HoldKey("shift")
		defer releaseShift()
	}

	for {
		if t.det.IsFishHooked() {
			return FishHooked, nil
		}
		if t.det.IsRetrievalFinished() {
			return Done, nil
		}
		if o, ok := t.checkFaults(); ok {
			return o, nil
		}
		if o, ok := t.checkRare(); ok {
			return o, nil
		}
		if err := t.wait(ctx, t.cfg.LoopDelay); err != nil {
			return Done, err
		}
	}
}

// Pull fights a hooked fish. It ends on a finished retrieval or a capture, and
// interrupts the fight for a coffee break or a gear ratio switch when the
// elapsed stage time calls for one.
func (t *Tackle) Pull(ctx context.Context) (Outcome, error) {
	t.enter(StagePull)

	release := t.in.HoldMouse(input.Left)
	defer release()

	for {
		switch {
		case t.det.IsFishCaptured():
			return FishCaptured, nil
		case t.det.IsRetrievalFinished():
			return Done, nil
		}
		if o, ok := t.checkFaults(); ok {
			return o, nil
		}
		if o, ok := t.checkRare(); ok {
			return o, nil
		}
		if t.timer.IsCoffeeDrinkable() {
			return CoffeeTimeout, nil
		}
		if !t.gearRatioSignalled && t.timer.IsStageTimeout(timer.GearRatio) {
			t.gearRatioSignalled = true
			return GearRatioTimeout, nil
		}
		if err := t.wait(ctx, t.cfg.LoopDelay); err != nil {
			return Done, err
		}
	}
}

// Pirk jigs the lure with short rod lifts until a bite or the pirk timeout.
func (t *Tackle) Pirk(ctx context.Context) (Outcome, error) {
	t.enter(StagePirk)
	return t.jig(ctx, timer.Pirk, PirkTimeout, func() error {
		if err := t.in.HoldMouseFor(ctx, input.Right, t.cfg.PirkDuration); err != nil {
			return err
		}
		return t.wait(ctx, t.cfg.PirkDelay)
	})
}

// Elevate walks the lure up the water column, or lets it drop when
// ElevateDrop is set, until a bite or the elevate timeout.
func (t *Tackle) Elevate(ctx context.Context) (Outcome, error) {
	t.enter(StageElevate)
	return t.jig(ctx, timer.Elevate, ElevateTimeout, func() error {
		var err error
		if t.cfg.ElevateDrop {
			err = t.in.HoldKeyFor(ctx, "enter", t.cfg.ElevateDuration)
		} else {
			err = t.in.HoldMouseFor(ctx, input.Left, t.cfg.ElevateDuration)
		}
		if err != nil {
			return err
		}
		return t.wait(ctx, t.cfg.ElevateDelay)
	})
}

func (t *Tackle) jig(ctx context.Context, kind timer.Kind, timeout Outcome, gesture func() error) (Outcome, error) {
	for {
		if t.det.IsFishHooked() {
			return FishHooked, nil
		}
		if o, ok := t.checkFaults(); ok {
			return o, nil
		}
		if t.timer.IsStageTimeout(kind) {
			return timeout, nil
		}
		if err := gesture(); err != nil {
			return Done, err
		}
	}
}

// AdjustDepth reels in a short burst. It moves the rod to the retrieve stage,
// so the next jig stage starts with a fresh timeout.
func (t *Tackle) AdjustDepth(ctx context.Context) (Outcome, error) {
	t.enter(StageRetrieve)
	if err := t.in.HoldMouseFor(ctx, input.Left, t.cfg.DepthAdjustDuration); err != nil {
		return Done, err
	}
	return Done, nil
}

// Drift watches the float until it bites or the drift timeout elapses.
func (t *Tackle) Drift(ctx context.Context) (Outcome, error) {
	t.enter(StageDrift)
	for {
		if t.det.IsFloatBiting() {
			return FishHooked, nil
		}
		if o, ok := t.checkFaults(); ok {
			return o, nil
		}
		if t.timer.IsStageTimeout(timer.Drift) {
			return DriftTimeout, nil
		}
		if err := t.wait(ctx, t.cfg.LoopDelay); err != nil {
			return Done, err
		}
	}
}

// Lift raises the rod until the fish is captured. A standard rod also keeps
// reeling; a telescopic rod has no reel. When the lift stage times out with
// the fish still on and the line fully in, the landing net gets one try.
func (t *Tackle) Lift(ctx context.Context, telescopic bool) (Outcome, error) {
	t.enter(StageLift)

	release := t.in.HoldMouse(input.Right)
	defer release()
	if !telescopic {
		releaseLeft := t.in.HoldMouse(input.Left)
		defer releaseLeft()
	}

	for {
		if t.det.IsFishCaptured() {
			return FishCaptured, nil
		}
		if o, ok := t.checkFaults(); ok {
			return o, nil
		}
		if t.timer.IsStageTimeout(timer.Lift) {
			return t.landingNet(ctx)
		}
		if err := t.wait(ctx, t.cfg.LoopDelay); err != nil {
			return Done, err
		}
	}
}

func (t *Tackle) landingNet(ctx context.Context) (Outcome, error) {
	if !t.det.IsFishHooked() || !t.det.IsRetrievalFinished() {
		return LiftTimeout, nil
	}
	t.log.Info("trying landing net", "rod", t.slot)
	t.in.Press(t.keys.LandingNet)
	if err := t.wait(ctx, t.cfg.LandingNetDelay); err != nil {
		return Done, err
	}
	if t.det.IsFishCaptured() {
		return FishCaptured, nil
	}
	return LiftTimeout, nil
}

// EquipItem opens the inventory and equips the first eligible favourite of
// kind. Worn out lures are skipped.
func (t *Tackle) EquipItem(ctx context.Context, kind detect.ItemKind) (Outcome, error) {
	t.in.Press(t.keys.Inventory)
	if err := t.wait(ctx, t.cfg.SettleDelay); err != nil {
		return Done, err
	}

	for _, p := range t.det.FavoriteItemPositions(kind) {
		if kind == detect.Lure && t.det.IsLureBrokenAt(p) {
			continue
		}
		t.in.MoveTo(p.X, p.Y)
		t.in.DoubleClick(input.Left)
		t.log.Info("item equipped", "rod", t.slot, "kind", kind, "x", p.X, "y", p.Y)
		if err := t.wait(ctx, t.cfg.SettleDelay); err != nil {
			return Done, err
		}
		return Done, nil
	}

	t.in.Press(t.keys.Inventory)
	t.log.Warn("no eligible item in favourites", "rod", t.slot, "kind", kind)
	return ItemNotFound, nil
}
