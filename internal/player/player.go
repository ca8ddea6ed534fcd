// Package player - player.go
//
// This file implements the Player, the session orchestrator.
//
// The Player owns everything that lives for one session: the rods, the shared
// Timer, the friction brake and its regulator, the Result and the latched
// inputs. Run resolves nothing at runtime: the technique loop is picked once in
// New from a static mode table, then called until it returns an error.
//
// Session Lifecycle:
//  1. New: resolve profile and mode loop, build rods, timer, brake, result
//  2. Run: start the brake regulator, latch session inputs, loop
//  3. Every exit (fatal outcome, no rod left, user interrupt) goes through
//     terminate (quit.go), which tears down in a fixed order and hands the
//     frozen result to the sinks
//
// Thread Safety:
// The Player runs on one goroutine. The regulator goroutine only touches the
// FrictionBrake; the status server only reads Result and the brake, both
// internally locked.
package player

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/brake"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/tackle"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/timer"
)

// iteration is one pass of a technique loop. It returns nil to loop again.
type iteration func(p *Player, ctx context.Context) error

var modeLoops = map[config.Mode]iteration{
	config.ModeSpin:       (*Player).spin,
	config.ModeBottom:     (*Player).bottom,
	config.ModePirk:       (*Player).pirk,
	config.ModeElevator:   (*Player).elevator,
	config.ModeTelescopic: (*Player).telescopic,
	config.ModeBolognese:  (*Player).bolognese,
}

// Deps are the collaborators a Player drives.
type Deps struct {
	Clock    clock.Clock
	Detector detect.Detector
	Input    *input.Coordinator
	Log      *slog.Logger

	// Optional.
	Sinks          []result.Sink
	Events         Publisher
	Shutdown       func(ctx context.Context) error
	RegulatorClock clock.Clock // defaults to Clock
}

// Player runs one fishing session.
type Player struct {
	cfg         *config.Config
	profileName string
	profile     config.Profile

	clock clock.Clock
	timer *timer.Timer
	det   detect.Detector
	in    *input.Coordinator
	log   *slog.Logger

	rods    []*tackle.Tackle
	current int
	misses  []int
	rng     *rand.Rand

	brake     *brake.FrictionBrake
	regulator *brake.Regulator

	result   *result.Result
	sinks    []result.Sink
	events   Publisher
	shutdown func(ctx context.Context) error

	iterate iteration

	keepnet     int // fish in the keepnet
	fightCoffee int // coffees drunk during the current fight
	adjustments int // depth adjustments since the last jig cast
	latches     []func()
}

// New builds a session from a validated configuration.
func New(cfg *config.Config, deps Deps) (*Player, error) {
	profile, err := cfg.Selected()
	if err != nil {
		return nil, err
	}
	name := cfg.Profile
	iterate, ok := modeLoops[profile.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownMode, profile.Mode)
	}

	log := deps.Log.With("profile", name, "mode", profile.Mode)
	tm := timer.New(deps.Clock, cfg.Timer)
	p := &Player{
		cfg:         cfg,
		profileName: name,
		profile:     profile,
		clock:       deps.Clock,
		timer:       tm,
		det:         deps.Detector,
		in:          deps.Input,
		log:         log,
		rng:         rand.New(rand.NewSource(deps.Clock.Now().UnixNano())),
		result:      result.New(string(profile.Mode), name, deps.Clock.Now()),
		sinks:       deps.Sinks,
		events:      deps.Events,
		shutdown:    deps.Shutdown,
		iterate:     iterate,
		keepnet:     cfg.Keepnet.Initial,
	}
	if p.events == nil {
		p.events = nopPublisher{}
	}

	env := tackle.Env{Clock: deps.Clock, Timer: tm, Detector: deps.Detector, Input: deps.Input, Log: log}
	slots := profile.Rods
	if len(slots) == 0 {
		slots = []string{""}
	}
	for _, slot := range slots {
		p.rods = append(p.rods, tackle.New(slot, cfg, profile, env))
	}
	p.misses = make([]int, len(p.rods))
	// Start "after" the last rod so sequential rotation begins with the first.
	p.current = len(p.rods) - 1

	p.brake = brake.New(cfg.Brake.Initial, cfg.Brake.Max, deps.Input.Controller(), log)
	if cfg.Brake.Enabled {
		regClock := deps.RegulatorClock
		if regClock == nil {
			regClock = deps.Clock
		}
		p.regulator = brake.NewRegulator(p.brake, deps.Detector, regClock, cfg.Brake, log)
	}
	return p, nil
}

// Run plays the session until a fatal outcome or until ctx is cancelled, then
// terminates it. The returned error is a *QuitError for fatal outcomes and nil
// for a user interrupt.
func (p *Player) Run(ctx context.Context) (result.Snapshot, error) {
	p.log.Info("session started", "session", p.result.ID(), "rods", len(p.rods))
	p.publish(EventStarted, "session started")

	stopRegulator := func() {}
	if p.regulator != nil {
		stopRegulator = p.regulator.Start(ctx)
	}
	p.latch()

	err := p.loop(ctx)
	return p.terminate(err, stopRegulator)
}

func (p *Player) loop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.iterate(p, ctx); err != nil {
			return err
		}
	}
}

// Snapshot returns the running result.
func (p *Player) Snapshot() result.Snapshot {
	return p.result.Peek(p.clock.Now())
}

// Brake returns the session friction brake.
func (p *Player) Brake() *brake.FrictionBrake {
	return p.brake
}

// Result returns the session result.
func (p *Player) Result() *result.Result {
	return p.result
}

// Profile returns the selected profile name.
func (p *Player) Profile() string {
	return p.profileName
}

func (p *Player) rod() *tackle.Tackle {
	return p.rods[p.current]
}

func (p *Player) wait(ctx context.Context, d time.Duration) error {
	return p.clock.Sleep(ctx, d)
}

// latch holds the session-wide inputs, unless they are held already.
func (p *Player) latch() {
	key := p.cfg.Keys.Trolling
	if key == "" {
		return
	}
	for _, held := range p.in.Held() {
		if held == "key:"+key {
			return
		}
	}
	p.log.Info("trolling latched", "key", key)
	p.latches = append(p.latches, p.in.HoldKey(key))
}

// stage runs op and routes its outcome through the recovery table until the
// table says to proceed (true) or to restart the iteration (false).
func (p *Player) stage(ctx context.Context, op func(context.Context) (tackle.Outcome, error)) (bool, error) {
	for {
		o, err := op(ctx)
		if err != nil {
			return false, err
		}
		act, err := p.handle(ctx, o)
		if err != nil {
			return false, err
		}
		switch act {
		case proceed:
			return true, nil
		case restart:
			return false, nil
		}
	}
}

func (p *Player) cast(ctx context.Context) (tackle.Outcome, error) {
	return p.rod().Cast(ctx, p.profile.Lock)
}

// recast reels the current rod in and casts it again.
func (p *Player) recast(ctx context.Context) error {
	if ok, err := p.stage(ctx, p.rod().Reset); !ok || err != nil {
		return err
	}
	_, err := p.stage(ctx, p.cast)
	return err
}
