package tackle

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock/clocktest"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect/detecttest"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input/inputtest"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/timer"
)

type fixture struct {
	tackle *Tackle
	clock  *clocktest.Fake
	det    *detecttest.Fake
	rec    *inputtest.Recorder
	in     *input.Coordinator
	timer  *timer.Timer
}

func newFixture(t *testing.T, profile string, edit func(*config.Config)) *fixture {
	t.Helper()
	cfg := config.Default()
	if edit != nil {
		edit(cfg)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	clk := clocktest.New()
	det := detecttest.New()
	rec := &inputtest.Recorder{}
	in := input.NewCoordinator(rec, clk, log)
	tm := timer.New(clk, cfg.Timer)
	env := Env{Clock: clk, Timer: tm, Detector: det, Input: in, Log: log}
	return &fixture{
		tackle: New("", cfg, cfg.Profiles[profile], env),
		clock:  clk,
		det:    det,
		rec:    rec,
		in:     in,
		timer:  tm,
	}
}

func mustOutcome(t *testing.T, got Outcome, err error, want Outcome) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("outcome = %v, want %v", got, want)
	}
}

func TestCastDuration(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 0},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, 1200 * time.Millisecond},
		{5, fullCastDuration},
	}
	for _, tt := range tests {
		if got := CastDuration(tt.level); got != tt.want {
			t.Errorf("CastDuration(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestCastGestures(t *testing.T) {
	tests := []struct {
		name  string
		power int
		lock  bool
		want  []string
	}{
		{"tap", 1, false, []string{"click:left"}},
		{"partial hold", 3, false, []string{"down:left", "up:left"}},
		{"full power with lock", 5, true, []string{"keydown:shift", "down:left", "up:left", "keyup:shift", "click:left"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "SPIN", func(c *config.Config) {
				p := c.Profiles["SPIN"]
				p.CastPower = tt.power
				c.Profiles["SPIN"] = p
			})
			o, err := f.tackle.Cast(context.Background(), tt.lock)
			mustOutcome(t, o, err, Done)
			if got := f.rec.Events(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResetReturnsFirstConditionAndReleasesMouse(t *testing.T) {
	f := newFixture(t, "SPIN", nil)
	f.det.Script(detect.ProbeFishHooked, false, true)

	o, err := f.tackle.Reset(context.Background())
	mustOutcome(t, o, err, FishHooked)

	if got := f.in.Held(); len(got) != 0 {
		t.Fatalf("inputs still held: %v", got)
	}
	want := []string{"down:left", "up:left"}
	if got := f.rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestResetPriority(t *testing.T) {
	tests := []struct {
		name  string
		set   []string
		unset []string
		want  Outcome
	}{
		{"hooked beats everything", []string{detect.ProbeFishHooked, detect.ProbeFishCaptured, detect.ProbeLineSnagged}, nil, FishHooked},
		{"captured beats faults", []string{detect.ProbeFishCaptured, detect.ProbeLineAtEnd}, nil, FishCaptured},
		{"line at end beats snag", []string{detect.ProbeLineAtEnd, detect.ProbeLineSnagged}, nil, LineAtEnd},
		{"snag beats broken lure", []string{detect.ProbeLineSnagged, detect.ProbeLureBroken}, nil, LineSnagged},
		{"broken lure beats broken tackle", []string{detect.ProbeLureBroken, detect.ProbeTackleBroken}, nil, LureBroken},
		{"broken tackle beats bait", []string{detect.ProbeTackleBroken}, []string{detect.ProbeBaitChosen}, TackleBroken},
		{"bait not chosen", nil, []string{detect.ProbeBaitChosen}, BaitNotChosen},
		{"disconnected", []string{detect.ProbeDisconnected, detect.ProbeTicketExpired}, nil, Disconnected},
		{"ticket expired", []string{detect.ProbeTicketExpired, detect.ProbeStuckAtCasting}, nil, TicketExpired},
		{"stuck at casting", []string{detect.ProbeStuckAtCasting}, nil, StuckAtCasting},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "SPIN", nil)
			for _, name := range tt.set {
				f.det.Set(name, true)
			}
			for _, name := range tt.unset {
				f.det.Set(name, false)
			}
			o, err := f.tackle.Reset(context.Background())
			mustOutcome(t, o, err, tt.want)
		})
	}
}

func TestDryMixCheckIsOptional(t *testing.T) {
	f := newFixture(t, "BOTTOM", func(c *config.Config) { c.Tackle.CheckDryMix = true })
	f.det.Set(detect.ProbeDryMixChosen, false)
	o, err := f.tackle.Reset(context.Background())
	mustOutcome(t, o, err, DryMixNotChosen)

	f = newFixture(t, "BOTTOM", nil)
	f.det.Set(detect.ProbeDryMixChosen, false)
	f.det.Script(detect.ProbeTackleReady, false, false, true)
	o, err = f.tackle.Reset(context.Background())
	mustOutcome(t, o, err, Done)
}

func TestStageChangeRearmsTimeout(t *testing.T) {
	f := newFixture(t, "PIRK", nil)

	f.tackle.enter(StagePirk)
	armed := f.timer.Anchor()

	f.clock.Advance(10 * time.Second)
	f.tackle.enter(StagePirk)
	if got := f.timer.Anchor(); !got.Equal(armed) {
		t.Fatal("re-entering the same stage must not re-arm")
	}

	f.tackle.enter(StageRetrieve)
	if got := f.timer.Anchor(); !got.Equal(f.clock.Now()) {
		t.Fatal("changing stage must re-arm")
	}
	if f.tackle.Stage() != StageRetrieve {
		t.Fatalf("stage = %v", f.tackle.Stage())
	}
}

func TestPirkTimesOutWithoutBite(t *testing.T) {
	f := newFixture(t, "PIRK", nil)

	o, err := f.tackle.Pirk(context.Background())
	mustOutcome(t, o, err, PirkTimeout)
	if f.timer.StageElapsed() <= config.Default().Timer.PirkTimeout {
		t.Fatal("pirk returned before its timeout")
	}
	if f.rec.Count("down:right") == 0 {
		t.Fatal("expected pirk gestures")
	}

	// Adjusting depth leaves the pirk stage, so the next pirk starts fresh.
	o, err = f.tackle.AdjustDepth(context.Background())
	mustOutcome(t, o, err, Done)
	f.det.Script(detect.ProbeFishHooked, false, true)
	o, err = f.tackle.Pirk(context.Background())
	mustOutcome(t, o, err, FishHooked)
}

func TestElevateTimesOut(t *testing.T) {
	f := newFixture(t, "ELEVATOR", nil)
	o, err := f.tackle.Elevate(context.Background())
	mustOutcome(t, o, err, ElevateTimeout)
}

func TestSinkNeedsTwoHookedReadings(t *testing.T) {
	f := newFixture(t, "PIRK", nil)
	f.det.Script(detect.ProbeFishHooked, true, false, true, true)

	o, err := f.tackle.Sink(context.Background())
	mustOutcome(t, o, err, FishHooked)
	if got := f.det.Calls(detect.ProbeFishHooked); got != 4 {
		t.Fatalf("hooked polled %d times, want 4", got)
	}
}

func TestSinkTightensLineOnBottom(t *testing.T) {
	f := newFixture(t, "PIRK", nil)
	f.det.Script(detect.ProbeBottomReached, false, true)

	o, err := f.tackle.Sink(context.Background())
	mustOutcome(t, o, err, Done)
	if f.rec.Count("click:left") != 1 {
		t.Fatalf("events = %v", f.rec.Events())
	}

	f = newFixture(t, "PIRK", nil)
	o, err = f.tackle.Sink(context.Background())
	mustOutcome(t, o, err, SinkTimeout)
}

func TestRetrieve(t *testing.T) {
	f := newFixture(t, "SPIN", nil)
	f.det.Script(detect.ProbeRetrievalFinished, false, false, true)

	o, err := f.tackle.Retrieve(context.Background(), true)
	mustOutcome(t, o, err, Done)
	want := []string{"down:left", "keydown:shift", "keyup:shift", "up:left"}
	if got := f.rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestPullSignalsGearRatioOncePerStage(t *testing.T) {
	f := newFixture(t, "SPIN", func(c *config.Config) {
		c.Timer.CoffeeInterval = time.Hour
		c.Timer.RareEventInterval = time.Hour
	})
	ctx := context.Background()

	o, err := f.tackle.Pull(ctx)
	mustOutcome(t, o, err, GearRatioTimeout)
	start := f.timer.Anchor()

	f.det.Func(detect.ProbeRetrievalFinished, func() bool {
		return f.clock.Now().Sub(start) > 5*time.Minute
	})
	o, err = f.tackle.Pull(ctx)
	mustOutcome(t, o, err, Done)

	// A new pull stage may signal again.
	f.tackle.enter(StageLift)
	f.det.Func(detect.ProbeRetrievalFinished, func() bool { return false })
	o, err = f.tackle.Pull(ctx)
	mustOutcome(t, o, err, GearRatioTimeout)
}

func TestPullSignalsCoffeeFromStageTime(t *testing.T) {
	f := newFixture(t, "SPIN", nil)
	cfg := config.Default().Timer

	o, err := f.tackle.Pull(context.Background())
	mustOutcome(t, o, err, CoffeeTimeout)
	if got := f.timer.StageElapsed(); got < cfg.CoffeeInterval || got > cfg.CoffeeInterval+time.Second {
		t.Fatalf("coffee signalled after %v", got)
	}
}

func TestLiftLandingNet(t *testing.T) {
	tests := []struct {
		name     string
		hooked   bool
		finished bool
		want     Outcome
	}{
		{"net lands the fish", true, true, FishCaptured},
		{"fish lost", false, true, LiftTimeout},
		{"line still out", true, false, LiftTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, "SPIN", nil)
			f.det.Set(detect.ProbeFishHooked, tt.hooked)
			f.det.Set(detect.ProbeRetrievalFinished, tt.finished)
			f.det.Func(detect.ProbeFishCaptured, func() bool {
				return f.rec.Count("press:space") > 0
			})

			o, err := f.tackle.Lift(context.Background(), false)
			mustOutcome(t, o, err, tt.want)
			if got := f.in.Held(); len(got) != 0 {
				t.Fatalf("inputs still held: %v", got)
			}
		})
	}
}

func TestLiftTelescopicHoldsOnlyRight(t *testing.T) {
	f := newFixture(t, "TELESCOPIC", nil)
	f.det.Script(detect.ProbeFishCaptured, false, true)

	o, err := f.tackle.Lift(context.Background(), true)
	mustOutcome(t, o, err, FishCaptured)
	want := []string{"down:right", "up:right"}
	if got := f.rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestDrift(t *testing.T) {
	f := newFixture(t, "TELESCOPIC", nil)
	o, err := f.tackle.Drift(context.Background())
	mustOutcome(t, o, err, DriftTimeout)

	f = newFixture(t, "TELESCOPIC", nil)
	f.det.Script(detect.ProbeFloatBiting, false, false, true)
	o, err = f.tackle.Drift(context.Background())
	mustOutcome(t, o, err, FishHooked)
}

func TestEquipItemSkipsBrokenLures(t *testing.T) {
	f := newFixture(t, "SPIN", nil)
	worn := detect.Point{X: 100, Y: 400}
	fresh := detect.Point{X: 160, Y: 400}
	f.det.SetFavorites(detect.Lure, worn, fresh).SetBroken(worn)

	o, err := f.tackle.EquipItem(context.Background(), detect.Lure)
	mustOutcome(t, o, err, Done)
	want := []string{"press:v", "move:160,400", "dclick:left"}
	if got := f.rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}

	f = newFixture(t, "SPIN", nil)
	f.det.SetFavorites(detect.Lure, worn).SetBroken(worn)
	o, err = f.tackle.EquipItem(context.Background(), detect.Lure)
	mustOutcome(t, o, err, ItemNotFound)
}

func TestCancelledOperationReleasesInputs(t *testing.T) {
	f := newFixture(t, "SPIN", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := f.tackle.Retrieve(ctx, true); err == nil {
		t.Fatal("expected cancellation error")
	}
	if got := f.in.Held(); len(got) != 0 {
		t.Fatalf("inputs still held: %v", got)
	}
}

func TestOutcomeFatal(t *testing.T) {
	for _, o := range Outcomes {
		want := o == LineAtEnd || o == Disconnected || o == TackleBroken
		if o.Fatal() != want {
			t.Errorf("%v.Fatal() = %v", o, o.Fatal())
		}
		if o.String() == "unknown" {
			t.Errorf("outcome %d has no name", o)
		}
	}
}
