package timer

import (
	"testing"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock/clocktest"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
)

func newTimer() (*Timer, *clocktest.Fake) {
	clk := clocktest.New()
	return New(clk, config.Default().Timer), clk
}

func TestCooldownsAreCheckAndStamp(t *testing.T) {
	cfg := config.Default().Timer
	tests := []struct {
		name     string
		interval time.Duration
		check    func(*Timer) bool
	}{
		{"tea", cfg.TeaInterval, (*Timer).IsTeaDrinkable},
		{"alcohol", cfg.AlcoholInterval, (*Timer).IsAlcoholDrinkable},
		{"lure change", cfg.LureChangeInterval, (*Timer).IsLureChangeable},
		{"spod rod", cfg.SpodRodInterval, (*Timer).IsSpodRodCastable},
		{"pause", cfg.PauseInterval, (*Timer).IsPausable},
		{"coffee", cfg.CoffeeInterval, (*Timer).IsCoffeeDrinkable},
		{"rare event", cfg.RareEventInterval, (*Timer).IsRareEventCheckable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, clk := newTimer()

			if !tt.check(tm) {
				t.Fatal("first call should fire")
			}
			if tt.check(tm) {
				t.Fatal("second call within the interval should not fire")
			}

			clk.Advance(tt.interval / 2)
			if tt.check(tm) {
				t.Fatal("call at half the interval should not fire")
			}

			clk.Advance(tt.interval/2 + time.Millisecond)
			if !tt.check(tm) {
				t.Fatal("call after the interval should fire")
			}
			if tt.check(tm) {
				t.Fatal("call right after firing should not fire again")
			}
		})
	}
}

func TestStageTimeout(t *testing.T) {
	tm, clk := newTimer()
	cfg := config.Default().Timer

	tm.ArmStageTimeout()
	if tm.IsStageTimeout(Pirk) {
		t.Fatal("freshly armed stage should not be timed out")
	}

	clk.Advance(cfg.PirkTimeout)
	if tm.IsStageTimeout(Pirk) {
		t.Fatal("timeout is strict: elapsed == timeout is not a timeout")
	}

	clk.Advance(time.Millisecond)
	if !tm.IsStageTimeout(Pirk) {
		t.Fatal("expected pirk timeout")
	}
	if tm.IsStageTimeout(Sink) {
		t.Fatal("sink timeout is longer than pirk timeout in defaults")
	}

	tm.ArmStageTimeout()
	if tm.IsStageTimeout(Pirk) {
		t.Fatal("re-arming should reset the anchor")
	}
}

func TestArmStageTimeoutRearmsStageRelativeCooldowns(t *testing.T) {
	tm, clk := newTimer()
	cfg := config.Default().Timer

	tm.ArmStageTimeout()
	if tm.IsCoffeeDrinkable() {
		t.Fatal("coffee should wait a full interval after the stage is armed")
	}
	if tm.IsRareEventCheckable() {
		t.Fatal("rare event check should wait a full interval after the stage is armed")
	}
	if !tm.IsTeaDrinkable() {
		t.Fatal("tea is not stage-relative and should still fire")
	}

	clk.Advance(cfg.CoffeeInterval + time.Millisecond)
	if !tm.IsCoffeeDrinkable() {
		t.Fatal("coffee should fire one interval after arming")
	}
}

func TestElapsed(t *testing.T) {
	tm, clk := newTimer()
	clk.Advance(3 * time.Second)
	tm.ArmStageTimeout()
	clk.Advance(2 * time.Second)

	if got := tm.StageElapsed(); got != 2*time.Second {
		t.Errorf("stage elapsed = %v, want 2s", got)
	}
	if got := tm.SessionElapsed(); got != 5*time.Second {
		t.Errorf("session elapsed = %v, want 5s", got)
	}
}
