package input_test

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock/clocktest"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input/inputtest"
)

func newCoordinator() (*input.Coordinator, *inputtest.Recorder) {
	rec := &inputtest.Recorder{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return input.NewCoordinator(rec, clocktest.New(), log), rec
}

func TestHoldReleaseIsScoped(t *testing.T) {
	c, rec := newCoordinator()

	func() {
		release := c.HoldMouse(input.Left)
		defer release()
		if got := c.Held(); !reflect.DeepEqual(got, []string{"mouse:left"}) {
			t.Fatalf("held = %v", got)
		}
	}()

	if got := c.Held(); len(got) != 0 {
		t.Fatalf("expected nothing held after scope exit, got %v", got)
	}
	want := []string{"down:left", "up:left"}
	if got := rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestNestedHoldsPressOnce(t *testing.T) {
	c, rec := newCoordinator()

	outer := c.HoldKey("shift")
	inner := c.HoldKey("shift")
	inner()
	inner() // idempotent
	if rec.Count("keyup:shift") != 0 {
		t.Fatal("inner release must not lift a key the outer scope still holds")
	}
	outer()

	want := []string{"keydown:shift", "keyup:shift"}
	if got := rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestReleaseAllDropsOutstandingGuards(t *testing.T) {
	c, rec := newCoordinator()

	releaseMouse := c.HoldMouse(input.Right)
	releaseKey := c.HoldKey("w")
	c.ReleaseAll()

	if got := c.Held(); len(got) != 0 {
		t.Fatalf("held after ReleaseAll = %v", got)
	}

	// A new hold after ReleaseAll must survive the stale guards.
	releaseAgain := c.HoldMouse(input.Right)
	releaseMouse()
	releaseKey()
	if got := c.Held(); !reflect.DeepEqual(got, []string{"mouse:right"}) {
		t.Fatalf("stale guard released a fresh hold: %v", got)
	}
	releaseAgain()

	if rec.Count("up:right") != 2 || rec.Count("keyup:w") != 1 {
		t.Fatalf("unexpected events %v", rec.Events())
	}
}

func TestHoldForReleasesOnCancel(t *testing.T) {
	c, rec := newCoordinator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := c.HoldMouseFor(ctx, input.Left, time.Second); err == nil {
		t.Fatal("expected cancellation error")
	}
	want := []string{"down:left", "up:left"}
	if got := rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}

func TestPressSkipsUnboundKey(t *testing.T) {
	c, rec := newCoordinator()
	c.Press("")
	c.Press("space", "ctrl")
	want := []string{"press:space+ctrl"}
	if got := rec.Events(); !reflect.DeepEqual(got, want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
}
