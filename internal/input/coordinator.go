// Package input - coordinator.go
//
// This file implements the Coordinator that turns tackle and player commands
// into Controller calls.
//
// Key Responsibilities:
//   - Key and click primitives with a short settle delay after each event
//   - Scoped holds: HoldKey/HoldMouse return a release func meant for defer,
//     so a held button is released on every exit path of a stage
//   - The session latch: every held input is tracked until released, and
//     ReleaseAll drops all of them (stuck-at-casting recovery, termination)
//
// Error Handling:
// Injection errors are logged, not returned. A missed key press shows up in the
// next sensor reading and the stage loops deal with it there.
//
// Thread Safety:
// The held-input latch is mutex protected; everything else is meant for the
// foreground session goroutine.
package input

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock"
)

const settleDelay = 10 * time.Millisecond

// Coordinator composes Controller calls.
type Coordinator struct {
	ctl   Controller
	clock clock.Clock
	log   *slog.Logger
	rng   *rand.Rand

	mu    sync.Mutex
	held  map[string]int // input name -> active holds
	epoch int            // bumped by ReleaseAll
}

// NewCoordinator creates a coordinator on top of ctl.
func NewCoordinator(ctl Controller, clk clock.Clock, log *slog.Logger) *Coordinator {
	return &Coordinator{
		ctl:   ctl,
		clock: clk,
		log:   log,
		rng:   rand.New(rand.NewSource(clk.Now().UnixNano())),
		held:  make(map[string]int),
	}
}

// Controller returns the underlying controller.
func (c *Coordinator) Controller() Controller {
	return c.ctl
}

func (c *Coordinator) settle() {
	_ = c.clock.Sleep(context.Background(), settleDelay)
}

func (c *Coordinator) check(op string, err error) {
	if err != nil {
		c.log.Warn("input failed", "op", op, "error", err)
	}
}

// Press taps a key, optionally with modifiers held.
func (c *Coordinator) Press(key string, modifiers ...string) {
	if key == "" {
		return
	}
	c.check("press "+key, c.ctl.Press(key, modifiers...))
	c.settle()
}

// Click clicks a mouse button once.
func (c *Coordinator) Click(b Button) {
	c.check("click", c.ctl.Click(b, false))
	c.settle()
}

// DoubleClick double-clicks a mouse button.
func (c *Coordinator) DoubleClick(b Button) {
	c.check("double click", c.ctl.Click(b, true))
	c.settle()
}

// MoveTo moves the cursor to an absolute position.
func (c *Coordinator) MoveTo(x, y int) {
	c.check("move", c.ctl.MoveTo(x, y))
}

// Jitter moves the cursor by a random offset in [-r, r] on both axes.
func (c *Coordinator) Jitter(r int) {
	if r <= 0 {
		return
	}
	dx := c.rng.Intn(2*r+1) - r
	dy := c.rng.Intn(2*r+1) - r
	c.check("move by", c.ctl.MoveBy(dx, dy))
}

// Scroll turns the mouse wheel.
func (c *Coordinator) Scroll(notches int) {
	c.check("scroll", c.ctl.Scroll(notches))
}

// HoldKey presses key down and returns its release func.
func (c *Coordinator) HoldKey(key string) (release func()) {
	return c.hold("key:"+key,
		func() error { return c.ctl.KeyDown(key) },
		func() error { return c.ctl.KeyUp(key) })
}

// HoldMouse presses a mouse button down and returns its release func.
func (c *Coordinator) HoldMouse(b Button) (release func()) {
	return c.hold("mouse:"+string(b),
		func() error { return c.ctl.MouseDown(b) },
		func() error { return c.ctl.MouseUp(b) })
}

// HoldMouseFor holds b for d. The button is released even when ctx is cancelled.
func (c *Coordinator) HoldMouseFor(ctx context.Context, b Button, d time.Duration) error {
	release := c.HoldMouse(b)
	defer release()
	return c.clock.Sleep(ctx, d)
}

// HoldKeyFor holds key for d. The key is released even when ctx is cancelled.
func (c *Coordinator) HoldKeyFor(ctx context.Context, key string, d time.Duration) error {
	release := c.HoldKey(key)
	defer release()
	return c.clock.Sleep(ctx, d)
}

// hold presses an input unless it is already held and returns a release func
// that is safe to call more than once and after ReleaseAll.
func (c *Coordinator) hold(name string, down, up func() error) func() {
	c.mu.Lock()
	if c.held[name] == 0 {
		c.check(name+" down", down())
	}
	c.held[name]++
	epoch := c.epoch
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			n, ok := c.held[name]
			if !ok || epoch != c.epoch {
				return // dropped by ReleaseAll
			}
			if n <= 1 {
				delete(c.held, name)
				c.check(name+" up", up())
				return
			}
			c.held[name] = n - 1
		})
	}
}

// Held returns the inputs currently held, sorted.
func (c *Coordinator) Held() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.held))
	for name := range c.held {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReleaseAll releases every held input. Outstanding release funcs become no-ops.
func (c *Coordinator) ReleaseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.held))
	for name := range c.held {
		names = append(names, name)
	}
	sort.Strings(names)
	c.epoch++
	for _, name := range names {
		delete(c.held, name)
		kind, value, _ := strings.Cut(name, ":")
		var err error
		if kind == "mouse" {
			err = c.ctl.MouseUp(Button(value))
		} else {
			err = c.ctl.KeyUp(value)
		}
		c.check(name+" release", err)
	}
	if len(names) > 0 {
		c.log.Debug("released held inputs", "inputs", names)
	}
}
