// Package inputtest provides a recording Controller for tests.
package inputtest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
)

// Recorder records every injected event as a short string:
//
//	press:space  press:space+ctrl  keydown:shift  keyup:shift
//	down:left  up:left  click:left  dclick:left
//	move:10,20  moveby:-3,4  scroll:+1  scroll:-2
type Recorder struct {
	mu     sync.Mutex
	events []string
}

var _ input.Controller = (*Recorder)(nil)

func (r *Recorder) add(ev string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Press(key string, modifiers ...string) error {
	if len(modifiers) > 0 {
		return r.add("press:" + key + "+" + strings.Join(modifiers, "+"))
	}
	return r.add("press:" + key)
}

func (r *Recorder) KeyDown(key string) error { return r.add("keydown:" + key) }
func (r *Recorder) KeyUp(key string) error   { return r.add("keyup:" + key) }

func (r *Recorder) MouseDown(b input.Button) error { return r.add("down:" + string(b)) }
func (r *Recorder) MouseUp(b input.Button) error   { return r.add("up:" + string(b)) }

func (r *Recorder) Click(b input.Button, double bool) error {
	if double {
		return r.add("dclick:" + string(b))
	}
	return r.add("click:" + string(b))
}

func (r *Recorder) MoveTo(x, y int) error   { return r.add(fmt.Sprintf("move:%d,%d", x, y)) }
func (r *Recorder) MoveBy(dx, dy int) error { return r.add(fmt.Sprintf("moveby:%d,%d", dx, dy)) }

func (r *Recorder) Scroll(notches int) error {
	return r.add(fmt.Sprintf("scroll:%+d", notches))
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many recorded events equal ev.
func (r *Recorder) Count(ev string) int {
	n := 0
	for _, e := range r.Events() {
		if e == ev {
			n++
		}
	}
	return n
}

// Index returns the position of the first event equal to ev, or -1.
func (r *Recorder) Index(ev string) int {
	for i, e := range r.Events() {
		if e == ev {
			return i
		}
	}
	return -1
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
