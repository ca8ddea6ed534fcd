// Package input - robot.go
//
// Robot injects native keyboard and mouse events through robotgo.
//
// robotgo talks to the OS input queue directly, so the game window must have
// focus; window discovery is left to the user. All calls are synchronous.
package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"
)

// Robot is the robotgo-backed Controller.
type Robot struct{}

// NewRobot creates a robotgo controller.
func NewRobot() *Robot {
	// robotgo sleeps after every mouse/key event by default; pacing is ours.
	robotgo.MouseSleep = 0
	robotgo.KeySleep = 0
	return &Robot{}
}

func (r *Robot) Press(key string, modifiers ...string) error {
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = m
	}
	if err := robotgo.KeyTap(key, args...); err != nil {
		return fmt.Errorf("key tap %s: %w", key, err)
	}
	return nil
}

func (r *Robot) KeyDown(key string) error {
	if err := robotgo.KeyToggle(key, "down"); err != nil {
		return fmt.Errorf("key down %s: %w", key, err)
	}
	return nil
}

func (r *Robot) KeyUp(key string) error {
	if err := robotgo.KeyToggle(key, "up"); err != nil {
		return fmt.Errorf("key up %s: %w", key, err)
	}
	return nil
}

func (r *Robot) MouseDown(b Button) error {
	if err := robotgo.Toggle(string(b), "down"); err != nil {
		return fmt.Errorf("mouse down %s: %w", b, err)
	}
	return nil
}

func (r *Robot) MouseUp(b Button) error {
	if err := robotgo.Toggle(string(b), "up"); err != nil {
		return fmt.Errorf("mouse up %s: %w", b, err)
	}
	return nil
}

func (r *Robot) Click(b Button, double bool) error {
	robotgo.Click(string(b), double)
	return nil
}

func (r *Robot) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (r *Robot) MoveBy(dx, dy int) error {
	robotgo.MoveRelative(dx, dy)
	return nil
}

func (r *Robot) Scroll(notches int) error {
	switch {
	case notches > 0:
		robotgo.ScrollDir(notches, "up")
	case notches < 0:
		robotgo.ScrollDir(-notches, "down")
	}
	return nil
}
