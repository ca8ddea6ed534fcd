// Package input - input.go
//
// This file defines the input actuator boundary of the bot.
//
// Controller is the low-level contract: every call injects one keyboard or
// mouse event and returns only once the event has been delivered. Robot
// (robot.go) implements it with robotgo for the native game client;
// inputtest.Recorder implements it for tests.
//
// Control Scheme (default bindings, see config.KeyConfig):
//   - Left mouse: cast / reel
//   - Right mouse: lift rod
//   - Shift: power cast, accelerated retrieve
//   - Scroll wheel: friction brake
//   - 1-3: rod slots, 0: put rod away
//   - F1-F5: tea, coffee, food, alcohol, shovel
package input

// Button is a mouse button name as understood by the injector.
type Button string

const (
	Left  Button = "left"
	Right Button = "right"
)

// Controller injects input events.
type Controller interface {
	// Press taps key while the modifiers are held.
	Press(key string, modifiers ...string) error
	KeyDown(key string) error
	KeyUp(key string) error
	MouseDown(b Button) error
	MouseUp(b Button) error
	Click(b Button, double bool) error
	MoveTo(x, y int) error
	MoveBy(dx, dy int) error
	// Scroll turns the wheel; positive notches scroll up.
	Scroll(notches int) error
}

// Scroller is the part of Controller the friction brake needs.
type Scroller interface {
	Scroll(notches int) error
}
