package detect

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGB color.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// ParseColor parses a 6-digit hex color, with or without a leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("parse color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Matches reports whether c is within tolerance of target on every channel.
func (c Color) Matches(target Color, tolerance uint8) bool {
	return abs(int(c.R)-int(target.R)) <= int(tolerance) &&
		abs(int(c.G)-int(target.G)) <= int(tolerance) &&
		abs(int(c.B)-int(target.B)) <= int(tolerance)
}

func (c Color) String() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
