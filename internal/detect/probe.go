// Package detect - probe.go
//
// This file implements the Detector over single screen pixels.
//
// Each named query maps to one configured probe (config.Probe): a pixel
// position, a reference color and a per-channel tolerance. A query is true
// when the pixel under the probe matches. Bar readings (stamina, hunger,
// comfort) scan a horizontal run of Width pixels and report the matching
// fraction. Favourite slots are found by scanning a row and grouping matching
// pixels into runs, one run per slot.
//
// Missing probes read as the healthy answer: false for fault and event
// queries, true for the bait and dry mix checks, a full bar for stats. They
// are reported once at construction, so a partial probe set still runs.
package detect

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/go-vgo/robotgo"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
)

// Probe names as used in the config file.
const (
	ProbeTackleReady       = "tackle_ready"
	ProbeFishHooked        = "fish_hooked"
	ProbeFishCaptured      = "fish_captured"
	ProbeRetrievalFinished = "retrieval_finished"
	ProbeBottomReached     = "bottom_reached"
	ProbeFloatBiting       = "float_biting"
	ProbeLineAtEnd         = "line_at_end"
	ProbeLineSnagged       = "line_snagged"
	ProbeLureBroken        = "lure_broken"
	ProbeTackleBroken      = "tackle_broken"
	ProbeBaitChosen        = "bait_chosen"
	ProbeDryMixChosen      = "dry_mix_chosen"
	ProbeDisconnected      = "disconnected"
	ProbeTicketExpired     = "ticket_expired"
	ProbeStuckAtCasting    = "stuck_at_casting"
	ProbeTensionHigh       = "tension_high"
	ProbeReelBurning       = "reel_burning"
	ProbeFishTagged        = "fish_tagged"
	ProbeKeepnetFull       = "keepnet_full"
	ProbeGiftReceived      = "gift_received"
	ProbeCardReceived      = "card_received"
	ProbeStamina           = "stamina"
	ProbeHunger            = "hunger"
	ProbeComfort           = "comfort"
	ProbeLureWear          = "lure_wear" // X/Y are offsets from a favourite slot
)

// FavoriteProbe returns the probe name of the favourite row for kind.
func FavoriteProbe(kind ItemKind) string {
	return "favorite_" + string(kind)
}

// TicketProbe returns the probe name of the ticket button for a duration.
func TicketProbe(hours int) string {
	return "ticket_" + strconv.Itoa(hours)
}

// PixelReader returns the hex color of the screen pixel at (x, y).
type PixelReader func(x, y int) string

// RobotPixels reads the screen through robotgo.
func RobotPixels(x, y int) string {
	return robotgo.GetPixelColor(x, y)
}

type probe struct {
	config.Probe
	color Color
}

// ProbeDetector answers Detector queries from configured pixel probes.
type ProbeDetector struct {
	probes map[string]probe
	read   PixelReader
	log    *slog.Logger
}

var _ Detector = (*ProbeDetector)(nil)

// NewProbeDetector parses the probe table. An invalid color is an error.
func NewProbeDetector(probes map[string]config.Probe, read PixelReader, log *slog.Logger) (*ProbeDetector, error) {
	d := &ProbeDetector{
		probes: make(map[string]probe, len(probes)),
		read:   read,
		log:    log,
	}
	for name, p := range probes {
		c, err := ParseColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", name, err)
		}
		d.probes[name] = probe{Probe: p, color: c}
	}

	var missing []string
	for _, name := range []string{
		ProbeTackleReady, ProbeFishHooked, ProbeFishCaptured, ProbeRetrievalFinished,
		ProbeLineAtEnd, ProbeLineSnagged, ProbeLureBroken, ProbeTackleBroken,
		ProbeDisconnected, ProbeKeepnetFull, ProbeBaitChosen,
	} {
		if _, ok := d.probes[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		log.Warn("probes not configured, queries report no fault", "probes", missing)
	}
	return d, nil
}

func (d *ProbeDetector) pixel(x, y int) (Color, bool) {
	c, err := ParseColor(d.read(x, y))
	if err != nil {
		d.log.Debug("pixel read failed", "x", x, "y", y, "error", err)
		return Color{}, false
	}
	return c, true
}

func (d *ProbeDetector) match(name string) bool {
	return d.matchOr(name, false)
}

// matchOr is match with the answer for an unconfigured probe.
func (d *ProbeDetector) matchOr(name string, missing bool) bool {
	p, ok := d.probes[name]
	if !ok {
		return missing
	}
	c, ok := d.pixel(p.X, p.Y)
	return ok && c.Matches(p.color, p.Tolerance)
}

// fraction returns the share of matching pixels across the probe's width.
// An unconfigured bar reads full.
func (d *ProbeDetector) fraction(name string) float64 {
	p, ok := d.probes[name]
	if !ok || p.Width <= 0 {
		return 1
	}
	hits := 0
	for x := p.X; x < p.X+p.Width; x++ {
		if c, ok := d.pixel(x, p.Y); ok && c.Matches(p.color, p.Tolerance) {
			hits++
		}
	}
	return float64(hits) / float64(p.Width)
}

func (d *ProbeDetector) IsTackleReady() bool       { return d.match(ProbeTackleReady) }
func (d *ProbeDetector) IsFishHooked() bool        { return d.match(ProbeFishHooked) }
func (d *ProbeDetector) IsFishCaptured() bool      { return d.match(ProbeFishCaptured) }
func (d *ProbeDetector) IsRetrievalFinished() bool { return d.match(ProbeRetrievalFinished) }
func (d *ProbeDetector) IsBottomReached() bool     { return d.match(ProbeBottomReached) }
func (d *ProbeDetector) IsFloatBiting() bool       { return d.match(ProbeFloatBiting) }
func (d *ProbeDetector) IsLineAtEnd() bool         { return d.match(ProbeLineAtEnd) }
func (d *ProbeDetector) IsLineSnagged() bool       { return d.match(ProbeLineSnagged) }
func (d *ProbeDetector) IsLureBroken() bool        { return d.match(ProbeLureBroken) }
func (d *ProbeDetector) IsTackleBroken() bool      { return d.match(ProbeTackleBroken) }
func (d *ProbeDetector) IsBaitChosen() bool        { return d.matchOr(ProbeBaitChosen, true) }
func (d *ProbeDetector) IsDryMixChosen() bool      { return d.matchOr(ProbeDryMixChosen, true) }
func (d *ProbeDetector) IsDisconnected() bool      { return d.match(ProbeDisconnected) }
func (d *ProbeDetector) IsTicketExpired() bool     { return d.match(ProbeTicketExpired) }
func (d *ProbeDetector) IsStuckAtCasting() bool    { return d.match(ProbeStuckAtCasting) }
func (d *ProbeDetector) IsTensionHigh() bool       { return d.match(ProbeTensionHigh) }
func (d *ProbeDetector) IsReelBurning() bool       { return d.match(ProbeReelBurning) }
func (d *ProbeDetector) IsFishTagged() bool        { return d.match(ProbeFishTagged) }
func (d *ProbeDetector) IsKeepnetFull() bool       { return d.match(ProbeKeepnetFull) }
func (d *ProbeDetector) IsGiftReceived() bool      { return d.match(ProbeGiftReceived) }
func (d *ProbeDetector) IsCardReceived() bool      { return d.match(ProbeCardReceived) }

func (d *ProbeDetector) Stamina() float64 { return d.fraction(ProbeStamina) }
func (d *ProbeDetector) Hunger() float64  { return d.fraction(ProbeHunger) }
func (d *ProbeDetector) Comfort() float64 { return d.fraction(ProbeComfort) }

// FavoriteItemPositions scans the favourite row of kind and returns the
// centre of every run of matching pixels, left to right.
func (d *ProbeDetector) FavoriteItemPositions(kind ItemKind) []Point {
	p, ok := d.probes[FavoriteProbe(kind)]
	if !ok || p.Width <= 0 {
		return nil
	}

	var points []Point
	start := -1
	flush := func(end int) {
		if start >= 0 {
			points = append(points, Point{X: (start + end) / 2, Y: p.Y})
			start = -1
		}
	}
	for x := p.X; x < p.X+p.Width; x++ {
		c, ok := d.pixel(x, p.Y)
		if ok && c.Matches(p.color, p.Tolerance) {
			if start < 0 {
				start = x
			}
			continue
		}
		flush(x - 1)
	}
	flush(p.X + p.Width - 1)
	return points
}

// IsLureBrokenAt reads the wear marker of the favourite slot at pos.
func (d *ProbeDetector) IsLureBrokenAt(pos Point) bool {
	p, ok := d.probes[ProbeLureWear]
	if !ok {
		return false
	}
	c, ok := d.pixel(pos.X+p.X, pos.Y+p.Y)
	return ok && c.Matches(p.color, p.Tolerance)
}

// TicketPosition returns the renewal button for a ticket of the given hours.
func (d *ProbeDetector) TicketPosition(hours int) (Point, bool) {
	p, ok := d.probes[TicketProbe(hours)]
	if !ok {
		return Point{}, false
	}
	return Point{X: p.X, Y: p.Y}, true
}
