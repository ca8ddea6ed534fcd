// Package detect - detect.go
//
// This file defines the detection oracle the session reads the game through.
//
// Every query is a cheap, idempotent, synchronous probe of the current screen.
// Readings may be stale by the time the caller acts on them; callers poll.
// ProbeDetector (probe.go) answers them from configured screen pixels;
// detecttest.Fake answers them from scripted sequences.
package detect

// Point is a screen coordinate.
type Point struct {
	X int
	Y int
}

// ItemKind names an inventory item class that can be equipped from favourites.
type ItemKind string

const (
	Lure   ItemKind = "lure"
	DryMix ItemKind = "dry_mix"
	Bait   ItemKind = "bait"
)

// Detector is the named query surface over the game screen.
type Detector interface {
	// Tackle state
	IsTackleReady() bool
	IsFishHooked() bool
	IsFishCaptured() bool
	IsRetrievalFinished() bool
	IsBottomReached() bool
	IsFloatBiting() bool

	// Faults
	IsLineAtEnd() bool
	IsLineSnagged() bool
	IsLureBroken() bool
	IsTackleBroken() bool
	IsBaitChosen() bool
	IsDryMixChosen() bool
	IsDisconnected() bool
	IsTicketExpired() bool
	IsStuckAtCasting() bool

	// Fight
	IsTensionHigh() bool
	IsReelBurning() bool

	// Catch and session
	IsFishTagged() bool
	IsKeepnetFull() bool
	IsGiftReceived() bool
	IsCardReceived() bool

	// Player stats as fractions in [0, 1].
	Stamina() float64
	Hunger() float64
	Comfort() float64

	// Inventory
	FavoriteItemPositions(kind ItemKind) []Point
	IsLureBrokenAt(p Point) bool
	TicketPosition(hours int) (Point, bool)
}

// HookSensor is the part of Detector the friction brake regulator reads.
type HookSensor interface {
	IsFishHooked() bool
	IsTensionHigh() bool
	IsReelBurning() bool
}
