// Package detecttest provides a scripted Detector for tests.
package detecttest

import (
	"sync"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
)

// Fake answers boolean queries from per-query scripts. Queries are named by
// the detect.Probe* constants. A script is consumed one value per call; once
// exhausted, or when none is set, the query returns its default.
//
// New sets bait/dry-mix chosen to true and every stat to full, so a fresh Fake
// describes a healthy, idle session.
type Fake struct {
	mu        sync.Mutex
	scripts   map[string][]bool
	defaults  map[string]bool
	funcs     map[string]func() bool
	calls     map[string]int
	stats     map[string]float64
	favorites map[detect.ItemKind][]detect.Point
	broken    map[detect.Point]bool
	tickets   map[int]detect.Point
}

var _ detect.Detector = (*Fake)(nil)

// New returns a Fake describing an idle session.
func New() *Fake {
	return &Fake{
		scripts: make(map[string][]bool),
		defaults: map[string]bool{
			detect.ProbeBaitChosen:   true,
			detect.ProbeDryMixChosen: true,
		},
		funcs: make(map[string]func() bool),
		calls: make(map[string]int),
		stats: map[string]float64{
			detect.ProbeStamina: 1,
			detect.ProbeHunger:  1,
			detect.ProbeComfort: 1,
		},
		favorites: make(map[detect.ItemKind][]detect.Point),
		broken:    make(map[detect.Point]bool),
		tickets:   make(map[int]detect.Point),
	}
}

// Script appends values to the script of query name.
func (f *Fake) Script(name string, seq ...bool) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scripts[name] = append(f.scripts[name], seq...)
	return f
}

// Set changes the default answer of query name.
func (f *Fake) Set(name string, v bool) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults[name] = v
	return f
}

// Func answers query name with fn once its script is exhausted.
func (f *Fake) Func(name string, fn func() bool) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.funcs[name] = fn
	return f
}

// SetStat sets a bar reading (detect.ProbeStamina, ProbeHunger, ProbeComfort).
func (f *Fake) SetStat(name string, v float64) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats[name] = v
	return f
}

// SetFavorites sets the favourite slots of kind.
func (f *Fake) SetFavorites(kind detect.ItemKind, points ...detect.Point) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.favorites[kind] = points
	return f
}

// SetBroken marks the lure at p as worn out.
func (f *Fake) SetBroken(p detect.Point) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.broken[p] = true
	return f
}

// SetTicket sets the renewal button for a ticket duration.
func (f *Fake) SetTicket(hours int, p detect.Point) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tickets[hours] = p
	return f
}

// Calls returns how many times query name was asked.
func (f *Fake) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *Fake) query(name string) bool {
	f.mu.Lock()
	f.calls[name]++
	if seq := f.scripts[name]; len(seq) > 0 {
		f.scripts[name] = seq[1:]
		f.mu.Unlock()
		return seq[0]
	}
	fn, v := f.funcs[name], f.defaults[name]
	f.mu.Unlock()
	if fn != nil {
		return fn()
	}
	return v
}

func (f *Fake) stat(name string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.stats[name]
}

func (f *Fake) IsTackleReady() bool       { return f.query(detect.ProbeTackleReady) }
func (f *Fake) IsFishHooked() bool        { return f.query(detect.ProbeFishHooked) }
func (f *Fake) IsFishCaptured() bool      { return f.query(detect.ProbeFishCaptured) }
func (f *Fake) IsRetrievalFinished() bool { return f.query(detect.ProbeRetrievalFinished) }
func (f *Fake) IsBottomReached() bool     { return f.query(detect.ProbeBottomReached) }
func (f *Fake) IsFloatBiting() bool       { return f.query(detect.ProbeFloatBiting) }
func (f *Fake) IsLineAtEnd() bool         { return f.query(detect.ProbeLineAtEnd) }
func (f *Fake) IsLineSnagged() bool       { return f.query(detect.ProbeLineSnagged) }
func (f *Fake) IsLureBroken() bool        { return f.query(detect.ProbeLureBroken) }
func (f *Fake) IsTackleBroken() bool      { return f.query(detect.ProbeTackleBroken) }
func (f *Fake) IsBaitChosen() bool        { return f.query(detect.ProbeBaitChosen) }
func (f *Fake) IsDryMixChosen() bool      { return f.query(detect.ProbeDryMixChosen) }
func (f *Fake) IsDisconnected() bool      { return f.query(detect.ProbeDisconnected) }
func (f *Fake) IsTicketExpired() bool     { return f.query(detect.ProbeTicketExpired) }
func (f *Fake) IsStuckAtCasting() bool    { return f.query(detect.ProbeStuckAtCasting) }
func (f *Fake) IsTensionHigh() bool       { return f.query(detect.ProbeTensionHigh) }
func (f *Fake) IsReelBurning() bool       { return f.query(detect.ProbeReelBurning) }
func (f *Fake) IsFishTagged() bool        { return f.query(detect.ProbeFishTagged) }
func (f *Fake) IsKeepnetFull() bool       { return f.query(detect.ProbeKeepnetFull) }
func (f *Fake) IsGiftReceived() bool      { return f.query(detect.ProbeGiftReceived) }
func (f *Fake) IsCardReceived() bool      { return f.query(detect.ProbeCardReceived) }

func (f *Fake) Stamina() float64 { return f.stat(detect.ProbeStamina) }
func (f *Fake) Hunger() float64  { return f.stat(detect.ProbeHunger) }
func (f *Fake) Comfort() float64 { return f.stat(detect.ProbeComfort) }

func (f *Fake) FavoriteItemPositions(kind detect.ItemKind) []detect.Point {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]detect.Point(nil), f.favorites[kind]...)
}

func (f *Fake) IsLureBrokenAt(p detect.Point) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.broken[p]
}

func (f *Fake) TicketPosition(hours int) (detect.Point, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.tickets[hours]
	return p, ok
}
