// Package result - result.go
//
// This file implements the session result: append-only counters accumulated
// by the player and frozen into an immutable Snapshot on termination.
//
// Thread Safety:
// Result is written by the session goroutine and read by the status server,
// so every access goes through mu.
package result

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Counter names a consumable or event counter.
type Counter int

const (
	Tea Counter = iota
	Coffee
	Alcohol
	Food
	Harvest
	LureChange
	Gift
	Card
	Ticket
)

// String returns the field name of the counter
func (c Counter) String() string {
	switch c {
	case Tea:
		return "tea"
	case Coffee:
		return "coffee"
	case Alcohol:
		return "alcohol"
	case Food:
		return "food"
	case Harvest:
		return "harvests"
	case LureChange:
		return "lure_changes"
	case Gift:
		return "gifts"
	case Card:
		return "cards"
	case Ticket:
		return "tickets"
	default:
		return "unknown"
	}
}

// Result accumulates session counters.
type Result struct {
	mu sync.RWMutex

	id      uuid.UUID
	mode    string
	profile string
	start   time.Time

	total    int
	kept     int
	tagged   int
	released int
	counters map[Counter]int

	frozen bool
}

// New starts an empty result with a fresh session id.
func New(mode, profile string, start time.Time) *Result {
	return &Result{
		id:       uuid.New(),
		mode:     mode,
		profile:  profile,
		start:    start,
		counters: make(map[Counter]int),
	}
}

// ID returns the session id.
func (r *Result) ID() uuid.UUID {
	return r.id
}

// AddFish records a landed fish.
func (r *Result) AddFish(kept, tagged bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return
	}
	r.total++
	if kept {
		r.kept++
	} else {
		r.released++
	}
	if tagged {
		r.tagged++
	}
}

// Add increments a counter.
func (r *Result) Add(c Counter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return
	}
	r.counters[c]++
}

// Count returns a counter value.
func (r *Result) Count(c Counter) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.counters[c]
}

// Total returns the number of fish landed.
func (r *Result) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Kept returns the number of fish put in the keepnet.
func (r *Result) Kept() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kept
}

// Peek returns a snapshot of the running session without freezing it.
func (r *Result) Peek(now time.Time) Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot("", now)
}

// Freeze stops accumulation and returns the final snapshot. Later calls
// return the same counters with the new reason and end time.
func (r *Result) Freeze(reason string, end time.Time) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
	return r.snapshot(reason, end)
}

// Frozen reports whether Freeze was called.
func (r *Result) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

func (r *Result) snapshot(reason string, end time.Time) Snapshot {
	elapsed := end.Sub(r.start)
	perHour := 0.0
	if h := elapsed.Hours(); h > 0 {
		perHour = float64(r.total) / h
	}
	return Snapshot{
		SessionID:   r.id.String(),
		Mode:        r.mode,
		Profile:     r.profile,
		Start:       r.start,
		End:         end,
		Duration:    FormatDuration(elapsed),
		QuitReason:  reason,
		Total:       r.total,
		Kept:        r.kept,
		Released:    r.released,
		Tagged:      r.tagged,
		FishPerHour: perHour,
		Tea:         r.counters[Tea],
		Coffee:      r.counters[Coffee],
		Alcohol:     r.counters[Alcohol],
		Food:        r.counters[Food],
		Harvests:    r.counters[Harvest],
		LureChanges: r.counters[LureChange],
		Gifts:       r.counters[Gift],
		Cards:       r.counters[Card],
		Tickets:     r.counters[Ticket],
	}
}

// Snapshot is an immutable view of a session result.
type Snapshot struct {
	SessionID   string    `json:"session_id" yaml:"session_id"`
	Mode        string    `json:"mode" yaml:"mode"`
	Profile     string    `json:"profile" yaml:"profile"`
	Start       time.Time `json:"start" yaml:"start"`
	End         time.Time `json:"end" yaml:"end"`
	Duration    string    `json:"duration" yaml:"duration"`
	QuitReason  string    `json:"quit_reason,omitempty" yaml:"quit_reason,omitempty"`
	Total       int       `json:"total" yaml:"total"`
	Kept        int       `json:"kept" yaml:"kept"`
	Released    int       `json:"released" yaml:"released"`
	Tagged      int       `json:"tagged" yaml:"tagged"`
	FishPerHour float64   `json:"fish_per_hour" yaml:"fish_per_hour"`
	Tea         int       `json:"tea" yaml:"tea"`
	Coffee      int       `json:"coffee" yaml:"coffee"`
	Alcohol     int       `json:"alcohol" yaml:"alcohol"`
	Food        int       `json:"food" yaml:"food"`
	Harvests    int       `json:"harvests" yaml:"harvests"`
	LureChanges int       `json:"lure_changes" yaml:"lure_changes"`
	Gifts       int       `json:"gifts" yaml:"gifts"`
	Cards       int       `json:"cards" yaml:"cards"`
	Tickets     int       `json:"tickets" yaml:"tickets"`
}

// Field is one entry of the flat result mapping.
type Field struct {
	Name  string
	Value string
}

// Fields returns the snapshot as an ordered flat mapping, the form
// notification sinks render.
func (s Snapshot) Fields() []Field {
	itoa := strconv.Itoa
	return []Field{
		{"Session", s.SessionID},
		{"Mode", s.Mode},
		{"Profile", s.Profile},
		{"Quit reason", s.QuitReason},
		{"Start", s.Start.Format(time.DateTime)},
		{"End", s.End.Format(time.DateTime)},
		{"Running time", s.Duration},
		{"Total fish", itoa(s.Total)},
		{"Kept fish", itoa(s.Kept)},
		{"Released fish", itoa(s.Released)},
		{"Tagged fish", itoa(s.Tagged)},
		{"Fish per hour", FormatFloat(s.FishPerHour, 1)},
		{"Tea consumed", itoa(s.Tea)},
		{"Coffee consumed", itoa(s.Coffee)},
		{"Alcohol consumed", itoa(s.Alcohol)},
		{"Food consumed", itoa(s.Food)},
		{"Baits harvested", itoa(s.Harvests)},
		{"Lure changes", itoa(s.LureChanges)},
		{"Gifts received", itoa(s.Gifts)},
		{"Cards received", itoa(s.Cards)},
		{"Tickets renewed", itoa(s.Tickets)},
	}
}

// FormatDuration formats a duration as "1h 2m 3s".
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	} else if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}

// FormatFloat formats a float to specified decimal places
func FormatFloat(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}
