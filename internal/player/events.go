package player

import (
	"time"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
)

// EventKind classifies session events.
type EventKind string

const (
	EventStarted  EventKind = "started"
	EventFight    EventKind = "fight"
	EventCatch    EventKind = "catch"
	EventRecovery EventKind = "recovery"
	EventAlarm    EventKind = "alarm"
	EventQuit     EventKind = "quit"
)

// Event is a notable session moment, streamed to status clients.
type Event struct {
	Time     time.Time        `json:"time"`
	Kind     EventKind        `json:"kind"`
	Message  string           `json:"message"`
	Rod      string           `json:"rod,omitempty"`
	Snapshot *result.Snapshot `json:"snapshot,omitempty"`
}

// Publisher receives session events. Publish must not block.
type Publisher interface {
	Publish(e Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

func (p *Player) publish(kind EventKind, msg string) {
	snap := p.result.Peek(p.clock.Now())
	p.events.Publish(Event{
		Time:     snap.End,
		Kind:     kind,
		Message:  msg,
		Rod:      p.rod().Slot(),
		Snapshot: &snap,
	})
}
