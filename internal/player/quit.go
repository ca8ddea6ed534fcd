// Package player - quit.go
//
// This file implements session termination.
//
// Every exit of Run goes through terminate, in this order:
//  1. stop the friction brake regulator and wait for it
//  2. reset the brake to its initial value
//  3. release every held input, session latches included
//  4. disconnected sessions only: back out to the main menu
//  5. freeze the result with the quit reason and hand it to the sinks
//  6. optionally shut the machine down (fatal quits only)
package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/tackle"
)

// QuitError ends a session. Outcome is the tackle outcome that caused it, or
// Done when the cause is not a tackle condition.
type QuitError struct {
	Reason       string
	Outcome      tackle.Outcome
	Disconnected bool
	Err          error
}

func (e *QuitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quit: %s: %v", e.Reason, e.Err)
	}
	return "quit: " + e.Reason
}

func (e *QuitError) Unwrap() error {
	return e.Err
}

// Expected reports whether the session ended on a quit condition rather than
// on an unexpected error.
func (e *QuitError) Expected() bool {
	return e.Err == nil || errors.Is(e.Err, ErrNoRodAvailable)
}

func generalQuit(reason string, o tackle.Outcome) *QuitError {
	return &QuitError{Reason: reason, Outcome: o}
}

func disconnectedQuit() *QuitError {
	return &QuitError{Reason: "game disconnected", Outcome: tackle.Disconnected, Disconnected: true}
}

func quitWith(reason string, err error) *QuitError {
	return &QuitError{Reason: reason, Err: err}
}

const reasonInterrupt = "user interrupt"

func (p *Player) terminate(err error, stopRegulator func()) (result.Snapshot, error) {
	var quit *QuitError
	reason := reasonInterrupt
	switch {
	case errors.As(err, &quit):
		reason = quit.Reason
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
	default:
		quit = quitWith("unexpected error", err)
		reason = quit.Error()
	}

	stopRegulator()
	if p.cfg.Brake.Enabled {
		p.brake.Reset(p.cfg.Brake.Initial)
	}
	p.in.ReleaseAll()
	p.latches = nil

	if quit != nil && quit.Disconnected {
		p.log.Warn("disconnected, returning to main menu")
		p.in.Press(p.cfg.Keys.MainMenu)
		_ = p.wait(context.Background(), p.cfg.Tackle.SettleDelay)
	}

	snap := p.result.Freeze(reason, p.clock.Now())
	if quit != nil {
		p.log.Error("session terminated", "reason", reason, "outcome", quit.Outcome)
	} else {
		p.log.Info("session terminated", "reason", reason)
	}
	for _, sink := range p.sinks {
		if err := sink.Send(snap); err != nil {
			p.log.Error("result sink failed", "error", err)
		}
	}
	p.events.Publish(Event{Time: snap.End, Kind: EventQuit, Message: reason, Snapshot: &snap})

	if quit == nil {
		return snap, nil
	}
	if p.cfg.ShutdownOnExit && p.shutdown != nil {
		p.log.Warn("shutting down the computer")
		if err := p.shutdown(context.Background()); err != nil {
			p.log.Error("shutdown failed", "error", err)
		}
	}
	return snap, quit
}
