// Package clock - clock.go
//
// This file provides the time source shared by every blocking loop in the bot.
//
// All waiting in the session is sleep-polling: a stage loop checks its sensors,
// sleeps a fixed delay and re-checks its deadline. Routing both the "now"
// reading and the sleep through one Clock lets tests drive a whole session on
// a fake timeline, and lets a cancelled context interrupt any wait.
package clock

import (
	"context"
	"time"
)

// Clock is a monotonic time source with a cancellable sleep.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

// Real returns the wall clock.
func Real() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
