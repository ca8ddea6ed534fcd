// Package main - tray.go
//
// This file implements the system tray of a running session.
// Uses getlantern/systray for cross-platform tray menu support.
//
// Menu Structure:
//
//	Angling Bot
//	├─ Profile: <name> (read-only)
//	├─ Status: fish | fish/h | running time (read-only, refreshed every second)
//	├─ Brake: value/max (read-only)
//	└─ Quit (user interrupt, the session terminates cleanly)
//
// Lifecycle:
//  1. NewTray: create the tray for a player
//  2. Run: start systray on the calling goroutine (blocking)
//  3. onReady: build the menu, start the refresh loop
//  4. Quit click or session end: systray.Quit, Run returns
package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getlantern/systray"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/player"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
)

const trayRefresh = time.Second

// Tray shows the session status and lets the user stop it.
type Tray struct {
	player   *player.Player
	cancel   context.CancelFunc
	finished <-chan struct{}
	log      *slog.Logger

	statusItem *systray.MenuItem
	brakeItem  *systray.MenuItem
}

// NewTray creates a tray for p. cancel interrupts the session; finished is
// closed once the session has terminated.
func NewTray(p *player.Player, cancel context.CancelFunc, finished <-chan struct{}, log *slog.Logger) *Tray {
	return &Tray{player: p, cancel: cancel, finished: finished, log: log}
}

// Run starts the tray and blocks until it exits.
func (t *Tray) Run() {
	t.log.Info("starting system tray")
	systray.Run(t.onReady, func() {
		t.log.Debug("system tray exited")
	})
}

func (t *Tray) onReady() {
	systray.SetTitle("Angling Bot")
	systray.SetTooltip("Angling Bot: " + t.player.Profile())

	profileItem := systray.AddMenuItem("Profile: "+t.player.Profile(), "Selected profile")
	profileItem.Disable()
	t.statusItem = systray.AddMenuItem("Status: Starting...", "Session status")
	t.statusItem.Disable()
	t.brakeItem = systray.AddMenuItem("Brake: -", "Friction brake")
	t.brakeItem.Disable()

	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Stop the session")

	go t.handleEvents(quitItem)
}

func (t *Tray) handleEvents(quitItem *systray.MenuItem) {
	ticker := time.NewTicker(trayRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.refresh()
		case <-quitItem.ClickedCh:
			t.log.Info("quit requested from the tray")
			quitItem.Disable()
			t.cancel()
		case <-t.finished:
			systray.Quit()
			return
		}
	}
}

func (t *Tray) refresh() {
	s := t.player.Snapshot()
	t.statusItem.SetTitle(fmt.Sprintf("Status: %d fish | %s/h | %s",
		s.Total, result.FormatFloat(s.FishPerHour, 1), s.Duration))
	b := t.player.Brake()
	t.brakeItem.SetTitle(fmt.Sprintf("Brake: %d/%d", b.Value(), b.Max()))
}
