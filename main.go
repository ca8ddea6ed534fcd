// Package main - main.go
//
// Entry point of the angling bot.
//
// Startup Sequence:
//  1. Parse flags, load config.yaml over the defaults, apply -profile
//  2. Initialize the logger (Debug.log is truncated on every start)
//  3. Wire the robotgo input controller and the pixel probe detector
//  4. Build the Player with its result sinks and the status event hub
//  5. Run the session and the optional status server in one errgroup
//  6. Show the system tray on the main thread unless -headless
//
// Signals:
// SIGINT/SIGTERM and the tray Quit item cancel the session context. The
// Player treats that as a user interrupt: inputs are released, the brake is
// reset and the result is written before the process exits.
//
// Exit Codes:
//   - 0: session ended (user interrupt or a quit condition)
//   - 1: startup failed or the session hit an unexpected error
//   - 2: unhandled panic
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/clock"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/detect"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/input"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/logger"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/player"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/result"
	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/status"
)

var (
	configPath = flag.String("config", "config.yaml", "configuration file")
	profile    = flag.String("profile", "", "profile to run, overrides the config file")
	headless   = flag.Bool("headless", false, "run without the system tray")
	debug      = flag.Bool("debug", false, "log at debug level")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			os.Exit(2)
		}
	}()

	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *profile != "" {
		cfg.Profile = *profile
	}

	log, err := logger.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return 1
	}
	defer log.Close()
	if *debug {
		log.SetLevel(slog.LevelDebug)
	}
	log.Info("=== Angling bot started ===", "os", runtime.GOOS, "config", *configPath)
	defer log.Info("=== Angling bot shutdown ===")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	det, err := detect.NewProbeDetector(cfg.Probes, detect.RobotPixels, log.Logger)
	if err != nil {
		log.Error("detector setup failed", "error", err)
		return 1
	}

	clk := clock.Real()
	in := input.NewCoordinator(input.NewRobot(), clk, log.Logger)

	sinks := []result.Sink{result.LogSink{Log: log.Logger}}
	if cfg.Result.Path != "" {
		sinks = append(sinks, result.FileSink{Path: cfg.Result.Path, Format: cfg.Result.Format})
	}
	hub := status.NewHub(log.Logger)

	p, err := player.New(cfg, player.Deps{
		Clock:    clk,
		Detector: det,
		Input:    in,
		Log:      log.Logger,
		Sinks:    sinks,
		Events:   hub,
		Shutdown: shutdownComputer,
	})
	if err != nil {
		log.Error("session setup failed", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	finished := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	statusCtx, stopStatus := context.WithCancel(gctx)
	g.Go(func() error {
		defer close(finished)
		defer stopStatus()
		_, err := p.Run(gctx)
		return err
	})
	if cfg.Status.Addr != "" {
		srv := status.New(cfg.Status.Addr, p, hub, log.Logger)
		g.Go(func() error {
			return srv.Run(statusCtx)
		})
	} else {
		hub.Close()
	}

	if !*headless {
		NewTray(p, cancel, finished, log.Logger).Run()
	}

	err = g.Wait()
	var quit *player.QuitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &quit) && quit.Expected():
		return 0
	default:
		log.Error("session failed", "error", err)
		return 1
	}
}

// shutdownComputer powers the machine off after a fatal quit.
func shutdownComputer(ctx context.Context) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "shutdown", "/s", "/t", "5")
	default:
		cmd = exec.CommandContext(ctx, "shutdown", "-h", "+1")
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("shutdown: %w: %s", err, out)
	}
	return nil
}
