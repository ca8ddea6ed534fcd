// Package logger - logger.go
//
// This file implements the session logger.
//
// Logging System:
//   - Leveled structured logging through log/slog
//   - Four levels: DEBUG, INFO, WARN, ERROR
//   - Text lines with millisecond timestamps, teed to the console and a log file
//   - The log file is truncated (cleared) on each startup so it only ever
//     holds the current session
//
// Level Guide:
//   - DEBUG: stage changes, sensor readings, brake regulator transitions
//   - INFO: casts, catches, consumables, recoveries
//   - WARN: recoverable faults (snag, lure broken, input failures)
//   - ERROR: fatal faults and the termination reason
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dereklee0310/RussianFishing4Script-sub000/internal/config"
)

// Logger owns the session log file.
type Logger struct {
	*slog.Logger
	file  *os.File
	level *slog.LevelVar
}

// New creates a logger writing to console and, when cfg.File is set, to that
// file truncated.
func New(cfg config.LogConfig, console io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	level := new(slog.LevelVar)
	level.Set(lvl)

	l := &Logger{level: level}
	w := console
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		if console != nil {
			w = io.MultiWriter(console, file)
		} else {
			w = file
		}
	}
	if w == nil {
		w = io.Discard
	}

	l.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: shortTime,
	}))
	l.Debug("logger initialized", "file", cfg.File, "level", lvl)
	return l, nil
}

// SetLevel changes the level at runtime.
func (l *Logger) SetLevel(lvl slog.Level) {
	l.level.Set(lvl)
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.Debug("logger closing")
	return l.file.Close()
}

// ParseLevel parses debug, info, warn or error; empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

func shortTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.String(slog.TimeKey, a.Value.Time().Format("15:04:05.000"))
	}
	return a
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
