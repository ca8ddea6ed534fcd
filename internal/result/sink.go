// Package result - sink.go
//
// This file implements the result sinks handed the final snapshot.
//
// File Format:
// JSON with 2-space indentation, or YAML, chosen by ResultConfig.Format. The
// file is created or truncated on every save.
package result

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Sink receives the final snapshot of a session.
type Sink interface {
	Send(s Snapshot) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(s Snapshot) error

func (f SinkFunc) Send(s Snapshot) error { return f(s) }

// LogSink writes the ordered fields to a logger.
type LogSink struct {
	Log *slog.Logger
}

func (l LogSink) Send(s Snapshot) error {
	args := make([]any, 0, 2*len(s.Fields()))
	for _, f := range s.Fields() {
		args = append(args, f.Name, f.Value)
	}
	l.Log.Info("session result", args...)
	return nil
}

// FileSink saves the snapshot to Path in Format ("json" or "yaml").
type FileSink struct {
	Path   string
	Format string
}

func (f FileSink) Send(s Snapshot) error {
	return Save(f.Path, f.Format, s)
}

// Save writes s to path.
func Save(path, format string, s Snapshot) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	defer file.Close()

	if err := Encode(file, format, s); err != nil {
		return fmt.Errorf("save result %s: %w", path, err)
	}
	return nil
}

// Encode writes s to w in format.
func Encode(w io.Writer, format string, s Snapshot) error {
	switch format {
	case "", "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(s); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown result format %q", format)
	}
}

// Load reads a snapshot saved by Save.
func Load(path, format string) (Snapshot, error) {
	var s Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("load result: %w", err)
	}
	switch format {
	case "", "json":
		err = json.Unmarshal(data, &s)
	case "yaml":
		err = yaml.Unmarshal(data, &s)
	default:
		err = fmt.Errorf("unknown result format %q", format)
	}
	if err != nil {
		return s, fmt.Errorf("load result %s: %w", path, err)
	}
	return s, nil
}
