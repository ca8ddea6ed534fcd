// Package config - load.go
//
// Loading merges a YAML file over Default(): keys missing from the file keep
// their default value, profiles named in the file replace the default profile
// of the same name. A missing file is not an error, the defaults are used
// as-is, the same way the bot always started with a usable configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when the selected profile does not exist.
var ErrUnknownProfile = errors.New("unknown profile")

// ErrUnknownMode is returned when a profile names an unsupported technique.
var ErrUnknownMode = errors.New("unknown mode")

// Load reads path and merges it over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := Parse(cfg, data); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data into cfg and validates the result.
func Parse(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// Validate checks the ranges the session relies on.
func (c *Config) Validate() error {
	if len(c.Profiles) == 0 {
		return errors.New("no profiles configured")
	}
	for name, p := range c.Profiles {
		if _, err := ParseMode(string(p.Mode)); err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		if p.CastPower < 1 || p.CastPower > 5 {
			return fmt.Errorf("profile %s: cast_power %d out of range [1, 5]", name, p.CastPower)
		}
		if p.Mode == ModeBottom && len(p.Rods) == 0 {
			return fmt.Errorf("profile %s: bottom mode needs at least one rod key", name)
		}
		if p.Mode != ModeBottom && len(p.Rods) > 1 {
			return fmt.Errorf("profile %s: only bottom mode rotates rods, %s takes at most one rod key", name, p.Mode)
		}
		switch p.StageTimeoutAction {
		case "", AdjustDepth, Recast:
		default:
			return fmt.Errorf("profile %s: stage_timeout_action %q must be adjust or recast", name, p.StageTimeoutAction)
		}
	}
	if c.Brake.Max <= 0 {
		return fmt.Errorf("brake max %d must be positive", c.Brake.Max)
	}
	if c.Brake.Initial < 0 || c.Brake.Initial > c.Brake.Max {
		return fmt.Errorf("brake initial %d out of range [0, %d]", c.Brake.Initial, c.Brake.Max)
	}
	switch c.Keepnet.FullAction {
	case KeepnetQuit, KeepnetAlarm:
	default:
		return fmt.Errorf("keepnet full_action %q must be quit or alarm", c.Keepnet.FullAction)
	}
	switch c.Result.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("result format %q must be json or yaml", c.Result.Format)
	}
	return nil
}

// Selected resolves the profile named by c.Profile.
func (c *Config) Selected() (Profile, error) {
	if p, ok := c.Profiles[c.Profile]; ok {
		return p, nil
	}
	// Profile names are case-insensitive on the command line.
	for name, p := range c.Profiles {
		if strings.EqualFold(name, c.Profile) {
			return p, nil
		}
	}

	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	if s := suggest(c.Profile, names); s != "" {
		return Profile{}, fmt.Errorf("%w %q, did you mean %q?", ErrUnknownProfile, c.Profile, s)
	}
	return Profile{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownProfile, c.Profile, strings.Join(names, ", "))
}

// ParseMode maps a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	names := make([]string, 0, len(Modes))
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
		names = append(names, string(m))
	}
	if sug := suggest(s, names); sug != "" {
		return "", fmt.Errorf("%w %q, did you mean %q?", ErrUnknownMode, s, sug)
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// suggest returns the closest candidate within a small edit distance.
func suggest(input string, candidates []string) string {
	input = strings.ToLower(input)
	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(input, strings.ToLower(cand))
		if dist > suggestLimit(len(cand)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best
}

func suggestLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 8:
		return 2
	default:
		return 3
	}
}
