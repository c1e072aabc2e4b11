// Package config loads per-metric history profiles for pelorus.
//
// A profile controls how much trend history one sensor metric retains.
// Deployments ship a YAML file with dashboard-wide defaults plus per-metric
// overrides, e.g.:
//
//	defaults:
//	  max_points: 512
//	  recent_window: 60s
//	metrics:
//	  battery.voltage:
//	    max_points: 1024
//	  gps.fixStatus:
//	    recent_window: 5m
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/xtxerr/pelorus/history"
	"github.com/xtxerr/pelorus/internal/validation"
)

// ErrInvalidConfig indicates a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Duration wraps time.Duration so YAML accepts "45s"/"5m" strings as well
// as plain integers (interpreted as milliseconds).
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var ms int64
		if err := node.Decode(&ms); err != nil {
			return fmt.Errorf("invalid duration at line %d: %w", node.Line, err)
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration at line %d: %w", node.Line, err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Profile controls history retention for one metric series.
type Profile struct {
	// MaxPoints is the total point budget across both tiers.
	MaxPoints int `yaml:"max_points"`

	// RecentWindow is how long points are kept at full resolution.
	RecentWindow Duration `yaml:"recent_window"`
}

// Options converts the profile into buffer options.
func (p Profile) Options() history.Options {
	return history.Options{
		MaxPoints:    p.MaxPoints,
		RecentWindow: time.Duration(p.RecentWindow),
	}
}

// Config holds the dashboard-wide defaults and per-metric overrides.
type Config struct {
	// Defaults applies to every metric without an override.
	Defaults Profile `yaml:"defaults"`

	// Metrics maps metric keys (e.g., "battery.voltage") to overrides.
	// Zero-valued fields inherit from Defaults.
	Metrics map[string]Profile `yaml:"metrics"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Defaults: Profile{
			MaxPoints:    history.DefaultMaxPoints,
			RecentWindow: Duration(history.DefaultRecentWindow),
		},
	}
}

// Load reads and validates a configuration file. Missing fields fall back
// to DefaultConfig values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Defaults.MaxPoints <= 0 {
		return fmt.Errorf("defaults.max_points must be positive, got %d: %w",
			c.Defaults.MaxPoints, ErrInvalidConfig)
	}
	if c.Defaults.RecentWindow <= 0 {
		return fmt.Errorf("defaults.recent_window must be positive, got %s: %w",
			time.Duration(c.Defaults.RecentWindow), ErrInvalidConfig)
	}

	for key, p := range c.Metrics {
		if err := validation.ValidateMetricKey(key); err != nil {
			return fmt.Errorf("metric %q: %v: %w", key, err, ErrInvalidConfig)
		}
		if p.MaxPoints < 0 {
			return fmt.Errorf("metric %q: max_points cannot be negative: %w", key, ErrInvalidConfig)
		}
		if p.RecentWindow < 0 {
			return fmt.Errorf("metric %q: recent_window cannot be negative: %w", key, ErrInvalidConfig)
		}
	}

	return nil
}

// ProfileFor resolves the effective profile for a metric. Override fields
// left at zero inherit the defaults.
func (c *Config) ProfileFor(metric string) Profile {
	p := c.Defaults
	if o, ok := c.Metrics[metric]; ok {
		if o.MaxPoints > 0 {
			p.MaxPoints = o.MaxPoints
		}
		if o.RecentWindow > 0 {
			p.RecentWindow = o.RecentWindow
		}
	}
	return p
}
