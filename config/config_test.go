package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xtxerr/pelorus/history"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Defaults.MaxPoints != history.DefaultMaxPoints {
		t.Errorf("expected default max_points %d, got %d",
			history.DefaultMaxPoints, cfg.Defaults.MaxPoints)
	}
	if time.Duration(cfg.Defaults.RecentWindow) != history.DefaultRecentWindow {
		t.Errorf("expected default recent_window %s, got %s",
			history.DefaultRecentWindow, time.Duration(cfg.Defaults.RecentWindow))
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
defaults:
  max_points: 256
  recent_window: 45s
metrics:
  battery.voltage:
    max_points: 1024
  gps.fixStatus:
    recent_window: 90000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Defaults.MaxPoints != 256 {
		t.Errorf("expected max_points=256, got %d", cfg.Defaults.MaxPoints)
	}
	if time.Duration(cfg.Defaults.RecentWindow) != 45*time.Second {
		t.Errorf("expected recent_window=45s, got %s", time.Duration(cfg.Defaults.RecentWindow))
	}

	// Integer durations are milliseconds.
	if got := time.Duration(cfg.Metrics["gps.fixStatus"].RecentWindow); got != 90*time.Second {
		t.Errorf("expected 90s from integer milliseconds, got %s", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	path := writeConfig(t, `
defaults:
  recent_window: soon
`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "non-positive max_points",
			mutate: func(c *Config) { c.Defaults.MaxPoints = 0 },
		},
		{
			name:   "non-positive recent_window",
			mutate: func(c *Config) { c.Defaults.RecentWindow = 0 },
		},
		{
			name: "invalid metric key",
			mutate: func(c *Config) {
				c.Metrics = map[string]Profile{"bad/key": {}}
			},
		},
		{
			name: "negative override",
			mutate: func(c *Config) {
				c.Metrics = map[string]Profile{"depth": {MaxPoints: -1}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestProfileFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defaults = Profile{MaxPoints: 200, RecentWindow: Duration(time.Minute)}
	cfg.Metrics = map[string]Profile{
		"battery.voltage": {MaxPoints: 1000},
		"gps.fixStatus":   {RecentWindow: Duration(5 * time.Minute)},
	}

	tests := []struct {
		metric     string
		wantPoints int
		wantWindow time.Duration
	}{
		{metric: "battery.voltage", wantPoints: 1000, wantWindow: time.Minute},
		{metric: "gps.fixStatus", wantPoints: 200, wantWindow: 5 * time.Minute},
		{metric: "unknown.metric", wantPoints: 200, wantWindow: time.Minute},
	}

	for _, tt := range tests {
		p := cfg.ProfileFor(tt.metric)
		if p.MaxPoints != tt.wantPoints {
			t.Errorf("%s: expected max_points=%d, got %d", tt.metric, tt.wantPoints, p.MaxPoints)
		}
		if time.Duration(p.RecentWindow) != tt.wantWindow {
			t.Errorf("%s: expected recent_window=%s, got %s",
				tt.metric, tt.wantWindow, time.Duration(p.RecentWindow))
		}
	}
}

func TestProfileOptions(t *testing.T) {
	p := Profile{MaxPoints: 64, RecentWindow: Duration(30 * time.Second)}
	opts := p.Options()

	if opts.MaxPoints != 64 {
		t.Errorf("expected MaxPoints=64, got %d", opts.MaxPoints)
	}
	if opts.RecentWindow != 30*time.Second {
		t.Errorf("expected RecentWindow=30s, got %s", opts.RecentWindow)
	}
}
