package main

import (
	"testing"
)

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", "none"} {
		if _, err := newLogger(lvl); err != nil {
			t.Errorf("level %s: %v", lvl, err)
		}
	}
	if _, err := newLogger("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "earth-sun" {
		t.Errorf("expected default earth-sun, got %s", cfg.Name)
	}

	cfg, err = loadConfig([]string{"jupiter"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Bodies) != 5 {
		t.Errorf("expected 5 bodies, got %d", len(cfg.Bodies))
	}

	if _, err := loadConfig([]string{"andromeda"}); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{86400, "1d"},
		{365 * 86400, "365d"},
		{2 * 365.25 * 86400, "2y"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%g) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
