package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("hardcoded defaults invalid: %v", err)
	}
	if err := embeddedDefault().Validate(); err != nil {
		t.Fatalf("embedded defaults invalid: %v", err)
	}
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	if got, want := embeddedDefault(), DefaultRunnerConfig(); got != want {
		t.Errorf("embedded YAML drifted from DefaultRunnerConfig:\n got  %+v\n want %+v", got, want)
	}
}

func TestValidateRejectsLiveWindowLargerThanQueue(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Track.LiveRows = cfg.Track.Rows + 1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected live_rows > rows to be rejected")
	}
	if !strings.Contains(err.Error(), "live_rows") {
		t.Errorf("error should name live_rows, got %v", err)
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Track.Columns = 0
	cfg.Player.Friction = 1.5
	cfg.Survival.StallTime = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"track.columns", "player.friction", "survival.stall_time"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestLoadRunnerYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	doc := "track:\n  rows: 40\n  live_rows: 20\nplayer:\n  speed: 12\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Track.Rows != 40 || cfg.Track.LiveRows != 20 {
		t.Errorf("rows not overridden: %+v", cfg.Track)
	}
	if cfg.Player.Speed != 12 {
		t.Errorf("speed not overridden: %v", cfg.Player.Speed)
	}
	// Untouched keys keep their defaults
	if cfg.Track.Columns != 30 {
		t.Errorf("columns should keep default 30, got %d", cfg.Track.Columns)
	}
}

func TestLoadRunnerTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.toml")
	doc := "[track]\nrows = 60\nlive_rows = 30\ndistance_increase = 0.25\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Track.Rows != 60 || cfg.Track.LiveRows != 30 || cfg.Track.DistanceIncrease != 0.25 {
		t.Errorf("toml values not applied: %+v", cfg.Track)
	}
}

func TestLoadRunnerRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	if err := os.WriteFile(path, []byte("track:\n  rows: 10\n  live_rows: 50\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadRunner(path); err == nil {
		t.Fatal("expected invalid config to be rejected at load time")
	}
}

func TestLoadRunnerMissingFile(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestMarshalRoundTripsThroughLoader(t *testing.T) {
	for _, ext := range []string{".yaml", ".toml"} {
		t.Run(ext, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			cfg.Track.Rows = 277
			cfg.Track.Columns = 12

			data, err := Marshal(cfg, ext)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			path := filepath.Join(t.TempDir(), "runner"+ext)
			if err := os.WriteFile(path, data, 0o600); err != nil {
				t.Fatal(err)
			}
			loaded, err := LoadRunner(path)
			if err != nil {
				t.Fatalf("LoadRunner() failed: %v", err)
			}
			if loaded != cfg {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", loaded, cfg)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		increase float64
	}{
		{DifficultyEasy, 0.05},
		{DifficultyNormal, 0.1},
		{DifficultyHard, 0.2},
		{DifficultyFixed, 0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Track.DistanceIncrease != tc.increase {
				t.Errorf("distance_increase = %v, expected %v", cfg.Track.DistanceIncrease, tc.increase)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) mismatch")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}
