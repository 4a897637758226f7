package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg Match3Config
	if err := yaml.Unmarshal(GetDefaultYAML("match3"), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultMatch3Config() {
		t.Errorf("embedded defaults = %+v, want %+v", cfg, DefaultMatch3Config())
	}
}

func TestLoadMatch3CustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match3.yaml")
	data := []byte("board:\n  colors: 4\nrules:\n  hints: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadMatch3(path)
	if err != nil {
		t.Fatalf("LoadMatch3() failed: %v", err)
	}
	if cfg.Board.Colors != 4 || cfg.Rules.Hints != 0 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// Keys missing from the file keep their defaults
	if cfg.Board.Width != 8 || cfg.Scoring.BaseValue != 10 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadMatch3Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadMatch3(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board:\n  colors: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadMatch3(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Match3Config)
		ok     bool
	}{
		{"defaults", func(*Match3Config) {}, true},
		{"narrow board", func(c *Match3Config) { c.Board.Width = 2 }, false},
		{"two colors", func(c *Match3Config) { c.Board.Colors = 2 }, false},
		{"nine colors", func(c *Match3Config) { c.Board.Colors = 9; c.Rules.MaxColors = 9 }, false},
		{"zero base value", func(c *Match3Config) { c.Scoring.BaseValue = 0 }, false},
		{"shrinking targets", func(c *Match3Config) { c.Scoring.TargetGrowth = 0.5 }, false},
		{"negative hints", func(c *Match3Config) { c.Rules.Hints = -1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tc.modify(&cfg)
			err := cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tc.ok)
			}
		})
	}
}

func TestApplyMatch3Preset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		colors     int
		reshuffles int
	}{
		{DifficultyEasy, 5, 5},
		{DifficultyNormal, 6, 3},
		{DifficultyHard, 7, 1},
		{DifficultyFixed, 6, 3},
	}

	for _, tc := range tests {
		cfg := DefaultMatch3Config()
		ApplyMatch3Preset(&cfg, tc.preset)
		if cfg.Board.Colors != tc.colors || cfg.Rules.Reshuffles != tc.reshuffles {
			t.Errorf("%s: colors=%d reshuffles=%d, want %d/%d",
				tc.preset, cfg.Board.Colors, cfg.Rules.Reshuffles, tc.colors, tc.reshuffles)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("%s preset produced an invalid config: %v", tc.preset, err)
		}
	}
}

func TestFixedPresetDisablesColorSteps(t *testing.T) {
	cfg := DefaultMatch3Config()
	cfg.Rules.ColorStepEvery = 2
	cfg.Rules.MaxColors = 8

	ApplyMatch3Preset(&cfg, DifficultyFixed)
	if cfg.Rules.ColorStepEvery != 0 {
		t.Errorf("ColorStepEvery = %d, want 0", cfg.Rules.ColorStepEvery)
	}
	if got := NewLevelPlan(cfg).Colors(9); got != cfg.Board.Colors {
		t.Errorf("Colors(9) = %d, want %d", got, cfg.Board.Colors)
	}
	if !IsFixedPreset(DifficultyFixed) || IsFixedPreset(DifficultyHard) {
		t.Error("IsFixedPreset should hold only for fixed")
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestLevelPlan(t *testing.T) {
	plan := NewLevelPlan(DefaultMatch3Config())

	targets := []int{1000, 1500, 2250, 3375}
	for i, want := range targets {
		if got := plan.Target(i + 1); got != want {
			t.Errorf("Target(%d) = %d, want %d", i+1, got, want)
		}
	}
	if plan.Colors(10) != 6 {
		t.Errorf("Colors(10) = %d, want 6 with color steps off", plan.Colors(10))
	}

	cfg := DefaultMatch3Config()
	ApplyMatch3Preset(&cfg, DifficultyHard)
	hard := NewLevelPlan(cfg)
	if hard.Colors(1) != 7 || hard.Colors(3) != 8 || hard.Colors(9) != 8 {
		t.Errorf("hard palette = %d/%d/%d, want 7/8/8", hard.Colors(1), hard.Colors(3), hard.Colors(9))
	}

	fixed := DefaultMatch3Config()
	ApplyMatch3Preset(&fixed, DifficultyFixed)
	if NewLevelPlan(fixed).Target(5) != 1000 {
		t.Error("fixed preset should keep a flat target")
	}
}
