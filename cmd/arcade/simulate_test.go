package main

import (
	"testing"

	"github.com/vovakirdan/crystal-arcade/internal/config"
)

func TestSimReshuffles(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	config.ApplyMatch3Preset(&cfg, config.DifficultyHard)

	flags := simulateCmd.Flags()
	t.Cleanup(func() {
		flagSimReshuffles = 0
		flags.Lookup("reshuffles").Changed = false
	})

	if got := simReshuffles(simulateCmd, cfg); got != 1 {
		t.Errorf("simReshuffles() = %d, want 1 from the hard preset", got)
	}

	if err := flags.Parse([]string{"--reshuffles", "-1"}); err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if got := simReshuffles(simulateCmd, cfg); got != -1 {
		t.Errorf("simReshuffles() = %d, want -1 from the flag", got)
	}
}

func TestNewSimConfig(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	config.ApplyMatch3Preset(&cfg, config.DifficultyEasy)

	simCfg := newSimConfig(cfg, cfg.Rules.Reshuffles, 42)
	if simCfg.Engine.Colors != 5 || simCfg.Engine.Width != cfg.Board.Width {
		t.Errorf("Engine = %+v, want 5 colors and width %d", simCfg.Engine, cfg.Board.Width)
	}
	if simCfg.Reshuffles != 5 || simCfg.Seed != 42 {
		t.Errorf("Reshuffles = %d, Seed = %d, want 5 and 42", simCfg.Reshuffles, simCfg.Seed)
	}
}
