// Package config provides YAML-based configuration loading and difficulty
// presets for Crystal Match.
package config

import (
	"errors"
	"fmt"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board    BoardConfig    `yaml:"board"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Playback PlaybackConfig `yaml:"playback"`
	Rules    RulesConfig    `yaml:"rules"`
}

// BoardConfig sizes the grid and its palette.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Colors int `yaml:"colors"` // palette size at level 1
}

// ScoringConfig defines points and level targets.
type ScoringConfig struct {
	BaseValue    int     `yaml:"base_value"`    // points per matched cell at chain depth 1
	TargetScore  int     `yaml:"target_score"`  // score needed to clear level 1
	TargetGrowth float64 `yaml:"target_growth"` // target multiplier per level
}

// PlaybackConfig paces the cascade animation, in ticks.
type PlaybackConfig struct {
	SwapTicks int `yaml:"swap_ticks"` // how long the swapped pair is highlighted
	StepTicks int `yaml:"step_ticks"` // how long each cascade step is shown
}

// RulesConfig defines per-run allowances.
type RulesConfig struct {
	Reshuffles     int `yaml:"reshuffles"`       // free reshuffles when the board locks up
	Hints          int `yaml:"hints"`            // hints per run
	ColorStepEvery int `yaml:"color_step_every"` // add a color every N levels, 0 to disable
	MaxColors      int `yaml:"max_colors"`       // palette cap for color steps
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI flag value to a preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	case "":
		return DifficultyNormal, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid match3 config")

// Validate checks the values the engine and game cannot work without.
func (c Match3Config) Validate() error {
	switch {
	case c.Board.Width < 3 || c.Board.Height < 3:
		return fmt.Errorf("%w: board %dx%d is smaller than 3x3", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	case c.Board.Colors < 3 || c.Board.Colors > 8:
		return fmt.Errorf("%w: %d colors (want 3..8)", ErrInvalidConfig, c.Board.Colors)
	case c.Rules.MaxColors != 0 && (c.Rules.MaxColors < c.Board.Colors || c.Rules.MaxColors > 8):
		return fmt.Errorf("%w: max_colors %d outside %d..8", ErrInvalidConfig, c.Rules.MaxColors, c.Board.Colors)
	case c.Scoring.BaseValue <= 0:
		return fmt.Errorf("%w: base_value must be positive", ErrInvalidConfig)
	case c.Scoring.TargetScore < 0 || (c.Scoring.TargetGrowth < 1 && c.Scoring.TargetGrowth != 0):
		return fmt.Errorf("%w: bad level targets", ErrInvalidConfig)
	case c.Playback.SwapTicks < 0 || c.Playback.StepTicks < 0:
		return fmt.Errorf("%w: negative playback ticks", ErrInvalidConfig)
	case c.Rules.Reshuffles < 0 || c.Rules.Hints < 0:
		return fmt.Errorf("%w: negative allowance", ErrInvalidConfig)
	}
	return nil
}
