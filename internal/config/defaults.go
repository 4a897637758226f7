package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the hardcoded match-3 configuration.
// It matches defaults/match3.yaml.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Width:  8,
			Height: 8,
			Colors: 6,
		},
		Scoring: ScoringConfig{
			BaseValue:    10,
			TargetScore:  1000,
			TargetGrowth: 1.5,
		},
		Playback: PlaybackConfig{
			SwapTicks: 6,
			StepTicks: 18,
		},
		Rules: RulesConfig{
			Reshuffles: 3,
			Hints:      3,
			MaxColors:  6,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "match3", "match3_endless":
		return defaultMatch3YAML
	default:
		return nil
	}
}
