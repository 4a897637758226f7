package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMatch3 loads the match-3 configuration.
// Search order: customPath -> ~/.arcade/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadMatch3(customPath string) (Match3Config, error) {
	cfg := DefaultMatch3Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("match3.yaml"), filepath.Join("configs", "match3.yaml")} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path, cfg); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	embedded := cfg
	if err := yaml.Unmarshal(defaultMatch3YAML, &embedded); err != nil {
		return DefaultMatch3Config(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// tryLoad decodes path over base. Unreadable or invalid files are skipped.
func tryLoad(path string, base Match3Config) (Match3Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return base, false
	}
	if base.Validate() != nil {
		return base, false
	}
	return base, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Colors = 5
		cfg.Rules.Reshuffles = 5
		cfg.Rules.Hints = 5
		cfg.Scoring.TargetGrowth = 1.3
	case DifficultyHard:
		cfg.Board.Colors = 7
		cfg.Rules.Reshuffles = 1
		cfg.Rules.Hints = 1
		cfg.Rules.ColorStepEvery = 2
		cfg.Rules.MaxColors = 8
	case DifficultyFixed:
		cfg.Scoring.TargetGrowth = 1
	}
	if IsFixedPreset(preset) {
		cfg.Rules.ColorStepEvery = 0
	}
	if cfg.Rules.MaxColors < cfg.Board.Colors {
		cfg.Rules.MaxColors = cfg.Board.Colors
	}
}
