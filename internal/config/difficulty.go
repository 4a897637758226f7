package config

import "math"

// LevelPlan derives per-level targets and palette sizes from a config.
type LevelPlan struct {
	scoring ScoringConfig
	rules   RulesConfig
	colors  int
}

// NewLevelPlan creates a plan for the given config.
func NewLevelPlan(cfg Match3Config) LevelPlan {
	return LevelPlan{
		scoring: cfg.Scoring,
		rules:   cfg.Rules,
		colors:  cfg.Board.Colors,
	}
}

// Target returns the score needed to clear level n (1-based).
// A zero target means the level never ends.
func (p LevelPlan) Target(level int) int {
	if p.scoring.TargetScore <= 0 {
		return 0
	}
	growth := p.scoring.TargetGrowth
	if growth < 1 {
		growth = 1
	}
	return int(math.Floor(float64(p.scoring.TargetScore) * math.Pow(growth, float64(max(level, 1)-1))))
}

// Colors returns the palette size for level n.
func (p LevelPlan) Colors(level int) int {
	if p.rules.ColorStepEvery <= 0 {
		return p.colors
	}
	c := p.colors + (max(level, 1)-1)/p.rules.ColorStepEvery
	limit := p.rules.MaxColors
	if limit == 0 || limit > 8 {
		limit = 8
	}
	return min(c, limit)
}
