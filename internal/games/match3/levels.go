// Package match3 implements Crystal Match, a match-3 puzzle game, on top of
// the cascade engine. It has campaign and endless modes.
package match3

import "fmt"

// levelNames are shown on the level-up banner. Past the end of the list
// the names cycle with a round number.
var levelNames = []string{
	"Quartz Cave",
	"Amber Hollow",
	"Jade Terrace",
	"Sapphire Falls",
	"Ruby Forge",
	"Amethyst Spire",
	"Opal Depths",
	"Diamond Crown",
}

// LevelName returns the display name of level n (1-based).
func LevelName(level int) string {
	if level < 1 {
		level = 1
	}
	i := (level - 1) % len(levelNames)
	round := (level - 1) / len(levelNames)
	if round == 0 {
		return levelNames[i]
	}
	return fmt.Sprintf("%s %d", levelNames[i], round+1)
}

// LevelCount returns the number of distinct level names.
func LevelCount() int {
	return len(levelNames)
}
