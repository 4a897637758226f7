// arcade is a terminal match-3 arcade: play Crystal Match locally, over SSH,
// or simulate thousands of games headlessly.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play a game (default: match3)
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//	arcade simulate          - Auto-play games and print statistics
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Importing the game registers it
	"github.com/vovakirdan/crystal-arcade/internal/games/match3"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Crystal Arcade - match gems in your terminal",
	Long: `Crystal Arcade is a terminal match-3 game. Swap neighbouring gems to
line up three or more of a color; cleared gems fall and refill, and every
cascade multiplies the score.

Available commands:
  list      - Show all available games
  play      - Play a game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Auto-play games and report statistics

Examples:
  arcade play
  arcade play --endless --difficulty hard
  arcade menu
  arcade serve --ssh :2222
  arcade scores match3
  arcade simulate --games 1000`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the process logger writing to stderr.
func newLogger() *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})
}

// newFileLogger builds a logger for the full-screen commands, where stderr
// belongs to the terminal UI. It writes to ~/.arcade/arcade.log and returns
// a closer for the file.
func newFileLogger() (*log.Logger, func()) {
	logger := newLogger()

	home, err := os.UserHomeDir()
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "arcade.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	logger.SetOutput(f)
	return logger, func() { f.Close() }
}

// applyGameFlags hands the shared game flags to the match-3 package.
func applyGameFlags(configPath, difficulty string, logger *log.Logger) {
	match3.SetConfigPath(configPath)
	match3.SetDifficultyPreset(difficulty)
	match3.SetLogger(logger)
}
