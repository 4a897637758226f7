package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/crystal-arcade/internal/config"
	"github.com/vovakirdan/crystal-arcade/internal/core"
	"github.com/vovakirdan/crystal-arcade/internal/platform/tui"
	"github.com/vovakirdan/crystal-arcade/internal/registry"
	"github.com/vovakirdan/crystal-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagEndless    bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: match3).

Controls:
  Arrows/WASD/HJKL  - Move cursor
  Space/Enter       - Pick up a gem; with a gem held, a direction swaps it
  ?                 - Show a hint (limited)
  X                 - Reshuffle the board (limited)
  P                 - Pause
  R                 - Restart (after game over)
  Esc               - Back (while paused or after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Five colors, more hints and reshuffles, gentler targets
  normal - Config defaults
  hard   - Seven colors growing to eight, one hint and one reshuffle
  fixed  - Palette and level targets never change

Examples:
  arcade play
  arcade play --endless
  arcade play match3 --difficulty hard
  arcade play --seed 42
  arcade play --config ./my-match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play without level targets")
}

// terminalConfig returns a runtime config sized to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}
	if flagEndless && gameID == "match3" {
		gameID = "match3_endless"
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagConfig != "" {
		// Surface config mistakes before the screen switches
		if _, err := config.LoadMatch3(flagConfig); err != nil {
			return err
		}
	}

	logger, closeLog := newFileLogger()
	defer closeLog()
	applyGameFlags(flagConfig, flagDifficulty, logger)

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logger.Info("starting game", "game", gameID, "difficulty", flagDifficulty, "seed", flagSeed)
	if err := tui.Run(game, store, terminalConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
