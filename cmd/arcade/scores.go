package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/crystal-arcade/internal/registry"
	"github.com/vovakirdan/crystal-arcade/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game (default: match3).

Examples:
  arcade scores
  arcade scores match3_endless
  arcade scores match3 --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := "match3"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-5s  %s\n", "Rank", "Score", "Level", "Chain", "Moves", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-5s  %s\n", "----", "-----", "-----", "-----", "-----", "----")
	for i, run := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  x%-4d  %-5d  %s\n",
			i+1, run.Score, run.Level, run.MaxChain, run.Moves, run.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Best chain: x%d  Games: %d  Average: %.0f\n",
			stats.HighScore, stats.BestChain, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
