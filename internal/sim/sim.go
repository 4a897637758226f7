// Package sim plays match-3 boards headlessly to measure how a board
// configuration behaves over many games: scores, chain depths and how often
// the board locks up.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	m3 "github.com/vovakirdan/crystal-arcade/internal/match3"
)

// ErrInvalidParams is returned when a run is asked for no games or moves.
var ErrInvalidParams = errors.New("sim: invalid parameters")

// Config describes a simulation run.
type Config struct {
	Engine     m3.Config
	Games      int   // number of games to play
	Moves      int   // move limit per game
	Reshuffles int   // reshuffles per game, negative for unlimited
	Seed       int64 // game i is seeded with Seed+i
	Workers    int   // concurrent games, at least 1

	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer
	// Logger receives per-game summaries at debug level. Nil discards them.
	Logger *log.Logger
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed       int64
	Score      int
	Moves      int
	MaxChain   int
	Deadlocks  int
	Exhausted  bool        // ran out of reshuffles before the move limit
	ChainCount map[int]int // chain depth -> accepted moves reaching it
}

// Run plays cfg.Games games and aggregates them into a Report. Results
// depend only on cfg, never on scheduling.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Games < 1 || cfg.Moves < 1 {
		return nil, fmt.Errorf("%w: games and moves must be > 0", ErrInvalidParams)
	}
	workers := min(max(cfg.Workers, 1), cfg.Games)
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	progress := cfg.Progress
	if progress == nil {
		progress = io.Discard
	}

	// Fail fast on a bad board before spinning up workers
	if _, err := m3.New(cfg.Engine, m3.WithSeed(cfg.Seed)); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	results := make([]GameResult, cfg.Games)
	jobs := make(chan int, cfg.Games)
	errs := make([]error, workers)

	bar := pb.New(cfg.Games).SetWriter(progress).Start()
	start := time.Now()

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[w] = err
					return
				}
				res, err := PlayGame(cfg, cfg.Seed+int64(i))
				if err != nil {
					errs[w] = err
					return
				}
				results[i] = res
				logger.Debug("game finished", "seed", res.Seed, "score", res.Score,
					"moves", res.Moves, "chain", res.MaxChain, "deadlocks", res.Deadlocks)
				bar.Increment()
			}
		}()
	}

	for i := range cfg.Games {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	bar.Finish()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	report := NewReport(cfg, results)
	report.Elapsed = time.Since(start)
	return report, nil
}

// PlayGame plays a single game with the hint bot: it always plays the move
// Engine.Hint suggests and reshuffles when the board locks.
func PlayGame(cfg Config, seed int64) (GameResult, error) {
	res := GameResult{Seed: seed, ChainCount: make(map[int]int)}

	e, err := m3.New(cfg.Engine, m3.WithSeed(seed))
	if err != nil {
		return res, fmt.Errorf("sim: seed %d: %w", seed, err)
	}

	shuffles := cfg.Reshuffles
	for res.Moves < cfg.Moves {
		req, ok := e.Hint()
		if !ok {
			res.Deadlocks++
			if shuffles == 0 {
				res.Exhausted = true
				break
			}
			shuffles--
			if err := e.Reshuffle(); err != nil {
				return res, fmt.Errorf("sim: seed %d: %w", seed, err)
			}
			continue
		}

		out, err := e.RequestSwap(req.A, req.B)
		if err != nil {
			return res, fmt.Errorf("sim: seed %d move %d: %w", seed, res.Moves, err)
		}
		if !out.Accepted {
			return res, fmt.Errorf("sim: seed %d move %d: hinted swap rejected: %w",
				seed, res.Moves, m3.ErrInconsistentGrid)
		}

		res.Moves++
		res.Score += out.Score
		res.MaxChain = max(res.MaxChain, out.FinalChainDepth)
		res.ChainCount[out.FinalChainDepth]++
	}

	return res, nil
}
