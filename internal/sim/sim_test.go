package sim

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	m3 "github.com/vovakirdan/crystal-arcade/internal/match3"
)

func testConfig() Config {
	return Config{
		Engine:     m3.DefaultConfig(),
		Games:      6,
		Moves:      25,
		Reshuffles: -1,
		Seed:       11,
		Workers:    3,
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := testConfig()

	a, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	cfg.Workers = 1
	b, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if len(a.Results) != len(b.Results) {
		t.Fatalf("result counts differ: %d vs %d", len(a.Results), len(b.Results))
	}
	for i := range a.Results {
		ra, rb := a.Results[i], b.Results[i]
		if ra.Seed != rb.Seed || ra.Score != rb.Score || ra.MaxChain != rb.MaxChain {
			t.Errorf("game %d differs across worker counts: %+v vs %+v", i, ra, rb)
		}
	}
	if a.MeanScore != b.MeanScore {
		t.Errorf("MeanScore = %v vs %v", a.MeanScore, b.MeanScore)
	}
}

func TestRunAggregates(t *testing.T) {
	cfg := testConfig()
	r, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if r.Games != cfg.Games {
		t.Errorf("Games = %d, want %d", r.Games, cfg.Games)
	}

	moves, hist := 0, 0
	for i, res := range r.Results {
		if res.Seed != cfg.Seed+int64(i) {
			t.Errorf("result %d has seed %d", i, res.Seed)
		}
		if res.Moves != cfg.Moves {
			t.Errorf("game %d played %d moves, want %d", i, res.Moves, cfg.Moves)
		}
		// Every accepted move clears at least one 3-run at depth 1
		if res.Score < res.Moves*3*m3.DefaultBaseValue {
			t.Errorf("game %d score %d too low for %d moves", i, res.Score, res.Moves)
		}
		moves += res.Moves
	}
	for _, n := range r.ChainHist {
		hist += n
	}

	if r.TotalMoves != moves || hist != moves {
		t.Errorf("TotalMoves = %d, histogram = %d, want %d", r.TotalMoves, hist, moves)
	}
	if r.BestChain < 1 || r.MeanChain < 1 {
		t.Errorf("chains = %d / %.2f, want at least 1", r.BestChain, r.MeanChain)
	}
	if r.MedianScore > r.P90Score {
		t.Errorf("median %v above p90 %v", r.MedianScore, r.P90Score)
	}
}

func TestRunInvalidParams(t *testing.T) {
	cfg := testConfig()
	cfg.Games = 0
	if _, err := Run(context.Background(), cfg); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("err = %v, want ErrInvalidParams", err)
	}

	cfg = testConfig()
	cfg.Engine.Colors = 2
	if _, err := Run(context.Background(), cfg); !errors.Is(err, m3.ErrPaletteTooSmall) {
		t.Errorf("err = %v, want ErrPaletteTooSmall", err)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, testConfig()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestPlayGameExhaustsReshuffles(t *testing.T) {
	// A three-color 3x3 board locks up quickly
	cfg := Config{
		Engine:     m3.Config{Width: 3, Height: 3, Colors: 3, BaseValue: 10},
		Moves:      500,
		Reshuffles: 0,
	}

	for seed := int64(1); seed <= 50; seed++ {
		res, err := PlayGame(cfg, seed)
		if err != nil {
			t.Fatalf("PlayGame(%d) failed: %v", seed, err)
		}
		if res.Exhausted {
			if res.Deadlocks != 1 {
				t.Errorf("seed %d: Deadlocks = %d, want 1", seed, res.Deadlocks)
			}
			return
		}
	}
	t.Error("no game ran out of reshuffles")
}

func TestReportWrite(t *testing.T) {
	r := NewReport(testConfig(), []GameResult{
		{Seed: 1, Score: 1200, Moves: 10, MaxChain: 2, ChainCount: map[int]int{1: 8, 2: 2}},
		{Seed: 2, Score: 3400, Moves: 10, MaxChain: 3, ChainCount: map[int]int{1: 9, 3: 1}},
	})

	var buf bytes.Buffer
	if err := r.Write(&buf); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Crystal Match Simulation", "2,300.0", "x3", "Chain Depth", "17 (85.0%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}

	// Every line of a table has the same width
	lines := strings.Split(strings.TrimSpace(out), "\n")
	width := len(lines[0])
	for _, line := range lines[:3] {
		if len(line) != width {
			t.Errorf("ragged table line %q", line)
		}
	}
}
