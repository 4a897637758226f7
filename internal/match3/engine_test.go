package match3

import (
	"errors"
	"testing"
)

func newTestEngine(t *testing.T, colors int, seed int64, rows ...string) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Colors = colors
	e, err := New(cfg, WithSeed(seed), WithGrid(MustParseGrid(rows...)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return e
}

func TestRequestSwapSingleStep(t *testing.T) {
	e := newTestEngine(t, 3, 1, "RRG", "BGR", "GBB")

	out, err := e.RequestSwap(P(0, 2), P(1, 2))
	if err != nil {
		t.Fatalf("RequestSwap() failed: %v", err)
	}
	if !out.Accepted {
		t.Fatal("expected Accepted outcome")
	}
	if len(out.Steps) != 1 {
		t.Fatalf("expected 1 cascade step, got %d", len(out.Steps))
	}

	step := out.Steps[0]
	want := []Position{P(0, 0), P(0, 1), P(0, 2)}
	if len(step.Removed) != len(want) {
		t.Fatalf("removed = %v, want %v", step.Removed, want)
	}
	for i := range want {
		if step.Removed[i] != want[i] {
			t.Errorf("removed[%d] = %v, want %v", i, step.Removed[i], want[i])
		}
	}
	if step.ScoreDelta != 3*DefaultBaseValue {
		t.Errorf("ScoreDelta = %d, want %d", step.ScoreDelta, 3*DefaultBaseValue)
	}
	if out.FinalChainDepth != 1 {
		t.Errorf("FinalChainDepth = %d, want 1", out.FinalChainDepth)
	}

	// Lower rows are untouched; the top row is refilled with new tokens.
	g := e.Grid()
	if g.ColorAt(1, 0) != 3 || g.ColorAt(1, 1) != 2 || g.ColorAt(1, 2) != 2 {
		t.Errorf("row 1 changed:\n%s", g)
	}
	if len(step.Spawned) != 3 {
		t.Errorf("spawned %d tokens, want 3", len(step.Spawned))
	}
}

func TestRequestSwapChainScoring(t *testing.T) {
	// Swapping (3,0) and (3,1) makes a vertical red run in column 0.
	// Clearing it drops B onto row 4, completing B B B.
	e := newTestEngine(t, 6, 1,
		"YPGP",
		"BGYR",
		"RYPG",
		"GRYP",
		"RBBG",
	)

	out, err := e.RequestSwap(P(3, 0), P(3, 1))
	if err != nil {
		t.Fatalf("RequestSwap() failed: %v", err)
	}
	if !out.Accepted {
		t.Fatal("expected Accepted outcome")
	}
	if out.FinalChainDepth != 2 {
		t.Fatalf("FinalChainDepth = %d, want 2", out.FinalChainDepth)
	}

	first, second := out.Steps[0], out.Steps[1]
	if first.ScoreDelta != 3*10*1 {
		t.Errorf("step 1 score = %d, want 30", first.ScoreDelta)
	}
	if second.ScoreDelta != 3*10*2 {
		t.Errorf("step 2 score = %d, want 60 (x2 multiplier)", second.ScoreDelta)
	}
	if out.Score != 90 {
		t.Errorf("total score = %d, want 90", out.Score)
	}
	if e.Combo() != (ComboState{ChainDepth: 2, Score: 90}) {
		t.Errorf("Combo() = %+v", e.Combo())
	}
	if second.Matches[0].Color != 3 || second.Matches[0].Axis != Horizontal {
		t.Errorf("second step should clear a blue row, got %+v", second.Matches[0])
	}
}

func TestRequestSwapSettledInvariants(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 20; seed++ {
		e, err := New(cfg, WithSeed(seed))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}

		for move := 0; move < 30; move++ {
			req, ok := e.Hint()
			if !ok {
				if err := e.Reshuffle(); err != nil {
					t.Fatalf("Reshuffle() failed: %v", err)
				}
				continue
			}

			out, err := e.RequestSwap(req.A, req.B)
			if err != nil {
				t.Fatalf("seed %d move %d: RequestSwap() failed: %v", seed, move, err)
			}
			if !out.Accepted {
				t.Fatalf("seed %d move %d: hinted swap %v rejected", seed, move, req)
			}

			g := e.Grid()
			if HasMatch(g) {
				t.Fatalf("seed %d move %d: settled grid has a run:\n%s", seed, move, g)
			}
			if g.EmptyCount() != 0 {
				t.Fatalf("seed %d move %d: settled grid has empty cells", seed, move)
			}
			if out.HasValidMove != HasValidMove(g) {
				t.Errorf("HasValidMove flag disagrees with grid")
			}
			for i, step := range out.Steps {
				if step.Depth != i+1 {
					t.Errorf("step %d has depth %d", i, step.Depth)
				}
			}
		}
	}
}

func TestRequestSwapRejected(t *testing.T) {
	e := newTestEngine(t, 3, 1, "RRG", "BGR", "GBB")
	before := e.Grid()

	out, err := e.RequestSwap(P(2, 0), P(2, 1))
	if err != nil {
		t.Fatalf("RequestSwap() failed: %v", err)
	}
	if out.Accepted {
		t.Error("swap without a match should be rejected")
	}
	if !e.Grid().Equal(before) {
		t.Error("rejected swap changed the grid")
	}
	if e.State() != StateIdle {
		t.Errorf("State() = %v, want idle", e.State())
	}
}

func TestRequestSwapInvalid(t *testing.T) {
	e := newTestEngine(t, 3, 1, "RRG", "BGR", "GBB")
	before := e.Grid()

	_, err := e.RequestSwap(P(0, 0), P(2, 2))
	if !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
	if !e.Grid().Equal(before) {
		t.Error("invalid request changed the grid")
	}
}

func TestRequestSwapDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	run := func() []SwapOutcome {
		e, err := New(cfg, WithSeed(99))
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		var outs []SwapOutcome
		for range 10 {
			req, ok := e.Hint()
			if !ok {
				break
			}
			out, err := e.RequestSwap(req.A, req.B)
			if err != nil {
				t.Fatalf("RequestSwap() failed: %v", err)
			}
			outs = append(outs, out)
		}
		return outs
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Score != b[i].Score || a[i].FinalChainDepth != b[i].FinalChainDepth {
			t.Errorf("move %d differs: %+v vs %+v", i, a[i].Score, b[i].Score)
		}
		last := len(a[i].Steps) - 1
		if !a[i].Steps[last].Grid.Equal(b[i].Steps[last].Grid) {
			t.Errorf("move %d final grids differ", i)
		}
	}
}

func TestNoMovesState(t *testing.T) {
	e := newTestEngine(t, 4, 5,
		"RGRG",
		"BYBY",
		"RGRG",
		"BYBY",
	)

	if e.State() != StateNoMoves {
		t.Fatalf("State() = %v, want no_moves", e.State())
	}
	if e.HasValidMove() {
		t.Error("deadlocked grid should report no valid move")
	}

	_, err := e.RequestSwap(P(0, 0), P(0, 1))
	if !errors.Is(err, ErrNoMoves) {
		t.Errorf("err = %v, want ErrNoMoves", err)
	}

	if err := e.Reshuffle(); err != nil {
		t.Fatalf("Reshuffle() failed: %v", err)
	}
	if e.State() != StateIdle {
		t.Errorf("State() after reshuffle = %v, want idle", e.State())
	}
	g := e.Grid()
	if HasMatch(g) || !HasValidMove(g) {
		t.Errorf("reshuffled grid is not playable:\n%s", g)
	}
}

func TestNewEngineDefaults(t *testing.T) {
	e, err := New(DefaultConfig(), WithSeed(7))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	g := e.Grid()
	if g.W != DefaultWidth || g.H != DefaultHeight {
		t.Errorf("grid is %dx%d, want %dx%d", g.W, g.H, DefaultWidth, DefaultHeight)
	}
	if HasMatch(g) {
		t.Error("fresh grid has a run")
	}
	if e.State() != StateIdle {
		t.Errorf("State() = %v, want idle", e.State())
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = 2
	if _, err := New(cfg); !errors.Is(err, ErrPaletteTooSmall) {
		t.Errorf("err = %v, want ErrPaletteTooSmall", err)
	}

	cfg = DefaultConfig()
	cfg.Width = 2
	if _, err := New(cfg); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("err = %v, want ErrInvalidSize", err)
	}
}

func TestNewEngineRejectsUnsettledGrid(t *testing.T) {
	tests := []struct {
		name   string
		colors int
		rows   []string
	}{
		{
			name:   "existing run",
			colors: 4,
			rows:   []string{"RRRG", "GBYB", "BYGY", "YGBG"},
		},
		{
			name:   "empty cell",
			colors: 4,
			rows:   []string{"R.GB", "GBYR", "BYRG", "YRGB"},
		},
		{
			name:   "color outside palette",
			colors: 3,
			rows:   []string{"RGY", "GBR", "BRG"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Colors = tc.colors
			_, err := New(cfg, WithSeed(1), WithGrid(MustParseGrid(tc.rows...)))
			if !errors.Is(err, ErrInconsistentGrid) {
				t.Errorf("New() err = %v, want ErrInconsistentGrid", err)
			}
		})
	}
}

func TestWithSourceDrivesRefill(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = 3
	src := &scriptedSource{draws: []int{0, 1, 0}} // R, G, R
	e, err := New(cfg, WithSource(src), WithGrid(MustParseGrid("RRG", "BGR", "GBB")))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out, err := e.RequestSwap(P(0, 2), P(1, 2))
	if err != nil {
		t.Fatalf("RequestSwap() failed: %v", err)
	}
	if !out.Accepted || out.FinalChainDepth != 1 {
		t.Fatalf("outcome = %+v, want one accepted step", out)
	}
	if got := e.Grid().String(); got != "RGR\nBGG\nGBB" {
		t.Errorf("Grid() =\n%s\nwant\nRGR\nBGG\nGBB", got)
	}
}
