package match3

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Defaults for a reference board.
const (
	DefaultWidth     = 8
	DefaultHeight    = 8
	DefaultColors    = 6
	DefaultBaseValue = 10

	// DefaultMaxCascadeDepth bounds a single cascade. Real cascades end after
	// a handful of rounds; hitting the bound means the grid is broken.
	DefaultMaxCascadeDepth = 256

	maxGenerateAttempts = 100
	maxShuffleAttempts  = 100
)

// State is the engine's position in the swap pipeline.
type State uint8

const (
	StateIdle State = iota
	StateValidating
	StateResolving
	StateSettled
	StateNoMoves // waiting for an external reshuffle or end of level
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateResolving:
		return "resolving"
	case StateSettled:
		return "settled"
	case StateNoMoves:
		return "no_moves"
	default:
		return "unknown"
	}
}

// Config sizes the board and the scoring.
type Config struct {
	Width           int
	Height          int
	Colors          int
	BaseValue       int
	MaxCascadeDepth int
}

// DefaultConfig returns the reference 8x8, six-color board.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		Colors:          DefaultColors,
		BaseValue:       DefaultBaseValue,
		MaxCascadeDepth: DefaultMaxCascadeDepth,
	}
}

func (c Config) validate() error {
	if c.Width < MinRun || c.Height < MinRun {
		return fmt.Errorf("match3: %dx%d board (want at least %dx%d): %w", c.Width, c.Height, MinRun, MinRun, ErrInvalidSize)
	}
	if c.Colors < MinColors || c.Colors > MaxColors {
		return fmt.Errorf("match3: %d colors (want %d..%d): %w", c.Colors, MinColors, MaxColors, ErrPaletteTooSmall)
	}
	return nil
}

// ComboState tracks one cascade. It is reset on every accepted swap.
type ComboState struct {
	ChainDepth int
	Score      int
}

// CascadeStep describes one match-remove-gravity-refill round.
type CascadeStep struct {
	Depth      int
	Matches    []Match
	Removed    []Position // distinct cleared cells, row-major
	ScoreDelta int
	Drops      []Drop
	Spawned    []Position
	Grid       *Grid // snapshot after gravity and refill
}

// SwapOutcome is the result of RequestSwap. A rejected swap has Accepted
// false and no other fields set.
type SwapOutcome struct {
	Accepted        bool
	Request         SwapRequest
	Steps           []CascadeStep
	FinalChainDepth int
	Score           int
	HasValidMove    bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithSource injects the random source used for refills and reshuffles.
func WithSource(src ColorSource) Option {
	return func(e *Engine) {
		e.src = src
	}
}

// WithSeed is shorthand for WithSource(NewSource(seed)).
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.src = NewSource(seed)
	}
}

// WithLogger sets the logger for cascade tracing and invariant failures.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithGrid starts the engine on a prepared grid instead of a generated one.
// The grid dimensions override the config's. The engine keeps its own copy.
// New rejects a grid with empty cells, runs or colors outside the palette.
func WithGrid(g *Grid) Option {
	return func(e *Engine) {
		if g != nil {
			e.grid = g.Clone()
		}
	}
}

// Engine owns a grid and drives the swap → cascade → settle pipeline.
// It is single-threaded: each call runs to completion before returning.
type Engine struct {
	cfg    Config
	grid   *Grid
	picker *Picker
	src    ColorSource
	logger *log.Logger

	state State
	combo ComboState
}

// New creates an engine with a fresh playable grid.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.BaseValue <= 0 {
		cfg.BaseValue = DefaultBaseValue
	}
	if cfg.MaxCascadeDepth <= 0 {
		cfg.MaxCascadeDepth = DefaultMaxCascadeDepth
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.src == nil {
		e.src = NewSource(1)
	}
	if e.grid != nil {
		e.cfg.Width, e.cfg.Height = e.grid.W, e.grid.H
	}
	if err := e.cfg.validate(); err != nil {
		return nil, err
	}

	picker, err := NewPicker(e.cfg.Colors, e.src)
	if err != nil {
		return nil, err
	}
	e.picker = picker

	if e.grid == nil {
		e.grid = e.generate()
	} else if err := e.checkSupplied(); err != nil {
		return nil, err
	}
	e.settleState()
	return e, nil
}

// NewGrid builds a width×height grid with no runs of MinRun or more.
func NewGrid(width, height, colorCount int, seed int64) (*Grid, error) {
	cfg := Config{Width: width, Height: height, Colors: colorCount}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	picker, err := NewPicker(colorCount, NewSource(seed))
	if err != nil {
		return nil, err
	}
	g := NewEmptyGrid(width, height)
	fillRowMajor(g, picker)
	return g, nil
}

// generate builds grids until one has a valid move, giving up after
// maxGenerateAttempts and returning the last one.
func (e *Engine) generate() *Grid {
	var g *Grid
	for range maxGenerateAttempts {
		g = NewEmptyGrid(e.cfg.Width, e.cfg.Height)
		fillRowMajor(g, e.picker)
		if HasValidMove(g) {
			return g
		}
	}
	return g
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Grid returns a copy of the current grid.
func (e *Engine) Grid() *Grid {
	return e.grid.Clone()
}

// State returns the current pipeline state.
func (e *Engine) State() State {
	return e.state
}

// Combo returns the combo state of the last cascade.
func (e *Engine) Combo() ComboState {
	return e.combo
}

// HasValidMove reports whether the current grid has any matching swap.
func (e *Engine) HasValidMove() bool {
	return HasValidMove(e.grid)
}

// Hint returns a swap that creates a match, if one exists.
func (e *Engine) Hint() (SwapRequest, bool) {
	return FindValidMove(e.grid)
}

// RequestSwap validates the swap of a and b and, when it creates a match,
// resolves the full cascade before returning.
//
// Malformed requests fail with ErrInvalidRequest and leave the grid as it
// was. A swap that creates no match is reverted and reported as rejected.
func (e *Engine) RequestSwap(a, b Position) (SwapOutcome, error) {
	if e.state == StateNoMoves {
		return SwapOutcome{}, fmt.Errorf("match3: swap %v<->%v: %w", a, b, ErrNoMoves)
	}

	req := SwapRequest{A: a, B: b}
	e.state = StateValidating
	res, err := TrySwap(e.grid, req)
	if err != nil || !res.Accepted {
		e.state = StateIdle
		return SwapOutcome{}, err
	}

	e.combo = ComboState{}
	e.state = StateResolving
	out := SwapOutcome{Accepted: true, Request: req}

	matches := res.Matches
	for len(matches) > 0 {
		if e.combo.ChainDepth >= e.cfg.MaxCascadeDepth {
			return out, e.inconsistent(fmt.Errorf("cascade exceeded %d rounds", e.cfg.MaxCascadeDepth))
		}
		out.Steps = append(out.Steps, e.resolveStep(matches))
		matches = FindMatches(e.grid)
	}

	e.state = StateSettled
	if err := e.verifySettled(); err != nil {
		return out, err
	}

	out.FinalChainDepth = e.combo.ChainDepth
	out.Score = e.combo.Score
	out.HasValidMove = e.settleState()

	e.logger.Debug("swap resolved",
		"swap", req.String(),
		"chain", out.FinalChainDepth,
		"score", out.Score,
		"state", e.state.String(),
	)
	return out, nil
}

// resolveStep clears the matched cells, scores them, drops survivors and refills.
func (e *Engine) resolveStep(matches []Match) CascadeStep {
	removed := MatchedPositions(matches)
	for _, p := range removed {
		e.grid.Clear(p)
	}

	e.combo.ChainDepth++
	delta := matchedCellCount(matches) * e.cfg.BaseValue * e.combo.ChainDepth
	e.combo.Score += delta

	drops := ApplyGravity(e.grid)
	spawned := Refill(e.grid, e.picker)

	e.logger.Debug("cascade step",
		"depth", e.combo.ChainDepth,
		"matches", len(matches),
		"removed", len(removed),
		"score", delta,
	)

	return CascadeStep{
		Depth:      e.combo.ChainDepth,
		Matches:    matches,
		Removed:    removed,
		ScoreDelta: delta,
		Drops:      drops,
		Spawned:    spawned,
		Grid:       e.grid.Clone(),
	}
}

// settleState moves a settled engine to Idle or NoMoves and reports
// whether a move exists.
func (e *Engine) settleState() bool {
	if HasValidMove(e.grid) {
		e.state = StateIdle
		return true
	}
	e.state = StateNoMoves
	return false
}

// verifySettled checks that the grid is full and free of runs.
func (e *Engine) verifySettled() error {
	if n := e.grid.EmptyCount(); n > 0 {
		return e.inconsistent(fmt.Errorf("%d empty cells after settle", n))
	}
	if HasMatch(e.grid) {
		return e.inconsistent(fmt.Errorf("unresolved match after settle"))
	}
	return nil
}

// checkSupplied verifies a grid handed in through WithGrid is settled
// and uses only the configured palette.
func (e *Engine) checkSupplied() error {
	if err := e.verifySettled(); err != nil {
		return err
	}
	for i, c := range e.grid.Cells {
		if int(c.Color) > e.cfg.Colors {
			return e.inconsistent(fmt.Errorf("color %d at %v outside palette of %d",
				c.Color, P(i/e.grid.W, i%e.grid.W), e.cfg.Colors))
		}
	}
	return nil
}

func (e *Engine) inconsistent(cause error) error {
	err := fmt.Errorf("match3: %v: %w", cause, ErrInconsistentGrid)
	e.logger.Error("grid invariant violated", "err", err, "grid", e.grid.String())
	return err
}

// Reshuffle rearranges the existing tokens into a layout with no runs and at
// least one valid move. If no such permutation turns up, the colors are
// regenerated. Token IDs travel with their tokens.
func (e *Engine) Reshuffle() error {
	tokens := make([]Cell, len(e.grid.Cells))
	copy(tokens, e.grid.Cells)

	for range maxShuffleAttempts {
		for i := len(tokens) - 1; i > 0; i-- {
			j := e.src.Intn(i + 1)
			tokens[i], tokens[j] = tokens[j], tokens[i]
		}
		copy(e.grid.Cells, tokens)
		if !HasMatch(e.grid) && HasValidMove(e.grid) {
			e.state = StateIdle
			e.logger.Debug("reshuffled", "mode", "permute")
			return nil
		}
	}

	for range maxGenerateAttempts {
		for i := range e.grid.Cells {
			e.grid.Cells[i] = Cell{}
		}
		fillRowMajor(e.grid, e.picker)
		if HasValidMove(e.grid) {
			e.state = StateIdle
			e.logger.Debug("reshuffled", "mode", "regenerate")
			return nil
		}
	}

	e.state = StateNoMoves
	return fmt.Errorf("match3: reshuffle: %w", ErrNoMoves)
}
