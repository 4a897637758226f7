package match3

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/crystal-arcade/internal/config"
	"github.com/vovakirdan/crystal-arcade/internal/core"
	m3 "github.com/vovakirdan/crystal-arcade/internal/match3"
	"github.com/vovakirdan/crystal-arcade/internal/registry"
)

const (
	hintTicks        = 120 // how long a hint stays highlighted
	rejectTicks      = 30
	levelUpTicks     = 90
	autoShuffleTicks = 60 // delay before a locked board reshuffles itself
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives engine traces. Discarded unless set.
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes engine logging to l.
func SetLogger(l *log.Logger) {
	logger = l
}

// Game is the playable match-3 board: cursor, selection, move playback,
// levels, hints and reshuffles around an m3.Engine.
type Game struct {
	mode   Mode
	preset config.DifficultyPreset // overrides difficultyPreset when set
	cfg    config.Match3Config
	plan   config.LevelPlan
	engine *m3.Engine
	board  *m3.Grid // settled grid, refreshed after every engine change
	rng    *rand.Rand
	seed   int64
	tick   uint64

	score    int
	level    int
	target   int
	moves    int
	maxChain int

	hintsLeft      int
	reshufflesLeft int

	cursor    m3.Position
	selected  m3.Position
	hasSel    bool
	hint      []m3.Position
	hintTicks int

	frames     []frame
	frameIdx   int
	frameTicks int

	banner      string
	bannerTicks int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver     bool
	paused       bool
	tooSmall     bool
	stuck        bool // no valid move, waiting for a reshuffle
	stuckTicks   int
	levelUpTicks int
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

var (
	_ registry.Game             = (*Game)(nil)
	_ registry.Resizer          = (*Game)(nil)
	_ registry.DifficultySetter = (*Game)(nil)
)

func init() {
	registry.Register("match3", func() registry.Game {
		return New()
	})
	registry.Register("match3_endless", func() registry.Game {
		return NewEndless()
	})
}

// SetDifficulty selects the preset used by this game from the next Reset
// on. Unknown names fall back to the package-wide preset.
func (g *Game) SetDifficulty(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		g.preset = ""
		return
	}
	g.preset = p
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "match3_endless"
	}
	return "match3"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "Crystal Match (Endless)"
	}
	return "Crystal Match"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadMatch3(configPath)
	if err != nil {
		cfg = config.DefaultMatch3Config()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyMatch3Preset(&cfg, preset)
	}
	if g.mode == ModeEndless {
		cfg.Rules.ColorStepEvery = 0
	}

	*g = Game{
		mode:           g.mode,
		preset:         g.preset,
		cfg:            cfg,
		plan:           config.NewLevelPlan(cfg),
		rng:            rand.New(rand.NewSource(rc.Seed)),
		seed:           rc.Seed,
		level:          1,
		hintsLeft:      cfg.Rules.Hints,
		reshufflesLeft: cfg.Rules.Reshuffles,
		screenW:        rc.ScreenW,
		screenH:        rc.ScreenH,
	}
	if g.mode == ModeCampaign {
		g.target = g.plan.Target(1)
	}

	g.newBoard(cfg.Board.Colors, rc.Seed)
	g.cursor = m3.P(g.board.H/2, g.board.W/2)
	g.checkScreenSize()
}

// newBoard replaces the engine with a fresh one of the given palette.
func (g *Game) newBoard(colors int, seed int64) {
	ecfg := m3.Config{
		Width:     g.cfg.Board.Width,
		Height:    g.cfg.Board.Height,
		Colors:    colors,
		BaseValue: g.cfg.Scoring.BaseValue,
	}
	opts := []m3.Option{m3.WithSeed(seed)}
	if logger != nil {
		opts = append(opts, m3.WithLogger(logger.WithPrefix(g.ID())))
	}

	e, err := m3.New(ecfg, opts...)
	if err != nil {
		e, _ = m3.New(m3.DefaultConfig(), opts...)
	}
	g.engine = e
	g.board = e.Grid()
	g.handleLock()
}

// Resize adapts the layout to a new screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	w, h := g.minScreenSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.tickTimers()

	switch {
	case g.playing():
		// Input is ignored while a move plays back
		g.stepPlayback()
	case g.levelUpTicks > 0:
		g.levelUpTicks--
		if g.levelUpTicks == 0 {
			g.enterLevel()
		}
	case g.stuck:
		g.stuckTicks++
		if in.Has(core.ActionShuffle) || g.stuckTicks >= autoShuffleTicks {
			g.reshuffle()
		}
	default:
		g.handleInput(in)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) tickTimers() {
	if g.bannerTicks > 0 {
		g.bannerTicks--
		if g.bannerTicks == 0 {
			g.banner = ""
		}
	}
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}
}

func (g *Game) handleInput(in core.InputFrame) {
	if dr, dc, ok := in.Direction(); ok {
		if g.hasSel {
			g.hasSel = false
			g.trySwap(g.selected, m3.P(g.selected.Row+dr, g.selected.Col+dc))
			return
		}
		g.cursor = m3.P(
			core.Clamp(g.cursor.Row+dr, 0, g.board.H-1),
			core.Clamp(g.cursor.Col+dc, 0, g.board.W-1),
		)
		return
	}

	switch {
	case in.Has(core.ActionSelect), in.Has(core.ActionConfirm):
		g.selectAtCursor()
	case in.Has(core.ActionHint):
		g.showHint()
	case in.Has(core.ActionShuffle):
		g.reshuffle()
	}
}

// selectAtCursor picks up the gem under the cursor. With a gem already
// picked up, an adjacent target swaps, the same gem drops it and any other
// gem moves the selection.
func (g *Game) selectAtCursor() {
	switch {
	case !g.hasSel:
		g.selected, g.hasSel = g.cursor, true
	case g.selected == g.cursor:
		g.hasSel = false
	case g.selected.Adjacent(g.cursor):
		g.hasSel = false
		g.trySwap(g.selected, g.cursor)
	default:
		g.selected = g.cursor
	}
}

func (g *Game) trySwap(a, b m3.Position) {
	if !g.board.InBounds(b) {
		return
	}

	before := g.board
	out, err := g.engine.RequestSwap(a, b)
	if err != nil {
		g.showBanner("Invalid move", rejectTicks)
		return
	}
	if !out.Accepted {
		g.showBanner("No match", rejectTicks)
		return
	}

	g.hint, g.hintTicks = nil, 0
	g.cursor = b
	g.moves++
	g.maxChain = max(g.maxChain, out.FinalChainDepth)
	g.board = g.engine.Grid()
	g.startPlayback(buildFrames(before, out, g.cfg.Playback.SwapTicks, g.cfg.Playback.StepTicks))
}

// finishMove runs once the last frame of a move has been shown.
func (g *Game) finishMove() {
	if g.mode == ModeCampaign && g.target > 0 && g.score >= g.target {
		g.level++
		g.target = g.plan.Target(g.level)
		g.levelUpTicks = levelUpTicks
		return
	}
	g.handleLock()
}

// enterLevel starts the level reached by the last level-up. The board is
// only replaced when the palette grows.
func (g *Game) enterLevel() {
	if colors := g.plan.Colors(g.level); colors != g.engine.Config().Colors {
		g.newBoard(colors, g.rng.Int63())
		return
	}
	g.handleLock()
}

// handleLock flags a board without valid moves. With no reshuffles left
// the run is over.
func (g *Game) handleLock() {
	if g.engine.State() != m3.StateNoMoves {
		g.stuck = false
		return
	}
	if g.reshufflesLeft == 0 {
		g.gameOver = true
		return
	}
	g.stuck, g.stuckTicks = true, 0
	g.showBanner("No moves left! Shuffling...", autoShuffleTicks)
}

func (g *Game) reshuffle() {
	if g.reshufflesLeft == 0 {
		if g.stuck {
			g.gameOver = true
		}
		return
	}
	g.reshufflesLeft--
	g.hasSel = false
	g.hint, g.hintTicks = nil, 0

	if err := g.engine.Reshuffle(); err != nil {
		g.gameOver = true
		return
	}
	g.board = g.engine.Grid()
	g.stuck = false
	g.showBanner("Shuffled", rejectTicks)
}

func (g *Game) showHint() {
	if g.hintsLeft == 0 {
		g.showBanner("No hints left", rejectTicks)
		return
	}
	req, ok := g.engine.Hint()
	if !ok {
		return
	}
	g.hintsLeft--
	g.hint = []m3.Position{req.A, req.B}
	g.hintTicks = hintTicks
}

func (g *Game) showBanner(text string, ticks int) {
	g.banner, g.bannerTicks = text, ticks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		MaxChain: g.maxChain,
		Moves:    g.moves,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
	}
}

// Seed returns the seed the current run started from.
func (g *Game) Seed() int64 {
	return g.seed
}
