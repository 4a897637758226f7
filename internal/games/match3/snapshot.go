package match3

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateNoMoves     GameStateType = "no_moves"
	StateLevelUp     GameStateType = "level_up"
	StateGameOver    GameStateType = "game_over"
	StatePaused      GameStateType = "paused"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick           uint64
	Mode           string // "campaign" or "endless"
	Level          int
	Target         int
	Score          int
	Moves          int
	MaxChain       int
	HintsLeft      int
	ReshufflesLeft int
	CursorRow      int
	CursorCol      int
	Selected       bool
	Board          string // one letter per gem, rows joined by newlines
	State          GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.playing():
		state = StateResolving
	case g.levelUpTicks > 0:
		state = StateLevelUp
	case g.stuck:
		state = StateNoMoves
	}

	return Snapshot{
		Tick:           g.tick,
		Mode:           string(g.mode),
		Level:          g.level,
		Target:         g.target,
		Score:          g.score,
		Moves:          g.moves,
		MaxChain:       g.maxChain,
		HintsLeft:      g.hintsLeft,
		ReshufflesLeft: g.reshufflesLeft,
		CursorRow:      g.cursor.Row,
		CursorCol:      g.cursor.Col,
		Selected:       g.hasSel,
		Board:          g.board.String(),
		State:          state,
	}
}
