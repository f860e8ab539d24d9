package evil2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateWon         GameStateType = "won"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Variant   Variant
	Score     int
	BestScore int
	Moves     int
	Board     [][]int // indexed [y][x]
	MaxTile   int
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.ctrl.Over():
		state = StateGameOver
	case g.ctrl.Won() && !g.ctrl.KeepingOn():
		state = StateWon
	case g.paused:
		state = StatePaused
	}

	board := g.ctrl.Grid()
	return Snapshot{
		Tick:      g.tick,
		Variant:   g.variant,
		Score:     g.ctrl.Score(),
		BestScore: g.meta.BestScore,
		Moves:     g.ctrl.Moves(),
		Board:     board.Values(),
		MaxTile:   board.MaxTile(),
		State:     state,
	}
}
