// Package controller runs a game of evil 2048: it applies player moves,
// asks a spawner for the following tile, detects the end of the game and
// keeps the store and the presenter up to date.
package controller

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/evil2048/internal/adversary"
	"github.com/vovakirdan/evil2048/internal/grid"
)

// DefaultStartTiles is the number of random tiles on a fresh board.
const DefaultStartTiles = 2

// Options configures a Controller. Zero fields take defaults.
type Options struct {
	Size       int // board size for fresh games; default grid.DefaultSize
	WinValue   int // default grid.DefaultWinValue
	StartTiles int // default DefaultStartTiles

	// Random feeds the default spawners and the intensity draw. Defaults
	// to a time-seeded *rand.Rand.
	Random adversary.Random
	// Spawner places the tile after each move; defaults to an
	// adversary.Placer.
	Spawner adversary.Spawner
	// Classic places the start tiles and the tiles the adversary skips;
	// defaults to adversary.RandomSpawner.
	Classic adversary.Spawner
	// Intensity returns the probability that Spawner rather than Classic
	// places the next tile. Nil means always Spawner.
	Intensity func(score, moves int) float64

	Store     Store // default NewMemoryStore()
	Presenter Presenter
	Logger    *log.Logger
}

// Controller owns one game. It is not safe for concurrent use.
type Controller struct {
	size       int
	winValue   int
	startTiles int

	rng       adversary.Random
	spawner   adversary.Spawner
	classic   adversary.Spawner
	intensity func(score, moves int) float64
	store     Store
	presenter Presenter
	logger    *log.Logger

	grid        *grid.Grid
	score       int
	moves       int
	over        bool
	won         bool
	keepPlaying bool
	phase       Phase
	lastSpawn   *adversary.Placement
}

// New creates a controller and sets up the game, resuming the stored one
// when possible.
func New(opts Options) (*Controller, error) {
	c := &Controller{
		size:       opts.Size,
		winValue:   opts.WinValue,
		startTiles: opts.StartTiles,
		rng:        opts.Random,
		spawner:    opts.Spawner,
		classic:    opts.Classic,
		intensity:  opts.Intensity,
		store:      opts.Store,
		presenter:  opts.Presenter,
		logger:     opts.Logger,
	}
	if c.size == 0 {
		c.size = grid.DefaultSize
	}
	if c.size < 1 {
		return nil, fmt.Errorf("controller: %w: %d", grid.ErrInvalidSize, c.size)
	}
	if c.winValue <= 0 {
		c.winValue = grid.DefaultWinValue
	}
	if c.startTiles <= 0 {
		c.startTiles = DefaultStartTiles
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if c.spawner == nil {
		c.spawner = adversary.NewPlacer(c.rng)
	}
	if c.classic == nil {
		c.classic = adversary.NewRandomSpawner(c.rng)
	}
	if c.store == nil {
		c.store = NewMemoryStore()
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}

	c.setup()
	return c, nil
}

// setup resumes the stored game or starts a new one.
func (c *Controller) setup() {
	if !c.resume() {
		c.fresh()
	}
	c.actuate()
}

func (c *Controller) resume() bool {
	state, err := c.store.Load()
	if err == nil && state != nil {
		err = c.restore(*state)
		if err == nil {
			return true
		}
	}
	if err == nil {
		return false
	}

	var restoreErr *RestoreError
	if errors.As(err, &restoreErr) {
		c.logger.Warn("discarding saved game", "error", err)
		if err := c.store.Clear(); err != nil {
			c.logger.Error("cannot clear saved game", "error", err)
		}
	} else {
		c.logger.Error("cannot load saved game", "error", err)
	}
	return false
}

func (c *Controller) restore(s State) error {
	if err := s.validate(); err != nil {
		return err
	}
	g, err := grid.Restore(s.Grid, grid.WithWinValue(c.winValue))
	if err != nil {
		return &RestoreError{Err: err}
	}

	c.grid = g
	c.score = s.Score
	c.moves = s.Moves
	c.over = s.Over
	c.won = s.Won
	c.keepPlaying = s.KeepPlaying
	c.phase = c.settledPhase()
	c.lastSpawn = nil
	return nil
}

func (c *Controller) fresh() {
	c.grid = grid.MustNew(c.size, grid.WithWinValue(c.winValue))
	c.score = 0
	c.moves = 0
	c.over = false
	c.won = false
	c.keepPlaying = false
	c.phase = Idle
	c.lastSpawn = nil

	for i := 0; i < c.startTiles; i++ {
		if _, err := c.classic.Place(c.grid, grid.Up); err != nil {
			break
		}
	}
}

// Restart discards the current and the stored game and starts over.
func (c *Controller) Restart() {
	if err := c.store.Clear(); err != nil {
		c.logger.Error("cannot clear saved game", "error", err)
	}
	c.fresh()
	c.actuate()
}

// KeepPlaying lets a won game continue.
func (c *Controller) KeepPlaying() {
	c.keepPlaying = true
	c.phase = c.settledPhase()
	c.actuate()
}

// Terminated reports whether moves are ignored: the game is lost, or won
// without keep-playing.
func (c *Controller) Terminated() bool {
	return c.over || (c.won && !c.keepPlaying)
}

// Move plays one turn. Moves on a terminated game, and moves that change
// nothing, return a zero-valued result without spawning a tile.
func (c *Controller) Move(d grid.Direction) (grid.MoveResult, error) {
	if !d.Valid() {
		return grid.MoveResult{}, fmt.Errorf("controller: move %d: %w", int(d), grid.ErrInvalidDirection)
	}
	if c.Terminated() {
		return grid.MoveResult{}, nil
	}

	c.phase = PlayerMoving
	result, err := c.grid.ApplyMove(d)
	if err != nil {
		c.phase = c.settledPhase()
		return grid.MoveResult{}, err
	}
	if !result.Moved {
		c.phase = c.settledPhase()
		return result, nil
	}

	if result.Won {
		c.won = true
	}
	c.score += result.ScoreGained
	c.moves++

	c.phase = AdversaryPlacing
	c.lastSpawn = nil
	p, err := c.nextSpawner().Place(c.grid, d)
	switch {
	case err == nil:
		c.lastSpawn = &p
	case !errors.Is(err, adversary.ErrBoardFull):
		c.phase = c.settledPhase()
		return result, fmt.Errorf("controller: cannot place tile: %w", err)
	}

	c.phase = CheckTerminal
	if !c.grid.MovesAvailable() {
		c.over = true
	}
	c.actuate()
	c.phase = c.settledPhase()
	return result, nil
}

func (c *Controller) nextSpawner() adversary.Spawner {
	if c.intensity == nil {
		return c.spawner
	}
	p := c.intensity(c.score, c.moves)
	switch {
	case p >= 1:
		return c.spawner
	case p <= 0:
		return c.classic
	case c.rng.Float64() < p:
		return c.spawner
	default:
		return c.classic
	}
}

func (c *Controller) settledPhase() Phase {
	switch {
	case c.over:
		return Lost
	case c.won && !c.keepPlaying:
		return Won
	default:
		return Idle
	}
}

// actuate records the best score, saves or clears the game and notifies
// the presenter.
func (c *Controller) actuate() {
	best, err := c.store.BestScore()
	if err != nil {
		c.logger.Error("cannot read best score", "error", err)
	}
	if best < c.score {
		best = c.score
		if err := c.store.SetBestScore(best); err != nil {
			c.logger.Error("cannot save best score", "error", err)
		}
	}

	if c.over {
		err = c.store.Clear()
	} else {
		err = c.store.Save(c.State())
	}
	if err != nil {
		c.logger.Error("cannot persist game", "error", err)
	}

	if c.presenter != nil {
		c.presenter.Present(c.grid, Meta{
			Score:      c.score,
			Over:       c.over,
			Won:        c.won,
			BestScore:  best,
			Terminated: c.Terminated(),
		})
	}
}

// State returns the persisted form of the game.
func (c *Controller) State() State {
	return State{
		Version:     StateVersion,
		Grid:        c.grid.Serialize(),
		Score:       c.score,
		Over:        c.over,
		Won:         c.won,
		KeepPlaying: c.keepPlaying,
		Moves:       c.moves,
	}
}

// Grid returns a copy of the board.
func (c *Controller) Grid() *grid.Grid {
	return c.grid.Clone()
}

// Phase returns the current turn phase.
func (c *Controller) Phase() Phase { return c.phase }

// Score returns the accumulated score.
func (c *Controller) Score() int { return c.score }

// Moves returns the number of moves that changed the board.
func (c *Controller) Moves() int { return c.moves }

// Won reports whether the win value has been reached.
func (c *Controller) Won() bool { return c.won }

// Over reports whether no move is left.
func (c *Controller) Over() bool { return c.over }

// LastSpawn returns the tile placed after the last move, if any.
func (c *Controller) LastSpawn() (adversary.Placement, bool) {
	if c.lastSpawn == nil {
		return adversary.Placement{}, false
	}
	return *c.lastSpawn, true
}

// KeepingOn reports whether play continues after a win.
func (c *Controller) KeepingOn() bool { return c.keepPlaying }
