package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/evil2048/internal/adversary"
	"github.com/vovakirdan/evil2048/internal/config"
	"github.com/vovakirdan/evil2048/internal/controller"
	"github.com/vovakirdan/evil2048/internal/games/evil2048"
	"github.com/vovakirdan/evil2048/internal/grid"
)

// botSeedMix separates the bot's random stream from the game's.
const botSeedMix = 0x5eed2048

// Options configures headless games.
type Options struct {
	Variant  evil2048.Variant
	Config   config.Config
	Strategy string // see StrategyNames

	// MaxMoves stops a game after that many board-changing moves; 0 means
	// play until the game is over.
	MaxMoves int
	// StopAtWin ends the game at the win value instead of keeping on.
	StopAtWin bool
	// RecordTurns keeps every turn in GameResult.Turns.
	RecordTurns bool

	Logger *log.Logger
}

// Turn is one player move and the tile spawned after it.
type Turn struct {
	Number    int
	Direction grid.Direction
	Result    grid.MoveResult
	Score     int
	Spawn     adversary.Placement
	Spawned   bool
	Board     *grid.Grid // after the spawn
}

// GameResult is the outcome of one headless game.
type GameResult struct {
	ID       string
	Seed     int64
	Variant  evil2048.Variant
	Strategy string
	Score    int
	Moves    int
	MaxTile  int
	Won      bool
	Duration time.Duration
	Turns    []Turn
}

// recorder remembers the last tile placed by the wrapped spawners.
type recorder struct {
	last adversary.Placement
	ok   bool
}

func (r *recorder) reset() {
	r.last, r.ok = adversary.Placement{}, false
}

func (r *recorder) wrap(s adversary.Spawner) adversary.Spawner {
	return &recordingSpawner{inner: s, rec: r}
}

type recordingSpawner struct {
	inner adversary.Spawner
	rec   *recorder
}

func (s *recordingSpawner) Place(g *grid.Grid, last grid.Direction) (adversary.Placement, error) {
	p, err := s.inner.Place(g, last)
	if err == nil {
		s.rec.last, s.rec.ok = p, true
	}
	return p, err
}

// Play runs one game with the given seed until it ends, MaxMoves is hit
// or ctx is cancelled. The same seed and options replay the same game.
func Play(ctx context.Context, seed int64, opts Options) (GameResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rng := rand.New(rand.NewSource(seed))
	bot, err := NewStrategy(opts.Strategy, opts.Config.Heuristic, rand.New(rand.NewSource(seed^botSeedMix)))
	if err != nil {
		return GameResult{}, err
	}

	rec := &recorder{}
	copts := evil2048.ControllerOptions(opts.Variant, opts.Config, rng, logger)
	copts.Spawner = rec.wrap(copts.Spawner)
	copts.Classic = rec.wrap(copts.Classic)
	copts.Store = controller.NewMemoryStore()

	ctrl, err := controller.New(copts)
	if err != nil {
		return GameResult{}, fmt.Errorf("autoplay: %w", err)
	}

	res := GameResult{
		ID:       uuid.NewString(),
		Seed:     seed,
		Variant:  opts.Variant,
		Strategy: bot.Name(),
	}
	start := time.Now()

	for {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if ctrl.Terminated() {
			if ctrl.Won() && !ctrl.Over() && !opts.StopAtWin {
				ctrl.KeepPlaying()
				continue
			}
			break
		}
		if opts.MaxMoves > 0 && ctrl.Moves() >= opts.MaxMoves {
			break
		}

		d, ok := bot.NextMove(ctrl.Grid())
		if !ok {
			break
		}
		rec.reset()
		result, err := ctrl.Move(d)
		if err != nil {
			return GameResult{}, fmt.Errorf("autoplay: %w", err)
		}
		if !result.Moved {
			break
		}
		if opts.RecordTurns {
			res.Turns = append(res.Turns, Turn{
				Number:    ctrl.Moves(),
				Direction: d,
				Result:    result,
				Score:     ctrl.Score(),
				Spawn:     rec.last,
				Spawned:   rec.ok,
				Board:     ctrl.Grid(),
			})
		}
	}

	board := ctrl.Grid()
	res.Score = ctrl.Score()
	res.Moves = ctrl.Moves()
	res.MaxTile = board.MaxTile()
	res.Won = ctrl.Won()
	res.Duration = time.Since(start)

	logger.Debug("game finished",
		"id", res.ID,
		"seed", seed,
		"score", res.Score,
		"moves", res.Moves,
		"max_tile", res.MaxTile,
	)
	return res, nil
}

// RunMany plays n games seeded baseSeed, baseSeed+1, ... with at most
// parallel games at a time. Results are in seed order. The first error
// cancels the remaining games.
func RunMany(ctx context.Context, n int, baseSeed int64, parallel int, opts Options) ([]GameResult, error) {
	if n < 0 {
		return nil, errors.New("autoplay: negative game count")
	}
	if parallel < 1 {
		parallel = 1
	}

	results := make([]GameResult, n)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			res, err := Play(ctx, baseSeed+int64(i), opts)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
