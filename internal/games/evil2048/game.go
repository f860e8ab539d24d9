// Package evil2048 adapts the game controller to the platform's
// tick-driven Game interface and registers the evil and classic variants.
package evil2048

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/evil2048/internal/adversary"
	"github.com/vovakirdan/evil2048/internal/config"
	"github.com/vovakirdan/evil2048/internal/controller"
	"github.com/vovakirdan/evil2048/internal/core"
	"github.com/vovakirdan/evil2048/internal/grid"
	"github.com/vovakirdan/evil2048/internal/registry"
)

// Variant selects how tiles are spawned.
type Variant string

const (
	VariantEvil    Variant = "evil"
	VariantClassic Variant = "classic"
)

// Registry IDs of the variants.
const (
	IDEvil    = "evil2048"
	IDClassic = "classic2048"
)

// Game is a 2048 game driven by platform input frames.
type Game struct {
	variant Variant
	cfg     config.Config
	store   controller.Store
	logger  *log.Logger

	ctrl  *controller.Controller
	tick  uint64
	meta  controller.Meta
	spawn spawnMark

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool
}

// New creates an evil 2048 game.
func New() *Game {
	return &Game{variant: VariantEvil, cfg: config.Default()}
}

// NewClassic creates a 2048 game with the classic random spawn.
func NewClassic() *Game {
	return &Game{variant: VariantClassic, cfg: config.Default()}
}

func init() {
	registry.Register(IDEvil, func() registry.Game {
		return New()
	})
	registry.Register(IDClassic, func() registry.Game {
		return NewClassic()
	})
}

// UseConfig sets the configuration applied by the next Reset.
func (g *Game) UseConfig(cfg config.Config) {
	g.cfg = cfg
}

// UseStore attaches the store used to resume and save games. Without one
// the game lives in memory only.
func (g *Game) UseStore(s controller.Store) {
	g.store = s
}

// UseLogger sets the logger for controller warnings and, at debug level,
// the adversary's placement trace.
func (g *Game) UseLogger(l *log.Logger) {
	g.logger = l
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantClassic {
		return IDClassic
	}
	return IDEvil
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantClassic {
		return "2048 (Classic)"
	}
	return "Evil 2048"
}

// Description returns a one-line summary for menus and the list command.
func (g *Game) Description() string {
	if g.variant == VariantClassic {
		return "Tiles spawn at random, as in classic 2048"
	}
	return "Every new tile is placed where it hurts most"
}

// Variant returns the spawn variant.
func (g *Game) Variant() Variant {
	return g.variant
}

// Reset initializes the game, resuming the stored one if present.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger := g.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	opts := ControllerOptions(g.variant, g.cfg, rng, logger)
	opts.Store = g.store
	opts.Presenter = controller.PresenterFunc(g.present)

	g.tick = 0
	g.paused = false
	g.spawn = spawnMark{}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH

	ctrl, err := controller.New(opts)
	if err != nil {
		// Invalid board settings; fall back to the built-in board.
		logger.Error("invalid board configuration", "error", err)
		opts.Size, opts.WinValue, opts.StartTiles = 0, 0, 0
		if ctrl, err = controller.New(opts); err != nil {
			panic(fmt.Sprintf("evil2048: default board rejected: %v", err))
		}
	}
	g.ctrl = ctrl

	g.checkScreenSize()
}

// ControllerOptions builds the controller options for a variant: board
// settings from cfg, the classic spawner, and for the evil variant the
// adversary with its difficulty ramp. Store and Presenter are left unset.
func ControllerOptions(variant Variant, cfg config.Config, rng *rand.Rand, logger *log.Logger) controller.Options {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts := controller.Options{
		Size:       cfg.Board.Size,
		WinValue:   cfg.Board.WinValue,
		StartTiles: cfg.Board.StartTiles,
		Random:     rng,
		Logger:     logger,
	}
	classic := adversary.NewRandomSpawner(rng)
	classic.Chance2 = cfg.Adversary.FallbackChance2
	opts.Classic = classic

	if variant == VariantClassic {
		opts.Spawner = classic
		return opts
	}

	placerOpts := []adversary.Option{
		adversary.WithParams(cfg.Adversary),
		adversary.WithWeights(cfg.Heuristic),
	}
	if logger.GetLevel() <= log.DebugLevel {
		placerOpts = append(placerOpts, adversary.WithObserver(adversary.LogObserver{Logger: logger}))
	}
	opts.Spawner = adversary.NewPlacer(rng, placerOpts...)
	opts.Intensity = config.NewDifficultyManager(cfg.Difficulty).Level
	return opts
}

func (g *Game) present(_ *grid.Grid, m controller.Meta) {
	g.meta = m
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardDims(g.ctrl.Grid().Size())
	minW := boardW + 4
	minH := boardH + hudHeight + 3
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize updates the screen dimensions.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.advanceSpawnMark()

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.ctrl.Restart()
		g.spawn = spawnMark{}
		return core.StepResult{State: g.State(), Restarted: true}
	}

	if in.Has(core.ActionContinue) && g.ctrl.Won() && !g.ctrl.KeepingOn() {
		g.ctrl.KeepPlaying()
		return core.StepResult{State: g.State()}
	}

	dir, ok := direction(in)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	result, err := g.ctrl.Move(dir)
	if err != nil {
		return core.StepResult{State: g.State()}
	}
	if result.Moved {
		g.markSpawn()
	}
	return core.StepResult{State: g.State(), Moved: result.Moved}
}

// direction maps the first movement action in the frame to a direction.
func direction(in core.InputFrame) (grid.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return grid.Up, true
	case in.Has(core.ActionRight):
		return grid.Right, true
	case in.Has(core.ActionDown):
		return grid.Down, true
	case in.Has(core.ActionLeft):
		return grid.Left, true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.ctrl.Score(),
		BestScore: g.meta.BestScore,
		GameOver:  g.ctrl.Over(),
		Won:       g.ctrl.Won() && !g.ctrl.KeepingOn(),
		Paused:    g.paused || g.tooSmall,
	}
}

// Controller exposes the underlying controller.
func (g *Game) Controller() *controller.Controller {
	return g.ctrl
}

// ParseVariant converts a variant name or registry ID.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case string(VariantEvil), IDEvil:
		return VariantEvil, nil
	case string(VariantClassic), IDClassic:
		return VariantClassic, nil
	}
	return "", fmt.Errorf("evil2048: unknown variant %q", s)
}
