package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/evil2048/internal/config"
	"github.com/vovakirdan/evil2048/internal/core"
	"github.com/vovakirdan/evil2048/internal/games/evil2048"
	"github.com/vovakirdan/evil2048/internal/platform/tui"
	"github.com/vovakirdan/evil2048/internal/registry"
	"github.com/vovakirdan/evil2048/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default evil2048). An unfinished
game is saved on quit and resumed next time.

Controls:
  Arrows/WASD/HJKL  - Slide tiles
  C/Enter           - Keep playing after 2048
  R                 - Restart
  P/Space           - Pause
  Q/Ctrl+C          - Quit (the game is saved)
  Ctrl+S            - Screenshot to ~/.evil2048/screenshots

Difficulty presets (evil2048 only):
  easy    - Adversary places 25% of tiles, rising to 100% by score 4096
  normal  - Starts at 60%, rising to 100%
  evil    - Every tile is placed by the adversary (default)
  classic - Every tile is random

Examples:
  evil2048 play
  evil2048 play classic2048
  evil2048 play --difficulty easy
  evil2048 play --config ./my-evil.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := evil2048.IDEvil
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'evil2048 list' to see available variants.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	game, err := newGame(gameID, cfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, store, logger, runtimeConfig())

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the screen to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// newGame creates a variant wired to the config, the store's save slot
// and the logger.
func newGame(gameID string, cfg config.Config, store *storage.Store, logger *log.Logger) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if g, ok := game.(*evil2048.Game); ok {
		g.UseConfig(cfg)
		g.UseLogger(logger)
		if store != nil {
			g.UseStore(store.Slot(gameID))
		}
	}
	return game, nil
}
