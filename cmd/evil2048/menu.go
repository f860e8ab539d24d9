package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evil2048/internal/config"
	"github.com/vovakirdan/evil2048/internal/platform/tui"
	"github.com/vovakirdan/evil2048/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and difficulty interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a variant and left/right to change the
difficulty of Evil 2048. After a game you return to the menu.

Controls:
  Up/Down/j/k     - Navigate
  Left/Right/h/l  - Difficulty
  Enter/Space     - Play
  Tab             - High scores
  Q               - Quit

Examples:
  evil2048 menu
  evil2048 menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	base, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	preset := config.DifficultyEvil
	if flagDifficulty != "" {
		if preset, err = config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog := fileLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	rc := runtimeConfig()
	for {
		res, err := tui.RunMenu(rc, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		rc = res.Config
		preset = res.Preset

		if res.Quit {
			return
		}
		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue
			}
			return
		}

		cfg := base
		config.ApplyPreset(&cfg, preset)
		game, err := newGame(res.GameID, cfg, store, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		if flagSeed == 0 {
			rc.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, store, logger, rc); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
