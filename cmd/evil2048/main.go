// evil2048 is a terminal 2048 where every new tile is placed by an
// adversary that looks for the most harmful cell.
//
// Usage:
//
//	evil2048 list              - List the game variants
//	evil2048 play [variant]    - Play a variant (default evil2048)
//	evil2048 menu              - Pick a variant and difficulty interactively
//	evil2048 scores [variant]  - Show high scores and stats
//	evil2048 simulate          - Run headless bot games against the adversary
//	evil2048 config [--init]   - Print or install the default config
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible games
//	--db <path>      - Set database path (default: ~/.evil2048/scores.db)
//	--config <path>  - Custom config YAML
//	--debug          - Log the adversary's decisions
//
// EVIL2048_DB, EVIL2048_CONFIG and EVIL2048_SEED override the defaults;
// they are also read from a .env file in the working directory.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/evil2048/internal/config"

	// Import games to register them
	_ "github.com/vovakirdan/evil2048/internal/games/evil2048"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "evil2048",
	Short: "Evil 2048 - the tile spawner is out to get you",
	Long: `Evil 2048 is 2048 in your terminal, except that every new tile is
placed by an adversary that picks the cell and value hurting you most.

Available commands:
  list      - Show the game variants
  play      - Play a variant directly
  menu      - Interactive variant and difficulty picker
  scores    - View high scores
  simulate  - Pit bots against the adversary
  config    - Print or install the default config

Examples:
  evil2048 play
  evil2048 play classic2048
  evil2048 play --difficulty easy
  evil2048 simulate --games 200 --bot greedy --parquet ./runs`,
}

func init() {
	// A missing .env is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", envInt64("EVIL2048_SEED", 0), "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", envString("EVIL2048_DB", "~/.evil2048/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", envString("EVIL2048_CONFIG", ""), "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, evil, classic")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log every adversary decision")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

// newLogger returns a logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "evil2048",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// fileLogger logs to ~/.evil2048/evil2048.log so that output does not
// garble the full-screen UI. It returns a closer for the file.
func fileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".evil2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "evil2048.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadConfig loads the config file and applies the --difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}
