package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evil2048/internal/autoplay"
	"github.com/vovakirdan/evil2048/internal/games/evil2048"
	"github.com/vovakirdan/evil2048/internal/record"
	"github.com/vovakirdan/evil2048/internal/storage"
)

var (
	flagGames     int
	flagParallel  int
	flagBot       string
	flagVariant   string
	flagMaxMoves  int
	flagStopAtWin bool
	flagParquet   string
	flagTurns     bool
	flagSaveScore bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless bot games",
	Long: `Play many games without a UI, with a bot moving for the player,
and report how far it gets. Games are seeded --seed, --seed+1, ...
so a run can be repeated exactly.

Bots:
  greedy - one-move lookahead with the adversary's own heuristic
  random - a random move that changes the board

With --parquet DIR the run writes DIR/games.parquet and, with --turns,
DIR/turns.parquet holding every move and spawned tile.

Examples:
  evil2048 simulate --games 100
  evil2048 simulate --variant classic --bot random --games 1000
  evil2048 simulate --difficulty easy --parquet ./runs --turns`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagGames, "games", 20, "Number of games")
	simulateCmd.Flags().IntVar(&flagParallel, "parallel", runtime.NumCPU(), "Games played at once")
	simulateCmd.Flags().StringVar(&flagBot, "bot", "greedy", "Player bot: "+strings.Join(autoplay.StrategyNames, ", "))
	simulateCmd.Flags().StringVar(&flagVariant, "variant", string(evil2048.VariantEvil), "Variant: evil or classic")
	simulateCmd.Flags().IntVar(&flagMaxMoves, "max-moves", 0, "Stop each game after this many moves (0 = no limit)")
	simulateCmd.Flags().BoolVar(&flagStopAtWin, "stop-at-win", false, "End a game when it reaches the win value")
	simulateCmd.Flags().StringVar(&flagParquet, "parquet", "", "Directory for Parquet output")
	simulateCmd.Flags().BoolVar(&flagTurns, "turns", false, "Also write every turn (with --parquet)")
	simulateCmd.Flags().BoolVar(&flagSaveScore, "save-scores", false, "Record the games in the scores database")
}

func runSimulate(cmd *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr)

	variant, err := evil2048.ParseVariant(flagVariant)
	if err != nil {
		logger.Fatal("bad variant", "error", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal("cannot load config", "error", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("simulating",
		"games", flagGames,
		"variant", variant,
		"bot", flagBot,
		"seed", seed,
		"parallel", flagParallel,
	)
	start := time.Now()
	results, err := autoplay.RunMany(ctx, flagGames, seed, flagParallel, autoplay.Options{
		Variant:     variant,
		Config:      cfg,
		Strategy:    flagBot,
		MaxMoves:    flagMaxMoves,
		StopAtWin:   flagStopAtWin,
		RecordTurns: flagParquet != "" && flagTurns,
		Logger:      logger,
	})
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}

	sum := autoplay.Summarize(results)
	logger.Info("done",
		"games", sum.Games,
		"wins", sum.Wins,
		"best", sum.BestScore,
		"mean", fmt.Sprintf("%.1f", sum.MeanScore),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	printSummary(sum)

	if flagParquet != "" {
		if err := writeParquet(flagParquet, results); err != nil {
			logger.Fatal("cannot write parquet", "error", err)
		}
		logger.Info("wrote parquet", "dir", flagParquet)
	}

	if flagSaveScore {
		if err := saveScores(results); err != nil {
			logger.Error("cannot save scores", "error", err)
		}
	}
}

func printSummary(sum autoplay.Summary) {
	fmt.Println()
	fmt.Printf("Games:      %d\n", sum.Games)
	fmt.Printf("Won:        %d (%.1f%%)\n", sum.Wins, sum.WinRate()*100)
	fmt.Printf("Best score: %d\n", sum.BestScore)
	fmt.Printf("Mean score: %.1f\n", sum.MeanScore)
	fmt.Printf("Mean moves: %.1f\n", sum.MeanMoves)
	fmt.Println()
	fmt.Println("  Max tile  Games")
	fmt.Println("  --------  -----")
	for _, tile := range sum.Tiles() {
		fmt.Printf("  %-8d  %d\n", tile, sum.TileCounts[tile])
	}
}

func writeParquet(dir string, results []autoplay.GameResult) error {
	games := make([]record.GameRow, 0, len(results))
	var turns []record.TurnRow
	for _, r := range results {
		games = append(games, r.GameRow())
		turns = append(turns, r.TurnRows()...)
	}
	if err := record.WriteGames(filepath.Join(dir, "games.parquet"), games); err != nil {
		return err
	}
	if len(turns) == 0 {
		return nil
	}
	return record.WriteTurns(filepath.Join(dir, "turns.parquet"), turns)
}

func saveScores(results []autoplay.GameResult) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	gameID := evil2048.IDEvil
	if len(results) > 0 && results[0].Variant == evil2048.VariantClassic {
		gameID = evil2048.IDClassic
	}
	for _, r := range results {
		if _, err := store.SaveScore(storage.ScoreEntry{
			GameID:  gameID,
			Score:   r.Score,
			MaxTile: r.MaxTile,
			Moves:   r.Moves,
			Won:     r.Won,
		}); err != nil {
			return err
		}
	}
	return nil
}
