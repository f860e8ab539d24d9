package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/evil2048/internal/games/evil2048"
	"github.com/vovakirdan/evil2048/internal/registry"
	"github.com/vovakirdan/evil2048/internal/storage"
)

var (
	flagLimit       int
	flagAllScores   bool
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the top scores and overall stats for a variant
(default evil2048).

Examples:
  evil2048 scores
  evil2048 scores classic2048 --limit 25
  evil2048 scores --all
  evil2048 scores classic2048 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagAllScores, "all", false, "Show every recorded score")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores for the variant")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := evil2048.IDEvil
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'evil2048 list' to see available variants.")
		os.Exit(1)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores for %s\n", game.Title())
		return
	}

	var scores []storage.ScoreEntry
	if flagAllScores {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	best, err := store.HighScore(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving high score: %v\n", err)
		return
	}
	fmt.Printf("High Scores - %s (best: %d)\n", game.Title(), best)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'evil2048 play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "Rank", "Score", "Tile", "Moves", "Won", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-3s  %s\n", "----", "-----", "----", "-----", "---", "----")
	for i, e := range scores {
		won := ""
		if e.Won {
			won = "yes"
		}
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-3s  %s\n",
			i+1, e.Score, e.MaxTile, e.Moves, won, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.Stats(gameID)
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Printf("Games: %d  Won: %d (%.1f%%)  Average: %.0f  Best tile: %d\n",
		st.Games, st.Wins, st.WinRate()*100, st.AverageScore, st.BestTile)
}
