package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/games/arena"
	"github.com/vovakirdan/snake-arena/internal/registry"
	"github.com/vovakirdan/snake-arena/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the best runs for the given arena mode (default: arena).

Examples:
  snake-arena scores
  snake-arena scores arena_solo --limit 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", storage.DefaultLimit, "Number of runs to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := string(arena.ModeArena)
	if len(args) == 1 {
		gameID = args[0]
	}

	info, ok := registry.Lookup(gameID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'snake-arena list' to see available modes.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake-arena play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %8s  %5s  %5s  %-12s  %s\n", "Rank", "Score", "Food", "Bonus", "Player", "When")
	fmt.Printf("  %-4s  %8s  %5s  %5s  %-12s  %s\n", "----", "-----", "----", "-----", "------", "----")
	for i, r := range scores {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %8s  %5d  %5d  %-12s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.Food, r.Bonus, player, humanize.Time(r.CreatedAt.Time))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %s   Runs: %d   Average: %.1f   Food eaten: %s\n",
			humanize.Comma(int64(stats.HighScore)), stats.GamesCount, stats.AvgScore, humanize.Comma(stats.TotalFood))
	}
}
