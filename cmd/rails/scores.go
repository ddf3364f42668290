package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rails/internal/games/rails"
	"github.com/vovakirdan/tui-rails/internal/storage"
)

var flagRuns int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 high scores, the most recent runs with the seed
and difficulty needed to replay them, and overall statistics.

Examples:
  rails scores
  rails scores --runs 20
  rails scores --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(rails.ID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Rails")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rails play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	runs, err := store.RecentRuns(rails.ID, flagRuns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}
	if len(runs) > 0 {
		fmt.Println()
		fmt.Println("Recent runs:")
		fmt.Println()
		fmt.Printf("  %-8s  %-6s  %-9s  %-6s  %-20s  %s\n", "Run", "Score", "Delivered", "Time", "Seed", "Difficulty")
		for _, r := range runs {
			fmt.Printf("  %-8s  %-6d  %-9d  %-6s  %-20d  %s\n",
				r.RunID[:8], r.Score, r.Delivered, clock(r.Elapsed), r.Seed, r.Difficulty)
		}
	}

	stats, err := store.GetGameStats(rails.ID)
	if err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d   Games: %d   Average: %.1f   Last played: %s\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// clock formats d as m:ss.
func clock(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
