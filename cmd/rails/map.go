package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rails/internal/games/rails"
)

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print a generated map",
	Long: `Generate the starting map for a seed and print it as text.

Legend:
  ~~  water      ^   mountain      .   grass
  ●■▲ stations, followed by the number of waiting passengers

Examples:
  rails map --seed 7
  rails map --seed 7 --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runMap,
}

func runMap(_ *cobra.Command, _ []string) {
	s, preset, err := rails.NewSession(flagConfig, flagDifficulty, seed())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, line := range rails.MapLines(s.Snapshot()) {
		fmt.Println(line)
	}

	report := s.Terrain()
	p := s.Params()
	fmt.Println()
	fmt.Printf("%dx%d [%s]  water %d  mountains %d  grass %d  blobs %d  stations %d\n",
		p.Cols, p.Rows, preset, report.Water, report.Mountains, report.Grass, report.Blobs, s.StationCount())
}
