package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rails/internal/games/rails"
	"github.com/vovakirdan/tui-rails/internal/storage"
)

var (
	flagSeconds float64
	flagRecord  bool
	flagShowMap bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
	Long: `Run the simulation without a terminal UI. A simple autoplayer connects
every new station to the closest reachable one and buys a train on each new
connection. The run ends after --seconds of game time or on game over.

Examples:
  rails sim --seed 42
  rails sim --seconds 600 --difficulty hard
  rails sim --seed 42 --record --map`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSeconds, "seconds", 300, "Simulated game time in seconds")
	simCmd.Flags().BoolVar(&flagRecord, "record", false, "Store the result in the scores database")
	simCmd.Flags().BoolVar(&flagShowMap, "map", false, "Print the final map")
}

func runSim(_ *cobra.Command, _ []string) {
	if flagFPS <= 0 || flagSeconds <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --fps and --seconds must be positive")
		os.Exit(1)
	}

	runSeed := seed()
	rails.SetLogger(logger.WithPrefix("sim"))
	s, preset, err := rails.NewSession(flagConfig, flagDifficulty, runSeed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	res := rails.Autoplay(s, flagSeconds, 1/float64(flagFPS))
	logger.Debug("simulation finished",
		"ticks", res.Ticks,
		"connections", res.Connections,
		"rejected", res.Rejected,
		"trains", res.Trains,
		"wall", time.Since(start),
	)

	if flagShowMap {
		for _, line := range rails.MapLines(s.Snapshot()) {
			fmt.Println(line)
		}
		fmt.Println()
	}
	fmt.Printf("seed %d [%s]: %s\n", runSeed, preset, rails.Summary(s))

	if !flagRecord {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runID, err := store.SaveRun(storage.RunSummary{
		GameID:     rails.ID,
		Seed:       runSeed,
		Difficulty: string(preset),
		Score:      s.Score(),
		Delivered:  s.Delivered(),
		Elapsed:    time.Duration(s.Elapsed() * float64(time.Second)),
		Stations:   s.StationCount(),
		Trains:     s.TrainCount(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving run: %v\n", err)
		return
	}
	fmt.Printf("recorded run %s\n", runID)
}
