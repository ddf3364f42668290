// rails is a terminal rail-transport game: connect stations, run trains and
// deliver passengers before any station overflows.
//
// Usage:
//
//	rails list               - List available games
//	rails play               - Play a game directly
//	rails menu               - Start with the difficulty picker
//	rails serve              - Start SSH server for remote play
//	rails scores             - Show high scores and recent runs
//	rails map                - Print a generated map as text
//	rails sim                - Run a headless autoplay simulation
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.rails/scores.db)
//	--config <path>       - Use a custom rails.yaml
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--otel                - Export traces over OTLP HTTP
//	--debug               - Verbose logging
//
// Every flag except --fps can also be set through RAILS_DB, RAILS_SEED,
// RAILS_CONFIG and RAILS_DIFFICULTY, read from the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rails/internal/games/rails"
	"github.com/vovakirdan/tui-rails/internal/telemetry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagOtel       bool
	flagDebug      bool
)

var (
	logger        = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "rails"})
	otelShutdown  func(context.Context) error
	shutdownLimit = 5 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", "err", err)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rails",
	Short: "TUI Rails - Build a railway in your terminal",
	Long: `TUI Rails is a terminal rail-transport game. Stations of three shapes
appear on a generated map; connect them with rails, buy trains and deliver
passengers to a station of their destination shape before any station
overflows.

Available commands:
  list     - Show all available games
  play     - Play directly with the selected difficulty
  menu     - Pick a difficulty interactively
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  map      - Print a generated map
  sim      - Run a headless simulation

Examples:
  rails play
  rails play --difficulty hard --seed 42
  rails menu
  rails serve --ssh :2222
  rails map --seed 7
  rails sim --seconds 300 --record`,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.rails/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rails config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagOtel, "otel", false, "Export traces to the OTLP endpoint from OTEL_EXPORTER_OTLP_*")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mapCmd)
	rootCmd.AddCommand(simCmd)
}

// setup applies environment overrides to flags the user did not set, then
// configures logging, the game config path and tracing.
func setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	envString := func(name, env string, dst *string) {
		if v, ok := os.LookupEnv(env); ok && !flags.Changed(name) {
			*dst = v
		}
	}
	envString("db", "RAILS_DB", &flagDBPath)
	envString("config", "RAILS_CONFIG", &flagConfig)
	envString("difficulty", "RAILS_DIFFICULTY", &flagDifficulty)
	if v, ok := os.LookupEnv("RAILS_SEED"); ok && !flags.Changed("seed") {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid RAILS_SEED %q: %w", v, err)
		}
		flagSeed = seed
	}

	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	rails.SetConfigPath(flagConfig)

	if flagOtel {
		shutdown, err := telemetry.Setup(cmd.Context())
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		otelShutdown = shutdown
		logger.Debug("tracing enabled")
	}
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if otelShutdown == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownLimit)
	defer cancel()
	return otelShutdown(ctx)
}

// seed returns the --seed value, or a time-based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}
