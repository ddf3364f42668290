package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rails/internal/config"
	"github.com/vovakirdan/tui-rails/internal/core"
	"github.com/vovakirdan/tui-rails/internal/games/rails"
	"github.com/vovakirdan/tui-rails/internal/platform/tui"
	"github.com/vovakirdan/tui-rails/internal/registry"
	"github.com/vovakirdan/tui-rails/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing with the selected difficulty.

Controls:
  Arrows/WASD/HJKL  - Move the cursor
  Enter/Space       - Select a station, then a second one to build a rail
  C                 - Cancel the selection
  X/Backspace       - Erase the rail under the cursor
  T                 - Buy a train on the rail under the cursor
  E                 - Add a wagon to the train under the cursor
  P                 - Pause
  R                 - Restart
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - More time between passengers and stations
  normal - Default pacing
  hard   - Stations fill up quickly
  fixed  - Exactly what the config file says

Examples:
  rails play
  rails play --difficulty easy
  rails play --seed 42
  rails play --config ./my-rails.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(rails.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	runErr := tui.Run(game, store, runtimeConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig builds the platform config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Difficulty = flagDifficulty
	return cfg
}
