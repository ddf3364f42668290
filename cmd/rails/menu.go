package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rails/internal/games/rails"
	"github.com/vovakirdan/tui-rails/internal/platform/tui"
	"github.com/vovakirdan/tui-rails/internal/registry"
	"github.com/vovakirdan/tui-rails/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the difficulty picker",
	Long: `Start in interactive menu mode.

Pick a difficulty with the arrow keys or j/k and press Enter to play.
After a game ends, press Esc/B to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start a game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  rails menu
  rails menu --fps 30
  rails menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, rails.ID, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			break
		}

		game, err := registry.Create(rails.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			break
		}

		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
		// A fixed --seed only applies to the first game
		cfg.Seed = 0
	}

	if store != nil {
		store.Close()
	}
}
