package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rails/internal/config"
	"github.com/vovakirdan/tui-rails/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available games and difficulty presets",
	Long:  `Shows the registered games and the difficulty presets they accept.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Difficulty presets:")
	fmt.Println()
	for _, p := range config.Presets() {
		fmt.Printf("  %-8s  %s\n", p, p.Description())
	}

	fmt.Println()
	fmt.Println("Run 'rails play --difficulty <preset>' to play.")
}
