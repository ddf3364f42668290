package rails

import railcore "github.com/vovakirdan/tui-rails/internal/games/rails/core"

// Snapshot represents the game state for testing and debugging.
type Snapshot struct {
	Cursor   railcore.Coord
	Selected int
	Status   string
	Paused   bool
	World    railcore.Snapshot
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Cursor:   g.cursor,
		Selected: g.selected,
		Status:   g.status,
		Paused:   g.paused,
		World:    g.session.Snapshot(),
	}
}
