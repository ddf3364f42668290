package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rails/internal/core"
	"github.com/vovakirdan/tui-rails/internal/storage"
)

// scriptedGame ends after a fixed number of steps.
type scriptedGame struct {
	steps    int
	endAfter int
	resets   int
	paused   bool
}

func (g *scriptedGame) ID() string    { return "rails" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused && g.steps < g.endAfter {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawTextColor(0, 0, "scripted", core.ColorGreen)
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Score:    g.steps,
		GameOver: g.steps >= g.endAfter,
		Paused:   g.paused,
		Stats:    core.RunStats{Delivered: g.steps, Elapsed: 1.5, Stations: 2, Trains: 1},
	}
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func pressKey(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelRecordsRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	game := &scriptedGame{endAfter: 3}
	m := NewModel(game, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 99, Difficulty: "hard"})
	m.Init()

	for i := 0; i < 10; i++ {
		m = tick(t, m)
	}
	if m.LastRunID() == "" {
		t.Fatal("run should be recorded at game over")
	}

	runs, err := store.RecentRuns("rails", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one run, got %d", len(runs))
	}
	r := runs[0]
	if r.Seed != 99 || r.Score != 3 || r.Difficulty != "hard" || r.Stations != 2 || r.Trains != 1 {
		t.Errorf("run = %+v", r)
	}
	if high, _ := store.HighScore("rails"); high != 3 {
		t.Errorf("high score = %d, expected 3", high)
	}
}

func TestModelRestartGetsNewSeed(t *testing.T) {
	game := &scriptedGame{endAfter: 2}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 5})
	m.Init()

	m = tick(t, m)
	m = tick(t, m)
	m = pressKey(t, m, runeKey('r'))
	m = tick(t, m)

	if game.resets != 2 {
		t.Errorf("resets = %d, expected 2", game.resets)
	}
	if m.config.Seed == 5 {
		t.Error("restart should pick a new seed")
	}
	if m.gameState.GameOver {
		t.Error("game over should clear after restart")
	}
}

func TestModelBackOnlyWhenPausedOrOver(t *testing.T) {
	game := &scriptedGame{endAfter: 1000}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m.Init()
	m = tick(t, m)

	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back must be ignored while playing")
	}
	m = tick(t, m)

	m = pressKey(t, m, runeKey('p'))
	m = tick(t, m)
	m = pressKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&scriptedGame{endAfter: 10}, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, Seed: 1})
	m.Init()
	next, cmd := m.Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelView(t *testing.T) {
	m := NewModel(&scriptedGame{endAfter: 10}, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 3, Seed: 1})
	m.Init()
	if !strings.Contains(m.View(), "scripted") {
		t.Error("view should contain the game's rendering")
	}
}
