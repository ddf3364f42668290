// Package rails wires the rail-transport simulation into the platform: a
// cursor-driven command layer over core.Session plus a character renderer.
package rails

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rails/internal/config"
	"github.com/vovakirdan/tui-rails/internal/core"
	railcore "github.com/vovakirdan/tui-rails/internal/games/rails/core"
	"github.com/vovakirdan/tui-rails/internal/registry"
)

// ID is the registry and storage identifier of the game.
const ID = "rails"

// statusTicks is how long a status message stays visible, in ticks at 60 FPS.
const statusTicks = 150

// Package-level settings shared by every instance the registry creates.
var (
	configPath string
	logger     = log.New(io.Discard)
)

// SetConfigPath sets a custom config file path for subsequent games.
func SetConfigPath(path string) {
	configPath = path
}

// SetLogger routes session events of subsequent games to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements registry.Game for the rail-transport simulation.
type Game struct {
	session *railcore.Session
	preset  config.DifficultyPreset
	dt      float64

	cursor   railcore.Coord
	selected int // Station ID or railcore.NoStation
	status   string
	statusFG core.Color
	statusTk int
	paused   bool

	screenW int
	screenH int
}

// New creates a rails game. Reset must be called before use.
func New() *Game {
	return &Game{selected: railcore.NoStation}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Rails"
}

// Reset builds a fresh world from the configuration, the difficulty preset
// and the seed in cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rc, err := config.LoadRails(configPath)
	if err != nil {
		logger.Warn("using default rails config", "err", err)
		rc = config.DefaultRailsConfig()
	}

	preset, err := config.ParsePreset(cfg.Difficulty)
	if err != nil {
		logger.Warn("unknown difficulty, using normal", "difficulty", cfg.Difficulty)
		preset = config.DifficultyNormal
	}
	config.ApplyRailsPreset(&rc, preset)

	g.preset = preset
	g.session = railcore.NewEmptySession(rc.ToParams(), cfg.Seed)
	g.session.SetLogger(logger)
	g.session.Restart()

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	g.dt = 1.0 / float64(tickRate)
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.resetCursor()
	g.setStatus("Connect the stations with rails", core.ColorGray)
}

// resetCursor clears the selection and centers the cursor on the map.
func (g *Game) resetCursor() {
	p := g.session.Params()
	g.cursor = railcore.C(p.Rows/2, p.Cols/2)
	g.selected = railcore.NoStation
}

// Step applies the input of one frame and advances the simulation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.session.Restart()
		g.paused = false
		g.resetCursor()
		g.setStatus("New map", core.ColorGray)
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.session.GameOver() {
		g.paused = !g.paused
	}

	if g.statusTk > 0 {
		g.statusTk--
		if g.statusTk == 0 {
			g.status = ""
		}
	}

	if g.paused || g.session.GameOver() {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	g.handleCommands(in)
	g.session.Tick(g.dt)

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	p := g.session.Params()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row = core.Clamp(g.cursor.Row-1, 0, p.Rows-1)
	case in.Has(core.ActionDown):
		g.cursor.Row = core.Clamp(g.cursor.Row+1, 0, p.Rows-1)
	case in.Has(core.ActionLeft):
		g.cursor.Col = core.Clamp(g.cursor.Col-1, 0, p.Cols-1)
	case in.Has(core.ActionRight):
		g.cursor.Col = core.Clamp(g.cursor.Col+1, 0, p.Cols-1)
	}
}

func (g *Game) handleCommands(in core.InputFrame) {
	switch {
	case in.Has(core.ActionConfirm):
		g.confirm()
	case in.Has(core.ActionCancel):
		if g.selected != railcore.NoStation {
			g.selected = railcore.NoStation
			g.setStatus("Selection cleared", core.ColorGray)
		}
	case in.Has(core.ActionErase):
		g.erase()
	case in.Has(core.ActionTrain):
		g.spawnTrain()
	case in.Has(core.ActionWagon):
		g.addWagon()
	}
}

// confirm runs the station connection flow: the first station is selected,
// the same station again deselects, another station gets connected.
func (g *Game) confirm() {
	id := g.session.StationAt(g.cursor)
	switch {
	case id == railcore.NoStation:
		g.setStatus("Move the cursor onto a station", core.ColorGray)
	case g.selected == railcore.NoStation:
		g.selected = id
		g.setStatus(fmt.Sprintf("Station %d selected, pick another to connect", id), core.ColorCyan)
	case g.selected == id:
		g.selected = railcore.NoStation
		g.setStatus("Selection cleared", core.ColorGray)
	default:
		from := g.selected
		g.selected = railcore.NoStation
		if err := g.session.TryBuildRail(from, id); err != nil {
			g.setError(err)
			return
		}
		g.setStatus(fmt.Sprintf("Connected station %d to %d", from, id), core.ColorGreen)
	}
}

func (g *Game) erase() {
	if !g.session.HasRailAt(g.cursor.Row, g.cursor.Col) {
		g.setStatus("No rail here", core.ColorGray)
		return
	}
	before, trains := g.session.Score(), g.session.TrainCount()
	g.session.EraseRailAt(g.cursor.Row, g.cursor.Col)
	if lost := trains - g.session.TrainCount(); lost > 0 {
		g.setStatus(fmt.Sprintf("Removed %d train(s), refunded %d", lost, g.session.Score()-before), core.ColorOrange)
		return
	}
	g.setStatus("Rail removed", core.ColorGray)
}

func (g *Game) spawnTrain() {
	if !g.session.HasRailAt(g.cursor.Row, g.cursor.Col) {
		g.setStatus("Trains need a rail to stand on", core.ColorGray)
		return
	}
	id, err := g.session.TrySpawnTrain(g.cursor.Row, g.cursor.Col)
	if err != nil {
		g.setError(err)
		return
	}
	g.setStatus(fmt.Sprintf("Train %d departs", id), core.ColorGreen)
}

func (g *Game) addWagon() {
	id, ok := g.session.TrainAt(g.cursor)
	if !ok {
		g.setStatus("No train here", core.ColorGray)
		return
	}
	if err := g.session.TryAddWagon(id); err != nil {
		g.setError(err)
		return
	}
	g.setStatus(fmt.Sprintf("Wagon added to train %d", id), core.ColorGreen)
}

func (g *Game) setStatus(msg string, fg core.Color) {
	g.status = msg
	g.statusFG = fg
	g.statusTk = statusTicks
}

func (g *Game) setError(err error) {
	g.setStatus(errorMessage(err, g.session.Params()), core.ColorRed)
}

// errorMessage turns a command rejection into a line for the status bar.
func errorMessage(err error, p railcore.Params) string {
	switch {
	case errors.Is(err, railcore.ErrJunction):
		return "Rails cannot branch: a cell may join at most two neighbours"
	case errors.Is(err, railcore.ErrUnreachable):
		return "No route between those stations"
	case errors.Is(err, railcore.ErrInsufficientPoints):
		return fmt.Sprintf("Not enough points (train %d, wagon %d)", p.TrainCost, p.WagonCost)
	case errors.Is(err, railcore.ErrMaxWagons):
		return fmt.Sprintf("Trains carry at most %d wagons", p.MaxWagons)
	case errors.Is(err, railcore.ErrOccupied):
		return "A train is already standing there"
	case errors.Is(err, railcore.ErrInvalidPlacement):
		return "Cannot place that here"
	case errors.Is(err, railcore.ErrGameOver):
		return "Game over, press r"
	default:
		return err.Error()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: g.session.GameOver(),
		Paused:   g.paused,
		Stats: core.RunStats{
			Delivered: g.session.Delivered(),
			Elapsed:   g.session.Elapsed(),
			Stations:  g.session.StationCount(),
			Trains:    g.session.TrainCount(),
		},
	}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *railcore.Session {
	return g.session
}

// Difficulty returns the preset the current game was built with.
func (g *Game) Difficulty() config.DifficultyPreset {
	return g.preset
}
