package rails

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-rails/internal/config"
	railcore "github.com/vovakirdan/tui-rails/internal/games/rails/core"
)

// NewSession builds a session from a config file path, a difficulty preset
// name and a seed, the same way Reset does for the interactive game.
func NewSession(cfgPath, difficulty string, seed int64) (*railcore.Session, config.DifficultyPreset, error) {
	rc, err := config.LoadRails(cfgPath)
	if err != nil {
		return nil, "", err
	}
	preset, err := config.ParsePreset(difficulty)
	if err != nil {
		return nil, "", err
	}
	config.ApplyRailsPreset(&rc, preset)

	s := railcore.NewEmptySession(rc.ToParams(), seed)
	s.SetLogger(logger)
	s.Restart()
	return s, preset, nil
}

// MapLines renders the map as plain text, two characters per cell:
// '~' water, '^' mountain, rail glyphs, and station shapes.
func MapLines(snap railcore.Snapshot) []string {
	lines := make([]string, 0, snap.Rows)
	for row := 0; row < snap.Rows; row++ {
		var b strings.Builder
		for col := 0; col < snap.Cols; col++ {
			cell := snap.Cell(railcore.C(row, col))
			left, right := cellGlyphs(cell)
			switch {
			case cell.Rail != 0:
			case cell.Terrain == railcore.TerrainWater:
				left.Rune, right.Rune = '~', '~'
			case cell.Terrain == railcore.TerrainGrass:
				left.Rune = '.'
			}
			b.WriteRune(left.Rune)
			b.WriteRune(right.Rune)
		}
		lines = append(lines, b.String())
	}

	for _, st := range snap.Stations {
		row := []rune(lines[st.Cell.Row])
		row[st.Cell.Col*2] = st.Shape.Glyph()
		row[st.Cell.Col*2+1] = countGlyph(len(st.Waiting))
		lines[st.Cell.Row] = string(row)
	}
	return lines
}

// AutoplayResult summarizes a headless run.
type AutoplayResult struct {
	Ticks       int
	Connections int
	Rejected    int
	Trains      int
}

// Autoplay drives a session without input for the given simulated time.
// Whenever a station appears it is connected to the closest station that a
// rail can reach, and a train is bought on it if points allow. Stations that
// could not be connected are retried when the next station appears. It
// stops early on game over.
func Autoplay(s *railcore.Session, seconds, dt float64) AutoplayResult {
	var res AutoplayResult
	connected := make(map[int]bool)
	seen := 0

	connect := func() {
		snap := s.Snapshot()
		if len(snap.Stations) == seen {
			return
		}
		seen = len(snap.Stations)
		for _, st := range snap.Stations {
			if connected[st.ID] {
				continue
			}
			for _, other := range byDistance(snap.Stations, st) {
				if !s.BuildRail(st.ID, other.ID) {
					res.Rejected++
					continue
				}
				connected[st.ID], connected[other.ID] = true, true
				res.Connections++
				if _, ok := s.SpawnTrainAt(st.Cell.Row, st.Cell.Col); ok {
					res.Trains++
				}
				break
			}
		}
	}

	for elapsed := 0.0; elapsed < seconds && !s.GameOver(); elapsed += dt {
		connect()
		s.Tick(dt)
		res.Ticks++
	}
	return res
}

// byDistance returns the other stations ordered by Manhattan distance to
// st, ties broken by ID.
func byDistance(all []railcore.StationView, st railcore.StationView) []railcore.StationView {
	others := make([]railcore.StationView, 0, len(all))
	for _, o := range all {
		if o.ID != st.ID {
			others = append(others, o)
		}
	}
	sort.Slice(others, func(i, j int) bool {
		di, dj := st.Cell.Manhattan(others[i].Cell), st.Cell.Manhattan(others[j].Cell)
		if di != dj {
			return di < dj
		}
		return others[i].ID < others[j].ID
	})
	return others
}

// Summary formats the end state of a session on one line.
func Summary(s *railcore.Session) string {
	secs := int(s.Elapsed())
	state := "running"
	if s.GameOver() {
		state = "game over"
	}
	return fmt.Sprintf("%s after %d:%02d, points %d, delivered %d, stations %d, trains %d",
		state, secs/60, secs%60, s.Score(), s.Delivered(), s.StationCount(), s.TrainCount())
}
