package core

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vovakirdan/tui-rails/internal/telemetry"
)

// Session is one running game: world, network, stations, trains, score and
// timers. It is driven by Tick and mutated only through its commands.
// A Session is not safe for concurrent use.
type Session struct {
	p        Params
	rng      *rand.Rand
	grid     *Grid
	stations *Stations
	fleet    *Fleet
	logger   *log.Logger

	score     int
	delivered int
	elapsed   float64
	gameOver  bool

	stationTimer   float64
	passengerTimer float64

	terrain TerrainReport
}

// NewSession creates a session with a freshly generated world.
func NewSession(p Params, seed int64) *Session {
	s := &Session{
		p:        p,
		rng:      rand.New(rand.NewSource(seed)),
		stations: NewStations(),
		fleet:    NewFleet(p),
		logger:   log.New(io.Discard),
	}
	s.Restart()
	return s
}

// NewEmptySession creates a session on an all-grass grid with no stations.
// Useful for scripted scenarios.
func NewEmptySession(p Params, seed int64) *Session {
	s := &Session{
		p:        p,
		rng:      rand.New(rand.NewSource(seed)),
		grid:     NewGrid(p.Rows, p.Cols, p.CellSize),
		stations: NewStations(),
		fleet:    NewFleet(p),
		logger:   log.New(io.Discard),
		score:    p.InitialPoints,
	}
	return s
}

// SetLogger routes session events to l.
func (s *Session) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	s.logger = l
}

// Params returns the session tuning.
func (s *Session) Params() Params {
	return s.p
}

// Restart discards everything and generates a new world with the initial
// stations and starting points. The random stream continues, so each
// restart produces a different map.
func (s *Session) Restart() {
	ctx, span := telemetry.Tracer("session").Start(context.Background(), "session.restart")
	defer span.End()

	s.grid = NewGrid(s.p.Rows, s.p.Cols, s.p.CellSize)
	s.stations.Reset()
	s.fleet.Reset()
	s.score = s.p.InitialPoints
	s.delivered = 0
	s.elapsed = 0
	s.gameOver = false
	s.stationTimer = 0
	s.passengerTimer = 0

	s.terrain = GenerateTerrain(ctx, s.grid, s.rng, s.p.Terrain)
	for i := 0; i < s.p.InitialStations; i++ {
		s.spawnStation()
	}

	span.SetAttributes(attribute.Int("session.stations", s.stations.Len()))
	s.logger.Debug("world generated",
		"blobs", s.terrain.Blobs,
		"water", s.terrain.Water,
		"mountains", s.terrain.Mountains,
		"stations", s.stations.Len(),
	)
}

// Tick advances the simulation by dt seconds. Once the game is over it has
// no effect until Restart.
func (s *Session) Tick(dt float64) {
	if s.gameOver {
		return
	}

	if s.stations.UpdateFullness(dt, s.p.StationCapacity) > s.p.FullnessTolerance {
		s.gameOver = true
		s.logger.Info("game over", "delivered", s.delivered, "score", s.score, "elapsed", s.elapsed)
		return
	}

	s.elapsed += dt

	s.stationTimer += dt
	if s.stationTimer >= s.p.StationInterval {
		s.stationTimer = 0
		s.spawnStation()
	}

	s.passengerTimer += dt
	if s.passengerTimer > s.p.PassengerInterval {
		s.passengerTimer = 0
		if n := s.stations.SpawnPassengers(s.rng, s.p.StationCapacity); n > 0 {
			s.logger.Debug("passengers spawned", "count", n)
		}
	}

	if n := s.fleet.Update(dt, s.grid, s.stations); n > 0 {
		s.delivered += n
		s.score += n * s.p.DeliveryReward
	}
}

func (s *Session) spawnStation() {
	st := s.stations.SpawnRandom(s.grid, s.rng, s.p.StationSpacing, s.p.PlacementAttempts)
	if st == nil {
		s.logger.Debug("station spawn failed", "attempts", s.p.PlacementAttempts)
		return
	}
	s.logger.Debug("station spawned", "id", st.ID, "cell", st.Cell, "shape", st.Shape)
}

// PlaceStation adds a station of the given shape at c.
func (s *Session) PlaceStation(c Coord, shape Shape) (int, error) {
	st, err := s.stations.Place(s.grid, c, shape, s.p.StationSpacing)
	if err != nil {
		return NoStation, err
	}
	return st.ID, nil
}

// TryBuildRail lays the shortest rail path between two stations.
// The network is unchanged when an error is returned.
func (s *Session) TryBuildRail(a, b int) error {
	_, span := telemetry.Tracer("session").Start(context.Background(), "rail.build")
	defer span.End()
	span.SetAttributes(attribute.Int("rail.from", a), attribute.Int("rail.to", b))

	err := s.buildRail(a, b)
	span.SetAttributes(attribute.Bool("rail.committed", err == nil))
	if err != nil {
		s.logger.Debug("rail rejected", "from", a, "to", b, "err", err)
	}
	return err
}

func (s *Session) buildRail(a, b int) error {
	if s.gameOver {
		return ErrGameOver
	}
	if a == b {
		return fmt.Errorf("build rail %d -> %d: %w", a, b, ErrInvalidPlacement)
	}
	from, ok := s.stations.Get(a)
	if !ok {
		return fmt.Errorf("build rail from %d: %w", a, ErrUnknownStation)
	}
	to, ok := s.stations.Get(b)
	if !ok {
		return fmt.Errorf("build rail to %d: %w", b, ErrUnknownStation)
	}

	path, err := FindPath(s.grid, from.Cell, to.Cell)
	if err != nil {
		return err
	}
	if err := BuildPath(s.grid, path); err != nil {
		return err
	}
	s.logger.Debug("rail built", "from", a, "to", b, "cells", len(path))
	return nil
}

// BuildRail reports whether rail between stations a and b was committed.
func (s *Session) BuildRail(a, b int) bool {
	return s.TryBuildRail(a, b) == nil
}

// EraseRailAt removes the rail runs leaving the cell and then removes any
// train left without rail, refunding points for each.
func (s *Session) EraseRailAt(row, col int) {
	c := C(row, col)
	if s.gameOver || !s.HasRailAt(row, col) {
		return
	}

	_, span := telemetry.Tracer("session").Start(context.Background(), "rail.erase")
	defer span.End()

	edges := EraseFromCell(s.grid, c)
	removed := s.fleet.RemoveBroken(s.grid)
	for _, t := range removed {
		refund := s.p.CrashBase + s.p.CrashPerWagon*t.Wagons
		s.score += refund
		s.logger.Debug("train removed", "id", t.ID, "wagons", t.Wagons, "refund", refund)
	}

	span.SetAttributes(
		attribute.Int("rail.edges_removed", edges),
		attribute.Int("rail.trains_removed", len(removed)),
	)
}

// TrySpawnTrain buys a train and places it on the rail at (row, col).
func (s *Session) TrySpawnTrain(row, col int) (int, error) {
	if s.gameOver {
		return 0, ErrGameOver
	}
	if s.score < s.p.TrainCost {
		return 0, fmt.Errorf("spawn train costs %d, have %d: %w", s.p.TrainCost, s.score, ErrInsufficientPoints)
	}
	t, err := s.fleet.Spawn(s.grid, C(row, col))
	if err != nil {
		return 0, err
	}
	s.score -= s.p.TrainCost
	s.logger.Debug("train spawned", "id", t.ID, "cell", t.Cell, "facing", t.Facing)
	return t.ID, nil
}

// SpawnTrainAt returns the new train ID and true on success.
func (s *Session) SpawnTrainAt(row, col int) (int, bool) {
	id, err := s.TrySpawnTrain(row, col)
	return id, err == nil
}

// TryAddWagon buys one more wagon for the train.
func (s *Session) TryAddWagon(trainID int) error {
	if s.gameOver {
		return ErrGameOver
	}
	t, ok := s.fleet.Get(trainID)
	if !ok {
		return fmt.Errorf("add wagon to train %d: %w", trainID, ErrUnknownTrain)
	}
	if t.Wagons >= s.p.MaxWagons {
		return fmt.Errorf("add wagon to train %d: %w", trainID, ErrMaxWagons)
	}
	if s.score < s.p.WagonCost {
		return fmt.Errorf("wagon costs %d, have %d: %w", s.p.WagonCost, s.score, ErrInsufficientPoints)
	}
	if err := s.fleet.AddWagon(trainID); err != nil {
		return err
	}
	s.score -= s.p.WagonCost
	return nil
}

// AddWagon reports whether a wagon was added.
func (s *Session) AddWagon(trainID int) bool {
	return s.TryAddWagon(trainID) == nil
}

// HasRailAt reports whether the cell carries any rail.
func (s *Session) HasRailAt(row, col int) bool {
	return s.grid.Rail(C(row, col)) != 0
}

// StationAt returns the ID of the station on c, or NoStation.
func (s *Session) StationAt(c Coord) int {
	if st := s.stations.At(c); st != nil {
		return st.ID
	}
	return NoStation
}

// TrainAt returns the ID of the train on c and whether one exists.
func (s *Session) TrainAt(c Coord) (int, bool) {
	if t := s.fleet.At(c); t != nil {
		return t.ID, true
	}
	return 0, false
}

// Grid returns the live world grid. Callers must not modify it.
func (s *Session) Grid() *Grid { return s.grid }

// Score returns the current points.
func (s *Session) Score() int { return s.score }

// Delivered returns the number of passengers delivered this game.
func (s *Session) Delivered() int { return s.delivered }

// Elapsed returns simulated seconds since the last restart.
func (s *Session) Elapsed() float64 { return s.elapsed }

// GameOver reports whether a station overflowed for too long.
func (s *Session) GameOver() bool { return s.gameOver }

// Terrain returns the summary of the current map.
func (s *Session) Terrain() TerrainReport { return s.terrain }

// StationCount returns the number of stations on the map.
func (s *Session) StationCount() int { return s.stations.Len() }

// TrainCount returns the number of trains in service.
func (s *Session) TrainCount() int { return s.fleet.Len() }
