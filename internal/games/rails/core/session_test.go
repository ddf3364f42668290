package core

import (
	"errors"
	"reflect"
	"testing"
)

const tickDT = 0.125

// twoStationSession builds Circle at (3,3) and Square at (3,8) joined by rail.
func twoStationSession(t *testing.T) *Session {
	t.Helper()
	s := NewEmptySession(DefaultParams(), 1)
	if _, err := s.PlaceStation(C(3, 3), ShapeCircle); err != nil {
		t.Fatal(err)
	}
	if _, err := s.PlaceStation(C(3, 8), ShapeSquare); err != nil {
		t.Fatal(err)
	}
	if err := s.TryBuildRail(0, 1); err != nil {
		t.Fatalf("TryBuildRail failed: %v", err)
	}
	return s
}

func checkInvariants(t *testing.T, s *Session) {
	t.Helper()
	for i, cell := range s.grid.Cells {
		if cell.Rail.Degree() > 2 {
			t.Fatalf("cell %d has degree %d", i, cell.Rail.Degree())
		}
	}
	for _, tr := range s.fleet.All() {
		if s.grid.Rail(tr.Cell) == 0 {
			t.Fatalf("train %d on empty cell %v", tr.ID, tr.Cell)
		}
		if len(tr.Passengers) > tr.Capacity() {
			t.Fatalf("train %d over capacity", tr.ID)
		}
	}
	for _, st := range s.stations.All() {
		for _, p := range st.Waiting {
			if p.Destination == st.Shape {
				t.Fatalf("station %d holds a passenger for its own shape", st.ID)
			}
		}
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(DefaultParams(), 99)

	if s.Score() != 15 {
		t.Errorf("Score() = %d, expected 15", s.Score())
	}
	if s.GameOver() || s.Elapsed() != 0 || s.Delivered() != 0 {
		t.Error("fresh session should be running with zero counters")
	}
	if s.stations.Len() > 2 {
		t.Errorf("%d stations, expected at most 2", s.stations.Len())
	}
	for _, st := range s.stations.All() {
		if s.grid.At(st.Cell).Terrain != TerrainGrass {
			t.Errorf("station %d not on grass", st.ID)
		}
	}
}

func TestSessionDeterministic(t *testing.T) {
	run := func() Snapshot {
		s := NewSession(DefaultParams(), 1234)
		if s.stations.Len() >= 2 {
			s.BuildRail(0, 1)
			st, _ := s.stations.Get(0)
			s.SpawnTrainAt(st.Cell.Row, st.Cell.Col)
		}
		for i := 0; i < 800; i++ {
			s.Tick(tickDT)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two sessions with the same seed and commands diverged")
	}
}

func TestBuildRailRejections(t *testing.T) {
	s := twoStationSession(t)

	tests := []struct {
		name   string
		a, b   int
		target error
	}{
		{"same station", 0, 0, ErrInvalidPlacement},
		{"unknown from", 7, 1, ErrUnknownStation},
		{"unknown to", 0, -1, ErrUnknownStation},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := s.grid.Clone()
			err := s.TryBuildRail(tc.a, tc.b)
			if !errors.Is(err, tc.target) {
				t.Errorf("expected %v, got %v", tc.target, err)
			}
			if !s.grid.Equal(before) {
				t.Error("rejected build changed the grid")
			}
		})
	}
}

func TestBuildRailThroughBusyStation(t *testing.T) {
	s := twoStationSession(t)
	if _, err := s.PlaceStation(C(3, 12), ShapePyramid); err != nil {
		t.Fatal(err)
	}
	if _, err := s.PlaceStation(C(8, 8), ShapeCircle); err != nil {
		t.Fatal(err)
	}

	if !s.BuildRail(1, 2) {
		t.Fatal("extending the line east should succeed")
	}
	before := s.grid.Clone()
	if s.BuildRail(1, 3) {
		t.Fatal("a third edge at the Square station should be rejected")
	}
	if !s.grid.Equal(before) {
		t.Error("rejected build changed the grid")
	}
	checkInvariants(t, s)
}

func TestRandomBuildsKeepDegree(t *testing.T) {
	s := NewEmptySession(DefaultParams(), 3)
	for row := 2; row <= 13; row += 3 {
		for col := 2; col <= 13; col += 3 {
			s.PlaceStation(C(row, col), AllShapes[(row+col)%3])
		}
	}
	n := s.stations.Len()
	for a := 0; a < n; a++ {
		for b := n - 1; b > a; b -= 2 {
			before := s.grid.Clone()
			if !s.BuildRail(a, b) && !s.grid.Equal(before) {
				t.Fatalf("rejected build %d -> %d changed the grid", a, b)
			}
			checkInvariants(t, s)
		}
	}
}

func TestSpawnTrainRules(t *testing.T) {
	s := twoStationSession(t)

	if _, ok := s.SpawnTrainAt(0, 0); ok {
		t.Error("spawn without rail should fail")
	}
	if s.Score() != 15 {
		t.Errorf("failed spawn changed score to %d", s.Score())
	}

	id, ok := s.SpawnTrainAt(3, 5)
	if !ok {
		t.Fatal("spawn on rail should succeed")
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d after buying a train, expected 0", s.Score())
	}
	tr, _ := s.fleet.Get(id)
	if tr.Wagons != 1 || tr.Capacity() != 6 {
		t.Errorf("new train wagons=%d capacity=%d", tr.Wagons, tr.Capacity())
	}
	if tr.Facing != DirEast {
		t.Errorf("new train faces %v, expected East on a West-East track", tr.Facing)
	}
	if tr.Trail.Len() != 20 {
		t.Errorf("trail length %d, expected 20", tr.Trail.Len())
	}

	s.score = 100
	if _, err := s.TrySpawnTrain(3, 5); !errors.Is(err, ErrInvalidPlacement) || !errors.Is(err, ErrOccupied) {
		t.Errorf("spawn on an occupied cell: expected ErrInvalidPlacement and ErrOccupied, got %v", err)
	}

	s.score = 14
	if _, err := s.TrySpawnTrain(3, 6); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}
	if s.fleet.Len() != 1 || s.Score() != 14 {
		t.Error("rejected spawn mutated the session")
	}
}

func TestAddWagonRules(t *testing.T) {
	s := twoStationSession(t)
	s.score = 100
	id, ok := s.SpawnTrainAt(3, 5)
	if !ok {
		t.Fatal("spawn failed")
	}

	for i := 0; i < 4; i++ {
		if !s.AddWagon(id) {
			t.Fatalf("wagon %d should be accepted", i+2)
		}
	}
	if err := s.TryAddWagon(id); !errors.Is(err, ErrMaxWagons) {
		t.Errorf("sixth wagon: expected ErrMaxWagons, got %v", err)
	}
	if s.Score() != 100-15-4*5 {
		t.Errorf("Score() = %d, expected %d", s.Score(), 100-15-4*5)
	}
	if err := s.TryAddWagon(42); !errors.Is(err, ErrUnknownTrain) {
		t.Errorf("expected ErrUnknownTrain, got %v", err)
	}

	s.score = 4
	s.fleet.All()[0].Wagons = 2
	if err := s.TryAddWagon(id); !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("expected ErrInsufficientPoints, got %v", err)
	}
}

func TestDeliveryPerDwellCycle(t *testing.T) {
	s := twoStationSession(t)
	id, ok := s.SpawnTrainAt(3, 5)
	if !ok {
		t.Fatal("spawn failed")
	}
	tr, _ := s.fleet.Get(id)
	tr.Passengers = []Passenger{{ShapeSquare}, {ShapeSquare}, {ShapeCircle}}

	ticks := 0
	for !tr.Stopping {
		s.Tick(tickDT)
		checkInvariants(t, s)
		ticks++
		if ticks > 100 {
			t.Fatal("train never docked")
		}
	}
	if tr.Cell != C(3, 8) || tr.StationID != 1 {
		t.Fatalf("docked at %v station %d, expected the Square station", tr.Cell, tr.StationID)
	}

	dwellTicks := int(s.p.DwellSeconds / tickDT)
	for cycle := 1; cycle <= 2; cycle++ {
		for i := 0; i < dwellTicks-1; i++ {
			s.Tick(tickDT)
		}
		if s.Delivered() != cycle-1 {
			t.Fatalf("delivered %d before dwell %d completed", s.Delivered(), cycle)
		}
		s.Tick(tickDT)
		if s.Delivered() != cycle {
			t.Fatalf("delivered %d after dwell %d, expected %d", s.Delivered(), cycle, cycle)
		}
	}
	if s.Score() != 2 {
		t.Errorf("Score() = %d, expected 2 after two deliveries", s.Score())
	}

	// Skip the Circle passenger, then depart.
	for i := 0; i < 2*dwellTicks; i++ {
		s.Tick(tickDT)
	}
	if tr.Stopping {
		t.Fatal("train should have departed")
	}
	if tr.Facing != DirWest {
		t.Errorf("departed facing %v, expected West back along the line", tr.Facing)
	}
	if len(tr.Passengers) != 1 || tr.Passengers[0].Destination != ShapeCircle {
		t.Errorf("aboard = %v, expected the Circle passenger", tr.Passengers)
	}
}

// lineSession builds Circle (3,3), Square (3,6) and Pyramid (3,9) on one
// straight line with an empty train at (3,5) heading East.
func lineSession(t *testing.T) (*Session, *Train) {
	t.Helper()
	s := NewEmptySession(DefaultParams(), 1)
	for _, st := range []struct {
		c     Coord
		shape Shape
	}{{C(3, 3), ShapeCircle}, {C(3, 6), ShapeSquare}, {C(3, 9), ShapePyramid}} {
		if _, err := s.PlaceStation(st.c, st.shape); err != nil {
			t.Fatal(err)
		}
	}
	if !s.BuildRail(0, 1) || !s.BuildRail(1, 2) {
		t.Fatal("build failed")
	}
	id, ok := s.SpawnTrainAt(3, 5)
	if !ok {
		t.Fatal("spawn failed")
	}
	tr, _ := s.fleet.Get(id)
	if tr.Facing != DirEast {
		t.Fatalf("train faces %v, expected East", tr.Facing)
	}
	return s, tr
}

func TestLargeTickAdvancesSeveralCells(t *testing.T) {
	tests := []struct {
		name     string
		waiting  int
		dt       float64
		cell     Coord
		stopping bool
		progress float64
	}{
		{"passes a station with nothing to do", 0, 1.0, C(3, 7), false, 0},
		{"three cells in one tick", 0, 1.5, C(3, 8), false, 0},
		{"stops where someone waits", 1, 1.25, C(3, 6), true, 1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, tr := lineSession(t)
			st, _ := s.stations.Get(1)
			for i := 0; i < tc.waiting; i++ {
				st.Enqueue(Passenger{Destination: ShapeCircle})
			}

			s.Tick(tc.dt)
			checkInvariants(t, s)

			if tr.Cell != tc.cell || tr.Stopping != tc.stopping {
				t.Fatalf("train at %v stopping=%v, expected %v stopping=%v",
					tr.Cell, tr.Stopping, tc.cell, tc.stopping)
			}
			if tr.Facing != DirEast {
				t.Errorf("facing %v, expected East", tr.Facing)
			}
			if tr.Progress != tc.progress {
				t.Errorf("progress = %v, expected %v", tr.Progress, tc.progress)
			}
			if tc.stopping {
				if tr.StationID != st.ID || len(tr.Passengers) != 0 {
					t.Errorf("docked at %d with %d aboard before any dwell", tr.StationID, len(tr.Passengers))
				}
			} else if tr.StationID != NoStation {
				t.Errorf("passing train holds station %d", tr.StationID)
			}
		})
	}
}

func TestTrainBouncesAtDeadEnd(t *testing.T) {
	s := NewEmptySession(DefaultParams(), 1)
	s.PlaceStation(C(3, 3), ShapeCircle)
	s.PlaceStation(C(3, 6), ShapeSquare)
	if !s.BuildRail(0, 1) {
		t.Fatal("build failed")
	}
	id, _ := s.SpawnTrainAt(3, 4)
	tr, _ := s.fleet.Get(id)

	seenWest := false
	for i := 0; i < 200; i++ {
		s.Tick(tickDT)
		checkInvariants(t, s)
		if tr.Cell.Col < 3 || tr.Cell.Col > 6 || tr.Cell.Row != 3 {
			t.Fatalf("train left the line at %v", tr.Cell)
		}
		if tr.Facing == DirWest {
			seenWest = true
		}
	}
	if !seenWest {
		t.Error("train never reversed at the end of the line")
	}
}

func TestEraseUnderTrainRefunds(t *testing.T) {
	s := twoStationSession(t)
	s.score = 20
	id, ok := s.SpawnTrainAt(3, 5)
	if !ok {
		t.Fatal("spawn failed")
	}
	if !s.AddWagon(id) {
		t.Fatal("add wagon failed")
	}
	if s.Score() != 0 {
		t.Fatalf("Score() = %d, expected 0", s.Score())
	}

	s.EraseRailAt(3, 5)

	if s.fleet.Len() != 0 {
		t.Error("train should be removed with its rail")
	}
	if s.Score() != 10+2*5 {
		t.Errorf("Score() = %d, expected %d", s.Score(), 10+2*5)
	}
	if s.HasRailAt(3, 6) {
		t.Error("rail between the stations should be gone")
	}
}

func TestEraseRailAtEmptyCellIsNoop(t *testing.T) {
	s := twoStationSession(t)
	before := s.Snapshot()
	s.EraseRailAt(10, 10)
	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("erasing an empty cell changed the session")
	}
}

func TestFullnessEndsGameOnce(t *testing.T) {
	s := twoStationSession(t)
	st, _ := s.stations.Get(0)
	for i := 0; i < s.p.StationCapacity; i++ {
		st.Enqueue(Passenger{Destination: ShapeSquare})
	}

	for i := 0; i < 30; i++ {
		s.Tick(1.0)
	}
	if s.GameOver() {
		t.Fatal("game ended at exactly the tolerance")
	}

	s.Tick(1.0)
	if !s.GameOver() {
		t.Fatal("game should end once a station is full beyond the tolerance")
	}

	frozen := s.Snapshot()
	for i := 0; i < 50; i++ {
		s.Tick(1.0)
	}
	if !reflect.DeepEqual(frozen, s.Snapshot()) {
		t.Error("state changed after game over")
	}

	if _, ok := s.SpawnTrainAt(3, 5); ok {
		t.Error("commands should be rejected after game over")
	}
	if err := s.TryBuildRail(0, 1); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
}

func TestRestartResets(t *testing.T) {
	s := twoStationSession(t)
	s.SpawnTrainAt(3, 5)
	s.Tick(1.0)

	s.Restart()

	if s.Score() != 15 || s.Delivered() != 0 || s.Elapsed() != 0 || s.GameOver() {
		t.Error("restart should reset counters")
	}
	if s.fleet.Len() != 0 {
		t.Error("restart should remove trains")
	}
	if n := s.grid.Count(func(c Cell) bool { return c.HasRail() }); n != 0 {
		t.Errorf("%d rail cells after restart", n)
	}
	if s.stations.Len() > 2 {
		t.Errorf("%d stations after restart", s.stations.Len())
	}
}

func TestLongRunInvariants(t *testing.T) {
	s := NewSession(DefaultParams(), 77)
	s.score = 1000
	for i := 0; i < s.stations.Len()-1; i++ {
		s.BuildRail(i, i+1)
	}
	for _, st := range s.stations.All() {
		s.SpawnTrainAt(st.Cell.Row, st.Cell.Col)
	}

	for i := 0; i < 4000 && !s.GameOver(); i++ {
		s.Tick(1.0 / 60)
		checkInvariants(t, s)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := twoStationSession(t)
	id, _ := s.SpawnTrainAt(3, 5)
	st, _ := s.stations.Get(0)
	st.Enqueue(Passenger{Destination: ShapeSquare})

	snap := s.Snapshot()
	snap.Cells[0].Rail = MaskNorth
	snap.Stations[0].Waiting[0] = ShapePyramid
	snap.Trains[0].Trail[0] = Vec{X: 99}

	if s.grid.Cells[0].Rail != 0 {
		t.Error("snapshot cells alias the grid")
	}
	if st.Waiting[0].Destination != ShapeSquare {
		t.Error("snapshot queue aliases the station")
	}
	tr, _ := s.fleet.Get(id)
	if tr.Trail.At(0).X == 99 {
		t.Error("snapshot trail aliases the train")
	}
}
