package core

import "testing"

func TestChooseDirection(t *testing.T) {
	tests := []struct {
		name     string
		mask     RailMask
		facing   Dir
		expected Dir
	}{
		{"straight", MaskWest | MaskEast, DirEast, DirEast},
		{"corner turns", MaskWest | MaskSouth, DirEast, DirSouth},
		{"corner prefers north", MaskNorth | MaskSouth | MaskWest, DirEast, DirNorth},
		{"dead end reverses", MaskWest, DirEast, DirWest},
		{"never picks back while another edge exists", MaskNorth | MaskSouth, DirEast, DirNorth},
		{"empty mask reverses", 0, DirNorth, DirSouth},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := chooseDirection(tc.mask, tc.facing); got != tc.expected {
				t.Errorf("chooseDirection(%04b, %v) = %v, expected %v", tc.mask, tc.facing, got, tc.expected)
			}
		})
	}
}

// dockedTrain returns a train docked at a Square station on a straight track.
func dockedTrain(t *testing.T, aboard ...Shape) (*Train, *Grid, *Stations) {
	t.Helper()
	g := NewGrid(5, 7, 1.0)
	stations := NewStations()
	st, err := stations.Place(g, C(2, 3), ShapeSquare, 2.0)
	if err != nil {
		t.Fatal(err)
	}
	if err := BuildPath(g, []Coord{C(2, 2), C(2, 3), C(2, 4)}); err != nil {
		t.Fatal(err)
	}

	tr := &Train{ID: 1, Cell: C(2, 3), Facing: DirEast, Wagons: 1, seats: 6, Trail: NewTrail(10)}
	for _, s := range aboard {
		tr.Passengers = append(tr.Passengers, Passenger{Destination: s})
	}
	tr.dock(st)
	return tr, g, stations
}

func TestServeUnloadsThenSkips(t *testing.T) {
	tr, g, stations := dockedTrain(t, ShapeSquare, ShapeCircle, ShapeSquare)

	steps := []struct {
		delivered int
		aboard    int
		cursor    int
	}{
		{1, 2, 0}, // deliver first Square
		{0, 2, 1}, // skip Circle
		{1, 1, 1}, // deliver second Square
	}
	for i, step := range steps {
		if got := tr.serve(g, stations); got != step.delivered {
			t.Errorf("step %d: delivered %d, expected %d", i, got, step.delivered)
		}
		if len(tr.Passengers) != step.aboard || tr.UnloadCursor != step.cursor {
			t.Errorf("step %d: aboard=%d cursor=%d, expected %d, %d",
				i, len(tr.Passengers), tr.UnloadCursor, step.aboard, step.cursor)
		}
	}

	tr.serve(g, stations)
	if tr.Stopping {
		t.Error("train should depart when nothing is left to do")
	}
	if tr.StationID != NoStation {
		t.Errorf("StationID = %d after departure", tr.StationID)
	}
}

func TestServeLoadsNewestUntilFull(t *testing.T) {
	tr, g, stations := dockedTrain(t)
	st, _ := stations.Get(0)
	for i := 0; i < 8; i++ {
		dest := ShapeCircle
		if i == 7 {
			dest = ShapePyramid
		}
		st.Enqueue(Passenger{Destination: dest})
	}

	tr.serve(g, stations)
	if len(tr.Passengers) != 1 || tr.Passengers[0].Destination != ShapePyramid {
		t.Fatalf("first boarding should take the newest passenger, got %v", tr.Passengers)
	}
	if tr.UnloadCursor != 0 {
		t.Errorf("boarding moved the cursor to %d", tr.UnloadCursor)
	}

	// The new passenger is looked at (and skipped) before the next boarding.
	tr.serve(g, stations)
	if len(tr.Passengers) != 1 || tr.UnloadCursor != 1 {
		t.Fatalf("second action: aboard=%d cursor=%d, expected 1, 1", len(tr.Passengers), tr.UnloadCursor)
	}

	// Boarding and skipping alternate: 11 actions fill 6 seats.
	for i := 0; i < 9; i++ {
		tr.serve(g, stations)
	}
	if len(tr.Passengers) != tr.Capacity() {
		t.Errorf("aboard = %d, expected capacity %d", len(tr.Passengers), tr.Capacity())
	}
	if len(st.Waiting) != 2 {
		t.Errorf("waiting = %d, expected 2 left behind", len(st.Waiting))
	}

	tr.serve(g, stations)
	if !tr.Stopping {
		t.Fatal("the last boarded passenger is still to be looked at")
	}
	tr.serve(g, stations)
	if tr.Stopping {
		t.Error("full train should depart")
	}
}

func TestWantsToDock(t *testing.T) {
	st := &Station{Shape: ShapeSquare}
	tr := &Train{Wagons: 1, seats: 6}

	if tr.wantsToDock(st) {
		t.Error("empty train should pass an empty station")
	}

	st.Enqueue(Passenger{Destination: ShapeCircle})
	if !tr.wantsToDock(st) {
		t.Error("train with space should stop for waiting passengers")
	}

	for i := 0; i < 6; i++ {
		tr.Passengers = append(tr.Passengers, Passenger{Destination: ShapeCircle})
	}
	if tr.wantsToDock(st) {
		t.Error("full train with nobody to drop off should not stop")
	}

	tr.Passengers[0].Destination = ShapeSquare
	if !tr.wantsToDock(st) {
		t.Error("train carrying a passenger for this station should stop")
	}
}
