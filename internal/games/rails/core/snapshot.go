package core

// StationView is a read-only copy of a station.
type StationView struct {
	ID      int
	Cell    Coord
	Pos     Vec
	Shape   Shape
	Waiting []Shape
	Full    float64
}

// TrainView is a read-only copy of a train.
type TrainView struct {
	ID         int
	Cell       Coord
	Facing     Dir
	Progress   float64
	Pos        Vec
	Wagons     int
	Capacity   int
	Passengers []Shape
	Stopping   bool
	StationID  int
	Trail      []Vec
}

// Snapshot is a deep copy of the observable session state.
type Snapshot struct {
	Rows      int
	Cols      int
	Cells     []Cell
	Stations  []StationView
	Trains    []TrainView
	Score     int
	Delivered int
	Elapsed   float64
	GameOver  bool
}

// Cell returns the snapshot cell at c.
func (s Snapshot) Cell(c Coord) Cell {
	if c.Row < 0 || c.Row >= s.Rows || c.Col < 0 || c.Col >= s.Cols {
		return Cell{}
	}
	return s.Cells[c.Row*s.Cols+c.Col]
}

// Snapshot captures the current state. The result shares no memory with
// the session.
func (s *Session) Snapshot() Snapshot {
	cells := make([]Cell, len(s.grid.Cells))
	copy(cells, s.grid.Cells)

	stations := make([]StationView, 0, s.stations.Len())
	for _, st := range s.stations.All() {
		waiting := make([]Shape, len(st.Waiting))
		for i, p := range st.Waiting {
			waiting[i] = p.Destination
		}
		stations = append(stations, StationView{
			ID:      st.ID,
			Cell:    st.Cell,
			Pos:     s.grid.CellToWorld(st.Cell),
			Shape:   st.Shape,
			Waiting: waiting,
			Full:    st.Full,
		})
	}

	trains := make([]TrainView, 0, s.fleet.Len())
	for _, t := range s.fleet.All() {
		aboard := make([]Shape, len(t.Passengers))
		for i, p := range t.Passengers {
			aboard[i] = p.Destination
		}
		trains = append(trains, TrainView{
			ID:         t.ID,
			Cell:       t.Cell,
			Facing:     t.Facing,
			Progress:   t.Progress,
			Pos:        t.Position(s.grid),
			Wagons:     t.Wagons,
			Capacity:   t.Capacity(),
			Passengers: aboard,
			Stopping:   t.Stopping,
			StationID:  t.StationID,
			Trail:      t.Trail.Points(),
		})
	}

	return Snapshot{
		Rows:      s.grid.Rows,
		Cols:      s.grid.Cols,
		Cells:     cells,
		Stations:  stations,
		Trains:    trains,
		Score:     s.score,
		Delivered: s.delivered,
		Elapsed:   s.elapsed,
		GameOver:  s.gameOver,
	}
}
