package core

import "fmt"

// Fleet owns all trains of a session and advances them each tick.
type Fleet struct {
	trains []*Train
	nextID int
	p      Params
}

// NewFleet creates an empty fleet using the given tuning.
func NewFleet(p Params) *Fleet {
	return &Fleet{p: p}
}

// Reset removes every train and restarts ID assignment.
func (f *Fleet) Reset() {
	f.trains = nil
	f.nextID = 0
}

// Len returns the number of trains.
func (f *Fleet) Len() int {
	return len(f.trains)
}

// All returns trains in spawn order.
func (f *Fleet) All() []*Train {
	return f.trains
}

// Get returns the train with the given ID.
func (f *Fleet) Get(id int) (*Train, bool) {
	for _, t := range f.trains {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// At returns the train whose cell is c, or nil.
func (f *Fleet) At(c Coord) *Train {
	for _, t := range f.trains {
		if t.Cell == c {
			return t
		}
	}
	return nil
}

// Spawn places a one-wagon train on the rail at c, facing the first present
// edge in North, East, South, West order.
func (f *Fleet) Spawn(g *Grid, c Coord) (*Train, error) {
	if !g.InBounds(c) {
		return nil, fmt.Errorf("spawn train at %v: %w", c, ErrOutOfBounds)
	}
	facing, ok := g.Rail(c).First()
	if !ok {
		return nil, fmt.Errorf("spawn train at %v without rail: %w", c, ErrInvalidPlacement)
	}
	if f.At(c) != nil {
		return nil, fmt.Errorf("spawn train: %w: %w at %v", ErrInvalidPlacement, ErrOccupied, c)
	}

	t := &Train{
		ID:        f.nextID,
		Cell:      c,
		Facing:    facing,
		Wagons:    1,
		Trail:     NewTrail(f.p.MaxTrail),
		StationID: NoStation,
		seats:     f.p.SeatsPerWagon,
	}
	t.Trail.Fill(g.CellToWorld(c), f.p.SpawnTrail)
	f.nextID++
	f.trains = append(f.trains, t)
	return t, nil
}

// AddWagon attaches one wagon to the train.
func (f *Fleet) AddWagon(id int) error {
	t, ok := f.Get(id)
	if !ok {
		return fmt.Errorf("add wagon to train %d: %w", id, ErrUnknownTrain)
	}
	if t.Wagons >= f.p.MaxWagons {
		return fmt.Errorf("add wagon to train %d: %w", id, ErrMaxWagons)
	}
	t.Wagons++
	return nil
}

// RemoveBroken drops every train whose cell no longer carries rail and
// returns the removed trains.
func (f *Fleet) RemoveBroken(g *Grid) []*Train {
	var removed []*Train
	kept := f.trains[:0]
	for _, t := range f.trains {
		if g.Rail(t.Cell) == 0 {
			removed = append(removed, t)
			continue
		}
		kept = append(kept, t)
	}
	f.trains = kept
	return removed
}

// Update advances every train by dt seconds and returns the number of
// passengers delivered.
func (f *Fleet) Update(dt float64, g *Grid, stations *Stations) int {
	delivered := 0
	for _, t := range f.trains {
		if t.Stopping {
			t.StopTimer += dt
			if t.StopTimer >= f.p.DwellSeconds {
				t.StopTimer = 0
				delivered += t.serve(g, stations)
			}
			continue
		}
		f.advance(t, dt, g, stations)
	}
	return delivered
}

func (f *Fleet) advance(t *Train, dt float64, g *Grid, stations *Stations) {
	if g.Rail(t.Cell) == 0 {
		panic(fmt.Sprintf("core: train %d moving on empty cell %v", t.ID, t.Cell))
	}

	t.Progress += dt * f.p.TrainSpeed
	for t.Progress >= 1 {
		t.Progress--

		next := t.Cell.Step(t.Facing)
		if !g.InBounds(next) || g.Rail(next) == 0 {
			t.Facing = t.Facing.Opposite()
			t.Trail.Fill(g.CellToWorld(t.Cell), f.p.BounceTrail)
			break
		}

		t.Cell = next
		if s := stations.At(next); s != nil && t.wantsToDock(s) {
			t.dock(s)
			break
		}
		t.Facing = chooseDirection(g.Rail(t.Cell), t.Facing)
	}
	t.Trail.Push(t.Position(g))
}
