package core

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Passenger waits at a station or rides a train toward any station whose
// shape equals Destination.
type Passenger struct {
	Destination Shape
}

// Station is a pickup and drop-off point fixed to one grass cell.
type Station struct {
	ID      int
	Cell    Coord
	Shape   Shape
	Waiting []Passenger // Oldest first; boarding takes from the back
	Full    float64     // Seconds spent at or above capacity
}

// Enqueue appends a waiting passenger.
func (s *Station) Enqueue(p Passenger) {
	s.Waiting = append(s.Waiting, p)
}

// PopNewest removes and returns the most recently queued passenger.
func (s *Station) PopNewest() (Passenger, bool) {
	if len(s.Waiting) == 0 {
		return Passenger{}, false
	}
	last := len(s.Waiting) - 1
	p := s.Waiting[last]
	s.Waiting = s.Waiting[:last]
	return p, true
}

// Stations owns every station of a session. IDs equal slice indices and
// stations are only removed by Reset.
type Stations struct {
	list []*Station
}

// NewStations creates an empty registry.
func NewStations() *Stations {
	return &Stations{}
}

// Reset removes all stations.
func (r *Stations) Reset() {
	r.list = nil
}

// Len returns the number of stations.
func (r *Stations) Len() int {
	return len(r.list)
}

// All returns the stations in ID order.
func (r *Stations) All() []*Station {
	return r.list
}

// Get returns the station with the given ID.
func (r *Stations) Get(id int) (*Station, bool) {
	if id < 0 || id >= len(r.list) {
		return nil, false
	}
	return r.list[id], true
}

// At returns the station occupying c, or nil.
func (r *Stations) At(c Coord) *Station {
	for _, s := range r.list {
		if s.Cell == c {
			return s
		}
	}
	return nil
}

// Shapes returns the set of shapes that currently have at least one station.
func (r *Stations) Shapes() mapset.Set[Shape] {
	set := mapset.New[Shape]()
	for _, s := range r.list {
		set.Put(s.Shape)
	}
	return set
}

// CanPlace reports whether a new station may occupy c: grass, inside the
// outer ring, not already a station, and at least spacing cells of world
// distance from every existing station.
func (r *Stations) CanPlace(g *Grid, c Coord, spacing float64) bool {
	if !g.InBounds(c) || g.OnBorder(c) {
		return false
	}
	cell := g.At(c)
	if cell.Terrain != TerrainGrass || cell.HasStation {
		return false
	}
	pos := g.CellToWorld(c)
	for _, s := range r.list {
		other := g.CellToWorld(s.Cell)
		if math.Hypot(pos.X-other.X, pos.Z-other.Z) < spacing*g.CellSize {
			return false
		}
	}
	return true
}

// Place adds a station at c after validating the cell.
func (r *Stations) Place(g *Grid, c Coord, shape Shape, spacing float64) (*Station, error) {
	if !r.CanPlace(g, c, spacing) {
		return nil, fmt.Errorf("place station at %v: %w", c, ErrInvalidPlacement)
	}
	s := &Station{ID: len(r.list), Cell: c, Shape: shape}
	r.list = append(r.list, s)

	cell := g.At(c)
	cell.HasStation = true
	g.Set(c, cell)
	return s, nil
}

// SpawnRandom tries up to attempts random cells and places a station with a
// uniformly drawn shape on the first valid one. Returns nil when every
// attempt fails.
func (r *Stations) SpawnRandom(g *Grid, rng *rand.Rand, spacing float64, attempts int) *Station {
	for i := 0; i < attempts; i++ {
		c := C(rng.Intn(g.Rows), rng.Intn(g.Cols))
		if !r.CanPlace(g, c, spacing) {
			continue
		}
		shape := AllShapes[rng.Intn(len(AllShapes))]
		s, err := r.Place(g, c, shape, spacing)
		if err != nil {
			continue
		}
		return s
	}
	return nil
}

// SpawnPassengers runs one passenger round: every station below capacity
// draws a destination among the other shapes and keeps it only if some
// station of that shape exists. Returns the number of passengers added.
func (r *Stations) SpawnPassengers(rng *rand.Rand, capacity int) int {
	existing := r.Shapes()
	added := 0
	for _, s := range r.list {
		if len(s.Waiting) >= capacity {
			continue
		}
		dest := otherShape(s.Shape, rng.Intn(len(AllShapes)-1))
		if !existing.Has(dest) {
			continue
		}
		s.Enqueue(Passenger{Destination: dest})
		added++
	}
	return added
}

// UpdateFullness advances the full timer of every station and returns the
// longest time any station has been full.
func (r *Stations) UpdateFullness(dt float64, capacity int) float64 {
	longest := 0.0
	for _, s := range r.list {
		if len(s.Waiting) >= capacity {
			s.Full += dt
		} else {
			s.Full = 0
		}
		longest = math.Max(longest, s.Full)
	}
	return longest
}

// otherShape returns the n-th shape, in declaration order, that differs from own.
func otherShape(own Shape, n int) Shape {
	for _, s := range AllShapes {
		if s == own {
			continue
		}
		if n == 0 {
			return s
		}
		n--
	}
	return own
}
