package core

// NoStation marks a train that is not docked.
const NoStation = -1

// Train is a locomotive plus wagons moving cell to cell along the rail.
// A train is either moving (Stopping false) or docked at StationID.
type Train struct {
	ID         int
	Cell       Coord
	Facing     Dir
	Progress   float64 // Fraction of the way to the next cell, in [0, 1)
	Wagons     int
	Passengers []Passenger
	Trail      *Trail

	Stopping     bool
	StationID    int
	StopTimer    float64
	UnloadCursor int

	seats int
}

// Capacity returns the number of passengers the train can carry.
func (t *Train) Capacity() int {
	return t.Wagons * t.seats
}

// HasSpace reports whether another passenger fits.
func (t *Train) HasSpace() bool {
	return len(t.Passengers) < t.Capacity()
}

// CarriesFor reports whether any passenger aboard is bound for shape.
func (t *Train) CarriesFor(shape Shape) bool {
	for _, p := range t.Passengers {
		if p.Destination == shape {
			return true
		}
	}
	return false
}

// Position returns the interpolated world position of the locomotive.
func (t *Train) Position(g *Grid) Vec {
	here := g.CellToWorld(t.Cell)
	if t.Stopping {
		return here
	}
	next := t.Cell.Step(t.Facing)
	if !g.InBounds(next) {
		return here
	}
	return here.Lerp(g.CellToWorld(next), t.Progress)
}

// wantsToDock reports whether arriving at s is worth a stop: someone aboard
// gets off here, or there is room and someone is waiting.
func (t *Train) wantsToDock(s *Station) bool {
	return t.CarriesFor(s.Shape) || (t.HasSpace() && len(s.Waiting) > 0)
}

func (t *Train) dock(s *Station) {
	t.Stopping = true
	t.StationID = s.ID
	t.StopTimer = 0
	t.UnloadCursor = 0
}

func (t *Train) depart(g *Grid) {
	t.Stopping = false
	t.StationID = NoStation
	t.StopTimer = 0
	t.UnloadCursor = 0
	t.Facing = chooseDirection(g.Rail(t.Cell), t.Facing)
}

// serve performs one docked action: deliver or skip the passenger under the
// cursor, else board the newest waiting passenger, else depart. Boarding
// leaves the cursor alone, so the next action looks at the new passenger.
// Returns the number of passengers delivered (0 or 1).
func (t *Train) serve(g *Grid, stations *Stations) int {
	s, ok := stations.Get(t.StationID)
	if !ok {
		t.depart(g)
		return 0
	}

	if t.UnloadCursor < len(t.Passengers) {
		if t.Passengers[t.UnloadCursor].Destination == s.Shape {
			t.Passengers = append(t.Passengers[:t.UnloadCursor], t.Passengers[t.UnloadCursor+1:]...)
			return 1
		}
		t.UnloadCursor++
		return 0
	}

	if t.HasSpace() {
		if p, ok := s.PopNewest(); ok {
			t.Passengers = append(t.Passengers, p)
			return 0
		}
	}

	t.depart(g)
	return 0
}

// chooseDirection keeps going straight when possible, otherwise takes the
// first present edge in North, East, South, West order that is not the way
// back, and reverses only at a dead end.
func chooseDirection(m RailMask, facing Dir) Dir {
	if m.Has(facing) {
		return facing
	}
	back := facing.Opposite()
	for _, d := range Dirs {
		if d != back && m.Has(d) {
			return d
		}
	}
	return back
}
