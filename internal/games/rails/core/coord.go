package core

import "fmt"

// Coord addresses a grid cell. Row increases southward, Col eastward.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the neighbouring coordinate in the given direction.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// DirTo returns the direction from c to an orthogonally adjacent coordinate.
func (c Coord) DirTo(other Coord) (Dir, bool) {
	for _, d := range Dirs {
		if c.Step(d) == other {
			return d, true
		}
	}
	return DirNorth, false
}

// Manhattan returns the Manhattan distance to another coordinate.
func (c Coord) Manhattan(other Coord) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Vec is a position on the ground plane in world units.
type Vec struct {
	X float64
	Z float64
}

// Lerp interpolates between v and w by t in [0, 1].
func (v Vec) Lerp(w Vec, t float64) Vec {
	return Vec{X: v.X + (w.X-v.X)*t, Z: v.Z + (w.Z-v.Z)*t}
}
