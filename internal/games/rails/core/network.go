package core

import "fmt"

// BuildPath lays track along consecutive cells of path.
// All edges are validated on a scratch copy first; the live grid is only
// touched once every edge keeps both endpoints at degree two or less.
// Cells on the path get their rail kind from the underlying terrain.
func BuildPath(g *Grid, path []Coord) error {
	if len(path) < 2 {
		return fmt.Errorf("build path of %d cells: %w", len(path), ErrInvalidPlacement)
	}

	scratch := g.Clone()
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if !g.InBounds(a) || !g.InBounds(b) {
			return fmt.Errorf("build path %v -> %v: %w", a, b, ErrOutOfBounds)
		}
		d, ok := a.DirTo(b)
		if !ok {
			return fmt.Errorf("build path %v -> %v not adjacent: %w", a, b, ErrInvalidPlacement)
		}

		ma := scratch.Rail(a).With(d)
		mb := scratch.Rail(b).With(d.Opposite())
		if ma.Degree() > 2 {
			return fmt.Errorf("%w: %w at %v", ErrInvalidPlacement, ErrJunction, a)
		}
		if mb.Degree() > 2 {
			return fmt.Errorf("%w: %w at %v", ErrInvalidPlacement, ErrJunction, b)
		}
		scratch.setRail(a, ma)
		scratch.setRail(b, mb)
	}

	for _, c := range path {
		cell := g.At(c)
		cell.Rail = scratch.Rail(c)
		cell.Kind = KindFor(cell.Terrain)
		g.Set(c, cell)
	}
	return nil
}

// EraseFromCell removes every run of track leaving c. Each run is followed
// edge by edge until it reaches an empty cell, the grid boundary, or a
// station cell. A station reached by a run loses only the edge pointing back
// along that run; the walk does not continue past it. Returns the number of
// edges removed.
func EraseFromCell(g *Grid, c Coord) int {
	if g.Rail(c) == 0 {
		return 0
	}
	removed := 0
	for _, d := range Dirs {
		if g.Rail(c).Has(d) {
			removed += eraseRun(g, c, d)
		}
	}
	return removed
}

func eraseRun(g *Grid, cur Coord, dir Dir) int {
	removed := 0
	for {
		if g.At(cur).HasStation || !g.Rail(cur).Has(dir) {
			return removed
		}
		clearEdge(g, cur, dir)

		next := cur.Step(dir)
		if !g.InBounds(next) {
			return removed
		}
		clearEdge(g, next, dir.Opposite())
		removed++

		cur = next
		rest, ok := g.Rail(cur).First()
		if !ok {
			return removed
		}
		dir = rest
	}
}

func clearEdge(g *Grid, c Coord, d Dir) {
	cell := g.At(c)
	cell.Rail = cell.Rail.Without(d)
	if cell.Rail == 0 {
		cell.Kind = RailNormal
	}
	g.Set(c, cell)
}
