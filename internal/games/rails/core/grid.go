package core

import "math"

// Grid is the world map: a rectangular array of cells stored row-major,
// index = row*Cols + col.
type Grid struct {
	Rows     int
	Cols     int
	CellSize float64
	Cells    []Cell
}

// NewGrid creates an all-grass grid with no rail and no stations.
func NewGrid(rows, cols int, cellSize float64) *Grid {
	return &Grid{
		Rows:     rows,
		Cols:     cols,
		CellSize: cellSize,
		Cells:    make([]Cell, rows*cols),
	}
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.Cols + c.Col
}

// InBounds returns true if the coordinate lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// OnBorder returns true if the coordinate is on the outermost ring.
func (g *Grid) OnBorder(c Coord) bool {
	return c.Row == 0 || c.Col == 0 || c.Row == g.Rows-1 || c.Col == g.Cols-1
}

// At returns the cell at the coordinate, or a zero cell if out of bounds.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		return Cell{}
	}
	return g.Cells[g.index(c)]
}

// Set replaces the cell at the coordinate. Out-of-bounds writes are ignored.
func (g *Grid) Set(c Coord, cell Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = cell
	}
}

// SetTerrain changes only the terrain of a cell.
func (g *Grid) SetTerrain(c Coord, t Terrain) {
	if g.InBounds(c) {
		g.Cells[g.index(c)].Terrain = t
	}
}

// Rail returns the rail mask at the coordinate (0 when out of bounds).
func (g *Grid) Rail(c Coord) RailMask {
	return g.At(c).Rail
}

func (g *Grid) setRail(c Coord, m RailMask) {
	if g.InBounds(c) {
		g.Cells[g.index(c)].Rail = m
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		Rows:     g.Rows,
		Cols:     g.Cols,
		CellSize: g.CellSize,
		Cells:    cells,
	}
}

// Equal returns true if both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.Rows != other.Rows || g.Cols != other.Cols || g.CellSize != other.CellSize {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of cells matching the predicate.
func (g *Grid) Count(pred func(Cell) bool) int {
	n := 0
	for _, cell := range g.Cells {
		if pred(cell) {
			n++
		}
	}
	return n
}

// CellToWorld returns the world-space centre of a cell.
// The grid is centred on the world origin.
func (g *Grid) CellToWorld(c Coord) Vec {
	return Vec{
		X: float64(c.Col-g.Cols/2)*g.CellSize + g.CellSize/2,
		Z: float64(c.Row-g.Rows/2)*g.CellSize + g.CellSize/2,
	}
}

// WorldToCell returns the cell containing the world position.
// The second result is false when the position falls outside the grid.
func (g *Grid) WorldToCell(p Vec) (Coord, bool) {
	col := int(math.Floor(p.X/g.CellSize)) + g.Cols/2
	row := int(math.Floor(p.Z/g.CellSize)) + g.Rows/2
	c := C(row, col)
	return c, g.InBounds(c)
}
