// Package core provides the simulation for the Rails game: terrain,
// rail network, stations, passengers and trains.
// This package is UI-agnostic and deterministic for a given seed.
package core

// Dir is one of the four grid directions a track edge or train can face.
type Dir uint8

const (
	DirNorth Dir = iota
	DirEast
	DirSouth
	DirWest
)

// Dirs lists directions in the order used for direction choice tie-breaks.
var Dirs = [4]Dir{DirNorth, DirEast, DirSouth, DirWest}

var (
	dirBits      = [4]RailMask{MaskNorth, MaskEast, MaskSouth, MaskWest}
	dirOpposites = [4]Dir{DirSouth, DirWest, DirNorth, DirEast}
	dirRowDeltas = [4]int{-1, 0, 1, 0}
	dirColDeltas = [4]int{0, 1, 0, -1}
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirNorth:
		return "North"
	case DirEast:
		return "East"
	case DirSouth:
		return "South"
	case DirWest:
		return "West"
	default:
		return "Unknown"
	}
}

// Bit returns the rail mask flag for an edge leaving in this direction.
func (d Dir) Bit() RailMask {
	return dirBits[d&3]
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	return dirOpposites[d&3]
}

// Delta returns the (row, col) offset of one step in this direction.
// North decreases the row.
func (d Dir) Delta() (dRow, dCol int) {
	return dirRowDeltas[d&3], dirColDeltas[d&3]
}

// RailMask is the set of track edges leaving a cell.
type RailMask uint8

const (
	MaskNorth RailMask = 1 << iota
	MaskSouth
	MaskWest
	MaskEast
)

// Has reports whether the edge in direction d is present.
func (m RailMask) Has(d Dir) bool {
	return m&d.Bit() != 0
}

// With returns the mask with the edge in direction d added.
func (m RailMask) With(d Dir) RailMask {
	return m | d.Bit()
}

// Without returns the mask with the edge in direction d removed.
func (m RailMask) Without(d Dir) RailMask {
	return m &^ d.Bit()
}

// Degree counts the edges in the mask.
func (m RailMask) Degree() int {
	n := 0
	for _, d := range Dirs {
		if m.Has(d) {
			n++
		}
	}
	return n
}

// First returns the first present edge in North, East, South, West order.
func (m RailMask) First() (Dir, bool) {
	for _, d := range Dirs {
		if m.Has(d) {
			return d, true
		}
	}
	return DirNorth, false
}

// Terrain is the ground type of a cell.
type Terrain uint8

const (
	TerrainGrass Terrain = iota
	TerrainWater
	TerrainMountain
)

// String returns the terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainGrass:
		return "Grass"
	case TerrainWater:
		return "Water"
	case TerrainMountain:
		return "Mountain"
	default:
		return "Unknown"
	}
}

// RailKind is the visual category of rail on a cell, derived from terrain.
type RailKind uint8

const (
	RailNormal RailKind = iota
	RailBridge
	RailTunnel
)

// String returns the rail kind name.
func (k RailKind) String() string {
	switch k {
	case RailNormal:
		return "Normal"
	case RailBridge:
		return "Bridge"
	case RailTunnel:
		return "Tunnel"
	default:
		return "Unknown"
	}
}

// KindFor returns the rail kind laid on the given terrain.
func KindFor(t Terrain) RailKind {
	switch t {
	case TerrainWater:
		return RailBridge
	case TerrainMountain:
		return RailTunnel
	default:
		return RailNormal
	}
}

// Shape identifies both a station's kind and a passenger's destination.
type Shape uint8

const (
	ShapeCircle Shape = iota
	ShapeSquare
	ShapePyramid
)

// AllShapes lists every shape in declaration order.
var AllShapes = [3]Shape{ShapeCircle, ShapeSquare, ShapePyramid}

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "Circle"
	case ShapeSquare:
		return "Square"
	case ShapePyramid:
		return "Pyramid"
	default:
		return "Unknown"
	}
}

// Glyph returns the single-rune symbol for the shape.
func (s Shape) Glyph() rune {
	switch s {
	case ShapeCircle:
		return '●'
	case ShapeSquare:
		return '■'
	case ShapePyramid:
		return '▲'
	default:
		return '?'
	}
}

// Cell is the per-location state of the world.
type Cell struct {
	Terrain    Terrain
	Rail       RailMask
	Kind       RailKind
	HasStation bool
}

// HasRail reports whether any track edge leaves the cell.
func (c Cell) HasRail() bool {
	return c.Rail != 0
}
