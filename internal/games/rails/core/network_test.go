package core_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-rails/internal/games/rails/core"
)

func line(row, fromCol, toCol int) []core.Coord {
	var path []core.Coord
	step := 1
	if toCol < fromCol {
		step = -1
	}
	for col := fromCol; ; col += step {
		path = append(path, core.C(row, col))
		if col == toCol {
			break
		}
	}
	return path
}

func column(col, fromRow, toRow int) []core.Coord {
	var path []core.Coord
	for row := fromRow; row <= toRow; row++ {
		path = append(path, core.C(row, col))
	}
	return path
}

func TestBuildPathSetsReciprocalEdges(t *testing.T) {
	g := core.NewGrid(5, 5, 1.0)

	if err := core.BuildPath(g, line(2, 0, 4)); err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}

	tests := []struct {
		coord    core.Coord
		expected core.RailMask
	}{
		{core.C(2, 0), core.MaskEast},
		{core.C(2, 1), core.MaskWest | core.MaskEast},
		{core.C(2, 3), core.MaskWest | core.MaskEast},
		{core.C(2, 4), core.MaskWest},
		{core.C(1, 2), 0},
	}

	for _, tc := range tests {
		if got := g.Rail(tc.coord); got != tc.expected {
			t.Errorf("Rail(%v) = %04b, expected %04b", tc.coord, got, tc.expected)
		}
	}
}

func TestBuildPathRejectsJunctionAtomically(t *testing.T) {
	g := core.NewGrid(5, 5, 1.0)
	if err := core.BuildPath(g, line(2, 0, 4)); err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}

	before := g.Clone()
	err := core.BuildPath(g, column(2, 0, 4))
	if !errors.Is(err, core.ErrJunction) {
		t.Errorf("expected ErrJunction, got %v", err)
	}
	if !errors.Is(err, core.ErrInvalidPlacement) {
		t.Errorf("junction should also be an invalid placement, got %v", err)
	}
	if !g.Equal(before) {
		t.Error("grid changed after a rejected build")
	}
}

func TestBuildPathRejectsBranchFromMiddle(t *testing.T) {
	g := core.NewGrid(5, 5, 1.0)
	if err := core.BuildPath(g, line(2, 0, 4)); err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}

	before := g.Clone()
	err := core.BuildPath(g, column(2, 2, 4))
	if !errors.Is(err, core.ErrJunction) {
		t.Errorf("expected ErrJunction, got %v", err)
	}
	if !g.Equal(before) {
		t.Error("grid changed after a rejected build")
	}
}

func TestBuildPathExtendsEndpoint(t *testing.T) {
	g := core.NewGrid(5, 5, 1.0)
	if err := core.BuildPath(g, line(2, 0, 2)); err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}
	if err := core.BuildPath(g, column(2, 2, 4)); err != nil {
		t.Fatalf("extending from an endpoint should succeed: %v", err)
	}
	if got := g.Rail(core.C(2, 2)); got != core.MaskWest|core.MaskSouth {
		t.Errorf("corner mask = %04b, expected West|South", got)
	}
}

func TestBuildPathRailKinds(t *testing.T) {
	g := core.NewGrid(3, 5, 1.0)
	g.SetTerrain(core.C(1, 1), core.TerrainWater)
	g.SetTerrain(core.C(1, 3), core.TerrainMountain)

	if err := core.BuildPath(g, line(1, 0, 4)); err != nil {
		t.Fatalf("BuildPath failed: %v", err)
	}

	expected := []core.RailKind{core.RailNormal, core.RailBridge, core.RailNormal, core.RailTunnel, core.RailNormal}
	for col, kind := range expected {
		if got := g.At(core.C(1, col)).Kind; got != kind {
			t.Errorf("Kind at column %d = %v, expected %v", col, got, kind)
		}
	}
}

func TestBuildPathRejectsNonAdjacent(t *testing.T) {
	g := core.NewGrid(3, 3, 1.0)
	err := core.BuildPath(g, []core.Coord{core.C(0, 0), core.C(1, 1)})
	if !errors.Is(err, core.ErrInvalidPlacement) {
		t.Errorf("expected ErrInvalidPlacement, got %v", err)
	}
}

func TestEraseFollowsTrack(t *testing.T) {
	g := core.NewGrid(6, 6, 1.0)
	if err := core.BuildPath(g, line(1, 1, 4)); err != nil {
		t.Fatal(err)
	}
	if err := core.BuildPath(g, column(4, 1, 4)); err != nil {
		t.Fatal(err)
	}

	removed := core.EraseFromCell(g, core.C(1, 2))
	if removed != 6 {
		t.Errorf("removed %d edges, expected 6", removed)
	}
	if n := g.Count(func(c core.Cell) bool { return c.HasRail() }); n != 0 {
		t.Errorf("%d cells still carry rail", n)
	}
}

func TestEraseStopsAtStation(t *testing.T) {
	g := core.NewGrid(5, 7, 1.0)
	if err := core.BuildPath(g, line(2, 0, 6)); err != nil {
		t.Fatal(err)
	}
	station := core.C(2, 3)
	cell := g.At(station)
	cell.HasStation = true
	g.Set(station, cell)

	core.EraseFromCell(g, core.C(2, 1))

	for col := 0; col <= 2; col++ {
		if g.Rail(core.C(2, col)) != 0 {
			t.Errorf("column %d should be cleared", col)
		}
	}
	if got := g.Rail(station); got != core.MaskEast {
		t.Errorf("station mask = %04b, expected only East to remain", got)
	}
	for col := 4; col <= 6; col++ {
		if g.Rail(core.C(2, col)) == 0 {
			t.Errorf("column %d beyond the station should keep its rail", col)
		}
	}
}

func TestEraseOnStationIsNoop(t *testing.T) {
	g := core.NewGrid(3, 5, 1.0)
	if err := core.BuildPath(g, line(1, 0, 4)); err != nil {
		t.Fatal(err)
	}
	station := core.C(1, 2)
	cell := g.At(station)
	cell.HasStation = true
	g.Set(station, cell)

	before := g.Clone()
	if removed := core.EraseFromCell(g, station); removed != 0 {
		t.Errorf("removed %d edges from a station cell", removed)
	}
	if !g.Equal(before) {
		t.Error("erasing on a station should not change the grid")
	}
}

func TestEraseEmptyCell(t *testing.T) {
	g := core.NewGrid(3, 3, 1.0)
	if removed := core.EraseFromCell(g, core.C(1, 1)); removed != 0 {
		t.Errorf("removed %d edges from an empty cell", removed)
	}
}
