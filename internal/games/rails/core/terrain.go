package core

import (
	"context"
	"math"
	"math/rand"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vovakirdan/tui-rails/internal/telemetry"
)

// TerrainReport summarizes a generated map.
type TerrainReport struct {
	Blobs     int
	Water     int
	Mountains int
	Grass     int
}

// GenerateTerrain overwrites the terrain of every cell: a meandering river,
// then radial mountain blobs, then one smoothing pass.
// Rail and station data on the grid are left untouched.
func GenerateTerrain(ctx context.Context, g *Grid, rng *rand.Rand, p TerrainParams) TerrainReport {
	_, span := telemetry.Tracer("terrain").Start(ctx, "terrain.generate")
	defer span.End()

	for i := range g.Cells {
		g.Cells[i].Terrain = TerrainGrass
	}

	carveRiver(g, rng)
	blobs := raiseMountains(g, rng, p)
	smoothMountains(g)

	report := TerrainReport{
		Blobs:     blobs,
		Water:     g.Count(func(c Cell) bool { return c.Terrain == TerrainWater }),
		Mountains: g.Count(func(c Cell) bool { return c.Terrain == TerrainMountain }),
	}
	report.Grass = len(g.Cells) - report.Water - report.Mountains

	span.SetAttributes(
		attribute.Int("terrain.rows", g.Rows),
		attribute.Int("terrain.cols", g.Cols),
		attribute.Int("terrain.blobs", report.Blobs),
		attribute.Int("terrain.water", report.Water),
		attribute.Int("terrain.mountains", report.Mountains),
	)
	return report
}

// carveRiver walks west to east from the middle row, marking a band three
// cells tall as water and drifting up or down by at most one row per column.
func carveRiver(g *Grid, rng *rand.Rand) {
	row := g.Rows / 2
	for col := 0; col < g.Cols; col++ {
		for dr := -1; dr <= 1; dr++ {
			g.SetTerrain(C(row+dr, col), TerrainWater)
		}
		switch rng.Intn(3) {
		case 0:
			if row > 1 {
				row--
			}
		case 2:
			if row < g.Rows-2 {
				row++
			}
		}
	}
}

// raiseMountains stamps random blobs with a solid core and a probabilistic
// falloff toward the rim. Water is never overwritten.
func raiseMountains(g *Grid, rng *rand.Rand, p TerrainParams) int {
	count := p.MinMountains + rng.Intn(p.MaxMountains-p.MinMountains+1)
	for n := 0; n < count; n++ {
		centre := C(rng.Intn(g.Rows), rng.Intn(g.Cols))
		radius := float64(p.MinRadius + rng.Intn(p.MaxRadius-p.MinRadius+1))
		coreRadius := radius * p.CoreRatio

		for row := 0; row < g.Rows; row++ {
			for col := 0; col < g.Cols; col++ {
				c := C(row, col)
				if g.At(c).Terrain == TerrainWater {
					continue
				}
				dist := math.Hypot(float64(row-centre.Row), float64(col-centre.Col))
				if dist > radius {
					continue
				}
				if dist <= coreRadius {
					g.SetTerrain(c, TerrainMountain)
					continue
				}
				t := (dist - coreRadius) / (radius - coreRadius)
				if rng.Float64() < 1-t {
					g.SetTerrain(c, TerrainMountain)
				}
			}
		}
	}
	return count
}

// smoothMountains runs one cellular-automaton pass over interior cells,
// reading from a snapshot so updates do not cascade within the pass.
func smoothMountains(g *Grid) {
	snapshot := g.Clone()
	for row := 1; row < g.Rows-1; row++ {
		for col := 1; col < g.Cols-1; col++ {
			c := C(row, col)
			if snapshot.At(c).Terrain == TerrainWater {
				continue
			}
			mountains := 0
			for _, d := range Dirs {
				if snapshot.At(c.Step(d)).Terrain == TerrainMountain {
					mountains++
				}
			}
			switch {
			case mountains >= 3:
				g.SetTerrain(c, TerrainMountain)
			case mountains <= 1:
				g.SetTerrain(c, TerrainGrass)
			}
		}
	}
}
