package core

import (
	"fmt"

	"github.com/zyedidia/generic/queue"
)

// searchOrder is the neighbour expansion order for path finding.
var searchOrder = [4]Dir{DirNorth, DirSouth, DirWest, DirEast}

// FindPath returns a shortest 4-connected path from start to goal,
// inclusive of both ends. Terrain does not block movement: rail may cross
// water as a bridge and mountains as a tunnel.
func FindPath(g *Grid, start, goal Coord) ([]Coord, error) {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil, fmt.Errorf("find path %v -> %v: %w", start, goal, ErrOutOfBounds)
	}
	if start == goal {
		return []Coord{start}, nil
	}

	parent := make([]int, g.Rows*g.Cols)
	for i := range parent {
		parent[i] = -1
	}
	visited := make([]bool, g.Rows*g.Cols)

	frontier := queue.New[Coord]()
	frontier.Enqueue(start)
	visited[g.index(start)] = true

	for !frontier.Empty() {
		cur := frontier.Dequeue()
		if cur == goal {
			return tracePath(g, parent, start, goal), nil
		}
		for _, d := range searchOrder {
			next := cur.Step(d)
			if !g.InBounds(next) || visited[g.index(next)] {
				continue
			}
			visited[g.index(next)] = true
			parent[g.index(next)] = g.index(cur)
			frontier.Enqueue(next)
		}
	}

	return nil, fmt.Errorf("find path %v -> %v: %w", start, goal, ErrUnreachable)
}

func tracePath(g *Grid, parent []int, start, goal Coord) []Coord {
	var rev []Coord
	for idx := g.index(goal); ; idx = parent[idx] {
		rev = append(rev, C(idx/g.Cols, idx%g.Cols))
		if idx == g.index(start) {
			break
		}
	}
	path := make([]Coord, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}
