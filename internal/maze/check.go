package maze

import (
	"github.com/zyedidia/generic/queue"
)

// Distances runs a breadth-first search from the given point over open walls and returns
// the number of moves to every reachable point.
func (g *Grid) Distances(from Point) map[Point]int {
	dist := make(map[Point]int, g.width*g.height)
	if !g.InBounds(from) {
		return dist
	}
	dist[from] = 0
	q := queue.New[Point]()
	q.Enqueue(from)
	for !q.Empty() {
		p := q.Dequeue()
		for _, n := range g.Neighbors(p) {
			if _, seen := dist[n]; seen || !g.IsOpen(p, n) {
				continue
			}
			dist[n] = dist[p] + 1
			q.Enqueue(n)
		}
	}
	return dist
}

// ShortestPathLen is the number of moves between start and end, or false if
// end is unreachable.
func (g *Grid) ShortestPathLen() (int, bool) {
	d, ok := g.Distances(g.start)[g.end]
	return d, ok
}

// WallsSymmetric reports whether every wall is either present on both of
// the cells it separates or on neither.
func (g *Grid) WallsSymmetric() bool {
	for _, c := range g.cells {
		for _, d := range Directions {
			n := c.Position.Step(d)
			if !g.InBounds(n) {
				continue
			}
			if c.Walls.Has(d) != g.at(n).Walls.Has(d.Opposite()) {
				return false
			}
		}
	}
	return true
}

// IsPerfect reports whether the open walls form a spanning tree: every cell
// reachable from every other through exactly one simple path.
func (g *Grid) IsPerfect() bool {
	if !g.WallsSymmetric() {
		return false
	}
	passages := 0
	for _, c := range g.cells {
		for _, d := range [2]Direction{East, South} {
			if n := c.Position.Step(d); g.InBounds(n) && !c.Walls.Has(d) {
				passages++
			}
		}
	}
	n := g.width * g.height
	return passages == n-1 && len(g.Distances(Point{})) == n
}

// Valid reports whether path is a walk from start to end through open walls.
func (g *Grid) Valid(path Path) bool {
	if len(path) == 0 || path[0] != g.start || path[len(path)-1] != g.end {
		return false
	}
	for i := 1; i < len(path); i++ {
		if !g.IsOpen(path[i-1], path[i]) {
			return false
		}
	}
	return true
}
