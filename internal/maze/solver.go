package maze

import (
	"github.com/sirupsen/logrus"
)

// Path is a sequence of adjacent points, start first.
type Path []Point

/*
Solver finds a shortest path from the grid's start to its end with A* and the
Manhattan heuristic. Like [Generator] it is stepable: each [Solver.Step]
expands a single point of the open set.
*/
type Solver struct {
	grid     *Grid
	open     *openSet
	cameFrom map[Point]Point
	gScore   map[Point]int
	state    State
	path     Path
	found    bool
	expanded int
}

// NewSolver works on a copy of grid, later changes to grid are not seen.
func NewSolver(grid *Grid) *Solver {
	return &Solver{
		grid:     grid.Clone(),
		open:     newOpenSet(),
		cameFrom: make(map[Point]Point),
		gScore:   make(map[Point]int),
	}
}

func (s *Solver) State() State { return s.state }

func (s *Solver) IsDone() bool { return s.state == Done }

// Expanded counts points taken off the open set so far.
func (s *Solver) Expanded() int { return s.expanded }

func (s *Solver) Grid() *Grid { return s.grid.Clone() }

// Path returns the result once the solver is done.
func (s *Solver) Path() (Path, bool) {
	if !s.found {
		return nil, false
	}
	return append(Path(nil), s.path...), true
}

func (s *Solver) heuristic(p Point) int {
	return p.Distance(s.grid.end)
}

func (s *Solver) Initialize() error {
	if s.state != Clear {
		return ErrAlreadyInitialized
	}
	start := s.grid.start
	s.gScore[start] = 0
	s.open.push(start, s.heuristic(start))
	s.state = Initialized
	return nil
}

// Step expands the most promising open point. It returns the path and true as
// soon as the end is reached. A false result with [Solver.IsDone] set means
// the end cannot be reached from the start.
func (s *Solver) Step() (Path, bool) {
	if s.state == Clear {
		_ = s.Initialize()
	}
	if s.state == Done {
		return s.Path()
	}
	s.state = InProgress

	current, _, ok := s.open.pop()
	if !ok {
		s.finish(nil, false)
		return nil, false
	}
	s.expanded++

	if current == s.grid.end {
		s.finish(s.reconstruct(current), true)
		return s.Path()
	}

	g := s.gScore[current]
	for _, n := range s.grid.Neighbors(current) {
		if !s.grid.IsOpen(current, n) {
			continue
		}
		tentative := g + 1
		if known, ok := s.gScore[n]; ok && tentative >= known {
			continue
		}
		s.cameFrom[n] = current
		s.gScore[n] = tentative
		s.open.push(n, tentative+s.heuristic(n))
	}
	return nil, false
}

// Solve steps until the solver is done.
func (s *Solver) Solve() (Path, bool) {
	for !s.IsDone() {
		s.Step()
	}
	return s.Path()
}

// Restart forgets all progress. The grid and its endpoints are kept.
func (s *Solver) Restart() {
	s.open = newOpenSet()
	clear(s.cameFrom)
	clear(s.gScore)
	s.state = Clear
	s.path = nil
	s.found = false
	s.expanded = 0
}

// CostMap returns the best known distance from start for every point reached
// so far. Points missing from the map have not been reached.
func (s *Solver) CostMap() map[Point]int {
	costs := make(map[Point]int, len(s.gScore))
	for p, c := range s.gScore {
		costs[p] = c
	}
	return costs
}

func (s *Solver) Cost(p Point) (int, bool) {
	c, ok := s.gScore[p]
	return c, ok
}

// IsOpen reports whether p is waiting in the open set.
func (s *Solver) IsOpen(p Point) bool {
	return s.open.has(p)
}

func (s *Solver) reconstruct(end Point) Path {
	path := Path{end}
	for p := end; ; {
		prev, ok := s.cameFrom[p]
		if !ok {
			break
		}
		path = append(path, prev)
		p = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func (s *Solver) finish(path Path, found bool) {
	s.state = Done
	s.path = path
	s.found = found
	Log.WithFields(logrus.Fields{
		"start":    s.grid.start,
		"end":      s.grid.end,
		"found":    found,
		"length":   len(path),
		"expanded": s.expanded,
	}).Debug("maze solved")
}
