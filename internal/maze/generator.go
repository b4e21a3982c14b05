package maze

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

var Log = logrus.New()

// State is the lifecycle of a stepable algorithm. The zero value is Clear.
type State int8

const (
	Clear State = iota
	Initialized
	InProgress
	Done
)

func (s State) String() string {
	switch s {
	case Clear:
		return "clear"
	case Initialized:
		return "initialized"
	case InProgress:
		return "in_progress"
	case Done:
		return "done"
	}
	return "unknown"
}

// MarshalText lets states travel as strings in JSON payloads.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, state := range []State{Clear, Initialized, InProgress, Done} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}

type CellState int8

const (
	Unvisited CellState = iota
	Visited
	Current
)

func (s CellState) String() string {
	switch s {
	case Visited:
		return "visited"
	case Current:
		return "current"
	default:
		return "unvisited"
	}
}

func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CellState) UnmarshalText(text []byte) error {
	for _, state := range []CellState{Unvisited, Visited, Current} {
		if state.String() == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown cell state %q", text)
}

/*
Generator carves a maze with a randomized depth-first search. The search is
driven from outside: every call to [Generator.Step] does one pop of the
backtracking stack, so a caller can render intermediate states between calls.
*/
type Generator struct {
	grid       *Grid
	stack      *stack.Stack[Point]
	visited    mapset.Set[Point]
	current    Point
	hasCurrent bool
	state      State
	steps      int
	rnd        *rand.Rand
}

func NewGenerator(width, height int, rnd *rand.Rand) (*Generator, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	return &Generator{
		grid:    grid,
		stack:   stack.New[Point](),
		visited: mapset.New[Point](),
		rnd:     rnd,
	}, nil
}

func (g *Generator) State() State { return g.state }

func (g *Generator) IsDone() bool { return g.state == Done }

// Steps counts calls to Step that did work since the last restart.
func (g *Generator) Steps() int { return g.steps }

func (g *Generator) Width() int { return g.grid.width }

func (g *Generator) Height() int { return g.grid.height }

// Current returns the point being expanded. There is none before the first
// step and after generation finished.
func (g *Generator) Current() (Point, bool) {
	return g.current, g.hasCurrent
}

// Grid returns a copy of the grid in its current state.
func (g *Generator) Grid() *Grid {
	return g.grid.Clone()
}

// Frontier returns the backtracking stack, bottom first.
func (g *Generator) Frontier() []Point {
	s := g.stack.Copy()
	frontier := make([]Point, s.Size())
	for i := len(frontier) - 1; i >= 0; i-- {
		frontier[i] = s.Pop()
	}
	return frontier
}

func (g *Generator) SetStart(p Point) error {
	if g.state != Clear {
		return ErrGenerationStarted
	}
	return g.grid.SetStart(p)
}

func (g *Generator) SetEnd(p Point) error {
	if g.state != Clear {
		return ErrGenerationStarted
	}
	return g.grid.SetEnd(p)
}

func (g *Generator) Initialize() error {
	if g.state != Clear {
		return ErrAlreadyInitialized
	}
	start := g.grid.start
	g.stack.Push(start)
	g.visited.Put(start)
	g.current = start
	g.hasCurrent = true
	g.state = Initialized
	return nil
}

// Step pops one point off the stack and, if it still has an unvisited
// neighbour, carves a passage to a random one of them. Once the stack runs
// dry the generator is Done and further calls do nothing.
//
// panics [AssertionError]
func (g *Generator) Step() State {
	if g.state == Clear {
		_ = g.Initialize()
	}
	if g.state == Done {
		return g.state
	}

	if g.stack.Size() == 0 {
		g.state = Done
		g.hasCurrent = false
		Log.WithFields(logrus.Fields{
			"width":  g.grid.width,
			"height": g.grid.height,
			"steps":  g.steps,
		}).Debug("maze generated")
		return g.state
	}

	g.steps++
	g.state = InProgress
	g.current = g.stack.Pop()
	g.hasCurrent = true

	next, ok := g.randomUnvisitedNeighbor(g.current)
	if !ok {
		/* dead end, continue from whatever is below on the stack */
		return g.state
	}

	g.stack.Push(g.current)
	if err := g.grid.RemoveWall(g.current, next); err != nil {
		panic(err)
	}
	g.visited.Put(next)
	g.stack.Push(next)

	return g.state
}

// Generate steps until the maze is complete.
func (g *Generator) Generate() State {
	for g.Step() != Done {
	}
	return g.state
}

// Restart throws the grid away and starts over with a fully walled one of the
// same size. Start and end stay where they were.
func (g *Generator) Restart() {
	grid, _ := NewGrid(g.grid.width, g.grid.height)
	grid.start, grid.end = g.grid.start, g.grid.end
	g.grid = grid
	g.stack = stack.New[Point]()
	g.visited.Clear()
	g.current = Point{}
	g.hasCurrent = false
	g.state = Clear
	g.steps = 0
}

func (g *Generator) CellState(p Point) CellState {
	if g.hasCurrent && p == g.current {
		return Current
	}
	if g.visited.Has(p) {
		return Visited
	}
	return Unvisited
}

func (g *Generator) randomUnvisitedNeighbor(p Point) (Point, bool) {
	candidates := make([]Point, 0, 4)
	for _, n := range g.grid.Neighbors(p) {
		if !g.visited.Has(n) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return Point{}, false
	}
	return candidates[g.rnd.IntN(len(candidates))], true
}
