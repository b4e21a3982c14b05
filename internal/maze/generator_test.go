package maze

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, width, height int) *Generator {
	t.Helper()
	g, err := NewGenerator(width, height, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return g
}

func TestGenerateSpanningTree(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {7, 1}, {2, 2}, {3, 3}, {10, 4}, {16, 16}, {31, 17}}
	for _, size := range sizes {
		w, h := size[0], size[1]
		t.Run(fmt.Sprintf("%dx%d", w, h), func(t *testing.T) {
			g := newTestGenerator(t, w, h)
			assert.Equal(t, Done, g.Generate())

			grid := g.Grid()
			assert.True(t, grid.WallsSymmetric())
			assert.True(t, grid.IsPerfect())
			assert.Len(t, grid.Distances(grid.Start()), w*h)
		})
	}
}

func TestGenerateTermination(t *testing.T) {
	for seed := range uint64(20) {
		w, h := 1+int(seed%7), 1+int(seed/3)
		g, err := NewGenerator(w, h, rand.New(rand.NewPCG(seed, seed)))
		require.NoError(t, err)

		calls := 0
		for g.Step() != Done {
			calls++
			require.LessOrEqual(t, calls, 2*w*h, "%dx%d seed %d", w, h, seed)
		}
		assert.Equal(t, 2*w*h-1, g.Steps())
	}
}

func TestStepAfterDone(t *testing.T) {
	g := newTestGenerator(t, 4, 4)
	g.Generate()
	before := g.Grid()
	steps := g.Steps()

	for range 5 {
		assert.Equal(t, Done, g.Step())
	}
	assert.True(t, g.IsDone())
	assert.Equal(t, steps, g.Steps())
	assert.Equal(t, before.Cells(), g.Grid().Cells())
	_, ok := g.Current()
	assert.False(t, ok)
}

func TestStepwiseMatchesGenerate(t *testing.T) {
	a, err := NewGenerator(12, 9, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := NewGenerator(12, 9, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)

	a.Generate()
	for !b.IsDone() {
		b.Step()
	}
	assert.Equal(t, a.Grid().Cells(), b.Grid().Cells())
}

func TestGeneratorStates(t *testing.T) {
	g := newTestGenerator(t, 3, 3)
	assert.Equal(t, Clear, g.State())
	assert.Equal(t, Unvisited, g.CellState(Point{0, 0}))

	require.NoError(t, g.Initialize())
	assert.Equal(t, Initialized, g.State())
	assert.ErrorIs(t, g.Initialize(), ErrAlreadyInitialized)
	assert.Equal(t, Current, g.CellState(Point{0, 0}))
	assert.Equal(t, []Point{{0, 0}}, g.Frontier())

	assert.Equal(t, InProgress, g.Step())
	cur, ok := g.Current()
	require.True(t, ok)
	assert.Equal(t, Point{0, 0}, cur)
	assert.Len(t, g.Frontier(), 2)
	assert.Equal(t, Point{0, 0}, g.Frontier()[0])

	assert.ErrorIs(t, g.SetStart(Point{1, 1}), ErrGenerationStarted)
	assert.ErrorIs(t, g.SetEnd(Point{1, 1}), ErrGenerationStarted)
}

func TestRestart(t *testing.T) {
	g := newTestGenerator(t, 6, 5)
	require.NoError(t, g.SetStart(Point{2, 2}))
	require.NoError(t, g.SetEnd(Point{0, 4}))
	g.Generate()
	g.Restart()

	assert.Equal(t, Clear, g.State())
	assert.Equal(t, 0, g.Steps())
	assert.Empty(t, g.Frontier())
	grid := g.Grid()
	assert.Equal(t, Point{2, 2}, grid.Start())
	assert.Equal(t, Point{0, 4}, grid.End())
	for _, c := range grid.Cells() {
		assert.Equal(t, AllWalls, c.Walls)
		assert.Equal(t, Unvisited, g.CellState(c.Position))
	}

	g.Generate()
	grid = g.Grid()
	assert.True(t, grid.WallsSymmetric())
	assert.True(t, grid.IsPerfect())
}

func TestScenario3x3(t *testing.T) {
	g := newTestGenerator(t, 3, 3)
	g.Generate()
	g.Restart()
	for _, c := range g.Grid().Cells() {
		if c.Position != (Point{0, 0}) {
			assert.Equal(t, Unvisited, g.CellState(c.Position))
		}
	}

	g.Generate()
	grid := g.Grid()
	dist := grid.Distances(grid.Start())
	for _, c := range grid.Cells() {
		assert.Contains(t, dist, c.Position)
		assert.Equal(t, Visited, g.CellState(c.Position))
	}

	path, ok := NewSolver(grid).Solve()
	require.True(t, ok)
	moves := len(path) - 1
	assert.GreaterOrEqual(t, moves, 4)
	assert.LessOrEqual(t, moves, 8)
	assert.True(t, grid.Valid(path))
}

func TestStateText(t *testing.T) {
	for _, s := range []State{Clear, Initialized, InProgress, Done} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back State
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	var s State
	assert.Error(t, s.UnmarshalText([]byte("sideways")))

	var c CellState
	require.NoError(t, c.UnmarshalText([]byte("current")))
	assert.Equal(t, Current, c)
	assert.Error(t, c.UnmarshalText([]byte("")))
}
