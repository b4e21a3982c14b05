package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/maze-server/internal/maze"
)

func newTestSession(t *testing.T, w, h int) *Session {
	t.Helper()
	s, err := New(maze.Params{Width: w, Height: h, Seed: 17})
	require.NoError(t, err)
	return s
}

func TestNewInvalid(t *testing.T) {
	_, err := New(maze.Params{Width: 0, Height: 3})
	assert.ErrorIs(t, err, maze.ErrInvalidDimension)
}

func TestSessionStep(t *testing.T) {
	s := newTestSession(t, 4, 4)

	require.NoError(t, s.Step(3, 10))
	snap := s.Snapshot()
	assert.Equal(t, maze.InProgress, snap.State)
	assert.Equal(t, 3, snap.Steps)
	require.NotNil(t, snap.Current)

	assert.ErrorIs(t, s.Step(11, 10), ErrTooManySteps)
	assert.ErrorIs(t, s.Step(0, 10), ErrInvalidSteps)

	require.NoError(t, s.Step(1000, 0))
	snap = s.Snapshot()
	assert.Equal(t, maze.Done, snap.State)
	assert.Equal(t, 2*4*4-1, snap.Steps)
	assert.Nil(t, snap.Current)
}

func TestSessionSolve(t *testing.T) {
	s := newTestSession(t, 6, 5)

	assert.ErrorIs(t, s.Solve(), ErrNotGenerated)
	assert.ErrorIs(t, s.SolveStep(1, 0), ErrNotGenerated)
	_, ok := s.TakeRecord()
	assert.False(t, ok)

	require.NoError(t, s.Generate())
	require.NoError(t, s.SolveStep(1, 0))
	snap := s.Snapshot()
	require.NotNil(t, snap.Solver)
	assert.Equal(t, 1, snap.Solver.Expanded)
	_, ok = s.TakeRecord()
	assert.False(t, ok)

	require.NoError(t, s.Solve())
	snap = s.Snapshot()
	assert.Equal(t, maze.Done, snap.Solver.State)
	assert.True(t, snap.Solver.Found)
	assert.NotEmpty(t, snap.Solver.Costs)

	rec, ok := s.TakeRecord()
	require.True(t, ok)
	assert.True(t, rec.Found)
	assert.Equal(t, len(snap.Solver.Path)-1, rec.PathLength)
	assert.Equal(t, s.ID, rec.SessionID)
	assert.Equal(t, maze.Point{X: 5, Y: 4}, rec.End)

	_, ok = s.TakeRecord()
	assert.False(t, ok, "a solve is recorded once")

	assert.Contains(t, s.Render(), " . ")
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(t, 5, 5)
	require.NoError(t, s.Generate())
	require.NoError(t, s.Solve())

	require.NoError(t, s.Restart())
	snap := s.Snapshot()
	assert.Equal(t, maze.Clear, snap.State)
	assert.Nil(t, snap.Solver)
	for _, c := range snap.Cells {
		assert.Equal(t, maze.AllWalls, c.Walls)
		assert.Equal(t, maze.Unvisited, c.State)
	}
}

func TestSessionEndpoints(t *testing.T) {
	s := newTestSession(t, 5, 5)
	start, end := maze.Point{X: 2, Y: 2}, maze.Point{X: 0, Y: 4}

	assert.ErrorIs(t, s.SetEndpoints(maze.Point{X: 9, Y: 0}, end), maze.ErrOutOfBounds)
	require.NoError(t, s.SetEndpoints(start, end))

	require.NoError(t, s.Generate())
	require.NoError(t, s.Solve())
	snap := s.Snapshot()
	assert.Equal(t, start, snap.Start)
	assert.Equal(t, end, snap.End)
	require.True(t, snap.Solver.Found)
	assert.Equal(t, start, snap.Solver.Path[0])
	assert.Equal(t, end, snap.Solver.Path[len(snap.Solver.Path)-1])

	assert.ErrorIs(t, s.SetEndpoints(end, start), maze.ErrGenerationStarted)
}

func TestSessionDeterministic(t *testing.T) {
	a := newTestSession(t, 9, 7)
	b := newTestSession(t, 9, 7)
	require.NoError(t, a.Generate())
	require.NoError(t, b.Generate())
	assert.Equal(t, a.Snapshot().Cells, b.Snapshot().Cells)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGuardRecoversAssertion(t *testing.T) {
	s := newTestSession(t, 2, 2)
	err := s.Run(func(gen *maze.Generator, solver *maze.Solver) error {
		panic(maze.ErrSameCell)
	})
	assert.ErrorIs(t, err, maze.ErrSameCell)

	assert.Panics(t, func() {
		_ = s.Run(func(gen *maze.Generator, solver *maze.Solver) error {
			panic("boom")
		})
	})

	// the lock is released after a recovered panic
	assert.NoError(t, s.Generate())
}
