package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistances(t *testing.T) {
	grid, err := NewGrid(3, 1)
	require.NoError(t, err)
	assert.Equal(t, map[Point]int{{0, 0}: 0}, grid.Distances(Point{0, 0}))

	require.NoError(t, grid.RemoveWall(Point{0, 0}, Point{1, 0}))
	require.NoError(t, grid.RemoveWall(Point{1, 0}, Point{2, 0}))
	assert.Equal(t, map[Point]int{{0, 0}: 0, {1, 0}: 1, {2, 0}: 2}, grid.Distances(Point{0, 0}))
	assert.Empty(t, grid.Distances(Point{9, 9}))

	n, ok := grid.ShortestPathLen()
	assert.True(t, ok)
	assert.Equal(t, 2, n)
}

func TestIsPerfect(t *testing.T) {
	grid, err := NewGrid(2, 2)
	require.NoError(t, err)
	assert.False(t, grid.IsPerfect())

	require.NoError(t, grid.RemoveWall(Point{0, 0}, Point{1, 0}))
	require.NoError(t, grid.RemoveWall(Point{1, 0}, Point{1, 1}))
	require.NoError(t, grid.RemoveWall(Point{1, 1}, Point{0, 1}))
	assert.True(t, grid.IsPerfect())

	require.NoError(t, grid.RemoveWall(Point{0, 1}, Point{0, 0}))
	assert.False(t, grid.IsPerfect(), "a loop is not a tree")
}

func TestWallsSymmetric(t *testing.T) {
	grid, err := NewGrid(2, 1)
	require.NoError(t, err)
	assert.True(t, grid.WallsSymmetric())

	grid.at(Point{0, 0}).Walls = grid.at(Point{0, 0}).Walls.without(East)
	assert.False(t, grid.WallsSymmetric())
	assert.False(t, grid.IsOpen(Point{0, 0}, Point{1, 0}))
}

func TestValid(t *testing.T) {
	grid, err := NewGrid(2, 1)
	require.NoError(t, err)
	path := Path{{0, 0}, {1, 0}}
	assert.False(t, grid.Valid(path))

	require.NoError(t, grid.RemoveWall(Point{0, 0}, Point{1, 0}))
	assert.True(t, grid.Valid(path))
	assert.False(t, grid.Valid(nil))
	assert.False(t, grid.Valid(Path{{1, 0}, {0, 0}}))
}
