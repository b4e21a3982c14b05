package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/maze-server/internal/maze"
)

func TestStore(t *testing.T) {
	st := NewStore()
	s, err := st.Create(maze.Params{Width: 3, Height: 3, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, st.Len())

	got, err := st.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	got, err = st.Lookup(s.ID.String())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Lookup("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.Create(maze.Params{Width: -1, Height: 3})
	assert.Error(t, err)
	assert.Equal(t, 1, st.Len())

	assert.True(t, st.Delete(s.ID))
	assert.False(t, st.Delete(s.ID))
	assert.Equal(t, 0, st.Len())
}

func TestStoreSweep(t *testing.T) {
	st := NewStore()
	old, err := st.Create(maze.Params{Width: 2, Height: 2})
	require.NoError(t, err)
	fresh, err := st.Create(maze.Params{Width: 2, Height: 2})
	require.NoError(t, err)

	old.mu.Lock()
	old.touched = time.Now().Add(-time.Hour)
	old.mu.Unlock()

	assert.Equal(t, 1, st.Sweep(time.Now(), 30*time.Minute))
	_, err = st.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.Get(fresh.ID)
	assert.NoError(t, err)

	assert.Equal(t, 1, st.Sweep(time.Now().Add(time.Hour), 30*time.Minute))
	assert.Equal(t, 0, st.Len())
}

func TestTouchKeepsSessionAlive(t *testing.T) {
	st := NewStore()
	s, err := st.Create(maze.Params{Width: 2, Height: 2})
	require.NoError(t, err)

	s.mu.Lock()
	s.touched = time.Now().Add(-time.Hour)
	s.mu.Unlock()

	s.Touch()
	assert.WithinDuration(t, time.Now(), s.LastUsed(), time.Second)
	assert.Equal(t, 0, st.Sweep(time.Now(), 30*time.Minute))
}
