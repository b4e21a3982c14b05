package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/maze-server/internal/database"
	"github.com/vancomm/maze-server/internal/maze"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	for _, name := range []string{"DATABASE_URL", "POSTGRES_HOST"} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv("JWT_SECRET", "test")
	t.Setenv("SESSION_TTL", "40ms")

	log := logrus.New()
	log.SetOutput(io.Discard)
	a := New(log, database.Migrations)
	require.NoError(t, a.setup(context.Background()))
	a.loadRoutes()
	return a
}

func TestAppRoutes(t *testing.T) {
	a := newTestApp(t)
	h := a.handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/maze?width=4&height=3&seed=5", nil))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		SessionID string `json:"session_id"`
		Token     string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	r := httptest.NewRequest(http.MethodPost, "/maze/"+created.SessionID+"/generate", nil)
	r.Header.Set("Authorization", "Bearer "+created.Token)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/runs", nil))
	assert.Equal(t, http.StatusNotFound, w.Code, "no database, no runs")
}

func TestSweep(t *testing.T) {
	a := newTestApp(t)
	_, err := a.store.Create(maze.Params{Width: 2, Height: 2})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- a.sweep(ctx) }()

	assert.Eventually(t, func() bool { return a.store.Len() == 0 }, time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)
}
