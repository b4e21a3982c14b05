package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/maze-server/internal/handlers"
	"github.com/vancomm/maze-server/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	var runs handlers.RunRepository
	if a.db != nil {
		runs = repository.New(a.db)
	}

	mazes := handlers.NewMazeHandler(
		a.log, a.store, runs, a.jwt, a.ws, *a.limits, createRand(),
	)
	mazes.Register(a.router)
}
