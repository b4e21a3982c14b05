package handlers

import (
	"time"

	"github.com/gorilla/schema"

	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/session"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func decode[T any](src map[string][]string) (T, error) {
	var dto T
	err := decoder.Decode(&dto, src)
	return dto, err
}

type CreateMazeDTO struct {
	Width  int     `schema:"width,required"`
	Height int     `schema:"height,required"`
	Seed   *uint64 `schema:"seed"`
}

type StepsDTO struct {
	N int `schema:"n"`
}

// Count defaults to a single step.
func (d StepsDTO) Count() int {
	if d.N == 0 {
		return 1
	}
	return d.N
}

type EndpointsDTO struct {
	StartX int `schema:"start_x,required"`
	StartY int `schema:"start_y,required"`
	EndX   int `schema:"end_x,required"`
	EndY   int `schema:"end_y,required"`
}

func (d EndpointsDTO) Points() (maze.Point, maze.Point) {
	return maze.Point{X: d.StartX, Y: d.StartY}, maze.Point{X: d.EndX, Y: d.EndY}
}

type RunsFilterDTO struct {
	Width  *int `schema:"width"`
	Height *int `schema:"height"`
	Limit  int  `schema:"limit"`
}

// TokenDTO carries a session token. The token stops working at ExpiresAt
// however busy the session is; POST /maze/{id}/token issues a fresh one.
type TokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreatedMazeDTO struct {
	SessionID string `json:"session_id"`
	TokenDTO
	Maze *session.Snapshot `json:"maze"`
}
