package session

import (
	"github.com/google/uuid"

	"github.com/vancomm/maze-server/internal/maze"
)

type CellSnapshot struct {
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Walls maze.Walls     `json:"walls"` // bit i set: wall on side i, north = 0, clockwise
	State maze.CellState `json:"state"`
}

type CostSnapshot struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Cost int `json:"cost"`
}

type SolverSnapshot struct {
	State    maze.State     `json:"state"`
	Expanded int            `json:"expanded"`
	Found    bool           `json:"found"`
	Path     maze.Path      `json:"path,omitempty"`
	Costs    []CostSnapshot `json:"costs"`
	Open     []maze.Point   `json:"open"`
}

type Snapshot struct {
	SessionID uuid.UUID       `json:"session_id"`
	Params    string          `json:"params"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Seed      uint64          `json:"seed,string"`
	Start     maze.Point      `json:"start"`
	End       maze.Point      `json:"end"`
	State     maze.State      `json:"state"`
	Steps     int             `json:"steps"`
	Current   *maze.Point     `json:"current,omitempty"`
	Frontier  []maze.Point    `json:"frontier"`
	Cells     []CellSnapshot  `json:"cells"`
	Solver    *SolverSnapshot `json:"solver,omitempty"`
	CreatedAt int64           `json:"created_at"`
}

func (s *Session) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.gen.Grid()
	cells := grid.Cells()
	snap := &Snapshot{
		SessionID: s.ID,
		Params:    s.Params.String(),
		Width:     grid.Width(),
		Height:    grid.Height(),
		Seed:      s.Params.Seed,
		Start:     grid.Start(),
		End:       grid.End(),
		State:     s.gen.State(),
		Steps:     s.gen.Steps(),
		Frontier:  s.gen.Frontier(),
		Cells:     make([]CellSnapshot, len(cells)),
		CreatedAt: s.CreatedAt.UnixMilli(),
	}
	if p, ok := s.gen.Current(); ok {
		snap.Current = &p
	}
	for i, c := range cells {
		snap.Cells[i] = CellSnapshot{
			X:     c.Position.X,
			Y:     c.Position.Y,
			Walls: c.Walls,
			State: s.gen.CellState(c.Position),
		}
	}

	if s.solver != nil {
		snap.Solver = solverSnapshot(s.solver, cells)
	}
	return snap
}

func solverSnapshot(solver *maze.Solver, cells []maze.Cell) *SolverSnapshot {
	path, found := solver.Path()
	snap := &SolverSnapshot{
		State:    solver.State(),
		Expanded: solver.Expanded(),
		Found:    found,
		Path:     path,
		Costs:    make([]CostSnapshot, 0),
		Open:     make([]maze.Point, 0),
	}
	// walk cells instead of the cost map to keep a stable order
	for _, c := range cells {
		if cost, ok := solver.Cost(c.Position); ok {
			snap.Costs = append(snap.Costs, CostSnapshot{c.Position.X, c.Position.Y, cost})
		}
		if solver.IsOpen(c.Position) {
			snap.Open = append(snap.Open, c.Position)
		}
	}
	return snap
}

