package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/maze"
)

var Log = logrus.New()

var (
	ErrNotGenerated = errors.New("maze is not generated yet")
	ErrTooManySteps = errors.New("too many steps requested")
	ErrInvalidSteps = errors.New("step count must be positive")
)

// Record summarizes a finished solve. It carries no maze state: the maze is
// reproduced from Params.
type Record struct {
	SessionID       uuid.UUID
	Params          maze.Params
	Start, End      maze.Point
	GenerationSteps int
	Expanded        int
	Found           bool
	PathLength      int
}

/*
Session owns one generator and, once the maze is carved, one solver working on
a copy of the finished grid. All methods are safe for concurrent use.
*/
type Session struct {
	ID        uuid.UUID
	Params    maze.Params
	CreatedAt time.Time

	mu       sync.Mutex
	touched  time.Time
	gen      *maze.Generator
	solver   *maze.Solver
	recorded bool
}

func New(params maze.Params) (*Session, error) {
	gen, err := params.NewGenerator()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		Params:    params,
		CreatedAt: now,
		touched:   now,
		gen:       gen,
	}, nil
}

// guard runs fn under the session lock and turns an [maze.AssertionError]
// panic into an error.
func (s *Session) guard(fn func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		var ae maze.AssertionError
		if e, ok := r.(error); ok && errors.As(e, &ae) {
			Log.WithField("session_id", s.ID).WithError(ae).Error("maze invariant broken")
			err = fmt.Errorf("session %s: %w", s.ID, ae)
			return
		}
		panic(r)
	}()

	return fn()
}

// Run calls fn with exclusive access to the generator and solver. solver is
// nil until solving started.
func (s *Session) Run(fn func(gen *maze.Generator, solver *maze.Solver) error) error {
	return s.guard(func() error {
		return fn(s.gen, s.solver)
	})
}

// Touch marks the session as used without changing it.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched = time.Now()
}

func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched
}

func checkSteps(n, limit int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSteps, n)
	}
	if limit > 0 && n > limit {
		return fmt.Errorf("%w: %d > %d", ErrTooManySteps, n, limit)
	}
	return nil
}

// Step advances generation by up to n steps, stopping early once done.
func (s *Session) Step(n, limit int) error {
	if err := checkSteps(n, limit); err != nil {
		return err
	}
	return s.guard(func() error {
		for range n {
			if s.gen.Step() == maze.Done {
				break
			}
		}
		return nil
	})
}

func (s *Session) Generate() error {
	return s.guard(func() error {
		s.gen.Generate()
		return nil
	})
}

// Restart starts generation over and drops the solver.
func (s *Session) Restart() error {
	return s.guard(func() error {
		s.gen.Restart()
		s.solver = nil
		s.recorded = false
		return nil
	})
}

// SetEndpoints moves start and end. Only allowed before generation starts.
func (s *Session) SetEndpoints(start, end maze.Point) error {
	return s.guard(func() error {
		grid := s.gen.Grid()
		if !grid.InBounds(start) {
			return fmt.Errorf("%w: start %s", maze.ErrOutOfBounds, start)
		}
		if !grid.InBounds(end) {
			return fmt.Errorf("%w: end %s", maze.ErrOutOfBounds, end)
		}
		if err := s.gen.SetStart(start); err != nil {
			return err
		}
		return s.gen.SetEnd(end)
	})
}

func (s *Session) ensureSolver() error {
	if !s.gen.IsDone() {
		return ErrNotGenerated
	}
	if s.solver == nil {
		s.solver = maze.NewSolver(s.gen.Grid())
	}
	return nil
}

// SolveStep advances the solver by up to n expansions.
func (s *Session) SolveStep(n, limit int) error {
	if err := checkSteps(n, limit); err != nil {
		return err
	}
	return s.guard(func() error {
		if err := s.ensureSolver(); err != nil {
			return err
		}
		for range n {
			if s.solver.IsDone() {
				break
			}
			s.solver.Step()
		}
		return nil
	})
}

func (s *Session) Solve() error {
	return s.guard(func() error {
		if err := s.ensureSolver(); err != nil {
			return err
		}
		s.solver.Solve()
		return nil
	})
}

// TakeRecord returns the summary of a finished solve exactly once per solve.
func (s *Session) TakeRecord() (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recorded || s.solver == nil || !s.solver.IsDone() {
		return Record{}, false
	}
	s.recorded = true

	grid := s.gen.Grid()
	path, found := s.solver.Path()
	rec := Record{
		SessionID:       s.ID,
		Params:          s.Params,
		Start:           grid.Start(),
		End:             grid.End(),
		GenerationSteps: s.gen.Steps(),
		Expanded:        s.solver.Expanded(),
		Found:           found,
	}
	if found {
		rec.PathLength = len(path) - 1
	}
	return rec, true
}

// Render draws the maze as text, with the solution if there is one.
func (s *Session) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var path maze.Path
	if s.solver != nil {
		path, _ = s.solver.Path()
	}
	return s.gen.Grid().Render(path)
}
