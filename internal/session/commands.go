package session

import (
	"errors"
	"strconv"
	"strings"

	"github.com/vancomm/maze-server/internal/maze"
)

// Maps known commands to the number of arguments they accept, min and max
var commandNargs = map[string][2]int{
	"g": {0, 0}, // snapshot only
	"s": {0, 1}, // generator steps
	"G": {0, 0}, // generate
	"r": {0, 0}, // restart
	"a": {0, 1}, // solver steps
	"p": {0, 0}, // solve
	"b": {2, 2}, // move start
	"e": {2, 2}, // move end
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandArgs    = errors.New("invalid number of arguments")
)

func parseXY(twoStrings []string) (p maze.Point, err error) {
	if p.X, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if p.Y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func parseCount(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.New("step count must be an int")
	}
	return n, nil
}

// Execute runs one line of the text protocol. maxSteps bounds the counts of
// s and a.
func (s *Session) Execute(c string, maxSteps int) error {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return ErrUnknownCommand
	}
	args := parts[1:]
	if len(args) < nargs[0] || len(args) > nargs[1] {
		return ErrCommandArgs
	}

	switch parts[0] {
	case "g":
		return nil
	case "s":
		n, err := parseCount(args)
		if err != nil {
			return err
		}
		return s.Step(n, maxSteps)
	case "G":
		return s.Generate()
	case "r":
		return s.Restart()
	case "a":
		n, err := parseCount(args)
		if err != nil {
			return err
		}
		return s.SolveStep(n, maxSteps)
	case "p":
		return s.Solve()
	case "b", "e":
		p, err := parseXY(args)
		if err != nil {
			return err
		}
		start, end := s.endpoints()
		if parts[0] == "b" {
			start = p
		} else {
			end = p
		}
		return s.SetEndpoints(start, end)
	}
	return ErrUnknownCommand
}

func (s *Session) endpoints() (maze.Point, maze.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	grid := s.gen.Grid()
	return grid.Start(), grid.End()
}
