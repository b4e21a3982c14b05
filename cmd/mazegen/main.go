package main

import (
	"flag"
	"fmt"
	"hash/maphash"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/maze"
)

var (
	log = logrus.New()

	paramsFlag    string
	width, height int
	seed          uint64
	animate       bool
	stepsPerFrame int
	delay         time.Duration
	skipSolve     bool
	verbose       bool
)

func init() {
	flag.StringVar(&paramsFlag, "params", "", "maze params as width:height:seed, overrides -w, -h and -seed")
	flag.IntVar(&width, "w", 20, "maze width")
	flag.IntVar(&height, "h", 10, "maze height")
	flag.Uint64Var(&seed, "seed", 0, "random seed, 0 picks one")
	flag.BoolVar(&animate, "animate", false, "draw every frame of generation and solving")
	flag.IntVar(&stepsPerFrame, "steps-per-frame", 1, "algorithm steps between frames")
	flag.DurationVar(&delay, "delay", 30*time.Millisecond, "pause between frames")
	flag.BoolVar(&skipSolve, "no-solve", false, "only generate")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func params() (maze.Params, error) {
	if paramsFlag != "" {
		p, err := maze.ParseParams(paramsFlag)
		if err != nil {
			return maze.Params{}, err
		}
		return *p, nil
	}
	p := maze.Params{Width: width, Height: height, Seed: seed}
	if p.Seed == 0 {
		p.Seed = new(maphash.Hash).Sum64()
	}
	return p, nil
}

func frame(grid *maze.Grid, path maze.Path, status string) {
	fmt.Print("\033[H\033[2J")
	fmt.Print(grid.Render(path))
	fmt.Println(status)
	time.Sleep(delay)
}

func generate(gen *maze.Generator) {
	for !gen.IsDone() {
		for range stepsPerFrame {
			if gen.Step() == maze.Done {
				break
			}
		}
		if animate {
			frame(gen.Grid(), nil, fmt.Sprintf("generating: %d steps", gen.Steps()))
		}
	}
}

func solve(solver *maze.Solver) (maze.Path, bool) {
	for !solver.IsDone() {
		for range stepsPerFrame {
			if solver.IsDone() {
				break
			}
			solver.Step()
		}
		if animate {
			frame(solver.Grid(), nil, fmt.Sprintf("solving: %d expanded", solver.Expanded()))
		}
	}
	return solver.Path()
}

func main() {
	flag.Parse()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		maze.Log.SetLevel(logrus.DebugLevel)
	}
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}

	p, err := params()
	if err != nil {
		log.Fatal(err)
	}
	if err := p.Validate(0, 0); err != nil {
		log.Fatal(err)
	}

	gen, err := p.NewGenerator()
	if err != nil {
		log.Fatal(err)
	}
	generate(gen)
	grid := gen.Grid()

	if skipSolve {
		fmt.Print(grid)
		fmt.Println("params:", p)
		return
	}

	path, found := solve(maze.NewSolver(grid))
	fmt.Print(grid.Render(path))
	fmt.Println("params:", p)
	if !found {
		fmt.Println("no path")
		os.Exit(1)
	}

	moves := len(path) - 1
	fmt.Printf("path: %d moves\n", moves)
	if want, ok := grid.ShortestPathLen(); !ok || want != moves {
		log.WithFields(logrus.Fields{
			"astar": moves,
			"bfs":   want,
		}).Error("solver disagrees with breadth-first search")
		os.Exit(1)
	}
	log.Debug("path length confirmed by breadth-first search")
}
