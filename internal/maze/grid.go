package maze

import (
	"fmt"
	"strings"
)

// Walls is the set of closed sides of a cell.
type Walls uint8

const AllWalls Walls = 1<<North | 1<<East | 1<<South | 1<<West

func (w Walls) Has(d Direction) bool {
	return w&(1<<d) != 0
}

func (w Walls) without(d Direction) Walls {
	return w &^ (1 << d)
}

// Closed lists the closed sides in [Directions] order.
func (w Walls) Closed() []Direction {
	closed := make([]Direction, 0, 4)
	for _, d := range Directions {
		if w.Has(d) {
			closed = append(closed, d)
		}
	}
	return closed
}

type Cell struct {
	Position Point
	Walls    Walls
}

// Grid is a width x height rectangle of cells. Cells are stored row by row,
// the cell at (x, y) lives at index y*width+x.
type Grid struct {
	width, height int
	cells         []Cell
	start, end    Point
}

func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	cells := make([]Cell, width*height)
	for y := range height {
		for x := range width {
			cells[y*width+x] = Cell{Position: Point{x, y}, Walls: AllWalls}
		}
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
		start:  Point{0, 0},
		end:    Point{width - 1, height - 1},
	}, nil
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) Start() Point { return g.start }
func (g *Grid) End() Point { return g.end }

func (g *Grid) InBounds(p Point) bool {
	return 0 <= p.X && p.X < g.width && 0 <= p.Y && p.Y < g.height
}

// at returns the cell at p without a bounds check.
func (g *Grid) at(p Point) *Cell {
	return &g.cells[p.Y*g.width+p.X]
}

func (g *Grid) Cell(p Point) (Cell, error) {
	if !g.InBounds(p) {
		return Cell{}, fmt.Errorf("%w: %s", ErrOutOfBounds, p)
	}
	return *g.at(p), nil
}

// Cells returns a copy of every cell, row by row.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}

func (g *Grid) SetStart(p Point) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: start %s", ErrOutOfBounds, p)
	}
	g.start = p
	return nil
}

func (g *Grid) SetEnd(p Point) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: end %s", ErrOutOfBounds, p)
	}
	g.end = p
	return nil
}

// Neighbors returns the in-bounds points adjacent to p, in [Directions] order.
func (g *Grid) Neighbors(p Point) []Point {
	neighbors := make([]Point, 0, 4)
	for _, d := range Directions {
		if n := p.Step(d); g.InBounds(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// RelativeDirection returns the side of from that faces the adjacent point to.
func (g *Grid) RelativeDirection(from, to Point) (Direction, error) {
	if from == to {
		return 0, ErrSameCell
	}
	for _, d := range Directions {
		if from.Step(d) == to {
			return d, nil
		}
	}
	return 0, ErrNotAdjacent
}

// IsOpen reports whether a and b are adjacent and the wall between them has
// been removed on both sides.
func (g *Grid) IsOpen(a, b Point) bool {
	if !g.InBounds(a) || !g.InBounds(b) {
		return false
	}
	d, err := g.RelativeDirection(a, b)
	if err != nil {
		return false
	}
	return !g.at(a).Walls.Has(d) && !g.at(b).Walls.Has(d.Opposite())
}

// RemoveWall opens the wall shared by a and b on both cells.
func (g *Grid) RemoveWall(a, b Point) error {
	if !g.InBounds(a) || !g.InBounds(b) {
		return fmt.Errorf("%w: %s-%s", ErrOutOfBounds, a, b)
	}
	d, err := g.RelativeDirection(a, b)
	if err != nil {
		return err
	}
	g.at(a).Walls = g.at(a).Walls.without(d)
	g.at(b).Walls = g.at(b).Walls.without(d.Opposite())
	return nil
}

func (g *Grid) Clone() *Grid {
	clone := *g
	clone.cells = g.Cells()
	return &clone
}

// Grid implements [fmt.Stringer]
func (g *Grid) String() string {
	return g.Render(nil)
}

// Render draws the grid as ASCII art. Start and end are marked S and E, cells
// on path with a dot.
func (g *Grid) Render(path Path) string {
	onPath := make(map[Point]bool, len(path))
	for _, p := range path {
		onPath[p] = true
	}

	var b strings.Builder
	b.WriteString("+")
	for x := range g.width {
		if g.at(Point{x, 0}).Walls.Has(North) {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")

	for y := range g.height {
		if g.at(Point{0, y}).Walls.Has(West) {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for x := range g.width {
			p := Point{x, y}
			switch {
			case p == g.start:
				b.WriteString(" S ")
			case p == g.end:
				b.WriteString(" E ")
			case onPath[p]:
				b.WriteString(" . ")
			default:
				b.WriteString("   ")
			}
			if g.at(p).Walls.Has(East) {
				b.WriteString("|")
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n+")
		for x := range g.width {
			if g.at(Point{x, y}).Walls.Has(South) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
