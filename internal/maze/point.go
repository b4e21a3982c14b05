package maze

import "fmt"

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the point one cell away in direction d. The result may be out
// of bounds.
func (p Point) Step(d Direction) Point {
	switch d {
	case North:
		return Point{p.X, p.Y - 1}
	case East:
		return Point{p.X + 1, p.Y}
	case South:
		return Point{p.X, p.Y + 1}
	case West:
		return Point{p.X - 1, p.Y}
	}
	return p
}

func (p Point) Distance(other Point) int {
	return absDiff(p.X, other.X) + absDiff(p.Y, other.Y)
}

// Direction names one side of a cell. y grows southward.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in neighbour iteration order.
var Directions = [4]Direction{North, East, South, West}

func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
