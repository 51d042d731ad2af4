package types

import "fmt"

// Point is a cell on the grid, 0-indexed from the top-left corner.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Contains reports whether p lies inside [0,Width)x[0,Height).
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Clamp moves p onto the nearest cell inside the grid.
func (g Grid) Clamp(p Point) Point {
	if p.X < 0 {
		p.X = 0
	} else if p.X >= g.Width {
		p.X = g.Width - 1
	}
	if p.Y < 0 {
		p.Y = 0
	} else if p.Y >= g.Height {
		p.Y = g.Height - 1
	}
	return p
}

// ManhattanDistance returns |dx|+|dy| between two cells. The grid does not wrap.
func ManhattanDistance(p1, p2 Point) int {
	return abs(p2.X-p1.X) + abs(p2.Y-p1.Y)
}

// NearestDistance returns the Manhattan distance from p to the closest cell of
// body and false when body is empty.
func NearestDistance(p Point, body []Point) (int, bool) {
	if len(body) == 0 {
		return 0, false
	}
	best := ManhattanDistance(p, body[0])
	for _, b := range body[1:] {
		if d := ManhattanDistance(p, b); d < best {
			best = d
		}
	}
	return best, true
}

// Contains reports whether p is one of the cells in body.
func Contains(body []Point, p Point) bool {
	for _, b := range body {
		if b == p {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
