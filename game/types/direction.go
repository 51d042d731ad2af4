package types

import "fmt"

// Direction is one of the four cardinal moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions is the enumeration order used everywhere a choice between
// directions has to be broken by position. Do not reorder.
var Directions = [4]Direction{Up, Down, Left, Right}

// ToPoint returns the unit delta of the direction. Y grows downwards.
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	case Right:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the 180 degree reversal of d.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}
