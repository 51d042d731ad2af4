package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirectionsOrder(t *testing.T) {
	assert.Equal(t, [4]Direction{Up, Down, Left, Right}, Directions)
}

func TestDirectionDeltas(t *testing.T) {
	assert.Equal(t, Point{X: 0, Y: -1}, Up.ToPoint())
	assert.Equal(t, Point{X: 0, Y: 1}, Down.ToPoint())
	assert.Equal(t, Point{X: -1, Y: 0}, Left.ToPoint())
	assert.Equal(t, Point{X: 1, Y: 0}, Right.ToPoint())
}

func TestDirectionTurns(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite(), d.String())
		assert.NotEqual(t, d, d.Opposite(), d.String())
		assert.Equal(t, Point{}, d.ToPoint().Add(d.Opposite().ToPoint()), d.String())
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "Direction(7)", Direction(7).String())
}
