package game

import (
	"testing"

	"snake-battle/game/manager"

	"github.com/stretchr/testify/assert"
)

func TestBatch(t *testing.T) {
	var b Batch
	assert.Zero(t, b.AverageScore())

	b.Add(Snapshot{Winner: manager.Tie, Snakes: [2]SnakeView{{Score: 2}, {Score: 2}}})
	b.Add(Snapshot{Winner: "Red Snake", Snakes: [2]SnakeView{{Score: 6}, {Score: 0}}})
	assert.Equal(t, 2, b.Matches)
	assert.Equal(t, 1, b.Ties)
	assert.Equal(t, 6, b.BestScore)
	assert.InDelta(t, 2.5, b.AverageScore(), 1e-9)
}
