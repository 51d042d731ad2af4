package ai

import (
	"testing"

	"snake-battle/config"
	"snake-battle/game/entity"
	"snake-battle/game/manager"
	"snake-battle/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(t *testing.T, cands []Candidate, dir types.Direction) Candidate {
	t.Helper()
	for _, c := range cands {
		if c.Direction == dir {
			return c
		}
	}
	require.Failf(t, "missing candidate", "direction %s", dir)
	return Candidate{}
}

func TestEvaluateTerms(t *testing.T) {
	cfg := config.Default()
	cm := manager.NewCollisionManager(types.Grid{Width: 7, Height: 7})
	eval := NewEvaluator(cm, cfg)

	self := entity.NewSnake(p(3, 3), true, "self", entity.Red, 10)
	self.History.Push(p(3, 2))
	opponent := []types.Point{p(6, 3)}
	powerUps := []types.Point{p(2, 3)}

	cands := eval.Evaluate(self, p(3, 0), opponent, powerUps)
	require.Len(t, cands, 4)
	assert.Equal(t, []types.Direction{types.Up, types.Down, types.Left, types.Right},
		[]types.Direction{cands[0].Direction, cands[1].Direction, cands[2].Direction, cands[3].Direction})

	up := candidate(t, cands, types.Up)
	assert.Equal(t, 2, up.FoodDistance)
	assert.True(t, up.Visited)
	assert.Equal(t, 20, up.Space)

	right := candidate(t, cands, types.Right)
	assert.Equal(t, 2, right.OpponentDistance)

	left := candidate(t, cands, types.Left)
	assert.Equal(t, cfg.Weights.OpponentRadius, left.OpponentDistance)
	assert.True(t, left.OnPowerUp)

	w := cfg.Weights
	want := -w.Food*float64(up.FoodDistance) + w.Opponent*float64(up.OpponentDistance) + w.Space*float64(up.Space) - w.Memory
	assert.Equal(t, want, up.Score)
	want = -w.Food*float64(left.FoodDistance) + w.Opponent*float64(left.OpponentDistance) + w.Space*float64(left.Space) + w.PowerUp
	assert.Equal(t, want, left.Score)
}

func TestGreedyWeightsChaseFood(t *testing.T) {
	cfg := config.Default()
	cfg.Weights = config.GreedyWeights()
	cm := manager.NewCollisionManager(types.Grid{Width: 5, Height: 5})
	eval := NewEvaluator(cm, cfg)

	self := entity.NewSnake(p(2, 2), true, "self", entity.Red, 10)
	assert.Equal(t, types.Left, Best(eval.Evaluate(self, p(0, 2), nil, nil)).Direction)
	assert.Equal(t, types.Down, Best(eval.Evaluate(self, p(2, 4), nil, nil)).Direction)
}

func TestSpaceAvoidsPocket(t *testing.T) {
	cfg := config.Default()
	cfg.Weights = config.Weights{Space: 1}
	cm := manager.NewCollisionManager(types.Grid{Width: 5, Height: 5})
	eval := NewEvaluator(cm, cfg)

	// Up leads into a one-cell pocket at (1,0) closed by the opponent.
	self := entity.NewSnake(p(1, 1), true, "self", entity.Red, 10)
	opponent := []types.Point{p(0, 0), p(2, 0), p(0, 1), p(2, 1)}

	cands := eval.Evaluate(self, nowhere, opponent, nil)
	assert.Equal(t, 0, candidate(t, cands, types.Up).Space)
	assert.Equal(t, types.Down, Best(cands).Direction)
}

func TestCandidatesTailPolicy(t *testing.T) {
	cm := manager.NewCollisionManager(types.Grid{Width: 5, Height: 5})
	eval := NewEvaluator(cm, config.Default())

	self := entity.NewSnake(p(1, 1), true, "self", entity.Red, 10)
	self.Body = []types.Point{p(1, 1), p(2, 1), p(2, 2), p(1, 2)}

	strict := eval.Candidates(self, nil, false)
	relaxed := eval.Candidates(self, nil, true)
	assert.Len(t, strict, 2)
	assert.Len(t, relaxed, 3)
	assert.Equal(t, types.Down, relaxed[1].Direction)
}
