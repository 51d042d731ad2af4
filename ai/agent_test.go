package ai

import (
	"testing"

	"snake-battle/config"
	"snake-battle/game/entity"
	"snake-battle/game/manager"
	"snake-battle/game/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

var nowhere = types.Point{X: -1, Y: -1}

func newTestAgent(t *testing.T, w, h int, isAI bool, cfg config.Config, body ...types.Point) *Agent {
	t.Helper()
	require.NotEmpty(t, body)
	cm := manager.NewCollisionManager(types.Grid{Width: w, Height: h})
	a := NewAgentFor(body[0], isAI, "test", entity.Red, cm, cfg, rand.New(rand.NewSource(11)), nil)
	a.Snake.Body = append([]types.Point(nil), body...)
	return a
}

func p(x, y int) types.Point { return types.Point{X: x, Y: y} }

func TestMoveTowardsAdjacentFood(t *testing.T) {
	a := newTestAgent(t, 5, 5, true, config.Default(), p(2, 2))

	res := a.DecideAndMove(p(3, 2), nil, nil)
	assert.Equal(t, Heuristic, res.Kind)
	assert.Equal(t, types.Right, res.Direction)
	assert.True(t, res.AteFood)
	assert.Equal(t, []types.Point{p(3, 2), p(2, 2)}, a.Body())
	assert.Equal(t, 1, a.Score())
}

func TestCornerNeverLeavesGrid(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		cm := manager.NewCollisionManager(types.Grid{Width: 5, Height: 5})
		a := NewAgentFor(p(0, 0), true, "corner", entity.Red, cm, config.Default(), rand.New(rand.NewSource(seed)), nil)
		food := p(int(seed%5), 4)

		res := a.DecideAndMove(food, nil, nil)
		assert.NotEqual(t, types.Up, res.Direction)
		assert.NotEqual(t, types.Left, res.Direction)
		assert.True(t, a.Alive())
		assert.True(t, cm.Grid().Contains(a.Head()))
	}
}

func TestTieBreakFollowsDirectionOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Weights = config.Weights{}

	a := newTestAgent(t, 5, 5, true, cfg, p(2, 2))
	res := a.DecideAndMove(nowhere, nil, nil)
	assert.Equal(t, types.Up, res.Direction)

	b := newTestAgent(t, 5, 5, true, cfg, p(2, 2))
	opponent := entity.NewSnake(p(2, 1), true, "other", entity.Blue, 5)
	res = b.DecideAndMove(nowhere, opponent, nil)
	assert.Equal(t, types.Down, res.Direction)
}

func TestBestKeepsFirstMaximum(t *testing.T) {
	cands := []Candidate{
		{Direction: types.Up, Score: 1},
		{Direction: types.Down, Score: 3},
		{Direction: types.Left, Score: 3},
		{Direction: types.Right, Score: 2},
	}
	assert.Equal(t, types.Down, Best(cands).Direction)
}

func TestEmergencyMoveIntoOwnTail(t *testing.T) {
	// A 2x2 board filled by a loop: the only way out is the vacating tail.
	a := newTestAgent(t, 2, 2, true, config.Default(), p(1, 1), p(1, 0), p(0, 0), p(0, 1))

	res := a.DecideAndMove(nowhere, nil, nil)
	assert.Equal(t, Emergency, res.Kind)
	assert.Equal(t, types.Left, res.Direction)
	assert.True(t, a.Alive())
	assert.Equal(t, []types.Point{p(0, 1), p(1, 1), p(1, 0), p(0, 0)}, a.Body())
}

func TestDeathWhenNoMoveLeft(t *testing.T) {
	a := newTestAgent(t, 5, 5, true, config.Default(), p(0, 0), p(0, 1), p(0, 2))
	opponent := entity.NewSnake(p(1, 0), true, "other", entity.Blue, 5)
	before := a.Body()

	res := a.DecideAndMove(p(4, 4), opponent, nil)
	assert.Equal(t, Died, res.Kind)
	assert.False(t, a.Alive())
	assert.Equal(t, before, a.Body())

	res = a.DecideAndMove(p(4, 4), opponent, nil)
	assert.Equal(t, Idle, res.Kind)
	assert.Equal(t, before, a.Body())
	assert.Equal(t, 0, a.Score())
}

func TestDetectStuck(t *testing.T) {
	cfg := config.Default()
	cfg.HistorySize = 6
	cfg.Stuck = config.Stuck{MinDistinct: 5, Limit: 3}
	a := newTestAgent(t, 5, 5, true, cfg, p(2, 2))

	// six pushes fill the history, the next three raise the counter to the
	// limit and the one after that trips it
	for i := 1; i <= 8; i++ {
		assert.False(t, a.detectStuck(), "call %d", i)
	}
	assert.True(t, a.detectStuck())
	assert.Equal(t, 0, a.Snake.StuckCounter)
	assert.Equal(t, 0, a.Snake.History.Len())
	assert.False(t, a.detectStuck())
}

func TestDetectStuckResetsOnProgress(t *testing.T) {
	cfg := config.Default()
	cfg.HistorySize = 5
	cfg.Stuck = config.Stuck{MinDistinct: 5, Limit: 3}
	a := newTestAgent(t, 10, 10, true, cfg, p(0, 0))

	a.Snake.StuckCounter = 2
	for x := 0; x < 5; x++ {
		a.Snake.Body[0] = p(x, 0)
		assert.False(t, a.detectStuck())
	}
	assert.Equal(t, 0, a.Snake.StuckCounter)
}

func TestStuckEscapeMove(t *testing.T) {
	cfg := config.Default()
	cfg.HistorySize = 4
	a := newTestAgent(t, 5, 5, true, cfg, p(2, 2))
	for i := 0; i < 4; i++ {
		a.Snake.History.Push(p(2, 2))
	}
	a.Snake.StuckCounter = cfg.Stuck.Limit

	res := a.DecideAndMove(p(4, 4), nil, nil)
	assert.Equal(t, StuckEscape, res.Kind)
	assert.True(t, a.Alive())
	assert.Equal(t, 1, types.ManhattanDistance(a.Head(), p(2, 2)))
	assert.Equal(t, 0, a.Snake.StuckCounter)
	assert.Equal(t, 0, a.Snake.History.Len())
}

func TestPlayerKeepsDirection(t *testing.T) {
	a := newTestAgent(t, 5, 5, false, config.Default(), p(2, 2))
	require.True(t, a.SetDirection(types.Up))

	res := a.DecideAndMove(nowhere, nil, nil)
	assert.Equal(t, Player, res.Kind)
	assert.Equal(t, p(2, 1), a.Head())
}

func TestPlayerCannotReverseWithTwoQuickTurns(t *testing.T) {
	a := newTestAgent(t, 10, 10, false, config.Default(), p(5, 5), p(4, 5), p(3, 5))
	a.Snake.Face(types.Right)

	require.True(t, a.SetDirection(types.Up))
	// still heading right until the next move, so left is a reversal
	assert.False(t, a.SetDirection(types.Left))

	res := a.DecideAndMove(nowhere, nil, nil)
	assert.Equal(t, Player, res.Kind)
	assert.Equal(t, types.Up, res.Direction)
	assert.Equal(t, p(5, 4), a.Head())
	assert.True(t, a.Alive())
}

func TestPlayerBouncesOffWall(t *testing.T) {
	a := newTestAgent(t, 5, 5, false, config.Default(), p(4, 2), p(3, 2))
	a.Snake.Face(types.Right)

	res := a.DecideAndMove(nowhere, nil, nil)
	assert.Equal(t, Bounce, res.Kind)
	assert.Contains(t, []types.Direction{types.Up, types.Down}, res.Direction)
	assert.True(t, a.Alive())
	assert.Equal(t, 2, len(a.Body()))
}

func TestPlayerDiesWhenBoxedIn(t *testing.T) {
	a := newTestAgent(t, 5, 5, false, config.Default(), p(0, 0), p(0, 1), p(0, 2))
	a.Snake.Face(types.Up)
	opponent := entity.NewSnake(p(1, 0), true, "other", entity.Blue, 5)

	res := a.DecideAndMove(nowhere, opponent, nil)
	assert.Equal(t, Died, res.Kind)
	assert.False(t, a.Alive())
}

func TestMoveKindString(t *testing.T) {
	assert.Equal(t, "stuck_escape", StuckEscape.String())
	assert.Equal(t, "unknown", MoveKind(99).String())
}
