package game

import (
	"snake-battle/game/entity"
	"snake-battle/game/manager"
	"snake-battle/game/types"
)

// SnakeView is a read-only copy of one snake.
type SnakeView struct {
	ID        string
	Name      string
	Color     entity.Color
	IsAI      bool
	Alive     bool
	Score     int
	Direction types.Direction
	Body      []types.Point
}

func (v SnakeView) Head() types.Point {
	return v.Body[0]
}

// Snapshot is everything a renderer or a spectator needs to draw one frame.
// It shares no memory with the running game.
type Snapshot struct {
	MatchID   string
	Phase     Phase
	Tick      int
	Remaining int
	Grid      types.Grid
	Food      types.Point
	HasFood   bool
	PowerUps  []manager.PowerUp
	Snakes    [2]SnakeView
	Winner    string
	Reason    string
}

// RemainingSeconds converts the remaining ticks to seconds of game clock.
func (s Snapshot) RemainingSeconds(tickMS int) int {
	return s.Remaining * tickMS / 1000
}

func (g *Game) Snapshot() Snapshot {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	food, hasFood := g.foodMgr.Food()
	snap := Snapshot{
		MatchID:   g.UUID,
		Phase:     g.phase,
		Tick:      g.tick,
		Remaining: g.remaining,
		Grid:      g.Grid,
		Food:      food,
		HasFood:   hasFood,
		PowerUps:  g.powerUpMgr.Active(),
		Reason:    g.reason,
	}
	if g.phase == GameOver {
		snap.Winner = g.winner()
	}
	for i, agent := range g.Agents {
		s := agent.Snake
		snap.Snakes[i] = SnakeView{
			ID:        s.ID,
			Name:      s.Name,
			Color:     s.Color,
			IsAI:      s.IsAI,
			Alive:     s.Alive,
			Score:     s.Score,
			Direction: s.Direction,
			Body:      s.BodyCopy(),
		}
	}
	return snap
}
