package ai

import (
	"snake-battle/config"
	"snake-battle/game/entity"
	"snake-battle/game/manager"
	"snake-battle/game/types"
)

// Candidate is one of the four possible next head cells together with the
// terms that went into its score.
type Candidate struct {
	Direction        types.Direction
	Pos              types.Point
	Score            float64
	FoodDistance     int
	OpponentDistance int
	Space            int
	Visited          bool
	OnPowerUp        bool
}

// Evaluator scores candidate moves. It is stateless apart from its
// configuration and can be shared by both agents.
type Evaluator struct {
	collision  *manager.CollisionManager
	weights    config.Weights
	floodLimit int
	allowTail  bool
}

func NewEvaluator(collision *manager.CollisionManager, cfg config.Config) *Evaluator {
	return &Evaluator{
		collision:  collision,
		weights:    cfg.Weights,
		floodLimit: cfg.FloodFillLimit,
		allowTail:  cfg.AllowTailOverlap,
	}
}

// Candidates returns, in Directions order, the moves of self whose target
// cell passes the safety check. allowTail relaxes the check for the own tail.
func (e *Evaluator) Candidates(self *entity.Snake, opponent []types.Point, allowTail bool) []Candidate {
	head := self.GetHead()
	out := make([]Candidate, 0, len(types.Directions))
	for _, dir := range types.Directions {
		pos := head.Add(dir.ToPoint())
		if e.collision.IsSafe(pos, self.Body, opponent, allowTail) {
			out = append(out, Candidate{Direction: dir, Pos: pos})
		}
	}
	return out
}

// Evaluate returns the safe candidates of self under the normal safety
// policy, each scored against food, the opponent body and powerUps.
func (e *Evaluator) Evaluate(self *entity.Snake, food types.Point, opponent []types.Point, powerUps []types.Point) []Candidate {
	cands := e.Candidates(self, opponent, e.allowTail)
	for i := range cands {
		e.score(&cands[i], self, food, opponent, powerUps)
	}
	return cands
}

func (e *Evaluator) score(c *Candidate, self *entity.Snake, food types.Point, opponent []types.Point, powerUps []types.Point) {
	w := e.weights

	c.FoodDistance = types.ManhattanDistance(c.Pos, food)
	if d, ok := types.NearestDistance(c.Pos, opponent); ok {
		if w.OpponentRadius > 0 && d > w.OpponentRadius {
			d = w.OpponentRadius
		}
		c.OpponentDistance = d
	}
	c.Space = e.collision.OpenSpace(c.Pos, self.Body, opponent, e.allowTail, e.floodLimit)
	c.Visited = self.History.Contains(c.Pos)
	c.OnPowerUp = types.Contains(powerUps, c.Pos)

	c.Score = -w.Food*float64(c.FoodDistance) +
		w.Opponent*float64(c.OpponentDistance) +
		w.Space*float64(c.Space)
	if c.Visited {
		c.Score -= w.Memory
	}
	if c.OnPowerUp {
		c.Score += w.PowerUp
	}
}

// Best returns the highest scoring candidate. Ties keep the earlier
// candidate, so the Directions order decides. cands must not be empty.
func Best(cands []Candidate) Candidate {
	best := cands[0]
	for _, c := range cands[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best
}
