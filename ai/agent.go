package ai

import (
	"snake-battle/config"
	"snake-battle/game/entity"
	"snake-battle/game/manager"
	"snake-battle/game/types"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/exp/rand"
)

// MoveKind records how a move was chosen.
type MoveKind int

const (
	Idle        MoveKind = iota // dead agent, nothing happened
	Heuristic                   // best scored safe candidate
	Emergency                   // random move into the own vacating tail
	StuckEscape                 // random safe move after repeated oscillation
	Player                      // requested player direction
	Bounce                      // random safe move replacing a blocked player direction
	Died                        // no move left, agent is now dead
)

func (k MoveKind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Heuristic:
		return "heuristic"
	case Emergency:
		return "emergency"
	case StuckEscape:
		return "stuck_escape"
	case Player:
		return "player"
	case Bounce:
		return "bounce"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

type MoveResult struct {
	Direction types.Direction
	AteFood   bool
	Kind      MoveKind
}

// Agent drives one snake, either from the heuristic (AI snakes) or from the
// direction last set by the player.
type Agent struct {
	Snake  *entity.Snake
	eval   *Evaluator
	stuck  config.Stuck
	rng    *rand.Rand
	logger log.Logger
}

func NewAgent(snake *entity.Snake, eval *Evaluator, cfg config.Config, rng *rand.Rand, logger log.Logger) *Agent {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Agent{
		Snake:  snake,
		eval:   eval,
		stuck:  cfg.Stuck,
		rng:    rng,
		logger: log.With(logger, "snake", snake.Name),
	}
}

// NewAgentFor builds a fresh snake at start and the agent driving it.
func NewAgentFor(start types.Point, isAI bool, name string, color entity.Color, collision *manager.CollisionManager, cfg config.Config, rng *rand.Rand, logger log.Logger) *Agent {
	snake := entity.NewSnake(start, isAI, name, color, cfg.HistorySize)
	return NewAgent(snake, NewEvaluator(collision, cfg), cfg, rng, logger)
}

func (a *Agent) Head() types.Point { return a.Snake.GetHead() }
func (a *Agent) Body() []types.Point { return a.Snake.BodyCopy() }
func (a *Agent) Alive() bool { return a.Snake.Alive }
func (a *Agent) Score() int { return a.Snake.Score }
func (a *Agent) IsAI() bool { return a.Snake.IsAI }
func (a *Agent) Name() string { return a.Snake.Name }

// SetDirection forwards player input to the snake.
func (a *Agent) SetDirection(dir types.Direction) bool {
	return a.Snake.SetDirection(dir)
}

// DecideAndMove advances the snake by exactly one cell, or kills it when no
// move is possible. opponent may be nil.
func (a *Agent) DecideAndMove(food types.Point, opponent *entity.Snake, powerUps []types.Point) MoveResult {
	if !a.Snake.Alive {
		return MoveResult{Direction: a.Snake.Direction, Kind: Idle}
	}

	var other []types.Point
	if opponent != nil {
		other = opponent.Body
	}

	if a.Snake.IsAI {
		return a.aiMove(food, other, powerUps)
	}
	return a.playerMove(food, other)
}

func (a *Agent) aiMove(food types.Point, other []types.Point, powerUps []types.Point) MoveResult {
	cands := a.eval.Evaluate(a.Snake, food, other, powerUps)
	if len(cands) == 0 {
		return a.emergencyMove(food, other)
	}

	chosen := Best(cands)
	kind := Heuristic
	if a.detectStuck() {
		chosen = cands[a.rng.Intn(len(cands))]
		kind = StuckEscape
		_ = level.Debug(a.logger).Log("msg", "stuck escape", "head", a.Snake.GetHead(), "dir", chosen.Direction)
	}

	ate := a.Snake.Advance(chosen.Direction, food)
	return MoveResult{Direction: chosen.Direction, AteFood: ate, Kind: kind}
}

// detectStuck records the pre-move head and reports whether the agent has
// oscillated for more than the configured number of ticks. A positive answer
// resets the counter and the history.
func (a *Agent) detectStuck() bool {
	h := a.Snake.History
	h.Push(a.Snake.GetHead())
	if !h.Full() {
		return false
	}
	if h.Distinct() >= a.stuck.MinDistinct {
		a.Snake.StuckCounter = 0
		return false
	}

	a.Snake.StuckCounter++
	if a.Snake.StuckCounter <= a.stuck.Limit {
		return false
	}
	a.Snake.StuckCounter = 0
	h.Clear()
	return true
}

func (a *Agent) playerMove(food types.Point, other []types.Point) MoveResult {
	dir := a.Snake.Requested
	next := a.Snake.GetHead().Add(dir.ToPoint())
	if a.eval.collision.IsSafe(next, a.Snake.Body, other, a.eval.allowTail) {
		ate := a.Snake.Advance(dir, food)
		return MoveResult{Direction: dir, AteFood: ate, Kind: Player}
	}

	cands := a.eval.Candidates(a.Snake, other, a.eval.allowTail)
	if len(cands) == 0 {
		return a.emergencyMove(food, other)
	}
	chosen := cands[a.rng.Intn(len(cands))]
	ate := a.Snake.Advance(chosen.Direction, food)
	return MoveResult{Direction: chosen.Direction, AteFood: ate, Kind: Bounce}
}

// emergencyMove allows the own tail cell, which vacates as the head moves.
// Walls and the whole opponent body still block.
func (a *Agent) emergencyMove(food types.Point, other []types.Point) MoveResult {
	cands := a.eval.Candidates(a.Snake, other, true)
	if len(cands) == 0 {
		a.Snake.Kill()
		_ = level.Info(a.logger).Log("msg", "no legal move", "head", a.Snake.GetHead(), "score", a.Snake.Score)
		return MoveResult{Direction: a.Snake.Direction, Kind: Died}
	}

	if a.Snake.IsAI {
		a.Snake.History.Push(a.Snake.GetHead())
	}
	chosen := cands[a.rng.Intn(len(cands))]
	_ = level.Debug(a.logger).Log("msg", "emergency escape", "head", a.Snake.GetHead(), "dir", chosen.Direction)
	ate := a.Snake.Advance(chosen.Direction, food)
	return MoveResult{Direction: chosen.Direction, AteFood: ate, Kind: Emergency}
}
