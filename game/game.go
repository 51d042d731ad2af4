package game

import (
	"fmt"
	"sync"
	"time"

	"snake-battle/ai"
	"snake-battle/config"
	"snake-battle/game/manager"
	"snake-battle/game/types"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

type Phase int

const (
	Start Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Start:
		return "start"
	case Playing:
		return "playing"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Reasons a match ends.
const (
	ReasonTime      = "time"
	ReasonBothDead  = "both_dead"
	ReasonBoardFull = "board_full"
)

// TickResult reports what happened during one Update.
type TickResult struct {
	Tick      int
	Moves     [2]ai.MoveResult
	FoodEaten bool
	Ended     bool
}

// Game is one match between two snakes. Agent 0 always moves before agent 1.
type Game struct {
	UUID      string
	Grid      types.Grid
	Agents    [2]*ai.Agent
	StartTime time.Time

	cfg          config.Config
	rng          *rand.Rand
	logger       log.Logger
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager
	powerUpMgr   *manager.PowerUpManager
	popMgr       *manager.PopulationManager
	stateMgr     *manager.StateManager

	phase     Phase
	tick      int
	remaining int
	reason    string
	mutex     sync.RWMutex
}

// NewGame validates cfg and sets up a match in the Start phase. stateMgr
// and logger may be nil.
func NewGame(cfg config.Config, stateMgr *manager.StateManager, logger log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}

	grid := types.Grid{Width: cfg.Width, Height: cfg.Height}
	rng := rand.New(rand.NewSource(uint64(cfg.Seed)))
	collisionMgr := manager.NewCollisionManager(grid)
	foodMgr := manager.NewFoodManager(grid, collisionMgr, rng)

	g := &Game{
		Grid:         grid,
		cfg:          cfg,
		rng:          rng,
		logger:       logger,
		collisionMgr: collisionMgr,
		foodMgr:      foodMgr,
		powerUpMgr:   manager.NewPowerUpManager(cfg.PowerUps, foodMgr, rng),
		popMgr:       manager.NewPopulationManager(cfg),
		stateMgr:     stateMgr,
	}
	g.reset()
	return g, nil
}

func (g *Game) Config() config.Config {
	return g.cfg
}

// Reset prepares a new match on the same configuration. The random stream
// continues, so a replay differs from the previous match.
func (g *Game) Reset() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	g.reset()
}

func (g *Game) reset() {
	g.UUID = uuid.New().String()
	g.phase = Start
	g.tick = 0
	g.remaining = g.cfg.MatchTicks()
	g.reason = ""

	first, second := g.popMgr.InitializePopulation()
	eval := ai.NewEvaluator(g.collisionMgr, g.cfg)
	matchLogger := log.With(g.logger, "match", g.UUID)
	g.Agents[0] = ai.NewAgent(first, eval, g.cfg, g.agentRand(), matchLogger)
	g.Agents[1] = ai.NewAgent(second, eval, g.cfg, g.agentRand(), matchLogger)

	g.powerUpMgr.Clear()
	g.foodMgr.Replace(first.Body, second.Body)
}

// agentRand derives an independent stream for an agent from the match RNG.
func (g *Game) agentRand() *rand.Rand {
	return rand.New(rand.NewSource(g.rng.Uint64()))
}

// Start moves the match from Start to Playing.
func (g *Game) Start() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if g.phase != Start {
		return
	}
	g.phase = Playing
	g.StartTime = time.Now()
	_ = level.Info(g.logger).Log("msg", "match started", "match", g.UUID,
		"grid", fmt.Sprintf("%dx%d", g.Grid.Width, g.Grid.Height),
		"first", g.Agents[0].Name(), "second", g.Agents[1].Name())
}

func (g *Game) Phase() Phase {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.phase
}

// SetPlayerDirection steers the first snake when a human drives it.
func (g *Game) SetPlayerDirection(dir types.Direction) bool {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	player := g.Agents[0]
	if player.IsAI() || !player.Alive() {
		return false
	}
	return player.SetDirection(dir)
}

// Update advances the match by one tick.
func (g *Game) Update() TickResult {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.phase != Playing {
		return TickResult{Tick: g.tick, Ended: g.phase == GameOver}
	}

	g.tick++
	res := TickResult{Tick: g.tick}
	food := g.currentFood()
	powerUps := g.powerUpMgr.Positions()
	boardFull := false

	for i, agent := range g.Agents {
		opponent := g.Agents[1-i].Snake
		move := agent.DecideAndMove(food, opponent, powerUps)
		res.Moves[i] = move

		if move.AteFood {
			res.FoodEaten = true
			if !g.foodMgr.Replace(g.bodies(powerUps)...) {
				boardFull = true
				_ = level.Warn(g.logger).Log("msg", "no free cell for food", "match", g.UUID, "tick", g.tick)
			}
			food = g.currentFood()
		}

		if move.Kind != ai.Idle && move.Kind != ai.Died {
			if pu, ok := g.powerUpMgr.Collect(agent.Head()); ok {
				agent.Snake.AddPoints(pu.Kind.Points())
				powerUps = g.powerUpMgr.Positions()
			}
		}
	}

	g.powerUpMgr.Update(g.tick, food, g.Agents[0].Snake.Body, g.Agents[1].Snake.Body)
	g.remaining--

	switch {
	case boardFull:
		g.finish(ReasonBoardFull)
	case !g.Agents[0].Alive() && !g.Agents[1].Alive():
		g.finish(ReasonBothDead)
	case g.remaining <= 0:
		g.finish(ReasonTime)
	}
	res.Ended = g.phase == GameOver
	return res
}

// noFood is off the grid, so no snake can reach it.
var noFood = types.Point{X: -1, Y: -1}

func (g *Game) currentFood() types.Point {
	if food, ok := g.foodMgr.Food(); ok {
		return food
	}
	return noFood
}

func (g *Game) bodies(extra []types.Point) [][]types.Point {
	return [][]types.Point{g.Agents[0].Snake.Body, g.Agents[1].Snake.Body, extra}
}

func (g *Game) finish(reason string) {
	g.phase = GameOver
	g.reason = reason
	winner := g.winner()

	_ = level.Info(g.logger).Log("msg", "match over", "match", g.UUID, "reason", reason,
		"ticks", g.tick, "winner", winner,
		"first_score", g.Agents[0].Score(), "second_score", g.Agents[1].Score())

	if g.stateMgr == nil {
		return
	}
	rec := manager.MatchRecord{
		ID:        g.UUID,
		StartTime: g.StartTime,
		EndTime:   time.Now(),
		Ticks:     g.tick,
		Names:     [2]string{g.Agents[0].Name(), g.Agents[1].Name()},
		Scores:    [2]int{g.Agents[0].Score(), g.Agents[1].Score()},
		Winner:    winner,
		Reason:    reason,
	}
	if err := g.stateMgr.Record(rec); err != nil {
		_ = level.Error(g.logger).Log("msg", "saving stats", "err", err)
	}
}

// Winner returns the name of the snake with the higher score, or
// manager.Tie. It is empty while the match is running.
func (g *Game) Winner() string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if g.phase != GameOver {
		return ""
	}
	return g.winner()
}

func (g *Game) winner() string {
	s0, s1 := g.Agents[0].Score(), g.Agents[1].Score()
	switch {
	case s0 > s1:
		return g.Agents[0].Name()
	case s1 > s0:
		return g.Agents[1].Name()
	default:
		return manager.Tie
	}
}

// Play runs a started match to its end without pacing and returns the
// number of ticks played.
func (g *Game) Play() int {
	g.Start()
	for !g.Update().Ended {
	}
	return g.Ticks()
}

func (g *Game) Ticks() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.tick
}
