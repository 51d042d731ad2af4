package manager

import (
	"snake-battle/config"
	"snake-battle/game/types"

	"golang.org/x/exp/rand"
)

type PowerUpKind int

const (
	Speed PowerUpKind = iota
	Shield
	DoubleScore
)

var powerUpKinds = []PowerUpKind{Speed, Shield, DoubleScore}

func (k PowerUpKind) String() string {
	switch k {
	case Speed:
		return "speed"
	case Shield:
		return "shield"
	case DoubleScore:
		return "double_score"
	default:
		return "unknown"
	}
}

// Points is the score bonus for collecting a power-up of this kind. Power-ups
// have no effect beyond the score.
func (k PowerUpKind) Points() int {
	if k == DoubleScore {
		return 2
	}
	return 1
}

type PowerUp struct {
	Pos       types.Point
	Kind      PowerUpKind
	ExpiresAt int // tick after which the power-up disappears
}

type PowerUpManager struct {
	cfg        config.PowerUps
	rng        *rand.Rand
	placer     *FoodManager
	active     []PowerUp
	spawnTimer int
}

func NewPowerUpManager(cfg config.PowerUps, placer *FoodManager, rng *rand.Rand) *PowerUpManager {
	return &PowerUpManager{
		cfg:    cfg,
		rng:    rng,
		placer: placer,
		active: make([]PowerUp, 0, cfg.MaxActive),
	}
}

// Update drops expired power-ups and, every SpawnInterval ticks, spawns a new
// one on a cell free of bodies, food and other power-ups.
func (pm *PowerUpManager) Update(tick int, food types.Point, bodies ...[]types.Point) {
	if !pm.cfg.Enabled {
		return
	}

	kept := pm.active[:0]
	for _, p := range pm.active {
		if tick <= p.ExpiresAt {
			kept = append(kept, p)
		}
	}
	pm.active = kept

	pm.spawnTimer++
	if pm.spawnTimer < pm.cfg.SpawnInterval || len(pm.active) >= pm.cfg.MaxActive {
		return
	}
	pm.spawnTimer = 0

	occupied := make([][]types.Point, 0, len(bodies)+2)
	occupied = append(occupied, bodies...)
	occupied = append(occupied, []types.Point{food}, pm.Positions())
	pos, ok := pm.placer.PlaceFood(occupied...)
	if !ok {
		return
	}
	pm.active = append(pm.active, PowerUp{
		Pos:       pos,
		Kind:      powerUpKinds[pm.rng.Intn(len(powerUpKinds))],
		ExpiresAt: tick + pm.cfg.Lifetime,
	})
}

// Collect removes and returns the power-up at pos, if any.
func (pm *PowerUpManager) Collect(pos types.Point) (PowerUp, bool) {
	for i, p := range pm.active {
		if p.Pos == pos {
			pm.active = append(pm.active[:i], pm.active[i+1:]...)
			return p, true
		}
	}
	return PowerUp{}, false
}

func (pm *PowerUpManager) Positions() []types.Point {
	out := make([]types.Point, len(pm.active))
	for i, p := range pm.active {
		out[i] = p.Pos
	}
	return out
}

func (pm *PowerUpManager) Active() []PowerUp {
	out := make([]PowerUp, len(pm.active))
	copy(out, pm.active)
	return out
}

func (pm *PowerUpManager) Clear() {
	pm.active = pm.active[:0]
	pm.spawnTimer = 0
}
