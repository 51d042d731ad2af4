package manager

import (
	"snake-battle/config"
	"snake-battle/game/entity"
	"snake-battle/game/types"
)

const (
	PlayerName = "Player"
	FirstAI    = "Red Snake"
	SecondAI   = "Blue Snake"
)

// PopulationManager creates the two snakes of a match on opposite quarters
// of the grid.
type PopulationManager struct {
	grid types.Grid
	cfg  config.Config
}

func NewPopulationManager(cfg config.Config) *PopulationManager {
	return &PopulationManager{
		grid: types.Grid{Width: cfg.Width, Height: cfg.Height},
		cfg:  cfg,
	}
}

// StartPositions returns the spawn cells of the first and second snake.
func (pm *PopulationManager) StartPositions() (types.Point, types.Point) {
	w, h := pm.grid.Width, pm.grid.Height
	first := pm.grid.Clamp(types.Point{X: w / 4, Y: h / 4})
	second := pm.grid.Clamp(types.Point{X: w - w/4, Y: h - h/4})
	return first, second
}

// InitializePopulation builds the two snakes. The first snake is the human
// player unless the match is AI only.
func (pm *PopulationManager) InitializePopulation() (*entity.Snake, *entity.Snake) {
	p1, p2 := pm.StartPositions()

	name := PlayerName
	if pm.cfg.AIOnly {
		name = FirstAI
	}
	first := entity.NewSnake(p1, pm.cfg.AIOnly, name, entity.Red, pm.cfg.HistorySize)
	second := entity.NewSnake(p2, true, SecondAI, entity.Blue, pm.cfg.HistorySize)
	second.Face(types.Left)

	return first, second
}
