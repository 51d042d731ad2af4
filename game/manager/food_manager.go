package manager

import (
	"snake-battle/game/types"

	"golang.org/x/exp/rand"
)

// rejectionFactor bounds random sampling to W*H*rejectionFactor attempts
// before falling back to a scan of the free cells.
const rejectionFactor = 4

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
	food         types.Point
	hasFood      bool
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, rng *rand.Rand) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rng,
		collisionMgr: collisionMgr,
	}
}

// PlaceFood picks a cell uniformly at random among the cells not covered by
// occupied. It reports false only when every cell is covered.
func (fm *FoodManager) PlaceFood(occupied ...[]types.Point) (types.Point, bool) {
	attempts := fm.grid.Cells() * rejectionFactor
	for i := 0; i < attempts; i++ {
		food := types.Point{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, occupied...) {
			return food, true
		}
	}

	free := fm.FreeCells(occupied...)
	if len(free) == 0 {
		return types.Point{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}

// FreeCells lists the cells not covered by occupied in row-major order.
func (fm *FoodManager) FreeCells(occupied ...[]types.Point) []types.Point {
	taken := make(map[types.Point]bool)
	for _, body := range occupied {
		for _, p := range body {
			taken[p] = true
		}
	}
	free := make([]types.Point, 0, fm.grid.Cells())
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if !taken[p] {
				free = append(free, p)
			}
		}
	}
	return free
}

// Replace places a new food item and makes it current. When the board is
// full the manager is left without food and Replace returns false.
func (fm *FoodManager) Replace(occupied ...[]types.Point) bool {
	fm.food, fm.hasFood = fm.PlaceFood(occupied...)
	return fm.hasFood
}

func (fm *FoodManager) Food() (types.Point, bool) {
	return fm.food, fm.hasFood
}
