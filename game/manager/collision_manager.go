package manager

import (
	"snake-battle/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

func (cm *CollisionManager) Grid() types.Grid {
	return cm.grid
}

// IsSafe is the single safety oracle for every move decision. pos is unsafe
// when it is off the grid, on self, or on any segment of other. With
// allowTail the last segment of self does not block, since it vacates on a
// move that does not eat.
func (cm *CollisionManager) IsSafe(pos types.Point, self, other []types.Point, allowTail bool) bool {
	if cm.IsWallCollision(pos) {
		return false
	}
	if cm.isSelfCollision(pos, self, allowTail) {
		return false
	}
	return !types.Contains(other, pos)
}

// IsWallCollision checks if a position collides with walls
func (cm *CollisionManager) IsWallCollision(pos types.Point) bool {
	return !cm.grid.Contains(pos)
}

func (cm *CollisionManager) isSelfCollision(pos types.Point, self []types.Point, allowTail bool) bool {
	n := len(self)
	if allowTail && n > 0 {
		n--
	}
	return types.Contains(self[:n], pos)
}

// OpenSpace counts the cells reachable from start through safe cells,
// breadth first, not counting start itself. The walk stops once limit cells
// have been reached, which keeps the cost per candidate constant.
func (cm *CollisionManager) OpenSpace(start types.Point, self, other []types.Point, allowTail bool, limit int) int {
	if limit <= 0 {
		return 0
	}

	visited := map[types.Point]bool{start: true}
	queue := []types.Point{start}
	count := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, dir := range types.Directions {
			next := current.Add(dir.ToPoint())
			if visited[next] || !cm.IsSafe(next, self, other, allowTail) {
				continue
			}
			visited[next] = true
			count++
			if count >= limit {
				return count
			}
			queue = append(queue, next)
		}
	}

	return count
}

// ValidateSpawnPosition checks that pos is on the grid and free of every
// body in bodies.
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Point, bodies ...[]types.Point) bool {
	if cm.IsWallCollision(pos) {
		return false
	}
	for _, body := range bodies {
		if types.Contains(body, pos) {
			return false
		}
	}
	return true
}
