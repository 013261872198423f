package manager

import (
	"grid-snake/game/entity"
	"grid-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision classifies what the head would hit at pos. The whole current
// body counts, tail included, because the check runs before the tail moves.
func (cm *CollisionManager) CheckCollision(pos types.Cell, snake *entity.Snake) types.CollisionType {
	if cm.isWallCollision(pos) {
		return types.WallCollision
	}
	if snake.Occupies(pos) {
		return types.SelfCollision
	}
	return types.NoCollision
}

func (cm *CollisionManager) isWallCollision(pos types.Cell) bool {
	return !cm.grid.Contains(pos)
}

// ValidateSpawnPosition checks that every segment of a spawned body is on the board
// and that no two segments overlap
func (cm *CollisionManager) ValidateSpawnPosition(snake *entity.Snake) bool {
	seen := make(map[types.Cell]struct{}, snake.Len())
	for _, part := range snake.Body {
		if cm.isWallCollision(part) {
			return false
		}
		if _, dup := seen[part]; dup {
			return false
		}
		seen[part] = struct{}{}
	}
	return true
}
