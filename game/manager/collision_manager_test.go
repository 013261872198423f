package manager

import (
	"testing"

	"grid-snake/game/entity"
	"grid-snake/game/types"
)

func TestCheckCollision(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Rows: 5, Columns: 5})
	snake := entity.NewSnake(types.Cell{Row: 2, Col: 2}, types.Right)

	tests := []struct {
		pos  types.Cell
		want types.CollisionType
	}{
		{types.Cell{Row: -1, Col: 2}, types.WallCollision},
		{types.Cell{Row: 5, Col: 2}, types.WallCollision},
		{types.Cell{Row: 2, Col: -1}, types.WallCollision},
		{types.Cell{Row: 2, Col: 5}, types.WallCollision},
		{types.Cell{Row: 2, Col: 1}, types.SelfCollision},
		{types.Cell{Row: 2, Col: 0}, types.SelfCollision},
		{types.Cell{Row: 2, Col: 3}, types.NoCollision},
		{types.Cell{Row: 4, Col: 4}, types.NoCollision},
	}
	for _, tt := range tests {
		if got := cm.CheckCollision(tt.pos, snake); got != tt.want {
			t.Errorf("%v: expected %v, got %v", tt.pos, tt.want, got)
		}
	}
}

func TestValidateSpawnPosition(t *testing.T) {
	cm := NewCollisionManager(types.Grid{Rows: 5, Columns: 5})

	if !cm.ValidateSpawnPosition(entity.NewSnake(types.Cell{Row: 2, Col: 2}, types.Up)) {
		t.Fatal("expected interior spawn to be valid")
	}
	if cm.ValidateSpawnPosition(entity.NewSnake(types.Cell{Row: 1, Col: 1}, types.Down)) {
		t.Fatal("expected spawn trailing off the board to be invalid")
	}
	overlap := &entity.Snake{Body: []types.Cell{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 1}}}
	if cm.ValidateSpawnPosition(overlap) {
		t.Fatal("expected overlapping body to be invalid")
	}
}
