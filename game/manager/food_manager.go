package manager

import (
	"grid-snake/game/entity"
	"grid-snake/game/types"
)

type FoodManager struct {
	grid types.Grid
	rng  types.Random
}

func NewFoodManager(grid types.Grid, rng types.Random) *FoodManager {
	return &FoodManager{
		grid: grid,
		rng:  rng,
	}
}

// Place picks a cell uniformly among the cells the snake does not cover.
// It returns false when the snake fills the whole board.
func (fm *FoodManager) Place(snake *entity.Snake) (types.Cell, bool) {
	free := fm.FreeCells(snake)
	if len(free) == 0 {
		return types.Cell{}, false
	}
	return free[fm.rng.Intn(len(free))], true
}

// FreeCells lists every unoccupied cell in row-major order
func (fm *FoodManager) FreeCells(snake *entity.Snake) []types.Cell {
	occupied := make(map[types.Cell]struct{}, snake.Len())
	for _, part := range snake.Body {
		occupied[part] = struct{}{}
	}

	free := make([]types.Cell, 0, fm.grid.Size()-len(occupied))
	for row := 0; row < fm.grid.Rows; row++ {
		for col := 0; col < fm.grid.Columns; col++ {
			c := types.Cell{Row: row, Col: col}
			if _, taken := occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}
	return free
}
