// Package game implements the single-player snake simulation: a snake on a
// fixed board that moves one cell per tick, grows on food and stops on
// collision or when it fills the board.
//
// The Engine is not safe for concurrent use. Callers that receive input on
// other goroutines must serialise ChangeDirection and Step themselves.
package game

import (
	"fmt"

	"grid-snake/game/entity"
	"grid-snake/game/manager"
	"grid-snake/game/types"
)

// DirectionResult tells why a direction request was or was not applied
type DirectionResult int

const (
	DirectionApplied DirectionResult = iota
	DirectionInvalid
	DirectionReversal
)

func (r DirectionResult) String() string {
	switch r {
	case DirectionApplied:
		return "applied"
	case DirectionInvalid:
		return "invalid"
	case DirectionReversal:
		return "reversal"
	default:
		return "unknown"
	}
}

// StepResult reports what happened during one tick
type StepResult struct {
	AteFood bool
}

type Engine struct {
	grid         types.Grid
	rng          types.Random
	collisionMgr *manager.CollisionManager
	foodMgr      *manager.FoodManager

	snake         *entity.Snake
	direction     types.Direction
	lastDirection types.Direction
	food          types.Cell
	hasFood       bool
	score         int
}

// NewEngine binds an engine to a board and a random source. The board must be
// at least 5x5. GenerateStart has to run before any other operation.
func NewEngine(grid types.Grid, rng types.Random) *Engine {
	return &Engine{
		grid:         grid,
		rng:          rng,
		collisionMgr: manager.NewCollisionManager(grid),
		foodMgr:      manager.NewFoodManager(grid, rng),
	}
}

// GenerateStart replaces the whole state with a freshly spawned snake.
// The head lands in the interior [2, rows-2) x [2, cols-2) so the two
// trailing segments always fit on the board. It panics if the board is
// smaller than 5x5 or the random source returns values outside [0, n).
func (e *Engine) GenerateStart() {
	e.direction = types.Directions[e.rng.Intn(len(types.Directions))]
	e.lastDirection = e.direction

	head := types.Cell{
		Row: 2 + e.rng.Intn(e.grid.Rows-4),
		Col: 2 + e.rng.Intn(e.grid.Columns-4),
	}
	snake := entity.NewSnake(head, e.direction)
	if !e.collisionMgr.ValidateSpawnPosition(snake) {
		panic(fmt.Sprintf("game: spawn %v does not fit a %dx%d board", snake.Body, e.grid.Rows, e.grid.Columns))
	}
	e.snake = snake
	e.score = 0
	e.placeFood()
}

func (e *Engine) placeFood() {
	e.food, e.hasFood = e.foodMgr.Place(e.snake)
}

// ChangeDirection sets the direction used by the next Step. It returns false
// and leaves the state alone if d is not a unit vector or would reverse the
// direction applied on the last Step.
func (e *Engine) ChangeDirection(d types.Direction) bool {
	return e.RequestDirection(d) == DirectionApplied
}

// RequestDirection is ChangeDirection with the rejection reason kept.
// Repeated requests between two steps overwrite each other.
func (e *Engine) RequestDirection(d types.Direction) DirectionResult {
	if !d.IsValid() {
		return DirectionInvalid
	}
	if d == e.lastDirection.Opposite() {
		return DirectionReversal
	}
	e.direction = d
	return DirectionApplied
}

func (e *Engine) nextHead() types.Cell {
	return e.snake.GetHead().Add(e.direction)
}

// Collision classifies what the head would hit if Step ran now
func (e *Engine) Collision() types.CollisionType {
	return e.collisionMgr.CheckCollision(e.nextHead(), e.snake)
}

// CheckCollision reports whether the next Step would leave the board or run
// into the current body. It does not change any state.
func (e *Engine) CheckCollision() bool {
	return e.Collision() != types.NoCollision
}

// Step advances the snake by one cell. It performs no collision check:
// callers must consult CheckCollision first and stop once it is true.
func (e *Engine) Step() StepResult {
	newHead := e.nextHead()
	e.snake.Move(newHead)
	e.lastDirection = e.direction

	if !e.hasFood || newHead != e.food {
		e.snake.RemoveTail()
		return StepResult{}
	}

	e.score++
	e.placeFood()
	return StepResult{AteFood: true}
}

// IsGameOver is true once no free cell is left for food, i.e. the snake fills
// the board.
func (e *Engine) IsGameOver() bool {
	return !e.hasFood
}

func (e *Engine) Grid() types.Grid {
	return e.grid
}

// Snake returns a copy of the body, head first
func (e *Engine) Snake() []types.Cell {
	return e.snake.Cells()
}

func (e *Engine) Length() int {
	return e.snake.Len()
}

// Food returns the food cell, or false when there is none
func (e *Engine) Food() (types.Cell, bool) {
	return e.food, e.hasFood
}

func (e *Engine) Score() int {
	return e.score
}

// Direction is the direction the next Step will use
func (e *Engine) Direction() types.Direction {
	return e.direction
}

// LastDirection is the direction used by the most recent Step
func (e *Engine) LastDirection() types.Direction {
	return e.lastDirection
}
