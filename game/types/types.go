package types

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Grid represents the board dimensions
type Grid struct {
	Rows    int
	Columns int
}

// Contains reports whether c lies on the board
func (g Grid) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Columns
}

// Size returns the number of cells on the board
func (g Grid) Size() int {
	return g.Rows * g.Columns
}

// Cell is a board position, 0-indexed
type Cell struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

// Add returns the cell one step away from c in direction d
func (c Cell) Add(d Direction) Cell {
	return Cell{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Sub returns the cell one step away from c against direction d
func (c Cell) Sub(d Direction) Cell {
	return Cell{Row: c.Row - d.Row, Col: c.Col - d.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Direction is a movement vector. Only the four unit vectors below are valid.
type Direction struct {
	Row int `json:"r"`
	Col int `json:"c"`
}

var (
	Down  = Direction{Row: 1, Col: 0}
	Right = Direction{Row: 0, Col: 1}
	Up    = Direction{Row: -1, Col: 0}
	Left  = Direction{Row: 0, Col: -1}
)

// Directions lists the valid directions in a fixed order
var Directions = [4]Direction{Down, Right, Up, Left}

// IsValid reports whether d is one of the four unit vectors
func (d Direction) IsValid() bool {
	for _, v := range Directions {
		if d == v {
			return true
		}
	}
	return false
}

// Opposite returns the reversed vector
func (d Direction) Opposite() Direction {
	return Direction{Row: -d.Row, Col: -d.Col}
}

// TurnLeft rotates d by 90° counter-clockwise
func (d Direction) TurnLeft() Direction {
	return Direction{Row: -d.Col, Col: d.Row}
}

// TurnRight rotates d by 90° clockwise
func (d Direction) TurnRight() Direction {
	return Direction{Row: d.Col, Col: -d.Row}
}

func (d Direction) String() string {
	switch d {
	case Down:
		return "down"
	case Right:
		return "right"
	case Up:
		return "up"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("invalid(%d,%d)", d.Row, d.Col)
	}
}

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

// Random is the uniform source used for spawning and food placement.
// Intn returns a value in [0, n) and may panic when n <= 0.
type Random interface {
	Intn(n int) int
}

// NewRandom returns a seeded source. The same seed always yields the same game.
func NewRandom(seed uint64) Random {
	return rand.New(rand.NewSource(seed))
}
