package game

import (
	"strings"

	"grid-snake/game/types"
)

// Board glyphs used by Snapshot.Board
const (
	GlyphEmpty = '.'
	GlyphFood  = 'F'
	GlyphHead  = 'H'
	GlyphBody  = 'S'
)

// Snapshot is a read-only copy of the engine state
type Snapshot struct {
	Grid          types.Grid      `json:"grid"`
	Snake         []types.Cell    `json:"snake"`
	Food          *types.Cell     `json:"food"`
	Direction     types.Direction `json:"dir"`
	LastDirection types.Direction `json:"lastDir"`
	Score         int             `json:"score"`
	GameOver      bool            `json:"gameOver"`
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Grid:          e.grid,
		Snake:         e.Snake(),
		Direction:     e.direction,
		LastDirection: e.lastDirection,
		Score:         e.score,
		GameOver:      e.IsGameOver(),
	}
	if e.hasFood {
		food := e.food
		s.Food = &food
	}
	return s
}

// Board draws the snapshot as one string per row
func (s Snapshot) Board() []string {
	board := make([][]byte, s.Grid.Rows)
	for row := range board {
		board[row] = []byte(strings.Repeat(string(GlyphEmpty), s.Grid.Columns))
	}

	put := func(c types.Cell, glyph byte) {
		if s.Grid.Contains(c) {
			board[c.Row][c.Col] = glyph
		}
	}

	if s.Food != nil {
		put(*s.Food, GlyphFood)
	}
	for i, part := range s.Snake {
		if i == 0 {
			put(part, GlyphHead)
		} else {
			put(part, GlyphBody)
		}
	}

	rows := make([]string, len(board))
	for i, row := range board {
		rows[i] = string(row)
	}
	return rows
}

// String joins Board with spaces between cells and newlines between rows
func (s Snapshot) String() string {
	var b strings.Builder
	for _, row := range s.Board() {
		for i := 0; i < len(row); i++ {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(row[i])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
