package entity

import "grid-snake/game/types"

// InitialLength is the number of segments a freshly spawned snake has
const InitialLength = 3

// Snake is the ordered body, head first
type Snake struct {
	Body []types.Cell
}

// NewSnake builds a snake whose head is at head and whose remaining segments
// trail behind it, opposite to the direction of travel.
func NewSnake(head types.Cell, dir types.Direction) *Snake {
	body := make([]types.Cell, 0, InitialLength)
	body = append(body, head)
	for i := 1; i < InitialLength; i++ {
		body = append(body, body[i-1].Sub(dir))
	}
	return &Snake{Body: body}
}

// Move places newHead in front of the current head
func (s *Snake) Move(newHead types.Cell) {
	s.Body = append(s.Body, types.Cell{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

func (s *Snake) RemoveTail() {
	if len(s.Body) > 0 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Cell {
	return s.Body[0]
}

func (s *Snake) GetTail() types.Cell {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on c
func (s *Snake) Occupies(c types.Cell) bool {
	for _, part := range s.Body {
		if part == c {
			return true
		}
	}
	return false
}

// Cells returns a copy of the body safe to hand to renderers
func (s *Snake) Cells() []types.Cell {
	out := make([]types.Cell, len(s.Body))
	copy(out, s.Body)
	return out
}
