package spectate

import (
	"grid-snake/driver"
	"grid-snake/game/types"
)

// Protocol uses short JSON keys, like the one frame message below.
//
//	{"t":"f","i":"session","g":1,"k":42,"h":20,"w":20,
//	 "s":[[r,c],...],"f":[r,c],"d":[dr,dc],"p":3,"st":"continue","b":9}
//
// Cells are [row, col] pairs, head first. "f" is null once the board is full.
const MsgFrame = "f"

// FrameMsg is one rendered frame
type FrameMsg struct {
	Type    string   `json:"t"`
	Session string   `json:"i"`
	Game    int      `json:"g"`
	Tick    int      `json:"k"`
	Rows    int      `json:"h"`
	Cols    int      `json:"w"`
	Snake   [][2]int `json:"s"`
	Food    *[2]int  `json:"f"`
	Dir     [2]int   `json:"d"`
	Score   int      `json:"p"`
	Status  string   `json:"st"`
	Paused  bool     `json:"z,omitempty"`
	Best    int      `json:"b"`
}

func pair(c types.Cell) [2]int {
	return [2]int{c.Row, c.Col}
}

// NewFrameMsg converts a driver frame to its wire form
func NewFrameMsg(fr driver.Frame) FrameMsg {
	msg := FrameMsg{
		Type:    MsgFrame,
		Session: fr.SessionID,
		Game:    fr.Game,
		Tick:    fr.Tick,
		Rows:    fr.State.Grid.Rows,
		Cols:    fr.State.Grid.Columns,
		Snake:   make([][2]int, len(fr.State.Snake)),
		Dir:     [2]int{fr.State.Direction.Row, fr.State.Direction.Col},
		Score:   fr.State.Score,
		Status:  fr.Status.String(),
		Paused:  fr.Paused,
		Best:    fr.Stats.BestScore,
	}
	for i, c := range fr.State.Snake {
		msg.Snake[i] = pair(c)
	}
	if fr.State.Food != nil {
		food := pair(*fr.State.Food)
		msg.Food = &food
	}
	return msg
}
