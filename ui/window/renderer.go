package window

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"grid-snake/driver"
	"grid-snake/game/types"
)

const (
	borderPadding = 10 // padding around the board
)

var (
	snakeColor = rl.Color{R: 46, G: 160, B: 67, A: 255}
	headColor  = rl.Color{R: 60, G: 208, B: 87, A: 255}
	tailColor  = rl.Color{R: 200, G: 230, B: 200, A: 255}
	overlay    = rl.Color{R: 0, G: 0, B: 0, A: 160}
)

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	// stats panel takes a fixed share of the window
	r.statsPanel = r.screenWidth / 5
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func (r *Renderer) cellX(c types.Cell) int32 {
	return r.offsetX + int32(c.Col)*r.cellSize
}

func (r *Renderer) cellY(c types.Cell) int32 {
	return r.offsetY + int32(c.Row)*r.cellSize
}

// Draw paints one frame. It must run on the goroutine that owns the window.
func (r *Renderer) Draw(fr driver.Frame) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/40, r.statsPanel/12)
	lineHeight := min(r.screenHeight/30, r.statsPanel/10)

	grid := fr.State.Grid
	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)
	r.cellSize = max(min(availableWidth/int32(grid.Columns), availableHeight/int32(grid.Rows)), 1)

	r.totalGridWidth = r.cellSize * int32(grid.Columns)
	r.totalGridHeight = r.cellSize * int32(grid.Rows)
	r.offsetX = borderPadding + (availableWidth-r.totalGridWidth)/2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Black)
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Columns; col++ {
			c := types.Cell{Row: row, Col: col}
			rl.DrawRectangleLines(r.cellX(c), r.cellY(c), r.cellSize, r.cellSize, rl.Color{R: 30, G: 30, B: 30, A: 255})
		}
	}

	if fr.State.Food != nil {
		food := *fr.State.Food
		rl.DrawRectangle(r.cellX(food), r.cellY(food), r.cellSize, r.cellSize, rl.Red)
	}

	body := fr.State.Snake
	for i := len(body) - 1; i >= 0; i-- {
		color := snakeColor
		switch i {
		case 0:
			color = headColor
		case len(body) - 1:
			color = tailColor
		}
		rl.DrawRectangle(r.cellX(body[i]), r.cellY(body[i]), r.cellSize, r.cellSize, color)
	}
	if len(body) > 0 {
		r.drawHeadIndicator(body[0], fr.State.Direction)
	}

	r.drawStatsPanel(fr, fontSize, lineHeight)
	r.drawOverlay(fr, fontSize*2)
	rl.EndDrawing()
}

// drawHeadIndicator points a triangle towards the pending direction. The base
// runs across the cell centre, perpendicular to dir.
func (r *Renderer) drawHeadIndicator(head types.Cell, dir types.Direction) {
	if !dir.IsValid() {
		return
	}
	half := float32(r.cellSize) / 2
	cx := float32(r.cellX(head)) + half
	cy := float32(r.cellY(head)) + half

	at := func(d types.Direction) rl.Vector2 {
		return rl.Vector2{X: cx + float32(d.Col)*half, Y: cy + float32(d.Row)*half}
	}
	// tip first, then the left and right corners, counter-clockwise on screen
	rl.DrawTriangle(at(dir), at(dir.TurnLeft()), at(dir.TurnRight()), rl.Yellow)
}

func (r *Renderer) drawStatsPanel(fr driver.Frame, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	lines := []string{
		fmt.Sprintf("Score: %d", fr.State.Score),
		fmt.Sprintf("Length: %d", len(fr.State.Snake)),
		fmt.Sprintf("Game: %d", fr.Game),
		fmt.Sprintf("Speed: %dms", fr.Interval.Milliseconds()),
		"",
		fmt.Sprintf("Best: %d", fr.Stats.BestScore),
		fmt.Sprintf("Avg: %.2f", fr.Stats.AverageScore),
		fmt.Sprintf("Median: %.1f", fr.Stats.MedianScore),
		fmt.Sprintf("Wins: %d/%d", fr.Stats.Wins, fr.Stats.Games),
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}

	r.drawPerformanceGraph(fr, statsX, fontSize)
}

func (r *Renderer) drawPerformanceGraph(fr driver.Frame, graphX, fontSize int32) {
	graphY := r.screenHeight - r.graphHeight - fontSize*2
	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)

	scores := fr.Recent
	if len(scores) < 2 {
		return
	}
	maxScore := 1
	for _, s := range scores {
		maxScore = max(maxScore, s)
	}

	point := func(i, score int) (int32, int32) {
		x := graphX + int32(float32(r.graphWidth)*float32(i)/float32(len(scores)-1))
		y := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(score)/float32(maxScore))
		return x, y
	}
	for i := 1; i < len(scores); i++ {
		x1, y1 := point(i-1, scores[i-1])
		x2, y2 := point(i, scores[i])
		rl.DrawLine(x1, y1, x2, y2, headColor)
	}

	// dashed average line
	avgY := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(fr.Stats.AverageScore)/float32(maxScore))
	for x := graphX; x < graphX+r.graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}

func (r *Renderer) drawOverlay(fr driver.Frame, fontSize int32) {
	var title, hint string
	switch {
	case fr.Paused:
		title, hint = "Paused", "P to resume"
	case fr.Status == driver.StatusBoardFull:
		title, hint = "You win!", "R to play again"
	case fr.Status == driver.StatusCollided:
		title, hint = fmt.Sprintf("Game over (%s)", fr.Collision), "R to restart, Q to quit"
	default:
		return
	}

	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, overlay)
	titleWidth := rl.MeasureText(title, fontSize)
	rl.DrawText(title,
		r.offsetX+(r.totalGridWidth-titleWidth)/2,
		r.offsetY+r.totalGridHeight/2-fontSize,
		fontSize, rl.White)
	hintWidth := rl.MeasureText(hint, fontSize/2)
	rl.DrawText(hint,
		r.offsetX+(r.totalGridWidth-hintWidth)/2,
		r.offsetY+r.totalGridHeight/2+fontSize/2,
		fontSize/2, rl.LightGray)
}
