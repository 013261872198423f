// Package terminal is the termbox frontend.
package terminal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"grid-snake/driver"
	"grid-snake/game"
	"grid-snake/ui/input"
)

var keyNames = map[termbox.Key]string{
	termbox.KeyArrowUp:    "up",
	termbox.KeyArrowDown:  "down",
	termbox.KeyArrowLeft:  "left",
	termbox.KeyArrowRight: "right",
	termbox.KeySpace:      "space",
	termbox.KeyEsc:        "esc",
	termbox.KeyCtrlC:      "q",
}

// Lines lays a frame out as text: the bordered board followed by a status
// line. Each board cell takes two columns so it looks roughly square.
func Lines(fr driver.Frame) []string {
	board := fr.State.Board()
	border := "+" + strings.Repeat("-", fr.State.Grid.Columns*2) + "+"

	lines := make([]string, 0, len(board)+4)
	lines = append(lines, border)
	for _, row := range board {
		var b strings.Builder
		b.WriteByte('|')
		for i := 0; i < len(row); i++ {
			b.WriteByte(row[i])
			b.WriteByte(' ')
		}
		b.WriteByte('|')
		lines = append(lines, b.String())
	}
	lines = append(lines, border)

	lines = append(lines, fmt.Sprintf("score %d  length %d  best %d  avg %.1f  game %d",
		fr.State.Score, len(fr.State.Snake), fr.Stats.BestScore, fr.Stats.AverageScore, fr.Game))

	switch {
	case fr.Paused:
		lines = append(lines, "paused - p to resume")
	case fr.Status == driver.StatusBoardFull:
		lines = append(lines, "board full, you win - r to play again, q to quit")
	case fr.Status == driver.StatusCollided:
		lines = append(lines, fmt.Sprintf("game over (%s) - r to restart, q to quit", fr.Collision))
	default:
		lines = append(lines, "arrows/wasd move, p pause, r restart, q quit")
	}
	return lines
}

func glyphColor(ch rune) termbox.Attribute {
	switch ch {
	case game.GlyphHead:
		return termbox.ColorGreen | termbox.AttrBold
	case game.GlyphBody:
		return termbox.ColorGreen
	case game.GlyphFood:
		return termbox.ColorRed | termbox.AttrBold
	case game.GlyphEmpty:
		return termbox.ColorBlack | termbox.AttrBold
	default:
		return termbox.ColorDefault
	}
}

// screen draws frames with termbox. Ticks and key presses both redraw, so
// drawing is serialised.
type screen struct {
	mu sync.Mutex
}

func (sc *screen) Render(fr driver.Frame) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	for y, line := range Lines(fr) {
		for x, ch := range []rune(line) {
			termbox.SetCell(x, y, ch, glyphColor(ch), termbox.ColorDefault)
		}
	}
	termbox.Flush()
}

// Run plays the session in the terminal until q/Esc or ctx is done
func Run(ctx context.Context, s *driver.Session, log zerolog.Logger, renderers ...driver.Renderer) error {
	if err := termbox.Init(); err != nil {
		return errors.Wrap(err, "init terminal")
	}
	defer termbox.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sc := &screen{}
	events := make(chan termbox.Event)
	go func() {
		for {
			ev := termbox.PollEvent()
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
			if ev.Type == termbox.EventInterrupt {
				return
			}
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, append(renderers, sc)...)
	}()

	for {
		select {
		case err := <-done:
			termbox.Interrupt()
			return err
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				name, ok := keyNames[ev.Key]
				if !ok && ev.Ch != 0 {
					name, ok = string(ev.Ch), true
				}
				if ok && input.Handle(s, name) {
					log.Info().Msg("quit requested")
					cancel()
					<-done
					termbox.Interrupt()
					return nil
				}
				sc.Render(s.Frame())
			case termbox.EventResize:
				sc.Render(s.Frame())
			case termbox.EventError:
				cancel()
				<-done
				return errors.Wrap(ev.Err, "terminal event")
			}
		}
	}
}
