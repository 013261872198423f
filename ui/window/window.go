// Package window is the raylib desktop frontend.
package window

import (
	"context"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"

	"grid-snake/driver"
	"grid-snake/ui/input"
)

const (
	screenWidth  = 1024
	screenHeight = 720
	targetFPS    = 60
)

// keyBinding pairs a raylib key with its input name
type keyBinding struct {
	key  int32
	name string
}

// keys are polled in this order every frame, so when two keys land in the
// same frame the later entry wins
var keys = []keyBinding{
	{rl.KeyUp, "up"},
	{rl.KeyDown, "down"},
	{rl.KeyLeft, "left"},
	{rl.KeyRight, "right"},
	{rl.KeyW, "w"},
	{rl.KeyA, "a"},
	{rl.KeyS, "s"},
	{rl.KeyD, "d"},
	{rl.KeyP, "p"},
	{rl.KeySpace, "space"},
	{rl.KeyR, "r"},
	{rl.KeyQ, "q"},
}

// pressed returns the names of the keys isPressed reports, in keys order
func pressed(isPressed func(key int32) bool) []string {
	var names []string
	for _, kb := range keys {
		if isPressed(kb.key) {
			names = append(names, kb.name)
		}
	}
	return names
}

// Run opens the window and plays the session until the window is closed,
// Q is pressed or ctx is done. raylib needs every call on one OS thread, so
// ticks are driven from the draw loop instead of Session.Run. Every tick is
// also handed to renderers, e.g. a spectator stream.
func Run(ctx context.Context, s *driver.Session, log zerolog.Logger, renderers ...driver.Renderer) error {
	rl.InitWindow(screenWidth, screenHeight, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)

	renderer := NewRenderer()
	lastUpdate := time.Now()
	log.Info().Msg("window opened")

	for !rl.WindowShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, name := range pressed(rl.IsKeyPressed) {
			if input.Handle(s, name) {
				log.Info().Msg("quit requested")
				return nil
			}
		}

		if time.Since(lastUpdate) >= s.Interval() {
			s.Tick()
			lastUpdate = time.Now()
			fr := s.Frame()
			for _, r := range renderers {
				r.Render(fr)
			}
		}

		renderer.Draw(s.Frame())
	}
	return nil
}
