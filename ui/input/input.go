// Package input maps frontend key names onto session commands so every
// frontend shares the same bindings.
package input

import (
	"strings"

	"grid-snake/driver"
	"grid-snake/game/types"
)

// Action is what a key asks the session to do
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionPause
	ActionRestart
	ActionQuit
)

type Command struct {
	Action Action
	Dir    types.Direction // set for ActionMove
}

var bindings = map[string]Command{
	"up":    {Action: ActionMove, Dir: types.Up},
	"w":     {Action: ActionMove, Dir: types.Up},
	"down":  {Action: ActionMove, Dir: types.Down},
	"s":     {Action: ActionMove, Dir: types.Down},
	"left":  {Action: ActionMove, Dir: types.Left},
	"a":     {Action: ActionMove, Dir: types.Left},
	"right": {Action: ActionMove, Dir: types.Right},
	"d":     {Action: ActionMove, Dir: types.Right},
	"p":     {Action: ActionPause},
	"space": {Action: ActionPause},
	"r":     {Action: ActionRestart},
	"q":     {Action: ActionQuit},
	"esc":   {Action: ActionQuit},
}

// Lookup returns the command bound to key. Key names are case insensitive.
func Lookup(key string) (Command, bool) {
	cmd, ok := bindings[strings.ToLower(key)]
	return cmd, ok
}

// Apply runs cmd against the session and reports whether the frontend should quit
func Apply(s *driver.Session, cmd Command) bool {
	switch cmd.Action {
	case ActionMove:
		s.RequestDirection(cmd.Dir)
	case ActionPause:
		s.TogglePause()
	case ActionRestart:
		s.Restart()
	case ActionQuit:
		return true
	}
	return false
}

// Handle looks key up and applies it. Unbound keys are ignored.
func Handle(s *driver.Session, key string) bool {
	cmd, ok := Lookup(key)
	if !ok {
		return false
	}
	return Apply(s, cmd)
}
