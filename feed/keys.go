package feed

import (
	"strings"

	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/ecs/component"
)

// KeyKind is the browser-style key event name relayed by pop-up windows.
type KeyKind string

const (
	KeyDown  KeyKind = "keydown"
	KeyUp    KeyKind = "keyup"
	KeyPress KeyKind = "keypress"
)

// Action is a key effect outside the simulation: window management.
type Action uint8

const (
	ActionNone Action = iota
	// ActionSpawn asks for a new obstacle window.
	ActionSpawn
	// ActionCloseAll removes every obstacle and closes its window.
	ActionCloseAll
	// ActionFocus raises every obstacle window.
	ActionFocus
)

// Translate maps one key event to world commands and a window action. The
// same table serves the game window and relayed pop-up keys.
func Translate(kind KeyKind, key string) ([]ecs.Command, Action) {
	key = strings.ToLower(key)
	switch kind {
	case KeyDown, KeyUp:
		axis, dir, ok := walkKey(key)
		if !ok {
			return nil, ActionNone
		}
		cmd := ecs.CmdWalkKeyDown
		if kind == KeyUp {
			cmd = ecs.CmdWalkKeyUp
		}
		return []ecs.Command{{Kind: cmd, Axis: axis, Value: dir}}, ActionNone
	case KeyPress:
		switch key {
		case " ", "space":
			return []ecs.Command{{Kind: ecs.CmdCharge}}, ActionNone
		case "q":
			return []ecs.Command{{Kind: ecs.CmdGravityRotate, Value: 1}}, ActionNone
		case "e":
			return []ecs.Command{{Kind: ecs.CmdGravityRotate, Value: -1}}, ActionNone
		case "r":
			return []ecs.Command{{Kind: ecs.CmdReset}}, ActionFocus
		case "c":
			return nil, ActionSpawn
		case "x":
			return nil, ActionCloseAll
		}
	}
	return nil, ActionNone
}

func walkKey(key string) (component.Axis, int, bool) {
	switch key {
	case "a":
		return component.AxisHorizontal, -1, true
	case "d":
		return component.AxisHorizontal, 1, true
	case "w":
		return component.AxisVertical, -1, true
	case "s":
		return component.AxisVertical, 1, true
	}
	return component.AxisHorizontal, 0, false
}
