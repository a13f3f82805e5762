package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityball/ecs/component"
)

// The On* methods mutate state directly and must run on the frame goroutine.
// Producers on other goroutines push a Command instead.

// OnWalkStart starts rolling along the current walk axis.
func (w *World) OnWalkStart(dir int) {
	if w == nil || w.Player == nil || (dir != -1 && dir != 1) {
		return
	}
	w.Player.WalkDir = dir
}

// OnWalkStop stops rolling if dir is still the active walk direction.
func (w *World) OnWalkStop(dir int) {
	if w == nil || w.Player == nil {
		return
	}
	if w.Player.WalkDir == dir {
		w.Player.WalkDir = 0
	}
}

// OnWalkKey handles a raw walk key on axis. Keys for the axis gravity points
// along are ignored.
func (w *World) OnWalkKey(axis component.Axis, dir int, down bool) {
	if w == nil || axis != w.Gravity.WalkAxis() {
		return
	}
	if down {
		w.OnWalkStart(dir)
		return
	}
	w.OnWalkStop(dir)
}

func (w *World) OnCharge() {
	if w == nil || w.Player == nil {
		return
	}
	w.Player.Charge()
}

// OnGravityRotate rotates gravity by step (±1).
func (w *World) OnGravityRotate(step int) {
	if w == nil || w.Player == nil || step == 0 {
		return
	}
	from := w.Gravity.Direction()
	w.Player.ChangeGravity(&w.Gravity, step)
	w.events.Push(Event{Type: EventGravityChanged, Data: GravityEvent{From: from, To: w.Gravity.Direction()}})
}

// OnReset puts the ball back at spawn.
func (w *World) OnReset() {
	if w == nil || w.Player == nil {
		return
	}
	w.Player.Reset(w.Arena.Spawn(w.Player.Size))
	w.events.Push(Event{Type: EventReset})
}

// RegisterObstacle allocates a new obstacle slot. Safe from any goroutine.
func (w *World) RegisterObstacle() int {
	return w.Obstacles.Register()
}

// ReportObstacle records an obstacle's arena-local position and size. Nil
// fields mark them unknown. Safe from any goroutine.
func (w *World) ReportObstacle(index int, position, size *cp.Vector) {
	w.Obstacles.Upsert(index, position, size)
}

// RemoveObstacle drops an obstacle. Safe from any goroutine.
func (w *World) RemoveObstacle(index int) {
	w.Obstacles.Remove(index)
}

func (w *World) applyCommands() {
	for _, cmd := range w.commands.Drain() {
		switch cmd.Kind {
		case CmdWalkKeyDown:
			w.OnWalkKey(cmd.Axis, cmd.Value, true)
		case CmdWalkKeyUp:
			w.OnWalkKey(cmd.Axis, cmd.Value, false)
		case CmdCharge:
			w.OnCharge()
		case CmdGravityRotate:
			w.OnGravityRotate(cmd.Value)
		case CmdReset:
			w.OnReset()
		}
	}
}
