package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityball/ecs/component"
)

// World is the whole simulation state. Systems receive it explicitly; nothing
// lives in package globals.
type World struct {
	Arena     component.Arena
	Tunables  component.Tunables
	Gravity   component.Gravity
	Player    *component.Player
	Obstacles *component.ObstacleRegistry

	scheduler Scheduler
	events    EventQueue
	commands  CommandQueue
	snapshot  RenderSnapshot
	frame     uint64
}

// RenderSnapshot is what the renderer sees for one frame.
type RenderSnapshot struct {
	Frame     uint64
	Position  cp.Vector
	Velocity  cp.Vector
	Size      float64
	Level     component.ChargeLevel
	Gravity   component.Direction
	Grounded  bool
	Obstacles []component.Obstacle
}

// NewWorld creates a world with the ball at spawn and gravity pointing down.
func NewWorld(arena component.Arena, tunables component.Tunables) *World {
	return &World{
		Arena:     arena,
		Tunables:  tunables,
		Gravity:   component.NewGravity(component.DirDown),
		Player:    component.NewPlayer(arena.Spawn(tunables.Size), tunables.Size),
		Obstacles: component.NewObstacleRegistry(),
	}
}

// AddSystem appends a system to the frame order.
func (w *World) AddSystem(s System) {
	if w == nil {
		return
	}
	w.scheduler.Add(s)
}

// Update applies queued commands and runs every system once.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.frame++
	w.applyCommands()
	w.scheduler.Update(w)
	w.events.flush()
}

func (w *World) Frame() uint64 {
	if w == nil {
		return 0
	}
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Commands returns the queue used by feeds running on other goroutines.
func (w *World) Commands() *CommandQueue {
	if w == nil {
		return nil
	}
	return &w.commands
}

// Snapshot returns the last published render state.
func (w *World) Snapshot() RenderSnapshot {
	if w == nil {
		return RenderSnapshot{}
	}
	return w.snapshot
}

// PublishSnapshot captures the current player and obstacle state for drawing.
func (w *World) PublishSnapshot() {
	if w == nil || w.Player == nil {
		return
	}
	snap := RenderSnapshot{
		Frame:    w.frame,
		Position: w.Player.Position,
		Velocity: w.Player.Velocity,
		Size:     w.Player.Size,
		Level:    w.Player.Level,
		Gravity:  w.Gravity.Direction(),
		Grounded: w.Player.Grounded,
	}
	w.Obstacles.ForEachKnown(func(o component.Obstacle) {
		snap.Obstacles = append(snap.Obstacles, o)
	})
	w.snapshot = snap
}

// SetTunables swaps the physics constants. The ball keeps its size.
func (w *World) SetTunables(t component.Tunables) {
	if w == nil {
		return
	}
	if w.Player != nil {
		t.Size = w.Player.Size
	}
	w.Tunables = t
}
