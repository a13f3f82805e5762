package system

import "github.com/milk9111/gravityball/ecs"

// GroundResetSystem clears the grounded flag. Collision systems set it again
// while the ball is resting on a surface.
type GroundResetSystem struct{}

func NewGroundResetSystem() *GroundResetSystem {
	return &GroundResetSystem{}
}

func (s *GroundResetSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	w.Player.Grounded = false
}

// JumpSystem fires an armed jump.
type JumpSystem struct{}

func NewJumpSystem() *JumpSystem {
	return &JumpSystem{}
}

func (s *JumpSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	dir, level := w.Player.PendingJump, w.Player.Level
	if w.Player.Jump(w.Gravity, w.Tunables) {
		w.Events().Push(ecs.Event{Type: ecs.EventJump, Data: ecs.JumpEvent{Direction: dir, Level: level}})
	}
}

type RollSystem struct{}

func NewRollSystem() *RollSystem {
	return &RollSystem{}
}

func (s *RollSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	w.Player.Roll(w.Gravity, w.Tunables)
}

type GravitySystem struct{}

func NewGravitySystem() *GravitySystem {
	return &GravitySystem{}
}

func (s *GravitySystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	w.Player.ApplyGravity(w.Gravity, w.Tunables)
}

// IntegrateSystem moves the ball by its velocity. It runs last, after every
// correction for the frame.
type IntegrateSystem struct{}

func NewIntegrateSystem() *IntegrateSystem {
	return &IntegrateSystem{}
}

func (s *IntegrateSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	w.Player.ApplyVelocity()
}

// SnapshotSystem publishes the post-collision state for drawing.
type SnapshotSystem struct{}

func NewSnapshotSystem() *SnapshotSystem {
	return &SnapshotSystem{}
}

func (s *SnapshotSystem) Update(w *ecs.World) {
	w.PublishSnapshot()
}
