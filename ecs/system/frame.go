package system

import "github.com/milk9111/gravityball/ecs"

// FrameSystems returns the simulation stages in frame order. The order is
// load-bearing: collisions see last frame's motion, the snapshot sees the
// corrected position, and integration comes last.
func FrameSystems() []ecs.System {
	return []ecs.System{
		NewGroundResetSystem(),
		NewWorldBoundsSystem(),
		NewObstacleCollisionSystem(),
		NewSnapshotSystem(),
		NewJumpSystem(),
		NewRollSystem(),
		NewGravitySystem(),
		NewIntegrateSystem(),
	}
}

// Install appends the frame stages to w, followed by any extra systems.
func Install(w *ecs.World, extra ...ecs.System) {
	for _, s := range FrameSystems() {
		w.AddSystem(s)
	}
	for _, s := range extra {
		w.AddSystem(s)
	}
}
