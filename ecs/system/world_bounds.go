package system

import (
	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/ecs/component"
)

// edgeOverlap is how far the ball's box may sit past an arena edge.
const edgeOverlap = 1.0

// arenaEdges lists each arena edge by the normal pointing back into the arena,
// in resolution order: bottom, right, left, top.
var arenaEdges = [...]component.Direction{
	component.DirUp,
	component.DirLeft,
	component.DirRight,
	component.DirDown,
}

// WorldBoundsSystem keeps the ball inside the arena. Each edge is checked on
// its own, so a ball wedged in a corner gets both corrections.
type WorldBoundsSystem struct{}

func NewWorldBoundsSystem() *WorldBoundsSystem {
	return &WorldBoundsSystem{}
}

func (s *WorldBoundsSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil {
		return
	}
	p := w.Player
	for _, away := range arenaEdges {
		limit, hit := edgeLimit(w.Arena, p, away)
		if !hit {
			continue
		}
		axis := away.Axis()
		*axis.Component(&p.Velocity) = 0
		*axis.Component(&p.Position) = limit

		outcome := p.Touch(away, w.Gravity)
		w.Events().Push(ecs.Event{Type: ecs.EventCollision, Data: ecs.CollisionEvent{
			Obstacle: -1,
			Away:     away,
			Outcome:  outcome,
		}})
	}
}

// edgeLimit returns the clamped coordinate for the edge whose inward normal is
// away, and whether the ball has crossed it.
func edgeLimit(a component.Arena, p *component.Player, away component.Direction) (float64, bool) {
	axis := away.Axis()
	pos := *axis.Component(&p.Position)
	if away.IsPositive() {
		limit := -edgeOverlap
		return limit, pos <= limit
	}
	extent := a.Width
	if axis == component.AxisVertical {
		extent = a.Height
	}
	limit := extent - (p.Size - edgeOverlap)
	return limit, pos >= limit
}
