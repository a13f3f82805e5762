package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/ecs/component"
	"github.com/milk9111/gravityball/geom"
)

// obstacleInflate grows every obstacle rectangle on each side.
const obstacleInflate = 1.0

// ObstacleCollisionSystem resolves the ball against every known obstacle in
// registry order. Each obstacle is tested and resolved in turn, so with
// overlapping obstacles a later one can overwrite an earlier correction in the
// same frame.
type ObstacleCollisionSystem struct{}

func NewObstacleCollisionSystem() *ObstacleCollisionSystem {
	return &ObstacleCollisionSystem{}
}

func (s *ObstacleCollisionSystem) Update(w *ecs.World) {
	if w == nil || w.Player == nil || w.Obstacles == nil {
		return
	}
	w.Obstacles.ForEachKnown(func(o component.Obstacle) {
		site := Intersect(w.Player, o)
		if site == component.ContactNone {
			return
		}
		outcome := ResolveObstacleContact(w.Player, site, w.Gravity, w.Tunables)
		w.Events().Push(ecs.Event{Type: ecs.EventCollision, Data: ecs.CollisionEvent{
			Obstacle: o.Index,
			Site:     site,
			Away:     site.Away(),
			Outcome:  outcome,
		}})
	})
}

type obstacleCorners struct {
	topLeft, topRight, bottomRight, bottomLeft cp.Vector
}

func cornersOf(o component.Obstacle) obstacleCorners {
	pos, size := *o.Position, *o.Size
	left := pos.X - obstacleInflate
	top := pos.Y - obstacleInflate
	right := pos.X + size.X + obstacleInflate
	bottom := pos.Y + size.Y + obstacleInflate
	return obstacleCorners{
		topLeft:     cp.Vector{X: left, Y: top},
		topRight:    cp.Vector{X: right, Y: top},
		bottomRight: cp.Vector{X: right, Y: bottom},
		bottomLeft:  cp.Vector{X: left, Y: bottom},
	}
}

// bounds is the inflated rectangle with min Y stored in B, the same
// screen-space convention the tile colliders use.
func (c obstacleCorners) bounds(margin float64) cp.BB {
	return cp.BB{
		L: c.topLeft.X - margin,
		B: c.topLeft.Y - margin,
		R: c.bottomRight.X + margin,
		T: c.bottomRight.Y + margin,
	}
}

// Intersect finds where the ball touches o. Edges are tested first, in the
// order top, right, left, bottom. An edge hit snaps the ball flush against
// that edge. Corners are tested only when no edge matched.
func Intersect(p *component.Player, o component.Obstacle) component.ContactSite {
	if p == nil {
		return component.ContactNone
	}
	if !o.Known() {
		panic(fmt.Sprintf("obstacle collision: obstacle %d has no position or size", o.Index))
	}

	c := cornersOf(o)
	center := p.Center()
	radius := p.Radius()

	if !cp.NewBBForCircle(center, radius).Intersects(c.bounds(geom.SegmentTolerance)) {
		return component.ContactNone
	}

	switch {
	case geom.CircleVsSegment(c.topLeft, c.topRight, center, radius):
		p.Position.Y = c.topLeft.Y - p.Size + 1
		return component.ContactTop
	case geom.CircleVsSegment(c.bottomRight, c.topRight, center, radius):
		p.Position.X = c.topRight.X - 2
		return component.ContactRight
	case geom.CircleVsSegment(c.bottomLeft, c.topLeft, center, radius):
		p.Position.X = c.topLeft.X - p.Size + 1
		return component.ContactLeft
	case geom.CircleVsSegment(c.bottomLeft, c.bottomRight, center, radius):
		p.Position.Y = c.bottomLeft.Y - 2
		return component.ContactBottom
	}

	switch {
	case geom.CircleVsPoint(c.topLeft, center, radius):
		return component.ContactTopLeft
	case geom.CircleVsPoint(c.topRight, center, radius):
		return component.ContactTopRight
	case geom.CircleVsPoint(c.bottomRight, center, radius):
		return component.ContactBottomRight
	case geom.CircleVsPoint(c.bottomLeft, center, radius):
		return component.ContactBottomLeft
	}
	return component.ContactNone
}

// ResolveObstacleContact applies the velocity and state change for site.
// Edge contacts stop the ball on that axis and either land it, arm a jump, or
// nudge an airborne uncharged ball off the surface. Corner contacts bounce.
func ResolveObstacleContact(p *component.Player, site component.ContactSite, g component.Gravity, t component.Tunables) component.ContactOutcome {
	if p == nil || site == component.ContactNone {
		return component.ContactIgnored
	}
	if site.IsCorner() {
		p.CornerBounce(site, t)
		return component.ContactIgnored
	}

	away := site.Away()
	v := away.Axis().Component(&p.Velocity)
	*v = 0
	outcome := p.Touch(away, g)
	if outcome == component.ContactIgnored && !p.Grounded {
		*v = away.Sign() * t.EdgeNudge
	}
	return outcome
}
