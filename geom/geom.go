// Package geom holds the circle/segment/point tests used by obstacle collision.
// Points are cp.Vector so they line up with the rest of the physics code.
package geom

import "github.com/jakecoffman/cp"

// SegmentTolerance absorbs rounding from the projection in CircleVsSegment.
const SegmentTolerance = 0.1

func Distance(a, b cp.Vector) float64 {
	return a.Distance(b)
}

// PointOnSegment reports whether p lies on segment ab, within tolerance.
func PointOnSegment(a, b, p cp.Vector, tolerance float64) bool {
	d := Distance(a, p) + Distance(p, b) - Distance(a, b)
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

// CircleVsPoint reports whether p is strictly inside the circle.
func CircleVsPoint(p, center cp.Vector, radius float64) bool {
	return Distance(p, center) < radius
}

// ClosestOnLine projects p onto the infinite line through a and b.
// ok is false when a and b coincide.
func ClosestOnLine(a, b, p cp.Vector) (cp.Vector, bool) {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return a, false
	}
	t := p.Sub(a).Dot(ab) / lenSq
	return a.Add(ab.Mult(t)), true
}

// CircleVsSegment reports whether the circle touches segment ab. A circle that
// only reaches the line beyond either endpoint does not count.
func CircleVsSegment(a, b, center cp.Vector, radius float64) bool {
	closest, ok := ClosestOnLine(a, b, center)
	if !ok {
		return CircleVsPoint(a, center, radius)
	}
	if !PointOnSegment(a, b, closest, SegmentTolerance) {
		return false
	}
	return CircleVsPoint(closest, center, radius)
}
