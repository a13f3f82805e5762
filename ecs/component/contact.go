package component

import "github.com/jakecoffman/cp"

// ContactSite names where the ball touched an obstacle.
type ContactSite string

const (
	ContactNone        ContactSite = ""
	ContactTop         ContactSite = "top"
	ContactRight       ContactSite = "right"
	ContactLeft        ContactSite = "left"
	ContactBottom      ContactSite = "bottom"
	ContactTopLeft     ContactSite = "topLeft"
	ContactTopRight    ContactSite = "topRight"
	ContactBottomRight ContactSite = "bottomRight"
	ContactBottomLeft  ContactSite = "bottomLeft"
)

func (s ContactSite) IsCorner() bool {
	switch s {
	case ContactTopLeft, ContactTopRight, ContactBottomRight, ContactBottomLeft:
		return true
	}
	return false
}

// Away returns the outward normal of an edge site: the direction that points
// from the obstacle toward the ball. Corner and empty sites return DirNone.
func (s ContactSite) Away() Direction {
	switch s {
	case ContactTop:
		return DirUp
	case ContactRight:
		return DirRight
	case ContactLeft:
		return DirLeft
	case ContactBottom:
		return DirDown
	}
	return DirNone
}

// CornerAway returns the diagonal (±1, ±1) pointing out of a corner site.
func (s ContactSite) CornerAway() cp.Vector {
	switch s {
	case ContactTopLeft:
		return cp.Vector{X: -1, Y: -1}
	case ContactTopRight:
		return cp.Vector{X: 1, Y: -1}
	case ContactBottomRight:
		return cp.Vector{X: 1, Y: 1}
	case ContactBottomLeft:
		return cp.Vector{X: -1, Y: 1}
	}
	return cp.Vector{}
}
