package component

import "github.com/jakecoffman/cp"

// Axis is one of the two arena axes.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Perpendicular returns the other axis.
func (a Axis) Perpendicular() Axis {
	if a == AxisHorizontal {
		return AxisVertical
	}
	return AxisHorizontal
}

func (a Axis) String() string {
	if a == AxisHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Component returns a pointer to the v component along a.
func (a Axis) Component(v *cp.Vector) *float64 {
	if a == AxisHorizontal {
		return &v.X
	}
	return &v.Y
}

// Direction is a cardinal direction in screen space (+Y points down).
// The zero value is DirNone.
type Direction uint8

const (
	DirNone Direction = iota
	DirRight
	DirDown
	DirLeft
	DirUp
)

// rotation[d][0] is d rotated by -1, rotation[d][1] by +1. The +1 ring is
// right -> down -> left -> up -> right.
var rotation = [...][2]Direction{
	DirNone:  {DirNone, DirNone},
	DirRight: {DirUp, DirDown},
	DirDown:  {DirRight, DirLeft},
	DirLeft:  {DirDown, DirUp},
	DirUp:    {DirLeft, DirRight},
}

var opposite = [...]Direction{
	DirNone:  DirNone,
	DirRight: DirLeft,
	DirDown:  DirUp,
	DirLeft:  DirRight,
	DirUp:    DirDown,
}

// DirectionOf builds a direction from an axis and a sign.
func DirectionOf(a Axis, positive bool) Direction {
	switch {
	case a == AxisHorizontal && positive:
		return DirRight
	case a == AxisHorizontal:
		return DirLeft
	case positive:
		return DirDown
	default:
		return DirUp
	}
}

func (d Direction) Valid() bool {
	return d >= DirRight && d <= DirUp
}

func (d Direction) Axis() Axis {
	if d == DirRight || d == DirLeft {
		return AxisHorizontal
	}
	return AxisVertical
}

func (d Direction) IsPositive() bool {
	return d == DirRight || d == DirDown
}

// Sign returns +1 for right/down and -1 for left/up.
func (d Direction) Sign() float64 {
	if d.IsPositive() {
		return 1
	}
	return -1
}

// Rotate steps d around the ring. Any positive step counts as +1 and any
// negative step as -1; zero leaves d unchanged.
func (d Direction) Rotate(step int) Direction {
	if !d.Valid() || step == 0 {
		return d
	}
	if step > 0 {
		return rotation[d][1]
	}
	return rotation[d][0]
}

func (d Direction) Opposite() Direction {
	if int(d) >= len(opposite) {
		return DirNone
	}
	return opposite[d]
}

// Opposes reports whether d and other lie on the same axis with opposite signs.
func (d Direction) Opposes(other Direction) bool {
	return d.Valid() && other.Valid() && d.Opposite() == other
}

// Vector returns the unit vector for d.
func (d Direction) Vector() cp.Vector {
	var v cp.Vector
	if !d.Valid() {
		return v
	}
	*d.Axis().Component(&v) = d.Sign()
	return v
}

func (d Direction) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirUp:
		return "up"
	}
	return "none"
}
