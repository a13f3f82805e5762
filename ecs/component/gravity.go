package component

// Gravity tracks which way "down" currently points. Rotating it has no side
// effects on the player; Player.ChangeGravity handles those.
type Gravity struct {
	dir Direction
}

// NewGravity returns gravity pointing in d, or down if d is not a cardinal.
func NewGravity(d Direction) Gravity {
	if !d.Valid() {
		d = DirDown
	}
	return Gravity{dir: d}
}

func (g Gravity) Direction() Direction {
	if !g.dir.Valid() {
		return DirDown
	}
	return g.dir
}

// Rotate turns gravity by ±90°.
func (g *Gravity) Rotate(step int) {
	if g == nil {
		return
	}
	g.dir = g.Direction().Rotate(step)
}

func (g Gravity) Axis() Axis {
	return g.Direction().Axis()
}

func (g Gravity) IsPositive() bool {
	return g.Direction().IsPositive()
}

// WalkAxis is the axis the player rolls along.
func (g Gravity) WalkAxis() Axis {
	return g.Axis().Perpendicular()
}
