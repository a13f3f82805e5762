package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Arena is the fixed playfield, [0,Width] x [0,Height].
type Arena struct {
	Width  float64
	Height float64
	// SpawnEdge DirDown spawns on the floor; anything else spawns at the top.
	SpawnEdge Direction
}

// Spawn returns the horizontally centered spawn point for a ball of the given
// size, against the top edge or resting on the floor.
func (a Arena) Spawn(size float64) cp.Vector {
	x := math.Round(a.Width/2) - size/2
	if a.SpawnEdge == DirDown {
		return cp.Vector{X: x, Y: a.Height - (size - 1)}
	}
	return cp.Vector{X: x, Y: 0}
}
