package component

// Tunables holds the player physics constants. Values come from
// prefabs/ball.yaml; DefaultTunables mirrors the shipped file.
type Tunables struct {
	Size         float64
	JumpForce    float64
	Gravity      float64
	RollSpeed    float64
	Friction     float64
	RollDeadZone float64
	CornerKick   float64
	EdgeNudge    float64
}

func DefaultTunables() Tunables {
	return Tunables{
		Size:         34,
		JumpForce:    10,
		Gravity:      1,
		RollSpeed:    3,
		Friction:     1.2,
		RollDeadZone: 0.1,
		CornerKick:   5,
		EdgeNudge:    3,
	}
}
