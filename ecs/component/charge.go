package component

// ChargeLevel is the jump charge of the ball. Its index doubles as the jump
// impulse multiplier.
type ChargeLevel uint8

const (
	ChargeNeutral ChargeLevel = iota
	ChargeHalf
	ChargeFull
	ChargeOver
)

func (c ChargeLevel) Index() int {
	return int(c)
}

// Charged reports whether c is above neutral.
func (c ChargeLevel) Charged() bool {
	return c > ChargeNeutral
}

// Raise moves c up by steps, clamped to ChargeOver.
func (c ChargeLevel) Raise(steps int) ChargeLevel {
	n := int(c) + steps
	if n > int(ChargeOver) {
		n = int(ChargeOver)
	}
	if n < int(ChargeNeutral) {
		n = int(ChargeNeutral)
	}
	return ChargeLevel(n)
}

// Lower steps c down once, stopping at neutral.
func (c ChargeLevel) Lower() ChargeLevel {
	return c.Raise(-1)
}

func (c ChargeLevel) String() string {
	switch c {
	case ChargeNeutral:
		return "neutral"
	case ChargeHalf:
		return "halfCharge"
	case ChargeFull:
		return "fullCharge"
	case ChargeOver:
		return "overCharge"
	}
	return "unknown"
}
