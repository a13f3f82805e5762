package component

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Player is the ball. Position is the top-left of its bounding box.
type Player struct {
	Position cp.Vector
	Velocity cp.Vector
	Size     float64
	Level    ChargeLevel
	Grounded bool
	// WalkDir is -1, 0 or +1 along the gravity's walk axis.
	WalkDir int
	// PendingJump is armed by a bounce and spent by the next Jump.
	PendingJump Direction
}

// ContactOutcome reports what a surface contact did to the player.
type ContactOutcome uint8

const (
	ContactIgnored ContactOutcome = iota
	ContactLanded
	ContactArmed
)

func NewPlayer(spawn cp.Vector, size float64) *Player {
	return &Player{Position: spawn, Size: size}
}

func (p *Player) Radius() float64 {
	return p.Size / 2
}

func (p *Player) Center() cp.Vector {
	r := p.Radius()
	return cp.Vector{X: p.Position.X + r, Y: p.Position.Y + r}
}

// Charge raises the charge by two levels, clamped to over-charge.
func (p *Player) Charge() {
	if p == nil {
		return
	}
	p.Level = p.Level.Raise(2)
}

// Jump spends the pending jump direction. The impulse scales with the charge
// level and is halved unless it pushes against gravity. It returns false when
// nothing was armed or the ball is uncharged.
func (p *Player) Jump(g Gravity, t Tunables) bool {
	if p == nil || !p.PendingJump.Valid() || !p.Level.Charged() {
		return false
	}
	dir := p.PendingJump
	impulse := dir.Sign() * t.JumpForce * float64(p.Level.Index())
	if !dir.Opposes(g.Direction()) {
		impulse /= 2
	}
	*dir.Axis().Component(&p.Velocity) = impulse

	p.Level = p.Level.Lower()
	p.Grounded = false
	p.PendingJump = DirNone
	return true
}

// Roll accelerates along the walk axis and applies friction. Only grounded
// balls roll. Below the dead zone the roll stops and the walk input is dropped.
func (p *Player) Roll(g Gravity, t Tunables) {
	if p == nil || !p.Grounded {
		return
	}
	v := g.WalkAxis().Component(&p.Velocity)
	*v += float64(p.WalkDir) * t.RollSpeed
	*v /= t.Friction
	if math.Abs(*v) < t.RollDeadZone {
		*v = 0
		p.WalkDir = 0
	}
}

// ApplyGravity accelerates an airborne ball along the gravity direction.
func (p *Player) ApplyGravity(g Gravity, t Tunables) {
	if p == nil || p.Grounded {
		return
	}
	*g.Axis().Component(&p.Velocity) += g.Direction().Sign() * t.Gravity
}

func (p *Player) ApplyVelocity() {
	if p == nil {
		return
	}
	p.Position = p.Position.Add(p.Velocity)
}

// ChangeGravity rotates g and drops the player's footing and walk input.
func (p *Player) ChangeGravity(g *Gravity, step int) {
	if p == nil || g == nil {
		return
	}
	g.Rotate(step)
	p.Grounded = false
	p.WalkDir = 0
}

// Touch applies the shared surface rule for a contact whose outward normal is
// away. An uncharged airborne ball lands when away opposes gravity; a charged
// ball arms a jump along away instead.
func (p *Player) Touch(away Direction, g Gravity) ContactOutcome {
	if p == nil || !away.Valid() {
		return ContactIgnored
	}
	if !p.Grounded && !p.Level.Charged() && away.Opposes(g.Direction()) {
		p.Grounded = true
		return ContactLanded
	}
	if p.Level.Charged() {
		p.PendingJump = away
		return ContactArmed
	}
	return ContactIgnored
}

// CornerBounce kicks the ball out of an obstacle corner when it is moving into
// it. It returns false if the velocity already points away on both axes.
func (p *Player) CornerBounce(site ContactSite, t Tunables) bool {
	if p == nil || !site.IsCorner() {
		return false
	}
	away := site.CornerAway()
	if p.Velocity.X*away.X >= 0 && p.Velocity.Y*away.Y >= 0 {
		return false
	}
	if p.Level.Charged() {
		push := t.JumpForce * float64(p.Level.Index()) / 2
		p.Velocity = p.Velocity.Mult(0.5).Add(away.Mult(push))
		p.Level = p.Level.Lower()
		return true
	}
	p.Velocity = away.Mult(t.CornerKick)
	return true
}

// Reset returns the ball to spawn at rest. Gravity is left as it is.
func (p *Player) Reset(spawn cp.Vector) {
	if p == nil {
		return
	}
	p.Position = spawn
	p.Velocity = cp.Vector{}
	p.Level = ChargeNeutral
}
