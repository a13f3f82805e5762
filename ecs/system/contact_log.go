package system

import (
	"log"

	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/ecs/component"
)

// ContactLogSystem prints the frame's events. Used with -debug.
type ContactLogSystem struct {
	logger *log.Logger
}

// NewContactLogSystem logs through logger, or the standard logger when nil.
func NewContactLogSystem(logger *log.Logger) *ContactLogSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &ContactLogSystem{logger: logger}
}

func (s *ContactLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		switch data := evt.Data.(type) {
		case ecs.CollisionEvent:
			if data.Obstacle < 0 {
				s.logger.Printf("collision: frame=%d arena edge away=%s outcome=%s", w.Frame(), data.Away, outcomeName(data.Outcome))
				continue
			}
			s.logger.Printf("collision: frame=%d obstacle=%d site=%s outcome=%s", w.Frame(), data.Obstacle, data.Site, outcomeName(data.Outcome))
		case ecs.JumpEvent:
			s.logger.Printf("jump: frame=%d dir=%s from=%s", w.Frame(), data.Direction, data.Level)
		case ecs.GravityEvent:
			s.logger.Printf("gravity: frame=%d %s -> %s", w.Frame(), data.From, data.To)
		default:
			s.logger.Printf("%s: frame=%d", evt.Type, w.Frame())
		}
	}
}

func outcomeName(o component.ContactOutcome) string {
	switch o {
	case component.ContactLanded:
		return "landed"
	case component.ContactArmed:
		return "armed"
	}
	return "none"
}
