package ecs

import "github.com/milk9111/gravityball/ecs/component"

// Event is a frame event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventCollision      = "collision"
	EventJump           = "jump"
	EventGravityChanged = "gravity"
	EventReset          = "reset"
)

// CollisionEvent is emitted for every surface contact resolved in a frame.
// Obstacle is -1 for arena edges.
type CollisionEvent struct {
	Obstacle int
	Site     component.ContactSite
	Away     component.Direction
	Outcome  component.ContactOutcome
}

// JumpEvent is emitted when a pending jump fires.
type JumpEvent struct {
	Direction component.Direction
	Level     component.ChargeLevel
}

// GravityEvent is emitted when gravity rotates.
type GravityEvent struct {
	From component.Direction
	To   component.Direction
}

// EventQueue is a simple FIFO queue, cleared at the end of every frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns the queued events without clearing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
