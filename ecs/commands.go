package ecs

import (
	"sync"

	"github.com/milk9111/gravityball/ecs/component"
)

type CommandKind uint8

const (
	CmdWalkKeyDown CommandKind = iota + 1
	CmdWalkKeyUp
	CmdCharge
	CmdGravityRotate
	CmdReset
)

// Command is an input mutation queued from outside the frame goroutine.
type Command struct {
	Kind  CommandKind
	Axis  component.Axis
	Value int
}

// CommandQueue is safe for concurrent producers. The world drains it at the
// start of each frame.
type CommandQueue struct {
	mu    sync.Mutex
	items []Command
}

func (q *CommandQueue) Push(cmd Command) {
	if q == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, cmd)
	q.mu.Unlock()
}

func (q *CommandQueue) Drain() []Command {
	if q == nil {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}
