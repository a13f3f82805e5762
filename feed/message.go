package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var (
	// ErrUnknownMessage is returned for a message type the server does not handle.
	ErrUnknownMessage = errors.New("feed: unknown message")
	// ErrMalformed is returned for a known message with missing or invalid fields.
	ErrMalformed = errors.New("feed: malformed message")
)

// Message types. Pop-up windows send hello, position, deregister, reset and
// the key events; the server sends set, position, spawn, focus and close.
const (
	MsgHello      = "hello"
	MsgSet        = "set"
	MsgPosition   = "position"
	MsgDeregister = "deregister"
	MsgReset      = "reset"
	MsgSpawn      = "spawn"
	MsgFocus      = "focus"
	MsgClose      = "close"
)

// Message is one JSON text frame on the feed socket. Position and size are
// screen coordinates as the window reports them.
type Message struct {
	Type  string   `json:"type"`
	Index *int     `json:"index,omitempty"`
	X     *float64 `json:"x,omitempty"`
	Y     *float64 `json:"y,omitempty"`
	W     *float64 `json:"w,omitempty"`
	H     *float64 `json:"h,omitempty"`
	Key   string   `json:"key,omitempty"`
}

// IndexMessage builds a server message addressed to obstacle index.
func IndexMessage(typ string, index int) Message {
	return Message{Type: typ, Index: &index}
}

// PositionMessage builds the report a window sends for its rectangle.
func PositionMessage(index int, x, y, w, h float64) Message {
	return Message{Type: MsgPosition, Index: &index, X: &x, Y: &y, W: &w, H: &h}
}

// Decode parses a frame. Unknown types decode fine and are rejected by the
// server, so clients can be newer than the game.
func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	return msg, nil
}

// Rect returns the reported rectangle.
func (m Message) Rect() (pos, size cp.Vector, err error) {
	if m.X == nil || m.Y == nil || m.W == nil || m.H == nil {
		return cp.Vector{}, cp.Vector{}, fmt.Errorf("%w: position needs x, y, w and h", ErrMalformed)
	}
	if *m.W < 0 || *m.H < 0 {
		return cp.Vector{}, cp.Vector{}, fmt.Errorf("%w: negative size %vx%v", ErrMalformed, *m.W, *m.H)
	}
	return cp.Vector{X: *m.X, Y: *m.Y}, cp.Vector{X: *m.W, Y: *m.H}, nil
}
