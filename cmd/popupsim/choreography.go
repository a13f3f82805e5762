package main

import (
	"fmt"
	"os"
	"time"

	"github.com/milk9111/gravityball/feed"
	"gopkg.in/yaml.v3"
)

// Choreography scripts a set of pretend pop-up windows.
type Choreography struct {
	URL    string `yaml:"url"`
	TickMS int    `yaml:"tick_ms"`
	// Screen bounds the windows bounce inside, in screen pixels.
	Screen struct {
		W float64 `yaml:"w"`
		H float64 `yaml:"h"`
	} `yaml:"screen"`
	// Spawn is the rectangle used for windows the game asks for with "c".
	Spawn   WindowSpec  `yaml:"spawn"`
	Windows []WindowSpec `yaml:"windows"`
	Keys    []KeySpec    `yaml:"keys"`
}

// WindowSpec is one window's starting rectangle and drift per tick.
type WindowSpec struct {
	Name string  `yaml:"name"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	W    float64 `yaml:"w"`
	H    float64 `yaml:"h"`
	DX   float64 `yaml:"dx"`
	DY   float64 `yaml:"dy"`
	// Ticks closes the window after this many ticks; 0 keeps it open.
	Ticks int `yaml:"ticks"`
}

// KeySpec relays one key event from the first window at a given tick.
type KeySpec struct {
	At   int    `yaml:"at"`
	Kind string `yaml:"kind"`
	Key  string `yaml:"key"`
}

func LoadChoreography(path string) (*Choreography, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("popupsim: read %s: %w", path, err)
	}
	return ParseChoreography(data)
}

func ParseChoreography(data []byte) (*Choreography, error) {
	var c Choreography
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("popupsim: unmarshal: %w", err)
	}
	if c.URL == "" {
		c.URL = "ws://localhost:8080/ws"
	}
	if c.TickMS <= 0 {
		c.TickMS = 16
	}
	if c.Spawn.W <= 0 || c.Spawn.H <= 0 {
		c.Spawn.W, c.Spawn.H = 200, 150
	}
	for i, w := range c.Windows {
		if w.W <= 0 || w.H <= 0 {
			return nil, fmt.Errorf("popupsim: window %d (%s) needs a positive size", i, w.Name)
		}
	}
	for i, k := range c.Keys {
		switch feed.KeyKind(k.Kind) {
		case feed.KeyDown, feed.KeyUp, feed.KeyPress:
		default:
			return nil, fmt.Errorf("popupsim: key %d: unknown kind %q", i, k.Kind)
		}
	}
	return &c, nil
}

func (c *Choreography) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// Step advances a window by one tick, bouncing off the screen bounds. A zero
// screen size means unbounded.
func (c *Choreography) Step(w *WindowSpec) {
	w.X += w.DX
	w.Y += w.DY
	if c.Screen.W > 0 {
		if w.X < 0 {
			w.X, w.DX = 0, -w.DX
		} else if w.X+w.W > c.Screen.W {
			w.X, w.DX = c.Screen.W-w.W, -w.DX
		}
	}
	if c.Screen.H > 0 {
		if w.Y < 0 {
			w.Y, w.DY = 0, -w.DY
		} else if w.Y+w.H > c.Screen.H {
			w.Y, w.DY = c.Screen.H-w.H, -w.DY
		}
	}
}

// KeysAt returns the key events scheduled for tick.
func (c *Choreography) KeysAt(tick int) []KeySpec {
	var out []KeySpec
	for _, k := range c.Keys {
		if k.At == tick {
			out = append(out, k)
		}
	}
	return out
}
