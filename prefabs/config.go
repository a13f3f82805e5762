package prefabs

import (
	"fmt"
	"path/filepath"
)

// Config is everything the game reads from the prefabs directory.
type Config struct {
	Ball  *BallSpec
	Arena *ArenaSpec
}

// LoadConfig reads ball.yaml and arena.yaml.
func LoadConfig() (*Config, error) {
	ball, err := LoadBallSpec()
	if err != nil {
		return nil, err
	}
	arena, err := LoadArenaSpec()
	if err != nil {
		return nil, err
	}
	return &Config{Ball: ball, Arena: arena}, nil
}

// Reload re-reads the file named by a watcher event. Only ball.yaml can change
// while running; the arena is fixed for the session. It reports whether the
// ball spec changed.
func (c *Config) Reload(path string) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("prefabs: reload on nil config")
	}
	switch filepath.Base(path) {
	case "ball.yaml":
		ball, err := LoadBallSpec()
		if err != nil {
			return false, err
		}
		c.Ball = ball
		return true, nil
	}
	return false, nil
}
