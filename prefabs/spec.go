package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/gravityball/common"
	"github.com/milk9111/gravityball/ecs/component"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// BallSpec is ball.yaml: the physics constants and the charge colors.
type BallSpec struct {
	Name         string      `yaml:"name"`
	Size         float64     `yaml:"size"`
	JumpForce    float64     `yaml:"jump_force"`
	Gravity      float64     `yaml:"gravity"`
	RollSpeed    float64     `yaml:"roll_speed"`
	Friction     float64     `yaml:"friction"`
	RollDeadZone float64     `yaml:"roll_dead_zone"`
	CornerKick   float64     `yaml:"corner_kick"`
	EdgeNudge    float64     `yaml:"edge_nudge"`
	Colors       []YAMLColor `yaml:"colors"`
}

func LoadBallSpec() (*BallSpec, error) {
	spec, err := LoadSpec[BallSpec]("ball.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: ball.yaml: %w", err)
	}
	return &spec, nil
}

// Validate rejects values the simulation cannot run with. Zero fields fall
// back to defaults in Tunables and are not errors.
func (s *BallSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("nil ball spec")
	}
	if s.Size < 0 {
		return fmt.Errorf("size must be positive, got %v", s.Size)
	}
	if s.Friction != 0 && s.Friction <= 1 {
		return fmt.Errorf("friction must be greater than 1, got %v", s.Friction)
	}
	if s.RollDeadZone < 0 || s.Gravity < 0 || s.JumpForce < 0 {
		return fmt.Errorf("jump_force, gravity and roll_dead_zone must not be negative")
	}
	if n := len(s.Colors); n != 0 && n != 4 {
		return fmt.Errorf("colors needs one entry per charge level, got %d", n)
	}
	return nil
}

// Tunables converts the spec, filling unset fields from the defaults.
func (s *BallSpec) Tunables() component.Tunables {
	t := component.DefaultTunables()
	if s == nil {
		return t
	}
	setIf(&t.Size, s.Size)
	setIf(&t.JumpForce, s.JumpForce)
	setIf(&t.Gravity, s.Gravity)
	setIf(&t.RollSpeed, s.RollSpeed)
	setIf(&t.Friction, s.Friction)
	setIf(&t.RollDeadZone, s.RollDeadZone)
	setIf(&t.CornerKick, s.CornerKick)
	setIf(&t.EdgeNudge, s.EdgeNudge)
	return t
}

// ChargeColors returns the fill color for each charge level, Neutral first.
func (s *BallSpec) ChargeColors() [4]color.Color {
	out := [4]color.Color{colornames.Black, colornames.Darkred, colornames.Red, color.NRGBA{R: 255, G: 60, B: 60, A: 255}}
	if s == nil || len(s.Colors) != len(out) {
		return out
	}
	for i, c := range s.Colors {
		if c.Color != nil {
			out[i] = c.Color
		}
	}
	return out
}

// ArenaSpec is arena.yaml. Width 0 sizes the arena from the monitor.
type ArenaSpec struct {
	Name      string  `yaml:"name"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	AspectX   float64 `yaml:"aspect_x"`
	AspectY   float64 `yaml:"aspect_y"`
	SpawnEdge string  `yaml:"spawn_edge"`
	Obstacle  struct {
		Fill    YAMLColor `yaml:"fill"`
		Outline YAMLColor `yaml:"outline"`
	} `yaml:"obstacle"`
	Background YAMLColor `yaml:"background"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	if _, err := spec.spawnEdge(); err != nil {
		return nil, fmt.Errorf("prefabs: arena.yaml: %w", err)
	}
	return &spec, nil
}

// Arena resolves the arena for a window of outsideW by outsideH pixels. The
// largest rectangle with the configured aspect ratio that fits is used when the
// spec does not fix a size.
func (s *ArenaSpec) Arena(outsideW, outsideH float64) component.Arena {
	edge, _ := s.spawnEdge()
	if s != nil && s.Width > 0 && s.Height > 0 {
		return component.Arena{Width: s.Width, Height: s.Height, SpawnEdge: edge}
	}
	ax, ay := float64(common.AspectX), float64(common.AspectY)
	if s != nil && s.AspectX > 0 && s.AspectY > 0 {
		ax, ay = s.AspectX, s.AspectY
	}
	w, h := FitAspect(outsideW, outsideH, ax/ay)
	return component.Arena{Width: w, Height: h, SpawnEdge: edge}
}

// FitAspect returns the largest width/height with the given ratio that fits
// inside outsideW by outsideH.
func FitAspect(outsideW, outsideH, ratio float64) (float64, float64) {
	if ratio <= 0 || outsideW <= 0 || outsideH <= 0 {
		return outsideW, outsideH
	}
	w := outsideH * ratio
	if w <= outsideW {
		return w, outsideH
	}
	return outsideW, outsideW / ratio
}

func (s *ArenaSpec) spawnEdge() (component.Direction, error) {
	if s == nil {
		return component.DirNone, nil
	}
	switch strings.ToLower(s.SpawnEdge) {
	case "", "top":
		return component.DirNone, nil
	case "bottom", "floor":
		return component.DirDown, nil
	}
	return component.DirNone, fmt.Errorf("unknown spawn_edge %q", s.SpawnEdge)
}

func setIf(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c, or fallback when c was never set.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
