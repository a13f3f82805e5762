package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/gravityball/common"
	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/prefabs"
	"golang.org/x/image/colornames"
)

// Renderer draws a RenderSnapshot. Ball sprites are rebuilt whenever the ball
// spec changes.
type Renderer struct {
	balls      [4]*ebiten.Image
	ballSize   float64
	background color.Color
	fill       color.Color
	outline    color.Color
}

func NewRenderer(cfg *prefabs.Config) *Renderer {
	r := &Renderer{
		background: colornames.White,
		fill:       color.NRGBA{R: 0xe0, G: 0xe0, B: 0xe0, A: 0xc0},
		outline:    colornames.Dimgray,
	}
	if cfg != nil && cfg.Arena != nil {
		r.background = cfg.Arena.Background.Or(r.background)
		r.fill = cfg.Arena.Obstacle.Fill.Or(r.fill)
		r.outline = cfg.Arena.Obstacle.Outline.Or(r.outline)
	}
	if cfg != nil {
		r.SetBall(cfg.Ball)
	}
	return r
}

// SetBall redraws one sprite per charge level.
func (r *Renderer) SetBall(spec *prefabs.BallSpec) {
	if r == nil {
		return
	}
	size := spec.Tunables().Size
	colors := spec.ChargeColors()
	px := int(math.Ceil(size))
	for i, c := range colors {
		if r.balls[i] != nil {
			r.balls[i].Deallocate()
		}
		img := ebiten.NewImage(px, px)
		radius := float32(size / 2)
		vector.FillCircle(img, radius, radius, radius, c, true)
		r.balls[i] = img
	}
	r.ballSize = size
}

func (r *Renderer) Draw(screen *ebiten.Image, snap ecs.RenderSnapshot) {
	if r == nil || screen == nil {
		return
	}
	screen.Fill(r.background)

	for _, o := range snap.Obstacles {
		if !o.Known() {
			continue
		}
		x, y := float32(o.Position.X), float32(o.Position.Y)
		w, h := float32(o.Size.X), float32(o.Size.Y)
		vector.FillRect(screen, x, y, w, h, r.fill, false)
		vector.StrokeRect(screen, x, y, w, h, 1, r.outline, false)
	}

	idx := snap.Level.Index()
	if idx < 0 || idx >= len(r.balls) || r.balls[idx] == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	if r.ballSize > 0 && snap.Size != r.ballSize {
		op.GeoM.Scale(snap.Size/r.ballSize, snap.Size/r.ballSize)
	}
	op.GeoM.Translate(snap.Position.X, snap.Position.Y)
	screen.DrawImage(r.balls[idx], op)
}

// DrawDebug overlays the gravity arrow and a status line.
func (r *Renderer) DrawDebug(screen *ebiten.Image, snap ecs.RenderSnapshot, status string) {
	if r == nil || screen == nil {
		return
	}
	radius := snap.Size / 2
	cx, cy := snap.Position.X+radius, snap.Position.Y+radius
	g := snap.Gravity.Vector()
	length := common.Clamp(snap.Velocity.Length()*3, radius, snap.Size*1.5)
	vector.StrokeLine(screen, float32(cx), float32(cy), float32(cx+g.X*length), float32(cy+g.Y*length), 2, colornames.Royalblue, true)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.1f  frame: %d\ngravity: %s  charge: %s  grounded: %v\npos: (%.1f, %.1f)  vel: (%.2f, %.2f)\nobstacles: %d\n%s",
		ebiten.ActualFPS(), snap.Frame,
		snap.Gravity, snap.Level, snap.Grounded,
		snap.Position.X, snap.Position.Y, snap.Velocity.X, snap.Velocity.Y,
		len(snap.Obstacles), status,
	))
}
