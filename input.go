package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/feed"
)

type keyBinding struct {
	key  ebiten.Key
	name string
}

// Keys are reported by the same names pop-up windows relay, so both go
// through feed.Translate.
var keyBindings = []keyBinding{
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyArrowLeft, "a"},
	{ebiten.KeyArrowRight, "d"},
	{ebiten.KeyArrowUp, "w"},
	{ebiten.KeyArrowDown, "s"},
	{ebiten.KeySpace, " "},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyE, "e"},
	{ebiten.KeyR, "r"},
	{ebiten.KeyBackspace, "r"},
	{ebiten.KeyC, "c"},
	{ebiten.KeyX, "x"},
}

type Input struct {
	onAction func(feed.Action)
}

func NewInput(onAction func(feed.Action)) *Input {
	return &Input{onAction: onAction}
}

// Update queues this tick's key events on the world. The world applies them
// at the start of its next step, which the game runs right after.
func (in *Input) Update(w *ecs.World) {
	if in == nil || w == nil {
		return
	}
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			in.relay(w, feed.KeyDown, b.name)
			in.relay(w, feed.KeyPress, b.name)
		}
		if inpututil.IsKeyJustReleased(b.key) {
			in.relay(w, feed.KeyUp, b.name)
		}
	}
}

func (in *Input) relay(w *ecs.World, kind feed.KeyKind, key string) {
	cmds, action := feed.Translate(kind, key)
	for _, cmd := range cmds {
		w.Commands().Push(cmd)
	}
	if action != feed.ActionNone && in.onAction != nil {
		in.onAction(action)
	}
}
