package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/ecs/component"
	"github.com/milk9111/gravityball/ecs/system"
	"github.com/milk9111/gravityball/feed"
	"github.com/milk9111/gravityball/prefabs"
)

type GameOptions struct {
	Config *prefabs.Config
	Arena  component.Arena
	Debug  bool
	// Script is nil when no scripted feed was requested.
	Script  *feed.ScriptFeed
	Watcher *prefabs.Watcher
	// Done stops the game when closed.
	Done <-chan struct{}
}

type Game struct {
	world    *ecs.World
	input    *Input
	renderer *Renderer
	config   *prefabs.Config
	server   *feed.Server
	script   *feed.ScriptFeed
	watcher  *prefabs.Watcher
	done     <-chan struct{}
	debug    bool

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
}

func NewGame(opts GameOptions) *Game {
	world := ecs.NewWorld(opts.Arena, opts.Config.Ball.Tunables())

	var extra []ecs.System
	if opts.Script != nil {
		extra = append(extra, opts.Script)
	}
	if opts.Debug {
		extra = append(extra, system.NewContactLogSystem(nil))
	}
	system.Install(world, extra...)

	g := &Game{
		world:    world,
		renderer: NewRenderer(opts.Config),
		config:   opts.Config,
		script:   opts.Script,
		watcher:  opts.Watcher,
		done:     opts.Done,
		debug:    opts.Debug,
	}
	g.input = NewInput(g.applyAction)
	g.pauseUI = NewPauseUI(g)
	world.PublishSnapshot()
	return g
}

// World exposes the simulation to feeds started after the game.
func (g *Game) World() *ecs.World {
	return g.world
}

// AttachServer routes window actions to a running pop-up window feed.
func (g *Game) AttachServer(s *feed.Server) {
	g.server = s
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.server != nil {
		x, y := ebiten.WindowPosition()
		g.server.SetOffset(float64(x), float64(y))
	}
	g.input.Update(g.world)
	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.world.Snapshot()
	g.renderer.Draw(screen, snap)
	if g.debug {
		g.renderer.DrawDebug(screen, snap, g.status())
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.world.Arena.Width, g.world.Arena.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) arenaSize() (int, int) {
	return int(g.world.Arena.Width), int(g.world.Arena.Height)
}

// applyAction handles window-management keys from the game window.
func (g *Game) applyAction(action feed.Action) {
	switch action {
	case feed.ActionCloseAll:
		if g.script != nil {
			g.script.Close(g.world)
		}
	case feed.ActionSpawn:
		if g.server == nil {
			log.Printf("game: no window feed running; start with -ws to spawn obstacles")
			return
		}
	}
	if g.server != nil {
		g.server.Apply(action)
	}
}

func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	changed, err := g.watcher.Poll()
	if err != nil {
		log.Printf("prefabs: watch: %v", err)
	}
	for _, change := range changed {
		path := change.Path
		if change.Kind == prefabs.ChangeScript {
			g.reloadScript(path)
			continue
		}
		ok, err := g.config.Reload(path)
		if err != nil {
			log.Printf("prefabs: reload %s: %v", path, err)
			continue
		}
		if !ok {
			continue
		}
		g.world.SetTunables(g.config.Ball.Tunables())
		g.renderer.SetBall(g.config.Ball)
		log.Printf("prefabs: reloaded %s", filepath.Base(path))
	}
}

func (g *Game) reloadScript(path string) {
	if g.script == nil || filepath.Base(path) != filepath.Base(g.script.Name()) {
		return
	}
	src, err := prefabs.LoadScript(g.script.Name())
	if err != nil {
		log.Printf("feed: reload %s: %v", path, err)
		return
	}
	if err := g.script.Reload(src); err != nil {
		log.Printf("feed: reload %s: %v", path, err)
		return
	}
	log.Printf("feed: reloaded script %s", filepath.Base(path))
}

func (g *Game) status() string {
	if g.server == nil {
		return "feed: off"
	}
	return fmt.Sprintf("windows: %v", g.server.Windows())
}
