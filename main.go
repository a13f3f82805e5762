package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/gravityball/common"
	"github.com/milk9111/gravityball/feed"
	"github.com/milk9111/gravityball/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "show the debug overlay and log contacts and dropped feed messages")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	wsAddr := flag.String("ws", "", "serve the pop-up window feed on this address, e.g. :8080")
	scriptName := flag.String("script", "", "drive obstacles from prefabs/scripts/<name>.tengo")
	watch := flag.Bool("watch", true, "hot reload prefabs/ from disk")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	cfg, err := prefabs.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	mw, mh := ebiten.Monitor().Size()
	if mw <= 0 || mh <= 0 {
		mw, mh = common.BaseWidth, common.BaseHeight
	}
	arena := cfg.Arena.Arena(float64(mw)*0.8, float64(mh)*0.8)

	// Obstacle reports are screen pixels, so the window must stay 1:1 with the arena.
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetWindowSize(int(arena.Width), int(arena.Height))
	ebiten.SetWindowTitle("gravityball")
	ebiten.SetTPS(common.TPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := GameOptions{Config: cfg, Arena: arena, Debug: *debug, Done: ctx.Done()}

	if *scriptName != "" {
		name := *scriptName
		if filepath.Ext(name) == "" {
			name += ".tengo"
		}
		script, err := feed.LoadScriptFeed(name, nil)
		if err != nil {
			log.Fatal(err)
		}
		opts.Script = script
	}

	if *watch {
		watcher, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	game := NewGame(opts)

	if *wsAddr != "" {
		server := feed.NewServer(game.World(), nil)
		server.SetDebug(*debug)
		game.AttachServer(server)
		go func() {
			if err := server.ListenAndServe(ctx, *wsAddr); err != nil {
				log.Printf("%v", err)
			}
		}()
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
