// popupsim stands in for the browser pop-up windows: every scripted window
// dials the game's feed socket and reports a drifting rectangle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/milk9111/gravityball/feed"
	"github.com/ttacon/chalk"
)

func main() {
	path := flag.String("f", "cmd/popupsim/windows.yaml", "choreography file")
	url := flag.String("url", "", "feed socket, overrides the file")
	flag.Parse()

	c, err := LoadChoreography(*path)
	if err != nil {
		log.Fatal(err)
	}
	if *url != "" {
		c.URL = *url
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sim := &Sim{c: c}
	for i := range c.Windows {
		sim.Open(ctx, c.Windows[i], i == 0, nil)
	}
	sim.wg.Wait()
	log.Println(chalk.Green.Color("popupsim: all windows closed"))
}

type Sim struct {
	c  *Choreography
	wg sync.WaitGroup
}

// Open starts one window. The keyboard window also relays the scripted keys.
// claim asks for an index the game already registered for a spawn.
func (s *Sim) Open(ctx context.Context, spec WindowSpec, keyboard bool, claim *int) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.c.URL, nil)
	if err != nil {
		log.Println(chalk.Red.Color("popupsim: dial " + s.c.URL + ": " + err.Error()))
		return
	}
	w := &window{sim: s, conn: conn, spec: spec, keyboard: keyboard, index: -1, claim: claim}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		w.run(ctx)
	}()
}

type window struct {
	sim      *Sim
	conn     *websocket.Conn
	spec     WindowSpec
	keyboard bool
	index    int
	claim    *int
}

func (w *window) run(ctx context.Context) {
	defer w.conn.Close()

	incoming := make(chan feed.Message)
	done := make(chan struct{})
	defer close(done)
	go w.readLoop(incoming, done)

	if err := w.conn.WriteJSON(feed.Message{Type: feed.MsgHello, Index: w.claim}); err != nil {
		log.Printf("popupsim: %s hello: %v", w.spec.Name, err)
		return
	}

	ticker := time.NewTicker(w.sim.c.Tick())
	defer ticker.Stop()

	tick := 0
	for {
		select {
		case <-ctx.Done():
			w.deregister()
			return
		case msg, ok := <-incoming:
			if !ok {
				return
			}
			if !w.handle(ctx, msg) {
				return
			}
		case <-ticker.C:
			tick++
			if w.index < 0 {
				continue
			}
			w.sim.c.Step(&w.spec)
			if err := w.report(); err != nil {
				log.Printf("popupsim: %s: %v", w.spec.Name, err)
				return
			}
			if w.keyboard {
				for _, k := range w.sim.c.KeysAt(tick) {
					_ = w.conn.WriteJSON(feed.Message{Type: k.Kind, Key: k.Key})
				}
			}
			if w.spec.Ticks > 0 && tick >= w.spec.Ticks {
				w.deregister()
				return
			}
		}
	}
}

// handle reacts to a server message and reports whether the window stays open.
func (w *window) handle(ctx context.Context, msg feed.Message) bool {
	switch msg.Type {
	case feed.MsgSet:
		if msg.Index != nil {
			w.index = *msg.Index
			log.Println(chalk.Blue.Color("popupsim: " + w.spec.Name + " registered"))
		}
		return w.report() == nil
	case feed.MsgPosition:
		return w.report() == nil
	case feed.MsgFocus:
		log.Println(chalk.Yellow.Color("popupsim: " + w.spec.Name + " focused"))
	case feed.MsgSpawn:
		if w.keyboard {
			spec := w.sim.c.Spawn
			if spec.Name == "" {
				spec.Name = "spawned"
			}
			w.sim.Open(ctx, spec, false, msg.Index)
		}
	case feed.MsgClose:
		log.Println(chalk.Magenta.Color("popupsim: " + w.spec.Name + " closed by game"))
		return false
	}
	return true
}

func (w *window) report() error {
	if w.index < 0 {
		return nil
	}
	return w.conn.WriteJSON(feed.PositionMessage(w.index, w.spec.X, w.spec.Y, w.spec.W, w.spec.H))
}

func (w *window) deregister() {
	if w.index < 0 {
		return
	}
	_ = w.conn.WriteJSON(feed.IndexMessage(feed.MsgDeregister, w.index))
}

func (w *window) readLoop(out chan<- feed.Message, done <-chan struct{}) {
	defer close(out)
	for {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := feed.Decode(data)
		if err != nil {
			log.Printf("popupsim: %s: %v", w.spec.Name, err)
			continue
		}
		select {
		case out <- msg:
		case <-done:
			return
		}
	}
}
