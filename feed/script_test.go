package feed

import (
	"io"
	"log"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/ecs/component"
	"github.com/milk9111/gravityball/prefabs"
)

var quietLogger = log.New(io.Discard, "", 0)

func newScriptWorld() *ecs.World {
	return ecs.NewWorld(component.Arena{Width: 400, Height: 300}, component.DefaultTunables())
}

func TestScriptFeedMovesObstacles(t *testing.T) {
	src := []byte(`
update := func(engine, state, frame) {
	if state.id == undefined {
		state.id = engine.spawn()
	}
	size := engine.arena()
	engine.move(state.id, frame * 10, size[1] - 40, 50, 20)
}
`)
	f, err := NewScriptFeed("inline", src, quietLogger)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	w := newScriptWorld()
	w.AddSystem(f)

	w.Update()
	w.Update()

	if w.Obstacles.Len() != 1 {
		t.Fatalf("expected one obstacle spawned once, got %d", w.Obstacles.Len())
	}
	o, ok := w.Obstacles.Get(0)
	if !ok || !o.Known() {
		t.Fatalf("expected obstacle 0 known")
	}
	if *o.Position != (cp.Vector{X: 20, Y: 260}) || *o.Size != (cp.Vector{X: 50, Y: 20}) {
		t.Fatalf("unexpected obstacle %v %v", *o.Position, *o.Size)
	}

	f.Close(w)
	if len(w.Obstacles.Live()) != 0 {
		t.Fatalf("close should remove spawned obstacles")
	}
}

func TestScriptFeedIgnoresForeignIndex(t *testing.T) {
	w := newScriptWorld()
	foreign := w.RegisterObstacle()
	src := []byte(`
update := func(engine, state, frame) {
	state.moved = engine.move(0, 1, 2, 3, 4)
	state.removed = engine.remove(0)
}
`)
	f, err := NewScriptFeed("inline", src, quietLogger)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	f.Update(w)
	if o, ok := w.Obstacles.Get(foreign); !ok || o.Known() {
		t.Fatalf("script must not touch obstacles it did not spawn")
	}
}

func TestScriptFeedStopsOnRuntimeError(t *testing.T) {
	src := []byte(`
update := func(engine, state, frame) {
	engine.move(engine.spawn(), "left", 0, 1, 1)
}
`)
	f, err := NewScriptFeed("broken", src, quietLogger)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	w := newScriptWorld()
	f.Update(w)
	f.Update(w)
	if w.Obstacles.Len() != 1 {
		t.Fatalf("expected the feed to stop after the first error, registry len %d", w.Obstacles.Len())
	}

	if err := f.Reload([]byte(`update := func(engine, state, frame) {}`)); err != nil {
		t.Fatalf("reload: %v", err)
	}
	f.Update(w)
	if f.failed {
		t.Fatalf("reload should clear the failure")
	}
}

func TestScriptFeedCompileError(t *testing.T) {
	if _, err := NewScriptFeed("bad", []byte(`update := func(`), quietLogger); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := NewScriptFeed("missing", []byte(`x := 1`), quietLogger); err == nil {
		t.Fatalf("expected compile error for a script without update")
	}
}

func TestShippedScriptsCompile(t *testing.T) {
	names := prefabs.Scripts()
	if len(names) == 0 {
		t.Fatalf("expected embedded scripts")
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			f, err := LoadScriptFeed(name, quietLogger)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			w := newScriptWorld()
			for i := 0; i < 3; i++ {
				f.Update(w)
			}
			if f.failed {
				t.Fatalf("script failed at runtime")
			}
			if len(w.Obstacles.Live()) == 0 {
				t.Fatalf("script spawned nothing")
			}
		})
	}
}
