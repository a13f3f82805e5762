package ecs

import (
	"sync"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityball/ecs/component"
)

func newTestWorld() *World {
	return NewWorld(component.Arena{Width: 400, Height: 300}, component.DefaultTunables())
}

func TestNewWorldStartsAtSpawn(t *testing.T) {
	w := newTestWorld()
	if w.Player.Position != (cp.Vector{X: 183, Y: 0}) {
		t.Fatalf("unexpected spawn %v", w.Player.Position)
	}
	if w.Gravity.Direction() != component.DirDown {
		t.Fatalf("expected gravity down, got %s", w.Gravity.Direction())
	}
	if w.Player.Level != component.ChargeNeutral || w.Player.Grounded {
		t.Fatalf("unexpected initial player %+v", w.Player)
	}
}

func TestWorldRunsSystemsInOrder(t *testing.T) {
	w := newTestWorld()
	var order []string
	for _, name := range []string{"a", "b", "c"} {
		name := name
		w.AddSystem(SystemFunc(func(*World) { order = append(order, name) }))
	}
	w.AddSystem(nil)

	w.Update()
	w.Update()

	want := []string{"a", "b", "c", "a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, order)
		}
	}
	if w.Frame() != 2 {
		t.Fatalf("expected frame 2, got %d", w.Frame())
	}
}

func TestEventsClearedAfterFrame(t *testing.T) {
	w := newTestWorld()
	var seen int
	w.AddSystem(SystemFunc(func(w *World) {
		w.Events().Push(Event{Type: EventJump})
	}))
	w.AddSystem(SystemFunc(func(w *World) {
		seen = len(w.Events().Peek())
	}))

	w.Update()
	if seen != 1 {
		t.Fatalf("later systems should see the event, saw %d", seen)
	}
	if n := len(w.Events().Peek()); n != 0 {
		t.Fatalf("expected queue flushed after frame, got %d", n)
	}
}

func TestOnWalkKeyFollowsGravityAxis(t *testing.T) {
	cases := []struct {
		name    string
		gravity component.Direction
		axis    component.Axis
		dir     int
		want    int
	}{
		{"down_horizontal_key", component.DirDown, component.AxisHorizontal, 1, 1},
		{"down_vertical_key_ignored", component.DirDown, component.AxisVertical, 1, 0},
		{"left_vertical_key", component.DirLeft, component.AxisVertical, -1, -1},
		{"left_horizontal_key_ignored", component.DirLeft, component.AxisHorizontal, -1, 0},
		{"up_horizontal_key", component.DirUp, component.AxisHorizontal, -1, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := newTestWorld()
			w.Gravity = component.NewGravity(c.gravity)
			w.OnWalkKey(c.axis, c.dir, true)
			if w.Player.WalkDir != c.want {
				t.Fatalf("expected walk %d, got %d", c.want, w.Player.WalkDir)
			}
		})
	}
}

func TestOnWalkStopOnlyClearsMatchingDirection(t *testing.T) {
	w := newTestWorld()
	w.OnWalkStart(1)
	w.OnWalkStart(-1)
	w.OnWalkStop(1)
	if w.Player.WalkDir != -1 {
		t.Fatalf("releasing the old key should not stop the new walk, got %d", w.Player.WalkDir)
	}
	w.OnWalkStop(-1)
	if w.Player.WalkDir != 0 {
		t.Fatalf("expected walk cleared, got %d", w.Player.WalkDir)
	}
	w.OnWalkStart(2)
	if w.Player.WalkDir != 0 {
		t.Fatalf("out of range walk direction should be ignored")
	}
}

func TestOnGravityRotate(t *testing.T) {
	w := newTestWorld()
	w.Player.Grounded = true
	w.Player.WalkDir = 1

	w.OnGravityRotate(1)

	if w.Gravity.Direction() != component.DirLeft {
		t.Fatalf("expected gravity left, got %s", w.Gravity.Direction())
	}
	if w.Player.Grounded || w.Player.WalkDir != 0 {
		t.Fatalf("rotation should drop footing and walk input: %+v", w.Player)
	}
	events := w.Events().Peek()
	if len(events) != 1 || events[0].Type != EventGravityChanged {
		t.Fatalf("expected one gravity event, got %+v", events)
	}
	got := events[0].Data.(GravityEvent)
	if got.From != component.DirDown || got.To != component.DirLeft {
		t.Fatalf("unexpected gravity event %+v", got)
	}

	w.OnGravityRotate(0)
	if len(w.Events().Peek()) != 1 {
		t.Fatalf("zero step should be ignored")
	}
}

func TestOnResetKeepsGravity(t *testing.T) {
	w := newTestWorld()
	w.OnGravityRotate(-1)
	w.Player.Position = cp.Vector{X: 10, Y: 20}
	w.Player.Velocity = cp.Vector{X: 3, Y: 4}
	w.Player.Level = component.ChargeOver

	w.OnReset()

	if w.Player.Position != w.Arena.Spawn(w.Player.Size) || w.Player.Velocity != (cp.Vector{}) {
		t.Fatalf("expected ball at rest at spawn, got %+v", w.Player)
	}
	if w.Player.Level != component.ChargeNeutral {
		t.Fatalf("expected neutral charge, got %s", w.Player.Level)
	}
	if w.Gravity.Direction() != component.DirRight {
		t.Fatalf("reset should not touch gravity, got %s", w.Gravity.Direction())
	}
}

func TestCommandsApplyAtFrameStart(t *testing.T) {
	w := newTestWorld()
	var walkSeen int
	var levelSeen component.ChargeLevel
	w.AddSystem(SystemFunc(func(w *World) {
		walkSeen = w.Player.WalkDir
		levelSeen = w.Player.Level
	}))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		w.Commands().Push(Command{Kind: CmdWalkKeyDown, Axis: component.AxisHorizontal, Value: 1})
	}()
	go func() {
		defer wg.Done()
		w.Commands().Push(Command{Kind: CmdCharge})
	}()
	wg.Wait()

	if w.Player.WalkDir != 0 {
		t.Fatalf("commands must not apply before the frame runs")
	}
	w.Update()
	if walkSeen != 1 || levelSeen != component.ChargeFull {
		t.Fatalf("expected walk 1 and full charge, got %d %s", walkSeen, levelSeen)
	}
	if len(w.Commands().Drain()) != 0 {
		t.Fatalf("expected command queue drained")
	}
}

func TestPublishSnapshot(t *testing.T) {
	w := newTestWorld()
	idx := w.RegisterObstacle()
	w.ReportObstacle(idx, &cp.Vector{X: 1, Y: 2}, &cp.Vector{X: 3, Y: 4})
	hidden := w.RegisterObstacle()
	w.ReportObstacle(hidden, &cp.Vector{X: 5, Y: 6}, nil)
	w.Player.Level = component.ChargeHalf

	w.PublishSnapshot()
	snap := w.Snapshot()

	if snap.Position != w.Player.Position || snap.Size != 34 || snap.Level != component.ChargeHalf {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if len(snap.Obstacles) != 1 || snap.Obstacles[0].Index != idx {
		t.Fatalf("expected only the known obstacle, got %+v", snap.Obstacles)
	}

	w.Player.Position = cp.Vector{X: 99, Y: 99}
	if w.Snapshot().Position == w.Player.Position {
		t.Fatalf("snapshot must not track live state until republished")
	}
}

func TestSetTunablesKeepsBallSize(t *testing.T) {
	w := newTestWorld()
	next := component.DefaultTunables()
	next.Size = 80
	next.JumpForce = 14
	w.SetTunables(next)
	if w.Tunables.Size != 34 || w.Tunables.JumpForce != 14 {
		t.Fatalf("unexpected tunables %+v", w.Tunables)
	}
}
