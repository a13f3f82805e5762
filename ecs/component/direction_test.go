package component

import "testing"

func TestRotateFullTurn(t *testing.T) {
	for _, start := range []Direction{DirRight, DirDown, DirLeft, DirUp} {
		for _, step := range []int{1, -1} {
			g := NewGravity(start)
			for i := 0; i < 4; i++ {
				g.Rotate(step)
			}
			if g.Direction() != start {
				t.Fatalf("start=%s step=%d: expected to return to start, got %s", start, step, g.Direction())
			}
		}
	}
}

func TestRotateRing(t *testing.T) {
	ring := []Direction{DirRight, DirDown, DirLeft, DirUp}
	for i, d := range ring {
		next := ring[(i+1)%len(ring)]
		prev := ring[(i+len(ring)-1)%len(ring)]
		if got := d.Rotate(1); got != next {
			t.Fatalf("%s +1: expected %s, got %s", d, next, got)
		}
		if got := d.Rotate(-1); got != prev {
			t.Fatalf("%s -1: expected %s, got %s", d, prev, got)
		}
	}
	if DirNone.Rotate(1) != DirNone {
		t.Fatalf("rotating none should stay none")
	}
}

func TestOpposes(t *testing.T) {
	cases := []struct {
		a, b Direction
		want bool
	}{
		{DirUp, DirDown, true},
		{DirLeft, DirRight, true},
		{DirUp, DirUp, false},
		{DirUp, DirLeft, false},
		{DirNone, DirNone, false},
	}
	for _, c := range cases {
		if got := c.a.Opposes(c.b); got != c.want {
			t.Fatalf("%s opposes %s: expected %v, got %v", c.a, c.b, c.want, got)
		}
	}
}

func TestGravityAxes(t *testing.T) {
	cases := []struct {
		dir      Direction
		axis     Axis
		walk     Axis
		positive bool
	}{
		{DirDown, AxisVertical, AxisHorizontal, true},
		{DirUp, AxisVertical, AxisHorizontal, false},
		{DirRight, AxisHorizontal, AxisVertical, true},
		{DirLeft, AxisHorizontal, AxisVertical, false},
	}
	for _, c := range cases {
		g := NewGravity(c.dir)
		if g.Axis() != c.axis || g.WalkAxis() != c.walk || g.IsPositive() != c.positive {
			t.Fatalf("%s: got axis=%s walk=%s positive=%v", c.dir, g.Axis(), g.WalkAxis(), g.IsPositive())
		}
	}
}

func TestDirectionOfRoundTrip(t *testing.T) {
	for _, d := range []Direction{DirRight, DirDown, DirLeft, DirUp} {
		if got := DirectionOf(d.Axis(), d.IsPositive()); got != d {
			t.Fatalf("expected %s, got %s", d, got)
		}
		v := d.Vector()
		if *d.Axis().Component(&v) != d.Sign() {
			t.Fatalf("%s: unit vector %v does not match sign", d, v)
		}
	}
}
