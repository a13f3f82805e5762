package prefabs

import (
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/gravityball/ecs/component"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func TestShippedBallMatchesDefaults(t *testing.T) {
	spec, err := LoadBallSpec()
	if err != nil {
		t.Fatalf("load ball: %v", err)
	}
	if got := spec.Tunables(); got != component.DefaultTunables() {
		t.Fatalf("ball.yaml drifted from defaults: %+v", got)
	}
	colors := spec.ChargeColors()
	if colors[0] != colornames.Black || colors[2] != colornames.Red {
		t.Fatalf("unexpected charge colors %v", colors)
	}
}

func TestShippedArena(t *testing.T) {
	spec, err := LoadArenaSpec()
	if err != nil {
		t.Fatalf("load arena: %v", err)
	}
	a := spec.Arena(1000, 600)
	if a.Width != 800 || a.Height != 600 || a.SpawnEdge != component.DirNone {
		t.Fatalf("unexpected arena %+v", a)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	changed, err := cfg.Reload("prefabs/arena.yaml")
	if err != nil || changed {
		t.Fatalf("arena changes should be ignored, got %v %v", changed, err)
	}
	changed, err = cfg.Reload("/tmp/prefabs/ball.yaml")
	if err != nil || !changed {
		t.Fatalf("ball reload should report a change, got %v %v", changed, err)
	}
}

func TestFitAspect(t *testing.T) {
	cases := []struct {
		name         string
		w, h, ratio  float64
		wantW, wantH float64
	}{
		{"wide_window", 1920, 1080, 4.0 / 3, 1440, 1080},
		{"tall_window", 800, 1000, 4.0 / 3, 800, 600},
		{"exact", 400, 300, 4.0 / 3, 400, 300},
		{"bad_ratio", 500, 500, 0, 500, 500},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h := FitAspect(c.w, c.h, c.ratio)
			if math.Abs(w-c.wantW) > 1e-9 || math.Abs(h-c.wantH) > 1e-9 {
				t.Fatalf("expected %vx%v, got %vx%v", c.wantW, c.wantH, w, h)
			}
		})
	}
}

func TestBallSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{"empty_uses_defaults", ``, false},
		{"friction_one", "friction: 1", true},
		{"negative_size", "size: -4", true},
		{"negative_gravity", "gravity: -1", true},
		{"three_colors", "colors: [black, red, white]", true},
		{"ok", "friction: 1.5\nsize: 20", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec BallSpec
			if err := yaml.Unmarshal([]byte(c.doc), &spec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			err := spec.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("expected error=%v, got %v", c.wantErr, err)
			}
		})
	}
}

func TestBallSpecTunablesOverride(t *testing.T) {
	spec := BallSpec{Size: 20, Friction: 1.5}
	got := spec.Tunables()
	want := component.DefaultTunables()
	want.Size = 20
	want.Friction = 1.5
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestArenaSpec(t *testing.T) {
	cases := []struct {
		name     string
		doc      string
		outW     float64
		outH     float64
		want     component.Arena
		wantLoad bool
	}{
		{"fixed_size", "width: 640\nheight: 480", 1920, 1080, component.Arena{Width: 640, Height: 480}, true},
		{"square_aspect", "aspect_x: 1\naspect_y: 1", 1000, 600, component.Arena{Width: 600, Height: 600}, true},
		{"floor_spawn", "spawn_edge: bottom", 400, 300, component.Arena{Width: 400, Height: 300, SpawnEdge: component.DirDown}, true},
		{"bad_spawn", "spawn_edge: left", 400, 300, component.Arena{}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var spec ArenaSpec
			if err := yaml.Unmarshal([]byte(c.doc), &spec); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if _, err := spec.spawnEdge(); (err == nil) != c.wantLoad {
				t.Fatalf("unexpected spawn edge error %v", err)
			}
			if !c.wantLoad {
				return
			}
			if got := spec.Arena(c.outW, c.outH); got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, got)
			}
		})
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		want    color.Color
		wantErr bool
	}{
		{"hex", `c: "#102030"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, false},
		{"hex_alpha", `c: "#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"name", `c: DarkRed`, colornames.Darkred, false},
		{"short", `c: "#fff"`, nil, true},
		{"list", `c: [1, 2]`, nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var doc struct {
				C YAMLColor `yaml:"c"`
			}
			err := yaml.Unmarshal([]byte(c.doc), &doc)
			if (err != nil) != c.wantErr {
				t.Fatalf("expected error=%v, got %v", c.wantErr, err)
			}
			if !c.wantErr && doc.C.Color != c.want {
				t.Fatalf("expected %v, got %v", c.want, doc.C.Color)
			}
		})
	}
}

func TestYAMLColorOr(t *testing.T) {
	var unset YAMLColor
	if unset.Or(colornames.White) != colornames.White {
		t.Fatalf("unset color should fall back")
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"drift":                      "scripts/drift.tengo",
		"drift.tengo":                "scripts/drift.tengo",
		"scripts/drift.tengo":        "scripts/drift.tengo",
		"prefabs/scripts/drift.tengo": "scripts/drift.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}
