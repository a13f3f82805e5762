package feed

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/gravityball/ecs"
	"github.com/milk9111/gravityball/prefabs"
)

// A feed script defines update(engine, state, frame). It runs once per frame
// on the frame goroutine; state is a map that survives between calls.
const scriptDispatch = `
update(__engine, __state, __frame)
`

// ScriptFeed drives obstacles from a tengo script. It is an ecs.System, so it
// mutates the world directly.
type ScriptFeed struct {
	name     string
	compiled *tengo.Compiled
	state    *tengo.Map
	owned    map[int]struct{}
	logger   *log.Logger
	failed   bool
}

// LoadScriptFeed compiles a script from prefabs/scripts.
func LoadScriptFeed(name string, logger *log.Logger) (*ScriptFeed, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("feed: load script %s: %w", name, err)
	}
	return NewScriptFeed(name, src, logger)
}

// NewScriptFeed compiles src.
func NewScriptFeed(name string, src []byte, logger *log.Logger) (*ScriptFeed, error) {
	if logger == nil {
		logger = log.Default()
	}
	f := &ScriptFeed{name: name, logger: logger, owned: map[int]struct{}{}}
	if err := f.compile(src); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload swaps in new source. Obstacles spawned so far stay registered and the
// state map is kept, so a script can pick up where it left off.
func (f *ScriptFeed) Reload(src []byte) error {
	if f == nil {
		return fmt.Errorf("feed: reload on nil script feed")
	}
	if err := f.compile(src); err != nil {
		return err
	}
	f.failed = false
	return nil
}

func (f *ScriptFeed) Name() string {
	if f == nil {
		return ""
	}
	return f.name
}

func (f *ScriptFeed) compile(src []byte) error {
	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__frame", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("feed: compile script %s: %w", f.name, err)
	}
	f.compiled = compiled
	if f.state == nil {
		f.state = &tengo.Map{Value: map[string]tengo.Object{}}
	}
	return nil
}

func (f *ScriptFeed) Update(w *ecs.World) {
	if f == nil || f.compiled == nil || f.failed || w == nil {
		return
	}
	if err := f.run(w); err != nil {
		f.failed = true
		f.logger.Printf("feed: script %s stopped: %v", f.name, err)
	}
}

func (f *ScriptFeed) run(w *ecs.World) error {
	if err := f.compiled.Set("__engine", f.engine(w)); err != nil {
		return err
	}
	if err := f.compiled.Set("__state", f.state); err != nil {
		return err
	}
	if err := f.compiled.Set("__frame", int(w.Frame())); err != nil {
		return err
	}
	return f.compiled.Run()
}

// Close removes every obstacle the script spawned.
func (f *ScriptFeed) Close(w *ecs.World) {
	if f == nil || w == nil {
		return
	}
	for idx := range f.owned {
		w.RemoveObstacle(idx)
	}
	f.owned = map[int]struct{}{}
}

func (f *ScriptFeed) engine(w *ecs.World) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["spawn"] = &tengo.UserFunction{Name: "spawn", Value: func(args ...tengo.Object) (tengo.Object, error) {
		idx := w.RegisterObstacle()
		f.owned[idx] = struct{}{}
		return &tengo.Int{Value: int64(idx)}, nil
	}}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 5 {
			return nil, tengo.ErrWrongNumArguments
		}
		idx, ok := f.ownedIndex(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		var nums [4]float64
		for i := range nums {
			v, ok := tengo.ToFloat64(args[i+1])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "move", Expected: "float", Found: args[i+1].TypeName()}
			}
			nums[i] = v
		}
		if nums[2] < 0 || nums[3] < 0 {
			return tengo.FalseValue, nil
		}
		w.ReportObstacle(idx, &cp.Vector{X: nums[0], Y: nums[1]}, &cp.Vector{X: nums[2], Y: nums[3]})
		return tengo.TrueValue, nil
	}}

	values["remove"] = &tengo.UserFunction{Name: "remove", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		idx, ok := f.ownedIndex(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		w.RemoveObstacle(idx)
		delete(f.owned, idx)
		return tengo.TrueValue, nil
	}}

	values["arena"] = &tengo.UserFunction{Name: "arena", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return floatPair(w.Arena.Width, w.Arena.Height), nil
	}}

	values["player"] = &tengo.UserFunction{Name: "player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if w.Player == nil {
			return floatPair(0, 0), nil
		}
		return floatPair(w.Player.Position.X, w.Player.Position.Y), nil
	}}

	values["gravity"] = &tengo.UserFunction{Name: "gravity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: w.Gravity.Direction().String()}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (f *ScriptFeed) ownedIndex(obj tengo.Object) (int, bool) {
	idx, ok := tengo.ToInt(obj)
	if !ok {
		return 0, false
	}
	_, owned := f.owned[idx]
	return idx, owned
}

func floatPair(a, b float64) *tengo.Array {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: a}, &tengo.Float{Value: b}}}
}
