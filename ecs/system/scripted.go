package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// ScriptLoader returns the source of a movement script by name.
type ScriptLoader func(name string) ([]byte, error)

// ScriptedMovementSystem asks a tengo script where an enemy should go. The
// script reads x, y, facing, width, height, distance, target_x and target_y
// (-1 without a live ally) and may call is_blocked(x, y). It answers by
// setting move to a facing name ("" or "stay" keeps the pawn in place) and
// optionally steps to override distance.
type ScriptedMovementSystem struct {
	load  ScriptLoader
	cache map[string]*tengo.Compiled
}

func NewScriptedMovementSystem(load ScriptLoader) *ScriptedMovementSystem {
	return &ScriptedMovementSystem{load: load, cache: map[string]*tengo.Compiled{}}
}

func (s *ScriptedMovementSystem) Name() string { return "scripted_movement" }

func (s *ScriptedMovementSystem) Requires() []component.ComponentID {
	return requires(component.ScriptedMovementID)
}

func (s *ScriptedMovementSystem) Tags() ecs.Tag { return Movement }

func (s *ScriptedMovementSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	loc, ok, err := awake(w, b, e)
	if err != nil || !ok {
		return false, err
	}
	mv, err := ecs.Get(w, e, component.ScriptedMovementComponent.Kind())
	if err != nil {
		return false, err
	}
	compiled, err := s.compiled(mv.Script)
	if err != nil {
		return false, err
	}

	blocked := blockedFor(b, e)
	targetX, targetY := -1, -1
	if i, found := nearestAlly(b, loc.Point(), nil); found {
		a, _ := b.Ally(i)
		targetX, targetY = a.Pos.X, a.Pos.Y
	}
	inputs := map[string]any{
		"x":        loc.X,
		"y":        loc.Y,
		"facing":   loc.Facing.String(),
		"width":    b.Width(),
		"height":   b.Height(),
		"distance": mv.Distance,
		"target_x": targetX,
		"target_y": targetY,
		"move":     "",
		"steps":    mv.Distance,
	}
	for name, v := range inputs {
		if err := compiled.Set(name, v); err != nil {
			return false, fmt.Errorf("script %q: set %s: %w", mv.Script, name, err)
		}
	}
	isBlocked := &tengo.UserFunction{Name: "is_blocked", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		x, _ := tengo.ToInt(args[0])
		y, _ := tengo.ToInt(args[1])
		p := grid.Point{X: x, Y: y}
		if !b.Bounds().Contains(p) || blocked(p) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}
	if err := compiled.Set("is_blocked", isBlocked); err != nil {
		return false, err
	}
	if err := compiled.Run(); err != nil {
		return false, fmt.Errorf("script %q: %w", mv.Script, err)
	}

	move := strings.ToLower(strings.TrimSpace(compiled.Get("move").String()))
	if move == "" || move == "stay" {
		return false, nil
	}
	f, err := grid.ParseFacing(move)
	if err != nil {
		return false, fmt.Errorf("script %q: %w", mv.Script, err)
	}
	p, f := grid.Advance(f, b.Bounds(), loc.Point(), compiled.Get("steps").Int(), blocked)
	return place(w, e, loc, p, f)
}

func (s *ScriptedMovementSystem) compiled(name string) (*tengo.Compiled, error) {
	if c, ok := s.cache[name]; ok {
		return c, nil
	}
	if s.load == nil {
		return nil, fmt.Errorf("script %q: no loader", name)
	}
	src, err := s.load(name)
	if err != nil {
		return nil, err
	}
	c, err := CompileMovementScript(src)
	if err != nil {
		return nil, fmt.Errorf("script %q: %w", name, err)
	}
	s.cache[name] = c
	return c, nil
}

// CompileMovementScript compiles src with the globals a movement script can
// use.
func CompileMovementScript(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript(src)
	for _, name := range []string{"facing", "move"} {
		_ = script.Add(name, "")
	}
	for _, name := range []string{"x", "y", "width", "height", "distance", "target_x", "target_y", "steps"} {
		_ = script.Add(name, 0)
	}
	_ = script.Add("is_blocked", &tengo.UserFunction{Name: "is_blocked", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.FalseValue, nil
	}})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}
