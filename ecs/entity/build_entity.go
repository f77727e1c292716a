package entity

import (
	"fmt"
	"sort"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/prefabs"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

type buildContext struct {
	Name    string
	Handles *render.Handles
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"location":            addLocation,
	"dumb_movement":       addDumbMovement,
	"smart_movement":      addSmartMovement,
	"scripted_movement":   addScriptedMovement,
	"melee_attack":        addMeleeAttack,
	"ranged_ortho_attack": addRangedOrthoAttack,
	"idle":                addIdle,
	"rooting":             addRooting,
	"snare":               addSnare,
	"dormant":             addDormant,
	"health":              addHealth,
}

var componentBuildOrder = []string{
	"location",
	"dumb_movement",
	"smart_movement",
	"scripted_movement",
	"melee_attack",
	"ranged_ortho_attack",
	"rooting",
	"snare",
	"dormant",
	"health",
	"idle",
}

// DefaultIdle is the animation bundle of an enemy whose descriptor has no
// idle initializer.
var DefaultIdle = prefabs.IdleComponentSpec{
	Sprite:       "enemy",
	Move:         render.AnimSlide,
	Attack:       render.AnimFire,
	Death:        render.AnimFade,
	Interrupting: []string{render.AnimSlide, render.AnimFire},
}

// BuildEnemy creates an enemy entity from resolved component initializers.
// Every enemy gets a Location, an EnemyTag and an Idle; unknown initializer
// names are an error and leave nothing behind in w.
func BuildEnemy(w *ecs.World, handles *render.Handles, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build enemy: world is nil")
	}
	name := spec.Name
	if name == "" {
		name = "enemy"
	}
	if _, ok := spec.Components["location"]; !ok {
		return 0, fmt.Errorf("build enemy: %q: missing location", name)
	}
	if handles == nil {
		handles = &render.Handles{}
	}

	var unknown []string
	for k := range spec.Components {
		if _, ok := componentRegistry[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build enemy: %q: no builder for components %q", name, unknown)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{Name: name, Handles: handles}
	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), component.EnemyTag{}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	for _, comp := range componentBuildOrder {
		raw, ok := spec.Components[comp]
		if !ok {
			if comp != "idle" {
				continue
			}
			raw = DefaultIdle
		}
		if err := componentRegistry[comp](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build enemy: %q: add %q: %w", name, comp, err)
		}
	}
	return e, nil
}

func addLocation(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LocationComponentSpec](raw)
	if err != nil {
		return err
	}
	facing, err := grid.ParseFacing(spec.Facing)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.LocationComponent.Kind(), component.Location{X: spec.X, Y: spec.Y, Facing: facing})
}

func addDumbMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := decodeMovement(raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.DumbMovementComponent.Kind(), component.DumbMovement{Distance: spec.Distance})
}

func addSmartMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := decodeMovement(raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.SmartMovementComponent.Kind(), component.SmartMovement{Distance: spec.Distance})
}

func decodeMovement(raw any) (prefabs.MovementComponentSpec, error) {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MovementComponentSpec](raw)
	if err != nil {
		return spec, err
	}
	if spec.Distance < 0 {
		return spec, fmt.Errorf("negative distance %d", spec.Distance)
	}
	if spec.Distance == 0 {
		spec.Distance = 1
	}
	return spec, nil
}

func addScriptedMovement(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScriptedMovementComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Script == "" {
		return fmt.Errorf("script is required")
	}
	if spec.Distance <= 0 {
		spec.Distance = 1
	}
	return ecs.Add(w, e, component.ScriptedMovementComponent.Kind(), component.ScriptedMovement{Script: spec.Script, Distance: spec.Distance})
}

func addMeleeAttack(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.MeleeAttackComponent.Kind(), component.MeleeAttack{})
}

func addRangedOrthoAttack(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RangedOrthoAttackComponentSpec](raw)
	if err != nil {
		return err
	}
	if !spec.Horizontal && !spec.Vertical {
		return fmt.Errorf("ranged attack needs an axis")
	}
	if spec.Projectile == "" {
		spec.Projectile = "projectile"
	}
	return ecs.Add(w, e, component.RangedOrthoAttackComponent.Kind(), component.RangedOrthoAttack{
		Horizontal: spec.Horizontal,
		Vertical:   spec.Vertical,
		Target:     -1,
		Projectile: spec.Projectile,
	})
}

func addIdle(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, ok := raw.(prefabs.IdleComponentSpec)
	if !ok {
		var err error
		spec, err = prefabs.DecodeComponentSpec[prefabs.IdleComponentSpec](raw)
		if err != nil {
			return err
		}
	}
	if spec.Sprite == "" {
		spec.Sprite = ctx.Name
	}
	return ecs.Add(w, e, component.IdleComponent.Kind(), component.Idle{
		Visual:       ctx.Handles.Next(),
		Sprite:       spec.Sprite,
		Idle:         spec.Idle,
		Move:         spec.Move,
		Attack:       spec.Attack,
		Death:        spec.Death,
		Interrupting: append([]string(nil), spec.Interrupting...),
	})
}

func addRooting(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.RootingComponent.Kind(), component.Rooting{})
}

func addSnare(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SnareComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Radius < 0 {
		return fmt.Errorf("negative radius %d", spec.Radius)
	}
	return ecs.Add(w, e, component.SnareComponent.Kind(), component.Snare{Radius: spec.Radius})
}

func addDormant(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.DormantComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.DormantComponent.Kind(), component.Dormant{Moves: spec.Moves})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.HP <= 0 {
		return fmt.Errorf("hp must be positive, got %d", spec.HP)
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), component.Health{Current: spec.HP, Max: spec.HP})
}
