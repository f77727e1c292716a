package system

import (
	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// MeleeAttackSystem removes the ally standing on the attacker's cell.
type MeleeAttackSystem struct{}

func NewMeleeAttackSystem() *MeleeAttackSystem {
	return &MeleeAttackSystem{}
}

func (s *MeleeAttackSystem) Name() string { return "melee_attack" }

func (s *MeleeAttackSystem) Requires() []component.ComponentID {
	return requires(component.MeleeAttackID)
}

func (s *MeleeAttackSystem) Tags() ecs.Tag { return Attack }

func (s *MeleeAttackSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	loc, ok, err := awake(w, b, e)
	if err != nil || !ok {
		return false, err
	}
	i, found := b.AllyAt(loc.Point())
	if !found || !b.RemoveAlly(i) {
		return false, nil
	}
	loc.IsAttacking = true
	return true, ecs.Add(w, e, component.LocationComponent.Kind(), loc)
}

// RangedOrthoAttackSystem shoots the nearest live ally on the attacker's row
// or column and records the projectile on the board.
type RangedOrthoAttackSystem struct{}

func NewRangedOrthoAttackSystem() *RangedOrthoAttackSystem {
	return &RangedOrthoAttackSystem{}
}

func (s *RangedOrthoAttackSystem) Name() string { return "ranged_ortho_attack" }

func (s *RangedOrthoAttackSystem) Requires() []component.ComponentID {
	return requires(component.RangedOrthoAttackID)
}

func (s *RangedOrthoAttackSystem) Tags() ecs.Tag { return Attack }

func (s *RangedOrthoAttackSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	loc, ok, err := awake(w, b, e)
	if err != nil || !ok {
		return false, err
	}
	ranged, err := ecs.Get(w, e, component.RangedOrthoAttackComponent.Kind())
	if err != nil {
		return false, err
	}
	from := loc.Point()
	i, found := nearestAlly(b, from, func(p grid.Point) bool {
		return (ranged.Horizontal && p.Y == from.Y) || (ranged.Vertical && p.X == from.X)
	})
	if !found {
		if ranged.Target != -1 {
			ranged.Target = -1
			return false, ecs.Add(w, e, component.RangedOrthoAttackComponent.Kind(), ranged)
		}
		return false, nil
	}
	target, _ := b.Ally(i)
	if !b.RemoveAlly(i) {
		return false, nil
	}
	b.AddProjectile(ranged.Projectile, from, target.Pos)

	ranged.Target = i
	if err := ecs.Add(w, e, component.RangedOrthoAttackComponent.Kind(), ranged); err != nil {
		return false, err
	}
	if f, ok := grid.Toward(from, target.Pos); ok {
		loc.Facing = f
	}
	loc.IsAttacking = true
	return true, ecs.Add(w, e, component.LocationComponent.Kind(), loc)
}
