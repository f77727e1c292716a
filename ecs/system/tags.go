// Package system holds the per-entity turn behaviour of enemies. Every system
// runs against the board of the level being played.
package system

import (
	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// Turn-phase tags. A system can carry more than one.
const (
	Movement ecs.Tag = 1 << iota
	Attack
	OnPlayerMove
	PlayerLimit
	Damage
)

// Scheduler is the scheduler every turn controller shares.
type Scheduler = ecs.Scheduler[*board.Board]

// NewScheduler returns a scheduler over w with every built-in system. Scripts
// for scripted movement are read through load.
func NewScheduler(w *ecs.World, load ScriptLoader) (*Scheduler, error) {
	return ecs.NewScheduler[*board.Board](w,
		NewDumbMovementSystem(),
		NewSmartMovementSystem(),
		NewScriptedMovementSystem(load),
		NewMeleeAttackSystem(),
		NewRangedOrthoAttackSystem(),
		NewDormantSystem(),
		NewSnareSystem(),
		NewSplashDamageSystem(),
	)
}

// IsDormant reports whether e still sleeps through enemy turns.
func IsDormant(w *ecs.World, e ecs.Entity) bool {
	d, err := ecs.Get(w, e, component.DormantComponent.Kind())
	return err == nil && d.Moves > 0
}

// awake returns the location of e when it is on the board and not dormant.
func awake(w *ecs.World, b *board.Board, e ecs.Entity) (component.Location, bool, error) {
	if !b.IsLiveEnemy(e) || IsDormant(w, e) {
		return component.Location{}, false, nil
	}
	loc, err := ecs.Get(w, e, component.LocationComponent.Kind())
	if err != nil {
		return loc, false, err
	}
	return loc, loc.OnBoard(), nil
}

// blockedFor reports cells held by a live enemy other than e.
func blockedFor(b *board.Board, e ecs.Entity) func(grid.Point) bool {
	return func(p grid.Point) bool {
		other, ok := b.EnemyAt(p)
		return ok && other != e
	}
}

// nearestAlly returns the index of the live ally closest to p. Ties go to the
// lower index. keep filters candidates when not nil.
func nearestAlly(b *board.Board, p grid.Point, keep func(grid.Point) bool) (int, bool) {
	best, bestDist := -1, 0
	for _, i := range b.LiveAllies() {
		a, _ := b.Ally(i)
		if keep != nil && !keep(a.Pos) {
			continue
		}
		d := p.Manhattan(a.Pos)
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best != -1
}

// place writes p and f back to e. IsMoving is raised when the pawn changed
// cell.
func place(w *ecs.World, e ecs.Entity, loc component.Location, p grid.Point, f grid.Facing) (bool, error) {
	moved := p != loc.Point()
	if !moved && f == loc.Facing {
		return false, nil
	}
	loc = loc.MoveTo(p)
	loc.Facing = f
	loc.IsMoving = loc.IsMoving || moved
	return moved, ecs.Add(w, e, component.LocationComponent.Kind(), loc)
}

func requires(ids ...component.ComponentID) []component.ComponentID {
	return append([]component.ComponentID{component.LocationID, component.EnemyTagID}, ids...)
}
