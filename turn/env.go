// Package turn holds the three controllers that take a level through a turn:
// the player's slide, the board resolving its matches and the enemies' move.
package turn

import (
	"go.uber.org/zap"

	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/system"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/logging"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

// Env is what the controllers borrow from the play mode for one level.
type Env struct {
	Board     *board.Board
	Scheduler *system.Scheduler
	Scene     render.Scene
	Gate      *render.Gate
	Log       *zap.Logger
}

func (env *Env) logger() *zap.Logger {
	return logging.OrNop(env.Log)
}

// play starts key on h through the gate. Empty keys are skipped.
func (env *Env) play(h render.Handle, key string) {
	if h == render.NoHandle || key == "" {
		return
	}
	env.Gate.Play(h, key)
}

// idle returns the visual bundle of e, if it has one.
func (env *Env) idle(e ecs.Entity) (component.Idle, bool) {
	idle, err := ecs.Get(env.Board.World(), e, component.IdleComponent.Kind())
	return idle, err == nil
}

// clearFlags resets the per-turn animation flags of e.
func (env *Env) clearFlags(e ecs.Entity) error {
	return ecs.Mutate(env.Board.World(), e, component.LocationComponent.Kind(), func(l *component.Location) {
		l.IsMoving = false
		l.IsAttacking = false
	})
}

func (env *Env) tilePositions() map[*board.Tile]grid.Point {
	b := env.Board
	out := make(map[*board.Tile]grid.Point, b.Bounds().Cells())
	for i, t := range b.Tiles() {
		out[t] = b.Bounds().Point(i)
	}
	return out
}

// attachAdded attaches every tile added since the last ClearTracking and
// plays its appear animation.
func (env *Env) attachAdded() {
	added := env.Board.AddedTiles()
	if len(added) == 0 {
		return
	}
	positions := env.tilePositions()
	for _, t := range added {
		p, onBoard := positions[t]
		if !onBoard || t.Null() {
			continue
		}
		env.Scene.Attach(t.Visual, render.Sprite{Kind: render.KindTile, Color: t.Color, Pos: p})
		env.play(t.Visual, render.AnimAppear)
	}
}

// detachRemoved detaches the tiles removed since the last ClearTracking.
func (env *Env) detachRemoved() {
	b := env.Board
	for _, t := range b.RemovedTiles() {
		if !b.WasAdded(t) {
			env.Scene.Detach(t.Visual)
		}
	}
}

// AttachAll puts the whole board on the scene: tiles, live allies and live
// enemies.
func AttachAll(env *Env) {
	b := env.Board
	for i, t := range b.Tiles() {
		if t.Null() {
			continue
		}
		env.Scene.Attach(t.Visual, render.Sprite{Kind: render.KindTile, Color: t.Color, Pos: b.Bounds().Point(i)})
	}
	for i, a := range b.Allies() {
		if !a.Alive {
			continue
		}
		name := "ally"
		if i == 0 {
			name = "leader"
		}
		env.Scene.Attach(a.Visual, render.Sprite{Kind: render.KindAlly, Name: name, Pos: a.Pos})
	}
	for _, e := range b.Enemies() {
		idle, ok := env.idle(e)
		if !ok {
			continue
		}
		loc, err := ecs.Get(b.World(), e, component.LocationComponent.Kind())
		if err != nil {
			continue
		}
		env.Scene.Attach(idle.Visual, render.Sprite{Kind: render.KindEnemy, Name: idle.Sprite, Pos: loc.Point()})
		if idle.Idle != "" {
			env.Scene.Activate(idle.Visual, idle.Idle)
		}
	}
}

// DetachAll removes every visual of the board from the scene.
func DetachAll(env *Env) {
	b := env.Board
	for _, t := range b.Tiles() {
		env.Scene.Detach(t.Visual)
	}
	for _, t := range b.RemovedTiles() {
		env.Scene.Detach(t.Visual)
	}
	for _, a := range b.Allies() {
		env.Scene.Detach(a.Visual)
	}
	for _, e := range b.AllEnemies() {
		if idle, ok := env.idle(e); ok {
			env.Scene.Detach(idle.Visual)
		}
	}
	for _, p := range b.Projectiles() {
		env.Scene.Detach(p.Visual)
	}
	env.Gate.Clear()
}
