package turn

import (
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/system"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

type enemyState int

const (
	enemyMove enemyState = iota
	enemyAttack
	enemyFade
	enemyCheck
)

// EnemyController runs the enemies' turn: MOVE → ATTACK → FADE → CHECK.
type EnemyController struct {
	env      *Env
	state    enemyState
	complete bool
}

func NewEnemyController(env *Env) *EnemyController {
	return &EnemyController{env: env}
}

func (c *EnemyController) IsComplete() bool {
	return c.complete
}

func (c *EnemyController) Begin() {
	c.state = enemyMove
	c.complete = false
}

func (c *EnemyController) Reset() {
	c.Begin()
}

func (c *EnemyController) Update() error {
	if c.complete {
		return nil
	}
	switch c.state {
	case enemyMove:
		return c.move()
	case enemyAttack:
		return c.attack()
	case enemyFade:
		c.fade()
		return nil
	default:
		c.check()
		return nil
	}
}

func (c *EnemyController) move() error {
	b := c.env.Board
	if _, err := c.env.Scheduler.Update(system.Movement, b); err != nil {
		return err
	}
	err := c.eachFlagged(func(loc component.Location, idle component.Idle) {
		if loc.IsMoving {
			c.env.Scene.Move(idle.Visual, loc.Point())
			c.env.play(idle.Visual, idle.Move)
		}
	})
	if err != nil {
		return err
	}
	c.state = enemyAttack
	return nil
}

func (c *EnemyController) attack() error {
	b := c.env.Board
	if _, err := c.env.Scheduler.Update(system.Attack, b); err != nil {
		return err
	}
	err := c.eachFlagged(func(loc component.Location, idle component.Idle) {
		if loc.IsAttacking {
			c.env.play(idle.Visual, idle.Attack)
		}
	})
	if err != nil {
		return err
	}
	for _, p := range b.Projectiles() {
		c.env.Scene.Attach(p.Visual, render.Sprite{Kind: render.KindProjectile, Name: p.Sprite, Pos: p.From})
		c.env.Scene.Move(p.Visual, p.To)
		c.env.play(p.Visual, render.AnimFire)
	}
	c.state = enemyFade
	return nil
}

func (c *EnemyController) fade() {
	b := c.env.Board
	for _, i := range b.RemovedAllies() {
		if a, ok := b.Ally(i); ok {
			c.env.play(a.Visual, render.AnimFade)
		}
	}
	c.state = enemyCheck
}

func (c *EnemyController) check() {
	b := c.env.Board
	for _, i := range b.RemovedAllies() {
		if a, ok := b.Ally(i); ok {
			c.env.Scene.Detach(a.Visual)
		}
	}
	for _, p := range b.Projectiles() {
		c.env.Scene.Detach(p.Visual)
	}
	c.env.detachRemoved()
	c.env.attachAdded()
	b.ClearTracking()
	c.complete = true
}

// eachFlagged calls fn for every live enemy with a visual, then clears its
// animation flags.
func (c *EnemyController) eachFlagged(fn func(component.Location, component.Idle)) error {
	b := c.env.Board
	for _, e := range b.Enemies() {
		loc, err := ecs.Get(b.World(), e, component.LocationComponent.Kind())
		if err != nil {
			return err
		}
		if !loc.IsMoving && !loc.IsAttacking {
			continue
		}
		if idle, ok := c.env.idle(e); ok {
			fn(loc, idle)
		}
		if err := c.env.clearFlags(e); err != nil {
			return err
		}
	}
	return nil
}
