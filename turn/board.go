package turn

import (
	"go.uber.org/zap"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs/system"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

type boardState int

const (
	boardCheck boardState = iota
	boardRemove
	boardAdd
)

func (s boardState) String() string {
	switch s {
	case boardRemove:
		return "remove"
	case boardAdd:
		return "add"
	default:
		return "check"
	}
}

// BoardController resolves matches after a slide, cascading CHECK → REMOVE →
// ADD until the board is stable.
type BoardController struct {
	env      *Env
	state    boardState
	passes   int
	complete bool
}

func NewBoardController(env *Env) *BoardController {
	return &BoardController{env: env}
}

func (c *BoardController) IsComplete() bool {
	return c.complete
}

// Passes returns how many matching passes the current turn took.
func (c *BoardController) Passes() int {
	return c.passes
}

func (c *BoardController) Begin() {
	c.state = boardCheck
	c.passes = 0
	c.complete = false
}

func (c *BoardController) Reset() {
	c.Begin()
}

// Update advances one state.
func (c *BoardController) Update() error {
	if c.complete {
		return nil
	}
	c.env.logger().Debug("board step", zap.Stringer("state", c.state), zap.Int("pass", c.passes))
	switch c.state {
	case boardCheck:
		return c.check()
	case boardRemove:
		return c.remove()
	default:
		c.add()
		return nil
	}
}

func (c *BoardController) check() error {
	found, err := c.env.Board.CheckForMatches(true)
	if err != nil {
		return err
	}
	if found {
		c.passes++
		c.state = boardRemove
		return nil
	}
	if _, err := c.env.Board.CheckWin(); err != nil {
		return err
	}
	c.complete = true
	return nil
}

func (c *BoardController) remove() error {
	b := c.env.Board
	if _, err := c.env.Scheduler.Update(system.Damage, b); err != nil {
		return err
	}
	for _, t := range b.RemovedTiles() {
		if b.WasAdded(t) || t.Null() {
			continue
		}
		c.env.play(t.Visual, render.AnimRemove)
	}
	for _, e := range b.RemovedEnemies() {
		if idle, ok := c.env.idle(e); ok {
			c.env.play(idle.Visual, idle.Death)
		}
	}
	if _, err := b.CheckWin(); err != nil {
		return err
	}
	c.state = boardAdd
	return nil
}

func (c *BoardController) add() {
	b := c.env.Board
	c.env.detachRemoved()
	for _, e := range b.RemovedEnemies() {
		if idle, ok := c.env.idle(e); ok {
			c.env.Scene.Detach(idle.Visual)
		}
	}
	c.env.attachAdded()
	b.ClearTracking()
	c.state = boardCheck
}
