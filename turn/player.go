package turn

import (
	"math"

	"github.com/jakecoffman/cp"
	"go.uber.org/zap"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/system"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
	"github.com/ncskier/CapriciousCroissants-sub000/render"
)

// Slide is a committed player move.
type Slide struct {
	Axis  grid.Axis
	Index int
	Cells int
}

// Drag is the slide a gesture in progress would make. Pixels is zero while
// the line cannot move.
type Drag struct {
	Axis   grid.Axis
	Index  int
	Pixels float64
}

// PlayerController turns a drag gesture into a row or column slide.
type PlayerController struct {
	env      *Env
	tileSize float64
	axisLock float64

	dragging bool
	start    grid.Point
	locked   bool
	axis     grid.Axis
	pixels   float64
	vetoed   bool

	last     Slide
	complete bool
}

// NewPlayerController returns a controller for tiles of tileSize pixels. The
// slide axis is fixed once the drag is axisLock pixels long.
func NewPlayerController(env *Env, tileSize, axisLock float64) *PlayerController {
	return &PlayerController{env: env, tileSize: tileSize, axisLock: axisLock}
}

func (c *PlayerController) IsComplete() bool {
	return c.complete
}

// Begin starts a new player turn.
func (c *PlayerController) Begin() {
	c.clearDrag()
	c.complete = false
}

func (c *PlayerController) Reset() {
	c.Begin()
	c.last = Slide{}
}

// LastSlide returns the move that completed the turn.
func (c *PlayerController) LastSlide() Slide {
	return c.last
}

// Drag returns the gesture in progress once its axis is known.
func (c *PlayerController) Drag() (Drag, bool) {
	if !c.dragging || !c.locked {
		return Drag{}, false
	}
	return Drag{Axis: c.axis, Index: c.lineIndex(), Pixels: c.pixels}, true
}

func (c *PlayerController) Update(in Input) error {
	if c.complete {
		return nil
	}
	switch in.Event {
	case MoveStart:
		return c.begin(in.Position)
	case MoveMoving:
		if c.dragging {
			c.drag(in.Offset)
		}
	case MoveEnd:
		if c.dragging {
			return c.end(in.Offset)
		}
	}
	return nil
}

func (c *PlayerController) begin(pos cp.Vector) error {
	cell := grid.Point{X: int(math.Floor(pos.X / c.tileSize)), Y: int(math.Floor(pos.Y / c.tileSize))}
	b := c.env.Board
	if !b.Bounds().Contains(cell) {
		return nil
	}
	c.clearDrag()
	b.Select(cell)
	vetoed, err := c.limited()
	if err != nil {
		return err
	}
	c.dragging = true
	c.start = cell
	c.vetoed = vetoed
	return nil
}

func (c *PlayerController) drag(offset cp.Vector) {
	if !c.locked {
		if math.Max(math.Abs(offset.X), math.Abs(offset.Y)) < c.axisLock {
			return
		}
		c.lock(offset)
	}
	c.pixels = c.along(offset)
	if c.vetoed || c.env.Board.IsRooted(c.axis, c.lineIndex()) {
		c.pixels = 0
	}
}

func (c *PlayerController) end(offset cp.Vector) error {
	defer c.clearDrag()
	b := c.env.Board
	if !c.locked {
		if offset.X == 0 && offset.Y == 0 {
			return nil
		}
		c.lock(offset)
	}
	cells := int(math.Round(c.along(offset) / c.tileSize))
	index := c.lineIndex()
	log := c.env.logger().With(zap.Stringer("axis", c.axis), zap.Int("index", index), zap.Int("cells", cells))

	vetoed, err := c.limited()
	if err != nil {
		return err
	}
	switch {
	case vetoed || c.vetoed:
		log.Debug("slide vetoed")
		return nil
	case b.IsRooted(c.axis, index):
		log.Debug("slide rooted")
		return nil
	case b.NetOffset(c.axis, cells) == 0:
		log.Debug("slide has no effect")
		return nil
	}

	if err := b.Slide(c.axis, index, cells); err != nil {
		return err
	}
	if err := c.animateLine(index); err != nil {
		return err
	}
	if _, err := c.env.Scheduler.Update(system.OnPlayerMove, b); err != nil {
		return err
	}
	c.last = Slide{Axis: c.axis, Index: index, Cells: cells}
	c.complete = true
	return nil
}

// limited runs the player-limit systems; any flagged entity vetoes the
// slide.
func (c *PlayerController) limited() (bool, error) {
	n, err := c.env.Scheduler.Update(system.PlayerLimit, c.env.Board)
	return n > 0, err
}

func (c *PlayerController) lock(offset cp.Vector) {
	c.locked = true
	c.axis = grid.Row
	if math.Abs(offset.Y) > math.Abs(offset.X) {
		c.axis = grid.Column
	}
}

func (c *PlayerController) along(offset cp.Vector) float64 {
	if c.axis == grid.Column {
		return offset.Y
	}
	return offset.X
}

func (c *PlayerController) lineIndex() int {
	if c.axis == grid.Column {
		return c.start.X
	}
	return c.start.Y
}

func (c *PlayerController) clearDrag() {
	c.dragging = false
	c.locked = false
	c.pixels = 0
	c.vetoed = false
	c.env.Board.ClearSelection()
}

// animateLine moves every visual on the slid line to its new cell.
func (c *PlayerController) animateLine(index int) error {
	b := c.env.Board
	scene := c.env.Scene
	n := b.Bounds().Length(c.axis)
	for i := 0; i < n; i++ {
		p := grid.Point{X: i, Y: index}
		if c.axis == grid.Column {
			p = grid.Point{X: index, Y: i}
		}
		t := b.Tile(p)
		if t.Null() {
			continue
		}
		scene.Move(t.Visual, p)
		c.env.play(t.Visual, render.AnimSlide)
	}
	for _, a := range b.Allies() {
		if a.Alive && grid.OnLine(c.axis, index, a.Pos) {
			scene.Move(a.Visual, a.Pos)
			c.env.play(a.Visual, render.AnimSlide)
		}
	}
	for _, e := range b.Enemies() {
		loc, err := ecs.Get(b.World(), e, component.LocationComponent.Kind())
		if err != nil {
			return err
		}
		idle, ok := c.env.idle(e)
		if !ok || !grid.OnLine(c.axis, index, loc.Point()) {
			continue
		}
		scene.Move(idle.Visual, loc.Point())
		c.env.play(idle.Visual, render.AnimSlide)
	}
	return nil
}
