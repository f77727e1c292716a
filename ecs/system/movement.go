package system

import (
	"github.com/ncskier/CapriciousCroissants-sub000/board"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// DumbMovementSystem walks enemies along their facing, bouncing off walls
// and other enemies.
type DumbMovementSystem struct{}

func NewDumbMovementSystem() *DumbMovementSystem {
	return &DumbMovementSystem{}
}

func (s *DumbMovementSystem) Name() string { return "dumb_movement" }

func (s *DumbMovementSystem) Requires() []component.ComponentID {
	return requires(component.DumbMovementID)
}

func (s *DumbMovementSystem) Tags() ecs.Tag { return Movement }

func (s *DumbMovementSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	loc, ok, err := awake(w, b, e)
	if err != nil || !ok {
		return false, err
	}
	mv, err := ecs.Get(w, e, component.DumbMovementComponent.Kind())
	if err != nil {
		return false, err
	}
	p, f := grid.Advance(loc.Facing, b.Bounds(), loc.Point(), mv.Distance, blockedFor(b, e))
	return place(w, e, loc, p, f)
}

// SmartMovementSystem walks enemies towards the nearest live ally, one cell
// at a time.
type SmartMovementSystem struct{}

func NewSmartMovementSystem() *SmartMovementSystem {
	return &SmartMovementSystem{}
}

func (s *SmartMovementSystem) Name() string { return "smart_movement" }

func (s *SmartMovementSystem) Requires() []component.ComponentID {
	return requires(component.SmartMovementID)
}

func (s *SmartMovementSystem) Tags() ecs.Tag { return Movement }

func (s *SmartMovementSystem) UpdateEntity(w *ecs.World, e ecs.Entity, b *board.Board) (bool, error) {
	loc, ok, err := awake(w, b, e)
	if err != nil || !ok {
		return false, err
	}
	mv, err := ecs.Get(w, e, component.SmartMovementComponent.Kind())
	if err != nil {
		return false, err
	}
	i, found := nearestAlly(b, loc.Point(), nil)
	if !found {
		return false, nil
	}
	target, _ := b.Ally(i)

	p, f := loc.Point(), loc.Facing
	blocked := blockedFor(b, e)
	for step := 0; step < mv.Distance && p != target.Pos; step++ {
		next, nf, ok := stepToward(b.Bounds(), p, target.Pos, blocked)
		if !ok {
			break
		}
		p, f = next, nf
	}
	return place(w, e, loc, p, f)
}

// stepToward moves one cell from p towards q along the longer axis, falling
// back to the other axis when that cell is taken.
func stepToward(bounds grid.Bounds, p, q grid.Point, blocked func(grid.Point) bool) (grid.Point, grid.Facing, bool) {
	primary, ok := grid.Toward(p, q)
	if !ok {
		return p, primary, false
	}
	candidates := []grid.Facing{primary}
	dx, dy := q.X-p.X, q.Y-p.Y
	switch {
	case primary.Axis() == grid.Row && dy > 0:
		candidates = append(candidates, grid.Up)
	case primary.Axis() == grid.Row && dy < 0:
		candidates = append(candidates, grid.Down)
	case primary.Axis() == grid.Column && dx > 0:
		candidates = append(candidates, grid.Right)
	case primary.Axis() == grid.Column && dx < 0:
		candidates = append(candidates, grid.Left)
	}
	for _, f := range candidates {
		next := p.Add(f.Delta())
		if bounds.Contains(next) && !blocked(next) {
			return next, f, true
		}
	}
	return p, primary, false
}
