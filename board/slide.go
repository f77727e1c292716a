package board

import (
	"fmt"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// NetOffset reduces offset to the displacement it actually causes on a line
// of axis: sliding a full length is the same as not sliding.
func (b *Board) NetOffset(axis grid.Axis, offset int) int {
	return grid.Wrap(offset, b.bounds.Length(axis))
}

// Slide rotates row or column index by offset cells with wraparound and takes
// every pawn on that line along. Positive offsets move towards increasing
// coordinates.
func (b *Board) Slide(axis grid.Axis, index, offset int) error {
	if index < 0 || index >= b.bounds.Lines(axis) {
		return fmt.Errorf("%w: %s %d", ErrOutOfRange, axis, index)
	}
	n := b.bounds.Length(axis)
	k := grid.Wrap(offset, n)
	if k == 0 {
		return nil
	}

	cell := func(i int) int {
		if axis == grid.Column {
			return index + i*b.bounds.Width
		}
		return i + index*b.bounds.Width
	}
	line := make([]*Tile, n)
	for i := 0; i < n; i++ {
		line[grid.Wrap(i+k, n)] = b.tiles[cell(i)]
	}
	for i, t := range line {
		b.tiles[cell(i)] = t
	}

	for i := range b.allies {
		a := &b.allies[i]
		if a.Alive && grid.OnLine(axis, index, a.Pos) {
			a.Pos = b.bounds.Shift(axis, a.Pos, k)
		}
	}

	for _, e := range b.enemies.slice() {
		loc, err := b.location(e)
		if err != nil {
			return err
		}
		if !grid.OnLine(axis, index, loc.Point()) {
			continue
		}
		loc = loc.MoveTo(b.bounds.Shift(axis, loc.Point(), k))
		if err := ecs.Add(b.world, e, component.LocationComponent.Kind(), loc); err != nil {
			return err
		}
	}
	return nil
}

// IsRooted reports whether a live rooting enemy stands on the line.
func (b *Board) IsRooted(axis grid.Axis, index int) bool {
	for _, e := range b.enemies.items {
		if !ecs.Has(b.world, e, component.RootingComponent.Kind()) {
			continue
		}
		loc, err := b.location(e)
		if err != nil {
			continue
		}
		if grid.OnLine(axis, index, loc.Point()) {
			return true
		}
	}
	return false
}
