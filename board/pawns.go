package board

import (
	"fmt"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs"
	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
	"github.com/ncskier/CapriciousCroissants-sub000/grid"
)

// Allies returns a copy of the ally sequence, dead allies included.
func (b *Board) Allies() []Ally {
	return append([]Ally(nil), b.allies...)
}

// Ally returns the ally at index i.
func (b *Board) Ally(i int) (Ally, bool) {
	if i < 0 || i >= len(b.allies) {
		return Ally{}, false
	}
	return b.allies[i], true
}

// AllyAt returns the index of the live ally standing on p.
func (b *Board) AllyAt(p grid.Point) (int, bool) {
	for i, a := range b.allies {
		if a.Alive && a.Pos == p {
			return i, true
		}
	}
	return -1, false
}

// LiveAllies returns the indexes of the allies still on the board.
func (b *Board) LiveAllies() []int {
	out := make([]int, 0, len(b.allies))
	for i, a := range b.allies {
		if a.Alive {
			out = append(out, i)
		}
	}
	return out
}

// RemoveAlly takes ally i off the board. Its empty cell gets a fresh coloured
// tile. Removing the leader loses the level.
func (b *Board) RemoveAlly(i int) bool {
	if i < 0 || i >= len(b.allies) || !b.allies[i].Alive {
		return false
	}
	a := &b.allies[i]
	a.Alive = false
	b.removedAllies.add(i)

	idx := b.bounds.Index(a.Pos)
	old := b.tiles[idx]
	fresh := b.newTile(b.randomColor())
	b.tiles[idx] = fresh
	b.removedTiles.add(old)
	b.addedTiles.add(fresh)

	if i == 0 {
		b.lose = true
	}
	return true
}

// AddEnemy puts an entity into the enemy collection. The entity must carry a
// Location.
func (b *Board) AddEnemy(e ecs.Entity) error {
	loc, err := b.location(e)
	if err != nil {
		return err
	}
	if loc.OnBoard() && !b.bounds.Contains(loc.Point()) {
		return fmt.Errorf("%w: enemy %s at %v is off the board", ErrInvalidConfig, e, loc.Point())
	}
	b.allEnemies = append(b.allEnemies, e)
	if loc.OnBoard() {
		b.enemies.add(e)
	}
	return nil
}

// Enemies returns the live enemies in the order they were added.
func (b *Board) Enemies() []ecs.Entity {
	return b.enemies.slice()
}

// AllEnemies returns every enemy ever added, dead ones included.
func (b *Board) AllEnemies() []ecs.Entity {
	return append([]ecs.Entity(nil), b.allEnemies...)
}

func (b *Board) IsLiveEnemy(e ecs.Entity) bool {
	return b.enemies.has(e)
}

// EnemyAt returns the live enemy standing on p.
func (b *Board) EnemyAt(p grid.Point) (ecs.Entity, bool) {
	for _, e := range b.enemies.items {
		loc, err := b.location(e)
		if err == nil && loc.Point() == p {
			return e, true
		}
	}
	return 0, false
}

// KillEnemy moves e off the board (Location.X = -1) and out of the live
// collection.
func (b *Board) KillEnemy(e ecs.Entity) error {
	if !b.enemies.has(e) {
		return nil
	}
	err := ecs.Mutate(b.world, e, component.LocationComponent.Kind(), func(l *component.Location) {
		*l = l.MoveTo(grid.Off)
		l.IsMoving = false
		l.IsAttacking = false
	})
	if err != nil {
		return err
	}
	kept := b.enemies.items[:0]
	for _, other := range b.enemies.items {
		if other != e {
			kept = append(kept, other)
		}
	}
	b.enemies.items = kept
	delete(b.enemies.index, e)
	b.removedEnemies.add(e)
	return nil
}

// CheckWin sets the win flag when every enemy has left the board and
// returns it.
func (b *Board) CheckWin() (bool, error) {
	for _, e := range b.allEnemies {
		loc, err := b.location(e)
		if err != nil {
			return false, err
		}
		if loc.OnBoard() {
			return false, nil
		}
	}
	b.win = true
	return true, nil
}

func (b *Board) location(e ecs.Entity) (component.Location, error) {
	return ecs.Get(b.world, e, component.LocationComponent.Kind())
}
