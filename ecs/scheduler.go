package ecs

import (
	"fmt"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
)

// Tag selects the turn phase a system runs in. A system may carry several.
type Tag uint32

func (t Tag) Has(other Tag) bool {
	return t&other != 0
}

// System is a unit of per-entity behaviour. C is the shared context lent to
// every update, the board in this game.
type System[C any] interface {
	Name() string
	// Requires lists the component kinds an entity needs to join the system.
	Requires() []component.ComponentID
	Tags() Tag
	// UpdateEntity runs the system on one member. It reports whether the
	// entity was updated; systems that check conditions report whether the
	// entity was flagged. Components are copies, so the system writes back
	// whatever it changes.
	UpdateEntity(w *World, e Entity, ctx C) (bool, error)
}

type scheduled[C any] struct {
	system   System[C]
	required Signature
	members  []Entity
	index    map[Entity]int
}

// Scheduler holds the systems of a world and the entities each one works on.
// Membership is decided once, when an entity is registered: components added
// or removed afterwards do not move the entity in or out of any system.
type Scheduler[C any] struct {
	world   *World
	systems []*scheduled[C]
}

func NewScheduler[C any](w *World, systems ...System[C]) (*Scheduler[C], error) {
	s := &Scheduler[C]{world: w}
	for _, sys := range systems {
		if err := s.Add(sys); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a system to the update order.
func (s *Scheduler[C]) Add(system System[C]) error {
	if system == nil {
		return fmt.Errorf("%w: nil", ErrInvalidSystem)
	}
	req := SignatureOf(system.Requires()...)
	if req.Empty() {
		return fmt.Errorf("%w: %s requires no components", ErrInvalidSystem, system.Name())
	}
	s.systems = append(s.systems, &scheduled[C]{
		system:   system,
		required: req,
		index:    map[Entity]int{},
	})
	return nil
}

// Register adds e to every system whose requirements its current components
// satisfy and returns how many systems it joined. Registering twice does not
// duplicate membership.
func (s *Scheduler[C]) Register(e Entity) (int, error) {
	sig, err := SignatureOfEntity(s.world, e)
	if err != nil {
		return 0, err
	}
	joined := 0
	for _, sc := range s.systems {
		if !sig.Contains(sc.required) {
			continue
		}
		if _, ok := sc.index[e]; ok {
			continue
		}
		sc.index[e] = len(sc.members)
		sc.members = append(sc.members, e)
		joined++
	}
	return joined, nil
}

// RegisterAll registers every live entity in creation order.
func (s *Scheduler[C]) RegisterAll() error {
	for _, e := range Entities(s.world) {
		if _, err := s.Register(e); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes e from every system.
func (s *Scheduler[C]) Unregister(e Entity) {
	for _, sc := range s.systems {
		idx, ok := sc.index[e]
		if !ok {
			continue
		}
		sc.members = append(sc.members[:idx], sc.members[idx+1:]...)
		delete(sc.index, e)
		for i := idx; i < len(sc.members); i++ {
			sc.index[sc.members[i]] = i
		}
	}
}

// Destroy unregisters e and drops it from the world.
func (s *Scheduler[C]) Destroy(e Entity) error {
	if !IsAlive(s.world, e) {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	s.Unregister(e)
	DestroyEntity(s.world, e)
	return nil
}

// Update runs every system carrying tag over its members, in registration
// order, and returns how many entity updates reported true. The first error
// stops the pass.
func (s *Scheduler[C]) Update(tag Tag, ctx C) (int, error) {
	updated := 0
	for _, sc := range s.systems {
		if !sc.system.Tags().Has(tag) {
			continue
		}
		members := append([]Entity(nil), sc.members...)
		for _, e := range members {
			ok, err := sc.system.UpdateEntity(s.world, e, ctx)
			if err != nil {
				return updated, fmt.Errorf("%s: entity %s: %w", sc.system.Name(), e, err)
			}
			if ok {
				updated++
			}
		}
	}
	return updated, nil
}

// Members returns the entities registered with the named system.
func (s *Scheduler[C]) Members(name string) []Entity {
	for _, sc := range s.systems {
		if sc.system.Name() == name {
			return append([]Entity(nil), sc.members...)
		}
	}
	return nil
}

// Systems returns the systems in update order.
func (s *Scheduler[C]) Systems() []System[C] {
	out := make([]System[C], 0, len(s.systems))
	for _, sc := range s.systems {
		out = append(out, sc.system)
	}
	return out
}

// World returns the world the scheduler reads entities from.
func (s *Scheduler[C]) World() *World {
	return s.world
}
