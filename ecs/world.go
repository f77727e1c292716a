package ecs

import (
	"errors"
	"fmt"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
)

var (
	// ErrUnknownEntity is returned for ids that were never created or have
	// been destroyed.
	ErrUnknownEntity = errors.New("ecs: unknown entity")
	// ErrMissingComponent is returned by Get when the entity lacks the kind.
	// Callers are expected to check Has first; hitting it is a programming
	// error in a system or a level descriptor.
	ErrMissingComponent = errors.New("ecs: missing component")
	// ErrInvalidSystem is returned when a system requires no components.
	ErrInvalidSystem        = errors.New("ecs: invalid system")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type storage interface {
	remove(e Entity) bool
	len() int
}

// World owns entity ids and one component store per kind.
type World struct {
	nextID     Entity
	signatures map[Entity]Signature
	order      []Entity
	stores     map[component.ComponentID]storage
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		signatures: map[Entity]Signature{},
		stores:     map[component.ComponentID]storage{},
	}
}

// CreateEntity allocates the next id with an empty component set. It never
// fails.
func CreateEntity(w *World) Entity {
	w.nextID++
	e := w.nextID
	w.signatures[e] = 0
	w.order = append(w.order, e)
	return e
}

// DestroyEntity drops e and all of its components. The id is not reused.
// Systems holding e must be told separately through Systems.Unregister.
func DestroyEntity(w *World, e Entity) bool {
	sig, ok := w.signatures[e]
	if !ok {
		return false
	}
	for id, s := range w.stores {
		if sig.Has(id) {
			s.remove(e)
		}
	}
	delete(w.signatures, e)
	for i, other := range w.order {
		if other == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	_, ok := w.signatures[e]
	return ok
}

// Entities returns the live entities in creation order.
func Entities(w *World) []Entity {
	out := make([]Entity, len(w.order))
	copy(out, w.order)
	return out
}

// SignatureOfEntity returns the component kinds currently attached to e.
func SignatureOfEntity(w *World, e Entity) (Signature, error) {
	sig, ok := w.signatures[e]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	return sig, nil
}
