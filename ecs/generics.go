package ecs

import (
	"fmt"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
)

// Add attaches value to e, overwriting any previous value of the same kind.
// The store keeps its own copy of value.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value T) error {
	sig, ok := w.signatures[e]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	s, err := storeFor(w, kind)
	if err != nil {
		return err
	}
	s.set(e, value)
	w.signatures[e] = sig.With(kind.ID())
	return nil
}

// Get returns a copy of the component of kind attached to e. Changes to the
// copy are not seen by anyone until they are written back with Add.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (T, error) {
	var zero T
	if _, ok := w.signatures[e]; !ok {
		return zero, fmt.Errorf("%w: %s", ErrUnknownEntity, e)
	}
	s, err := storeFor(w, kind)
	if err != nil {
		return zero, err
	}
	v, ok := s.get(e)
	if !ok {
		return zero, fmt.Errorf("%w: kind %d on entity %s", ErrMissingComponent, kind.ID(), e)
	}
	return v, nil
}

// Has reports whether e carries a component of kind. Unknown entities have
// nothing.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	sig, ok := w.signatures[e]
	return ok && sig.Has(kind.ID())
}

// Remove detaches the component of kind from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	sig, ok := w.signatures[e]
	if !ok || !sig.Has(kind.ID()) {
		return false
	}
	s, err := storeFor(w, kind)
	if err != nil {
		return false
	}
	s.remove(e)
	w.signatures[e] = sig.Without(kind.ID())
	return true
}

// Mutate is the read-modify-write cycle systems use: it gets a copy, lets fn
// change it and stores the result.
func Mutate[T any](w *World, e Entity, kind component.ComponentKind[T], fn func(*T)) error {
	v, err := Get(w, e, kind)
	if err != nil {
		return err
	}
	fn(&v)
	return Add(w, e, kind, v)
}

// ForEach calls fn with a copy of every component of kind. Entities are
// visited in the order they received the component; fn may add or remove
// components.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, T)) {
	s, err := storeFor(w, kind)
	if err != nil || s.len() == 0 {
		return
	}
	ents := append([]Entity(nil), s.entities()...)
	for _, e := range ents {
		v, ok := s.get(e)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// Count returns how many entities carry kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	s, err := storeFor(w, kind)
	if err != nil {
		return 0
	}
	return s.len()
}

// storeFor returns the store for kind, creating it on first use.
func storeFor[T any](w *World, kind component.ComponentKind[T]) (*sparseSet[T], error) {
	if !kind.Valid() {
		return nil, ErrInvalidComponentKind
	}
	existing, ok := w.stores[kind.ID()]
	if !ok {
		s := &sparseSet[T]{}
		w.stores[kind.ID()] = s
		return s, nil
	}
	s, ok := existing.(*sparseSet[T])
	if !ok {
		return nil, fmt.Errorf("%w: id %d registered with another type", ErrInvalidComponentKind, kind.ID())
	}
	return s, nil
}
