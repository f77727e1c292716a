package ecs

import (
	"math/bits"

	"github.com/ncskier/CapriciousCroissants-sub000/ecs/component"
)

// Signature is the set of component kinds attached to an entity, or required
// by a system.
type Signature uint64

func SignatureOf(ids ...component.ComponentID) Signature {
	var s Signature
	for _, id := range ids {
		s = s.With(id)
	}
	return s
}

func (s Signature) With(id component.ComponentID) Signature {
	return s | 1<<id
}

func (s Signature) Without(id component.ComponentID) Signature {
	return s &^ (1 << id)
}

func (s Signature) Has(id component.ComponentID) bool {
	return s&(1<<id) != 0
}

// Contains reports whether every kind in other is also in s.
func (s Signature) Contains(other Signature) bool {
	return s&other == other
}

func (s Signature) Empty() bool {
	return s == 0
}

func (s Signature) Len() int {
	return bits.OnesCount64(uint64(s))
}
