package ecs

import "strconv"

// Entity is an opaque identifier. Identifiers come from a monotonically
// increasing counter and are never reused, even after DestroyEntity.
type Entity uint64

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
