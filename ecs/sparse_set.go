package ecs

// sparseSet stores component values keyed by entity. Values are held by
// value: get hands out a copy and set overwrites the stored copy.
type sparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

func (s *sparseSet[T]) has(e Entity) bool {
	if s == nil || e == 0 || int(e-1) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[e-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == e
}

func (s *sparseSet[T]) get(e Entity) (T, bool) {
	var zero T
	if !s.has(e) {
		return zero, false
	}
	return s.denseValues[s.sparse[e-1]], true
}

func (s *sparseSet[T]) set(e Entity, v T) {
	if e == 0 {
		return
	}
	for int(e-1) >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(e) {
		s.denseValues[s.sparse[e-1]] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[e-1] = len(s.denseEntities) - 1
}

func (s *sparseSet[T]) remove(e Entity) bool {
	if !s.has(e) {
		return false
	}
	idx := s.sparse[e-1]
	last := len(s.denseEntities) - 1
	lastEntity := s.denseEntities[last]

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastEntity-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[e-1] = -1
	return true
}

func (s *sparseSet[T]) len() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}

func (s *sparseSet[T]) entities() []Entity {
	if s == nil {
		return nil
	}
	return s.denseEntities
}
