package board

// orderedSet keeps insertion order so draining it is deterministic.
type orderedSet[T comparable] struct {
	items []T
	index map[T]struct{}
}

func (s *orderedSet[T]) add(v T) bool {
	if s.index == nil {
		s.index = map[T]struct{}{}
	}
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.items = append(s.items, v)
	return true
}

func (s *orderedSet[T]) has(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *orderedSet[T]) len() int {
	return len(s.items)
}

func (s *orderedSet[T]) slice() []T {
	return append([]T(nil), s.items...)
}

func (s *orderedSet[T]) clear() {
	s.items = nil
	s.index = nil
}
