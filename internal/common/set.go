package common

// Set is a generic set that remembers insertion order.
type Set[T comparable] struct {
	m     map[T]struct{}
	order []T
}

// NewSet creates a new set from a slice. If the slice is nil, the set is empty.
func NewSet[T comparable](items []T) *Set[T] {
	s := &Set[T]{
		m:     make(map[T]struct{}),
		order: make([]T, 0, len(items)),
	}
	for _, item := range items {
		if _, exists := s.m[item]; !exists {
			s.m[item] = struct{}{}
			s.order = append(s.order, item)
		}
	}
	return s
}

// Add inserts the element into the set.
// Returns true if the element was added (i.e., it wasn't already present).
func (s *Set[T]) Add(item T) bool {
	if _, exists := s.m[item]; exists {
		return false
	}
	s.m[item] = struct{}{}
	s.order = append(s.order, item)
	return true
}

// Remove deletes the element from the set.
// Returns true if the element existed and was removed.
func (s *Set[T]) Remove(item T) bool {
	if _, exists := s.m[item]; !exists {
		return false
	}
	delete(s.m, item)
	for i, v := range s.order {
		if v == item {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Toggle adds the item when absent and removes it when present.
// Returns true if the item is present after the call.
func (s *Set[T]) Toggle(item T) bool {
	if s.Contains(item) {
		s.Remove(item)
		return false
	}
	s.Add(item)
	return true
}

// Contains checks if the item is present in the set.
func (s *Set[T]) Contains(item T) bool {
	_, exists := s.m[item]
	return exists
}

// ToOrderedSlice returns all elements in the set as a slice, preserving insertion order.
func (s *Set[T]) ToOrderedSlice() []T {
	result := make([]T, len(s.order))
	copy(result, s.order)
	return result
}

// Len returns the number of elements in the set.
func (s *Set[T]) Len() int {
	return len(s.m)
}

// Clear removes all elements from the set.
func (s *Set[T]) Clear() {
	s.m = make(map[T]struct{})
	s.order = make([]T, 0)
}
