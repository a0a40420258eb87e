package spancoll

import (
	"iter"
)

// HashSet is a map-backed set that keeps its values in insertion order.
//
// It exists as the hash-based counterpart of Set: the set-algebra engine
// recognises a HashSet operand with native equality and delegates membership
// tests to it, turning every probe into O(1). It is also the conversion
// target for a Set that has outgrown linear scan.
//
// The zero value is an empty, ready to use HashSet.
type HashSet[K comparable] struct {
	index map[K]int
	order []K
}

// HashSetOf creates a HashSet from the given values,
// silently skipping duplicates.
func HashSetOf[K comparable](vs ...K) *HashSet[K] {
	var s HashSet[K]
	s.Append(vs...)
	return &s
}

// Append adds the given values, skipping the ones already present.
func (s *HashSet[K]) Append(vs ...K) {
	for _, v := range vs {
		s.add(v)
	}
}

func (s *HashSet[K]) add(v K) {
	if s.index == nil {
		s.index = make(map[K]int)
	}
	if _, ok := s.index[v]; ok {
		return
	}
	s.index[v] = len(s.order)
	s.order = append(s.order, v)
}

// Has reports whether the set contains v.
func (s *HashSet[K]) Has(v K) bool {
	_, ok := s.index[v]
	return ok
}

// Remove removes v, reporting whether an element was removed.
// Insertion order of the remaining values is preserved.
func (s *HashSet[K]) Remove(v K) bool {
	at, ok := s.index[v]
	if !ok {
		return false
	}
	delete(s.index, v)
	s.order = append(s.order[:at], s.order[at+1:]...)
	for i := at; i < len(s.order); i++ {
		s.index[s.order[i]] = i
	}
	return true
}

// Len returns the number of elements in the set.
func (s *HashSet[K]) Len() int { return len(s.order) }

// ToSlice returns the values in insertion order as a freshly allocated slice.
func (s *HashSet[K]) ToSlice() []K {
	out := make([]K, len(s.order))
	copy(out, s.order)
	return out
}

// Iter yields the values in insertion order.
func (s *HashSet[K]) Iter() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, v := range s.order {
			if !yield(v) {
				return
			}
		}
	}
}

// All implements seqkit.Input.
func (s *HashSet[K]) All() iter.Seq[K] { return s.Iter() }

// TryLen implements seqkit.Input.
func (s *HashSet[K]) TryLen() (int, bool) { return len(s.order), true }

// TrySlice implements seqkit.Input.
// The view is only valid until the set is modified.
func (s *HashSet[K]) TrySlice() ([]K, bool) { return s.order, true }
