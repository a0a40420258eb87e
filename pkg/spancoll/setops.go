package spancoll

import (
	"go.llib.dev/spankit/pkg/seqkit"
)

// The set-algebra operations accept any seqkit.Input, including one backed by
// a non-restartable iterator: every general-path algorithm makes exactly one
// pass over the other sequence, and tolerates duplicate values in it by
// tracking already-seen positions of this set in a bitset sized to the count
// at the start of the pass. Mutation happens after the pass in a single
// batched compaction, never mid-scan.
//
// Two fast paths precede the general path:
//   - the other operand is this very set: the answer is trivial;
//   - the other operand is hash-backed (HashSet) and this set uses native
//     equality: membership probes become O(1), bounding the whole operation
//     by the size of one operand.

// hashMembership is the shape of a hash-backed operand the algebra engine
// can delegate membership tests to. The operand must use native == equality,
// so the delegation only happens for sets without a custom comparer.
type hashMembership[K comparable] interface {
	Has(K) bool
	Sizer
}

// UnionWith adds every value of the other sequence that is not yet present.
func (s *Set[K]) UnionWith(other seqkit.Input[K]) error {
	if other == nil {
		return ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		return nil
	}
	if n, ok := other.TryLen(); ok {
		// pessimistically assume all values are new
		if _, err := s.EnsureCapacity(s.buf.Len() + n); err != nil {
			return err
		}
	}
	for v := range other.All() {
		if _, err := s.TryAdd(v); err != nil {
			return err
		}
	}
	return nil
}

// IntersectWith keeps only the values that also appear in the other sequence.
func (s *Set[K]) IntersectWith(other seqkit.Input[K]) error {
	if other == nil {
		return ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) || s.buf.Len() == 0 {
		return nil
	}
	if h, ok := s.hashOperand(other); ok {
		s.compact(func(i int, v K) bool { return h.Has(v) })
		return nil
	}
	// mark every position found in the other sequence,
	// then drop the unmarked ones in one batched compaction
	var (
		live  = s.live()
		found = makeBitset(len(live))
	)
	for v := range other.All() {
		if index := indexOf(live, v, s.eq); index != -1 {
			found.set(index)
		}
	}
	s.compact(func(i int, v K) bool { return found.has(i) })
	return nil
}

// ExceptWith removes every value that appears in the other sequence.
func (s *Set[K]) ExceptWith(other seqkit.Input[K]) error {
	if other == nil {
		return ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		s.Clear()
		return nil
	}
	if s.buf.Len() == 0 {
		return nil
	}
	if h, ok := s.hashOperand(other); ok {
		s.compact(func(i int, v K) bool { return !h.Has(v) })
		return nil
	}
	// direct removal is safe here: a duplicate in the other sequence
	// simply misses on its second occurrence
	for v := range other.All() {
		s.Remove(v)
	}
	return nil
}

// SymmetricExceptWith turns the set into the symmetric difference with the
// other sequence: values in exactly one of the two sides remain.
func (s *Set[K]) SymmetricExceptWith(other seqkit.Input[K]) error {
	if other == nil {
		return ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		s.Clear()
		return nil
	}
	if s.buf.Len() == 0 {
		return s.UnionWith(other)
	}
	if _, ok := s.hashOperand(other); ok {
		// a hash operand holds no duplicates, so every value toggles once
		for v := range other.All() {
			if !s.Remove(v) {
				if err := s.push(v); err != nil {
					return err
				}
			}
		}
		return nil
	}
	// One tracker marks original positions slated for removal. Values
	// appended during this pass sit at positions >= n, which is what keeps
	// a later duplicate in the other sequence from removing them again;
	// the position boundary takes the role of a second "added" tracker.
	var (
		n        = s.buf.Len()
		toRemove = makeBitset(n)
	)
	for v := range other.All() {
		index := indexOf(s.live(), v, s.eq)
		switch {
		case index == -1:
			if err := s.push(v); err != nil {
				return err
			}
		case index < n:
			toRemove.set(index)
		}
	}
	s.compact(func(i int, v K) bool { return n <= i || !toRemove.has(i) })
	return nil
}

// IsSubsetOf reports whether every value of the set appears
// in the other sequence.
func (s *Set[K]) IsSubsetOf(other seqkit.Input[K]) (bool, error) {
	if other == nil {
		return false, ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		return true, nil
	}
	if s.buf.Len() == 0 {
		return true, nil
	}
	if h, ok := s.hashOperand(other); ok {
		if h.Len() < s.buf.Len() {
			return false, nil
		}
		return s.allIn(h), nil
	}
	unique, _ := s.countUniqueAndUnfound(other, false)
	return unique == s.buf.Len(), nil
}

// IsProperSubsetOf reports whether the set is a subset of the other sequence
// and the other sequence holds at least one value outside the set.
func (s *Set[K]) IsProperSubsetOf(other seqkit.Input[K]) (bool, error) {
	if other == nil {
		return false, ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		return false, nil
	}
	if h, ok := s.hashOperand(other); ok {
		if h.Len() <= s.buf.Len() {
			return false, nil
		}
		return s.allIn(h), nil
	}
	unique, unfound := s.countUniqueAndUnfound(other, false)
	return unique == s.buf.Len() && 0 < unfound, nil
}

// IsSupersetOf reports whether the set contains every value
// of the other sequence.
func (s *Set[K]) IsSupersetOf(other seqkit.Input[K]) (bool, error) {
	if other == nil {
		return false, ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		return true, nil
	}
	// scan the other side, aborting on the first value we do not hold
	for v := range other.All() {
		if !s.Contains(v) {
			return false, nil
		}
	}
	return true, nil
}

// IsProperSupersetOf reports whether the set contains every value of the
// other sequence and at least one more.
func (s *Set[K]) IsProperSupersetOf(other seqkit.Input[K]) (bool, error) {
	if other == nil {
		return false, ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		return false, nil
	}
	if s.buf.Len() == 0 {
		return false, nil
	}
	if h, ok := s.hashOperand(other); ok {
		if s.buf.Len() <= h.Len() {
			return false, nil
		}
		return s.holdsAllOf(other), nil
	}
	unique, unfound := s.countUniqueAndUnfound(other, true)
	return unfound == 0 && unique < s.buf.Len(), nil
}

// Overlaps reports whether the set shares at least one value
// with the other sequence.
func (s *Set[K]) Overlaps(other seqkit.Input[K]) (bool, error) {
	if other == nil {
		return false, ErrNilArgument.F("other sequence")
	}
	if s.buf.Len() == 0 {
		return false, nil
	}
	if s.isSelf(other) {
		return true, nil
	}
	for v := range other.All() {
		if s.Contains(v) {
			return true, nil
		}
	}
	return false, nil
}

// SetEquals reports whether the set and the other sequence hold exactly
// the same values, ignoring duplicates in the other sequence.
func (s *Set[K]) SetEquals(other seqkit.Input[K]) (bool, error) {
	if other == nil {
		return false, ErrNilArgument.F("other sequence")
	}
	if s.isSelf(other) {
		return true, nil
	}
	if h, ok := s.hashOperand(other); ok {
		if h.Len() != s.buf.Len() {
			return false, nil
		}
		return s.allIn(h), nil
	}
	unique, unfound := s.countUniqueAndUnfound(other, true)
	return unfound == 0 && unique == s.buf.Len(), nil
}

// isSelf reports whether the other operand is this very set,
// which shares buffer, count and comparer identity by definition.
func (s *Set[K]) isSelf(other seqkit.Input[K]) bool {
	oth, ok := other.(*Set[K])
	return ok && oth == s
}

// hashOperand returns the other operand as a hash-backed membership
// structure when it is one and shares this set's equality relation.
func (s *Set[K]) hashOperand(other seqkit.Input[K]) (hashMembership[K], bool) {
	if s.eq != nil {
		return nil, false
	}
	h, ok := other.(hashMembership[K])
	return h, ok
}

// allIn reports whether every element of the set is held by h.
func (s *Set[K]) allIn(h hashMembership[K]) bool {
	for _, v := range s.live() {
		if !h.Has(v) {
			return false
		}
	}
	return true
}

// holdsAllOf reports whether the set contains every value of the sequence.
func (s *Set[K]) holdsAllOf(in seqkit.Input[K]) bool {
	for v := range in.All() {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// countUniqueAndUnfound makes a single pass over the other sequence,
// counting how many distinct positions of this set it hits (unique)
// and how many of its values miss the set entirely (unfound).
// Duplicates in the other sequence are absorbed by the position bitset.
// With abortOnUnfound the scan short-circuits on the first miss.
func (s *Set[K]) countUniqueAndUnfound(other seqkit.Input[K], abortOnUnfound bool) (unique, unfound int) {
	var (
		live  = s.live()
		found = makeBitset(len(live))
	)
	for v := range other.All() {
		index := indexOf(live, v, s.eq)
		if index == -1 {
			unfound++
			if abortOnUnfound {
				return unique, unfound
			}
			continue
		}
		if !found.has(index) {
			found.set(index)
			unique++
		}
	}
	return unique, unfound
}
