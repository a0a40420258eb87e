package spancoll

import (
	"iter"

	"go.llib.dev/spankit/pkg/bufkit"
	"go.llib.dev/spankit/pkg/seqkit"
)

// Set is a growable, buffer-backed set of unique keys in insertion order.
//
// There is no hashing: membership and uniqueness are established by a linear
// scan on every insert. This is a deliberate tradeoff for small, often
// stack-resident collections where scan cost is dominated by cache locality.
// Use HashSet when the collection grows large enough for hashing to win.
//
// The zero value is an empty Set using native == equality,
// renting from the default pool on first write.
type Set[K comparable] struct {
	buf bufkit.Buffer[K]
	eq  Comparer[K]
}

// NewSet creates an empty Set with at least the given capacity pre-rented.
func NewSet[K comparable](capacity int) (*Set[K], error) {
	var s Set[K]
	if _, err := s.EnsureCapacity(capacity); err != nil {
		return nil, err
	}
	return &s, nil
}

// SetOn creates a Set on top of caller-supplied memory.
// The memory is treated as empty capacity; it is never returned to a pool.
func SetOn[K comparable](mem []K) *Set[K] {
	return &Set[K]{buf: bufkit.Borrowed(mem)}
}

// SetFrom creates a Set populated from the given sequence,
// silently skipping duplicate values.
func SetFrom[K comparable](in seqkit.Input[K]) (*Set[K], error) {
	var s Set[K]
	if err := s.UnionWith(in); err != nil {
		return nil, err
	}
	return &s, nil
}

// WithComparer fixes a custom equality relation for the set.
// It must be called before the first element is added and panics otherwise:
// changing the relation of a populated set would corrupt its uniqueness.
func (s *Set[K]) WithComparer(eq Comparer[K]) *Set[K] {
	if s.buf.Len() != 0 {
		panic("spancoll: the comparer must be fixed before the first element")
	}
	s.eq = eq
	return s
}

// WithPool sets the pool the set rents from.
// It only has an effect before the first pool-owned acquisition.
func (s *Set[K]) WithPool(pool bufkit.Pool[K]) *Set[K] {
	s.buf.WithPool(pool)
	return s
}

func (s *Set[K]) live() []K { return s.buf.Data()[:s.buf.Len()] }

// move relocates the forward-packed live region during buffer replacement.
func (s *Set[K]) move(src, dst []K) {
	copy(dst, src[:s.buf.Len()])
}

// Len returns the number of elements in the set.
func (s *Set[K]) Len() int { return s.buf.Len() }

// Cap returns the current buffer capacity.
func (s *Set[K]) Cap() int { return s.buf.Cap() }

// SetLen sets the live count directly without initialising the slots.
// The caller is responsible for the uniqueness of out-of-band content.
func (s *Set[K]) SetLen(n int) error { return s.buf.SetLen(n) }

// EnsureCapacity guarantees Cap() >= capacity and returns the capacity.
func (s *Set[K]) EnsureCapacity(capacity int) (int, error) {
	return s.buf.EnsureCapacity(capacity, s.move)
}

// SetCap adjusts the capacity to the requested value.
func (s *Set[K]) SetCap(n int) error { return s.buf.SetCap(n, s.move) }

// TrimExcess releases excess capacity
// unless the buffer occupancy makes trimming pointless.
func (s *Set[K]) TrimExcess() { s.buf.TrimExcess(s.move) }

// Add inserts v, failing with ErrDuplicateKey when it is already present.
func (s *Set[K]) Add(v K) error {
	if s.Contains(v) {
		return ErrDuplicateKey.F("%v", v)
	}
	return s.push(v)
}

// TryAdd inserts v unless it is already present,
// reporting whether the set changed.
func (s *Set[K]) TryAdd(v K) (bool, error) {
	if s.Contains(v) {
		return false, nil
	}
	if err := s.push(v); err != nil {
		return false, err
	}
	return true, nil
}

// Put inserts v, overwriting the stored element that equals it.
// Overwriting matters with a custom comparer,
// where equal values can still differ.
func (s *Set[K]) Put(v K) error {
	if index := indexOf(s.live(), v, s.eq); index != -1 {
		s.buf.Data()[index] = v
		return nil
	}
	return s.push(v)
}

// push appends without a membership check.
func (s *Set[K]) push(v K) error {
	if err := s.reserve(1); err != nil {
		return err
	}
	count := s.buf.Len()
	s.buf.Data()[count] = v
	return s.buf.SetLen(count + 1)
}

// Remove removes v, reporting whether an element was removed.
func (s *Set[K]) Remove(v K) bool {
	index := indexOf(s.live(), v, s.eq)
	if index == -1 {
		return false
	}
	_ = s.RemoveAt(index)
	return true
}

// RemoveAt removes the element at the given insertion-order index,
// shifting the tail left.
func (s *Set[K]) RemoveAt(index int) error {
	count := s.buf.Len()
	if index < 0 || count <= index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, count)
	}
	data := s.buf.Data()
	copy(data[index:count-1], data[index+1:count])
	var zero K
	data[count-1] = zero
	return s.buf.SetLen(count - 1)
}

// RemoveWhere removes every element matching the predicate in a single
// compaction pass and returns the number of removed elements.
func (s *Set[K]) RemoveWhere(pred func(K) bool) (int, error) {
	if pred == nil {
		return 0, ErrNilArgument.F("predicate")
	}
	return s.compact(func(i int, v K) bool { return !pred(v) }), nil
}

// Contains reports whether the set contains v.
func (s *Set[K]) Contains(v K) bool {
	return indexOf(s.live(), v, s.eq) != -1
}

// IndexOf returns the insertion-order index of v, or -1.
func (s *Set[K]) IndexOf(v K) int { return indexOf(s.live(), v, s.eq) }

// Lookup returns the element at the given insertion-order index.
func (s *Set[K]) Lookup(index int) (K, bool) {
	if index < 0 || s.buf.Len() <= index {
		var zero K
		return zero, false
	}
	return s.buf.Data()[index], true
}

// Clear removes every element, keeping the capacity.
func (s *Set[K]) Clear() {
	clear(s.live())
	_ = s.buf.SetLen(0)
}

// CopyTo copies every element into dst in insertion order.
// It fails without copying when dst cannot hold all of them.
func (s *Set[K]) CopyTo(dst []K) error {
	if s.buf.Len() > len(dst) {
		return ErrInvalidRange.F("destination length %d with %d elements", len(dst), s.buf.Len())
	}
	copy(dst, s.live())
	return nil
}

// CopyTruncated copies as many elements as dst can hold in insertion order,
// returning the number of copied elements.
func (s *Set[K]) CopyTruncated(dst []K) int {
	return copy(dst, s.live())
}

// ToSlice returns the elements in insertion order as a freshly allocated slice.
func (s *Set[K]) ToSlice() []K {
	out := make([]K, s.buf.Len())
	copy(out, s.live())
	return out
}

// ToHashSet converts the set into a HashSet with O(1) membership,
// for callers whose collection has outgrown linear scan.
// Only sets with native equality can convert.
func (s *Set[K]) ToHashSet() *HashSet[K] {
	if s.eq != nil {
		panic("spancoll: a custom comparer can not be carried over to a HashSet")
	}
	var hs HashSet[K]
	hs.Append(s.live()...)
	return &hs
}

// Iter yields the elements in insertion order.
func (s *Set[K]) Iter() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < s.buf.Len(); i++ {
			if !yield(s.buf.Data()[i]) {
				return
			}
		}
	}
}

// All implements seqkit.Input.
func (s *Set[K]) All() iter.Seq[K] { return s.Iter() }

// TryLen implements seqkit.Input.
func (s *Set[K]) TryLen() (int, bool) { return s.buf.Len(), true }

// TrySlice implements seqkit.Input.
// The view is only valid until the set is modified.
func (s *Set[K]) TrySlice() ([]K, bool) { return s.live(), true }

// Release clears every slot and disposes the backing buffer,
// returning pool-owned memory to its pool exactly once.
// The set resets to its empty zero state, keeping its comparer.
func (s *Set[K]) Release() { s.buf.Release() }

func (s *Set[K]) reserve(n int) error {
	if n <= s.buf.Cap()-s.buf.Len() {
		return nil
	}
	return s.buf.Grow(n, s.move)
}

// compact keeps the elements for which keep reports true,
// preserving insertion order, and returns the number of removed elements.
func (s *Set[K]) compact(keep func(index int, v K) bool) int {
	var (
		data  = s.buf.Data()
		count = s.buf.Len()
		kept  = 0
	)
	for i := 0; i < count; i++ {
		if !keep(i, data[i]) {
			continue
		}
		data[kept] = data[i]
		kept++
	}
	clear(data[kept:count])
	_ = s.buf.SetLen(kept)
	return count - kept
}
