package spancoll

import (
	"iter"
	"slices"

	"go.llib.dev/spankit/pkg/bufkit"
	"go.llib.dev/spankit/pkg/seqkit"
)

// List is a growable, buffer-backed list.
// Live elements occupy the forward-packed region [0, Len) of the buffer.
//
// The zero value is an empty List that rents from the default pool
// on first write.
type List[T comparable] struct {
	buf bufkit.Buffer[T]
}

// NewList creates an empty List with at least the given capacity pre-rented.
func NewList[T comparable](capacity int) (*List[T], error) {
	var l List[T]
	if _, err := l.EnsureCapacity(capacity); err != nil {
		return nil, err
	}
	return &l, nil
}

// ListOn creates a List on top of caller-supplied memory.
// The memory is treated as empty capacity; it is never returned to a pool.
func ListOn[T comparable](mem []T) *List[T] {
	return &List[T]{buf: bufkit.Borrowed(mem)}
}

// ListFrom creates a List populated from the given sequence.
func ListFrom[T comparable](in seqkit.Input[T]) (*List[T], error) {
	var l List[T]
	if err := l.AppendSeq(in); err != nil {
		return nil, err
	}
	return &l, nil
}

// WithPool sets the pool the list rents from.
// It only has an effect before the first pool-owned acquisition.
func (l *List[T]) WithPool(pool bufkit.Pool[T]) *List[T] {
	l.buf.WithPool(pool)
	return l
}

func (l *List[T]) live() []T { return l.buf.Data()[:l.buf.Len()] }

// move relocates the forward-packed live region during buffer replacement.
func (l *List[T]) move(src, dst []T) {
	copy(dst, src[:l.buf.Len()])
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return l.buf.Len() }

// Cap returns the current buffer capacity.
func (l *List[T]) Cap() int { return l.buf.Cap() }

// SetLen sets the live count directly without initialising the slots.
// It is an escape hatch for callers who populate the buffer out-of-band.
func (l *List[T]) SetLen(n int) error { return l.buf.SetLen(n) }

// EnsureCapacity guarantees Cap() >= capacity and returns the capacity.
func (l *List[T]) EnsureCapacity(capacity int) (int, error) {
	return l.buf.EnsureCapacity(capacity, l.move)
}

// SetCap adjusts the capacity to the requested value.
// It fails when the request is below the current count.
func (l *List[T]) SetCap(n int) error { return l.buf.SetCap(n, l.move) }

// TrimExcess releases excess capacity
// unless the buffer occupancy makes trimming pointless.
func (l *List[T]) TrimExcess() { l.buf.TrimExcess(l.move) }

// Lookup returns the element at the given index.
func (l *List[T]) Lookup(index int) (T, bool) {
	if index < 0 || l.buf.Len() <= index {
		var zero T
		return zero, false
	}
	return l.buf.Data()[index], true
}

// Set overwrites the element at the given index.
func (l *List[T]) Set(index int, v T) error {
	if index < 0 || l.buf.Len() <= index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, l.buf.Len())
	}
	l.buf.Data()[index] = v
	return nil
}

// Append adds the given values to the end of the list.
func (l *List[T]) Append(vs ...T) error {
	if len(vs) == 0 {
		return nil
	}
	if err := l.reserve(len(vs)); err != nil {
		return err
	}
	count := l.buf.Len()
	copy(l.buf.Data()[count:], vs)
	return l.buf.SetLen(count + len(vs))
}

// AppendSeq adds every value of the sequence to the end of the list.
// Single-use sequences are consumed exactly once.
func (l *List[T]) AppendSeq(in seqkit.Input[T]) error {
	if in == nil {
		return ErrNilArgument.F("input sequence")
	}
	if vs, ok := in.TrySlice(); ok {
		return l.Append(vs...)
	}
	if n, ok := in.TryLen(); ok {
		if err := l.reserve(n); err != nil {
			return err
		}
	}
	for v := range in.All() {
		if err := l.Append(v); err != nil {
			return err
		}
	}
	return nil
}

// AppendSpan reserves n slots at the end of the list and returns them
// for direct writing. The slots hold zero values until written.
func (l *List[T]) AppendSpan(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidRange.F("span length %d", n)
	}
	if err := l.reserve(n); err != nil {
		return nil, err
	}
	count := l.buf.Len()
	if err := l.buf.SetLen(count + n); err != nil {
		return nil, err
	}
	span := l.buf.Data()[count : count+n]
	clear(span)
	return span, nil
}

// Insert places the given values at the given index,
// shifting the tail of the list right.
func (l *List[T]) Insert(index int, vs ...T) error {
	count := l.buf.Len()
	if index < 0 || count < index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, count)
	}
	if len(vs) == 0 {
		return nil
	}
	if err := l.reserve(len(vs)); err != nil {
		return err
	}
	data := l.buf.Data()
	copy(data[index+len(vs):count+len(vs)], data[index:count])
	copy(data[index:], vs)
	return l.buf.SetLen(count + len(vs))
}

// InsertSeq places every value of the sequence at the given index,
// preserving the sequence order. Single-use sequences are consumed once.
func (l *List[T]) InsertSeq(index int, in seqkit.Input[T]) error {
	if in == nil {
		return ErrNilArgument.F("input sequence")
	}
	if index < 0 || l.buf.Len() < index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, l.buf.Len())
	}
	if vs, ok := in.TrySlice(); ok {
		return l.Insert(index, vs...)
	}
	if n, ok := in.TryLen(); ok {
		if err := l.reserve(n); err != nil {
			return err
		}
		count := l.buf.Len()
		data := l.buf.Data()
		copy(data[index+n:count+n], data[index:count])
		var i = index
		for v := range in.All() {
			if count+n <= i {
				break // the sequence was longer than its reported length
			}
			data[i] = v
			i++
		}
		return l.buf.SetLen(count + n)
	}
	// unknown length: materialise first so a partially consumed sequence
	// can not leave the list half mutated
	vs := seqkit.Collect(in)
	return l.Insert(index, vs...)
}

// RemoveAt removes the element at the given index,
// shifting the tail of the list left.
func (l *List[T]) RemoveAt(index int) error {
	count := l.buf.Len()
	if index < 0 || count <= index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, count)
	}
	data := l.buf.Data()
	copy(data[index:count-1], data[index+1:count])
	var zero T
	data[count-1] = zero
	return l.buf.SetLen(count - 1)
}

// RemoveRange removes length elements starting at the given index.
func (l *List[T]) RemoveRange(index, length int) error {
	count := l.buf.Len()
	if index < 0 || length < 0 || count < index+length {
		return ErrInvalidRange.F("range [%d, %d+%d) with length %d", index, index, length, count)
	}
	if length == 0 {
		return nil
	}
	data := l.buf.Data()
	copy(data[index:], data[index+length:count])
	clear(data[count-length : count])
	return l.buf.SetLen(count - length)
}

// Remove removes the first occurrence of v,
// reporting whether an element was removed.
func (l *List[T]) Remove(v T) bool {
	index := indexOf(l.live(), v, nil)
	if index == -1 {
		return false
	}
	_ = l.RemoveAt(index)
	return true
}

// RemoveAll removes every element matching the predicate in a single
// compaction pass and returns the number of removed elements.
func (l *List[T]) RemoveAll(pred func(T) bool) (int, error) {
	if pred == nil {
		return 0, ErrNilArgument.F("predicate")
	}
	var (
		data  = l.buf.Data()
		count = l.buf.Len()
		keep  = 0
	)
	for i := 0; i < count; i++ {
		if pred(data[i]) {
			continue
		}
		data[keep] = data[i]
		keep++
	}
	clear(data[keep:count])
	_ = l.buf.SetLen(keep)
	return count - keep, nil
}

// Contains reports whether the list contains v.
func (l *List[T]) Contains(v T) bool { return l.IndexOf(v) != -1 }

// IndexOf returns the index of the first occurrence of v, or -1.
func (l *List[T]) IndexOf(v T) int { return indexOf(l.live(), v, nil) }

// IndexOfFrom returns the index of the first occurrence of v
// at or after the start index, or -1.
func (l *List[T]) IndexOfFrom(v T, start int) (int, error) {
	count := l.buf.Len()
	if start < 0 || count < start {
		return -1, ErrIndexOutOfRange.F("start index %d with length %d", start, count)
	}
	index := indexOf(l.live()[start:], v, nil)
	if index == -1 {
		return -1, nil
	}
	return start + index, nil
}

// LastIndexOf returns the index of the last occurrence of v, or -1.
func (l *List[T]) LastIndexOf(v T) int { return lastIndexOf(l.live(), v, nil) }

// LastIndexOfFrom returns the index of the last occurrence of v
// at or before the start index, or -1.
//
// On an empty list it returns -1 for any start index,
// even one that would otherwise be rejected as out of range.
func (l *List[T]) LastIndexOfFrom(v T, start int) (int, error) {
	count := l.buf.Len()
	if count == 0 {
		return -1, nil
	}
	if start < 0 || count <= start {
		return -1, ErrIndexOutOfRange.F("start index %d with length %d", start, count)
	}
	return lastIndexOf(l.buf.Data()[:start+1], v, nil), nil
}

// Find returns the first element matching the predicate.
func (l *List[T]) Find(pred func(T) bool) (T, bool, error) {
	var zero T
	if pred == nil {
		return zero, false, ErrNilArgument.F("predicate")
	}
	index := indexWhere(l.live(), pred)
	if index == -1 {
		return zero, false, nil
	}
	return l.buf.Data()[index], true, nil
}

// FindLast returns the last element matching the predicate.
func (l *List[T]) FindLast(pred func(T) bool) (T, bool, error) {
	var zero T
	if pred == nil {
		return zero, false, ErrNilArgument.F("predicate")
	}
	index := lastIndexWhere(l.live(), pred)
	if index == -1 {
		return zero, false, nil
	}
	return l.buf.Data()[index], true, nil
}

// FindIndex returns the index of the first element matching the predicate, or -1.
func (l *List[T]) FindIndex(pred func(T) bool) (int, error) {
	if pred == nil {
		return -1, ErrNilArgument.F("predicate")
	}
	return indexWhere(l.live(), pred), nil
}

// FindLastIndex returns the index of the last element matching the predicate, or -1.
func (l *List[T]) FindLastIndex(pred func(T) bool) (int, error) {
	if pred == nil {
		return -1, ErrNilArgument.F("predicate")
	}
	return lastIndexWhere(l.live(), pred), nil
}

// FindLastIndexFrom returns the index of the last element matching the
// predicate at or before the start index, or -1.
//
// The predicate is checked before anything else, and an empty list yields -1
// for any start index, even one that would otherwise be rejected.
func (l *List[T]) FindLastIndexFrom(pred func(T) bool, start int) (int, error) {
	if pred == nil {
		return -1, ErrNilArgument.F("predicate")
	}
	count := l.buf.Len()
	if count == 0 {
		return -1, nil
	}
	if start < 0 || count <= start {
		return -1, ErrIndexOutOfRange.F("start index %d with length %d", start, count)
	}
	return lastIndexWhere(l.buf.Data()[:start+1], pred), nil
}

// Sort orders the live region with the given comparison function.
func (l *List[T]) Sort(cmp func(a, b T) int) error {
	if cmp == nil {
		return ErrNilArgument.F("comparison function")
	}
	slices.SortFunc(l.live(), cmp)
	return nil
}

// Reverse reverses the live region in place.
func (l *List[T]) Reverse() { slices.Reverse(l.live()) }

// BinarySearch finds v in a list sorted by the given comparison function.
// It returns the position where v was found, or the position where it would
// appear in sort order, together with whether it was found.
func (l *List[T]) BinarySearch(v T, cmp func(a, b T) int) (int, bool, error) {
	if cmp == nil {
		return 0, false, ErrNilArgument.F("comparison function")
	}
	index, found := slices.BinarySearchFunc(l.live(), v, cmp)
	return index, found, nil
}

// Clear removes every element, keeping the capacity.
func (l *List[T]) Clear() {
	clear(l.live())
	_ = l.buf.SetLen(0)
}

// CopyTo copies every element into dst.
// It fails without copying when dst cannot hold all of them.
func (l *List[T]) CopyTo(dst []T) error {
	if l.buf.Len() > len(dst) {
		return ErrInvalidRange.F("destination length %d with %d elements", len(dst), l.buf.Len())
	}
	copy(dst, l.live())
	return nil
}

// CopyTruncated copies as many elements as dst can hold,
// returning the number of copied elements.
func (l *List[T]) CopyTruncated(dst []T) int {
	return copy(dst, l.live())
}

// ToSlice returns the elements as a freshly allocated slice.
func (l *List[T]) ToSlice() []T {
	out := make([]T, l.buf.Len())
	copy(out, l.live())
	return out
}

// Iter yields the elements in index order.
func (l *List[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < l.buf.Len(); i++ {
			if !yield(l.buf.Data()[i]) {
				return
			}
		}
	}
}

// All implements seqkit.Input.
func (l *List[T]) All() iter.Seq[T] { return l.Iter() }

// TryLen implements seqkit.Input.
func (l *List[T]) TryLen() (int, bool) { return l.buf.Len(), true }

// TrySlice implements seqkit.Input.
// The view is only valid until the list is modified.
func (l *List[T]) TrySlice() ([]T, bool) { return l.live(), true }

// Release clears every slot and disposes the backing buffer,
// returning pool-owned memory to its pool exactly once.
// The list resets to its empty zero state.
func (l *List[T]) Release() { l.buf.Release() }

func (l *List[T]) reserve(n int) error {
	if n <= l.buf.Cap()-l.buf.Len() {
		return nil
	}
	return l.buf.Grow(n, l.move)
}
