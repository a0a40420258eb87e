package spancoll

import (
	"iter"
	"slices"

	"go.llib.dev/spankit/pkg/bufkit"
	"go.llib.dev/spankit/pkg/seqkit"
)

// Stack is a growable, buffer-backed LIFO stack.
// Live elements occupy the end-packed region [Cap-Len, Cap) of the buffer,
// with the top of the stack always at offset Cap-Len.
// Indexing is top-relative: index 0 is the most recently pushed element.
//
// The zero value is an empty Stack that rents from the default pool
// on first write.
type Stack[T comparable] struct {
	buf bufkit.Buffer[T]
}

// NewStack creates an empty Stack with at least the given capacity pre-rented.
func NewStack[T comparable](capacity int) (*Stack[T], error) {
	var s Stack[T]
	if _, err := s.EnsureCapacity(capacity); err != nil {
		return nil, err
	}
	return &s, nil
}

// StackOn creates a Stack on top of caller-supplied memory.
// The memory is treated as empty capacity; it is never returned to a pool.
func StackOn[T comparable](mem []T) *Stack[T] {
	return &Stack[T]{buf: bufkit.Borrowed(mem)}
}

// StackFrom creates a Stack populated from the given sequence.
// The first value of the sequence ends up deepest,
// so popping returns the values in reverse sequence order.
func StackFrom[T comparable](in seqkit.Input[T]) (*Stack[T], error) {
	var s Stack[T]
	if err := s.PushSeq(in); err != nil {
		return nil, err
	}
	return &s, nil
}

// WithPool sets the pool the stack rents from.
// It only has an effect before the first pool-owned acquisition.
func (s *Stack[T]) WithPool(pool bufkit.Pool[T]) *Stack[T] {
	s.buf.WithPool(pool)
	return s
}

// live returns the end-packed live region, deepest element first.
func (s *Stack[T]) live() []T {
	data := s.buf.Data()
	return data[len(data)-s.buf.Len():]
}

// move relocates the live region end-aligned into the replacement buffer;
// copying it to offset 0 would silently turn spare capacity into garbage
// between the top and the start of the buffer.
func (s *Stack[T]) move(src, dst []T) {
	n := s.buf.Len()
	copy(dst[len(dst)-n:], src[len(src)-n:])
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int { return s.buf.Len() }

// Cap returns the current buffer capacity.
func (s *Stack[T]) Cap() int { return s.buf.Cap() }

// SetLen sets the live count directly without initialising the slots.
// The live region is the last n slots of the buffer.
func (s *Stack[T]) SetLen(n int) error { return s.buf.SetLen(n) }

// EnsureCapacity guarantees Cap() >= capacity and returns the capacity.
func (s *Stack[T]) EnsureCapacity(capacity int) (int, error) {
	return s.buf.EnsureCapacity(capacity, s.move)
}

// SetCap adjusts the capacity to the requested value.
func (s *Stack[T]) SetCap(n int) error { return s.buf.SetCap(n, s.move) }

// TrimExcess releases excess capacity
// unless the buffer occupancy makes trimming pointless.
func (s *Stack[T]) TrimExcess() { s.buf.TrimExcess(s.move) }

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) error {
	if err := s.reserve(1); err != nil {
		return err
	}
	count := s.buf.Len()
	data := s.buf.Data()
	data[len(data)-count-1] = v
	return s.buf.SetLen(count + 1)
}

// PushSeq pushes every value of the sequence in order,
// so the last value of the sequence becomes the top of the stack.
// Single-use sequences are consumed exactly once.
func (s *Stack[T]) PushSeq(in seqkit.Input[T]) error {
	if in == nil {
		return ErrNilArgument.F("input sequence")
	}
	if vs, ok := in.TrySlice(); ok {
		return s.PushRange(vs)
	}
	if n, ok := in.TryLen(); ok {
		if err := s.reserve(n); err != nil {
			return err
		}
	}
	for v := range in.All() {
		if err := s.Push(v); err != nil {
			return err
		}
	}
	return nil
}

// PushRange pushes the values in order,
// so vs[len(vs)-1] becomes the top of the stack.
func (s *Stack[T]) PushRange(vs []T) error {
	n := len(vs)
	if n == 0 {
		return nil
	}
	if err := s.reserve(n); err != nil {
		return err
	}
	count := s.buf.Len()
	data := s.buf.Data()
	// fill the reserved block in source order, then reverse it in place:
	// the first source value must end up deepest.
	block := data[len(data)-count-n : len(data)-count]
	copy(block, vs)
	slices.Reverse(block)
	return s.buf.SetLen(count + n)
}

// PushSpan reserves n slots on top of the stack and returns them
// for direct writing. Index 0 of the returned span is the new top.
func (s *Stack[T]) PushSpan(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidRange.F("span length %d", n)
	}
	if err := s.reserve(n); err != nil {
		return nil, err
	}
	count := s.buf.Len()
	data := s.buf.Data()
	span := data[len(data)-count-n : len(data)-count]
	clear(span)
	if err := s.buf.SetLen(count + n); err != nil {
		return nil, err
	}
	return span, nil
}

// Pop removes and returns the top of the stack.
func (s *Stack[T]) Pop() (T, error) {
	v, ok := s.TryPop()
	if !ok {
		return v, ErrEmpty.F("pop")
	}
	return v, nil
}

// TryPop removes and returns the top of the stack,
// reporting false on an empty stack.
func (s *Stack[T]) TryPop() (T, bool) {
	count := s.buf.Len()
	if count == 0 {
		var zero T
		return zero, false
	}
	data := s.buf.Data()
	top := len(data) - count
	v := data[top]
	var zero T
	data[top] = zero
	_ = s.buf.SetLen(count - 1)
	return v, true
}

// Peek returns the top of the stack without removing it.
func (s *Stack[T]) Peek() (T, error) {
	v, ok := s.TryPeek()
	if !ok {
		return v, ErrEmpty.F("peek")
	}
	return v, nil
}

// TryPeek returns the top of the stack without removing it,
// reporting false on an empty stack.
func (s *Stack[T]) TryPeek() (T, bool) {
	count := s.buf.Len()
	if count == 0 {
		var zero T
		return zero, false
	}
	data := s.buf.Data()
	return data[len(data)-count], true
}

// PopN pops up to len(dst) elements into dst in pop order,
// returning the number of popped elements.
func (s *Stack[T]) PopN(dst []T) int {
	n := min(len(dst), s.buf.Len())
	for i := 0; i < n; i++ {
		dst[i], _ = s.TryPop()
	}
	return n
}

// Lookup returns the element at the given top-relative index.
func (s *Stack[T]) Lookup(index int) (T, bool) {
	if index < 0 || s.buf.Len() <= index {
		var zero T
		return zero, false
	}
	return s.live()[index], true
}

// Set overwrites the element at the given top-relative index.
func (s *Stack[T]) Set(index int, v T) error {
	if index < 0 || s.buf.Len() <= index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, s.buf.Len())
	}
	s.live()[index] = v
	return nil
}

// Contains reports whether the stack contains v.
func (s *Stack[T]) Contains(v T) bool { return s.IndexOf(v) != -1 }

// IndexOf returns the top-relative index of the occurrence of v
// closest to the top, or -1.
func (s *Stack[T]) IndexOf(v T) int { return indexOf(s.live(), v, nil) }

// LastIndexOf returns the top-relative index of the occurrence of v
// closest to the bottom, or -1.
func (s *Stack[T]) LastIndexOf(v T) int { return lastIndexOf(s.live(), v, nil) }

// Clear removes every element, keeping the capacity.
func (s *Stack[T]) Clear() {
	clear(s.live())
	_ = s.buf.SetLen(0)
}

// CopyTo copies every element into dst in pop order.
// It fails without copying when dst cannot hold all of them.
func (s *Stack[T]) CopyTo(dst []T) error {
	if s.buf.Len() > len(dst) {
		return ErrInvalidRange.F("destination length %d with %d elements", len(dst), s.buf.Len())
	}
	s.CopyTruncated(dst)
	return nil
}

// CopyTruncated copies as many elements as dst can hold in pop order,
// returning the number of copied elements.
func (s *Stack[T]) CopyTruncated(dst []T) int {
	return copy(dst, s.live())
}

// ToSlice returns the elements in pop order as a freshly allocated slice.
func (s *Stack[T]) ToSlice() []T {
	out := make([]T, s.buf.Len())
	copy(out, s.live())
	return out
}

// Iter yields the elements in pop order, the top of the stack first.
func (s *Stack[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < s.buf.Len(); i++ {
			if !yield(s.live()[i]) {
				return
			}
		}
	}
}

// All implements seqkit.Input.
func (s *Stack[T]) All() iter.Seq[T] { return s.Iter() }

// TryLen implements seqkit.Input.
func (s *Stack[T]) TryLen() (int, bool) { return s.buf.Len(), true }

// TrySlice implements seqkit.Input.
// The view is in pop order and only valid until the stack is modified.
func (s *Stack[T]) TrySlice() ([]T, bool) { return s.live(), true }

// Release clears every slot and disposes the backing buffer,
// returning pool-owned memory to its pool exactly once.
// The stack resets to its empty zero state.
func (s *Stack[T]) Release() { s.buf.Release() }

func (s *Stack[T]) reserve(n int) error {
	if n <= s.buf.Cap()-s.buf.Len() {
		return nil
	}
	return s.buf.Grow(n, s.move)
}
