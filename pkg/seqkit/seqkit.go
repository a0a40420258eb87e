// Package seqkit provides a polymorphic input-sequence abstraction.
//
// An Input is either an already materialised contiguous view,
// or an opaque iterator whose length is unknown until it is fully iterated.
// Consumers can use TrySlice and TryLen to opportunistically avoid
// a full iteration pass when cheaper information is available,
// and must otherwise treat All as a single-use sequence.
package seqkit

import "iter"

// Input represents a sequence of values handed over to a consumer.
//
// Implementations backed by an opaque iterator may be single-use:
// All is only guaranteed to be iterable once,
// and TryLen / TrySlice must not consume the sequence.
type Input[T any] interface {
	// All yields the values of the sequence.
	// The returned sequence may be single-use.
	All() iter.Seq[T]
	// TryLen reports the number of values in the sequence
	// when it is known without consuming the sequence.
	TryLen() (int, bool)
	// TrySlice returns the sequence as a contiguous view
	// when one is already available without consuming the sequence.
	// The returned slice must be treated as read-only
	// and is only valid until the origin of the Input is modified.
	TrySlice() ([]T, bool)
}

// Of creates an Input from the given values.
func Of[T any](vs ...T) Input[T] { return Slice(vs) }

// Slice creates an Input backed by the given contiguous view.
// The slice is not copied; it must not be modified while the Input is in use.
func Slice[T any](vs []T) Input[T] { return sliceInput[T](vs) }

type sliceInput[T any] []T

func (s sliceInput[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}
}

func (s sliceInput[T]) TryLen() (int, bool) { return len(s), true }

func (s sliceInput[T]) TrySlice() ([]T, bool) { return s, true }

// From creates an Input from an opaque iterator.
// The resulting Input reports no length and no contiguous view,
// and is single-use when the underlying sequence is single-use.
func From[T any](seq iter.Seq[T]) Input[T] { return seqInput[T]{seq: seq} }

// FromSized creates an Input from an opaque iterator
// whose element count is known upfront.
// The count is trusted as-is and is not verified against the sequence.
func FromSized[T any](seq iter.Seq[T], length int) Input[T] {
	return seqInput[T]{seq: seq, length: length, sized: true}
}

type seqInput[T any] struct {
	seq    iter.Seq[T]
	length int
	sized  bool
}

func (s seqInput[T]) All() iter.Seq[T] { return s.seq }

func (s seqInput[T]) TryLen() (int, bool) { return s.length, s.sized }

func (s seqInput[T]) TrySlice() ([]T, bool) { return nil, false }

// Repeat creates an Input that yields the same value n times.
func Repeat[T any](v T, n int) Input[T] {
	if n < 0 {
		n = 0
	}
	return repeatInput[T]{value: v, n: n}
}

type repeatInput[T any] struct {
	value T
	n     int
}

func (r repeatInput[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < r.n; i++ {
			if !yield(r.value) {
				return
			}
		}
	}
}

func (r repeatInput[T]) TryLen() (int, bool) { return r.n, true }

func (r repeatInput[T]) TrySlice() ([]T, bool) { return nil, false }

// Collect materialises an Input into a freshly allocated slice.
// For single-use Inputs this consumes the sequence.
func Collect[T any](in Input[T]) []T {
	if vs, ok := in.TrySlice(); ok {
		out := make([]T, len(vs))
		copy(out, vs)
		return out
	}
	var out []T
	if n, ok := in.TryLen(); ok {
		out = make([]T, 0, n)
	}
	for v := range in.All() {
		out = append(out, v)
	}
	return out
}
