package spancoll

import (
	"iter"

	"go.llib.dev/spankit/pkg/bufkit"
	"go.llib.dev/spankit/pkg/seqkit"
)

// Queue is a growable, buffer-backed FIFO queue.
// Live elements occupy the head-relative region [head, head+Len) of the
// buffer; there is no wrap-around and no modulo arithmetic anywhere.
// Dequeuing advances the head; enqueuing past the end of the buffer either
// compacts the live region back to offset 0 or grows the buffer.
// Indexing is head-relative: index 0 is the oldest element.
//
// The zero value is an empty Queue that rents from the default pool
// on first write.
type Queue[T comparable] struct {
	buf  bufkit.Buffer[T]
	head int
}

// NewQueue creates an empty Queue with at least the given capacity pre-rented.
func NewQueue[T comparable](capacity int) (*Queue[T], error) {
	var q Queue[T]
	if _, err := q.EnsureCapacity(capacity); err != nil {
		return nil, err
	}
	return &q, nil
}

// QueueOn creates a Queue on top of caller-supplied memory.
// The memory is treated as empty capacity; it is never returned to a pool.
func QueueOn[T comparable](mem []T) *Queue[T] {
	return &Queue[T]{buf: bufkit.Borrowed(mem)}
}

// QueueFrom creates a Queue populated from the given sequence,
// with the first value of the sequence at the front.
func QueueFrom[T comparable](in seqkit.Input[T]) (*Queue[T], error) {
	var q Queue[T]
	if err := q.EnqueueSeq(in); err != nil {
		return nil, err
	}
	return &q, nil
}

// WithPool sets the pool the queue rents from.
// It only has an effect before the first pool-owned acquisition.
func (q *Queue[T]) WithPool(pool bufkit.Pool[T]) *Queue[T] {
	q.buf.WithPool(pool)
	return q
}

func (q *Queue[T]) live() []T {
	return q.buf.Data()[q.head : q.head+q.buf.Len()]
}

// move relocates the live region to offset 0 of the replacement buffer
// and resets the head.
func (q *Queue[T]) move(src, dst []T) {
	copy(dst, src[q.head:q.head+q.buf.Len()])
	q.head = 0
}

// Len returns the number of elements in the queue.
func (q *Queue[T]) Len() int { return q.buf.Len() }

// Cap returns the current buffer capacity.
func (q *Queue[T]) Cap() int { return q.buf.Cap() }

// SetLen sets the live count directly without initialising the slots.
// The live region starts at the current head offset.
// Emptying the queue resets the head, keeping head+Len <= Cap valid
// even after the backing buffer is later dropped or replaced.
func (q *Queue[T]) SetLen(n int) error {
	if n < 0 || q.buf.Cap() < q.head+n {
		return ErrInvalidLength.F("length %d with head %d and capacity %d", n, q.head, q.buf.Cap())
	}
	if n == 0 {
		q.head = 0
	}
	return q.buf.SetLen(n)
}

// EnsureCapacity guarantees Cap() >= capacity and returns the capacity.
func (q *Queue[T]) EnsureCapacity(capacity int) (int, error) {
	return q.buf.EnsureCapacity(capacity, q.move)
}

// SetCap adjusts the capacity to the requested value.
func (q *Queue[T]) SetCap(n int) error { return q.buf.SetCap(n, q.move) }

// TrimExcess releases excess capacity
// unless the buffer occupancy makes trimming pointless.
func (q *Queue[T]) TrimExcess() { q.buf.TrimExcess(q.move) }

// Enqueue places v at the back of the queue.
func (q *Queue[T]) Enqueue(v T) error {
	if err := q.reserve(1); err != nil {
		return err
	}
	count := q.buf.Len()
	q.buf.Data()[q.head+count] = v
	return q.buf.SetLen(count + 1)
}

// EnqueueSeq enqueues every value of the sequence in order.
// Single-use sequences are consumed exactly once.
func (q *Queue[T]) EnqueueSeq(in seqkit.Input[T]) error {
	if in == nil {
		return ErrNilArgument.F("input sequence")
	}
	if vs, ok := in.TrySlice(); ok {
		return q.EnqueueRange(vs)
	}
	if n, ok := in.TryLen(); ok {
		if err := q.reserve(n); err != nil {
			return err
		}
	}
	for v := range in.All() {
		if err := q.Enqueue(v); err != nil {
			return err
		}
	}
	return nil
}

// EnqueueRange enqueues the values in order.
func (q *Queue[T]) EnqueueRange(vs []T) error {
	if len(vs) == 0 {
		return nil
	}
	if err := q.reserve(len(vs)); err != nil {
		return err
	}
	count := q.buf.Len()
	copy(q.buf.Data()[q.head+count:], vs)
	return q.buf.SetLen(count + len(vs))
}

// EnqueueSpan reserves n slots at the back of the queue and returns them
// for direct writing. Index 0 of the returned span is dequeued first
// among the reserved slots.
func (q *Queue[T]) EnqueueSpan(n int) ([]T, error) {
	if n < 0 {
		return nil, ErrInvalidRange.F("span length %d", n)
	}
	if err := q.reserve(n); err != nil {
		return nil, err
	}
	count := q.buf.Len()
	span := q.buf.Data()[q.head+count : q.head+count+n]
	clear(span)
	if err := q.buf.SetLen(count + n); err != nil {
		return nil, err
	}
	return span, nil
}

// Dequeue removes and returns the front of the queue.
func (q *Queue[T]) Dequeue() (T, error) {
	v, ok := q.TryDequeue()
	if !ok {
		return v, ErrEmpty.F("dequeue")
	}
	return v, nil
}

// TryDequeue removes and returns the front of the queue,
// reporting false on an empty queue.
// The vacated slot is cleared; the remaining elements are never shifted.
func (q *Queue[T]) TryDequeue() (T, bool) {
	count := q.buf.Len()
	if count == 0 {
		var zero T
		return zero, false
	}
	data := q.buf.Data()
	v := data[q.head]
	var zero T
	data[q.head] = zero
	q.head++
	_ = q.buf.SetLen(count - 1)
	if count == 1 {
		q.head = 0
	}
	return v, true
}

// Peek returns the front of the queue without removing it.
func (q *Queue[T]) Peek() (T, error) {
	v, ok := q.TryPeek()
	if !ok {
		return v, ErrEmpty.F("peek")
	}
	return v, nil
}

// TryPeek returns the front of the queue without removing it,
// reporting false on an empty queue.
func (q *Queue[T]) TryPeek() (T, bool) {
	if q.buf.Len() == 0 {
		var zero T
		return zero, false
	}
	return q.buf.Data()[q.head], true
}

// DequeueN dequeues up to len(dst) elements into dst in queue order,
// returning the number of dequeued elements.
func (q *Queue[T]) DequeueN(dst []T) int {
	n := min(len(dst), q.buf.Len())
	for i := 0; i < n; i++ {
		dst[i], _ = q.TryDequeue()
	}
	return n
}

// Compact shifts the live region back to offset 0 of the buffer,
// making the space before the head usable again.
func (q *Queue[T]) Compact() {
	if q.head == 0 {
		return
	}
	count := q.buf.Len()
	data := q.buf.Data()
	copy(data[:count], data[q.head:q.head+count])
	clear(data[max(count, q.head):q.head+count])
	q.head = 0
}

// Lookup returns the element at the given head-relative index.
func (q *Queue[T]) Lookup(index int) (T, bool) {
	if index < 0 || q.buf.Len() <= index {
		var zero T
		return zero, false
	}
	return q.live()[index], true
}

// Set overwrites the element at the given head-relative index.
func (q *Queue[T]) Set(index int, v T) error {
	if index < 0 || q.buf.Len() <= index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, q.buf.Len())
	}
	q.live()[index] = v
	return nil
}

// Contains reports whether the queue contains v.
func (q *Queue[T]) Contains(v T) bool { return q.IndexOf(v) != -1 }

// IndexOf returns the head-relative index of the first occurrence of v, or -1.
func (q *Queue[T]) IndexOf(v T) int { return indexOf(q.live(), v, nil) }

// LastIndexOf returns the head-relative index of the last occurrence of v, or -1.
func (q *Queue[T]) LastIndexOf(v T) int { return lastIndexOf(q.live(), v, nil) }

// Clear removes every element, keeping the capacity.
func (q *Queue[T]) Clear() {
	clear(q.live())
	q.head = 0
	_ = q.buf.SetLen(0)
}

// CopyTo copies every element into dst in queue order.
// It fails without copying when dst cannot hold all of them.
func (q *Queue[T]) CopyTo(dst []T) error {
	if q.buf.Len() > len(dst) {
		return ErrInvalidRange.F("destination length %d with %d elements", len(dst), q.buf.Len())
	}
	q.CopyTruncated(dst)
	return nil
}

// CopyTruncated copies as many elements as dst can hold in queue order,
// returning the number of copied elements.
func (q *Queue[T]) CopyTruncated(dst []T) int {
	return copy(dst, q.live())
}

// ToSlice returns the elements in queue order as a freshly allocated slice.
func (q *Queue[T]) ToSlice() []T {
	out := make([]T, q.buf.Len())
	copy(out, q.live())
	return out
}

// Iter yields the elements in queue order, the front of the queue first.
func (q *Queue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.buf.Len(); i++ {
			if !yield(q.live()[i]) {
				return
			}
		}
	}
}

// All implements seqkit.Input.
func (q *Queue[T]) All() iter.Seq[T] { return q.Iter() }

// TryLen implements seqkit.Input.
func (q *Queue[T]) TryLen() (int, bool) { return q.buf.Len(), true }

// TrySlice implements seqkit.Input.
// The view is in queue order and only valid until the queue is modified.
func (q *Queue[T]) TrySlice() ([]T, bool) { return q.live(), true }

// Release clears every slot and disposes the backing buffer,
// returning pool-owned memory to its pool exactly once.
// The queue resets to its empty zero state.
func (q *Queue[T]) Release() {
	q.head = 0
	q.buf.Release()
}

// reserve makes room for n more elements at the back of the queue.
// When the buffer itself has room but the head offset wastes it,
// compacting the live region is preferred over growing.
func (q *Queue[T]) reserve(n int) error {
	count := q.buf.Len()
	if q.head+count+n <= q.buf.Cap() {
		return nil
	}
	if count+n <= q.buf.Cap() {
		q.Compact()
		return nil
	}
	return q.buf.Grow(n, q.move)
}
