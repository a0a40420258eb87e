// Package bufkit implements the contiguous buffer management
// that the spancoll container types are built on.
//
// A Buffer owns a contiguous region of element slots together with
// its live count and its provenance. The provenance is exactly one of:
//
//   - unacquired: the zero value, no backing storage yet;
//     the first write promotes it to pool-owned.
//   - borrowed: caller-supplied memory; the Buffer never returns it
//     to a pool, and growing abandons it in favour of a pool-owned region.
//   - pool-owned: rented from a Pool; returned exactly once,
//     either on growth-replacement or on Release.
package bufkit

import (
	"go.llib.dev/spankit/pkg/errorkit"
	"go.llib.dev/spankit/pkg/mathkit"
)

const (
	// MaxCapacity is the ceiling for any Buffer capacity.
	// It is kept below the theoretical maximum slice length
	// so that capacity arithmetic can never wrap around.
	MaxCapacity = 2147483591

	// trimThreshold is the occupancy ratio below which
	// TrimExcess releases excess capacity.
	// Trimming a nearly full buffer would invite churny
	// trim/grow cycles, so such requests are ignored.
	trimThreshold = 0.8
)

const (
	// ErrInvalidCapacity signals a negative requested capacity,
	// or one smaller than the current live count.
	ErrInvalidCapacity errorkit.Error = "bufkit: invalid capacity"
	// ErrCapacityOverflow signals that a capacity request
	// cannot be satisfied below MaxCapacity.
	ErrCapacityOverflow errorkit.Error = "bufkit: required capacity exceeds the maximum"
	// ErrInvalidLength signals a live count outside [0, Cap].
	ErrInvalidLength errorkit.Error = "bufkit: invalid length"
)

// MoveFunc relocates the live region of src into dst during a buffer
// replacement. The layout of the live region within the buffer belongs
// to the container variant, so the variant supplies the move logic.
// len(dst) >= the live count is guaranteed by the caller.
type MoveFunc[T any] func(src, dst []T)

// Buffer is a contiguous element region with a live count and a provenance.
// The zero value is an empty, unacquired buffer ready for use.
//
// Buffer is a single-owner value; it must be passed by pointer to anything
// that mutates it, since growth replaces the backing region.
type Buffer[T any] struct {
	data  []T
	count int
	prov  provenance
	pool  Pool[T]
}

type provenance uint8

const (
	unacquired provenance = iota
	borrowedProv
	poolOwned
)

// Borrowed creates a Buffer on top of caller-supplied memory.
// The Buffer will never return mem to a pool;
// growing past len(mem) abandons it for a pool-owned region.
func Borrowed[T any](mem []T) Buffer[T] {
	return Buffer[T]{data: mem, prov: borrowedProv}
}

// WithPool sets the pool the buffer rents from.
// It only has an effect before the first pool-owned acquisition.
func (b *Buffer[T]) WithPool(pool Pool[T]) { b.pool = pool }

func (b *Buffer[T]) getPool() Pool[T] {
	if b.pool == nil {
		b.pool = Default[T]()
	}
	return b.pool
}

// Cap returns the buffer capacity.
func (b *Buffer[T]) Cap() int { return len(b.data) }

// Len returns the number of logically live slots.
func (b *Buffer[T]) Len() int { return b.count }

// SetLen sets the live count directly.
//
// This is a low-level escape hatch for callers who populate the buffer
// out-of-band (for example through a reserved span): the count is validated
// against the capacity, but the slots are neither initialised nor cleared.
func (b *Buffer[T]) SetLen(n int) error {
	if n < 0 || len(b.data) < n {
		return ErrInvalidLength.F("length %d with capacity %d", n, len(b.data))
	}
	b.count = n
	return nil
}

// Data exposes the full-capacity backing region.
// The caller is responsible for staying within the live layout
// of its container variant.
func (b *Buffer[T]) Data() []T { return b.data }

// IsPoolOwned reports whether the current backing region
// was rented from a pool.
func (b *Buffer[T]) IsPoolOwned() bool { return b.prov == poolOwned }

// EnsureCapacity guarantees Cap() >= minCapacity and returns the capacity.
// When growth is needed, the regular growth formula is applied,
// so the resulting capacity may exceed minCapacity.
func (b *Buffer[T]) EnsureCapacity(minCapacity int, move MoveFunc[T]) (int, error) {
	if minCapacity < 0 {
		return 0, ErrInvalidCapacity.F("capacity %d", minCapacity)
	}
	if minCapacity <= len(b.data) {
		return len(b.data), nil
	}
	if err := b.growTo(minCapacity, move); err != nil {
		return 0, err
	}
	return len(b.data), nil
}

// Grow is the forced-growth path used when an operation finds
// insufficient room for minimumAdditional more elements.
func (b *Buffer[T]) Grow(minimumAdditional int, move MoveFunc[T]) error {
	required, ok := mathkit.SumInt(b.count, minimumAdditional)
	if !ok || MaxCapacity < required {
		return ErrCapacityOverflow.F("%d + %d elements", b.count, minimumAdditional)
	}
	return b.growTo(required, move)
}

// growTo replaces the backing region with one of at least required capacity.
//
// newCapacity = max(required, min(2*cap, MaxCapacity))
func (b *Buffer[T]) growTo(required int, move MoveFunc[T]) error {
	if MaxCapacity < required {
		return ErrCapacityOverflow.F("%d elements", required)
	}
	newCapacity := required
	if doubled, ok := mathkit.MulInt(len(b.data), 2); ok {
		doubled = min(doubled, MaxCapacity)
		newCapacity = max(required, doubled)
	} else {
		newCapacity = max(required, MaxCapacity)
	}
	b.replace(newCapacity, move)
	return nil
}

// SetCap sets the capacity to exactly the requested value
// (or the nearest capacity the pool can provide above it).
// It fails when the request would not fit the current live count.
func (b *Buffer[T]) SetCap(n int, move MoveFunc[T]) error {
	if n < 0 || MaxCapacity < n {
		return ErrInvalidCapacity.F("capacity %d", n)
	}
	if n < b.count {
		return ErrInvalidCapacity.F("capacity %d is below the current count %d", n, b.count)
	}
	if n == len(b.data) {
		return nil
	}
	b.replace(n, move)
	return nil
}

// TrimExcess releases excess capacity by shrinking the buffer
// to the live count. Requests are ignored while the buffer occupancy
// is at or above the trim threshold.
func (b *Buffer[T]) TrimExcess(move MoveFunc[T]) {
	threshold := int(float64(len(b.data)) * trimThreshold)
	if threshold <= b.count {
		return
	}
	b.replace(b.count, move)
}

// replace swaps the backing region for a pool-owned one of at least
// newCapacity slots, relocating the live region through move.
// The vacated source is cleared to release any held references,
// and returned to the pool iff it was pool-owned.
func (b *Buffer[T]) replace(newCapacity int, move MoveFunc[T]) {
	old := b.data
	oldProv := b.prov
	if newCapacity == 0 {
		b.data = nil
		b.prov = unacquired
	} else {
		mem := b.getPool().Rent(newCapacity)
		if move != nil {
			move(old, mem)
		}
		b.data = mem
		b.prov = poolOwned
	}
	clear(old)
	if oldProv == poolOwned {
		b.getPool().Return(old)
	}
}

// Release clears every slot and disposes the backing region,
// returning a pool-owned region to its pool exactly once.
// The buffer resets to its unacquired zero state, so releasing twice
// is a no-op and later use behaves as a fresh empty buffer.
func (b *Buffer[T]) Release() {
	old := b.data
	oldProv := b.prov
	b.data = nil
	b.count = 0
	b.prov = unacquired
	clear(old)
	if oldProv == poolOwned {
		b.getPool().Return(old)
	}
}
