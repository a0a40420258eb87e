package bufkit

import (
	"math/bits"
	"reflect"
	"sync"
)

// Pool is the buffer reuse service consumed by Buffer.
//
// Rent returns a slice whose length is at least minCapacity.
// Return accepts buffers previously issued by the same pool;
// after Return the caller must not use the buffer again.
type Pool[T any] interface {
	Rent(minCapacity int) []T
	Return(buf []T)
}

// Default returns the process-wide shared pool for the given element type.
func Default[T any]() Pool[T] {
	key := reflect.TypeOf((*T)(nil))
	if v, ok := defaultPools.Load(key); ok {
		return v.(Pool[T])
	}
	v, _ := defaultPools.LoadOrStore(key, NewSharedPool[T]())
	return v.(Pool[T])
}

var defaultPools sync.Map // reflect.Type -> Pool[T]

const (
	// sharedPoolMinExp is the smallest size class (2^4 = 16 slots).
	sharedPoolMinExp = 4
	// sharedPoolMaxExp is the largest pooled size class (2^20 slots);
	// larger buffers are allocated directly and dropped on Return.
	sharedPoolMaxExp = 20
)

// SharedPool is a size-classed Pool implementation.
// Buffers are grouped into power-of-two size classes,
// each class backed by its own free list.
type SharedPool[T any] struct {
	classes [sharedPoolMaxExp - sharedPoolMinExp + 1]sync.Pool
}

func NewSharedPool[T any]() *SharedPool[T] {
	return &SharedPool[T]{}
}

func (p *SharedPool[T]) Rent(minCapacity int) []T {
	if minCapacity < 0 {
		minCapacity = 0
	}
	exp := sizeClassExp(minCapacity)
	if sharedPoolMaxExp < exp {
		return make([]T, minCapacity)
	}
	class := &p.classes[exp-sharedPoolMinExp]
	if v := class.Get(); v != nil {
		return v.([]T)
	}
	return make([]T, 1<<exp)
}

func (p *SharedPool[T]) Return(buf []T) {
	n := len(buf)
	if n == 0 {
		return
	}
	exp := sizeClassExp(n)
	if sharedPoolMaxExp < exp {
		return // too large to pool, let it be collected
	}
	if n != 1<<exp {
		// not one of our size classes, it was allocated directly
		return
	}
	p.classes[exp-sharedPoolMinExp].Put(buf)
}

// sizeClassExp returns the exponent of the smallest power-of-two size class
// that can hold n elements.
func sizeClassExp(n int) int {
	exp := bits.Len(uint(max(n, 1) - 1))
	return max(exp, sharedPoolMinExp)
}
