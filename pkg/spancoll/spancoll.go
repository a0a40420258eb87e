// Package spancoll provides growable container types (List, Stack, Queue,
// Set, Map) that operate on a contiguous element buffer instead of linked or
// hashed node structures.
//
// The containers target small, short-lived collections: membership and
// uniqueness checks are deliberate linear scans whose cost is dominated by
// cache locality, not asymptotic complexity. Do not reach for these types
// when a collection grows large enough for hashing to win; HashSet is the
// bridge for that case.
//
// Every container is usable as its zero value. Backing memory is rented from
// a bufkit.Pool on first write, or supplied by the caller through the *On
// constructors; caller-supplied memory is never returned to a pool, and
// growing past its capacity abandons it for a pool-owned region.
//
// The containers are single-owner values without any synchronisation.
// They must be passed by pointer to anything that mutates them,
// since growth replaces the backing buffer.
package spancoll

import (
	"go.llib.dev/spankit/pkg/errorkit"
)

const (
	// ErrNilArgument signals that a required sequence, predicate
	// or comparison function argument was nil.
	ErrNilArgument errorkit.Error = "spancoll: required argument is nil"
	// ErrIndexOutOfRange signals an index outside the live region.
	ErrIndexOutOfRange errorkit.Error = "spancoll: index out of range"
	// ErrInvalidRange signals a start/length range that exceeds the live region.
	ErrInvalidRange errorkit.Error = "spancoll: invalid range"
	// ErrInvalidLength signals a live count outside the valid range.
	ErrInvalidLength errorkit.Error = "spancoll: invalid length"
	// ErrEmpty signals a pop/peek/dequeue on an empty container.
	ErrEmpty errorkit.Error = "spancoll: the collection is empty"
	// ErrKeyNotFound signals a Map.Get on a missing key.
	ErrKeyNotFound errorkit.Error = "spancoll: key not found"
	// ErrDuplicateKey signals an Add of an already present key.
	ErrDuplicateKey errorkit.Error = "spancoll: duplicate key"
)

// Comparer is an equality relation over T.
//
// A container's comparer is fixed at construction and every lookup and
// uniqueness check of that container uses the same relation. A nil Comparer
// stands for the type's native == equality, which lets lookups skip the
// function-call indirection entirely.
type Comparer[T any] func(a, b T) bool

// KV is a key/value pair, the element type of Map's backing buffer.
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

// Sizer is implemented by every container in this package.
type Sizer interface {
	Len() int
}
