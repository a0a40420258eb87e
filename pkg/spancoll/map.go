package spancoll

import (
	"iter"

	"go.llib.dev/spankit/pkg/bufkit"
	"go.llib.dev/spankit/pkg/seqkit"
)

// Map is a growable, buffer-backed key/value mapping with unique keys
// in insertion order.
//
// Like Set, it performs no hashing: key lookup is a linear scan over the
// dense entry buffer, which targets small, often short-lived mappings.
//
// The zero value is an empty Map using native == key equality,
// renting from the default pool on first write.
type Map[K comparable, V any] struct {
	buf bufkit.Buffer[KV[K, V]]
	eq  Comparer[K]
}

// NewMap creates an empty Map with at least the given capacity pre-rented.
func NewMap[K comparable, V any](capacity int) (*Map[K, V], error) {
	var m Map[K, V]
	if _, err := m.EnsureCapacity(capacity); err != nil {
		return nil, err
	}
	return &m, nil
}

// MapOn creates a Map on top of caller-supplied entry memory.
// The memory is treated as empty capacity; it is never returned to a pool.
func MapOn[K comparable, V any](mem []KV[K, V]) *Map[K, V] {
	return &Map[K, V]{buf: bufkit.Borrowed(mem)}
}

// MapFrom creates a Map populated from the given entry sequence,
// failing with ErrDuplicateKey on a repeated key.
func MapFrom[K comparable, V any](in seqkit.Input[KV[K, V]]) (*Map[K, V], error) {
	if in == nil {
		return nil, ErrNilArgument.F("input sequence")
	}
	var m Map[K, V]
	if n, ok := in.TryLen(); ok {
		if _, err := m.EnsureCapacity(n); err != nil {
			return nil, err
		}
	}
	for kv := range in.All() {
		if err := m.Add(kv.Key, kv.Value); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// WithComparer fixes a custom key equality relation for the map.
// It must be called before the first entry is added and panics otherwise:
// changing the relation of a populated map would corrupt its key uniqueness.
func (m *Map[K, V]) WithComparer(eq Comparer[K]) *Map[K, V] {
	if m.buf.Len() != 0 {
		panic("spancoll: the comparer must be fixed before the first entry")
	}
	m.eq = eq
	return m
}

// WithPool sets the pool the map rents from.
// It only has an effect before the first pool-owned acquisition.
func (m *Map[K, V]) WithPool(pool bufkit.Pool[KV[K, V]]) *Map[K, V] {
	m.buf.WithPool(pool)
	return m
}

func (m *Map[K, V]) live() []KV[K, V] { return m.buf.Data()[:m.buf.Len()] }

// move relocates the forward-packed live region during buffer replacement.
func (m *Map[K, V]) move(src, dst []KV[K, V]) {
	copy(dst, src[:m.buf.Len()])
}

// indexOfKey is the linear key finder over the live entries.
func (m *Map[K, V]) indexOfKey(k K) int {
	entries := m.live()
	if m.eq == nil {
		for i := range entries {
			if entries[i].Key == k {
				return i
			}
		}
		return -1
	}
	for i := range entries {
		if m.eq(entries[i].Key, k) {
			return i
		}
	}
	return -1
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int { return m.buf.Len() }

// Cap returns the current buffer capacity.
func (m *Map[K, V]) Cap() int { return m.buf.Cap() }

// SetLen sets the live count directly without initialising the slots.
// The caller is responsible for the key uniqueness of out-of-band content.
func (m *Map[K, V]) SetLen(n int) error { return m.buf.SetLen(n) }

// EnsureCapacity guarantees Cap() >= capacity and returns the capacity.
func (m *Map[K, V]) EnsureCapacity(capacity int) (int, error) {
	return m.buf.EnsureCapacity(capacity, m.move)
}

// SetCap adjusts the capacity to the requested value.
func (m *Map[K, V]) SetCap(n int) error { return m.buf.SetCap(n, m.move) }

// TrimExcess releases excess capacity
// unless the buffer occupancy makes trimming pointless.
func (m *Map[K, V]) TrimExcess() { m.buf.TrimExcess(m.move) }

// Add inserts a new entry, failing with ErrDuplicateKey
// when the key is already present.
func (m *Map[K, V]) Add(k K, v V) error {
	if m.indexOfKey(k) != -1 {
		return ErrDuplicateKey.F("%v", k)
	}
	return m.push(k, v)
}

// Set inserts or overwrites the entry for the given key.
func (m *Map[K, V]) Set(k K, v V) error {
	if index := m.indexOfKey(k); index != -1 {
		m.buf.Data()[index].Value = v
		return nil
	}
	return m.push(k, v)
}

// TryAdd inserts a new entry unless the key is already present,
// reporting whether the map changed.
func (m *Map[K, V]) TryAdd(k K, v V) (bool, error) {
	if m.indexOfKey(k) != -1 {
		return false, nil
	}
	if err := m.push(k, v); err != nil {
		return false, err
	}
	return true, nil
}

// push appends without a key uniqueness check.
func (m *Map[K, V]) push(k K, v V) error {
	if err := m.reserve(1); err != nil {
		return err
	}
	count := m.buf.Len()
	m.buf.Data()[count] = KV[K, V]{Key: k, Value: v}
	return m.buf.SetLen(count + 1)
}

// Get returns the value for the given key,
// failing with ErrKeyNotFound when the key is absent.
func (m *Map[K, V]) Get(k K) (V, error) {
	index := m.indexOfKey(k)
	if index == -1 {
		var zero V
		return zero, ErrKeyNotFound.F("%v", k)
	}
	return m.buf.Data()[index].Value, nil
}

// Lookup returns the value for the given key,
// reporting false when the key is absent.
func (m *Map[K, V]) Lookup(k K) (V, bool) {
	index := m.indexOfKey(k)
	if index == -1 {
		var zero V
		return zero, false
	}
	return m.buf.Data()[index].Value, true
}

// ContainsKey reports whether the map holds the given key.
func (m *Map[K, V]) ContainsKey(k K) bool { return m.indexOfKey(k) != -1 }

// IndexOfKey returns the insertion-order index of the given key, or -1.
func (m *Map[K, V]) IndexOfKey(k K) int { return m.indexOfKey(k) }

// At returns the entry at the given insertion-order index.
func (m *Map[K, V]) At(index int) (KV[K, V], bool) {
	if index < 0 || m.buf.Len() <= index {
		var zero KV[K, V]
		return zero, false
	}
	return m.buf.Data()[index], true
}

// Remove removes the entry for the given key,
// reporting whether an entry was removed.
func (m *Map[K, V]) Remove(k K) bool {
	index := m.indexOfKey(k)
	if index == -1 {
		return false
	}
	_ = m.RemoveAt(index)
	return true
}

// RemoveAt removes the entry at the given insertion-order index,
// shifting the tail left.
func (m *Map[K, V]) RemoveAt(index int) error {
	count := m.buf.Len()
	if index < 0 || count <= index {
		return ErrIndexOutOfRange.F("index %d with length %d", index, count)
	}
	data := m.buf.Data()
	copy(data[index:count-1], data[index+1:count])
	var zero KV[K, V]
	data[count-1] = zero
	return m.buf.SetLen(count - 1)
}

// RemoveWhere removes every entry matching the predicate in a single
// compaction pass and returns the number of removed entries.
func (m *Map[K, V]) RemoveWhere(pred func(K, V) bool) (int, error) {
	if pred == nil {
		return 0, ErrNilArgument.F("predicate")
	}
	var (
		data  = m.buf.Data()
		count = m.buf.Len()
		kept  = 0
	)
	for i := 0; i < count; i++ {
		if pred(data[i].Key, data[i].Value) {
			continue
		}
		data[kept] = data[i]
		kept++
	}
	clear(data[kept:count])
	_ = m.buf.SetLen(kept)
	return count - kept, nil
}

// Clear removes every entry, keeping the capacity.
func (m *Map[K, V]) Clear() {
	clear(m.live())
	_ = m.buf.SetLen(0)
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.buf.Len())
	for _, kv := range m.live() {
		keys = append(keys, kv.Key)
	}
	return keys
}

// Values returns the values in insertion order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.buf.Len())
	for _, kv := range m.live() {
		values = append(values, kv.Value)
	}
	return values
}

// CopyTo copies every entry into dst in insertion order.
// It fails without copying when dst cannot hold all of them.
func (m *Map[K, V]) CopyTo(dst []KV[K, V]) error {
	if m.buf.Len() > len(dst) {
		return ErrInvalidRange.F("destination length %d with %d entries", len(dst), m.buf.Len())
	}
	copy(dst, m.live())
	return nil
}

// CopyTruncated copies as many entries as dst can hold in insertion order,
// returning the number of copied entries.
func (m *Map[K, V]) CopyTruncated(dst []KV[K, V]) int {
	return copy(dst, m.live())
}

// ToSlice returns the entries in insertion order as a freshly allocated slice.
func (m *Map[K, V]) ToSlice() []KV[K, V] {
	out := make([]KV[K, V], m.buf.Len())
	copy(out, m.live())
	return out
}

// ToMap returns the entries as a native Go map.
func (m *Map[K, V]) ToMap() map[K]V {
	out := make(map[K]V, m.buf.Len())
	for _, kv := range m.live() {
		out[kv.Key] = kv.Value
	}
	return out
}

// Iter yields the entries in insertion order.
func (m *Map[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < m.buf.Len(); i++ {
			kv := m.buf.Data()[i]
			if !yield(kv.Key, kv.Value) {
				return
			}
		}
	}
}

// All implements seqkit.Input over the entries.
func (m *Map[K, V]) All() iter.Seq[KV[K, V]] {
	return func(yield func(KV[K, V]) bool) {
		for i := 0; i < m.buf.Len(); i++ {
			if !yield(m.buf.Data()[i]) {
				return
			}
		}
	}
}

// TryLen implements seqkit.Input.
func (m *Map[K, V]) TryLen() (int, bool) { return m.buf.Len(), true }

// TrySlice implements seqkit.Input.
// The view is only valid until the map is modified.
func (m *Map[K, V]) TrySlice() ([]KV[K, V], bool) { return m.live(), true }

// Release clears every slot and disposes the backing buffer,
// returning pool-owned memory to its pool exactly once.
// The map resets to its empty zero state, keeping its comparer.
func (m *Map[K, V]) Release() { m.buf.Release() }

func (m *Map[K, V]) reserve(n int) error {
	if n <= m.buf.Cap()-m.buf.Len() {
		return nil
	}
	return m.buf.Grow(n, m.move)
}
