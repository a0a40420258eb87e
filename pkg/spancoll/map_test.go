package spancoll_test

import (
	"strings"
	"testing"

	"go.llib.dev/testcase/assert"

	"go.llib.dev/spankit/pkg/bufkit/bufkitdouble"
	"go.llib.dev/spankit/pkg/seqkit"
	"go.llib.dev/spankit/pkg/spancoll"
	"go.llib.dev/spankit/pkg/spancoll/spancollcontract"
)

func ExampleMap() {
	var m spancoll.Map[int, string]
	defer m.Release()

	_ = m.Add(1, "one")
	_ = m.Set(2, "two")
	v, _ := m.Get(1) // "one"
	_ = v
}

func TestMap_Add(t *testing.T) {
	var m spancoll.Map[int, string]

	assert.NoError(t, m.Add(1, "a"))
	assert.ErrorIs(t, m.Add(1, "b"), spancoll.ErrDuplicateKey)

	v, err := m.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "a", v, "the failed add must not overwrite")
	assert.Equal(t, 1, m.Len())
}

func TestMap_Set(t *testing.T) {
	var m spancoll.Map[int, string]

	assert.NoError(t, m.Set(1, "a"))
	assert.NoError(t, m.Set(1, "b"))

	v, err := m.Get(1)
	assert.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, m.Len(), "overwriting must not duplicate the key")
}

func TestMap_TryAdd(t *testing.T) {
	var m spancoll.Map[int, string]

	added, err := m.TryAdd(1, "a")
	assert.NoError(t, err)
	assert.True(t, added)

	added, err = m.TryAdd(1, "b")
	assert.NoError(t, err)
	assert.False(t, added)

	v, _ := m.Lookup(1)
	assert.Equal(t, "a", v)
}

func TestMap_Get(t *testing.T) {
	var m spancoll.Map[string, int]
	assert.NoError(t, m.Add("a", 1))

	v, err := m.Get("a")
	assert.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = m.Get("b")
	assert.ErrorIs(t, err, spancoll.ErrKeyNotFound)

	v, ok := m.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
	_, ok = m.Lookup("b")
	assert.False(t, ok)

	assert.True(t, m.ContainsKey("a"))
	assert.False(t, m.ContainsKey("b"))
}

func TestMap_insertionOrder(t *testing.T) {
	var m spancoll.Map[string, int]
	assert.NoError(t, m.Add("c", 3))
	assert.NoError(t, m.Add("a", 1))
	assert.NoError(t, m.Add("b", 2))

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	assert.Equal(t, []int{3, 1, 2}, m.Values())
	assert.Equal(t, 1, m.IndexOfKey("a"))
	assert.Equal(t, -1, m.IndexOfKey("x"))

	kv, ok := m.At(0)
	assert.True(t, ok)
	assert.Equal(t, spancoll.KV[string, int]{Key: "c", Value: 3}, kv)
	_, ok = m.At(3)
	assert.False(t, ok)

	var gotKeys []string
	var gotValues []int
	for k, v := range m.Iter() {
		gotKeys = append(gotKeys, k)
		gotValues = append(gotValues, v)
	}
	assert.Equal(t, []string{"c", "a", "b"}, gotKeys)
	assert.Equal(t, []int{3, 1, 2}, gotValues)
}

func TestMap_Remove(t *testing.T) {
	var m spancoll.Map[int, string]
	assert.NoError(t, m.Add(1, "a"))
	assert.NoError(t, m.Add(2, "b"))
	assert.NoError(t, m.Add(3, "c"))

	assert.True(t, m.Remove(2))
	assert.False(t, m.Remove(2))
	assert.Equal(t, []int{1, 3}, m.Keys(), "removal keeps the insertion order of the rest")

	assert.NoError(t, m.RemoveAt(0))
	assert.Equal(t, []int{3}, m.Keys())
	assert.ErrorIs(t, m.RemoveAt(5), spancoll.ErrIndexOutOfRange)
}

func TestMap_RemoveWhere(t *testing.T) {
	var m spancoll.Map[int, string]
	assert.NoError(t, m.Add(1, "keep"))
	assert.NoError(t, m.Add(2, "drop"))
	assert.NoError(t, m.Add(3, "drop"))
	assert.NoError(t, m.Add(4, "keep"))

	removed, err := m.RemoveWhere(func(k int, v string) bool { return v == "drop" })
	assert.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Equal(t, []int{1, 4}, m.Keys())

	_, err = m.RemoveWhere(nil)
	assert.ErrorIs(t, err, spancoll.ErrNilArgument)
}

func TestMap_WithComparer(t *testing.T) {
	t.Run("key uniqueness follows the relation", func(t *testing.T) {
		m := (&spancoll.Map[string, int]{}).WithComparer(strings.EqualFold)
		assert.NoError(t, m.Add("go", 1))
		assert.ErrorIs(t, m.Add("GO", 2), spancoll.ErrDuplicateKey)

		v, err := m.Get("Go")
		assert.NoError(t, err)
		assert.Equal(t, 1, v)

		assert.NoError(t, m.Set("GO", 2))
		assert.Equal(t, []string{"go"}, m.Keys(), "Set keeps the stored key spelling")
		v, _ = m.Lookup("gO")
		assert.Equal(t, 2, v)
	})

	t.Run("panics on a populated map", func(t *testing.T) {
		var m spancoll.Map[string, int]
		assert.NoError(t, m.Add("go", 1))
		out := assert.Panic(t, func() {
			m.WithComparer(strings.EqualFold)
		})
		assert.NotNil(t, out)
	})
}

func TestMap_MapFrom(t *testing.T) {
	t.Run("populates in sequence order", func(t *testing.T) {
		m, err := spancoll.MapFrom(seqkit.Of(
			spancoll.KV[int, string]{Key: 1, Value: "a"},
			spancoll.KV[int, string]{Key: 2, Value: "b"},
		))
		assert.NoError(t, err)
		assert.Equal(t, []int{1, 2}, m.Keys())
	})

	t.Run("a repeated key fails the construction", func(t *testing.T) {
		_, err := spancoll.MapFrom(seqkit.Of(
			spancoll.KV[int, string]{Key: 1, Value: "a"},
			spancoll.KV[int, string]{Key: 1, Value: "b"},
		))
		assert.ErrorIs(t, err, spancoll.ErrDuplicateKey)
	})

	t.Run("nil sequence", func(t *testing.T) {
		_, err := spancoll.MapFrom[int, string](nil)
		assert.ErrorIs(t, err, spancoll.ErrNilArgument)
	})
}

func TestMap_ToMap(t *testing.T) {
	var m spancoll.Map[string, int]
	assert.NoError(t, m.Add("a", 1))
	assert.NoError(t, m.Add("b", 2))

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, m.ToMap())

	kvs := m.ToSlice()
	assert.Equal(t, 2, len(kvs))
	assert.Equal(t, spancoll.KV[string, int]{Key: "a", Value: 1}, kvs[0])
}

func TestMap_copy(t *testing.T) {
	var m spancoll.Map[int, string]
	assert.NoError(t, m.Add(1, "a"))
	assert.NoError(t, m.Add(2, "b"))

	dst := make([]spancoll.KV[int, string], 2)
	assert.NoError(t, m.CopyTo(dst))
	assert.Equal(t, "a", dst[0].Value)

	assert.ErrorIs(t, m.CopyTo(make([]spancoll.KV[int, string], 1)), spancoll.ErrInvalidRange)

	short := make([]spancoll.KV[int, string], 1)
	assert.Equal(t, 1, m.CopyTruncated(short))
	assert.Equal(t, 1, short[0].Key)
}

func TestMap_MapOn(t *testing.T) {
	pool := &bufkitdouble.RecordingPool[spancoll.KV[int, string]]{}
	mem := make([]spancoll.KV[int, string], 2)
	m := spancoll.MapOn(mem).WithPool(pool)

	assert.NoError(t, m.Add(1, "a"))
	assert.NoError(t, m.Add(2, "b"))
	assert.Equal(t, 0, pool.Rents)
	assert.Equal(t, 1, mem[0].Key, "entries live in the caller-supplied memory")

	assert.NoError(t, m.Add(3, "c"))
	assert.Equal(t, 1, pool.Rents, "growing past the borrowed capacity rents")
	assert.Equal(t, []int{1, 2, 3}, m.Keys())

	m.Release()
	assert.Equal(t, 1, pool.Returns)
	assert.Equal(t, 0, pool.ForeignReturns)
}

func TestMap_contract(t *testing.T) {
	spancollcontract.Container(
		func(tb testing.TB) spancollcontract.ContainerSubject[spancoll.KV[int, int]] {
			return &spancoll.Map[int, int]{}
		},
		func(c spancollcontract.ContainerSubject[spancoll.KV[int, int]], kv spancoll.KV[int, int]) error {
			return c.(*spancoll.Map[int, int]).Add(kv.Key, kv.Value)
		},
		spancollcontract.ContainerConfig[spancoll.KV[int, int]]{
			MakeElem: func() func(tb testing.TB) spancoll.KV[int, int] {
				var next int
				return func(tb testing.TB) spancoll.KV[int, int] {
					next++
					return spancoll.KV[int, int]{Key: next, Value: next}
				}
			}(),
		},
	).Test(t)
}
