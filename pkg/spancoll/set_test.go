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

func ExampleSet() {
	var set spancoll.Set[int]
	defer set.Release()

	_, _ = set.TryAdd(1)
	_, _ = set.TryAdd(2)
	_, _ = set.TryAdd(1) // already present, the set stays {1, 2}
	set.Contains(2)      // true
}

func ExampleSet_withComparer() {
	set := (&spancoll.Set[string]{}).WithComparer(strings.EqualFold)
	_ = set.Add("Go")
	set.Contains("GO") // true, equality is case insensitive
}

func TestSet_Add(t *testing.T) {
	var set spancoll.Set[int]

	assert.NoError(t, set.Add(1))
	assert.NoError(t, set.Add(2))
	assert.ErrorIs(t, set.Add(1), spancoll.ErrDuplicateKey)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []int{1, 2}, set.ToSlice(), "insertion order is kept")
}

func TestSet_TryAdd(t *testing.T) {
	var set spancoll.Set[int]

	added, err := set.TryAdd(1)
	assert.NoError(t, err)
	assert.True(t, added)

	added, err = set.TryAdd(1)
	assert.NoError(t, err)
	assert.False(t, added, "a duplicate must not change the set")
	assert.Equal(t, 1, set.Len())
}

func TestSet_Put(t *testing.T) {
	t.Run("with native equality it behaves as TryAdd", func(t *testing.T) {
		var set spancoll.Set[int]
		assert.NoError(t, set.Put(1))
		assert.NoError(t, set.Put(1))
		assert.Equal(t, []int{1}, set.ToSlice())
	})

	t.Run("with a custom comparer the stored representative is replaced", func(t *testing.T) {
		set := (&spancoll.Set[string]{}).WithComparer(strings.EqualFold)
		assert.NoError(t, set.Put("go"))
		assert.NoError(t, set.Put("GO"))
		assert.Equal(t, []string{"GO"}, set.ToSlice())
		assert.Equal(t, 1, set.Len())
	})
}

func TestSet_WithComparer(t *testing.T) {
	t.Run("uniqueness follows the relation", func(t *testing.T) {
		set := (&spancoll.Set[string]{}).WithComparer(strings.EqualFold)
		assert.NoError(t, set.Add("go"))
		assert.ErrorIs(t, set.Add("GO"), spancoll.ErrDuplicateKey)
		assert.True(t, set.Contains("Go"))
		assert.True(t, set.Remove("gO"))
		assert.Equal(t, 0, set.Len())
	})

	t.Run("panics on a populated set", func(t *testing.T) {
		var set spancoll.Set[string]
		assert.NoError(t, set.Add("go"))
		out := assert.Panic(t, func() {
			set.WithComparer(strings.EqualFold)
		})
		assert.NotNil(t, out)
	})
}

func TestSet_Remove(t *testing.T) {
	var set spancoll.Set[int]
	assert.NoError(t, set.Add(1))
	assert.NoError(t, set.Add(2))
	assert.NoError(t, set.Add(3))

	assert.True(t, set.Remove(2))
	assert.False(t, set.Remove(2))
	assert.Equal(t, []int{1, 3}, set.ToSlice(), "removal keeps the insertion order of the rest")

	assert.NoError(t, set.RemoveAt(0))
	assert.Equal(t, []int{3}, set.ToSlice())
	assert.ErrorIs(t, set.RemoveAt(5), spancoll.ErrIndexOutOfRange)
}

func TestSet_RemoveWhere(t *testing.T) {
	var set spancoll.Set[int]
	for i := 1; i <= 6; i++ {
		assert.NoError(t, set.Add(i))
	}

	removed, err := set.RemoveWhere(func(v int) bool { return v%2 == 0 })
	assert.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, []int{1, 3, 5}, set.ToSlice())

	_, err = set.RemoveWhere(nil)
	assert.ErrorIs(t, err, spancoll.ErrNilArgument)
}

func TestSet_lookup(t *testing.T) {
	var set spancoll.Set[string]
	assert.NoError(t, set.Add("a"))
	assert.NoError(t, set.Add("b"))

	assert.Equal(t, 1, set.IndexOf("b"))
	assert.Equal(t, -1, set.IndexOf("x"))

	v, ok := set.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
	_, ok = set.Lookup(2)
	assert.False(t, ok)
}

func TestSet_SetFrom(t *testing.T) {
	set, err := spancoll.SetFrom(seqkit.Of(1, 2, 2, 3, 1))
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, set.ToSlice(), "duplicates in the source are skipped silently")

	_, err = spancoll.SetFrom[int](nil)
	assert.ErrorIs(t, err, spancoll.ErrNilArgument)
}

func TestSet_ToHashSet(t *testing.T) {
	t.Run("carries the elements over", func(t *testing.T) {
		var set spancoll.Set[int]
		assert.NoError(t, set.Add(1))
		assert.NoError(t, set.Add(2))

		hs := set.ToHashSet()
		assert.Equal(t, 2, hs.Len())
		assert.True(t, hs.Has(1))
		assert.True(t, hs.Has(2))
		assert.False(t, hs.Has(3))
	})

	t.Run("refuses a custom equality relation", func(t *testing.T) {
		set := (&spancoll.Set[string]{}).WithComparer(strings.EqualFold)
		assert.NoError(t, set.Add("go"))
		out := assert.Panic(t, func() { set.ToHashSet() })
		assert.NotNil(t, out)
	})
}

func TestSet_Release(t *testing.T) {
	pool := &bufkitdouble.RecordingPool[string]{}
	set := (&spancoll.Set[string]{}).
		WithComparer(strings.EqualFold).
		WithPool(pool)

	assert.NoError(t, set.Add("a"))
	set.Release()
	assert.Equal(t, 0, pool.Outstanding())

	// the comparer survives a release
	assert.NoError(t, set.Add("go"))
	assert.ErrorIs(t, set.Add("GO"), spancoll.ErrDuplicateKey)
}

func TestSet_contract(t *testing.T) {
	spancollcontract.Container(
		func(tb testing.TB) spancollcontract.ContainerSubject[int] {
			return &spancoll.Set[int]{}
		},
		func(c spancollcontract.ContainerSubject[int], v int) error {
			_, err := c.(*spancoll.Set[int]).TryAdd(v)
			return err
		},
		spancollcontract.ContainerConfig[int]{
			MakeElem: func() func(tb testing.TB) int {
				var next int
				return func(tb testing.TB) int {
					next++
					return next
				}
			}(),
		},
	).Test(t)
}
