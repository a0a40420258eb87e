// Package spancollcontract provides reusable behavioural contracts
// for the spancoll container types.
package spancollcontract

import (
	"fmt"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/spankit/pkg/spancoll"
)

// ContainerSubject is the surface every spancoll container shares.
type ContainerSubject[T any] interface {
	spancoll.Sizer
	Cap() int
	EnsureCapacity(capacity int) (int, error)
	TrimExcess()
	Clear()
	ToSlice() []T
	Release()
}

type ContainerConfig[T any] struct {
	// MakeElem produces an element that is accepted by the container subject.
	// Containers with a uniqueness guarantee need values that were not
	// produced before within the same test.
	MakeElem func(tb testing.TB) T
}

// Container covers the behaviour shared by every container:
// sizing, capacity management, growth, clearing and disposal.
//
// add must place the given element into the subject container.
func Container[T any](
	subject func(tb testing.TB) ContainerSubject[T],
	add func(c ContainerSubject[T], v T) error,
	conf ContainerConfig[T],
) testcase.SpecSuite {
	s := testcase.NewSpec(nil)

	s.Test("a fresh container is empty", func(t *testcase.T) {
		container := subject(t)
		assert.Equal(t, 0, container.Len())
		assert.Empty(t, container.ToSlice())
	})

	s.Test("the count follows additions", func(t *testcase.T) {
		container := subject(t)
		n := t.Random.IntBetween(1, 42)
		for i := 0; i < n; i++ {
			assert.NoError(t, add(container, conf.MakeElem(t)))
			assert.Equal(t, i+1, container.Len())
		}
	})

	s.Test("capacity grows monotonically and always covers the count", func(t *testcase.T) {
		container := subject(t)
		prevCap := container.Cap()
		t.Random.Repeat(32, 128, func() {
			assert.NoError(t, add(container, conf.MakeElem(t)))
			curCap := container.Cap()
			assert.True(t, prevCap <= curCap, "capacity must never shrink during appends")
			assert.True(t, container.Len() <= curCap)
			// the very first acquisition is exempt from the doubling bound,
			// since the pool may round a tiny request up to its smallest class
			if 0 < prevCap && prevCap < curCap {
				assert.True(t, curCap <= max(2*prevCap, container.Len()),
					"a growth step may at most double the capacity unless the count requires more")
			}
			prevCap = curCap
		})
	})

	s.Test("EnsureCapacity guarantees room", func(t *testcase.T) {
		container := subject(t)
		minCap := t.Random.IntBetween(1, 128)
		got, err := container.EnsureCapacity(minCap)
		assert.NoError(t, err)
		assert.True(t, minCap <= got)
		assert.Equal(t, got, container.Cap())
		// a second request within the capacity is a no-op
		again, err := container.EnsureCapacity(minCap)
		assert.NoError(t, err)
		assert.Equal(t, got, again)
	})

	s.Test("EnsureCapacity rejects a negative request", func(t *testcase.T) {
		container := subject(t)
		_, err := container.EnsureCapacity(-1 * t.Random.IntBetween(1, 42))
		assert.Error(t, err)
	})

	s.Test("Clear empties the container but keeps its capacity", func(t *testcase.T) {
		container := subject(t)
		t.Random.Repeat(3, 7, func() {
			assert.NoError(t, add(container, conf.MakeElem(t)))
		})
		curCap := container.Cap()
		container.Clear()
		assert.Equal(t, 0, container.Len())
		assert.Equal(t, curCap, container.Cap())
	})

	s.Test("TrimExcess drops excess capacity of a sparse container", func(t *testcase.T) {
		container := subject(t)
		assert.NoError(t, add(container, conf.MakeElem(t)))
		_, err := container.EnsureCapacity(128)
		assert.NoError(t, err)
		container.TrimExcess()
		assert.True(t, container.Cap() < 128)
		assert.Equal(t, 1, container.Len())
	})

	s.Test("Release resets to an empty reusable state", func(t *testcase.T) {
		container := subject(t)
		t.Random.Repeat(3, 7, func() {
			assert.NoError(t, add(container, conf.MakeElem(t)))
		})
		container.Release()
		assert.Equal(t, 0, container.Len())
		assert.Equal(t, 0, container.Cap())
		// released containers behave as fresh ones
		assert.NoError(t, add(container, conf.MakeElem(t)))
		assert.Equal(t, 1, container.Len())
		// releasing twice is a no-op
		container.Release()
		container.Release()
		assert.Equal(t, 0, container.Len())
	})

	var zero T
	return s.AsSuite(fmt.Sprintf("Container[%T]", zero))
}
