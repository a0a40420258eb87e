package spancoll_test

import (
	"testing"

	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/random"

	"go.llib.dev/spankit/pkg/bufkit/bufkitdouble"
	"go.llib.dev/spankit/pkg/seqkit"
	"go.llib.dev/spankit/pkg/spancoll"
	"go.llib.dev/spankit/pkg/spancoll/spancollcontract"
)

func ExampleStack() {
	var stack spancoll.Stack[int]
	defer stack.Release()

	_ = stack.Push(1)
	_ = stack.Push(2)
	v, _ := stack.Pop() // 2
	_ = v
}

func TestStack_smoke(t *testing.T) {
	var stack spancoll.Stack[int]

	assert.NoError(t, stack.Push(1))
	assert.NoError(t, stack.Push(2))
	assert.NoError(t, stack.Push(3))
	assert.Equal(t, 3, stack.Len())

	v, err := stack.Peek()
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
	assert.Equal(t, 3, stack.Len(), "peek must not remove")

	v, err = stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
	v, err = stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, 2, v)
	v, err = stack.Pop()
	assert.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = stack.Pop()
	assert.ErrorIs(t, err, spancoll.ErrEmpty)
	_, err = stack.Peek()
	assert.ErrorIs(t, err, spancoll.ErrEmpty)

	_, ok := stack.TryPop()
	assert.False(t, ok)
	_, ok = stack.TryPeek()
	assert.False(t, ok)
}

func TestStack_PushRange(t *testing.T) {
	t.Run("the last value of the range becomes the top", func(t *testing.T) {
		var stack spancoll.Stack[int]
		assert.NoError(t, stack.Push(0))
		assert.NoError(t, stack.Push(1))
		assert.NoError(t, stack.Push(2))
		assert.NoError(t, stack.PushRange([]int{3, 4}))

		var got []int
		for {
			v, ok := stack.TryPop()
			if !ok {
				break
			}
			got = append(got, v)
		}
		assert.Equal(t, []int{4, 3, 2, 1, 0}, got)
	})

	t.Run("an empty range is a no-op", func(t *testing.T) {
		var stack spancoll.Stack[int]
		assert.NoError(t, stack.PushRange(nil))
		assert.Equal(t, 0, stack.Len())
	})
}

func TestStack_PushSeq(t *testing.T) {
	var stack spancoll.Stack[int]
	assert.NoError(t, stack.PushSeq(seqkit.Of(1, 2, 3)))
	assert.Equal(t, []int{3, 2, 1}, stack.ToSlice(),
		"ToSlice is in pop order, so the last pushed value comes first")

	assert.ErrorIs(t, stack.PushSeq(nil), spancoll.ErrNilArgument)

	t.Run("an opaque iterator pushes in sequence order too", func(t *testing.T) {
		stack, err := spancoll.StackFrom(seqkit.From(seqkit.Of(1, 2, 3).All()))
		assert.NoError(t, err)
		v, _ := stack.Pop()
		assert.Equal(t, 3, v)
	})
}

func TestStack_PushSpan(t *testing.T) {
	var stack spancoll.Stack[int]
	assert.NoError(t, stack.Push(1))

	span, err := stack.PushSpan(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(span))
	// index 0 of the span is the new top
	span[0], span[1] = 3, 2

	assert.Equal(t, []int{3, 2, 1}, stack.ToSlice())

	_, err = stack.PushSpan(-1)
	assert.ErrorIs(t, err, spancoll.ErrInvalidRange)
}

func TestStack_topRelativeIndexing(t *testing.T) {
	var stack spancoll.Stack[string]
	assert.NoError(t, stack.Push("bottom"))
	assert.NoError(t, stack.Push("middle"))
	assert.NoError(t, stack.Push("top"))

	v, ok := stack.Lookup(0)
	assert.True(t, ok)
	assert.Equal(t, "top", v)
	v, ok = stack.Lookup(2)
	assert.True(t, ok)
	assert.Equal(t, "bottom", v)
	_, ok = stack.Lookup(3)
	assert.False(t, ok)

	assert.NoError(t, stack.Set(1, "mid"))
	assert.Equal(t, []string{"top", "mid", "bottom"}, stack.ToSlice())
	assert.ErrorIs(t, stack.Set(3, "x"), spancoll.ErrIndexOutOfRange)
}

func TestStack_search(t *testing.T) {
	var stack spancoll.Stack[int]
	assert.NoError(t, stack.PushRange([]int{1, 2, 1, 3}))
	// pop order: 3, 1, 2, 1

	assert.True(t, stack.Contains(2))
	assert.False(t, stack.Contains(42))
	assert.Equal(t, 1, stack.IndexOf(1), "the occurrence closest to the top wins")
	assert.Equal(t, 3, stack.LastIndexOf(1))
	assert.Equal(t, -1, stack.IndexOf(42))
}

func TestStack_PopN(t *testing.T) {
	var stack spancoll.Stack[int]
	assert.NoError(t, stack.PushRange([]int{1, 2, 3}))

	dst := make([]int, 2)
	assert.Equal(t, 2, stack.PopN(dst))
	assert.Equal(t, []int{3, 2}, dst)
	assert.Equal(t, 1, stack.Len())

	dst = make([]int, 5)
	assert.Equal(t, 1, stack.PopN(dst), "PopN stops at the bottom of the stack")
	assert.Equal(t, 1, dst[0])
}

func TestStack_copy(t *testing.T) {
	var stack spancoll.Stack[int]
	assert.NoError(t, stack.PushRange([]int{1, 2, 3}))

	dst := make([]int, 3)
	assert.NoError(t, stack.CopyTo(dst))
	assert.Equal(t, []int{3, 2, 1}, dst, "copies are in pop order")
	assert.Equal(t, 3, stack.Len(), "copying must not consume")

	assert.ErrorIs(t, stack.CopyTo(make([]int, 2)), spancoll.ErrInvalidRange)

	short := make([]int, 2)
	assert.Equal(t, 2, stack.CopyTruncated(short))
	assert.Equal(t, []int{3, 2}, short)
}

func TestStack_growthKeepsPopOrder(t *testing.T) {
	rnd := random.New(random.CryptoSeed{})
	pool := &bufkitdouble.RecordingPool[int]{}
	stack := (&spancoll.Stack[int]{}).WithPool(pool)

	var want []int // pop order, most recent first
	n := rnd.IntBetween(50, 100)
	for i := 0; i < n; i++ {
		v := rnd.Int()
		assert.NoError(t, stack.Push(v))
		want = append([]int{v}, want...)
	}
	assert.True(t, 2 <= pool.Rents, "the stack must have grown at least once")
	assert.Equal(t, want, stack.ToSlice(),
		"relocation must keep the live region end-aligned")

	stack.Release()
	assert.Equal(t, 0, pool.Outstanding())
}

func TestStack_borrowedBuffer(t *testing.T) {
	pool := &bufkitdouble.RecordingPool[int]{}
	mem := make([]int, 2)
	stack := spancoll.StackOn(mem).WithPool(pool)

	assert.NoError(t, stack.Push(1))
	assert.NoError(t, stack.Push(2))
	assert.Equal(t, []int{2, 1}, mem, "the top lives at the start of the end-packed region")
	assert.Equal(t, 0, pool.Rents)

	assert.NoError(t, stack.Push(3))
	assert.Equal(t, []int{3, 2, 1}, stack.ToSlice())
	assert.Equal(t, 1, pool.Rents)

	stack.Release()
	assert.Equal(t, 1, pool.Returns)
	assert.Equal(t, 0, pool.ForeignReturns)
}

func TestStack_Iter(t *testing.T) {
	var stack spancoll.Stack[int]
	assert.NoError(t, stack.PushRange([]int{1, 2, 3}))

	var got []int
	for v := range stack.Iter() {
		got = append(got, v)
	}
	assert.Equal(t, []int{3, 2, 1}, got)

	view, ok := stack.TrySlice()
	assert.True(t, ok)
	assert.Equal(t, []int{3, 2, 1}, view)
}

func TestStack_contract(t *testing.T) {
	spancollcontract.Container(
		func(tb testing.TB) spancollcontract.ContainerSubject[int] {
			return &spancoll.Stack[int]{}
		},
		func(c spancollcontract.ContainerSubject[int], v int) error {
			return c.(*spancoll.Stack[int]).Push(v)
		},
		spancollcontract.ContainerConfig[int]{
			MakeElem: func(tb testing.TB) int {
				return random.New(random.CryptoSeed{}).Int()
			},
		},
	).Test(t)
}
