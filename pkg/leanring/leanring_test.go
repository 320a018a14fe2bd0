package leanring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoRingKit/pkg/ring"
)

func TestNewValidatesCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
	assert.Panics(t, func() { New[int](-3) })
	assert.NotPanics(t, func() { New[int](1) })
	assert.NotPanics(t, func() { New[int](10) })
}

func TestNewDefaultCapacity(t *testing.T) {
	r := NewDefault[int]()
	assert.Equal(t, 1024, r.Cap())
}

func TestCapacityTenScenario(t *testing.T) {
	r := New[int](10)
	for i := 0; i < 1000; i++ {
		r.Push(i)
	}
	require.True(t, r.IsFull())

	for i := 0; i < 10; i++ {
		v, ok := r.Dequeue()
		require.True(t, ok)
		assert.Equal(t, 990+i, v)
	}
	assert.True(t, r.IsEmpty())
}

func TestHeadStaysBelowCapacity(t *testing.T) {
	// Exercises the conditional-subtraction wrap over many full cycles on a
	// prime capacity, where a masking bug would surface immediately.
	r := New[int](13)
	for i := 0; i < 10_000; i++ {
		r.Push(i)
		if i%3 == 0 {
			r.Dequeue()
		}
		if v, ok := r.Peek(); ok {
			first, ok := r.Get(0)
			require.True(t, ok)
			require.Equal(t, v, first, "peek and Get(0) must agree at step %d", i)
		}
	}
}

func TestPushWhenFullOverwritesInPlace(t *testing.T) {
	r := New[int](3)
	r.Extend(1, 2, 3)
	r.Push(4)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []int{2, 3, 4}, r.ToSlice())

	v, ok := r.Get(-1)
	require.True(t, ok)
	assert.Equal(t, 4, v)
}

func TestGetAbsPhysicalOrder(t *testing.T) {
	r := New[int](4)
	r.Extend(0, 1, 2, 3, 4, 5)

	// Physically the slots hold [4 5 2 3]; logically [2 3 4 5].
	assert.Equal(t, []int{2, 3, 4, 5}, r.ToSlice())
	v, ok := r.GetAbs(0)
	require.True(t, ok)
	assert.Equal(t, 4, v)
	_, ok = r.GetAbs(4)
	assert.False(t, ok)
}

func TestClearZeroesLiveSlots(t *testing.T) {
	r := New[*int](5)
	x, y := 1, 2
	r.Extend(&x, &y)
	r.Clear()

	require.True(t, r.IsEmpty())
	// Nothing stale survives a clear followed by a refill.
	r.Fill(func() *int { return nil })
	for i := 0; i < r.Cap(); i++ {
		v, ok := r.Get(i)
		require.True(t, ok)
		assert.Nil(t, v)
	}
}

func TestFromStringAndSlice(t *testing.T) {
	r := FromString("lean")
	assert.Equal(t, 4, r.Cap())
	assert.Equal(t, []rune("lean"), r.ToSlice())

	s := FromSlice([]int{7, 8, 9})
	assert.Equal(t, 3, s.Cap())
	assert.True(t, s.IsFull())
}

func TestCloneAfterWrap(t *testing.T) {
	r := New[int](5)
	for i := 0; i < 23; i++ {
		r.Push(i)
	}
	c := r.Clone()
	assert.True(t, ring.Equal[int](r, c))

	// Clone is compacted at the storage origin.
	v, ok := c.GetAbs(0)
	require.True(t, ok)
	first, _ := r.Get(0)
	assert.Equal(t, first, v)
}
