package heapring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoRingKit/pkg/ring"
)

func TestNewValidatesCapacity(t *testing.T) {
	assert.Panics(t, func() { New[int](0) })
	assert.Panics(t, func() { New[int](-1) })
	assert.Panics(t, func() { New[int](3) })
	assert.Panics(t, func() { New[int](1000) })
	assert.NotPanics(t, func() { New[int](1) })
	assert.NotPanics(t, func() { New[int](1024) })
}

func TestNewArbitraryValidatesCapacity(t *testing.T) {
	assert.Panics(t, func() { NewArbitrary[int](0) })
	assert.Panics(t, func() { NewArbitrary[int](-5) })
	assert.NotPanics(t, func() { NewArbitrary[int](3) })
	assert.NotPanics(t, func() { NewArbitrary[int](1000) })
}

func TestNewDefaultCapacity(t *testing.T) {
	r := NewDefault[string]()
	assert.Equal(t, 1024, r.Cap())
	assert.Equal(t, 0, r.Len())
}

func TestCapacityTwoScenario(t *testing.T) {
	r := New[int](2)
	r.Push(5)
	r.Push(42)

	v, ok := r.Get(-1)
	require.True(t, ok)
	assert.Equal(t, 42, v)

	v, ok = r.Peek()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	assert.True(t, r.IsFull())

	r.Push(1)
	assert.Equal(t, []int{42, 1}, r.ToSlice())
}

func TestArbitraryCapacityTenScenario(t *testing.T) {
	r := NewArbitrary[int](10)
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

func TestPushEvictsExactlyOldest(t *testing.T) {
	r := New[int](4)
	r.Extend(0, 1, 2, 3)

	r.Push(4)

	assert.Equal(t, 4, r.Len(), "eviction and insertion are one step")
	assert.Equal(t, []int{1, 2, 3, 4}, r.ToSlice())
}

func TestDequeuedSlotIsReleased(t *testing.T) {
	r := New[*int](4)
	x := 7
	r.Push(&x)

	_, ok := r.Dequeue()
	require.True(t, ok)

	// The vacated slot no longer pins the element.
	p, ok := r.GetAbsPtr(0)
	assert.False(t, ok)
	assert.Nil(t, p)
	r.SetLen(1)
	stale, ok := r.GetAbs(0)
	require.True(t, ok)
	assert.Nil(t, stale)
}

func TestGetAbsPhysicalOrder(t *testing.T) {
	r := New[int](4)
	// Wrap so logical and physical order diverge.
	r.Extend(0, 1, 2, 3, 4, 5)

	// Live region is [2 3 4 5], physically [4 5 2 3].
	assert.Equal(t, []int{2, 3, 4, 5}, r.ToSlice())

	v, ok := r.GetAbs(0)
	require.True(t, ok)
	assert.Equal(t, 4, v)
	v, ok = r.GetAbs(3)
	require.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = r.GetAbs(4)
	assert.False(t, ok)
	_, ok = r.GetAbs(-1)
	assert.False(t, ok)
}

func TestSetLen(t *testing.T) {
	r := New[int](8)
	r.Fill(func() int { return 3 })
	r.Clear()

	r.SetLen(4)
	assert.Equal(t, 4, r.Len())

	assert.Panics(t, func() { r.SetLen(9) })
	assert.Panics(t, func() { r.SetLen(-1) })
}

func TestCloneResetsCursorsNotContent(t *testing.T) {
	r := New[int](4)
	r.Extend(0, 1, 2, 3, 4, 5) // wrapped

	c := r.Clone()
	assert.Equal(t, r.Cap(), c.Cap())
	assert.Equal(t, r.ToSlice(), c.ToSlice())
	assert.True(t, ring.Equal[int](r, c))

	// The clone is compacted: physical order equals logical order.
	v, ok := c.GetAbs(0)
	require.True(t, ok)
	assert.Equal(t, 2, v)

	c.Push(9)
	assert.False(t, ring.Equal[int](r, c))
	assert.Equal(t, []int{2, 3, 4, 5}, r.ToSlice(), "clone is independent")
}

func TestFromSliceRoundsCapacityUp(t *testing.T) {
	r := FromSlice([]int{1, 2, 3, 4, 5})
	assert.Equal(t, 8, r.Cap())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, r.ToSlice())
}

func TestFromString(t *testing.T) {
	r := FromString("ring")
	assert.Equal(t, []rune("ring"), r.ToSlice())

	v, ok := r.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 'r', v)
}

func TestModuloModeMatchesBitmaskMode(t *testing.T) {
	a := New[int](16)
	b := NewArbitrary[int](16)
	for i := 0; i < 100; i++ {
		a.Push(i)
		b.Push(i)
		if i%3 == 0 {
			a.Dequeue()
			b.Dequeue()
		}
	}
	assert.Equal(t, a.ToSlice(), b.ToSlice())
	assert.True(t, ring.Equal[int](a, b))
}
