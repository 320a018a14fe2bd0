package ring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i5heu/GoRingKit/pkg/heapring"
	"github.com/i5heu/GoRingKit/pkg/leanring"
	"github.com/i5heu/GoRingKit/pkg/ring"
)

func TestCollectOnEmptyBuffer(t *testing.T) {
	buf := heapring.New[int](4)
	assert.Empty(t, ring.Collect[int](buf))
}

func TestExtendFromDrain(t *testing.T) {
	src := leanring.New[int](5)
	src.Extend(1, 2, 3, 4, 5)

	dst := heapring.New[int](8)
	moved := ring.ExtendFrom[int](dst, ring.NewDrain[int](src).Next)

	assert.Equal(t, 5, moved)
	assert.True(t, src.IsEmpty())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, dst.ToSlice())
}

func TestExtendFromIterDoesNotDrain(t *testing.T) {
	src := heapring.New[int](4)
	src.Extend(7, 8, 9)

	dst := leanring.New[int](3)
	ring.ExtendFrom[int](dst, ring.NewIter[int](src).Next)

	assert.Equal(t, 3, src.Len(), "iterating copies, it does not consume")
	assert.Equal(t, src.ToSlice(), dst.ToSlice())
}

func TestEqualRequiresSameCapacity(t *testing.T) {
	a := heapring.New[int](4)
	b := heapring.New[int](8)
	a.Extend(1, 2)
	b.Extend(1, 2)

	assert.False(t, ring.Equal[int](a, b))

	c := heapring.NewArbitrary[int](4)
	c.Extend(1, 2)
	assert.True(t, ring.Equal[int](a, c), "mode does not matter, capacity and content do")
}

func TestMustGetMessageNamesBounds(t *testing.T) {
	buf := heapring.New[int](2)
	buf.Push(1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.Contains(t, r.(string), "out of range")
	}()
	ring.MustGet[int](buf, 5)
}
