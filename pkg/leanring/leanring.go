// Package leanring implements the modulo-free buffer for arbitrary
// capacities. Instead of monotonically increasing cursors it keeps the pair
// (head, length): head is the physical slot of the oldest live element and
// always stays within [0, cap), and the next write slot is head+length with
// a conditional subtraction of cap. That trades one predictable branch for
// eliminating integer division from every hot-path operation, which is the
// right call whenever the capacity is not, and should not be forced to be, a
// power of two.
package leanring

import (
	"fmt"

	"github.com/i5heu/GoRingKit/pkg/ring"
	"github.com/i5heu/GoRingKit/pkg/slotmath"
)

// DefaultCapacity is the capacity used by NewDefault.
const DefaultCapacity = 1024

// Ring is a bounded overwriting buffer of any positive capacity with no
// division on its operation paths. Not safe for concurrent use.
type Ring[T any] struct {
	buf    []T
	head   int // physical slot of the oldest element, always in [0, cap)
	length int
}

var (
	_ ring.Buffer[int]   = (*Ring[int])(nil)
	_ ring.Absolute[int] = (*Ring[int])(nil)
)

// New creates a Ring with the given capacity. Any positive capacity is
// accepted; zero or negative panics.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("leanring: capacity must be positive, got %d", capacity))
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// NewDefault creates a Ring with DefaultCapacity slots.
func NewDefault[T any]() *Ring[T] {
	return New[T](DefaultCapacity)
}

// FromSlice creates a Ring with capacity len(s) holding every value of s
// oldest-first.
func FromSlice[T any](s []T) *Ring[T] {
	r := New[T](len(s))
	r.Extend(s...)
	return r
}

// FromString creates a rune Ring from s, oldest rune first.
func FromString(s string) *Ring[rune] {
	return FromSlice([]rune(s))
}

// Len returns the number of live elements.
func (r *Ring[T]) Len() int { return r.length }

// Cap returns the capacity. It never changes for the lifetime of the Ring.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// IsEmpty reports whether no live elements remain.
func (r *Ring[T]) IsEmpty() bool { return r.length == 0 }

// IsFull reports whether the next Push will evict.
func (r *Ring[T]) IsFull() bool { return r.length == len(r.buf) }

// Push appends a value, evicting the oldest element first when full. When
// full, head+length folds back onto head itself, so the eviction is the
// overwrite: one store replaces the oldest element with the new one.
func (r *Ring[T]) Push(value T) {
	w := slotmath.Fold(r.head+r.length, len(r.buf))
	r.buf[w] = value
	if r.length == len(r.buf) {
		r.head = slotmath.Fold(r.head+1, len(r.buf))
	} else {
		r.length++
	}
}

// Extend pushes each value in order.
func (r *Ring[T]) Extend(values ...T) {
	for _, v := range values {
		r.Push(v)
	}
}

// Dequeue removes and returns the oldest element, or a zero T and false when
// empty.
func (r *Ring[T]) Dequeue() (T, bool) {
	if r.length == 0 {
		var zero T
		return zero, false
	}
	v := r.buf[r.head]
	var zero T
	r.buf[r.head] = zero
	r.head = slotmath.Fold(r.head+1, len(r.buf))
	r.length--
	return v, true
}

// Skip removes the oldest element without returning it.
func (r *Ring[T]) Skip() bool {
	if r.length == 0 {
		return false
	}
	var zero T
	r.buf[r.head] = zero
	r.head = slotmath.Fold(r.head+1, len(r.buf))
	r.length--
	return true
}

// Peek returns the oldest element without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.length == 0 {
		var zero T
		return zero, false
	}
	return r.buf[r.head], true
}

// Get returns the element at a signed relative index: 0 is the oldest live
// element, -1 the newest. Indices outside [-Len, Len) report false. head is
// below cap and the folded offset is below length, so head+offset stays
// below 2*cap and a single conditional subtraction reaches the slot.
func (r *Ring[T]) Get(index int) (T, bool) {
	j, ok := slotmath.FoldRelative(index, r.length)
	if !ok {
		var zero T
		return zero, false
	}
	return r.buf[slotmath.Fold(r.head+j, len(r.buf))], true
}

// GetPtr is Get returning a pointer into the buffer.
func (r *Ring[T]) GetPtr(index int) (*T, bool) {
	j, ok := slotmath.FoldRelative(index, r.length)
	if !ok {
		return nil, false
	}
	return &r.buf[slotmath.Fold(r.head+j, len(r.buf))], true
}

// GetAbs returns the element at a physical slot position counted from the
// storage origin. Valid only for index in [0, Len).
func (r *Ring[T]) GetAbs(index int) (T, bool) {
	if index < 0 || index >= r.length {
		var zero T
		return zero, false
	}
	return r.buf[index], true
}

// GetAbsPtr is the mutable counterpart of GetAbs.
func (r *Ring[T]) GetAbsPtr(index int) (*T, bool) {
	if index < 0 || index >= r.length {
		return nil, false
	}
	return &r.buf[index], true
}

// MustGet is Get with out-of-range upgraded to a panic.
func (r *Ring[T]) MustGet(index int) T {
	return ring.MustGet[T](r, index)
}

// Clear logically empties the buffer, zeroing every live slot.
func (r *Ring[T]) Clear() {
	var zero T
	for i, p := 0, r.head; i < r.length; i++ {
		r.buf[p] = zero
		p = slotmath.Fold(p+1, len(r.buf))
	}
	r.head, r.length = 0, 0
}

// Fill resets the buffer to full capacity, producing every slot's value from
// factory in physical order and discarding prior contents.
func (r *Ring[T]) Fill(factory func() T) {
	for i := range r.buf {
		r.buf[i] = factory()
	}
	r.head, r.length = 0, len(r.buf)
}

// Clone returns a Ring with the same capacity and logical content, compacted
// at the storage origin.
func (r *Ring[T]) Clone() *Ring[T] {
	c := New[T](len(r.buf))
	for i := 0; i < r.length; i++ {
		v, _ := r.Get(i)
		c.Push(v)
	}
	return c
}

// ToSlice exports the live elements oldest-first without draining.
func (r *Ring[T]) ToSlice() []T { return ring.Collect[T](r) }

// Iter returns a forward iterator over the live elements.
func (r *Ring[T]) Iter() *ring.Iter[T] { return ring.NewIter[T](r) }

// IterMut returns a mutating forward iterator over the live elements.
func (r *Ring[T]) IterMut() *ring.IterMut[T] { return ring.NewIterMut[T](r) }

// Drain returns a one-shot draining sequence over the live elements.
func (r *Ring[T]) Drain() *ring.Drain[T] { return ring.NewDrain[T](r) }
