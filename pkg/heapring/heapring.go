// Package heapring implements the fixed-capacity, heap-backed overwriting
// buffer. It keeps two monotonically increasing logical cursors: read counts
// every dequeue ever performed, write counts every push. The live region is
// the half-open cursor range [read, write); slots outside it hold stale
// values and are never read, and a slot leaves the live region through
// exactly one of: dequeue/skip (zeroed), clear (zeroed), or overwrite by a
// push into a full buffer.
//
// Two sub-modes share the type: New requires a power-of-two capacity and
// maps cursors with a bitmask; NewArbitrary accepts any nonzero capacity and
// pays a division per slot lookup.
package heapring

import (
	"fmt"

	"github.com/i5heu/GoRingKit/pkg/ring"
	"github.com/i5heu/GoRingKit/pkg/slotmath"
)

// DefaultCapacity is the capacity used by NewDefault.
const DefaultCapacity = 1024

// Ring is a bounded buffer that overwrites its oldest element when full.
// Not safe for concurrent use; the engine assumes a single owner.
type Ring[T any] struct {
	buf   []T
	cap   uint64
	pow2  bool
	read  uint64 // total dequeues, never wrapped
	write uint64 // total pushes, never wrapped
}

// Compile-time check that *Ring satisfies the full contract.
var (
	_ ring.Buffer[int]   = (*Ring[int])(nil)
	_ ring.Absolute[int] = (*Ring[int])(nil)
)

// New creates a Ring in bitmask mode. capacity must be a nonzero power of
// two; anything else is a programmer error and panics.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 || !slotmath.IsPowerOfTwo(uint64(capacity)) {
		panic(fmt.Sprintf("heapring: capacity must be a nonzero power of two, got %d", capacity))
	}
	return &Ring[T]{
		buf:  make([]T, capacity),
		cap:  uint64(capacity),
		pow2: true,
	}
}

// NewArbitrary creates a Ring in modulo mode. capacity may be any positive
// value; slot lookups cost a division.
func NewArbitrary[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("heapring: capacity must be positive, got %d", capacity))
	}
	return &Ring[T]{
		buf:  make([]T, capacity),
		cap:  uint64(capacity),
		pow2: slotmath.IsPowerOfTwo(uint64(capacity)),
	}
}

// NewDefault creates a bitmask-mode Ring with DefaultCapacity slots.
func NewDefault[T any]() *Ring[T] {
	return New[T](DefaultCapacity)
}

// FromSlice creates a Ring holding the values of s oldest-first. The
// capacity is len(s) rounded up to the next power of two, so the result is
// always in bitmask mode and holds every value.
func FromSlice[T any](s []T) *Ring[T] {
	r := New[T](int(slotmath.NextPowerOfTwo(uint64(len(s)))))
	r.Extend(s...)
	return r
}

// FromString creates a rune Ring from s, oldest rune first.
func FromString(s string) *Ring[rune] {
	return FromSlice([]rune(s))
}

func (r *Ring[T]) index(cursor uint64) int {
	if r.pow2 {
		return int(slotmath.Mask(cursor, r.cap))
	}
	return int(slotmath.Mod(cursor, r.cap))
}

// Len returns the number of live elements.
func (r *Ring[T]) Len() int { return int(r.write - r.read) }

// Cap returns the capacity. It never changes for the lifetime of the Ring.
func (r *Ring[T]) Cap() int { return int(r.cap) }

// IsEmpty reports whether no live elements remain.
func (r *Ring[T]) IsEmpty() bool { return r.read == r.write }

// IsFull reports whether the next Push will evict.
func (r *Ring[T]) IsFull() bool { return r.write-r.read == r.cap }

// Push appends a value, evicting the oldest element first when full.
// Eviction and insertion are one step: when full, the oldest element's slot
// is exactly the slot the new value lands in.
func (r *Ring[T]) Push(value T) {
	if r.write-r.read == r.cap {
		r.read++
	}
	r.buf[r.index(r.write)] = value
	r.write++
}

// Extend pushes each value in order.
func (r *Ring[T]) Extend(values ...T) {
	for _, v := range values {
		r.Push(v)
	}
}

// Dequeue removes and returns the oldest element, or a zero T and false when
// empty. The vacated slot is zeroed so anything it referenced can be
// collected.
func (r *Ring[T]) Dequeue() (T, bool) {
	if r.read == r.write {
		var zero T
		return zero, false
	}
	i := r.index(r.read)
	v := r.buf[i]
	var zero T
	r.buf[i] = zero
	r.read++
	return v, true
}

// Skip removes the oldest element without returning it.
func (r *Ring[T]) Skip() bool {
	if r.read == r.write {
		return false
	}
	i := r.index(r.read)
	var zero T
	r.buf[i] = zero
	r.read++
	return true
}

// Peek returns the oldest element without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.read == r.write {
		var zero T
		return zero, false
	}
	return r.buf[r.index(r.read)], true
}

// Get returns the element at a signed relative index: 0 is the oldest live
// element, -1 the newest. Indices outside [-Len, Len) report false.
func (r *Ring[T]) Get(index int) (T, bool) {
	j, ok := slotmath.FoldRelative(index, r.Len())
	if !ok {
		var zero T
		return zero, false
	}
	return r.buf[r.index(r.read+uint64(j))], true
}

// GetPtr is Get returning a pointer into the buffer. The pointer is valid
// until the slot is evicted or the buffer cleared.
func (r *Ring[T]) GetPtr(index int) (*T, bool) {
	j, ok := slotmath.FoldRelative(index, r.Len())
	if !ok {
		return nil, false
	}
	return &r.buf[r.index(r.read+uint64(j))], true
}

// GetAbs returns the element at a physical slot position counted from the
// storage origin, bypassing the logical order. Valid only for index in
// [0, Len). Rarely useful outside internals.
func (r *Ring[T]) GetAbs(index int) (T, bool) {
	if index < 0 || index >= r.Len() {
		var zero T
		return zero, false
	}
	return r.buf[index], true
}

// GetAbsPtr is the mutable counterpart of GetAbs.
func (r *Ring[T]) GetAbsPtr(index int) (*T, bool) {
	if index < 0 || index >= r.Len() {
		return nil, false
	}
	return &r.buf[index], true
}

// MustGet is Get with out-of-range upgraded to a panic.
func (r *Ring[T]) MustGet(index int) T {
	return ring.MustGet[T](r, index)
}

// Clear logically empties the buffer. Every live slot is zeroed; capacity
// and backing storage are untouched.
func (r *Ring[T]) Clear() {
	var zero T
	for c := r.read; c != r.write; c++ {
		r.buf[r.index(c)] = zero
	}
	r.read, r.write = 0, 0
}

// Fill resets the buffer to full capacity, producing every slot's value from
// factory in physical order and discarding prior contents.
func (r *Ring[T]) Fill(factory func() T) {
	for i := range r.buf {
		r.buf[i] = factory()
	}
	r.read, r.write = 0, uint64(len(r.buf))
}

// SetLen forces the live region to cover the first n physical slots. This is
// a low-level escape hatch: slots the caller never wrote are exposed with
// whatever stale values they hold, and elements shadowed by shrinking are
// not zeroed, so anything they reference stays reachable until overwritten.
func (r *Ring[T]) SetLen(n int) {
	if n < 0 || uint64(n) > r.cap {
		panic(fmt.Sprintf("heapring: SetLen(%d) out of range for capacity %d", n, r.cap))
	}
	r.read, r.write = 0, uint64(n)
}

// Clone returns a Ring with the same capacity, mode, and logical content.
// Raw cursor positions are not preserved; the clone starts compacted at the
// storage origin.
func (r *Ring[T]) Clone() *Ring[T] {
	c := &Ring[T]{
		buf:  make([]T, r.cap),
		cap:  r.cap,
		pow2: r.pow2,
	}
	for i, n := 0, r.Len(); i < n; i++ {
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
