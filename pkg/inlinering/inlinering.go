// Package inlinering implements the fixed-capacity buffer whose capacity is
// decided at compile time. The backing storage is an array type parameter
// embedded directly in the struct, so constructing a Ring performs no slot
// allocation beyond the struct itself:
//
//	r := inlinering.New[[16]string, string]()
//
// Go generics cannot parameterize over an array length directly, so the
// array type carries the capacity instead. The constructor validates, once,
// that A really is an array of T; after that every slot access goes through
// an unsafe.Slice view of the embedded array, which is sound because a Go
// array's first element sits at the array's own address and the view never
// outlives the receiver of the call that made it.
package inlinering

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/i5heu/GoRingKit/pkg/ring"
	"github.com/i5heu/GoRingKit/pkg/slotmath"
)

// Ring is a bounded overwriting buffer with inline storage. A must be an
// array type [N]T with N > 0. Not safe for concurrent use. Ring values must
// not be copied once in use; pointers handed out by GetPtr and IterMut refer
// into the original's storage.
type Ring[A, T any] struct {
	buf   A
	cap   uint64
	pow2  bool
	read  uint64 // total dequeues, never wrapped
	write uint64 // total pushes, never wrapped
}

var (
	_ ring.Buffer[int]   = (*Ring[[4]int, int])(nil)
	_ ring.Absolute[int] = (*Ring[[4]int, int])(nil)
)

// New creates an empty Ring. It panics if A is not an array of T or has zero
// length; both are programmer errors caught the first time the code runs.
func New[A, T any]() *Ring[A, T] {
	at := reflect.TypeOf((*A)(nil)).Elem()
	et := reflect.TypeOf((*T)(nil)).Elem()
	if at.Kind() != reflect.Array || at.Elem() != et {
		panic(fmt.Sprintf("inlinering: backing type %v is not an array of %v", at, et))
	}
	if at.Len() == 0 {
		panic("inlinering: capacity must be nonzero")
	}
	return &Ring[A, T]{
		cap:  uint64(at.Len()),
		pow2: slotmath.IsPowerOfTwo(uint64(at.Len())),
	}
}

// FromSlice creates a Ring holding the values of s oldest-first. When s is
// longer than the array capacity, only the most recent values that fit are
// retained.
func FromSlice[A, T any](s []T) *Ring[A, T] {
	r := New[A, T]()
	r.Extend(s...)
	return r
}

// slots returns the slot view of the embedded array. The view is derived
// fresh on every call so the struct never holds a pointer into itself.
func (r *Ring[A, T]) slots() []T {
	return unsafe.Slice((*T)(unsafe.Pointer(&r.buf)), int(r.cap))
}

func (r *Ring[A, T]) index(cursor uint64) int {
	if r.pow2 {
		return int(slotmath.Mask(cursor, r.cap))
	}
	return int(slotmath.Mod(cursor, r.cap))
}

// Len returns the number of live elements.
func (r *Ring[A, T]) Len() int { return int(r.write - r.read) }

// Cap returns the compile-time capacity.
func (r *Ring[A, T]) Cap() int { return int(r.cap) }

// IsEmpty reports whether no live elements remain.
func (r *Ring[A, T]) IsEmpty() bool { return r.read == r.write }

// IsFull reports whether the next Push will evict.
func (r *Ring[A, T]) IsFull() bool { return r.write-r.read == r.cap }

// Push appends a value, evicting the oldest element first when full.
func (r *Ring[A, T]) Push(value T) {
	if r.write-r.read == r.cap {
		r.read++
	}
	r.slots()[r.index(r.write)] = value
	r.write++
}

// Extend pushes each value in order.
func (r *Ring[A, T]) Extend(values ...T) {
	for _, v := range values {
		r.Push(v)
	}
}

// Dequeue removes and returns the oldest element, or a zero T and false when
// empty.
func (r *Ring[A, T]) Dequeue() (T, bool) {
	if r.read == r.write {
		var zero T
		return zero, false
	}
	s := r.slots()
	i := r.index(r.read)
	v := s[i]
	var zero T
	s[i] = zero
	r.read++
	return v, true
}

// Skip removes the oldest element without returning it.
func (r *Ring[A, T]) Skip() bool {
	if r.read == r.write {
		return false
	}
	var zero T
	r.slots()[r.index(r.read)] = zero
	r.read++
	return true
}

// Peek returns the oldest element without removing it.
func (r *Ring[A, T]) Peek() (T, bool) {
	if r.read == r.write {
		var zero T
		return zero, false
	}
	return r.slots()[r.index(r.read)], true
}

// Get returns the element at a signed relative index: 0 is the oldest live
// element, -1 the newest. Indices outside [-Len, Len) report false.
func (r *Ring[A, T]) Get(index int) (T, bool) {
	j, ok := slotmath.FoldRelative(index, r.Len())
	if !ok {
		var zero T
		return zero, false
	}
	return r.slots()[r.index(r.read+uint64(j))], true
}

// GetPtr is Get returning a pointer into the inline storage.
func (r *Ring[A, T]) GetPtr(index int) (*T, bool) {
	j, ok := slotmath.FoldRelative(index, r.Len())
	if !ok {
		return nil, false
	}
	return &r.slots()[r.index(r.read+uint64(j))], true
}

// GetAbs returns the element at a physical slot position counted from the
// storage origin. Valid only for index in [0, Len).
func (r *Ring[A, T]) GetAbs(index int) (T, bool) {
	if index < 0 || index >= r.Len() {
		var zero T
		return zero, false
	}
	return r.slots()[index], true
}

// GetAbsPtr is the mutable counterpart of GetAbs.
func (r *Ring[A, T]) GetAbsPtr(index int) (*T, bool) {
	if index < 0 || index >= r.Len() {
		return nil, false
	}
	return &r.slots()[index], true
}

// MustGet is Get with out-of-range upgraded to a panic.
func (r *Ring[A, T]) MustGet(index int) T {
	return ring.MustGet[T](r, index)
}

// Clear logically empties the buffer, zeroing every live slot.
func (r *Ring[A, T]) Clear() {
	s := r.slots()
	var zero T
	for c := r.read; c != r.write; c++ {
		s[r.index(c)] = zero
	}
	r.read, r.write = 0, 0
}

// Fill resets the buffer to full capacity, producing every slot's value from
// factory in physical order and discarding prior contents.
func (r *Ring[A, T]) Fill(factory func() T) {
	s := r.slots()
	for i := range s {
		s[i] = factory()
	}
	r.read, r.write = 0, r.cap
}

// Clone returns a Ring with the same logical content, compacted at the
// storage origin.
func (r *Ring[A, T]) Clone() *Ring[A, T] {
	c := New[A, T]()
	for i, n := 0, r.Len(); i < n; i++ {
		v, _ := r.Get(i)
		c.Push(v)
	}
	return c
}

// ToSlice exports the live elements oldest-first without draining.
func (r *Ring[A, T]) ToSlice() []T { return ring.Collect[T](r) }

// Iter returns a forward iterator over the live elements.
func (r *Ring[A, T]) Iter() *ring.Iter[T] { return ring.NewIter[T](r) }

// IterMut returns a mutating forward iterator over the live elements.
func (r *Ring[A, T]) IterMut() *ring.IterMut[T] { return ring.NewIterMut[T](r) }

// Drain returns a one-shot draining sequence over the live elements.
func (r *Ring[A, T]) Drain() *ring.Drain[T] { return ring.NewDrain[T](r) }
