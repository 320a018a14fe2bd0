// Package growring implements the growable member of the buffer family. It
// satisfies the same capability contract as the fixed variants but a Push
// into a full buffer grows the backing allocation instead of evicting the
// oldest element. Storage and growth are delegated entirely to a dynamic
// ring-backed queue; this package adds nothing to the indexing logic beyond
// translating the contract's signed relative indices.
//
// Elements are boxed so GetPtr and IterMut can hand out stable pointers; the
// per-push allocation is the documented price of the growable variant.
//
// Absolute indexing is not supported: the backing queue rotates and regrows
// its storage, so there is no stable physical-address view to expose.
// GetAbs and GetAbsPtr panic rather than return something silently wrong.
package growring

import (
	"github.com/eapache/queue/v2"

	"github.com/i5heu/GoRingKit/pkg/ring"
	"github.com/i5heu/GoRingKit/pkg/slotmath"
)

// minBacking is the backing queue's smallest allocation. It mirrors the
// minimum ring size of eapache/queue, which Cap tracking depends on.
const minBacking = 16

// Ring is an unbounded buffer that grows instead of overwriting. Not safe
// for concurrent use.
type Ring[T any] struct {
	q *queue.Queue[*T]

	// cap mirrors the backing queue's allocation size, maintained with the
	// same rule the queue itself uses: double when full on add, halve when a
	// remove leaves it a quarter full (never below minBacking). The queue
	// does not expose its allocation, so we account for it alongside.
	cap int
}

var _ ring.Buffer[int] = (*Ring[int])(nil)

// New creates an empty growable Ring.
func New[T any]() *Ring[T] {
	return &Ring[T]{q: queue.New[*T](), cap: minBacking}
}

// FromSlice creates a Ring holding every value of s oldest-first.
func FromSlice[T any](s []T) *Ring[T] {
	r := New[T]()
	r.Extend(s...)
	return r
}

// Len returns the number of live elements.
func (r *Ring[T]) Len() int { return r.q.Length() }

// Cap returns the current backing allocation size. Unlike the fixed
// variants it is not a logical limit and changes as the buffer grows and
// shrinks.
func (r *Ring[T]) Cap() int { return r.cap }

// IsEmpty reports whether no live elements remain.
func (r *Ring[T]) IsEmpty() bool { return r.q.Length() == 0 }

// IsFull reports whether the backing allocation is full, i.e. the next Push
// grows it. A growable Ring never evicts.
func (r *Ring[T]) IsFull() bool { return r.q.Length() == r.cap }

// Push appends a value. It never evicts; a full backing allocation doubles.
func (r *Ring[T]) Push(value T) {
	if r.q.Length() == r.cap {
		r.cap <<= 1
	}
	v := value
	r.q.Add(&v)
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
	if r.q.Length() == 0 {
		var zero T
		return zero, false
	}
	p := r.q.Remove()
	r.shrinkAccounting()
	return *p, true
}

// Skip removes the oldest element without returning it.
func (r *Ring[T]) Skip() bool {
	if r.q.Length() == 0 {
		return false
	}
	r.q.Remove()
	r.shrinkAccounting()
	return true
}

// shrinkAccounting applies the backing queue's shrink rule after a remove.
func (r *Ring[T]) shrinkAccounting() {
	if r.cap > minBacking && r.q.Length()*4 == r.cap {
		r.cap >>= 1
	}
}

// Peek returns the oldest element without removing it.
func (r *Ring[T]) Peek() (T, bool) {
	if r.q.Length() == 0 {
		var zero T
		return zero, false
	}
	return *r.q.Peek(), true
}

// Get returns the element at a signed relative index: 0 is the oldest live
// element, -1 the newest. Indices outside [-Len, Len) report false.
func (r *Ring[T]) Get(index int) (T, bool) {
	j, ok := slotmath.FoldRelative(index, r.q.Length())
	if !ok {
		var zero T
		return zero, false
	}
	return *r.q.Get(j), true
}

// GetPtr is Get returning a pointer to the element. Both Get and GetPtr
// normalize the index through the same formula, so negative indices behave
// identically on the two paths.
func (r *Ring[T]) GetPtr(index int) (*T, bool) {
	j, ok := slotmath.FoldRelative(index, r.q.Length())
	if !ok {
		return nil, false
	}
	return r.q.Get(j), true
}

// GetAbs panics: the growable variant has no stable physical view.
func (r *Ring[T]) GetAbs(index int) (T, bool) {
	panic("growring: absolute indexing is not supported by the growable variant")
}

// GetAbsPtr panics: the growable variant has no stable physical view.
func (r *Ring[T]) GetAbsPtr(index int) (*T, bool) {
	panic("growring: absolute indexing is not supported by the growable variant")
}

// MustGet is Get with out-of-range upgraded to a panic.
func (r *Ring[T]) MustGet(index int) T {
	return ring.MustGet[T](r, index)
}

// Clear logically empties the buffer by dropping the backing queue. The
// allocation restarts at the backing minimum; a growable Ring's capacity is
// an allocation report, not a contract.
func (r *Ring[T]) Clear() {
	r.q = queue.New[*T]()
	r.cap = minBacking
}

// Fill resets the buffer to its current capacity, producing every value from
// factory and discarding prior contents.
func (r *Ring[T]) Fill(factory func() T) {
	n := r.cap
	r.Clear()
	for i := 0; i < n; i++ {
		r.Push(factory())
	}
}

// Clone returns a Ring with the same logical content.
func (r *Ring[T]) Clone() *Ring[T] {
	c := New[T]()
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
