package ring

// Iter walks a buffer oldest to newest. It is built purely on Get: the
// cursor strictly increases and the length is snapshotted at creation, so
// one pass visits each live element exactly once. An Iter is finite and not
// restartable; take a fresh one to iterate again. Mutating the buffer while
// an Iter is live is the caller's bug, the same exclusive-access rule that
// covers every other read.
type Iter[T any] struct {
	buf    Indexed[T]
	cursor int
	length int
}

// NewIter returns an iterator over the current live elements of buf.
func NewIter[T any](buf Indexed[T]) *Iter[T] {
	return &Iter[T]{buf: buf, length: buf.Len()}
}

// Next returns the next element, or a zero T and false when the pass is done.
func (it *Iter[T]) Next() (T, bool) {
	if it.cursor >= it.length {
		var zero T
		return zero, false
	}
	v, ok := it.buf.Get(it.cursor)
	it.cursor++
	return v, ok
}

// IterMut is the mutable counterpart of Iter. Each yielded pointer refers to
// a distinct slot: the cursor strictly increases and every relative index in
// [0, Len) maps to a different physical slot, so no two pointers returned in
// one pass alias.
type IterMut[T any] struct {
	buf    IndexedPtr[T]
	cursor int
	length int
}

// NewIterMut returns a mutating iterator over the current live elements.
func NewIterMut[T any](buf IndexedPtr[T]) *IterMut[T] {
	return &IterMut[T]{buf: buf, length: buf.Len()}
}

// Next returns a pointer to the next element, or nil and false when done.
func (it *IterMut[T]) Next() (*T, bool) {
	if it.cursor >= it.length {
		return nil, false
	}
	p, ok := it.buf.GetPtr(it.cursor)
	it.cursor++
	return p, ok
}

// Drain is a lazy, one-shot sequence that dequeues from its source on every
// Next. Abandoning a Drain early leaves the source fully consistent; the
// undrained remainder stays live in the buffer.
type Drain[T any] struct {
	buf Reader[T]
}

// NewDrain returns a draining sequence over buf.
func NewDrain[T any](buf Reader[T]) *Drain[T] {
	return &Drain[T]{buf: buf}
}

// Next dequeues and returns the oldest element, or a zero T and false once
// the source is empty.
func (d *Drain[T]) Next() (T, bool) {
	return d.buf.Dequeue()
}
