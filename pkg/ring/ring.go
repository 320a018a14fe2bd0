// Package ring defines the capability contract shared by every buffer
// variant in this repository, plus the generic iteration and conversion
// helpers that are built purely on top of that contract.
//
// The contract is split into orthogonal capabilities instead of one
// monolithic interface so a variant can opt out of what it cannot support
// efficiently (the growable wrapper, for example, has no stable physical
// view and therefore no absolute indexing) while still composing with the
// generic helpers, which only ever demand the smallest capability they need.
package ring

// Container is the base sizing/clearing capability every variant implements.
type Container interface {
	// Len returns the number of live elements.
	Len() int

	// Cap returns the capacity. For fixed variants this never changes; the
	// growable variant reports the current backing allocation size.
	Cap() int

	// IsEmpty reports whether no live elements remain.
	IsEmpty() bool

	// IsFull reports whether Len has reached Cap.
	IsFull() bool

	// Clear logically empties the buffer, releasing every live element.
	// Capacity is unchanged for fixed variants and backing storage is not
	// deallocated.
	Clear()
}

// Reader is the read side of the contract.
type Reader[T any] interface {
	Container

	// Dequeue removes and returns the oldest element.
	// If the buffer is empty it returns a zero T and false, otherwise true.
	Dequeue() (T, bool)

	// Skip removes the oldest element without returning it. It reports
	// whether an element was removed.
	Skip() bool

	// Peek returns the oldest element without removing it.
	Peek() (T, bool)
}

// Writer is the write side of the contract.
type Writer[T any] interface {
	Container

	// Push appends a value. A full fixed buffer evicts its oldest element
	// first; Push never fails and never blocks, overwrite-oldest is the
	// defining semantic. The growable variant grows instead of evicting.
	Push(value T)

	// Extend pushes each value in order.
	Extend(values ...T)
}

// Indexed is the minimal read-only random-access capability. Index 0 is the
// oldest live element, -1 the newest; indices outside [-Len, Len) report
// false. The generic iterators and Equal build on nothing more than this.
type Indexed[T any] interface {
	Container

	// Get returns the element at the given relative index.
	Get(index int) (T, bool)
}

// IndexedPtr is the mutable counterpart of Indexed.
type IndexedPtr[T any] interface {
	Container

	// GetPtr returns a pointer to the element at the given relative index.
	GetPtr(index int) (*T, bool)
}

// Buffer is the full contract: everything a caller can ask of a variant
// without caring which storage strategy backs it.
type Buffer[T any] interface {
	Reader[T]
	Writer[T]
	Indexed[T]
	IndexedPtr[T]

	// MustGet is the indexing operator: Get with out-of-range upgraded to a
	// panic, for call sites that have no (T, bool) channel.
	MustGet(index int) T

	// Fill resets the buffer to full capacity, generating every slot's value
	// from factory and discarding prior contents.
	Fill(factory func() T)

	// ToSlice exports the live elements oldest-first without draining.
	ToSlice() []T
}

// Absolute is the physical-view capability: access by raw slot position,
// bypassing the logical order. Rarely useful outside the variants' own
// internals and intentionally absent from Buffer, because the growable
// wrapper cannot implement it.
type Absolute[T any] interface {
	// GetAbs returns the element at a physical index counted from the
	// storage origin. Valid only for index in [0, Len).
	GetAbs(index int) (T, bool)

	// GetAbsPtr is the mutable counterpart of GetAbs.
	GetAbsPtr(index int) (*T, bool)
}
