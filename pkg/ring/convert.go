package ring

import "fmt"

// Collect exports the live elements of buf oldest-first into a fresh slice.
// The buffer is not drained. The variants' ToSlice methods delegate here.
func Collect[T any](buf Indexed[T]) []T {
	out := make([]T, 0, buf.Len())
	for i, n := 0, buf.Len(); i < n; i++ {
		v, ok := buf.Get(i)
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// CopyInto fully drains src into dst, oldest first, and returns the number
// of elements moved. When dst is a fixed buffer with less capacity than
// src's live length, overwrite-on-full keeps exactly the most recent
// elements that fit.
func CopyInto[T any](dst Writer[T], src Reader[T]) int {
	moved := 0
	for {
		v, ok := src.Dequeue()
		if !ok {
			return moved
		}
		dst.Push(v)
		moved++
	}
}

// ExtendFrom pushes values produced by next, in order, until next reports
// false. It accepts anything shaped like the iterators in this package, a
// Drain included, which makes it the drain half of a variant-to-variant
// conversion.
func ExtendFrom[T any](dst Writer[T], next func() (T, bool)) int {
	moved := 0
	for {
		v, ok := next()
		if !ok {
			return moved
		}
		dst.Push(v)
		moved++
	}
}

// MustGet upgrades a failed Get into a panic. The variants' MustGet methods
// delegate here so direct indexing fails the same way on every variant.
func MustGet[T any](buf Indexed[T], index int) T {
	v, ok := buf.Get(index)
	if !ok {
		panic(fmt.Sprintf("ring: index %d out of range for length %d", index, buf.Len()))
	}
	return v
}

// Equal reports whether a and b have the same capacity and the same live
// elements in the same logical order. Raw cursor positions are not compared;
// two buffers that hold the same values are equal regardless of how many
// wraps produced them.
func Equal[T comparable](a, b Indexed[T]) bool {
	if a.Cap() != b.Cap() || a.Len() != b.Len() {
		return false
	}
	for i, n := 0, a.Len(); i < n; i++ {
		av, _ := a.Get(i)
		bv, _ := b.Get(i)
		if av != bv {
			return false
		}
	}
	return true
}
