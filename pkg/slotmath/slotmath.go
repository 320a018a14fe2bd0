// Package slotmath holds the pure arithmetic that maps a logical cursor to a
// physical slot inside a fixed-size backing array. Every buffer variant in
// this repository derives its slot positions from these functions, so the
// masking strategies live in one place and are tested in one place.
package slotmath

// Mask maps cursor to a slot using a bitmask. capacity must be a nonzero
// power of two; callers are expected to have validated that at construction.
func Mask(cursor, capacity uint64) uint64 {
	return cursor & (capacity - 1)
}

// Mod maps cursor to a slot using integer division. Works for any nonzero
// capacity at the cost of a division per call.
func Mod(cursor, capacity uint64) uint64 {
	return cursor % capacity
}

// IsPowerOfTwo reports whether n is a nonzero power of two.
func IsPowerOfTwo(n uint64) bool {
	return n != 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n, and 1 for n == 0.
func NextPowerOfTwo(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}

// Fold wraps pos into [0, capacity) by conditional subtraction. pos must be
// in [0, 2*capacity); the variants that use Fold keep their head cursor below
// capacity and their offsets at or below capacity, so the precondition holds
// on every hot path and no division is ever executed.
func Fold(pos, capacity int) int {
	if pos >= capacity {
		pos -= capacity
	}
	return pos
}

// FoldRelative converts a signed relative index into an offset from the
// oldest live element. Index 0 is the oldest element, -1 the newest;
// everything outside [-length, length) reports false. Every variant's Get
// and GetPtr, fixed or growable, normalizes through this one formula.
func FoldRelative(index, length int) (int, bool) {
	if index < -length || index >= length {
		return 0, false
	}
	if index < 0 {
		index += length
	}
	return index, true
}
