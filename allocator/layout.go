package allocator

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"
)

// Layout describes a block of raw memory: its size in bytes and the
// alignment of its first byte.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// NewLayout validates align and returns the layout.
func NewLayout(size, align uintptr) (Layout, error) {
	if !isPowerOfTwo(align) {
		return Layout{}, fmt.Errorf("alignment %d: %w", align, ErrNotPowerOfTwo)
	}
	return Layout{Size: size, Align: align}, nil
}

func isPowerOfTwo[T constraints.Unsigned](n T) bool {
	return n != 0 && n&(n-1) == 0
}

// alignUp rounds n up to the next multiple of align, which must be a power
// of two.
func alignUp[T constraints.Unsigned](n, align T) T {
	return (n + align - 1) &^ (align - 1)
}

func isAligned[T constraints.Unsigned](n, align T) bool {
	return n&(align-1) == 0
}

// ceilPow2 returns the smallest power of two >= n.
func ceilPow2(n uintptr) uintptr {
	if n <= 1 {
		return 1
	}
	return 1 << (bits.UintSize - bits.LeadingZeros(uint(n-1)))
}
