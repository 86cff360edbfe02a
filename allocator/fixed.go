package allocator

import (
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/petermattis/goid"
	"golang.org/x/sys/cpu"
)

// FixedSizeAllocator is an Allocator whose raw memory is a single chunk of
// a fixed size, aligned to twice that size. The chunk is one half of a
// larger system allocation; the whole block is kept so it can be released
// in Close.
//
// A FixedSizeAllocator may move between goroutines between parses but must
// never be used by two goroutines at once. Acquire and Release enforce this.
type FixedSizeAllocator struct {
	*Allocator

	id      uint32
	size    uintptr
	base    uintptr
	block   []byte
	release func([]byte) error
	owner   atomic.Int64
}

// NewFixedSize reserves a chunk of size bytes aligned to 2*size. size must
// be a power of two. It panics on targets that are not 64-bit little-endian.
func NewFixedSize(id uint32, size uintptr) (*FixedSizeAllocator, error) {
	if bits.UintSize != 64 || cpu.IsBigEndian {
		panic("allocator: fixed-size allocators require a 64-bit little-endian target")
	}
	if !isPowerOfTwo(size) {
		return nil, fmt.Errorf("fixed size %d: %w", size, ErrNotPowerOfTwo)
	}

	block, release, err := sysAlloc(2*size, size)
	if err != nil {
		return nil, fmt.Errorf("reserve %d bytes: %w", 2*size, err)
	}
	// block starts on a multiple of size, so exactly one of its halves
	// starts on a multiple of 2*size.
	chunk := block[:size]
	if !isAligned(addr(chunk), 2*size) {
		chunk = block[size : 2*size]
	}
	a, err := FromRaw(chunk, Layout{Size: size, Align: 2 * size})
	if err != nil {
		return nil, fmt.Errorf("%w (release: %v)", err, release(block))
	}
	return &FixedSizeAllocator{
		Allocator: a,
		id:        id,
		size:      size,
		base:      addr(chunk),
		block:     block,
		release:   release,
	}, nil
}

func (f *FixedSizeAllocator) ID() uint32 { return f.id }

// Base returns the address of the chunk.
func (f *FixedSizeAllocator) Base() uintptr { return f.base }

// Align returns the alignment of the chunk base.
func (f *FixedSizeAllocator) Align() uintptr { return 2 * f.size }

// Size returns the chunk size.
func (f *FixedSizeAllocator) Size() uintptr { return f.size }

// Acquire binds the allocator to the calling goroutine and returns it. It
// panics if another goroutine holds it.
func (f *FixedSizeAllocator) Acquire() *Allocator {
	g := goid.Get()
	if !f.owner.CompareAndSwap(0, g) && f.owner.Load() != g {
		panic(fmt.Sprintf("allocator: fixed-size allocator %d held by goroutine %d, acquired from %d",
			f.id, f.owner.Load(), g))
	}
	return f.Allocator
}

// Release unbinds the allocator from the calling goroutine.
func (f *FixedSizeAllocator) Release() {
	if g := goid.Get(); !f.owner.CompareAndSwap(g, 0) {
		panic(fmt.Sprintf("allocator: fixed-size allocator %d released by goroutine %d, held by %d",
			f.id, g, f.owner.Load()))
	}
}

// Close returns the whole system block. The allocator and everything
// allocated from it must not be used afterwards.
func (f *FixedSizeAllocator) Close() error {
	if f.block == nil {
		return nil
	}
	block := f.block
	f.block, f.Allocator = nil, nil
	return f.release(block)
}
