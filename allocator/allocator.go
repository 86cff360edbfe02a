// Package allocator implements the arena that owns every syntax tree node
// produced by the parser.
//
// An Allocator hands out memory with a bump pointer and never frees
// individual objects; Reset releases everything at once. Values holding Go
// pointers are kept in typed slabs (see Slab) so that the garbage collector
// still traces them. Raw byte chunks are only used for pointer-free data.
package allocator

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

const defaultChunk = 16 << 10

// Allocator is a bump arena. It must not be used by more than one goroutine
// at a time.
type Allocator struct {
	slabs map[reflect.Type]any

	raw     []byte // current chunk
	off     uintptr
	retired [][]byte
	fixed   bool // raw memory was supplied by the caller and cannot grow

	rawBytes  uintptr
	slabBytes uintptr
	peak      uintptr
}

// NewAllocator returns an empty Allocator that grows on demand.
func NewAllocator() *Allocator {
	return &Allocator{slabs: map[reflect.Type]any{}}
}

// WithCapacity returns an Allocator whose first raw chunk holds n bytes.
func WithCapacity(n int) *Allocator {
	a := NewAllocator()
	a.raw = make([]byte, n)
	return a
}

// FromRaw builds an Allocator over caller supplied memory. The memory must
// start at a multiple of l.Align and hold at least l.Size bytes. The
// resulting Allocator never grows its raw memory: a request that does not
// fit panics with ErrExhausted.
func FromRaw(mem []byte, l Layout) (*Allocator, error) {
	if !isPowerOfTwo(l.Align) {
		return nil, fmt.Errorf("alignment %d: %w", l.Align, ErrNotPowerOfTwo)
	}
	if uintptr(len(mem)) < l.Size {
		return nil, fmt.Errorf("%d bytes for layout of %d: %w", len(mem), l.Size, ErrTooSmall)
	}
	if l.Size > 0 && !isAligned(uintptr(unsafe.Pointer(unsafe.SliceData(mem))), l.Align) {
		return nil, fmt.Errorf("base %p for alignment %d: %w", unsafe.SliceData(mem), l.Align, ErrMisaligned)
	}
	a := NewAllocator()
	a.raw = mem[:l.Size:l.Size]
	a.fixed = true
	return a, nil
}

// SlabOf returns the typed slab for T, creating it on first use. Callers
// allocating many values of one type should keep the slab instead of going
// through New every time.
func SlabOf[T any](a *Allocator) *Slab[T] {
	t := reflect.TypeFor[T]()
	if s, ok := a.slabs[t]; ok {
		return s.(*Slab[T])
	}
	s := newSlab[T](a)
	a.slabs[t] = s
	return s
}

// New copies v into the arena and returns its address.
func New[T any](a *Allocator, v T) *T {
	return SlabOf[T](a).New(v)
}

// MakeSlice returns an arena backed slice of length n and capacity c.
func MakeSlice[T any](a *Allocator, n, c int) []T {
	return SlabOf[T](a).MakeSlice(n, c)
}

// Alloc returns size bytes of raw memory aligned to align.
func (a *Allocator) Alloc(size, align uintptr) unsafe.Pointer {
	if !isPowerOfTwo(align) {
		panic(fmt.Errorf("alignment %d: %w", align, ErrNotPowerOfTwo))
	}
	if p, ok := a.bump(size, align); ok {
		return p
	}
	if a.fixed {
		panic(fmt.Errorf("%d bytes at alignment %d with %d of %d used: %w",
			size, align, a.off, len(a.raw), ErrExhausted))
	}
	a.growRaw(size + align)
	p, _ := a.bump(size, align)
	return p
}

func (a *Allocator) bump(size, align uintptr) (unsafe.Pointer, bool) {
	if len(a.raw) == 0 {
		if size == 0 {
			return unsafe.Pointer(&zerobase), true
		}
		return nil, false
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(a.raw)))
	start := alignUp(base+a.off, align) - base
	if start+size > uintptr(len(a.raw)) {
		return nil, false
	}
	a.off = start + size
	a.rawBytes += size
	return unsafe.Add(unsafe.Pointer(unsafe.SliceData(a.raw)), start), true
}

var zerobase uintptr

//go:noinline
func (a *Allocator) growRaw(min uintptr) {
	n := uintptr(len(a.raw)) * 2
	if n < defaultChunk {
		n = defaultChunk
	}
	if n < min {
		n = ceilPow2(min)
	}
	if len(a.raw) > 0 {
		a.retired = append(a.retired, a.raw)
	}
	a.raw = make([]byte, n)
	a.off = 0
}

// AllocBytes returns a zeroed arena slice of n bytes.
func (a *Allocator) AllocBytes(n int) []byte {
	if n == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(a.Alloc(uintptr(n), 1)), n)
	clear(b)
	return b
}

// AllocString copies s into the arena.
func (a *Allocator) AllocString(s string) string {
	if len(s) == 0 {
		return ""
	}
	b := unsafe.Slice((*byte)(a.Alloc(uintptr(len(s)), 1)), len(s))
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// Concat joins parts into a single arena string.
func (a *Allocator) Concat(parts ...string) string {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	if n == 0 {
		return ""
	}
	b := unsafe.Slice((*byte)(a.Alloc(uintptr(n), 1)), n)
	off := 0
	for _, p := range parts {
		off += copy(b[off:], p)
	}
	return unsafe.String(unsafe.SliceData(b), n)
}

// Used reports the bytes handed out since the last Reset.
func (a *Allocator) Used() uintptr { return a.rawBytes + a.slabBytes }

// Peak reports the largest Used value observed at any Reset.
func (a *Allocator) Peak() uintptr { return max(a.peak, a.Used()) }

// Capacity reports the size of the current raw chunk.
func (a *Allocator) Capacity() uintptr { return uintptr(len(a.raw)) }

// Reset releases every allocation. Memory handed out before the call must
// not be used afterwards. The largest raw chunk is kept for reuse.
func (a *Allocator) Reset() {
	a.peak = a.Peak()
	for _, s := range a.slabs {
		s.(interface{ reset() }).reset()
	}
	a.retired = nil
	a.off = 0
	a.rawBytes, a.slabBytes = 0, 0
}

// VecFrom collects seq into a new arena sequence.
func VecFrom[T any](a *Allocator, seq iter.Seq[T]) Vec[T] {
	v := NewVec[T](a, 0)
	for x := range seq {
		v.Push(x)
	}
	return v
}
