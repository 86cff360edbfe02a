package allocator

import (
	"reflect"
	"unsafe"
)

// Slab is a typed bump allocator that hands out pointers into
// pre-allocated slices of T. When a chunk fills up, a new chunk is
// allocated at 1.5x the previous size. Chunks are never moved, so a pointer
// returned by New stays valid until the owning Allocator is reset.
//
// Types without Go pointers are carved out of the Allocator's raw chunks;
// everything else lives in ordinary []T chunks so the collector can see the
// references they hold.
type Slab[T any] struct {
	owner *Allocator
	raw   bool

	chunk   []T   // len is the bump offset, cap is the chunk size
	retired [][]T // full chunks, kept alive until Reset
	used    int
}

const slabStart = 16

func newSlab[T any](owner *Allocator) *Slab[T] {
	return &Slab[T]{
		owner: owner,
		raw:   !hasPointers(reflect.TypeFor[T]()),
	}
}

// New copies v into the slab and returns its address.
func (s *Slab[T]) New(v T) *T {
	if len(s.chunk) == cap(s.chunk) {
		s.grow(1)
	}
	s.chunk = append(s.chunk, v)
	s.used++
	s.owner.slabBytes += unsafe.Sizeof(v)
	return &s.chunk[len(s.chunk)-1]
}

// MakeSlice reserves c contiguous elements and returns a zeroed slice of
// length n and capacity c over them. Appending to the result within its
// capacity never moves it.
func (s *Slab[T]) MakeSlice(n, c int) []T {
	if c < n {
		c = n
	}
	if c == 0 {
		return nil
	}
	if cap(s.chunk)-len(s.chunk) < c {
		s.grow(c)
	}
	start := len(s.chunk)
	s.chunk = s.chunk[:start+c]
	out := s.chunk[start : start+n : start+c]
	if s.raw {
		clear(s.chunk[start:])
	}
	s.used += c
	var zero T
	s.owner.slabBytes += unsafe.Sizeof(zero) * uintptr(c)
	return out
}

// Len reports the number of elements handed out since the last reset.
func (s *Slab[T]) Len() int { return s.used }

//go:noinline
func (s *Slab[T]) grow(min int) {
	n := cap(s.chunk) + cap(s.chunk)>>1 // 1.5x growth, integer math
	if n < slabStart {
		n = slabStart
	}
	if n < min {
		n = min
	}
	if cap(s.chunk) > 0 {
		s.retired = append(s.retired, s.chunk)
	}
	if s.raw {
		var zero T
		p := s.owner.Alloc(unsafe.Sizeof(zero)*uintptr(n), unsafe.Alignof(zero))
		s.chunk = unsafe.Slice((*T)(p), n)[:0]
		return
	}
	s.chunk = make([]T, 0, n)
}

func (s *Slab[T]) reset() {
	if s.raw {
		// The memory is owned by the raw chunks, which are rewound too.
		s.chunk, s.retired, s.used = nil, nil, 0
		return
	}
	clear(s.chunk)
	s.chunk = s.chunk[:0]
	for _, c := range s.retired {
		clear(c)
	}
	s.retired = nil
	s.used = 0
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
