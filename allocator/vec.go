package allocator

import "iter"

// Vec is a growable sequence whose elements live in an Allocator. Growing
// past the reserved capacity copies the elements to a new arena block; the
// old block is not reclaimed until the Allocator is reset. Element addresses
// are stable for as long as Len stays within Cap.
type Vec[T any] struct {
	slab *Slab[T]
	s    []T
}

// NewVec returns an empty Vec with room for capacity elements.
func NewVec[T any](a *Allocator, capacity int) Vec[T] {
	slab := SlabOf[T](a)
	return Vec[T]{slab: slab, s: slab.MakeSlice(0, capacity)}
}

func (v *Vec[T]) Push(x T) {
	if len(v.s) == cap(v.s) {
		v.grow(len(v.s) + 1)
	}
	v.s = v.s[:len(v.s)+1]
	v.s[len(v.s)-1] = x
}

// Reserve makes room for at least n more elements.
func (v *Vec[T]) Reserve(n int) {
	if cap(v.s)-len(v.s) < n {
		v.grow(len(v.s) + n)
	}
}

func (v *Vec[T]) grow(min int) {
	c := max(4, cap(v.s)*2, min)
	s := v.slab.MakeSlice(len(v.s), c)
	copy(s, v.s)
	v.s = s
}

func (v *Vec[T]) Len() int { return len(v.s) }
func (v *Vec[T]) Cap() int { return cap(v.s) }

// At returns the address of the i-th element.
func (v *Vec[T]) At(i int) *T { return &v.s[i] }

// Slice returns the elements. The result aliases arena memory.
func (v *Vec[T]) Slice() []T { return v.s }

// All iterates over the elements in order.
func (v *Vec[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.s {
			if !yield(i, x) {
				return
			}
		}
	}
}
