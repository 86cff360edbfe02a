package allocator

import (
	"context"
	"errors"
	"sync/atomic"
)

// Pool hands out FixedSizeAllocators to workers, one parse unit at a time.
type Pool struct {
	free   chan *FixedSizeAllocator
	all    []*FixedSizeAllocator
	closed atomic.Bool
}

// NewPool reserves n allocators of size bytes each.
func NewPool(n int, size uintptr) (*Pool, error) {
	p := &Pool{free: make(chan *FixedSizeAllocator, n)}
	for i := range n {
		f, err := NewFixedSize(uint32(i), size)
		if err != nil {
			return nil, errors.Join(err, p.Close())
		}
		p.all = append(p.all, f)
		p.free <- f
	}
	return p, nil
}

// Get waits for a free allocator and binds it to the calling goroutine.
func (p *Pool) Get(ctx context.Context) (*FixedSizeAllocator, error) {
	if p.closed.Load() {
		return nil, ErrPoolClosed
	}
	select {
	case f := <-p.free:
		f.Acquire()
		return f, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Put resets f and makes it available again. It must be called from the
// goroutine that got it.
func (p *Pool) Put(f *FixedSizeAllocator) {
	if p.closed.Load() {
		return
	}
	f.Reset()
	f.Release()
	p.free <- f
}

func (p *Pool) Len() int { return len(p.all) }

// Close releases the memory of every allocator. Allocators still checked
// out must not be used afterwards.
func (p *Pool) Close() error {
	if p.closed.Swap(true) {
		return nil
	}
	var errs []error
	for _, f := range p.all {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}
