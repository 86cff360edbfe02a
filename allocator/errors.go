package allocator

import "errors"

var (
	// ErrExhausted is the panic value (wrapped) raised when an allocator
	// backed by fixed memory cannot satisfy a request.
	ErrExhausted = errors.New("allocator: memory exhausted")

	ErrNotPowerOfTwo = errors.New("allocator: value is not a power of two")
	ErrMisaligned    = errors.New("allocator: memory is not aligned to layout")
	ErrTooSmall      = errors.New("allocator: memory is smaller than layout")
	ErrPoolClosed    = errors.New("allocator: pool closed")
)
