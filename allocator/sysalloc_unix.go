//go:build unix

package allocator

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// sysAlloc maps size bytes aligned to align outside the Go heap. The mapping
// is over-sized by align and trimmed on the caller's side: the returned
// release function unmaps the full region.
func sysAlloc(size, align uintptr) ([]byte, func([]byte) error, error) {
	region, err := unix.Mmap(-1, 0, int(size+align), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, err
	}
	start := alignUp(addr(region), align) - addr(region)
	block := region[start : start+size : start+size]
	return block, func([]byte) error { return unix.Munmap(region) }, nil
}

func addr(b []byte) uintptr { return uintptr(unsafe.Pointer(unsafe.SliceData(b))) }
