//go:build !unix

package allocator

import "unsafe"

func sysAlloc(size, align uintptr) ([]byte, func([]byte) error, error) {
	region := make([]byte, size+align)
	start := alignUp(addr(region), align) - addr(region)
	return region[start : start+size : start+size], func([]byte) error { return nil }, nil
}

func addr(b []byte) uintptr { return uintptr(unsafe.Pointer(unsafe.SliceData(b))) }
