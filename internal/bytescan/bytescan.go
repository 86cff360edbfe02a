// Package bytescan finds the first byte of a class in a buffer.
//
// A Set is compiled once into a 256-entry membership table. Two routines
// consume it: a lane search that tests 16 bytes per step with word-wide
// arithmetic, and a scalar search that tests one byte at a time. They
// return identical results; the lane search is used when the CPU supports
// fast unaligned 64-bit little-endian loads, and the scalar search always
// handles the tail shorter than one lane.
package bytescan

import (
	"encoding/binary"
	"math/bits"
	"runtime"
	"unsafe"

	"github.com/xyproto/env/v2"
	"golang.org/x/sys/cpu"
)

// LaneWidth is the number of bytes the lane search tests per step.
const LaneWidth = 16

const (
	lo = 0x0101010101010101
	hi = 0x8080808080808080
)

// Lanes reports whether the lane search is enabled. Setting JSARENA_SCALAR
// forces the scalar search.
var Lanes = detect()

func detect() bool {
	if bits.UintSize != 64 || cpu.IsBigEndian || env.Bool("JSARENA_SCALAR") {
		return false
	}
	switch runtime.GOARCH {
	case "amd64":
		return cpu.X86.HasSSE2
	case "arm64":
		return cpu.ARM64.HasASIMD
	}
	return false
}

// Set is a byte class. Lane search supports up to four literal bytes plus,
// optionally, every byte >= 0x80.
type Set struct {
	table   [256]bool
	needles [4]uint64 // broadcast needle bytes
	n       int
	high    bool
}

// New builds a Set matching each byte of needles and, when high is set,
// every non-ASCII byte. It panics if needles has more than four bytes.
func New(needles string, high bool) *Set {
	if len(needles) > len(Set{}.needles) {
		panic("bytescan: too many needle bytes")
	}
	s := &Set{n: len(needles), high: high}
	for i := 0; i < len(needles); i++ {
		s.table[needles[i]] = true
		s.needles[i] = lo * uint64(needles[i])
	}
	if high {
		for b := 0x80; b < 0x100; b++ {
			s.table[b] = true
		}
	}
	return s
}

func (s *Set) Contains(b byte) bool { return s.table[b] }

// Index returns the index of the first member of s in b, or -1.
func (s *Set) Index(b []byte) int {
	if Lanes {
		return s.indexLanes(b)
	}
	return s.indexScalar(b)
}

// IndexString is Index over a string, without copying.
func (s *Set) IndexString(str string) int {
	return s.Index(unsafe.Slice(unsafe.StringData(str), len(str)))
}

// IndexFrom returns the index of the first member at or after from, or
// len(str) if there is none.
func (s *Set) IndexFrom(str string, from int) int {
	if i := s.IndexString(str[from:]); i >= 0 {
		return from + i
	}
	return len(str)
}

func (s *Set) indexScalar(b []byte) int {
	for i, c := range b {
		if s.table[c] {
			return i
		}
	}
	return -1
}

func (s *Set) indexLanes(b []byte) int {
	i := 0
	for ; i+LaneWidth <= len(b); i += LaneWidth {
		if m := s.match(binary.LittleEndian.Uint64(b[i:])); m != 0 {
			return i + bits.TrailingZeros64(m)/8
		}
		if m := s.match(binary.LittleEndian.Uint64(b[i+8:])); m != 0 {
			return i + 8 + bits.TrailingZeros64(m)/8
		}
	}
	if j := s.indexScalar(b[i:]); j >= 0 {
		return i + j
	}
	return -1
}

// match returns a word with the high bit set in every byte of w that is a
// member. Bits above the lowest set byte may be spurious; only the lowest
// one is meaningful.
func (s *Set) match(w uint64) uint64 {
	var m uint64
	for _, n := range s.needles[:s.n] {
		m |= zeroBytes(w ^ n)
	}
	if s.high {
		m |= w & hi
	}
	return m
}

func zeroBytes(x uint64) uint64 {
	return (x - lo) &^ x & hi
}
