package scanner

import (
	"unicode/utf8"
	"unsafe"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/internal/bytescan"
)

// Source is a cursor over the source text.
type Source struct {
	str  string
	base unsafe.Pointer
	pos  ast.Idx
	len  ast.Idx
}

func NewSource(src string) Source {
	return Source{
		str:  src,
		base: unsafe.Pointer(unsafe.StringData(src)),
		pos:  0,
		len:  ast.Idx(len(src)),
	}
}

func (s *Source) EOF() bool {
	return s.pos >= s.len
}

func (s *Source) Offset() ast.Idx {
	return s.pos
}

func (s *Source) EndOffset() ast.Idx {
	return s.len
}

func (s *Source) SetPosition(pos ast.Idx) {
	s.pos = min(pos, s.len)
}

func (s *Source) ReadPosition(pos ast.Idx) byte {
	return *(*byte)(unsafe.Add(s.base, pos))
}

func (s *Source) NextRune() (rune, bool) {
	c, ok := s.PeekRune()
	if ok {
		if c < utf8.RuneSelf {
			s.pos++
		} else {
			_, n := utf8.DecodeRuneInString(s.str[s.pos:])
			s.pos += ast.Idx(n)
		}
	}
	return c, ok
}

// PeekRune decodes the rune at the cursor. Invalid UTF-8 yields
// utf8.RuneError.
func (s *Source) PeekRune() (rune, bool) {
	b, ok := s.PeekByte()
	if !ok {
		return 0, false
	}
	if b < utf8.RuneSelf {
		return rune(b), true
	}
	c, _ := utf8.DecodeRuneInString(s.str[s.pos:])
	return c, true
}

func (s *Source) NextByte() (byte, bool) {
	if s.EOF() {
		return 0, false
	}
	return s.NextByteUnchecked(), true
}

func (s *Source) NextByteUnchecked() byte {
	b := *(*byte)(unsafe.Add(s.base, s.pos))
	s.pos++
	return b
}

func (s *Source) PeekByte() (byte, bool) {
	if s.EOF() {
		return 0, false
	}
	return s.PeekByteUnchecked(), true
}

func (s *Source) PeekTwoBytes() ([2]byte, bool) {
	if s.len-s.pos >= 2 {
		return *(*[2]byte)(unsafe.Add(s.base, s.pos)), true
	}
	return [2]byte{}, false
}

func (s *Source) PeekByteUnchecked() byte {
	return *(*byte)(unsafe.Add(s.base, s.pos))
}

func (s *Source) AdvanceIfByteEquals(b byte) (matched bool) {
	nextB, ok := s.PeekByte()
	if ok && nextB == b {
		s.pos++
		return true
	}
	return false
}

// SkipTo advances to the next byte in set, or to the end of the source,
// and reports whether one was found.
func (s *Source) SkipTo(set *bytescan.Set) bool {
	s.pos = ast.Idx(set.IndexFrom(s.str, int(s.pos)))
	return !s.EOF()
}

func (s *Source) FromPositionToCurrent(pos ast.Idx) string {
	return s.str[pos:s.pos]
}

func (s *Source) Slice(from, to ast.Idx) string {
	return s.str[from:to]
}
