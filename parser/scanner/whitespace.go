package scanner

import (
	"unicode"
	"unsafe"
)

// handleLineBreak skips a run of ASCII whitespace starting at a line
// terminator.
func (s *Scanner) handleLineBreak() {
	s.Token.OnNewLine = true

	pos := s.src.pos
	base := s.src.base
	end := s.src.len
	for pos < end {
		b := *(*byte)(unsafe.Add(base, pos))
		if b != ' ' && b != '\t' && b != '\r' && b != '\n' {
			break
		}
		pos++
	}
	s.src.pos = pos
}

// isIrregularWhitespace reports whether a non-ASCII rune is whitespace:
// NBSP, the BOM and the Unicode space separators.
func isIrregularWhitespace(chr rune) bool {
	switch chr {
	case 0xa0, 0xfeff:
		return true
	}
	return unicode.Is(unicode.Zs, chr)
}
