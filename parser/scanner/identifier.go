package scanner

import (
	"unicode/utf8"
	"unsafe"

	"github.com/nukilabs/unicodeid"
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

// Lookup tables for ASCII identifier characters.
// Non-ASCII bytes (>= 128) are always false, branching to the Unicode path.
var asciiStart, asciiContinue [256]bool

func init() {
	for i := 0; i < 128; i++ {
		if i >= 'a' && i <= 'z' || i >= 'A' && i <= 'Z' || i == '$' || i == '_' {
			asciiStart[i] = true
			asciiContinue[i] = true
		}
		if i >= '0' && i <= '9' {
			asciiContinue[i] = true
		}
	}
}

func isIdentifierStart(chr rune) bool {
	if chr < 0 {
		return false
	}
	if chr < utf8.RuneSelf {
		return asciiStart[chr]
	}
	return unicodeid.IsIDStartUnicode(chr)
}

func isIdentifierPart(chr rune) bool {
	if chr < 0 {
		return false
	}
	if chr < utf8.RuneSelf {
		return asciiContinue[chr]
	}
	// ZWNJ and ZWJ
	return chr == '\u200c' || chr == '\u200d' || unicodeid.IsIDContinueUnicode(chr)
}

// IsIdentifierName reports whether name is a valid IdentifierName.
func IsIdentifierName(name string) bool {
	for i, c := range name {
		if i == 0 && !isIdentifierStart(c) || i > 0 && !isIdentifierPart(c) {
			return false
		}
	}
	return name != ""
}

// scanIdentifier scans an identifier whose first byte is at the cursor
// and is a known ASCII identifier start, and returns its kind.
func (s *Scanner) scanIdentifier(keywords bool) token.Token {
	name, escaped := s.scanIdentifierTail()
	if s.failed {
		return token.Undetermined
	}
	return s.identifierKind(name, escaped, keywords)
}

func (s *Scanner) identifierKind(name string, escaped, keywords bool) token.Token {
	if !keywords {
		if escaped {
			if kw, _ := token.Keyword(name); kw != 0 && !token.UnreservedWord(kw) {
				return token.EscapedReservedWord
			}
		}
		return token.Identifier
	}
	kw, _ := token.Keyword(name)
	switch {
	case kw == 0:
		return token.Identifier
	case !escaped:
		return kw
	case token.UnreservedWord(kw):
		// Escaped contextual keywords never act as keywords.
		return token.Identifier
	}
	return token.EscapedReservedWord
}

func (s *Scanner) scanIdentifierTail() (string, bool) {
	start := s.src.pos
	pos := start + 1 // first byte already known to start an identifier
	base := s.src.base
	end := s.src.len

	for pos < end {
		b := *(*byte)(unsafe.Add(base, pos))
		if !asciiContinue[b] {
			s.src.pos = pos
			if b >= utf8.RuneSelf {
				return s.scanIdentifierTailUnicode(start)
			}
			if b == '\\' {
				return s.scanIdentifierBackslash(start, false), true
			}
			return s.src.FromPositionToCurrent(start), false
		}
		pos++
	}

	s.src.pos = pos
	return s.src.FromPositionToCurrent(start), false
}

func (s *Scanner) scanIdentifierTailUnicode(start ast.Idx) (string, bool) {
	for {
		c, ok := s.PeekRune()
		switch {
		case !ok:
			return s.src.FromPositionToCurrent(start), false
		case isIdentifierPart(c):
			s.ConsumeRune()
		case c == '\\':
			return s.scanIdentifierBackslash(start, false), true
		default:
			return s.src.FromPositionToCurrent(start), false
		}
	}
}

// scanIdentifierAfterUnicodeStart scans an identifier whose first,
// non-ASCII, character has been checked but not consumed.
func (s *Scanner) scanIdentifierAfterUnicodeStart() token.Token {
	start := s.src.pos
	s.ConsumeRune()
	name, escaped := s.scanIdentifierTailUnicode(start)
	if s.failed {
		return token.Undetermined
	}
	return s.identifierKind(name, escaped, true)
}

// identifierBackslashHandler scans an identifier starting with a \u escape.
func (s *Scanner) identifierBackslashHandler() token.Token {
	s.buf = s.buf[:0]
	name := s.scanIdentifierOnBackslash(true)
	if s.failed {
		return token.Undetermined
	}
	return s.identifierKind(name, true, true)
}

func (s *Scanner) scanIdentifierBackslash(startPos ast.Idx, start bool) string {
	s.startEscaped(startPos)
	return s.scanIdentifierOnBackslash(start)
}

// scanIdentifierOnBackslash continues an identifier at a backslash,
// decoding escapes into the scanner buffer.
func (s *Scanner) scanIdentifierOnBackslash(start bool) string {
	for {
		escStart := s.src.Offset()
		s.ConsumeByte() // \
		if !s.identifierUnicodeEscapeSequence(escStart, start) {
			return ""
		}
		start = false

		chunkStart := s.src.Offset()
		for {
			c, ok := s.PeekRune()
			if ok && isIdentifierPart(c) {
				s.ConsumeRune()
				continue
			}
			s.buf = append(s.buf, s.src.FromPositionToCurrent(chunkStart)...)
			if !ok || c != '\\' {
				s.finishEscaped()
				return s.EscapedStr
			}
			break
		}
	}
}

// ReadJSXIdentifierTail extends the current name token over the dashes a
// JSX tag or attribute name may contain (data-id, aria-label). The result
// is always an Identifier.
func (s *Scanner) ReadJSXIdentifierTail() Token {
	if !token.ID(s.Token.Kind) || s.Token.HasEscape {
		return s.Token
	}
	for {
		b, ok := s.PeekByte()
		if !ok || b != '-' && !asciiContinue[b] {
			break
		}
		s.ConsumeByte()
	}
	s.Token.Kind = token.Identifier
	s.Token.End = s.src.Offset()
	return s.Token
}
