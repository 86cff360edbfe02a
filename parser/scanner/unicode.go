package scanner

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/t14raptor/jsarena/ast"
)

// identifierUnicodeEscapeSequence decodes the escape following a backslash
// in an identifier into the scanner buffer.
func (s *Scanner) identifierUnicodeEscapeSequence(escStart ast.Idx, checkIdentifierStart bool) bool {
	if !s.AdvanceIfByteEquals('u') {
		s.fatal(invalidUnicodeEscapeSequence(escStart, s.src.Offset()))
		return false
	}
	value := s.unicodeEscapeValue()
	switch {
	case value < 0,
		checkIdentifierStart && !isIdentifierStart(value),
		!checkIdentifierStart && !isIdentifierPart(value):
		s.fatal(invalidUnicodeEscapeSequence(escStart, s.src.Offset()))
		return false
	}
	s.buf = utf8.AppendRune(s.buf, value)
	return true
}

// unicodeEscapeValue reads the XXXX or {X...} part of a \u escape. It
// returns -1 if the escape is malformed.
func (s *Scanner) unicodeEscapeValue() rune {
	if s.AdvanceIfByteEquals('{') {
		return s.codePoint()
	}
	return s.hexFourDigits()
}

func (s *Scanner) hexFourDigits() (val rune) {
	for i := 0; i < 4; i++ {
		next, ok := s.hexDigit()
		if !ok {
			return -1
		}
		val = (val << 4) | next
	}
	return val
}

func (s *Scanner) hexDigit() (rune, bool) {
	b, ok := s.PeekByte()
	if !ok {
		return 0, false
	}
	d := digitValue(b)
	if d >= 16 {
		return 0, false
	}
	s.ConsumeByte()
	return rune(d), true
}

// codePoint reads the hex digits and closing brace of \u{...}.
func (s *Scanner) codePoint() rune {
	val, ok := s.hexDigit()
	if !ok {
		return -1
	}
	for {
		next, ok := s.hexDigit()
		if !ok {
			break
		}
		val = (val << 4) | next
		if val > utf8.MaxRune {
			return -1
		}
	}
	if !s.AdvanceIfByteEquals('}') {
		return -1
	}
	return val
}

// surrogatePair reads \uXXXX and, when it is a high surrogate directly
// followed by a \u low surrogate, combines the two.
func (s *Scanner) surrogatePair() rune {
	high := s.hexFourDigits()
	if high < 0 || !utf16.IsSurrogate(high) {
		return high
	}
	if b, ok := s.src.PeekTwoBytes(); !ok || b != [2]byte{'\\', 'u'} {
		return high
	}
	save := s.src.pos
	s.ConsumeByte()
	s.ConsumeByte()
	low := s.hexFourDigits()
	if combined := utf16.DecodeRune(high, low); low >= 0 && combined != utf8.RuneError {
		return combined
	}
	s.src.pos = save
	return high
}

// readEscapeSequence decodes the escape after a backslash in a string or
// template into the scanner buffer. Line continuations append nothing. It
// reports false for a malformed escape; the cursor is then after the
// offending characters.
func (s *Scanner) readEscapeSequence(inTemplate bool) bool {
	chr, ok := s.NextRune()
	if !ok {
		return false
	}

	switch chr {
	case '\n', '\u2028', '\u2029':
	case '\r':
		s.AdvanceIfByteEquals('\n')
	case 'b':
		s.buf = append(s.buf, '\b')
	case 'f':
		s.buf = append(s.buf, '\f')
	case 'n':
		s.buf = append(s.buf, '\n')
	case 'r':
		s.buf = append(s.buf, '\r')
	case 't':
		s.buf = append(s.buf, '\t')
	case 'v':
		s.buf = append(s.buf, '\v')
	case 'x':
		d, ok := s.hexDigit()
		if !ok {
			return false
		}
		d2, ok := s.hexDigit()
		if !ok {
			return false
		}
		s.buf = utf8.AppendRune(s.buf, d<<4|d2)
	case 'u':
		var value rune
		if s.AdvanceIfByteEquals('{') {
			value = s.codePoint()
		} else {
			value = s.surrogatePair()
		}
		if value < 0 {
			return false
		}
		// Lone surrogates cannot be represented in UTF-8 and decode to
		// U+FFFD.
		s.buf = utf8.AppendRune(s.buf, value)
	case '0':
		if b, ok := s.PeekByte(); !ok || !isDecimalDigit(b) {
			s.buf = append(s.buf, 0)
			break
		}
		if inTemplate {
			return false
		}
		s.legacyOctalEscape(0)
	case '1', '2', '3', '4', '5', '6', '7':
		if inTemplate {
			return false
		}
		s.legacyOctalEscape(chr - '0')
	case '8', '9':
		if inTemplate {
			return false
		}
		s.Token.Octal = true
		s.buf = append(s.buf, byte(chr))
	default:
		s.buf = utf8.AppendRune(s.buf, chr)
	}
	return true
}

// legacyOctalEscape reads the rest of an octal escape (\0 to \377) whose
// first digit has value first.
func (s *Scanner) legacyOctalEscape(first rune) {
	s.Token.Octal = true
	value := first
	digits := 2
	if first > 3 {
		digits = 1
	}
	for ; digits > 0; digits-- {
		b, ok := s.PeekByte()
		if !ok || b < '0' || b > '7' {
			break
		}
		s.ConsumeByte()
		value = value<<3 | rune(b-'0')
	}
	s.buf = utf8.AppendRune(s.buf, value)
}
