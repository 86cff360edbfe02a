package scanner

import (
	"github.com/t14raptor/jsarena/token"
)

// readZero scans a number starting with 0, which has been consumed.
func (s *Scanner) readZero() token.Token {
	b, ok := s.PeekByte()
	if !ok {
		return token.Number
	}

	switch b {
	case 'b', 'B':
		return s.readNonDecimal(2, "Binary")
	case 'o', 'O':
		return s.readNonDecimal(8, "Octal")
	case 'x', 'X':
		return s.readNonDecimal(16, "Hexadecimal")
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return s.readLegacyOctal()
	}
	return s.decimalLiteralAfterFirstDigit()
}

func (s *Scanner) decimalLiteralAfterFirstDigit() token.Token {
	s.decimalDigitsAfterFirstDigit()
	if s.AdvanceIfByteEquals('.') {
		return s.decLitAfterDecPointAfterDigits()
	}
	if s.AdvanceIfByteEquals('n') {
		return s.checkAfterNumericLiteral(token.BigInt)
	}
	s.optionalExp()
	return s.checkAfterNumericLiteral(token.Number)
}

func (s *Scanner) readNonDecimal(base int, name string) token.Token {
	s.ConsumeByte() // b, o or x

	if b, ok := s.PeekByte(); ok && digitValue(b) < base {
		s.ConsumeByte()
	} else {
		s.error(invalidDigits(name, s.Token.Start, s.src.Offset()))
		return s.checkAfterNumericLiteral(token.Number)
	}

	for {
		b, ok := s.PeekByte()
		if !ok {
			break
		}
		if b == '_' {
			sep := s.src.Offset()
			s.ConsumeByte()
			if b, ok := s.PeekByte(); !ok || digitValue(b) >= base {
				s.error(invalidNumberSeparator(sep, sep+1))
			}
			continue
		}
		if digitValue(b) >= base {
			break
		}
		s.ConsumeByte()
	}

	if s.AdvanceIfByteEquals('n') {
		return s.checkAfterNumericLiteral(token.BigInt)
	}
	return s.checkAfterNumericLiteral(token.Number)
}

// readLegacyOctal scans 0 followed by more digits: an octal integer such
// as 017, or a decimal such as 019 when an 8 or 9 appears.
func (s *Scanner) readLegacyOctal() token.Token {
	s.Token.Octal = true
	decimal := false
	for {
		b, ok := s.PeekByte()
		if !ok || !isDecimalDigit(b) {
			break
		}
		decimal = decimal || b >= '8'
		s.ConsumeByte()
	}
	if decimal {
		if s.AdvanceIfByteEquals('.') {
			return s.decLitAfterDecPointAfterDigits()
		}
		s.optionalExp()
	}
	return s.checkAfterNumericLiteral(token.Number)
}

func (s *Scanner) readDecExp() {
	if b, ok := s.PeekByte(); ok {
		switch b {
		case '-', '+':
			s.ConsumeByte()
		}
	}
	s.readDecimalDigits()
}

func (s *Scanner) readDecimalDigits() {
	if b, ok := s.PeekByte(); ok && isDecimalDigit(b) {
		s.ConsumeByte()
	} else {
		s.error(invalidDigits("Decimal", s.Token.Start, s.src.Offset()))
		return
	}
	s.decimalDigitsAfterFirstDigit()
}

func (s *Scanner) decimalDigitsAfterFirstDigit() {
	for {
		b, ok := s.PeekByte()
		if !ok {
			return
		}

		switch {
		case b == '_':
			sep := s.src.Offset()
			s.ConsumeByte()
			if b, ok := s.PeekByte(); !ok || !isDecimalDigit(b) {
				s.error(invalidNumberSeparator(sep, sep+1))
			}
		case isDecimalDigit(b):
			s.ConsumeByte()
		default:
			return
		}
	}
}

// decLitAfterDecPoint scans the rest of a number written as .5, after the
// dot.
func (s *Scanner) decLitAfterDecPoint() token.Token {
	s.readDecimalDigits()
	s.optionalExp()
	return s.checkAfterNumericLiteral(token.Number)
}

func (s *Scanner) decLitAfterDecPointAfterDigits() token.Token {
	s.optionalDecDigits()
	s.optionalExp()
	return s.checkAfterNumericLiteral(token.Number)
}

func (s *Scanner) optionalDecDigits() {
	if b, ok := s.PeekByte(); ok && isDecimalDigit(b) {
		s.ConsumeByte()
		s.decimalDigitsAfterFirstDigit()
	}
}

func (s *Scanner) optionalExp() {
	b, ok := s.PeekByte()
	if ok && (b == 'e' || b == 'E') {
		s.ConsumeByte()
		s.readDecExp()
	}
}

// checkAfterNumericLiteral rejects an identifier or digit directly after a
// number, as in 3in or 1_.
func (s *Scanner) checkAfterNumericLiteral(kind token.Token) token.Token {
	start := s.src.Offset()
	c, ok := s.PeekRune()
	if !ok || !isIdentifierStart(c) && !(c < 0x80 && isDecimalDigit(byte(c))) {
		return kind
	}
	for {
		c, ok := s.PeekRune()
		if !ok || !isIdentifierPart(c) {
			break
		}
		s.ConsumeRune()
	}
	s.error(invalidNumberEnd(start, s.src.Offset()))
	return kind
}

func (s *Scanner) readDot() token.Token {
	if b, ok := s.src.PeekTwoBytes(); ok && b == [2]byte{'.', '.'} {
		s.ConsumeByte()
		s.ConsumeByte()
		return token.Ellipsis
	}
	if b, ok := s.PeekByte(); ok && isDecimalDigit(b) {
		return s.decLitAfterDecPoint()
	}
	return token.Period
}

func isDecimalDigit(chr byte) bool {
	return '0' <= chr && chr <= '9'
}

func digitValue(chr byte) int {
	switch {
	case '0' <= chr && chr <= '9':
		return int(chr - '0')
	case 'a' <= chr && chr <= 'f':
		return int(chr - 'a' + 10)
	case 'A' <= chr && chr <= 'F':
		return int(chr - 'A' + 10)
	}
	return 16 // Larger than any legal digit value
}
