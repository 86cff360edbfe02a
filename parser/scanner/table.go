package scanner

import (
	"unicode/utf8"

	"github.com/t14raptor/jsarena/token"
)

// readToken scans the token starting with byte b into s.Token.Kind. It
// returns false after skipping trivia (whitespace, line terminators,
// comments), in which case the caller scans again.
func (s *Scanner) readToken(b byte) bool {
	switch b {

	// ---- Whitespace ----

	case '\t', '\v', '\f', ' ':
		s.ConsumeByte()
		return false

	case '\n', '\r':
		s.handleLineBreak()
		return false

	// ---- Punctuation ----

	case '(':
		s.ConsumeByte()
		s.Token.Kind = token.LeftParenthesis
	case ')':
		s.ConsumeByte()
		s.Token.Kind = token.RightParenthesis
	case '[':
		s.ConsumeByte()
		s.Token.Kind = token.LeftBracket
	case ']':
		s.ConsumeByte()
		s.Token.Kind = token.RightBracket
	case '{':
		s.ConsumeByte()
		s.Token.Kind = token.LeftBrace
	case '}':
		s.ConsumeByte()
		s.Token.Kind = token.RightBrace
	case ';':
		s.ConsumeByte()
		s.Token.Kind = token.Semicolon
	case ',':
		s.ConsumeByte()
		s.Token.Kind = token.Comma
	case ':':
		s.ConsumeByte()
		s.Token.Kind = token.Colon
	case '~':
		s.ConsumeByte()
		s.Token.Kind = token.BitwiseNot

	case '.':
		s.ConsumeByte()
		s.Token.Kind = s.readDot()

	// ---- Operators ----

	case '!':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('=') {
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.StrictNotEqual
			} else {
				s.Token.Kind = token.NotEqual
			}
		} else {
			s.Token.Kind = token.Not
		}

	case '%':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.RemainderAssign
		} else {
			s.Token.Kind = token.Remainder
		}

	case '&':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('&') {
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.LogicalAndAssign
			} else {
				s.Token.Kind = token.LogicalAnd
			}
		} else if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.AndAssign
		} else {
			s.Token.Kind = token.And
		}

	case '*':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('*') {
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.ExponentAssign
			} else {
				s.Token.Kind = token.Exponent
			}
		} else if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.MultiplyAssign
		} else {
			s.Token.Kind = token.Multiply
		}

	case '+':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('+') {
			s.Token.Kind = token.Increment
		} else if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.AddAssign
		} else {
			s.Token.Kind = token.Plus
		}

	case '-':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('-') {
			s.Token.Kind = token.Decrement
		} else if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.SubtractAssign
		} else {
			s.Token.Kind = token.Minus
		}

	case '/':
		s.ConsumeByte()
		switch {
		case s.AdvanceIfByteEquals('/'):
			s.skipSingleLineComment()
			return false
		case s.AdvanceIfByteEquals('*'):
			if s.skipMultiLineComment() {
				s.Token.OnNewLine = true
			}
			return s.failed
		case s.AdvanceIfByteEquals('='):
			s.Token.Kind = token.QuotientAssign
		default:
			s.Token.Kind = token.Slash
		}

	case '<':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.LessOrEqual
		} else if s.AdvanceIfByteEquals('<') {
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.ShiftLeftAssign
			} else {
				s.Token.Kind = token.ShiftLeft
			}
		} else {
			s.Token.Kind = token.Less
		}

	case '=':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('=') {
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.StrictEqual
			} else {
				s.Token.Kind = token.Equal
			}
		} else if s.AdvanceIfByteEquals('>') {
			s.Token.Kind = token.Arrow
		} else {
			s.Token.Kind = token.Assign
		}

	case '>':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.GreaterOrEqual
		} else if s.AdvanceIfByteEquals('>') {
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.ShiftRightAssign
			} else if s.AdvanceIfByteEquals('>') {
				if s.AdvanceIfByteEquals('=') {
					s.Token.Kind = token.UnsignedShiftRightAssign
				} else {
					s.Token.Kind = token.UnsignedShiftRight
				}
			} else {
				s.Token.Kind = token.ShiftRight
			}
		} else {
			s.Token.Kind = token.Greater
		}

	case '?':
		s.ConsumeByte()
		next2Bytes, _ := s.src.PeekTwoBytes()
		switch b, ok := s.PeekByte(); {
		case ok && b == '?':
			s.ConsumeByte()
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.CoalesceAssign
			} else {
				s.Token.Kind = token.Coalesce
			}
		case ok && b == '.' && !isDecimalDigit(next2Bytes[1]):
			// a?.5:b is a conditional, not an optional chain.
			s.ConsumeByte()
			s.Token.Kind = token.QuestionDot
		default:
			s.Token.Kind = token.QuestionMark
		}

	case '^':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.ExclusiveOrAssign
		} else {
			s.Token.Kind = token.ExclusiveOr
		}

	case '|':
		s.ConsumeByte()
		if s.AdvanceIfByteEquals('|') {
			if s.AdvanceIfByteEquals('=') {
				s.Token.Kind = token.LogicalOrAssign
			} else {
				s.Token.Kind = token.LogicalOr
			}
		} else if s.AdvanceIfByteEquals('=') {
			s.Token.Kind = token.OrAssign
		} else {
			s.Token.Kind = token.Or
		}

	// ---- String / template literals ----

	case '"':
		s.Token.Kind = s.scanStringLiteralDoubleQuote()

	case '\'':
		s.Token.Kind = s.scanStringLiteralSingleQuote()

	case '`':
		s.ConsumeByte()
		s.Token.Kind = s.ReadTemplateLiteral(token.TemplateHead, token.NoSubstitutionTemplate)

	// ---- Special ----

	case '#':
		s.ConsumeByte()
		s.Token.Kind = s.scanPrivateIdentifier()

	case '\\':
		s.Token.Kind = s.identifierBackslashHandler()

	// ---- Numeric literals ----

	case '0':
		s.ConsumeByte()
		s.Token.Kind = s.readZero()

	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		s.ConsumeByte()
		s.Token.Kind = s.decimalLiteralAfterFirstDigit()

	// ---- Identifiers ----

	case 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'i', 'k', 'l', 'm',
		'n', 'o', 'p', 'r', 's', 't', 'v', 'w', 'y':
		s.Token.Kind = s.scanIdentifier(true)

	// No keyword starts with any of these.
	case '$', '_',
		'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M',
		'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
		'h', 'j', 'q', 'u', 'x', 'z':
		s.Token.Kind = s.scanIdentifier(false)

	default:
		if b < utf8.RuneSelf {
			start := s.src.Offset()
			s.ConsumeByte()
			s.fatal(invalidCharacter(rune(b), start, s.src.Offset()))
			return true
		}
		return s.readNonASCII()
	}
	return true
}

func (s *Scanner) readNonASCII() bool {
	start := s.src.Offset()
	c, size := utf8.DecodeRuneInString(s.src.str[start:])
	switch {
	case c == utf8.RuneError && size == 1:
		s.ConsumeByte()
		s.fatal(invalidUTF8(start, s.src.Offset()))
	case isIdentifierStart(c):
		s.Token.Kind = s.scanIdentifierAfterUnicodeStart()
	case isLineTerminator(c):
		s.ConsumeRune()
		s.Token.OnNewLine = true
		return false
	case isIrregularWhitespace(c):
		s.ConsumeRune()
		return false
	default:
		s.ConsumeRune()
		s.fatal(invalidCharacter(c, start, s.src.Offset()))
	}
	return true
}

// scanPrivateIdentifier scans the name after #.
func (s *Scanner) scanPrivateIdentifier() token.Token {
	start := s.src.Offset() - 1
	c, ok := s.PeekRune()
	switch {
	case ok && c < utf8.RuneSelf && asciiStart[c]:
		s.scanIdentifierTail()
	case ok && c == '\\':
		s.buf = s.buf[:0]
		s.scanIdentifierOnBackslash(true)
	case ok && c >= utf8.RuneSelf && isIdentifierStart(c):
		nameStart := s.src.Offset()
		s.ConsumeRune()
		s.scanIdentifierTailUnicode(nameStart)
	default:
		s.fatal(invalidCharacter('#', start, s.src.Offset()))
		return token.Undetermined
	}
	if s.failed {
		return token.Undetermined
	}
	return token.PrivateIdentifier
}
