package scanner

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/internal/bytescan"
	"github.com/t14raptor/jsarena/token"
)

var (
	doubleQuoteEnd = bytescan.New("\"\\\r\n", false)
	singleQuoteEnd = bytescan.New("'\\\r\n", false)
)

func (s *Scanner) scanStringLiteralDoubleQuote() token.Token {
	return s.scanStringLiteral('"', doubleQuoteEnd)
}

func (s *Scanner) scanStringLiteralSingleQuote() token.Token {
	return s.scanStringLiteral('\'', singleQuoteEnd)
}

func (s *Scanner) scanStringLiteral(delim byte, end *bytescan.Set) token.Token {
	start := s.src.Offset()
	s.ConsumeByte()
	afterOpen := s.src.Offset()

	if !s.src.SkipTo(end) {
		s.fatal(unterminatedString(start, s.src.Offset()))
		return token.Undetermined
	}
	switch s.src.PeekByteUnchecked() {
	case delim:
		s.ConsumeByte()
		return token.String
	case '\\':
		s.startEscaped(afterOpen)
		return s.scanStringLiteralEscaped(start, delim, end)
	default:
		s.fatal(unterminatedString(start, s.src.Offset()))
		return token.Undetermined
	}
}

// scanStringLiteralEscaped continues a string at a backslash, decoding
// into the scanner buffer.
func (s *Scanner) scanStringLiteralEscaped(start ast.Idx, delim byte, end *bytescan.Set) token.Token {
	for {
		escStart := s.src.Offset()
		s.ConsumeByte() // \
		if !s.readEscapeSequence(false) {
			if s.src.EOF() {
				s.fatal(unterminatedString(start, s.src.Offset()))
				return token.Undetermined
			}
			s.error(invalidEscapeSequence(escStart, s.src.Offset()))
		}

		chunkStart := s.src.Offset()
		if !s.src.SkipTo(end) {
			s.fatal(unterminatedString(start, s.src.Offset()))
			return token.Undetermined
		}
		s.buf = append(s.buf, s.src.FromPositionToCurrent(chunkStart)...)
		switch s.src.PeekByteUnchecked() {
		case delim:
			s.ConsumeByte()
			s.finishEscaped()
			return token.String
		case '\\':
			continue
		default:
			s.fatal(unterminatedString(start, s.src.Offset()))
			return token.Undetermined
		}
	}
}

// NextJSXAttributeValue scans the next token like Next, except that a
// quoted string follows JSX rules: it may span lines and has no escapes.
func (s *Scanner) NextJSXAttributeValue() Token {
	for {
		b, ok := s.PeekByte()
		if !ok || b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			break
		}
		s.ConsumeByte()
	}
	quote, ok := s.PeekByte()
	if !ok || quote != '"' && quote != '\'' || s.failed {
		return s.Next()
	}

	s.resetFlags()
	s.Token.OnNewLine = false
	start := s.src.Offset()
	s.Token.Start = start
	s.ConsumeByte()
	for {
		c, ok := s.NextByte()
		if !ok {
			s.fatal(unterminatedString(start, s.src.Offset()))
			break
		}
		if c == quote {
			s.Token.Kind = token.String
			break
		}
	}
	s.Token.End = s.src.Offset()
	return s.Token
}
