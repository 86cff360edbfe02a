package scanner

import (
	"github.com/t14raptor/jsarena/internal/bytescan"
	"github.com/t14raptor/jsarena/token"
)

var jsxTextEnd = bytescan.New("<{", false)

// ReadJSXChild scans from the cursor as JSX element content: < or { when
// one comes next, otherwise the run of text up to the next of them.
func (s *Scanner) ReadJSXChild() Token {
	s.resetFlags()
	s.Token.OnNewLine = false
	s.Token.Start = s.src.Offset()
	b, ok := s.PeekByte()
	switch {
	case !ok || s.failed:
		s.Token.Kind = token.Eof
	case b == '<':
		s.ConsumeByte()
		s.Token.Kind = token.Less
	case b == '{':
		s.ConsumeByte()
		s.Token.Kind = token.LeftBrace
	default:
		s.src.SkipTo(jsxTextEnd)
		s.Token.Kind = token.JSXText
	}
	s.Token.End = s.src.Offset()
	return s.Token
}

// SplitGreater re-lexes a current token starting with > (>>, >=, >>>=, ...)
// as a single >. It closes nested type argument lists such as
// Array<Array<T>> and JSX tags followed by text starting with = or >.
func (s *Scanner) SplitGreater() Token {
	switch s.Token.Kind {
	case token.ShiftRight, token.UnsignedShiftRight, token.GreaterOrEqual,
		token.ShiftRightAssign, token.UnsignedShiftRightAssign:
		s.src.pos = s.Token.Start + 1
		s.Token.Kind = token.Greater
		s.Token.End = s.src.Offset()
	}
	return s.Token
}
