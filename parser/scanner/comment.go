package scanner

import (
	"strings"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/internal/bytescan"
)

var (
	lineCommentEnd  = bytescan.New("\r\n", true)
	blockCommentEnd = bytescan.New("*\r\n", true)
)

func isLineTerminator(chr rune) bool {
	switch chr {
	case '\n', '\r', lineSeparator, paragraphSeparator:
		return true
	}
	return false
}

const (
	lineSeparator      = 0x2028
	paragraphSeparator = 0x2029
)

// atIrregularLineTerminator reports whether the cursor, at a non-ASCII
// byte, is on U+2028 or U+2029.
func (s *Scanner) atIrregularLineTerminator() bool {
	rest := s.src.str[s.src.pos:]
	return strings.HasPrefix(rest, "\xe2\x80\xa8") || strings.HasPrefix(rest, "\xe2\x80\xa9")
}

// skipToLineEnd moves the cursor to the next line terminator or the end
// of the source.
func (s *Scanner) skipToLineEnd() {
	for s.src.SkipTo(lineCommentEnd) {
		if s.src.PeekByteUnchecked() < 0x80 || s.atIrregularLineTerminator() {
			return
		}
		s.ConsumeRune()
	}
}

// skipSingleLineComment skips a // comment. The cursor is after the two
// slashes; the line terminator is left for the caller.
func (s *Scanner) skipSingleLineComment() {
	start := s.Token.Start
	s.skipToLineEnd()
	s.addComment(start, ast.LineComment)
}

// skipMultiLineComment skips a /* */ comment whose opening has been
// consumed, and reports whether it contained a line terminator.
func (s *Scanner) skipMultiLineComment() (hasLineTerminator bool) {
	start := s.Token.Start
	for s.src.SkipTo(blockCommentEnd) {
		switch b := s.src.PeekByteUnchecked(); {
		case b == '*':
			s.ConsumeByte()
			if s.AdvanceIfByteEquals('/') {
				s.addComment(start, ast.BlockComment)
				return hasLineTerminator
			}
		case b == '\r' || b == '\n':
			hasLineTerminator = true
			s.ConsumeByte()
		default:
			hasLineTerminator = hasLineTerminator || s.atIrregularLineTerminator()
			s.ConsumeRune()
		}
	}
	s.fatal(unterminatedMultiLineComment(start, s.src.Offset()))
	return hasLineTerminator
}

func (s *Scanner) addComment(start ast.Idx, kind ast.CommentKind) {
	s.comments = append(s.comments, ast.Comment{
		Span:      span(start, s.src.Offset()),
		Kind:      kind,
		OnNewLine: s.Token.OnNewLine || start == 0,
	})
}
