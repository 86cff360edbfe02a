package scanner

import (
	"strings"

	"github.com/t14raptor/jsarena/internal/bytescan"
	"github.com/t14raptor/jsarena/token"
)

var templateLiteralEnd = bytescan.New("$`\r\\", false)

// ReadTemplateLiteral scans the body of a template literal.
// The opening delimiter (` or }) must already have been consumed by the caller.
// sub is the Token to return when encountering ${, tail is for closing `.
func (s *Scanner) ReadTemplateLiteral(sub, tail token.Token) token.Token {
	contentStart := s.src.Offset()

	for {
		if !s.src.SkipTo(templateLiteralEnd) {
			s.fatal(unterminatedTemplateLiteral(s.Token.Start, s.src.Offset()))
			return token.Undetermined
		}

		switch s.src.PeekByteUnchecked() {
		case '$':
			s.ConsumeByte()
			if s.AdvanceIfByteEquals('{') {
				return sub
			}
		case '`':
			s.ConsumeByte()
			return tail
		case '\r':
			// Cooked text normalizes CR and CRLF to LF.
			s.startEscaped(contentStart)
			return s.templateLiteralEscaped(sub, tail)
		default: // '\\'
			s.startEscaped(contentStart)
			return s.templateLiteralEscaped(sub, tail)
		}
	}
}

// templateLiteralEscaped continues a template literal, building its
// cooked value in the scanner buffer. The cursor is at a backslash or CR.
func (s *Scanner) templateLiteralEscaped(sub, tail token.Token) token.Token {
	chunkStart := s.src.Offset()
	for {
		if !s.src.SkipTo(templateLiteralEnd) {
			s.fatal(unterminatedTemplateLiteral(s.Token.Start, s.src.Offset()))
			return token.Undetermined
		}
		s.buf = append(s.buf, s.src.FromPositionToCurrent(chunkStart)...)

		switch s.src.PeekByteUnchecked() {
		case '$':
			s.ConsumeByte()
			if s.AdvanceIfByteEquals('{') {
				s.finishEscaped()
				return sub
			}
			s.buf = append(s.buf, '$')
		case '`':
			s.ConsumeByte()
			s.finishEscaped()
			return tail
		case '\r':
			s.ConsumeByte()
			s.AdvanceIfByteEquals('\n')
			s.buf = append(s.buf, '\n')
		default: // '\\'
			s.ConsumeByte()
			if !s.readEscapeSequence(true) {
				if s.src.EOF() {
					s.fatal(unterminatedTemplateLiteral(s.Token.Start, s.src.Offset()))
					return token.Undetermined
				}
				s.Token.BadEscape = true
			}
		}
		chunkStart = s.src.Offset()
	}
}

// ReadTemplateContinuation re-lexes the current } token as the start of a
// template middle or tail, after the expression of a ${ } substitution.
func (s *Scanner) ReadTemplateContinuation() Token {
	if s.Token.Kind != token.RightBrace {
		return s.Token
	}
	s.resetFlags()
	s.src.pos = s.Token.Start + 1
	s.Token.Kind = s.ReadTemplateLiteral(token.TemplateMiddle, token.TemplateTail)
	s.Token.End = s.src.Offset()
	return s.Token
}

// TemplateRawValue returns the raw text of the current template token with
// CR and CRLF normalized to LF.
func (s *Scanner) TemplateRawValue() string {
	raw := TemplateRaw(s.Token.Kind, s.Raw(s.Token))
	if strings.IndexByte(raw, '\r') < 0 {
		return raw
	}
	b := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			b = append(b, '\n')
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			continue
		}
		b = append(b, raw[i])
	}
	return s.alloc.AllocString(string(b))
}
