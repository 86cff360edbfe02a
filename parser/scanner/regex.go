package scanner

import (
	"strings"

	"github.com/t14raptor/jsarena/token"
)

// ReadRegExp re-lexes the current / or /= token as a regular expression
// literal. The parser calls it where an expression may start.
func (s *Scanner) ReadRegExp() Token {
	if s.Token.Kind != token.Slash && s.Token.Kind != token.QuotientAssign {
		return s.Token
	}
	s.resetFlags()
	start := s.Token.Start
	s.src.pos = start + 1

	var inEscape, inCharClass bool
	for {
		chr, ok := s.NextRune()
		if !ok || isLineTerminator(chr) {
			s.fatal(unterminatedRegExp(start, s.src.Offset()))
			s.Token.End = s.src.Offset()
			return s.Token
		}

		if inEscape {
			inEscape = false
		} else if chr == '/' && !inCharClass {
			break
		} else if chr == '[' {
			inCharClass = true
		} else if chr == '\\' {
			inEscape = true
		} else if chr == ']' {
			inCharClass = false
		}
	}

	var seen [128]bool
	for {
		flagStart := s.src.Offset()
		c, ok := s.PeekRune()
		if !ok || !isIdentifierPart(c) {
			break
		}
		s.ConsumeRune()
		switch {
		case !strings.ContainsRune("dgimsuyv", c):
			s.error(regExpFlag(c, flagStart, s.src.Offset()))
		case seen[c]:
			s.error(regExpFlagTwice(c, flagStart, s.src.Offset()))
		default:
			seen[c] = true
		}
	}

	s.Token.Kind = token.RegExp
	s.Token.End = s.src.Offset()
	return s.Token
}

// RegExpParts splits the source text of a regular expression token into
// its pattern and flags.
func RegExpParts(raw string) (pattern, flags string) {
	i := strings.LastIndexByte(raw, '/')
	if i <= 0 {
		return raw, ""
	}
	return raw[1:i], raw[i+1:]
}
