package scanner

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

type Token struct {
	Kind token.Token

	// A line terminator precedes the token.
	OnNewLine bool
	// The token's value differs from its source text; the decoded value is
	// in Scanner.EscapedStr.
	HasEscape bool
	// A legacy octal literal or escape (010, "\01"), forbidden in strict
	// mode code.
	Octal bool
	// A template with a malformed escape. Its cooked value is undefined,
	// which is only allowed in tagged templates.
	BadEscape bool

	Start, End ast.Idx
}

func (t Token) Span() ast.Span { return ast.Span{Start: t.Start, End: t.End} }

// Raw returns the source text of t.
func (s *Scanner) Raw(t Token) string {
	return s.src.Slice(t.Start, t.End)
}

// Value returns the value of the current token: identifier names with
// escapes decoded, string contents without quotes, template cooked text.
func (s *Scanner) Value() string {
	t := s.Token
	if t.HasEscape {
		return s.EscapedStr
	}
	raw := s.src.Slice(t.Start, t.End)
	switch t.Kind {
	case token.String:
		return raw[1 : len(raw)-1]
	case token.PrivateIdentifier:
		return raw[1:]
	}
	if t.Kind >= token.TemplateHead && t.Kind <= token.NoSubstitutionTemplate {
		return TemplateRaw(t.Kind, raw)
	}
	return raw
}

// TemplateRaw strips the delimiters (` or } at the start, ` or ${ at the
// end) from the source text of a template token.
func TemplateRaw(kind token.Token, raw string) string {
	switch kind {
	case token.NoSubstitutionTemplate, token.TemplateTail:
		if len(raw) >= 2 && raw[len(raw)-1] == '`' {
			return raw[1 : len(raw)-1]
		}
	case token.TemplateHead, token.TemplateMiddle:
		if len(raw) >= 3 {
			return raw[1 : len(raw)-2]
		}
	}
	return raw
}
