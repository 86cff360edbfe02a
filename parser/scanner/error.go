package scanner

import (
	"fmt"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
)

func span(start, end ast.Idx) ast.Span { return ast.Span{Start: start, End: end} }

func invalidCharacter(c rune, start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), fmt.Sprintf("Invalid character `%c`", c))
}

func invalidUTF8(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Source text is not valid UTF-8")
}

func unexpectedEnd(offset ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(offset, offset), "Unexpected end of file")
}

func unterminatedString(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Unterminated string",
		diagnostics.Label("string starts here"))
}

func unterminatedTemplateLiteral(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Unterminated template literal")
}

func unterminatedMultiLineComment(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Unterminated multiline comment")
}

func unterminatedRegExp(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Unterminated regular expression")
}

func invalidEscapeSequence(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Invalid escape sequence")
}

func invalidNumberEnd(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Invalid characters after number")
}

func invalidNumberSeparator(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Numeric separators are not allowed here",
		diagnostics.Help("A separator must sit between two digits"))
}

func invalidDigits(kind string, start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), fmt.Sprintf("%s digit expected", kind))
}

func invalidUnicodeEscapeSequence(start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), "Invalid Unicode escape sequence")
}

func regExpFlag(c rune, start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), fmt.Sprintf("Invalid regular expression flag `%c`", c))
}

func regExpFlagTwice(c rune, start, end ast.Idx) diagnostics.Diagnostic {
	return diagnostics.New(span(start, end), fmt.Sprintf("Duplicate regular expression flag `%c`", c))
}
