package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
	"github.com/t14raptor/jsarena/token"
)

const (
	errUnexpectedToken      = "Unexpected token %v"
	errUnexpectedEndOfInput = "Unexpected end of input"
	errExpectedToken        = "Expected `%v` but found %v"
	errExpectedExpression   = "Expected an expression but found %v"
	errExpectedSemicolon    = "Expected a semicolon or an implicit semicolon after a statement, but found none"
	errInvalidAssignment    = "Invalid left-hand side in assignment"
	errInvalidDestructuring = "Invalid destructuring assignment target"
	errInvalidBinding       = "Invalid destructuring binding target"
	errRestNotLast          = "Rest element must be last element"
	errRestTrailingComma    = "Unexpected trailing comma after rest element"
	errMalformedArrow       = "Malformed arrow function parameter list"
	errArrowLineTerminator  = "Line terminator not permitted before arrow"
	errMixedCoalesce        = "Logical expressions and coalesce expressions cannot be mixed"
	errUnaryBeforeExponent  = "Unary operator used immediately before exponentiation expression"
	errEscapedKeyword       = "Keywords cannot contain escape characters"
	errStrictReserved       = "The keyword '%s' is reserved in strict mode code"
	errReservedWord         = "Unexpected reserved word '%s'"
	errStrictOctal          = "Octal literals are not allowed in strict mode"
	errStrictOctalEscape    = "Octal escape sequences are not allowed in strict mode"
	errStrictLeadingZero    = "Decimals with leading zeros are not allowed in strict mode"
	errStrictWith           = "'with' statements are not allowed in strict mode"
	errStrictDelete         = "Deleting an unqualified identifier is not allowed in strict mode"
	errIllegalReturn        = "Illegal return statement"
	errIllegalBreak         = "Illegal break statement"
	errIllegalContinue      = "Illegal continue statement"
	errUndefinedLabel       = "Use of undefined label '%s'"
	errDuplicateLabel       = "Label '%s' has already been declared"
	errIllegalNewline       = "Illegal newline after %v"
	errLexicalInSingle      = "Lexical declaration cannot appear in a single-statement context"
	errMissingInitializer   = "Missing initializer in %s declaration"
	errForInInitializer     = "for-in and for-of loop variable declarations may not have an initializer"
	errForInTarget          = "Invalid left-hand side in for-in or for-of"
	errMissingCatchFinally  = "Missing catch or finally after try"
	errDuplicateDefault     = "Multiple default clauses in switch statement"
	errNewTarget            = "new.target is only allowed in functions"
	errImportMeta           = "import.meta is only allowed in modules"
	errModuleSyntax         = "Cannot use %s statement outside a module"
	errModuleTopLevel       = "%s declarations may only appear at top level of a module"
	errDuplicateExport      = "Duplicated export '%s'"
	errGetterParams         = "A 'get' accessor must not have any formal parameters"
	errSetterParams         = "A 'set' accessor must have exactly one formal parameter"
	errAwaitInParams        = "await is not allowed in formal parameters"
	errYieldInParams        = "yield is not allowed in formal parameters"
	errInvalidTemplate      = "Invalid escape sequence in template"
	errTemplateOptional     = "Tagged template cannot be used in optional chain"
	errSuper                = "'super' can only be used with function calls or in property accesses"
	errSuperCall            = "Super calls are not permitted outside constructors or in nested functions inside constructors"
	errConstructorKind      = "Class constructor may not be %s"
	errConstructorField     = "Classes may not have a field named 'constructor'"
	errStaticPrototype      = "Classes may not have a static property named 'prototype'"
	errJSXClosingTag        = "Expected corresponding JSX closing tag for '%s'"
	errFlow                 = "Flow is not supported"
	errSourceTooLong        = "Source length exceeds 4 GiB limit"
	errNesting              = "Too many nested expressions"
)

var diagnosticsHelpParens = diagnostics.Help("Wrap either expression in parentheses")

// describe names the current token the way messages quote it.
func (p *parser) describe() string {
	switch p.token.Kind {
	case token.Eof:
		return "end of file"
	case token.Identifier, token.String, token.Number, token.BigInt,
		token.TemplateHead, token.NoSubstitutionTemplate, token.PrivateIdentifier:
		return "`" + p.scanner.Raw(p.token) + "`"
	}
	if token.ID(p.token.Kind) {
		return "`" + p.scanner.Raw(p.token) + "`"
	}
	return "`" + p.token.Kind.String() + "`"
}

func (p *parser) error(span ast.Span, msg string, opts ...diagnostics.Option) {
	p.diags.Error(span, msg, opts...)
}

func (p *parser) errorf(span ast.Span, format string, args ...any) {
	p.diags.Errorf(span, format, args...)
}

// errorUnexpectedToken reports the current token.
func (p *parser) errorUnexpectedToken() {
	span := p.token.Span()
	switch p.token.Kind {
	case token.Eof:
		p.error(span, errUnexpectedEndOfInput)
	case token.EscapedReservedWord:
		p.error(span, errEscapedKeyword)
	default:
		p.errorf(span, errUnexpectedToken, p.describe())
	}
}

// errorExpected reports that want was expected at the current token.
func (p *parser) errorExpected(want token.Token) {
	if p.token.Kind == token.Eof {
		p.error(p.token.Span(), errUnexpectedEndOfInput, diagnostics.Label("expected `%v`", want))
		return
	}
	p.errorf(p.token.Span(), errExpectedToken, want, p.describe())
}

// errorExpectedSemicolon reports a missing semicolon right after the
// previous token.
func (p *parser) errorExpectedSemicolon() {
	at := ast.Span{Start: p.prevEnd, End: p.prevEnd}
	p.error(at, errExpectedSemicolon, diagnostics.Help("Try inserting a semicolon here"))
}

// maxNesting bounds how deeply statements, expressions, patterns and types
// may nest.
const maxNesting = 4096

// enterNesting counts one more level of nesting. Each call is paired with a
// deferred leaveNesting.
func (p *parser) enterNesting() {
	p.depth++
	if p.depth > maxNesting {
		p.fatal(p.token.Span(), errNesting)
	}
}

func (p *parser) leaveNesting() { p.depth-- }

// fatal reports msg at span and abandons the parse.
func (p *parser) fatal(span ast.Span, msg string) {
	p.diags.Error(span, msg, diagnostics.Fatal())
	panic(errAbort)
}
