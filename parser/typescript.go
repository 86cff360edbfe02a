package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

// keywordTypes are the predefined type names.
var keywordTypes = map[string]struct{}{
	"any":       {},
	"unknown":   {},
	"number":    {},
	"bigint":    {},
	"string":    {},
	"boolean":   {},
	"symbol":    {},
	"object":    {},
	"never":     {},
	"undefined": {},
	"intrinsic": {},
}

// parseTSTypeAnnotation parses ": Type" at the current colon.
func (p *parser) parseTSTypeAnnotation() *ast.TSTypeAnnotation {
	start := p.token.Start
	p.expect(token.Colon)
	typ := p.parseTSType()
	return node(&p.alloc, ast.TSTypeAnnotation{Span: p.spanFrom(start), Type: typ})
}

func (p *parser) parseTSType() *ast.TSType {
	p.enterNesting()
	defer p.leaveNesting()
	switch {
	case p.at(token.New):
		return p.parseTSFunctionType(true)
	case p.at(token.Less), p.at(token.LeftParenthesis) && p.startsFunctionType():
		return p.parseTSFunctionType(false)
	}
	return p.parseTSUnionType()
}

// startsFunctionType reports whether the ( at the cursor opens the
// parameters of a function type rather than a parenthesized type.
func (p *parser) startsFunctionType() bool {
	c := p.checkpoint()
	p.parseFunctionParameterList()
	ok := !p.failedSince(c) && p.at(token.Arrow)
	p.rewind(c)
	return ok
}

func (p *parser) parseTSFunctionType(constructor bool) *ast.TSType {
	start := p.token.Start
	if constructor {
		p.next()
	}
	n := ast.TSFunctionType{Constructor: constructor}
	if p.at(token.Less) {
		n.TypeParameters = p.parseTSTypeParameters()
	}
	n.Params = p.parseFunctionParameterList()

	arrow := p.token.Start
	p.expect(token.Arrow)
	returnType := p.parseTSType()
	n.ReturnType = node(&p.alloc, ast.TSTypeAnnotation{Span: p.spanFrom(arrow), Type: returnType})
	n.Span = p.spanFrom(start)
	return p.alloc.Type(node(&p.alloc, n))
}

func (p *parser) parseTSUnionType() *ast.TSType {
	start := p.token.Start
	p.eat(token.Or)
	first := p.parseTSIntersectionType()
	if !p.at(token.Or) {
		return first
	}
	types := []ast.TSType{*first}
	for p.eat(token.Or) {
		typ := p.parseTSIntersectionType()
		types = append(types, *typ)
	}
	return p.alloc.Type(node(&p.alloc, ast.TSUnionType{
		Span:  p.spanFrom(start),
		Types: copyOf(&p.alloc, types),
	}))
}

func (p *parser) parseTSIntersectionType() *ast.TSType {
	start := p.token.Start
	p.eat(token.And)
	first := p.parseTSTypeOperator()
	if !p.at(token.And) {
		return first
	}
	types := []ast.TSType{*first}
	for p.eat(token.And) {
		typ := p.parseTSTypeOperator()
		types = append(types, *typ)
	}
	return p.alloc.Type(node(&p.alloc, ast.TSIntersectionType{
		Span:  p.spanFrom(start),
		Types: copyOf(&p.alloc, types),
	}))
}

func (p *parser) parseTSTypeOperator() *ast.TSType {
	start := p.token.Start
	var operator string
	switch {
	case p.at(token.Keyof), p.at(token.Readonly):
		operator = p.raw()
	case p.at(token.Identifier) && p.value() == "unique":
		operator = "unique"
	default:
		return p.parseTSPostfixType()
	}
	p.next()
	typ := p.parseTSTypeOperator()
	return p.alloc.Type(node(&p.alloc, ast.TSTypeOperator{
		Span:     p.spanFrom(start),
		Operator: operator,
		Type:     typ,
	}))
}

func (p *parser) parseTSPostfixType() *ast.TSType {
	start := p.token.Start
	typ := p.parseTSPrimaryType()
	for p.at(token.LeftBracket) && !p.token.OnNewLine {
		p.next()
		if p.eat(token.RightBracket) {
			typ = p.alloc.Type(node(&p.alloc, ast.TSArrayType{Span: p.spanFrom(start), Element: typ}))
			continue
		}
		index := p.parseTSType()
		p.expect(token.RightBracket)
		typ = p.alloc.Type(node(&p.alloc, ast.TSIndexedAccessType{
			Span:   p.spanFrom(start),
			Object: typ,
			Index:  index,
		}))
	}
	return typ
}

func (p *parser) parseTSPrimaryType() *ast.TSType {
	start := p.token.Start
	switch p.token.Kind {
	case token.LeftParenthesis:
		p.next()
		typ := p.parseTSType()
		p.expect(token.RightParenthesis)
		return typ
	case token.LeftBrace:
		return p.alloc.Type(p.parseTSTypeLiteral())
	case token.LeftBracket:
		return p.parseTSTupleType()
	case token.Typeof:
		p.next()
		name := p.parseTSEntityName()
		return p.alloc.Type(node(&p.alloc, ast.TSTypeQuery{Span: p.spanFrom(start), Name: name}))
	case token.String, token.Number, token.BigInt, token.Boolean, token.NoSubstitutionTemplate, token.Minus:
		literal := p.parseUnaryExpression()
		return p.alloc.Type(node(&p.alloc, ast.TSLiteralType{Span: p.spanFrom(start), Literal: literal}))
	case token.Void, token.Null, token.This:
		keyword := p.raw()
		p.next()
		return p.alloc.Type(node(&p.alloc, ast.TSKeywordType{Span: p.spanFrom(start), Keyword: keyword}))
	case token.Identifier:
		if _, ok := keywordTypes[p.value()]; ok && !p.token.HasEscape {
			keyword := p.value()
			p.next()
			if !p.at(token.Period) {
				return p.alloc.Type(node(&p.alloc, ast.TSKeywordType{Span: p.spanFrom(start), Keyword: keyword}))
			}
			// A namespace that happens to share the keyword's name.
			c := p.alloc.Identifier(p.spanFrom(start), keyword)
			return p.parseTSTypeReferenceFrom(start, c)
		}
	}
	if token.ID(p.token.Kind) {
		return p.parseTSTypeReference()
	}

	at := ast.Span{Start: p.prevEnd, End: p.prevEnd}
	p.errorf(at, errExpectedToken, "type", p.describe())
	return p.alloc.Type(node(&p.alloc, ast.TSKeywordType{Span: at, Keyword: "any"}))
}

// parseTSEntityName parses a possibly qualified name: a.b.c.
func (p *parser) parseTSEntityName() []*ast.Identifier {
	var name []*ast.Identifier
	for {
		name = append(name, p.parseIdentifierName())
		if !p.eat(token.Period) {
			break
		}
	}
	return copyOf(&p.alloc, name)
}

func (p *parser) parseTSTypeReference() *ast.TSType {
	return p.parseTSTypeReferenceFrom(p.token.Start, nil)
}

// parseTSTypeReferenceFrom parses a type reference, whose first name may
// already have been consumed.
func (p *parser) parseTSTypeReferenceFrom(start ast.Idx, first *ast.Identifier) *ast.TSType {
	var name []*ast.Identifier
	if first != nil {
		name = append(name, first)
		p.expect(token.Period)
	}
	for {
		name = append(name, p.parseIdentifierName())
		if !p.eat(token.Period) {
			break
		}
	}
	n := ast.TSTypeReference{Name: copyOf(&p.alloc, name)}
	if p.at(token.Less) && !p.token.OnNewLine {
		n.TypeArguments = p.parseTSTypeArguments()
	}
	n.Span = p.spanFrom(start)
	return p.alloc.Type(node(&p.alloc, n))
}

func (p *parser) parseTSTupleType() *ast.TSType {
	start := p.token.Start
	p.next()
	var elements []ast.TSType
	for !p.at(token.RightBracket) && !p.at(token.Eof) {
		elementStart := p.token.Start
		rest := p.eat(token.Ellipsis)
		p.skipTupleLabel()
		typ := p.parseTSType()
		switch {
		case rest:
			typ = p.alloc.Type(node(&p.alloc, ast.TSRestType{Span: p.spanFrom(elementStart), Type: typ}))
		case p.at(token.QuestionMark):
			p.next()
			typ = p.alloc.Type(node(&p.alloc, ast.TSOptionalType{Span: p.spanFrom(elementStart), Type: typ}))
		}
		elements = append(elements, *typ)
		if !p.at(token.RightBracket) && !p.expect(token.Comma) {
			break
		}
	}
	p.expect(token.RightBracket)
	return p.alloc.Type(node(&p.alloc, ast.TSTupleType{
		Span:     p.spanFrom(start),
		Elements: copyOf(&p.alloc, elements),
	}))
}

// skipTupleLabel skips the name of a labeled tuple element, name: T or
// name?: T. Labels are not kept.
func (p *parser) skipTupleLabel() {
	if !token.ID(p.token.Kind) {
		return
	}
	next := p.peek().Kind
	if next != token.Colon && next != token.QuestionMark {
		return
	}
	c := p.checkpoint()
	p.next()
	p.eat(token.QuestionMark)
	if !p.eat(token.Colon) {
		p.rewind(c)
	}
}

func (p *parser) parseTSTypeLiteral() *ast.TSTypeLiteral {
	start := p.token.Start
	p.expect(token.LeftBrace)
	var members []ast.TSPropertySignature
	for !p.at(token.RightBrace) && !p.at(token.Eof) {
		before := p.token.Start
		members = append(members, p.parseTSTypeMember())
		if !p.eat(token.Semicolon) && !p.eat(token.Comma) && !p.at(token.RightBrace) && !p.token.OnNewLine {
			p.errorExpected(token.Semicolon)
			break
		}
		if p.token.Start == before {
			p.next()
		}
	}
	p.expect(token.RightBrace)
	return node(&p.alloc, ast.TSTypeLiteral{
		Span:    p.spanFrom(start),
		Members: copyOf(&p.alloc, members),
	})
}

func (p *parser) parseTSTypeMember() ast.TSPropertySignature {
	start := p.token.Start
	var n ast.TSPropertySignature

	if p.at(token.Readonly) && isPropertyKeyStart(p.peek().Kind) {
		n.Readonly = true
		p.next()
	}

	switch {
	case p.at(token.LeftParenthesis), p.at(token.Less):
		// Call signature.
		p.parseTSSignature(&n)
		n.Span = p.spanFrom(start)
		return n
	case p.at(token.LeftBracket):
		if p.parseTSIndexSignature(&n) {
			n.Span = p.spanFrom(start)
			return n
		}
	}

	n.Key, n.Computed = p.parsePropertyKey()
	if p.eat(token.QuestionMark) {
		n.Optional = true
	}
	if p.at(token.LeftParenthesis) || p.at(token.Less) {
		p.parseTSSignature(&n)
	} else if p.at(token.Colon) {
		n.TypeAnnotation = p.parseTSTypeAnnotation()
	}
	n.Span = p.spanFrom(start)
	return n
}

// parseTSSignature parses the parameters and return type of a method or
// call signature. Type parameters are not kept.
func (p *parser) parseTSSignature(n *ast.TSPropertySignature) {
	if p.at(token.Less) {
		p.parseTSTypeParameters()
	}
	n.Params = p.parseFunctionParameterList()
	if p.at(token.Colon) {
		n.TypeAnnotation = p.parseTSTypeAnnotation()
	}
}

// parseTSIndexSignature parses [key: T]: U at the current [, and leaves
// the cursor untouched if it is a computed key instead.
func (p *parser) parseTSIndexSignature(n *ast.TSPropertySignature) bool {
	c := p.checkpoint()
	p.next()
	if !token.ID(p.token.Kind) {
		p.rewind(c)
		return false
	}
	key := p.parseIdentifierName()
	if !p.at(token.Colon) {
		p.rewind(c)
		return false
	}
	p.next()
	n.Key = p.alloc.Expression(key)
	n.IndexType = p.parseTSType()
	p.expect(token.RightBracket)
	if p.at(token.Colon) {
		n.TypeAnnotation = p.parseTSTypeAnnotation()
	}
	return true
}

func (p *parser) parseTSTypeParameters() *ast.TSTypeParameters {
	start := p.token.Start
	p.expect(token.Less)
	var params []ast.TSTypeParameter
	for !p.atGreater() && !p.at(token.Eof) {
		paramStart := p.token.Start
		// Variance and const modifiers are not kept.
		for (p.at(token.In) || p.at(token.Const) || p.at(token.Identifier) && p.value() == "out") && token.ID(p.peek().Kind) {
			p.next()
		}
		param := ast.TSTypeParameter{Name: p.parseBindingIdentifier()}
		if p.eat(token.Extends) {
			param.Constraint = p.parseTSType()
		}
		if p.eat(token.Assign) {
			param.Default = p.parseTSType()
		}
		param.Span = p.spanFrom(paramStart)
		params = append(params, param)
		if !p.atGreater() && !p.expect(token.Comma) {
			break
		}
	}
	p.expectGreater()
	return node(&p.alloc, ast.TSTypeParameters{
		Span:   p.spanFrom(start),
		Params: copyOf(&p.alloc, params),
	})
}

func (p *parser) parseTSTypeArguments() *ast.TSTypeArguments {
	start := p.token.Start
	if p.at(token.ShiftLeft) {
		// f<<T>(x: T) => T>(), the scanner joined the two <.
		p.errorUnexpectedToken()
		return node(&p.alloc, ast.TSTypeArguments{Span: p.token.Span()})
	}
	p.expect(token.Less)
	var params []ast.TSType
	for !p.atGreater() && !p.at(token.Eof) {
		typ := p.parseTSType()
		params = append(params, *typ)
		if !p.atGreater() && !p.expect(token.Comma) {
			break
		}
	}
	p.expectGreater()
	return node(&p.alloc, ast.TSTypeArguments{
		Span:   p.spanFrom(start),
		Params: copyOf(&p.alloc, params),
	})
}

// atGreater reports whether the current token starts with >, splitting
// tokens such as >> or >= so that the > can be consumed on its own.
func (p *parser) atGreater() bool {
	switch p.token.Kind {
	case token.Greater:
		return true
	case token.ShiftRight, token.UnsignedShiftRight, token.GreaterOrEqual,
		token.ShiftRightAssign, token.UnsignedShiftRightAssign:
		p.sync(p.scanner.SplitGreater())
		return true
	}
	return false
}

func (p *parser) expectGreater() {
	if p.atGreater() {
		p.next()
		return
	}
	p.errorExpected(token.Greater)
}

// tryParseTypeArgumentsInExpression parses f<T> type arguments in an
// expression, if they are followed by a call or a template. Otherwise the
// < is a comparison and the cursor is left untouched.
func (p *parser) tryParseTypeArgumentsInExpression() *ast.TSTypeArguments {
	c := p.checkpoint()
	args := p.parseTSTypeArguments()
	if !p.failedSince(c) {
		switch p.token.Kind {
		case token.LeftParenthesis, token.NoSubstitutionTemplate, token.TemplateHead:
			return args
		}
	}
	p.rewind(c)
	return nil
}

func (p *parser) parseTSTypeAssertion() *ast.Expression {
	start := p.token.Start
	p.next()
	typ := p.parseTSType()
	p.expectGreater()
	expr := p.parseUnaryExpression()
	return p.alloc.Expression(node(&p.alloc, ast.TSTypeAssertion{
		Span:       p.spanFrom(start),
		Type:       typ,
		Expression: expr,
	}))
}

// parseTSDeclaration parses a declaration introduced by a TypeScript
// contextual keyword. It returns nil, without consuming anything, when the
// keyword is an identifier here.
func (p *parser) parseTSDeclaration(start ast.Idx, declare bool) ast.Stmt {
	next := p.peek()
	switch p.token.Kind {
	case token.Interface:
		if !next.OnNewLine && p.isBindingIdentifier(next.Kind) {
			return p.parseTSInterfaceDeclaration(start, declare)
		}
	case token.Type:
		if !next.OnNewLine && p.isBindingIdentifier(next.Kind) {
			return p.parseTSTypeAliasDeclaration(start, declare)
		}
	case token.Enum:
		return p.parseTSEnumDeclaration(start, declare)
	case token.Abstract:
		if !next.OnNewLine && next.Kind == token.Class {
			p.next()
			return p.parseClassDeclaration(start, declare, true)
		}
	case token.Declare:
		if declare || next.OnNewLine {
			return nil
		}
		switch next.Kind {
		case token.Var, token.Let, token.Const:
			p.next()
			if p.at(token.Const) && p.peek().Kind == token.Enum {
				return p.parseTSEnumDeclaration(start, true)
			}
			return p.parseLexicalDeclaration(start, true)
		case token.Function, token.Async:
			p.next()
			fn := p.parseFunction(true, false, start)
			return node(&p.alloc, ast.FunctionDeclaration{Span: fn.Span, Function: fn, Declare: true})
		case token.Class:
			p.next()
			return p.parseClassDeclaration(start, true, false)
		case token.Interface, token.Type, token.Enum, token.Abstract:
			p.next()
			return p.parseTSDeclaration(start, true)
		}
	}
	return nil
}

func (p *parser) parseTSInterfaceDeclaration(start ast.Idx, declare bool) ast.Stmt {
	p.next() // interface
	n := ast.TSInterfaceDeclaration{Declare: declare}
	n.Name = p.parseBindingIdentifier()
	if p.at(token.Less) {
		n.TypeParameters = p.parseTSTypeParameters()
	}
	if p.eat(token.Extends) {
		var extends []ast.TSType
		for {
			ref := p.parseTSTypeReference()
			extends = append(extends, *ref)
			if !p.eat(token.Comma) {
				break
			}
		}
		n.Extends = copyOf(&p.alloc, extends)
	}
	n.Body = p.parseTSTypeLiteral()
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

func (p *parser) parseTSTypeAliasDeclaration(start ast.Idx, declare bool) ast.Stmt {
	p.next() // type
	n := ast.TSTypeAliasDeclaration{Declare: declare}
	n.Name = p.parseBindingIdentifier()
	if p.at(token.Less) {
		n.TypeParameters = p.parseTSTypeParameters()
	}
	p.expect(token.Assign)
	n.Type = p.parseTSType()
	p.semicolon()
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

// parseTSEnumDeclaration parses an enum at enum or const enum.
func (p *parser) parseTSEnumDeclaration(start ast.Idx, declare bool) ast.Stmt {
	n := ast.TSEnumDeclaration{Declare: declare}
	if p.eat(token.Const) {
		n.Const = true
	}
	p.expect(token.Enum)
	n.Name = p.parseBindingIdentifier()

	p.expect(token.LeftBrace)
	var members []ast.TSEnumMember
	for !p.at(token.RightBrace) && !p.at(token.Eof) {
		memberStart := p.token.Start
		var member ast.TSEnumMember
		if p.at(token.String) {
			member.Name = p.alloc.Expression(p.parseStringLiteral())
		} else {
			member.Name = p.alloc.Expression(p.parseIdentifierName())
		}
		if p.eat(token.Assign) {
			member.Initializer = p.parseAssignmentExpression()
		}
		member.Span = p.spanFrom(memberStart)
		members = append(members, member)
		if !p.at(token.RightBrace) && !p.expect(token.Comma) {
			break
		}
	}
	p.expect(token.RightBrace)
	n.Members = copyOf(&p.alloc, members)
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}
