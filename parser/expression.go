package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/parser/scanner"
	"github.com/t14raptor/jsarena/token"
)

// isBindingIdentifier reports whether a token of the given kind can be used
// as an identifier in the current context.
func (p *parser) isBindingIdentifier(kind token.Token) bool {
	switch kind {
	case token.Identifier:
		return true
	case token.Await:
		return !p.scope.allowAwait && !p.module
	case token.Yield:
		return !p.scope.allowYield
	}
	return token.UnreservedWord(kind)
}

// parseIdentifier parses an identifier reference or binding name at the
// current token.
func (p *parser) parseIdentifier() *ast.Identifier {
	name := p.value()
	span := p.token.Span()
	if p.scope.strict && token.StrictReserved(name) {
		p.errorf(span, errStrictReserved, name)
	}
	p.next()
	return p.alloc.Identifier(span, name)
}

// parseIdentifierName parses any name, reserved words included, as used
// after a dot or as a property key.
func (p *parser) parseIdentifierName() *ast.Identifier {
	if !token.ID(p.token.Kind) {
		p.errorExpected(token.Identifier)
		return p.alloc.Identifier(ast.Span{Start: p.prevEnd, End: p.prevEnd}, "")
	}
	name := p.value()
	span := p.token.Span()
	p.next()
	return p.alloc.Identifier(span, name)
}

// parseBindingIdentifier parses the name of a binding, reporting reserved
// words.
func (p *parser) parseBindingIdentifier() *ast.Identifier {
	if p.isBindingIdentifier(p.token.Kind) {
		return p.parseIdentifier()
	}
	if p.at(token.EscapedReservedWord) {
		p.error(p.token.Span(), errEscapedKeyword)
	} else if token.ID(p.token.Kind) {
		p.errorf(p.token.Span(), errReservedWord, p.raw())
	} else {
		p.errorExpected(token.Identifier)
		return p.alloc.Identifier(ast.Span{Start: p.prevEnd, End: p.prevEnd}, "")
	}
	return p.parseIdentifierName()
}

func (p *parser) parsePrimaryExpression() *ast.Expression {
	start := p.token.Start
	switch p.token.Kind {
	case token.Identifier:
		return p.alloc.Expression(p.parseIdentifier())
	case token.Null:
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.NullLiteral{Span: p.spanFrom(start)}))
	case token.Boolean:
		value := p.raw() == "true"
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.BooleanLiteral{Span: p.spanFrom(start), Value: value}))
	case token.String:
		return p.alloc.Expression(p.parseStringLiteral())
	case token.Number:
		return p.alloc.Expression(p.parseNumberLiteral())
	case token.BigInt:
		raw := p.raw()
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.BigIntLiteral{Span: p.spanFrom(start), Raw: raw}))
	case token.Slash, token.QuotientAssign:
		p.sync(p.scanner.ReadRegExp())
		pattern, flags := scanner.RegExpParts(p.raw())
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.RegExpLiteral{
			Span:    p.spanFrom(start),
			Pattern: pattern,
			Flags:   flags,
		}))
	case token.LeftBrace:
		return p.parseObjectLiteral()
	case token.LeftBracket:
		return p.parseArrayLiteral()
	case token.LeftParenthesis:
		return p.parseParenthesisedExpression()
	case token.NoSubstitutionTemplate, token.TemplateHead:
		return p.alloc.Expression(p.parseTemplateLiteral(nil))
	case token.This:
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.ThisExpression{Span: p.spanFrom(start)}))
	case token.Super:
		p.next()
		switch p.token.Kind {
		case token.Period, token.LeftBracket, token.QuestionDot:
		case token.LeftParenthesis:
			if !p.scope.allowSuperCall {
				p.error(p.spanFrom(start), errSuperCall)
			}
		default:
			p.error(p.spanFrom(start), errSuper)
		}
		return p.alloc.Expression(node(&p.alloc, ast.SuperExpression{Span: p.spanFrom(start)}))
	case token.Function:
		return p.alloc.Expression(p.parseFunction(false, false, start))
	case token.Async:
		if next := p.peek(); next.Kind == token.Function && !next.OnNewLine {
			return p.alloc.Expression(p.parseFunction(false, false, start))
		}
	case token.Class:
		return p.alloc.Expression(p.parseClass(false, true, start, false))
	case token.Import:
		return p.parseImportExpression()
	case token.Less:
		if p.jsx {
			return p.parseJSXElement(false)
		}
	case token.EscapedReservedWord:
		p.error(p.token.Span(), errEscapedKeyword)
		return p.alloc.Expression(p.parseIdentifierName())
	}

	if p.isBindingIdentifier(p.token.Kind) {
		return p.alloc.Expression(p.parseIdentifier())
	}

	at := ast.Span{Start: p.prevEnd, End: p.prevEnd}
	p.errorf(at, errExpectedExpression, p.describe())
	return p.alloc.InvalidExpression(at)
}

func (p *parser) parseStringLiteral() *ast.StringLiteral {
	if p.token.Octal && p.scope.strict {
		p.error(p.token.Span(), errStrictOctalEscape)
	}
	lit := p.alloc.StringLiteral(p.token.Span(), p.value(), p.raw())
	p.next()
	return lit
}

func (p *parser) parseNumberLiteral() *ast.NumberLiteral {
	raw := p.raw()
	if p.token.Octal && p.scope.strict {
		if isLegacyDecimal(raw) {
			p.error(p.token.Span(), errStrictLeadingZero)
		} else {
			p.error(p.token.Span(), errStrictOctal)
		}
	}
	// Malformed literals have been reported by the scanner.
	value, _ := parseNumberLiteral(raw, p.token.Octal)
	lit := p.alloc.NumberLiteral(p.token.Span(), value, raw)
	p.next()
	return lit
}

func isLegacyDecimal(raw string) bool {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '8' || raw[i] == '9' {
			return true
		}
	}
	return false
}

func (p *parser) parseImportExpression() *ast.Expression {
	start := p.token.Start
	meta := p.parseIdentifierName() // import
	if p.eat(token.Period) {
		if !p.at(token.Meta) {
			p.errorExpected(token.Meta)
			return p.alloc.InvalidExpression(p.spanFrom(start))
		}
		property := p.parseIdentifierName()
		if !p.module {
			p.error(p.spanFrom(start), errImportMeta)
		}
		return p.alloc.Expression(node(&p.alloc, ast.MetaProperty{
			Span:     p.spanFrom(start),
			Meta:     meta,
			Property: property,
		}))
	}

	if !p.expect(token.LeftParenthesis) {
		return p.alloc.InvalidExpression(p.spanFrom(start))
	}
	allowIn := p.scope.allowIn
	p.scope.allowIn = true
	n := ast.ImportExpression{Source: p.parseAssignmentExpression()}
	if p.eat(token.Comma) && !p.at(token.RightParenthesis) {
		n.Options = p.parseAssignmentExpression()
		p.eat(token.Comma)
	}
	p.scope.allowIn = allowIn
	p.expect(token.RightParenthesis)
	n.Span = p.spanFrom(start)
	return p.alloc.Expression(node(&p.alloc, n))
}

func (p *parser) parseParenthesisedExpression() *ast.Expression {
	start := p.token.Start
	p.next()
	allowIn := p.scope.allowIn
	p.scope.allowIn = true
	expr := p.parseExpression()
	p.scope.allowIn = allowIn
	p.expect(token.RightParenthesis)
	if p.opts.PreserveParens {
		return p.alloc.Expression(node(&p.alloc, ast.ParenthesizedExpression{
			Span:       p.spanFrom(start),
			Expression: expr,
		}))
	}
	return expr
}

func (p *parser) parseBindingTarget() ast.Target {
	p.enterNesting()
	defer p.leaveNesting()
	switch p.token.Kind {
	case token.LeftBracket:
		return p.parseArrayBindingPattern()
	case token.LeftBrace:
		return p.parseObjectBindingPattern()
	}
	return p.parseBindingIdentifier()
}

// parseBindingElement parses a binding target with an optional default,
// as found in patterns. A default makes it an assignment expression.
func (p *parser) parseBindingElement() *ast.Expression {
	target := p.alloc.Expression(p.parseBindingTarget())
	if !p.at(token.Assign) {
		return target
	}
	p.next()
	allowIn := p.scope.allowIn
	p.scope.allowIn = true
	value := p.parseAssignmentExpression()
	p.scope.allowIn = allowIn
	return p.alloc.Expression(p.alloc.AssignExpression(token.Assign, target, value))
}

func (p *parser) parseArrayBindingPattern() *ast.ArrayPattern {
	start := p.token.Start
	p.next()
	mark := len(p.exprBuf)
	var rest *ast.Expression
	for !p.at(token.RightBracket) && !p.at(token.Eof) {
		if p.eat(token.Comma) {
			p.exprBuf = append(p.exprBuf, ast.Expression{})
			continue
		}
		if p.eat(token.Ellipsis) {
			rest = p.alloc.Expression(p.parseBindingTarget())
			if p.at(token.Comma) {
				p.error(p.token.Span(), errRestTrailingComma)
				p.next()
			}
			break
		}
		element := p.parseBindingElement()
		p.exprBuf = append(p.exprBuf, *element)
		if !p.at(token.RightBracket) && !p.expect(token.Comma) {
			break
		}
	}
	elements := finish(&p.alloc, &p.exprBuf, mark)
	p.expect(token.RightBracket)
	return node(&p.alloc, ast.ArrayPattern{
		Span:     p.spanFrom(start),
		Elements: elements,
		Rest:     rest,
	})
}

func (p *parser) parseObjectBindingPattern() *ast.ObjectPattern {
	start := p.token.Start
	p.next()
	mark := len(p.propBuf)
	var rest *ast.Expression
	for !p.at(token.RightBrace) && !p.at(token.Eof) {
		if p.eat(token.Ellipsis) {
			rest = p.alloc.Expression(p.parseBindingIdentifier())
			if p.at(token.Comma) {
				p.error(p.token.Span(), errRestTrailingComma)
				p.next()
			}
			break
		}
		prop := p.parseBindingProperty()
		p.propBuf = append(p.propBuf, prop)
		if !p.at(token.RightBrace) && !p.expect(token.Comma) {
			break
		}
	}
	properties := finish(&p.alloc, &p.propBuf, mark)
	p.expect(token.RightBrace)
	return node(&p.alloc, ast.ObjectPattern{
		Span:       p.spanFrom(start),
		Properties: properties,
		Rest:       rest,
	})
}

func (p *parser) parseBindingProperty() ast.Property {
	start := p.token.Start
	keyToken := p.token
	key, computed := p.parsePropertyKey()
	if !computed && !p.at(token.Colon) && p.isBindingIdentifier(keyToken.Kind) {
		name := key.Expr.(*ast.Identifier)
		if p.scope.strict && token.StrictReserved(name.Name) {
			p.errorf(name.Span, errStrictReserved, name.Name)
		}
		var initializer *ast.Expression
		if p.eat(token.Assign) {
			initializer = p.parseAssignmentExpression()
		}
		return ast.Property{Prop: node(&p.alloc, ast.PropertyShort{
			Span:        p.spanFrom(start),
			Name:        name,
			Initializer: initializer,
		})}
	}
	p.expect(token.Colon)
	value := p.parseBindingElement()
	return ast.Property{Prop: p.alloc.PropertyKeyed(p.spanFrom(start), key, ast.PropertyKindValue, value, computed)}
}

func (p *parser) parseVariableDeclaration() ast.VariableDeclarator {
	start := p.token.Start
	n := ast.VariableDeclarator{Target: p.alloc.BindingTarget(p.parseBindingTarget())}

	if p.ts {
		if p.at(token.Not) && !p.token.OnNewLine {
			// let x!: T
			p.next()
			n.Definite = true
		}
		if p.at(token.Colon) {
			n.TypeAnnotation = p.parseTSTypeAnnotation()
		}
	}
	if p.eat(token.Assign) {
		n.Initializer = p.parseAssignmentExpression()
	}
	n.Span = p.spanFrom(start)
	return n
}

func (p *parser) parseVariableDeclarationList() ast.VariableDeclarators {
	mark := len(p.declBuf)
	for {
		decl := p.parseVariableDeclaration()
		p.declBuf = append(p.declBuf, decl)
		if !p.eat(token.Comma) {
			break
		}
	}
	return finish(&p.alloc, &p.declBuf, mark)
}

// isPropertyKeyStart reports whether a property key can start with kind.
func isPropertyKeyStart(kind token.Token) bool {
	switch kind {
	case token.String, token.Number, token.BigInt, token.LeftBracket,
		token.PrivateIdentifier, token.Multiply:
		return true
	}
	return token.ID(kind)
}

// parsePropertyKey parses the key of an object property, class member or
// type member.
func (p *parser) parsePropertyKey() (key *ast.Expression, computed bool) {
	switch kind := p.token.Kind; {
	case kind == token.LeftBracket:
		p.next()
		allowIn := p.scope.allowIn
		p.scope.allowIn = true
		key = p.parseAssignmentExpression()
		p.scope.allowIn = allowIn
		p.expect(token.RightBracket)
		return key, true
	case kind == token.String:
		return p.alloc.Expression(p.parseStringLiteral()), false
	case kind == token.Number:
		return p.alloc.Expression(p.parseNumberLiteral()), false
	case kind == token.BigInt:
		start := p.token.Start
		raw := p.raw()
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.BigIntLiteral{Span: p.spanFrom(start), Raw: raw})), false
	case kind == token.PrivateIdentifier:
		span := p.token.Span()
		name := p.value()
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.PrivateIdentifier{Span: span, Name: name})), false
	case token.ID(kind):
		return p.alloc.Expression(p.parseIdentifierName()), false
	}
	p.errorUnexpectedToken()
	return p.alloc.InvalidExpression(ast.Span{Start: p.token.Start, End: p.token.Start}), false
}

func (p *parser) parseObjectProperty() ast.Property {
	start := p.token.Start
	if p.eat(token.Ellipsis) {
		argument := p.parseAssignmentExpression()
		return ast.Property{Prop: node(&p.alloc, ast.SpreadElement{
			Span:       p.spanFrom(start),
			Expression: argument,
		})}
	}

	kind := ast.PropertyKindValue
	async, generator := false, false
	switch p.token.Kind {
	case token.Async, token.Get, token.Set:
		next := p.peek()
		if !isPropertyKeyStart(next.Kind) || p.at(token.Async) && next.OnNewLine {
			break
		}
		switch p.token.Kind {
		case token.Async:
			async = true
		case token.Get:
			kind = ast.PropertyKindGet
		case token.Set:
			kind = ast.PropertyKindSet
		}
		p.next()
	}
	if p.eat(token.Multiply) {
		generator = true
	}

	keyToken := p.token
	key, computed := p.parsePropertyKey()

	if async || generator || kind != ast.PropertyKindValue || p.at(token.LeftParenthesis) || p.ts && p.at(token.Less) {
		if kind == ast.PropertyKindValue {
			kind = ast.PropertyKindMethod
		}
		fn := p.parseMethod(kind, async, generator)
		return ast.Property{Prop: p.alloc.PropertyKeyed(p.spanFrom(start), key, kind, p.alloc.Expression(fn), computed)}
	}

	if p.eat(token.Colon) {
		value := p.parseAssignmentExpression()
		return ast.Property{Prop: p.alloc.PropertyKeyed(p.spanFrom(start), key, ast.PropertyKindValue, value, computed)}
	}

	if !computed && p.isBindingIdentifier(keyToken.Kind) {
		name := key.Expr.(*ast.Identifier)
		var initializer *ast.Expression
		if p.eat(token.Assign) {
			// Only valid once the literal turns out to be a pattern.
			initializer = p.parseAssignmentExpression()
		}
		return ast.Property{Prop: node(&p.alloc, ast.PropertyShort{
			Span:        p.spanFrom(start),
			Name:        name,
			Initializer: initializer,
		})}
	}

	p.errorExpected(token.Colon)
	value := p.alloc.InvalidExpression(ast.Span{Start: p.prevEnd, End: p.prevEnd})
	return ast.Property{Prop: p.alloc.PropertyKeyed(p.spanFrom(start), key, ast.PropertyKindValue, value, computed)}
}

func (p *parser) parseObjectLiteral() *ast.Expression {
	start := p.token.Start
	p.next()
	mark := len(p.propBuf)
	for !p.at(token.RightBrace) && !p.at(token.Eof) {
		property := p.parseObjectProperty()
		p.propBuf = append(p.propBuf, property)
		if !p.at(token.RightBrace) && !p.expect(token.Comma) {
			break
		}
	}
	value := finish(&p.alloc, &p.propBuf, mark)
	p.expect(token.RightBrace)

	return p.alloc.Expression(node(&p.alloc, ast.ObjectLiteral{Span: p.spanFrom(start), Value: value}))
}

func (p *parser) parseArrayLiteral() *ast.Expression {
	start := p.token.Start
	p.next()
	mark := len(p.exprBuf)
	for !p.at(token.RightBracket) && !p.at(token.Eof) {
		if p.eat(token.Comma) {
			p.exprBuf = append(p.exprBuf, ast.Expression{})
			continue
		}
		var element *ast.Expression
		if p.at(token.Ellipsis) {
			spreadStart := p.token.Start
			p.next()
			argument := p.parseAssignmentExpression()
			element = p.alloc.Expression(node(&p.alloc, ast.SpreadElement{
				Span:       p.spanFrom(spreadStart),
				Expression: argument,
			}))
		} else {
			element = p.parseAssignmentExpression()
		}
		p.exprBuf = append(p.exprBuf, *element)
		if !p.at(token.RightBracket) && !p.expect(token.Comma) {
			break
		}
	}
	value := finish(&p.alloc, &p.exprBuf, mark)
	p.expect(token.RightBracket)

	return p.alloc.Expression(node(&p.alloc, ast.ArrayLiteral{Span: p.spanFrom(start), Value: value}))
}

// parseTemplateLiteral parses a template starting at the current template
// token. tag is the tag expression of a tagged template, or nil.
func (p *parser) parseTemplateLiteral(tag *ast.Expression) *ast.TemplateLiteral {
	start := p.token.Start
	if tag != nil {
		start = tag.Idx0()
	}
	n := ast.TemplateLiteral{Tag: tag}
	var elements []ast.TemplateElement
	mark := len(p.exprBuf)

	for {
		kind := p.token.Kind
		element := ast.TemplateElement{
			Span:   p.templateElementSpan(),
			Raw:    p.scanner.TemplateRawValue(),
			Cooked: p.value(),
			Valid:  !p.token.BadEscape,
		}
		if p.token.BadEscape {
			element.Cooked = ""
			if tag == nil {
				p.error(p.token.Span(), errInvalidTemplate)
			}
		}
		elements = append(elements, element)

		if kind == token.NoSubstitutionTemplate || kind == token.TemplateTail {
			p.next()
			break
		}

		p.next()
		allowIn := p.scope.allowIn
		p.scope.allowIn = true
		expr := p.parseExpression()
		p.scope.allowIn = allowIn
		p.exprBuf = append(p.exprBuf, *expr)

		if !p.at(token.RightBrace) {
			p.errorExpected(token.RightBrace)
			break
		}
		p.sync(p.scanner.ReadTemplateContinuation())
	}

	n.Elements = copyOf(&p.alloc, elements)
	n.Expressions = finish(&p.alloc, &p.exprBuf, mark)
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

// templateElementSpan covers the text of the current template token,
// without its delimiters.
func (p *parser) templateElementSpan() ast.Span {
	start, end := p.token.Start+1, p.token.End
	switch p.token.Kind {
	case token.NoSubstitutionTemplate, token.TemplateTail:
		end--
	default:
		end -= 2
	}
	return ast.Span{Start: start, End: max(start, end)}
}

func (p *parser) parseArgumentList() ast.Expressions {
	p.expect(token.LeftParenthesis)
	allowIn := p.scope.allowIn
	p.scope.allowIn = true
	mark := len(p.exprBuf)
	for !p.at(token.RightParenthesis) && !p.at(token.Eof) {
		var argument *ast.Expression
		if p.at(token.Ellipsis) {
			start := p.token.Start
			p.next()
			expr := p.parseAssignmentExpression()
			argument = p.alloc.Expression(node(&p.alloc, ast.SpreadElement{
				Span:       p.spanFrom(start),
				Expression: expr,
			}))
		} else {
			argument = p.parseAssignmentExpression()
		}
		p.exprBuf = append(p.exprBuf, *argument)
		if !p.at(token.RightParenthesis) && !p.expect(token.Comma) {
			break
		}
	}
	argumentList := finish(&p.alloc, &p.exprBuf, mark)
	p.scope.allowIn = allowIn
	p.expect(token.RightParenthesis)
	return argumentList
}

func (p *parser) parseCallExpression(callee *ast.Expression, typeArguments *ast.TSTypeArguments, optional bool) *ast.Expression {
	argumentList := p.parseArgumentList()
	call := p.alloc.CallExpression(p.prevEnd, callee, argumentList, optional)
	call.TypeArguments = typeArguments
	return p.alloc.Expression(call)
}

func (p *parser) parseDotMember(left *ast.Expression, optional bool) *ast.Expression {
	if p.at(token.PrivateIdentifier) {
		span := p.token.Span()
		name := p.value()
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.PrivateDotExpression{
			Span:       p.spanFrom(left.Idx0()),
			Left:       left,
			Identifier: node(&p.alloc, ast.PrivateIdentifier{Span: span, Name: name}),
			Optional:   optional,
		}))
	}

	property := p.alloc.Expression(p.parseIdentifierName())
	return p.alloc.Expression(p.alloc.MemberExpression(p.prevEnd, left, property, false, optional))
}

func (p *parser) parseBracketMember(left *ast.Expression, optional bool) *ast.Expression {
	p.expect(token.LeftBracket)
	allowIn := p.scope.allowIn
	p.scope.allowIn = true
	member := p.parseExpression()
	p.scope.allowIn = allowIn
	p.expect(token.RightBracket)
	return p.alloc.Expression(p.alloc.MemberExpression(p.prevEnd, left, member, true, optional))
}

func (p *parser) parseNewExpression() *ast.Expression {
	start := p.token.Start
	meta := p.parseIdentifierName() // new
	if p.eat(token.Period) {
		if !p.at(token.Target) {
			p.errorExpected(token.Target)
			return p.alloc.InvalidExpression(p.spanFrom(start))
		}
		property := p.parseIdentifierName()
		if !p.scope.allowNewTarget {
			p.error(p.spanFrom(start), errNewTarget)
		}
		return p.alloc.Expression(node(&p.alloc, ast.MetaProperty{
			Span:     p.spanFrom(start),
			Meta:     meta,
			Property: property,
		}))
	}

	var callee *ast.Expression
	if p.at(token.New) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimaryExpression()
	}
	callee = p.parseMemberTail(callee, false)

	n := ast.NewExpression{Callee: callee}
	if p.ts && p.at(token.Less) {
		n.TypeArguments = p.tryParseTypeArgumentsInExpression()
	}
	if p.at(token.LeftParenthesis) {
		n.ArgumentList = p.parseArgumentList()
	}
	n.Span = p.spanFrom(start)
	return p.alloc.Expression(node(&p.alloc, n))
}

func (p *parser) parseLeftHandSideExpressionAllowCall() *ast.Expression {
	allowIn := p.scope.allowIn
	p.scope.allowIn = true

	var left *ast.Expression
	if p.at(token.New) {
		left = p.parseNewExpression()
	} else {
		left = p.parsePrimaryExpression()
	}
	left = p.parseMemberTail(left, true)

	p.scope.allowIn = allowIn
	return left
}

// parseMemberTail parses the member accesses, calls (with allowCall),
// tagged templates and TypeScript postfix operators following left.
func (p *parser) parseMemberTail(left *ast.Expression, allowCall bool) *ast.Expression {
	optionalChain := false
L:
	for {
		switch p.token.Kind {
		case token.Period:
			p.next()
			left = p.parseDotMember(left, false)
		case token.LeftBracket:
			left = p.parseBracketMember(left, false)
		case token.LeftParenthesis:
			if !allowCall {
				break L
			}
			left = p.parseCallExpression(left, nil, false)
		case token.NoSubstitutionTemplate, token.TemplateHead:
			if optionalChain {
				p.error(p.token.Span(), errTemplateOptional)
			}
			left = p.alloc.Expression(p.parseTemplateLiteral(left))
		case token.QuestionDot:
			if !allowCall {
				break L
			}
			optionalChain = true
			p.next()
			switch {
			case p.at(token.LeftBracket):
				left = p.parseBracketMember(left, true)
			case p.at(token.LeftParenthesis):
				left = p.parseCallExpression(left, nil, true)
			case p.ts && p.at(token.Less):
				typeArguments := p.parseTSTypeArguments()
				left = p.parseCallExpression(left, typeArguments, true)
			default:
				left = p.parseDotMember(left, true)
			}
		case token.Not:
			if !p.ts || p.token.OnNewLine {
				break L
			}
			p.next()
			left = p.alloc.Expression(node(&p.alloc, ast.TSNonNullExpression{
				Span:       p.spanFrom(left.Idx0()),
				Expression: left,
			}))
		case token.Less, token.ShiftLeft:
			if !p.ts || !allowCall {
				break L
			}
			typeArguments := p.tryParseTypeArgumentsInExpression()
			if typeArguments == nil {
				break L
			}
			if p.at(token.LeftParenthesis) {
				left = p.parseCallExpression(left, typeArguments, false)
			} else {
				tmpl := p.parseTemplateLiteral(left)
				tmpl.TypeArguments = typeArguments
				left = p.alloc.Expression(tmpl)
			}
		default:
			break L
		}
	}

	if optionalChain {
		left = p.alloc.Expression(node(&p.alloc, ast.OptionalChain{
			Span: ast.SpanOf(left),
			Base: left,
		}))
	}
	return left
}

func (p *parser) parseUpdateExpression() *ast.Expression {
	start := p.token.Start
	switch p.token.Kind {
	case token.Increment, token.Decrement:
		op := p.token.Kind
		p.next()
		operand := p.parseUnaryExpression()
		if !p.isSimpleAssignmentTarget(operand) {
			p.error(ast.SpanOf(operand), errInvalidAssignment)
		}
		return p.alloc.Expression(node(&p.alloc, ast.UpdateExpression{
			Span:     p.spanFrom(start),
			Operator: op,
			Operand:  operand,
		}))
	}

	operand := p.parseLeftHandSideExpressionAllowCall()
	if (p.at(token.Increment) || p.at(token.Decrement)) && !p.token.OnNewLine {
		op := p.token.Kind
		if !p.isSimpleAssignmentTarget(operand) {
			p.error(ast.SpanOf(operand), errInvalidAssignment)
		}
		p.next()
		return p.alloc.Expression(node(&p.alloc, ast.UpdateExpression{
			Span:     p.spanFrom(operand.Idx0()),
			Operator: op,
			Operand:  operand,
			Postfix:  true,
		}))
	}
	return operand
}

func (p *parser) parseUnaryExpression() *ast.Expression {
	p.enterNesting()
	defer p.leaveNesting()
	start := p.token.Start
	switch p.token.Kind {
	case token.Plus, token.Minus, token.Not, token.BitwiseNot,
		token.Delete, token.Void, token.Typeof:
		op := p.token.Kind
		p.next()
		operand := p.parseUnaryExpression()
		if op == token.Delete && p.scope.strict {
			if _, ok := operand.Expr.(*ast.Identifier); ok {
				p.error(p.spanFrom(start), errStrictDelete)
			}
		}
		return p.alloc.Expression(node(&p.alloc, ast.UnaryExpression{
			Span:     p.spanFrom(start),
			Operator: op,
			Operand:  operand,
		}))
	case token.Await:
		if p.scope.allowAwait {
			p.next()
			if p.scope.inFuncParams {
				p.error(p.spanFrom(start), errAwaitInParams)
			}
			argument := p.parseUnaryExpression()
			return p.alloc.Expression(node(&p.alloc, ast.AwaitExpression{
				Span:     p.spanFrom(start),
				Argument: argument,
			}))
		}
	case token.Less:
		if p.ts && !p.jsx {
			return p.parseTSTypeAssertion()
		}
	}

	return p.parseUpdateExpression()
}

func (p *parser) parseBinaryExpressionOrHigher(minPrecedence Precedence) *ast.Expression {
	start := p.token.Start

	var lhs *ast.Expression
	if p.scope.allowIn && p.at(token.PrivateIdentifier) {
		lhs = p.parsePrivateInExpression(minPrecedence)
	} else {
		lhs = p.parseUnaryExpression()
	}

	return p.parseBinaryExpressionRest(lhs, lhs.Idx0() != start, minPrecedence)
}

func (p *parser) parseBinaryExpressionRest(lhs *ast.Expression, lhsParenthesized bool, minPrecedence Precedence) *ast.Expression {
	for {
		kind := p.token.Kind

		if p.ts && (kind == token.As || kind == token.Satisfies) && !p.token.OnNewLine {
			if PrecedenceCompare <= minPrecedence {
				break
			}
			p.next()
			typ := p.parseTSType()
			if kind == token.As {
				lhs = p.alloc.Expression(node(&p.alloc, ast.TSAsExpression{
					Span:       p.spanFrom(lhs.Idx0()),
					Expression: lhs,
					Type:       typ,
				}))
			} else {
				lhs = p.alloc.Expression(node(&p.alloc, ast.TSSatisfiesExpression{
					Span:       p.spanFrom(lhs.Idx0()),
					Expression: lhs,
					Type:       typ,
				}))
			}
			lhsParenthesized = false
			continue
		}

		lbp := kindToPrecedence(kind)

		if lbp <= minPrecedence {
			break
		}

		if kind == token.In && !p.scope.allowIn {
			break
		}

		p.next()

		rhsStart := p.token.Start
		rhs := p.parseBinaryExpressionOrHigher(lbp ^ 1)
		rhsParenthesized := rhs.Idx0() != rhsStart

		if isLogicalOperator(kind) {
			if kind == token.Coalesce {
				if isLogicalAndOr(rhs) && !rhsParenthesized || isLogicalAndOr(lhs) && !lhsParenthesized {
					p.error(spanOf(lhs, rhs), errMixedCoalesce, diagnosticsHelpParens)
				}
			}
		} else if kind == token.Exponent && !lhsParenthesized {
			switch lhs.Expr.(type) {
			case *ast.UnaryExpression, *ast.AwaitExpression:
				p.error(ast.SpanOf(lhs), errUnaryBeforeExponent, diagnosticsHelpParens)
			}
		}
		lhs = p.alloc.Expression(p.alloc.BinaryExpression(kind, lhs, rhs))

		lhsParenthesized = false
	}

	return lhs
}

func isLogicalAndOr(e *ast.Expression) bool {
	b, ok := e.Expr.(*ast.BinaryExpression)
	return ok && (b.Operator == token.LogicalAnd || b.Operator == token.LogicalOr)
}

func (p *parser) parsePrivateInExpression(minPrecedence Precedence) *ast.Expression {
	span := p.token.Span()
	left := p.alloc.Expression(node(&p.alloc, ast.PrivateIdentifier{Span: span, Name: p.value()}))
	p.next()

	if !p.at(token.In) || PrecedenceCompare <= minPrecedence {
		p.errorUnexpectedToken()
		return left
	}

	p.next()
	rhs := p.parseBinaryExpressionOrHigher(PrecedenceCompare)
	return p.alloc.Expression(p.alloc.BinaryExpression(token.In, left, rhs))
}

func (p *parser) parseConditionalExpression() *ast.Expression {
	left := p.parseBinaryExpressionOrHigher(PrecedenceLowest)

	if !p.at(token.QuestionMark) {
		return left
	}
	p.next()
	allowIn := p.scope.allowIn
	p.scope.allowIn = true
	consequent := p.parseAssignmentExpression()
	p.scope.allowIn = allowIn
	p.expect(token.Colon)
	alternate := p.parseAssignmentExpression()
	return p.alloc.Expression(node(&p.alloc, ast.ConditionalExpression{
		Span:       spanOf(left, alternate),
		Test:       left,
		Consequent: consequent,
		Alternate:  alternate,
	}))
}

func (p *parser) parseAssignmentExpression() *ast.Expression {
	p.enterNesting()
	defer p.leaveNesting()
	start := p.token.Start
	switch p.token.Kind {
	case token.Yield:
		if p.scope.allowYield {
			return p.parseYieldExpression()
		}
	case token.LeftParenthesis:
		if arrow := p.tryParseArrowFunction(start, nil, false); arrow != nil {
			return arrow
		}
	case token.Async:
		if arrow := p.tryParseAsyncArrowFunction(start); arrow != nil {
			return arrow
		}
	case token.Less:
		if p.ts && !p.jsx {
			if arrow := p.tryParseGenericArrowFunction(start, false); arrow != nil {
				return arrow
			}
		}
	}

	left := p.parseConditionalExpression()

	if p.at(token.Arrow) {
		if id, ok := left.Expr.(*ast.Identifier); ok && id.Start == start {
			return p.parseArrowFunction(start, nil, p.singleParameter(id), nil, false)
		}
		p.error(ast.SpanOf(left), errMalformedArrow)
		p.next()
		p.parseArrowFunctionBody(false)
		return p.alloc.InvalidExpression(p.spanFrom(start))
	}

	if token.Assignment(p.token.Kind) {
		op := p.token.Kind
		left = p.reinterpretAsAssignmentTarget(left, op, left.Idx0() != start)
		p.next()
		right := p.parseAssignmentExpression()
		return p.alloc.Expression(p.alloc.AssignExpression(op, left, right))
	}

	return left
}

func (p *parser) parseYieldExpression() *ast.Expression {
	start := p.token.Start
	p.next()

	if p.scope.inFuncParams {
		p.error(p.spanFrom(start), errYieldInParams)
	}

	n := ast.YieldExpression{}
	if !p.token.OnNewLine && p.eat(token.Multiply) {
		n.Delegate = true
		n.Argument = p.parseAssignmentExpression()
	} else if !p.token.OnNewLine {
		switch p.token.Kind {
		case token.RightParenthesis, token.RightBracket, token.RightBrace,
			token.Comma, token.Colon, token.Semicolon, token.Eof, token.In, token.Of:
		default:
			n.Argument = p.parseAssignmentExpression()
		}
	}
	n.Span = p.spanFrom(start)
	return p.alloc.Expression(node(&p.alloc, n))
}

func (p *parser) parseExpression() *ast.Expression {
	left := p.parseAssignmentExpression()

	if !p.at(token.Comma) {
		return left
	}
	mark := len(p.exprBuf)
	p.exprBuf = append(p.exprBuf, *left)
	for p.eat(token.Comma) {
		expr := p.parseAssignmentExpression()
		p.exprBuf = append(p.exprBuf, *expr)
	}
	sequence := finish(&p.alloc, &p.exprBuf, mark)
	return p.alloc.Expression(node(&p.alloc, ast.SequenceExpression{
		Span:     p.spanFrom(left.Idx0()),
		Sequence: sequence,
	}))
}
