package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

func (p *parser) parseFunctionDeclaration(declare bool) ast.Stmt {
	start := p.token.Start
	fn := p.parseFunction(true, false, start)
	return node(&p.alloc, ast.FunctionDeclaration{
		Span:     fn.Span,
		Function: fn,
		Declare:  declare,
	})
}

// parseFunction parses a function declaration or expression starting at
// async or function. With optionalName, a declaration may be anonymous, as
// after export default.
func (p *parser) parseFunction(declaration, optionalName bool, start ast.Idx) *ast.FunctionLiteral {
	async := p.eat(token.Async)
	p.expect(token.Function)
	generator := p.eat(token.Multiply)

	n := ast.FunctionLiteral{Async: async, Generator: generator}

	if !p.at(token.LeftParenthesis) && !(p.ts && p.at(token.Less)) {
		if declaration {
			n.Name = p.parseBindingIdentifier()
		} else {
			// The name of a function expression is scoped to the function.
			allowAwait, allowYield := p.scope.allowAwait, p.scope.allowYield
			p.scope.allowAwait, p.scope.allowYield = async, generator
			n.Name = p.parseBindingIdentifier()
			p.scope.allowAwait, p.scope.allowYield = allowAwait, allowYield
		}
	} else if declaration && !optionalName {
		p.errorExpected(token.Identifier)
	}

	allowSuperCall := p.scope.allowSuperCall
	p.scope.allowSuperCall = false
	p.parseFunctionRest(&n)
	p.scope.allowSuperCall = allowSuperCall
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

// parseFunctionRest parses the type parameters, parameters, return type
// and body of n.
func (p *parser) parseFunctionRest(n *ast.FunctionLiteral) {
	if p.ts && p.at(token.Less) {
		n.TypeParameters = p.parseTSTypeParameters()
	}

	allowAwait, allowYield := p.scope.allowAwait, p.scope.allowYield
	p.scope.allowAwait, p.scope.allowYield = n.Async, n.Generator
	n.ParameterList = p.parseFunctionParameterList()
	p.scope.allowAwait, p.scope.allowYield = allowAwait, allowYield

	if p.ts && p.at(token.Colon) {
		n.ReturnType = p.parseTSTypeAnnotation()
	}

	switch {
	case p.at(token.LeftBrace):
		n.Body = p.parseFunctionBody(n.Async, n.Generator, false)
	case p.ts:
		// Overload signature or ambient declaration.
		p.semicolon()
	default:
		p.errorExpected(token.LeftBrace)
	}
}

func (p *parser) parseFunctionBody(async, generator, arrow bool) *ast.BlockStatement {
	start := p.token.Start
	p.openScope()
	p.scope.inFunction = true
	p.scope.inAsync = async
	p.scope.allowAwait = async
	p.scope.allowYield = generator
	if !arrow {
		p.scope.allowNewTarget = true
	}

	p.expect(token.LeftBrace)
	list := p.parseStatementList(false, true, nil)
	p.expect(token.RightBrace)
	p.closeScope()

	return p.alloc.BlockStatement(p.spanFrom(start), list)
}

func (p *parser) parseFunctionParameterList() *ast.ParameterList {
	start := p.token.Start
	p.expect(token.LeftParenthesis)

	inFuncParams, allowIn := p.scope.inFuncParams, p.scope.allowIn
	p.scope.inFuncParams, p.scope.allowIn = true, true

	mark := len(p.declBuf)
	var rest *ast.Expression
	for !p.at(token.RightParenthesis) && !p.at(token.Eof) {
		if p.at(token.Ellipsis) {
			restStart := p.token.Start
			p.next()
			rest = p.alloc.Expression(p.parseBindingTarget())
			if p.ts && p.at(token.Colon) {
				// The annotation of a rest parameter is not kept.
				p.parseTSTypeAnnotation()
			}
			if p.at(token.Comma) {
				p.error(p.spanFrom(restStart), errRestNotLast)
			}
			break
		}
		param := p.parseFormalParameter()
		p.declBuf = append(p.declBuf, param)
		if !p.at(token.RightParenthesis) && !p.expect(token.Comma) {
			break
		}
	}
	list := finish(&p.alloc, &p.declBuf, mark)

	p.scope.inFuncParams, p.scope.allowIn = inFuncParams, allowIn
	p.expect(token.RightParenthesis)

	return node(&p.alloc, ast.ParameterList{
		Span: p.spanFrom(start),
		List: list,
		Rest: rest,
	})
}

// isParameterModifier reports whether the current token is a TypeScript
// parameter property modifier rather than the parameter's name.
func (p *parser) isParameterModifier() bool {
	switch p.token.Kind {
	case token.Public, token.Private, token.Protected, token.Readonly:
	case token.Identifier:
		if p.value() != "override" {
			return false
		}
	default:
		return false
	}
	next := p.peek()
	return next.Kind == token.LeftBrace || next.Kind == token.LeftBracket || token.ID(next.Kind)
}

func (p *parser) parseFormalParameter() ast.VariableDeclarator {
	start := p.token.Start
	if p.ts {
		// Parameter properties are accepted, their modifiers are not kept.
		for p.isParameterModifier() {
			p.next()
		}
	}

	var target ast.Target
	if p.ts && p.at(token.This) {
		target = p.alloc.Identifier(p.token.Span(), "this")
		p.next()
	} else {
		target = p.parseBindingTarget()
	}
	n := ast.VariableDeclarator{Target: p.alloc.BindingTarget(target)}

	if p.ts {
		if p.at(token.QuestionMark) {
			n.Optional = true
			p.next()
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

// parseMethod parses the function part of an object or class method,
// starting at its parameters.
func (p *parser) parseMethod(kind ast.PropertyKind, async, generator bool) *ast.FunctionLiteral {
	start := p.token.Start
	n := ast.FunctionLiteral{Async: async, Generator: generator}
	allowSuperCall := p.scope.allowSuperCall
	p.scope.allowSuperCall = kind == ast.PropertyKindConstructor && p.derivedClass
	p.parseFunctionRest(&n)
	p.scope.allowSuperCall = allowSuperCall

	params := n.ParameterList
	switch kind {
	case ast.PropertyKindGet:
		if len(params.List) != 0 || params.Rest != nil {
			p.error(params.Span, errGetterParams)
		}
	case ast.PropertyKindSet:
		if len(params.List) != 1 || params.Rest != nil {
			p.error(params.Span, errSetterParams)
		}
	}

	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

// tryParseArrowFunction parses an arrow function whose parameters start at
// the current (. If the parameters turn out to be something else, the
// cursor is left untouched and nil is returned.
func (p *parser) tryParseArrowFunction(start ast.Idx, typeParameters *ast.TSTypeParameters, async bool) *ast.Expression {
	paren := p.token.Start
	if _, ok := p.notArrow[paren]; ok {
		return nil
	}

	c := p.checkpoint()
	params := p.parseFunctionParameterList()
	var returnType *ast.TSTypeAnnotation
	if p.ts && p.at(token.Colon) && !p.failedSince(c) {
		returnType = p.parseTSTypeAnnotation()
	}
	if p.failedSince(c) || !p.at(token.Arrow) {
		p.rewind(c)
		if p.notArrow == nil {
			p.notArrow = make(map[ast.Idx]struct{})
		}
		p.notArrow[paren] = struct{}{}
		return nil
	}

	return p.parseArrowFunction(start, typeParameters, params, returnType, async)
}

func (p *parser) tryParseAsyncArrowFunction(start ast.Idx) *ast.Expression {
	next := p.peek()
	if next.OnNewLine {
		return nil
	}

	c := p.checkpoint()
	switch {
	case next.Kind == token.LeftParenthesis:
		p.next()
		if arrow := p.tryParseArrowFunction(start, nil, true); arrow != nil {
			return arrow
		}
	case p.ts && next.Kind == token.Less:
		p.next()
		if arrow := p.tryParseGenericArrowFunction(start, true); arrow != nil {
			return arrow
		}
	case p.isBindingIdentifier(next.Kind):
		p.next()
		id := p.parseBindingIdentifier()
		if p.at(token.Arrow) && !p.token.OnNewLine {
			return p.parseArrowFunction(start, nil, p.singleParameter(id), nil, true)
		}
	default:
		return nil
	}
	p.rewind(c)
	return nil
}

// tryParseGenericArrowFunction parses <T>(x: T) => x at the current <.
func (p *parser) tryParseGenericArrowFunction(start ast.Idx, async bool) *ast.Expression {
	c := p.checkpoint()
	typeParameters := p.parseTSTypeParameters()
	if !p.failedSince(c) && p.at(token.LeftParenthesis) {
		if arrow := p.tryParseArrowFunction(start, typeParameters, async); arrow != nil {
			return arrow
		}
	}
	p.rewind(c)
	return nil
}

func (p *parser) parseArrowFunction(start ast.Idx, typeParameters *ast.TSTypeParameters, params *ast.ParameterList, returnType *ast.TSTypeAnnotation, async bool) *ast.Expression {
	if p.token.OnNewLine {
		p.error(p.token.Span(), errArrowLineTerminator)
	}
	p.expect(token.Arrow)

	body := p.parseArrowFunctionBody(async)
	return p.alloc.Expression(node(&p.alloc, ast.ArrowFunctionLiteral{
		Span:           p.spanFrom(start),
		TypeParameters: typeParameters,
		ParameterList:  params,
		ReturnType:     returnType,
		Body:           body,
		Async:          async,
	}))
}

func (p *parser) parseArrowFunctionBody(async bool) *ast.ConciseBody {
	if p.at(token.LeftBrace) {
		return node(&p.alloc, ast.ConciseBody{Body: p.parseFunctionBody(async, false, true)})
	}

	inAsync, allowAwait, allowYield := p.scope.inAsync, p.scope.allowAwait, p.scope.allowYield
	p.scope.inAsync, p.scope.allowAwait, p.scope.allowYield = async, async, false
	expr := p.parseAssignmentExpression()
	p.scope.inAsync, p.scope.allowAwait, p.scope.allowYield = inAsync, allowAwait, allowYield

	return node(&p.alloc, ast.ConciseBody{Body: expr})
}
