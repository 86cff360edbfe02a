package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

func (p *parser) parseClassDeclaration(start ast.Idx, declare, abstract bool) ast.Stmt {
	class := p.parseClass(true, false, start, abstract)
	return node(&p.alloc, ast.ClassDeclaration{
		Span:    p.spanFrom(start),
		Class:   class,
		Declare: declare,
	})
}

// parseClass parses a class declaration or expression at the class
// keyword. start is where a leading modifier began.
func (p *parser) parseClass(declaration, optionalName bool, start ast.Idx, abstract bool) *ast.ClassLiteral {
	p.expect(token.Class)

	n := ast.ClassLiteral{Abstract: abstract}
	if p.isBindingIdentifier(p.token.Kind) && !(p.ts && p.at(token.Implements)) {
		n.Name = p.parseBindingIdentifier()
	} else if declaration && !optionalName {
		p.errorExpected(token.Identifier)
	}

	// Class bodies, heritage included, are strict code.
	strict := p.scope.strict
	p.scope.strict = true

	if p.ts && p.at(token.Less) {
		n.TypeParameters = p.parseTSTypeParameters()
	}
	if p.eat(token.Extends) {
		n.SuperClass = p.parseLeftHandSideExpressionAllowCall()
		if p.ts && p.at(token.Less) {
			n.SuperTypeArguments = p.parseTSTypeArguments()
		}
	}
	if p.ts && p.eat(token.Implements) {
		var list []ast.TSType
		for {
			ref := p.parseTSTypeReference()
			list = append(list, *ref)
			if !p.eat(token.Comma) {
				break
			}
		}
		n.Implements = copyOf(&p.alloc, list)
	}

	derived := p.derivedClass
	p.derivedClass = n.SuperClass != nil
	p.expect(token.LeftBrace)
	var body []ast.ClassElement
	for !p.at(token.RightBrace) && !p.at(token.Eof) {
		if p.eat(token.Semicolon) {
			continue
		}
		before := p.token.Start
		if element := p.parseClassElement(); element != nil {
			body = append(body, ast.ClassElement{Element: element})
		}
		if p.token.Start == before {
			p.errorUnexpectedToken()
			p.next()
		}
	}
	n.Body = copyOf(&p.alloc, body)
	p.expect(token.RightBrace)
	p.derivedClass = derived

	p.scope.strict = strict
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

// classModifier returns the modifier at the cursor, if it is followed by
// something that can continue a class member.
func (p *parser) classModifier() (token.Token, bool) {
	kind := p.token.Kind
	switch kind {
	case token.Static:
	case token.Public, token.Private, token.Protected, token.Readonly,
		token.Abstract, token.Declare:
		if !p.ts {
			return 0, false
		}
	case token.Identifier:
		if !p.ts || p.value() != "override" {
			return 0, false
		}
	default:
		return 0, false
	}
	next := p.peek()
	if next.Kind == token.LeftBrace && kind == token.Static {
		return kind, true
	}
	return kind, isPropertyKeyStart(next.Kind)
}

func (p *parser) parseClassElement() ast.Element {
	start := p.token.Start

	var mods ast.Modifiers
	static := false
	for {
		kind, ok := p.classModifier()
		if !ok {
			break
		}
		switch kind {
		case token.Static:
			if p.peek().Kind == token.LeftBrace {
				p.next()
				return p.parseClassStaticBlock(start)
			}
			static = true
		case token.Public, token.Private, token.Protected:
			mods.Accessibility = p.raw()
		case token.Readonly:
			mods.Readonly = true
		case token.Abstract:
			mods.Abstract = true
		case token.Declare:
			mods.Declare = true
		case token.Identifier:
			mods.Override = true
		}
		p.next()
	}

	kind := ast.PropertyKindMethod
	async, generator := false, false
	switch p.token.Kind {
	case token.Async, token.Get, token.Set:
		next := p.peek()
		if !isPropertyKeyStart(next.Kind) || next.OnNewLine {
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

	key, computed := p.parsePropertyKey()
	name, named := propertyName(key, computed)

	optional := false
	if p.ts && p.at(token.QuestionMark) {
		optional = true
		p.next()
	}

	if async || generator || kind != ast.PropertyKindMethod || p.at(token.LeftParenthesis) || p.ts && p.at(token.Less) {
		if named && name == "constructor" && !static {
			switch {
			case kind == ast.PropertyKindGet || kind == ast.PropertyKindSet:
				p.errorf(ast.SpanOf(key), errConstructorKind, "an accessor")
			case async:
				p.errorf(ast.SpanOf(key), errConstructorKind, "an async method")
			case generator:
				p.errorf(ast.SpanOf(key), errConstructorKind, "a generator")
			default:
				kind = ast.PropertyKindConstructor
			}
		}
		if named && static && name == "prototype" {
			p.error(ast.SpanOf(key), errStaticPrototype)
		}
		fn := p.parseMethod(kind, async, generator)
		return node(&p.alloc, ast.MethodDefinition{
			Span:      p.spanFrom(start),
			Modifiers: mods,
			Key:       key,
			Kind:      kind,
			Body:      fn,
			Computed:  computed,
			Static:    static,
			Optional:  optional,
		})
	}

	if named {
		if name == "constructor" {
			p.error(ast.SpanOf(key), errConstructorField)
		} else if static && name == "prototype" {
			p.error(ast.SpanOf(key), errStaticPrototype)
		}
	}

	n := ast.FieldDefinition{
		Modifiers: mods,
		Key:       key,
		Computed:  computed,
		Static:    static,
		Optional:  optional,
	}
	if p.ts {
		if p.at(token.Not) {
			p.next()
		}
		if p.at(token.Colon) {
			n.TypeAnnotation = p.parseTSTypeAnnotation()
		}
	}
	if p.eat(token.Assign) {
		n.Initializer = p.parseFieldInitializer()
	}
	p.semicolon()
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

// parseFieldInitializer parses a field's value, which is evaluated like a
// method body.
func (p *parser) parseFieldInitializer() *ast.Expression {
	p.openScope()
	p.scope.inFunction = true
	p.scope.allowNewTarget = true
	p.scope.allowSuperCall = false
	expr := p.parseAssignmentExpression()
	p.closeScope()
	return expr
}

func (p *parser) parseClassStaticBlock(start ast.Idx) *ast.ClassStaticBlock {
	p.openScope()
	p.scope.allowNewTarget = true
	p.scope.allowSuperCall = false
	block := p.parseBlockStatement()
	p.closeScope()
	return node(&p.alloc, ast.ClassStaticBlock{
		Span:  p.spanFrom(start),
		Block: block,
	})
}

// propertyName returns the static name of a property key.
func propertyName(key *ast.Expression, computed bool) (string, bool) {
	if computed {
		return "", false
	}
	switch k := key.Expr.(type) {
	case *ast.Identifier:
		return k.Name, true
	case *ast.StringLiteral:
		return k.Value, true
	}
	return "", false
}
