package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

// parseJSXElement parses an element or fragment at the current <. A nested
// element, one that is a child of another, leaves its final > as the
// current token: what follows is scanned as element content by the caller.
func (p *parser) parseJSXElement(nested bool) *ast.Expression {
	p.enterNesting()
	defer p.leaveNesting()
	start := p.token.Start
	p.next() // <

	if p.atGreater() {
		children := p.parseJSXChildren()
		p.parseJSXClosing(nil)
		end := p.token.End
		p.finishJSXTag(nested)
		return p.alloc.Expression(node(&p.alloc, ast.JSXFragment{
			Span:     ast.Span{Start: start, End: end},
			Children: children,
		}))
	}

	opening := ast.JSXOpeningElement{Name: p.parseJSXElementName()}
	if p.ts && p.at(token.Less) {
		opening.TypeArguments = p.parseTSTypeArguments()
	}

	var attributes []ast.JSXAttr
	for !p.at(token.Slash) && !p.atGreater() {
		attr := p.parseJSXAttribute()
		if attr == nil {
			break
		}
		attributes = append(attributes, attr)
	}
	opening.Attributes = copyOf(&p.alloc, attributes)

	n := ast.JSXElement{}
	if p.eat(token.Slash) {
		opening.SelfClosing = true
		if !p.atGreater() {
			p.errorExpected(token.Greater)
		}
		opening.Span = ast.Span{Start: start, End: p.token.End}
		n.Opening = node(&p.alloc, opening)
		n.Span = opening.Span
		p.finishJSXTag(nested)
		return p.alloc.Expression(node(&p.alloc, n))
	}
	if !p.atGreater() {
		p.errorExpected(token.Greater)
		opening.Span = p.spanFrom(start)
		n.Opening = node(&p.alloc, opening)
		n.Span = opening.Span
		return p.alloc.Expression(node(&p.alloc, n))
	}
	opening.Span = ast.Span{Start: start, End: p.token.End}
	n.Opening = node(&p.alloc, opening)

	n.Children = p.parseJSXChildren()
	n.Closing = p.parseJSXClosing(opening.Name)
	n.Span = ast.Span{Start: start, End: p.token.End}
	p.finishJSXTag(nested)
	return p.alloc.Expression(node(&p.alloc, n))
}

// finishJSXTag moves past the > ending the outermost element.
func (p *parser) finishJSXTag(nested bool) {
	if !nested && p.at(token.Greater) {
		p.next()
	}
}

// parseJSXChildren parses element content after the > of an opening tag, up
// to the < of the closing tag.
func (p *parser) parseJSXChildren() []ast.JSXChild {
	var children []ast.JSXChild
	for {
		p.prevEnd = p.token.End
		p.sync(p.scanner.ReadJSXChild())

		switch p.token.Kind {
		case token.JSXText:
			children = append(children, node(&p.alloc, ast.JSXText{
				Span:  p.token.Span(),
				Value: p.raw(),
			}))
		case token.LeftBrace:
			start := p.token.Start
			p.next()
			var expr *ast.Expression
			if !p.at(token.RightBrace) {
				expr = p.parseExpression()
			}
			if !p.at(token.RightBrace) {
				p.errorExpected(token.RightBrace)
				return copyOf(&p.alloc, children)
			}
			children = append(children, node(&p.alloc, ast.JSXExpressionContainer{
				Span:       ast.Span{Start: start, End: p.token.End},
				Expression: expr,
			}))
		case token.Less:
			if p.peek().Kind == token.Slash {
				return copyOf(&p.alloc, children)
			}
			child := p.parseJSXElement(true)
			if !p.at(token.Greater) {
				return copyOf(&p.alloc, children)
			}
			children = append(children, child.Expr.(ast.JSXChild))
		default:
			p.errorUnexpectedToken()
			return copyOf(&p.alloc, children)
		}
	}
}

// parseJSXClosing parses a closing tag at its <, leaving the final > as
// the current token. A nil name expects the closing tag of a fragment.
func (p *parser) parseJSXClosing(name *ast.JSXName) *ast.JSXClosingElement {
	start := p.token.Start
	if !p.at(token.Less) {
		// Reported by parseJSXChildren.
		return nil
	}
	p.next() // <
	p.expect(token.Slash)

	n := ast.JSXClosingElement{}
	if !p.atGreater() {
		n.Name = p.parseJSXElementName()
	}
	switch {
	case name == nil && n.Name != nil:
		p.errorf(n.Name.Span, errJSXClosingTag, "")
	case name != nil && (n.Name == nil || n.Name.Name != name.Name):
		p.errorf(p.spanFrom(start), errJSXClosingTag, name.Name)
	}
	if !p.atGreater() {
		p.errorExpected(token.Greater)
	}
	n.Span = ast.Span{Start: start, End: p.token.End}
	return node(&p.alloc, n)
}

// parseJSXIdentifier parses one part of a tag or attribute name, which may
// contain dashes.
func (p *parser) parseJSXIdentifier() bool {
	if !token.ID(p.token.Kind) {
		p.errorExpected(token.Identifier)
		return false
	}
	p.sync(p.scanner.ReadJSXIdentifierTail())
	p.next()
	return true
}

// parseJSXElementName parses a, a.b.c or a:b.
func (p *parser) parseJSXElementName() *ast.JSXName {
	start := p.token.Start
	if p.parseJSXIdentifier() {
		if p.eat(token.Colon) {
			p.parseJSXIdentifier()
		} else {
			for p.eat(token.Period) {
				if !p.parseJSXIdentifier() {
					break
				}
			}
		}
	}
	span := p.spanFrom(start)
	return node(&p.alloc, ast.JSXName{Span: span, Name: p.str[span.Start:span.End]})
}

func (p *parser) parseJSXAttribute() ast.JSXAttr {
	start := p.token.Start
	if p.at(token.LeftBrace) {
		p.next()
		p.expect(token.Ellipsis)
		argument := p.parseAssignmentExpression()
		p.expect(token.RightBrace)
		return node(&p.alloc, ast.JSXSpreadAttribute{Span: p.spanFrom(start), Argument: argument})
	}
	if !token.ID(p.token.Kind) {
		p.errorUnexpectedToken()
		return nil
	}

	p.parseJSXIdentifier()
	if p.eat(token.Colon) {
		p.parseJSXIdentifier()
	}
	nameSpan := p.spanFrom(start)
	n := ast.JSXAttribute{Name: node(&p.alloc, ast.JSXName{
		Span: nameSpan,
		Name: p.str[nameSpan.Start:nameSpan.End],
	})}

	if p.at(token.Assign) {
		p.prevEnd = p.token.End
		p.sync(p.scanner.NextJSXAttributeValue())
		switch p.token.Kind {
		case token.String:
			lit := p.alloc.StringLiteral(p.token.Span(), p.value(), p.raw())
			p.next()
			n.Value = p.alloc.Expression(lit)
		case token.LeftBrace:
			containerStart := p.token.Start
			p.next()
			expr := p.parseAssignmentExpression()
			p.expect(token.RightBrace)
			n.Value = p.alloc.Expression(node(&p.alloc, ast.JSXExpressionContainer{
				Span:       p.spanFrom(containerStart),
				Expression: expr,
			}))
		case token.Less:
			n.Value = p.parseJSXElement(false)
		default:
			p.errorUnexpectedToken()
		}
	}
	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}
