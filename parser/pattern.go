package parser

import (
	"strings"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

// isSimpleAssignmentTarget reports whether expr can be the operand of an
// update or compound assignment.
func (p *parser) isSimpleAssignmentTarget(expr *ast.Expression) bool {
	switch e := expr.Expr.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.PrivateDotExpression:
		return true
	case *ast.TSAsExpression, *ast.TSSatisfiesExpression, *ast.TSNonNullExpression, *ast.TSTypeAssertion:
		return p.ts
	case *ast.ParenthesizedExpression:
		return p.isSimpleAssignmentTarget(e.Expression)
	}
	return false
}

// reinterpretAsAssignmentTarget checks the left side of an assignment,
// turning array and object literals into patterns for plain =.
func (p *parser) reinterpretAsAssignmentTarget(left *ast.Expression, op token.Token, parenthesized bool) *ast.Expression {
	switch e := left.Expr.(type) {
	case *ast.InvalidExpression:
		return left
	case *ast.ArrayLiteral:
		if op == token.Assign && !parenthesized {
			return p.reinterpretAsArrayAssignmentPattern(e)
		}
	case *ast.ObjectLiteral:
		if op == token.Assign && !parenthesized {
			return p.reinterpretAsObjectAssignmentPattern(e)
		}
	default:
		if p.isSimpleAssignmentTarget(left) {
			return left
		}
	}
	p.error(ast.SpanOf(left), errInvalidAssignment)
	return p.alloc.InvalidExpression(ast.SpanOf(left))
}

func (p *parser) reinterpretAsArrayAssignmentPattern(left *ast.ArrayLiteral) *ast.Expression {
	elements := left.Value
	var rest *ast.Expression
	for i := range elements {
		element := &elements[i]
		switch e := element.Expr.(type) {
		case nil:
			// hole
		case *ast.SpreadElement:
			if i != len(elements)-1 {
				p.error(e.Span, errRestNotLast)
				return p.alloc.InvalidExpression(left.Span)
			}
			if strings.IndexByte(p.str[e.End:left.End], ',') >= 0 {
				p.error(e.Span, errRestTrailingComma)
			}
			rest = p.reinterpretAsDestructAssignTarget(e.Expression)
			elements = elements[:i]
		default:
			element.Expr = p.reinterpretAsAssignmentElement(element).Expr
		}
	}
	return p.alloc.Expression(node(&p.alloc, ast.ArrayPattern{
		Span:     left.Span,
		Elements: elements,
		Rest:     rest,
	}))
}

func (p *parser) reinterpretAsObjectAssignmentPattern(left *ast.ObjectLiteral) *ast.Expression {
	properties := left.Value
	var rest *ast.Expression
	for i := range properties {
		switch prop := properties[i].Prop.(type) {
		case *ast.PropertyKeyed:
			if prop.Kind != ast.PropertyKindValue {
				p.error(prop.Span, errInvalidDestructuring)
				return p.alloc.InvalidExpression(left.Span)
			}
			prop.Value = p.reinterpretAsAssignmentElement(prop.Value)
		case *ast.PropertyShort:
		case *ast.SpreadElement:
			if i != len(properties)-1 {
				p.error(prop.Span, errRestNotLast)
				return p.alloc.InvalidExpression(left.Span)
			}
			if !p.isSimpleAssignmentTarget(prop.Expression) {
				p.error(ast.SpanOf(prop.Expression), errInvalidDestructuring)
			}
			rest = prop.Expression
			properties = properties[:i]
		}
	}
	return p.alloc.Expression(node(&p.alloc, ast.ObjectPattern{
		Span:       left.Span,
		Properties: properties,
		Rest:       rest,
	}))
}

// reinterpretAsAssignmentElement handles an element of a destructuring
// assignment, where a default value is written as an assignment.
func (p *parser) reinterpretAsAssignmentElement(expr *ast.Expression) *ast.Expression {
	if assign, ok := expr.Expr.(*ast.AssignExpression); ok {
		if assign.Operator == token.Assign {
			assign.Left = p.reinterpretAsDestructAssignTarget(assign.Left)
			return expr
		}
		p.error(assign.Span, errInvalidDestructuring)
		return p.alloc.InvalidExpression(assign.Span)
	}
	return p.reinterpretAsDestructAssignTarget(expr)
}

func (p *parser) reinterpretAsDestructAssignTarget(expr *ast.Expression) *ast.Expression {
	switch e := expr.Expr.(type) {
	case *ast.ArrayLiteral:
		return p.reinterpretAsArrayAssignmentPattern(e)
	case *ast.ObjectLiteral:
		return p.reinterpretAsObjectAssignmentPattern(e)
	case *ast.ArrayPattern, *ast.ObjectPattern, *ast.InvalidExpression:
		return expr
	}
	if p.isSimpleAssignmentTarget(expr) {
		return expr
	}
	p.error(ast.SpanOf(expr), errInvalidDestructuring)
	return p.alloc.InvalidExpression(ast.SpanOf(expr))
}

// singleParameter is the parameter list of x => ...
func (p *parser) singleParameter(id *ast.Identifier) *ast.ParameterList {
	list := allocSlice[ast.VariableDeclarator](&p.alloc, 1)
	list[0] = ast.VariableDeclarator{Span: id.Span, Target: p.alloc.BindingTarget(id)}
	return node(&p.alloc, ast.ParameterList{Span: id.Span, List: list})
}
