package parser

import (
	"github.com/t14raptor/jsarena/allocator"
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

// nodeAllocator keeps the typed slabs of the nodes the parser creates most
// often, so the hot paths skip the allocator's type lookup. Every node lives
// in the arena passed to Parse.
type nodeAllocator struct {
	arena *allocator.Allocator

	// Wrapper types.
	expr *allocator.Slab[ast.Expression]
	stmt *allocator.Slab[ast.Statement]

	// Concrete expression nodes.
	ident     *allocator.Slab[ast.Identifier]
	strLit    *allocator.Slab[ast.StringLiteral]
	numLit    *allocator.Slab[ast.NumberLiteral]
	binExpr   *allocator.Slab[ast.BinaryExpression]
	assignExp *allocator.Slab[ast.AssignExpression]
	memberExp *allocator.Slab[ast.MemberExpression]
	callExpr  *allocator.Slab[ast.CallExpression]
	propKeyed *allocator.Slab[ast.PropertyKeyed]

	// Statement nodes.
	exprStmt  *allocator.Slab[ast.ExpressionStatement]
	blockStmt *allocator.Slab[ast.BlockStatement]
	varDecl   *allocator.Slab[ast.VariableDeclaration]
	bindTgt   *allocator.Slab[ast.BindingTarget]
}

func newNodeAllocator(a *allocator.Allocator) nodeAllocator {
	return nodeAllocator{
		arena: a,

		expr: allocator.SlabOf[ast.Expression](a),
		stmt: allocator.SlabOf[ast.Statement](a),

		ident:     allocator.SlabOf[ast.Identifier](a),
		strLit:    allocator.SlabOf[ast.StringLiteral](a),
		numLit:    allocator.SlabOf[ast.NumberLiteral](a),
		binExpr:   allocator.SlabOf[ast.BinaryExpression](a),
		assignExp: allocator.SlabOf[ast.AssignExpression](a),
		memberExp: allocator.SlabOf[ast.MemberExpression](a),
		callExpr:  allocator.SlabOf[ast.CallExpression](a),
		propKeyed: allocator.SlabOf[ast.PropertyKeyed](a),

		exprStmt:  allocator.SlabOf[ast.ExpressionStatement](a),
		blockStmt: allocator.SlabOf[ast.BlockStatement](a),
		varDecl:   allocator.SlabOf[ast.VariableDeclaration](a),
		bindTgt:   allocator.SlabOf[ast.BindingTarget](a),
	}
}

// node copies v into the arena. It serves the node types without a cached
// slab.
func node[T any](a *nodeAllocator, v T) *T {
	return allocator.New(a.arena, v)
}

func allocSlice[T any](a *nodeAllocator, n int) []T {
	return allocator.MakeSlice[T](a.arena, n, n)
}

// finish moves (*buf)[mark:] into a slice owned by the arena and truncates
// the scratch buffer back to mark. Scratch buffers are shared by nested
// list parses, which always finish in reverse order of their marks.
func finish[T any](a *nodeAllocator, buf *[]T, mark int) []T {
	n := len(*buf) - mark
	if n == 0 {
		return nil
	}
	out := allocator.MakeSlice[T](a.arena, n, n)
	copy(out, (*buf)[mark:])
	clear((*buf)[mark:])
	*buf = (*buf)[:mark]
	return out
}

// ---------------------------------------------------------------------------
// Wrapper constructors
// ---------------------------------------------------------------------------

func (a *nodeAllocator) Expression(expr ast.Expr) *ast.Expression {
	return a.expr.New(ast.Expression{Expr: expr})
}

func (a *nodeAllocator) Statement(stmt ast.Stmt) *ast.Statement {
	return a.stmt.New(ast.Statement{Stmt: stmt})
}

func (a *nodeAllocator) BindingTarget(target ast.Target) *ast.BindingTarget {
	return a.bindTgt.New(ast.BindingTarget{Target: target})
}

func (a *nodeAllocator) Type(t ast.TypeNode) *ast.TSType {
	return node(a, ast.TSType{TypeNode: t})
}

// ---------------------------------------------------------------------------
// Identifier / literals
// ---------------------------------------------------------------------------

func (a *nodeAllocator) Identifier(span ast.Span, name string) *ast.Identifier {
	return a.ident.New(ast.Identifier{Span: span, Name: name})
}

func (a *nodeAllocator) StringLiteral(span ast.Span, value, raw string) *ast.StringLiteral {
	return a.strLit.New(ast.StringLiteral{Span: span, Value: value, Raw: raw})
}

func (a *nodeAllocator) NumberLiteral(span ast.Span, value float64, raw string) *ast.NumberLiteral {
	return a.numLit.New(ast.NumberLiteral{Span: span, Value: value, Raw: raw})
}

func (a *nodeAllocator) InvalidExpression(span ast.Span) *ast.Expression {
	return a.Expression(node(a, ast.InvalidExpression{Span: span}))
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func (a *nodeAllocator) BinaryExpression(op token.Token, left, right *ast.Expression) *ast.BinaryExpression {
	return a.binExpr.New(ast.BinaryExpression{
		Span:     spanOf(left, right),
		Operator: op,
		Left:     left,
		Right:    right,
	})
}

func (a *nodeAllocator) AssignExpression(op token.Token, left, right *ast.Expression) *ast.AssignExpression {
	return a.assignExp.New(ast.AssignExpression{
		Span:     spanOf(left, right),
		Operator: op,
		Left:     left,
		Right:    right,
	})
}

func (a *nodeAllocator) MemberExpression(end ast.Idx, object, property *ast.Expression, computed, optional bool) *ast.MemberExpression {
	return a.memberExp.New(ast.MemberExpression{
		Span:     ast.Span{Start: object.Idx0(), End: end},
		Object:   object,
		Property: property,
		Computed: computed,
		Optional: optional,
	})
}

func (a *nodeAllocator) CallExpression(end ast.Idx, callee *ast.Expression, args ast.Expressions, optional bool) *ast.CallExpression {
	return a.callExpr.New(ast.CallExpression{
		Span:         ast.Span{Start: callee.Idx0(), End: end},
		Callee:       callee,
		ArgumentList: args,
		Optional:     optional,
	})
}

func (a *nodeAllocator) PropertyKeyed(span ast.Span, key *ast.Expression, kind ast.PropertyKind, value *ast.Expression, computed bool) *ast.PropertyKeyed {
	return a.propKeyed.New(ast.PropertyKeyed{
		Span:     span,
		Key:      key,
		Kind:     kind,
		Value:    value,
		Computed: computed,
	})
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func (a *nodeAllocator) ExpressionStatement(span ast.Span, expr *ast.Expression) *ast.ExpressionStatement {
	return a.exprStmt.New(ast.ExpressionStatement{Span: span, Expression: expr})
}

func (a *nodeAllocator) BlockStatement(span ast.Span, list ast.Statements) *ast.BlockStatement {
	return a.blockStmt.New(ast.BlockStatement{Span: span, List: list})
}

func (a *nodeAllocator) VariableDeclaration(span ast.Span, tok token.Token, list ast.VariableDeclarators) *ast.VariableDeclaration {
	return a.varDecl.New(ast.VariableDeclaration{Span: span, Token: tok, List: list})
}

func spanOf(first, last ast.Node) ast.Span {
	return ast.Span{Start: first.Idx0(), End: last.Idx1()}
}
