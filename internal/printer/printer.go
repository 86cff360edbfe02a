// Package printer writes an AST back out as source text. The output is
// meant to parse back into the same tree, not to preserve formatting:
// comments are dropped and parentheses are inserted wherever an operand
// would otherwise bind differently.
package printer

import (
	"strconv"
	"strings"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

// Generate returns source text for node, which may be a whole program, a
// statement or an expression.
func Generate(node ast.Node) string {
	s := &state{out: &strings.Builder{}}
	s.gen(node)
	return s.out.String()
}

// Binding levels of expressions, from loosest to tightest. An operand is
// parenthesized when its level is below the one its position requires.
const (
	levelSequence = iota + 1
	levelAssign
	levelConditional
	levelCoalesce
	levelLogicalOr
	levelLogicalAnd
	levelBitwiseOr
	levelBitwiseXor
	levelBitwiseAnd
	levelEquals
	levelCompare
	levelShift
	levelAdd
	levelMultiply
	levelExponent
	levelUnary
	levelUpdate
	levelMember
)

var binaryLevel = map[token.Token]int{
	token.Coalesce:           levelCoalesce,
	token.LogicalOr:          levelLogicalOr,
	token.LogicalAnd:         levelLogicalAnd,
	token.Or:                 levelBitwiseOr,
	token.ExclusiveOr:        levelBitwiseXor,
	token.And:                levelBitwiseAnd,
	token.Equal:              levelEquals,
	token.StrictEqual:        levelEquals,
	token.NotEqual:           levelEquals,
	token.StrictNotEqual:     levelEquals,
	token.Less:               levelCompare,
	token.Greater:            levelCompare,
	token.LessOrEqual:        levelCompare,
	token.GreaterOrEqual:     levelCompare,
	token.InstanceOf:         levelCompare,
	token.In:                 levelCompare,
	token.ShiftLeft:          levelShift,
	token.ShiftRight:         levelShift,
	token.UnsignedShiftRight: levelShift,
	token.Plus:               levelAdd,
	token.Minus:              levelAdd,
	token.Multiply:           levelMultiply,
	token.Slash:              levelMultiply,
	token.Remainder:          levelMultiply,
	token.Exponent:           levelExponent,
}

func level(e ast.Expr) int {
	switch n := e.(type) {
	case *ast.SequenceExpression:
		return levelSequence
	case *ast.AssignExpression, *ast.YieldExpression, *ast.ArrowFunctionLiteral:
		return levelAssign
	case *ast.ConditionalExpression, *ast.TSAsExpression, *ast.TSSatisfiesExpression:
		return levelConditional
	case *ast.BinaryExpression:
		return binaryLevel[n.Operator]
	case *ast.UnaryExpression, *ast.AwaitExpression, *ast.TSTypeAssertion:
		return levelUnary
	case *ast.UpdateExpression:
		return levelUpdate
	}
	return levelMember
}

func isLogical(e ast.Expr) bool {
	b, ok := e.(*ast.BinaryExpression)
	return ok && (b.Operator == token.LogicalOr || b.Operator == token.LogicalAnd)
}

func (s *state) expr(e *ast.Expression, min int) {
	if e == nil || e.Expr == nil {
		return
	}
	s.paren(level(e.Expr) < min, func() { s.gen(e.Expr) })
}

// object writes the object of a member access, the callee of a call or
// the tag of a template.
func (s *state) object(e *ast.Expression) {
	switch e.Expr.(type) {
	case *ast.NumberLiteral, *ast.OptionalChain:
		s.paren(true, func() { s.gen(e.Expr) })
		return
	}
	s.expr(e, levelMember)
}

// sub renders e on its own so its leading text can be inspected.
func (s *state) sub(e *ast.Expression, min int) string {
	sub := &state{out: &strings.Builder{}, indent: s.indent}
	sub.expr(e, min)
	return sub.out.String()
}

func startsWithWord(str, word string) bool {
	if !strings.HasPrefix(str, word) {
		return false
	}
	if len(str) == len(word) {
		return true
	}
	c := str[len(word)]
	return !(c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// statementExpr writes the expression of an expression statement, which
// may not begin like a block, a function or a class declaration.
func (s *state) statementExpr(e *ast.Expression) {
	str := s.sub(e, levelSequence)
	ambiguous := strings.HasPrefix(str, "{") ||
		startsWithWord(str, "function") ||
		startsWithWord(str, "class") ||
		strings.HasPrefix(str, "async function") ||
		strings.HasPrefix(str, "let [")
	s.paren(ambiguous, func() { s.write(str) })
}

func (s *state) isNewCallee(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Identifier, *ast.ThisExpression, *ast.MetaProperty,
		*ast.FunctionLiteral, *ast.ClassLiteral, *ast.ArrayLiteral, *ast.ObjectLiteral,
		*ast.StringLiteral, *ast.TemplateLiteral:
		if t, ok := n.(*ast.TemplateLiteral); ok && t.Tag != nil {
			return s.isNewCallee(t.Tag.Expr)
		}
		return true
	case *ast.MemberExpression:
		_, number := n.Object.Expr.(*ast.NumberLiteral)
		return !n.Optional && !number && s.isNewCallee(n.Object.Expr)
	case *ast.PrivateDotExpression:
		return !n.Optional && s.isNewCallee(n.Left.Expr)
	case *ast.NewExpression:
		return true
	}
	return false
}

func (s *state) gen(node ast.Node) {
	switch n := node.(type) {
	case nil:

	case *ast.Program:
		s.program(n)
	case *ast.Expression:
		if n != nil {
			s.expr(n, levelSequence)
		}
	case *ast.Statement:
		if n != nil {
			s.gen(n.Stmt)
		}

	// Literals and names.
	case *ast.Identifier:
		s.write(n.Name)
	case *ast.PrivateIdentifier:
		s.write("#", n.Name)
	case *ast.BooleanLiteral:
		s.write(strconv.FormatBool(n.Value))
	case *ast.NullLiteral:
		s.write("null")
	case *ast.NumberLiteral:
		if n.Raw != "" {
			s.write(n.Raw)
		} else {
			s.write(strconv.FormatFloat(n.Value, 'g', -1, 64))
		}
	case *ast.BigIntLiteral:
		s.write(n.Raw)
	case *ast.StringLiteral:
		s.stringLiteral(n)
	case *ast.RegExpLiteral:
		s.write("/", n.Pattern, "/", n.Flags)
	case *ast.TemplateLiteral:
		if n.Tag != nil {
			s.object(n.Tag)
			s.typeArguments(n.TypeArguments)
		}
		s.write("`")
		for i := range n.Elements {
			if i > 0 {
				s.write("${")
				s.expr(&n.Expressions[i-1], levelSequence)
				s.write("}")
			}
			s.write(n.Elements[i].Raw)
		}
		s.write("`")
	case *ast.ThisExpression:
		s.write("this")
	case *ast.SuperExpression:
		s.write("super")
	case *ast.MetaProperty:
		s.write(n.Meta.Name, ".", n.Property.Name)
	case *ast.InvalidExpression:

	// Compound expressions.
	case *ast.ArrayLiteral:
		s.elements(n.Value, nil)
	case *ast.ArrayPattern:
		s.elements(n.Elements, n.Rest)
		s.typeAnnotation(n.TypeAnnotation)
	case *ast.ObjectLiteral:
		s.properties(n.Value, nil)
	case *ast.ObjectPattern:
		s.properties(n.Properties, n.Rest)
		s.typeAnnotation(n.TypeAnnotation)
	case *ast.PropertyShort:
		s.write(n.Name.Name)
		if n.Initializer != nil {
			s.write(" = ")
			s.expr(n.Initializer, levelAssign)
		}
	case *ast.PropertyKeyed:
		s.propertyKeyed(n)
	case *ast.SpreadElement:
		s.write("...")
		s.expr(n.Expression, levelAssign)
	case *ast.ParenthesizedExpression:
		s.paren(true, func() { s.expr(n.Expression, levelSequence) })
	case *ast.SequenceExpression:
		s.list(len(n.Sequence), func(i int) { s.expr(&n.Sequence[i], levelAssign) })
	case *ast.AssignExpression:
		s.expr(n.Left, levelMember)
		s.write(" ", n.Operator.String(), " ")
		s.expr(n.Right, levelAssign)
	case *ast.ConditionalExpression:
		s.expr(n.Test, levelCoalesce)
		s.write(" ? ")
		s.expr(n.Consequent, levelAssign)
		s.write(" : ")
		s.expr(n.Alternate, levelAssign)
	case *ast.BinaryExpression:
		s.binary(n)
	case *ast.UnaryExpression:
		s.unary(n)
	case *ast.UpdateExpression:
		if n.Postfix {
			s.expr(n.Operand, levelMember)
			s.write(n.Operator.String())
		} else {
			s.write(n.Operator.String())
			s.expr(n.Operand, levelMember)
		}
	case *ast.AwaitExpression:
		s.write("await ")
		s.expr(n.Argument, levelUnary)
	case *ast.YieldExpression:
		s.write("yield")
		if n.Delegate {
			s.write("*")
		}
		if n.Argument != nil {
			s.write(" ")
			s.expr(n.Argument, levelAssign)
		}
	case *ast.MemberExpression:
		s.object(n.Object)
		switch {
		case n.Computed && n.Optional:
			s.write("?.[")
		case n.Computed:
			s.write("[")
		case n.Optional:
			s.write("?.")
		default:
			s.write(".")
		}
		if n.Computed {
			s.expr(n.Property, levelSequence)
			s.write("]")
		} else {
			s.gen(n.Property.Expr)
		}
	case *ast.PrivateDotExpression:
		s.object(n.Left)
		if n.Optional {
			s.write("?.")
		} else {
			s.write(".")
		}
		s.write("#", n.Identifier.Name)
	case *ast.CallExpression:
		s.object(n.Callee)
		if n.Optional {
			s.write("?.")
		}
		s.typeArguments(n.TypeArguments)
		s.arguments(n.ArgumentList)
	case *ast.NewExpression:
		s.write("new ")
		s.paren(!s.isNewCallee(n.Callee.Expr), func() { s.gen(n.Callee.Expr) })
		s.typeArguments(n.TypeArguments)
		s.arguments(n.ArgumentList)
	case *ast.OptionalChain:
		s.gen(n.Base.Expr)
	case *ast.ImportExpression:
		s.write("import(")
		s.expr(n.Source, levelAssign)
		if n.Options != nil {
			s.write(", ")
			s.expr(n.Options, levelAssign)
		}
		s.write(")")
	case *ast.FunctionLiteral:
		s.function(n)
	case *ast.ArrowFunctionLiteral:
		s.arrow(n)
	case *ast.ClassLiteral:
		s.class(n)

	// TypeScript expressions.
	case *ast.TSAsExpression:
		s.expr(n.Expression, levelUnary)
		s.write(" as ")
		s.tsType(n.Type, typeLevelFunction)
	case *ast.TSSatisfiesExpression:
		s.expr(n.Expression, levelUnary)
		s.write(" satisfies ")
		s.tsType(n.Type, typeLevelFunction)
	case *ast.TSNonNullExpression:
		s.expr(n.Expression, levelMember)
		s.write("!")
	case *ast.TSTypeAssertion:
		s.write("<")
		s.tsType(n.Type, typeLevelFunction)
		s.write(">")
		s.expr(n.Expression, levelUnary)

	// JSX.
	case *ast.JSXElement:
		s.jsxElement(n)
	case *ast.JSXFragment:
		s.write("<>")
		s.jsxChildren(n.Children)
		s.write("</>")
	case *ast.JSXText:
		s.write(n.Value)
	case *ast.JSXExpressionContainer:
		s.write("{")
		s.expr(n.Expression, levelSequence)
		s.write("}")

	default:
		if stmt, ok := node.(ast.Stmt); ok {
			s.statement(stmt)
		}
	}
}

func (s *state) stringLiteral(n *ast.StringLiteral) {
	if n.Raw != "" {
		s.write(n.Raw)
		return
	}
	s.write(strconv.Quote(n.Value))
}

func (s *state) binary(n *ast.BinaryExpression) {
	lv := binaryLevel[n.Operator]
	leftMin, rightMin := lv, lv+1
	if n.Operator == token.Exponent {
		leftMin, rightMin = levelUpdate, levelExponent
	}
	mixed := func(e ast.Expr) bool {
		if n.Operator == token.Coalesce {
			return isLogical(e)
		}
		if b, ok := e.(*ast.BinaryExpression); ok && isLogical(n) {
			return b.Operator == token.Coalesce
		}
		return false
	}

	s.paren(level(n.Left.Expr) < leftMin || mixed(n.Left.Expr), func() { s.gen(n.Left.Expr) })
	s.write(" ", n.Operator.String(), " ")
	s.paren(level(n.Right.Expr) < rightMin || mixed(n.Right.Expr), func() { s.gen(n.Right.Expr) })
}

func (s *state) unary(n *ast.UnaryExpression) {
	op := n.Operator.String()
	s.write(op)
	switch n.Operator {
	case token.Typeof, token.Void, token.Delete:
		s.write(" ")
	case token.Plus, token.Minus:
		// - -a and - --a must not run together.
		switch o := n.Operand.Expr.(type) {
		case *ast.UnaryExpression:
			if o.Operator == token.Plus || o.Operator == token.Minus {
				s.write(" ")
			}
		case *ast.UpdateExpression:
			if !o.Postfix {
				s.write(" ")
			}
		}
	}
	s.expr(n.Operand, levelUnary)
}

func (s *state) arguments(list ast.Expressions) {
	s.write("(")
	s.list(len(list), func(i int) { s.expr(&list[i], levelAssign) })
	s.write(")")
}

// elements writes an array literal or pattern, keeping holes.
func (s *state) elements(list ast.Expressions, rest *ast.Expression) {
	s.write("[")
	s.list(len(list), func(i int) { s.expr(&list[i], levelAssign) })
	switch {
	case rest != nil:
		if len(list) > 0 {
			s.write(", ")
		}
		s.write("...")
		s.gen(rest.Expr)
	case len(list) > 0 && list[len(list)-1].Expr == nil:
		s.write(",")
	}
	s.write("]")
}

func (s *state) properties(list ast.Properties, rest *ast.Expression) {
	if len(list) == 0 && rest == nil {
		s.write("{}")
		return
	}
	s.write("{ ")
	s.list(len(list), func(i int) { s.gen(list[i].Prop) })
	if rest != nil {
		if len(list) > 0 {
			s.write(", ")
		}
		s.write("...")
		s.gen(rest.Expr)
	}
	s.write(" }")
}

func (s *state) propertyKey(key *ast.Expression, computed bool) {
	if computed {
		s.write("[")
		s.expr(key, levelAssign)
		s.write("]")
		return
	}
	s.gen(key.Expr)
}

func (s *state) propertyKeyed(n *ast.PropertyKeyed) {
	if n.Kind == ast.PropertyKindValue {
		s.propertyKey(n.Key, n.Computed)
		s.write(": ")
		s.expr(n.Value, levelAssign)
		return
	}
	fn, _ := n.Value.Expr.(*ast.FunctionLiteral)
	s.method(n.Kind, fn, func() { s.propertyKey(n.Key, n.Computed) })
}

// method writes a method of an object literal or a class, with key
// writing the name.
func (s *state) method(kind ast.PropertyKind, fn *ast.FunctionLiteral, key func()) {
	switch kind {
	case ast.PropertyKindGet:
		s.write("get ")
	case ast.PropertyKindSet:
		s.write("set ")
	}
	if fn != nil && fn.Async {
		s.write("async ")
	}
	if fn != nil && fn.Generator {
		s.write("*")
	}
	key()
	if fn != nil {
		s.functionRest(fn)
	}
}

func (s *state) function(n *ast.FunctionLiteral) {
	if n.Async {
		s.write("async ")
	}
	s.write("function")
	if n.Generator {
		s.write("*")
	}
	if n.Name != nil {
		s.write(" ", n.Name.Name)
	}
	s.functionRest(n)
}

// functionRest writes type parameters, parameters, return type and body.
func (s *state) functionRest(n *ast.FunctionLiteral) {
	s.typeParameters(n.TypeParameters)
	s.parameters(n.ParameterList)
	s.typeAnnotation(n.ReturnType)
	if n.Body == nil {
		s.write(";")
		return
	}
	s.write(" ")
	s.block(n.Body)
}

func (s *state) parameters(n *ast.ParameterList) {
	s.write("(")
	if n != nil {
		s.list(len(n.List), func(i int) { s.declarator(&n.List[i]) })
		if n.Rest != nil {
			if len(n.List) > 0 {
				s.write(", ")
			}
			s.write("...")
			s.gen(n.Rest.Expr)
		}
	}
	s.write(")")
}

func (s *state) arrow(n *ast.ArrowFunctionLiteral) {
	if n.Async {
		s.write("async ")
	}
	s.typeParameters(n.TypeParameters)
	s.parameters(n.ParameterList)
	s.typeAnnotation(n.ReturnType)
	s.write(" => ")
	switch body := n.Body.Body.(type) {
	case *ast.BlockStatement:
		s.block(body)
	case *ast.Expression:
		str := s.sub(body, levelAssign)
		s.paren(strings.HasPrefix(str, "{"), func() { s.write(str) })
	}
}

func (s *state) class(n *ast.ClassLiteral) {
	if n.Abstract {
		s.write("abstract ")
	}
	s.write("class")
	if n.Name != nil {
		s.write(" ", n.Name.Name)
	}
	s.typeParameters(n.TypeParameters)
	if n.SuperClass != nil {
		s.write(" extends ")
		s.expr(n.SuperClass, levelMember)
		s.typeArguments(n.SuperTypeArguments)
	}
	if len(n.Implements) > 0 {
		s.write(" implements ")
		s.list(len(n.Implements), func(i int) { s.tsType(&n.Implements[i], typeLevelFunction) })
	}
	if len(n.Body) == 0 {
		s.write(" {}")
		return
	}
	s.write(" {")
	s.indent++
	for i := range n.Body {
		s.lineAndPad()
		s.classElement(n.Body[i].Element)
	}
	s.indent--
	s.lineAndPad()
	s.write("}")
}

func (s *state) modifiers(m ast.Modifiers, static bool) {
	if m.Declare {
		s.write("declare ")
	}
	if m.Accessibility != "" {
		s.write(m.Accessibility, " ")
	}
	if static {
		s.write("static ")
	}
	if m.Abstract {
		s.write("abstract ")
	}
	if m.Override {
		s.write("override ")
	}
	if m.Readonly {
		s.write("readonly ")
	}
}

func (s *state) classElement(element ast.Element) {
	switch n := element.(type) {
	case *ast.FieldDefinition:
		s.modifiers(n.Modifiers, n.Static)
		s.propertyKey(n.Key, n.Computed)
		if n.Optional {
			s.write("?")
		}
		s.typeAnnotation(n.TypeAnnotation)
		if n.Initializer != nil {
			s.write(" = ")
			s.expr(n.Initializer, levelAssign)
		}
		s.write(";")
	case *ast.MethodDefinition:
		s.modifiers(n.Modifiers, n.Static)
		s.method(n.Kind, n.Body, func() {
			s.propertyKey(n.Key, n.Computed)
			if n.Optional {
				s.write("?")
			}
		})
	case *ast.ClassStaticBlock:
		s.write("static ")
		s.block(n.Block)
	}
}

func (s *state) jsxElement(n *ast.JSXElement) {
	s.write("<", n.Opening.Name.Name)
	s.typeArguments(n.Opening.TypeArguments)
	for _, attr := range n.Opening.Attributes {
		s.write(" ")
		switch a := attr.(type) {
		case *ast.JSXAttribute:
			s.write(a.Name.Name)
			if a.Value != nil {
				s.write("=")
				s.gen(a.Value.Expr)
			}
		case *ast.JSXSpreadAttribute:
			s.write("{...")
			s.expr(a.Argument, levelAssign)
			s.write("}")
		}
	}
	if n.Opening.SelfClosing {
		s.write(" />")
		return
	}
	s.write(">")
	s.jsxChildren(n.Children)
	s.write("</", n.Opening.Name.Name, ">")
}

func (s *state) jsxChildren(children []ast.JSXChild) {
	for _, child := range children {
		s.gen(child)
	}
}
