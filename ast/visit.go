package ast

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children of
// node with the visitor w, followed by a call of w.Visit(nil).
//
// Wrapper structs (Expression, Statement, TSType, BindingTarget and the
// like) are not visited themselves; Walk descends into the node they hold.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses a syntax tree in depth-first order.
func Walk(v Visitor, node Node) {
	if node = unwrap(node); node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		if n.Hashbang != nil {
			Walk(v, n.Hashbang)
		}
		for i := range n.Directives {
			Walk(v, &n.Directives[i])
		}
		walkStmts(v, n.Body)

	case *Directive:
		Walk(v, n.Expression)

	// Expressions
	case *ArrayLiteral:
		walkExprs(v, n.Value)
	case *ArrayPattern:
		walkExprs(v, n.Elements)
		walkExpr(v, n.Rest)
		walkAnnotation(v, n.TypeAnnotation)
	case *ObjectLiteral:
		walkProps(v, n.Value)
	case *ObjectPattern:
		walkProps(v, n.Properties)
		walkExpr(v, n.Rest)
		walkAnnotation(v, n.TypeAnnotation)
	case *PropertyShort:
		Walk(v, n.Name)
		walkExpr(v, n.Initializer)
	case *PropertyKeyed:
		walkExpr(v, n.Key)
		walkExpr(v, n.Value)
	case *AssignExpression:
		walkExpr(v, n.Left)
		walkExpr(v, n.Right)
	case *BinaryExpression:
		walkExpr(v, n.Left)
		walkExpr(v, n.Right)
	case *UnaryExpression:
		walkExpr(v, n.Operand)
	case *UpdateExpression:
		walkExpr(v, n.Operand)
	case *ConditionalExpression:
		walkExpr(v, n.Test)
		walkExpr(v, n.Consequent)
		walkExpr(v, n.Alternate)
	case *SequenceExpression:
		walkExprs(v, n.Sequence)
	case *YieldExpression:
		walkExpr(v, n.Argument)
	case *AwaitExpression:
		walkExpr(v, n.Argument)
	case *MemberExpression:
		walkExpr(v, n.Object)
		walkExpr(v, n.Property)
	case *PrivateDotExpression:
		walkExpr(v, n.Left)
		Walk(v, n.Identifier)
	case *CallExpression:
		walkExpr(v, n.Callee)
		walkTypeArgs(v, n.TypeArguments)
		walkExprs(v, n.ArgumentList)
	case *NewExpression:
		walkExpr(v, n.Callee)
		walkTypeArgs(v, n.TypeArguments)
		walkExprs(v, n.ArgumentList)
	case *OptionalChain:
		walkExpr(v, n.Base)
	case *SpreadElement:
		walkExpr(v, n.Expression)
	case *ParenthesizedExpression:
		walkExpr(v, n.Expression)
	case *TemplateLiteral:
		walkExpr(v, n.Tag)
		walkTypeArgs(v, n.TypeArguments)
		for i := range n.Elements {
			Walk(v, &n.Elements[i])
			if i < len(n.Expressions) {
				walkExpr(v, &n.Expressions[i])
			}
		}
	case *MetaProperty:
		Walk(v, n.Meta)
		Walk(v, n.Property)
	case *ImportExpression:
		walkExpr(v, n.Source)
		walkExpr(v, n.Options)
	case *ArrowFunctionLiteral:
		walkTypeParams(v, n.TypeParameters)
		Walk(v, n.ParameterList)
		walkAnnotation(v, n.ReturnType)
		if n.Body != nil {
			Walk(v, n.Body.Body)
		}
	case *FunctionLiteral:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		walkTypeParams(v, n.TypeParameters)
		Walk(v, n.ParameterList)
		walkAnnotation(v, n.ReturnType)
		if n.Body != nil {
			Walk(v, n.Body)
		}
	case *ParameterList:
		walkDeclarators(v, n.List)
		walkExpr(v, n.Rest)
	case *ClassLiteral:
		if n.Name != nil {
			Walk(v, n.Name)
		}
		walkTypeParams(v, n.TypeParameters)
		walkExpr(v, n.SuperClass)
		walkTypeArgs(v, n.SuperTypeArguments)
		walkTypes(v, n.Implements)
		for i := range n.Body {
			Walk(v, n.Body[i].Element)
		}
	case *FieldDefinition:
		walkExpr(v, n.Key)
		walkAnnotation(v, n.TypeAnnotation)
		walkExpr(v, n.Initializer)
	case *MethodDefinition:
		walkExpr(v, n.Key)
		Walk(v, n.Body)
	case *ClassStaticBlock:
		Walk(v, n.Block)

	// Statements
	case *BlockStatement:
		walkStmts(v, n.List)
	case *BreakStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *ContinueStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}
	case *CaseStatement:
		walkExpr(v, n.Test)
		walkStmts(v, n.Consequent)
	case *CatchStatement:
		if n.Parameter != nil {
			Walk(v, n.Parameter.Target)
		}
		Walk(v, n.Body)
	case *DoWhileStatement:
		walkStmt(v, n.Body)
		walkExpr(v, n.Test)
	case *ExpressionStatement:
		walkExpr(v, n.Expression)
	case *IfStatement:
		walkExpr(v, n.Test)
		walkStmt(v, n.Consequent)
		walkStmt(v, n.Alternate)
	case *LabelledStatement:
		Walk(v, n.Label)
		walkStmt(v, n.Statement)
	case *ReturnStatement:
		walkExpr(v, n.Argument)
	case *SwitchStatement:
		walkExpr(v, n.Discriminant)
		for i := range n.Body {
			Walk(v, &n.Body[i])
		}
	case *ThrowStatement:
		walkExpr(v, n.Argument)
	case *TryStatement:
		Walk(v, n.Body)
		if n.Catch != nil {
			Walk(v, n.Catch)
		}
		if n.Finally != nil {
			Walk(v, n.Finally)
		}
	case *WhileStatement:
		walkExpr(v, n.Test)
		walkStmt(v, n.Body)
	case *WithStatement:
		walkExpr(v, n.Object)
		walkStmt(v, n.Body)
	case *ForStatement:
		if n.Initializer != nil {
			Walk(v, n.Initializer.ForLoopInit)
		}
		walkExpr(v, n.Test)
		walkExpr(v, n.Update)
		walkStmt(v, n.Body)
	case *ForInStatement:
		Walk(v, n.Into.Into)
		walkExpr(v, n.Source)
		walkStmt(v, n.Body)
	case *ForOfStatement:
		Walk(v, n.Into.Into)
		walkExpr(v, n.Source)
		walkStmt(v, n.Body)

	// Declarations
	case *VariableDeclaration:
		walkDeclarators(v, n.List)
	case *VariableDeclarator:
		Walk(v, n.Target.Target)
		walkAnnotation(v, n.TypeAnnotation)
		walkExpr(v, n.Initializer)
	case *FunctionDeclaration:
		Walk(v, n.Function)
	case *ClassDeclaration:
		Walk(v, n.Class)

	// Modules
	case *ImportDeclaration:
		for i := range n.Specifiers {
			Walk(v, &n.Specifiers[i])
		}
		Walk(v, n.Source)
	case *ImportSpecifier:
		if n.Imported != nil {
			Walk(v, n.Imported)
		}
		Walk(v, n.Local)
	case *ExportNamedDeclaration:
		walkStmt(v, n.Declaration)
		for i := range n.Specifiers {
			Walk(v, &n.Specifiers[i])
		}
		if n.Source != nil {
			Walk(v, n.Source)
		}
	case *ExportSpecifier:
		Walk(v, n.Local)
		Walk(v, n.Exported)
	case *ExportDefaultDeclaration:
		walkStmt(v, n.Declaration)
		walkExpr(v, n.Expression)
	case *ExportAllDeclaration:
		if n.Exported != nil {
			Walk(v, n.Exported)
		}
		Walk(v, n.Source)

	// TypeScript
	case *TSTypeAnnotation:
		walkType(v, n.Type)
	case *TSTypeParameters:
		for i := range n.Params {
			Walk(v, &n.Params[i])
		}
	case *TSTypeParameter:
		Walk(v, n.Name)
		walkType(v, n.Constraint)
		walkType(v, n.Default)
	case *TSTypeArguments:
		walkTypes(v, n.Params)
	case *TSTypeReference:
		for _, id := range n.Name {
			Walk(v, id)
		}
		walkTypeArgs(v, n.TypeArguments)
	case *TSLiteralType:
		walkExpr(v, n.Literal)
	case *TSUnionType:
		walkTypes(v, n.Types)
	case *TSIntersectionType:
		walkTypes(v, n.Types)
	case *TSArrayType:
		walkType(v, n.Element)
	case *TSIndexedAccessType:
		walkType(v, n.Object)
		walkType(v, n.Index)
	case *TSTupleType:
		walkTypes(v, n.Elements)
	case *TSRestType:
		walkType(v, n.Type)
	case *TSOptionalType:
		walkType(v, n.Type)
	case *TSTypeLiteral:
		for i := range n.Members {
			Walk(v, &n.Members[i])
		}
	case *TSPropertySignature:
		walkExpr(v, n.Key)
		walkType(v, n.IndexType)
		if n.Params != nil {
			Walk(v, n.Params)
		}
		walkAnnotation(v, n.TypeAnnotation)
	case *TSFunctionType:
		walkTypeParams(v, n.TypeParameters)
		Walk(v, n.Params)
		walkAnnotation(v, n.ReturnType)
	case *TSTypeQuery:
		for _, id := range n.Name {
			Walk(v, id)
		}
	case *TSTypeOperator:
		walkType(v, n.Type)
	case *TSAsExpression:
		walkExpr(v, n.Expression)
		walkType(v, n.Type)
	case *TSSatisfiesExpression:
		walkExpr(v, n.Expression)
		walkType(v, n.Type)
	case *TSNonNullExpression:
		walkExpr(v, n.Expression)
	case *TSTypeAssertion:
		walkType(v, n.Type)
		walkExpr(v, n.Expression)
	case *TSInterfaceDeclaration:
		Walk(v, n.Name)
		walkTypeParams(v, n.TypeParameters)
		walkTypes(v, n.Extends)
		Walk(v, n.Body)
	case *TSTypeAliasDeclaration:
		Walk(v, n.Name)
		walkTypeParams(v, n.TypeParameters)
		walkType(v, n.Type)
	case *TSEnumDeclaration:
		Walk(v, n.Name)
		for i := range n.Members {
			Walk(v, &n.Members[i])
		}
	case *TSEnumMember:
		walkExpr(v, n.Name)
		walkExpr(v, n.Initializer)

	// JSX
	case *JSXElement:
		Walk(v, n.Opening)
		for _, c := range n.Children {
			Walk(v, c)
		}
		if n.Closing != nil {
			Walk(v, n.Closing)
		}
	case *JSXOpeningElement:
		Walk(v, n.Name)
		walkTypeArgs(v, n.TypeArguments)
		for _, a := range n.Attributes {
			Walk(v, a)
		}
	case *JSXClosingElement:
		Walk(v, n.Name)
	case *JSXFragment:
		for _, c := range n.Children {
			Walk(v, c)
		}
	case *JSXAttribute:
		Walk(v, n.Name)
		walkExpr(v, n.Value)
	case *JSXSpreadAttribute:
		walkExpr(v, n.Argument)
	case *JSXExpressionContainer:
		walkExpr(v, n.Expression)
	}

	v.Visit(nil)
}

func unwrap(n Node) Node {
	switch w := n.(type) {
	case nil:
		return nil
	case *Expression:
		if w == nil || w.Expr == nil {
			return nil
		}
		return w.Expr
	case *Statement:
		if w == nil || w.Stmt == nil {
			return nil
		}
		return w.Stmt
	case *TSType:
		if w == nil || w.TypeNode == nil {
			return nil
		}
		return w.TypeNode
	case *ConciseBody:
		if w == nil || w.Body == nil {
			return nil
		}
		return unwrap(w.Body)
	}
	return n
}

func walkExpr(v Visitor, e *Expression) {
	if e != nil && e.Expr != nil {
		Walk(v, e.Expr)
	}
}

func walkExprs(v Visitor, list Expressions) {
	for i := range list {
		walkExpr(v, &list[i])
	}
}

func walkStmt(v Visitor, s *Statement) {
	if s != nil && s.Stmt != nil {
		Walk(v, s.Stmt)
	}
}

func walkStmts(v Visitor, list Statements) {
	for i := range list {
		walkStmt(v, &list[i])
	}
}

func walkProps(v Visitor, list Properties) {
	for i := range list {
		if list[i].Prop != nil {
			Walk(v, list[i].Prop)
		}
	}
}

func walkDeclarators(v Visitor, list VariableDeclarators) {
	for i := range list {
		Walk(v, &list[i])
	}
}

func walkType(v Visitor, t *TSType) {
	if t != nil && t.TypeNode != nil {
		Walk(v, t.TypeNode)
	}
}

func walkTypes(v Visitor, list []TSType) {
	for i := range list {
		walkType(v, &list[i])
	}
}

func walkAnnotation(v Visitor, a *TSTypeAnnotation) {
	if a != nil {
		Walk(v, a)
	}
}

func walkTypeParams(v Visitor, p *TSTypeParameters) {
	if p != nil {
		Walk(v, p)
	}
}

func walkTypeArgs(v Visitor, a *TSTypeArguments) {
	if a != nil {
		Walk(v, a)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses a syntax tree in depth-first order: It starts by
// calling f(node); node must not be nil. If f returns true, Inspect invokes
// f recursively for each of the non-nil children of node, followed by a
// call of f(nil).
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}
