package ast

import "github.com/t14raptor/jsarena/token"

type (
	Expressions []Expression

	// Expression is a struct to allow defining methods on it and to let
	// passes replace a node in place by assigning Expr.
	Expression struct {
		Expr `optional:"true"`
	}

	// All expression nodes implement the Expr interface.
	Expr interface {
		Node
		_expr()
	}

	BindingTarget struct {
		Target
	}

	// Target is a node that can be bound or assigned to.
	Target interface {
		Expr
		_bindingTarget()
	}

	Pattern interface {
		Target
		_pattern()
	}

	Identifier struct {
		Span
		Name string
	}

	PrivateIdentifier struct {
		Span
		Name string // without the leading #
	}

	YieldExpression struct {
		Span
		Argument *Expression `optional:"true"`
		Delegate bool
	}

	AwaitExpression struct {
		Span
		Argument *Expression
	}

	ArrayLiteral struct {
		Span
		// Holes are Expressions with a nil Expr.
		Value Expressions
	}

	ArrayPattern struct {
		Span
		Elements       Expressions
		Rest           *Expression       `optional:"true"`
		TypeAnnotation *TSTypeAnnotation `optional:"true"`
	}

	ObjectLiteral struct {
		Span
		Value Properties
	}

	ObjectPattern struct {
		Span
		Properties     Properties
		Rest           *Expression       `optional:"true"`
		TypeAnnotation *TSTypeAnnotation `optional:"true"`
	}

	AssignExpression struct {
		Span
		Operator token.Token
		Left     *Expression
		Right    *Expression
	}

	// InvalidExpression stands in for an expression that failed to parse.
	InvalidExpression struct {
		Span
	}

	BinaryExpression struct {
		Span
		Operator token.Token
		Left     *Expression
		Right    *Expression
	}

	UnaryExpression struct {
		Span
		Operator token.Token
		Operand  *Expression
	}

	UpdateExpression struct {
		Span
		Operator token.Token
		Operand  *Expression
		Postfix  bool
	}

	ConditionalExpression struct {
		Span
		Test       *Expression
		Consequent *Expression
		Alternate  *Expression
	}

	SequenceExpression struct {
		Span
		Sequence Expressions
	}

	// MemberExpression is a.b or a[b]. Property is an Identifier unless
	// Computed is set.
	MemberExpression struct {
		Span
		Object   *Expression
		Property *Expression
		Computed bool
		Optional bool // a?.b
	}

	PrivateDotExpression struct {
		Span
		Left       *Expression
		Identifier *PrivateIdentifier
		Optional   bool
	}

	CallExpression struct {
		Span
		Callee        *Expression
		TypeArguments *TSTypeArguments `optional:"true"`
		ArgumentList  Expressions
		Optional      bool // a?.()
	}

	NewExpression struct {
		Span
		Callee        *Expression
		TypeArguments *TSTypeArguments `optional:"true"`
		ArgumentList  Expressions
	}

	// OptionalChain wraps the outermost node of a chain containing ?.
	OptionalChain struct {
		Span
		Base *Expression
	}

	SpreadElement struct {
		Span
		Expression *Expression
	}

	ParenthesizedExpression struct {
		Span
		Expression *Expression
	}

	TemplateElements []TemplateElement

	TemplateElement struct {
		Span
		Raw string
		// Cooked value; empty and Valid unset when the raw text holds an
		// invalid escape, which is only allowed in tagged templates.
		Cooked string
		Valid  bool
	}

	TemplateLiteral struct {
		Span
		Tag           *Expression      `optional:"true"`
		TypeArguments *TSTypeArguments `optional:"true"`
		Elements      TemplateElements
		Expressions   Expressions
	}

	ThisExpression struct {
		Span
	}

	SuperExpression struct {
		Span
	}

	// MetaProperty is new.target or import.meta.
	MetaProperty struct {
		Span
		Meta, Property *Identifier
	}

	// ImportExpression is a dynamic import(source, options).
	ImportExpression struct {
		Span
		Source  *Expression
		Options *Expression `optional:"true"`
	}

	ConciseBody struct {
		Body
	}

	Body interface {
		Node
		_conciseBody()
	}

	ArrowFunctionLiteral struct {
		Span
		TypeParameters *TSTypeParameters `optional:"true"`
		ParameterList  *ParameterList
		ReturnType     *TSTypeAnnotation `optional:"true"`
		Body           *ConciseBody
		Async          bool
	}

	FunctionLiteral struct {
		Span
		Name           *Identifier       `optional:"true"`
		TypeParameters *TSTypeParameters `optional:"true"`
		ParameterList  *ParameterList
		ReturnType     *TSTypeAnnotation `optional:"true"`
		// Body is nil for overload signatures and ambient declarations.
		Body *BlockStatement `optional:"true"`

		Async, Generator bool
	}

	ParameterList struct {
		Span
		List VariableDeclarators
		Rest *Expression `optional:"true"`
	}
)

func (*BlockStatement) _conciseBody() {}
func (*Expression) _conciseBody()     {}

func (*ArrayPattern) _pattern()  {}
func (*ObjectPattern) _pattern() {}

func (*ArrayPattern) _bindingTarget()         {}
func (*MemberExpression) _bindingTarget()     {}
func (*PrivateDotExpression) _bindingTarget() {}
func (*ObjectPattern) _bindingTarget()        {}
func (*Identifier) _bindingTarget()           {}
func (*InvalidExpression) _bindingTarget()    {}

func (*Identifier) _expr()              {}
func (*PrivateIdentifier) _expr()       {}
func (*ArrayLiteral) _expr()            {}
func (*ArrayPattern) _expr()            {}
func (*ObjectLiteral) _expr()           {}
func (*ObjectPattern) _expr()           {}
func (*AssignExpression) _expr()        {}
func (*YieldExpression) _expr()         {}
func (*AwaitExpression) _expr()         {}
func (*InvalidExpression) _expr()       {}
func (*BinaryExpression) _expr()        {}
func (*UnaryExpression) _expr()         {}
func (*UpdateExpression) _expr()        {}
func (*ConditionalExpression) _expr()   {}
func (*SequenceExpression) _expr()      {}
func (*MemberExpression) _expr()        {}
func (*PrivateDotExpression) _expr()    {}
func (*CallExpression) _expr()          {}
func (*NewExpression) _expr()           {}
func (*OptionalChain) _expr()           {}
func (*SpreadElement) _expr()           {}
func (*ParenthesizedExpression) _expr() {}
func (*TemplateLiteral) _expr()         {}
func (*ThisExpression) _expr()          {}
func (*SuperExpression) _expr()         {}
func (*MetaProperty) _expr()            {}
func (*ImportExpression) _expr()        {}
func (*ArrowFunctionLiteral) _expr()    {}
func (*FunctionLiteral) _expr()         {}
