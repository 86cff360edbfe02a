package ast

type (
	// TSType wraps a type node the same way Expression wraps Expr.
	TSType struct {
		TypeNode
	}

	TypeNode interface {
		Node
		_type()
	}

	// TSTypeAnnotation is ": Type" after a binding, parameter or signature.
	TSTypeAnnotation struct {
		Span
		Type *TSType
	}

	TSTypeParameter struct {
		Span
		Name       *Identifier
		Constraint *TSType `optional:"true"`
		Default    *TSType `optional:"true"`
	}

	TSTypeParameters struct {
		Span
		Params []TSTypeParameter
	}

	TSTypeArguments struct {
		Span
		Params []TSType
	}

	// TSKeywordType is a predefined type such as number or unknown.
	TSKeywordType struct {
		Span
		Keyword string
	}

	// TSTypeReference is a possibly qualified type name: A, A.B<C>.
	TSTypeReference struct {
		Span
		Name          []*Identifier
		TypeArguments *TSTypeArguments `optional:"true"`
	}

	TSLiteralType struct {
		Span
		Literal *Expression
	}

	TSUnionType struct {
		Span
		Types []TSType
	}

	TSIntersectionType struct {
		Span
		Types []TSType
	}

	TSArrayType struct {
		Span
		Element *TSType
	}

	TSIndexedAccessType struct {
		Span
		Object *TSType
		Index  *TSType
	}

	TSTupleType struct {
		Span
		Elements []TSType
	}

	TSRestType struct {
		Span
		Type *TSType
	}

	TSOptionalType struct {
		Span
		Type *TSType
	}

	// TSTypeLiteral is an object type { a: T; m(): U; [k: string]: V }.
	TSTypeLiteral struct {
		Span
		Members []TSPropertySignature
	}

	// TSPropertySignature is a member of an object type or interface. It is
	// a method signature when Params is set and an index signature when
	// IndexType is set.
	TSPropertySignature struct {
		Span
		Key            *Expression
		Computed       bool
		Optional       bool
		Readonly       bool
		Params         *ParameterList    `optional:"true"`
		IndexType      *TSType           `optional:"true"`
		TypeAnnotation *TSTypeAnnotation `optional:"true"`
	}

	TSFunctionType struct {
		Span
		TypeParameters *TSTypeParameters `optional:"true"`
		Params         *ParameterList
		ReturnType     *TSTypeAnnotation
		Constructor    bool // new (...) => T
	}

	// TSTypeQuery is typeof a.b in type position.
	TSTypeQuery struct {
		Span
		Name []*Identifier
	}

	// TSTypeOperator is keyof T, readonly T or unique T.
	TSTypeOperator struct {
		Span
		Operator string
		Type     *TSType
	}

	TSAsExpression struct {
		Span
		Expression *Expression
		Type       *TSType
	}

	TSSatisfiesExpression struct {
		Span
		Expression *Expression
		Type       *TSType
	}

	TSNonNullExpression struct {
		Span
		Expression *Expression
	}

	// TSTypeAssertion is the angle bracket form <T>expr.
	TSTypeAssertion struct {
		Span
		Type       *TSType
		Expression *Expression
	}

	TSInterfaceDeclaration struct {
		Span
		Name           *Identifier
		TypeParameters *TSTypeParameters `optional:"true"`
		Extends        []TSType
		Body           *TSTypeLiteral
		Declare        bool
	}

	TSTypeAliasDeclaration struct {
		Span
		Name           *Identifier
		TypeParameters *TSTypeParameters `optional:"true"`
		Type           *TSType
		Declare        bool
	}

	TSEnumMember struct {
		Span
		Name        *Expression // Identifier or StringLiteral
		Initializer *Expression `optional:"true"`
	}

	TSEnumDeclaration struct {
		Span
		Name    *Identifier
		Members []TSEnumMember
		Const   bool
		Declare bool
	}
)

func (*TSKeywordType) _type()       {}
func (*TSTypeReference) _type()     {}
func (*TSLiteralType) _type()       {}
func (*TSUnionType) _type()         {}
func (*TSIntersectionType) _type()  {}
func (*TSArrayType) _type()         {}
func (*TSIndexedAccessType) _type() {}
func (*TSTupleType) _type()         {}
func (*TSRestType) _type()          {}
func (*TSOptionalType) _type()      {}
func (*TSTypeLiteral) _type()       {}
func (*TSFunctionType) _type()      {}
func (*TSTypeQuery) _type()         {}
func (*TSTypeOperator) _type()      {}

func (*TSAsExpression) _expr()        {}
func (*TSSatisfiesExpression) _expr() {}
func (*TSNonNullExpression) _expr()   {}
func (*TSTypeAssertion) _expr()       {}

func (*TSAsExpression) _bindingTarget()      {}
func (*TSNonNullExpression) _bindingTarget() {}

func (*TSInterfaceDeclaration) _stmt() {}
func (*TSTypeAliasDeclaration) _stmt() {}
func (*TSEnumDeclaration) _stmt()      {}
