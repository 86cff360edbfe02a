package ast

type (
	ClassLiteral struct {
		Span
		Name               *Identifier       `optional:"true"`
		TypeParameters     *TSTypeParameters `optional:"true"`
		SuperClass         *Expression       `optional:"true"`
		SuperTypeArguments *TSTypeArguments  `optional:"true"`
		Implements         []TSType
		Body               ClassElements
		Abstract           bool
	}

	ClassElements []ClassElement

	ClassElement struct {
		Element
	}

	Element interface {
		Node
		_classElement()
	}

	// Modifiers are the TypeScript modifiers written before a class member.
	Modifiers struct {
		Accessibility string // public, private, protected or empty
		Abstract      bool
		Readonly      bool
		Declare       bool
		Override      bool
	}

	FieldDefinition struct {
		Span
		Modifiers
		Key            *Expression
		TypeAnnotation *TSTypeAnnotation `optional:"true"`
		Initializer    *Expression       `optional:"true"`
		Computed       bool
		Static         bool
		Optional       bool
	}

	MethodDefinition struct {
		Span
		Modifiers
		Key      *Expression
		Kind     PropertyKind // method, get, set or constructor
		Body     *FunctionLiteral
		Computed bool
		Static   bool
		Optional bool
	}

	ClassStaticBlock struct {
		Span
		Block *BlockStatement
	}
)

func (*ClassLiteral) _expr() {}

func (*FieldDefinition) _classElement()  {}
func (*MethodDefinition) _classElement() {}
func (*ClassStaticBlock) _classElement() {}
