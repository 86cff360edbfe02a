package ast

type PropertyKind string

const (
	PropertyKindValue       PropertyKind = "value"
	PropertyKindGet         PropertyKind = "get"
	PropertyKindSet         PropertyKind = "set"
	PropertyKindMethod      PropertyKind = "method"
	PropertyKindConstructor PropertyKind = "constructor"
)

type (
	Properties []Property

	Property struct {
		Prop
	}

	// Prop is a member of an object literal or object pattern:
	// PropertyShort, PropertyKeyed or SpreadElement.
	Prop interface {
		Expr
		_property()
	}

	// PropertyShort is {a} or, in patterns, {a = 1}.
	PropertyShort struct {
		Span
		Name        *Identifier
		Initializer *Expression `optional:"true"`
	}

	PropertyKeyed struct {
		Span
		Key      *Expression
		Kind     PropertyKind
		Value    *Expression
		Computed bool
	}
)

func (*PropertyShort) _expr() {}
func (*PropertyKeyed) _expr() {}

func (*PropertyShort) _property() {}
func (*PropertyKeyed) _property() {}
func (*SpreadElement) _property() {}
