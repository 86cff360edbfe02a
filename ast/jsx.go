package ast

type (
	// JSXName is a tag or attribute name. Member (a.b) and namespaced
	// (a:b) names keep their source text.
	JSXName struct {
		Span
		Name string
	}

	JSXElement struct {
		Span
		Opening  *JSXOpeningElement
		Children []JSXChild
		Closing  *JSXClosingElement `optional:"true"` // nil when self-closing
	}

	JSXOpeningElement struct {
		Span
		Name          *JSXName
		TypeArguments *TSTypeArguments `optional:"true"`
		Attributes    []JSXAttr
		SelfClosing   bool
	}

	JSXClosingElement struct {
		Span
		Name *JSXName
	}

	JSXFragment struct {
		Span
		Children []JSXChild
	}

	// JSXAttr is a *JSXAttribute or a *JSXSpreadAttribute.
	JSXAttr interface {
		Node
		_jsxAttr()
	}

	JSXAttribute struct {
		Span
		Name *JSXName
		// StringLiteral, JSXExpressionContainer, JSXElement or JSXFragment;
		// nil for a bare attribute.
		Value *Expression `optional:"true"`
	}

	JSXSpreadAttribute struct {
		Span
		Argument *Expression
	}

	// JSXChild is a *JSXText, *JSXExpressionContainer, *JSXElement or
	// *JSXFragment.
	JSXChild interface {
		Node
		_jsxChild()
	}

	JSXText struct {
		Span
		Value string
	}

	JSXExpressionContainer struct {
		Span
		Expression *Expression `optional:"true"` // nil for {}
	}
)

func (*JSXElement) _expr()             {}
func (*JSXFragment) _expr()            {}
func (*JSXExpressionContainer) _expr() {}

func (*JSXAttribute) _jsxAttr()       {}
func (*JSXSpreadAttribute) _jsxAttr() {}

func (*JSXText) _jsxChild()                {}
func (*JSXExpressionContainer) _jsxChild() {}
func (*JSXElement) _jsxChild()             {}
func (*JSXFragment) _jsxChild()            {}
