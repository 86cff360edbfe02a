package ast

type (
	BooleanLiteral struct {
		Span
		Value bool
	}

	NullLiteral struct {
		Span
	}

	NumberLiteral struct {
		Span
		Value float64
		Raw   string
	}

	BigIntLiteral struct {
		Span
		Raw string // digits including the trailing n
	}

	RegExpLiteral struct {
		Span
		Pattern string
		Flags   string
	}

	StringLiteral struct {
		Span
		Value string
		Raw   string // including quotes
	}
)

func (*BooleanLiteral) _expr() {}
func (*NullLiteral) _expr()    {}
func (*NumberLiteral) _expr()  {}
func (*BigIntLiteral) _expr()  {}
func (*RegExpLiteral) _expr()  {}
func (*StringLiteral) _expr()  {}
