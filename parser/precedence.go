package parser

import "github.com/t14raptor/jsarena/token"

// Precedence is the left binding power of a binary operator.
//
// Even values are left-associative and odd values right-associative. The
// operand on the right is parsed with a minimum of lbp ^ 1, which stops at
// an operator of the same level for even values and continues for odd
// ones, so associativity needs no separate check.
type Precedence uint8

const (
	PrecedenceLowest            Precedence = 0
	PrecedenceNullishCoalescing Precedence = 12 // ??
	PrecedenceLogicalOr         Precedence = 14 // ||
	PrecedenceLogicalAnd        Precedence = 16 // &&
	PrecedenceBitwiseOr         Precedence = 18 // |
	PrecedenceBitwiseXor        Precedence = 20 // ^
	PrecedenceBitwiseAnd        Precedence = 22 // &
	PrecedenceEquals            Precedence = 24 // == != === !==
	PrecedenceCompare           Precedence = 26 // < > <= >= instanceof in, also as and satisfies
	PrecedenceShift             Precedence = 28 // << >> >>>
	PrecedenceAdd               Precedence = 30 // + -
	PrecedenceMultiply          Precedence = 32 // * / %
	PrecedenceExponentiation    Precedence = 35 // **
)

var tokenPrecedence [256]Precedence

func init() {
	for kind, prec := range map[token.Token]Precedence{
		token.Coalesce:           PrecedenceNullishCoalescing,
		token.LogicalOr:          PrecedenceLogicalOr,
		token.LogicalAnd:         PrecedenceLogicalAnd,
		token.Or:                 PrecedenceBitwiseOr,
		token.ExclusiveOr:        PrecedenceBitwiseXor,
		token.And:                PrecedenceBitwiseAnd,
		token.Equal:              PrecedenceEquals,
		token.StrictEqual:        PrecedenceEquals,
		token.NotEqual:           PrecedenceEquals,
		token.StrictNotEqual:     PrecedenceEquals,
		token.Less:               PrecedenceCompare,
		token.Greater:            PrecedenceCompare,
		token.LessOrEqual:        PrecedenceCompare,
		token.GreaterOrEqual:     PrecedenceCompare,
		token.InstanceOf:         PrecedenceCompare,
		token.In:                 PrecedenceCompare,
		token.ShiftLeft:          PrecedenceShift,
		token.ShiftRight:         PrecedenceShift,
		token.UnsignedShiftRight: PrecedenceShift,
		token.Plus:               PrecedenceAdd,
		token.Minus:              PrecedenceAdd,
		token.Multiply:           PrecedenceMultiply,
		token.Slash:              PrecedenceMultiply,
		token.Remainder:          PrecedenceMultiply,
		token.Exponent:           PrecedenceExponentiation,
	} {
		tokenPrecedence[kind] = prec
	}
}

// kindToPrecedence is zero for tokens that are not binary operators.
func kindToPrecedence(kind token.Token) Precedence {
	return tokenPrecedence[kind]
}

func isLogicalOperator(kind token.Token) bool {
	return kind == token.LogicalAnd || kind == token.LogicalOr || kind == token.Coalesce
}
