package token

import (
	"strconv"
)

// Token is the set of lexical tokens in JavaScript and the TypeScript and
// JSX extensions the parser understands.
type Token uint8

// String returns the string corresponding to the token.
func (t Token) String() string {
	if t == 0 {
		return "UNKNOWN"
	}
	if int(t) < len(token2string) && token2string[t] != "" {
		return token2string[t]
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}

// keyword ...
type keyword struct {
	token Token
	// strict marks words that are reserved only in strict mode code.
	strict bool
}

// Keyword returns the token for literal if it is a reserved or contextual
// keyword, and whether it is reserved in strict mode code only.
func Keyword(literal string) (Token, bool) {
	if k, exists := keywordTable[literal]; exists {
		return k.token, k.strict
	}
	return 0, false
}

// StrictReserved reports whether literal may not be used as an identifier
// in strict mode code.
func StrictReserved(literal string) bool {
	k, ok := keywordTable[literal]
	return ok && k.strict
}

// ID reports whether tokens of this kind carry a name: identifiers, keywords
// and contextual keywords. Every one of them is a valid property name.
func ID(token Token) bool {
	return token >= Identifier
}

// UnreservedWord reports whether the token may be used as a binding
// identifier outside of strict mode.
func UnreservedWord(token Token) bool {
	return token > EscapedReservedWord
}

// Assignment reports whether the token is = or a compound assignment.
func Assignment(token Token) bool {
	return token >= Assign && token <= CoalesceAssign
}

// CompoundOperator returns the binary operator of a compound assignment,
// e.g. Plus for AddAssign.
func CompoundOperator(token Token) Token {
	return compound[token]
}

var compound = map[Token]Token{
	AddAssign:                Plus,
	SubtractAssign:           Minus,
	MultiplyAssign:           Multiply,
	ExponentAssign:           Exponent,
	QuotientAssign:           Slash,
	RemainderAssign:          Remainder,
	AndAssign:                And,
	OrAssign:                 Or,
	ExclusiveOrAssign:        ExclusiveOr,
	ShiftLeftAssign:          ShiftLeft,
	ShiftRightAssign:         ShiftRight,
	UnsignedShiftRightAssign: UnsignedShiftRight,
	LogicalAndAssign:         LogicalAnd,
	LogicalOrAssign:          LogicalOr,
	CoalesceAssign:           Coalesce,
}
