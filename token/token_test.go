package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/t14raptor/jsarena/token"
)

func TestKeyword(t *testing.T) {
	tests := []struct {
		literal string
		want    token.Token
		strict  bool
	}{
		{"if", token.If, false},
		{"import", token.Import, false},
		{"true", token.Boolean, false},
		{"let", token.Let, true},
		{"yield", token.Yield, true},
		{"async", token.Async, false},
		{"satisfies", token.Satisfies, false},
		{"foo", 0, false},
	}
	for _, tt := range tests {
		got, strict := token.Keyword(tt.literal)
		assert.Equal(t, tt.want, got, tt.literal)
		assert.Equal(t, tt.strict, strict, tt.literal)
	}
}

func TestClasses(t *testing.T) {
	assert.True(t, token.ID(token.Identifier))
	assert.True(t, token.ID(token.Class))
	assert.True(t, token.ID(token.Of))
	assert.False(t, token.ID(token.String))

	assert.True(t, token.UnreservedWord(token.Async))
	assert.True(t, token.UnreservedWord(token.Let))
	assert.False(t, token.UnreservedWord(token.Class))
	assert.False(t, token.UnreservedWord(token.Identifier))

	assert.True(t, token.Assignment(token.Assign))
	assert.True(t, token.Assignment(token.CoalesceAssign))
	assert.False(t, token.Assignment(token.Arrow))
	assert.Equal(t, token.UnsignedShiftRight, token.CompoundOperator(token.UnsignedShiftRightAssign))
}

func TestString(t *testing.T) {
	assert.Equal(t, ">>>=", token.UnsignedShiftRightAssign.String())
	assert.Equal(t, "instanceof", token.InstanceOf.String())
	assert.Equal(t, "UNKNOWN", token.Undetermined.String())
	assert.Equal(t, "EOF", token.Eof.String())
}
