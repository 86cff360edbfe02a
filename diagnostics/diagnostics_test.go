package diagnostics_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
)

func TestSinkTruncate(t *testing.T) {
	var s diagnostics.Sink
	s.Error(ast.Span{Start: 0, End: 1}, "first")
	mark := s.Len()
	s.Errorf(ast.Span{Start: 2, End: 3}, "second %d", 2)
	s.Error(ast.Span{Start: 4, End: 5}, "third", diagnostics.Fatal())
	require.True(t, s.HasFatal())

	s.Truncate(mark)
	assert.False(t, s.HasFatal())
	l := s.List()
	require.Len(t, l, 1)
	assert.Equal(t, "first", l[0].Message)
}

func TestListErr(t *testing.T) {
	l := diagnostics.List{
		diagnostics.New(ast.Span{Start: 0, End: 1}, "bad"),
		diagnostics.New(ast.Span{Start: 1, End: 2}, "iffy", diagnostics.AsWarning()),
	}
	assert.True(t, l.HasErrors())
	err := l.Err()
	require.Error(t, err)
	var d diagnostics.Diagnostic
	require.True(t, errors.As(err, &d))
	assert.Equal(t, "bad", d.Message)
	assert.NotContains(t, err.Error(), "iffy")

	assert.NoError(t, l[1:].Err())
	assert.False(t, l[1:].HasErrors())
}

func TestLineIndex(t *testing.T) {
	src := "ab\ncd\r\nef\rg\u2028h"
	idx := diagnostics.NewLineIndex(src)
	assert.Equal(t, 5, idx.Lines())

	tests := []struct {
		off  ast.Idx
		want diagnostics.Position
	}{
		{0, diagnostics.Position{Line: 1, Column: 1}},
		{2, diagnostics.Position{Line: 1, Column: 3}},
		{3, diagnostics.Position{Line: 2, Column: 1}},
		{4, diagnostics.Position{Line: 2, Column: 2}},
		{5, diagnostics.Position{Line: 2, Column: 3}},
		{7, diagnostics.Position{Line: 3, Column: 1}},
		{9, diagnostics.Position{Line: 3, Column: 3}},
		{10, diagnostics.Position{Line: 4, Column: 1}},
		{11, diagnostics.Position{Line: 4, Column: 2}},
		{14, diagnostics.Position{Line: 5, Column: 1}},
		{15, diagnostics.Position{Line: 5, Column: 2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, idx.Position(tt.off), "offset %d", tt.off)
	}

	text, start := idx.Line(4)
	assert.Equal(t, "cd", text)
	assert.Equal(t, ast.Idx(3), start)
}

func TestLineIndexInsideTerminator(t *testing.T) {
	src := "ab\ncd\r\nef\rg\u2028h"
	idx := diagnostics.NewLineIndex(src)

	// The LF of a CRLF, then the second and third bytes of U+2028.
	for _, tt := range []struct {
		off  ast.Idx
		line int
		text string
	}{
		{6, 2, "cd"},
		{12, 4, "g"},
		{13, 4, "g"},
	} {
		assert.Equal(t, tt.line, idx.Position(tt.off).Line, "offset %d", tt.off)
		text, _ := idx.Line(tt.off)
		assert.Equal(t, tt.text, text, "offset %d", tt.off)
	}

	r := diagnostics.NewRenderer("in.js", src)
	assert.NotPanics(t, func() {
		r.Format(diagnostics.New(ast.Span{Start: 6, End: 7}, "inside CRLF"))
		r.Format(diagnostics.New(ast.Span{Start: 12, End: 14}, "inside U+2028"))
	})
}

func TestColumnsUseDisplayWidth(t *testing.T) {
	src := "\tx = '日本'; y"
	idx := diagnostics.NewLineIndex(src)
	assert.Equal(t, 5, idx.Position(1).Column)
	off := ast.Idx(strings.Index(src, "y"))
	// tab (4) + "x = '" (5) + two wide runes (4) + "'; " (3)
	assert.Equal(t, 17, idx.Position(off).Column)
}

func TestRender(t *testing.T) {
	src := "let x = 1;\nconst a = ;\n"
	r := diagnostics.NewRenderer("in.js", src)
	d := diagnostics.New(ast.Span{Start: 21, End: 22}, "Unexpected token",
		diagnostics.Label("expected an expression"),
		diagnostics.Help("Try inserting an expression here"))

	var b strings.Builder
	require.NoError(t, r.Render(&b, diagnostics.List{d}))
	want := "in.js:2:11: error: Unexpected token\n" +
		" 2 | const a = ;\n" +
		"   | " + strings.Repeat(" ", 10) + "^ expected an expression\n" +
		"  help: Try inserting an expression here\n"
	assert.Equal(t, want, b.String())
}

func TestRenderAnnotations(t *testing.T) {
	src := strings.Repeat("\n", 8) + "export default 1;\nexport default 2;\n"
	r := diagnostics.NewRenderer("m.js", src)
	d := diagnostics.New(ast.Span{Start: 33, End: 40}, "Duplicated export 'default'",
		diagnostics.Label("It cannot be redeclared here"),
		diagnostics.Annotate(ast.Span{Start: 15, End: 22}, "Export has already been declared here"))

	want := "m.js:10:8: error: Duplicated export 'default'\n" +
		" 10 | export default 2;\n" +
		"    |        ^^^^^^^ It cannot be redeclared here\n" +
		"  9 | export default 1;\n" +
		"    |        ^^^^^^^ Export has already been declared here\n"
	assert.Equal(t, want, r.Format(d))
}
