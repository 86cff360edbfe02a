package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/t14raptor/jsarena/ast"
)

// Renderer prints diagnostics for one source file as
//
//	path:line:col: severity: message
//	 line | source text
//	      |    ^^^ label
//	  help: text
type Renderer struct {
	Path  string
	Index *LineIndex
}

// NewRenderer returns a Renderer for src.
func NewRenderer(path, src string) *Renderer {
	return &Renderer{Path: path, Index: NewLineIndex(src)}
}

// Render writes every diagnostic in l to w.
func (r *Renderer) Render(w io.Writer, l List) error {
	for _, d := range l {
		if _, err := io.WriteString(w, r.Format(d)); err != nil {
			return err
		}
	}
	return nil
}

// Format returns the rendering of a single diagnostic. Annotations follow
// the primary snippet, each with its own source line.
func (r *Renderer) Format(d Diagnostic) string {
	var b strings.Builder
	pos := r.Index.Position(d.Span.Start)
	fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", r.Path, pos.Line, pos.Column, d.Severity, d.Message)

	gutter := len(fmt.Sprint(pos.Line))
	for _, a := range d.Annotations {
		gutter = max(gutter, len(fmt.Sprint(r.Index.Position(a.Span.Start).Line)))
	}
	r.snippet(&b, gutter, d.Span, d.Label)
	for _, a := range d.Annotations {
		r.snippet(&b, gutter, a.Span, a.Label)
	}
	if d.Help != "" {
		fmt.Fprintf(&b, "  help: %s\n", d.Help)
	}
	return b.String()
}

// snippet writes the line holding span.Start and underlines span up to the
// end of that line.
func (r *Renderer) snippet(b *strings.Builder, gutter int, span ast.Span, label string) {
	pos := r.Index.Position(span.Start)
	text, start := r.Index.Line(span.Start)
	fmt.Fprintf(b, " %*d | %s\n", gutter, pos.Line, expandTabs(text))

	lineEnd := start + ast.Idx(len(text))
	from := min(span.Start, lineEnd)
	end := max(from, min(span.End, lineEnd))
	col := width(expandTabs(text[:from-start]))
	carets := max(1, width(expandTabs(text[:end-start]))-col)
	underline := strings.Repeat(" ", col) + strings.Repeat("^", carets)
	if label != "" {
		underline += " " + label
	}
	fmt.Fprintf(b, " %s | %s\n", strings.Repeat(" ", gutter), underline)
}

func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, part := range strings.SplitAfter(s, "\t") {
		if strings.HasSuffix(part, "\t") {
			part = part[:len(part)-1]
			b.WriteString(part)
			col += width(part)
			n := TabstopWidth - col%TabstopWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteString(part)
		col += width(part)
	}
	return b.String()
}
