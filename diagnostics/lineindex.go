package diagnostics

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/tidwall/btree"

	"github.com/t14raptor/jsarena/ast"
)

// TabstopWidth is the number of columns a tab is rendered as.
const TabstopWidth = 4

// LineIndex maps byte offsets to line and column positions.
type LineIndex struct {
	src string
	// Keys are the offsets of each line's terminator (or the end of the
	// source for the last line).
	lines btree.Map[ast.Idx, line]
}

type line struct {
	start ast.Idx
	num   int
}

// Position is a 1-based line and column. Columns count display cells, not
// bytes.
type Position struct {
	Line   int
	Column int
}

// NewLineIndex indexes src. Line terminators are those of ECMAScript: LF,
// CR, CRLF, U+2028 and U+2029.
func NewLineIndex(src string) *LineIndex {
	idx := &LineIndex{src: src}
	start, num := 0, 1
	for i := 0; i < len(src); {
		c := src[i]
		n := 0
		switch {
		case c == '\n':
			n = 1
		case c == '\r':
			n = 1
			if i+1 < len(src) && src[i+1] == '\n' {
				n = 2
			}
		case c == 0xe2 && (strings.HasPrefix(src[i:], "\u2028") || strings.HasPrefix(src[i:], "\u2029")):
			n = 3
		}
		if n == 0 {
			i++
			continue
		}
		idx.lines.Set(ast.Idx(i), line{start: ast.Idx(start), num: num})
		i += n
		start, num = i, num+1
	}
	idx.lines.Set(ast.Idx(len(src)), line{start: ast.Idx(start), num: num})
	return idx
}

func (x *LineIndex) find(off ast.Idx) (end ast.Idx, l line) {
	iter := x.lines.Iter()
	if !iter.Seek(off) {
		iter.Last()
	}
	// Past the first byte of a CRLF or U+2028, off still belongs to the
	// line the terminator ends.
	if iter.Value().start > off {
		iter.Prev()
	}
	return iter.Key(), iter.Value()
}

// Position returns the position of off.
func (x *LineIndex) Position(off ast.Idx) Position {
	_, l := x.find(off)
	off = min(off, ast.Idx(len(x.src)))
	return Position{Line: l.num, Column: 1 + width(x.src[l.start:off])}
}

// Line returns the text of the line containing off, without its
// terminator, and the offset it starts at.
func (x *LineIndex) Line(off ast.Idx) (string, ast.Idx) {
	end, l := x.find(off)
	return x.src[l.start:end], l.start
}

// Lines reports the number of lines.
func (x *LineIndex) Lines() int { return x.lines.Len() }

// width returns the number of display cells s occupies.
func width(s string) int {
	if !strings.ContainsRune(s, '\t') {
		if isASCII(s) {
			return len(s)
		}
		return uniseg.StringWidth(s)
	}
	w := 0
	for _, part := range strings.SplitAfter(s, "\t") {
		if strings.HasSuffix(part, "\t") {
			w += uniseg.StringWidth(part[:len(part)-1])
			w += TabstopWidth - w%TabstopWidth
			continue
		}
		w += uniseg.StringWidth(part)
	}
	return w
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
