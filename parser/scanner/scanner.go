// Package scanner splits JavaScript, TypeScript and JSX source text into
// tokens on demand.
//
// The parser pulls one token at a time with Next. Tokens whose meaning
// depends on syntactic context (regular expressions, template
// continuations, JSX text, the > in nested type arguments) are produced by
// re-lexing the current token through one of the Read* entry points.
package scanner

import (
	"strings"
	"unsafe"

	"github.com/t14raptor/jsarena/allocator"
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
	"github.com/t14raptor/jsarena/token"
)

type Scanner struct {
	Token Token
	// EscapedStr is the decoded value of the current token when
	// Token.HasEscape is set. It lives in the scanner's allocator.
	EscapedStr string

	src   Source
	diags *diagnostics.Sink
	alloc *allocator.Allocator
	buf   []byte

	comments []ast.Comment
	hashbang ast.Span
	failed   bool
}

// New returns a Scanner over src. Decoded token values are allocated in a;
// errors are reported to diags. Either may be nil.
func New(src string, a *allocator.Allocator, diags *diagnostics.Sink) *Scanner {
	if a == nil {
		a = allocator.NewAllocator()
	}
	if diags == nil {
		diags = &diagnostics.Sink{}
	}
	s := &Scanner{
		src:   NewSource(src),
		diags: diags,
		alloc: a,
	}
	s.readHashbang()
	return s
}

// Next scans the next token, skipping whitespace and comments. After a
// fatal error Next returns an Undetermined token once and Eof from then on.
func (s *Scanner) Next() Token {
	s.Token.OnNewLine = false
	s.resetFlags()
	if s.failed {
		s.Token.Kind = token.Eof
		s.Token.Start, s.Token.End = s.src.len, s.src.len
		return s.Token
	}
	for {
		s.Token.Start = s.src.Offset()

		b, ok := s.PeekByte()
		if !ok {
			s.Token.Kind = token.Eof
			break
		}
		if s.readToken(b) {
			break
		}
	}
	s.Token.End = s.src.Offset()
	return s.Token
}

func (s *Scanner) resetFlags() {
	s.Token.HasEscape = false
	s.Token.Octal = false
	s.Token.BadEscape = false
}

type Checkpoint struct {
	pos      ast.Idx
	tok      Token
	escaped  string
	comments int
	failed   bool
}

func (s *Scanner) Checkpoint() Checkpoint {
	return Checkpoint{
		pos:      s.src.pos,
		tok:      s.Token,
		escaped:  s.EscapedStr,
		comments: len(s.comments),
		failed:   s.failed,
	}
}

// Rewind restores the state saved by c. Diagnostics are not touched; the
// caller owns the sink and truncates it itself.
func (s *Scanner) Rewind(c Checkpoint) {
	s.src.pos = c.pos
	s.Token = c.tok
	s.EscapedStr = c.escaped
	s.comments = s.comments[:c.comments]
	s.failed = c.failed
}

// Failed reports whether a fatal error stopped the scanner.
func (s *Scanner) Failed() bool { return s.failed }

// Comments returns the comments scanned so far, in source order.
func (s *Scanner) Comments() []ast.Comment { return s.comments }

// Hashbang returns the span of a leading #! line.
func (s *Scanner) Hashbang() (ast.Span, bool) {
	return s.hashbang, s.hashbang.End > 0
}

// Source returns the text being scanned.
func (s *Scanner) Source() string { return s.src.str }

func (s *Scanner) readHashbang() {
	if b, ok := s.src.PeekTwoBytes(); !ok || b != [2]byte{'#', '!'} {
		return
	}
	s.src.pos = 2
	s.skipToLineEnd()
	s.hashbang = span(0, s.src.pos)
}

// FlowPragma reports a comment marking the file as Flow-typed: one
// containing @flow or @noflow among the comments scanned so far. It is
// meant to be called right after the first token.
func (s *Scanner) FlowPragma() (ast.Span, bool) {
	for _, c := range s.comments {
		text := c.Text(s.src.str)
		for _, tag := range [...]string{"@flow", "@noflow"} {
			for i := strings.Index(text, tag); i >= 0; {
				end := i + len(tag)
				if end == len(text) || !isIdentifierPart(rune(text[end])) {
					return c.Span, true
				}
				next := strings.Index(text[end:], tag)
				if next < 0 {
					break
				}
				i = end + next
			}
		}
	}
	return ast.Span{}, false
}

func (s *Scanner) error(d diagnostics.Diagnostic) {
	s.diags.Push(d)
}

// fatal reports d as the error that stops the scan and marks the current
// token Undetermined.
func (s *Scanner) fatal(d diagnostics.Diagnostic) {
	d.Fatal = true
	s.diags.Push(d)
	s.failed = true
	s.Token.Kind = token.Undetermined
}

func (s *Scanner) Offset() ast.Idx {
	return s.src.Offset()
}

func (s *Scanner) NextRune() (rune, bool) {
	return s.src.NextRune()
}

func (s *Scanner) NextByte() (byte, bool) {
	return s.src.NextByte()
}

func (s *Scanner) ConsumeRune() rune {
	r, _ := s.src.NextRune()
	return r
}

func (s *Scanner) ConsumeByte() byte {
	return s.src.NextByteUnchecked()
}

func (s *Scanner) PeekRune() (rune, bool) {
	return s.src.PeekRune()
}

func (s *Scanner) PeekByte() (byte, bool) {
	return s.src.PeekByte()
}

func (s *Scanner) AdvanceIfByteEquals(b byte) bool {
	return s.src.AdvanceIfByteEquals(b)
}

// startEscaped begins a decoded value with the source text from start to
// the cursor.
func (s *Scanner) startEscaped(start ast.Idx) {
	s.buf = append(s.buf[:0], s.src.FromPositionToCurrent(start)...)
}

// finishEscaped moves the decoded value into the arena.
func (s *Scanner) finishEscaped() {
	s.EscapedStr = s.alloc.AllocString(unsafe.String(unsafe.SliceData(s.buf), len(s.buf)))
	s.Token.HasEscape = true
}
