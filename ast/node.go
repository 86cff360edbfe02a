// Package ast declares the syntax tree built by the parser.
//
// Every node embeds a Span holding the half-open byte range it covers in the
// source. Nodes are allocated in an allocator.Allocator and reference each
// other with plain pointers; a tree lives exactly as long as the arena it
// was built in.
package ast

// Idx is a byte offset into the source text.
type Idx uint32

// Span is the half-open byte range [Start, End) of a node.
type Span struct {
	Start Idx
	End   Idx
}

// Idx0 returns the index of the first byte belonging to the node.
func (s Span) Idx0() Idx { return s.Start }

// Idx1 returns the index of the first byte immediately after the node.
func (s Span) Idx1() Idx { return s.End }

func (s Span) Len() int { return int(s.End - s.Start) }

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool { return s.Start <= o.Start && o.End <= s.End }

// Text returns the source text covered by s.
func (s Span) Text(src string) string { return src[s.Start:s.End] }

// Merge returns the smallest span covering s and o.
func (s Span) Merge(o Span) Span {
	return Span{Start: min(s.Start, o.Start), End: max(s.End, o.End)}
}

type Node interface {
	// Idx0 returns the index of the first byte belonging to the node.
	Idx0() Idx
	// Idx1 returns the index of the first byte immediately after the node.
	Idx1() Idx
}

// SpanOf returns the span of n.
func SpanOf(n Node) Span { return Span{Start: n.Idx0(), End: n.Idx1()} }

type Program struct {
	Span
	SourceType SourceType
	Hashbang   *Hashbang `optional:"true"`
	Directives []Directive
	Body       Statements
	Comments   []Comment
}

// Hashbang is the #! line at the very start of a file.
type Hashbang struct {
	Span
	Value string
}

// Directive is a string literal statement in a directive prologue, such as
// "use strict".
type Directive struct {
	Span
	Expression *StringLiteral
	// Raw directive text between the quotes, escapes left intact.
	Directive string
}

type CommentKind uint8

const (
	LineComment CommentKind = iota
	BlockComment
)

func (k CommentKind) String() string {
	if k == BlockComment {
		return "block"
	}
	return "line"
}

type Comment struct {
	Span
	Kind CommentKind
	// The comment starts on a new line.
	OnNewLine bool
}
