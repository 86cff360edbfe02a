package diagnostics

import (
	"fmt"

	"github.com/t14raptor/jsarena/ast"
)

// Sink is an append-only list of diagnostics owned by a single parse. A
// checkpoint is the current Len; rewinding to it with Truncate discards
// everything reported by a failed speculative parse.
type Sink struct {
	list List
}

func (s *Sink) Push(d Diagnostic) { s.list = append(s.list, d) }

// Error reports an error at span.
func (s *Sink) Error(span ast.Span, message string, opts ...Option) {
	s.Push(New(span, message, opts...))
}

// Errorf reports an error at span with a formatted message.
func (s *Sink) Errorf(span ast.Span, format string, args ...any) {
	s.Push(New(span, fmt.Sprintf(format, args...)))
}

func (s *Sink) Len() int { return len(s.list) }

// Truncate drops every diagnostic after the first n.
func (s *Sink) Truncate(n int) {
	clear(s.list[n:])
	s.list = s.list[:n]
}

// HasFatal reports whether a fatal diagnostic has been reported.
func (s *Sink) HasFatal() bool {
	for _, d := range s.list {
		if d.Fatal {
			return true
		}
	}
	return false
}

// List returns the diagnostics reported so far, in order. The Sink must not
// be used afterwards.
func (s *Sink) List() List {
	l := s.list
	s.list = nil
	return l
}
