// Package diagnostics collects and renders the errors and warnings reported
// while parsing.
package diagnostics

import (
	"errors"
	"fmt"

	"github.com/t14raptor/jsarena/ast"
)

// Severity represents how serious a diagnostic is.
type Severity int8

const (
	Error Severity = iota
	Warning
	Advice
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "advice"
	}
}

// Diagnostic is a message attached to a span of source text.
type Diagnostic struct {
	Span     ast.Span
	Severity Severity
	Message  string
	// Label is shown next to the highlighted span.
	Label string
	// Help suggests how to fix the problem.
	Help string
	// Fatal marks a diagnostic after which parsing was abandoned.
	Fatal bool
	// Annotations point at other source locations involved, such as an
	// earlier declaration.
	Annotations []Annotation
}

// Annotation is a secondary labelled span of a Diagnostic.
type Annotation struct {
	Span  ast.Span
	Label string
}

// Error implements error.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s (%d:%d)", d.Message, d.Span.Start, d.Span.End)
}

// Option is applied to a Diagnostic when it is reported.
type Option func(*Diagnostic)

// Help returns an option that sets the help text.
func Help(format string, args ...any) Option {
	return func(d *Diagnostic) { d.Help = fmt.Sprintf(format, args...) }
}

// Label returns an option that sets the span label.
func Label(format string, args ...any) Option {
	return func(d *Diagnostic) { d.Label = fmt.Sprintf(format, args...) }
}

// Annotate returns an option that adds a secondary span.
func Annotate(span ast.Span, format string, args ...any) Option {
	return func(d *Diagnostic) {
		d.Annotations = append(d.Annotations, Annotation{Span: span, Label: fmt.Sprintf(format, args...)})
	}
}

// AsWarning lowers the severity to Warning.
func AsWarning() Option {
	return func(d *Diagnostic) { d.Severity = Warning }
}

// Fatal marks the diagnostic as the one that stopped the parse.
func Fatal() Option {
	return func(d *Diagnostic) { d.Fatal = true }
}

// New builds a diagnostic at span.
func New(span ast.Span, message string, opts ...Option) Diagnostic {
	d := Diagnostic{Span: span, Message: message}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// List is an ordered list of diagnostics.
type List []Diagnostic

// HasErrors reports whether any diagnostic has Error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Err joins the errors in l, or returns nil if there are none.
func (l List) Err() error {
	var errs []error
	for _, d := range l {
		if d.Severity == Error {
			errs = append(errs, d)
		}
	}
	return errors.Join(errs...)
}
