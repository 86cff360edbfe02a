// Package parser builds a syntax tree for JavaScript, TypeScript and JSX
// source text. Every node is allocated in a caller supplied
// allocator.Allocator and lives as long as it does.
//
// Parse never fails outright: syntax errors are reported as diagnostics and
// the parser resynchronizes at the next statement boundary, so the Program
// it returns covers as much of the input as could be understood. Only
// errors that leave the token stream undeterminable (an unterminated
// string, an invalid character) abandon the parse.
package parser

import (
	"errors"
	"log/slog"
	"math"

	"github.com/t14raptor/jsarena/allocator"
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
	"github.com/t14raptor/jsarena/parser/scanner"
	"github.com/t14raptor/jsarena/token"
)

// Options configures a parse.
type Options struct {
	SourceType ast.SourceType
	// AllowReturnOutsideFunction accepts return statements at the top
	// level, as CommonJS wrappers do.
	AllowReturnOutsideFunction bool
	// PreserveParens keeps parenthesized expressions as
	// ParenthesizedExpression nodes.
	PreserveParens bool
	// Logger receives debug records about recovery and aborted parses.
	// Nil discards them.
	Logger *slog.Logger
}

// Result is the outcome of Parse.
type Result struct {
	Program     *ast.Program
	Diagnostics diagnostics.List
	// Panicked is set when a fatal error abandoned the parse. Program is
	// then empty apart from its span and source type.
	Panicked bool
	// Module lists the imports and exports of a module. It is empty for
	// scripts and after a fatal error.
	Module ModuleRecord
}

type phase uint8

const (
	phaseBeforeFirstToken phase = iota
	phaseParsing
	phaseRecovering
	phaseDone
)

func (ph phase) String() string {
	switch ph {
	case phaseBeforeFirstToken:
		return "before-first-token"
	case phaseParsing:
		return "parsing"
	case phaseRecovering:
		return "recovering"
	case phaseDone:
		return "done"
	}
	return "unknown"
}

// errAbort unwinds the parser after a fatal diagnostic.
var errAbort = errors.New("parse abandoned")

// Offsets are 32-bit, the last value is reserved.
var maxSourceLen uint64 = math.MaxUint32

type parser struct {
	token   scanner.Token
	prevEnd ast.Idx // end of the last consumed token
	str     string

	opts   Options
	ts     bool
	jsx    bool
	module bool

	scanner *scanner.Scanner
	diags   diagnostics.Sink
	log     *slog.Logger
	phase   phase

	scope *scope
	// The statement being parsed is directly in the program body.
	topLevel bool
	// The class body being parsed belongs to a class with extends.
	derivedClass bool

	recover struct {
		// Scratch when trying to seek to the next statement, etc.
		idx   ast.Idx
		count int
	}
	// Offsets of ( known not to start arrow function parameters.
	notArrow map[ast.Idx]struct{}

	record   ModuleRecord
	exported map[string]ast.Span // first span of each exported name
	depth    int                 // nesting of statements and expressions

	alloc nodeAllocator

	exprBuf []ast.Expression
	stmtBuf []ast.Statement
	propBuf []ast.Property
	declBuf []ast.VariableDeclarator
}

func newParser(a *allocator.Allocator, src string, opts Options) *parser {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &parser{
		str:    src,
		opts:   opts,
		ts:     opts.SourceType.TypeScript,
		jsx:    opts.SourceType.JSX,
		module: opts.SourceType.Module,
		log:    log.With(slog.String("component", "parser")),
		alloc:  newNodeAllocator(a),
	}
}

// Parse parses src into a Program allocated in a. A nil a gets a fresh
// allocator.
func Parse(a *allocator.Allocator, src string, opts Options) Result {
	if a == nil {
		a = allocator.NewAllocator()
	}
	return newParser(a, src, opts).parse()
}

// ParseFile parses the source code of a single JavaScript module and returns
// the corresponding ast.Program node, with the reported errors joined.
func ParseFile(src string) (*ast.Program, error) {
	res := Parse(allocator.NewAllocator(), src, Options{
		SourceType: ast.SourceType{Module: true},
	})
	return res.Program, res.Diagnostics.Err()
}

func (p *parser) parse() (res Result) {
	program := node(&p.alloc, ast.Program{SourceType: p.opts.SourceType})
	if uint64(len(p.str)) >= maxSourceLen {
		p.diags.Error(ast.Span{}, errSourceTooLong, diagnostics.Fatal())
		p.log.Debug("parse abandoned", slog.Int("length", len(p.str)))
		return Result{Program: program, Diagnostics: p.diags.List(), Panicked: true}
	}
	program.End = ast.Idx(len(p.str))

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if r != errAbort {
			panic(r)
		}
		p.enter(phaseDone)
		p.log.Debug("parse abandoned", slog.Int("offset", int(p.token.Start)))
		*program = ast.Program{Span: program.Span, SourceType: program.SourceType}
		res = Result{Program: program, Diagnostics: p.diags.List(), Panicked: true}
	}()

	p.scanner = scanner.New(p.str, p.alloc.arena, &p.diags)
	p.openScope()
	p.scope.strict = p.module
	p.scope.allowAwait = p.module
	p.next()
	if span, ok := p.scanner.FlowPragma(); ok {
		p.fatal(span, errFlow)
	}
	p.enter(phaseParsing)

	if span, ok := p.scanner.Hashbang(); ok {
		program.Hashbang = node(&p.alloc, ast.Hashbang{Span: span, Value: p.str[2:span.End]})
	}
	program.Directives, program.Body = p.parseProgramBody()
	program.Comments = copyOf(&p.alloc, p.scanner.Comments())
	p.closeScope()
	p.enter(phaseDone)

	return Result{Program: program, Diagnostics: p.diags.List(), Module: p.record}
}

func (p *parser) enter(ph phase) {
	if p.phase == ph {
		return
	}
	p.phase = ph
	if ph == phaseRecovering || ph == phaseDone {
		p.log.Debug("phase", slog.String("phase", ph.String()), slog.Int("offset", int(p.token.Start)))
	}
}

// next consumes the current token.
func (p *parser) next() {
	p.prevEnd = p.token.End
	p.sync(p.scanner.Next())
}

// sync makes t, just produced by the scanner, the current token.
func (p *parser) sync(t scanner.Token) {
	p.token = t
	if t.Kind == token.Undetermined {
		// The scanner has reported why.
		panic(errAbort)
	}
}

type checkpoint struct {
	c       scanner.Checkpoint
	tok     scanner.Token
	prevEnd ast.Idx
	diags   int
}

func (p *parser) checkpoint() checkpoint {
	return checkpoint{
		c:       p.scanner.Checkpoint(),
		tok:     p.token,
		prevEnd: p.prevEnd,
		diags:   p.diags.Len(),
	}
}

// rewind returns to c, dropping the diagnostics reported since.
func (p *parser) rewind(c checkpoint) {
	p.scanner.Rewind(c.c)
	p.token = c.tok
	p.prevEnd = c.prevEnd
	p.diags.Truncate(c.diags)
	p.log.Debug("rewind", slog.Int("offset", int(c.tok.Start)))
}

// failedSince reports whether diagnostics were reported after c.
func (p *parser) failedSince(c checkpoint) bool {
	return p.diags.Len() > c.diags
}

func (p *parser) peek() scanner.Token {
	c := p.scanner.Checkpoint()
	n := p.diags.Len()
	tok := p.scanner.Next()
	p.scanner.Rewind(c)
	p.diags.Truncate(n)
	return tok
}

// value is the decoded value of the current token.
func (p *parser) value() string {
	return p.scanner.Value()
}

func (p *parser) raw() string {
	return p.scanner.Raw(p.token)
}

func (p *parser) at(kind token.Token) bool {
	return p.token.Kind == kind
}

// eat consumes the current token if it is kind.
func (p *parser) eat(kind token.Token) bool {
	if p.token.Kind != kind {
		return false
	}
	p.next()
	return true
}

func (p *parser) canInsertSemicolon() bool {
	switch p.token.Kind {
	case token.Semicolon, token.RightBrace, token.Eof:
		return true
	}
	return p.token.OnNewLine
}

// semicolon ends a statement, with an explicit or an inserted semicolon.
func (p *parser) semicolon() {
	if p.eat(token.Semicolon) || p.canInsertSemicolon() {
		return
	}
	p.errorExpectedSemicolon()
	p.nextStatement()
}

// expect consumes the current token if it is want, and reports an error
// otherwise. The mismatched token is left for the caller.
func (p *parser) expect(want token.Token) bool {
	if p.token.Kind != want {
		p.errorExpected(want)
		return false
	}
	p.next()
	return true
}

// spanFrom covers start to the end of the last consumed token.
func (p *parser) spanFrom(start ast.Idx) ast.Span {
	return ast.Span{Start: start, End: max(start, p.prevEnd)}
}

// copyOf moves a short list built on the heap into the arena.
func copyOf[T any](a *nodeAllocator, src []T) []T {
	if len(src) == 0 {
		return nil
	}
	out := allocator.MakeSlice[T](a.arena, len(src), len(src))
	copy(out, src)
	return out
}
