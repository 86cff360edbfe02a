package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

func (p *parser) parseProgramBody() ([]ast.Directive, ast.Statements) {
	var directives []ast.Directive
	body := p.parseStatementList(true, true, &directives)
	return copyOf(&p.alloc, directives), body
}

// parseStatementList parses statements up to the closing } of a block, or
// to the end of the source at the top level. In a program or function body
// (prologue set) leading directives are recognized, and "use strict" turns
// on strict mode; with directives set, they are moved there instead of the
// list.
func (p *parser) parseStatementList(top, prologue bool, directives *[]ast.Directive) ast.Statements {
	mark := len(p.stmtBuf)
	for !p.at(token.Eof) && (top || !p.at(token.RightBrace)) {
		start := p.token.Start
		p.scope.allowLet = true
		p.topLevel = top
		stmt := p.parseStatement()

		if prologue {
			if lit, ok := directiveOf(stmt); ok {
				value := lit.Raw[1 : len(lit.Raw)-1]
				if value == "use strict" {
					p.scope.strict = true
				}
				if directives != nil {
					*directives = append(*directives, ast.Directive{
						Span:       stmt.(*ast.ExpressionStatement).Span,
						Expression: lit,
						Directive:  value,
					})
					continue
				}
			} else {
				prologue = false
			}
		}

		p.stmtBuf = append(p.stmtBuf, ast.Statement{Stmt: stmt})
		if p.token.Start == start && !p.at(token.Eof) {
			// Nothing could be parsed here, skip the token.
			p.next()
		}
	}
	return finish(&p.alloc, &p.stmtBuf, mark)
}

// directiveOf returns the string literal of a directive: an expression
// statement made of a single, unparenthesized string.
func directiveOf(stmt ast.Stmt) (*ast.StringLiteral, bool) {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		return nil, false
	}
	lit, ok := es.Expression.Expr.(*ast.StringLiteral)
	if !ok || lit.Start != es.Start {
		return nil, false
	}
	return lit, true
}

func (p *parser) parseBlockStatement() *ast.BlockStatement {
	start := p.token.Start
	p.expect(token.LeftBrace)
	list := p.parseStatementList(false, false, nil)
	p.expect(token.RightBrace)
	return p.alloc.BlockStatement(p.spanFrom(start), list)
}

func (p *parser) parseEmptyStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	return node(&p.alloc, ast.EmptyStatement{Span: p.spanFrom(start)})
}

func (p *parser) parseStatement() ast.Stmt {
	p.enterNesting()
	defer p.leaveNesting()
	topLevel := p.topLevel
	p.topLevel = false

	switch p.token.Kind {
	case token.Semicolon:
		return p.parseEmptyStatement()
	case token.LeftBrace:
		return p.parseBlockStatement()
	case token.If:
		return p.parseIfStatement()
	case token.Do:
		return p.parseDoWhileStatement()
	case token.While:
		return p.parseWhileStatement()
	case token.For:
		return p.parseForOrForInStatement()
	case token.Break:
		return p.parseBreakStatement()
	case token.Continue:
		return p.parseContinueStatement()
	case token.Debugger:
		return p.parseDebuggerStatement()
	case token.With:
		return p.parseWithStatement()
	case token.Switch:
		return p.parseSwitchStatement()
	case token.Return:
		return p.parseReturnStatement()
	case token.Throw:
		return p.parseThrowStatement()
	case token.Try:
		return p.parseTryStatement()
	case token.Var:
		return p.parseLexicalDeclaration(p.token.Start, false)
	case token.Const:
		if p.ts && p.peek().Kind == token.Enum {
			return p.parseTSEnumDeclaration(p.token.Start, false)
		}
		return p.parseLexicalDeclaration(p.token.Start, false)
	case token.Let:
		if p.letStartsDeclaration() {
			return p.parseLexicalDeclaration(p.token.Start, false)
		}
	case token.Async:
		if next := p.peek(); next.Kind == token.Function && !next.OnNewLine {
			return p.parseFunctionDeclaration(false)
		}
	case token.Function:
		return p.parseFunctionDeclaration(false)
	case token.Class:
		return p.parseClassDeclaration(p.token.Start, false, false)
	case token.Import:
		if next := p.peek().Kind; next != token.LeftParenthesis && next != token.Period {
			return p.parseImportDeclaration(topLevel)
		}
	case token.Export:
		return p.parseExportDeclaration(topLevel)
	case token.Interface, token.Type, token.Enum, token.Declare, token.Abstract:
		if p.ts {
			if stmt := p.parseTSDeclaration(p.token.Start, false); stmt != nil {
				return stmt
			}
		}
	}

	start := p.token.Start
	expression := p.parseExpression()

	if identifier, ok := expression.Expr.(*ast.Identifier); ok && p.at(token.Colon) && identifier.Start == start {
		return p.parseLabelledStatement(identifier)
	}

	p.semicolon()
	return p.alloc.ExpressionStatement(p.spanFrom(start), expression)
}

// letStartsDeclaration reports whether the let at the cursor starts a
// declaration rather than naming a variable.
func (p *parser) letStartsDeclaration() bool {
	next := p.peek()
	switch {
	case next.Kind == token.LeftBracket:
		return true
	case next.Kind == token.LeftBrace || token.ID(next.Kind) && next.Kind != token.In && next.Kind != token.InstanceOf:
		// In a single-statement context this is only reported as an error
		// when the declaration is on the same line.
		return p.scope.allowLet || !next.OnNewLine
	}
	return false
}

func (p *parser) parseLabelledStatement(label *ast.Identifier) ast.Stmt {
	p.next() // :
	for _, value := range p.scope.labels {
		if label.Name == value {
			p.errorf(label.Span, errDuplicateLabel, label.Name)
		}
	}
	p.scope.labels = append(p.scope.labels, label.Name) // Push the label
	p.scope.allowLet = false
	statement := p.parseStatement()
	p.scope.labels = p.scope.labels[:len(p.scope.labels)-1] // Pop the label
	return node(&p.alloc, ast.LabelledStatement{
		Span:      p.spanFrom(label.Start),
		Label:     label,
		Statement: p.alloc.Statement(statement),
	})
}

func (p *parser) parseTryStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	n := ast.TryStatement{Body: p.parseBlockStatement()}

	if p.at(token.Catch) {
		catchStart := p.token.Start
		p.next()
		var parameter *ast.BindingTarget
		if p.eat(token.LeftParenthesis) {
			parameter = p.alloc.BindingTarget(p.parseBindingTarget())
			if p.ts && p.at(token.Colon) {
				// catch (e: unknown)
				p.parseTSTypeAnnotation()
			}
			p.expect(token.RightParenthesis)
		}
		body := p.parseBlockStatement()
		n.Catch = node(&p.alloc, ast.CatchStatement{
			Span:      p.spanFrom(catchStart),
			Parameter: parameter,
			Body:      body,
		})
	}

	if p.eat(token.Finally) {
		n.Finally = p.parseBlockStatement()
	}

	n.Span = p.spanFrom(start)
	if n.Catch == nil && n.Finally == nil {
		p.error(n.Span, errMissingCatchFinally)
	}
	return node(&p.alloc, n)
}

func (p *parser) parseDebuggerStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	p.semicolon()
	return node(&p.alloc, ast.DebuggerStatement{Span: p.spanFrom(start)})
}

func (p *parser) parseReturnStatement() ast.Stmt {
	start := p.token.Start
	p.next()

	if !p.scope.inFunction && !p.opts.AllowReturnOutsideFunction {
		p.error(p.spanFrom(start), errIllegalReturn)
	}

	var argument *ast.Expression
	if !p.canInsertSemicolon() {
		argument = p.parseExpression()
	}
	p.semicolon()

	return node(&p.alloc, ast.ReturnStatement{Span: p.spanFrom(start), Argument: argument})
}

func (p *parser) parseThrowStatement() ast.Stmt {
	start := p.token.Start
	p.next()

	if p.token.OnNewLine {
		p.errorf(p.spanFrom(start), errIllegalNewline, token.Throw)
	}
	argument := p.parseExpression()
	p.semicolon()

	return node(&p.alloc, ast.ThrowStatement{Span: p.spanFrom(start), Argument: argument})
}

func (p *parser) parseSwitchStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	p.expect(token.LeftParenthesis)
	discriminant := p.parseExpression()
	p.expect(token.RightParenthesis)
	p.expect(token.LeftBrace)

	inSwitch := p.scope.inSwitch
	p.scope.inSwitch = true
	defer func() {
		p.scope.inSwitch = inSwitch
	}()

	var body []ast.CaseStatement
	seenDefault := false
	for !p.at(token.RightBrace) && !p.at(token.Eof) {
		if !p.at(token.Case) && !p.at(token.Default) {
			p.errorExpected(token.Case)
			p.nextStatement()
			if p.at(token.RightBrace) || p.at(token.Eof) {
				break
			}
			continue
		}
		clause := p.parseCaseStatement()
		if clause.Test == nil {
			if seenDefault {
				p.error(clause.Span, errDuplicateDefault)
			}
			seenDefault = true
		}
		body = append(body, clause)
	}
	p.expect(token.RightBrace)

	return node(&p.alloc, ast.SwitchStatement{
		Span:         p.spanFrom(start),
		Discriminant: discriminant,
		Body:         copyOf(&p.alloc, body),
	})
}

func (p *parser) parseCaseStatement() ast.CaseStatement {
	start := p.token.Start
	n := ast.CaseStatement{}
	if !p.eat(token.Default) {
		p.next() // case
		n.Test = p.parseExpression()
	}
	p.expect(token.Colon)

	mark := len(p.stmtBuf)
	for {
		switch p.token.Kind {
		case token.Eof, token.RightBrace, token.Case, token.Default:
			n.Consequent = finish(&p.alloc, &p.stmtBuf, mark)
			n.Span = p.spanFrom(start)
			return n
		}
		before := p.token.Start
		p.scope.allowLet = true
		p.topLevel = false
		stmt := p.parseStatement()
		p.stmtBuf = append(p.stmtBuf, ast.Statement{Stmt: stmt})
		if p.token.Start == before {
			p.next()
		}
	}
}

func (p *parser) parseWithStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	if p.scope.strict {
		p.error(p.spanFrom(start), errStrictWith)
	}
	p.expect(token.LeftParenthesis)
	object := p.parseExpression()
	p.expect(token.RightParenthesis)
	p.scope.allowLet = false
	body := p.parseStatement()

	return node(&p.alloc, ast.WithStatement{
		Span:   p.spanFrom(start),
		Object: object,
		Body:   p.alloc.Statement(body),
	})
}

func (p *parser) parseIterationStatement() *ast.Statement {
	inIteration := p.scope.inIteration
	p.scope.inIteration = true
	defer func() {
		p.scope.inIteration = inIteration
	}()
	p.scope.allowLet = false
	return p.alloc.Statement(p.parseStatement())
}

func (p *parser) parseForIn(start ast.Idx, into *ast.ForInto) ast.Stmt {
	// Already have consumed "<into> in"

	source := p.parseExpression()
	p.expect(token.RightParenthesis)
	body := p.parseIterationStatement()

	return node(&p.alloc, ast.ForInStatement{
		Span:   p.spanFrom(start),
		Into:   into,
		Source: source,
		Body:   body,
	})
}

func (p *parser) parseForOf(start ast.Idx, into *ast.ForInto, await bool) ast.Stmt {
	// Already have consumed "<into> of"

	allowIn := p.scope.allowIn
	p.scope.allowIn = true
	source := p.parseAssignmentExpression()
	p.scope.allowIn = allowIn
	p.expect(token.RightParenthesis)
	body := p.parseIterationStatement()

	return node(&p.alloc, ast.ForOfStatement{
		Span:   p.spanFrom(start),
		Into:   into,
		Source: source,
		Body:   body,
		Await:  await,
	})
}

func (p *parser) parseFor(start ast.Idx, initializer *ast.ForLoopInitializer) ast.Stmt {
	// Already have consumed "<initializer> ;"

	var test, update *ast.Expression

	if !p.at(token.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(token.Semicolon)

	if !p.at(token.RightParenthesis) {
		update = p.parseExpression()
	}
	p.expect(token.RightParenthesis)
	body := p.parseIterationStatement()

	return node(&p.alloc, ast.ForStatement{
		Span:        p.spanFrom(start),
		Initializer: initializer,
		Test:        test,
		Update:      update,
		Body:        body,
	})
}

func (p *parser) parseForOrForInStatement() ast.Stmt {
	start := p.token.Start
	p.next()

	await := false
	if p.at(token.Await) && p.scope.allowAwait {
		await = true
		p.next()
	}
	p.expect(token.LeftParenthesis)

	var initializer *ast.ForLoopInitializer
	var into *ast.ForInto
	forIn, forOf := false, false

	if !p.at(token.Semicolon) {
		allowIn := p.scope.allowIn
		p.scope.allowIn = false

		tok := p.token.Kind
		if tok == token.Let {
			if next := p.peek().Kind; next != token.LeftBracket && next != token.LeftBrace && !p.isBindingIdentifier(next) {
				tok = token.Identifier
			}
		}
		if tok == token.Var || tok == token.Let || tok == token.Const {
			declStart := p.token.Start
			p.next()

			list := p.parseVariableDeclarationList()
			if len(list) == 1 {
				if p.eat(token.In) {
					forIn = true
				} else if p.eat(token.Of) {
					forOf = true
				}
			}
			decl := p.alloc.VariableDeclaration(p.spanFrom(declStart), tok, list)
			if forIn || forOf {
				if list[0].Initializer != nil {
					p.error(list[0].Span, errForInInitializer)
				}
				into = node(&p.alloc, ast.ForInto{Into: decl})
			} else {
				p.checkDeclaratorInitializers(tok, list)
				initializer = node(&p.alloc, ast.ForLoopInitializer{ForLoopInit: decl})
			}
		} else {
			parenthesized := p.at(token.LeftParenthesis)
			expr := p.parseExpression()
			if p.eat(token.In) {
				forIn = true
			} else if p.eat(token.Of) {
				forOf = true
			}
			if forIn || forOf {
				expr = p.reinterpretAsForTarget(expr, parenthesized)
				into = node(&p.alloc, ast.ForInto{Into: expr})
			} else {
				initializer = node(&p.alloc, ast.ForLoopInitializer{ForLoopInit: expr})
			}
		}
		p.scope.allowIn = allowIn
	}

	if forIn {
		return p.parseForIn(start, into)
	}
	if forOf {
		return p.parseForOf(start, into, await)
	}
	if await {
		p.errorExpected(token.Of)
	}

	p.expect(token.Semicolon)
	return p.parseFor(start, initializer)
}

// reinterpretAsForTarget checks the left side of a for-in or for-of loop.
func (p *parser) reinterpretAsForTarget(expr *ast.Expression, parenthesized bool) *ast.Expression {
	switch e := expr.Expr.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.PrivateDotExpression:
		return expr
	case *ast.ObjectLiteral:
		if !parenthesized {
			return p.reinterpretAsObjectAssignmentPattern(e)
		}
	case *ast.ArrayLiteral:
		if !parenthesized {
			return p.reinterpretAsArrayAssignmentPattern(e)
		}
	case *ast.ParenthesizedExpression:
		if p.isSimpleAssignmentTarget(e.Expression) {
			return expr
		}
	}
	p.error(ast.SpanOf(expr), errForInTarget)
	return p.alloc.InvalidExpression(ast.SpanOf(expr))
}

// checkDeclaratorInitializers reports const and destructuring declarations
// without an initializer.
func (p *parser) checkDeclaratorInitializers(tok token.Token, list ast.VariableDeclarators) {
	for i := range list {
		item := &list[i]
		if item.Initializer != nil {
			continue
		}
		if _, ok := item.Target.Target.(ast.Pattern); ok {
			p.errorf(item.Span, errMissingInitializer, "destructuring")
		} else if tok == token.Const && !p.opts.SourceType.Definition {
			p.errorf(item.Span, errMissingInitializer, "const")
		}
	}
}

func (p *parser) parseLexicalDeclaration(start ast.Idx, declare bool) *ast.VariableDeclaration {
	tok := p.token.Kind
	p.next()
	if !p.scope.allowLet && tok != token.Var {
		p.error(p.spanFrom(start), errLexicalInSingle)
	}

	list := p.parseVariableDeclarationList()
	if !declare {
		p.checkDeclaratorInitializers(tok, list)
	}
	p.semicolon()

	decl := p.alloc.VariableDeclaration(p.spanFrom(start), tok, list)
	decl.Declare = declare
	return decl
}

func (p *parser) parseDoWhileStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	body := p.parseIterationStatement()

	p.expect(token.While)
	p.expect(token.LeftParenthesis)
	test := p.parseExpression()
	p.expect(token.RightParenthesis)
	// do {} while (x) may be followed by anything, even on the same line.
	p.eat(token.Semicolon)

	return node(&p.alloc, ast.DoWhileStatement{
		Span: p.spanFrom(start),
		Test: test,
		Body: body,
	})
}

func (p *parser) parseWhileStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	p.expect(token.LeftParenthesis)
	test := p.parseExpression()
	p.expect(token.RightParenthesis)
	body := p.parseIterationStatement()

	return node(&p.alloc, ast.WhileStatement{
		Span: p.spanFrom(start),
		Test: test,
		Body: body,
	})
}

func (p *parser) parseIfStatement() ast.Stmt {
	start := p.token.Start
	p.next()
	p.expect(token.LeftParenthesis)
	n := ast.IfStatement{Test: p.parseExpression()}
	p.expect(token.RightParenthesis)

	p.scope.allowLet = false
	n.Consequent = p.alloc.Statement(p.parseStatement())

	if p.eat(token.Else) {
		p.scope.allowLet = false
		n.Alternate = p.alloc.Statement(p.parseStatement())
	}

	n.Span = p.spanFrom(start)
	return node(&p.alloc, n)
}

func (p *parser) parseBreakStatement() ast.Stmt {
	start := p.token.Start
	p.next()

	var label *ast.Identifier
	if !p.canInsertSemicolon() && p.isBindingIdentifier(p.token.Kind) {
		label = p.parseIdentifier()
		if !p.scope.hasLabel(label.Name) {
			p.errorf(label.Span, errUndefinedLabel, label.Name)
		}
	} else if !p.scope.inIteration && !p.scope.inSwitch {
		p.error(p.spanFrom(start), errIllegalBreak)
	}
	p.semicolon()

	return node(&p.alloc, ast.BreakStatement{Span: p.spanFrom(start), Label: label})
}

func (p *parser) parseContinueStatement() ast.Stmt {
	start := p.token.Start
	p.next()

	var label *ast.Identifier
	if !p.canInsertSemicolon() && p.isBindingIdentifier(p.token.Kind) {
		label = p.parseIdentifier()
		if !p.scope.hasLabel(label.Name) {
			p.errorf(label.Span, errUndefinedLabel, label.Name)
		}
	}
	if !p.scope.inIteration {
		p.error(p.spanFrom(start), errIllegalContinue)
	}
	p.semicolon()

	return node(&p.alloc, ast.ContinueStatement{Span: p.spanFrom(start), Label: label})
}

// statementKeyword reports whether a statement can start with kind.
func statementKeyword(kind token.Token) bool {
	switch kind {
	case token.Var, token.Let, token.Const, token.If, token.For, token.While,
		token.Do, token.Return, token.Throw, token.Try, token.Switch,
		token.Break, token.Continue, token.Function, token.Class,
		token.Import, token.Export, token.With, token.Debugger:
		return true
	}
	return false
}

// nextStatement skips tokens after an error, up to the start of the next
// statement: past a semicolon, before a } closing the enclosing block,
// before a statement keyword on a new line, or to the end of the source.
func (p *parser) nextStatement() {
	p.enter(phaseRecovering)
	defer p.enter(phaseParsing)

	depth := 0
	for {
		switch kind := p.token.Kind; {
		case kind == token.Eof:
			return
		case kind == token.Semicolon && depth == 0:
			p.next()
			return
		case kind == token.LeftBrace:
			depth++
		case kind == token.RightBrace:
			if depth == 0 && p.progressed() {
				return
			}
			depth = max(depth-1, 0)
		case statementKeyword(kind) && depth == 0 && p.token.OnNewLine:
			if p.progressed() {
				return
			}
		}
		p.next()
	}
}

// progressed reports whether the parser may stop at the current token:
// only if it has moved since the last stop, or has not stopped here ten
// times already. Otherwise at least one token must be consumed to avoid
// an endless parser loop.
func (p *parser) progressed() bool {
	if p.token.Start > p.recover.idx {
		p.recover.idx = p.token.Start
		p.recover.count = 0
		return true
	}
	if p.token.Start == p.recover.idx && p.recover.count < 10 {
		p.recover.count++
		return true
	}
	return false
}
