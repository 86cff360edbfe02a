package parser

import (
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

// checkModuleItem reports an import or export outside the top level of a
// module.
func (p *parser) checkModuleItem(keyword string, topLevel bool) {
	switch {
	case !p.module:
		p.errorf(p.token.Span(), errModuleSyntax, keyword)
	case !topLevel:
		p.errorf(p.token.Span(), errModuleTopLevel, keyword)
	}
}

func (p *parser) parseModuleSource() *ast.StringLiteral {
	if !p.at(token.String) {
		p.errorExpected(token.String)
		at := ast.Span{Start: p.prevEnd, End: p.prevEnd}
		return p.alloc.StringLiteral(at, "", "")
	}
	return p.parseStringLiteral()
}

func (p *parser) parseModuleExportName() *ast.ModuleExportName {
	span := p.token.Span()
	switch {
	case p.at(token.String):
		name := p.value()
		p.next()
		return node(&p.alloc, ast.ModuleExportName{Span: span, Name: name, Quoted: true})
	case token.ID(p.token.Kind):
		name := p.value()
		p.next()
		return node(&p.alloc, ast.ModuleExportName{Span: span, Name: name})
	}
	p.errorExpected(token.Identifier)
	return node(&p.alloc, ast.ModuleExportName{Span: ast.Span{Start: p.prevEnd, End: p.prevEnd}})
}

// typeModifier reports whether the type at the cursor marks an import or
// export as type-only, rather than naming a binding.
func (p *parser) typeModifier() bool {
	if !p.ts || !p.at(token.Type) {
		return false
	}
	next := p.peek().Kind
	return next == token.LeftBrace || next == token.Multiply || next != token.From && p.isBindingIdentifier(next)
}

func (p *parser) parseImportDeclaration(topLevel bool) ast.Stmt {
	start := p.token.Start
	p.checkModuleItem("import", topLevel)
	p.next()

	n := ast.ImportDeclaration{}
	if p.typeModifier() {
		n.TypeOnly = true
		p.next()
	}

	if p.at(token.String) {
		n.Source = p.parseModuleSource()
		p.semicolon()
		n.Span = p.spanFrom(start)
		return node(&p.alloc, n)
	}

	var specifiers []ast.ImportSpecifier
	if p.isBindingIdentifier(p.token.Kind) {
		local := p.parseBindingIdentifier()
		specifiers = append(specifiers, ast.ImportSpecifier{
			Span:  local.Span,
			Kind:  ast.ImportDefault,
			Local: local,
		})
		if p.eat(token.Comma) && !p.at(token.Multiply) && !p.at(token.LeftBrace) {
			p.errorUnexpectedToken()
		}
	}

	switch {
	case p.at(token.Multiply):
		specStart := p.token.Start
		p.next()
		p.expect(token.As)
		local := p.parseBindingIdentifier()
		specifiers = append(specifiers, ast.ImportSpecifier{
			Span:  p.spanFrom(specStart),
			Kind:  ast.ImportNamespace,
			Local: local,
		})
	case p.at(token.LeftBrace):
		p.next()
		for !p.at(token.RightBrace) && !p.at(token.Eof) {
			specifiers = append(specifiers, p.parseImportSpecifier())
			if !p.at(token.RightBrace) && !p.expect(token.Comma) {
				break
			}
		}
		p.expect(token.RightBrace)
	}
	n.Specifiers = copyOf(&p.alloc, specifiers)

	p.expect(token.From)
	n.Source = p.parseModuleSource()
	p.semicolon()
	n.Span = p.spanFrom(start)
	decl := node(&p.alloc, n)
	if p.module && topLevel {
		p.recordImport(decl)
	}
	return decl
}

func (p *parser) parseImportSpecifier() ast.ImportSpecifier {
	start := p.token.Start
	n := ast.ImportSpecifier{Kind: ast.ImportNamed}
	if p.ts && p.at(token.Type) {
		if next := p.peek().Kind; next != token.Comma && next != token.RightBrace && next != token.As {
			n.TypeOnly = true
			p.next()
		}
	}

	nameToken := p.token
	n.Imported = p.parseModuleExportName()
	if p.eat(token.As) {
		n.Local = p.parseBindingIdentifier()
	} else {
		if n.Imported.Quoted {
			p.errorExpected(token.As)
		} else if !p.isBindingIdentifier(nameToken.Kind) {
			p.errorf(n.Imported.Span, errReservedWord, n.Imported.Name)
		}
		n.Local = p.alloc.Identifier(n.Imported.Span, n.Imported.Name)
	}
	n.Span = p.spanFrom(start)
	return n
}

func (p *parser) parseExportDeclaration(topLevel bool) ast.Stmt {
	start := p.token.Start
	p.checkModuleItem("export", topLevel)
	p.next()
	record := p.module && topLevel

	// export type A = ... declares an alias; only export type { and
	// export type * mark the export as type-only.
	typeOnly := false
	if p.ts && p.at(token.Type) {
		if next := p.peek().Kind; next == token.LeftBrace || next == token.Multiply {
			typeOnly = true
			p.next()
		}
	}

	switch {
	case p.at(token.Multiply):
		p.next()
		n := ast.ExportAllDeclaration{TypeOnly: typeOnly}
		if p.eat(token.As) {
			n.Exported = p.parseModuleExportName()
		}
		p.expect(token.From)
		n.Source = p.parseModuleSource()
		p.semicolon()
		n.Span = p.spanFrom(start)
		if record {
			e := ExportEntry{Span: n.Span, Source: n.Source.Value, TypeOnly: typeOnly}
			if n.Exported != nil {
				e.Span, e.Exported = n.Exported.Span, n.Exported.Name
			}
			p.recordExport(e)
		}
		return node(&p.alloc, n)

	case p.at(token.LeftBrace):
		p.next()
		n := ast.ExportNamedDeclaration{TypeOnly: typeOnly}
		var specifiers []ast.ExportSpecifier
		for !p.at(token.RightBrace) && !p.at(token.Eof) {
			specifiers = append(specifiers, p.parseExportSpecifier())
			if !p.at(token.RightBrace) && !p.expect(token.Comma) {
				break
			}
		}
		p.expect(token.RightBrace)
		n.Specifiers = copyOf(&p.alloc, specifiers)

		if p.eat(token.From) {
			n.Source = p.parseModuleSource()
		} else {
			// Without a source, the local names refer to bindings.
			for i := range n.Specifiers {
				if local := n.Specifiers[i].Local; local.Quoted {
					p.errorExpected(token.From)
					break
				}
			}
		}
		p.semicolon()
		n.Span = p.spanFrom(start)
		if record {
			for i := range n.Specifiers {
				spec := &n.Specifiers[i]
				e := ExportEntry{
					Span:     spec.Exported.Span,
					Exported: spec.Exported.Name,
					TypeOnly: typeOnly || spec.TypeOnly,
				}
				if n.Source != nil {
					e.Source = n.Source.Value
				} else {
					e.Local = spec.Local.Name
				}
				p.recordExport(e)
			}
		}
		return node(&p.alloc, n)

	case p.at(token.Default):
		return p.parseExportDefaultDeclaration(start, record)
	}

	var decl ast.Stmt
	switch p.token.Kind {
	case token.Var, token.Let:
		decl = p.parseLexicalDeclaration(p.token.Start, false)
	case token.Const:
		if p.ts && p.peek().Kind == token.Enum {
			decl = p.parseTSEnumDeclaration(p.token.Start, false)
		} else {
			decl = p.parseLexicalDeclaration(p.token.Start, false)
		}
	case token.Function, token.Async:
		decl = p.parseFunctionDeclaration(false)
	case token.Class:
		decl = p.parseClassDeclaration(p.token.Start, false, false)
	default:
		if p.ts {
			decl = p.parseTSDeclaration(p.token.Start, false)
		}
	}
	if decl == nil {
		p.errorUnexpectedToken()
		p.nextStatement()
		return node(&p.alloc, ast.BadStatement{Span: p.spanFrom(start)})
	}
	if record {
		p.recordExportDeclaration(decl)
	}

	return node(&p.alloc, ast.ExportNamedDeclaration{
		Span:        p.spanFrom(start),
		Declaration: p.alloc.Statement(decl),
	})
}

func (p *parser) parseExportSpecifier() ast.ExportSpecifier {
	start := p.token.Start
	n := ast.ExportSpecifier{}
	if p.ts && p.at(token.Type) {
		if next := p.peek().Kind; next != token.Comma && next != token.RightBrace && next != token.As {
			n.TypeOnly = true
			p.next()
		}
	}
	n.Local = p.parseModuleExportName()
	if p.eat(token.As) {
		n.Exported = p.parseModuleExportName()
	} else {
		n.Exported = n.Local
	}
	n.Span = p.spanFrom(start)
	return n
}

func (p *parser) parseExportDefaultDeclaration(start ast.Idx, record bool) ast.Stmt {
	keyword := p.token.Span()
	p.next() // default

	n := ast.ExportDefaultDeclaration{}
	declStart := p.token.Start
	switch p.token.Kind {
	case token.Function:
		fn := p.parseFunction(true, true, declStart)
		n.Declaration = p.alloc.Statement(node(&p.alloc, ast.FunctionDeclaration{Span: fn.Span, Function: fn}))
	case token.Async:
		if next := p.peek(); next.Kind == token.Function && !next.OnNewLine {
			fn := p.parseFunction(true, true, declStart)
			n.Declaration = p.alloc.Statement(node(&p.alloc, ast.FunctionDeclaration{Span: fn.Span, Function: fn}))
		}
	case token.Class:
		class := p.parseClass(true, true, declStart, false)
		n.Declaration = p.alloc.Statement(node(&p.alloc, ast.ClassDeclaration{Span: class.Span, Class: class}))
	case token.Abstract, token.Interface:
		if p.ts {
			if decl := p.parseTSDeclaration(declStart, false); decl != nil {
				n.Declaration = p.alloc.Statement(decl)
			}
		}
	}

	if n.Declaration == nil {
		allowIn := p.scope.allowIn
		p.scope.allowIn = true
		n.Expression = p.parseAssignmentExpression()
		p.scope.allowIn = allowIn
		p.semicolon()
	}
	n.Span = p.spanFrom(start)
	if record {
		e := ExportEntry{Span: keyword, Exported: "default"}
		if n.Declaration != nil {
			e.Local, e.TypeOnly = declaredName(n.Declaration.Stmt)
		}
		p.recordExport(e)
	}
	return node(&p.alloc, n)
}
