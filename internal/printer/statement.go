package printer

import (
	"strconv"
	"strings"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/token"
)

func (s *state) program(n *ast.Program) {
	first := true
	next := func() {
		if !first {
			s.lineAndPad()
		}
		first = false
	}
	if n.Hashbang != nil {
		next()
		s.write("#!", n.Hashbang.Value)
	}
	for i := range n.Directives {
		next()
		s.stringLiteral(n.Directives[i].Expression)
		s.write(";")
	}
	for i := range n.Body {
		next()
		s.gen(n.Body[i].Stmt)
	}
	if !first {
		s.line()
	}
}

func (s *state) block(n *ast.BlockStatement) {
	if len(n.List) == 0 {
		s.write("{}")
		return
	}
	s.write("{")
	s.indent++
	for i := range n.List {
		s.lineAndPad()
		s.gen(n.List[i].Stmt)
	}
	s.indent--
	s.lineAndPad()
	s.write("}")
}

// body writes the body of a compound statement after a space.
func (s *state) body(n *ast.Statement) {
	s.write(" ")
	s.gen(n.Stmt)
}

func (s *state) statement(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.BadStatement:
	case *ast.EmptyStatement:
		s.write(";")
	case *ast.BlockStatement:
		s.block(n)
	case *ast.ExpressionStatement:
		s.statementExpr(n.Expression)
		s.write(";")
	case *ast.VariableDeclaration:
		s.declaration(n, false)
		s.write(";")
	case *ast.FunctionDeclaration:
		if n.Declare {
			s.write("declare ")
		}
		s.function(n.Function)
	case *ast.ClassDeclaration:
		if n.Declare {
			s.write("declare ")
		}
		s.class(n.Class)
	case *ast.DebuggerStatement:
		s.write("debugger;")
	case *ast.BreakStatement:
		s.write("break")
		if n.Label != nil {
			s.write(" ", n.Label.Name)
		}
		s.write(";")
	case *ast.ContinueStatement:
		s.write("continue")
		if n.Label != nil {
			s.write(" ", n.Label.Name)
		}
		s.write(";")
	case *ast.ReturnStatement:
		s.write("return")
		if n.Argument != nil {
			s.write(" ")
			s.expr(n.Argument, levelSequence)
		}
		s.write(";")
	case *ast.ThrowStatement:
		s.write("throw ")
		s.expr(n.Argument, levelSequence)
		s.write(";")
	case *ast.LabelledStatement:
		s.write(n.Label.Name, ":")
		s.body(n.Statement)
	case *ast.IfStatement:
		s.write("if (")
		s.expr(n.Test, levelSequence)
		s.write(")")
		s.body(n.Consequent)
		if n.Alternate != nil {
			s.write(" else")
			s.body(n.Alternate)
		}
	case *ast.WhileStatement:
		s.write("while (")
		s.expr(n.Test, levelSequence)
		s.write(")")
		s.body(n.Body)
	case *ast.DoWhileStatement:
		s.write("do")
		s.body(n.Body)
		s.write(" while (")
		s.expr(n.Test, levelSequence)
		s.write(");")
	case *ast.WithStatement:
		s.write("with (")
		s.expr(n.Object, levelSequence)
		s.write(")")
		s.body(n.Body)
	case *ast.ForStatement:
		s.write("for (")
		if n.Initializer != nil {
			switch init := n.Initializer.ForLoopInit.(type) {
			case *ast.VariableDeclaration:
				s.declaration(init, true)
			case *ast.Expression:
				s.paren(containsIn(init), func() { s.expr(init, levelSequence) })
			}
		}
		s.write(";")
		if n.Test != nil {
			s.write(" ")
			s.expr(n.Test, levelSequence)
		}
		s.write(";")
		if n.Update != nil {
			s.write(" ")
			s.expr(n.Update, levelSequence)
		}
		s.write(")")
		s.body(n.Body)
	case *ast.ForInStatement:
		s.write("for (")
		s.forInto(n.Into)
		s.write(" in ")
		s.expr(n.Source, levelSequence)
		s.write(")")
		s.body(n.Body)
	case *ast.ForOfStatement:
		s.write("for ")
		if n.Await {
			s.write("await ")
		}
		s.write("(")
		s.forInto(n.Into)
		s.write(" of ")
		s.expr(n.Source, levelAssign)
		s.write(")")
		s.body(n.Body)
	case *ast.SwitchStatement:
		s.write("switch (")
		s.expr(n.Discriminant, levelSequence)
		s.write(") {")
		s.indent++
		for i := range n.Body {
			s.lineAndPad()
			s.caseClause(&n.Body[i])
		}
		s.indent--
		s.lineAndPad()
		s.write("}")
	case *ast.TryStatement:
		s.write("try ")
		s.block(n.Body)
		if n.Catch != nil {
			s.write(" catch ")
			if n.Catch.Parameter != nil {
				s.write("(")
				s.gen(n.Catch.Parameter.Target)
				s.write(") ")
			}
			s.block(n.Catch.Body)
		}
		if n.Finally != nil {
			s.write(" finally ")
			s.block(n.Finally)
		}

	case *ast.ImportDeclaration:
		s.importDeclaration(n)
	case *ast.ExportNamedDeclaration:
		s.write("export ")
		if n.Declaration != nil {
			s.gen(n.Declaration.Stmt)
			return
		}
		if n.TypeOnly {
			s.write("type ")
		}
		s.write("{")
		s.list(len(n.Specifiers), func(i int) { s.exportSpecifier(&n.Specifiers[i]) })
		s.write("}")
		if n.Source != nil {
			s.write(" from ")
			s.stringLiteral(n.Source)
		}
		s.write(";")
	case *ast.ExportDefaultDeclaration:
		s.write("export default ")
		if n.Declaration != nil {
			s.gen(n.Declaration.Stmt)
			return
		}
		str := s.sub(n.Expression, levelAssign)
		ambiguous := startsWithWord(str, "function") ||
			startsWithWord(str, "class") ||
			strings.HasPrefix(str, "async function")
		s.paren(ambiguous, func() { s.write(str) })
		s.write(";")
	case *ast.ExportAllDeclaration:
		s.write("export ")
		if n.TypeOnly {
			s.write("type ")
		}
		s.write("*")
		if n.Exported != nil {
			s.write(" as ")
			s.moduleExportName(n.Exported)
		}
		s.write(" from ")
		s.stringLiteral(n.Source)
		s.write(";")

	case *ast.TSInterfaceDeclaration:
		if n.Declare {
			s.write("declare ")
		}
		s.write("interface ", n.Name.Name)
		s.typeParameters(n.TypeParameters)
		if len(n.Extends) > 0 {
			s.write(" extends ")
			s.list(len(n.Extends), func(i int) { s.tsType(&n.Extends[i], typeLevelFunction) })
		}
		s.write(" ")
		s.typeLiteral(n.Body)
	case *ast.TSTypeAliasDeclaration:
		if n.Declare {
			s.write("declare ")
		}
		s.write("type ", n.Name.Name)
		s.typeParameters(n.TypeParameters)
		s.write(" = ")
		s.tsType(n.Type, typeLevelFunction)
		s.write(";")
	case *ast.TSEnumDeclaration:
		if n.Declare {
			s.write("declare ")
		}
		if n.Const {
			s.write("const ")
		}
		s.write("enum ", n.Name.Name, " {")
		if len(n.Members) > 0 {
			s.write(" ")
			s.list(len(n.Members), func(i int) {
				m := &n.Members[i]
				s.gen(m.Name.Expr)
				if m.Initializer != nil {
					s.write(" = ")
					s.expr(m.Initializer, levelAssign)
				}
			})
			s.write(" ")
		}
		s.write("}")
	}
}

func (s *state) caseClause(n *ast.CaseStatement) {
	if n.Test == nil {
		s.write("default:")
	} else {
		s.write("case ")
		s.expr(n.Test, levelSequence)
		s.write(":")
	}
	s.indent++
	for i := range n.Consequent {
		s.lineAndPad()
		s.gen(n.Consequent[i].Stmt)
	}
	s.indent--
}

// declaration writes a variable declaration without its semicolon. In a
// for header, initializers containing the in operator are parenthesized.
func (s *state) declaration(n *ast.VariableDeclaration, header bool) {
	if n.Declare {
		s.write("declare ")
	}
	s.write(n.Token.String(), " ")
	s.list(len(n.List), func(i int) {
		d := &n.List[i]
		s.bindingTarget(d)
		if d.Initializer != nil {
			s.write(" = ")
			s.paren(header && containsIn(d.Initializer), func() { s.expr(d.Initializer, levelAssign) })
		}
	})
}

func (s *state) forInto(into *ast.ForInto) {
	switch n := into.Into.(type) {
	case *ast.VariableDeclaration:
		s.declaration(n, true)
	case *ast.Expression:
		s.expr(n, levelMember)
	}
}

// bindingTarget writes the target of a declarator with its type.
func (s *state) bindingTarget(d *ast.VariableDeclarator) {
	if d.Target != nil {
		s.gen(d.Target.Target)
	}
	if d.Optional {
		s.write("?")
	}
	if d.Definite {
		s.write("!")
	}
	s.typeAnnotation(d.TypeAnnotation)
}

// declarator writes a parameter: its target, type and default value.
func (s *state) declarator(d *ast.VariableDeclarator) {
	s.bindingTarget(d)
	if d.Initializer != nil {
		s.write(" = ")
		s.expr(d.Initializer, levelAssign)
	}
}

// containsIn reports whether e holds an in operator outside of a nested
// function.
func containsIn(e *ast.Expression) bool {
	found := false
	ast.Inspect(e, func(node ast.Node) bool {
		switch n := node.(type) {
		case *ast.FunctionLiteral, *ast.ArrowFunctionLiteral, *ast.ClassLiteral:
			return false
		case *ast.BinaryExpression:
			if n.Operator == token.In {
				found = true
			}
		}
		return !found
	})
	return found
}

func (s *state) moduleExportName(n *ast.ModuleExportName) {
	if n.Quoted {
		s.write(strconv.Quote(n.Name))
		return
	}
	s.write(n.Name)
}

func (s *state) importDeclaration(n *ast.ImportDeclaration) {
	s.write("import ")
	if n.TypeOnly {
		s.write("type ")
	}
	if len(n.Specifiers) == 0 {
		s.stringLiteral(n.Source)
		s.write(";")
		return
	}

	var named []*ast.ImportSpecifier
	wrote := false
	sep := func() {
		if wrote {
			s.write(", ")
		}
		wrote = true
	}
	for i := range n.Specifiers {
		spec := &n.Specifiers[i]
		switch spec.Kind {
		case ast.ImportDefault:
			sep()
			s.write(spec.Local.Name)
		case ast.ImportNamespace:
			sep()
			s.write("* as ", spec.Local.Name)
		default:
			named = append(named, spec)
		}
	}
	if named != nil {
		sep()
		s.write("{")
		s.list(len(named), func(i int) {
			spec := named[i]
			if spec.TypeOnly {
				s.write("type ")
			}
			s.moduleExportName(spec.Imported)
			if spec.Imported.Quoted || spec.Imported.Name != spec.Local.Name {
				s.write(" as ", spec.Local.Name)
			}
		})
		s.write("}")
	}
	s.write(" from ")
	s.stringLiteral(n.Source)
	s.write(";")
}

func (s *state) exportSpecifier(n *ast.ExportSpecifier) {
	if n.TypeOnly {
		s.write("type ")
	}
	s.moduleExportName(n.Local)
	if n.Exported.Name != n.Local.Name || n.Exported.Quoted != n.Local.Quoted {
		s.write(" as ")
		s.moduleExportName(n.Exported)
	}
}
