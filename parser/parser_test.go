package parser_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/t14raptor/jsarena/allocator"
	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/parser"
	"github.com/t14raptor/jsarena/token"
)

var (
	script = ast.SourceType{}
	module = ast.SourceType{Module: true}
)

func TestIssue26(t *testing.T) {
	code := `const a = {}
const c = { a: 1 }
for (a.b in c) {
  console.log(a.b)
}`
	_, err := parser.ParseFile(code)
	if err != nil {
		t.Fatalf("Failed to parse code: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func parse(code string, st ast.SourceType) parser.Result {
	return parser.Parse(allocator.NewAllocator(), code, parser.Options{SourceType: st})
}

// mustParseAs parses code with the given source type and fails the test if
// anything was reported.
func mustParseAs(t *testing.T, code string, st ast.SourceType) *ast.Program {
	t.Helper()
	res := parse(code, st)
	if len(res.Diagnostics) > 0 {
		t.Fatalf("Failed to parse:\n%s\nError: %v", code, res.Diagnostics.Err())
	}
	return res.Program
}

// mustParse parses code as a script.
func mustParse(t *testing.T, code string) *ast.Program {
	t.Helper()
	return mustParseAs(t, code, script)
}

// mustFailAs verifies that code produces at least one diagnostic.
func mustFailAs(t *testing.T, code string, st ast.SourceType) parser.Result {
	t.Helper()
	res := parse(code, st)
	if len(res.Diagnostics) == 0 {
		t.Errorf("expected parse error for:\n%s", code)
	}
	return res
}

func mustFail(t *testing.T, code string) {
	t.Helper()
	mustFailAs(t, code, script)
}

// firstStmt returns the i-th top-level statement.
func firstStmt(p *ast.Program, i int) ast.Stmt {
	return p.Body[i].Stmt
}

// exprOf extracts the expression of an ExpressionStatement.
func exprOf(s ast.Stmt) ast.Expr {
	return s.(*ast.ExpressionStatement).Expression.Expr
}

// initializerExpr extracts the initializer of the first declarator of a
// VariableDeclaration statement.
func initializerExpr(s ast.Stmt) ast.Expr {
	init := s.(*ast.VariableDeclaration).List[0].Initializer
	if init == nil {
		return nil
	}
	return init.Expr
}

// bodyOf extracts the body of a FunctionDeclaration.
func bodyOf(s ast.Stmt) *ast.BlockStatement {
	return s.(*ast.FunctionDeclaration).Function.Body
}

// ===========================================================================
// AST STRUCTURE VERIFICATION TESTS
// ===========================================================================

func TestArrayLiteralAST(t *testing.T) {
	p := mustParse(t, "var a = [1, 'two', true, null]")
	arr := initializerExpr(firstStmt(p, 0)).(*ast.ArrayLiteral)

	if got := len(arr.Value); got != 4 {
		t.Fatalf("array length = %d; want 4", got)
	}
	if n, ok := arr.Value[0].Expr.(*ast.NumberLiteral); !ok || n.Value != 1 {
		t.Errorf("arr[0] = %#v; want NumberLiteral 1", arr.Value[0].Expr)
	}
	if s, ok := arr.Value[1].Expr.(*ast.StringLiteral); !ok || s.Value != "two" || s.Raw != "'two'" {
		t.Errorf("arr[1] = %#v; want StringLiteral two", arr.Value[1].Expr)
	}
	if b, ok := arr.Value[2].Expr.(*ast.BooleanLiteral); !ok || !b.Value {
		t.Errorf("arr[2] = %#v; want BooleanLiteral true", arr.Value[2].Expr)
	}
	if _, ok := arr.Value[3].Expr.(*ast.NullLiteral); !ok {
		t.Errorf("arr[3] = %T; want NullLiteral", arr.Value[3].Expr)
	}
}

func TestArrayLiteralElisionsAST(t *testing.T) {
	p := mustParse(t, "var a = [1,,2,,3]")
	arr := initializerExpr(firstStmt(p, 0)).(*ast.ArrayLiteral)

	if got := len(arr.Value); got != 5 {
		t.Fatalf("array length = %d; want 5", got)
	}
	for _, i := range []int{1, 3} {
		if arr.Value[i].Expr != nil {
			t.Errorf("arr[%d] = %T; want elision", i, arr.Value[i].Expr)
		}
	}
	for _, i := range []int{0, 2, 4} {
		if _, ok := arr.Value[i].Expr.(*ast.NumberLiteral); !ok {
			t.Errorf("arr[%d] = %T; want NumberLiteral", i, arr.Value[i].Expr)
		}
	}
}

func TestArrayLiteralSpreadAST(t *testing.T) {
	p := mustParse(t, "var a = [...b, c]")
	arr := initializerExpr(firstStmt(p, 0)).(*ast.ArrayLiteral)
	spread, ok := arr.Value[0].Expr.(*ast.SpreadElement)
	if !ok {
		t.Fatalf("arr[0] = %T; want SpreadElement", arr.Value[0].Expr)
	}
	if id := spread.Expression.Expr.(*ast.Identifier); id.Name != "b" {
		t.Errorf("spread argument = %q; want b", id.Name)
	}
}

func TestArgumentListAST(t *testing.T) {
	p := mustParse(t, "f(1, a, ...rest)")
	call := exprOf(firstStmt(p, 0)).(*ast.CallExpression)
	if got := len(call.ArgumentList); got != 3 {
		t.Fatalf("args = %d; want 3", got)
	}
	if _, ok := call.ArgumentList[2].Expr.(*ast.SpreadElement); !ok {
		t.Errorf("arg[2] = %T; want SpreadElement", call.ArgumentList[2].Expr)
	}
}

func TestArgumentListEmptyAST(t *testing.T) {
	p := mustParse(t, "f()")
	call := exprOf(firstStmt(p, 0)).(*ast.CallExpression)
	if got := len(call.ArgumentList); got != 0 {
		t.Errorf("args = %d; want 0", got)
	}
}

func TestNestedCallsAST(t *testing.T) {
	p := mustParse(t, "f(g(h(1)))")
	call := exprOf(firstStmt(p, 0)).(*ast.CallExpression)
	for _, name := range []string{"g", "h"} {
		inner, ok := call.ArgumentList[0].Expr.(*ast.CallExpression)
		if !ok {
			t.Fatalf("argument = %T; want CallExpression", call.ArgumentList[0].Expr)
		}
		if id := inner.Callee.Expr.(*ast.Identifier); id.Name != name {
			t.Errorf("callee = %q; want %q", id.Name, name)
		}
		call = inner
	}
}

func TestSequenceExpressionAST(t *testing.T) {
	p := mustParse(t, "a, b, c")
	seq := exprOf(firstStmt(p, 0)).(*ast.SequenceExpression)
	if got := len(seq.Sequence); got != 3 {
		t.Fatalf("sequence = %d; want 3", got)
	}
}

func TestTemplateLiteralAST(t *testing.T) {
	p := mustParse(t, "var t = `a${x}b${y}c`")
	tmpl := initializerExpr(firstStmt(p, 0)).(*ast.TemplateLiteral)
	if got := len(tmpl.Elements); got != 3 {
		t.Fatalf("elements = %d; want 3", got)
	}
	if got := len(tmpl.Expressions); got != 2 {
		t.Fatalf("expressions = %d; want 2", got)
	}
	for i, want := range []string{"a", "b", "c"} {
		if el := tmpl.Elements[i]; el.Cooked != want || el.Raw != want || !el.Valid {
			t.Errorf("element[%d] = %+v; want %q", i, el, want)
		}
	}
}

func TestTemplateLiteralNoSubstitutionAST(t *testing.T) {
	p := mustParse(t, "var t = `plain text`")
	tmpl := initializerExpr(firstStmt(p, 0)).(*ast.TemplateLiteral)
	if len(tmpl.Elements) != 1 || tmpl.Elements[0].Cooked != "plain text" {
		t.Errorf("elements = %+v; want one element \"plain text\"", tmpl.Elements)
	}
}

func TestTaggedTemplateLiteralAST(t *testing.T) {
	p := mustParse(t, "tag`hello ${name}`")
	tmpl := exprOf(firstStmt(p, 0)).(*ast.TemplateLiteral)
	if tmpl.Tag == nil {
		t.Fatal("tag is nil")
	}
	if id := tmpl.Tag.Expr.(*ast.Identifier); id.Name != "tag" {
		t.Errorf("tag = %q; want tag", id.Name)
	}
}

func TestRegExpAST(t *testing.T) {
	p := mustParse(t, "var r = /ab+c/gi")
	re := initializerExpr(firstStmt(p, 0)).(*ast.RegExpLiteral)
	if re.Pattern != "ab+c" || re.Flags != "gi" {
		t.Errorf("regexp = /%s/%s; want /ab+c/gi", re.Pattern, re.Flags)
	}
}

func TestRegExpAfterDivisionAST(t *testing.T) {
	p := mustParse(t, "x = a / b / c")
	assign := exprOf(firstStmt(p, 0)).(*ast.AssignExpression)
	bin := assign.Right.Expr.(*ast.BinaryExpression)
	if bin.Operator != token.Slash {
		t.Errorf("operator = %v; want /", bin.Operator)
	}
}

func TestBlockStatementListAST(t *testing.T) {
	p := mustParse(t, "{ a; b; { c; } }")
	block := firstStmt(p, 0).(*ast.BlockStatement)
	if got := len(block.List); got != 3 {
		t.Fatalf("block statements = %d; want 3", got)
	}
	if _, ok := block.List[2].Stmt.(*ast.BlockStatement); !ok {
		t.Errorf("stmt[2] = %T; want BlockStatement", block.List[2].Stmt)
	}
}

func TestSwitchCaseConsequentAST(t *testing.T) {
	p := mustParse(t, "switch (x) { case 1: a(); b(); case 2: default: c(); }")
	sw := firstStmt(p, 0).(*ast.SwitchStatement)
	if got := len(sw.Body); got != 3 {
		t.Fatalf("cases = %d; want 3", got)
	}
	for i, want := range []int{2, 0, 1} {
		if got := len(sw.Body[i].Consequent); got != want {
			t.Errorf("case[%d] consequent = %d; want %d", i, got, want)
		}
	}
	if sw.Body[2].Test != nil {
		t.Error("default clause has a test")
	}
}

func TestObjectLiteralAST(t *testing.T) {
	p := mustParse(t, "var o = { a: 1, b, [c]: 2, ...d, get e() { return 1; }, f() {} }")
	obj := initializerExpr(firstStmt(p, 0)).(*ast.ObjectLiteral)
	if got := len(obj.Value); got != 6 {
		t.Fatalf("properties = %d; want 6", got)
	}

	if kv := obj.Value[0].Prop.(*ast.PropertyKeyed); kv.Kind != ast.PropertyKindValue || kv.Computed {
		t.Errorf("a: kind = %v computed = %v; want value, false", kv.Kind, kv.Computed)
	}
	if short := obj.Value[1].Prop.(*ast.PropertyShort); short.Name.Name != "b" {
		t.Errorf("shorthand = %q; want b", short.Name.Name)
	}
	if kv := obj.Value[2].Prop.(*ast.PropertyKeyed); !kv.Computed {
		t.Error("[c]: computed = false; want true")
	}
	if _, ok := obj.Value[3].Prop.(*ast.SpreadElement); !ok {
		t.Errorf("property[3] = %T; want SpreadElement", obj.Value[3].Prop)
	}
	if kv := obj.Value[4].Prop.(*ast.PropertyKeyed); kv.Kind != ast.PropertyKindGet {
		t.Errorf("getter kind = %v; want get", kv.Kind)
	}
	method := obj.Value[5].Prop.(*ast.PropertyKeyed)
	if method.Kind != ast.PropertyKindMethod {
		t.Errorf("method kind = %v; want method", method.Kind)
	}
	if _, ok := method.Value.Expr.(*ast.FunctionLiteral); !ok {
		t.Errorf("method value = %T; want FunctionLiteral", method.Value.Expr)
	}
}

func TestComputedPropertyKey(t *testing.T) {
	p := mustParse(t, "var o = { [1 + 2]: 'three' }")
	obj := initializerExpr(firstStmt(p, 0)).(*ast.ObjectLiteral)
	pk := obj.Value[0].Prop.(*ast.PropertyKeyed)
	if !pk.Computed {
		t.Error("computed = false; want true")
	}
	if bin := pk.Key.Expr.(*ast.BinaryExpression); bin.Operator != token.Plus {
		t.Errorf("key op = %v; want +", bin.Operator)
	}
}

func TestForStatementFullAST(t *testing.T) {
	p := mustParse(t, "for (var i = 0; i < 10; i++) {}")
	f := firstStmt(p, 0).(*ast.ForStatement)
	if _, ok := f.Initializer.ForLoopInit.(*ast.VariableDeclaration); !ok {
		t.Errorf("initializer = %T; want VariableDeclaration", f.Initializer.ForLoopInit)
	}
	if _, ok := f.Test.Expr.(*ast.BinaryExpression); !ok {
		t.Errorf("test = %T; want BinaryExpression", f.Test.Expr)
	}
	if u, ok := f.Update.Expr.(*ast.UpdateExpression); !ok || !u.Postfix {
		t.Errorf("update = %#v; want postfix UpdateExpression", f.Update.Expr)
	}
}

func TestForStatementEmptyAST(t *testing.T) {
	p := mustParse(t, "for (;;) {}")
	f := firstStmt(p, 0).(*ast.ForStatement)
	if f.Initializer != nil || f.Test != nil || f.Update != nil {
		t.Errorf("for (;;) has parts: %+v", f)
	}
}

func TestForInOfStatementAST(t *testing.T) {
	p := mustParse(t, "for (const k in o) {} for (x.y of list) {}")
	in := firstStmt(p, 0).(*ast.ForInStatement)
	if decl := in.Into.Into.(*ast.VariableDeclaration); decl.Token != token.Const {
		t.Errorf("for-in declaration = %v; want const", decl.Token)
	}
	of := firstStmt(p, 1).(*ast.ForOfStatement)
	if _, ok := of.Into.Into.(*ast.Expression).Expr.(*ast.MemberExpression); !ok {
		t.Errorf("for-of target = %T; want MemberExpression", of.Into.Into)
	}
}

func TestVariableDeclarationAST(t *testing.T) {
	p := mustParse(t, "let a = 1, b, [c] = d")
	decl := firstStmt(p, 0).(*ast.VariableDeclaration)
	if decl.Token != token.Let {
		t.Errorf("token = %v; want let", decl.Token)
	}
	if got := len(decl.List); got != 3 {
		t.Fatalf("declarators = %d; want 3", got)
	}
	if decl.List[1].Initializer != nil {
		t.Error("b has an initializer")
	}
	if _, ok := decl.List[2].Target.Target.(*ast.ArrayPattern); !ok {
		t.Errorf("target[2] = %T; want ArrayPattern", decl.List[2].Target.Target)
	}
}

func TestIfElseChainAST(t *testing.T) {
	p := mustParse(t, "if (a) {} else if (b) {} else {}")
	first := firstStmt(p, 0).(*ast.IfStatement)
	second, ok := first.Alternate.Stmt.(*ast.IfStatement)
	if !ok {
		t.Fatalf("alternate = %T; want IfStatement", first.Alternate.Stmt)
	}
	if _, ok := second.Alternate.Stmt.(*ast.BlockStatement); !ok {
		t.Errorf("last alternate = %T; want BlockStatement", second.Alternate.Stmt)
	}
}

func TestArrowFunctionAST(t *testing.T) {
	p := mustParse(t, "var f = (a, b) => a + b; var g = async x => { return x; }")
	f := initializerExpr(firstStmt(p, 0)).(*ast.ArrowFunctionLiteral)
	if got := len(f.ParameterList.List); got != 2 {
		t.Errorf("params = %d; want 2", got)
	}
	if _, ok := f.Body.Body.(*ast.Expression); !ok {
		t.Errorf("body = %T; want expression", f.Body.Body)
	}

	g := initializerExpr(firstStmt(p, 1)).(*ast.ArrowFunctionLiteral)
	if !g.Async {
		t.Error("async = false; want true")
	}
	if _, ok := g.Body.Body.(*ast.BlockStatement); !ok {
		t.Errorf("body = %T; want BlockStatement", g.Body.Body)
	}
}

func TestArrowFunctionNotParenthesizedExpression(t *testing.T) {
	p := mustParse(t, "(a, b); (c) => c")
	if _, ok := exprOf(firstStmt(p, 0)).(*ast.SequenceExpression); !ok {
		t.Errorf("stmt[0] = %T; want SequenceExpression", exprOf(firstStmt(p, 0)))
	}
	if _, ok := exprOf(firstStmt(p, 1)).(*ast.ArrowFunctionLiteral); !ok {
		t.Errorf("stmt[1] = %T; want ArrowFunctionLiteral", exprOf(firstStmt(p, 1)))
	}
}

func TestClassBodyAST(t *testing.T) {
	p := mustParse(t, "class A extends B { constructor() { super(); } static m() {} #p = 1; static {} }")
	class := firstStmt(p, 0).(*ast.ClassDeclaration).Class
	if class.Name.Name != "A" || class.SuperClass == nil {
		t.Fatalf("class = %+v; want A extends B", class)
	}
	if got := len(class.Body); got != 4 {
		t.Fatalf("elements = %d; want 4", got)
	}
	if m := class.Body[0].Element.(*ast.MethodDefinition); m.Kind != ast.PropertyKindConstructor {
		t.Errorf("element[0] kind = %v; want constructor", m.Kind)
	}
	if m := class.Body[1].Element.(*ast.MethodDefinition); !m.Static {
		t.Error("element[1] static = false; want true")
	}
	field := class.Body[2].Element.(*ast.FieldDefinition)
	if key, ok := field.Key.Expr.(*ast.PrivateIdentifier); !ok || key.Name != "p" {
		t.Errorf("field key = %#v; want #p", field.Key.Expr)
	}
	if _, ok := class.Body[3].Element.(*ast.ClassStaticBlock); !ok {
		t.Errorf("element[3] = %T; want ClassStaticBlock", class.Body[3].Element)
	}
}

func TestConditionalExpressionAST(t *testing.T) {
	p := mustParse(t, "var x = a ? b : c ? d : e")
	cond := initializerExpr(firstStmt(p, 0)).(*ast.ConditionalExpression)
	if _, ok := cond.Alternate.Expr.(*ast.ConditionalExpression); !ok {
		t.Errorf("alternate = %T; want ConditionalExpression", cond.Alternate.Expr)
	}
}

func TestTryCatchFinallyAST(t *testing.T) {
	p := mustParse(t, "try { a() } catch (e) { b() } finally { c() }")
	try := firstStmt(p, 0).(*ast.TryStatement)
	if try.Catch == nil || try.Finally == nil {
		t.Fatalf("try = %+v; want catch and finally", try)
	}
	if id := try.Catch.Parameter.Target.(*ast.Identifier); id.Name != "e" {
		t.Errorf("catch parameter = %q; want e", id.Name)
	}

	p = mustParse(t, "try {} catch {}")
	if try := firstStmt(p, 0).(*ast.TryStatement); try.Catch.Parameter != nil {
		t.Error("optional catch binding has a parameter")
	}
}

func TestMemberCallChainAST(t *testing.T) {
	// a.b.c(1).d[2]: the top is the computed member [2], whose object is .d,
	// whose object is the call a.b.c(1).
	p := mustParse(t, "a.b.c(1).d[2]")
	top, ok := exprOf(firstStmt(p, 0)).(*ast.MemberExpression)
	if !ok || !top.Computed {
		t.Fatalf("top = %#v; want computed MemberExpression", exprOf(firstStmt(p, 0)))
	}
	dot := top.Object.Expr.(*ast.MemberExpression)
	call, ok := dot.Object.Expr.(*ast.CallExpression)
	if !ok {
		t.Fatalf("dot.object = %T; want CallExpression", dot.Object.Expr)
	}
	if got := len(call.ArgumentList); got != 1 {
		t.Errorf("call args = %d; want 1", got)
	}
}

func TestOptionalChainAST(t *testing.T) {
	p := mustParse(t, "a?.b.c; (a?.b).c")
	chain, ok := exprOf(firstStmt(p, 0)).(*ast.OptionalChain)
	if !ok {
		t.Fatalf("stmt[0] = %T; want OptionalChain", exprOf(firstStmt(p, 0)))
	}
	outer := chain.Base.Expr.(*ast.MemberExpression)
	if inner := outer.Object.Expr.(*ast.MemberExpression); !inner.Optional {
		t.Error("a?.b optional = false; want true")
	}

	member := exprOf(firstStmt(p, 1)).(*ast.MemberExpression)
	if _, ok := member.Object.Expr.(*ast.OptionalChain); !ok {
		t.Errorf("(a?.b).c object = %T; want OptionalChain", member.Object.Expr)
	}
}

func TestNewExpressionAST(t *testing.T) {
	p := mustParse(t, "new Foo(1, 2)")
	newExpr := exprOf(firstStmt(p, 0)).(*ast.NewExpression)
	if id := newExpr.Callee.Expr.(*ast.Identifier); id.Name != "Foo" {
		t.Errorf("callee = %q; want Foo", id.Name)
	}
	if got := len(newExpr.ArgumentList); got != 2 {
		t.Fatalf("arg count = %d; want 2", got)
	}
}

func TestThrowStatementAST(t *testing.T) {
	p := mustParse(t, "throw new Error('msg')")
	thr := firstStmt(p, 0).(*ast.ThrowStatement)
	if _, ok := thr.Argument.Expr.(*ast.NewExpression); !ok {
		t.Errorf("argument = %T; want NewExpression", thr.Argument.Expr)
	}
}

func TestEmptyStatementAST(t *testing.T) {
	p := mustParse(t, ";;;")
	if got := len(p.Body); got != 3 {
		t.Fatalf("body = %d; want 3", got)
	}
	for i := range p.Body {
		if _, ok := p.Body[i].Stmt.(*ast.EmptyStatement); !ok {
			t.Errorf("body[%d] = %T; want EmptyStatement", i, p.Body[i].Stmt)
		}
	}
}

func TestYieldExpressionAST(t *testing.T) {
	p := mustParse(t, "function* g() { yield 1; yield* other(); }")
	body := bodyOf(firstStmt(p, 0))
	if got := len(body.List); got != 2 {
		t.Fatalf("body = %d; want 2", got)
	}
	y1 := exprOf(body.List[0].Stmt).(*ast.YieldExpression)
	if y1.Delegate || y1.Argument == nil {
		t.Errorf("yield 1 = %+v; want plain yield with argument", y1)
	}
	y2 := exprOf(body.List[1].Stmt).(*ast.YieldExpression)
	if !y2.Delegate {
		t.Error("yield* should be delegate")
	}
}

func TestLabelledBreakContinue(t *testing.T) {
	p := mustParse(t, "loop: for (;;) { break loop; }")
	labelled := firstStmt(p, 0).(*ast.LabelledStatement)
	if labelled.Label.Name != "loop" {
		t.Errorf("label = %q; want loop", labelled.Label.Name)
	}
	forStmt := labelled.Statement.Stmt.(*ast.ForStatement)
	brk := forStmt.Body.Stmt.(*ast.BlockStatement).List[0].Stmt.(*ast.BreakStatement)
	if brk.Label == nil || brk.Label.Name != "loop" {
		t.Errorf("break label = %v; want loop", brk.Label)
	}
}

func TestDirectivePrologue(t *testing.T) {
	p := mustParse(t, "'use strict'; \"other\"; foo();")
	if got := len(p.Directives); got != 2 {
		t.Fatalf("directives = %d; want 2", got)
	}
	if p.Directives[0].Directive != "use strict" {
		t.Errorf("directive = %q; want use strict", p.Directives[0].Directive)
	}
	if got := len(p.Body); got != 1 {
		t.Errorf("body = %d; want 1", got)
	}
}

func TestHashbangAndComments(t *testing.T) {
	p := mustParse(t, "#!/usr/bin/env node\n// line\n/* block */ foo();")
	if p.Hashbang == nil || p.Hashbang.Value != "/usr/bin/env node" {
		t.Fatalf("hashbang = %+v; want /usr/bin/env node", p.Hashbang)
	}
	if got := len(p.Comments); got != 2 {
		t.Fatalf("comments = %d; want 2", got)
	}
	if p.Comments[0].Kind != ast.LineComment || p.Comments[1].Kind != ast.BlockComment {
		t.Errorf("comment kinds = %v, %v; want line, block", p.Comments[0].Kind, p.Comments[1].Kind)
	}
}

// ===========================================================================
// OPERATOR PRECEDENCE TESTS
// ===========================================================================

func TestPrecedenceNesting(t *testing.T) {
	p := mustParse(t, "1 + 2 * 3")
	bin := exprOf(firstStmt(p, 0)).(*ast.BinaryExpression)
	if bin.Operator != token.Plus {
		t.Fatalf("top operator = %v; want +", bin.Operator)
	}
	if n := bin.Left.Expr.(*ast.NumberLiteral); n.Value != 1 {
		t.Errorf("left = %v; want 1", n.Value)
	}
	right := bin.Right.Expr.(*ast.BinaryExpression)
	if right.Operator != token.Multiply {
		t.Errorf("right operator = %v; want *", right.Operator)
	}
}

func TestPrecedenceComparisonOverLogical(t *testing.T) {
	p := mustParse(t, "var x = a < b && c > d")
	bin := initializerExpr(firstStmt(p, 0)).(*ast.BinaryExpression)
	if bin.Operator != token.LogicalAnd {
		t.Fatalf("top operator = %v; want &&", bin.Operator)
	}
	if left := bin.Left.Expr.(*ast.BinaryExpression); left.Operator != token.Less {
		t.Errorf("left operator = %v; want <", left.Operator)
	}
	if right := bin.Right.Expr.(*ast.BinaryExpression); right.Operator != token.Greater {
		t.Errorf("right operator = %v; want >", right.Operator)
	}
}

func TestPrecedenceOrOverAnd(t *testing.T) {
	p := mustParse(t, "var x = a || b && c")
	bin := initializerExpr(firstStmt(p, 0)).(*ast.BinaryExpression)
	if bin.Operator != token.LogicalOr {
		t.Fatalf("top operator = %v; want ||", bin.Operator)
	}
	if right := bin.Right.Expr.(*ast.BinaryExpression); right.Operator != token.LogicalAnd {
		t.Errorf("right operator = %v; want &&", right.Operator)
	}
}

func TestPrecedenceTernaryOverAssignment(t *testing.T) {
	p := mustParse(t, "x = a ? b : c")
	assign := exprOf(firstStmt(p, 0)).(*ast.AssignExpression)
	if _, ok := assign.Right.Expr.(*ast.ConditionalExpression); !ok {
		t.Errorf("right = %T; want ConditionalExpression", assign.Right.Expr)
	}
}

func TestPrecedenceUnaryOverBinary(t *testing.T) {
	p := mustParse(t, "var x = -a + b")
	bin := initializerExpr(firstStmt(p, 0)).(*ast.BinaryExpression)
	if un := bin.Left.Expr.(*ast.UnaryExpression); un.Operator != token.Minus {
		t.Errorf("left operator = %v; want -", un.Operator)
	}
}

func TestPrecedenceGrouping(t *testing.T) {
	p := mustParse(t, "var x = (a + b) * c")
	bin := initializerExpr(firstStmt(p, 0)).(*ast.BinaryExpression)
	if bin.Operator != token.Multiply {
		t.Fatalf("top operator = %v; want *", bin.Operator)
	}
	if left := bin.Left.Expr.(*ast.BinaryExpression); left.Operator != token.Plus {
		t.Errorf("left operator = %v; want +", left.Operator)
	}
}

func TestPrecedenceLeftAssociative(t *testing.T) {
	p := mustParse(t, "var x = a - b - c")
	bin := initializerExpr(firstStmt(p, 0)).(*ast.BinaryExpression)
	if _, ok := bin.Left.Expr.(*ast.BinaryExpression); !ok {
		t.Errorf("left = %T; want BinaryExpression", bin.Left.Expr)
	}
	if _, ok := bin.Right.Expr.(*ast.Identifier); !ok {
		t.Errorf("right = %T; want Identifier", bin.Right.Expr)
	}
}

func TestPrecedenceExponentiationRightAssociative(t *testing.T) {
	p := mustParse(t, "var x = a ** b ** c")
	bin := initializerExpr(firstStmt(p, 0)).(*ast.BinaryExpression)
	if _, ok := bin.Left.Expr.(*ast.Identifier); !ok {
		t.Errorf("left = %T; want Identifier", bin.Left.Expr)
	}
	if right := bin.Right.Expr.(*ast.BinaryExpression); right.Operator != token.Exponent {
		t.Errorf("right operator = %v; want **", right.Operator)
	}
}

func TestPrecedenceNullishCoalescing(t *testing.T) {
	p := mustParse(t, "var x = a ?? b ?? c")
	bin := initializerExpr(firstStmt(p, 0)).(*ast.BinaryExpression)
	if left := bin.Left.Expr.(*ast.BinaryExpression); left.Operator != token.Coalesce {
		t.Errorf("left operator = %v; want ??", left.Operator)
	}
}

func TestMixedCoalesceRequiresParens(t *testing.T) {
	mustFail(t, "a ?? b || c")
	mustFail(t, "a && b ?? c")
	mustParse(t, "(a ?? b) || c")
	mustParse(t, "a ?? (b && c)")
}

func TestUnaryBeforeExponent(t *testing.T) {
	mustFail(t, "-a ** 2")
	mustParse(t, "(-a) ** 2")
	mustParse(t, "-(a ** 2)")
}

// ===========================================================================
// AUTOMATIC SEMICOLON INSERTION (ASI) TESTS
// ===========================================================================

func TestASIReturnNewline(t *testing.T) {
	p := mustParse(t, "function f() {\n  return\n  42\n}")
	body := bodyOf(firstStmt(p, 0))
	if got := len(body.List); got != 2 {
		t.Fatalf("body statements = %d; want 2 (return + expression)", got)
	}
	ret := body.List[0].Stmt.(*ast.ReturnStatement)
	if ret.Argument != nil {
		t.Errorf("return argument = %T; want nil", ret.Argument.Expr)
	}
	if _, ok := body.List[1].Stmt.(*ast.ExpressionStatement); !ok {
		t.Errorf("stmt[1] = %T; want ExpressionStatement", body.List[1].Stmt)
	}
}

func TestASIReturnSameLine(t *testing.T) {
	p := mustParse(t, "function f() { return 42 }")
	ret := bodyOf(firstStmt(p, 0)).List[0].Stmt.(*ast.ReturnStatement)
	if n, ok := ret.Argument.Expr.(*ast.NumberLiteral); !ok || n.Value != 42 {
		t.Errorf("return value = %#v; want 42", ret.Argument.Expr)
	}
}

func TestASIReturnSemicolon(t *testing.T) {
	p := mustParse(t, "function f() { return; 42 }")
	body := bodyOf(firstStmt(p, 0))
	if ret := body.List[0].Stmt.(*ast.ReturnStatement); ret.Argument != nil {
		t.Error("return; has an argument")
	}
	if got := len(body.List); got != 2 {
		t.Errorf("body statements = %d; want 2", got)
	}
}

func TestASIThrowNewline(t *testing.T) {
	mustFail(t, "throw\nnew Error()")
}

func TestASIBreakNewline(t *testing.T) {
	p := mustParse(t, "l: for (;;) { break\nl }")
	labelled := firstStmt(p, 0).(*ast.LabelledStatement)
	body := labelled.Statement.Stmt.(*ast.ForStatement).Body.Stmt.(*ast.BlockStatement)
	if got := len(body.List); got != 2 {
		t.Fatalf("body statements = %d; want 2", got)
	}
	if brk := body.List[0].Stmt.(*ast.BreakStatement); brk.Label != nil {
		t.Errorf("break label = %q; want none", brk.Label.Name)
	}
}

func TestASIContinueSameLine(t *testing.T) {
	p := mustParse(t, "l: while (x) { continue l }")
	body := firstStmt(p, 0).(*ast.LabelledStatement).Statement.Stmt.(*ast.WhileStatement).Body.Stmt.(*ast.BlockStatement)
	if cont := body.List[0].Stmt.(*ast.ContinueStatement); cont.Label == nil || cont.Label.Name != "l" {
		t.Errorf("continue label = %v; want l", cont.Label)
	}
}

func TestASIPostfixNewline(t *testing.T) {
	p := mustParse(t, "var a = b\n++c")
	if got := len(p.Body); got != 2 {
		t.Fatalf("statements = %d; want 2", got)
	}
	if _, ok := initializerExpr(firstStmt(p, 0)).(*ast.Identifier); !ok {
		t.Errorf("initializer = %T; want Identifier", initializerExpr(firstStmt(p, 0)))
	}
	if u := exprOf(firstStmt(p, 1)).(*ast.UpdateExpression); u.Postfix {
		t.Error("++c parsed as postfix")
	}
}

func TestASINoInsertionBeforeParen(t *testing.T) {
	p := mustParse(t, "a\n(b)")
	if got := len(p.Body); got != 1 {
		t.Fatalf("statements = %d; want 1", got)
	}
	if _, ok := exprOf(firstStmt(p, 0)).(*ast.CallExpression); !ok {
		t.Errorf("stmt = %T; want CallExpression", exprOf(firstStmt(p, 0)))
	}
}

func TestASIMissingSemicolon(t *testing.T) {
	mustFail(t, "a b")
	mustParse(t, "a\nb")
	mustParse(t, "{ a } b")
}

// ===========================================================================
// RECOVERY AND DIAGNOSTICS
// ===========================================================================

func TestMissingInitializerExpression(t *testing.T) {
	res := parse("const a = ;", script)
	if got := len(res.Diagnostics); got != 1 {
		t.Fatalf("diagnostics = %d; want 1: %v", got, res.Diagnostics.Err())
	}
	if diff := cmp.Diff(ast.Span{Start: 9, End: 9}, res.Diagnostics[0].Span); diff != "" {
		t.Errorf("diagnostic span mismatch (-want +got):\n%s", diff)
	}
	if res.Panicked {
		t.Error("panicked = true; want false")
	}
	if _, ok := initializerExpr(firstStmt(res.Program, 0)).(*ast.InvalidExpression); !ok {
		t.Errorf("initializer = %T; want InvalidExpression", initializerExpr(firstStmt(res.Program, 0)))
	}
}

func TestRecoveryContinuesAfterError(t *testing.T) {
	res := parse("var a = 1 +;\nvar b = 2;", script)
	if len(res.Diagnostics) == 0 {
		t.Fatal("expected a diagnostic")
	}
	if got := len(res.Program.Body); got != 2 {
		t.Fatalf("statements = %d; want 2", got)
	}
	decl := firstStmt(res.Program, 1).(*ast.VariableDeclaration)
	if id := decl.List[0].Target.Target.(*ast.Identifier); id.Name != "b" {
		t.Errorf("second declaration = %q; want b", id.Name)
	}
}

func TestFlowPragmaIsFatal(t *testing.T) {
	res := parse("// @flow\nfoo();", script)
	if !res.Panicked {
		t.Error("panicked = false; want true")
	}
	if got := len(res.Diagnostics); got != 1 {
		t.Fatalf("diagnostics = %d; want 1", got)
	}
	if !res.Diagnostics[0].Fatal {
		t.Error("diagnostic is not fatal")
	}
	if got := len(res.Program.Body); got != 0 {
		t.Errorf("body = %d; want 0", got)
	}
}

func TestUnterminatedStringIsFatal(t *testing.T) {
	res := parse("var s = 'abc", script)
	if !res.Panicked {
		t.Error("panicked = false; want true")
	}
	if len(res.Program.Body) != 0 {
		t.Errorf("body = %d; want 0", len(res.Program.Body))
	}
}

func TestParseFileJoinsErrors(t *testing.T) {
	_, err := parser.ParseFile("var = 1; let = ;")
	if err == nil {
		t.Fatal("err = nil; want an error")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"var",
		"function",
		"if",
		"if ()",
		"for (;;",
		"switch",
		"class {",
		"(1 +)",
		"var x = {,}",
		"x.%",
		"let [",
		"let {",
		"=> x",
		"x = 1 = 2",
		"++a++",
		"for (let x = 1 of y) {}",
		"try {}",
		"switch (a) { default: default: }",
		"new.target",
		"import.meta",
		"({ get a(x) {} })",
		"({ set a() {} })",
		"class A { constructor() {} get constructor() {} }",
		"class A { static prototype() {} }",
		"class A { constructor = 1 }",
		"function f(a, ...b,) {}",
		"[...a, b] = c",
		"({a: 1} = b)",
		"async function f() { function g(a = await 1) {} }",
		"super()",
		"function f() { super(); }",
		"class A { constructor() { super(); } }",
		"class A extends B { m() { super(); } }",
		"class A extends B { constructor() { function f() { super(); } } }",
		"class A extends B { x = super(); }",
		"class A extends B { static { super(); } }",
		"class A extends B { constructor() { class C { constructor() { super(); } } } }",
		"({ constructor() { super(); } })",
	}
	for _, code := range cases {
		mustFail(t, code)
	}
}

// spanChecker verifies that every node lies inside its parent.
type spanChecker struct {
	t     *testing.T
	stack []ast.Node
}

func (c *spanChecker) visit(node ast.Node) bool {
	if node == nil {
		c.stack = c.stack[:len(c.stack)-1]
		return true
	}
	if node.Idx0() > node.Idx1() {
		c.t.Errorf("%T has inverted span [%d, %d)", node, node.Idx0(), node.Idx1())
	}
	if len(c.stack) > 0 {
		parent := c.stack[len(c.stack)-1]
		if node.Idx0() < parent.Idx0() || node.Idx1() > parent.Idx1() {
			c.t.Errorf("%T [%d, %d) escapes its parent %T [%d, %d)",
				node, node.Idx0(), node.Idx1(), parent, parent.Idx0(), parent.Idx1())
		}
	}
	c.stack = append(c.stack, node)
	return true
}

func TestSpansNest(t *testing.T) {
	code := `
"use strict";
var total = 0, list = [1, 2, 3];
function sum(values, start = 0) {
  let acc = start;
  for (const v of values) { acc += v * 2; }
  return acc;
}
const obj = { a: 1, b: [x, y], get c() { return this.a; } };
label: while (total < 10) { total = sum(list, total) || total + 1; if (total) break label; }
class Point { #x = 0; static origin() { return new Point(); } }
const arrow = (a, {b, c: [d]}) => a ?? b?.[d];
`
	p := mustParse(t, code)
	if p.Idx1() != ast.Idx(len(code)) {
		t.Errorf("program end = %d; want %d", p.Idx1(), len(code))
	}
	checker := &spanChecker{t: t}
	ast.Inspect(p, checker.visit)
	if len(checker.stack) != 0 {
		t.Errorf("unbalanced walk, %d nodes left", len(checker.stack))
	}
}

func TestPreserveParens(t *testing.T) {
	res := parser.Parse(nil, "(a + b) * c", parser.Options{PreserveParens: true})
	if len(res.Diagnostics) > 0 {
		t.Fatal(res.Diagnostics.Err())
	}
	bin := exprOf(firstStmt(res.Program, 0)).(*ast.BinaryExpression)
	if _, ok := bin.Left.Expr.(*ast.ParenthesizedExpression); !ok {
		t.Errorf("left = %T; want ParenthesizedExpression", bin.Left.Expr)
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	mustFail(t, "return 1")
	res := parser.Parse(nil, "return 1", parser.Options{AllowReturnOutsideFunction: true})
	if len(res.Diagnostics) > 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics.Err())
	}
}

// ===========================================================================
// STRICT MODE, MODULES AND LABELS
// ===========================================================================

func TestStrictMode(t *testing.T) {
	sloppy := []string{
		"with (a) {}",
		"var yield = 1",
		"delete x",
		"var n = 010",
		"function f(eval) {}",
	}
	for _, code := range sloppy {
		mustParse(t, code)
	}

	strict := []string{
		"'use strict'; with (a) {}",
		"'use strict'; var yield = 1",
		"'use strict'; delete x",
		"'use strict'; var n = 010",
		"function f() { 'use strict'; with (a) {} }",
		"class A { m() { with (a) {} } }",
	}
	for _, code := range strict {
		mustFail(t, code)
	}
	for _, code := range sloppy[:4] {
		mustFailAs(t, code, module)
	}
}

func TestLabels(t *testing.T) {
	mustFail(t, "a: a: ;")
	mustFail(t, "while (x) { break b; }")
	mustFail(t, "continue;")
	mustFail(t, "break;")
	mustFail(t, "a: { continue a; }")
	mustParse(t, "a: { break a; }")
	mustParse(t, "a: b: for (;;) { continue a; }")
	mustParse(t, "a: ; a: ;")
}

func TestModuleItems(t *testing.T) {
	p := mustParseAs(t, `
import def, { a as b, "quoted" as c } from "mod";
import * as ns from "ns";
import "side-effect";
export const x = 1;
export { x as y, def as "str" };
export * from "all";
export * as grouped from "grouped";
export default function () {}
`, module)
	if got := len(p.Body); got != 8 {
		t.Fatalf("statements = %d; want 8", got)
	}

	imp := firstStmt(p, 0).(*ast.ImportDeclaration)
	if got := len(imp.Specifiers); got != 3 {
		t.Fatalf("specifiers = %d; want 3", got)
	}
	if imp.Specifiers[0].Kind != ast.ImportDefault || imp.Specifiers[0].Local.Name != "def" {
		t.Errorf("specifier[0] = %+v; want default def", imp.Specifiers[0])
	}
	if spec := imp.Specifiers[2]; !spec.Imported.Quoted || spec.Imported.Name != "quoted" || spec.Local.Name != "c" {
		t.Errorf("specifier[2] = %+v; want \"quoted\" as c", spec)
	}
	if ns := firstStmt(p, 1).(*ast.ImportDeclaration); ns.Specifiers[0].Kind != ast.ImportNamespace {
		t.Errorf("namespace kind = %v", ns.Specifiers[0].Kind)
	}
	if side := firstStmt(p, 2).(*ast.ImportDeclaration); len(side.Specifiers) != 0 || side.Source.Value != "side-effect" {
		t.Errorf("side-effect import = %+v", side)
	}

	named := firstStmt(p, 4).(*ast.ExportNamedDeclaration)
	if got := named.Specifiers[1].Exported; !got.Quoted || got.Name != "str" {
		t.Errorf("exported = %+v; want \"str\"", got)
	}
	if all := firstStmt(p, 6).(*ast.ExportAllDeclaration); all.Exported == nil || all.Exported.Name != "grouped" {
		t.Errorf("export * as = %+v", all.Exported)
	}
	def := firstStmt(p, 7).(*ast.ExportDefaultDeclaration)
	if _, ok := def.Declaration.Stmt.(*ast.FunctionDeclaration); !ok {
		t.Errorf("default declaration = %T; want FunctionDeclaration", def.Declaration.Stmt)
	}
}

func TestModuleItemPlacement(t *testing.T) {
	mustFail(t, "import a from 'a'")
	mustFail(t, "export const a = 1")
	mustFailAs(t, "{ import a from 'a'; }", module)
	mustFailAs(t, "function f() { export const a = 1; }", module)
	mustFailAs(t, "export { 'a' }", module)
	mustParse(t, "import('a').then(f)")
	mustParseAs(t, "const m = import.meta.url", module)
	mustParseAs(t, "await x", module)
	mustFailAs(t, "switch (x) { case 1: import a from 'a'; }", module)
	mustParseAs(t, "switch (x) { case 1: f(); }\nimport a from 'a';", module)
}

func TestModuleRecord(t *testing.T) {
	res := parse(`
import def, { a as b } from "m";
import * as ns from "ns";
export { b as c };
export * from "all";
export { d } from "re";
export const [x, { y = 1, ...z }] = v;
export default class Foo {}
`, module)
	if len(res.Diagnostics) > 0 {
		t.Fatal(res.Diagnostics.Err())
	}
	want := parser.ModuleRecord{
		Imports: []parser.ImportEntry{
			{Kind: ast.ImportDefault, Imported: "default", Local: "def", Source: "m"},
			{Kind: ast.ImportNamed, Imported: "a", Local: "b", Source: "m"},
			{Kind: ast.ImportNamespace, Local: "ns", Source: "ns"},
		},
		Exports: []parser.ExportEntry{
			{Exported: "c", Local: "b"},
			{Source: "all"},
			{Exported: "d", Source: "re"},
			{Exported: "x", Local: "x"},
			{Exported: "y", Local: "y"},
			{Exported: "z", Local: "z"},
			{Exported: "default", Local: "Foo"},
		},
	}
	if diff := cmp.Diff(want, res.Module, cmpopts.IgnoreTypes(ast.Span{})); diff != "" {
		t.Errorf("module record mismatch (-want +got):\n%s", diff)
	}

	if res := parse("var a = 1;", script); len(res.Module.Imports)+len(res.Module.Exports) != 0 {
		t.Errorf("script record = %+v; want empty", res.Module)
	}
}

func TestDuplicateExports(t *testing.T) {
	tests := []struct {
		code       string
		name       string
		span, prev ast.Span
	}{
		{"export default 1; export default 2;", "default", ast.Span{Start: 25, End: 32}, ast.Span{Start: 7, End: 14}},
		{"let a,b; export { a, b as a };", "a", ast.Span{Start: 26, End: 27}, ast.Span{Start: 18, End: 19}},
		{"export const x = 1; export { x };", "x", ast.Span{Start: 29, End: 30}, ast.Span{Start: 13, End: 14}},
	}
	for _, tt := range tests {
		res := parse(tt.code, module)
		if len(res.Diagnostics) != 1 {
			t.Errorf("%s: diagnostics = %v; want 1", tt.code, res.Diagnostics.Err())
			continue
		}
		d := res.Diagnostics[0]
		if want := "Duplicated export '" + tt.name + "'"; d.Message != want {
			t.Errorf("%s: message = %q; want %q", tt.code, d.Message, want)
		}
		if d.Span != tt.span {
			t.Errorf("%s: span = %v; want %v", tt.code, d.Span, tt.span)
		}
		if len(d.Annotations) != 1 || d.Annotations[0].Span != tt.prev {
			t.Errorf("%s: annotations = %+v; want the first export at %v", tt.code, d.Annotations, tt.prev)
		}
	}

	ts := ast.SourceType{Module: true, TypeScript: true}
	mustParseAs(t, "export interface A {} export class A {}", ts)
	mustParseAs(t, "export type B = string; export const B = 1;", ts)
	mustParseAs(t, "export function f(): void; export function f() {}", ts)
	mustParseAs(t, "let a; export { a as b, a as c };", module)
	mustParseAs(t, "let a; export { a }; export * from 'm';", module)
}

func TestDeepNestingIsFatal(t *testing.T) {
	const n = 100000
	for _, code := range []string{
		strings.Repeat("[", n),
		strings.Repeat("!", n) + "x",
		strings.Repeat("{", n),
		"let " + strings.Repeat("[", n) + "a",
		"type T = " + strings.Repeat("A<", n),
	} {
		st := script
		if strings.HasPrefix(code, "type") {
			st = ast.SourceType{TypeScript: true}
		}
		res := parse(code, st)
		if !res.Panicked {
			t.Errorf("%.10s...: panicked = false; want true", code)
			continue
		}
		last := res.Diagnostics[len(res.Diagnostics)-1]
		if !last.Fatal || last.Message != "Too many nested expressions" {
			t.Errorf("%.10s...: last diagnostic = %+v", code, last)
		}
	}

	mustParse(t, strings.Repeat("(", 500)+"x"+strings.Repeat(")", 500))
	mustParse(t, strings.Repeat("[", 500)+strings.Repeat("]", 500))
}

// ===========================================================================
// TYPESCRIPT AND JSX
// ===========================================================================

func TestTypeScriptDeclarations(t *testing.T) {
	ts := ast.SourceType{Module: true, TypeScript: true}
	p := mustParseAs(t, `
interface Shape extends Base { area(): number; readonly name?: string }
type Pair<T> = [T, T];
enum Color { Red, Green = 2 }
declare function ext(a: string): void;
abstract class Animal { abstract speak(): void; protected legs: number = 4; }
let v = value as unknown as string;
let w = maybe!;
const id = <T,>(x: T): T => x;
`, ts)

	iface := firstStmt(p, 0).(*ast.TSInterfaceDeclaration)
	if iface.Name.Name != "Shape" || len(iface.Extends) != 1 || len(iface.Body.Members) != 2 {
		t.Errorf("interface = %+v", iface)
	}
	if m := iface.Body.Members[1]; !m.Readonly || !m.Optional {
		t.Errorf("member name = %+v; want readonly and optional", m)
	}
	alias := firstStmt(p, 1).(*ast.TSTypeAliasDeclaration)
	if _, ok := alias.Type.TypeNode.(*ast.TSTupleType); !ok || alias.TypeParameters == nil {
		t.Errorf("alias = %+v", alias)
	}
	enum := firstStmt(p, 2).(*ast.TSEnumDeclaration)
	if len(enum.Members) != 2 || enum.Members[1].Initializer == nil {
		t.Errorf("enum = %+v", enum)
	}
	if fn := firstStmt(p, 3).(*ast.FunctionDeclaration); !fn.Declare || fn.Function.Body != nil {
		t.Errorf("declare function = %+v", fn)
	}
	class := firstStmt(p, 4).(*ast.ClassDeclaration).Class
	if !class.Abstract {
		t.Error("class is not abstract")
	}
	if field := class.Body[1].Element.(*ast.FieldDefinition); field.Accessibility != "protected" || field.TypeAnnotation == nil {
		t.Errorf("field = %+v", field)
	}
	as := initializerExpr(firstStmt(p, 5)).(*ast.TSAsExpression)
	if _, ok := as.Expression.Expr.(*ast.TSAsExpression); !ok {
		t.Errorf("as operand = %T; want TSAsExpression", as.Expression.Expr)
	}
	if _, ok := initializerExpr(firstStmt(p, 6)).(*ast.TSNonNullExpression); !ok {
		t.Errorf("non-null = %T", initializerExpr(firstStmt(p, 6)))
	}
	arrow := initializerExpr(firstStmt(p, 7)).(*ast.ArrowFunctionLiteral)
	if arrow.TypeParameters == nil || arrow.ReturnType == nil {
		t.Errorf("generic arrow = %+v", arrow)
	}
}

func TestExportTypeAlias(t *testing.T) {
	ts := ast.SourceType{Module: true, TypeScript: true}
	p := mustParseAs(t, `
export type A = string;
export type { B } from "b";
export type * from "c";
`, ts)
	decl := firstStmt(p, 0).(*ast.ExportNamedDeclaration)
	if alias, ok := decl.Declaration.Stmt.(*ast.TSTypeAliasDeclaration); !ok || alias.Name.Name != "A" {
		t.Errorf("export type = %T; want TSTypeAliasDeclaration A", decl.Declaration.Stmt)
	}
	if named := firstStmt(p, 1).(*ast.ExportNamedDeclaration); !named.TypeOnly {
		t.Error("export type { B } is not type-only")
	}
	if all := firstStmt(p, 2).(*ast.ExportAllDeclaration); !all.TypeOnly {
		t.Error("export type * is not type-only")
	}
}

func TestTypeScriptOnlyInTypeScript(t *testing.T) {
	mustFailAs(t, "let a: number = 1", module)
	mustFailAs(t, "interface A {}", module)
	mustParse(t, "var interface = 1")
	mustParse(t, "type = 1")
}

func TestGenericCallVersusComparison(t *testing.T) {
	ts := ast.SourceType{TypeScript: true}
	p := mustParseAs(t, "f<string>(x); a < b > c;", ts)
	if call := exprOf(firstStmt(p, 0)).(*ast.CallExpression); call.TypeArguments == nil {
		t.Error("f<string>(x) has no type arguments")
	}
	if _, ok := exprOf(firstStmt(p, 1)).(*ast.BinaryExpression); !ok {
		t.Errorf("a < b > c = %T; want BinaryExpression", exprOf(firstStmt(p, 1)))
	}
}

func TestJSXElements(t *testing.T) {
	jsx := ast.SourceType{Module: true, JSX: true}
	p := mustParseAs(t, `const el = <div id="x" {...rest}>hi {name}<br /></div>;`, jsx)
	el := initializerExpr(firstStmt(p, 0)).(*ast.JSXElement)
	if el.Opening.Name.Name != "div" || len(el.Opening.Attributes) != 2 {
		t.Errorf("opening = %+v", el.Opening)
	}
	if got := len(el.Children); got != 3 {
		t.Fatalf("children = %d; want 3", got)
	}
	if text := el.Children[0].(*ast.JSXText); text.Value != "hi " {
		t.Errorf("text = %q; want \"hi \"", text.Value)
	}
	if br := el.Children[2].(*ast.JSXElement); !br.Opening.SelfClosing || br.Closing != nil {
		t.Errorf("br = %+v; want self-closing", br)
	}
	if el.Closing == nil || el.Closing.Name.Name != "div" {
		t.Errorf("closing = %+v", el.Closing)
	}

	p = mustParseAs(t, "<><a:b c-d=\"1\" /></>", jsx)
	frag := exprOf(firstStmt(p, 0)).(*ast.JSXFragment)
	inner := frag.Children[0].(*ast.JSXElement)
	if inner.Opening.Name.Name != "a:b" {
		t.Errorf("namespaced name = %q; want a:b", inner.Opening.Name.Name)
	}
	if attr := inner.Opening.Attributes[0].(*ast.JSXAttribute); attr.Name.Name != "c-d" {
		t.Errorf("attribute = %q; want c-d", attr.Name.Name)
	}

	mustFailAs(t, "<a></b>", jsx)
	mustFailAs(t, "<a>", jsx)
	mustFailAs(t, "<a />", module)
}

// ===========================================================================
// SYNTAX-ONLY TESTS (broad coverage, no AST inspection)
// ===========================================================================

func TestRegExpSyntax(t *testing.T) {
	cases := []string{
		"var r = /abc/",
		"var r = /abc/gi",
		"var r = /abc/gimsuy",
		`var r = /^hello$/`,
		`var r = /\d+/g`,
		`var r = /[a-zA-Z_$][a-zA-Z0-9_$]*/`,
		`var r = /(foo|bar|baz)/i`,
		`var r = /(?:https?:\/\/)?(?:www\.)?example\.com/`,
		`var r = /\b\w+\b/g`,
		`var r = /(?<=@)\w+/`,
		`if (/test/.test(str)) {}`,
		`var m = str.match(/(\d+)-(\d+)/)`,
		`var r = /\//`,
		`var r = /[/]/`,
		`var r = /a{1,3}/`,
		`x = y / z; var r = /abc/`,
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestTemplateLiteralSyntax(t *testing.T) {
	cases := []string{
		"let x = `hello world`",
		"let x = ``",
		"let x = `hello ${name}`",
		"let x = `${a} + ${b} = ${a + b}`",
		"let x = `outer ${`inner`} outer`",
		"let x = `a ${`b ${`c`}`}`",
		"tag`hello`",
		"tag`hello ${name} world`",
		"tag`\\unicode and \\u{55}`",
		"`${fn(1, 2, 3)}`",
		"`${a ? b : c}`",
		"`${[1, 2, 3].join(',')}`",
		"`${(() => 42)()}`",
		"`${{a: 1}.a}`",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestControlFlowSyntax(t *testing.T) {
	cases := []string{
		"for (;;) {}",
		"for (var i = 0; i < 10; i++) {}",
		"for (let i = 0; i < 10; i++) {}",
		"for (let x of arr) {}",
		"for (let k in obj) {}",
		"for (let [a, b] of pairs) {}",
		"while (true) {}",
		"while (i < 10) { i++; }",
		"do { i++; } while (i < 10)",
		"try {} catch (e) {}",
		"try {} finally {}",
		"try {} catch (e) {} finally {}",
		"try {} catch {}",
		"if (a) {} else if (b) {} else if (c) {} else {}",
		"outer: for (;;) { inner: for (;;) { break outer; } }",
		"label: { break label; }",
		"with (obj) {}",
		"debugger",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestClassSyntax(t *testing.T) {
	cases := []string{
		"class A {}",
		"class A extends B {}",
		"class A extends (B, C) {}",
		"class A { constructor() {} }",
		"class A { static x = 1; y = 2; }",
		"class A { #x; get x() { return this.#x; } }",
		"class A { #x; has(o) { return #x in o; } }",
		"var A = class {}",
		"var A = class B extends C {}",
		"class A { static { this.x = 1; } }",
		"class A extends B { constructor() { super(); } }",
		"class A extends B { constructor(a = super()) { const f = () => super(); } }",
		"class A extends B { constructor() { class C extends D { constructor() { super(); } } super(); } }",
		"class A extends B { m() { return super.m() + super['n']; } }",
		"({ m() { return super.x; } })",
		"class A { 'quoted'() {} 42() {} [k] = 1; static async *[k]() {} }",
		`class A {
			method() {}
			async asyncMethod() {}
			*generatorMethod() {}
			async *asyncGenMethod() {}
			get prop() { return 1; }
			set prop(v) {}
			static staticMethod() {}
			[Symbol.iterator]() {}
		}`,
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestGeneratorSyntax(t *testing.T) {
	cases := []string{
		"function* gen() { yield 1; yield 2; yield 3; }",
		"function* gen() { yield* other(); }",
		"function* gen() { const x = yield; }",
		"var g = function*() { yield 1; }",
		"async function* gen() { yield await fetch(url); }",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestDestructuringSyntax(t *testing.T) {
	cases := []string{
		"var [a, b, c] = arr",
		"var [a, , b] = arr",
		"var [a, ...rest] = arr",
		"var [[a, b], [c, d]] = arr",
		"var [a = 1, b = 2] = arr",
		"var { a, b, c } = obj",
		"var { a: x, b: y } = obj",
		"var { a = 1, b = 2 } = obj",
		"var { a: { b: { c } } } = obj",
		"var { ...rest } = obj",
		"function f({ a, b }) { return a + b; }",
		"function f([a, b]) { return a + b; }",
		"var f = ({ x, y = 0 }) => x + y",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestDestructuringAssignment(t *testing.T) {
	cases := []string{
		"[a, b] = [1, 2]",
		"[a, ...rest] = arr",
		"({ a, b } = obj)",
		"({ a: x, b: y } = obj)",
		"[a, [b, c]] = nested",
		"({ a: { b } } = deep)",
		"[a = 1, b = 2] = arr",
		"({ a = 1, b = 2 } = obj)",
		"[a.b, c[d]] = e",
		"({ ...a.b } = c)",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestFunctionParameters(t *testing.T) {
	cases := []string{
		"function f(a = 1) {}",
		"function f(a = 1, b = 2) {}",
		"function f(a, b = a + 1) {}",
		"function f({ x = 0, y = 0 } = {}) {}",
		"function f([a, b] = [1, 2]) {}",
		"var f = (x = 1) => x",
		"function f(...args) {}",
		"function f(a, b, ...rest) {}",
		"var f = (...args) => args",
		"var f = ([a], {b}) => a + b",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestAsyncAwaitSyntax(t *testing.T) {
	cases := []string{
		"async function f() { await fetch(url) }",
		"async function f() { const x = await promise }",
		"async function f() { for await (const x of xs) {} }",
		"var f = async () => await 1",
		"var f = async (x) => await x",
		"var f = async x => x",
		"class A { async method() { await this.load() } }",
		"var obj = { async method() { await 1 } }",
		"var async = 1; async(1)",
		"function f() { var await = 1; }",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestOptionalChainSyntax(t *testing.T) {
	cases := []string{
		"a?.b",
		"a?.b?.c",
		"a?.()",
		"a?.b()",
		"a?.[0]",
		"a?.b?.[0]?.()",
		"(a?.b).c",
		"a?.b.c.d()",
		"x = a ? .5 : b",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
	mustFail(t, "a?.b`tpl`")
	mustFail(t, "a?.b = 1")
}

func TestComplexSnippetsSyntax(t *testing.T) {
	cases := []string{
		`const result = arr.filter(x => x > 0).map(x => x * 2).reduce((a, b) => a + b, 0)`,
		`async function fetchAll(urls) {
			const results = await Promise.all(
				urls.map(async (url) => {
					const res = await fetch(url);
					return res.json();
				})
			);
			return results.flat();
		}`,
		`class EventEmitter {
			#listeners = {};
			on(event, fn) { (this.#listeners[event] ??= []).push(fn); }
			emit(event, ...args) { for (const fn of this.#listeners[event] ?? []) { fn(...args); } }
		}`,
		`function parse(token) {
			switch (token.type) {
				case "string": return JSON.parse(token.value);
				case "number": return +token.value;
				case "null": return null;
				default: throw new Error("Unknown: " + token.type);
			}
		}`,
		"a ?? b ?? c",
		"a ? b ? c : d : e ? f : g",
		"a &&= b",
		"a ||= b",
		"a ??= b",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}

func TestEdgeCaseSyntax(t *testing.T) {
	cases := []string{
		"",
		";",
		";;;;;;",
		"(((((1)))))",
		"a, b, c",
		"1 + 2 + 3 + 4 + 5",
		"a.b.c.d.e.f",
		"a()()()()",
		"new new Foo()",
		"new Foo.Bar()",
		"new Foo",
		"a[0][1][2]",
		"void typeof delete x",
		"+'1'",
		"-'1'",
		"~0",
		"!![].length",
		"0, 1, 2",
		"x = y = z = 1",
		"true ? 1 : false ? 2 : 3",
		`"use strict"`,
		"var x = /regex/ + 1",
		"0x1F + 0o17 + 0b11 + 1_000 + 1e3 + .5 + 10n",
		"a.if.class.new",
		"({ if: 1, class: 2, new: 3 })",
		"let\nx = 1",
	}
	for _, code := range cases {
		mustParse(t, code)
	}
}
