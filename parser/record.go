package parser

import (
	"fmt"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
)

// ModuleRecord lists what a module imports and exports, in source order.
// Its strings may point into the allocator and share the Program's
// lifetime.
type ModuleRecord struct {
	Imports []ImportEntry
	Exports []ExportEntry
}

// ImportEntry is one binding created by an import declaration.
type ImportEntry struct {
	Span ast.Span
	Kind ast.ImportKind
	// Imported is the name in the source module: "default" for a default
	// import and empty for a namespace import.
	Imported string
	Local    string
	Source   string
	TypeOnly bool
}

// ExportEntry is one name exported by a module, or a star re-export.
type ExportEntry struct {
	Span ast.Span
	// Exported is the name other modules import. It is empty for
	// export * from "m".
	Exported string
	// Local is the exported binding, empty for re-exports and default
	// expressions.
	Local string
	// Source is set for re-exports.
	Source   string
	TypeOnly bool
}

// recordImport adds the bindings of an import declaration.
func (p *parser) recordImport(n *ast.ImportDeclaration) {
	for i := range n.Specifiers {
		spec := &n.Specifiers[i]
		e := ImportEntry{
			Span:     spec.Span,
			Kind:     spec.Kind,
			Local:    spec.Local.Name,
			Source:   n.Source.Value,
			TypeOnly: n.TypeOnly || spec.TypeOnly,
		}
		switch spec.Kind {
		case ast.ImportDefault:
			e.Imported = "default"
		case ast.ImportNamed:
			e.Imported = spec.Imported.Name
		}
		p.record.Imports = append(p.record.Imports, e)
	}
}

// recordExport adds e and reports a name that was already exported.
// Type-only names are left out of the check: TypeScript merges them with
// values of the same name.
func (p *parser) recordExport(e ExportEntry) {
	p.record.Exports = append(p.record.Exports, e)
	if e.Exported == "" || e.TypeOnly {
		return
	}
	if p.exported == nil {
		p.exported = make(map[string]ast.Span)
	}
	if prev, ok := p.exported[e.Exported]; ok {
		p.diags.Push(diagnostics.New(e.Span, fmt.Sprintf(errDuplicateExport, e.Exported),
			diagnostics.Label("It cannot be redeclared here"),
			diagnostics.Annotate(prev, "Export has already been declared here")))
		return
	}
	p.exported[e.Exported] = e.Span
}

// recordExportDeclaration adds the names bound by an exported declaration.
func (p *parser) recordExportDeclaration(decl ast.Stmt) {
	if d, ok := decl.(*ast.VariableDeclaration); ok {
		for i := range d.List {
			boundNames(d.List[i].Target.Target, func(id *ast.Identifier) {
				p.recordExport(ExportEntry{Span: id.Span, Exported: id.Name, Local: id.Name, TypeOnly: d.Declare})
			})
		}
		return
	}
	if id := declarationName(decl); id != nil {
		_, typeOnly := declaredName(decl)
		p.recordExport(ExportEntry{Span: id.Span, Exported: id.Name, Local: id.Name, TypeOnly: typeOnly})
	}
}

// declaredName returns the name a function, class, enum or type declaration
// binds, and whether it only exists as a type.
func declaredName(decl ast.Stmt) (string, bool) {
	var typeOnly bool
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		// Overload signatures share the name of the implementation.
		typeOnly = d.Function.Body == nil
	case *ast.ClassDeclaration:
		typeOnly = d.Declare
	case *ast.TSEnumDeclaration:
		typeOnly = d.Declare
	case *ast.TSInterfaceDeclaration, *ast.TSTypeAliasDeclaration:
		typeOnly = true
	}
	if id := declarationName(decl); id != nil {
		return id.Name, typeOnly
	}
	return "", typeOnly
}

func declarationName(decl ast.Stmt) *ast.Identifier {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		return d.Function.Name
	case *ast.ClassDeclaration:
		return d.Class.Name
	case *ast.TSEnumDeclaration:
		return d.Name
	case *ast.TSInterfaceDeclaration:
		return d.Name
	case *ast.TSTypeAliasDeclaration:
		return d.Name
	}
	return nil
}

// boundNames calls fn for each identifier bound by a binding target.
func boundNames(target ast.Expr, fn func(*ast.Identifier)) {
	switch t := target.(type) {
	case *ast.Identifier:
		fn(t)
	case *ast.AssignExpression:
		boundNames(t.Left.Expr, fn)
	case *ast.ArrayPattern:
		for i := range t.Elements {
			boundNames(t.Elements[i].Expr, fn)
		}
		if t.Rest != nil {
			boundNames(t.Rest.Expr, fn)
		}
	case *ast.ObjectPattern:
		for i := range t.Properties {
			switch prop := t.Properties[i].Prop.(type) {
			case *ast.PropertyShort:
				fn(prop.Name)
			case *ast.PropertyKeyed:
				boundNames(prop.Value.Expr, fn)
			}
		}
		if t.Rest != nil {
			boundNames(t.Rest.Expr, fn)
		}
	}
}
