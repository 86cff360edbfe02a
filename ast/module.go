package ast

type ImportKind uint8

const (
	ImportNamed     ImportKind = iota // import {a as b}
	ImportDefault                     // import a
	ImportNamespace                   // import * as a
)

func (k ImportKind) String() string {
	switch k {
	case ImportDefault:
		return "default"
	case ImportNamespace:
		return "namespace"
	}
	return "named"
}

type (
	// ModuleExportName is the name of an import or export binding, either
	// an identifier or a string literal.
	ModuleExportName struct {
		Span
		Name   string
		Quoted bool
	}

	ImportSpecifier struct {
		Span
		Kind     ImportKind
		Imported *ModuleExportName `optional:"true"` // set for ImportNamed
		Local    *Identifier
		TypeOnly bool
	}

	ImportDeclaration struct {
		Span
		Specifiers []ImportSpecifier
		Source     *StringLiteral
		TypeOnly   bool
	}

	ExportSpecifier struct {
		Span
		Local    *ModuleExportName
		Exported *ModuleExportName
		TypeOnly bool
	}

	// ExportNamedDeclaration is export {a, b as c} [from "m"] or an exported
	// declaration.
	ExportNamedDeclaration struct {
		Span
		Declaration *Statement `optional:"true"`
		Specifiers  []ExportSpecifier
		Source      *StringLiteral `optional:"true"`
		TypeOnly    bool
	}

	// ExportDefaultDeclaration holds either a function or class
	// declaration or an expression.
	ExportDefaultDeclaration struct {
		Span
		Declaration *Statement  `optional:"true"`
		Expression  *Expression `optional:"true"`
	}

	// ExportAllDeclaration is export * [as name] from "m".
	ExportAllDeclaration struct {
		Span
		Exported *ModuleExportName `optional:"true"`
		Source   *StringLiteral
		TypeOnly bool
	}
)

func (*ImportDeclaration) _stmt()        {}
func (*ExportNamedDeclaration) _stmt()   {}
func (*ExportDefaultDeclaration) _stmt() {}
func (*ExportAllDeclaration) _stmt()     {}
