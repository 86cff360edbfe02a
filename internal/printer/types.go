package printer

import (
	"strings"

	"github.com/t14raptor/jsarena/ast"
)

// Binding levels of types, as for expressions.
const (
	typeLevelFunction = iota
	typeLevelUnion
	typeLevelIntersection
	typeLevelOperator
	typeLevelPostfix
	typeLevelPrimary
)

func typeLevel(t ast.TypeNode) int {
	switch t.(type) {
	case *ast.TSFunctionType:
		return typeLevelFunction
	case *ast.TSUnionType:
		return typeLevelUnion
	case *ast.TSIntersectionType:
		return typeLevelIntersection
	case *ast.TSTypeOperator:
		return typeLevelOperator
	case *ast.TSArrayType, *ast.TSIndexedAccessType:
		return typeLevelPostfix
	}
	return typeLevelPrimary
}

func (s *state) typeAnnotation(n *ast.TSTypeAnnotation) {
	if n == nil {
		return
	}
	s.write(": ")
	s.tsType(n.Type, typeLevelFunction)
}

func (s *state) typeParameters(n *ast.TSTypeParameters) {
	if n == nil {
		return
	}
	s.write("<")
	s.list(len(n.Params), func(i int) {
		param := &n.Params[i]
		s.write(param.Name.Name)
		if param.Constraint != nil {
			s.write(" extends ")
			s.tsType(param.Constraint, typeLevelFunction)
		}
		if param.Default != nil {
			s.write(" = ")
			s.tsType(param.Default, typeLevelFunction)
		}
	})
	s.write(">")
}

func (s *state) typeArguments(n *ast.TSTypeArguments) {
	if n == nil {
		return
	}
	s.write("<")
	s.list(len(n.Params), func(i int) { s.tsType(&n.Params[i], typeLevelFunction) })
	s.write(">")
}

func (s *state) names(list []*ast.Identifier) {
	for i, id := range list {
		if i > 0 {
			s.write(".")
		}
		s.write(id.Name)
	}
}

func (s *state) tsType(t *ast.TSType, min int) {
	if t == nil || t.TypeNode == nil {
		return
	}
	s.paren(typeLevel(t.TypeNode) < min, func() { s.typeNode(t.TypeNode) })
}

func (s *state) typeNode(t ast.TypeNode) {
	switch n := t.(type) {
	case *ast.TSKeywordType:
		s.write(n.Keyword)
	case *ast.TSTypeReference:
		s.names(n.Name)
		s.typeArguments(n.TypeArguments)
	case *ast.TSTypeQuery:
		s.write("typeof ")
		s.names(n.Name)
	case *ast.TSLiteralType:
		s.expr(n.Literal, levelUnary)
	case *ast.TSUnionType:
		for i := range n.Types {
			if i > 0 {
				s.write(" | ")
			}
			s.tsType(&n.Types[i], typeLevelIntersection)
		}
	case *ast.TSIntersectionType:
		for i := range n.Types {
			if i > 0 {
				s.write(" & ")
			}
			s.tsType(&n.Types[i], typeLevelOperator)
		}
	case *ast.TSTypeOperator:
		s.write(n.Operator, " ")
		s.tsType(n.Type, typeLevelOperator)
	case *ast.TSArrayType:
		s.tsType(n.Element, typeLevelPostfix)
		s.write("[]")
	case *ast.TSIndexedAccessType:
		s.tsType(n.Object, typeLevelPostfix)
		s.write("[")
		s.tsType(n.Index, typeLevelFunction)
		s.write("]")
	case *ast.TSTupleType:
		s.write("[")
		s.list(len(n.Elements), func(i int) { s.tsType(&n.Elements[i], typeLevelFunction) })
		s.write("]")
	case *ast.TSRestType:
		s.write("...")
		s.tsType(n.Type, typeLevelPostfix)
	case *ast.TSOptionalType:
		s.tsType(n.Type, typeLevelPostfix)
		s.write("?")
	case *ast.TSTypeLiteral:
		s.typeLiteral(n)
	case *ast.TSFunctionType:
		if n.Constructor {
			s.write("new ")
		}
		s.typeParameters(n.TypeParameters)
		s.parameters(n.Params)
		s.write(" => ")
		if n.ReturnType != nil {
			s.tsType(n.ReturnType.Type, typeLevelFunction)
		}
	}
}

func (s *state) typeLiteral(n *ast.TSTypeLiteral) {
	if len(n.Members) == 0 {
		s.write("{}")
		return
	}
	s.write("{ ")
	for i := range n.Members {
		if i > 0 {
			s.write("; ")
		}
		s.signature(&n.Members[i])
	}
	s.write(" }")
}

func (s *state) signature(n *ast.TSPropertySignature) {
	if n.Readonly {
		s.write("readonly ")
	}
	switch {
	case n.IndexType != nil:
		s.write("[")
		s.gen(n.Key.Expr)
		s.write(": ")
		s.tsType(n.IndexType, typeLevelFunction)
		s.write("]")
	case n.Key != nil:
		s.propertyKey(n.Key, n.Computed)
		if n.Optional {
			s.write("?")
		}
	}
	if n.Params != nil {
		s.parameters(n.Params)
	}
	s.typeAnnotation(n.TypeAnnotation)
}

// TypeString returns source text for a type.
func TypeString(t *ast.TSType) string {
	s := &state{out: &strings.Builder{}}
	s.tsType(t, typeLevelFunction)
	return s.out.String()
}
