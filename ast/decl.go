package ast

import "github.com/t14raptor/jsarena/token"

type (
	FunctionDeclaration struct {
		Span
		Function *FunctionLiteral
		Declare  bool
	}

	ClassDeclaration struct {
		Span
		Class   *ClassLiteral
		Declare bool
	}

	VariableDeclaration struct {
		Span
		Token   token.Token // Var, Let or Const
		List    VariableDeclarators
		Declare bool
	}

	VariableDeclarators []VariableDeclarator

	// VariableDeclarator is a single binding of a declaration or a
	// parameter list.
	VariableDeclarator struct {
		Span
		Target         *BindingTarget
		TypeAnnotation *TSTypeAnnotation `optional:"true"`
		Initializer    *Expression       `optional:"true"`
		Optional       bool              // parameter x?
		Definite       bool              // let x!: T
	}
)

func (*FunctionDeclaration) _stmt() {}
func (*ClassDeclaration) _stmt()    {}
func (*VariableDeclaration) _stmt() {}
