package ast

type (
	Statements []Statement

	Statement struct {
		Stmt `optional:"true"`
	}

	// All statement nodes implement the Stmt interface.
	Stmt interface {
		Node
		_stmt()
	}

	// BadStatement covers source skipped while recovering from an error.
	BadStatement struct {
		Span
	}

	BlockStatement struct {
		Span
		List Statements
	}

	BreakStatement struct {
		Span
		Label *Identifier `optional:"true"`
	}

	ContinueStatement struct {
		Span
		Label *Identifier `optional:"true"`
	}

	CaseStatement struct {
		Span
		Test       *Expression `optional:"true"` // nil for default
		Consequent Statements
	}

	CatchStatement struct {
		Span
		Parameter *BindingTarget `optional:"true"`
		Body      *BlockStatement
	}

	DebuggerStatement struct {
		Span
	}

	DoWhileStatement struct {
		Span
		Test *Expression
		Body *Statement
	}

	EmptyStatement struct {
		Span
	}

	ExpressionStatement struct {
		Span
		Expression *Expression
	}

	IfStatement struct {
		Span
		Test       *Expression
		Consequent *Statement
		Alternate  *Statement `optional:"true"`
	}

	LabelledStatement struct {
		Span
		Label     *Identifier
		Statement *Statement
	}

	ReturnStatement struct {
		Span
		Argument *Expression `optional:"true"`
	}

	SwitchStatement struct {
		Span
		Discriminant *Expression
		Body         []CaseStatement
	}

	ThrowStatement struct {
		Span
		Argument *Expression
	}

	TryStatement struct {
		Span
		Body    *BlockStatement
		Catch   *CatchStatement `optional:"true"`
		Finally *BlockStatement `optional:"true"`
	}

	WhileStatement struct {
		Span
		Test *Expression
		Body *Statement
	}

	WithStatement struct {
		Span
		Object *Expression
		Body   *Statement
	}

	ForStatement struct {
		Span
		Initializer *ForLoopInitializer `optional:"true"`
		Test        *Expression         `optional:"true"`
		Update      *Expression         `optional:"true"`
		Body        *Statement
	}

	ForLoopInitializer struct {
		ForLoopInit
	}

	// ForLoopInit is a *VariableDeclaration or an *Expression.
	ForLoopInit interface {
		Node
		_forLoopInitializer()
	}

	ForInStatement struct {
		Span
		Into   *ForInto
		Source *Expression
		Body   *Statement
	}

	ForOfStatement struct {
		Span
		Into   *ForInto
		Source *Expression
		Body   *Statement
		Await  bool
	}

	ForInto struct {
		Into
	}

	// Into is a *VariableDeclaration or an *Expression.
	Into interface {
		Node
		_forInto()
	}
)

func (*VariableDeclaration) _forLoopInitializer() {}
func (*Expression) _forLoopInitializer()          {}

func (*VariableDeclaration) _forInto() {}
func (*Expression) _forInto()          {}

func (*BadStatement) _stmt()        {}
func (*BlockStatement) _stmt()      {}
func (*BreakStatement) _stmt()      {}
func (*CaseStatement) _stmt()       {}
func (*ContinueStatement) _stmt()   {}
func (*CatchStatement) _stmt()      {}
func (*DebuggerStatement) _stmt()   {}
func (*DoWhileStatement) _stmt()    {}
func (*EmptyStatement) _stmt()      {}
func (*ExpressionStatement) _stmt() {}
func (*ForInStatement) _stmt()      {}
func (*ForOfStatement) _stmt()      {}
func (*ForStatement) _stmt()        {}
func (*IfStatement) _stmt()         {}
func (*LabelledStatement) _stmt()   {}
func (*ReturnStatement) _stmt()     {}
func (*SwitchStatement) _stmt()     {}
func (*ThrowStatement) _stmt()      {}
func (*TryStatement) _stmt()        {}
func (*WhileStatement) _stmt()      {}
func (*WithStatement) _stmt()       {}
