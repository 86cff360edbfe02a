package parser

type scope struct {
	outer        *scope
	allowIn      bool
	allowLet     bool
	inIteration  bool
	inSwitch     bool
	inFuncParams bool
	inFunction   bool
	inAsync      bool
	allowAwait   bool
	allowYield   bool
	strict       bool
	// new.target is allowed: inside a non-arrow function, inherited by
	// arrows.
	allowNewTarget bool
	// super() is allowed: in the constructor of a class with extends,
	// inherited by arrows.
	allowSuperCall bool

	labels []string
}

// openScope starts a function scope. Strictness and new.target carry over
// from the enclosing scope; everything else starts fresh.
func (p *parser) openScope() {
	s := &scope{
		outer:   p.scope,
		allowIn: true,
	}
	if p.scope != nil {
		s.strict = p.scope.strict
		s.allowNewTarget = p.scope.allowNewTarget
		s.allowSuperCall = p.scope.allowSuperCall
	}
	p.scope = s
}

func (p *parser) closeScope() {
	p.scope = p.scope.outer
}

func (s *scope) hasLabel(name string) bool {
	for _, label := range s.labels {
		if label == name {
			return true
		}
	}
	if s.outer != nil && !s.inFunction {
		return s.outer.hasLabel(name)
	}
	return false
}
