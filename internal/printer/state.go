package printer

import (
	"strings"
)

type state struct {
	out    *strings.Builder
	indent int
}

func (s *state) write(str ...string) {
	for _, x := range str {
		s.out.WriteString(x)
	}
}

func (s *state) line() {
	s.out.WriteString("\n")
}

func (s *state) lineAndPad() {
	s.line()
	s.out.WriteString(strings.Repeat("    ", s.indent))
}

// list writes n items separated by commas.
func (s *state) list(n int, item func(i int)) {
	for i := 0; i < n; i++ {
		if i > 0 {
			s.write(", ")
		}
		item(i)
	}
}

// paren writes f wrapped in parentheses when yes is set.
func (s *state) paren(yes bool, f func()) {
	if yes {
		s.write("(")
	}
	f()
	if yes {
		s.write(")")
	}
}
