package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t14raptor/jsarena/allocator"
	"github.com/t14raptor/jsarena/ast"
)

func TestSourceTooLong(t *testing.T) {
	old := maxSourceLen
	maxSourceLen = 8
	t.Cleanup(func() { maxSourceLen = old })

	res := Parse(nil, "var abc = 1;", Options{})
	assert.True(t, res.Panicked)
	require.Len(t, res.Diagnostics, 1)
	assert.True(t, res.Diagnostics[0].Fatal)
	assert.Equal(t, errSourceTooLong, res.Diagnostics[0].Message)
	assert.Empty(t, res.Program.Body)

	res = Parse(nil, "a;", Options{})
	assert.False(t, res.Panicked)
	assert.Empty(t, res.Diagnostics)
}

func TestPhaseString(t *testing.T) {
	for ph, want := range map[phase]string{
		phaseBeforeFirstToken: "before-first-token",
		phaseParsing:          "parsing",
		phaseRecovering:       "recovering",
		phaseDone:             "done",
		phase(42):             "unknown",
	} {
		assert.Equal(t, want, ph.String())
	}
}

func TestParseKeepsSourceType(t *testing.T) {
	st := ast.SourceType{Module: true, TypeScript: true}
	res := Parse(nil, "export type A = string;", Options{SourceType: st})
	require.Empty(t, res.Diagnostics)
	assert.Equal(t, st, res.Program.SourceType)
}

func TestNestingDepthUnwinds(t *testing.T) {
	p := newParser(allocator.NewAllocator(), "let [a] = [(b), -c]; { f(() => { g(); }); }", Options{})
	res := p.parse()
	require.Empty(t, res.Diagnostics)
	assert.Zero(t, p.depth)

	// A failed arrow attempt rewinds through the same frames.
	p = newParser(allocator.NewAllocator(), "(a, b + 1); (x) => x;", Options{})
	res = p.parse()
	require.Empty(t, res.Diagnostics)
	assert.Zero(t, p.depth)
}
