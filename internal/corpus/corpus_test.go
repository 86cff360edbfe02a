package corpus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/t14raptor/jsarena/internal/corpus"
)

func TestDiff(t *testing.T) {
	assert.Empty(t, corpus.Diff("a\nb\n", "a\nb\n"))

	diff := corpus.Diff("a\nc\n", "a\nb\n")
	assert.Contains(t, diff, "--- want")
	assert.Contains(t, diff, "+++ got")
	assert.Contains(t, diff, "-b")
	assert.Contains(t, diff, "+c")
}

func TestYAML(t *testing.T) {
	assert.Empty(t, corpus.YAML("a: 1\nb: [x, y]\n", "b:\n  - x\n  - y\na: 1\n"))
	assert.NotEmpty(t, corpus.YAML("a: 1\n", "a: 2\n"))
	assert.Contains(t, corpus.YAML("a: [", "a: 1\n"), "got:")
	assert.Empty(t, corpus.YAML("", ""))
}
