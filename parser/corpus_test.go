package parser_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/diagnostics"
	"github.com/t14raptor/jsarena/internal/astdump"
	"github.com/t14raptor/jsarena/internal/corpus"
	"github.com/t14raptor/jsarena/parser"
)

// TestCorpus parses every file under testdata and compares the rendered
// diagnostics and the YAML tree against the files next to it.
//
// Set JSARENA_REFRESH to a glob such as "testdata/errors/*" to rewrite the
// expected outputs.
func TestCorpus(t *testing.T) {
	corpus.Corpus{
		Root:       "testdata",
		Refresh:    "JSARENA_REFRESH",
		Extensions: []string{"js", "mjs", "cjs", "jsx", "ts", "tsx"},
		Outputs: []corpus.Output{
			{Extension: "stderr"},
			{Extension: "yaml", Compare: corpus.YAML},
		},
		Test: func(t *testing.T, path, text string) []string {
			st, err := ast.SourceTypeFromPath(path)
			require.NoError(t, err)
			res := parser.Parse(nil, text, parser.Options{SourceType: st})

			var stderr strings.Builder
			require.NoError(t, diagnostics.NewRenderer(path, text).Render(&stderr, res.Diagnostics))

			tree, err := astdump.Marshal(res.Program, astdump.Options{})
			require.NoError(t, err)
			return []string{stderr.String(), string(tree)}
		},
	}.Run(t)
}
