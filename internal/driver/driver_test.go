package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/t14raptor/jsarena/ast"
	"github.com/t14raptor/jsarena/internal/driver"
	"github.com/t14raptor/jsarena/parser"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	return dir
}

func TestExpand(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.js":         "a;",
		"lib/b.ts":     "let b: number;",
		"lib/c.d.ts":   "declare const c: string;",
		"lib/notes.md": "# notes",
	})

	files, err := driver.Expand([]string{
		filepath.Join(dir, "**", "*"),
		filepath.Join(dir, "a.js"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.js"),
		filepath.Join(dir, "lib", "b.ts"),
		filepath.Join(dir, "lib", "c.d.ts"),
	}, files)

	_, err = driver.Expand([]string{"[a"})
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	src, err := driver.Decode([]byte("\xEF\xBB\xBFlet a;"))
	require.NoError(t, err)
	assert.Equal(t, "let a;", src)

	// "a;" in UTF-16 LE with a byte order mark.
	src, err = driver.Decode([]byte{0xFF, 0xFE, 'a', 0, ';', 0})
	require.NoError(t, err)
	assert.Equal(t, "a;", src)

	src, err = driver.Decode([]byte("x\xff;"))
	require.NoError(t, err)
	assert.Equal(t, "x\xff;", src)
}

type collector struct {
	mu    sync.Mutex
	files map[string]*driver.File
}

func (c *collector) handle(_ context.Context, f *driver.File) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// The tree dies with the arena; keep only what outlives the handler.
	c.files[filepath.Base(f.Path)] = &driver.File{
		Path:   f.Path,
		Arena:  f.Arena,
		Result: parser.Result{Diagnostics: f.Result.Diagnostics, Panicked: f.Result.Panicked},
	}
	return nil
}

func TestRunPooled(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.js":    "export const a = 1;",
		"types.ts": "export interface A { b: string }",
		"bad.cjs":  "const a = ;",
		"flow.js":  "// @flow\nfoo();",
	})
	paths, err := driver.Expand([]string{filepath.Join(dir, "*")})
	require.NoError(t, err)
	require.Len(t, paths, 4)

	d, err := driver.New(driver.Config{Workers: 2, FixedSize: 1 << 16})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	c := &collector{files: map[string]*driver.File{}}
	require.NoError(t, d.Run(context.Background(), paths, c.handle))
	require.Len(t, c.files, 4)

	assert.Empty(t, c.files["ok.js"].Result.Diagnostics)
	assert.Empty(t, c.files["types.ts"].Result.Diagnostics)
	assert.Len(t, c.files["bad.cjs"].Result.Diagnostics, 1)
	assert.True(t, c.files["flow.js"].Result.Panicked)
	for name, f := range c.files {
		assert.GreaterOrEqual(t, f.Arena, 0, name)
		assert.Less(t, f.Arena, 2, name)
	}
}

func TestRunHeap(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.txt": "return 1;"})
	st := ast.SourceType{}
	d, err := driver.New(driver.Config{
		SourceType: &st,
		Options:    parser.Options{AllowReturnOutsideFunction: true},
	})
	require.NoError(t, err)
	defer d.Close()

	var got *driver.File
	err = d.Run(context.Background(), []string{filepath.Join(dir, "a.txt")}, func(_ context.Context, f *driver.File) error {
		got = f
		assert.Empty(t, f.Result.Diagnostics)
		assert.Len(t, f.Result.Program.Body, 1)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, -1, got.Arena)
	assert.NotZero(t, got.Used)
}

func TestRunErrors(t *testing.T) {
	d, err := driver.New(driver.Config{Workers: 1})
	require.NoError(t, err)
	defer d.Close()

	nop := func(context.Context, *driver.File) error { return nil }
	err = d.Run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.js")}, nop)
	assert.ErrorIs(t, err, os.ErrNotExist)

	dir := writeFiles(t, map[string]string{"a.unknown": "a;"})
	err = d.Run(context.Background(), []string{filepath.Join(dir, "a.unknown")}, nop)
	assert.ErrorContains(t, err, "unknown extension")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = d.Run(ctx, []string{filepath.Join(dir, "a.unknown")}, nop)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestArenaExhaustedFallsBackToHeap(t *testing.T) {
	d, err := driver.New(driver.Config{Workers: 1, FixedSize: 4096})
	require.NoError(t, err)
	defer d.Close()

	// The escape forces the cooked string into arena memory.
	src := `var s = "\n` + strings.Repeat("a", 8192) + `";`
	err = d.ParseSource(context.Background(), "big.js", src, parser.Options{}, func(_ context.Context, f *driver.File) error {
		assert.Equal(t, -1, f.Arena)
		assert.Empty(t, f.Result.Diagnostics)
		lit := f.Result.Program.Body[0].Stmt.(*ast.VariableDeclaration).List[0].Initializer.Expr.(*ast.StringLiteral)
		assert.Len(t, lit.Value, 8193)
		return nil
	})
	require.NoError(t, err)

	// The arena is usable again afterwards.
	err = d.ParseSource(context.Background(), "small.js", "a;", parser.Options{}, func(_ context.Context, f *driver.File) error {
		assert.Equal(t, 0, f.Arena)
		return nil
	})
	require.NoError(t, err)
}
