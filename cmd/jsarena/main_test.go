package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func runArgs(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut strings.Builder
	code = run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ok.js", "export const a = 1;\n")
	bad := writeFile(t, dir, "bad.js", "const a = ;\n")

	code, stdout, stderr := runArgs(t, "", "-fixed-size", "65536", filepath.Join(dir, "*.js"))
	assert.Equal(t, exitSyntax, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, bad+":1:10: error: Expected an expression but found `;`\n")
	assert.Contains(t, stderr, " 1 | const a = ;\n")
}

func TestRunClean(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.ts", "let x: number = 1;\n")
	code, stdout, stderr := runArgs(t, "", path)
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestRunDump(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.cjs", "x;\n")
	code, stdout, _ := runArgs(t, "", "-dump", "-spans", path)
	require.Equal(t, exitOK, code)
	require.True(t, strings.HasPrefix(stdout, "--- # "+path+"\n"), stdout)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, "Program", doc["node"])
	assert.Equal(t, "script js", doc["sourceType"])
	assert.Equal(t, []any{0, 3}, doc["span"])
}

func TestRunEmitFromStdin(t *testing.T) {
	code, stdout, stderr := runArgs(t, "(a - b) - c;", "-emit", "-")
	assert.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "a - b - c;\n", stdout)
}

func TestRunStdinSourceType(t *testing.T) {
	code, _, _ := runArgs(t, "return 1;", "-")
	assert.Equal(t, exitSyntax, code)

	code, _, stderr := runArgs(t, "return 1;", "-type", "cjs", "-allow-return", "-")
	assert.Equal(t, exitOK, code, stderr)
}

func TestRunUsageErrors(t *testing.T) {
	code, _, stderr := runArgs(t, "")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "usage: jsarena")

	code, _, _ = runArgs(t, "", "-nope")
	assert.Equal(t, exitFailure, code)

	code, _, stderr = runArgs(t, "", filepath.Join(t.TempDir(), "*.js"))
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "no input files")

	code, _, stderr = runArgs(t, "", "-type", "py", "a.js")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "unknown extension")

	code, _, _ = runArgs(t, "", "-watch", "-")
	assert.Equal(t, exitFailure, code)
}

func TestConfigLayers(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "jsarena.yaml", "workers: 3\nsource_type: ts\nlog_level: info\n")

	cfg := defaultConfig()
	require.NoError(t, cfg.loadFile(path))
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, uint64(1<<24), cfg.FixedSize)

	t.Setenv("JSARENA_WORKERS", "5")
	t.Setenv("JSARENA_FIXED_SIZE", "0")
	t.Setenv("JSARENA_LOG_LEVEL", "debug")
	cfg.loadEnv()
	assert.Equal(t, 5, cfg.Workers)
	assert.Zero(t, cfg.FixedSize)

	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	st, err := cfg.sourceType()
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.True(t, st.TypeScript)
	assert.True(t, st.Module)
}

func TestConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	assert.Error(t, cfg.loadFile(writeFile(t, dir, "bad.yaml", "wrokers: 3\n")))
	assert.NoError(t, cfg.loadFile(writeFile(t, dir, "empty.yaml", "")))

	code, _, stderr := runArgs(t, "", "-config", filepath.Join(dir, "missing.yaml"), "a.js")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "missing.yaml")

	cfg.LogLevel = "loud"
	_, err := cfg.level()
	assert.Error(t, err)
}
