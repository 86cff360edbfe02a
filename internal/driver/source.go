package driver

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/t14raptor/jsarena/ast"
)

var boms = [][]byte{
	{0xEF, 0xBB, 0xBF},
	{0xFE, 0xFF},
	{0xFF, 0xFE},
}

// Decode returns src as UTF-8 text. A byte order mark selects UTF-8 or
// UTF-16 and is dropped; without one the bytes are kept as they are, so
// invalid UTF-8 is left for the scanner to report.
func Decode(src []byte) (string, error) {
	if !slices.ContainsFunc(boms, func(bom []byte) bool { return bytes.HasPrefix(src, bom) }) {
		return string(src), nil
	}
	out, _, err := transform.Bytes(unicode.BOMOverride(encoding.Nop.NewDecoder()), src)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(out), nil
}

// ReadSource reads and decodes a file.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	src, err := Decode(b)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// Expand resolves file names and doublestar patterns into a sorted list of
// files. Files matched by a pattern are kept only if their extension names a
// source type; files named directly are always kept.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			add(pattern)
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if _, err := ast.SourceTypeFromPath(m); err == nil {
				add(m)
			}
		}
	}
	slices.Sort(files)
	return files, nil
}
