// Package corpus runs table-driven tests whose table is a directory of
// input files, each next to the expected outputs it produces.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// Corpus describes a directory of test cases.
type Corpus struct {
	// Root of the test data, relative to the file calling Run.
	Root string
	// Refresh names an environment variable holding a glob. Outputs of the
	// cases it matches are rewritten instead of compared.
	Refresh string
	// Extensions of the files that define a case, without the dot.
	Extensions []string
	// Outputs of each case. The expected value of an output lives in the
	// case's file name followed by a dot and the output's extension; a
	// missing file expects the empty string.
	Outputs []Output
	// Test runs one case and returns one string per output.
	Test func(t *testing.T, path, text string) []string
}

// Output is one product of a test case.
type Output struct {
	Extension string
	// Compare reports the difference between got and want, or "" if they
	// match. Nil compares byte for byte.
	Compare Compare
}

type Compare func(got, want string) string

func (c Corpus) Run(t *testing.T) {
	t.Helper()
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(c.Extensions, strings.TrimPrefix(filepath.Ext(path), ".")) {
			cases = append(cases, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("corpus: walking %q: %v", root, err)
	}
	if len(cases) == 0 {
		t.Fatalf("corpus: no cases under %q", root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpus: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpus: refreshing outputs because %s=%s", c.Refresh, refresh)
	}

	for _, path := range cases {
		name, _ := filepath.Rel(testDir, path)
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("corpus: reading %q: %v", path, err)
			}
			results := c.Test(t, name, string(input))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpus: test returned %d outputs, want %d", len(results), len(c.Outputs))
			}

			update, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				file := path + "." + output.Extension
				if update {
					if err := write(file, results[i]); err != nil {
						t.Error(err)
					}
					continue
				}

				want, err := os.ReadFile(file)
				if err != nil && !errors.Is(err, os.ErrNotExist) {
					t.Errorf("corpus: reading %q: %v", file, err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = Diff
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("output mismatch for %q:\n%s", file, diff)
				}
			}
		})
	}
}

func write(file, text string) error {
	if text == "" {
		if err := os.Remove(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("corpus: deleting %q: %w", file, err)
		}
		return nil
	}
	if err := os.WriteFile(file, []byte(text), 0o644); err != nil {
		return fmt.Errorf("corpus: writing %q: %w", file, err)
	}
	return nil
}

// Diff compares byte for byte and returns a unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// YAML compares two YAML documents by value, ignoring layout and key
// order.
func YAML(got, want string) string {
	var g, w any
	if err := yaml.Unmarshal([]byte(got), &g); err != nil {
		return fmt.Sprintf("got: %v", err)
	}
	if err := yaml.Unmarshal([]byte(want), &w); err != nil {
		return fmt.Sprintf("want: %v", err)
	}
	if diff := cmp.Diff(w, g); diff != "" {
		return "(-want +got)\n" + diff + "\n" + Diff(got, want)
	}
	return ""
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpus: could not determine the test file's directory")
	}
	return filepath.Dir(file)
}
