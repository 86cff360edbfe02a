package ast

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SourceType selects the grammar a source is parsed with.
type SourceType struct {
	Module     bool
	JSX        bool
	TypeScript bool
	// Definition marks a TypeScript declaration file (.d.ts).
	Definition bool
}

func (s SourceType) IsScript() bool { return !s.Module }

func (s SourceType) WithModule(yes bool) SourceType     { s.Module = yes; return s }
func (s SourceType) WithJSX(yes bool) SourceType        { s.JSX = yes; return s }
func (s SourceType) WithTypeScript(yes bool) SourceType { s.TypeScript = yes; return s }

func (s SourceType) String() string {
	var b strings.Builder
	if s.Module {
		b.WriteString("module")
	} else {
		b.WriteString("script")
	}
	switch {
	case s.Definition:
		b.WriteString(" dts")
	case s.TypeScript:
		b.WriteString(" ts")
	default:
		b.WriteString(" js")
	}
	if s.JSX {
		b.WriteString("x")
	}
	return b.String()
}

// SourceTypeFromPath derives the source type from a file extension. Files
// are modules unless the extension says otherwise (.cjs, .cts).
func SourceTypeFromPath(path string) (SourceType, error) {
	base := strings.ToLower(filepath.Base(path))
	for _, ext := range []string{".d.ts", ".d.mts", ".d.cts"} {
		if strings.HasSuffix(base, ext) {
			return SourceType{Module: ext != ".d.cts", TypeScript: true, Definition: true}, nil
		}
	}
	switch ext := filepath.Ext(base); ext {
	case ".js", ".mjs":
		return SourceType{Module: true, JSX: ext == ".js"}, nil
	case ".cjs":
		return SourceType{}, nil
	case ".jsx":
		return SourceType{Module: true, JSX: true}, nil
	case ".ts", ".mts":
		return SourceType{Module: true, TypeScript: true}, nil
	case ".cts":
		return SourceType{TypeScript: true}, nil
	case ".tsx":
		return SourceType{Module: true, TypeScript: true, JSX: true}, nil
	default:
		return SourceType{}, fmt.Errorf("unknown extension %q", ext)
	}
}
