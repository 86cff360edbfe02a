// Package astdump renders syntax trees as YAML documents, for golden tests
// and the command line.
//
// Every node becomes a mapping whose first key, node, holds its Go type
// name. Fields holding zero values are left out, except ast enumerations.
// Wrapper structs such as
// ast.Expression are replaced by the node they hold; array holes are null.
package astdump

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/t14raptor/jsarena/ast"
)

// Options controls what a dump includes.
type Options struct {
	// Spans adds a [start, end] pair to every node.
	Spans bool
	// Comments keeps Program.Comments.
	Comments bool
}

var (
	spanType     = reflect.TypeFor[ast.Span]()
	stringerType = reflect.TypeFor[fmt.Stringer]()
)

// Marshal returns the YAML text for n.
func Marshal(n ast.Node, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Node(n, opts)); err != nil {
		return nil, fmt.Errorf("astdump: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("astdump: %w", err)
	}
	return buf.Bytes(), nil
}

// Node returns the YAML node tree for n.
func Node(n ast.Node, opts Options) *yaml.Node {
	d := dumper{opts: opts}
	if y := d.value(reflect.ValueOf(n)); y != nil {
		return y
	}
	return null()
}

type dumper struct {
	opts Options
}

func (d *dumper) value(v reflect.Value) *yaml.Node {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return d.value(v.Elem())
	case reflect.Struct:
		if inner, ok := wrapped(v); ok {
			return d.value(inner)
		}
		if v.Type().Implements(stringerType) {
			return scalar("!!str", v.Interface().(fmt.Stringer).String())
		}
		return d.object(v)
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := range v.Len() {
			item := d.value(v.Index(i))
			if item == nil {
				item = null()
			}
			seq.Content = append(seq.Content, item)
		}
		return seq
	case reflect.String:
		return scalar("!!str", v.String())
	case reflect.Bool:
		return scalar("", strconv.FormatBool(v.Bool()))
	case reflect.Float32, reflect.Float64:
		return scalar("", strconv.FormatFloat(v.Float(), 'g', -1, 64))
	}
	if v.Type().Implements(stringerType) {
		return scalar("!!str", v.Interface().(fmt.Stringer).String())
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar("", strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return scalar("", strconv.FormatUint(v.Uint(), 10))
	}
	return nil
}

// wrapped returns the node held by a wrapper struct: a struct whose only
// field is an embedded interface.
func wrapped(v reflect.Value) (reflect.Value, bool) {
	t := v.Type()
	if t.NumField() != 1 {
		return reflect.Value{}, false
	}
	f := t.Field(0)
	if !f.Anonymous || f.Type.Kind() != reflect.Interface {
		return reflect.Value{}, false
	}
	return v.Field(0), true
}

func (d *dumper) object(v reflect.Value) *yaml.Node {
	m := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, key("node"), scalar("!!str", v.Type().Name()))
	d.fields(m, v)
	return m
}

func (d *dumper) fields(m *yaml.Node, v reflect.Value) {
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		switch {
		case f.Type == spanType:
			if d.opts.Spans {
				span := fv.Interface().(ast.Span)
				m.Content = append(m.Content, key("span"), spanNode(span))
			}
			continue
		case f.Anonymous && f.Type.Kind() == reflect.Struct:
			// Modifiers
			d.fields(m, fv)
			continue
		case f.Name == "Comments" && !d.opts.Comments:
			continue
		}
		if fv.IsZero() && f.Type.Kind() != reflect.Struct && !enum(f.Type) {
			continue
		}
		if y := d.value(fv); y != nil {
			m.Content = append(m.Content, key(lowerFirst(f.Name)), y)
		}
	}
}

// enum reports whether t is an ast enumeration such as ast.CommentKind,
// whose zero value names a member.
func enum(t reflect.Type) bool {
	return t.PkgPath() == spanType.PkgPath() && t.Kind() == reflect.Uint8 && t.Implements(stringerType)
}

func spanNode(s ast.Span) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.SequenceNode,
		Style: yaml.FlowStyle,
		Content: []*yaml.Node{
			scalar("", strconv.FormatUint(uint64(s.Start), 10)),
			scalar("", strconv.FormatUint(uint64(s.End), 10)),
		},
	}
}

func key(name string) *yaml.Node { return scalar("!!str", name) }

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func null() *yaml.Node { return scalar("!!null", "null") }

func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}
