package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// maxDepth bounds selection nesting. Case and TimelineEntry reference each
// other, so without it a single query could fan out without limit.
const maxDepth = 8

var errNull = errors.New("must not be null")

// fieldFunc resolves one field of a parent object. Leaf fields return a
// graphql.Marshaler, object fields a pointer to the domain value and list
// fields a []any. A nil result is a GraphQL null.
type fieldFunc func(ctx context.Context, obj any, args map[string]any) (any, error)

type objectType map[string]fieldFunc

type executor struct {
	schema    *ast.Schema
	types     map[string]objectType
	fragments ast.FragmentDefinitionList
	vars      map[string]any
	present   graphql.ErrorPresenterFunc

	mu   sync.Mutex
	errs gqlerror.List
}

type collectedField struct {
	alias string
	field *ast.Field
	sel   ast.SelectionSet
}

// execute runs a validated query operation and returns the response body.
func (e *executor) execute(ctx context.Context, op *ast.OperationDefinition) *graphql.Response {
	root := e.schema.Query
	data, ok := e.executeSelection(ctx, root.Name, op.SelectionSet, nil, nil)

	resp := &graphql.Response{Data: json.RawMessage("null")}
	if ok {
		var buf bytes.Buffer
		data.MarshalGQL(&buf)
		resp.Data = buf.Bytes()
	}
	if len(e.errs) > 0 {
		resp.Errors = e.errs
	}
	return resp
}

func (e *executor) executeSelection(ctx context.Context, typeName string, sel ast.SelectionSet, obj any, path ast.Path) (*object, bool) {
	fields := e.collect(typeName, sel, nil)
	out := &object{
		keys:   make([]string, 0, len(fields)),
		values: make([]graphql.Marshaler, 0, len(fields)),
	}
	for _, cf := range fields {
		v, ok := e.resolveField(ctx, typeName, cf, obj, extend(path, ast.PathName(cf.alias)))
		if !ok {
			return nil, false
		}
		out.keys = append(out.keys, cf.alias)
		out.values = append(out.values, v)
	}
	return out, true
}

func (e *executor) resolveField(ctx context.Context, typeName string, cf *collectedField, obj any, path ast.Path) (graphql.Marshaler, bool) {
	if cf.field.Name == "__typename" {
		return graphql.MarshalString(typeName), true
	}

	t := cf.field.Definition.Type
	fn, ok := e.types[typeName][cf.field.Name]
	if !ok {
		e.addError(ctx, path, fmt.Errorf("%s.%s is not supported", typeName, cf.field.Name))
		return nullable(t)
	}

	val, err := fn(ctx, obj, cf.field.ArgumentMap(e.vars))
	if err != nil {
		e.addError(ctx, path, err)
		return nullable(t)
	}
	return e.complete(ctx, t, cf.sel, val, path)
}

// complete turns a resolved value into its response form. It reports false
// when a non-null position ended up null; the caller then becomes null.
func (e *executor) complete(ctx context.Context, t *ast.Type, sel ast.SelectionSet, val any, path ast.Path) (graphql.Marshaler, bool) {
	if val == nil {
		if t.NonNull {
			e.addError(ctx, path, errNull)
			return nil, false
		}
		return graphql.Null, true
	}

	if t.Elem != nil {
		items, ok := val.([]any)
		if !ok {
			e.addError(ctx, path, fmt.Errorf("expected a list, got %T", val))
			return nullable(t)
		}
		return e.completeList(ctx, t, sel, items, path)
	}

	if def := e.schema.Types[t.NamedType]; def != nil && def.Kind == ast.Object {
		o, ok := e.executeSelection(ctx, def.Name, sel, val, path)
		if !ok {
			return nullable(t)
		}
		return o, true
	}

	m, ok := val.(graphql.Marshaler)
	if !ok {
		e.addError(ctx, path, fmt.Errorf("%s: unexpected value %T", t.NamedType, val))
		return nullable(t)
	}
	return m, true
}

// completeList completes object items concurrently so that their
// DataLoader calls land in the same batch.
func (e *executor) completeList(ctx context.Context, t *ast.Type, sel ast.SelectionSet, items []any, path ast.Path) (graphql.Marshaler, bool) {
	out := make(graphql.Array, len(items))
	oks := make([]bool, len(items))

	def := e.schema.Types[t.Elem.Name()]
	if def != nil && def.Kind == ast.Object {
		var wg sync.WaitGroup
		for i, item := range items {
			wg.Add(1)
			go func() {
				defer wg.Done()
				itemPath := extend(path, ast.PathIndex(i))
				defer e.recoverItem(ctx, itemPath)
				out[i], oks[i] = e.complete(ctx, t.Elem, sel, item, itemPath)
			}()
		}
		wg.Wait()
	} else {
		for i, item := range items {
			out[i], oks[i] = e.complete(ctx, t.Elem, sel, item, extend(path, ast.PathIndex(i)))
		}
	}

	for _, ok := range oks {
		if !ok {
			return nullable(t)
		}
	}
	return out, true
}

func (e *executor) recoverItem(ctx context.Context, path ast.Path) {
	if r := recover(); r != nil {
		e.addError(ctx, path, fmt.Errorf("panic: %v", r))
	}
}

// collect flattens fragments, applies @skip and @include, and merges
// fields sharing a response key, preserving first-seen order.
func (e *executor) collect(typeName string, sel ast.SelectionSet, visited map[string]bool) []*collectedField {
	if visited == nil {
		visited = map[string]bool{}
	}
	var (
		out    []*collectedField
		byName = map[string]*collectedField{}
	)
	var walk func(ast.SelectionSet)
	walk = func(set ast.SelectionSet) {
		for _, s := range set {
			switch s := s.(type) {
			case *ast.Field:
				if !e.included(s.Directives) {
					continue
				}
				if cf, ok := byName[s.Alias]; ok {
					cf.sel = append(cf.sel, s.SelectionSet...)
					continue
				}
				cf := &collectedField{alias: s.Alias, field: s, sel: append(ast.SelectionSet(nil), s.SelectionSet...)}
				byName[s.Alias] = cf
				out = append(out, cf)
			case *ast.InlineFragment:
				if !e.included(s.Directives) || !applies(s.TypeCondition, typeName) {
					continue
				}
				walk(s.SelectionSet)
			case *ast.FragmentSpread:
				if !e.included(s.Directives) || visited[s.Name] {
					continue
				}
				frag := e.fragments.ForName(s.Name)
				if frag == nil || !applies(frag.TypeCondition, typeName) {
					continue
				}
				visited[s.Name] = true
				walk(frag.SelectionSet)
			}
		}
	}
	walk(sel)
	return out
}

func (e *executor) included(dirs ast.DirectiveList) bool {
	if d := dirs.ForName("skip"); d != nil {
		if skip, _ := d.ArgumentMap(e.vars)["if"].(bool); skip {
			return false
		}
	}
	if d := dirs.ForName("include"); d != nil {
		if include, _ := d.ArgumentMap(e.vars)["if"].(bool); !include {
			return false
		}
	}
	return true
}

// depth returns the deepest field nesting of sel, following fragments.
func (e *executor) depth(sel ast.SelectionSet, visited map[string]bool) int {
	deepest := 0
	for _, s := range sel {
		var d int
		switch s := s.(type) {
		case *ast.Field:
			d = 1 + e.depth(s.SelectionSet, visited)
		case *ast.InlineFragment:
			d = e.depth(s.SelectionSet, visited)
		case *ast.FragmentSpread:
			if visited[s.Name] {
				continue
			}
			frag := e.fragments.ForName(s.Name)
			if frag == nil {
				continue
			}
			visited[s.Name] = true
			d = e.depth(frag.SelectionSet, visited)
			delete(visited, s.Name)
		}
		deepest = max(deepest, d)
	}
	return deepest
}

func (e *executor) addError(ctx context.Context, path ast.Path, err error) {
	gqlErr := e.present(ctx, err)
	gqlErr.Path = path

	e.mu.Lock()
	e.errs = append(e.errs, gqlErr)
	e.mu.Unlock()
}

func applies(typeCondition, typeName string) bool {
	return typeCondition == "" || typeCondition == typeName
}

func nullable(t *ast.Type) (graphql.Marshaler, bool) {
	if t.NonNull {
		return nil, false
	}
	return graphql.Null, true
}

// extend returns a copy of path with el appended; sibling goroutines must
// not share a backing array.
func extend(path ast.Path, el ast.PathElement) ast.Path {
	out := make(ast.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, el)
}

// object is a response object that keeps its keys in selection order.
type object struct {
	keys   []string
	values []graphql.Marshaler
}

func (o *object) MarshalGQL(w io.Writer) {
	io.WriteString(w, "{")
	for i, k := range o.keys {
		if i > 0 {
			io.WriteString(w, ",")
		}
		graphql.MarshalString(k).MarshalGQL(w)
		io.WriteString(w, ":")
		o.values[i].MarshalGQL(w)
	}
	io.WriteString(w, "}")
}
