package document

import (
	"fmt"
	"reflect"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/crmarray/internal/ordered"
)

// Select evaluates a JSONPath expression such as "$.contacts[*]" against
// doc. Selected mappings keep their original key order. An empty expression
// selects the whole document.
func Select(doc any, expr string) ([]any, error) {
	if expr == "" || expr == "$" {
		return []any{doc}, nil
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrSelect, expr, err)
	}

	origins := map[uintptr]*ordered.Map{}
	plain := toPlain(doc, origins, nil)

	results := path.Select(plain)
	out := make([]any, 0, len(results))
	for _, result := range results {
		out = append(out, restore(result, origins))
	}
	return out, nil
}

// SelectOne returns the single node matched by expr.
func SelectOne(doc any, expr string) (any, error) {
	results, err := Select(doc, expr)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("%w: %s matched %d nodes, want 1", ErrSelect, expr, len(results))
	}
	return results[0], nil
}

// toPlain builds the map[string]any tree JSONPath evaluates, remembering
// which ordered map each plain map came from. Containers deeper than
// ordered.MaxDepth or referring back to an ancestor become nil.
func toPlain(value any, origins map[uintptr]*ordered.Map, path ordered.Path) any {
	if path.Exceeded() || path.Contains(value) {
		return nil
	}

	switch current := value.(type) {
	case *ordered.Map:
		path = path.Push(current)
		out := make(map[string]any, current.Len())
		for key, item := range current.All() {
			out[key] = toPlain(item, origins, path)
		}
		origins[reflect.ValueOf(out).Pointer()] = current
		return out
	case []any:
		path = path.Push(current)
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = toPlain(item, origins, path)
		}
		return out
	default:
		return value
	}
}

func restore(value any, origins map[uintptr]*ordered.Map) any {
	switch current := value.(type) {
	case map[string]any:
		if m, ok := origins[reflect.ValueOf(current).Pointer()]; ok {
			return m
		}
		return ordered.FromPlain(current)
	case []any:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = restore(item, origins)
		}
		return out
	default:
		return value
	}
}
