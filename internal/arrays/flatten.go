package arrays

import (
	"fmt"
	"strings"

	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/scalar"
)

// Flatten returns one entry per non-empty leaf of nested, keyed by the path
// from the root joined with delim. A non-empty prefix is prepended to every
// path. Empty leaves (see scalar.Empty) are dropped, so flattening is lossy.
//
//	{foo: [bar, baz], asdf: {merp: bleep}, quux: 999}
//
// becomes
//
//	{foo.0: bar, foo.1: baz, asdf.merp: bleep, quux: 999}
func Flatten(nested any, prefix, delim string) (*ordered.Map, error) {
	flat := ordered.New()
	if err := flatten(flat, nested, prefix, delim, 0); err != nil {
		return nil, err
	}
	return flat, nil
}

func flatten(flat *ordered.Map, nested any, prefix, delim string, depth int) error {
	if depth > MaxDepth {
		return fmt.Errorf("%w: flatten %q", ErrDepthExceeded, prefix)
	}

	for key, value := range ordered.Entries(nested) {
		path := key
		if prefix != "" {
			path = prefix + delim + key
		}

		if ordered.IsContainer(value) {
			if err := flatten(flat, value, path, delim, depth+1); err != nil {
				return err
			}
			continue
		}

		if scalar.Truthy(value) {
			flat.Set(path, value)
		}
	}

	return nil
}

// Unflatten is the inverse of Flatten. Each key of flat is split on delim and
// intermediate mappings are created for every segment but the last. When a
// path crosses an existing leaf, the leaf is replaced by a fresh mapping, so
// later keys win. Intermediate mappings whose keys are exactly "0".."n-1" are
// returned as []any. The root is always a mapping.
func Unflatten(delim string, flat *ordered.Map) (*ordered.Map, error) {
	result := ordered.New()
	interior := map[*ordered.Map]struct{}{}

	for key, value := range flat.All() {
		path := []string{key}
		if delim != "" {
			path = strings.Split(key, delim)
		}
		if len(path) > MaxDepth {
			return nil, fmt.Errorf("%w: unflatten %q has %d segments", ErrDepthExceeded, key, len(path))
		}

		node := result
		for _, segment := range path[:len(path)-1] {
			current, _ := node.Get(segment)
			child, ok := current.(*ordered.Map)
			if _, created := interior[child]; !ok || !created {
				child = ordered.New()
				interior[child] = struct{}{}
				node.Set(segment, child)
			}
			node = child
		}
		node.Set(path[len(path)-1], value)
	}

	for key, value := range result.All() {
		result.Set(key, listify(value, interior))
	}
	return result, nil
}

// listify turns interior mappings with list-shaped keys into []any.
func listify(value any, interior map[*ordered.Map]struct{}) any {
	m, ok := value.(*ordered.Map)
	if !ok {
		return value
	}
	if _, created := interior[m]; !created {
		return value
	}

	for key, child := range m.All() {
		m.Set(key, listify(child, interior))
	}

	if m.Len() == 0 || !m.IsList() {
		return m
	}
	return m.Values()
}
