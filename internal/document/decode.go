// Package document reads nested structures from YAML or JSON, selects parts
// of them with JSONPath and writes them back out, preserving key order.
package document

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/jacoelho/crmarray/internal/ordered"
)

// Decode reads the first document of r. JSON is accepted as YAML. An empty
// stream decodes to nil. Mappings decode to *ordered.Map, sequences to []any
// and scalars to string, int, uint64, float64, bool or nil.
func Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(file.Docs) == 0 {
		return nil, nil
	}

	return convert(file.Docs[0])
}

// DecodeString decodes an inline document, as given on the command line.
func DecodeString(s string) (any, error) {
	return Decode(strings.NewReader(s))
}

// DecodeFile decodes the file at path, or standard input when path is "-"
// or empty.
func DecodeFile(path string) (any, error) {
	if path == "" || path == "-" {
		return Decode(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func convert(node ast.Node) (any, error) {
	switch n := node.(type) {
	case nil, *ast.CommentGroupNode:
		return nil, nil
	case *ast.DocumentNode:
		return convert(n.Body)
	case *ast.MappingNode:
		return convertMapping(n.Values)
	case *ast.MappingValueNode:
		return convertMapping([]*ast.MappingValueNode{n})
	case *ast.SequenceNode:
		out := make([]any, 0, len(n.Values))
		for index, item := range n.Values {
			value, err := convert(item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", index, err)
			}
			out = append(out, value)
		}
		return out, nil
	case *ast.AnchorNode:
		return convert(n.Value)
	case *ast.TagNode:
		return convert(n.Value)
	case *ast.AliasNode:
		return nil, fmt.Errorf("%w: alias %s", ErrUnsupported, n.String())
	default:
		return convertScalar(node)
	}
}

func convertMapping(pairs []*ast.MappingValueNode) (*ordered.Map, error) {
	out := ordered.New()
	for _, pair := range pairs {
		if pair.Key.IsMergeKey() {
			return nil, fmt.Errorf("%w: merge key", ErrUnsupported)
		}

		key, err := convertKey(pair.Key)
		if err != nil {
			return nil, err
		}

		value, err := convert(pair.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out.Set(key, value)
	}
	return out, nil
}

// convertKey keeps the source spelling of scalar keys so that 01 or true
// stay as written.
func convertKey(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.StringNode:
		return n.Value, nil
	case *ast.NullNode:
		return "", nil
	case *ast.AnchorNode:
		return convertKey(n.Value)
	case *ast.TagNode:
		return convertKey(n.Value)
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode, *ast.InfinityNode, *ast.NanNode:
		return n.GetToken().Value, nil
	default:
		return "", fmt.Errorf("%w: mapping key must be scalar, got %T", ErrUnsupported, node)
	}
}

func convertScalar(node ast.Node) (any, error) {
	switch n := node.(type) {
	case *ast.NullNode:
		return nil, nil
	case *ast.StringNode:
		return n.Value, nil
	case *ast.LiteralNode:
		if n.Value == nil {
			return "", nil
		}
		return n.Value.Value, nil
	case *ast.IntegerNode:
		switch v := n.Value.(type) {
		case int64:
			return int(v), nil
		case uint64:
			if v <= math.MaxInt64 {
				return int(v), nil
			}
			return v, nil
		default:
			return nil, fmt.Errorf("unexpected integer node value type: %T", n.Value)
		}
	case *ast.FloatNode:
		return n.Value, nil
	case *ast.InfinityNode:
		return n.Value, nil
	case *ast.NanNode:
		return math.NaN(), nil
	case *ast.BoolNode:
		return n.Value, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupported, node)
	}
}
