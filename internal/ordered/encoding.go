package ordered

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
)

// MarshalJSON emits the entries as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	return EncodeJSON(m)
}

// EncodeJSON encodes value as compact JSON, keeping the order of every
// nested *Map. Structures deeper than MaxDepth, cyclic ones included, fail
// with ErrDepthExceeded.
func EncodeJSON(value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeJSON(&buf, value, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeJSON(buf *bytes.Buffer, value any, depth int) error {
	switch current := value.(type) {
	case *Map:
		if current == nil {
			buf.WriteString("null")
			return nil
		}
		if depth > MaxDepth {
			return fmt.Errorf("%w: %d levels", ErrDepthExceeded, MaxDepth)
		}
		buf.WriteByte('{')
		for i, pair := range current.Pairs() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(pair.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeJSON(buf, pair.Value, depth+1); err != nil {
				return fmt.Errorf("encode value of key %q: %w", pair.Key, err)
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		if current == nil {
			buf.WriteString("null")
			return nil
		}
		if depth > MaxDepth {
			return fmt.Errorf("%w: %d levels", ErrDepthExceeded, MaxDepth)
		}
		buf.WriteByte('[')
		for i, item := range current {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeJSON(buf, item, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		return nil
	}
}

// MarshalYAML emits the entries as an ordered YAML mapping.
func (m *Map) MarshalYAML() (any, error) {
	return yamlValue(m, 0)
}

// yamlValue converts the whole tree up front so that the encoder never calls
// back into MarshalYAML for nested maps.
func yamlValue(value any, depth int) (any, error) {
	switch current := value.(type) {
	case *Map:
		if depth > MaxDepth {
			return nil, fmt.Errorf("%w: %d levels", ErrDepthExceeded, MaxDepth)
		}
		out := make(yaml.MapSlice, 0, current.Len())
		for _, pair := range current.Pairs() {
			item, err := yamlValue(pair.Value, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, yaml.MapItem{Key: pair.Key, Value: item})
		}
		return out, nil
	case []any:
		if depth > MaxDepth {
			return nil, fmt.Errorf("%w: %d levels", ErrDepthExceeded, MaxDepth)
		}
		out := make([]any, len(current))
		for i, item := range current {
			converted, err := yamlValue(item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return value, nil
	}
}

// FromPlain converts map[string]any trees into ordered maps. Keys of plain
// maps have no order, so they are sorted. Containers nested deeper than
// MaxDepth or referring back to an ancestor become nil.
func FromPlain(value any) any {
	return fromPlain(value, nil)
}

func fromPlain(value any, path Path) any {
	if path.Exceeded() || path.Contains(value) {
		return nil
	}

	switch current := value.(type) {
	case map[string]any:
		path = path.Push(current)
		keys := make([]string, 0, len(current))
		for key := range current {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := New()
		for _, key := range keys {
			out.Set(key, fromPlain(current[key], path))
		}
		return out
	case []any:
		path = path.Push(current)
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = fromPlain(item, path)
		}
		return out
	default:
		return value
	}
}
