package document

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/record"
)

// Format is an output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	// FormatText writes strings as they are and anything else as YAML.
	FormatText Format = "text"
)

// ParseFormat accepts yaml, yml, json and text in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "text":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, s)
	}
}

// Encode writes value to w in format f, followed by a newline.
func Encode(w io.Writer, value any, f Format) error {
	value = Normalize(value)

	switch f {
	case FormatJSON:
		payload, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		payload = append(payload, '\n')
		_, err = w.Write(payload)
		return err
	case FormatText:
		if s, ok := value.(string); ok {
			_, err := io.WriteString(w, s+"\n")
			return err
		}
		return Encode(w, value, FormatYAML)
	case FormatYAML, "":
		payload, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		_, err = w.Write(payload)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrFormat, f)
	}
}

// Normalize prepares a result for encoding: record adapters are unwrapped,
// plain maps become ordered maps with sorted keys and typed slices of
// results become []any.
func Normalize(value any) any {
	return normalize(value, nil)
}

// normalize writes containers nested deeper than ordered.MaxDepth, or
// referring back to an ancestor, as null.
func normalize(value any, path ordered.Path) any {
	if path.Exceeded() || path.Contains(value) {
		return nil
	}

	switch current := value.(type) {
	case record.Plain:
		return normalize(map[string]any(current), path)
	case record.Struct:
		return current.Value()
	case map[string]any:
		return normalize(ordered.FromPlain(current), path)
	case *ordered.Map:
		path = path.Push(current)
		out := ordered.New()
		for key, item := range current.All() {
			out.Set(key, normalize(item, path))
		}
		return out
	case []*ordered.Map:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = normalize(item, path.Push(current))
		}
		return out
	case []record.Record:
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = normalize(item, path.Push(current))
		}
		return out
	case []any:
		path = path.Push(current)
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = normalize(item, path)
		}
		return out
	default:
		return value
	}
}
