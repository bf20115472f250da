// Package record adapts map-style and attribute-style values to a single
// field access capability.
package record

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/jacoelho/crmarray/internal/ordered"
)

var (
	// ErrFieldNotFound is returned when a record has no such field.
	ErrFieldNotFound = errors.New("field not found")

	// ErrNotRecord is returned when a value cannot be adapted to a Record.
	ErrNotRecord = errors.New("value is not a record")
)

// Record exposes named fields. *ordered.Map implements it directly.
type Record interface {
	Field(name string) (any, bool)
}

// Get returns a field or a wrapped ErrFieldNotFound.
func Get(r Record, name string) (any, error) {
	value, ok := r.Field(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	return value, nil
}

// Plain adapts a map[string]any.
type Plain map[string]any

// Field implements Record.
func (p Plain) Field(name string) (any, bool) {
	value, ok := p[name]
	return value, ok
}

// Struct adapts a struct or pointer to struct. Fields are matched by json
// tag, exact name, then case-insensitive name. Unexported fields are never
// matched.
type Struct struct {
	value reflect.Value
}

// NewStruct wraps v, which must be a struct or a non-nil pointer to one.
func NewStruct(v any) (Struct, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return Struct{}, fmt.Errorf("%w: nil %T", ErrNotRecord, v)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Struct{}, fmt.Errorf("%w: %T", ErrNotRecord, v)
	}
	return Struct{value: rv}, nil
}

// Field implements Record.
func (s Struct) Field(name string) (any, bool) {
	if !s.value.IsValid() {
		return nil, false
	}
	index, ok := matchField(s.value.Type(), name)
	if !ok {
		return nil, false
	}
	field, err := s.value.FieldByIndexErr(index)
	if err != nil {
		return nil, false
	}
	return field.Interface(), true
}

// Value returns the wrapped struct.
func (s Struct) Value() any {
	if !s.value.IsValid() {
		return nil
	}
	return s.value.Interface()
}

// matchField tries: json tag, exact name, case-insensitive name.
func matchField(t reflect.Type, name string) ([]int, bool) {
	fields := reflect.VisibleFields(t)

	for _, f := range fields {
		if f.IsExported() && !f.Anonymous && jsonTagName(f) == name {
			return f.Index, true
		}
	}

	if f, ok := t.FieldByName(name); ok && f.IsExported() {
		return f.Index, true
	}

	for _, f := range fields {
		if f.IsExported() && !f.Anonymous && strings.EqualFold(f.Name, name) {
			return f.Index, true
		}
	}

	return nil, false
}

func jsonTagName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return ""
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// Of adapts a decoded or caller-supplied value to a Record.
func Of(v any) (Record, error) {
	switch current := v.(type) {
	case Record:
		return current, nil
	case map[string]any:
		return Plain(current), nil
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotRecord)
	}
	return NewStruct(v)
}

// Unwrap returns the value behind an adapter so it can be encoded.
func Unwrap(r any) any {
	switch current := r.(type) {
	case Plain:
		return map[string]any(current)
	case Struct:
		return current.Value()
	default:
		return r
	}
}

// Fields adapts a sequence of values, failing on the first one that is not a
// record. The error names the offending position.
func Fields(values []any) ([]Record, error) {
	out := make([]Record, 0, len(values))
	for i, value := range values {
		r, err := Of(value)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

var _ Record = (*ordered.Map)(nil)
