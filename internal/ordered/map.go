// Package ordered provides the insertion-ordered mapping used for every
// nested structure handled by crmarray.
//
// A *Map and a []any are the two container kinds. A []any behaves like a
// mapping whose keys are "0".."n-1". Every other value is a leaf.
package ordered

import (
	"iter"
	"reflect"
	"slices"
	"strconv"
)

// Pair is one key/value entry.
type Pair struct {
	Key   string
	Value any
}

// Map is a mapping from string keys to values that remembers insertion
// order. The zero value is ready to use. Read methods are safe on a nil *Map.
type Map struct {
	keys   []string
	values map[string]any
}

// New returns an empty map.
func New() *Map {
	return &Map{}
}

// FromPairs builds a map from pairs in order. Later duplicates overwrite
// earlier values in place.
func FromPairs(pairs ...Pair) *Map {
	m := &Map{}
	for _, pair := range pairs {
		m.Set(pair.Key, pair.Value)
	}
	return m
}

// FromSlice builds a map keyed by element position.
func FromSlice(items []any) *Map {
	m := &Map{}
	for i, item := range items {
		m.Set(strconv.Itoa(i), item)
	}
	return m
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	value, ok := m.values[key]
	return value, ok
}

// Field implements record.Record.
func (m *Map) Field(name string) (any, bool) {
	return m.Get(name)
}

// Has reports whether key is present, even when its value is nil.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. Missing keys are ignored.
func (m *Map) Delete(key string) {
	if m == nil {
		return
	}
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// Rename replaces oldKey by newKey at the same position. When newKey already
// exists elsewhere its previous entry is dropped. Returns false if oldKey is
// missing.
func (m *Map) Rename(oldKey, newKey string) bool {
	if m == nil {
		return false
	}
	value, ok := m.values[oldKey]
	if !ok {
		return false
	}
	if oldKey == newKey {
		return true
	}
	if _, exists := m.values[newKey]; exists {
		m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == newKey })
		delete(m.values, newKey)
	}
	index := slices.Index(m.keys, oldKey)
	m.keys[index] = newKey
	delete(m.values, oldKey)
	m.values[newKey] = value
	return true
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Values returns the values in key order.
func (m *Map) Values() []any {
	if m == nil {
		return nil
	}
	out := make([]any, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, m.values[key])
	}
	return out
}

// Pairs returns the entries in order.
func (m *Map) Pairs() []Pair {
	if m == nil {
		return nil
	}
	out := make([]Pair, 0, len(m.keys))
	for _, key := range m.keys {
		out = append(out, Pair{Key: key, Value: m.values[key]})
	}
	return out
}

// All iterates entries in order. The map may be mutated by the caller while
// iterating; iteration follows the keys present when it started.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range m.Keys() {
			value, ok := m.values[key]
			if !ok {
				continue
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

// Clone returns a shallow copy.
func (m *Map) Clone() *Map {
	if m == nil {
		return New()
	}
	out := &Map{
		keys:   slices.Clone(m.keys),
		values: make(map[string]any, len(m.values)),
	}
	for key, value := range m.values {
		out.values[key] = value
	}
	return out
}

// Equal reports whether both maps hold equal entries in the same order.
func (m *Map) Equal(other *Map) bool {
	return equalMaps(m, other, 0)
}

// Equal compares two values of a nested structure. Maps compare
// order-sensitively, slices element-wise, anything else with
// reflect.DeepEqual. Distinct containers nested deeper than MaxDepth are
// never equal.
func Equal(a, b any) bool {
	return equal(a, b, 0)
}

func equal(a, b any, depth int) bool {
	switch left := a.(type) {
	case *Map:
		right, ok := b.(*Map)
		return ok && equalMaps(left, right, depth)
	case []any:
		right, ok := b.([]any)
		if !ok || len(left) != len(right) {
			return false
		}
		if len(left) == 0 || &left[0] == &right[0] {
			return true
		}
		if depth >= MaxDepth {
			return false
		}
		for i := range left {
			if !equal(left[i], right[i], depth+1) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

func equalMaps(m, other *Map, depth int) bool {
	if m == other {
		return true
	}
	if m.Len() != other.Len() {
		return false
	}
	if depth >= MaxDepth {
		return false
	}
	for i, key := range m.Keys() {
		if other.keys[i] != key {
			return false
		}
		if !equal(m.values[key], other.values[key], depth+1) {
			return false
		}
	}
	return true
}

// IsContainer reports whether value is a *Map or a []any.
func IsContainer(value any) bool {
	switch value.(type) {
	case *Map, []any:
		return true
	default:
		return false
	}
}

// Entries iterates the entries of a container. A []any yields its positions
// as keys. Leaves yield nothing.
func Entries(container any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		switch current := container.(type) {
		case *Map:
			for key, value := range current.All() {
				if !yield(key, value) {
					return
				}
			}
		case []any:
			for i, value := range current {
				if !yield(strconv.Itoa(i), value) {
					return
				}
			}
		}
	}
}

// Lookup reads key from a container. Positions of a []any are addressed by
// their decimal form.
func Lookup(container any, key string) (any, bool) {
	switch current := container.(type) {
	case *Map:
		return current.Get(key)
	case []any:
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || index >= len(current) || strconv.Itoa(index) != key {
			return nil, false
		}
		return current[index], true
	case map[string]any:
		value, ok := current[key]
		return value, ok
	default:
		return nil, false
	}
}

// Len returns the number of entries of a container and false for leaves.
func Len(container any) (int, bool) {
	switch current := container.(type) {
	case *Map:
		return current.Len(), true
	case []any:
		return len(current), true
	default:
		return 0, false
	}
}

// IsList reports whether the keys of m are exactly "0".."n-1" in order.
func (m *Map) IsList() bool {
	for i, key := range m.Keys() {
		if key != strconv.Itoa(i) {
			return false
		}
	}
	return true
}
