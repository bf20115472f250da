package arrays

import (
	"strings"

	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/scalar"
)

// LookupValue translates between a property's label and its id inside
// defaults. Forward, defaults["<property>_id"] is looked up among the keys
// of lookup and the match is stored under property; with reverse, the label
// in defaults[property] is looked up among the values of lookup and the
// matching key is stored under "<property>_id".
//
// Source keys and lookup keys match case-insensitively, and dots around
// lookup keys and the looked-up value are ignored, so "Dr." and "Dr" are the
// same. It reports whether defaults was updated.
func LookupValue(defaults *ordered.Map, property string, lookup *ordered.Map, reverse bool) bool {
	id := property + "_id"
	src, dst := id, property
	if reverse {
		src, dst = property, id
	}

	needle, ok := findFold(defaults, src)
	if !ok {
		return false
	}

	table := make(map[string]any, lookup.Len())
	for key, value := range lookup.All() {
		if reverse {
			key, value = scalar.Key(value), key
		}
		table[strings.ToLower(strings.Trim(key, "."))] = value
	}

	found, ok := table[strings.Trim(strings.ToLower(scalar.String(needle)), ".")]
	if !ok {
		return false
	}

	defaults.Set(dst, found)
	return true
}

// findFold returns the value of the first key of m equal to key ignoring case.
func findFold(m *ordered.Map, key string) (any, bool) {
	if value, ok := m.Get(key); ok {
		return value, true
	}
	for candidate, value := range m.All() {
		if strings.EqualFold(candidate, key) {
			return value, true
		}
	}
	return nil, false
}
