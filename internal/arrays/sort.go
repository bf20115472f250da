package arrays

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jacoelho/crmarray/internal/collate"
	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/record"
	"github.com/jacoelho/crmarray/internal/scalar"
)

// Sort returns m ordered by value, keeping each key with its value. Numbers
// compare numerically; everything else compares by string form through c.
// A nil collator means collate.Ordinal. Equal values keep their order.
func Sort(m *ordered.Map, c collate.Collator) *ordered.Map {
	if c == nil {
		c = collate.Ordinal
	}

	pairs := m.Pairs()
	slices.SortStableFunc(pairs, func(a, b ordered.Pair) int {
		return compareValues(a.Value, b.Value, c)
	})
	return ordered.FromPairs(pairs...)
}

func compareValues(a, b any, c collate.Collator) int {
	left, leftIsNumber := scalar.ToFloat64(a)
	right, rightIsNumber := scalar.ToFloat64(b)
	if leftIsNumber && rightIsNumber {
		return cmp.Compare(left, right)
	}
	return c.Compare(scalar.String(a), scalar.String(b))
}

// SortByField returns m ordered by the natural order of one field of each
// value, keeping keys. Every value must be a record holding field.
func SortByField(m *ordered.Map, field string) (*ordered.Map, error) {
	type keyed struct {
		pair  ordered.Pair
		value string
	}

	items := make([]keyed, 0, m.Len())
	for key, value := range m.All() {
		r, err := record.Of(value)
		if err != nil {
			return nil, fmt.Errorf("sort %q: %w", key, err)
		}
		fieldValue, err := record.Get(r, field)
		if err != nil {
			return nil, fmt.Errorf("sort %q: %w", key, err)
		}
		items = append(items, keyed{
			pair:  ordered.Pair{Key: key, Value: value},
			value: scalar.String(fieldValue),
		})
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return collate.Natural(a.value, b.value)
	})

	out := ordered.New()
	for _, item := range items {
		out.Set(item.pair.Key, item.pair.Value)
	}
	return out, nil
}

// Unique drops repeated values, keeping the first key holding each, then
// does the same inside every remaining container. Values are compared by
// content, so two mappings are duplicates only if their entries and order
// match. Sequences are compacted.
func Unique(value any) any {
	return unique(value, nil)
}

// unique leaves containers that are too deep or already being visited as
// they are.
func unique(value any, path ordered.Path) any {
	if path.Exceeded() || path.Contains(value) {
		return value
	}
	path = path.Push(value)

	switch current := value.(type) {
	case *ordered.Map:
		seen := make(map[string]struct{}, current.Len())
		out := ordered.New()
		for key, item := range current.All() {
			fp := fingerprint(item)
			if _, dup := seen[fp]; dup {
				continue
			}
			seen[fp] = struct{}{}
			out.Set(key, item)
		}
		for key, item := range out.All() {
			out.Set(key, unique(item, path))
		}
		return out
	case []any:
		seen := make(map[string]struct{}, len(current))
		out := make([]any, 0, len(current))
		for _, item := range current {
			fp := fingerprint(item)
			if _, dup := seen[fp]; dup {
				continue
			}
			seen[fp] = struct{}{}
			out = append(out, item)
		}
		for i, item := range out {
			out[i] = unique(item, path)
		}
		return out
	default:
		return value
	}
}

// fingerprint identifies value by content. Containers that cannot be encoded,
// such as cyclic ones, fall back to their identity.
func fingerprint(value any) string {
	encoded, err := ordered.EncodeJSON(value)
	if err == nil {
		return string(encoded)
	}
	if ordered.IsContainer(value) {
		return fmt.Sprintf("%T:%p", value, value)
	}
	return fmt.Sprintf("%T:%#v", value, value)
}
