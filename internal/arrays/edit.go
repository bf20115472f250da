package arrays

import (
	"fmt"

	"github.com/jacoelho/crmarray/internal/ordered"
)

// DefaultCopyDepth is the usual maxDepth for DeepCopy.
const DefaultCopyDepth = 50

// DeepCopy copies every container of value down to maxDepth, the root being
// depth 0. Containers below maxDepth (or MaxDepth, whichever is smaller) are
// shared with value rather than copied; this is not an error. So are
// containers that refer back to one of their ancestors.
func DeepCopy(value any, maxDepth int) any {
	return deepCopy(value, min(maxDepth, MaxDepth), nil)
}

func deepCopy(value any, maxDepth int, path ordered.Path) any {
	if len(path) > maxDepth || path.Contains(value) {
		return value
	}

	switch current := value.(type) {
	case *ordered.Map:
		path = path.Push(current)
		out := ordered.New()
		for key, item := range current.All() {
			out.Set(key, deepCopy(item, maxDepth, path))
		}
		return out
	case []any:
		path = path.Push(current)
		out := make([]any, len(current))
		for i, item := range current {
			out[i] = deepCopy(item, maxDepth, path)
		}
		return out
	default:
		return value
	}
}

// Splice removes the entries at positions start (inclusive) to end
// (exclusive). Remaining keys are kept as they are. Out-of-range bounds are
// clamped.
func Splice(m *ordered.Map, start, end int) {
	start = max(start, 0)
	end = min(end, m.Len())

	for i, key := range m.Keys() {
		if i >= start && i < end {
			m.Delete(key)
		}
	}
}

// Remove deletes keys from m. Missing keys are ignored.
func Remove(m *ordered.Map, keys ...string) {
	for _, key := range keys {
		m.Delete(key)
	}
}

// ReplaceKey renames oldKey to newKey keeping its position.
func ReplaceKey(m *ordered.Map, oldKey, newKey string) error {
	if !m.Rename(oldKey, newKey) {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, oldKey)
	}
	return nil
}
