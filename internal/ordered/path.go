package ordered

import (
	"errors"
	"reflect"
	"slices"
)

// MaxDepth bounds every recursive walk over a nested structure.
const MaxDepth = 64

// ErrDepthExceeded is returned when a structure nests deeper than MaxDepth,
// which includes structures that contain themselves.
var ErrDepthExceeded = errors.New("maximum nesting depth exceeded")

// Path holds the containers from the root of a walk down to the node being
// visited, one entry per level, so len(p) is the current depth.
type Path []uintptr

// Push returns p extended by container. Leaves and empty sequences take a
// level but can never be revisited.
func (p Path) Push(container any) Path {
	id, _ := identity(container)
	return append(p, id)
}

// Contains reports whether container is already being visited, meaning the
// structure refers back to one of its ancestors.
func (p Path) Contains(container any) bool {
	id, ok := identity(container)
	return ok && slices.Contains(p, id)
}

// Exceeded reports whether the walk is deeper than MaxDepth.
func (p Path) Exceeded() bool {
	return len(p) > MaxDepth
}

func identity(container any) (uintptr, bool) {
	switch current := container.(type) {
	case *Map:
		if current == nil {
			return 0, false
		}
		return reflect.ValueOf(current).Pointer(), true
	case []any:
		if len(current) == 0 {
			return 0, false
		}
		return reflect.ValueOf(current).Pointer(), true
	case map[string]any:
		if current == nil {
			return 0, false
		}
		return reflect.ValueOf(current).Pointer(), true
	default:
		return 0, false
	}
}
