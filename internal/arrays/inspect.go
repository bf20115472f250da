package arrays

import (
	"strings"

	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/scalar"
)

// IsHierarchical reports whether container holds at least one container.
func IsHierarchical(container any) bool {
	for _, value := range ordered.Entries(container) {
		if ordered.IsContainer(value) {
			return true
		}
	}
	return false
}

// IsSubset reports whether every value of subset appears among the values
// of superset. Leaves are never subsets.
func IsSubset(subset, superset any) bool {
	if !ordered.IsContainer(subset) {
		return false
	}

	for _, expected := range ordered.Entries(subset) {
		found := false
		for _, candidate := range ordered.Entries(superset) {
			if ordered.Equal(expected, candidate) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsEmptyArray reports whether value holds nothing but nils and empty
// containers at any depth. Leaves are considered empty; 0, "" and false are
// values, not emptiness.
func IsEmptyArray(value any) bool {
	return isEmptyArray(value, nil)
}

// isEmptyArray gives up as non-empty on structures that are too deep or
// contain themselves.
func isEmptyArray(value any, path ordered.Path) bool {
	if !ordered.IsContainer(value) {
		return true
	}
	if path.Exceeded() || path.Contains(value) {
		return false
	}
	path = path.Push(value)

	for _, element := range ordered.Entries(value) {
		if ordered.IsContainer(element) {
			if !isEmptyArray(element, path) {
				return false
			}
			continue
		}
		if element != nil {
			return false
		}
	}
	return true
}

// Levels returns the maximum nesting depth of keyed mappings in value.
// Sequences, including mappings keyed "0".."n-1", do not add a level but are
// looked through.
func Levels(value any) int {
	return levels(value, nil)
}

func levels(value any, path ordered.Path) int {
	if path.Exceeded() || !ordered.IsContainer(value) {
		return 0
	}
	path = path.Push(value)

	deepest := 0
	for _, child := range ordered.Entries(value) {
		if path.Contains(child) {
			continue
		}
		deepest = max(deepest, levels(child, path))
	}

	if m, ok := value.(*ordered.Map); ok && !m.IsList() {
		return deepest + 1
	}
	return deepest
}

// InArray reports whether value occurs as a leaf anywhere in container,
// comparing string forms, optionally ignoring case.
func InArray(value string, container any, caseInsensitive bool) bool {
	return inArray(value, container, caseInsensitive, nil)
}

func inArray(value string, container any, caseInsensitive bool, path ordered.Path) bool {
	if path.Exceeded() {
		return false
	}
	path = path.Push(container)

	for _, item := range ordered.Entries(container) {
		if ordered.IsContainer(item) {
			if path.Contains(item) {
				continue
			}
			if inArray(value, item, caseInsensitive, path) {
				return true
			}
			continue
		}

		candidate := scalar.String(item)
		if caseInsensitive && strings.EqualFold(candidate, value) {
			return true
		}
		if !caseInsensitive && candidate == value {
			return true
		}
	}
	return false
}
