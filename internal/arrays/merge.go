package arrays

import (
	"github.com/jacoelho/crmarray/internal/ordered"
)

// Merge combines a and b. Keys present in only one side pass through. When
// both sides hold a container under the same key, the two containers are
// merged one level deep: entries of a win and entries only in b are appended;
// two sequences are concatenated. Any other conflict keeps the value of a.
//
// If either side is empty the other one is returned unchanged.
func Merge(a, b *ordered.Map) *ordered.Map {
	if a.Len() == 0 {
		return b
	}
	if b.Len() == 0 {
		return a
	}

	out := ordered.New()
	for key, left := range a.All() {
		right, ok := b.Get(key)
		if ok && ordered.IsContainer(left) && ordered.IsContainer(right) {
			out.Set(key, mergeLevel(left, right))
			continue
		}
		out.Set(key, left)
	}

	for key, right := range b.All() {
		if a.Has(key) {
			continue
		}
		out.Set(key, right)
	}

	return out
}

// mergeLevel unions two containers without descending into their children.
func mergeLevel(left, right any) any {
	leftList, leftIsList := left.([]any)
	rightList, rightIsList := right.([]any)
	if leftIsList && rightIsList {
		out := make([]any, 0, len(leftList)+len(rightList))
		out = append(out, leftList...)
		return append(out, rightList...)
	}

	out := ordered.New()
	for key, value := range ordered.Entries(left) {
		out.Set(key, value)
	}
	for key, value := range ordered.Entries(right) {
		if !out.Has(key) {
			out.Set(key, value)
		}
	}
	return out
}
