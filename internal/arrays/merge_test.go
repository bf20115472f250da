package arrays

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/crmarray/internal/ordered"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    *ordered.Map
		b    *ordered.Map
		want *ordered.Map
	}{
		{
			name: "sub containers are unioned",
			a:    om("a", 1, "b", om("x", 1)),
			b:    om("b", om("y", 2), "c", 3),
			want: om("a", 1, "b", om("x", 1, "y", 2), "c", 3),
		},
		{
			name: "first wins on scalar conflict",
			a:    om("a", 1),
			b:    om("a", 2),
			want: om("a", 1),
		},
		{
			name: "first wins inside merged level",
			a:    om("b", om("x", 1)),
			b:    om("b", om("x", 2, "y", 3)),
			want: om("b", om("x", 1, "y", 3)),
		},
		{
			name: "container against scalar keeps first",
			a:    om("b", "scalar"),
			b:    om("b", om("x", 1)),
			want: om("b", "scalar"),
		},
		{
			name: "merge is one level deep",
			a:    om("b", om("deep", om("p", 1))),
			b:    om("b", om("deep", om("q", 2))),
			want: om("b", om("deep", om("p", 1))),
		},
		{
			name: "sequences concatenate",
			a:    om("tags", []any{"x"}),
			b:    om("tags", []any{"y", "z"}),
			want: om("tags", []any{"x", "y", "z"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Merge(tt.a, tt.b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Merge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMergeEmptyShortCircuits(t *testing.T) {
	t.Parallel()

	b := om("x", 1)
	if got := Merge(ordered.New(), b); got != b {
		t.Fatal("Merge(empty, b) should return b unchanged")
	}

	a := om("y", 2)
	if got := Merge(a, nil); got != a {
		t.Fatal("Merge(a, nil) should return a unchanged")
	}
}

func TestMergeLeavesInputsAlone(t *testing.T) {
	t.Parallel()

	a := om("b", om("x", 1))
	b := om("b", om("y", 2))
	Merge(a, b)

	if diff := cmp.Diff(om("b", om("x", 1)), a); diff != "" {
		t.Fatalf("Merge() modified a (-want +got):\n%s", diff)
	}
}
