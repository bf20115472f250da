package arrays

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jacoelho/crmarray/internal/collate"
	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/record"
)

func TestSort(t *testing.T) {
	t.Parallel()

	got := Sort(om("a", 10, "b", 2.5, "c", 2, "d", 10), nil)
	want := om("c", 2, "b", 2.5, "a", 10, "d", 10)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sort() mismatch (-want +got):\n%s", diff)
	}

	got = Sort(om("x", "pear", "y", "apple", "z", "Banana"), nil)
	want = om("z", "Banana", "y", "apple", "x", "pear")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Sort() mismatch (-want +got):\n%s", diff)
	}
}

func TestSortWithLocale(t *testing.T) {
	t.Parallel()

	german, err := collate.ForLocale("de_DE")
	if err != nil {
		t.Fatalf("ForLocale() error = %v", err)
	}

	m := om("1", "zebra", "2", "äpfel", "3", "birne")

	got := Sort(m, german)
	if diff := cmp.Diff([]any{"äpfel", "birne", "zebra"}, got.Values()); diff != "" {
		t.Fatalf("Sort(de) mismatch (-want +got):\n%s", diff)
	}

	got = Sort(m, collate.Ordinal)
	if diff := cmp.Diff([]any{"birne", "zebra", "äpfel"}, got.Values()); diff != "" {
		t.Fatalf("Sort(ordinal) mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByField(t *testing.T) {
	t.Parallel()

	m := om(
		"x", om("name", "item10"),
		"y", om("name", "item2"),
		"z", map[string]any{"name": "item1"},
	)

	got, err := SortByField(m, "name")
	if err != nil {
		t.Fatalf("SortByField() error = %v", err)
	}
	if diff := cmp.Diff([]string{"z", "y", "x"}, got.Keys()); diff != "" {
		t.Fatalf("SortByField() keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSortByFieldErrors(t *testing.T) {
	t.Parallel()

	_, err := SortByField(om("x", om("name", "a"), "y", om("other", "b")), "name")
	if !errors.Is(err, record.ErrFieldNotFound) {
		t.Fatalf("SortByField() error = %v, want ErrFieldNotFound", err)
	}

	_, err = SortByField(om("x", nil), "name")
	if !errors.Is(err, record.ErrNotRecord) {
		t.Fatalf("SortByField() error = %v, want ErrNotRecord", err)
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	input := om(
		"a", 1,
		"b", 1,
		"s", "1",
		"c", om("p", "x", "q", "x"),
		"d", om("p", "x", "q", "x"),
		"l", []any{"x", "y", "x"},
	)

	got := Unique(input)
	want := om(
		"a", 1,
		"s", "1",
		"c", om("p", "x"),
		"l", []any{"x", "y"},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Unique() mismatch (-want +got):\n%s", diff)
	}

	if !input.Has("b") {
		t.Fatal("Unique() modified its input")
	}
}

func TestUniqueLeaf(t *testing.T) {
	t.Parallel()

	if got := Unique("x"); got != "x" {
		t.Fatalf("Unique(leaf) = %v, want x", got)
	}
}

func TestUniqueCyclic(t *testing.T) {
	t.Parallel()

	m := selfLoop("a", "b")
	m.Set("c", 1)

	got, ok := Unique(m).(*ordered.Map)
	if !ok {
		t.Fatalf("Unique() = %T, want *ordered.Map", Unique(m))
	}
	if diff := cmp.Diff([]string{"a", "c"}, got.Keys()); diff != "" {
		t.Fatalf("Unique() keys mismatch (-want +got):\n%s", diff)
	}
	if value, _ := got.Get("a"); value != m {
		t.Fatal("Unique() should keep the cyclic reference as is")
	}
}

func TestSortCyclicValue(t *testing.T) {
	t.Parallel()

	got := Sort(om("x", selfLoop("self"), "y", "b", "z", "a"), nil)
	if diff := cmp.Diff([]string{"x", "z", "y"}, got.Keys()); diff != "" {
		t.Fatalf("Sort() keys mismatch (-want +got):\n%s", diff)
	}
}
