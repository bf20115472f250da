package arrays

import (
	"fmt"
	"iter"
	"strconv"

	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/record"
	"github.com/jacoelho/crmarray/internal/scalar"
)

// Index builds a tree with one mapping level per key. Every level but the
// last is keyed by the record's value for that key; the last level maps the
// final key's value to the record itself. Records sharing a full key path
// overwrite earlier ones.
//
//	Index([]string{"type", "id"}, records) // {A: {1: rec1, 2: rec2}, B: {1: rec3}}
//
// A record missing any key fails the whole call with record.ErrFieldNotFound.
func Index[R record.Record](keys []string, records []R) (*ordered.Map, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}

	groups, final := keys[:len(keys)-1], keys[len(keys)-1]
	result := ordered.New()

	for i, rec := range records {
		node := result
		for _, key := range groups {
			value, err := record.Get(rec, key)
			if err != nil {
				return nil, fmt.Errorf("index record %d: %w", i, err)
			}

			keyValue := scalar.Key(value)
			current, _ := node.Get(keyValue)
			child, ok := current.(*ordered.Map)
			if !ok {
				child = ordered.New()
				node.Set(keyValue, child)
			}
			node = child
		}

		value, err := record.Get(rec, final)
		if err != nil {
			return nil, fmt.Errorf("index record %d: %w", i, err)
		}
		node.Set(scalar.Key(value), rec)
	}

	return result, nil
}

// Collect maps each key of records to the value of field in that record.
// A record without field fails the call with record.ErrFieldNotFound.
func Collect[R record.Record](field string, records iter.Seq2[string, R]) (*ordered.Map, error) {
	result := ordered.New()
	for key, rec := range records {
		value, err := record.Get(rec, field)
		if err != nil {
			return nil, fmt.Errorf("collect record %q: %w", key, err)
		}
		result.Set(key, value)
	}
	return result, nil
}

// Positions iterates items keyed by their position.
func Positions[T any](items []T) iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for i, item := range items {
			if !yield(strconv.Itoa(i), item) {
				return
			}
		}
	}
}
