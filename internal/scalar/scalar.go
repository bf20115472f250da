// Package scalar classifies and coerces leaf values of nested structures.
package scalar

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
)

// ToFloat64 converts supported numeric values to float64.
func ToFloat64(value any) (float64, bool) {
	switch current := value.(type) {
	case int:
		return float64(current), true
	case int8:
		return float64(current), true
	case int16:
		return float64(current), true
	case int32:
		return float64(current), true
	case int64:
		return float64(current), true
	case uint:
		return float64(current), true
	case uint8:
		return float64(current), true
	case uint16:
		return float64(current), true
	case uint32:
		return float64(current), true
	case uint64:
		return float64(current), true
	case float32:
		return float64(current), true
	case float64:
		return current, true
	case json.Number:
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// ToInt converts integer-typed values into int64. Floats are truncated
// toward zero.
func ToInt(value any) (int64, bool) {
	switch current := value.(type) {
	case int:
		return int64(current), true
	case int8:
		return int64(current), true
	case int16:
		return int64(current), true
	case int32:
		return int64(current), true
	case int64:
		return current, true
	case uint:
		return int64(current), true
	case uint8:
		return int64(current), true
	case uint16:
		return int64(current), true
	case uint32:
		return int64(current), true
	case uint64:
		return int64(current), true
	case float32:
		return truncate(float64(current))
	case float64:
		return truncate(current)
	case json.Number:
		if parsed, err := current.Int64(); err == nil {
			return parsed, true
		}
		parsed, err := current.Float64()
		if err != nil {
			return 0, false
		}
		return truncate(parsed)
	default:
		return 0, false
	}
}

func truncate(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int64(f), true
}

// Empty reports whether value is empty in the loose sense used for
// optional fields: nil, "", "0", false, numeric zero, or an empty
// string/slice/map. Anything exposing Len() is empty when Len() is zero.
func Empty(value any) bool {
	switch current := value.(type) {
	case nil:
		return true
	case string:
		return current == "" || current == "0"
	case bool:
		return !current
	case interface{ Len() int }:
		return current.Len() == 0
	}

	if f, ok := ToFloat64(value); ok {
		return f == 0
	}

	reflected := reflect.ValueOf(value)
	switch reflected.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return reflected.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return reflected.IsNil()
	default:
		return false
	}
}

// Truthy is the negation of Empty.
func Truthy(value any) bool {
	return !Empty(value)
}

// Key normalizes a value used as a mapping key. Integers keep their decimal
// form, floats are truncated, booleans become "1" or "0" and nil becomes "".
func Key(value any) string {
	switch current := value.(type) {
	case nil:
		return ""
	case string:
		return current
	case bool:
		if current {
			return "1"
		}
		return "0"
	case json.Number:
		if i, ok := ToInt(current); ok {
			return strconv.FormatInt(i, 10)
		}
		return current.String()
	case uint64:
		return strconv.FormatUint(current, 10)
	case uint:
		return strconv.FormatUint(uint64(current), 10)
	}

	if i, ok := ToInt(value); ok {
		return strconv.FormatInt(i, 10)
	}

	if s, ok := value.(interface{ String() string }); ok {
		return s.String()
	}

	return ""
}

// String renders a leaf value the way it is interpolated into text.
func String(value any) string {
	switch current := value.(type) {
	case nil:
		return ""
	case string:
		return current
	case bool:
		if current {
			return "1"
		}
		return ""
	case float32:
		return strconv.FormatFloat(float64(current), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(current, 'f', -1, 64)
	}

	if key := Key(value); key != "" {
		return key
	}

	if b, err := json.Marshal(value); err == nil {
		return string(b)
	}
	return ""
}
