package arrays

import (
	"fmt"

	"github.com/jacoelho/crmarray/internal/ordered"
)

// Dimension is one named axis of a Cartesian product.
type Dimension struct {
	Name   string
	Values []any
}

// Dimensions reads dimensions from a mapping of name to sequence, keeping
// declaration order. A mapping value is accepted as the sequence of its
// values.
func Dimensions(m *ordered.Map) ([]Dimension, error) {
	dims := make([]Dimension, 0, m.Len())
	for name, value := range m.All() {
		switch current := value.(type) {
		case []any:
			dims = append(dims, Dimension{Name: name, Values: current})
		case *ordered.Map:
			dims = append(dims, Dimension{Name: name, Values: current.Values()})
		default:
			return nil, fmt.Errorf("%w: %q is %T", ErrInvalidDimension, name, value)
		}
	}
	return dims, nil
}

// Product enumerates every combination of one value per dimension, each
// combined with a copy of template. The first dimension varies slowest and
// the last fastest:
//
//	fg: [red, blue], bg: [white, black]
//
// yields red/white, red/black, blue/white, blue/black. Each combination lists
// the template keys first, then the dimensions in declaration order. No
// dimensions yield a single copy of template; a dimension without values
// yields nothing.
func Product(dims []Dimension, template *ordered.Map) []*ordered.Map {
	results := []*ordered.Map{template.Clone()}

	for _, dim := range dims {
		next := make([]*ordered.Map, 0, len(results)*len(dim.Values))
		for _, partial := range results {
			for _, value := range dim.Values {
				combination := partial.Clone()
				combination.Set(dim.Name, value)
				next = append(next, combination)
			}
		}
		results = next
	}

	return results
}
