package collate

import (
	"strings"

	"github.com/maruel/natural"
)

// Natural compares strings so that embedded runs of digits are ordered by
// numeric value: "img2" < "img10". Leading whitespace is ignored. Equal
// numbers written with more leading zeros sort after: "file7" < "file007".
func Natural(a, b string) int {
	a = strings.TrimLeft(a, " \t\n\r\v\f")
	b = strings.TrimLeft(b, " \t\n\r\v\f")

	switch {
	case a == b:
		return 0
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	default:
		return 0
	}
}

// NaturalCollator orders strings with Natural.
var NaturalCollator Collator = CollatorFunc(Natural)
