package arrays

import (
	"errors"

	"github.com/jacoelho/crmarray/internal/ordered"
)

// MaxDepth bounds the recursion of every helper in this package.
const MaxDepth = ordered.MaxDepth

var (
	// ErrNoKeys is returned by Index when no grouping key is given.
	ErrNoKeys = errors.New("at least one index key is required")

	// ErrKeyNotFound is returned by ReplaceKey when the key to replace is absent.
	ErrKeyNotFound = errors.New("key does not exist")

	// ErrDepthExceeded is returned when a structure nests deeper than MaxDepth.
	ErrDepthExceeded = ordered.ErrDepthExceeded

	// ErrInvalidDimension is returned when a product dimension is not a sequence.
	ErrInvalidDimension = errors.New("dimension must be a sequence of values")

	// ErrInvalidPattern is returned for key patterns that do not compile.
	ErrInvalidPattern = errors.New("invalid key pattern")
)
