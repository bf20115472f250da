package arrays

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/scalar"
)

// Value returns container[key] when container is map-like and holds key,
// even if the stored value is nil. Otherwise it returns def.
func Value(key string, container any, def any) any {
	if value, ok := ordered.Lookup(container, key); ok {
		return value
	}
	return def
}

// RetrieveValueRecursive looks for key at the top level of container and
// then depth-first in each child container, in iteration order. Only truthy
// values count as found: "", 0, false and empty containers are skipped.
func RetrieveValueRecursive(container any, key string) (any, bool) {
	return retrieve(container, key, nil)
}

func retrieve(container any, key string, path ordered.Path) (any, bool) {
	if path.Exceeded() || !ordered.IsContainer(container) {
		return nil, false
	}
	path = path.Push(container)

	if value, ok := ordered.Lookup(container, key); ok && scalar.Truthy(value) {
		return value, true
	}

	for _, child := range ordered.Entries(container) {
		if !ordered.IsContainer(child) || path.Contains(child) {
			continue
		}
		if value, ok := retrieve(child, key, path); ok {
			return value, true
		}
	}

	return nil, false
}

// Key returns the first key of container whose value equals value.
func Key(value any, container any) (string, bool) {
	for key, item := range ordered.Entries(container) {
		if ordered.Equal(item, value) {
			return key, true
		}
	}
	return "", false
}

// CompileKeyPattern compiles a key pattern written either in Go syntax or as
// a delimited literal "/pattern/flags" with flags among i, m and s.
func CompileKeyPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}

	full := pattern
	if len(pattern) >= 2 && pattern[0] == '/' {
		lastSlash := strings.LastIndexByte(pattern[1:], '/')
		if lastSlash == -1 {
			return nil, fmt.Errorf("%w: unterminated pattern %s", ErrInvalidPattern, pattern)
		}
		lastSlash++

		flags, err := regexFlags(pattern[lastSlash+1:], pattern)
		if err != nil {
			return nil, err
		}

		full = pattern[1:lastSlash]
		if flags != "" {
			full = "(?" + flags + ")" + full
		}
	}

	re, err := regexp.Compile(full)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err)
	}
	return re, nil
}

func regexFlags(flags, pattern string) (string, error) {
	var goFlags string
	for _, flag := range []string{"s", "i", "m"} {
		if strings.Contains(flags, flag) {
			goFlags += flag
		}
	}

	for _, c := range flags {
		if c != 's' && c != 'i' && c != 'm' {
			return "", fmt.Errorf("%w: unsupported flag '%c' in %s", ErrInvalidPattern, c, pattern)
		}
	}

	return goFlags, nil
}

// ValueByRegexKey returns the value of the first key of container matching
// pattern. Non-containers, patterns that do not compile and misses yield def.
func ValueByRegexKey(pattern string, container any, def any) any {
	if !ordered.IsContainer(container) {
		return def
	}

	re, err := CompileKeyPattern(pattern)
	if err != nil {
		return def
	}

	for key, value := range ordered.Entries(container) {
		if re.MatchString(key) {
			return value
		}
	}
	return def
}
