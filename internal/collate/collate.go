// Package collate provides string ordering strategies injected into the
// sorting helpers.
package collate

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ErrInvalidLocale is returned for locale tags that cannot be parsed.
var ErrInvalidLocale = errors.New("invalid locale")

// Collator orders two strings, returning a negative number, zero or a
// positive number.
type Collator interface {
	Compare(a, b string) int
}

// CollatorFunc adapts a function to Collator.
type CollatorFunc func(a, b string) int

// Compare implements Collator.
func (f CollatorFunc) Compare(a, b string) int {
	return f(a, b)
}

// Ordinal compares byte-wise.
var Ordinal Collator = CollatorFunc(strings.Compare)

// Locale collates according to a language's conventions.
// It is safe for concurrent use.
type Locale struct {
	tag language.Tag

	mu       sync.Mutex
	collator *collate.Collator
}

// Compare implements Collator.
func (l *Locale) Compare(a, b string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.collator.CompareString(a, b)
}

// Tag returns the language the collator was built for.
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// ForLocale returns a locale collator for tags such as "de", "sv_SE" or
// "fr-CA". An empty tag and en_US fall back to Ordinal. A ".utf8" style
// charset suffix is ignored.
func ForLocale(tag string) (Collator, error) {
	normalized := strings.TrimSpace(tag)
	if i := strings.IndexByte(normalized, '.'); i >= 0 {
		normalized = normalized[:i]
	}
	normalized = strings.ReplaceAll(normalized, "_", "-")

	if normalized == "" || strings.EqualFold(normalized, "en-US") {
		return Ordinal, nil
	}

	parsed, err := language.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidLocale, tag, err)
	}

	return &Locale{
		tag:      parsed,
		collator: collate.New(parsed),
	}, nil
}
