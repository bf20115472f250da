package arrays

import (
	"fmt"
	"strings"

	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/scalar"
)

// ValueSeparator delimits multi-valued fields stored as a single string.
const ValueSeparator = "\x01"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	ValueSeparator, ",",
)

// EscapeXML escapes &, < and > and turns ValueSeparator into a comma.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// XML renders list as a fragment with one element per key, indented by four
// spaces per depth. Containers become nested elements. sep follows every
// opening tag of a container and every closing tag.
//
//	<name>value</name>
//	<group>
//	    <inner>1</inner>
//	</group>
//
// Keys are written as element names without validation.
func XML(list any, depth int, sep string) (string, error) {
	var b strings.Builder
	if err := writeXML(&b, list, depth, sep, 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeXML(b *strings.Builder, list any, depth int, sep string, level int) error {
	if level > MaxDepth {
		return fmt.Errorf("%w: xml", ErrDepthExceeded)
	}

	indent := strings.Repeat(" ", max(depth, 0)*4)
	for name, value := range ordered.Entries(list) {
		b.WriteString(indent)
		if ordered.IsContainer(value) {
			fmt.Fprintf(b, "<%s>%s", name, sep)
			if err := writeXML(b, value, depth+1, sep, level+1); err != nil {
				return err
			}
			fmt.Fprintf(b, "%s</%s>%s", indent, name, sep)
			continue
		}
		fmt.Fprintf(b, "<%s>%s</%s>%s", name, EscapeXML(scalar.String(value)), name, sep)
	}
	return nil
}

// ImplodeKeyValue joins the entries of pairs as key+l2+value, separated by l1.
func ImplodeKeyValue(l1, l2 string, pairs any) string {
	var exprs []string
	for key, value := range ordered.Entries(pairs) {
		exprs = append(exprs, key+l2+scalar.String(value))
	}
	return strings.Join(exprs, l1)
}

// ExplodePadded splits a delimiter-padded string such as "\x01a\x01b\x01".
// Surrounding delimiters are trimmed first. Sequences are returned as their
// string forms and nil yields nil.
func ExplodePadded(value any, delim string) []string {
	switch current := value.(type) {
	case nil:
		return nil
	case []string:
		return current
	case []any:
		out := make([]string, len(current))
		for i, item := range current {
			out[i] = scalar.String(item)
		}
		return out
	case *ordered.Map:
		return ExplodePadded(current.Values(), delim)
	default:
		return strings.Split(strings.Trim(scalar.String(value), delim), delim)
	}
}

// ImplodePadded joins value with delim and wraps the result in delim. A
// string is trimmed of delim first so it is not padded twice; a scalar is
// treated as a one-element sequence. It reports false for nil.
func ImplodePadded(value any, delim string) (string, bool) {
	var parts []string
	switch current := value.(type) {
	case nil:
		return "", false
	case string:
		parts = []string{strings.Trim(current, delim)}
	case []string:
		parts = current
	case []any, *ordered.Map:
		for _, item := range ordered.Entries(current) {
			parts = append(parts, scalar.String(item))
		}
	default:
		parts = []string{scalar.String(value)}
	}
	return delim + strings.Join(parts, delim) + delim, true
}
