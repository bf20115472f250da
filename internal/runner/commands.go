package runner

import (
	"fmt"
	"iter"

	"go.uber.org/zap"

	"github.com/jacoelho/crmarray/internal/arrays"
	"github.com/jacoelho/crmarray/internal/collate"
	"github.com/jacoelho/crmarray/internal/document"
	"github.com/jacoelho/crmarray/internal/ordered"
	"github.com/jacoelho/crmarray/internal/record"
)

type handler func(r *Runner, doc any) (any, error)

var commands = map[string]handler{
	"value":         runValue,
	"search":        runSearch,
	"key":           runKey,
	"regex-value":   runRegexValue,
	"flatten":       runFlatten,
	"unflatten":     runUnflatten,
	"merge":         runMerge,
	"copy":          runCopy,
	"index":         runIndex,
	"collect":       runCollect,
	"sort-by-field": runSortByField,
	"product":       runProduct,
	"hierarchical":  runHierarchical,
	"subset":        runSubset,
	"empty":         runEmpty,
	"levels":        runLevels,
	"in":            runIn,
	"splice":        runSplice,
	"remove":        runRemove,
	"replace-key":   runReplaceKey,
	"unique":        runUnique,
	"sort":          runSort,
	"lookup":        runLookup,
	"xml":           runXML,
	"implode":       runImplode,
}

func runValue(r *Runner, doc any) (any, error) {
	def, err := r.defaultValue()
	if err != nil {
		return nil, err
	}
	return arrays.Value(r.config.Key, doc, def), nil
}

func runSearch(r *Runner, doc any) (any, error) {
	value, ok := arrays.RetrieveValueRecursive(doc, r.config.Key)
	if !ok {
		return nil, fmt.Errorf("%w: key %q", ErrNotFound, r.config.Key)
	}
	return value, nil
}

func runKey(r *Runner, doc any) (any, error) {
	needle, err := document.DecodeString(r.config.Value)
	if err != nil {
		return nil, fmt.Errorf("%w: -value: %v", ErrInvalidOption, err)
	}

	key, ok := arrays.Key(needle, doc)
	if !ok {
		return nil, fmt.Errorf("%w: value %q", ErrNotFound, r.config.Value)
	}
	return key, nil
}

func runRegexValue(r *Runner, doc any) (any, error) {
	if _, err := arrays.CompileKeyPattern(r.config.Pattern); err != nil {
		return nil, err
	}

	def, err := r.defaultValue()
	if err != nil {
		return nil, err
	}
	return arrays.ValueByRegexKey(r.config.Pattern, doc, def), nil
}

func runFlatten(r *Runner, doc any) (any, error) {
	return arrays.Flatten(doc, r.config.Prefix, r.config.Delim)
}

func runUnflatten(r *Runner, doc any) (any, error) {
	flat, err := asMap(doc)
	if err != nil {
		return nil, err
	}
	return arrays.Unflatten(r.config.Delim, flat)
}

func runMerge(r *Runner, doc any) (any, error) {
	left, err := asMap(doc)
	if err != nil {
		return nil, err
	}

	with, err := r.loadWith()
	if err != nil {
		return nil, err
	}
	right, err := asMap(with)
	if err != nil {
		return nil, fmt.Errorf("-with: %w", err)
	}

	return arrays.Merge(left, right), nil
}

func runCopy(r *Runner, doc any) (any, error) {
	return arrays.DeepCopy(doc, r.config.MaxDepth), nil
}

func runIndex(r *Runner, doc any) (any, error) {
	_, records, err := recordsOf(doc)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("indexing", zap.Strings("keys", r.config.Keys), zap.Int("records", len(records)))
	return arrays.Index(r.config.Keys, records)
}

func runCollect(r *Runner, doc any) (any, error) {
	keys, records, err := recordsOf(doc)
	if err != nil {
		return nil, err
	}
	return arrays.Collect(r.config.Field, keyed(keys, records))
}

func runSortByField(r *Runner, doc any) (any, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}
	return arrays.SortByField(m, r.config.Field)
}

func runProduct(r *Runner, doc any) (any, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}

	dims, err := arrays.Dimensions(m)
	if err != nil {
		return nil, err
	}

	var template *ordered.Map
	if r.config.Template != "" {
		decoded, err := document.DecodeString(r.config.Template)
		if err != nil {
			return nil, fmt.Errorf("%w: -template: %v", ErrInvalidOption, err)
		}
		var ok bool
		template, ok = decoded.(*ordered.Map)
		if !ok && decoded != nil {
			return nil, fmt.Errorf("%w: -template must be a mapping, got %T", ErrInvalidOption, decoded)
		}
	}

	combinations := arrays.Product(dims, template)
	r.logger.Debug("product", zap.Int("dimensions", len(dims)), zap.Int("combinations", len(combinations)))
	return combinations, nil
}

func runHierarchical(_ *Runner, doc any) (any, error) {
	return arrays.IsHierarchical(doc), nil
}

func runSubset(r *Runner, doc any) (any, error) {
	with, err := r.loadWith()
	if err != nil {
		return nil, err
	}
	return arrays.IsSubset(doc, with), nil
}

func runEmpty(_ *Runner, doc any) (any, error) {
	return arrays.IsEmptyArray(doc), nil
}

func runLevels(_ *Runner, doc any) (any, error) {
	return arrays.Levels(doc), nil
}

func runIn(r *Runner, doc any) (any, error) {
	return arrays.InArray(r.config.Value, doc, !r.config.CaseSensitive), nil
}

func runSplice(r *Runner, doc any) (any, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}

	end := r.config.End
	if end < 0 {
		end = m.Len()
	}
	arrays.Splice(m, r.config.Start, end)
	return m, nil
}

func runRemove(r *Runner, doc any) (any, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}
	arrays.Remove(m, r.config.Keys...)
	return m, nil
}

func runReplaceKey(r *Runner, doc any) (any, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}
	if err := arrays.ReplaceKey(m, r.config.Key, r.config.NewKey); err != nil {
		return nil, err
	}
	return m, nil
}

func runUnique(_ *Runner, doc any) (any, error) {
	return arrays.Unique(doc), nil
}

func runSort(r *Runner, doc any) (any, error) {
	m, err := asMap(doc)
	if err != nil {
		return nil, err
	}

	collator, err := collate.ForLocale(r.config.Locale)
	if err != nil {
		return nil, err
	}
	return arrays.Sort(m, collator), nil
}

func runLookup(r *Runner, doc any) (any, error) {
	defaults, err := asMap(doc)
	if err != nil {
		return nil, err
	}

	with, err := r.loadWith()
	if err != nil {
		return nil, err
	}
	table, err := asMap(with)
	if err != nil {
		return nil, fmt.Errorf("-with: %w", err)
	}

	if !arrays.LookupValue(defaults, r.config.Field, table, r.config.Reverse) {
		return nil, fmt.Errorf("%w: no translation for %q", ErrNotFound, r.config.Field)
	}
	return defaults, nil
}

func runXML(_ *Runner, doc any) (any, error) {
	out, err := arrays.XML(doc, 0, "\n")
	if err != nil {
		return nil, err
	}
	return text(out), nil
}

func runImplode(r *Runner, doc any) (any, error) {
	return text(arrays.ImplodeKeyValue(r.config.Delim, r.config.PairDelim, doc)), nil
}

func (r *Runner) loadWith() (any, error) {
	doc, err := r.load(r.config.With)
	if err != nil {
		return nil, fmt.Errorf("-with: %w", err)
	}
	return doc, nil
}

// defaultValue decodes -default as YAML so that 0 or true keep their type.
func (r *Runner) defaultValue() (any, error) {
	if !r.config.HasDefault {
		return nil, nil
	}

	def, err := document.DecodeString(r.config.Default)
	if err != nil {
		return nil, fmt.Errorf("%w: -default: %v", ErrInvalidOption, err)
	}
	if def == nil && r.config.Default == "" {
		return "", nil
	}
	return def, nil
}

// asMap returns doc as a mapping; sequences are keyed by position and an
// empty document is an empty mapping.
func asMap(doc any) (*ordered.Map, error) {
	switch current := doc.(type) {
	case *ordered.Map:
		return current, nil
	case []any:
		return ordered.FromSlice(current), nil
	case nil:
		return ordered.New(), nil
	default:
		return nil, fmt.Errorf("%w, got %T", ErrNotContainer, doc)
	}
}

// recordsOf adapts the entries of a container to records, keeping keys.
func recordsOf(doc any) ([]string, []record.Record, error) {
	if !ordered.IsContainer(doc) {
		return nil, nil, fmt.Errorf("%w, got %T", ErrNotContainer, doc)
	}

	var (
		keys   []string
		values []any
	)
	for key, value := range ordered.Entries(doc) {
		keys = append(keys, key)
		values = append(values, value)
	}

	records, err := record.Fields(values)
	if err != nil {
		return nil, nil, err
	}
	return keys, records, nil
}

func keyed(keys []string, records []record.Record) iter.Seq2[string, record.Record] {
	return func(yield func(string, record.Record) bool) {
		for i, rec := range records {
			if !yield(keys[i], rec) {
				return
			}
		}
	}
}
