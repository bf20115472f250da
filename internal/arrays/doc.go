// Package arrays implements stateless helpers over nested structures built
// from *ordered.Map, []any and scalar leaves.
//
// Groups of helpers:
//   - Safe access: Value, RetrieveValueRecursive, Key, ValueByRegexKey
//   - Path transforms: Flatten, Unflatten
//   - Merging and copying: Merge, DeepCopy
//   - Records: Index, Collect, SortByField
//   - Combinations: Product
//   - Inspection: IsHierarchical, IsSubset, IsEmptyArray, Levels, InArray
//   - Editing: Splice, Remove, ReplaceKey, Unique, Sort, LookupValue
//   - Text: XML, EscapeXML, ImplodeKeyValue, ExplodePadded, ImplodePadded
//
// Every recursive helper stops at MaxDepth, so cyclic or hostile input
// cannot exhaust the stack. Helpers that build a result report
// ErrDepthExceeded; helpers that search treat deeper levels as absent.
//
// Nothing here is safe for concurrent mutation of the same input; callers
// own their structures.
package arrays
