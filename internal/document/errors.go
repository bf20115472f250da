package document

import "errors"

var (
	// ErrDecode is returned when input is not valid YAML or JSON.
	ErrDecode = errors.New("decode document")

	// ErrUnsupported is returned for YAML features without a plain-data
	// equivalent, such as aliases, merge keys and complex keys.
	ErrUnsupported = errors.New("unsupported YAML construct")

	// ErrSelect is returned for JSONPath expressions that do not parse.
	ErrSelect = errors.New("select")

	// ErrFormat is returned for unknown output formats.
	ErrFormat = errors.New("unknown format")
)
