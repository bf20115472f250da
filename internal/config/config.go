package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jacoelho/crmarray/internal/arrays"
	"github.com/jacoelho/crmarray/internal/document"
)

var (
	ErrNoArguments      = errors.New("no arguments provided")
	ErrHelp             = errors.New("help requested")
	ErrMissingCommand   = errors.New("no command given")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMissingOption    = errors.New("missing required option")
	ErrTooManyArguments = errors.New("at most one input file may be given")
	ErrInvalidOption    = errors.New("invalid option value")
	ErrStdinTwice       = errors.New("standard input can only be read once")
)

// Commands lists every command in the order shown by Usage.
var Commands = []string{
	"value", "search", "key", "regex-value",
	"flatten", "unflatten",
	"merge", "copy",
	"index", "collect", "sort-by-field",
	"product",
	"hierarchical", "subset", "empty", "levels", "in",
	"splice", "remove", "replace-key", "unique", "sort", "lookup",
	"xml", "implode",
}

// required names the options each command cannot run without.
var required = map[string][]string{
	"value":         {"key"},
	"search":        {"key"},
	"key":           {"value"},
	"regex-value":   {"pattern"},
	"merge":         {"with"},
	"subset":        {"with"},
	"lookup":        {"with", "field"},
	"index":         {"keys"},
	"collect":       {"field"},
	"sort-by-field": {"field"},
	"in":            {"value"},
	"remove":        {"keys"},
	"replace-key":   {"key", "new-key"},
}

// Config holds the parsed command line.
type Config struct {
	Command string
	Input   string
	With    string
	Select  string
	Format  document.Format
	Debug   bool

	Key       string
	Keys      []string
	NewKey    string
	Field     string
	Value     string
	Default   string
	Pattern   string
	Delim     string
	PairDelim string
	Prefix    string
	Template  string
	Locale    string

	Start         int
	End           int
	MaxDepth      int
	CaseSensitive bool
	Reverse       bool

	// HasDefault reports whether -default was given; an absent default
	// yields null rather than an empty string.
	HasDefault bool
}

// Parse parses "crmarray <command> [options] [FILE]".
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}
	if len(args) < 2 {
		return nil, ErrMissingCommand
	}

	command := args[1]
	switch command {
	case "-h", "-help", "--help", "help":
		return nil, ErrHelp
	}
	if !slices.Contains(Commands, command) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}

	fs := flag.NewFlagSet(args[0]+" "+command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	cfg := &Config{Command: command}
	var (
		format string
		keys   string
	)

	fs.StringVar(&cfg.Input, "input", "", "Input document (YAML or JSON); - for stdin")
	fs.StringVar(&cfg.With, "with", "", "Second document for merge, subset and lookup")
	fs.StringVar(&cfg.Select, "select", "", "JSONPath expression applied to the input")
	fs.StringVar(&format, "format", string(document.FormatYAML), "Output format: yaml, json or text")
	fs.BoolVar(&cfg.Debug, "debug", false, "Log debug output to stderr")
	fs.StringVar(&cfg.Key, "key", "", "Key to read, search or replace")
	fs.StringVar(&keys, "keys", "", "Comma separated keys")
	fs.StringVar(&cfg.NewKey, "new-key", "", "Replacement key")
	fs.StringVar(&cfg.Field, "field", "", "Record field")
	fs.StringVar(&cfg.Value, "value", "", "Value to look for")
	fs.StringVar(&cfg.Default, "default", "", "Default value (YAML scalar)")
	fs.StringVar(&cfg.Pattern, "pattern", "", "Key pattern, Go syntax or /pattern/flags")
	fs.StringVar(&cfg.Delim, "delim", ".", "Path delimiter, or entry delimiter for implode")
	fs.StringVar(&cfg.PairDelim, "pair-delim", "=", "Key/value delimiter for implode")
	fs.StringVar(&cfg.Prefix, "prefix", "", "Prefix for flattened keys")
	fs.StringVar(&cfg.Template, "template", "", "Inline YAML or JSON mapping merged into each product")
	fs.StringVar(&cfg.Locale, "locale", "", "Collation locale for sort, e.g. de_DE")
	fs.IntVar(&cfg.Start, "start", 0, "First position removed by splice")
	fs.IntVar(&cfg.End, "end", -1, "Position after the last one removed by splice (-1 for the end)")
	fs.IntVar(&cfg.MaxDepth, "max-depth", arrays.DefaultCopyDepth, "Depth copied by copy")
	fs.BoolVar(&cfg.CaseSensitive, "case-sensitive", false, "Compare values case-sensitively in in")
	fs.BoolVar(&cfg.Reverse, "reverse", false, "Translate label to id in lookup")

	if err := fs.Parse(args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	for _, name := range required[command] {
		if !set[name] {
			return nil, fmt.Errorf("%w: %s needs -%s", ErrMissingOption, command, name)
		}
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		if set["input"] {
			return nil, fmt.Errorf("%w: both -input and %s", ErrTooManyArguments, rest[0])
		}
		cfg.Input = rest[0]
	default:
		return nil, fmt.Errorf("%w, got: %s", ErrTooManyArguments, strings.Join(rest, " "))
	}

	if set["with"] && isStdin(cfg.With) && isStdin(cfg.Input) {
		return nil, fmt.Errorf("%w: give the input or -with as a file", ErrStdinTwice)
	}

	parsedFormat, err := document.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	cfg.Format = parsedFormat

	if keys != "" {
		for _, key := range strings.Split(keys, ",") {
			cfg.Keys = append(cfg.Keys, strings.TrimSpace(key))
		}
	}

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("%w: -max-depth must not be negative, got %d", ErrInvalidOption, cfg.MaxDepth)
	}

	cfg.HasDefault = set["default"]
	return cfg, nil
}

func isStdin(path string) bool {
	return path == "" || path == "-"
}

// Usage returns command usage text.
func Usage() string {
	return `crmarray - transform nested YAML/JSON documents

Usage:
  crmarray <command> [options] [FILE]

Reads FILE (or -input, or stdin), optionally narrows it with -select and
prints the result of the command.

Commands:
  value          Value at -key, or -default
  search         First truthy value of -key at any depth
  key            First key holding -value
  regex-value    Value of the first key matching -pattern, or -default
  flatten        Path-keyed mapping of non-empty leaves (-delim, -prefix)
  unflatten      Nested structure from a path-keyed mapping (-delim)
  merge          Input merged with -with, input winning
  copy           Copy down to -max-depth
  index          Records grouped by -keys, last one wins
  collect        -field of every record, keyed like the input
  sort-by-field  Records in natural order of -field
  product        Every combination of the input dimensions (-template)
  hierarchical   Whether the input holds containers
  subset         Whether every input value appears in -with
  empty          Whether the input holds only nulls and empty containers
  levels         Mapping nesting depth
  in             Whether -value appears anywhere (-case-sensitive)
  splice         Input without positions -start to -end
  remove         Input without -keys
  replace-key    Input with -key renamed to -new-key
  unique         Input without repeated values
  sort           Input sorted by value (-locale)
  lookup         Translate -field between label and id using -with (-reverse)
  xml            Input as an XML fragment
  implode        Entries joined as key -pair-delim value, separated by -delim

Options:
  -input FILE        Input document, - for stdin
  -with FILE         Second document
  -select PATH       JSONPath applied to the input before the command
  -format FORMAT     yaml, json or text (default: yaml)
  -key KEY           Key
  -keys K1,K2        Comma separated keys
  -new-key KEY       Replacement key
  -field NAME        Record field
  -value VALUE       Value to look for
  -default VALUE     Default value (YAML scalar)
  -pattern REGEX     Key pattern, Go syntax or /pattern/flags
  -delim STRING      Path delimiter (default: .)
  -pair-delim STRING Key/value delimiter for implode (default: =)
  -prefix STRING     Prefix for flattened keys
  -template DOC      Inline mapping merged into each product
  -locale TAG        Collation locale for sort
  -start N, -end N   Splice bounds (-end -1 means the end)
  -max-depth N       Depth copied by copy (default: 50)
  -case-sensitive    Case-sensitive in
  -reverse           Label to id in lookup
  -debug             Debug logging to stderr
  -h, --help         Show this help message`
}
