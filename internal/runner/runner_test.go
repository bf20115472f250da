package runner

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jacoelho/crmarray/internal/arrays"
	"github.com/jacoelho/crmarray/internal/config"
	"github.com/jacoelho/crmarray/internal/record"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCommand runs "crmarray <args...> <input file>" and returns stdout.
func runCommand(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	path := writeFile(t, "input.yaml", input)
	cfg, err := config.Parse(append(append([]string{"crmarray"}, args...), path))
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}

	var out bytes.Buffer
	err = New(cfg, zaptest.NewLogger(t), nil).Run(&out)
	return out.String(), err
}

func compactJSON(t *testing.T, s string) string {
	t.Helper()

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, s)
	}
	return buf.String()
}

func TestCommandsJSON(t *testing.T) {
	t.Parallel()

	with := "b: {y: 2}\nc: 3\n"

	contacts := `
- {type: A, id: 1, name: one}
- {type: A, id: 2, name: two}
- {type: B, id: 1, name: three}
- {type: A, id: 1, name: four}
`

	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "merge",
			input: "a: 1\nb: {x: 1}\n",
			args:  []string{"merge", "-with", "WITH"},
			want:  `{"a":1,"b":{"x":1,"y":2},"c":3}`,
		},
		{
			name:  "index last write wins",
			input: contacts,
			args:  []string{"index", "-keys", "type,id"},
			want:  `{"A":{"1":{"type":"A","id":1,"name":"four"},"2":{"type":"A","id":2,"name":"two"}},"B":{"1":{"type":"B","id":1,"name":"three"}}}`,
		},
		{
			name:  "collect",
			input: "- {name: x}\n- {name: y}\n",
			args:  []string{"collect", "-field", "name"},
			want:  `{"0":"x","1":"y"}`,
		},
		{
			name:  "product",
			input: "fg: [red, blue]\nbg: [white, black]\n",
			args:  []string{"product"},
			want:  `[{"fg":"red","bg":"white"},{"fg":"red","bg":"black"},{"fg":"blue","bg":"white"},{"fg":"blue","bg":"black"}]`,
		},
		{
			name:  "product with template",
			input: "fg: [red]\n",
			args:  []string{"product", "-template", `{"size": "L"}`},
			want:  `[{"size":"L","fg":"red"}]`,
		},
		{
			name:  "product of nothing",
			input: "{}",
			args:  []string{"product"},
			want:  `[{}]`,
		},
		{
			name:  "flatten",
			input: "foo: [bar, baz]\nasdf: {merp: bleep, blank: ''}\nquux: 999\n",
			args:  []string{"flatten"},
			want:  `{"foo.0":"bar","foo.1":"baz","asdf.merp":"bleep","quux":999}`,
		},
		{
			name:  "unflatten",
			input: "a/b: 1\na/c: 2\nl/0: x\nl/1: y\n",
			args:  []string{"unflatten", "-delim", "/"},
			want:  `{"a":{"b":1,"c":2},"l":["x","y"]}`,
		},
		{
			name:  "value default",
			input: "a: 1\n",
			args:  []string{"value", "-key", "b", "-default", "0"},
			want:  `0`,
		},
		{
			name:  "value without default",
			input: "a: 1\n",
			args:  []string{"value", "-key", "b"},
			want:  `null`,
		},
		{
			name:  "search",
			input: "a: {b: {target: 0}}\nc: {target: found}\n",
			args:  []string{"search", "-key", "target"},
			want:  `"found"`,
		},
		{
			name:  "key",
			input: "a: x\nb: 2\n",
			args:  []string{"key", "-value", "2"},
			want:  `"b"`,
		},
		{
			name:  "regex value",
			input: "name: n\ncustom_4: four\n",
			args:  []string{"regex-value", "-pattern", "/^CUSTOM_\\d+$/i"},
			want:  `"four"`,
		},
		{
			name:  "empty",
			input: "[null, []]",
			args:  []string{"empty"},
			want:  `true`,
		},
		{
			name:  "not empty",
			input: "[0]",
			args:  []string{"empty"},
			want:  `false`,
		},
		{
			name:  "levels",
			input: "a: {b: {c: 1}}\n",
			args:  []string{"levels"},
			want:  `3`,
		},
		{
			name:  "in ignores case by default",
			input: "a: {b: [Pear]}\n",
			args:  []string{"in", "-value", "pear"},
			want:  `true`,
		},
		{
			name:  "in case sensitive",
			input: "a: {b: [Pear]}\n",
			args:  []string{"in", "-value", "pear", "-case-sensitive"},
			want:  `false`,
		},
		{
			name:  "hierarchical",
			input: "a: 1\nb: [1]\n",
			args:  []string{"hierarchical"},
			want:  `true`,
		},
		{
			name:  "splice to end",
			input: "a: 1\nb: 2\nc: 3\n",
			args:  []string{"splice", "-start", "1"},
			want:  `{"a":1}`,
		},
		{
			name:  "remove",
			input: "a: 1\nb: 2\nc: 3\n",
			args:  []string{"remove", "-keys", "a,c"},
			want:  `{"b":2}`,
		},
		{
			name:  "replace key",
			input: "a: 1\nb: 2\nc: 3\n",
			args:  []string{"replace-key", "-key", "b", "-new-key", "x"},
			want:  `{"a":1,"x":2,"c":3}`,
		},
		{
			name:  "unique",
			input: "a: 1\nb: 1\nc: [x, x, y]\n",
			args:  []string{"unique"},
			want:  `{"a":1,"c":["x","y"]}`,
		},
		{
			name:  "sort by field",
			input: "x: {name: item10}\ny: {name: item2}\nz: {name: item1}\n",
			args:  []string{"sort-by-field", "-field", "name"},
			want:  `{"z":{"name":"item1"},"y":{"name":"item2"},"x":{"name":"item10"}}`,
		},
		{
			name:  "sort with locale",
			input: "1: zebra\n2: äpfel\n3: birne\n",
			args:  []string{"sort", "-locale", "de_DE"},
			want:  `{"2":"äpfel","3":"birne","1":"zebra"}`,
		},
		{
			name:  "copy",
			input: "a: {b: 1}\n",
			args:  []string{"copy", "-max-depth", "0"},
			want:  `{"a":{"b":1}}`,
		},
		{
			name:  "select then collect",
			input: "contacts:\n  - {name: Ann}\n  - {name: Bob}\nother: 1\n",
			args:  []string{"collect", "-field", "name", "-select", "$.contacts"},
			want:  `{"0":"Ann","1":"Bob"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string(nil), tt.args...)
			for i, arg := range args {
				if arg == "WITH" {
					args[i] = writeFile(t, "with.yaml", with)
				}
			}
			args = append(args, "-format", "json")

			out, err := runCommand(t, tt.input, args...)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := compactJSON(t, out); got != tt.want {
				t.Fatalf("Run() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSubsetAndLookup(t *testing.T) {
	t.Parallel()

	superset := writeFile(t, "superset.yaml", "a: 1\nb: two\n")
	out, err := runCommand(t, "[two]", "subset", "-with", superset)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "true\n" {
		t.Fatalf("subset = %q, want true", out)
	}

	prefixes := writeFile(t, "prefixes.yaml", "1: Mrs.\n2: Dr.\n")
	out, err = runCommand(t, "prefix: dr\n", "lookup", "-with", prefixes, "-field", "prefix", "-reverse", "-format", "json")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := compactJSON(t, out); got != `{"prefix":"dr","prefix_id":"2"}` {
		t.Fatalf("lookup = %s", got)
	}

	_, err = runCommand(t, "prefix_id: 9\n", "lookup", "-with", prefixes, "-field", "prefix")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("lookup error = %v, want ErrNotFound", err)
	}
}

func TestTextOutput(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "name: \"Tom & Jerry\"\naddress: {city: Lisbon}\n", "xml")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "<name>Tom &amp; Jerry</name>\n" +
		"<address>\n" +
		"    <city>Lisbon</city>\n" +
		"</address>\n"
	if out != want {
		t.Fatalf("xml = %q, want %q", out, want)
	}

	out, err = runCommand(t, "a: 1\nb: x\n", "implode", "-delim", "&")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "a=1&b=x\n" {
		t.Fatalf("implode = %q", out)
	}

	out, err = runCommand(t, "a: 1\n", "implode", "-format", "json")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "\"a=1\"\n" {
		t.Fatalf("implode json = %q", out)
	}
}

func TestYAMLOutputKeepsOrder(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "zeta: 1\nalpha: 2\n", "copy")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "zeta: 1\nalpha: 2\n" {
		t.Fatalf("copy = %q", out)
	}
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		args  []string
		want  error
	}{
		{name: "search miss", input: "a: {b: ''}\n", args: []string{"search", "-key", "b"}, want: ErrNotFound},
		{name: "key miss", input: "a: 1\n", args: []string{"key", "-value", "2"}, want: ErrNotFound},
		{name: "index missing field", input: "- {type: A}\n", args: []string{"index", "-keys", "type,id"}, want: record.ErrFieldNotFound},
		{name: "collect missing field", input: "- {name: x}\n- {other: y}\n", args: []string{"collect", "-field", "name"}, want: record.ErrFieldNotFound},
		{name: "collect scalar records", input: "[1, 2]", args: []string{"collect", "-field", "name"}, want: record.ErrNotRecord},
		{name: "replace missing key", input: "a: 1\n", args: []string{"replace-key", "-key", "x", "-new-key", "y"}, want: arrays.ErrKeyNotFound},
		{name: "bad dimension", input: "fg: red\n", args: []string{"product"}, want: arrays.ErrInvalidDimension},
		{name: "bad template", input: "fg: [red]\n", args: []string{"product", "-template", "[1]"}, want: ErrInvalidOption},
		{name: "bad pattern", input: "a: 1\n", args: []string{"regex-value", "-pattern", "/a/q"}, want: arrays.ErrInvalidPattern},
		{name: "scalar input", input: "just text\n", args: []string{"remove", "-keys", "a"}, want: ErrNotContainer},
		{name: "index without records", input: "scalar\n", args: []string{"index", "-keys", "a"}, want: ErrNotContainer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := runCommand(t, tt.input, tt.args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRunReadsStdin(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]string{"crmarray", "levels"})
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}

	var out bytes.Buffer
	if err := New(cfg, nil, strings.NewReader("a: {b: 1}\n")).Run(&out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out.String() != "2\n" {
		t.Fatalf("levels = %q, want 2", out.String())
	}
}

func TestRunDebugLogging(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "input.yaml", "a: 1\n")
	cfg, err := config.Parse([]string{"crmarray", "levels", "-debug", path})
	if err != nil {
		t.Fatalf("config.Parse() error = %v", err)
	}

	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	if err := New(cfg, zap.New(core), nil).Run(&out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if logs.FilterMessage("command finished").Len() != 1 {
		t.Fatalf("expected one command finished entry, got %v", logs.All())
	}

	dumps := logs.FilterMessage("input").All()
	if len(dumps) != 1 || !strings.Contains(dumps[0].ContextMap()["dump"].(string), "ordered.Map") {
		t.Fatalf("expected a dump of the input, got %v", dumps)
	}
}

func TestEveryCommandHasHandler(t *testing.T) {
	t.Parallel()

	for _, command := range config.Commands {
		if _, ok := commands[command]; !ok {
			t.Errorf("command %q has no handler", command)
		}
	}
	if len(commands) != len(config.Commands) {
		t.Errorf("len(commands) = %d, want %d", len(commands), len(config.Commands))
	}
}
