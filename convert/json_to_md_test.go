package convert

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestJSONToMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		opts     *EncodeOptions
		expected string
	}{
		{
			name:     "flat object",
			input:    NewMap(Entry{"name", "John"}, Entry{"age", 30}),
			expected: "- **name**: John\n- **age**: 30",
		},
		{
			name: "nested object",
			input: NewMap(Entry{"user", NewMap(
				Entry{"name", "Ann"},
				Entry{"tags", []any{"a", "b"}},
			)}),
			expected: "- **user**:\n  - **name**: Ann\n  - **tags**:\n    - a\n    - b",
		},
		{
			name:     "empty array",
			input:    []any{},
			expected: EmptyArrayMarker,
		},
		{
			name:     "empty object",
			input:    &Map{},
			expected: EmptyObjectMarker,
		},
		{
			name:     "empty containers render inline",
			input:    NewMap(Entry{"list", []any{}}, Entry{"obj", map[string]any{}}),
			expected: "- **list**: _empty array_\n- **obj**: _empty object_",
		},
		{
			name:     "pipes are escaped",
			input:    NewMap(Entry{"message", "Hello | world"}),
			expected: `- **message**: Hello \| world`,
		},
		{
			name:     "pipes in keys are escaped",
			input:    NewMap(Entry{"a|b", 1}),
			expected: `- **a\|b**: 1`,
		},
		{
			name:     "bullet list",
			input:    []any{"first", 2, true},
			expected: "- first\n- 2\n- true",
		},
		{
			name:     "numbered list",
			input:    []any{"first", "second"},
			opts:     &EncodeOptions{UseNumberedLists: true},
			expected: "1. first\n2. second",
		},
		{
			name:     "collections inside a list",
			input:    []any{[]any{1, 2}, NewMap(Entry{"a", 1})},
			expected: "-\n  - 1\n  - 2\n-\n  - **a**: 1",
		},
		{
			name:     "numbered list with nested object",
			input:    []any{NewMap(Entry{"a", 1})},
			opts:     &EncodeOptions{UseNumberedLists: true},
			expected: "1.\n  - **a**: 1",
		},
		{
			name:     "null and undefined share a spelling",
			input:    NewMap(Entry{"a", nil}, Entry{"b", Undefined}),
			expected: "- **a**: null\n- **b**: null",
		},
		{
			name:     "empty string leaves the value blank",
			input:    NewMap(Entry{"a", ""}),
			expected: "- **a**:",
		},
		{
			name:     "numbers use canonical text",
			input:    []any{19.99, float64(30), int64(-4), uint8(7), float32(0.5)},
			expected: "- 19.99\n- 30\n- -4\n- 7\n- 0.5",
		},
		{
			name:     "timestamps are normalised to UTC",
			input:    NewMap(Entry{"at", time.Date(2024, 1, 15, 12, 30, 0, 0, time.FixedZone("CET", 3600))}),
			expected: "- **at**: 2024-01-15T11:30:00.000Z",
		},
		{
			name:     "wider indentation",
			input:    NewMap(Entry{"a", NewMap(Entry{"b", 1})}),
			opts:     &EncodeOptions{IndentSize: 4},
			expected: "- **a**:\n    - **b**: 1",
		},
		{
			name:     "go maps are sorted by key",
			input:    map[string]any{"b": 2, "a": 1},
			expected: "- **a**: 1\n- **b**: 2",
		},
		{
			name:     "scalar at the root",
			input:    "plain",
			expected: "plain",
		},
		{
			name:     "heading level does not change output",
			input:    NewMap(Entry{"a", 1}),
			opts:     &EncodeOptions{HeadingLevel: 3},
			expected: "- **a**: 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := JSONToMarkdown(tt.input, tt.opts)
			if actual != tt.expected {
				t.Errorf("JSONToMarkdown() =\n%s\nwant\n%s", actual, tt.expected)
				showDiff(t, tt.expected, actual)
			}
		})
	}
}

func TestJSONToMarkdownStructs(t *testing.T) {
	type address struct {
		City string `json:"city"`
	}
	type person struct {
		Name    string   `json:"name"`
		Age     int      `json:"age"`
		Address *address `json:"address,omitempty"`
	}

	actual := JSONToMarkdown(person{Name: "Ann", Age: 41, Address: &address{City: "Oslo"}}, nil)
	expected := "- **name**: Ann\n- **age**: 41\n- **address**:\n  - **city**: Oslo"
	if actual != expected {
		t.Errorf("JSONToMarkdown() =\n%s\nwant\n%s", actual, expected)
	}

	actual = JSONToMarkdown([]string{"x", "y"}, nil)
	if actual != "- x\n- y" {
		t.Errorf("typed slice rendered as %q", actual)
	}
}

func TestJSONToMarkdownMaxDepth(t *testing.T) {
	var v any = "leaf"
	for i := 15; i >= 1; i-- {
		v = NewMap(Entry{fmt.Sprintf("level%d", i), v})
	}

	actual := JSONToMarkdown(v, &EncodeOptions{MaxDepth: 10})

	if !strings.Contains(actual, MaxDepthMarker) {
		t.Fatalf("expected truncation marker in output:\n%s", actual)
	}
	if !strings.Contains(actual, "**level11**: "+MaxDepthMarker) {
		t.Errorf("expected level11 to carry the marker:\n%s", actual)
	}
	if strings.Contains(actual, "level12") || strings.Contains(actual, "leaf") {
		t.Errorf("rendered past the depth limit:\n%s", actual)
	}

	lines := strings.Split(actual, "\n")
	last := lines[len(lines)-1]
	if indent := len(last) - len(strings.TrimLeft(last, " ")); indent != 10*DefaultIndentSize {
		t.Errorf("deepest line indented %d spaces, want %d", indent, 10*DefaultIndentSize)
	}
}

func TestJSONToMarkdownDefaultMaxDepth(t *testing.T) {
	var v any = 1
	for i := 0; i < 20; i++ {
		v = []any{v, "x"}
	}

	actual := JSONToMarkdown(v, nil)
	if !strings.Contains(actual, MaxDepthMarker) {
		t.Errorf("expected default max depth of %d to truncate", DefaultMaxDepth)
	}
}

func TestJSONToMarkdownSelfReference(t *testing.T) {
	m := &Map{}
	m.Set("self", m)

	actual := JSONToMarkdown(m, &EncodeOptions{MaxDepth: 3})
	expected := strings.Join([]string{
		"- **self**:",
		"  - **self**:",
		"    - **self**:",
		"      - **self**: " + MaxDepthMarker,
	}, "\n")

	if actual != expected {
		t.Errorf("JSONToMarkdown() =\n%s\nwant\n%s", actual, expected)
	}
}

func TestJSONToMarkdownFixture(t *testing.T) {
	v, err := ParseJSON([]byte(readFixture(t, "sample.json")))
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}

	expected := normalizeWhitespace(readFixture(t, "sample.md"))
	actual := normalizeWhitespace(JSONToMarkdown(v, nil))

	if actual != expected {
		t.Errorf("Conversion mismatch.\n\nExpected:\n%s\n\nGot:\n%s", expected, actual)
		showDiff(t, expected, actual)
	}
}

func TestEncodeOptionsResolve(t *testing.T) {
	tests := []struct {
		name     string
		opts     *EncodeOptions
		expected EncodeOptions
	}{
		{
			name:     "nil uses defaults",
			opts:     nil,
			expected: DefaultEncodeOptions(),
		},
		{
			name:     "zero values use defaults",
			opts:     &EncodeOptions{UseNumberedLists: true},
			expected: EncodeOptions{HeadingLevel: 1, IndentSize: 2, MaxDepth: 10, UseNumberedLists: true},
		},
		{
			name:     "heading level is clamped",
			opts:     &EncodeOptions{HeadingLevel: 9, IndentSize: 3, MaxDepth: 4},
			expected: EncodeOptions{HeadingLevel: 6, IndentSize: 3, MaxDepth: 4},
		},
		{
			name:     "negative max depth keeps only the root",
			opts:     &EncodeOptions{MaxDepth: -1},
			expected: EncodeOptions{HeadingLevel: 1, IndentSize: 2, MaxDepth: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if actual := tt.opts.resolve(); actual != tt.expected {
				t.Errorf("resolve() = %+v, want %+v", actual, tt.expected)
			}
		})
	}
}
