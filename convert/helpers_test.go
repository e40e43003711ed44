package convert

import (
	"os"
	"reflect"
	"strings"
	"testing"
)

// sameValue compares decoded values, treating *Map by its ordered entries.
func sameValue(a, b any) bool {
	switch av := a.(type) {
	case *Map:
		bv, ok := b.(*Map)
		if !ok {
			return false
		}
		ae, be := av.Entries(), bv.Entries()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if ae[i].Key != be[i].Key || !sameValue(ae[i].Value, be[i].Value) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !sameValue(av[i], bv[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	out, err := FormatJSON(v, "  ")
	if err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}
	return string(out)
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("Failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func showDiff(t *testing.T, expected, actual string) {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	maxLines := len(expectedLines)
	if len(actualLines) > maxLines {
		maxLines = len(actualLines)
	}

	t.Log("\nLine-by-line diff:")
	for i := 0; i < maxLines; i++ {
		var expLine, actLine string
		if i < len(expectedLines) {
			expLine = expectedLines[i]
		}
		if i < len(actualLines) {
			actLine = actualLines[i]
		}
		if expLine != actLine {
			t.Logf("Line %d:\n  Expected: %q\n  Actual:   %q", i+1, expLine, actLine)
		}
	}
}
