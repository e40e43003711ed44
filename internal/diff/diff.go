// Package diff reports how faithfully a value survives a trip through
// Markdown and back.
package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gerunddev/mdjson/convert"
)

// Report is the outcome of one round trip
type Report struct {
	Name        string
	Markdown    string   // intermediate encoder output
	Original    string   // input as indented JSON
	Recovered   string   // decoded value as indented JSON
	Diagnostics []string // decoder diagnostics
	Unified     string   // unified diff of Original against Recovered, empty when equal
}

// Faithful reports whether the value came back unchanged
func (r *Report) Faithful() bool {
	return r.Unified == "" && len(r.Diagnostics) == 0
}

// Roundtrip encodes v to Markdown with enc, decodes it again with dec and
// diffs the JSON forms of both sides. name labels the diff headers.
func Roundtrip(name string, v any, enc convert.EncodeOptions, dec convert.DecodeOptions) (*Report, error) {
	original, err := convert.FormatJSON(v, "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to format original: %w", err)
	}

	md := convert.JSONToMarkdown(v, &enc)
	res := convert.MarkdownToJSON(md, &dec)

	recovered, err := convert.FormatJSON(res.Value, "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to format recovered value: %w", err)
	}

	r := &Report{
		Name:        name,
		Markdown:    md,
		Original:    withNewline(string(original)),
		Recovered:   withNewline(string(recovered)),
		Diagnostics: res.Diagnostics,
	}
	if r.Original != r.Recovered {
		r.Unified = Unified(name, name+" (recovered)", r.Original, r.Recovered)
	}
	return r, nil
}

// Unified returns a unified diff from a to b
func Unified(fromName, toName, a, b string) string {
	edits := myers.ComputeEdits(span.URIFromPath(fromName), a, b)
	return fmt.Sprint(gotextdiff.ToUnified(fromName, toName, a, edits))
}

// Render wraps the report's diff in a diff code fence and styles it with
// glamour. The fenced Markdown is returned as-is if rendering fails.
func Render(r *Report, width int) string {
	if r.Unified == "" {
		return ""
	}

	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", withNewline(r.Unified))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return diffMarkdown
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return diffMarkdown
	}
	return rendered
}

func withNewline(s string) string {
	if strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
