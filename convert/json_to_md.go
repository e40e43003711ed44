package convert

import (
	"strconv"
	"strings"
)

// JSONToMarkdown converts a structured value to markdown lists, key/value
// bullets and pipe tables. Nil options use the defaults
//
// Self-referential values are cut off at MaxDepth, not detected
func JSONToMarkdown(v any, opts *EncodeOptions) string {
	e := &encoder{opts: opts.resolve()}
	return e.render(inspect(v), 0)
}

type encoder struct {
	opts EncodeOptions
}

func (e *encoder) indent(depth int) string {
	return strings.Repeat(" ", depth*e.opts.IndentSize)
}

// render writes n as a block whose lines all carry depth's indentation
func (e *encoder) render(n node, depth int) string {
	if e.fitsInline(n, depth) {
		return e.indent(depth) + e.inlineText(n, depth)
	}

	if n.kind == kindSequence {
		if e.opts.ArraysAsTables {
			if table, ok := e.renderTable(n.items, depth); ok {
				return table
			}
		}
		return e.renderList(n.items, depth)
	}
	return e.renderMapping(n.entries, depth)
}

// fitsInline reports whether n renders as a single token after its prefix
func (e *encoder) fitsInline(n node, depth int) bool {
	return depth > e.opts.MaxDepth || n.isPrimitive() || n.isEmpty()
}

func (e *encoder) inlineText(n node, depth int) string {
	if depth > e.opts.MaxDepth {
		return MaxDepthMarker
	}
	switch n.kind {
	case kindString:
		return EscapeMarkdown(n.text)
	case kindSequence:
		return EmptyArrayMarker
	case kindMapping:
		return EmptyObjectMarker
	}
	return n.text
}

func (e *encoder) renderList(items []any, depth int) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		prefix := "-"
		if e.opts.UseNumberedLists {
			prefix = strconv.Itoa(i+1) + "."
		}
		lines = append(lines, e.renderItem(e.indent(depth)+prefix, inspect(item), depth+1))
	}
	return strings.Join(lines, "\n")
}

func (e *encoder) renderMapping(entries []Entry, depth int) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		head := e.indent(depth) + "- **" + EscapeMarkdown(entry.Key) + "**:"
		lines = append(lines, e.renderItem(head, inspect(entry.Value), depth+1))
	}
	return strings.Join(lines, "\n")
}

// renderItem places child after head on the same line when it fits,
// otherwise on the following lines at childDepth
func (e *encoder) renderItem(head string, child node, childDepth int) string {
	if !e.fitsInline(child, childDepth) {
		return head + "\n" + e.render(child, childDepth)
	}
	text := e.inlineText(child, childDepth)
	if text == "" {
		return head
	}
	return head + " " + text
}
