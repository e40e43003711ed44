package convert

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	keyValuePattern = regexp.MustCompile(`^\*\*(.+?)\*\*:\s*(.*)$`)
	numberedPattern = regexp.MustCompile(`^\d+\.(\s+.*)?$`)
)

// tabWidth is the indentation a leading tab counts for
const tabWidth = 4

// MarkdownToJSON converts markdown back to a structured value plus diagnostics
// *Map for mappings, []any for sequences, int64 and float64 for numbers
func MarkdownToJSON(md string, opts *DecodeOptions) (res Result) {
	d := &decoder{opts: DefaultDecodeOptions(), diagnostics: []string{}}
	if opts != nil {
		d.opts = *opts
	}

	defer recoverFatal(&res)

	lines := splitLines(md)

	if d.opts.ParseTables() {
		texts := make([]string, len(lines))
		for i, l := range lines {
			texts[i] = l.text
		}
		if start := findTable(texts); start >= 0 {
			return Result{Value: d.parseTable(texts, start), Diagnostics: d.diagnostics}
		}
	}

	return Result{Value: d.parseDocument(lines), Diagnostics: d.diagnostics}
}

// recoverFatal replaces res with a nil value and one fatal diagnostic when
// decoding panicked
func recoverFatal(res *Result) {
	if r := recover(); r != nil {
		*res = Result{Value: nil, Diagnostics: []string{fmt.Sprintf("%s%v", FatalPrefix, r)}}
	}
}

// line is one input line split into its indentation and trimmed text
type line struct {
	indent int
	text   string
}

func (l line) isBlank() bool {
	return l.text == ""
}

func (l line) isBullet() bool {
	return l.text == "-" || strings.HasPrefix(l.text, "- ")
}

func (l line) isNumbered() bool {
	return numberedPattern.MatchString(l.text)
}

func splitLines(md string) []line {
	raw := strings.Split(md, "\n")
	lines := make([]line, len(raw))
	for i, r := range raw {
		r = strings.TrimRight(r, " \t\r")
		indent := 0
		for _, c := range r {
			if c == ' ' {
				indent++
			} else if c == '\t' {
				indent += tabWidth
			} else {
				break
			}
		}
		lines[i] = line{indent: indent, text: strings.TrimLeft(r, " \t")}
	}
	return lines
}

type decoder struct {
	opts        DecodeOptions
	diagnostics []string
}

func (d *decoder) report(format string, args ...any) {
	d.diagnostics = append(d.diagnostics, fmt.Sprintf(format, args...))
}

func (d *decoder) key(raw string) string {
	k := UnescapeMarkdown(strings.TrimSpace(raw))
	if d.opts.CamelCaseKeys {
		return ToCamelCase(k)
	}
	return k
}

// parseDocument returns the value of the first recognised unit in lines
// Unrecognised lines before it are skipped without a diagnostic
func (d *decoder) parseDocument(lines []line) any {
	for i := 0; i < len(lines); {
		v, next, ok := d.parse(lines, i)
		if ok {
			return v
		}
		i = next
	}
	return nil
}

// parse consumes one unit starting at lines[i] and returns its value and
// the index of the first unconsumed line. ok is false when lines[i] is not
// a bullet or numbered item; the line is then consumed with a nil value
func (d *decoder) parse(lines []line, i int) (v any, next int, ok bool) {
	l := lines[i]
	switch {
	case l.isBullet():
		v, next = d.parseBullet(lines, i)
		return v, next, true
	case d.opts.ParseNumberedLists() && l.isNumbered():
		v, next = d.parseNumbered(lines, i)
		return v, next, true
	}
	return nil, i + 1, false
}

func bulletContent(l line) string {
	return strings.TrimSpace(strings.TrimPrefix(l.text, "-"))
}

// matchKeyValue splits "**key**: value" content
func matchKeyValue(content string) (key, value string, ok bool) {
	if !strings.Contains(content, "**") || !strings.Contains(content, ":") {
		return "", "", false
	}
	m := keyValuePattern.FindStringSubmatch(content)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func (d *decoder) parseBullet(lines []line, i int) (any, int) {
	if _, _, ok := matchKeyValue(bulletContent(lines[i])); ok {
		return d.parseMapping(lines, i)
	}
	return d.parseBulletList(lines, i)
}

// parseMapping collects a run of "- **key**: value" lines into one mapping
// A key whose next line is indented deeper takes that nested block as its
// value. The run ends at the first line that is not a key/value bullet
func (d *decoder) parseMapping(lines []line, i int) (*Map, int) {
	obj := &Map{}
	next := i
	for next < len(lines) && lines[next].isBullet() {
		rawKey, rawValue, ok := matchKeyValue(bulletContent(lines[next]))
		if !ok {
			break
		}

		var value any = InferValue(UnescapeMarkdown(rawValue))
		end := next + 1
		if block, blockEnd := nestedBlock(lines, next); len(block) > 0 {
			value = d.parseDocument(block)
			end = blockEnd
		}

		obj.Set(d.key(rawKey), value)
		next = end
	}
	return obj, next
}

// parseBulletList collects consecutive bullet lines as list items. A single
// item is returned unwrapped
func (d *decoder) parseBulletList(lines []line, i int) (any, int) {
	var items []any
	next := i
	for next < len(lines) && lines[next].isBullet() {
		var v any
		v, next = d.parseItem(lines, next, bulletContent(lines[next]))
		items = append(items, v)
	}

	if len(items) == 1 {
		return items[0], next
	}
	return items, next
}

// parseNumbered collects consecutive "N. item" lines. The numbers are not
// checked and the result is always a sequence
func (d *decoder) parseNumbered(lines []line, i int) ([]any, int) {
	items := []any{}
	next := i
	for next < len(lines) && lines[next].isNumbered() {
		content := lines[next].text[strings.Index(lines[next].text, ".")+1:]
		var v any
		v, next = d.parseItem(lines, next, strings.TrimSpace(content))
		items = append(items, v)
	}
	return items, next
}

// parseItem infers a list item's value. An item with no text of its own
// takes the nested block below it, which is how collections inside lists
// are written
func (d *decoder) parseItem(lines []line, i int, content string) (any, int) {
	if content == "" {
		if block, end := nestedBlock(lines, i); len(block) > 0 {
			return d.parseDocument(block), end
		}
	}
	return InferValue(UnescapeMarkdown(content)), i + 1
}

// nestedBlock returns the non-blank lines after lines[i] that are indented
// deeper than it, and the index just past them
func nestedBlock(lines []line, i int) ([]line, int) {
	base := lines[i].indent
	end := i + 1
	for end < len(lines) && !lines[end].isBlank() && lines[end].indent > base {
		end++
	}
	return lines[i+1 : end], end
}
