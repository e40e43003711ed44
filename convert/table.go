package convert

import (
	"fmt"
	"regexp"
	"strings"
)

// separatorPattern matches a header separator row such as "| --- | :-- |"
var separatorPattern = regexp.MustCompile(`^\|(\s*:?-+:?\s*\|)+$`)

// renderTable renders items as a pipe table when every item is a mapping
// and at least one column exists. Columns are the union of all keys in
// order of first appearance
func (e *encoder) renderTable(items []any, depth int) (string, bool) {
	rows := make([]map[string]any, 0, len(items))
	var columns []string
	seen := make(map[string]bool)

	for _, item := range items {
		n := inspect(item)
		if n.kind != kindMapping {
			return "", false
		}
		row := make(map[string]any, len(n.entries))
		for _, entry := range n.entries {
			if !seen[entry.Key] {
				seen[entry.Key] = true
				columns = append(columns, entry.Key)
			}
			row[entry.Key] = entry.Value
		}
		rows = append(rows, row)
	}
	if len(columns) == 0 {
		return "", false
	}

	indent := e.indent(depth)
	lines := make([]string, 0, len(rows)+2)

	header := make([]string, len(columns))
	separator := make([]string, len(columns))
	for i, c := range columns {
		header[i] = EscapeMarkdown(c)
		separator[i] = "---"
	}
	lines = append(lines, indent+tableRow(header), indent+tableRow(separator))

	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, c := range columns {
			v, ok := row[c]
			if !ok {
				cells[i] = NullCellMarker
				continue
			}
			cells[i] = tableCell(v)
		}
		lines = append(lines, indent+tableRow(cells))
	}

	return strings.Join(lines, "\n"), true
}

func tableRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// tableCell flattens v into a single cell. Nested structure is replaced by
// a placeholder the decoder turns back into an empty container
func tableCell(v any) string {
	n := inspect(v)
	switch n.kind {
	case kindNull:
		return NullCellMarker
	case kindMapping:
		return ObjectCellMarker
	case kindSequence:
		return fmt.Sprintf("_array[%d]_", len(n.items))
	case kindString:
		return EscapeMarkdown(n.text)
	}
	return n.text
}

// isTableRow reports whether a trimmed line is pipe-delimited
func isTableRow(line string) bool {
	return len(line) >= 2 && strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

// findTable returns the index of the first header row that is directly
// followed by a separator row, or -1
func findTable(lines []string) int {
	for i := 0; i+1 < len(lines); i++ {
		if isTableRow(lines[i]) && separatorPattern.MatchString(lines[i+1]) {
			return i
		}
	}
	return -1
}

// parseTable decodes the table whose header sits at lines[start]. The row
// after the header is skipped as the separator. Rows whose cell count
// differs from the header are dropped and reported
func (d *decoder) parseTable(lines []string, start int) []any {
	headers := splitCells(lines[start])
	for i, h := range headers {
		headers[i] = d.key(h)
	}

	rows := []any{}
	rowNum := 0
	for i := start + 2; i < len(lines) && isTableRow(lines[i]); i++ {
		rowNum++
		cells := splitCells(lines[i])
		if len(cells) != len(headers) {
			d.report("row %d: expected %d columns, got %d", rowNum, len(headers), len(cells))
			continue
		}

		row := &Map{}
		for j, cell := range cells {
			row.Set(headers[j], InferValue(UnescapeMarkdown(cell)))
		}
		rows = append(rows, row)
	}
	return rows
}

// splitCells splits a pipe-delimited row on unescaped pipes and trims each
// cell. The outer pipes are not cells
func splitCells(line string) []string {
	inner := strings.TrimSpace(line)
	inner = strings.TrimPrefix(inner, "|")
	if strings.HasSuffix(inner, "|") && !strings.HasSuffix(inner, `\|`) {
		inner = inner[:len(inner)-1]
	}

	var cells []string
	var cell strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) && inner[i+1] == '|' {
			cell.WriteString(`\|`)
			i++
			continue
		}
		if c == '|' {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
			continue
		}
		cell.WriteByte(c)
	}
	return append(cells, strings.TrimSpace(cell.String()))
}
