package convert

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	decimalPattern = regexp.MustCompile(`^-?\d+\.\d+$`)
	arrayCellRegex = regexp.MustCompile(`^_array\[\d+\]_$`)
)

// EscapeMarkdown escapes pipe characters, nothing else
func EscapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// UnescapeMarkdown reverses EscapeMarkdown
func UnescapeMarkdown(s string) string {
	return strings.ReplaceAll(s, `\|`, "|")
}

// InferValue converts cell or list text to a typed value, first match wins
//
//	"", "null", "_null_"           -> nil
//	"true", "false"                -> bool
//	-?digits                       -> int64 (float64 if it overflows)
//	-?digits.digits                -> float64
//	_object_, _empty object_       -> empty *Map
//	_empty array_, _array[N]_      -> empty []any
//	anything else                  -> string, one leading and one trailing "_" removed
func InferValue(text string) any {
	s := strings.TrimSpace(text)

	switch s {
	case "", "null", NullCellMarker:
		return nil
	case "true":
		return true
	case "false":
		return false
	}

	if integerPattern.MatchString(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if decimalPattern.MatchString(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	switch {
	case s == ObjectCellMarker, s == EmptyObjectMarker:
		return &Map{}
	case s == EmptyArrayMarker, arrayCellRegex.MatchString(s):
		return []any{}
	}

	s = strings.TrimPrefix(s, "_")
	s = strings.TrimSuffix(s, "_")
	return s
}

// ToCamelCase converts "first_name" / "First Name" / "first-name" to firstName
func ToCamelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '_' || r == '-'
	})
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}
