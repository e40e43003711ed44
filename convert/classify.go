package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// kind is the structural class of a value as seen by the encoder
type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindTime
	kindSequence
	kindMapping
)

// node is one level of a value, unpacked for rendering. Containers are
// unpacked a single level at a time so self-referential input only ever
// costs as many levels as the depth guard allows
type node struct {
	kind    kind
	text    string
	items   []any
	entries []Entry
}

// isPrimitive reports whether the node renders on a single line
func (n node) isPrimitive() bool {
	return n.kind != kindSequence && n.kind != kindMapping
}

// isEmpty reports whether the node is a container with no children
func (n node) isEmpty() bool {
	switch n.kind {
	case kindSequence:
		return len(n.items) == 0
	case kindMapping:
		return len(n.entries) == 0
	}
	return false
}

// inspect classifies v and unpacks its first level
func inspect(v any) node {
	switch val := v.(type) {
	case nil, undefinedValue:
		return node{kind: kindNull, text: "null"}
	case bool:
		return node{kind: kindBool, text: strconv.FormatBool(val)}
	case string:
		return node{kind: kindString, text: val}
	case int:
		return number(strconv.FormatInt(int64(val), 10))
	case int8:
		return number(strconv.FormatInt(int64(val), 10))
	case int16:
		return number(strconv.FormatInt(int64(val), 10))
	case int32:
		return number(strconv.FormatInt(int64(val), 10))
	case int64:
		return number(strconv.FormatInt(val, 10))
	case uint:
		return number(strconv.FormatUint(uint64(val), 10))
	case uint8:
		return number(strconv.FormatUint(uint64(val), 10))
	case uint16:
		return number(strconv.FormatUint(uint64(val), 10))
	case uint32:
		return number(strconv.FormatUint(uint64(val), 10))
	case uint64:
		return number(strconv.FormatUint(val, 10))
	case float32:
		return number(formatFloat(float64(val), 32))
	case float64:
		return number(formatFloat(val, 64))
	case json.Number:
		return number(val.String())
	case time.Time:
		return node{kind: kindTime, text: formatTime(val)}
	case *time.Time:
		if val == nil {
			return node{kind: kindNull, text: "null"}
		}
		return node{kind: kindTime, text: formatTime(*val)}
	case *Map:
		if val == nil {
			return node{kind: kindNull, text: "null"}
		}
		return node{kind: kindMapping, entries: val.Entries()}
	case Map:
		return node{kind: kindMapping, entries: val.Entries()}
	case []any:
		return node{kind: kindSequence, items: val}
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, Entry{Key: k, Value: val[k]})
		}
		return node{kind: kindMapping, entries: entries}
	}

	return inspectReflect(reflect.ValueOf(v))
}

// inspectReflect handles named types, typed slices and maps, and structs
func inspectReflect(rv reflect.Value) node {
	switch rv.Kind() {
	case reflect.Invalid:
		return node{kind: kindNull, text: "null"}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return node{kind: kindNull, text: "null"}
		}
		return inspect(rv.Elem().Interface())
	case reflect.Bool:
		return node{kind: kindBool, text: strconv.FormatBool(rv.Bool())}
	case reflect.String:
		return node{kind: kindString, text: rv.String()}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return number(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return number(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return number(formatFloat(rv.Float(), 32))
	case reflect.Float64:
		return number(formatFloat(rv.Float(), 64))
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return node{kind: kindNull, text: "null"}
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return node{kind: kindSequence, items: items}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		if rv.IsNil() {
			return node{kind: kindNull, text: "null"}
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		entries := make([]Entry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, Entry{Key: k.String(), Value: rv.MapIndex(k).Interface()})
		}
		return node{kind: kindMapping, entries: entries}
	case reflect.Struct:
		// Structs go through encoding/json so tags and field order apply
		data, err := json.Marshal(rv.Interface())
		if err == nil {
			if bridged, err := ParseJSON(data); err == nil {
				return inspect(bridged)
			}
		}
	}

	return node{kind: kindString, text: fmt.Sprint(rv.Interface())}
}

func number(text string) node {
	return node{kind: kindNumber, text: text}
}

// formatFloat renders a float the way a JSON-minded reader expects:
// integral values carry no fraction, huge and tiny magnitudes use exponents
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, bitSize)
	}
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

func isNonFinite(text string) bool {
	return text == "NaN" || text == "Infinity" || text == "-Infinity"
}

// formatTime normalises a timestamp to UTC ISO-8601 with milliseconds
func formatTime(t time.Time) string {
	return t.UTC().Format(isoTimestamp)
}
