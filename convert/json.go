package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxBridgeDepth bounds the JSON and YAML bridges on self-referential input
const maxBridgeDepth = 1000

var errTooDeep = errors.New("value nested too deeply")

// ParseJSON parses JSON keeping object key order (*Map), integers as int64
func ParseJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := readJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to parse JSON: unexpected data after top-level value")
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := &Map{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, not string", keyTok)
				}
				v, err := readJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("object[%q]: %w", key, err)
				}
				obj.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				v, err := readJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// FormatJSON writes v as JSON in *Map key order, compact when indent is empty
func FormatJSON(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, v, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any, indent string, level int) error {
	if level > maxBridgeDepth {
		return errTooDeep
	}

	n := inspect(v)
	switch n.kind {
	case kindNull, kindBool:
		buf.WriteString(n.text)
	case kindNumber:
		if isNonFinite(n.text) {
			// NaN and the infinities have no JSON spelling
			buf.WriteString("null")
			break
		}
		buf.WriteString(n.text)
	case kindString, kindTime:
		quoted, err := json.Marshal(n.text)
		if err != nil {
			return err
		}
		buf.Write(quoted)
	case kindSequence:
		if len(n.items) == 0 {
			buf.WriteString("[]")
			break
		}
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, level+1)
			if err := writeJSON(buf, item, indent, level+1); err != nil {
				return err
			}
		}
		newline(buf, indent, level)
		buf.WriteByte(']')
	case kindMapping:
		if len(n.entries) == 0 {
			buf.WriteString("{}")
			break
		}
		buf.WriteByte('{')
		for i, e := range n.entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, level+1)
			key, err := json.Marshal(e.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := writeJSON(buf, e.Value, indent, level+1); err != nil {
				return err
			}
		}
		newline(buf, indent, level)
		buf.WriteByte('}')
	}
	return nil
}

func newline(buf *bytes.Buffer, indent string, level int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, level))
}

// MarshalJSON implements json.Marshaler keeping key order
func (m *Map) MarshalJSON() ([]byte, error) {
	return FormatJSON(m, "")
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Map) UnmarshalJSON(data []byte) error {
	v, err := ParseJSON(data)
	if err != nil {
		return err
	}
	obj, ok := v.(*Map)
	if !ok {
		return fmt.Errorf("cannot unmarshal %T into Map", v)
	}
	*m = *obj
	return nil
}
