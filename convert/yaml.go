package convert

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses YAML keeping mapping key order, timestamps as time.Time
func ParseYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	r := &yamlReader{budget: max(minAliasBudget, countYAMLNodes(root)*aliasExpansionFactor)}
	return r.fromNode(root, 0)
}

// Aliases are expanded on every reference, so a short document can name an
// exponential number of nodes. Decoding stops once it has visited more than
// aliasExpansionFactor times the document's own node count
const (
	aliasExpansionFactor = 100
	minAliasBudget       = 10000
)

var errAliasExpansion = errors.New("document expands too much through aliases")

type yamlReader struct {
	budget int // nodes left to visit
}

// countYAMLNodes counts the nodes written in the document, not following aliases
func countYAMLNodes(n *yaml.Node) int {
	count := 1
	for _, c := range n.Content {
		count += countYAMLNodes(c)
	}
	return count
}

func (r *yamlReader) fromNode(n *yaml.Node, level int) (any, error) {
	if level > maxBridgeDepth {
		return nil, errTooDeep
	}
	r.budget--
	if r.budget < 0 {
		return nil, errAliasExpansion
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return r.fromNode(n.Content[0], level)
	case yaml.AliasNode:
		return r.fromNode(n.Alias, level+1)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := r.fromNode(c, level+1)
			if err != nil {
				return nil, fmt.Errorf("line %d: item %d: %w", n.Line, i, err)
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		obj := &Map{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			v, err := r.fromNode(n.Content[i+1], level+1)
			if err != nil {
				return nil, fmt.Errorf("line %d: key %q: %w", n.Content[i].Line, key, err)
			}
			obj.Set(key, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			// yaml.v3 hands timestamps to an `any` target as strings
			var ts time.Time
			if err := n.Decode(&ts); err == nil {
				return ts, nil
			}
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		switch s := v.(type) {
		case int:
			return int64(s), nil
		case uint64:
			return float64(s), nil
		}
		return v, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

// FormatYAML writes v as YAML in *Map key order
func FormatYAML(v any) ([]byte, error) {
	n, err := toYAMLNode(v, 0)
	if err != nil {
		return nil, err
	}
	out, err := yaml.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return out, nil
}

func toYAMLNode(v any, level int) (*yaml.Node, error) {
	if level > maxBridgeDepth {
		return nil, errTooDeep
	}

	n := inspect(v)
	switch n.kind {
	case kindNull:
		return scalarNode("!!null", "null"), nil
	case kindBool:
		return scalarNode("!!bool", n.text), nil
	case kindNumber:
		switch n.text {
		case "NaN":
			return scalarNode("!!float", ".nan"), nil
		case "Infinity":
			return scalarNode("!!float", ".inf"), nil
		case "-Infinity":
			return scalarNode("!!float", "-.inf"), nil
		}
		if integerPattern.MatchString(n.text) {
			return scalarNode("!!int", n.text), nil
		}
		return scalarNode("!!float", n.text), nil
	case kindTime:
		if _, err := time.Parse(isoTimestamp, n.text); err == nil {
			return scalarNode("!!timestamp", n.text), nil
		}
		return scalarNode("!!str", n.text), nil
	case kindSequence:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range n.items {
			c, err := toYAMLNode(item, level+1)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, c)
		}
		return seq, nil
	case kindMapping:
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range n.entries {
			c, err := toYAMLNode(e.Value, level+1)
			if err != nil {
				return nil, err
			}
			m.Content = append(m.Content, scalarNode("!!str", e.Key), c)
		}
		return m, nil
	}
	return scalarNode("!!str", n.text), nil
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
