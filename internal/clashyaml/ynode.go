package clashyaml

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// newMapping returns an empty mapping node.
func newMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// setField appends (or, if present, replaces) fieldName -> value on a
// mapping node, preserving insertion order for new keys. Grounded in
// miaomiaowu's SetNodeField/ValueToYAMLNode helpers.
func setField(node *yaml.Node, fieldName string, value any) {
	valueNode := toValueNode(value)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == fieldName {
			node.Content[i+1] = valueNode
			return
		}
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: fieldName},
		valueNode,
	)
}

// getField returns the value node for fieldName, or nil.
func getField(node *yaml.Node, fieldName string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == fieldName {
			return node.Content[i+1]
		}
	}
	return nil
}

// removeField deletes fieldName from a mapping node if present.
func removeField(node *yaml.Node, fieldName string) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == fieldName {
			node.Content = append(node.Content[:i], node.Content[i+2:]...)
			return
		}
	}
}

// toValueNode converts a Go value to a yaml.Node with explicit type tags
// so scalars round-trip without quoting surprises.
func toValueNode(value any) *yaml.Node {
	switch v := value.(type) {
	case bool:
		val := "false"
		if v {
			val = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: val}
	case int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(v)}
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	case []string:
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, s := range v {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s})
		}
		return seq
	case map[string]string:
		m := newMapping()
		for k, val := range v {
			setField(m, k, val)
		}
		return m
	case *yaml.Node:
		return v
	default:
		var node yaml.Node
		data, err := yaml.Marshal(value)
		if err != nil {
			return &yaml.Node{Kind: yaml.ScalarNode, Value: ""}
		}
		if err := yaml.Unmarshal(data, &node); err != nil || len(node.Content) == 0 {
			return &yaml.Node{Kind: yaml.ScalarNode, Value: ""}
		}
		return node.Content[0]
	}
}
