// Package schemadef compiles declarative schema documents into jsonshape
// nodes. Documents are YAML (JSON, being a YAML subset, works as-is) and are
// walked as yaml.Node trees so field declaration order survives into the
// compiled schema.
//
// Grammar:
//
//   - Scalars name primitive leaves: "int"/"integer", "float"/"number",
//     "text"/"string"/"str", "any", "timestamp".
//   - A sequence with exactly one element compiles to a sequence schema.
//   - A mapping with a single directive key is a combinator:
//     required/one_of/at_least_one (fields), optional (inner schema),
//     pattern (regexp source), all (list of mappings folded with Combine).
//   - Any other mapping is shorthand for required fields.
//
// Example:
//
//	all:
//	  - required:
//	      name: text
//	      tags: [text]
//	      created: timestamp
//	  - one_of:
//	      id: int
//	      email: { pattern: "^[^@]+@[^@]+$" }
package schemadef

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	jsonshape "github.com/reoring/jsonshape"
)

// Compile parses a schema document and compiles it into a schema node.
func Compile(data []byte) (jsonshape.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemadef: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("schemadef: expected a single schema document")
	}
	return compileNode(doc.Content[0])
}

func compileNode(n *yaml.Node) (jsonshape.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return compileScalar(n)
	case yaml.SequenceNode:
		if len(n.Content) != 1 {
			return nil, fmt.Errorf("schemadef: line %d: a sequence schema needs exactly one element schema, got %d", n.Line, len(n.Content))
		}
		elem, err := compileNode(n.Content[0])
		if err != nil {
			return nil, err
		}
		return jsonshape.SequenceOf(elem), nil
	case yaml.MappingNode:
		return compileMapping(n)
	}
	return nil, fmt.Errorf("schemadef: line %d: unsupported schema node", n.Line)
}

func compileScalar(n *yaml.Node) (jsonshape.Node, error) {
	switch n.Value {
	case "int", "integer":
		return jsonshape.Integer(), nil
	case "float", "number":
		return jsonshape.Float(), nil
	case "text", "string", "str":
		return jsonshape.Text(), nil
	case "any":
		return jsonshape.Any(), nil
	case "timestamp":
		return jsonshape.Timestamp, nil
	}
	return nil, fmt.Errorf("schemadef: line %d: unknown type %q", n.Line, n.Value)
}

func compileMapping(n *yaml.Node) (jsonshape.Node, error) {
	if len(n.Content) == 2 {
		key, val := n.Content[0], n.Content[1]
		switch key.Value {
		case "required":
			fields, err := compileFields(val)
			if err != nil {
				return nil, err
			}
			return jsonshape.Required(fields...), nil
		case "one_of", "oneOf":
			fields, err := compileFields(val)
			if err != nil {
				return nil, err
			}
			return jsonshape.OneOf(fields...), nil
		case "at_least_one", "atLeastOne":
			fields, err := compileFields(val)
			if err != nil {
				return nil, err
			}
			return jsonshape.AtLeastOne(fields...), nil
		case "optional":
			inner, err := compileNode(val)
			if err != nil {
				return nil, err
			}
			return jsonshape.Optional(inner), nil
		case "pattern":
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("schemadef: line %d: pattern takes a regexp source string", val.Line)
			}
			re, err := regexp.Compile(val.Value)
			if err != nil {
				return nil, fmt.Errorf("schemadef: line %d: %w", val.Line, err)
			}
			return jsonshape.Pattern(re), nil
		case "all":
			return compileAll(val)
		}
	}
	// Plain mapping: shorthand for required fields.
	fields, err := compileFields(n)
	if err != nil {
		return nil, err
	}
	return jsonshape.Required(fields...), nil
}

func compileAll(n *yaml.Node) (jsonshape.Node, error) {
	if n.Kind != yaml.SequenceNode || len(n.Content) < 2 {
		return nil, fmt.Errorf("schemadef: line %d: all takes a list of two or more mapping schemas", n.Line)
	}
	parts := make([]jsonshape.Mapping, 0, len(n.Content))
	for _, c := range n.Content {
		node, err := compileNode(c)
		if err != nil {
			return nil, err
		}
		m, ok := node.(jsonshape.Mapping)
		if !ok {
			return nil, fmt.Errorf("schemadef: line %d: all accepts mapping schemas only", c.Line)
		}
		parts = append(parts, m)
	}
	combined, err := jsonshape.Combine(parts[0], parts[1:]...)
	if err != nil {
		return nil, fmt.Errorf("schemadef: line %d: %w", n.Line, err)
	}
	return combined, nil
}

func compileFields(n *yaml.Node) ([]jsonshape.Field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schemadef: line %d: expected a mapping of field names to schemas", n.Line)
	}
	fields := make([]jsonshape.Field, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		s, err := compileNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		fields = append(fields, jsonshape.F(n.Content[i].Value, s))
	}
	return fields, nil
}

// LoadValue decodes a YAML payload into the any-tree form jsonshape
// validates, normalizing map keys to strings the way JSON decoding would
// produce them. Non-string keys are dropped.
func LoadValue(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return normalizeValue(v), nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeValue(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
