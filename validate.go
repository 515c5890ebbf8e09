package jsonshape

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds recursion so adversarially nested payloads cannot
// exhaust the stack.
const DefaultMaxDepth = 1000

// DefaultRoot labels the root of the accessor path in error messages.
const DefaultRoot = "root"

// ValidateOpt bundles validation options. The zero value selects the
// defaults; when several opts are passed, the last one wins.
type ValidateOpt struct {
	MaxDepth int    // Maximum nesting depth; DefaultMaxDepth when zero.
	Root     string // Root path label; DefaultRoot when empty.
}

// Validate walks value against schema and returns nil when the value
// structurally conforms, or the first violation as an *Error. The walk is
// depth-first and fail-fast, and iterates required keys, groups and sequence
// elements in schema-declared order, so which violation surfaces first is
// reproducible for a given (schema, value) pair. Neither argument is mutated;
// a successful candidate passes through unchanged.
func Validate(schema Node, value any, opts ...ValidateOpt) error {
	opt := normalizeOpt(opts)
	if err := walk(schema, value, opt.Root, opt.MaxDepth, opt.MaxDepth); err != nil {
		return err
	}
	return nil
}

func normalizeOpt(opts []ValidateOpt) ValidateOpt {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = DefaultMaxDepth
	}
	if opt.Root == "" {
		opt.Root = DefaultRoot
	}
	return opt
}

// walk dispatches on the schema-node kind, most specific first: Mapping,
// Sequence, Optional, Any, Primitive, Pattern.
func walk(schema Node, value any, path string, depth, maxDepth int) *Error {
	if depth <= 0 {
		return &Error{Path: path, Code: CodeDepthExceeded, Params: map[string]string{"max": strconv.Itoa(maxDepth)}}
	}
	switch s := schema.(type) {
	case Mapping:
		return walkMapping(s, value, path, depth, maxDepth)
	case sequenceNode:
		if s.elem == nil {
			return schemaDefect(path, "sequence without an element schema")
		}
		seq, ok := value.([]any)
		if !ok {
			return typeMismatch(path, value, "sequence")
		}
		for i, item := range seq {
			if err := walk(s.elem, item, indexPath(path, i), depth-1, maxDepth); err != nil {
				return err
			}
		}
		return nil
	case optionalNode:
		if s.inner == nil {
			return schemaDefect(path, "optional wraps a nil schema")
		}
		if falsy(value) {
			return nil
		}
		return walk(s.inner, value, path, depth, maxDepth)
	case anyNode:
		return nil
	case primitiveNode:
		if !matchesPrimitive(s.kind, value) {
			return typeMismatch(path, value, s.kind.String())
		}
		return nil
	case patternNode:
		if s.re == nil {
			return schemaDefect(path, "pattern node without a compiled regexp")
		}
		str, ok := value.(string)
		if !ok || !s.re.MatchString(str) {
			return &Error{Path: path, Code: CodeFormatMismatch, Value: value, Params: map[string]string{"pattern": s.re.String()}}
		}
		return nil
	case nil:
		return schemaDefect(path, "nil schema node")
	}
	// The Node set is sealed; only a new in-package variant missing a case
	// above can reach this.
	return schemaDefect(path, fmt.Sprintf("unrecognized schema node %T", schema))
}

func walkMapping(m Mapping, value any, path string, depth, maxDepth int) *Error {
	if err := m.firstDefect(); err != nil {
		return schemaDefect(path, err.Error())
	}
	obj, ok := value.(map[string]any)
	if !ok {
		// Mappings must be present and of the correct container kind; null is
		// not accepted here, unlike at primitive leaves.
		return typeMismatch(path, value, "mapping")
	}

	for _, key := range m.RequiredKeys() {
		node, _ := m.Lookup(key) // key came from the schema, lookup cannot miss
		child, present := obj[key]
		if _, isOpt := node.(optionalNode); isOpt {
			if !present {
				continue
			}
			if err := walk(node, child, keyPath(path, key), depth-1, maxDepth); err != nil {
				return err
			}
			continue
		}
		if !present {
			return &Error{Path: path, Code: CodeMissingKey, Params: map[string]string{"key": key}}
		}
		if err := walk(node, child, keyPath(path, key), depth-1, maxDepth); err != nil {
			return err
		}
	}

	for _, group := range m.OneOfGroups() {
		present := presentKeys(group, obj)
		switch {
		case len(present) == 0:
			return &Error{Path: path, Code: CodeMissingOneOf, Params: map[string]string{"keys": renderKeys(group)}}
		case len(present) > 1:
			return &Error{Path: path, Code: CodeAmbiguousOneOf, Params: map[string]string{
				"keys":    renderKeys(group),
				"present": renderKeys(present),
			}}
		}
		key := present[0]
		node, _ := m.Lookup(key)
		if err := walk(node, obj[key], keyPath(path, key), depth-1, maxDepth); err != nil {
			return err
		}
	}

	for _, group := range m.AtLeastOneGroups() {
		present := presentKeys(group, obj)
		if len(present) == 0 {
			return &Error{Path: path, Code: CodeMissingAtLeastOne, Params: map[string]string{"keys": renderKeys(group)}}
		}
		// Only the first present key in declared order is validated; the
		// remaining present keys are not checked. See AtLeastOne.
		key := present[0]
		node, _ := m.Lookup(key)
		if err := walk(node, obj[key], keyPath(path, key), depth-1, maxDepth); err != nil {
			return err
		}
	}
	return nil
}

// presentKeys filters group down to the keys present in obj, keeping the
// declared group order.
func presentKeys(group []string, obj map[string]any) []string {
	var present []string
	for _, k := range group {
		if _, ok := obj[k]; ok {
			present = append(present, k)
		}
	}
	return present
}

func keyPath(path, key string) string { return path + "['" + key + "']" }

func indexPath(path string, i int) string { return path + "[" + strconv.Itoa(i) + "]" }

func renderKeys(keys []string) string { return "'" + strings.Join(keys, "', '") + "'" }
