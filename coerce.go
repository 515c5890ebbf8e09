package jsonshape

import (
	"encoding/json"
	"fmt"
	"math"
)

// matchesPrimitive reports whether a decoded JSON value satisfies a primitive
// kind. Null satisfies every primitive kind: scalar fields are implicitly
// nullable, presence being the enclosing Mapping's concern.
func matchesPrimitive(k Kind, v any) bool {
	if v == nil {
		return true
	}
	switch k {
	case KindInteger:
		return isIntegral(v)
	case KindFloat:
		return isNumeric(v)
	case KindText:
		_, ok := v.(string)
		return ok
	}
	return false
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case int, int64, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	}
	return false
}

// isIntegral accepts any numeric representation whose value has no fractional
// part, so 3.0 counts as an integer.
func isIntegral(v any) bool {
	switch n := v.(type) {
	case int, int64:
		return true
	case float64:
		return !math.IsInf(n, 0) && !math.IsNaN(n) && n == math.Trunc(n)
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return true
		}
		f, err := n.Float64()
		return err == nil && f == math.Trunc(f)
	}
	return false
}

// falsy reports whether a decoded JSON value counts as "absent" under the
// falsy-absence rule Optional applies: null, false, numeric zero, and empty
// text/sequence/mapping.
func falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case int:
		return t == 0
	case int64:
		return t == 0
	case float64:
		return t == 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// valueKindName names the decoded-JSON kind of v for error messages.
func valueKindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "text"
	case int, int64, float64, json.Number:
		return "number"
	case []any:
		return "sequence"
	case map[string]any:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
