package jsonshape

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/reoring/jsonshape/i18n"
)

// Error codes (exported consts for IDE completion and type safety by
// convention).
//
// All codes except CodeSchemaDefinition mark client-input faults: the schema
// is well-formed but the candidate value does not conform. CodeSchemaDefinition
// marks a defect in the schema itself and deserves assertion-level severity;
// it is never downgraded to a client-input fault.
const (
	CodeTypeMismatch      = "type_mismatch"
	CodeMissingKey        = "missing_key"
	CodeFormatMismatch    = "format_mismatch"
	CodeMissingOneOf      = "missing_one_of"
	CodeAmbiguousOneOf    = "ambiguous_one_of"
	CodeMissingAtLeastOne = "missing_at_least_one"
	CodeDepthExceeded     = "depth_exceeded"
	CodeSchemaDefinition  = "schema_definition"
)

// Error is the single validation error value. Validation is fail-fast: the
// first violation found during the depth-first walk is returned and nothing
// past it is inspected.
type Error struct {
	Path   string            // Accessor expression from the root, e.g. root['a'][0].
	Code   string            // One of the codes listed above.
	Value  any               // Offending value, when one applies.
	Params map[string]string // Schema context used to render the message (expected kind, pattern, group keys, ...).
}

// Error renders a human-readable message through the current i18n Translator.
func (e *Error) Error() string {
	data := make(map[string]string, len(e.Params)+2)
	for k, v := range e.Params {
		data[k] = v
	}
	if _, ok := data["path"]; !ok {
		data["path"] = e.Path
	}
	if _, ok := data["value"]; !ok {
		data["value"] = renderValue(e.Value)
	}
	return i18n.T(e.Code, data)
}

// AsError extracts an *Error using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsSchemaDefect reports whether err marks a defect in the schema itself
// rather than a non-conforming candidate value. Callers typically alert on
// these at deploy time instead of logging them as user errors.
func IsSchemaDefect(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == CodeSchemaDefinition
}

func schemaDefect(path, detail string) *Error {
	return &Error{Path: path, Code: CodeSchemaDefinition, Params: map[string]string{"detail": detail}}
}

func typeMismatch(path string, v any, expected string) *Error {
	return &Error{
		Path:  path,
		Code:  CodeTypeMismatch,
		Value: v,
		Params: map[string]string{
			"expected": expected,
			"actual":   valueKindName(v),
		},
	}
}

// renderValue renders an offending value for error messages; text is quoted
// so empty strings and whitespace stay visible.
func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	}
	return fmt.Sprintf("%v", v)
}
