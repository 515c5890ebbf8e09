// Package jsonshape validates that a decoded JSON value structurally conforms
// to an expected shape before the value is trusted by downstream code.
//
// It provides:
//
//   - A small schema algebra: Primitive/Pattern/Any/SequenceOf/Optional nodes
//     plus Mapping nodes with required/one-of/at-least-one field policies,
//     merged with Combine.
//   - A recursive validator (Validate) that walks a candidate value against a
//     schema and reports the first violation as a path-qualified *Error.
//   - Decode helpers (DecodeJSON/ValidateJSON) for raw JSON at the boundary.
//
// Design policy:
//   - Keep only public APIs in the root package; put integrations under
//     middleware/ and schemadef/, and the CLI under cmd/jsonshape.
//   - Schemas are built once, are immutable afterwards, and may be read by
//     unlimited concurrent Validate calls.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	shape := jsonshape.MustCombine(
//		jsonshape.Required(jsonshape.F("name", jsonshape.Text())),
//		jsonshape.OneOf(
//			jsonshape.F("id", jsonshape.Integer()),
//			jsonshape.F("email", jsonshape.Text()),
//		),
//	)
//	v, err := jsonshape.ValidateJSON(shape, body)
package jsonshape
