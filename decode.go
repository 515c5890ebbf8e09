package jsonshape

import (
	"bytes"
	"io"

	gojson "github.com/goccy/go-json"
)

// DecodeJSON decodes raw JSON into the any-tree form the validator consumes.
// Numbers are preserved as json.Number so integral floats keep their exact
// textual form.
func DecodeJSON(data []byte) (any, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader is DecodeJSON over an io.Reader.
func DecodeJSONReader(r io.Reader) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// ValidateJSON decodes data and validates the result against schema,
// returning the decoded value untouched on success.
func ValidateJSON(schema Node, data []byte, opts ...ValidateOpt) (any, error) {
	v, err := DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	if err := Validate(schema, v, opts...); err != nil {
		return nil, err
	}
	return v, nil
}
