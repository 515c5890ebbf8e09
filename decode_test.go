package jsonshape_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	jsonshape "github.com/reoring/jsonshape"
)

func TestDecodeJSON_PreservesNumbers(t *testing.T) {
	v, err := jsonshape.DecodeJSON([]byte(`{"a": 3.0, "b": 2}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	if n, ok := obj["a"].(json.Number); !ok || n.String() != "3.0" {
		t.Fatalf("expected json.Number 3.0, got %#v", obj["a"])
	}
}

func TestValidateJSON_PassThrough(t *testing.T) {
	shape := jsonshape.Required(
		jsonshape.F("a", jsonshape.Integer()),
		jsonshape.F("d", jsonshape.SequenceOf(jsonshape.Integer())),
	)
	data := []byte(`{"a": 3.0, "d": [1, 2, 3], "extra": "ignored"}`)
	v, err := jsonshape.ValidateJSON(shape, data)
	if err != nil {
		t.Fatalf("conforming payload rejected: %v", err)
	}
	// The decoded value comes back untouched, extra key included.
	decoded, err := jsonshape.DecodeJSON(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(v, decoded) {
		t.Fatalf("ValidateJSON altered the value: %#v vs %#v", v, decoded)
	}
}

func TestValidateJSON_Failure(t *testing.T) {
	shape := jsonshape.Required(jsonshape.F("a", jsonshape.Integer()))
	v, err := jsonshape.ValidateJSON(shape, []byte(`{"a": "nope"}`))
	if v != nil {
		t.Fatalf("no value expected on failure, got %#v", v)
	}
	e, ok := jsonshape.AsError(err)
	if !ok || e.Code != jsonshape.CodeTypeMismatch {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}

func TestValidateJSON_MalformedInput(t *testing.T) {
	_, err := jsonshape.ValidateJSON(jsonshape.Any(), []byte(`{"a":`))
	if err == nil {
		t.Fatalf("expected a decode error")
	}
	if _, ok := jsonshape.AsError(err); ok {
		t.Fatalf("decode errors are not validation errors: %v", err)
	}
}

func TestDecodeJSONReader(t *testing.T) {
	v, err := jsonshape.DecodeJSONReader(strings.NewReader(`["a", "b"]`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if seq, ok := v.([]any); !ok || len(seq) != 2 {
		t.Fatalf("expected a two-element sequence, got %#v", v)
	}
}
