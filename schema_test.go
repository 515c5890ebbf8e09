package jsonshape_test

import (
	"reflect"
	"testing"

	jsonshape "github.com/reoring/jsonshape"
)

func TestMapping_RequiredKeysOrder(t *testing.T) {
	shape := jsonshape.MustCombine(
		jsonshape.Required(jsonshape.F("b", jsonshape.Integer()), jsonshape.F("a", jsonshape.Integer())),
		jsonshape.OneOf(jsonshape.F("x", jsonshape.Integer()), jsonshape.F("y", jsonshape.Integer())),
		jsonshape.Required(jsonshape.F("c", jsonshape.Integer())),
	)
	// Own fields first in declaration order, then addends in addend order.
	// OneOf addends contribute no required keys of their own.
	want := []string{"b", "a", "c"}
	if got := shape.RequiredKeys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("RequiredKeys = %v, want %v", got, want)
	}
}

func TestMapping_Groups(t *testing.T) {
	shape := jsonshape.MustCombine(
		jsonshape.Required(jsonshape.F("r", jsonshape.Integer())),
		jsonshape.OneOf(jsonshape.F("a", jsonshape.Integer()), jsonshape.F("b", jsonshape.Integer())),
		jsonshape.AtLeastOne(jsonshape.F("c", jsonshape.Integer())),
		jsonshape.OneOf(jsonshape.F("d", jsonshape.Integer())),
	)
	wantOne := [][]string{{"a", "b"}, {"d"}}
	if got := shape.OneOfGroups(); !reflect.DeepEqual(got, wantOne) {
		t.Fatalf("OneOfGroups = %v, want %v", got, wantOne)
	}
	wantAtLeast := [][]string{{"c"}}
	if got := shape.AtLeastOneGroups(); !reflect.DeepEqual(got, wantAtLeast) {
		t.Fatalf("AtLeastOneGroups = %v, want %v", got, wantAtLeast)
	}
}

func TestMapping_Lookup(t *testing.T) {
	inner := jsonshape.Text()
	shape := jsonshape.MustCombine(
		jsonshape.OneOf(jsonshape.F("a", jsonshape.Integer()), jsonshape.F("b", jsonshape.Integer())),
		jsonshape.Required(jsonshape.F("c", inner)),
	)
	if _, ok := shape.Lookup("a"); !ok {
		t.Fatalf("own key a not found")
	}
	if n, ok := shape.Lookup("c"); !ok || n != inner {
		t.Fatalf("addend key c not resolved to its schema")
	}
	if _, ok := shape.Lookup("nope"); ok {
		t.Fatalf("unexpected hit for absent key")
	}
}

func TestCombine_RejectsCollidingKeys(t *testing.T) {
	_, err := jsonshape.Combine(
		jsonshape.Required(jsonshape.F("a", jsonshape.Integer())),
		jsonshape.Required(jsonshape.F("a", jsonshape.Text())),
	)
	if !jsonshape.IsSchemaDefect(err) {
		t.Fatalf("expected a schema defect for colliding keys, got %v", err)
	}
	// Collisions hiding deeper in the chain are caught too.
	ab := jsonshape.MustCombine(
		jsonshape.Required(jsonshape.F("a", jsonshape.Integer())),
		jsonshape.OneOf(jsonshape.F("b", jsonshape.Integer())),
	)
	_, err = jsonshape.Combine(ab, jsonshape.AtLeastOne(jsonshape.F("b", jsonshape.Text())))
	if !jsonshape.IsSchemaDefect(err) {
		t.Fatalf("expected a schema defect for nested collision, got %v", err)
	}
}

func TestMustCombine_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustCombine to panic on colliding keys")
		}
	}()
	jsonshape.MustCombine(
		jsonshape.Required(jsonshape.F("a", jsonshape.Integer())),
		jsonshape.Required(jsonshape.F("a", jsonshape.Integer())),
	)
}

func TestCombine_DoesNotMutateOperands(t *testing.T) {
	a := jsonshape.Required(jsonshape.F("a", jsonshape.Integer()))
	b := jsonshape.Required(jsonshape.F("b", jsonshape.Text()))
	sum := jsonshape.MustCombine(a, b)

	// a alone still accepts a value missing b.
	if err := jsonshape.Validate(a, map[string]any{"a": 1}); err != nil {
		t.Fatalf("operand a was mutated by Combine: %v", err)
	}
	if err := jsonshape.Validate(sum, map[string]any{"a": 1, "b": "x"}); err != nil {
		t.Fatalf("combined shape rejected conforming value: %v", err)
	}
	// Extending sum further must not change sum itself.
	wider := jsonshape.MustCombine(sum, jsonshape.Required(jsonshape.F("c", jsonshape.Integer())))
	if err := jsonshape.Validate(sum, map[string]any{"a": 1, "b": "x"}); err != nil {
		t.Fatalf("sum was mutated by a later Combine: %v", err)
	}
	if err := jsonshape.Validate(wider, map[string]any{"a": 1, "b": "x"}); err == nil {
		t.Fatalf("wider shape should require c")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[jsonshape.Kind]string{
		jsonshape.KindInteger: "integer",
		jsonshape.KindFloat:   "float",
		jsonshape.KindText:    "text",
	} {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
