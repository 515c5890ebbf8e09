package jsonshape

import (
	"fmt"
	"regexp"
)

// Kind identifies a primitive expectation.
type Kind int

const (
	KindInteger Kind = iota // Integral numeric values; 3.0 counts as an integer.
	KindFloat               // Any numeric value.
	KindText                // Textual values.
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Policy selects the presence semantics a Mapping applies to its own fields.
type Policy int

const (
	PolicyRequired   Policy = iota // Every field key must be present.
	PolicyOneOf                    // Exactly one field key must be present.
	PolicyAtLeastOne               // At least one field key must be present.
)

// Node is a schema node: an immutable descriptor of the expected shape of a
// decoded JSON value. The set of implementations is closed; build nodes with
// the package constructors.
type Node interface {
	node()
}

type primitiveNode struct{ kind Kind }
type patternNode struct{ re *regexp.Regexp }
type anyNode struct{}
type sequenceNode struct{ elem Node }
type optionalNode struct{ inner Node }

func (primitiveNode) node() {}
func (patternNode) node()   {}
func (anyNode) node()       {}
func (sequenceNode) node()  {}
func (optionalNode) node()  {}
func (Mapping) node()       {}

// Field pairs a key with the shape expected under it. Declaration order is
// significant: required-key checks, group resolution, and therefore which
// error surfaces first all follow it.
type Field struct {
	Key    string
	Schema Node
}

// F is shorthand for building field lists in schema literals.
func F(key string, s Node) Field { return Field{Key: key, Schema: s} }

// Mapping describes a JSON object shape: an ordered field list, the presence
// policy applied to those fields, and addends merged in via Combine. Extra
// keys in the candidate object are ignored.
type Mapping struct {
	fields  []Field
	policy  Policy
	addends []Mapping
	defect  error // construction defect, surfaced on first validation
}

// Primitive returns a schema node matching the given primitive kind.
// Primitive fields are implicitly nullable; see Validate.
func Primitive(k Kind) Node { return primitiveNode{kind: k} }

// Integer matches integral numeric values (a float with zero fractional part
// included).
func Integer() Node { return Primitive(KindInteger) }

// Float matches any numeric value.
func Float() Node { return Primitive(KindFloat) }

// Text matches textual values.
func Text() Node { return Primitive(KindText) }

// Pattern matches textual values accepted by re. Anchor the expression with
// ^ and $ unless a partial match is really intended.
func Pattern(re *regexp.Regexp) Node { return patternNode{re: re} }

// Any matches anything, including null; the enclosing Mapping has already
// established presence by the time an Any leaf is reached.
func Any() Node { return anyNode{} }

// SequenceOf matches a sequence whose every element matches elem.
func SequenceOf(elem Node) Node { return sequenceNode{elem: elem} }

// Optional wraps a node so that an absent or falsy candidate (null, false,
// numeric zero, empty text/sequence/mapping) is accepted without consulting
// inner. A truthy candidate must match inner. The falsy-absence rule is
// deliberate: empty-but-present values count as "not supplied".
func Optional(inner Node) Node { return optionalNode{inner: inner} }

// Required returns a Mapping whose fields must all be present.
func Required(fields ...Field) Mapping { return newMapping(PolicyRequired, fields) }

// OneOf returns a Mapping exactly one of whose fields must be present.
func OneOf(fields ...Field) Mapping { return newMapping(PolicyOneOf, fields) }

// AtLeastOne returns a Mapping at least one of whose fields must be present.
// Only the first present field in declaration order is validated; any other
// present fields pass unchecked.
func AtLeastOne(fields ...Field) Mapping { return newMapping(PolicyAtLeastOne, fields) }

func newMapping(p Policy, fields []Field) Mapping {
	fs := make([]Field, len(fields))
	copy(fs, fields)
	m := Mapping{fields: fs, policy: p}
	seen := make(map[string]struct{}, len(fs))
	for _, f := range fs {
		if _, dup := seen[f.Key]; dup {
			m.defect = fmt.Errorf("duplicate field key %q", f.Key)
			break
		}
		seen[f.Key] = struct{}{}
	}
	return m
}

// Combine returns a new Mapping equal to a with each b appended to a's
// addends. Operands are never mutated. Field keys must stay disjoint across
// the whole combine-chain; a collision is reported immediately as a
// SchemaDefinitionError rather than resolved by lookup order.
func Combine(a Mapping, bs ...Mapping) (Mapping, error) {
	out := a
	out.addends = make([]Mapping, len(a.addends), len(a.addends)+len(bs))
	copy(out.addends, a.addends)
	out.addends = append(out.addends, bs...)
	if err := out.firstDefect(); err != nil {
		return Mapping{}, schemaDefect("", err.Error())
	}
	if err := out.checkDisjoint(make(map[string]struct{})); err != nil {
		return Mapping{}, err
	}
	return out, nil
}

// MustCombine is Combine for schemas assembled at init time; it panics on a
// malformed chain.
func MustCombine(a Mapping, bs ...Mapping) Mapping {
	m, err := Combine(a, bs...)
	if err != nil {
		panic(err)
	}
	return m
}

// RequiredKeys returns the keys a candidate mapping must contain, in
// declaration order: the node's own field keys when its policy is
// PolicyRequired, then each addend's required keys in addend order. OneOf and
// AtLeastOne nodes contribute none of their own keys.
func (m Mapping) RequiredKeys() []string {
	var keys []string
	if m.policy == PolicyRequired {
		for _, f := range m.fields {
			keys = append(keys, f.Key)
		}
	}
	for _, ad := range m.addends {
		keys = append(keys, ad.RequiredKeys()...)
	}
	return keys
}

// OneOfGroups returns one key group per PolicyOneOf node in the combine-chain.
func (m Mapping) OneOfGroups() [][]string { return m.groups(PolicyOneOf) }

// AtLeastOneGroups returns one key group per PolicyAtLeastOne node in the
// combine-chain.
func (m Mapping) AtLeastOneGroups() [][]string { return m.groups(PolicyAtLeastOne) }

func (m Mapping) groups(p Policy) [][]string {
	var out [][]string
	if m.policy == p {
		g := make([]string, 0, len(m.fields))
		for _, f := range m.fields {
			g = append(g, f.Key)
		}
		out = append(out, g)
	}
	for _, ad := range m.addends {
		out = append(out, ad.groups(p)...)
	}
	return out
}

// Lookup resolves a key to its declared schema, searching the node's own
// fields first and then addends in addend order. Combine keeps keys disjoint,
// so at most one declaration can match.
func (m Mapping) Lookup(key string) (Node, bool) {
	for _, f := range m.fields {
		if f.Key == key {
			return f.Schema, true
		}
	}
	for _, ad := range m.addends {
		if n, ok := ad.Lookup(key); ok {
			return n, true
		}
	}
	return nil, false
}

// firstDefect returns the first construction defect recorded anywhere in the
// combine-chain.
func (m Mapping) firstDefect() error {
	if m.defect != nil {
		return m.defect
	}
	for _, ad := range m.addends {
		if err := ad.firstDefect(); err != nil {
			return err
		}
	}
	return nil
}

func (m Mapping) checkDisjoint(seen map[string]struct{}) error {
	for _, f := range m.fields {
		if _, dup := seen[f.Key]; dup {
			return schemaDefect("", fmt.Sprintf("key %q appears more than once across the combine-chain", f.Key))
		}
		seen[f.Key] = struct{}{}
	}
	for _, ad := range m.addends {
		if err := ad.checkDisjoint(seen); err != nil {
			return err
		}
	}
	return nil
}
