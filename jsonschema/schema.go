// Package jsonschema models Draft-07 JSON Schema documents as an in-memory
// tree. It builds trees from generic documents (JSON, YAML or decoded Go
// values), serializes them back with a stable keyword order and checks them
// for well-formedness. Validation of instances lives in the root jsonskema
// package.
//
// A tree is built once and treated as immutable afterwards. Check (or any of
// the parse functions, which call it) caches compiled regular expressions on
// the nodes; do not mutate a tree while it is being validated.
package jsonschema

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/reoring/jsonskema/internal/jsonvalue"
)

// Type is a Draft-07 primitive type name.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeBoolean Type = "boolean"
	TypeNull    Type = "null"
)

// Valid reports whether t is one of the seven Draft-07 type names.
func (t Type) Valid() bool {
	switch t {
	case TypeString, TypeNumber, TypeInteger, TypeObject, TypeArray, TypeBoolean, TypeNull:
		return true
	}
	return false
}

// TypeSet is the ordered value of the "type" keyword. A nil set means the
// keyword is absent.
type TypeSet []Type

// Has reports whether t is listed verbatim.
func (ts TypeSet) Has(t Type) bool { return slices.Contains(ts, t) }

// Accepts reports whether a canonical instance value satisfies the set.
// "number" accepts every numeric value; "integer" only those without a
// fractional part.
func (ts TypeSet) Accepts(v any) bool {
	switch jsonvalue.KindOf(v) {
	case jsonvalue.Null:
		return ts.Has(TypeNull)
	case jsonvalue.Boolean:
		return ts.Has(TypeBoolean)
	case jsonvalue.String:
		return ts.Has(TypeString)
	case jsonvalue.Array:
		return ts.Has(TypeArray)
	case jsonvalue.Object:
		return ts.Has(TypeObject)
	case jsonvalue.Number:
		if ts.Has(TypeNumber) {
			return true
		}
		return ts.Has(TypeInteger) && jsonvalue.IsInteger(v.(json.Number))
	}
	return false
}

// Strings returns the type names as plain strings.
func (ts TypeSet) Strings() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = string(t)
	}
	return out
}

// Items is the value of the "items" keyword: either one schema applied to
// every element or a tuple of positional schemas.
type Items struct {
	Schema *Schema
	Tuple  []*Schema
}

// IsTuple reports whether the positional form is in use.
func (it *Items) IsTuple() bool { return it != nil && it.Schema == nil }

// Dependency is one entry of "dependencies": a list of property names that
// must also be present, or a schema the whole object must satisfy.
type Dependency struct {
	Required []string
	Schema   *Schema
}

// Properties maps property names (or patterns) to schemas in declaration order.
type Properties = OrderedMap[*Schema]

// Dependencies maps trigger property names to dependencies in declaration order.
type Dependencies = OrderedMap[Dependency]

// NewProperties returns an empty ordered property map.
func NewProperties() *Properties { return NewOrderedMap[*Schema]() }

// NewDependencies returns an empty ordered dependency map.
func NewDependencies() *Dependencies { return NewOrderedMap[Dependency]() }

// Schema is one Draft-07 schema node. The zero value is the empty schema,
// which accepts everything. When Bool is set the node is the boolean form
// ("true" or "false") and every other field is ignored.
type Schema struct {
	Bool *bool

	// Core and annotations
	ID          string
	SchemaURI   string
	Ref         string
	Comment     string
	Title       string
	Description string
	Default     *any
	Examples    []any
	ReadOnly    bool
	WriteOnly   bool

	// Any instance type
	Type  TypeSet
	Enum  []any
	Const *any

	// Numbers
	MultipleOf       *json.Number
	Minimum          *json.Number
	Maximum          *json.Number
	ExclusiveMinimum *json.Number
	ExclusiveMaximum *json.Number

	// Strings
	MinLength        *int
	MaxLength        *int
	Pattern          string
	Format           string
	ContentEncoding  string
	ContentMediaType string

	// Arrays
	Items           *Items
	AdditionalItems *Schema
	MinItems        *int
	MaxItems        *int
	UniqueItems     bool
	Contains        *Schema

	// Objects
	MinProperties        *int
	MaxProperties        *int
	Required             []string
	Properties           *Properties
	PatternProperties    *Properties
	AdditionalProperties *Schema
	Dependencies         *Dependencies
	PropertyNames        *Schema

	// Composition and conditionals
	AllOf []*Schema
	AnyOf []*Schema
	OneOf []*Schema
	Not   *Schema
	If    *Schema
	Then  *Schema
	Else  *Schema

	// Definitions are kept for round-tripping; the validator never visits them.
	Definitions *Properties
	// Extra holds keywords this package does not interpret (x-* extensions,
	// vendor keywords). They are serialized back verbatim.
	Extra map[string]any

	regex *regexCache
}

// True returns the boolean schema that accepts every instance.
func True() *Schema { return Bool(true) }

// False returns the boolean schema that rejects every instance.
func False() *Schema { return Bool(false) }

// Bool returns the boolean schema form.
func Bool(b bool) *Schema { return &Schema{Bool: &b} }

// Types returns a schema constrained to the given types.
func Types(ts ...Type) *Schema { return &Schema{Type: TypeSet(ts)} }

// Num returns a numeric keyword value.
func Num(f float64) *json.Number {
	n, ok := jsonvalue.FromFloat(f)
	if !ok {
		panic("jsonschema: Num called with a non-finite value")
	}
	return &n
}

// NumString returns a numeric keyword value from its decimal text, keeping
// the exact value (e.g. "0.1"). It panics on malformed input.
func NumString(s string) *json.Number {
	if !jsonvalue.ValidNumber(s) {
		panic("jsonschema: NumString called with " + strconv.Quote(s))
	}
	n := json.Number(s)
	return &n
}

// Int returns a count keyword value (minLength, maxItems, ...).
func Int(n int) *int { return &n }

// Value wraps a value for Const or Default. The value is normalized into the
// canonical JSON form; it panics when v has no JSON representation.
func Value(v any) *any {
	nv, err := jsonvalue.Normalize(v)
	if err != nil {
		panic("jsonschema: " + err.Error())
	}
	return &nv
}

// IsBool reports whether s is a boolean schema; b is its value.
func (s *Schema) IsBool() (b, ok bool) {
	if s == nil || s.Bool == nil {
		return false, false
	}
	return *s.Bool, true
}
