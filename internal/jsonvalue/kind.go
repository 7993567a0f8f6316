// Package jsonvalue holds helpers for generic JSON instance values: kind
// detection, normalization of Go values into the canonical decoded form,
// exact number handling, and structural equality.
//
// The canonical form is what a UseNumber decoder produces: nil, bool, string,
// json.Number, []any and map[string]any.
package jsonvalue

import (
	"encoding/json"
)

// Kind is the runtime JSON kind of an instance value.
type Kind int

const (
	Invalid Kind = iota
	Null
	Boolean
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// KindOf reports the kind of a canonical value. Values outside the canonical
// form report Invalid; run Normalize first when the input is arbitrary.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case bool:
		return Boolean
	case json.Number:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return Invalid
	}
}

// TypeName returns the Draft-07 type name of a canonical value. Numbers
// without a fractional part report "integer".
func TypeName(v any) string {
	k := KindOf(v)
	if k == Number && IsInteger(v.(json.Number)) {
		return "integer"
	}
	return k.String()
}
