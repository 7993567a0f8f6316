package jsonschema

import (
	"encoding/json"
	"sort"

	gojson "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/reoring/jsonskema/internal/jsonvalue"
)

// MarshalJSON renders the schema with a stable keyword order: identifiers
// and annotations first, then type-generic, numeric, string, array, object
// and composition keywords, definitions, and finally Extra keys sorted by
// name. Properties keep their declaration order.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(s.ordered())
}

// Document returns the schema as a generic document (bool or
// map[string]any with json.Number numbers) accepted by FromDocument.
func (s *Schema) Document() any {
	v, err := jsonvalue.Normalize(s.ordered())
	if err != nil {
		// ordered() only produces JSON-representable values
		panic("jsonschema: " + err.Error())
	}
	return v
}

func (s *Schema) ordered() any {
	if s == nil {
		return nil
	}
	if s.Bool != nil {
		return *s.Bool
	}
	d := orderedmap.New[string, any]()
	str := func(k, v string) {
		if v != "" {
			d.Set(k, v)
		}
	}
	flag := func(k string, v bool) {
		if v {
			d.Set(k, v)
		}
	}
	num := func(k string, n *json.Number) {
		if n != nil {
			d.Set(k, *n)
		}
	}
	count := func(k string, n *int) {
		if n != nil {
			d.Set(k, *n)
		}
	}
	child := func(k string, c *Schema) {
		if c != nil {
			d.Set(k, c.ordered())
		}
	}
	list := func(k string, cs []*Schema) {
		if cs != nil {
			out := make([]any, len(cs))
			for i, c := range cs {
				out[i] = c.ordered()
			}
			d.Set(k, out)
		}
	}
	props := func(k string, m *Properties) {
		if m == nil {
			return
		}
		pd := orderedmap.New[string, any]()
		for name, c := range m.All() {
			pd.Set(name, c.ordered())
		}
		d.Set(k, pd)
	}

	str("$schema", s.SchemaURI)
	str("$id", s.ID)
	str("$ref", s.Ref)
	str("$comment", s.Comment)
	str("title", s.Title)
	str("description", s.Description)
	switch len(s.Type) {
	case 0:
		if s.Type != nil {
			d.Set("type", []any{})
		}
	case 1:
		d.Set("type", string(s.Type[0]))
	default:
		ts := make([]any, len(s.Type))
		for i, t := range s.Type {
			ts[i] = string(t)
		}
		d.Set("type", ts)
	}
	if s.Enum != nil {
		d.Set("enum", s.Enum)
	}
	if s.Const != nil {
		d.Set("const", *s.Const)
	}
	if s.Default != nil {
		d.Set("default", *s.Default)
	}
	if s.Examples != nil {
		d.Set("examples", s.Examples)
	}
	flag("readOnly", s.ReadOnly)
	flag("writeOnly", s.WriteOnly)

	num("multipleOf", s.MultipleOf)
	num("maximum", s.Maximum)
	num("exclusiveMaximum", s.ExclusiveMaximum)
	num("minimum", s.Minimum)
	num("exclusiveMinimum", s.ExclusiveMinimum)

	count("maxLength", s.MaxLength)
	count("minLength", s.MinLength)
	str("pattern", s.Pattern)
	str("format", s.Format)
	str("contentEncoding", s.ContentEncoding)
	str("contentMediaType", s.ContentMediaType)

	if s.Items != nil {
		if s.Items.IsTuple() {
			list("items", nonNil(s.Items.Tuple))
		} else {
			child("items", s.Items.Schema)
		}
	}
	child("additionalItems", s.AdditionalItems)
	count("maxItems", s.MaxItems)
	count("minItems", s.MinItems)
	flag("uniqueItems", s.UniqueItems)
	child("contains", s.Contains)

	count("maxProperties", s.MaxProperties)
	count("minProperties", s.MinProperties)
	if s.Required != nil {
		d.Set("required", s.Required)
	}
	props("properties", s.Properties)
	props("patternProperties", s.PatternProperties)
	child("additionalProperties", s.AdditionalProperties)
	if s.Dependencies != nil {
		dd := orderedmap.New[string, any]()
		for name, dep := range s.Dependencies.All() {
			if dep.Schema != nil {
				dd.Set(name, dep.Schema.ordered())
				continue
			}
			names := dep.Required
			if names == nil {
				names = []string{}
			}
			dd.Set(name, names)
		}
		d.Set("dependencies", dd)
	}
	child("propertyNames", s.PropertyNames)

	child("if", s.If)
	child("then", s.Then)
	child("else", s.Else)
	list("allOf", s.AllOf)
	list("anyOf", s.AnyOf)
	list("oneOf", s.OneOf)
	child("not", s.Not)

	props("definitions", s.Definitions)

	if len(s.Extra) > 0 {
		keys := make([]string, 0, len(s.Extra))
		for k := range s.Extra {
			if _, taken := d.Get(k); !taken {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			d.Set(k, s.Extra[k])
		}
	}
	return d
}

func nonNil(cs []*Schema) []*Schema {
	if cs == nil {
		return []*Schema{}
	}
	return cs
}
