package jsonschema

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	eng "github.com/reoring/jsonskema/internal/engine"
	"github.com/reoring/jsonskema/internal/jsonvalue"
	"github.com/reoring/jsonskema/source/gojson"
)

// MaxDocumentDepth bounds the nesting of schema documents read by ParseJSON
// and ParseReader.
const MaxDocumentDepth = 512

// FromDocument builds a schema tree from a decoded document: a boolean, a
// map[string]any, an ordered map produced by ParseJSON or ParseYAML, or any Go
// value that marshals to a JSON object. The resulting tree is checked with
// Check. All construction problems are reported together as SchemaErrors.
func FromDocument(doc any) (*Schema, error) {
	var p parser
	s := p.schema(doc, "")
	if err := p.errs.err(); err != nil {
		return nil, err
	}
	if err := Check(s); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseJSON decodes a JSON schema document. Duplicate object keys are
// rejected and declared property order is preserved.
func ParseJSON(b []byte) (*Schema, error) {
	src := eng.WrapWithEnforcement(gojson.NewBytes(b), eng.EnforceOptions{
		OnDuplicate: eng.DupError,
		MaxDepth:    MaxDocumentDepth,
	})
	doc, err := eng.DecodeOrderedDocument(src)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: decode: %w", err)
	}
	return FromDocument(doc)
}

// ParseReader reads r fully and parses it with ParseJSON.
func ParseReader(r io.Reader) (*Schema, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseJSON(b)
}

// UnmarshalJSON implements json.Unmarshaler via ParseJSON.
func (s *Schema) UnmarshalJSON(b []byte) error {
	parsed, err := ParseJSON(b)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

type parser struct {
	errs SchemaErrors
}

type entry struct {
	key string
	val any
}

// objectEntries lists the members of an object document; plain maps are
// visited in sorted key order.
func objectEntries(v any) ([]entry, bool) {
	switch m := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]entry, len(keys))
		for i, k := range keys {
			out[i] = entry{k, m[k]}
		}
		return out, true
	case *orderedmap.OrderedMap[string, any]:
		if m == nil {
			return nil, false
		}
		out := make([]entry, 0, m.Len())
		for p := m.Oldest(); p != nil; p = p.Next() {
			out = append(out, entry{p.Key, p.Value})
		}
		return out, true
	}
	return nil, false
}

func kindName(v any) string {
	if _, ok := v.(*orderedmap.OrderedMap[string, any]); ok {
		return "object"
	}
	nv, err := jsonvalue.Normalize(v)
	if err != nil {
		return fmt.Sprintf("%T", v)
	}
	return jsonvalue.KindOf(nv).String()
}

func (p *parser) schema(doc any, path string) *Schema {
	if b, ok := doc.(bool); ok {
		return Bool(b)
	}
	ents, ok := objectEntries(doc)
	if !ok {
		if nv, err := jsonvalue.Normalize(doc); err == nil {
			if b, isBool := nv.(bool); isBool {
				return Bool(b)
			}
			ents, ok = objectEntries(nv)
		}
	}
	if !ok {
		p.errs.add(path, "", "schema must be an object or a boolean, got %s", kindName(doc))
		return &Schema{}
	}
	s := &Schema{}
	for _, e := range ents {
		p.keyword(s, e.key, e.val, pointer(path, e.key))
	}
	return s
}

func (p *parser) keyword(s *Schema, key string, val any, kp string) {
	switch key {
	case "$id":
		s.ID = p.str(val, kp, key)
	case "$schema":
		s.SchemaURI = p.str(val, kp, key)
	case "$ref":
		s.Ref = p.str(val, kp, key)
	case "$comment":
		s.Comment = p.str(val, kp, key)
	case "title":
		s.Title = p.str(val, kp, key)
	case "description":
		s.Description = p.str(val, kp, key)
	case "default":
		s.Default = p.value(val, kp, key)
	case "examples":
		if arr, ok := p.array(val, kp, key); ok {
			s.Examples = make([]any, 0, len(arr))
			for i, item := range arr {
				if v := p.value(item, pointer(kp, itoa(i)), key); v != nil {
					s.Examples = append(s.Examples, *v)
				}
			}
		}
	case "readOnly":
		s.ReadOnly = p.boolean(val, kp, key)
	case "writeOnly":
		s.WriteOnly = p.boolean(val, kp, key)
	case "type":
		s.Type = p.types(val, kp)
	case "enum":
		if arr, ok := p.array(val, kp, key); ok {
			s.Enum = make([]any, 0, len(arr))
			for i, item := range arr {
				if v := p.value(item, pointer(kp, itoa(i)), key); v != nil {
					s.Enum = append(s.Enum, *v)
				}
			}
		}
	case "const":
		s.Const = p.value(val, kp, key)
	case "multipleOf":
		s.MultipleOf = p.number(val, kp, key)
	case "minimum":
		s.Minimum = p.number(val, kp, key)
	case "maximum":
		s.Maximum = p.number(val, kp, key)
	case "exclusiveMinimum":
		s.ExclusiveMinimum = p.number(val, kp, key)
	case "exclusiveMaximum":
		s.ExclusiveMaximum = p.number(val, kp, key)
	case "minLength":
		s.MinLength = p.count(val, kp, key)
	case "maxLength":
		s.MaxLength = p.count(val, kp, key)
	case "pattern":
		s.Pattern = p.str(val, kp, key)
	case "format":
		s.Format = p.str(val, kp, key)
	case "contentEncoding":
		s.ContentEncoding = p.str(val, kp, key)
	case "contentMediaType":
		s.ContentMediaType = p.str(val, kp, key)
	case "items":
		if arr, ok := val.([]any); ok {
			s.Items = &Items{Tuple: p.schemaList(arr, kp)}
		} else {
			s.Items = &Items{Schema: p.schema(val, kp)}
		}
	case "additionalItems":
		s.AdditionalItems = p.schema(val, kp)
	case "minItems":
		s.MinItems = p.count(val, kp, key)
	case "maxItems":
		s.MaxItems = p.count(val, kp, key)
	case "uniqueItems":
		s.UniqueItems = p.boolean(val, kp, key)
	case "contains":
		s.Contains = p.schema(val, kp)
	case "minProperties":
		s.MinProperties = p.count(val, kp, key)
	case "maxProperties":
		s.MaxProperties = p.count(val, kp, key)
	case "required":
		s.Required = p.strings(val, kp, key)
	case "properties":
		s.Properties = p.properties(val, kp, key)
	case "patternProperties":
		s.PatternProperties = p.properties(val, kp, key)
	case "definitions":
		s.Definitions = p.properties(val, kp, key)
	case "additionalProperties":
		s.AdditionalProperties = p.schema(val, kp)
	case "dependencies":
		s.Dependencies = p.dependencies(val, kp)
	case "propertyNames":
		s.PropertyNames = p.schema(val, kp)
	case "allOf":
		if arr, ok := p.array(val, kp, key); ok {
			s.AllOf = p.schemaList(arr, kp)
		}
	case "anyOf":
		if arr, ok := p.array(val, kp, key); ok {
			s.AnyOf = p.schemaList(arr, kp)
		}
	case "oneOf":
		if arr, ok := p.array(val, kp, key); ok {
			s.OneOf = p.schemaList(arr, kp)
		}
	case "not":
		s.Not = p.schema(val, kp)
	case "if":
		s.If = p.schema(val, kp)
	case "then":
		s.Then = p.schema(val, kp)
	case "else":
		s.Else = p.schema(val, kp)
	default:
		if v := p.value(val, kp, key); v != nil {
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra[key] = *v
		}
	}
}

func (p *parser) value(val any, kp, key string) *any {
	nv, err := jsonvalue.Normalize(val)
	if err != nil {
		p.errs.add(kp, key, "unsupported value: %v", err)
		return nil
	}
	return &nv
}

func (p *parser) str(val any, kp, key string) string {
	s, ok := val.(string)
	if !ok {
		p.errs.add(kp, key, "must be a string, got %s", kindName(val))
	}
	return s
}

func (p *parser) boolean(val any, kp, key string) bool {
	b, ok := val.(bool)
	if !ok {
		p.errs.add(kp, key, "must be a boolean, got %s", kindName(val))
	}
	return b
}

func (p *parser) array(val any, kp, key string) ([]any, bool) {
	if arr, ok := val.([]any); ok {
		return arr, true
	}
	if nv, err := jsonvalue.Normalize(val); err == nil {
		if arr, ok := nv.([]any); ok {
			return arr, true
		}
	}
	p.errs.add(kp, key, "must be an array, got %s", kindName(val))
	return nil, false
}

func (p *parser) number(val any, kp, key string) *json.Number {
	nv, err := jsonvalue.Normalize(val)
	n, ok := nv.(json.Number)
	if err != nil || !ok {
		p.errs.add(kp, key, "must be a number, got %s", kindName(val))
		return nil
	}
	return &n
}

func (p *parser) count(val any, kp, key string) *int {
	n := p.number(val, kp, key)
	if n == nil {
		return nil
	}
	if !jsonvalue.IsInteger(*n) {
		p.errs.add(kp, key, "must be an integer, got %s", string(*n))
		return nil
	}
	r, ok := jsonvalue.Rat(*n)
	if !ok || !r.Num().IsInt64() {
		p.errs.add(kp, key, "value %s out of range", string(*n))
		return nil
	}
	i := r.Num().Int64()
	if i > math.MaxInt32 || i < math.MinInt32 {
		p.errs.add(kp, key, "value %s out of range", string(*n))
		return nil
	}
	c := int(i)
	return &c
}

func (p *parser) strings(val any, kp, key string) []string {
	arr, ok := p.array(val, kp, key)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			p.errs.add(pointer(kp, itoa(i)), key, "must be a string, got %s", kindName(item))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (p *parser) types(val any, kp string) TypeSet {
	if s, ok := val.(string); ok {
		return TypeSet{Type(s)}
	}
	arr, ok := p.array(val, kp, "type")
	if !ok {
		return nil
	}
	ts := make(TypeSet, 0, len(arr))
	for i, item := range arr {
		s, ok := item.(string)
		if !ok {
			p.errs.add(pointer(kp, itoa(i)), "type", "must be a string, got %s", kindName(item))
			continue
		}
		ts = append(ts, Type(s))
	}
	return ts
}

func (p *parser) schemaList(arr []any, kp string) []*Schema {
	out := make([]*Schema, len(arr))
	for i, item := range arr {
		out[i] = p.schema(item, pointer(kp, itoa(i)))
	}
	return out
}

func (p *parser) properties(val any, kp, key string) *Properties {
	ents, ok := objectEntries(val)
	if !ok {
		if nv, err := jsonvalue.Normalize(val); err == nil {
			ents, ok = objectEntries(nv)
		}
	}
	if !ok {
		p.errs.add(kp, key, "must be an object, got %s", kindName(val))
		return nil
	}
	props := NewProperties()
	for _, e := range ents {
		props.Set(e.key, p.schema(e.val, pointer(kp, e.key)))
	}
	return props
}

func (p *parser) dependencies(val any, kp string) *Dependencies {
	ents, ok := objectEntries(val)
	if !ok {
		p.errs.add(kp, "dependencies", "must be an object, got %s", kindName(val))
		return nil
	}
	deps := NewDependencies()
	for _, e := range ents {
		ep := pointer(kp, e.key)
		if _, isArr := e.val.([]any); isArr {
			deps.Set(e.key, Dependency{Required: p.strings(e.val, ep, "dependencies")})
			continue
		}
		deps.Set(e.key, Dependency{Schema: p.schema(e.val, ep)})
	}
	return deps
}
