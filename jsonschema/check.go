package jsonschema

import (
	"encoding/json"
	"strconv"

	eng "github.com/reoring/jsonskema/internal/engine"
	"github.com/reoring/jsonskema/internal/jsonvalue"
)

// maxTreeDepth stops Check and Walk on trees that are nested absurdly deep,
// which in practice means a programmatic cycle.
const maxTreeDepth = 10000

func pointer(base string, tokens ...string) string {
	for _, t := range tokens {
		base = eng.JoinPointer(base, t)
	}
	return base
}

func itoa(i int) string { return strconv.Itoa(i) }

// Check verifies that a schema tree is well-formed:
//
//   - "type" names are known, unique and the set is non-empty
//   - enum, allOf, anyOf, oneOf and required are non-empty; required has no duplicates
//   - counts are non-negative and every min* is not above its max*
//   - multipleOf is strictly positive and numeric keywords hold valid numbers
//   - pattern and every patternProperties key compile as ECMA-262 expressions
//   - enum, const and default hold JSON values
//
// Check caches the compiled expressions on the nodes and rewrites enum,
// const and default values set from Go code into canonical JSON values. It returns SchemaErrors
// listing every problem, or nil.
func Check(s *Schema) error {
	if s == nil {
		return SchemaErrors{{Message: "schema is nil"}}
	}
	var errs SchemaErrors
	checkNode(s, "", 0, &errs)
	return errs.err()
}

func checkNode(s *Schema, path string, depth int, errs *SchemaErrors) {
	if depth > maxTreeDepth {
		errs.add(path, "", "schema nested deeper than %d levels", maxTreeDepth)
		return
	}
	if s.Bool != nil {
		return
	}

	if s.Type != nil {
		if len(s.Type) == 0 {
			errs.add(pointer(path, "type"), "type", "must not be empty")
		}
		seen := make(map[Type]bool, len(s.Type))
		for _, t := range s.Type {
			if !t.Valid() {
				errs.add(pointer(path, "type"), "type", "unknown type %q", string(t))
			}
			if seen[t] {
				errs.add(pointer(path, "type"), "type", "duplicate type %q", string(t))
			}
			seen[t] = true
		}
	}
	if s.Enum != nil && len(s.Enum) == 0 {
		errs.add(pointer(path, "enum"), "enum", "must not be empty")
	}
	checkValues(s, path, errs)
	if s.Required != nil {
		if len(s.Required) == 0 {
			errs.add(pointer(path, "required"), "required", "must not be empty")
		}
		seen := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			if seen[name] {
				errs.add(pointer(path, "required"), "required", "duplicate property %q", name)
			}
			seen[name] = true
		}
	}

	checkNumbers(s, path, errs)
	checkCounts(path, "minLength", "maxLength", s.MinLength, s.MaxLength, errs)
	checkCounts(path, "minItems", "maxItems", s.MinItems, s.MaxItems, errs)
	checkCounts(path, "minProperties", "maxProperties", s.MinProperties, s.MaxProperties, errs)

	for _, l := range compositionLists(s) {
		if l.schemas != nil && len(l.schemas) == 0 {
			errs.add(pointer(path, l.kw), l.kw, "must not be empty")
		}
	}

	s.compileRegexes(path, errs)

	eachChild(s, path, func(cp string, c *Schema) {
		if c == nil {
			errs.add(cp, "", "schema must not be null")
			return
		}
		checkNode(c, cp, depth+1, errs)
	})
}

// checkValues rewrites enum, const and default values given as arbitrary Go
// values (ints, typed slices, structs) into canonical JSON values, so
// equality against decoded instances holds.
func checkValues(s *Schema, path string, errs *SchemaErrors) {
	for i, e := range s.Enum {
		if jsonvalue.IsCanonical(e) {
			continue
		}
		nv, err := jsonvalue.Normalize(e)
		if err != nil {
			errs.add(pointer(path, "enum", itoa(i)), "enum", "not a JSON value: %v", err)
			continue
		}
		s.Enum[i] = nv
	}
	for _, kv := range []struct {
		kw string
		v  *any
	}{{"const", s.Const}, {"default", s.Default}} {
		if kv.v == nil || jsonvalue.IsCanonical(*kv.v) {
			continue
		}
		nv, err := jsonvalue.Normalize(*kv.v)
		if err != nil {
			errs.add(pointer(path, kv.kw), kv.kw, "not a JSON value: %v", err)
			continue
		}
		*kv.v = nv
	}
}

func checkNumbers(s *Schema, path string, errs *SchemaErrors) {
	nums := []struct {
		kw string
		n  *json.Number
	}{
		{"multipleOf", s.MultipleOf},
		{"minimum", s.Minimum},
		{"maximum", s.Maximum},
		{"exclusiveMinimum", s.ExclusiveMinimum},
		{"exclusiveMaximum", s.ExclusiveMaximum},
	}
	valid := true
	for _, e := range nums {
		if e.n != nil && !jsonvalue.ValidNumber(string(*e.n)) {
			errs.add(pointer(path, e.kw), e.kw, "invalid number %q", string(*e.n))
			valid = false
		}
	}
	if !valid {
		return
	}
	if s.MultipleOf != nil {
		if sign, _ := jsonvalue.Sign(*s.MultipleOf); sign <= 0 {
			errs.add(pointer(path, "multipleOf"), "multipleOf", "must be greater than 0")
		}
	}
	if s.Minimum != nil && s.Maximum != nil {
		if c, ok := jsonvalue.Compare(*s.Minimum, *s.Maximum); ok && c > 0 {
			errs.add(pointer(path, "minimum"), "minimum", "minimum %s is greater than maximum %s", *s.Minimum, *s.Maximum)
		}
	}
}

func checkCounts(path, minKw, maxKw string, lo, hi *int, errs *SchemaErrors) {
	if lo != nil && *lo < 0 {
		errs.add(pointer(path, minKw), minKw, "must be non-negative")
	}
	if hi != nil && *hi < 0 {
		errs.add(pointer(path, maxKw), maxKw, "must be non-negative")
	}
	if lo != nil && hi != nil && *lo > *hi {
		errs.add(pointer(path, minKw), minKw, "%s %d is greater than %s %d", minKw, *lo, maxKw, *hi)
	}
}

// eachChild calls fn for every direct sub-schema of s with its schema
// pointer, in serialization order.
func eachChild(s *Schema, path string, fn func(ptr string, c *Schema)) {
	if s.Items != nil {
		if s.Items.IsTuple() {
			for i, c := range s.Items.Tuple {
				fn(pointer(path, "items", itoa(i)), c)
			}
		} else {
			fn(pointer(path, "items"), s.Items.Schema)
		}
	}
	single := func(kw string, c *Schema) {
		if c != nil {
			fn(pointer(path, kw), c)
		}
	}
	single("additionalItems", s.AdditionalItems)
	single("contains", s.Contains)
	for name, c := range s.Properties.All() {
		fn(pointer(path, "properties", name), c)
	}
	for expr, c := range s.PatternProperties.All() {
		fn(pointer(path, "patternProperties", expr), c)
	}
	single("additionalProperties", s.AdditionalProperties)
	for name, d := range s.Dependencies.All() {
		if d.Schema != nil {
			fn(pointer(path, "dependencies", name), d.Schema)
		}
	}
	single("propertyNames", s.PropertyNames)
	single("if", s.If)
	single("then", s.Then)
	single("else", s.Else)
	for _, l := range compositionLists(s) {
		for i, c := range l.schemas {
			fn(pointer(path, l.kw, itoa(i)), c)
		}
	}
	single("not", s.Not)
	for name, c := range s.Definitions.All() {
		fn(pointer(path, "definitions", name), c)
	}
}

type schemaList struct {
	kw      string
	schemas []*Schema
}

func compositionLists(s *Schema) [3]schemaList {
	return [3]schemaList{{"allOf", s.AllOf}, {"anyOf", s.AnyOf}, {"oneOf", s.OneOf}}
}

// Walk visits s and every sub-schema in pre-order, passing each node's JSON
// Pointer within the schema document. Returning a non-nil error stops the
// walk and is returned from Walk. Boolean schemas are visited too.
func Walk(s *Schema, fn func(ptr string, node *Schema) error) error {
	return walk(s, "", 0, fn)
}

func walk(s *Schema, path string, depth int, fn func(string, *Schema) error) error {
	if s == nil {
		return nil
	}
	if depth > maxTreeDepth {
		return &SchemaError{Path: path, Message: "schema nested too deeply"}
	}
	if err := fn(path, s); err != nil {
		return err
	}
	if s.Bool != nil {
		return nil
	}
	var err error
	eachChild(s, path, func(cp string, c *Schema) {
		if err == nil {
			err = walk(c, cp, depth+1, fn)
		}
	})
	return err
}
