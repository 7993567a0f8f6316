// Package kubeopenapi imports Kubernetes OpenAPI v3 schemas (CRD
// openAPIV3Schema blocks) as Draft-07 schema trees for jsonskema.
//
// The Kubernetes vendor extensions are lowered onto plain keywords:
// nullable adds "null" to the type, x-kubernetes-int-or-string becomes an
// anyOf of integer and string, and x-kubernetes-list-type=set becomes
// uniqueItems. What Draft-07 cannot express (CEL rules, list-map key
// uniqueness) is reported through Diag instead of failing the import.
package kubeopenapi

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"

	j "github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	eng "github.com/reoring/jsonskema/internal/engine"
	"github.com/reoring/jsonskema/jsonschema"
	"github.com/reoring/jsonskema/source/gojson"
)

// Kubernetes schema extensions recognized by Import.
const (
	extNullable        = "nullable"
	extIntOrString     = "x-kubernetes-int-or-string"
	extPreserveUnknown = "x-kubernetes-preserve-unknown-fields"
	extEmbedded        = "x-kubernetes-embedded-resource"
	extListType        = "x-kubernetes-list-type"
	extListMapKeys     = "x-kubernetes-list-map-keys"
	extValidations     = "x-kubernetes-validations"
)

type object = orderedmap.OrderedMap[string, any]

// Import converts an OpenAPI v3 schema into a Draft-07 schema tree.
//
// doc may be raw JSON or YAML bytes, a decoded map[string]any, an ordered
// map, or any value go-json can marshal. A full CRD document is accepted
// too: the schema of the first served version is used, falling back to the
// legacy spec.validation block.
func Import(doc any, opts Options) (*jsonschema.Schema, Diag, error) {
	d := &simpleDiag{}
	if opts.Profile == "" {
		opts.Profile = ProfileStructuralV1
	}
	if doc == nil {
		return nil, d, errors.New("kubeopenapi: nil schema")
	}
	root, err := loadDocument(doc)
	if err != nil {
		return nil, d, err
	}

	// Accept direct schema (openAPIV3Schema) or unwrap CRD root (spec.versions[].schema.openAPIV3Schema)
	if oas := asObject(get(root, "openAPIV3Schema")); oas != nil {
		root = oas
	} else if oas := unwrapCRDSchema(root); oas != nil {
		root = oas
	}

	expandRefs(root, d)

	s, err := jsonschema.FromDocument(root)
	if err != nil {
		return nil, d, fmt.Errorf("kubeopenapi: %w", err)
	}
	warnNonObjectRoot(s, d)

	rw := rewriter{opts: opts, d: d}
	if err := jsonschema.Walk(s, rw.node); err != nil {
		return nil, d, fmt.Errorf("kubeopenapi: %w", err)
	}
	if err := jsonschema.Check(s); err != nil {
		return nil, d, fmt.Errorf("kubeopenapi: %w", err)
	}
	return s, d, nil
}

// unwrapCRDSchema tries to extract openAPIV3Schema from a Kubernetes CRD document.
// It looks for spec.versions[].schema.openAPIV3Schema (preferring served=true),
// then falls back to spec.validation.openAPIV3Schema for legacy specs.
func unwrapCRDSchema(root *object) *object {
	spec := asObject(get(root, "spec"))
	if spec == nil {
		return nil
	}
	if vers, ok := get(spec, "versions").([]any); ok {
		var firstFound *object
		for _, v := range vers {
			vm := asObject(v)
			if vm == nil {
				continue
			}
			served := true
			if sv, ok := get(vm, "served").(bool); ok {
				served = sv
			}
			oas := asObject(get(asObject(get(vm, "schema")), "openAPIV3Schema"))
			if oas == nil {
				continue
			}
			if served {
				return oas
			}
			if firstFound == nil {
				firstFound = oas
			}
		}
		if firstFound != nil {
			return firstFound
		}
	}
	// legacy: spec.validation.openAPIV3Schema
	return asObject(get(asObject(get(spec, "validation")), "openAPIV3Schema"))
}

// warnNonObjectRoot warns when the root declares a non-object type.
func warnNonObjectRoot(s *jsonschema.Schema, d *simpleDiag) {
	if len(s.Type) > 0 && !s.Type.Has(jsonschema.TypeObject) {
		d.warnf("non-object type at root: %s", strings.Join(s.Type.Strings(), ", "))
	}
}

type rewriter struct {
	opts Options
	d    *simpleDiag
}

// node lowers the Kubernetes extensions of one schema node. Walk visits
// nodes added here afterwards; none of them carry extensions.
func (r *rewriter) node(ptr string, s *jsonschema.Schema) error {
	if _, ok := s.IsBool(); ok {
		return nil
	}
	at := "#" + ptr
	nullable := flag(s, extNullable)
	preserve := flag(s, extPreserveUnknown)

	if flag(s, extIntOrString) {
		intOrString(s, nullable)
	} else if nullable {
		allowNull(s)
	}
	listType(s, at, r.d)
	if r.opts.EnableEmbeddedChecks && flag(s, extEmbedded) {
		embedResource(s)
	}
	if rules, ok := s.Extra[extValidations].([]any); ok && len(rules) > 0 {
		r.d.warnf("%d x-kubernetes-validations rule(s) at %s are not evaluated", len(rules), at)
	}

	if r.opts.Unknown == UnknownStrict && !preserve && s.Properties.Len() > 0 && s.AdditionalProperties == nil {
		s.AdditionalProperties = jsonschema.False()
	}
	if r.opts.DefaultMode == DefaultIgnore {
		s.Default = nil
	}
	if r.opts.Profile == ProfileStructuralV1 && len(s.Type) == 0 && !preserve &&
		!flag(s, extIntOrString) && structuralPosition(ptr) {
		r.d.warnf("non-structural schema at %s: missing type", at)
	}
	return nil
}

// structuralPosition reports whether ptr names a node Kubernetes requires a
// type on: a property, an items schema or an additionalProperties schema.
func structuralPosition(ptr string) bool {
	toks := strings.Split(ptr, "/")
	n := len(toks)
	switch {
	case n >= 3 && toks[n-2] == "properties" && toks[n-3] != "properties":
		return true
	case n >= 2 && (toks[n-1] == "items" || toks[n-1] == "additionalProperties"):
		return true
	}
	return false
}

func flag(s *jsonschema.Schema, ext string) bool {
	b, _ := s.Extra[ext].(bool)
	return b
}

func allowNull(s *jsonschema.Schema) {
	if len(s.Type) > 0 && !s.Type.Has(jsonschema.TypeNull) {
		s.Type = append(s.Type, jsonschema.TypeNull)
	}
	if s.Enum != nil && !slices.Contains(s.Enum, nil) {
		s.Enum = append(s.Enum, nil)
	}
}

func intOrString(s *jsonschema.Schema, nullable bool) {
	branches := []*jsonschema.Schema{
		jsonschema.Types(jsonschema.TypeInteger),
		jsonschema.Types(jsonschema.TypeString),
	}
	if nullable {
		branches = append(branches, jsonschema.Types(jsonschema.TypeNull))
	}
	s.AnyOf = append(s.AnyOf, branches...)
}

func loadDocument(doc any) (*object, error) {
	var v any
	switch t := doc.(type) {
	case []byte:
		var err error
		if v, err = decodeBytes(t); err != nil {
			return nil, err
		}
	case *object:
		v = deepCopy(t)
	default:
		// decoded maps and structs take a JSON round trip; map keys come
		// back sorted
		b, err := j.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("kubeopenapi: cannot marshal input: %w", err)
		}
		if v, err = decodeBytes(b); err != nil {
			return nil, err
		}
	}
	m := asObject(v)
	if m == nil {
		return nil, fmt.Errorf("kubeopenapi: schema document must be an object, got %T", v)
	}
	return m, nil
}

// decodeBytes reads JSON when the input looks like an object literal and
// YAML otherwise. Duplicate keys are rejected in both.
func decodeBytes(b []byte) (any, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		src := eng.WrapWithEnforcement(gojson.NewBytes(trimmed), eng.EnforceOptions{OnDuplicate: eng.DupError})
		v, err := eng.DecodeOrderedDocument(src)
		if err != nil {
			return nil, fmt.Errorf("kubeopenapi: invalid JSON: %w", err)
		}
		return v, nil
	}
	r := jsonschema.NewStrictYAMLReader(bytes.NewReader(b))
	r.Ordered = true
	v, err := r.Next()
	if err != nil {
		return nil, fmt.Errorf("kubeopenapi: invalid YAML: %w", err)
	}
	return v, nil
}

func asObject(v any) *object {
	m, _ := v.(*object)
	return m
}

func get(m *object, key string) any {
	if m == nil {
		return nil
	}
	v, _ := m.Get(key)
	return v
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case *object:
		out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](t.Len()))
		for p := t.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, deepCopy(p.Value))
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = deepCopy(t[i])
		}
		return out
	}
	return v
}
