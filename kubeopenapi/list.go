package kubeopenapi

import (
	"slices"

	"github.com/reoring/jsonskema/jsonschema"
)

// listType lowers x-kubernetes-list-type. A set becomes uniqueItems. For a
// map list the key fields become required on the item schema, unless the
// item declares a default for them; key uniqueness has no Draft-07 form
// and is reported instead.
func listType(s *jsonschema.Schema, at string, d *simpleDiag) {
	lt, _ := s.Extra[extListType].(string)
	switch lt {
	case "", "atomic":
	case "set":
		s.UniqueItems = true
	case "map":
		keys := stringList(s.Extra[extListMapKeys])
		if len(keys) == 0 {
			d.warnf("list-type map at %s declares no %s", at, extListMapKeys)
			return
		}
		if it := itemSchema(s); it != nil {
			for _, k := range keys {
				if ps, ok := it.Properties.Get(k); ok && ps != nil && ps.Default != nil {
					continue
				}
				if !slices.Contains(it.Required, k) {
					it.Required = append(it.Required, k)
				}
			}
		}
		d.warnf("list-type map at %s: uniqueness of keys %v is not enforced", at, keys)
	default:
		d.warnf("unknown %s %q at %s", extListType, lt, at)
	}
}

func itemSchema(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Items == nil || s.Items.IsTuple() {
		return nil
	}
	if _, ok := s.Items.Schema.IsBool(); ok {
		return nil
	}
	return s.Items.Schema
}

func stringList(v any) []string {
	arr, _ := v.([]any)
	out := make([]string, 0, len(arr))
	for _, e := range arr {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
