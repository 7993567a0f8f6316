package kubeopenapi

import (
	"slices"

	"github.com/reoring/jsonskema/jsonschema"
)

// embeddedFields are the presence checks for x-kubernetes-embedded-resource:
// apiVersion and kind must be strings, metadata an object.
var embeddedFields = []struct {
	name string
	typ  jsonschema.Type
}{
	{"apiVersion", jsonschema.TypeString},
	{"kind", jsonschema.TypeString},
	{"metadata", jsonschema.TypeObject},
}

func embedResource(s *jsonschema.Schema) {
	if s.Properties == nil {
		s.Properties = jsonschema.NewProperties()
	}
	for _, f := range embeddedFields {
		ps, ok := s.Properties.Get(f.name)
		switch {
		case !ok || ps == nil:
			s.Properties.Set(f.name, jsonschema.Types(f.typ))
		case ps.Bool == nil && len(ps.Type) == 0:
			ps.Type = jsonschema.TypeSet{f.typ}
		}
		if !slices.Contains(s.Required, f.name) {
			s.Required = append(s.Required, f.name)
		}
	}
}
