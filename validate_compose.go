package jsonskema

import (
	"github.com/reoring/jsonskema/jsonschema"
)

// composition evaluates allOf, anyOf, oneOf, not and if/then/else against
// the same instance and path.
func (w *walker) composition(v any, s *jsonschema.Schema, path string, depth int, out Errors) Errors {
	for _, sub := range s.AllOf {
		out = w.validate(v, sub, path, depth+1, out)
	}

	if len(s.AnyOf) > 0 {
		var nested Errors
		matched := false
		for _, sub := range s.AnyOf {
			errs := w.validate(v, sub, path, depth+1, nil)
			if len(errs) == 0 {
				matched = true
				break
			}
			nested = append(nested, errs...)
		}
		if !matched {
			out = w.fail(out, path, s, KeywordAnyOf, KeywordAnyOf, nil, nil, nil)
			out = append(out, nested...)
		}
	}

	if len(s.OneOf) > 0 {
		var nested Errors
		matches := 0
		for _, sub := range s.OneOf {
			errs := w.validate(v, sub, path, depth+1, nil)
			if len(errs) == 0 {
				matches++
				continue
			}
			nested = append(nested, errs...)
		}
		switch {
		case matches == 0:
			out = w.fail(out, path, s, KeywordOneOf, KeywordOneOf, 1, 0, nil)
			out = append(out, nested...)
		case matches > 1:
			// ambiguity: the failing branches are irrelevant here
			out = w.fail(out, path, s, KeywordOneOf, "oneOf/many", 1, matches,
				map[string]string{"count": itoa(matches)})
		}
	}

	if s.Not != nil && len(w.validate(v, s.Not, path, depth+1, nil)) == 0 {
		out = w.fail(out, path, s, KeywordNot, KeywordNot, nil, nil, nil)
	}

	if s.If != nil {
		branch, keyword := s.Else, KeywordElse
		if len(w.validate(v, s.If, path, depth+1, nil)) == 0 {
			branch, keyword = s.Then, KeywordThen
		}
		if branch != nil {
			if errs := w.validate(v, branch, path, depth+1, nil); len(errs) > 0 {
				out = w.fail(out, path, s, keyword, keyword, nil, nil, nil)
				out = append(out, errs...)
			}
		}
	}
	return out
}
