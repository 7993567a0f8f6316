package jsonskema

import (
	"slices"

	"github.com/dlclark/regexp2"

	"github.com/reoring/jsonskema/jsonschema"
)

// object applies the object keywords. Declared properties are visited in
// schema order; the remaining per-key checks walk the instance keys sorted,
// so the error order does not depend on map iteration.
func (w *walker) object(obj map[string]any, s *jsonschema.Schema, path string, depth int, out Errors) Errors {
	n := len(obj)
	if s.MinProperties != nil && n < *s.MinProperties {
		out = w.fail(out, path, s, KeywordMinProperties, KeywordMinProperties, *s.MinProperties, n, nil)
	}
	if s.MaxProperties != nil && n > *s.MaxProperties {
		out = w.fail(out, path, s, KeywordMaxProperties, KeywordMaxProperties, *s.MaxProperties, n, nil)
	}
	for _, name := range s.Required {
		if _, ok := obj[name]; !ok {
			out = w.fail(out, propPath(path, name), s, KeywordRequired, KeywordRequired, name, nil,
				map[string]string{"property": name})
		}
	}

	keys := make([]string, 0, n)
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	if s.PropertyNames != nil {
		for _, k := range keys {
			p := propPath(path, k)
			if errs := w.validate(k, s.PropertyNames, p, depth+1, nil); len(errs) > 0 {
				out = w.fail(out, p, s, KeywordPropertyNames, KeywordPropertyNames, nil, k,
					map[string]string{"property": k})
				out = append(out, errs...)
			}
		}
	}

	for name, sub := range s.Properties.All() {
		if val, ok := obj[name]; ok {
			out = w.validate(val, sub, propPath(path, name), depth+1, out)
		}
	}

	if s.PatternProperties.Len() > 0 || s.AdditionalProperties != nil {
		var patterns []*regexp2.Regexp
		for expr := range s.PatternProperties.All() {
			re, err := s.PatternPropertyRegexp(expr)
			if err != nil {
				out = w.fail(out, path, s, KeywordPatternProperties, KeywordPatternProperties, expr, nil,
					map[string]string{"reason": err.Error()})
			}
			patterns = append(patterns, re)
		}
		for _, k := range keys {
			out = w.propertyByPattern(k, obj[k], s, patterns, path, depth, out)
		}
	}

	for trigger, dep := range s.Dependencies.All() {
		if _, ok := obj[trigger]; !ok {
			continue
		}
		for _, name := range dep.Required {
			if _, ok := obj[name]; !ok {
				out = w.fail(out, propPath(path, name), s, KeywordDependencies, KeywordDependencies, name, nil,
					map[string]string{"property": name, "trigger": trigger})
			}
		}
		if dep.Schema != nil {
			if errs := w.validate(obj, dep.Schema, path, depth+1, nil); len(errs) > 0 {
				out = w.fail(out, path, s, KeywordDependencies, "dependencies/schema", nil, nil,
					map[string]string{"trigger": trigger})
				out = append(out, errs...)
			}
		}
	}
	return out
}

// propertyByPattern validates one key against every matching
// patternProperties schema, and against additionalProperties when neither a
// declared property nor a pattern covers it. patterns is aligned with
// s.PatternProperties; nil entries did not compile.
func (w *walker) propertyByPattern(key string, val any, s *jsonschema.Schema, patterns []*regexp2.Regexp, path string, depth int, out Errors) Errors {
	p := propPath(path, key)
	_, covered := s.Properties.Get(key)
	i := 0
	for expr, sub := range s.PatternProperties.All() {
		re := patterns[i]
		i++
		if re == nil {
			continue
		}
		ok, err := re.MatchString(key)
		if err != nil {
			out = w.fail(out, p, s, KeywordPatternProperties, KeywordPatternProperties, expr, key,
				map[string]string{"reason": err.Error()})
			continue
		}
		if ok {
			covered = true
			out = w.validate(val, sub, p, depth+1, out)
		}
	}
	if covered || s.AdditionalProperties == nil {
		return out
	}
	if b, ok := s.AdditionalProperties.IsBool(); ok {
		if !b {
			out = w.fail(out, p, s, KeywordAdditionalProperties, KeywordAdditionalProperties, false, key,
				map[string]string{"property": key})
		}
		return out
	}
	return w.validate(val, s.AdditionalProperties, p, depth+1, out)
}
