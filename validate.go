package jsonskema

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/jsonskema/i18n"
	"github.com/reoring/jsonskema/internal/jsonvalue"
	"github.com/reoring/jsonskema/jsonschema"
)

// Validate checks instance against root and returns every violation found.
// The instance may be any Go value with a JSON representation; it is
// normalized to the canonical form (nil, bool, string, json.Number, []any,
// map[string]any) first. A nil root accepts everything.
//
// Validate never fails: problems in the schema itself (a pattern that does
// not compile, for example) surface as violations. Use New to check a
// schema once and reuse it.
func Validate(instance any, root *jsonschema.Schema, opts ...Options) Result {
	return ValidateAt(instance, root, "", opts...)
}

// ValidateAt is Validate with errors reported relative to path, a JSON
// Pointer locating instance inside a larger document.
func ValidateAt(instance any, schema *jsonschema.Schema, path string, opts ...Options) Result {
	w := walker{opts: pickOptions(opts)}
	return w.run(instance, schema, path)
}

// Validator validates instances against a schema that passed
// jsonschema.Check. It is safe for concurrent use as long as the schema is
// not modified.
type Validator struct {
	root *jsonschema.Schema
	w    walker
}

// New checks root for well-formedness and returns a reusable Validator.
func New(root *jsonschema.Schema, opts ...Options) (*Validator, error) {
	if root == nil {
		return nil, ErrNilSchema
	}
	if err := jsonschema.Check(root); err != nil {
		return nil, err
	}
	return &Validator{root: root, w: walker{opts: pickOptions(opts)}}, nil
}

// MustNew is like New but panics on error.
func MustNew(root *jsonschema.Schema, opts ...Options) *Validator {
	v, err := New(root, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Schema returns the root schema.
func (v *Validator) Schema() *jsonschema.Schema { return v.root }

// Validate checks one instance.
func (v *Validator) Validate(instance any) Result {
	return v.w.run(instance, v.root, "")
}

type walker struct {
	opts Options
}

func (w *walker) run(instance any, s *jsonschema.Schema, path string) Result {
	v, err := jsonvalue.Normalize(instance)
	if err != nil {
		actual := fmt.Sprintf("%T", instance)
		return newResult(w.fail(nil, path, s, KeywordType, KeywordType, "JSON value", actual,
			map[string]string{"expected": "JSON value", "actual": actual}))
	}
	return newResult(w.validate(v, s, path, 0, nil))
}

// validate appends the violations of v against s to out. Gates that fail
// (type, const, enum) end the evaluation of s; composition and type-specific
// keywords accumulate.
func (w *walker) validate(v any, s *jsonschema.Schema, path string, depth int, out Errors) Errors {
	if s == nil {
		return out
	}
	if depth > w.opts.MaxDepth {
		return w.fail(out, path, s, KeywordDepth, KeywordDepth, w.opts.MaxDepth, nil, nil)
	}
	if b, ok := s.IsBool(); ok {
		if b {
			return out
		}
		return w.fail(out, path, s, KeywordFalse, KeywordFalse, nil, v, nil)
	}

	if v == nil && !w.opts.EvaluateNull {
		if s.Type != nil && !s.Type.Has(jsonschema.TypeNull) {
			return w.typeError(out, v, s, path)
		}
		return out
	}
	if s.Type != nil && !s.Type.Accepts(v) {
		return w.typeError(out, v, s, path)
	}
	if s.Const != nil {
		if !jsonvalue.Equal(v, *s.Const) {
			out = w.fail(out, path, s, KeywordConst, KeywordConst, *s.Const, v, nil)
		}
		return out
	}
	if s.Enum != nil {
		if !slices.ContainsFunc(s.Enum, func(e any) bool { return jsonvalue.Equal(v, e) }) {
			out = w.fail(out, path, s, KeywordEnum, KeywordEnum, s.Enum, v, nil)
		}
		return out
	}

	out = w.composition(v, s, path, depth, out)

	switch x := v.(type) {
	case string:
		out = w.str(x, s, path, out)
	case json.Number:
		out = w.number(x, s, path, out)
	case []any:
		out = w.array(x, s, path, depth, out)
	case map[string]any:
		out = w.object(x, s, path, depth, out)
	}
	return out
}

func (w *walker) typeError(out Errors, v any, s *jsonschema.Schema, path string) Errors {
	names := s.Type.Strings()
	actual := jsonvalue.TypeName(v)
	return w.fail(out, path, s, KeywordType, KeywordType, names, actual, map[string]string{
		"expected": strings.Join(names, " or "),
		"actual":   actual,
	})
}

// fail appends one violation. data fills the message placeholders;
// "expected" and "actual" default to the rendered values.
func (w *walker) fail(out Errors, path string, s *jsonschema.Schema, keyword, code string, expected, actual any, data map[string]string) Errors {
	if data == nil {
		data = make(map[string]string, 2)
	}
	if _, ok := data["expected"]; !ok && expected != nil {
		data["expected"] = display(expected)
	}
	if _, ok := data["actual"]; !ok && actual != nil {
		data["actual"] = display(actual)
	}
	return append(out, ValidationError{
		Path:     path,
		Keyword:  keyword,
		Expected: expected,
		Actual:   actual,
		Message:  w.message(code, data),
		Schema:   s,
	})
}

func (w *walker) message(code string, data map[string]string) string {
	if w.opts.Translator != nil {
		return w.opts.Translator.Message(code, data)
	}
	return i18n.T(code, data)
}

// display renders a value for messages: numbers and strings as is, anything
// else as compact JSON.
func display(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case int:
		return fmt.Sprint(x)
	}
	b, err := gojson.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
