package jsonskema

import (
	"encoding/json"

	"github.com/reoring/jsonskema/internal/jsonvalue"
	"github.com/reoring/jsonskema/jsonschema"
)

// number applies the numeric keywords with exact decimal arithmetic, for any
// exponent. A limit that is not a valid number (only possible on a schema
// that skipped Check) is ignored.
func (w *walker) number(n json.Number, s *jsonschema.Schema, path string, out Errors) Errors {
	if m := s.MultipleOf; m != nil {
		if ok, known := jsonvalue.IsMultipleOf(n, *m); known && !ok {
			out = w.fail(out, path, s, KeywordMultipleOf, KeywordMultipleOf, *m, n, nil)
		}
	}
	bounds := []struct {
		keyword string
		limit   *json.Number
		fails   func(c int) bool
	}{
		{KeywordMinimum, s.Minimum, func(c int) bool { return c < 0 }},
		{KeywordMaximum, s.Maximum, func(c int) bool { return c > 0 }},
		{KeywordExclusiveMinimum, s.ExclusiveMinimum, func(c int) bool { return c <= 0 }},
		{KeywordExclusiveMaximum, s.ExclusiveMaximum, func(c int) bool { return c >= 0 }},
	}
	for _, b := range bounds {
		if b.limit == nil {
			continue
		}
		if c, ok := jsonvalue.Compare(n, *b.limit); ok && b.fails(c) {
			out = w.fail(out, path, s, b.keyword, b.keyword, *b.limit, n, nil)
		}
	}
	return out
}
