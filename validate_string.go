package jsonskema

import (
	"encoding/base64"
	"mime"
	"strconv"
	"strings"
	"unicode/utf8"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/jsonskema/jsonschema"
)

func (w *walker) str(v string, s *jsonschema.Schema, path string, out Errors) Errors {
	if s.MinLength != nil || s.MaxLength != nil {
		// length counts code points, not bytes
		n := utf8.RuneCountInString(v)
		if s.MinLength != nil && n < *s.MinLength {
			out = w.fail(out, path, s, KeywordMinLength, KeywordMinLength, *s.MinLength, n, nil)
		}
		if s.MaxLength != nil && n > *s.MaxLength {
			out = w.fail(out, path, s, KeywordMaxLength, KeywordMaxLength, *s.MaxLength, n, nil)
		}
	}
	if s.Pattern != "" {
		out = w.pattern(v, s, path, out)
	}
	if s.Format != "" {
		if err := w.opts.Formats.Check(v, s.Format); err != nil {
			out = w.fail(out, path, s, KeywordFormat, KeywordFormat, s.Format, v,
				map[string]string{"reason": err.Error()})
		}
	}
	if s.ContentEncoding != "" || s.ContentMediaType != "" {
		out = w.content(v, s, path, out)
	}
	return out
}

func (w *walker) pattern(v string, s *jsonschema.Schema, path string, out Errors) Errors {
	re, err := s.PatternRegexp()
	if err == nil {
		var ok bool
		if ok, err = re.MatchString(v); err == nil {
			if ok {
				return out
			}
			return w.fail(out, path, s, KeywordPattern, KeywordPattern, s.Pattern, v, nil)
		}
	}
	// uncompilable pattern or match timeout
	return w.fail(out, path, s, KeywordPattern, "pattern/invalid", s.Pattern, v,
		map[string]string{"reason": err.Error()})
}

// content checks contentEncoding (base64) and contentMediaType (JSON media
// types). Unknown encodings and media types are annotations only.
func (w *walker) content(v string, s *jsonschema.Schema, path string, out Errors) Errors {
	data := []byte(v)
	if enc := s.ContentEncoding; enc != "" {
		if !strings.EqualFold(enc, "base64") {
			return out
		}
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return w.fail(out, path, s, KeywordContentEncoding, KeywordContentEncoding, enc, v,
				map[string]string{"reason": err.Error()})
		}
		data = b
	}
	if mt := s.ContentMediaType; mt != "" && isJSONMediaType(mt) && !gojson.Valid(data) {
		out = w.fail(out, path, s, KeywordContentMediaType, KeywordContentMediaType, mt, v,
			map[string]string{"reason": "malformed JSON"})
	}
	return out
}

func isJSONMediaType(mt string) bool {
	base, _, err := mime.ParseMediaType(mt)
	if err != nil {
		return false
	}
	return base == "application/json" || strings.HasSuffix(base, "+json")
}

func itoa(n int) string { return strconv.Itoa(n) }
