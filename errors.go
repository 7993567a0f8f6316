package jsonskema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonskema/jsonschema"
)

// Keywords reported in ValidationError.Keyword (exported consts for IDE
// completion and type safety by convention).
const (
	KeywordType                 = "type"
	KeywordConst                = "const"
	KeywordEnum                 = "enum"
	KeywordMultipleOf           = "multipleOf"
	KeywordMinimum              = "minimum"
	KeywordMaximum              = "maximum"
	KeywordExclusiveMinimum     = "exclusiveMinimum"
	KeywordExclusiveMaximum     = "exclusiveMaximum"
	KeywordMinLength            = "minLength"
	KeywordMaxLength            = "maxLength"
	KeywordPattern              = "pattern"
	KeywordFormat               = "format"
	KeywordContentEncoding      = "contentEncoding"
	KeywordContentMediaType     = "contentMediaType"
	KeywordMinItems             = "minItems"
	KeywordMaxItems             = "maxItems"
	KeywordUniqueItems          = "uniqueItems"
	KeywordAdditionalItems      = "additionalItems"
	KeywordContains             = "contains"
	KeywordMinProperties        = "minProperties"
	KeywordMaxProperties        = "maxProperties"
	KeywordRequired             = "required"
	KeywordPatternProperties    = "patternProperties"
	KeywordAdditionalProperties = "additionalProperties"
	KeywordDependencies         = "dependencies"
	KeywordPropertyNames        = "propertyNames"
	KeywordAnyOf                = "anyOf"
	KeywordOneOf                = "oneOf"
	KeywordNot                  = "not"
	KeywordThen                 = "then"
	KeywordElse                 = "else"
	// KeywordFalse is reported when an instance meets the boolean schema false.
	KeywordFalse = "false"
	// KeywordDepth is reported when validation exceeds Options.MaxDepth.
	KeywordDepth = "depth"
)

// ErrNilSchema is returned by New when no schema is given.
var ErrNilSchema = errors.New("jsonskema: nil schema")

// ValidationError is one violation found while validating an instance.
type ValidationError struct {
	Path     string `json:"path"` // JSON Pointer into the instance ("" is the root).
	Keyword  string `json:"keyword"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
	Message  string `json:"message"`
	// Schema is the node whose keyword failed. Diagnostics only.
	Schema *jsonschema.Schema `json:"-"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Keyword, displayPath(e.Path), e.Message)
}

func displayPath(p string) string {
	if p == "" {
		return "#"
	}
	return p
}

// Errors is a collection of validation errors that implements error.
type Errors []ValidationError

// Error summarizes the first few errors.
func (es Errors) Error() string {
	if len(es) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(es)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. minimum at /age
		fmt.Fprintf(b, "%s at %s", es[i].Keyword, displayPath(es[i].Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsErrors extracts Errors from an error using errors.As internally.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var es Errors
	if errors.As(err, &es) {
		return es, true
	}
	return nil, false
}
