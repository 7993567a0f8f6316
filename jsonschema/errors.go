package jsonschema

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports a malformed or self-inconsistent schema document. Path
// is a JSON Pointer into the schema document (not into an instance).
type SchemaError struct {
	Path    string
	Keyword string
	Message string
}

func (e *SchemaError) Error() string {
	p := e.Path
	if p == "" {
		p = "#"
	}
	if e.Keyword == "" {
		return fmt.Sprintf("%s: %s", p, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", p, e.Keyword, e.Message)
}

// SchemaErrors is the collection of construction problems found in one
// document.
type SchemaErrors []*SchemaError

func (es SchemaErrors) Error() string {
	if len(es) == 0 {
		return "no schema errors"
	}
	const maxItems = 3
	var b strings.Builder
	for i, e := range es {
		if i >= maxItems {
			break
		}
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Error())
	}
	if len(es) > maxItems {
		fmt.Fprintf(&b, "; ... (total %d)", len(es))
	}
	return b.String()
}

// AsSchemaErrors extracts SchemaErrors from err.
func AsSchemaErrors(err error) (SchemaErrors, bool) {
	var es SchemaErrors
	if errors.As(err, &es) {
		return es, true
	}
	var e *SchemaError
	if errors.As(err, &e) {
		return SchemaErrors{e}, true
	}
	return nil, false
}

func (es *SchemaErrors) add(path, keyword, format string, args ...any) {
	*es = append(*es, &SchemaError{Path: path, Keyword: keyword, Message: fmt.Sprintf(format, args...)})
}

// err returns es as an error, or nil when empty.
func (es SchemaErrors) err() error {
	if len(es) == 0 {
		return nil
	}
	return es
}
