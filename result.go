package jsonskema

import (
	"slices"
	"strings"
)

// Result is the outcome of validating one instance. Valid is true exactly
// when Errors is empty.
type Result struct {
	Valid  bool   `json:"valid"`
	Errors Errors `json:"errors,omitempty"`
}

func newResult(errs Errors) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// Filter keeps the errors for which keep returns true. Valid is recomputed
// for the remaining errors.
func (r Result) Filter(keep func(ValidationError) bool) Result {
	var out Errors
	for _, e := range r.Errors {
		if keep(e) {
			out = append(out, e)
		}
	}
	return newResult(out)
}

// ByPath keeps the errors reported exactly at path.
func (r Result) ByPath(path string) Result {
	return r.Filter(func(e ValidationError) bool { return e.Path == path })
}

// ByPathPrefix keeps the errors at prefix or below it. The match respects
// pointer segments: "/a" covers "/a/b" but not "/ab".
func (r Result) ByPathPrefix(prefix string) Result {
	return r.Filter(func(e ValidationError) bool {
		if prefix == "" || e.Path == prefix {
			return true
		}
		return strings.HasPrefix(e.Path, prefix+"/")
	})
}

// ByKeyword keeps the errors raised by any of the given keywords.
func (r Result) ByKeyword(keywords ...string) Result {
	return r.Filter(func(e ValidationError) bool { return slices.Contains(keywords, e.Keyword) })
}

// First returns the first error in evaluation order.
func (r Result) First() (ValidationError, bool) {
	if len(r.Errors) == 0 {
		return ValidationError{}, false
	}
	return r.Errors[0], true
}

// Err returns the errors as an error value, or nil when the instance is valid.
func (r Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return r.Errors
}

// Keywords lists the distinct failing keywords in first-seen order.
func (r Result) Keywords() []string {
	var out []string
	for _, e := range r.Errors {
		if !slices.Contains(out, e.Keyword) {
			out = append(out, e.Keyword)
		}
	}
	return out
}

// Combine concatenates the errors of several results.
func Combine(results ...Result) Result {
	var out Errors
	for _, r := range results {
		out = append(out, r.Errors...)
	}
	return newResult(out)
}
