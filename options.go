package jsonskema

import (
	"github.com/reoring/jsonskema/format"
	"github.com/reoring/jsonskema/i18n"
)

// DefaultMaxDepth is the schema recursion limit used when Options.MaxDepth is
// not set.
const DefaultMaxDepth = 100

// Options configures validation. The zero value is usable.
type Options struct {
	// MaxDepth bounds schema recursion. Exceeding it yields one "depth"
	// error instead of a stack overflow. 0 means DefaultMaxDepth.
	MaxDepth int
	// Formats checks the "format" keyword. nil means format.Default();
	// format.None turns format into an annotation.
	Formats format.Checker
	// Translator renders ValidationError.Message. nil uses the process-wide
	// i18n translator.
	Translator i18n.Translator
	// EvaluateNull makes null instances go through const, enum and the
	// composition keywords like any other value. By default a null instance
	// that passes the type gate is accepted right away.
	EvaluateNull bool
}

// last-wins, like the other option bundles.
func pickOptions(opts []Options) Options {
	var o Options
	if len(opts) > 0 {
		o = opts[len(opts)-1]
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Formats == nil {
		o.Formats = format.Default()
	}
	return o
}

// Severity expresses the severity level for decode issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeIssue is a non-validation finding raised while decoding an
// instance (e.g. a duplicate key under Warn).
type DecodeIssue struct {
	Path    string
	Code    string
	Message string
	Offset  int64 // -1 when unknown
}

// DecodeOpt bundles instance decoding options.
type DecodeOpt struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys); Ignore keeps the last value.
	MaxDepth       int      // Maximum container nesting; 0 disables the check.
	MaxBytes       int64    // Maximum input size; 0 disables the check.
	// OnIssue receives every decode issue, including the fatal one.
	OnIssue func(DecodeIssue)
}

func pickDecodeOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) == 0 {
		return DecodeOpt{}
	}
	return opts[len(opts)-1]
}
