package jsonskema

import (
	"context"
	"errors"
	"fmt"
	"io"

	eng "github.com/reoring/jsonskema/internal/engine"
)

// Decode issue codes.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = eng.CodeDuplicateKey
	CodeMaxDepth     = eng.CodeMaxDepth
	CodeMaxBytes     = eng.CodeMaxBytes
)

// DecodeError reports instance input that could not be turned into a JSON
// value. Schema violations are never reported this way.
type DecodeError struct {
	Code    string
	Path    string // JSON Pointer of the offending token, when known.
	Offset  int64  // Byte offset in the input (-1 when unknown).
	Message string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("jsonskema: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("jsonskema: %s at %s: %s", e.Code, e.Path, e.Message)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ValidateFrom decodes one JSON document from src and validates it with v.
// The error is non-nil only when the input cannot be decoded or ctx is done.
func ValidateFrom(ctx context.Context, v *Validator, src Source, opts ...DecodeOpt) (Result, error) {
	if v == nil {
		return Result{}, ErrNilSchema
	}
	inst, err := DecodeFrom(ctx, src, opts...)
	if err != nil {
		return Result{}, err
	}
	return v.Validate(inst), nil
}

// ValidateJSON is ValidateFrom over a byte slice.
func ValidateJSON(ctx context.Context, v *Validator, data []byte, opts ...DecodeOpt) (Result, error) {
	return ValidateFrom(ctx, v, JSONBytes(data), opts...)
}

// ValidateReader reads r to the end (at most DecodeOpt.MaxBytes when set)
// and validates the document with v.
func ValidateReader(ctx context.Context, v *Validator, r io.Reader, opts ...DecodeOpt) (Result, error) {
	data, err := readAll(r, pickDecodeOpt(opts))
	if err != nil {
		return Result{}, err
	}
	return ValidateJSON(ctx, v, data, opts...)
}

// DecodeFrom decodes one JSON document from src into the canonical value
// form, applying the enforcement configured in opts.
func DecodeFrom(ctx context.Context, src Source, opts ...DecodeOpt) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opt := pickDecodeOpt(opts)
	es := engineSource(src)
	eo := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}
	if opt.OnIssue != nil {
		eo.IssueSink = func(si eng.SimpleIssue) {
			opt.OnIssue(DecodeIssue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: src.Location()})
		}
	}
	if eo.Enabled() {
		es = eng.WrapWithEnforcement(es, eo)
	}
	cs := &ctxSource{ctx: ctx, inner: es}
	val, err := eng.DecodeDocument(cs)
	if err != nil {
		return nil, toDecodeError(err, cs.Location(), opt)
	}
	return val, nil
}

// DecodeReader is DecodeFrom over a reader, read to the end first.
func DecodeReader(ctx context.Context, r io.Reader, opts ...DecodeOpt) (any, error) {
	data, err := readAll(r, pickDecodeOpt(opts))
	if err != nil {
		return nil, err
	}
	return DecodeFrom(ctx, JSONBytes(data), opts...)
}

func readAll(r io.Reader, opt DecodeOpt) ([]byte, error) {
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("jsonskema: read instance: %w", err)
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		issue := DecodeIssue{Code: CodeMaxBytes, Message: fmt.Sprintf("max bytes %d exceeded", opt.MaxBytes), Offset: opt.MaxBytes}
		if opt.OnIssue != nil {
			opt.OnIssue(issue)
		}
		return nil, &DecodeError{Code: issue.Code, Offset: issue.Offset, Message: issue.Message}
	}
	return data, nil
}

func toDecodeError(err error, offset int64, opt DecodeOpt) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		// already delivered to OnIssue by the enforcing source
		return &DecodeError{Code: ie.Code, Path: ie.Path, Offset: offset, Message: ie.Message, Err: err}
	}
	de := &DecodeError{Code: CodeParseError, Offset: offset, Message: err.Error(), Err: err}
	if opt.OnIssue != nil {
		opt.OnIssue(DecodeIssue{Code: de.Code, Message: de.Message, Offset: offset})
	}
	return de
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// ctxSource stops decoding once ctx is done, checking every few tokens.
type ctxSource struct {
	ctx   context.Context
	inner eng.TokenSource
	n     int
}

const ctxCheckEvery = 256

func (c *ctxSource) NextToken() (eng.Token, error) {
	c.n++
	if c.n%ctxCheckEvery == 0 {
		if err := c.ctx.Err(); err != nil {
			return eng.Token{}, err
		}
	}
	return c.inner.NextToken()
}

func (c *ctxSource) Location() int64 { return c.inner.Location() }
