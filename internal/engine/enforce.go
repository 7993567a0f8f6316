package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling,
// max depth checks, and max bytes truncation in a streaming fashion.

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// Issue codes reported by the enforcing source.
const (
	CodeDuplicateKey = "duplicate_key"
	CodeMaxDepth     = "max_depth"
	CodeMaxBytes     = "max_bytes"
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives every issue, fatal or not. Optional.
	IssueSink func(SimpleIssue)
}

// Enabled reports whether any enforcement is configured.
func (o EnforceOptions) Enabled() bool {
	return o.OnDuplicate != DupIgnore || o.MaxDepth > 0 || o.MaxBytes > 0
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
	// consumed approximates bytes read when the inner source cannot report
	// offsets.
	consumed int64
}

func (e *enforcingTokenSource) report(si SimpleIssue) {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := e.currentPathForToken(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path}
		}
		e.stack = append(e.stack, f)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			si := SimpleIssue{Code: CodeMaxDepth, Path: path, Message: "max depth " + strconv.Itoa(e.opt.MaxDepth) + " exceeded"}
			e.report(si)
			return Token{}, IssueError{si}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, ok := top.keys[tok.String]; ok {
						si := SimpleIssue{Code: CodeDuplicateKey, Path: path, Message: "key '" + tok.String + "' duplicated"}
						e.report(si)
						if e.opt.OnDuplicate == DupError {
							return Token{}, IssueError{si}
						}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		off := e.Location()
		if off < 0 {
			e.consumed += approxTokenSize(tok)
			off = e.consumed
		}
		if off > e.opt.MaxBytes {
			si := SimpleIssue{Code: CodeMaxBytes, Path: path, Message: "max bytes " + strconv.FormatInt(e.opt.MaxBytes, 10) + " exceeded"}
			e.report(si)
			return Token{}, IssueError{si}
		}
	}

	return tok, nil
}

// valueDone marks the pending member of the enclosing object as complete.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) currentPathForToken(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return JoinPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := JoinPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if !top.expectingKey {
			return JoinPointer(top.path, top.pendingKey)
		}
	}
	return top.path
}

// approxTokenSize is the minimal encoded size of tok, used when the inner
// source has no offset information.
func approxTokenSize(tok Token) int64 {
	switch tok.Kind {
	case KindKey:
		return int64(len(tok.String)) + 3
	case KindString:
		return int64(len(tok.String)) + 2
	case KindNumber:
		return int64(len(tok.Number))
	case KindBool:
		if tok.Bool {
			return 4
		}
		return 5
	case KindNull:
		return 4
	default:
		return 1
	}
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// EscapePointerToken escapes one JSON Pointer reference token (RFC 6901).
func EscapePointerToken(s string) string {
	return jsonPointerEscaper.Replace(s)
}

// JoinPointer appends an escaped reference token to a JSON Pointer. The root
// pointer is the empty string.
func JoinPointer(base, token string) string {
	return base + "/" + EscapePointerToken(token)
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
