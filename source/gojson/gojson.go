// Package gojson provides the JSON token source backed by goccy/go-json. It is
// the default instance driver of jsonskema.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strings"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/jsonskema/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// Separators between tokens are not validated; use NewBytes when the input
// must be strictly well-formed.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
// The whole document is checked against the JSON grammar up front: the
// streaming tokenizer skips separators without validating them.
func NewBytes(b []byte) eng.TokenSource {
	if !j.Valid(b) {
		var v any
		err := j.Unmarshal(b, &v)
		if err == nil {
			err = errors.New("invalid JSON document")
		}
		return errSource{err: err}
	}
	return NewReader(bytes.NewReader(b))
}

type errSource struct{ err error }

func (e errSource) NextToken() (eng.Token, error) { return eng.Token{}, e.err }
func (e errSource) Location() int64               { return 0 }

// valueDone flips the enclosing object back to expecting a key.
func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return eng.Token{}, err
	}
	off := s.dec.InputOffset()
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{kind: kindObject, expectingKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: off}, nil
		case '[':
			s.stack = append(s.stack, frame{kind: kindArray})
			return eng.Token{Kind: eng.KindBeginArray, Offset: off}, nil
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			if v == '}' {
				return eng.Token{Kind: eng.KindEndObject, Offset: off}, nil
			}
			return eng.Token{Kind: eng.KindEndArray, Offset: off}, nil
		}
	case string:
		if n := len(s.stack); n > 0 {
			top := &s.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.expectingKey = false
				return eng.Token{Kind: eng.KindKey, String: v, Offset: off}, nil
			}
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: off}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: off}, nil
	case j.Number:
		s.valueDone()
		// the decoder's number text aliases its read buffer
		return eng.Token{Kind: eng.KindNumber, Number: strings.Clone(string(v)), Offset: off}, nil
	}
	s.valueDone()
	return eng.Token{Kind: eng.KindNull, Offset: off}, nil
}

func (s *source) Location() int64 { return s.dec.InputOffset() }
