package engine

import (
	"encoding/json"
	"errors"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned by DecodeDocument when tokens follow the first
// top-level value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// DecodeAnyFromSource builds one canonical value (numbers as json.Number)
// from the streaming token source.
func DecodeAnyFromSource(src TokenSource) (any, error) {
	tok, err := src.NextToken()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return decodeValue(src, tok)
}

// DecodeDocument decodes exactly one top-level value and requires the source
// to be exhausted afterwards.
func DecodeDocument(src TokenSource) (any, error) {
	v, err := DecodeAnyFromSource(src)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			return nil, ErrTrailingData
		}
		return nil, err
	}
	return v, nil
}

func decodeValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src)
	case KindBeginArray:
		return decodeArray(src)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return json.Number(tok.Number), nil
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func next(src TokenSource) (Token, error) {
	tok, err := src.NextToken()
	if err == io.EOF {
		return Token{}, io.ErrUnexpectedEOF
	}
	return tok, err
}

func decodeObject(src TokenSource) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := next(src)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(src, vt)
		if err != nil {
			return nil, err
		}
		// last occurrence wins when duplicates are tolerated
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource) (any, error) {
	arr := []any{}
	for {
		tok, err := next(src)
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

// DecodeOrderedDocument is DecodeDocument with objects decoded as ordered
// maps, keeping the key order of the input.
func DecodeOrderedDocument(src TokenSource) (any, error) {
	tok, err := next(src)
	if err != nil {
		return nil, err
	}
	v, err := decodeOrderedValue(src, tok)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); err != io.EOF {
		if err == nil {
			return nil, ErrTrailingData
		}
		return nil, err
	}
	return v, nil
}

func decodeOrderedValue(src TokenSource, tok Token) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		m := orderedmap.New[string, any]()
		for {
			kt, err := next(src)
			if err != nil {
				return nil, err
			}
			if kt.Kind == KindEndObject {
				return m, nil
			}
			if kt.Kind != KindKey {
				return nil, io.ErrUnexpectedEOF
			}
			vt, err := next(src)
			if err != nil {
				return nil, err
			}
			v, err := decodeOrderedValue(src, vt)
			if err != nil {
				return nil, err
			}
			m.Set(kt.String, v)
		}
	case KindBeginArray:
		arr := []any{}
		for {
			et, err := next(src)
			if err != nil {
				return nil, err
			}
			if et.Kind == KindEndArray {
				return arr, nil
			}
			v, err := decodeOrderedValue(src, et)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
	default:
		return decodeValue(src, tok)
	}
}
