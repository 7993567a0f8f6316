package jsonskema

import (
	"io"
	"sync"

	eng "github.com/reoring/jsonskema/internal/engine"
	"github.com/reoring/jsonskema/source/gojson"
)

// TokenKind enumerates JSON token kinds.
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token describes a token in the input stream. Offset records the byte position
// when known (-1 otherwise).
type Token struct {
	Kind   TokenKind
	String string // Stored for key/string tokens.
	Number string // Decimal text, kept exact.
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic instance input. NextToken returns io.EOF
// after the last token.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The default
// implementation is based on goccy/go-json and may be swapped with SetJSONDriver.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default go-json backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

// CurrentJSONDriver returns the driver used by JSONReader and JSONBytes.
func CurrentJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: gojson.NewReader(r)}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: gojson.NewBytes(b)}
}
func (defaultJSONDriver) Name() string { return "goccy/go-json" }

// JSONReader wraps an io.Reader as a JSON Source. The default driver does
// not verify separators while streaming; prefer JSONBytes for untrusted
// input.
func JSONReader(r io.Reader) Source { return CurrentJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return CurrentJSONDriver().NewBytes(b) }

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// tokenSourceAdapter exposes a public Source to the internal decoder.
type tokenSourceAdapter struct {
	inner Source
}

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

func engineSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

var kindPairs = [...]struct {
	pub TokenKind
	eng eng.Kind
}{
	{TokenBeginObject, eng.KindBeginObject},
	{TokenEndObject, eng.KindEndObject},
	{TokenBeginArray, eng.KindBeginArray},
	{TokenEndArray, eng.KindEndArray},
	{TokenKey, eng.KindKey},
	{TokenString, eng.KindString},
	{TokenNumber, eng.KindNumber},
	{TokenBool, eng.KindBool},
	{TokenNull, eng.KindNull},
}

func fromEngineKind(k eng.Kind) TokenKind {
	for _, p := range kindPairs {
		if p.eng == k {
			return p.pub
		}
	}
	return TokenNull
}

func toEngineKind(k TokenKind) eng.Kind {
	for _, p := range kindPairs {
		if p.pub == k {
			return p.eng
		}
	}
	return eng.KindNull
}
