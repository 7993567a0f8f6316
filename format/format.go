// Package format implements the Draft-07 "format" keyword predicates. A
// Checker is consulted by the validator for string instances; unknown format
// names always pass.
package format

import (
	"sort"
	"sync"
)

// Checker validates a string against a named format. It returns nil when the
// value conforms or the format is unknown, and an error carrying the reason
// otherwise.
type Checker interface {
	Check(value, name string) error
}

// Func checks a single format.
type Func func(value string) error

// Registry is a Checker backed by a name → Func table. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds or replaces the predicate for name. A nil fn removes it.
func (r *Registry) Register(name string, fn Func) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		delete(r.funcs, name)
		return r
	}
	r.funcs[name] = fn
	return r
}

// Lookup returns the predicate registered for name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names lists the registered formats in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.funcs))
	for n := range r.funcs {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Check implements Checker.
func (r *Registry) Check(value, name string) error {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil
	}
	return fn(value)
}

// Clone returns an independent copy, useful to extend Default without
// affecting other users.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for n, fn := range r.funcs {
		c.funcs[n] = fn
	}
	return c
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the shared registry holding every Draft-07 format. Use
// Clone before registering custom formats.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry().
			Register("date-time", DateTime).
			Register("date", Date).
			Register("time", Time).
			Register("duration", Duration).
			Register("email", Email).
			Register("idn-email", IDNEmail).
			Register("hostname", Hostname).
			Register("idn-hostname", IDNHostname).
			Register("ipv4", IPv4).
			Register("ipv6", IPv6).
			Register("uri", URI).
			Register("uri-reference", URIReference).
			Register("iri", IRI).
			Register("iri-reference", IRIReference).
			Register("uri-template", URITemplate).
			Register("uuid", UUID).
			Register("json-pointer", JSONPointer).
			Register("relative-json-pointer", RelativeJSONPointer).
			Register("regex", Regex)
	})
	return defaultReg
}

// None is a Checker that accepts every value, turning format into a pure
// annotation.
var None Checker = noneChecker{}

type noneChecker struct{}

func (noneChecker) Check(string, string) error { return nil }
