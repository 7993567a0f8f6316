package jsonschema

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is a string-keyed map that remembers insertion order. The nil
// map is empty and safe to read.
type OrderedMap[V any] struct {
	om *orderedmap.OrderedMap[string, V]
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{om: orderedmap.New[string, V]()}
}

// Set stores v under key, keeping the original position of an existing key.
// It returns m for chaining.
func (m *OrderedMap[V]) Set(key string, v V) *OrderedMap[V] {
	if m.om == nil {
		m.om = orderedmap.New[string, V]()
	}
	m.om.Set(key, v)
	return m
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil || m.om == nil {
		var zero V
		return zero, false
	}
	return m.om.Get(key)
}

// Delete removes key.
func (m *OrderedMap[V]) Delete(key string) {
	if m == nil || m.om == nil {
		return
	}
	m.om.Delete(key)
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return m.om.Len()
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over the entries in insertion order.
func (m *OrderedMap[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		if m == nil || m.om == nil {
			return
		}
		for p := m.om.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}
