package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// FoldKey returns the case-folded form of key used for case-insensitive lookups.
func FoldKey(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] >= utf8.RuneSelf {
			return cases.Fold().String(key)
		}
	}
	return strings.ToLower(key)
}

// OrderedMap is a map with case-insensitive string keys that remembers
// insertion order. The spelling of a key is the one used when it was first added.
//
// It is not safe for concurrent use.
type OrderedMap[V any] struct {
	keys   []string
	values []V
	index  map[string]int
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{index: make(map[string]int)}
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if i, ok := m.index[FoldKey(key)]; ok {
		return m.values[i], true
	}
	var zero V
	return zero, false
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.index[FoldKey(key)]
	return ok
}

// Set stores value under key. An existing entry keeps its position and spelling.
func (m *OrderedMap[V]) Set(key string, value V) {
	folded := FoldKey(key)
	if i, ok := m.index[folded]; ok {
		m.values[i] = value
		return
	}
	m.index[folded] = len(m.keys)
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// GetOrAdd returns the value stored under key, creating it with create when absent.
// The boolean result is true when the entry was created.
func (m *OrderedMap[V]) GetOrAdd(key string, create func() V) (V, bool) {
	if v, ok := m.Get(key); ok {
		return v, false
	}
	v := create()
	m.Set(key, v)
	return v, true
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	folded := FoldKey(key)
	i, ok := m.index[folded]
	if !ok {
		return false
	}
	delete(m.index, folded)
	m.keys = append(m.keys[:i], m.keys[i+1:]...)
	m.values = append(m.values[:i], m.values[i+1:]...)
	for j := i; j < len(m.keys); j++ {
		m.index[FoldKey(m.keys[j])] = j
	}
	return true
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns a copy of the values in insertion order.
func (m *OrderedMap[V]) Values() []V {
	out := make([]V, len(m.values))
	copy(out, m.values)
	return out
}

// Range calls fn for every entry in insertion order until fn returns false.
// fn must not add or delete entries.
func (m *OrderedMap[V]) Range(fn func(key string, value V) bool) {
	for i, k := range m.keys {
		if !fn(k, m.values[i]) {
			return
		}
	}
}
