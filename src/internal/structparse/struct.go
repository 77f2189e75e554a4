package structparse

import (
	"github.com/m3tools/m3cd/src/internal/utils"
)

// KeyValue is one raw entry of a struct: the trimmed key and the untouched value text.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Struct is the result of Parse: a multi-map from case-insensitive key to the
// values given for it, in encounter order.
type Struct struct {
	values  *utils.OrderedMap[[]string]
	entries []KeyValue
}

func newStruct() *Struct {
	return &Struct{values: utils.NewOrderedMap[[]string]()}
}

func (s *Struct) add(key, value string) {
	existing, _ := s.values.Get(key)
	s.values.Set(key, append(existing, value))
	s.entries = append(s.entries, KeyValue{Key: key, Value: value})
}

// Get returns every value given for key, in encounter order.
func (s *Struct) Get(key string) []string {
	values, _ := s.values.Get(key)
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// First returns the first value given for key.
func (s *Struct) First(key string) (string, bool) {
	values, ok := s.values.Get(key)
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Has reports whether key appears at least once.
func (s *Struct) Has(key string) bool {
	return s.values.Has(key)
}

// Keys returns the distinct keys in order of first appearance, spelled as first seen.
func (s *Struct) Keys() []string {
	return s.values.Keys()
}

// Len returns the number of distinct keys.
func (s *Struct) Len() int {
	return s.values.Len()
}

// Count returns the total number of entries, counting repeated keys.
func (s *Struct) Count() int {
	return len(s.entries)
}

// Entries returns all entries in encounter order.
func (s *Struct) Entries() []KeyValue {
	out := make([]KeyValue, len(s.entries))
	copy(out, s.entries)
	return out
}

// Nested parses the first value of key as a struct with the given delimiters.
func (s *Struct) Nested(key string, open, close rune) (*Struct, error) {
	value, _ := s.First(key)
	return Parse(value, open, close)
}
