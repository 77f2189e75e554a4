package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldKey(t *testing.T) {
	assert.Equal(t, "conditionalclasses", FoldKey("ConditionalClasses"))
	assert.Equal(t, FoldKey("STRASSE"), FoldKey("strasse"))
	assert.Equal(t, FoldKey("Ärger"), FoldKey("äRGER"))
}

func TestOrderedMap_CaseInsensitiveLookup(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("Attribute1", 1)

	v, ok := m.Get("ATTRIBUTE1")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.True(t, m.Has("attribute1"))
	assert.False(t, m.Has("Attribute2"))
}

func TestOrderedMap_SetKeepsFirstSpellingAndPosition(t *testing.T) {
	m := NewOrderedMap[string]()
	m.Set("Alpha", "a")
	m.Set("Beta", "b")
	m.Set("ALPHA", "A")

	assert.Equal(t, []string{"Alpha", "Beta"}, m.Keys())
	assert.Equal(t, []string{"A", "b"}, m.Values())
}

func TestOrderedMap_GetOrAdd(t *testing.T) {
	m := NewOrderedMap[*[]string]()
	calls := 0
	create := func() *[]string {
		calls++
		return &[]string{}
	}

	first, created := m.GetOrAdd("Section", create)
	require.True(t, created)
	second, created := m.GetOrAdd("SECTION", create)
	require.False(t, created)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestOrderedMap_DeleteReindexes(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	assert.True(t, m.Delete("B"))
	assert.False(t, m.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, m.Keys())

	v, ok := m.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, v)

	m.Set("d", 4)
	assert.Equal(t, []string{"a", "c", "d"}, m.Keys())
	assert.Equal(t, 3, m.Len())
}

func TestOrderedMap_RangeStops(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	var seen []string
	m.Range(func(k string, v int) bool {
		seen = append(seen, k)
		return v < 2
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
