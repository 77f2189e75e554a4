package coalesced

import (
	"strings"

	"github.com/m3tools/m3cd/src/internal/utils"
)

// ConfigSection is a named group of properties.
type ConfigSection struct {
	Name string
	// Comments are the comment and blank lines found just before the header.
	Comments   []string
	properties *utils.OrderedMap[*ConfigProperty]
}

// NewConfigSection returns an empty section.
func NewConfigSection(name string) *ConfigSection {
	return &ConfigSection{
		Name:       name,
		properties: utils.NewOrderedMap[*ConfigProperty](),
	}
}

// Property looks up a property by name.
func (s *ConfigSection) Property(name string) (*ConfigProperty, bool) {
	return s.properties.Get(name)
}

// GetOrAddProperty returns the named property, creating an empty one if needed.
func (s *ConfigSection) GetOrAddProperty(name string) *ConfigProperty {
	p, _ := s.properties.GetOrAdd(name, func() *ConfigProperty {
		return NewConfigProperty(name)
	})
	return p
}

// AddValue appends v to the named property, creating the property if needed.
func (s *ConfigSection) AddValue(name string, v ConfigValue) {
	s.GetOrAddProperty(name).Add(v)
}

// RemoveProperty deletes the named property and reports whether it existed.
func (s *ConfigSection) RemoveProperty(name string) bool {
	return s.properties.Delete(name)
}

// Properties returns the properties in insertion order.
func (s *ConfigSection) Properties() []*ConfigProperty {
	return s.properties.Values()
}

// Len returns the number of properties.
func (s *ConfigSection) Len() int {
	return s.properties.Len()
}

// Clone returns a deep copy of the section.
func (s *ConfigSection) Clone() *ConfigSection {
	out := NewConfigSection(s.Name)
	out.Comments = cloneLines(s.Comments)
	s.properties.Range(func(name string, p *ConfigProperty) bool {
		out.properties.Set(name, p.clone())
		return true
	})
	return out
}

// SplitDeltaSectionName splits a delta section name of the form
// "<asset> <section>" on its first space. ok is false when there is no space
// or either part is empty.
func SplitDeltaSectionName(composite string) (asset, section string, ok bool) {
	asset, section, found := strings.Cut(composite, " ")
	if !found || asset == "" || section == "" {
		return "", "", false
	}
	return asset, section, true
}

// DeltaSectionName builds the composite section name used by delta assets.
func DeltaSectionName(asset, section string) string {
	return asset + " " + section
}
