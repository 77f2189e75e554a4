package coalesced

import (
	"github.com/m3tools/m3cd/src/internal/utils"
)

// ConfigAsset is one config file: a named, ordered set of sections.
type ConfigAsset struct {
	Name string
	// Trailer holds the comment and blank lines after the last value.
	Trailer  []string
	sections *utils.OrderedMap[*ConfigSection]
}

// Assets maps asset names to assets, case-insensitively and in insertion order.
type Assets = utils.OrderedMap[*ConfigAsset]

// NewAssets returns an empty asset map.
func NewAssets() *Assets {
	return utils.NewOrderedMap[*ConfigAsset]()
}

// NewConfigAsset returns an empty asset.
func NewConfigAsset(name string) *ConfigAsset {
	return &ConfigAsset{
		Name:     name,
		sections: utils.NewOrderedMap[*ConfigSection](),
	}
}

// Section looks up a section by name.
func (a *ConfigAsset) Section(name string) (*ConfigSection, bool) {
	return a.sections.Get(name)
}

// GetOrAddSection returns the named section, creating it when absent. created
// reports whether a new section was added.
func (a *ConfigAsset) GetOrAddSection(name string) (section *ConfigSection, created bool) {
	return a.sections.GetOrAdd(name, func() *ConfigSection {
		return NewConfigSection(name)
	})
}

// RemoveSection deletes the named section and reports whether it existed.
func (a *ConfigAsset) RemoveSection(name string) bool {
	return a.sections.Delete(name)
}

// Sections returns the sections in insertion order.
func (a *ConfigAsset) Sections() []*ConfigSection {
	return a.sections.Values()
}

// Len returns the number of sections.
func (a *ConfigAsset) Len() int {
	return a.sections.Len()
}

// ValueCount returns the number of values across all sections.
func (a *ConfigAsset) ValueCount() int {
	n := 0
	a.sections.Range(func(_ string, s *ConfigSection) bool {
		for _, p := range s.Properties() {
			n += len(p.Values)
		}
		return true
	})
	return n
}

// Clone returns a deep copy of the asset.
func (a *ConfigAsset) Clone() *ConfigAsset {
	out := NewConfigAsset(a.Name)
	out.Trailer = cloneLines(a.Trailer)
	a.sections.Range(func(name string, s *ConfigSection) bool {
		out.sections.Set(name, s.Clone())
		return true
	})
	return out
}
