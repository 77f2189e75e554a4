package coalesced

import (
	"testing"

	"github.com/m3tools/m3cd/src/internal/log"
)

func init() {
	log.DisableLogs()
}

// newTarget builds a bundle holding one asset with one section whose property
// name has the given values, all typed New.
func newTarget(game Game, asset, section, property string, values ...string) *AssetBundle {
	b := NewAssetBundle(game)
	a := NewConfigAsset(asset)
	s, _ := a.GetOrAddSection(section)
	p := s.GetOrAddProperty(property)
	for _, v := range values {
		p.Add(NewValue(v, New))
	}
	b.AddAsset(a)
	return b
}

// newDelta builds a delta asset with a single composite section.
func newDelta(asset, section, property string, values ...ConfigValue) *ConfigAsset {
	d := NewConfigAsset("Test-1.m3cd")
	s, _ := d.GetOrAddSection(DeltaSectionName(asset, section))
	for _, v := range values {
		s.AddValue(property, v)
	}
	return d
}

func propertyStrings(t *testing.T, b *AssetBundle, asset, section, property string) []string {
	t.Helper()
	a, ok := b.Asset(asset)
	if !ok {
		t.Fatalf("asset %s not found", asset)
	}
	s, ok := a.Section(section)
	if !ok {
		t.Fatalf("section %s not found in %s", section, asset)
	}
	p, ok := s.Property(property)
	if !ok {
		t.Fatalf("property %s not found in [%s]", property, section)
	}
	return p.Strings()
}
