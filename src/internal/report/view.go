package report

import (
	"github.com/m3tools/m3cd/src/internal/coalesced"
)

// AssetView is the JSON shape of a config file.
type AssetView struct {
	Name     string        `json:"name"`
	Sections []SectionView `json:"sections"`
}

// SectionView is the JSON shape of a section.
type SectionView struct {
	Name       string                      `json:"name"`
	Properties []*coalesced.ConfigProperty `json:"properties"`
}

// AssetSummary is a one-line description of a config file.
type AssetSummary struct {
	Name     string `json:"name"`
	Sections int    `json:"sections"`
	Values   int    `json:"values"`
}

// ViewAsset converts asset to its JSON shape.
func ViewAsset(asset *coalesced.ConfigAsset) AssetView {
	view := AssetView{Name: asset.Name, Sections: []SectionView{}}
	for _, section := range asset.Sections() {
		props := section.Properties()
		if props == nil {
			props = []*coalesced.ConfigProperty{}
		}
		view.Sections = append(view.Sections, SectionView{Name: section.Name, Properties: props})
	}
	return view
}

// ViewBundle converts every asset of bundle, in load order.
func ViewBundle(bundle *coalesced.AssetBundle) []AssetView {
	views := make([]AssetView, 0, bundle.Len())
	for _, asset := range bundle.Assets() {
		views = append(views, ViewAsset(asset))
	}
	return views
}

// Summarize lists the assets of bundle with their sizes.
func Summarize(bundle *coalesced.AssetBundle) []AssetSummary {
	out := make([]AssetSummary, 0, bundle.Len())
	for _, asset := range bundle.Assets() {
		out = append(out, AssetSummary{Name: asset.Name, Sections: asset.Len(), Values: asset.ValueCount()})
	}
	return out
}
