package coalesced

import (
	"fmt"

	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/utils"
)

// Committer persists config assets. It is implemented by bundle sources,
// which own the on-disk format.
type Committer interface {
	CommitAsset(game Game, asset *ConfigAsset) error
}

// AssetBundle is the full set of config assets of one game installation or mod.
//
// Changes are tracked only for mutations made through the bundle (merges and
// GetOrAddAsset). Code that edits an asset directly must call MarkChanged.
type AssetBundle struct {
	Game Game

	assets  *Assets
	changed *utils.OrderedMap[struct{}]
}

// NewAssetBundle returns an empty bundle for game.
func NewAssetBundle(game Game) *AssetBundle {
	return &AssetBundle{
		Game:    game,
		assets:  NewAssets(),
		changed: utils.NewOrderedMap[struct{}](),
	}
}

// AddAsset stores asset, replacing any asset with the same name. It is meant
// for bundle sources populating a fresh bundle and does not count as a change.
func (b *AssetBundle) AddAsset(asset *ConfigAsset) {
	b.assets.Set(asset.Name, asset)
}

// Asset looks up an asset by name.
func (b *AssetBundle) Asset(name string) (*ConfigAsset, bool) {
	return b.assets.Get(name)
}

// GetOrAddAsset returns the named asset, creating an empty one if needed.
func (b *AssetBundle) GetOrAddAsset(name string) *ConfigAsset {
	asset, created := b.assets.GetOrAdd(name, func() *ConfigAsset {
		return NewConfigAsset(name)
	})
	if created {
		b.MarkChanged(name)
	}
	return asset
}

// Assets returns the assets in insertion order.
func (b *AssetBundle) Assets() []*ConfigAsset {
	return b.assets.Values()
}

// Targets exposes the asset map for PerformMerge.
func (b *AssetBundle) Targets() *Assets {
	return b.assets
}

// Len returns the number of assets.
func (b *AssetBundle) Len() int {
	return b.assets.Len()
}

// MarkChanged flags the named asset as needing a commit.
func (b *AssetBundle) MarkChanged(name string) {
	b.changed.Set(name, struct{}{})
}

// HasChanges reports whether any asset changed since the last successful commit.
func (b *AssetBundle) HasChanges() bool {
	return b.changed.Len() > 0
}

// ChangedAssets returns the assets changed since the last commit, in the order they changed.
func (b *AssetBundle) ChangedAssets() []*ConfigAsset {
	var out []*ConfigAsset
	for _, name := range b.changed.Keys() {
		if asset, ok := b.assets.Get(name); ok {
			out = append(out, asset)
		}
	}
	return out
}

// MergeDelta applies delta to the bundle and records the assets it changed.
func (b *AssetBundle) MergeDelta(delta *ConfigAsset) MergeResult {
	result := PerformMerge(b.assets, delta, b.Game)
	for _, name := range result.ChangedAssets {
		b.MarkChanged(name)
	}
	log.Debugf("Merged %s: %d applied, %d unchanged, %d ignored, %d sections skipped",
		delta.Name, result.Applied, result.Unchanged, result.Ignored, len(result.SkippedSections))
	return result
}

// CommitAssets hands every changed asset to c. Assets committed successfully
// are no longer considered changed; the first failure stops the commit.
func (b *AssetBundle) CommitAssets(c Committer) error {
	for _, asset := range b.ChangedAssets() {
		if err := c.CommitAsset(b.Game, asset); err != nil {
			return fmt.Errorf("failed to commit %s: %w", asset.Name, err)
		}
		b.changed.Delete(asset.Name)
	}
	b.changed = utils.NewOrderedMap[struct{}]()
	return nil
}

// Clone returns a deep copy of the bundle, including its change tracking.
func (b *AssetBundle) Clone() *AssetBundle {
	out := NewAssetBundle(b.Game)
	b.assets.Range(func(name string, a *ConfigAsset) bool {
		out.assets.Set(name, a.Clone())
		return true
	})
	for _, name := range b.changed.Keys() {
		out.changed.Set(name, struct{}{})
	}
	return out
}
