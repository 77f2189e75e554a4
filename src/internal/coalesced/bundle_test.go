package coalesced

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCommitter struct {
	committed []string
	failOn    string
}

func (c *recordingCommitter) CommitAsset(_ Game, asset *ConfigAsset) error {
	if asset.Name == c.failOn {
		return errors.New("disk full")
	}
	c.committed = append(c.committed, asset.Name)
	return nil
}

func TestAssetBundle_TracksChanges(t *testing.T) {
	b := newTarget(LE2, testAsset, testSection, "Foo", "a")
	b.AddAsset(NewConfigAsset("BIOInput.ini"))
	assert.False(t, b.HasChanges(), "loading assets is not a change")

	result := b.MergeDelta(newDelta(testAsset, testSection, "Foo", NewValue("a", AddUnique)))
	assert.False(t, result.Mutated())
	assert.False(t, b.HasChanges(), "a no-op merge is not a change")

	b.MergeDelta(newDelta(testAsset, testSection, "Foo", NewValue("b", Add)))
	require.True(t, b.HasChanges())
	changed := b.ChangedAssets()
	require.Len(t, changed, 1)
	assert.Equal(t, testAsset, changed[0].Name)
}

func TestAssetBundle_GetOrAddAsset(t *testing.T) {
	b := NewAssetBundle(ME3)

	a := b.GetOrAddAsset("BIOEngine.ini")
	assert.Same(t, a, b.GetOrAddAsset("bioengine.INI"))
	assert.Equal(t, 1, b.Len())
	assert.True(t, b.HasChanges())
}

func TestAssetBundle_CommitAssets(t *testing.T) {
	b := newTarget(LE3, testAsset, testSection, "Foo", "a")
	b.AddAsset(NewConfigAsset("BIOInput.ini"))
	b.AddAsset(NewConfigAsset("BIOEngine.ini"))
	b.MarkChanged("BIOInput.ini")
	b.MarkChanged(testAsset)

	c := &recordingCommitter{}
	require.NoError(t, b.CommitAssets(c))

	assert.Equal(t, []string{"BIOInput.ini", testAsset}, c.committed)
	assert.False(t, b.HasChanges())

	c = &recordingCommitter{}
	require.NoError(t, b.CommitAssets(c))
	assert.Empty(t, c.committed, "nothing left to commit")
}

func TestAssetBundle_CommitAssetsStopsOnFailure(t *testing.T) {
	b := newTarget(LE3, testAsset, testSection, "Foo", "a")
	b.AddAsset(NewConfigAsset("BIOInput.ini"))
	b.AddAsset(NewConfigAsset("BIOEngine.ini"))
	b.MarkChanged(testAsset)
	b.MarkChanged("BIOInput.ini")
	b.MarkChanged("BIOEngine.ini")

	c := &recordingCommitter{failOn: "BIOInput.ini"}
	err := b.CommitAssets(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BIOInput.ini")
	assert.Contains(t, err.Error(), "disk full")

	assert.Equal(t, []string{testAsset}, c.committed)
	require.True(t, b.HasChanges())
	var remaining []string
	for _, a := range b.ChangedAssets() {
		remaining = append(remaining, a.Name)
	}
	assert.Equal(t, []string{"BIOInput.ini", "BIOEngine.ini"}, remaining)
}

func TestAssetBundle_Clone(t *testing.T) {
	b := newTarget(LE1, testAsset, testSection, "Foo", "a")
	b.MarkChanged(testAsset)

	clone := b.Clone()
	clone.MergeDelta(newDelta(testAsset, testSection, "Foo", NewValue("b", Add)))

	assert.Equal(t, []string{"a"}, propertyStrings(t, b, testAsset, testSection, "Foo"))
	assert.Equal(t, []string{"a", "b"}, propertyStrings(t, clone, testAsset, testSection, "Foo"))
	assert.True(t, clone.HasChanges())
	assert.Equal(t, LE1, clone.Game)
}
