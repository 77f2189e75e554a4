// Package storage loads config assets from, and commits them back to, a
// directory of loose ini files.
//
// All file access goes through an afero.Fs. Production code passes
// afero.NewOsFs(); tests use afero.NewMemMapFs().
//
//	bundle, fingerprints, err := storage.LoadBundle(fs, "/games/LE1/Config", coalesced.LE1)
//	paths, err := storage.DiscoverDeltas(fs, "/mods", "PlotManagerFoo", "")
//	for _, p := range paths {
//		delta, err := storage.LoadDelta(fs, p)
//		bundle.MergeDelta(delta)
//	}
//	err = bundle.CommitAssets(storage.NewDirectoryCommitter(fs, "/games/LE1/Config", fingerprints, opts))
package storage
