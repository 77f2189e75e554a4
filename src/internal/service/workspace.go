package service

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/hashing"
	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/report"
	"github.com/m3tools/m3cd/src/internal/storage"
	"github.com/m3tools/m3cd/src/internal/structparse"
)

// DeltaReport describes the application of one delta file.
type DeltaReport struct {
	Source string                `json:"source"`
	File   string                `json:"file"`
	Result coalesced.MergeResult `json:"result"`
	Issues []string              `json:"issues,omitempty"`
}

// Workspace is a config bundle loaded into memory together with what is
// needed to commit it back. It is safe for concurrent use.
type Workspace struct {
	mu sync.Mutex

	fs           afero.Fs
	dir          string
	bundle       *coalesced.AssetBundle
	onDisk       *coalesced.AssetBundle
	fingerprints *hashing.FingerprintSet
	commitOpts   storage.CommitOptions
}

// OpenWorkspace loads the bundle of game from dir.
func OpenWorkspace(fs afero.Fs, dir string, game coalesced.Game, opts storage.CommitOptions) (*Workspace, error) {
	bundle, fingerprints, err := storage.LoadBundle(fs, dir, game)
	if err != nil {
		return nil, err
	}
	return &Workspace{
		fs:           fs,
		dir:          dir,
		bundle:       bundle,
		onDisk:       bundle.Clone(),
		fingerprints: fingerprints,
		commitOpts:   opts,
	}, nil
}

// OpenBaseWorkspace loads the pristine copies kept in baseDir instead of the
// files in dir, so merges do not stack on the output of earlier merges.
// Files of dir without a copy are snapshotted first; in dry-run mode nothing
// is written and the files of dir stand in for missing copies.
//
// A file whose copy differs from the file in dir was changed by an earlier
// merge. It is rewritten from the base even when the current deltas do not
// touch it.
func OpenBaseWorkspace(fs afero.Fs, dir, baseDir string, game coalesced.Game, opts storage.CommitOptions) (*Workspace, error) {
	live, fingerprints, err := storage.LoadBundle(fs, dir, game)
	if err != nil {
		return nil, err
	}

	if !opts.DryRun {
		if _, err := storage.SnapshotBase(fs, dir, baseDir); err != nil {
			return nil, err
		}
	}

	bundle := coalesced.NewAssetBundle(game)
	baseFingerprints := hashing.NewFingerprintSet()
	hasBase, err := storage.HasBase(fs, baseDir)
	if err != nil {
		return nil, err
	}
	if hasBase {
		if bundle, baseFingerprints, err = storage.LoadBundle(fs, baseDir, game); err != nil {
			return nil, err
		}
	}

	for _, asset := range live.Assets() {
		if _, ok := bundle.Asset(asset.Name); !ok {
			bundle.AddAsset(asset.Clone())
			continue
		}
		if checksum, ok := baseFingerprints.Get(asset.Name); ok && !fingerprints.Matches(asset.Name, checksum) {
			log.Debugf("%s differs from its base copy, it will be rewritten", asset.Name)
			bundle.MarkChanged(asset.Name)
		}
	}

	return &Workspace{
		fs:           fs,
		dir:          dir,
		bundle:       bundle,
		onDisk:       live,
		fingerprints: fingerprints,
		commitOpts:   opts,
	}, nil
}

// Game returns the game of the loaded bundle.
func (w *Workspace) Game() coalesced.Game {
	return w.bundle.Game
}

// Dir returns the directory the bundle was loaded from.
func (w *Workspace) Dir() string {
	return w.dir
}

// Snapshot returns a deep copy of the current bundle.
func (w *Workspace) Snapshot() *coalesced.AssetBundle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bundle.Clone()
}

// OnDisk returns a deep copy of the bundle as it was on disk when the
// workspace was opened.
func (w *Workspace) OnDisk() *coalesced.AssetBundle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onDisk.Clone()
}

// HasChanges reports whether the bundle has uncommitted changes.
func (w *Workspace) HasChanges() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bundle.HasChanges()
}

// Apply merges delta into the bundle. With dryRun the bundle is left
// untouched and the result is computed on a copy. The returned diffs cover
// every file the delta changed.
func (w *Workspace) Apply(source string, delta *coalesced.ConfigAsset, dryRun bool) (DeltaReport, []report.FileDiff, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	before := w.bundle.Clone()
	target := w.bundle
	if dryRun {
		target = before.Clone()
	}

	result := target.MergeDelta(delta)
	rep := DeltaReport{Source: source, File: delta.Name, Result: result}
	for _, issue := range structparse.CheckAsset(delta) {
		rep.Issues = append(rep.Issues, issue.Error())
	}

	diffs, err := report.BundleDiffs(before, target, result.ChangedAssets)
	if err != nil {
		return rep, nil, fmt.Errorf("failed to diff %s: %w", delta.Name, err)
	}
	return rep, diffs, nil
}

// Commit writes every changed file whose content differs from the file on
// disk. With dryRun nothing is written. It returns the names of the files
// that were, or would have been, written.
func (w *Workspace) Commit(dryRun bool) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.bundle.HasChanges() {
		log.Infof("No config files changed, nothing to commit")
		return nil, nil
	}

	opts := w.commitOpts
	opts.DryRun = opts.DryRun || dryRun
	committer := storage.NewDirectoryCommitter(w.fs, w.dir, w.fingerprints, opts)
	if opts.DryRun {
		// Encode without writing, keeping the changes pending.
		for _, asset := range w.bundle.ChangedAssets() {
			if err := committer.CommitAsset(w.bundle.Game, asset); err != nil {
				return nil, err
			}
		}
		return committer.Written(), nil
	}

	if err := w.bundle.CommitAssets(committer); err != nil {
		return nil, err
	}
	return committer.Written(), nil
}
