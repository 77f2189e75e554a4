package service

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/report"
	"github.com/m3tools/m3cd/src/internal/storage"
	"github.com/m3tools/m3cd/src/internal/structparse"
)

// MergeOptions controls a merge run.
type MergeOptions struct {
	// DryRun merges in memory and reports without writing files.
	DryRun bool
	// Diff collects a line diff of every changed file.
	Diff bool
}

// MergeReport summarizes a merge run.
type MergeReport struct {
	Game      coalesced.Game        `json:"game"`
	Deltas    []DeltaReport         `json:"deltas"`
	Total     coalesced.MergeResult `json:"total"`
	Diffs     []report.FileDiff     `json:"diffs,omitempty"`
	Committed []string              `json:"committed,omitempty"`
	// Pending lists the files a dry run would have written.
	Pending []string `json:"pending,omitempty"`
	DryRun  bool     `json:"dry_run"`
}

// LoadedDelta is a decoded delta file with the job source it came from.
type LoadedDelta struct {
	Source string
	Path   string
	Asset  *coalesced.ConfigAsset
}

// MergeService runs merge jobs against a file system.
type MergeService struct {
	fs afero.Fs
}

// NewMergeService creates a merge service over fs.
func NewMergeService(fs afero.Fs) *MergeService {
	return &MergeService{fs: fs}
}

// OpenWorkspace loads the config bundle named by cfg.
func (s *MergeService) OpenWorkspace(cfg *config.Config, dryRun bool) (*Workspace, error) {
	game, err := cfg.GetGame()
	if err != nil {
		return nil, errors.NewConfigError("invalid game", err)
	}
	return OpenWorkspace(s.fs, cfg.GetAbsConfigDir(), game, cfg.CommitOptions(dryRun))
}

// openBaseWorkspace loads the pristine copies of the job's config files.
func (s *MergeService) openBaseWorkspace(cfg *config.Config, dryRun bool) (*Workspace, error) {
	game, err := cfg.GetGame()
	if err != nil {
		return nil, errors.NewConfigError("invalid game", err)
	}
	return OpenBaseWorkspace(s.fs, cfg.GetAbsConfigDir(), cfg.GetAbsBaseDir(), game, cfg.CommitOptions(dryRun))
}

// LoadDeltas discovers and decodes the delta files of every enabled source,
// in job order. Struct values with unbalanced brackets fail the load when the
// job is strict and are logged otherwise.
func (s *MergeService) LoadDeltas(cfg *config.Config) ([]LoadedDelta, error) {
	var out []LoadedDelta

	for _, source := range cfg.EnabledDeltas() {
		dir := cfg.GetAbsDeltaDir(source)
		paths, err := storage.DiscoverDeltas(s.fs, dir, source.Prefix, source.Pattern)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			log.Warnf("Delta source [%s]: no files match %s in %s", source.Name, source.GetPattern(), dir)
			continue
		}

		for _, path := range paths {
			asset, err := storage.LoadDelta(s.fs, path)
			if err != nil {
				return nil, err
			}
			if err := checkStructs(asset, cfg.General.StrictStructs); err != nil {
				return nil, err
			}
			log.Debugf("Delta source [%s]: loaded %s (%d values)", source.Name, filepath.Base(path), asset.ValueCount())
			out = append(out, LoadedDelta{Source: source.Name, Path: path, Asset: asset})
		}
	}

	return out, nil
}

func checkStructs(asset *coalesced.ConfigAsset, strict bool) error {
	issues := structparse.CheckAsset(asset)
	if len(issues) == 0 {
		return nil
	}
	if strict {
		return errors.NewDeltaError(
			fmt.Sprintf("delta %s has %d malformed struct value(s)", asset.Name, len(issues)), issues[0])
	}
	for _, issue := range issues {
		log.Warnf("Delta %s: %v", asset.Name, issue)
	}
	return nil
}

// Run applies every delta of cfg to the pristine copies of its config files
// and commits the result unless opts.DryRun is set. Running the same job
// twice leaves the files as the first run wrote them.
func (s *MergeService) Run(cfg *config.Config, opts MergeOptions) (*MergeReport, error) {
	deltas, err := s.LoadDeltas(cfg)
	if err != nil {
		return nil, err
	}

	ws, err := s.openBaseWorkspace(cfg, opts.DryRun)
	if err != nil {
		return nil, err
	}

	rep := &MergeReport{Game: ws.Game(), DryRun: opts.DryRun}

	for _, d := range deltas {
		log.Infof("Applying %s from [%s]", d.Asset.Name, d.Source)
		dr, _, err := ws.Apply(d.Source, d.Asset, false)
		if err != nil {
			return nil, err
		}
		rep.Deltas = append(rep.Deltas, dr)
		rep.Total.Append(dr.Result)
	}

	if opts.Diff {
		after := ws.Snapshot()
		var names []string
		for _, asset := range after.Assets() {
			names = append(names, asset.Name)
		}
		diffs, err := report.BundleDiffs(ws.OnDisk(), after, names)
		if err != nil {
			return nil, err
		}
		rep.Diffs = diffs
	}

	committed, err := ws.Commit(opts.DryRun)
	if err != nil {
		return nil, err
	}
	if opts.DryRun {
		rep.Pending = committed
	} else {
		rep.Committed = committed
	}

	log.Infof("Merge finished: %d applied, %d unchanged, %d ignored, %d sections skipped, %d files written",
		rep.Total.Applied, rep.Total.Unchanged, rep.Total.Ignored, len(rep.Total.SkippedSections), len(committed))
	return rep, nil
}
