package service

import (
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/storage"
	"github.com/m3tools/m3cd/src/internal/structparse"
)

// FileCheck is the outcome of decoding one delta file.
type FileCheck struct {
	Source string   `json:"source"`
	Path   string   `json:"path"`
	Values int      `json:"values"`
	Error  string   `json:"error,omitempty"`
	Issues []string `json:"issues,omitempty"`
}

// ValidationReport is the outcome of ValidateJob.
type ValidationReport struct {
	Files []FileCheck `json:"files"`
}

// OK reports whether every file decoded. Struct issues count as failures
// only for strict jobs.
func (r *ValidationReport) OK(strict bool) bool {
	for _, f := range r.Files {
		if f.Error != "" || (strict && len(f.Issues) > 0) {
			return false
		}
	}
	return true
}

// ValidationService checks merge jobs without applying them.
type ValidationService struct {
	fs afero.Fs
}

// NewValidationService creates a validation service over fs.
func NewValidationService(fs afero.Fs) *ValidationService {
	return &ValidationService{fs: fs}
}

// ValidateJob validates cfg and decodes every delta file it would apply.
//
// Unlike a merge run, a bad delta file does not stop the check: every file
// gets an entry in the report. The returned error is the job's own
// validation error or a failure to list a delta directory.
func (v *ValidationService) ValidateJob(cfg *config.Config) (*ValidationReport, error) {
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}

	rep := &ValidationReport{}
	for _, source := range cfg.EnabledDeltas() {
		paths, err := storage.DiscoverDeltas(v.fs, cfg.GetAbsDeltaDir(source), source.Prefix, source.Pattern)
		if err != nil {
			return nil, err
		}

		for _, path := range paths {
			check := FileCheck{Source: source.Name, Path: filepath.ToSlash(path)}
			asset, err := storage.LoadDelta(v.fs, path)
			if err != nil {
				check.Error = err.Error()
			} else {
				check.Values = asset.ValueCount()
				for _, issue := range structparse.CheckAsset(asset) {
					check.Issues = append(check.Issues, issue.Error())
				}
			}
			rep.Files = append(rep.Files, check)
		}
	}
	return rep, nil
}
