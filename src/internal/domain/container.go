package domain

import (
	"github.com/spf13/afero"

	"github.com/m3tools/m3cd/src/internal/service"
)

// AppDependencies is a dependency injection container that holds all application dependencies.
//
// Usage:
//
//	deps := domain.NewAppDependencies(domain.AppConfig{ReadOnly: true})
//	report, err := deps.Merger().Run(cfg, service.MergeOptions{DryRun: true})
type AppDependencies struct {
	fs afero.Fs

	merger    JobMerger
	validator JobValidator
}

// AppConfig holds configuration for creating application dependencies.
type AppConfig struct {
	// Fs is the file system config bundles and delta files are read from.
	// If nil, the operating system file system is used.
	Fs afero.Fs

	// ReadOnly wraps Fs so that no file can be written. Commits then fail
	// with a storage error, which is what a read-only server wants.
	ReadOnly bool
}

// NewAppDependencies creates a new dependency container with production implementations.
func NewAppDependencies(cfg AppConfig) *AppDependencies {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if cfg.ReadOnly {
		fs = afero.NewReadOnlyFs(fs)
	}

	return &AppDependencies{
		fs:        fs,
		merger:    service.NewMergeService(fs),
		validator: service.NewValidationService(fs),
	}
}

// NewDefaultDependencies creates dependencies over the operating system file system.
func NewDefaultDependencies() *AppDependencies {
	return NewAppDependencies(AppConfig{})
}

// NewTestDependencies creates a dependency container with the given implementations.
// A nil merger or validator is replaced by the real service over fs.
func NewTestDependencies(fs afero.Fs, merger JobMerger, validator JobValidator) *AppDependencies {
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	if merger == nil {
		merger = service.NewMergeService(fs)
	}
	if validator == nil {
		validator = service.NewValidationService(fs)
	}
	return &AppDependencies{fs: fs, merger: merger, validator: validator}
}

// Fs returns the file system the services work on.
func (d *AppDependencies) Fs() afero.Fs {
	return d.fs
}

// Merger returns the merge service.
func (d *AppDependencies) Merger() JobMerger {
	return d.merger
}

// Validator returns the job validation service.
func (d *AppDependencies) Validator() JobValidator {
	return d.validator
}
