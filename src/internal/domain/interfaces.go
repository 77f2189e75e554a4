// Package domain defines core interfaces for dependency injection and abstraction.
//
// This package contains the interfaces the command line and the HTTP API use
// to reach the merge services, so either side can be tested with fakes.
package domain

import (
	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/service"
)

// JobMerger applies merge jobs to config bundles.
type JobMerger interface {
	// Run applies every delta of the job and commits the result
	// unless opts.DryRun is set.
	Run(cfg *config.Config, opts service.MergeOptions) (*service.MergeReport, error)

	// OpenWorkspace loads the config bundle of the job into memory.
	OpenWorkspace(cfg *config.Config, dryRun bool) (*service.Workspace, error)
}

// JobValidator checks merge jobs without applying them.
type JobValidator interface {
	// ValidateJob validates the job and decodes every delta file it names.
	ValidateJob(cfg *config.Config) (*service.ValidationReport, error)
}
