package api

import (
	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/report"
	"github.com/m3tools/m3cd/src/internal/service"
	"github.com/m3tools/m3cd/src/internal/structparse"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// HealthCheckResponse returns the state of the loaded workspace.
type HealthCheckResponse struct {
	Healthy        bool                   `json:"healthy"`
	Game           coalesced.Game         `json:"game"`
	ConfigDir      string                 `json:"config_dir"`
	PendingChanges bool                   `json:"pending_changes"`
	JobHash        string                 `json:"job_hash,omitempty"`
	Checks         map[string]CheckResult `json:"checks"`
}

// CheckResult contains the result of a single health check.
type CheckResult struct {
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// AssetsResponse lists the config files of the workspace.
type AssetsResponse struct {
	Game   coalesced.Game        `json:"game"`
	Assets []report.AssetSummary `json:"assets"`
}

// ParseStructRequest asks for a struct string to be split into entries.
// Open and Close default to "(" and ")".
type ParseStructRequest struct {
	Input string `json:"input"`
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

// ParseStructResponse returns the top-level entries of a struct string.
type ParseStructResponse struct {
	Entries []structparse.KeyValue `json:"entries"`
}

// MergeRequest carries a delta document in .m3cd text form.
type MergeRequest struct {
	// Name names the delta in logs and reports. Defaults to "request.m3cd".
	Name   string `json:"name,omitempty"`
	Delta  string `json:"delta"`
	DryRun bool   `json:"dry_run"`
}

// MergeResponse returns what a merge did, or would do on a dry run.
type MergeResponse struct {
	Report service.DeltaReport `json:"report"`
	Diffs  []report.FileDiff   `json:"diffs"`
	DryRun bool                `json:"dry_run"`
}

// CommitResponse lists the config files written by a commit.
type CommitResponse struct {
	Committed []string `json:"committed"`
}
