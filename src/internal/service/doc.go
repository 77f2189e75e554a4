// Package service orchestrates merge jobs for both the CLI and the API.
//
// MergeService ties the layers together: it loads the job's config bundle
// through storage, discovers and decodes delta files, checks their struct
// values, applies them with the coalesced merge engine and commits the
// changed files.
//
// # Example Usage
//
//	svc := service.NewMergeService(afero.NewOsFs())
//	report, err := svc.Run(cfg, service.MergeOptions{DryRun: true, Diff: true})
//	if err != nil {
//	    return err
//	}
//	for _, d := range report.Diffs {
//	    fmt.Print(d.Diff)
//	}
//
// A Workspace keeps a loaded bundle in memory so that deltas can be applied
// one at a time and committed later, which is what the API server does.
package service
