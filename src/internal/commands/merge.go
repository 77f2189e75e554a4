package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/service"
)

// MergeCommand applies the deltas of a merge job to its config bundle.
type MergeCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	dryRun bool
	diff   bool
}

func CreateMergeCommand() Runner {
	return &MergeCommand{}
}

func (c *MergeCommand) Name() string {
	return "merge"
}

func (c *MergeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet(c.Name(), flag.ExitOnError)
	c.fs.BoolVar(&c.dryRun, "dry-run", false, "Merge in memory and report, without writing files")
	c.fs.BoolVar(&c.diff, "diff", false, "Print a line diff of every changed file")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

func (c *MergeCommand) Run() error {
	rep, err := c.ctx.deps().Merger().Run(c.cfg, service.MergeOptions{DryRun: c.dryRun, Diff: c.diff})
	if err != nil {
		return err
	}

	printMergeReport(c.ctx.out(), rep)
	return nil
}

func printMergeReport(w io.Writer, rep *service.MergeReport) {
	for _, d := range rep.Deltas {
		fmt.Fprintf(w, "[%s] %s: %d applied, %d unchanged, %d ignored\n",
			d.Source, d.File, d.Result.Applied, d.Result.Unchanged, d.Result.Ignored)
		for _, skipped := range d.Result.SkippedSections {
			fmt.Fprintf(w, "  skipped [%s]: %s\n", skipped.Name, skipped.Reason)
		}
		for _, issue := range d.Issues {
			fmt.Fprintf(w, "  warning: %s\n", issue)
		}
	}

	for _, d := range rep.Diffs {
		fmt.Fprint(w, d.Diff)
	}

	switch {
	case rep.DryRun && len(rep.Pending) > 0:
		fmt.Fprintf(w, "Dry run: %d file(s) would change\n", len(rep.Pending))
		for _, name := range rep.Pending {
			fmt.Fprintf(w, "  %s\n", name)
		}
	case len(rep.Committed) == 0:
		fmt.Fprintln(w, "No config files changed")
	default:
		fmt.Fprintf(w, "Wrote %d file(s)\n", len(rep.Committed))
		for _, name := range rep.Committed {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
}
