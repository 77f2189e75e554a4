package commands

import (
	"flag"
	"fmt"

	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/errors"
)

// ValidateCommand checks a merge job and every delta file it would apply.
type ValidateCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func CreateValidateCommand() Runner {
	return &ValidateCommand{}
}

func (c *ValidateCommand) Name() string {
	return "validate"
}

func (c *ValidateCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet(c.Name(), flag.ExitOnError)

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	// Job validation happens in Run so that its errors are reported like
	// delta errors.
	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load merge job: %w", err)
	}
	cfg.ApplyDefaults()
	c.cfg = cfg

	return nil
}

func (c *ValidateCommand) Run() error {
	out := c.ctx.out()

	rep, err := c.ctx.deps().Validator().ValidateJob(c.cfg)
	if err != nil {
		fmt.Fprintf(out, "Merge job %s is invalid:\n%v\n", c.ctx.ConfigPath, err)
		return err
	}

	strict := c.cfg.General.StrictStructs
	for _, f := range rep.Files {
		switch {
		case f.Error != "":
			fmt.Fprintf(out, "FAIL [%s] %s: %s\n", f.Source, f.Path, f.Error)
		case len(f.Issues) > 0 && strict:
			fmt.Fprintf(out, "FAIL [%s] %s: %d malformed struct value(s)\n", f.Source, f.Path, len(f.Issues))
		case len(f.Issues) > 0:
			fmt.Fprintf(out, "WARN [%s] %s: %d malformed struct value(s)\n", f.Source, f.Path, len(f.Issues))
		default:
			fmt.Fprintf(out, "OK   [%s] %s (%d values)\n", f.Source, f.Path, f.Values)
		}
		for _, issue := range f.Issues {
			fmt.Fprintf(out, "     %s\n", issue)
		}
	}

	if !rep.OK(strict) {
		return errors.New(errors.ErrCodeValidation, "one or more delta files failed validation")
	}
	fmt.Fprintf(out, "Merge job is valid: %d delta file(s) checked\n", len(rep.Files))
	return nil
}
