package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/config"
	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/iniformat"
	"github.com/m3tools/m3cd/src/internal/report"
	"github.com/m3tools/m3cd/src/internal/utils"
)

const (
	dumpFormatText = "text"
	dumpFormatJSON = "json"
	dumpFormatXLSX = "xlsx"
)

// DumpCommand prints the config bundle of a merge job as it is on disk.
type DumpCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	format  string
	outPath string
	asset   string
}

func CreateDumpCommand() Runner {
	return &DumpCommand{}
}

func (c *DumpCommand) Name() string {
	return "dump"
}

func (c *DumpCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx
	c.fs = flag.NewFlagSet(c.Name(), flag.ExitOnError)
	c.fs.StringVar(&c.format, "format", dumpFormatText, "Output format: text, json or xlsx")
	c.fs.StringVar(&c.outPath, "out", "", "Write to this file instead of stdout")
	c.fs.StringVar(&c.asset, "asset", "", "Dump only this config file")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	switch c.format {
	case dumpFormatText, dumpFormatJSON, dumpFormatXLSX:
	default:
		return fmt.Errorf("unknown dump format %q, expected text, json or xlsx", c.format)
	}

	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	return nil
}

func (c *DumpCommand) Run() (err error) {
	ws, err := c.ctx.deps().Merger().OpenWorkspace(c.cfg, true)
	if err != nil {
		return err
	}

	bundle := ws.Snapshot()
	if c.asset != "" {
		bundle, err = onlyAsset(bundle, c.asset)
		if err != nil {
			return err
		}
	}

	w := c.ctx.out()
	if c.outPath != "" {
		f, createErr := c.ctx.deps().Fs().Create(c.outPath)
		if createErr != nil {
			return fmt.Errorf("failed to create %s: %w", c.outPath, createErr)
		}
		defer utils.CloseInto(f, &err)
		w = f
	}

	switch c.format {
	case dumpFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report.ViewBundle(bundle))
	case dumpFormatXLSX:
		return report.WriteXLSX(w, bundle)
	default:
		return dumpText(w, bundle)
	}
}

func dumpText(w io.Writer, bundle *coalesced.AssetBundle) error {
	for i, asset := range bundle.Assets() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "; ==== %s ====\n", asset.Name)
		if err := iniformat.Encode(w, asset, iniformat.EncodingUTF8); err != nil {
			return err
		}
	}
	return nil
}

func onlyAsset(bundle *coalesced.AssetBundle, name string) (*coalesced.AssetBundle, error) {
	asset, ok := bundle.Asset(name)
	if !ok {
		var names []string
		for _, a := range bundle.Assets() {
			names = append(names, a.Name)
		}
		msg := fmt.Sprintf("config file %s not found", name)
		if suggestions := coalesced.SuggestNames(name, names, 3); len(suggestions) > 0 {
			msg += fmt.Sprintf(" (did you mean %v?)", suggestions)
		}
		return nil, errors.New(errors.ErrCodeValidation, msg)
	}

	out := coalesced.NewAssetBundle(bundle.Game)
	out.AddAsset(asset)
	return out, nil
}
