package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/report"
	"github.com/m3tools/m3cd/src/internal/structparse"
)

func TestMergeCommand_DryRun(t *testing.T) {
	jobPath := writeJob(t, false, nil)
	ctx, out := newContext(jobPath)

	require.NoError(t, runCommand(t, CreateMergeCommand(), ctx, "-dry-run", "-diff"))

	assert.Contains(t, out.String(), "[Foo] PlotManagerFoo-1.m3cd: 1 applied, 0 unchanged, 0 ignored")
	assert.Contains(t, out.String(), "--- BIOGame.ini")
	assert.Contains(t, out.String(), "Dry run: 1 file(s) would change")
	assert.Equal(t, bioGame, readFile(t, filepath.Join(filepath.Dir(jobPath), "Config", "BIOGame.ini")))
}

func TestMergeCommand_Writes(t *testing.T) {
	jobPath := writeJob(t, false, nil)
	ctx, out := newContext(jobPath)

	require.NoError(t, runCommand(t, CreateMergeCommand(), ctx))

	assert.Contains(t, out.String(), "Wrote 1 file(s)")
	assert.Contains(t, readFile(t, filepath.Join(filepath.Dir(jobPath), "Config", "BIOGame.ini")),
		"PlotManagerFoo.BioAutoConditionals")

	written := readFile(t, filepath.Join(filepath.Dir(jobPath), "Config", "BIOGame.ini"))

	// A second run merges into the untouched copy again and ends up with the same file.
	out.Reset()
	require.NoError(t, runCommand(t, CreateMergeCommand(), ctx))
	assert.Contains(t, out.String(), "1 applied, 0 unchanged")
	assert.Contains(t, out.String(), "No config files changed")
	assert.Equal(t, written, readFile(t, filepath.Join(filepath.Dir(jobPath), "Config", "BIOGame.ini")))
	assert.Equal(t, bioGame, readFile(t, filepath.Join(filepath.Dir(jobPath), ".m3cd-base", "BIOGame.ini")))
}

func TestMergeCommand_StrictStructs(t *testing.T) {
	malformed := map[string]string{
		"mods/Foo/PlotManagerFoo-2.m3cd": "[BIOGame.ini SFXGame.BioWorldInfo]\nBindings=(Name=\"F\"\n",
	}

	jobPath := writeJob(t, true, malformed)
	ctx, _ := newContext(jobPath)
	err := runCommand(t, CreateMergeCommand(), ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDelta))

	jobPath = writeJob(t, false, malformed)
	ctx, out := newContext(jobPath)
	require.NoError(t, runCommand(t, CreateMergeCommand(), ctx, "-dry-run"))
	assert.Contains(t, out.String(), "warning:")
}

func TestMergeCommand_InvalidJob(t *testing.T) {
	jobPath := writeJob(t, false, map[string]string{"m3cd.toml": "[general]\ngame = \"LE3\"\n"})
	ctx, _ := newContext(jobPath)

	err := CreateMergeCommand().Init(nil, ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge job validation failed")
}

func TestParseStructCommand(t *testing.T) {
	ctx, out := newContext("")

	require.NoError(t, runCommand(t, CreateParseStructCommand(), ctx, `(Name="F", Command="Jump")`))
	assert.Equal(t, "Name = \"F\"\nCommand = \"Jump\"\n", out.String())

	out.Reset()
	require.NoError(t, runCommand(t, CreateParseStructCommand(), ctx, "-brackets", "-json", "[A=1, A=2]"))
	var entries []structparse.KeyValue
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	assert.Equal(t, []structparse.KeyValue{{Key: "A", Value: "1"}, {Key: "A", Value: "2"}}, entries)

	err := runCommand(t, CreateParseStructCommand(), ctx, "(A=1")
	assert.True(t, errors.Is(err, errors.ErrMalformedStruct))

	assert.Error(t, CreateParseStructCommand().Init(nil, ctx))
}

func TestDumpCommand(t *testing.T) {
	jobPath := writeJob(t, false, nil)

	t.Run("text", func(t *testing.T) {
		ctx, out := newContext(jobPath)
		require.NoError(t, runCommand(t, CreateDumpCommand(), ctx))
		assert.Contains(t, out.String(), "; ==== BIOGame.ini ====")
		assert.Contains(t, out.String(), "ConditionalClasses=BioAutoConditionals")
	})

	t.Run("json", func(t *testing.T) {
		ctx, out := newContext(jobPath)
		require.NoError(t, runCommand(t, CreateDumpCommand(), ctx, "-format", "json"))
		var views []report.AssetView
		require.NoError(t, json.Unmarshal(out.Bytes(), &views))
		require.Len(t, views, 1)
		assert.Equal(t, "BIOGame.ini", views[0].Name)
	})

	t.Run("xlsx", func(t *testing.T) {
		ctx, _ := newContext(jobPath)
		outPath := filepath.Join(t.TempDir(), "bundle.xlsx")
		require.NoError(t, runCommand(t, CreateDumpCommand(), ctx, "-format", "xlsx", "-out", outPath))

		f, err := excelize.OpenFile(outPath)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(report.ValuesSheet)
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("unknown asset", func(t *testing.T) {
		ctx, _ := newContext(jobPath)
		err := runCommand(t, CreateDumpCommand(), ctx, "-asset", "BIOGam.ini")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "did you mean [BIOGame.ini]")
	})

	t.Run("unknown format", func(t *testing.T) {
		ctx, _ := newContext(jobPath)
		assert.Error(t, CreateDumpCommand().Init([]string{"-format", "csv"}, ctx))
	})
}

func TestValidateCommand(t *testing.T) {
	jobPath := writeJob(t, false, nil)
	ctx, out := newContext(jobPath)

	require.NoError(t, runCommand(t, CreateValidateCommand(), ctx))
	assert.Contains(t, out.String(), "OK   [Foo]")
	assert.Contains(t, out.String(), "Merge job is valid: 1 delta file(s) checked")

	jobPath = writeJob(t, false, map[string]string{
		"mods/Foo/PlotManagerFoo-2.m3cd": "[NoAssetName]\nA=1\n",
	})
	ctx, out = newContext(jobPath)
	err := runCommand(t, CreateValidateCommand(), ctx)
	require.Error(t, err)
	assert.Contains(t, out.String(), "FAIL [Foo]")
}

func TestValidateCommand_InvalidJob(t *testing.T) {
	jobPath := writeJob(t, false, nil)
	require.NoError(t, os.RemoveAll(filepath.Join(filepath.Dir(jobPath), "mods")))
	ctx, out := newContext(jobPath)

	err := runCommand(t, CreateValidateCommand(), ctx)
	require.Error(t, err)
	assert.Contains(t, out.String(), "is invalid")
}

func TestServeCommand_Init(t *testing.T) {
	jobPath := writeJob(t, false, nil)
	ctx, _ := newContext(jobPath)

	cmd := CreateServeCommand().(*ServeCommand)
	require.NoError(t, cmd.Init([]string{"-listen", "127.0.0.1:0"}, ctx))

	assert.Equal(t, "serve", cmd.Name())
	assert.Equal(t, "127.0.0.1:0", cmd.listenAddr)
	assert.Equal(t, filepath.Join(filepath.Dir(jobPath), "Config"), cmd.workspace.Dir())
}
