package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/m3tools/m3cd/src/internal/domain"
	"github.com/m3tools/m3cd/src/internal/log"
)

func init() {
	log.DisableLogs()
}

const (
	bioGame  = "[SFXGame.BioWorldInfo]\nConditionalClasses=BioAutoConditionals\n"
	fooDelta = "[BIOGame.ini SFXGame.BioWorldInfo]\n+ConditionalClasses=PlotManagerFoo.BioAutoConditionals\n"
)

const jobTemplate = `[general]
game = "LE3"
config_dir = "Config"
strict_structs = %v

[[delta]]
name = "Foo"
dir = "mods/Foo"
prefix = "PlotManagerFoo"
`

// writeJob lays out a merge job in a temporary directory and returns the
// path of its job file. extra maps slash paths to file contents.
func writeJob(t *testing.T, strict bool, extra map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"m3cd.toml":                      fmt.Sprintf(jobTemplate, strict),
		"Config/BIOGame.ini":             bioGame,
		"mods/Foo/PlotManagerFoo-1.m3cd": fooDelta,
	}
	for rel, content := range extra {
		files[rel] = content
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return filepath.Join(dir, "m3cd.toml")
}

func newContext(configPath string) (*AppContext, *bytes.Buffer) {
	var out bytes.Buffer
	return &AppContext{
		ConfigPath: configPath,
		Stdout:     &out,
		Deps:       domain.NewAppDependencies(domain.AppConfig{Fs: afero.NewOsFs()}),
	}, &out
}

func runCommand(t *testing.T, cmd Runner, ctx *AppContext, args ...string) error {
	t.Helper()
	require.NoError(t, cmd.Init(args, ctx))
	return cmd.Run()
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
