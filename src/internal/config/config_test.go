package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/iniformat"
	"github.com/m3tools/m3cd/src/internal/log"
)

func init() {
	log.DisableLogs()
}

const validJob = `[general]
game = "LE1"
config_dir = "Config"
output_encoding = "utf-16"
strict_structs = true

[general.backup]
enabled = true
name_template = "{{asset}}.{{stamp}}.bak"

[[delta]]
name = "PlotManagerFoo"
dir = "mods/PlotManagerFoo"
prefix = "PlotManagerFoo"

[[delta]]
name = "Disabled"
dir = "mods/Disabled"
pattern = "**/*.m3cd"
enabled = false
`

func writeJob(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for _, dir := range []string{"Config", "mods/PlotManagerFoo"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	configFile := filepath.Join(tmpDir, "m3cd.toml")
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return configFile
}

func TestLoadConfig_NonExistentFile(t *testing.T) {
	_, err := LoadConfig("/non/existent/m3cd.toml")
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	var appErr *errors.Error
	if !errors.As(err, &appErr) || appErr.Code != errors.ErrCodeConfig {
		t.Errorf("Expected CONFIG_ERROR, got %v", err)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	configFile := writeJob(t, "[general\ngame = \"LE1\"")

	_, err := LoadConfig(configFile)
	if err == nil {
		t.Fatal("Expected error for invalid TOML")
	}
	if !strings.Contains(err.Error(), "failed to parse job file") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configFile := writeJob(t, validJob)

	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error for valid job: %v", err)
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Fatalf("Expected job to validate: %v", err)
	}

	game, err := cfg.GetGame()
	if err != nil || game != coalesced.LE1 {
		t.Errorf("Expected LE1, got %v (%v)", game, err)
	}

	dir := filepath.Dir(configFile)
	if got := cfg.GetAbsConfigDir(); got != filepath.Join(dir, "Config") {
		t.Errorf("Expected config dir relative to job file, got %s", got)
	}
	if got := cfg.GetAbsDeltaDir(cfg.Deltas[0]); got != filepath.Join(dir, "mods", "PlotManagerFoo") {
		t.Errorf("Expected delta dir relative to job file, got %s", got)
	}
	if cfg.GetOutputEncoding() != iniformat.EncodingUTF16LE {
		t.Errorf("Expected utf-16 output, got %s", cfg.GetOutputEncoding())
	}

	enabled := cfg.EnabledDeltas()
	if len(enabled) != 1 || enabled[0].Name != "PlotManagerFoo" {
		t.Errorf("Expected only PlotManagerFoo to be enabled, got %v", enabled)
	}
	if enabled[0].GetPattern() != "PlotManagerFoo-*.m3cd" {
		t.Errorf("Unexpected pattern %s", enabled[0].GetPattern())
	}
	if cfg.Deltas[1].GetPattern() != "**/*.m3cd" {
		t.Errorf("Unexpected pattern %s", cfg.Deltas[1].GetPattern())
	}

	opts := cfg.CommitOptions(true)
	if !opts.DryRun || !opts.Backup || opts.BackupTemplate != "{{asset}}.{{stamp}}.bak" {
		t.Errorf("Unexpected commit options %+v", opts)
	}
}

func TestLoadConfig_RelativePath(t *testing.T) {
	configFile := writeJob(t, validJob)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(wd)
	}()
	if err := os.Chdir(filepath.Dir(configFile)); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}

	cfg, err := LoadConfig("m3cd.toml")
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}
	if !filepath.IsAbs(cfg.GetConfigFilePath()) {
		t.Errorf("Expected absolute job path, got %s", cfg.GetConfigFilePath())
	}
}

func TestFindDelta(t *testing.T) {
	cfg, err := ParseConfig([]byte(validJob))
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}

	d, err := cfg.FindDelta("plotmanagerfoo")
	if err != nil || d.Name != "PlotManagerFoo" {
		t.Errorf("Expected to find PlotManagerFoo, got %v (%v)", d, err)
	}
	if _, err := cfg.FindDelta("Missing"); err == nil {
		t.Error("Expected error for unknown delta")
	}
}

func TestSerializeConfig_RoundTrip(t *testing.T) {
	cfg, err := ParseConfig([]byte(validJob))
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}

	buf, err := cfg.SerializeConfig()
	if err != nil {
		t.Fatalf("Failed to serialize: %v", err)
	}

	again, err := ParseConfig(buf.Bytes())
	if err != nil {
		t.Fatalf("Failed to parse serialized job: %v\n%s", err, buf.String())
	}
	if again.General.Game != "LE1" || len(again.Deltas) != 2 {
		t.Errorf("Serialized job lost data:\n%s", buf.String())
	}
	if again.Deltas[1].IsEnabled() {
		t.Error("Expected second delta to stay disabled")
	}
	if !again.Deltas[0].IsEnabled() {
		t.Error("Expected first delta to stay enabled")
	}
}

func TestWriteConfig(t *testing.T) {
	configFile := writeJob(t, validJob)
	cfg, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Expected no error: %v", err)
	}

	cfg.General.Game = "LE2"
	if err := cfg.WriteConfig(); err != nil {
		t.Fatalf("Failed to write job: %v", err)
	}

	reloaded, err := LoadConfig(configFile)
	if err != nil {
		t.Fatalf("Failed to reload job: %v", err)
	}
	if reloaded.General.Game != "LE2" {
		t.Errorf("Expected LE2 after write, got %s", reloaded.General.Game)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{General: &GeneralConfig{
		Game:      "LE3",
		ConfigDir: "Config",
		Backup:    &BackupConfig{Enabled: true},
	}}

	if !cfg.ApplyDefaults() {
		t.Fatal("Expected defaults to be applied")
	}
	if cfg.General.OutputEncoding != "utf-8" {
		t.Errorf("Expected utf-8 default, got %s", cfg.General.OutputEncoding)
	}
	if cfg.General.Backup.NameTemplate == "" {
		t.Error("Expected default backup template")
	}
	if cfg.ApplyDefaults() {
		t.Error("Expected second call to change nothing")
	}
}

func TestGetAbsBaseDir(t *testing.T) {
	cfg := &Config{General: &GeneralConfig{Game: "LE3", ConfigDir: "Config"}}
	cfg.SetConfigFilePath(filepath.Join("/games", "job", "m3cd.toml"))

	if got, want := cfg.GetAbsBaseDir(), filepath.Join("/games", "job", DefaultBaseDir); got != want {
		t.Errorf("Expected default base dir %s, got %s", want, got)
	}

	cfg.General.BaseDir = "pristine/Config"
	if got, want := cfg.GetAbsBaseDir(), filepath.Join("/games", "job", "pristine", "Config"); got != want {
		t.Errorf("Expected base dir %s, got %s", want, got)
	}
}
