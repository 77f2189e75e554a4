package config

import (
	"fmt"
	"path/filepath"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/iniformat"
	"github.com/m3tools/m3cd/src/internal/storage"
	"github.com/m3tools/m3cd/src/internal/utils"
)

type Config struct {
	// General holds the target game installation settings.
	General *GeneralConfig `toml:"general" json:"general"`
	// Deltas are applied in the order they are listed. Each one names a directory holding one mod's delta files.
	Deltas []*DeltaSource `toml:"delta,omitempty" json:"delta,omitempty"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// Game is the game whose config is merged: ME1, ME2, ME3, LE1, LE2 or LE3.
	Game string `toml:"game" json:"game" validate:"required,game"`
	// ConfigDir is the directory of loose ini files to merge into, relative to the job file.
	ConfigDir string `toml:"config_dir" json:"config_dir" validate:"required"`
	// OutputEncoding is the encoding of written ini files: "utf-8" (default) or "utf-16".
	OutputEncoding string `toml:"output_encoding,omitempty" json:"output_encoding,omitempty" validate:"omitempty,oneof=utf-8 utf-16"`
	// BaseDir holds untouched copies of the files in ConfigDir, relative to the job file (default: ".m3cd-base").
	// Merge runs start from these copies, so running a job again gives the same files.
	BaseDir string `toml:"base_dir,omitempty" json:"base_dir,omitempty"`
	// StrictStructs rejects deltas containing struct values with unbalanced brackets (default: false, which only warns).
	StrictStructs bool `toml:"strict_structs" json:"strict_structs"`
	// Backup settings for files overwritten by a commit.
	Backup *BackupConfig `toml:"backup,omitempty" json:"backup,omitempty"`
}

type BackupConfig struct {
	// Enabled copies each file before it is overwritten.
	Enabled bool `toml:"enabled" json:"enabled"`
	// NameTemplate names backup files. Available variables: {{asset}}, {{game}}, {{stamp}}.
	NameTemplate string `toml:"name_template,omitempty" json:"name_template,omitempty" validate:"omitempty,backup_template"`
}

type DeltaSource struct {
	// Name identifies the delta set in logs and reports.
	Name string `toml:"name" json:"name" validate:"required"`
	// Dir holds the delta files, relative to the job file.
	Dir string `toml:"dir" json:"dir" validate:"required"`
	// Prefix selects "<prefix>-*.m3cd" files in Dir.
	Prefix string `toml:"prefix,omitempty" json:"prefix,omitempty" validate:"omitempty,delta_prefix"`
	// Pattern is a doublestar glob relative to Dir, used instead of Prefix.
	Pattern string `toml:"pattern,omitempty" json:"pattern,omitempty" validate:"omitempty,delta_pattern"`
	// Enabled can switch a delta set off without removing it (default: true).
	Enabled *bool `toml:"enabled,omitempty" json:"enabled,omitempty"`
}

func (c *Config) GetConfigDir() string {
	return filepath.Dir(c._absConfigFilePath)
}

// GetConfigFilePath returns the absolute path of the job file.
func (c *Config) GetConfigFilePath() string {
	return c._absConfigFilePath
}

// SetConfigFilePath sets the path the job was loaded from, for jobs built in code.
func (c *Config) SetConfigFilePath(path string) {
	c._absConfigFilePath = path
}

func (c *Config) GetAbsConfigDir() string {
	return utils.GetAbsolutePath(c.General.ConfigDir, c.GetConfigDir())
}

// GetAbsBaseDir returns the directory holding the pristine copies of the config files.
func (c *Config) GetAbsBaseDir() string {
	dir := c.General.BaseDir
	if dir == "" {
		dir = DefaultBaseDir
	}
	return utils.GetAbsolutePath(dir, c.GetConfigDir())
}

func (c *Config) GetAbsDeltaDir(d *DeltaSource) string {
	return utils.GetAbsolutePath(d.Dir, c.GetConfigDir())
}

func (c *Config) GetGame() (coalesced.Game, error) {
	return coalesced.ParseGame(c.General.Game)
}

func (c *Config) GetOutputEncoding() iniformat.Encoding {
	if c.General.OutputEncoding == "utf-16" {
		return iniformat.EncodingUTF16LE
	}
	return iniformat.EncodingUTF8
}

// CommitOptions builds the storage options for this job.
func (c *Config) CommitOptions(dryRun bool) storage.CommitOptions {
	opts := storage.CommitOptions{
		Encoding: c.GetOutputEncoding(),
		DryRun:   dryRun,
	}
	if c.General.Backup != nil {
		opts.Backup = c.General.Backup.Enabled
		opts.BackupTemplate = c.General.Backup.NameTemplate
	}
	return opts
}

// EnabledDeltas returns the delta sources to apply, in job order.
func (c *Config) EnabledDeltas() []*DeltaSource {
	var out []*DeltaSource
	for _, d := range c.Deltas {
		if d.IsEnabled() {
			out = append(out, d)
		}
	}
	return out
}

// FindDelta looks up a delta source by name, ignoring case.
func (c *Config) FindDelta(name string) (*DeltaSource, error) {
	for _, d := range c.Deltas {
		if utils.FoldKey(d.Name) == utils.FoldKey(name) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("delta \"%s\" not found", name)
}

func (d *DeltaSource) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// GetPattern returns the glob used to discover this source's delta files.
func (d *DeltaSource) GetPattern() string {
	if d.Pattern != "" {
		return d.Pattern
	}
	return storage.DefaultDeltaPattern(d.Prefix)
}
