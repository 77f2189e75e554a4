package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/storage"
)

// DefaultConfigFile is the job file looked up when -config is not given.
const DefaultConfigFile = "m3cd.toml"

// DefaultBaseDir is used when general.base_dir is not set.
const DefaultBaseDir = ".m3cd-base"

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, errors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		log.Errorf("Job file not found: %s", configFile)
		return nil, errors.NewConfigError(fmt.Sprintf("job file not found: %s", configFile), nil)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.NewConfigError("failed to read job file", err)
	}

	config, err := ParseConfig(content)
	if err != nil {
		return nil, err
	}
	config._absConfigFilePath = configFile

	log.Debugf("Job file path: %s", configFile)
	if config.General != nil {
		log.Debugf("Config directory: %s", config.GetAbsConfigDir())
	}

	return config, nil
}

// ParseConfig decodes a job from TOML. The result has no file path, so
// relative directories resolve against the working directory until
// SetConfigFilePath is called.
func ParseConfig(content []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if stderrors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, errors.NewConfigError(fmt.Sprintf("failed to parse job file at line %d, column %d", row, col), err)
		}
		return nil, errors.NewConfigError("failed to parse job file", err)
	}
	return &config, nil
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

func (c *Config) WriteConfig() error {
	config, err := c.SerializeConfig()
	if err != nil {
		return err
	}
	if err := os.WriteFile(c._absConfigFilePath, config.Bytes(), 0644); err != nil {
		return err
	}
	return nil
}

// ApplyDefaults fills optional settings that were left out and reports
// whether anything changed.
func (c *Config) ApplyDefaults() bool {
	changed := false
	if c.General == nil {
		return false
	}

	if c.General.OutputEncoding == "" {
		c.General.OutputEncoding = "utf-8"
		changed = true
	}

	if c.General.Backup != nil && c.General.Backup.Enabled && c.General.Backup.NameTemplate == "" {
		c.General.Backup.NameTemplate = storage.DefaultBackupTemplate
		log.Infof("Using default backup name template %q", storage.DefaultBackupTemplate)
		changed = true
	}

	return changed
}
