package storage

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/valyala/fasttemplate"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/hashing"
	"github.com/m3tools/m3cd/src/internal/iniformat"
	"github.com/m3tools/m3cd/src/internal/log"
)

// Backup template variables.
const (
	BackupTmplAsset = "asset"
	BackupTmplGame  = "game"
	BackupTmplStamp = "stamp"
)

// DefaultBackupTemplate names backups after the asset and the commit time.
const DefaultBackupTemplate = "{{asset}}.{{stamp}}.bak"

const backupStampLayout = "20060102-150405"

// CommitOptions controls how DirectoryCommitter writes assets.
type CommitOptions struct {
	Encoding iniformat.Encoding
	// Backup copies the previous file before it is overwritten.
	Backup bool
	// BackupTemplate names the backup file. See DefaultBackupTemplate.
	BackupTemplate string
	// DryRun encodes and fingerprints assets without writing anything.
	DryRun bool
}

// DirectoryCommitter writes committed assets as loose ini files into a directory.
type DirectoryCommitter struct {
	fs           afero.Fs
	dir          string
	fingerprints *hashing.FingerprintSet
	opts         CommitOptions
	now          func() time.Time
	written      []string
}

// NewDirectoryCommitter returns a committer writing into dir. fingerprints
// should be the set returned by LoadBundle; a nil set makes every commit write.
func NewDirectoryCommitter(fs afero.Fs, dir string, fingerprints *hashing.FingerprintSet, opts CommitOptions) *DirectoryCommitter {
	if fingerprints == nil {
		fingerprints = hashing.NewFingerprintSet()
	}
	if opts.BackupTemplate == "" {
		opts.BackupTemplate = DefaultBackupTemplate
	}
	return &DirectoryCommitter{
		fs:           fs,
		dir:          dir,
		fingerprints: fingerprints,
		opts:         opts,
		now:          time.Now,
	}
}

// CommitAsset implements coalesced.Committer.
func (c *DirectoryCommitter) CommitAsset(game coalesced.Game, asset *coalesced.ConfigAsset) error {
	var buf bytes.Buffer
	proxy := hashing.NewMD5WriterProxy(&buf)
	if err := iniformat.Encode(proxy, asset, c.opts.Encoding); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to encode %s", asset.Name), err)
	}
	checksum, err := proxy.GetChecksum()
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to checksum %s", asset.Name), err)
	}

	if c.fingerprints.Matches(asset.Name, checksum) {
		log.Debugf("%s is unchanged on disk, skipping write", asset.Name)
		return nil
	}

	path := filepath.Join(c.dir, asset.Name)
	if c.opts.DryRun {
		log.Infof("[dry-run] Would write %s (%d bytes)", path, buf.Len())
		c.written = append(c.written, asset.Name)
		return nil
	}

	if c.opts.Backup {
		if err := c.backup(game, asset.Name, path); err != nil {
			return err
		}
	}

	if err := afero.WriteFile(c.fs, path, buf.Bytes(), 0o644); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write %s", path), err)
	}
	c.fingerprints.Put(asset.Name, checksum)
	c.written = append(c.written, asset.Name)
	log.Infof("Wrote %s", path)
	return nil
}

// Written returns the names of the assets written so far, or that would have
// been written in dry-run mode. Assets whose encoding matched the file on disk
// are not included.
func (c *DirectoryCommitter) Written() []string {
	return c.written
}

func (c *DirectoryCommitter) backup(game coalesced.Game, assetName, path string) error {
	exists, err := afero.Exists(c.fs, path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to stat %s", path), err)
	}
	if !exists {
		return nil
	}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to read %s for backup", path), err)
	}

	backupPath := filepath.Join(c.dir, BackupName(c.opts.BackupTemplate, game, assetName, c.now()))
	if strings.EqualFold(backupPath, path) {
		return errors.NewStorageError(fmt.Sprintf("backup of %s would overwrite the file itself", path), nil)
	}
	if err := afero.WriteFile(c.fs, backupPath, data, 0o644); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write backup %s", backupPath), err)
	}
	log.Debugf("Backed up %s to %s", path, backupPath)
	return nil
}

// BackupName expands a backup file name template. Templates are expected to
// have passed ValidateBackupTemplate; an unparsable one is returned as is.
func BackupName(template string, game coalesced.Game, assetName string, at time.Time) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	t, err := fasttemplate.NewTemplate(template, "{{", "}}")
	if err != nil {
		return template
	}
	return t.ExecuteString(map[string]interface{}{
		BackupTmplAsset: assetName,
		BackupTmplGame:  game.String(),
		BackupTmplStamp: at.Format(backupStampLayout),
	})
}

// ValidateBackupTemplate checks that template parses, uses only known
// variables, and names a file rather than a path.
func ValidateBackupTemplate(template string) error {
	if template == "" {
		return fmt.Errorf("backup name template is empty")
	}
	if strings.ContainsAny(template, `/\`) {
		return fmt.Errorf("backup name template %q must not contain path separators", template)
	}

	t, err := fasttemplate.NewTemplate(template, "{{", "}}")
	if err != nil {
		return fmt.Errorf("invalid backup name template %q: %w", template, err)
	}

	var unknown string
	t.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		switch tag {
		case BackupTmplAsset, BackupTmplGame, BackupTmplStamp:
		default:
			if unknown == "" {
				unknown = tag
			}
		}
		return 0, nil
	})
	if unknown != "" {
		return fmt.Errorf("unknown variable {{%s}} in backup name template", unknown)
	}
	return nil
}
