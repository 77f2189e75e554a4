package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/log"
)

// SnapshotBase copies every *.ini file of dir that has no copy in baseDir yet
// and returns the names of the files it copied. Existing copies are never
// refreshed: they are the state merges start from.
func SnapshotBase(fs afero.Fs, dir, baseDir string) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to read config directory %s", dir), err)
	}
	if err := fs.MkdirAll(baseDir, 0o755); err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to create base directory %s", baseDir), err)
	}

	var copied []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), AssetExtension) {
			continue
		}

		target := filepath.Join(baseDir, entry.Name())
		exists, err := afero.Exists(fs, target)
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("failed to stat %s", target), err)
		}
		if exists {
			continue
		}

		data, err := afero.ReadFile(fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("failed to read %s", entry.Name()), err)
		}
		if err := afero.WriteFile(fs, target, data, 0o644); err != nil {
			return nil, errors.NewStorageError(fmt.Sprintf("failed to write base copy %s", target), err)
		}
		copied = append(copied, entry.Name())
	}

	if len(copied) > 0 {
		log.Infof("Saved pristine copies of %d config file(s) to %s", len(copied), baseDir)
	}
	return copied, nil
}

// HasBase reports whether baseDir exists.
func HasBase(fs afero.Fs, baseDir string) (bool, error) {
	exists, err := afero.DirExists(fs, baseDir)
	if err != nil {
		return false, errors.NewStorageError(fmt.Sprintf("failed to stat %s", baseDir), err)
	}
	return exists, nil
}
