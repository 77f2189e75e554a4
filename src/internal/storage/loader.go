package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/m3tools/m3cd/src/internal/coalesced"
	"github.com/m3tools/m3cd/src/internal/errors"
	"github.com/m3tools/m3cd/src/internal/hashing"
	"github.com/m3tools/m3cd/src/internal/iniformat"
	"github.com/m3tools/m3cd/src/internal/log"
	"github.com/m3tools/m3cd/src/internal/utils"
)

// AssetExtension is the extension of the loose config files making up a bundle.
const AssetExtension = ".ini"

// LoadBundle reads every *.ini file directly inside dir into a bundle for game.
// The returned set holds the MD5 checksum of each file as read.
func LoadBundle(fs afero.Fs, dir string, game coalesced.Game) (*coalesced.AssetBundle, *hashing.FingerprintSet, error) {
	if !game.HasLooseConfig() {
		return nil, nil, errors.NewUnsupportedGameError(game.String(), "loose ini")
	}

	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, nil, errors.NewStorageError(fmt.Sprintf("failed to read config directory %s", dir), err)
	}

	bundle := coalesced.NewAssetBundle(game)
	fingerprints := hashing.NewFingerprintSet()

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), AssetExtension) {
			continue
		}

		asset, checksum, err := loadAsset(fs, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, nil, err
		}
		bundle.AddAsset(asset)
		fingerprints.Put(asset.Name, checksum)
		log.Debugf("Loaded %s: %d sections, md5 %s", asset.Name, asset.Len(), checksum)
	}

	log.Infof("Loaded %d config files for %s from %s", bundle.Len(), game, dir)
	return bundle, fingerprints, nil
}

func loadAsset(fs afero.Fs, path string) (*coalesced.ConfigAsset, string, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, "", errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer utils.CloseOrWarn(file)

	proxy := hashing.NewMD5ReaderProxy(file)
	asset, err := iniformat.Decode(filepath.Base(path), proxy)
	if err != nil {
		return nil, "", errors.NewStorageError(fmt.Sprintf("failed to parse %s", path), err)
	}

	checksum, err := proxy.GetChecksum()
	if err != nil {
		return nil, "", errors.NewStorageError(fmt.Sprintf("failed to checksum %s", path), err)
	}
	return asset, checksum, nil
}

// DeltaExtension is the extension of delta files.
const DeltaExtension = ".m3cd"

// DefaultDeltaPattern returns the glob matching the delta files of prefix.
func DefaultDeltaPattern(prefix string) string {
	return prefix + "-*" + DeltaExtension
}

// DiscoverDeltas lists delta files under dir, sorted lexically by path
// relative to dir. When pattern is empty only "<prefix>-*.m3cd" files directly
// in dir match; otherwise pattern is a doublestar glob relative to dir.
func DiscoverDeltas(fs afero.Fs, dir, prefix, pattern string) ([]string, error) {
	if pattern == "" {
		if prefix == "" {
			return nil, errors.NewValidationError("either a delta prefix or a pattern is required", nil)
		}
		pattern = DefaultDeltaPattern(prefix)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid delta pattern %q", pattern), nil)
	}

	var matches []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			matches = append(matches, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to scan delta directory %s", dir), err)
	}

	sort.Strings(matches)
	paths := make([]string, len(matches))
	for i, rel := range matches {
		paths[i] = filepath.Join(dir, filepath.FromSlash(rel))
	}
	return paths, nil
}

// LoadDelta reads one delta file. The asset is named after the file.
func LoadDelta(fs afero.Fs, path string) (*coalesced.ConfigAsset, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, errors.NewDeltaError(fmt.Sprintf("failed to open delta %s", path), err)
	}
	defer utils.CloseOrWarn(file)

	return iniformat.DecodeDelta(filepath.Base(path), file)
}
