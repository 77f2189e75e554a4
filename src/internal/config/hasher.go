package config

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/m3tools/m3cd/src/internal/hashing"
	"github.com/m3tools/m3cd/src/internal/storage"
	"github.com/m3tools/m3cd/src/internal/utils"
)

const hashCacheTTL = 5 * time.Minute

// ConfigHasher calculates an MD5 hash of a merge job: its settings plus the
// content of every delta file it would apply. Watchers compare the current
// hash with the hash of the last applied merge to skip redundant runs.
type ConfigHasher struct {
	configPath string
	fs         afero.Fs

	// Current hash (from job file and deltas on disk) with caching
	currentHash     string
	currentHashTime time.Time

	// Hash of the job as it was last merged
	appliedHash string

	mu sync.RWMutex
}

// NewConfigHasher creates a hasher for the job file at configPath. Delta
// files are read through fs.
func NewConfigHasher(configPath string, fs afero.Fs) *ConfigHasher {
	return &ConfigHasher{
		configPath: configPath,
		fs:         fs,
	}
}

// GetCurrentConfigHash returns the cached hash of the job on disk.
// It recalculates on cache miss.
func (h *ConfigHasher) GetCurrentConfigHash() (string, error) {
	h.mu.RLock()
	if time.Since(h.currentHashTime) < hashCacheTTL && h.currentHash != "" {
		hash := h.currentHash
		h.mu.RUnlock()
		return hash, nil
	}
	h.mu.RUnlock()

	return h.UpdateCurrentConfigHash()
}

// UpdateCurrentConfigHash reloads the job, recalculates its hash and resets the cache.
func (h *ConfigHasher) UpdateCurrentConfigHash() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cfg, err := LoadConfig(h.configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load job: %w", err)
	}

	hash, err := h.calculateHashForConfig(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	h.currentHash = hash
	h.currentHashTime = time.Now()

	return hash, nil
}

// CalculateHash calculates the hash of an already loaded job.
func (h *ConfigHasher) CalculateHash(config *Config) (string, error) {
	return h.calculateHashForConfig(config)
}

// GetAppliedConfigHash returns the hash recorded by the last successful merge.
func (h *ConfigHasher) GetAppliedConfigHash() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.appliedHash
}

// SetAppliedConfigHash records the hash of a job that was merged successfully.
func (h *ConfigHasher) SetAppliedConfigHash(hash string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.appliedHash = hash
}

// IsApplied reports whether hash is the hash of the last successful merge.
func (h *ConfigHasher) IsApplied(hash string) bool {
	applied := h.GetAppliedConfigHash()
	return applied != "" && applied == hash
}

func (h *ConfigHasher) calculateHashForConfig(config *Config) (string, error) {
	if config.General == nil {
		return "", fmt.Errorf("job has no general section")
	}

	hashData := &ConfigHashData{
		General: config.General,
	}

	for _, delta := range config.EnabledDeltas() {
		files, err := h.hashDeltaFiles(config, delta)
		if err != nil {
			return "", err
		}
		hashData.Deltas = append(hashData.Deltas, &DeltaHashData{
			Name:    delta.Name,
			Dir:     config.GetAbsDeltaDir(delta),
			Pattern: delta.GetPattern(),
			Files:   files,
		})
	}

	jsonBytes, err := json.Marshal(hashData)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job data: %w", err)
	}

	hash := md5.Sum(jsonBytes)
	return hex.EncodeToString(hash[:]), nil
}

// hashDeltaFiles returns "<file>=<md5>" entries in application order.
func (h *ConfigHasher) hashDeltaFiles(config *Config, delta *DeltaSource) ([]string, error) {
	dir := config.GetAbsDeltaDir(delta)
	paths, err := storage.DiscoverDeltas(h.fs, dir, delta.Prefix, delta.Pattern)
	if err != nil {
		return nil, err
	}

	entries := make([]string, 0, len(paths))
	for _, path := range paths {
		sum, err := h.hashFile(path)
		if err != nil {
			return nil, err
		}
		rel, _ := filepath.Rel(dir, path)
		entries = append(entries, filepath.ToSlash(rel)+"="+sum)
	}
	return entries, nil
}

func (h *ConfigHasher) hashFile(path string) (string, error) {
	file, err := h.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open delta file: %w", err)
	}
	defer utils.CloseOrWarn(file)

	proxy := hashing.NewMD5ReaderProxy(file)
	if _, err := io.Copy(io.Discard, proxy); err != nil {
		return "", fmt.Errorf("failed to hash delta file: %w", err)
	}
	return proxy.GetChecksum()
}

// ConfigHashData represents the structure used for hashing
type ConfigHashData struct {
	General *GeneralConfig   `json:"general"`
	Deltas  []*DeltaHashData `json:"deltas"`
}

// DeltaHashData represents one hashable delta source
type DeltaHashData struct {
	Name    string   `json:"name"`
	Dir     string   `json:"dir"`
	Pattern string   `json:"pattern"`
	Files   []string `json:"files"`
}
