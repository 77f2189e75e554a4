package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func hasherFixture(t *testing.T) (string, *ConfigHasher) {
	t.Helper()
	configFile := writeJob(t, validJob)
	deltaDir := filepath.Join(filepath.Dir(configFile), "mods", "PlotManagerFoo")
	writeFile(t, filepath.Join(deltaDir, "PlotManagerFoo-1.m3cd"), "[BIOGame.ini S]\n+A=1\n")
	return deltaDir, NewConfigHasher(configFile, afero.NewOsFs())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestConfigHasher_DeterministicHash(t *testing.T) {
	_, hasher := hasherFixture(t)

	hash1, err := hasher.UpdateCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}
	hash2, err := hasher.UpdateCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}

	if hash1 != hash2 {
		t.Errorf("Hashes should be identical, got %s and %s", hash1, hash2)
	}
	if hash1 == "" {
		t.Error("Hash should not be empty")
	}
}

func TestConfigHasher_DeltaContentChangesHash(t *testing.T) {
	deltaDir, hasher := hasherFixture(t)

	before, err := hasher.UpdateCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}

	writeFile(t, filepath.Join(deltaDir, "PlotManagerFoo-1.m3cd"), "[BIOGame.ini S]\n+A=2\n")
	changed, err := hasher.UpdateCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}
	if before == changed {
		t.Error("Editing a delta file should change the hash")
	}

	writeFile(t, filepath.Join(deltaDir, "PlotManagerFoo-2.m3cd"), "[BIOGame.ini S]\n+B=1\n")
	added, err := hasher.UpdateCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}
	if added == changed {
		t.Error("Adding a delta file should change the hash")
	}

	writeFile(t, filepath.Join(deltaDir, "unrelated.txt"), "x")
	unrelated, err := hasher.UpdateCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}
	if unrelated != added {
		t.Error("Files outside the delta pattern should not change the hash")
	}
}

func TestConfigHasher_CachesCurrentHash(t *testing.T) {
	deltaDir, hasher := hasherFixture(t)

	first, err := hasher.GetCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}

	writeFile(t, filepath.Join(deltaDir, "PlotManagerFoo-1.m3cd"), "[BIOGame.ini S]\n+A=3\n")
	cached, err := hasher.GetCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to get hash: %v", err)
	}
	if cached != first {
		t.Error("Expected cached hash until it is updated")
	}
}

func TestConfigHasher_AppliedHash(t *testing.T) {
	_, hasher := hasherFixture(t)

	hash, err := hasher.GetCurrentConfigHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}
	if hasher.IsApplied(hash) {
		t.Error("Nothing has been applied yet")
	}

	hasher.SetAppliedConfigHash(hash)
	if !hasher.IsApplied(hash) {
		t.Error("Expected hash to be applied")
	}
	if hasher.GetAppliedConfigHash() != hash {
		t.Error("Unexpected applied hash")
	}
}

func TestConfigHasher_MissingJob(t *testing.T) {
	hasher := NewConfigHasher("/non/existent/m3cd.toml", afero.NewOsFs())
	if _, err := hasher.GetCurrentConfigHash(); err == nil {
		t.Error("Expected error for missing job file")
	}
}
