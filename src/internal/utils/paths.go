package utils

import "path/filepath"

// GetAbsolutePath resolves a path taken from the merge job file. Job files
// always use forward slashes; relative paths are joined with baseDir, the
// directory of the job file.
func GetAbsolutePath(path, baseDir string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(baseDir, path)
}
