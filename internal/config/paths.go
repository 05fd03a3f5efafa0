package config

import (
	"os"
	"path/filepath"
)

// ResolveInputPath returns path unchanged when it exists as given.
// A relative path that does not exist is resolved against the working directory.
func ResolveInputPath(path string) string {
	if path == "" || FileExists(path) || filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	return filepath.Join(cwd, path)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// EnsureParentDir creates the directory that will hold path
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}
