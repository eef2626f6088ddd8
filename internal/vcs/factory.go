package vcs

import (
	"os"
	"path/filepath"
)

// IsRepo reports whether path carries git metadata. A .git file (worktrees,
// submodules) counts as well as a directory.
func IsRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}
