package content

import (
	"os"
	"path/filepath"
)

// SnapshotPath is the snapshot location relative to a site root.
const SnapshotPath = "data/content.json"

// FindRoot walks up from startDir looking for a directory that contains
// data/content.json. Returns "" if none is found.
func FindRoot(startDir string) (string, error) {
	dir := startDir
	for {
		_, err := os.Stat(filepath.Join(dir, SnapshotPath))
		if err == nil {
			return dir, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
