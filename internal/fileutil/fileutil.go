package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ReplaceWithBackup installs data at path using the two-file crash-safe
// protocol: data is written to a temporary sibling first, the current primary
// (when present) is renamed to backupPath, then the temporary is renamed onto
// path. Order matters: at every point either the primary or the backup holds
// the last fully-written state, so a crash mid-save is recoverable by a
// backup-aware loader.
func ReplaceWithBackup(path, backupPath string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, mode); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	switch _, err := os.Stat(path); {
	case err == nil:
		if err := os.Rename(path, backupPath); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("rotate backup: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// First write, nothing to rotate.
	default:
		os.Remove(tmpPath)
		return fmt.Errorf("stat primary: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		// The rotated backup still holds the previous state; loaders fall
		// back to it when the primary is absent.
		os.Remove(tmpPath)
		return fmt.Errorf("install primary: %w", err)
	}
	return nil
}
