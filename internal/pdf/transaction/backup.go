package transaction

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// backupTimeLayout matches the timestamp embedded in backup file names.
const backupTimeLayout = "20060102_150405"

// BackupPath returns the backup file name for a document at the given
// instant: <stem>_backup_<YYYYMMDD_HHMMSS>.pdf next to the original.
func BackupPath(docPath string, now time.Time) string {
	dir := filepath.Dir(docPath)
	stem := strings.TrimSuffix(filepath.Base(docPath), filepath.Ext(docPath))
	return filepath.Join(dir, fmt.Sprintf("%s_backup_%s.pdf", stem, now.Format(backupTimeLayout)))
}

// WriteBackup writes the original document bytes to a timestamped sibling
// of docPath and returns the backup path. The write goes through a temp
// file in the same directory with an fsync before rename, so a crash never
// leaves a truncated backup behind under the final name.
func WriteBackup(docPath string, data []byte, now time.Time) (string, error) {
	target := BackupPath(docPath, now)

	tmp, err := os.CreateTemp(filepath.Dir(target), ".backup-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating backup temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return "", fmt.Errorf("writing backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("syncing backup: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return "", fmt.Errorf("setting backup permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("closing backup: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("placing backup: %w", err)
	}
	return target, nil
}

// AtomicWriteFile replaces path with data using the same temp-and-rename
// dance as WriteBackup. Used for the renamed output document.
func AtomicWriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".out-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("placing %s: %w", path, err)
	}
	return nil
}
