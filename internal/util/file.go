package util

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// BackupSuffix is the stem appended to rotated backup copies. A file
// rewritten by sweeptext leaves its previous contents at
// "name.swp~1", with older generations shifted to ~2, ~3 and so on.
const BackupSuffix = ".swp~"

// WriteFileAtomic writes data to path atomically: the content goes to
// a temp file in the same directory which is then renamed over the
// original. A crash mid-write leaves at most the temp file behind,
// never a partially written target.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".swptmp-")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpFile.Name(), perm); err != nil {
		return err
	}
	return os.Rename(tmpFile.Name(), path)
}

// RotateBackups shifts existing backups of path one generation down
// and copies the current content to generation 1, keeping at most
// keep generations. keep <= 0 disables backups entirely.
func RotateBackups(path string, keep int) error {
	if keep <= 0 {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // nothing to back up
		}
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	// Oldest first: ~keep is dropped by being overwritten.
	for gen := keep - 1; gen >= 1; gen-- {
		from := path + BackupSuffix + strconv.Itoa(gen)
		if _, err := os.Stat(from); err == nil {
			to := path + BackupSuffix + strconv.Itoa(gen+1)
			if err := os.Rename(from, to); err != nil {
				return err
			}
		}
	}
	return os.WriteFile(path+BackupSuffix+"1", data, info.Mode())
}

// IsBackupName reports whether name looks like a rotated backup file
// produced by RotateBackups. The scanner skips these.
func IsBackupName(name string) bool {
	i := strings.LastIndex(name, BackupSuffix)
	if i < 0 {
		return false
	}
	gen := name[i+len(BackupSuffix):]
	if gen == "" {
		return false
	}
	_, err := strconv.Atoi(gen)
	return err == nil
}
