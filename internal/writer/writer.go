// Package writer rewrites target and source files. The Writer
// interface splits the decision of what a file's new content is from
// whether anything touches the disk, so test mode runs the exact same
// planning path as a live run.
package writer

import (
	"fmt"
	"os"
	"strings"

	"github.com/termfx/sweeptext/internal/util"
)

// Writer is the sink for computed file contents.
type Writer interface {
	WriteFile(path string, content []byte, perm os.FileMode) error
	Summary() string
}

// DryRunWriter tracks files that would change without writing.
type DryRunWriter struct {
	changes []FileChange
}

// FileChange records one file a dry run would have modified.
type FileChange struct {
	Path         string
	OriginalSize int
	NewSize      int
}

// NewDryRunWriter creates a writer that never touches the disk.
func NewDryRunWriter() *DryRunWriter {
	return &DryRunWriter{changes: make([]FileChange, 0)}
}

// WriteFile records the change and writes nothing.
func (w *DryRunWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	var originalSize int
	if stat, err := os.Stat(path); err == nil {
		originalSize = int(stat.Size())
	}
	w.changes = append(w.changes, FileChange{
		Path:         path,
		OriginalSize: originalSize,
		NewSize:      len(content),
	})
	return nil
}

// Summary describes what a live run would have done.
func (w *DryRunWriter) Summary() string {
	if len(w.changes) == 0 {
		return "No changes would be made."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Would modify %d file(s):\n", len(w.changes))
	for _, c := range w.changes {
		diff := c.NewSize - c.OriginalSize
		sign := "+"
		if diff < 0 {
			sign = ""
		}
		fmt.Fprintf(&sb, "  %s (%s%d bytes)\n", c.Path, sign, diff)
	}
	return sb.String()
}

// DiskWriter writes files atomically, rotating backups first.
type DiskWriter struct {
	backups      int
	writtenFiles []string
}

// NewDiskWriter creates a writer performing real writes, keeping up
// to backups rotated generations of each file's previous content.
func NewDiskWriter(backups int) *DiskWriter {
	return &DiskWriter{backups: backups, writtenFiles: make([]string, 0)}
}

// WriteFile rotates backups, then writes content via a temp file and
// atomic rename.
func (w *DiskWriter) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := util.RotateBackups(path, w.backups); err != nil {
		return fmt.Errorf("rotating backups for %s: %w", path, err)
	}
	if stat, err := os.Stat(path); err == nil {
		perm = stat.Mode()
	}
	if err := util.WriteFileAtomic(path, content, perm); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	w.writtenFiles = append(w.writtenFiles, path)
	return nil
}

// Summary lists the files written.
func (w *DiskWriter) Summary() string {
	if len(w.writtenFiles) == 0 {
		return "No files were written."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Wrote %d file(s):\n", len(w.writtenFiles))
	for _, path := range w.writtenFiles {
		fmt.Fprintf(&sb, "  %s\n", path)
	}
	return sb.String()
}
