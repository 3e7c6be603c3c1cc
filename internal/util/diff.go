package util

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns a unified diff between two versions of a file's
// content, labeled a/path and b/path. Returns "" when nothing changed.
func UnifiedDiff(original, modified, path string) string {
	if original == modified {
		return ""
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(modified),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("--- a/%s\n+++ b/%s\n@@ changes @@\n%d bytes -> %d bytes\n",
			path, path, len(original), len(modified))
	}

	return text
}

// SplitKeepNewlines splits content into lines, each retaining its
// trailing newline. The final element is absent when content ends
// with a newline, so Join(lines) == content always holds.
func SplitKeepNewlines(content string) []string {
	if content == "" {
		return nil
	}
	parts := strings.SplitAfter(content, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
