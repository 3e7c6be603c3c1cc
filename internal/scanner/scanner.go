// Package scanner resolves source selectors against a folder into an
// ordered list of candidate note files.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"

	"github.com/termfx/sweeptext/internal/logging"
	"github.com/termfx/sweeptext/internal/model"
	"github.com/termfx/sweeptext/internal/util"
)

// IgnoreFile, when present in the scanned folder, lists selectors
// (gitignore syntax) for files sweeptext must never touch.
const IgnoreFile = ".sweepignore"

// Selector matches file base names. It is either a glob or, when
// written /like this/, a regex anchored at the start of the name.
type Selector struct {
	raw   string
	re    *regexp.Regexp // nil for glob selectors
	empty bool
}

// CompileSelector builds a Selector from a raw selector string. An
// empty string yields a selector that matches nothing.
func CompileSelector(raw string) (*Selector, error) {
	if raw == "" {
		return &Selector{raw: raw, empty: true}, nil
	}
	if len(raw) >= 2 && strings.HasPrefix(raw, "/") && strings.HasSuffix(raw, "/") {
		re, err := regexp.Compile("^(?:" + raw[1:len(raw)-1] + ")")
		if err != nil {
			return nil, model.Wrap(model.ECConfigError,
				fmt.Sprintf("selector %q", raw), err)
		}
		return &Selector{raw: raw, re: re}, nil
	}
	// Validate the glob eagerly so a broken selector fails the run
	// instead of silently matching nothing.
	if !doublestar.ValidatePattern(raw) {
		return nil, model.Wrap(model.ECConfigError,
			fmt.Sprintf("selector %q is not a valid glob", raw), nil)
	}
	return &Selector{raw: raw}, nil
}

// Matches reports whether the selector matches the base name.
func (s *Selector) Matches(name string) bool {
	if s.empty {
		return false
	}
	if s.re != nil {
		return s.re.MatchString(name)
	}
	ok, err := doublestar.Match(s.raw, name)
	return err == nil && ok
}

// Scanner enumerates source files in one folder.
type Scanner struct {
	folder  string
	from    *Selector
	exclude *Selector
	ignored *ignore.GitIgnore
}

// New builds a Scanner for the folder with the given from and exclude
// selector strings. exclude may be empty.
func New(folder, from, exclude string) (*Scanner, error) {
	fromSel, err := CompileSelector(from)
	if err != nil {
		return nil, err
	}
	excludeSel, err := CompileSelector(exclude)
	if err != nil {
		return nil, err
	}

	s := &Scanner{folder: folder, from: fromSel, exclude: excludeSel}
	s.loadIgnoreFile()
	return s, nil
}

// loadIgnoreFile reads the folder's ignore file if one exists.
func (s *Scanner) loadIgnoreFile() {
	path := filepath.Join(s.folder, IgnoreFile)
	if _, err := os.Stat(path); err != nil {
		return
	}
	ign, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		log := logging.GetLogger("scanner")
		log.Warn().Err(err).
			Str("path", path).Msg("ignore file unreadable, skipping it")
		return
	}
	s.ignored = ign
}

// Scan returns the ordered, deduplicated base names of regular files
// in the folder matching from and not matching exclude. Ordering is
// lexical by name, case-insensitive and stable. Backup files and
// entries listed in the ignore file are always skipped. An empty
// result is reported as ErrNoSourceFiles; it is not fatal.
func (s *Scanner) Scan() ([]string, error) {
	log := logging.GetLogger("scanner")

	entries, err := os.ReadDir(s.folder)
	if err != nil {
		return nil, model.Wrap(model.ECReadError,
			fmt.Sprintf("reading folder %s", s.folder),
			fmt.Errorf("%w: %v", model.ErrRead, err))
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if seen[name] {
			continue
		}
		seen[name] = true

		if util.IsBackupName(name) || name == IgnoreFile {
			continue
		}
		if !s.from.Matches(name) {
			continue
		}
		if s.exclude.Matches(name) {
			log.Debug().Str("file", name).Msg("excluded by selector")
			continue
		}
		if s.ignored != nil && s.ignored.MatchesPath(name) {
			log.Debug().Str("file", name).Msg("excluded by ignore file")
			continue
		}
		names = append(names, name)
	}

	sort.SliceStable(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})

	if len(names) == 0 {
		return nil, model.Wrap(model.ECNoSourceFiles,
			fmt.Sprintf("no files in %s match %q", s.folder, s.from.raw),
			model.ErrNoSourceFiles)
	}

	log.Debug().Int("count", len(names)).Msg("source files resolved")
	return names, nil
}
