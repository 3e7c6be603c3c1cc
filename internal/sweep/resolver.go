package sweep

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/termfx/sweeptext/internal/model"
	"github.com/termfx/sweeptext/internal/pattern"
)

// Resolver expands the target path template with a match's captures.
// Template placeholders are validated against the pattern once, up
// front: a template naming a capture the pattern never produces is a
// typo that would otherwise sweep lines into wrong files.
type Resolver struct {
	template string
	folder   string
	exists   map[string]bool // concrete path -> existence, checked once
}

// NewResolver validates the template against the pattern's
// placeholder set and returns a resolver for the run.
func NewResolver(template, folder string, m *pattern.Matcher) (*Resolver, error) {
	for _, name := range pattern.TemplateNames(template) {
		if !m.HasPlaceholder(name) {
			return nil, model.Wrap(model.ECUnboundPlaceholder,
				fmt.Sprintf("target template %q references {%s}, which the pattern does not capture",
					template, name),
				model.ErrUnboundPlaceholder)
		}
	}
	return &Resolver{
		template: template,
		folder:   folder,
		exists:   make(map[string]bool),
	}, nil
}

// Resolve produces the concrete target path for one match.
func (r *Resolver) Resolve(captures map[string]string) string {
	return pattern.ExpandTemplate(r.template, captures)
}

// TargetExists reports whether the resolved target is already present
// on disk. Targets are never created: a missing target means the
// whole group destined for it is skipped. The stat result is cached
// per concrete path for the run's duration.
func (r *Resolver) TargetExists(target string) bool {
	if ok, seen := r.exists[target]; seen {
		return ok
	}
	_, err := os.Stat(filepath.Join(r.folder, target))
	ok := err == nil
	r.exists[target] = ok
	return ok
}
