// Package sweep drives one sweeptext run: scan sources, match lines,
// group them by resolved target, write each target once, and in
// refile mode rewrite the sources with relocated lines removed.
package sweep

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/termfx/sweeptext/internal/logging"
	"github.com/termfx/sweeptext/internal/model"
	"github.com/termfx/sweeptext/internal/pattern"
	"github.com/termfx/sweeptext/internal/scanner"
	"github.com/termfx/sweeptext/internal/util"
	"github.com/termfx/sweeptext/internal/writer"
)

// removal marks one source line scheduled for refile removal and the
// target that must consume it before the removal may happen.
type removal struct {
	source string
	line   int
	target string
}

// Run executes one fully resolved RunConfig. Fatal configuration
// errors (bad pattern, unbound template placeholder) return before
// any file is touched; I/O problems are reported and isolated to the
// file they hit.
func Run(cfg model.RunConfig) (*model.RunResult, error) {
	log := logging.GetLogger("sweep")

	matcher, err := pattern.Compile(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	resolver, err := NewResolver(cfg.To, cfg.Folder, matcher)
	if err != nil {
		return nil, err
	}
	sc, err := scanner.New(cfg.Folder, cfg.From, cfg.Exclude)
	if err != nil {
		return nil, err
	}

	result := &model.RunResult{}

	files, err := sc.Scan()
	if err != nil {
		if errors.Is(err, model.ErrNoSourceFiles) {
			log.Warn().Str("folder", cfg.Folder).Str("from", cfg.From).
				Msg("no source files matched, nothing to do")
			return result, nil
		}
		return nil, err
	}

	proc := NewProcessor(matcher, cfg.CleanMatch, cfg.AddLinks)

	var sink writer.Writer
	if cfg.Test {
		sink = writer.NewDryRunWriter()
	} else {
		sink = writer.NewDiskWriter(cfg.Backups)
	}
	fw := writer.New(cfg.Insert, cfg.AddHeaders, sink)

	// Phase 1: scan and group. No file is written until every source
	// has been read, so the full ordered group per target is known
	// before its single write.
	groups := make(map[string]*model.LineGroup)
	var order []string
	sourceLines := make(map[string][]string)
	var removals []removal

	for _, name := range files {
		data, err := os.ReadFile(filepath.Join(cfg.Folder, name))
		if err != nil {
			log.Warn().Str("file", name).Err(err).Msg("source unreadable, skipping")
			continue
		}
		result.FilesScanned++
		log.Debug().Str("file", name).Msg("scanning")

		rawLines, matches := proc.Process(name, string(data))
		if cfg.Mode == model.ModeRefile {
			sourceLines[name] = rawLines
		}

		for _, m := range matches {
			target := resolver.Resolve(m.Captures)
			// A collected line resolving back into its own file is
			// already where it belongs; re-collecting it would
			// duplicate it on every rerun.
			if cfg.Mode == model.ModeCollect && target == name {
				continue
			}
			result.LinesMatched++
			g, ok := groups[target]
			if !ok {
				g = &model.LineGroup{Target: target}
				groups[target] = g
				order = append(order, target)
			}
			g.Lines = append(g.Lines, model.GroupLine{SourceFile: name, Text: m.OutLine})
			if cfg.Mode == model.ModeRefile {
				removals = append(removals, removal{source: name, line: m.LineIndex, target: target})
			}
		}
	}

	// Phase 2: gate each resolved target on existence, once per
	// concrete path. A missing target skips its whole group; nothing
	// is ever created from a template.
	skipped := make(map[string]bool)
	for _, target := range order {
		if resolver.TargetExists(target) {
			continue
		}
		skipped[target] = true
		result.TargetsSkipped++
		result.Plans = append(result.Plans, model.TargetPlan{
			Path:     target,
			Policy:   cfg.Insert,
			Lines:    len(groups[target].Lines),
			Skipped:  true,
			SkipNote: "target does not exist, group skipped",
		})
		log.Warn().Str("target", target).Int("lines", len(groups[target].Lines)).
			Msg("target does not exist, skipping group")
	}

	// Lines bound for a skipped target stay in their source.
	removed := make(map[string]map[int]bool)
	for _, r := range removals {
		if skipped[r.target] {
			continue
		}
		if removed[r.source] == nil {
			removed[r.source] = make(map[int]bool)
		}
		removed[r.source][r.line] = true
	}

	// Phase 3: one write per surviving target, in discovery order.
	// When a target is itself a source losing lines, its removal is
	// folded into the same write so the file is rewritten once.
	consumed := make(map[string]bool)
	for _, target := range order {
		if skipped[target] {
			continue
		}

		var existing string
		if cfg.Mode == model.ModeRefile && removed[target] != nil {
			existing = joinKept(sourceLines[target], removed[target])
			consumed[target] = true
		} else {
			existing, err = writer.ReadExisting(filepath.Join(cfg.Folder, target))
			if err != nil {
				log.Warn().Str("target", target).Err(err).Msg("target unreadable, skipping group")
				dropRemovals(removed, removals, target)
				result.TargetsSkipped++
				continue
			}
		}

		plan, err := fw.Apply(filepath.Join(cfg.Folder, target), existing, *groups[target])
		if err != nil {
			log.Warn().Str("target", target).Err(err).Msg("target write failed, lines preserved in source")
			dropRemovals(removed, removals, target)
			consumed[target] = false
			result.TargetsSkipped++
			continue
		}
		result.TargetsWritten++
		result.Plans = append(result.Plans, plan)
		log.Info().Str("target", target).Int("lines", plan.Lines).
			Str("insert", string(plan.Policy)).Msg("target updated")
	}

	// Phase 4: refile source rewrites for whatever was actually
	// consumed, same atomic discipline as the target writes.
	if cfg.Mode == model.ModeRefile {
		for _, name := range files {
			if removed[name] == nil {
				continue
			}
			if consumed[name] {
				result.SourcesRewritten++
				continue
			}
			oldContent := strings.Join(sourceLines[name], "")
			newContent := joinKept(sourceLines[name], removed[name])
			if err := sink.WriteFile(filepath.Join(cfg.Folder, name), []byte(newContent), 0o644); err != nil {
				log.Warn().Str("file", name).Err(err).Msg("source rewrite failed")
				continue
			}
			result.SourcesRewritten++
			result.SourceRewrites = append(result.SourceRewrites, model.SourcePlan{
				Path:         name,
				LinesRemoved: len(removed[name]),
				Diff:         util.UnifiedDiff(oldContent, newContent, name),
			})
			log.Info().Str("file", name).Int("removed", len(removed[name])).
				Msg("source rewritten")
		}
	}

	log.Debug().Str("summary", sink.Summary()).Msg("run complete")
	return result, nil
}

// joinKept reassembles a source file's content minus the removed
// line indexes. Raw lines keep their newlines, so unmatched lines
// come back byte-identical.
func joinKept(rawLines []string, removed map[int]bool) string {
	var sb strings.Builder
	for i, l := range rawLines {
		if removed[i] {
			continue
		}
		sb.WriteString(l)
	}
	return sb.String()
}

// dropRemovals cancels pending source removals bound for a target
// whose write never happened: nothing consumed those lines.
func dropRemovals(removed map[string]map[int]bool, removals []removal, target string) {
	for _, r := range removals {
		if r.target != target {
			continue
		}
		if m := removed[r.source]; m != nil {
			delete(m, r.line)
			if len(m) == 0 {
				delete(removed, r.source)
			}
		}
	}
}
