package cli

import (
	"fmt"
	"io"

	"github.com/termfx/sweeptext/internal/model"
	"github.com/termfx/sweeptext/internal/sweep"
)

// Execute runs one resolved configuration and reports the outcome on
// out. In test mode the report is the full mutation plan, diffs
// included; a live run gets a one-line summary.
func Execute(cfg model.RunConfig, out io.Writer) error {
	res, err := sweep.Run(cfg)
	if err != nil {
		return err
	}

	if cfg.Test {
		reportPlan(res, out)
		return nil
	}

	fmt.Fprintf(out, "%d file(s) scanned, %d line(s) matched, %d target(s) written",
		res.FilesScanned, res.LinesMatched, res.TargetsWritten)
	if res.TargetsSkipped > 0 {
		fmt.Fprintf(out, ", %d target(s) skipped", res.TargetsSkipped)
	}
	if res.SourcesRewritten > 0 {
		fmt.Fprintf(out, ", %d source(s) rewritten", res.SourcesRewritten)
	}
	fmt.Fprintln(out)
	return nil
}

// reportPlan prints what a live run would do, in the same order the
// live run would do it.
func reportPlan(res *model.RunResult, out io.Writer) {
	if res.LinesMatched == 0 {
		fmt.Fprintln(out, "test: no lines matched, nothing would change")
		return
	}

	for _, p := range res.Plans {
		if p.Skipped {
			fmt.Fprintf(out, "test: SKIP %s: %s (%d line(s) stay put)\n", p.Path, p.SkipNote, p.Lines)
			continue
		}
		fmt.Fprintf(out, "test: would write %s (%d line(s), insert=%s)\n", p.Path, p.Lines, p.Policy)
		if p.Diff != "" {
			fmt.Fprint(out, p.Diff)
		}
	}
	for _, s := range res.SourceRewrites {
		fmt.Fprintf(out, "test: would rewrite %s (%d line(s) removed)\n", s.Path, s.LinesRemoved)
		if s.Diff != "" {
			fmt.Fprint(out, s.Diff)
		}
	}
}
