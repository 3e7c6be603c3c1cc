package sweep

import (
	"strings"

	"github.com/termfx/sweeptext/internal/model"
	"github.com/termfx/sweeptext/internal/pattern"
	"github.com/termfx/sweeptext/internal/util"
	"github.com/termfx/sweeptext/internal/writer"
)

// Processor applies a compiled pattern to the lines of one source
// file and shapes the outgoing text for each match. Matching is
// strictly line-local.
type Processor struct {
	matcher    *pattern.Matcher
	cleanMatch bool
	addLinks   bool
}

// NewProcessor builds a line processor for one run.
func NewProcessor(m *pattern.Matcher, cleanMatch, addLinks bool) *Processor {
	return &Processor{matcher: m, cleanMatch: cleanMatch, addLinks: addLinks}
}

// Process splits content into lines and matches each one. It returns
// the raw lines (newlines preserved, so a source rewrite can
// reproduce the file byte for byte) and the matches in line order.
func (p *Processor) Process(sourceFile, content string) ([]string, []model.Match) {
	rawLines := util.SplitKeepNewlines(content)

	var matches []model.Match
	for i, raw := range rawLines {
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		res := p.matcher.Match(line)
		if res == nil {
			continue
		}

		out := line
		if p.cleanMatch {
			// Remove exactly the matched span, once. A text search
			// and replace would also hit other occurrences of the
			// same text elsewhere in the line.
			out = line[:res.Span[0]] + line[res.Span[1]:]
		}
		if p.addLinks {
			out = out + " " + writer.Annotation(sourceFile)
		}

		matches = append(matches, model.Match{
			SourceFile: sourceFile,
			LineIndex:  i,
			Line:       line,
			Span:       res.Span,
			Captures:   res.Captures,
			OutLine:    out,
		})
	}
	return rawLines, matches
}
