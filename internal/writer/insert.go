package writer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/termfx/sweeptext/internal/model"
	"github.com/termfx/sweeptext/internal/util"
)

// FileWriter applies one LineGroup to one target file under an
// insertion policy. It computes the target's complete new content,
// then hands it to the sink; the sink decides whether disk is touched.
type FileWriter struct {
	policy     model.InsertPolicy
	addHeaders bool
	sink       Writer
}

// New builds a FileWriter writing through sink.
func New(policy model.InsertPolicy, addHeaders bool, sink Writer) *FileWriter {
	return &FileWriter{policy: policy, addHeaders: addHeaders, sink: sink}
}

// Apply rewrites the file at path with the group inserted under the
// writer's policy. existing is the file's current content; callers
// pass it in so a pending source rewrite can be folded in first. The
// returned plan carries the unified diff of the mutation.
func (fw *FileWriter) Apply(path, existing string, group model.LineGroup) (model.TargetPlan, error) {
	block := fw.renderBlock(group)
	content := Insert(existing, block, fw.policy)

	plan := model.TargetPlan{
		Path:   group.Target,
		Policy: fw.policy,
		Lines:  len(group.Lines),
		Diff:   util.UnifiedDiff(existing, content, group.Target),
	}

	if err := fw.sink.WriteFile(path, []byte(content), 0o644); err != nil {
		return plan, model.Wrap(model.ECWriteError, "writing target "+group.Target,
			model.ErrWrite)
	}
	return plan, nil
}

// renderBlock flattens the group into the text block to insert. With
// headers enabled, each contiguous run of lines sharing a source file
// is preceded by a blank line and a [[sourcefile]] header.
func (fw *FileWriter) renderBlock(group model.LineGroup) string {
	var sb strings.Builder
	prev := ""
	for _, gl := range group.Lines {
		if fw.addHeaders && gl.SourceFile != prev {
			sb.WriteString("\n")
			sb.WriteString(Annotation(gl.SourceFile))
			sb.WriteString("\n")
			prev = gl.SourceFile
		}
		sb.WriteString(gl.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Annotation renders the [[name]] form used for both group headers
// and source links. The file extension is dropped, matching the
// wiki-link convention of the note tools sweeptext is built for.
func Annotation(sourceFile string) string {
	name := strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile))
	return "[[" + name + "]]"
}

// Insert places block into existing content under policy.
func Insert(existing, block string, policy model.InsertPolicy) string {
	switch policy {
	case model.InsertOverwrite:
		return block

	case model.InsertAppend:
		return appendBlock(existing, block)

	case model.InsertTop:
		lines := util.SplitKeepNewlines(existing)
		if len(lines) == 0 {
			return block
		}
		// Never insert at absolute line 0: the first line is the
		// note's title in every tool this supports.
		var sb strings.Builder
		sb.WriteString(lines[0])
		sb.WriteString(block)
		for _, l := range lines[1:] {
			sb.WriteString(l)
		}
		return sb.String()

	case model.InsertAfterBlank:
		lines := util.SplitKeepNewlines(existing)
		for i, l := range lines {
			if l == "\n" || l == "\r\n" {
				var sb strings.Builder
				for _, head := range lines[:i+1] {
					sb.WriteString(head)
				}
				sb.WriteString(block)
				for _, tail := range lines[i+1:] {
					sb.WriteString(tail)
				}
				return sb.String()
			}
		}
		// No blank line: fall back to appending.
		return appendBlock(existing, block)
	}
	return appendBlock(existing, block)
}

func appendBlock(existing, block string) string {
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	return existing + block
}

// ReadExisting loads the target's current content. A missing file is
// not an error here; existence is gated earlier, once per resolved
// path.
func ReadExisting(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", model.Wrap(model.ECReadError, "reading target "+path,
			model.ErrRead)
	}
	return string(data), nil
}
