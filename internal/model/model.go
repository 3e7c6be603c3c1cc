package model

// Mode defines what happens to a matched line: moved or copied.
type Mode string

const (
	ModeRefile  Mode = "refile"  // remove from source, insert into target
	ModeCollect Mode = "collect" // copy into target, source untouched
)

// InsertPolicy defines where matched lines are placed in a target file.
type InsertPolicy string

const (
	InsertAfterBlank InsertPolicy = "afterblank"
	InsertTop        InsertPolicy = "top"
	InsertAppend     InsertPolicy = "append"
	InsertOverwrite  InsertPolicy = "overwrite"
)

// ValidInsertPolicy reports whether s names a known insertion policy.
func ValidInsertPolicy(s string) bool {
	switch InsertPolicy(s) {
	case InsertAfterBlank, InsertTop, InsertAppend, InsertOverwrite:
		return true
	}
	return false
}

// RunConfig holds the fully resolved configuration for a single run.
// Mode presets are applied by ApplyModeDefaults before explicit flag
// overrides, so the engine never branches on Mode for option values.
type RunConfig struct {
	Mode       Mode
	Pattern    string // raw pattern, compiled by the pattern package
	Folder     string // directory to scan
	From       string // source selector, glob or /regex/
	Exclude    string // exclude selector, glob or /regex/, empty = none
	To         string // target path template, may contain {name}
	CleanMatch bool
	AddLinks   bool
	AddHeaders bool
	Insert     InsertPolicy
	Test       bool // dry run: plan and report, write nothing
	Backups    int  // rotated backups kept per rewritten file
}

// modePresets maps each mode to its default option bundle.
var modePresets = map[Mode]struct {
	cleanMatch, addLinks, addHeaders bool
	insert                           InsertPolicy
}{
	ModeRefile:  {cleanMatch: true, insert: InsertAfterBlank},
	ModeCollect: {addHeaders: true, insert: InsertOverwrite},
}

// ApplyModeDefaults sets the option bundle for cfg.Mode. Callers apply
// explicit flag overrides afterwards.
func (cfg *RunConfig) ApplyModeDefaults() {
	p, ok := modePresets[cfg.Mode]
	if !ok {
		return
	}
	cfg.CleanMatch = p.cleanMatch
	cfg.AddLinks = p.addLinks
	cfg.AddHeaders = p.addHeaders
	cfg.Insert = p.insert
}

// Match records a single matched line within a source file.
type Match struct {
	SourceFile string            // base name of the source file
	LineIndex  int               // zero-based line number in the source
	Line       string            // original line text, no newline
	Span       [2]int            // byte offsets of the matched span
	Captures   map[string]string // placeholder name -> captured text
	OutLine    string            // line text destined for the target
}

// GroupLine is one entry of a LineGroup: an outgoing line tagged with
// the source file it came from, so headers can be emitted per
// contiguous run of lines sharing a source.
type GroupLine struct {
	SourceFile string
	Text       string
}

// LineGroup is the ordered set of lines destined for one resolved
// target path. Order is source enumeration order, then in-file line
// order; it is preserved end to end.
type LineGroup struct {
	Target string // resolved concrete path, relative to the folder
	Lines  []GroupLine
}

// TargetPlan describes the planned mutation of one target file. In
// test mode the plan is reported instead of executed.
type TargetPlan struct {
	Path     string // path relative to the run folder
	Policy   InsertPolicy
	Lines    int    // number of matched lines inserted
	Diff     string // unified diff of the mutation
	Skipped  bool   // true when the target does not exist
	SkipNote string // human-readable reason when Skipped
}

// SourcePlan describes the planned rewrite of one source file in
// refile mode: the same file minus its successfully relocated lines.
type SourcePlan struct {
	Path         string
	LinesRemoved int
	Diff         string
}

// RunResult summarizes one completed run.
type RunResult struct {
	FilesScanned     int
	LinesMatched     int
	TargetsWritten   int
	TargetsSkipped   int
	SourcesRewritten int
	Plans            []TargetPlan
	SourceRewrites   []SourcePlan
}
