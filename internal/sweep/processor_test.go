package sweep

import (
	"testing"

	"github.com/termfx/sweeptext/internal/pattern"
)

func mustCompile(t *testing.T, raw string) *pattern.Matcher {
	t.Helper()
	m, err := pattern.Compile(raw)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", raw, err)
	}
	return m
}

func TestProcessCleanMatchRemovesSpanOnce(t *testing.T) {
	p := NewProcessor(mustCompile(t, "#todo"), true, false)

	_, matches := p.Process("inbox.txt", "do #todo thing #todo again\n")
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	// Only the matched span goes, not every occurrence of the text.
	if got := matches[0].OutLine; got != "do  thing #todo again" {
		t.Errorf("OutLine = %q", got)
	}
}

func TestProcessKeepsLineWithoutCleanMatch(t *testing.T) {
	p := NewProcessor(mustCompile(t, "#todo"), false, false)

	_, matches := p.Process("inbox.txt", "call mom #todo\n")
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if got := matches[0].OutLine; got != "call mom #todo" {
		t.Errorf("OutLine = %q", got)
	}
}

func TestProcessAddLinks(t *testing.T) {
	p := NewProcessor(mustCompile(t, "#todo"), false, true)

	_, matches := p.Process("inbox.txt", "call mom #todo\n")
	if got := matches[0].OutLine; got != "call mom #todo [[inbox]]" {
		t.Errorf("OutLine = %q", got)
	}
}

func TestProcessNonMatchingLinesUntouched(t *testing.T) {
	p := NewProcessor(mustCompile(t, "#todo"), true, false)

	raw, matches := p.Process("inbox.txt", "plain one\nwith #todo\nplain two\n")
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0].LineIndex != 1 {
		t.Errorf("LineIndex = %d, want 1", matches[0].LineIndex)
	}
	if raw[0] != "plain one\n" || raw[2] != "plain two\n" {
		t.Errorf("raw lines altered: %q", raw)
	}
}

func TestProcessCapturesFlowThrough(t *testing.T) {
	p := NewProcessor(mustCompile(t, `^\[{note}\] `), true, false)

	_, matches := p.Process("inbox.txt", "[work] finish the report\n")
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if got := matches[0].Captures["note"]; got != "work" {
		t.Errorf("capture note = %q, want work", got)
	}
	if got := matches[0].OutLine; got != "finish the report" {
		t.Errorf("OutLine = %q", got)
	}
}
