package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/termfx/sweeptext/internal/config"
)

func writeRulesFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunRulesFileExecutesEachRule(t *testing.T) {
	dir := t.TempDir()
	writeRulesFixture(t, dir, "inbox.txt", "call mom #todo\n[work] finish report\n")
	writeRulesFixture(t, dir, "todo.txt", "old\n")
	writeRulesFixture(t, dir, "work.txt", "Work\n\n")

	rules := writeRulesFixture(t, dir, "sweep.rules", strings.Join([]string{
		"# morning sweep",
		"",
		"--collect '#todo' --to todo.txt",
		`--refile '^\[{note}\] ' --to '{note}.txt'`,
	}, "\n")+"\n")

	env := &config.Config{Folder: dir, From: "*.txt", Backups: 0}
	var out bytes.Buffer
	if err := RunRulesFile(rules, Batch{Env: env}, &out); err != nil {
		t.Fatalf("RunRulesFile error = %v", err)
	}

	todo, err := os.ReadFile(filepath.Join(dir, "todo.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(todo), "call mom #todo") {
		t.Errorf("todo.txt = %q", todo)
	}
	work, err := os.ReadFile(filepath.Join(dir, "work.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(work), "finish report") {
		t.Errorf("work.txt = %q", work)
	}
}

func TestRunRulesFileBatchTestForcesDryRun(t *testing.T) {
	dir := t.TempDir()
	writeRulesFixture(t, dir, "inbox.txt", "call mom #todo\n")
	writeRulesFixture(t, dir, "todo.txt", "old\n")
	rules := writeRulesFixture(t, dir, "sweep.rules", "--collect '#todo' --to todo.txt\n")

	env := &config.Config{Folder: dir, From: "*.txt", Backups: 0}
	var out bytes.Buffer
	if err := RunRulesFile(rules, Batch{Env: env, Test: true}, &out); err != nil {
		t.Fatalf("RunRulesFile error = %v", err)
	}

	todo, err := os.ReadFile(filepath.Join(dir, "todo.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(todo) != "old\n" {
		t.Errorf("todo.txt = %q, batch --test must not write", todo)
	}
	if !strings.Contains(out.String(), "test: would write todo.txt") {
		t.Errorf("output = %q, want a dry-run report", out.String())
	}
}

func TestRunRulesFileBadRuleAbortsBatch(t *testing.T) {
	dir := t.TempDir()
	writeRulesFixture(t, dir, "inbox.txt", "call mom #todo\n")
	writeRulesFixture(t, dir, "todo.txt", "old\n")
	rules := writeRulesFixture(t, dir, "sweep.rules", strings.Join([]string{
		"--collect '#todo'",                // missing --to
		"--collect '#todo' --to todo.txt", // never reached
	}, "\n")+"\n")

	env := &config.Config{Folder: dir, From: "*.txt", Backups: 0}
	var out bytes.Buffer
	err := RunRulesFile(rules, Batch{Env: env}, &out)
	if err == nil {
		t.Fatal("expected an error from the bad rule")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("err = %v, want the offending line number", err)
	}

	todo, _ := os.ReadFile(filepath.Join(dir, "todo.txt"))
	if string(todo) != "old\n" {
		t.Errorf("todo.txt = %q, later rules must not run", todo)
	}
}

func TestRunRulesFileFolderOverride(t *testing.T) {
	notesDir := t.TempDir()
	otherDir := t.TempDir()
	writeRulesFixture(t, notesDir, "inbox.txt", "call mom #todo\n")
	writeRulesFixture(t, notesDir, "todo.txt", "")
	rules := writeRulesFixture(t, otherDir, "sweep.rules", "--collect '#todo' --to todo.txt\n")

	env := &config.Config{Folder: otherDir, From: "*.txt", Backups: 0}
	var out bytes.Buffer
	if err := RunRulesFile(rules, Batch{Env: env, Folder: notesDir}, &out); err != nil {
		t.Fatalf("RunRulesFile error = %v", err)
	}

	todo, err := os.ReadFile(filepath.Join(notesDir, "todo.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(todo), "call mom #todo") {
		t.Errorf("todo.txt = %q, rule should run against the override folder", todo)
	}
}

func TestExecuteLiveSummary(t *testing.T) {
	dir := t.TempDir()
	writeRulesFixture(t, dir, "inbox.txt", "call mom #todo\n")
	writeRulesFixture(t, dir, "todo.txt", "")

	o := Options{Collect: "#todo", To: "todo.txt", Folder: dir, From: "*.txt"}
	cfg, err := o.BuildConfig(&config.Config{Folder: dir, From: "*.txt"})
	if err != nil {
		t.Fatalf("BuildConfig error = %v", err)
	}

	var out bytes.Buffer
	if err := Execute(cfg, &out); err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	want := "2 file(s) scanned, 1 line(s) matched, 1 target(s) written"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output = %q, want it to contain %q", out.String(), want)
	}
}
