package cli

import (
	"errors"
	"testing"

	"github.com/termfx/sweeptext/internal/config"
	"github.com/termfx/sweeptext/internal/model"
)

func testEnv() *config.Config {
	return &config.Config{Folder: ".", From: "*.txt", Backups: 3}
}

func TestBuildConfigRefilePreset(t *testing.T) {
	o := Options{Refile: "#todo", To: "todo.txt", Folder: ".", From: "*.txt"}

	cfg, err := o.BuildConfig(testEnv())
	if err != nil {
		t.Fatalf("BuildConfig error = %v", err)
	}
	if cfg.Mode != model.ModeRefile || cfg.Pattern != "#todo" {
		t.Errorf("mode/pattern = %v %q", cfg.Mode, cfg.Pattern)
	}
	if !cfg.CleanMatch || cfg.AddHeaders || cfg.Insert != model.InsertAfterBlank {
		t.Errorf("refile preset not applied: %+v", cfg)
	}
	if cfg.Backups != 3 {
		t.Errorf("Backups = %d, want 3", cfg.Backups)
	}
}

func TestBuildConfigCollectPreset(t *testing.T) {
	o := Options{Collect: "#todo", To: "todo.txt", Folder: ".", From: "*.txt"}

	cfg, err := o.BuildConfig(testEnv())
	if err != nil {
		t.Fatalf("BuildConfig error = %v", err)
	}
	if cfg.Mode != model.ModeCollect {
		t.Errorf("mode = %v", cfg.Mode)
	}
	if cfg.CleanMatch || !cfg.AddHeaders || cfg.Insert != model.InsertOverwrite {
		t.Errorf("collect preset not applied: %+v", cfg)
	}
}

func TestBuildConfigExplicitOverridesBeatPresets(t *testing.T) {
	o := Options{
		Collect:      "#todo",
		To:           "todo.txt",
		Folder:       ".",
		From:         "*.txt",
		Insert:       "append",
		NoAddHeaders: true,
		CleanMatch:   true,
	}

	cfg, err := o.BuildConfig(testEnv())
	if err != nil {
		t.Fatalf("BuildConfig error = %v", err)
	}
	if cfg.Insert != model.InsertAppend {
		t.Errorf("Insert = %v, want append", cfg.Insert)
	}
	if cfg.AddHeaders {
		t.Error("--noaddheaders should override the collect preset")
	}
	if !cfg.CleanMatch {
		t.Error("--cleanmatch should override the collect preset")
	}
}

func TestBuildConfigModeAliases(t *testing.T) {
	o := Options{Move: "#todo", To: "todo.txt", Folder: ".", From: "*.txt"}
	cfg, err := o.BuildConfig(testEnv())
	if err != nil {
		t.Fatalf("BuildConfig error = %v", err)
	}
	if cfg.Mode != model.ModeRefile {
		t.Errorf("--move mode = %v, want refile", cfg.Mode)
	}

	o = Options{Copy: "#todo", To: "todo.txt", Folder: ".", From: "*.txt"}
	cfg, err = o.BuildConfig(testEnv())
	if err != nil {
		t.Fatalf("BuildConfig error = %v", err)
	}
	if cfg.Mode != model.ModeCollect {
		t.Errorf("--copy mode = %v, want collect", cfg.Mode)
	}
}

func TestBuildConfigRejectsBadCombinations(t *testing.T) {
	cases := []struct {
		name string
		o    Options
	}{
		{"no mode", Options{To: "t.txt"}},
		{"no to", Options{Refile: "#todo"}},
		{"two modes", Options{Refile: "#a", Collect: "#b", To: "t.txt"}},
		{"bad insert", Options{Refile: "#a", To: "t.txt", Insert: "middle"}},
		{"headers conflict", Options{Refile: "#a", To: "t.txt", AddHeaders: true, NoAddHeaders: true}},
		{"cleanmatch conflict", Options{Refile: "#a", To: "t.txt", CleanMatch: true, NoCleanMatch: true}},
		{"addlinks conflict", Options{Refile: "#a", To: "t.txt", AddLinks: true, NoAddLinks: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.o.BuildConfig(testEnv())
			if err == nil {
				t.Fatal("expected an error")
			}
			var re *model.RunError
			if !errors.As(err, &re) || re.Code != model.ECConfigError {
				t.Errorf("err = %v, want config error", err)
			}
		})
	}
}
