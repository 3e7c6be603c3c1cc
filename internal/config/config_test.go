package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SWEEPTEXT_FOLDER", "")
	t.Setenv("SWEEPTEXT_FROM", "")
	t.Setenv("SWEEPTEXT_BACKUPS", "")

	cfg := Load()
	if cfg.Folder != DefaultFolder || cfg.From != DefaultFrom || cfg.Backups != DefaultBackups {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SWEEPTEXT_FOLDER", "/notes")
	t.Setenv("SWEEPTEXT_FROM", "*.md")
	t.Setenv("SWEEPTEXT_BACKUPS", "0")

	cfg := Load()
	if cfg.Folder != "/notes" || cfg.From != "*.md" || cfg.Backups != 0 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadIgnoresBadBackups(t *testing.T) {
	t.Setenv("SWEEPTEXT_BACKUPS", "many")

	if cfg := Load(); cfg.Backups != DefaultBackups {
		t.Errorf("Backups = %d, want default on unparsable value", cfg.Backups)
	}

	t.Setenv("SWEEPTEXT_BACKUPS", "-2")
	if cfg := Load(); cfg.Backups != DefaultBackups {
		t.Errorf("Backups = %d, want default on negative value", cfg.Backups)
	}
}
