// Package config tests validate config loading behavior.
package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoadAppliesDefaults confirms defaults are applied on load.
func TestLoadAppliesDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "campusconnect.yaml")
	if err := os.WriteFile(p, []byte("db:\n  path: ./x.db\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Log.Level != "info" {
		t.Fatalf("expected default log.level info, got %s", c.Log.Level)
	}
	if c.DB.Path != "./x.db" {
		t.Fatalf("expected db.path kept, got %s", c.DB.Path)
	}
	if c.NotesDir == "" {
		t.Fatalf("expected notes_dir default")
	}
}

// TestLoadRejectsMissingFile a missing config path is an error.
func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
