// Package db tests verify schema and query behavior.
package db

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// TestConfigRoundTrip covers the config key/value store and the
// initialized flag.
func TestConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	_, ok, err := d.GetConfig(ctx, "notes_dir")
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if ok {
		t.Fatalf("expected missing key")
	}

	if err := d.SetNotesDir(ctx, "/srv/notes"); err != nil {
		t.Fatalf("SetNotesDir: %v", err)
	}
	v, ok, err := d.GetNotesDir(ctx)
	if err != nil || !ok || v != "/srv/notes" {
		t.Fatalf("GetNotesDir: %q %v %v", v, ok, err)
	}

	init, err := d.IsInitialized(ctx)
	if err != nil {
		t.Fatalf("IsInitialized: %v", err)
	}
	if init {
		t.Fatalf("expected uninitialized")
	}
	if err := d.SetInitialized(ctx); err != nil {
		t.Fatalf("SetInitialized: %v", err)
	}
	init, err = d.IsInitialized(ctx)
	if err != nil || !init {
		t.Fatalf("expected initialized: %v %v", init, err)
	}
}

// TestCreateAccountUniqueUsername a duplicate insert fails and is
// recognized as a unique violation, leaving exactly one account.
func TestCreateAccountUniqueUsername(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	a, err := d.CreateAccount(ctx, "alice", "digest1")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	_, err = d.CreateAccount(ctx, "alice", "digest2")
	if err == nil {
		t.Fatalf("expected duplicate insert to fail")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	got, ok, err := d.GetAccountByUsername(ctx, "alice")
	if err != nil || !ok {
		t.Fatalf("GetAccountByUsername: %v %v", ok, err)
	}
	if got.ID != a.ID || got.PasswordHash != "digest1" {
		t.Fatalf("first account mutated: %+v", got)
	}
}

// TestInsertNoteBothBodies a note may carry inline content and a file.
func TestInsertNoteBothBodies(t *testing.T) {
	ctx := context.Background()
	d := openTestDB(t)

	a, err := d.CreateAccount(ctx, "alice", "digest")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	file := &StoredFile{OriginalName: "lec.pdf", StoredName: "lec_1.pdf", StoredPath: "/notes/lec_1.pdf"}
	n, err := d.InsertNote(ctx, a.ID, "Math", "Limits", "see attachment", file)
	if err != nil {
		t.Fatalf("InsertNote: %v", err)
	}
	if n.Kind() != BodyBoth {
		t.Fatalf("expected BodyBoth, got %v", n.Kind())
	}

	got, err := d.SearchNotes(ctx, "attachment", SearchContent)
	if err != nil {
		t.Fatalf("SearchNotes: %v", err)
	}
	if len(got) != 1 || got[0].File == nil || got[0].File.StoredName != "lec_1.pdf" {
		t.Fatalf("file ref lost on scan: %+v", got)
	}

	if _, err := d.InsertNote(ctx, a.ID, "Math", "Limits", "", nil); err == nil {
		t.Fatalf("expected empty-body insert to fail")
	}
}

// TestIsUniqueViolationNil nil is not a violation.
func TestIsUniqueViolationNil(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatalf("nil should not be a unique violation")
	}
}
