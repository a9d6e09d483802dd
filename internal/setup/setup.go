// Package setup performs first-run bootstrap: it creates the data
// directories, opens the database (which runs migrations), and records the
// notes directory so later runs find uploaded files in one place.
package setup

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"campusconnect/internal/db"
)

type Options struct {
	DBPath   string
	NotesDir string
}

func Run(ctx context.Context, opt Options) error {
	if opt.DBPath == "" {
		return errors.New("db path is required")
	}
	if opt.NotesDir == "" {
		return errors.New("notes dir is required")
	}
	if err := os.MkdirAll(filepath.Dir(opt.DBPath), 0o700); err != nil {
		return err
	}
	if err := os.MkdirAll(opt.NotesDir, 0o700); err != nil {
		return err
	}

	d, err := db.Open(ctx, opt.DBPath)
	if err != nil {
		return err
	}
	defer d.Close()
	_ = os.Chmod(opt.DBPath, 0o600)

	initialized, err := d.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if initialized {
		return errors.New("already initialized")
	}

	notesAbs, err := filepath.Abs(opt.NotesDir)
	if err != nil {
		return err
	}
	if err := d.SetNotesDir(ctx, notesAbs); err != nil {
		return err
	}

	return d.SetInitialized(ctx)
}
