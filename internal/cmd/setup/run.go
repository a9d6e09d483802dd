package setup

import (
	"context"
	"flag"

	isetup "campusconnect/internal/setup"
)

type Options struct {
	DBPath   string
	NotesDir string
}

func Run(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	var opt Options
	fs.StringVar(&opt.DBPath, "db", "./data/campusconnect.db", "sqlite database path")
	fs.StringVar(&opt.NotesDir, "notes-dir", "./data/uploaded_notes", "directory for uploaded note files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return isetup.Run(context.Background(), isetup.Options{
		DBPath:   opt.DBPath,
		NotesDir: opt.NotesDir,
	})
}
