package ui

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"campusconnect/internal/config"
	"campusconnect/internal/db"
	"campusconnect/internal/logging"
	"campusconnect/internal/repo"
	iui "campusconnect/internal/ui"
	"campusconnect/internal/version"
)

type Options struct {
	ConfigPath string
	LogLevel   string
	DBPath     string
	NotesDir   string
}

func Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	var opt Options
	var showVersion bool
	fs.StringVar(&opt.ConfigPath, "config", "", "path to campusconnect.yaml (when set, path flags are ignored)")
	fs.BoolVar(&showVersion, "version", false, "print version and exit")
	fs.StringVar(&opt.LogLevel, "log-level", "", "log level: debug|info|warning|error (default info)")
	fs.StringVar(&opt.DBPath, "db", "./data/campusconnect.db", "sqlite database path")
	fs.StringVar(&opt.NotesDir, "notes-dir", "", "directory for uploaded note files (default: recorded by setup)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if showVersion {
		fmt.Printf("campusconnect %s\n", version.Version)
		return nil
	}

	if opt.ConfigPath != "" {
		c, err := config.Load(opt.ConfigPath)
		if err != nil {
			return err
		}
		base := filepath.Dir(opt.ConfigPath)
		opt.DBPath = resolvePath(base, c.DB.Path)
		opt.NotesDir = resolvePath(base, c.NotesDir)
		if strings.TrimSpace(opt.LogLevel) == "" {
			opt.LogLevel = c.Log.Level
		}
	}

	lg, _, err := logging.New(logging.Options{Level: opt.LogLevel, DefaultSlog: true})
	if err != nil {
		return err
	}

	ctx := context.Background()
	d, err := db.Open(ctx, opt.DBPath)
	if err != nil {
		return err
	}
	defer d.Close()

	initialized, err := d.IsInitialized(ctx)
	if err != nil {
		return err
	}
	if !initialized {
		return errors.New("not initialized; run setup")
	}

	notesDir := strings.TrimSpace(opt.NotesDir)
	if notesDir == "" {
		v, ok, err := d.GetNotesDir(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("missing notes dir config; run setup")
		}
		notesDir = v
	}

	r, err := repo.New(repo.Options{DB: d, NotesDir: notesDir, Logger: lg})
	if err != nil {
		return err
	}

	p := tea.NewProgram(iui.New(r), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func resolvePath(baseDir, p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
