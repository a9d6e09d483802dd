// Package logging configures the process slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a user-supplied level string to a slog.Level. The empty
// string means info; unknown values return an error alongside info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "err":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
}

// Options controls logger formatting. Writer defaults to stderr.
type Options struct {
	Level       string
	JSON        bool
	Writer      io.Writer
	DefaultSlog bool
}

// New builds a slog.Logger from Options and returns the parsed level.
// When DefaultSlog is set the logger also becomes the process default.
func New(opt Options) (*slog.Logger, slog.Level, error) {
	level, err := ParseLevel(opt.Level)
	if err != nil {
		return nil, 0, err
	}

	w := opt.Writer
	if w == nil {
		w = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	var lg *slog.Logger
	if opt.JSON {
		lg = slog.New(slog.NewJSONHandler(w, ho))
	} else {
		lg = slog.New(slog.NewTextHandler(w, ho))
	}
	if opt.DefaultSlog {
		slog.SetDefault(lg)
	}
	return lg, level, nil
}
