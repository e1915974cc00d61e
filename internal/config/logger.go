package config

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/inovacc/consultas/internal/encoding"
)

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the text logger described by c. When fallbackFile is set
// and no log file is configured, output goes there instead of stderr; the
// TUI uses this to keep log lines off the screen. The returned closer must
// be called on exit.
func (c LogConfig) NewLogger(fallbackFile string) (*slog.Logger, io.Closer, error) {
	path := c.File
	if path == "" {
		path = fallbackFile
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)

	if path != "" {
		if err := encoding.EnsureParentDir(path); err != nil {
			return nil, nil, err
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, nil, err
		}

		w, closer = f, f
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(c.Level)})

	return slog.New(handler), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
