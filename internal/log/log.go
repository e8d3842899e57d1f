// Package log configures the process-wide structured logger.
//
// While the TUI owns the terminal, log output goes to a file so it cannot
// corrupt the alternate screen; non-interactive commands log to stderr.
package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps a config string to a slog level. Unknown values fall back
// to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New creates a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFile creates a logger appending to the file at path, creating parent
// directories as needed. If the file cannot be opened the logger discards
// output rather than failing the whole client.
func NewFile(path string, level slog.Level) *slog.Logger {
	if path == "" {
		return New(io.Discard, level)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return New(io.Discard, level)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return New(io.Discard, level)
	}
	return New(f, level)
}
