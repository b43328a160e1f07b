// Package logging provides the CLI's structured logger and the SQLite run
// log. Core simulation packages stay log-free; everything they decide is
// returned as data and logged at the edges.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// #region level
// ParseLevel maps a string level name to a slog.Level. Supported values:
// "debug", "info", "warn", "error" (case-insensitive); unknown values
// default to info.
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

// #endregion level

// #region constructor
// NewLogger creates a leveled slog.Logger writing tinted output to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.TimeOnly,
	}))
}

// #endregion constructor
