// Package logging builds the slog loggers used by the commands.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "ORRERY_LOG_LEVEL"

// New returns a text logger writing to w at the level from LevelEnv. The
// terminal renderer owns stdout, so commands pass stderr or a file here.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(os.Getenv(LevelEnv)),
	}))
}

// ParseLevel maps DEBUG, INFO, WARN (or WARNING) and ERROR to slog levels,
// ignoring case. Anything else is INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
