package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/waiola-dashboard/internal/config"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT. Debug
// mode forces the debug level.
func NewLogger(cfg *config.Config) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(cfg.LogFormat, "text") {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("service", "waiola-dashboard")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
