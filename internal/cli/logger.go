package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/calvinalkan/agent-todo/internal/todo"
)

// NewLogger creates a *slog.Logger based on the provided LogConfig.
//
// Format "json" produces structured JSON output.
// Format "text" (or anything else) produces logfmt-style text.
// Level is one of: debug, info, warn, error (case-insensitive); defaults to warn
// so regular command output is not interleaved with progress messages.
func NewLogger(w io.Writer, cfg todo.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
