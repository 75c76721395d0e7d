// Package logger provides slog-based logging with optional ANSI coloring
// for terminal output.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/linkalytics/factorlink/pkg/config"
)

// ANSI escape sequences used by ColorHandler.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
)

// ColorHandler wraps a text handler and colors records by level: errors
// red, warnings yellow, debug cyan.
type ColorHandler struct {
	inner slog.Handler
	w     io.Writer
	level slog.Level
}

// NewColorHandler creates a handler writing colored text records to w.
func NewColorHandler(w io.Writer, level slog.Level) *ColorHandler {
	return &ColorHandler{
		inner: slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}),
		w:     w,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *ColorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *ColorHandler) Handle(ctx context.Context, record slog.Record) error {
	var color string
	switch {
	case record.Level >= slog.LevelError:
		color = colorRed
	case record.Level >= slog.LevelWarn:
		color = colorYellow
	case record.Level < slog.LevelInfo:
		color = colorCyan
	}
	if color == "" {
		return h.inner.Handle(ctx, record)
	}
	if _, err := fmt.Fprint(h.w, color); err != nil {
		return err
	}
	if err := h.inner.Handle(ctx, record); err != nil {
		return err
	}
	_, err := fmt.Fprint(h.w, colorReset)
	return err
}

// WithAttrs implements slog.Handler.
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ColorHandler{inner: h.inner.WithAttrs(attrs), w: h.w, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	return &ColorHandler{inner: h.inner.WithGroup(name), w: h.w, level: h.level}
}

// NewLogger creates a logger writing to w in the given format. Supported
// formats are "json", "text" and "color".
func NewLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	switch strings.ToLower(format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	case "text":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	default:
		return slog.New(NewColorHandler(w, level))
	}
}

// NewDefaultLogger creates a colored logger writing to stderr.
func NewDefaultLogger(level slog.Level) *slog.Logger {
	return slog.New(NewColorHandler(os.Stderr, level))
}

// FromConfig builds a logger from the log configuration.
func FromConfig(cfg config.LogConfig) *slog.Logger {
	return NewLogger(os.Stderr, ParseLevel(cfg.Level), cfg.Format)
}

// ParseLevel maps a level name to a slog.Level. Unknown names fall back
// to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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
