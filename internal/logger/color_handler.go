package logger

import (
	"context"
	"io"
	"log/slog"
)

const ansiReset = "\033[0m"

// ColorHandler wraps slog.TextHandler and prefixes the message with an
// ANSI-colored level tag. With color disabled it degrades to the plain
// text handler output.
type ColorHandler struct {
	*slog.TextHandler
	color bool
}

func NewColorHandler(w io.Writer, opts *slog.HandlerOptions, color bool) *ColorHandler {
	return &ColorHandler{
		TextHandler: slog.NewTextHandler(w, opts),
		color:       color,
	}
}

// Handle implements slog.Handler.
func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.color {
		r.Message = levelColor(r.Level) + r.Level.String() + ansiReset + "  " + r.Message
	}
	return h.TextHandler.Handle(ctx, r)
}

func levelColor(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "\033[31m" // red
	case l >= slog.LevelWarn:
		return "\033[33m" // yellow
	case l >= slog.LevelInfo:
		return "\033[32m" // green
	default:
		return "\033[36m" // cyan
	}
}

// ErrorText paints s red for terminal error lines; with color disabled it
// returns s unchanged.
func ErrorText(s string, color bool) string {
	if !color {
		return s
	}
	return "\033[31m" + s + ansiReset
}
